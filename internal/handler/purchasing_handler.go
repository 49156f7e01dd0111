package handler

import (
	"net/http"

	"horti/internal/export"
	"horti/internal/service"
	"horti/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
	mimeText = "text/plain; charset=utf-8"
)

type PurchasingHandler struct {
	orderService      service.OrderService
	assignmentService service.AssignmentService
	consolidationEng  service.ConsolidationService
	logisticsService  service.LogisticsService
}

func NewPurchasingHandler(
	orderService service.OrderService,
	assignmentService service.AssignmentService,
	consolidationEng service.ConsolidationService,
	logisticsService service.LogisticsService,
) *PurchasingHandler {
	return &PurchasingHandler{
		orderService:      orderService,
		assignmentService: assignmentService,
		consolidationEng:  consolidationEng,
		logisticsService:  logisticsService,
	}
}

func (h *PurchasingHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchasing := router.Group("/api/purchasing")
	{
		purchasing.POST("/orders", h.CreateOrder)
		purchasing.GET("/orders", h.ListOrders)
		purchasing.GET("/orders/:id/items", h.ListOrderItems)
		purchasing.GET("/stores/:code/totals", h.StoreTotals)
		purchasing.POST("/assignments", h.Assign)
		purchasing.GET("/stores/:code/assignments", h.ListAssignments)
		purchasing.GET("/reports/consolidated", h.Consolidated)
		purchasing.GET("/reports/consolidated-by-supplier", h.ConsolidatedBySupplier)
		purchasing.GET("/reports/unassigned", h.UnassignedDemand)
		purchasing.POST("/send-to-logistics", h.SendToLogistics)
		purchasing.GET("/export/xlsx", h.ExportXLSX)
		purchasing.GET("/export/document", h.ExportDocument)
	}
}

// CreateOrder records a store order
// @Summary      Create order
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateOrderRequest  true  "Order payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchasing/orders [post]
func (h *PurchasingHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	orderID, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"order_id": orderID}))
}

// ListOrders returns order headers, optionally for one store
// @Summary      List orders
// @Tags         purchasing
// @Produce      json
// @Param        store  query  string  false  "Store code filter"
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/orders [get]
func (h *PurchasingHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), c.Query("store"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// ListOrderItems returns the lines of one order joined with product identity
// @Summary      Order detail
// @Tags         purchasing
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/orders/{id}/items [get]
func (h *PurchasingHandler) ListOrderItems(c *gin.Context) {
	items, err := h.orderService.ListOrderItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// StoreTotals returns one store's per-product totals across all its orders
// @Summary      Store totals
// @Tags         purchasing
// @Produce      json
// @Param        code  path  string  true  "Store code"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchasing/stores/{code}/totals [get]
func (h *PurchasingHandler) StoreTotals(c *gin.Context) {
	rows, err := h.consolidationEng.StoreTotals(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// Assign sets the supplier for a (store, product) pair
// @Summary      Assign supplier
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        payload  body  service.AssignRequest  true  "Assignment payload"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchasing/assignments [post]
func (h *PurchasingHandler) Assign(c *gin.Context) {
	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.assignmentService.Assign(c.Request.Context(), req); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"ok": true}))
}

// ListAssignments returns a store's current supplier assignments
// @Summary      List assignments
// @Tags         purchasing
// @Produce      json
// @Param        code  path  string  true  "Store code"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchasing/stores/{code}/assignments [get]
func (h *PurchasingHandler) ListAssignments(c *gin.Context) {
	views, err := h.assignmentService.ListAssignments(c.Request.Context(), c.Param("code"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, views))
}

// Consolidated returns the global consolidation across all stores
// @Summary      Consolidated report
// @Tags         purchasing
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/reports/consolidated [get]
func (h *PurchasingHandler) Consolidated(c *gin.Context) {
	rows, err := h.consolidationEng.Consolidate(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// ConsolidatedBySupplier returns consolidation grouped by assigned supplier
// @Summary      Consolidated report by supplier
// @Tags         purchasing
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/reports/consolidated-by-supplier [get]
func (h *PurchasingHandler) ConsolidatedBySupplier(c *gin.Context) {
	rows, err := h.consolidationEng.ConsolidateBySupplier(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// UnassignedDemand reports demand excluded from the supplier-scoped view
// @Summary      Unassigned demand report
// @Tags         purchasing
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/reports/unassigned [get]
func (h *PurchasingHandler) UnassignedDemand(c *gin.Context) {
	rows, err := h.consolidationEng.UnassignedDemand(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

type sendToLogisticsRequest struct {
	Supplier string `json:"supplier"`
}

// SendToLogistics freezes the current consolidation into a new plan cycle
// @Summary      Send consolidation to logistics
// @Tags         purchasing
// @Accept       json
// @Produce      json
// @Param        payload  body  sendToLogisticsRequest  false  "Optional supplier for the whole batch"
// @Success      200  {object}  response.Response
// @Router       /api/purchasing/send-to-logistics [post]
func (h *PurchasingHandler) SendToLogistics(c *gin.Context) {
	var req sendToLogisticsRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	result, err := h.logisticsService.SendToLogistics(c.Request.Context(), req.Supplier)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ExportXLSX downloads the consolidated report as a spreadsheet
// @Summary      Export consolidated xlsx
// @Tags         purchasing
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/purchasing/export/xlsx [get]
func (h *PurchasingHandler) ExportXLSX(c *gin.Context) {
	rows, err := h.consolidationEng.Consolidate(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	content, err := export.ExcelSheet(consolidatedToExportRows(rows), "Consolidado")
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="consolidado.xlsx"`)
	c.Data(http.StatusOK, mimeXLSX, content)
}

// ExportDocument downloads the consolidated report as a printable document
// @Summary      Export consolidated document
// @Tags         purchasing
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/purchasing/export/document [get]
func (h *PurchasingHandler) ExportDocument(c *gin.Context) {
	rows, err := h.consolidationEng.Consolidate(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	content, err := export.Document(consolidatedToExportRows(rows), "Relatório Consolidado")
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="consolidado.pdf"`)
	c.Data(http.StatusOK, mimePDF, content)
}

func consolidatedToExportRows(rows []service.ConsolidatedRow) []export.Row {
	out := make([]export.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, export.Row{
			Code:     row.Code,
			Name:     row.Name,
			Quantity: row.TotalQuantity,
			Unit:     row.Unit,
		})
	}
	return out
}
