package handler

import (
	"net/http"
	"strings"

	"horti/internal/export"
	"horti/internal/service"
	"horti/pkg/response"

	"github.com/gin-gonic/gin"
)

type LogisticsHandler struct {
	logisticsService service.LogisticsService
	consolidationEng service.ConsolidationService
}

func NewLogisticsHandler(logisticsService service.LogisticsService, consolidationEng service.ConsolidationService) *LogisticsHandler {
	return &LogisticsHandler{logisticsService: logisticsService, consolidationEng: consolidationEng}
}

func (h *LogisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	logistics := router.Group("/api/logistics")
	{
		logistics.GET("/items", h.ListItems)
		logistics.PUT("/items/:id/received", h.RecordReceived)
		logistics.GET("/suppliers", h.ListSuppliers)
		logistics.GET("/supplier-plan", h.SupplierPlan)
		logistics.POST("/items/:id/distribution", h.SetDistribution)
		logistics.GET("/items/:id/distribution", h.GetDistribution)
		logistics.GET("/export/stores/:code/xlsx", h.ExportStoreXLSX)
		logistics.GET("/export/stores/:code/txt", h.ExportStoreText)
	}
}

// ListItems returns plan lines with expected and received quantities
// @Summary      List plan items
// @Tags         logistics
// @Produce      json
// @Param        supplier  query  string  false  "Supplier name filter"
// @Param        q         query  string  false  "Search by product code or name"
// @Param        cycle     query  string  false  "Cycle ID filter"
// @Success      200  {object}  response.Response
// @Router       /api/logistics/items [get]
func (h *LogisticsHandler) ListItems(c *gin.Context) {
	items, err := h.logisticsService.ListPlan(c.Request.Context(), c.Query("supplier"), c.Query("q"), c.Query("cycle"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

type recordReceivedRequest struct {
	ReceivedQuantity float64 `json:"received_quantity"`
}

// RecordReceived upserts the delivered quantity for a plan line
// @Summary      Record received quantity
// @Tags         logistics
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "Plan line ID"
// @Param        payload  body  recordReceivedRequest  true  "Received quantity"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/logistics/items/{id}/received [put]
func (h *LogisticsHandler) RecordReceived(c *gin.Context) {
	var req recordReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.logisticsService.RecordReceived(c.Request.Context(), c.Param("id"), req.ReceivedQuantity); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"ok": true}))
}

// ListSuppliers returns the suppliers present in the plan
// @Summary      List plan suppliers
// @Tags         logistics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/logistics/suppliers [get]
func (h *LogisticsHandler) ListSuppliers(c *gin.Context) {
	names, err := h.logisticsService.PlanSuppliers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, names))
}

// SupplierPlan returns plan lines with their per-store distribution attached
// @Summary      Supplier plan view
// @Tags         logistics
// @Produce      json
// @Param        supplier  query  string  false  "Supplier name filter"
// @Param        q         query  string  false  "Search by product code or name"
// @Success      200  {object}  response.Response
// @Router       /api/logistics/supplier-plan [get]
func (h *LogisticsHandler) SupplierPlan(c *gin.Context) {
	items, err := h.logisticsService.SupplierPlan(c.Request.Context(), c.Query("supplier"), c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

type setDistributionRequest struct {
	Distribution []service.DistributionEntry `json:"distribution" binding:"required"`
	Strict       bool                        `json:"strict"`
}

// SetDistribution saves the per-store split for a plan line
// @Summary      Set distribution
// @Tags         logistics
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Plan line ID"
// @Param        payload  body  setDistributionRequest  true  "Distribution entries"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/logistics/items/{id}/distribution [post]
func (h *LogisticsHandler) SetDistribution(c *gin.Context) {
	var req setDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.logisticsService.SetDistribution(c.Request.Context(), c.Param("id"), req.Distribution, req.Strict)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetDistribution returns the stored split for a plan line in store order
// @Summary      Get distribution
// @Tags         logistics
// @Produce      json
// @Param        id  path  string  true  "Plan line ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/logistics/items/{id}/distribution [get]
func (h *LogisticsHandler) GetDistribution(c *gin.Context) {
	views, err := h.logisticsService.GetDistribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, views))
}

// ExportStoreXLSX downloads one store's totals as a spreadsheet
// @Summary      Export store totals xlsx
// @Tags         logistics
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        code  path  string  true  "Store code"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /api/logistics/export/stores/{code}/xlsx [get]
func (h *LogisticsHandler) ExportStoreXLSX(c *gin.Context) {
	code := c.Param("code")
	rows, err := h.consolidationEng.StoreTotals(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	content, err := export.ExcelSheet(consolidatedToExportRows(rows), code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+strings.ToLower(code)+`_pedido.xlsx"`)
	c.Data(http.StatusOK, mimeXLSX, content)
}

// ExportStoreText downloads one store's totals in the VR MASTER format
// @Summary      Export store totals txt
// @Tags         logistics
// @Produce      plain
// @Param        code  path  string  true  "Store code"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /api/logistics/export/stores/{code}/txt [get]
func (h *LogisticsHandler) ExportStoreText(c *gin.Context) {
	code := c.Param("code")
	rows, err := h.consolidationEng.StoreTotals(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+strings.ToLower(code)+`_vr_master.txt"`)
	c.Data(http.StatusOK, mimeText, export.Text(consolidatedToExportRows(rows)))
}
