package handler

import (
	"net/http"

	"horti/internal/service"
	"horti/pkg/pagination"
	"horti/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	bootstrap      func() error
}

// NewCatalogHandler wires the catalog routes. bootstrap re-seeds the fixed
// reference data and is safe to call repeatedly.
func NewCatalogHandler(catalogService service.CatalogService, bootstrap func() error) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, bootstrap: bootstrap}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/api/catalog")
	{
		catalog.POST("/init", h.Init)
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/stores", h.ListStores)
	}
}

type initRequest struct {
	ExcelPath string `json:"excel_path"`
}

// Init seeds reference data and optionally imports a product spreadsheet
// @Summary      Bootstrap reference data
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        payload  body  initRequest  false  "Optional xlsx path to import"
// @Success      200  {object}  response.Response
// @Router       /api/catalog/init [post]
func (h *CatalogHandler) Init(c *gin.Context) {
	var req initRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	if err := h.bootstrap(); err != nil {
		abortWithError(c, err)
		return
	}

	imported := 0
	if req.ExcelPath != "" {
		count, err := h.catalogService.ImportFromXLSX(c.Request.Context(), req.ExcelPath)
		if err != nil {
			abortWithError(c, err)
			return
		}
		imported = count
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"ok": true, "imported": imported}))
}

// ListProducts returns catalog products with optional substring search
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        q      query  string  false  "Search by code or name"
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Items per page"
// @Success      200  {object}  response.Response
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("q")

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), search, params.Page, params.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, products, params.Page, params.Limit, total))
}

// ListStores returns the fixed store reference set
// @Summary      List stores
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/catalog/stores [get]
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalogService.ListStores(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stores))
}
