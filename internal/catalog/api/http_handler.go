package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/repository"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(cs service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.SearchProducts)
		productRoutes.GET("/", h.SearchProducts)
		productRoutes.GET("/:id", h.GetProduct)
	}
	router.GET("/facets", h.GetFacets)
}

// SearchProducts menerima filter lewat query string:
// brand, category, q, field, type, sort, offset, limit, all.
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var q domain.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.catalogService.SearchProducts(c.Request.Context(), q)
	if err != nil {
		logger.Error("SearchProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	product, err := h.catalogService.GetProductDetails(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetFacets(c *gin.Context) {
	facets, err := h.catalogService.GetFacets(c.Request.Context())
	if err != nil {
		logger.Error("GetFacets: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve facets"})
		return
	}
	c.JSON(http.StatusOK, facets)
}
