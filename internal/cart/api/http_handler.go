package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/repository"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/cart/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cs service.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/carts")
	{
		cartRoutes.POST("", h.CreateCart)
		cartRoutes.POST("/", h.CreateCart)
		cartRoutes.GET("/:id", h.GetCart)
		cartRoutes.DELETE("/:id", h.DeleteCart)
		cartRoutes.POST("/:id/items", h.AddItem)
		cartRoutes.DELETE("/:id/items", h.ClearCart)
		cartRoutes.PUT("/:id/items/:product_id", h.SetItemQuantity)
		cartRoutes.PATCH("/:id/items/:product_id", h.UpdateItemQuantity)
		cartRoutes.DELETE("/:id/items/:product_id", h.RemoveItem)
		cartRoutes.PUT("/:id/markup", h.ApplyMarkup)
		cartRoutes.DELETE("/:id/markup", h.ResetMarkup)
		cartRoutes.GET("/:id/totals", h.GetTotals)
	}
	router.GET("/markup-presets", h.GetMarkupPresets)
}

// Nilai angka sengaja interface{}: validasi dilakukan di service dan input invalid diabaikan.
type addItemRequest struct {
	ProductID string      `json:"product_id" binding:"required"`
	Quantity  interface{} `json:"quantity"`
}

type quantityRequest struct {
	Quantity interface{} `json:"quantity"`
}

type deltaRequest struct {
	Delta interface{} `json:"delta"`
}

type markupRequest struct {
	Percent interface{} `json:"percent"`
}

type cartResponse struct {
	domain.Cart
	ItemCount int `json:"item_count"`
}

func (h *CartHandler) respondCart(c *gin.Context, status int, cart *domain.Cart, err error, op string) {
	if err != nil {
		h.respondError(c, err, op)
		return
	}
	c.JSON(status, cartResponse{Cart: *cart, ItemCount: domain.ItemCount(*cart)})
}

func (h *CartHandler) respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCatalogUnavailable):
		logger.Error(op+": catalog unavailable", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog service unavailable"})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}

func (h *CartHandler) CreateCart(c *gin.Context) {
	cart, err := h.cartService.CreateCart(c.Request.Context())
	h.respondCart(c, http.StatusCreated, cart, err, "create cart")
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), c.Param("id"))
	h.respondCart(c, http.StatusOK, cart, err, "retrieve cart")
}

func (h *CartHandler) DeleteCart(c *gin.Context) {
	if err := h.cartService.DeleteCart(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "delete cart")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	cart, err := h.cartService.AddItem(c.Request.Context(), c.Param("id"), req.ProductID, req.Quantity)
	h.respondCart(c, http.StatusOK, cart, err, "add item")
}

func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	cart, err := h.cartService.SetItemQuantity(c.Request.Context(), c.Param("id"), c.Param("product_id"), req.Quantity)
	h.respondCart(c, http.StatusOK, cart, err, "set quantity")
}

func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	var req deltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), c.Param("id"), c.Param("product_id"), req.Delta)
	h.respondCart(c, http.StatusOK, cart, err, "update quantity")
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("product_id"))
	h.respondCart(c, http.StatusOK, cart, err, "remove item")
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.cartService.ClearCart(c.Request.Context(), c.Param("id"))
	h.respondCart(c, http.StatusOK, cart, err, "clear cart")
}

func (h *CartHandler) ApplyMarkup(c *gin.Context) {
	var req markupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	cart, err := h.cartService.ApplyMarkup(c.Request.Context(), c.Param("id"), req.Percent)
	h.respondCart(c, http.StatusOK, cart, err, "apply markup")
}

func (h *CartHandler) ResetMarkup(c *gin.Context) {
	cart, err := h.cartService.ResetMarkup(c.Request.Context(), c.Param("id"))
	h.respondCart(c, http.StatusOK, cart, err, "reset markup")
}

// GetTotals: /carts/:id/totals?currency=USD
func (h *CartHandler) GetTotals(c *gin.Context) {
	totals, err := h.cartService.GetTotals(c.Request.Context(), c.Param("id"), c.Query("currency"))
	if err != nil {
		h.respondError(c, err, "compute totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *CartHandler) GetMarkupPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": domain.MarkupPresets})
}
