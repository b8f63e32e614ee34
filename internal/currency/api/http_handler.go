package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/domain"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/currency/service"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
	"github.com/spf13/cast"
)

type CurrencyHandler struct {
	rateService service.RateService
}

func NewCurrencyHandler(rs service.RateService) *CurrencyHandler {
	return &CurrencyHandler{rateService: rs}
}

func (h *CurrencyHandler) RegisterRoutes(router *gin.RouterGroup) {
	rateRoutes := router.Group("/rates")
	{
		rateRoutes.GET("", h.GetRates)
		rateRoutes.GET("/", h.GetRates)
		rateRoutes.POST("/refresh", h.RefreshRates)
		rateRoutes.GET("/convert", h.Convert)
		rateRoutes.GET("/:code", h.GetRate)
	}
}

type ratesResponse struct {
	State       domain.FetchState     `json:"state"`
	Base        string                `json:"base"`
	Source      string                `json:"source"`
	Warning     string                `json:"warning,omitempty"`
	LastUpdated string                `json:"last_updated"`
	Rates       []domain.CurrencyRate `json:"rates"`
}

func toRatesResponse(snap domain.RatesSnapshot) ratesResponse {
	return ratesResponse{
		State:       snap.State,
		Base:        snap.Table.Base,
		Source:      snap.Table.Source,
		Warning:     snap.Warning,
		LastUpdated: snap.LastUpdated.UTC().Format(time.RFC3339),
		Rates:       snap.Table.Ordered(),
	}
}

func (h *CurrencyHandler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, toRatesResponse(h.rateService.Current()))
}

// RefreshRates selalu 200: kegagalan provider sudah dikonversi ke tabel fallback.
func (h *CurrencyHandler) RefreshRates(c *gin.Context) {
	snap := h.rateService.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, toRatesResponse(snap))
}

func (h *CurrencyHandler) GetRate(c *gin.Context) {
	code := c.Param("code")
	rate, ok := h.rateService.Current().Table.Get(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUnknownCurrency.Error() + ": " + code})
		return
	}
	c.JSON(http.StatusOK, rate)
}

// Convert: /rates/convert?amount=100&from=INR&to=USD. from defaults to the base currency.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	amount, err := cast.ToFloat64E(c.Query("amount"))
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	from := c.DefaultQuery("from", domain.BaseCurrency)
	to := c.Query("to")
	if to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Target currency 'to' is required"})
		return
	}

	res, err := h.rateService.Convert(amount, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Convert: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}
	c.JSON(http.StatusOK, res)
}
