package handlers

import (
	"net/http"

	"backoffice/internal/config"
	"backoffice/internal/logger"
	"backoffice/internal/models"
	"backoffice/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db     *gorm.DB
	logger *logger.Logger
	config *config.Config
}

func NewOrderHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		db:     db,
		logger: logger,
		config: cfg,
	}
}

// List proxies the main store's orders, keeping only the fields the back
// office cares about and attributing each line item to its vendor.
func (h *OrderHandler) List(c *gin.Context) {
	client := shopify.NewClient(h.config.ShopifyShop, h.config.ShopifyAccessToken, h.logger)

	orders, err := client.FetchAllOrders()
	if err != nil {
		h.logger.Error("Failed to fetch orders: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch orders from store"})
		return
	}

	vendor := c.Query("vendor")

	formatted := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		lineItems := make([]gin.H, 0, len(order.LineItems))
		matches := vendor == ""
		for _, item := range order.LineItems {
			if vendor != "" && item.Vendor != vendor {
				continue
			}
			matches = true
			lineItems = append(lineItems, gin.H{
				"id":       item.ID,
				"title":    item.Title,
				"vendor":   item.Vendor,
				"price":    item.Price,
				"quantity": item.Quantity,
				"sku":      item.Sku,
			})
		}
		if !matches {
			continue
		}
		formatted = append(formatted, gin.H{
			"id":               order.ID,
			"name":             order.Name,
			"email":            order.Email,
			"total_price":      order.TotalPrice,
			"currency":         order.Currency,
			"financial_status": order.FinancialStatus,
			"created_at":       order.CreatedAt,
			"line_items":       lineItems,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  formatted,
		"count": len(formatted),
	})
}

func (h *OrderHandler) ListManual(c *gin.Context) {
	var orders []models.ManualOrder

	query := h.db.Model(&models.ManualOrder{}).Order("created_at DESC")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch manual orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (h *OrderHandler) CreateManual(c *gin.Context) {
	var order models.ManualOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create manual order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (h *OrderHandler) DeleteManual(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.ManualOrder{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete manual order"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
