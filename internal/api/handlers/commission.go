package handlers

import (
	"net/http"

	"backoffice/internal/logger"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommissionHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewCommissionHandler(db *gorm.DB, logger *logger.Logger) *CommissionHandler {
	return &CommissionHandler{
		db:     db,
		logger: logger,
	}
}

func (h *CommissionHandler) List(c *gin.Context) {
	var commissions []models.Commission

	query := h.db.Model(&models.Commission{}).Order("created_at DESC")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&commissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": commissions})
}

// Create records a commission for a vendor against an order. The rate is
// snapshotted from the vendor unless supplied, so later rate changes never
// rewrite history.
func (h *CommissionHandler) Create(c *gin.Context) {
	var request struct {
		VendorID  string           `json:"vendor_id" binding:"required"`
		OrderID   string           `json:"order_id" binding:"required"`
		OrderName string           `json:"order_name"`
		Basis     decimal.Decimal  `json:"basis" binding:"required"`
		Rate      *decimal.Decimal `json:"rate"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", request.VendorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	rate := vendor.CommissionRate
	if request.Rate != nil {
		rate = *request.Rate
	}

	commission := models.Commission{
		VendorID:  vendor.ID,
		OrderID:   request.OrderID,
		OrderName: request.OrderName,
		Basis:     request.Basis,
		Rate:      rate,
		Amount:    models.ComputeCommission(request.Basis, rate),
		Status:    models.CommissionStatusPending,
	}

	if err := h.db.Create(&commission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create commission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": commission})
}

func (h *CommissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var commission models.Commission
	if err := h.db.First(&commission, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commission"})
		return
	}

	if commission.Status != models.CommissionStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending commissions can be deleted"})
		return
	}

	if err := h.db.Delete(&commission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete commission"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
