package handlers

import (
	"net/http"
	"time"

	"backoffice/internal/logger"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewInvoiceHandler(db *gorm.DB, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		db:     db,
		logger: logger,
	}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var invoices []models.Invoice

	query := h.db.Model(&models.Invoice{}).Order("created_at DESC")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	if err := query.Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

// Generate bills every pending commission for a vendor into one invoice and
// marks those commissions billed, in a single transaction.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	vendorID := c.Param("id")

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", vendorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	var invoice models.Invoice
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var commissions []models.Commission
		if err := tx.Where("vendor_id = ? AND status = ?", vendor.ID, models.CommissionStatusPending).
			Find(&commissions).Error; err != nil {
			return err
		}
		if len(commissions) == 0 {
			return gorm.ErrRecordNotFound
		}

		total := decimal.Zero
		periodStart := commissions[0].CreatedAt
		periodEnd := commissions[0].CreatedAt
		for _, commission := range commissions {
			total = total.Add(commission.Amount)
			if commission.CreatedAt.Before(periodStart) {
				periodStart = commission.CreatedAt
			}
			if commission.CreatedAt.After(periodEnd) {
				periodEnd = commission.CreatedAt
			}
		}

		now := time.Now()
		invoice = models.Invoice{
			VendorID:    vendor.ID,
			Number:      models.NextInvoiceNumber(now),
			PeriodStart: &periodStart,
			PeriodEnd:   &periodEnd,
			Total:       total,
			Status:      models.InvoiceStatusIssued,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		ids := make([]string, len(commissions))
		for i, commission := range commissions {
			ids[i] = commission.ID
		}
		return tx.Model(&models.Commission{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     models.CommissionStatusBilled,
				"invoice_id": invoice.ID,
			}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusConflict, gin.H{"error": "Vendor has no pending commissions"})
			return
		}
		h.logger.Error("Failed to generate invoice for vendor %s: %v", vendor.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoice})
}
