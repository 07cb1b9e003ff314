package handlers

import (
	"net/http"
	"strconv"

	"backoffice/internal/logger"
	"backoffice/internal/models"
	"backoffice/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VendorHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewVendorHandler(db *gorm.DB, logger *logger.Logger) *VendorHandler {
	return &VendorHandler{
		db:     db,
		logger: logger,
	}
}

func (h *VendorHandler) List(c *gin.Context) {
	var vendors []models.Vendor

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := h.db.Model(&models.Vendor{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": vendors,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *VendorHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vendor})
}

func (h *VendorHandler) Create(c *gin.Context) {
	var vendor models.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vendor"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": vendor})
}

func (h *VendorHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Save(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vendor})
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.Vendor{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vendor"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Products fetches the vendor's own store catalog, the raw material an
// operator reviews before starting a sync.
func (h *VendorHandler) Products(c *gin.Context) {
	id := c.Param("id")

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendor"})
		return
	}

	if vendor.ShopDomain == "" || vendor.AccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vendor has no store connected"})
		return
	}

	client := shopify.NewClient(vendor.ShopDomain, vendor.AccessToken, h.logger)
	products, err := client.FetchAllProducts()
	if err != nil {
		h.logger.Error("Failed to fetch products for vendor %s: %v", vendor.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products from vendor store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  products,
		"count": len(products),
	})
}
