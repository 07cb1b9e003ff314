package handlers

import (
	"net/http"

	"backoffice/internal/logger"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewSettingHandler(db *gorm.DB, logger *logger.Logger) *SettingHandler {
	return &SettingHandler{
		db:     db,
		logger: logger,
	}
}

func (h *SettingHandler) List(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.Order("key").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")

	var setting models.Setting
	if err := h.db.First(&setting, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": setting})
}

// Upsert creates or replaces the value under a key.
func (h *SettingHandler) Upsert(c *gin.Context) {
	key := c.Param("key")

	var request struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var setting models.Setting
	err := h.db.First(&setting, "key = ?", key).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		setting = models.Setting{Key: key, Value: request.Value}
		err = h.db.Create(&setting).Error
	case err == nil:
		setting.Value = request.Value
		err = h.db.Save(&setting).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": setting})
}

func (h *SettingHandler) Delete(c *gin.Context) {
	key := c.Param("key")

	if err := h.db.Delete(&models.Setting{}, "key = ?", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete setting"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
