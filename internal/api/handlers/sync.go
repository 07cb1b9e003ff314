package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/logger"
	"backoffice/internal/models"
	"backoffice/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SyncHandler struct {
	db     *gorm.DB
	logger *logger.Logger
	config *config.Config
}

func NewSyncHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		db:     db,
		logger: logger,
		config: cfg,
	}
}

// Sync reconciles the submitted candidate products against the main store
// and streams one report line per product as it is processed. The response
// is plain text delivered incrementally; a long session is observable while
// it runs.
func (h *SyncHandler) Sync(c *gin.Context) {
	id := c.Param("id")

	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.String(http.StatusNotFound, "Sync aborted: vendor %s not found\n", id)
			return
		}
		c.String(http.StatusInternalServerError, "Sync aborted: failed to resolve vendor: %v\n", err)
		return
	}

	var request struct {
		Products []shopify.Candidate `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.String(http.StatusBadRequest, "Sync aborted: invalid request body: %v\n", err)
		return
	}

	client := shopify.NewClient(h.config.ShopifyShop, h.config.ShopifyAccessToken, h.logger)
	syncer := shopify.NewSyncer(client, h.logger)
	session := syncer.Sync(vendor.Name, request.Products)
	lines := session.Lines()

	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		line, ok := <-lines
		if !ok {
			return false
		}
		fmt.Fprintln(w, line)
		return true
	})

	// The client may have disconnected mid-session; drain what it never
	// read so the terminal outcome is observed either way.
	for range lines {
	}

	if session.Completed() {
		now := time.Now()
		vendor.LastSync = &now
		h.db.Save(&vendor)
	}
}
