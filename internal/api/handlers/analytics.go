package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/logger"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// TrackEvent is the wire shape published to the analytics topic and
// consumed by the worker.
type TrackEvent struct {
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	VisitorID string    `json:"visitor_id"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

type AnalyticsHandler struct {
	db     *gorm.DB
	logger *logger.Logger
	writer *kafka.Writer
}

func NewAnalyticsHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config) *AnalyticsHandler {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers()...),
		Topic:        cfg.AnalyticsTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}

	return &AnalyticsHandler{
		db:     db,
		logger: logger,
		writer: writer,
	}
}

// Track accepts a page-view or pixel event from the storefront script and
// publishes it for the worker to persist. Unauthenticated by design.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var event TrackEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if event.Type != models.EventTypePixel {
		event.Type = models.EventTypePageView
	}
	if event.UserAgent == "" {
		event.UserAgent = c.Request.UserAgent()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode event"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := h.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VisitorID),
		Value: payload,
	}); err != nil {
		h.logger.Error("Failed to publish analytics event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Event recorded"})
}

// PageViews reports per-path view counts from the persisted events.
func (h *AnalyticsHandler) PageViews(c *gin.Context) {
	type row struct {
		Path  string `json:"path"`
		Count int64  `json:"count"`
	}

	var rows []row
	query := h.db.Model(&models.PageView{}).
		Select("path, COUNT(*) AS count").
		Where("event_type = ?", models.EventTypePageView).
		Group("path").
		Order("count DESC")

	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch page views"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// Close flushes the kafka writer on shutdown.
func (h *AnalyticsHandler) Close() error {
	return h.writer.Close()
}
