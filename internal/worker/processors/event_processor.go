package processors

import (
	"time"

	"backoffice/internal/logger"
	"backoffice/internal/models"
	"backoffice/internal/worker/processors/analytics"
)

// Event is one analytics event pulled off the topic.
type Event struct {
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	VisitorID string    `json:"visitor_id"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

type EventProcessor struct {
	logger   *logger.Logger
	recorder *analytics.Recorder
}

func NewEventProcessor(logger *logger.Logger, recorder *analytics.Recorder) *EventProcessor {
	return &EventProcessor{
		logger:   logger,
		recorder: recorder,
	}
}

func (ep *EventProcessor) Process(event Event) error {
	switch event.Type {
	case models.EventTypePageView, models.EventTypePixel:
		return ep.recorder.Record(analytics.PageView{
			EventType:  event.Type,
			Path:       event.Path,
			Referrer:   event.Referrer,
			VisitorID:  event.VisitorID,
			UserAgent:  event.UserAgent,
			OccurredAt: event.Timestamp,
		})
	default:
		ep.logger.Debug("Ignoring event with unknown type %q", event.Type)
		return nil
	}
}
