package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageView is one captured storefront analytics event, either a plain page
// view or an ad-pixel fire.
type PageView struct {
	ID         string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	EventType  string     `json:"event_type" gorm:"not null"`
	Path       string     `json:"path"`
	Referrer   string     `json:"referrer"`
	VisitorID  string     `json:"visitor_id"`
	UserAgent  string     `json:"user_agent"`
	OccurredAt *time.Time `json:"occurred_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

const (
	EventTypePageView = "page_view"
	EventTypePixel    = "pixel"
)

func (p *PageView) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
