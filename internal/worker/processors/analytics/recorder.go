package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/logger"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PageView is one event row ready to persist.
type PageView struct {
	EventType  string
	Path       string
	Referrer   string
	VisitorID  string
	UserAgent  string
	OccurredAt time.Time
}

// Recorder writes analytics events straight through database/sql; the event
// stream is too chatty to be worth an ORM round trip per row.
type Recorder struct {
	db     *sql.DB
	logger *logger.Logger
}

func NewRecorder(db *sql.DB, logger *logger.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: logger,
	}
}

// Open connects the raw database handle the recorder writes through.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func (r *Recorder) Record(view PageView) error {
	occurred := view.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO page_views (id, event_type, path, referrer, visitor_id, user_agent, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(),
		view.EventType,
		view.Path,
		view.Referrer,
		view.VisitorID,
		view.UserAgent,
		occurred,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page view: %w", err)
	}

	r.logger.Debug("Recorded %s event for %s", view.EventType, view.Path)
	return nil
}
