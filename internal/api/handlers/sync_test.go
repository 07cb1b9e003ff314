package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/logger"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func syncTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
	CREATE TABLE vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		shop_domain TEXT,
		access_token TEXT,
		commission_rate NUMERIC DEFAULT 0,
		status TEXT DEFAULT 'ACTIVE',
		last_sync DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return db
}

func syncTestRouter(t *testing.T, db *gorm.DB, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSyncHandler(db, logger.New("error"), cfg)
	r.POST("/vendors/:id/sync", h.Sync)
	return r
}

// closeNotifyRecorder adds the http.CloseNotifier method gin's Stream
// requires of the response writer; httptest.ResponseRecorder lacks it.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool)}
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool {
	return c.closed
}

func TestSyncDoesNotStampLastSyncOnAbort(t *testing.T) {
	db := syncTestDB(t)
	vendor := models.Vendor{ID: "v1", Name: "Acme"}
	require.NoError(t, db.Create(&vendor).Error)

	// No main store configured: the catalog fetch fails immediately and
	// the session aborts before any product is processed.
	router := syncTestRouter(t, db, &config.Config{})

	w := newCloseNotifyRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vendors/v1/sync",
		strings.NewReader(`{"products":[{"title":"Widget"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "Sync aborted")

	var got models.Vendor
	require.NoError(t, db.First(&got, "id = ?", "v1").Error)
	assert.Nil(t, got.LastSync, "an aborted session must not count as a sync")
}

func TestSyncUnknownVendor(t *testing.T) {
	db := syncTestDB(t)
	router := syncTestRouter(t, db, &config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/vendors/nope/sync",
		strings.NewReader(`{"products":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "vendor nope not found")
}
