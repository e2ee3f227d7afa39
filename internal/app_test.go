package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"vcheck/internal/controllers"
	"vcheck/internal/models"
	"vcheck/internal/structures"
	"vcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestHandler(t *testing.T, statuses []models.ChannelStatus) (http.Handler, *testutil.MockLogger) {
	t.Helper()
	conf := &structures.Config{}
	logger := &testutil.MockLogger{}
	ac, _ := routeTestController(conf)
	health := controllers.NewHealthController(&testutil.MockIngestion{Statuses: statuses})
	return NewHandler(health, conf, logger, InitRoutes(ac, conf, logger), testutil.NewMockMetrics()), logger
}

func TestNewHandler_ServesHealthAndAPI(t *testing.T) {
	h, logger := newTestHandler(t, []models.ChannelStatus{{Name: models.ChannelMinor, Running: true}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update_for/1.0.0", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	assert.Len(t, logger.Entries("info"), 2)
}

func TestNewHandler_HealthReflectsFailedChannel(t *testing.T) {
	h, _ := newTestHandler(t, []models.ChannelStatus{{Name: models.ChannelPeriodic, Failed: true}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNewHandler_MetricsDisabled(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
