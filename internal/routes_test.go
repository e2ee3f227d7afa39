package internal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"vcheck/internal/controllers"
	"vcheck/internal/services"
	"vcheck/internal/structures"
	"vcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeTestController(conf *structures.Config) (*controllers.ApiController, *testutil.MockIngestion) {
	ingestion := &testutil.MockIngestion{}
	release := &structures.Release{LastVersion: "2.0.0", ChangelogLink: "https://example.com/changes"}
	gate := services.NewGateService(release, testutil.NewMockMetrics())
	return controllers.NewApiController(&testutil.MockLogger{}, ingestion, gate, testutil.NewMockCache(), conf), ingestion
}

func routeTestMux(conf *structures.Config) (*http.ServeMux, *testutil.MockIngestion) {
	ac, ingestion := routeTestController(conf)
	mux := http.NewServeMux()
	for _, r := range InitRoutes(ac, conf, &testutil.MockLogger{}).GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux, ingestion
}

func TestInitRoutes_RegistersTwoRoutes(t *testing.T) {
	ac, _ := routeTestController(&structures.Config{})
	routes := InitRoutes(ac, &structures.Config{}, &testutil.MockLogger{}).GetRoutes()

	require.Len(t, routes, 2)
	urls := []string{routes[0].Url, routes[1].Url}
	assert.Contains(t, urls, "/update_for/{version}")
	assert.Contains(t, urls, "/checkin")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux, _ := routeTestMux(&structures.Config{})

	req := httptest.NewRequest(http.MethodPost, "/update_for/1.0.0", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/checkin", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_UpdateForThroughMux(t *testing.T) {
	mux, ingestion := routeTestMux(&structures.Config{})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update_for/1.9.3", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"need_update"`)
	require.Len(t, ingestion.Minor, 1)
	assert.Equal(t, "1.9.3", ingestion.Minor[0].Version)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update_for/nightly", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInitRoutes_CheckinThroughMux(t *testing.T) {
	mux, ingestion := routeTestMux(&structures.Config{})

	form := url.Values{"Version": {"2.0.0"}}
	req := httptest.NewRequest(http.MethodPost, "/checkin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Len(t, ingestion.Periodic, 1)
}

func TestInitRoutes_RateLimited(t *testing.T) {
	conf := &structures.Config{RateLimit: structures.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}}
	mux, ingestion := routeTestMux(conf)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update_for/2.0.0", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update_for/2.0.0", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Len(t, ingestion.Minor, 1)
}
