package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func routerForTest(secret string) http.Handler {
	conf := testConfig()
	conf.AuthSecret = secret
	a := App{Config: conf}
	return a.New()
}

func TestHealthCheckHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	routerForTest("test-secret").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := routerForTest("test-secret")

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/process-case"},
		{http.MethodPost, "/api/v1/process-case-async"},
		{http.MethodGet, "/api/v1/find-similar"},
		{http.MethodPost, "/api/v1/report/latest"},
		{http.MethodGet, "/api/v1/settings/theft"},
		{http.MethodPut, "/api/v1/settings/theft"},
		{http.MethodDelete, "/api/v1/settings/theft"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rr := httptest.NewRecorder()
	routerForTest("test-secret").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsRouteExposed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	routerForTest("test-secret").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
