package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the Prometheus exposition of provider.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func newMetricsRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("honeydid_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "honeydid_test"))
	return router, provider
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("Success_RecordRouteAndStatus", func(t *testing.T) {
		router, provider := newMetricsRouter(t)
		router.GET("/v1/document", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"meta": gin.H{}})
		})
		router.POST("/v1/export", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html", []byte(strings.Repeat("x", 5000)))
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/document", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/export", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		body := scrape(t, provider)
		assert.Contains(t, body, "honeydid_test_http_requests_total")
		assert.Contains(t, body, `route="/v1/document"`)
		assert.Contains(t, body, `route="/v1/export"`)
		assert.Contains(t, body, `status_code="200"`)
		assert.Contains(t, body, "honeydid_test_http_request_duration_seconds")
		assert.Contains(t, body, "honeydid_test_http_response_size_bytes")
	})

	t.Run("Success_UnmatchedRouteHasFixedLabel", func(t *testing.T) {
		router, provider := newMetricsRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/some/secret/path", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)

		body := scrape(t, provider)
		assert.Contains(t, body, `route="unmatched"`)
		assert.NotContains(t, body, "/some/secret/path")
	})

	t.Run("Success_ErrorStatus", func(t *testing.T) {
		router, provider := newMetricsRouter(t)
		router.GET("/v1/print", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/print", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		assert.Contains(t, scrape(t, provider), `status_code="500"`)
	})
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/document", expected: "/v1/document"},
		{name: "EmptyPath", input: "", expected: unmatchedRoute},
		{name: "RootPath", input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
