package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics("companies")

	r := gin.New()
	r.Use(m.MetricsMiddleware())
	r.GET("/companies/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusNotFound)
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/"+id, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `companies_http_requests_total{method="GET",path="/companies/:id",status="404"} 2`)
	assert.Contains(t, w.Body.String(), "companies_http_requests_in_flight")
}

func TestSetBackendUp(t *testing.T) {
	m := NewMetrics("companies")

	scrape := func() string {
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return w.Body.String()
	}

	m.SetBackendUp(true)
	assert.Contains(t, scrape(), "companies_database_up 1")

	m.SetBackendUp(false)
	assert.Contains(t, scrape(), "companies_database_up 0")
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/boom", func(ctx *gin.Context) {
		ctx.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
