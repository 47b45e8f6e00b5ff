package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)

	r := gin.New()
	r.POST("/login", rl.Handler(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))

	// Buckets are per client.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("stale")
	rl.getLimiter("fresh")

	rl.visitors["stale"].lastSeen = time.Now().Add(-time.Hour)
	rl.Cleanup()

	assert.NotContains(t, rl.visitors, "stale")
	assert.Contains(t, rl.visitors, "fresh")
}
