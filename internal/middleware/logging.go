package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request. Server errors are logged at
// error level, client errors at warn.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		status := ctx.Writer.Status()

		entry := log.WithFields(log.Fields{
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": ctx.ClientIP(),
		})

		if len(ctx.Errors) > 0 {
			entry = entry.WithField("errors", ctx.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request served")
		}
	}
}
