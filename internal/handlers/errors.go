package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/services"
	log "github.com/sirupsen/logrus"
)

// respondError maps service and repository errors onto status codes.
// entity names the record in not-found messages ("Company", "Review").
func respondError(ctx *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to modify this " + strings.ToLower(entity)})
	case errors.Is(err, services.ErrNoReviews):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, repository.ErrDuplicateEmail):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.FullPath(),
		}).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondBindError(ctx *gin.Context, err error) {
	log.Debugf("Failed to bind JSON: %v", err)
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
