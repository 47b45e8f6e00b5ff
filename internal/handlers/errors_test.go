package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", fmt.Errorf("%w: rating is required", services.ErrValidation), http.StatusBadRequest, "rating is required"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"permission", services.ErrPermissionDenied, http.StatusForbidden, "You are not allowed to modify this review"},
		{"no reviews", services.ErrNoReviews, http.StatusNotFound, "no reviews found for this company"},
		{"not found", fmt.Errorf("review abc: %w", repository.ErrNotFound), http.StatusNotFound, "Review not found"},
		{"duplicate", repository.ErrDuplicateEmail, http.StatusConflict, "Email already in use"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodPut, "/reviews/abc", nil)

			respondError(ctx, tt.err, "Review")

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
