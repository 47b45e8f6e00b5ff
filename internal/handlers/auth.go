package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/monocle-dev/companies/internal/utils"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req services.RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := h.auth.Register(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req services.LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := h.auth.Login(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	principal, err := utils.GetCurrentPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.auth.Logout(ctx.Request.Context(), principal); err != nil {
		respondError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.auth.Profile(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err, "User")
		return
	}

	ctx.JSON(http.StatusOK, user)
}
