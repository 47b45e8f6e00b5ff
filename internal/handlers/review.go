package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/monocle-dev/companies/internal/utils"
)

type ReviewHandler struct {
	reviews services.ReviewService
}

func NewReviewHandler(reviews services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) CreateReview(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := utils.GetCurrentPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.ReviewRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	review, err := h.reviews.Create(ctx.Request.Context(), principal, companyID, req)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

func (h *ReviewHandler) ListReviews(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.reviews.ListByCompany(ctx.Request.Context(), companyID)

	if err != nil {
		respondError(ctx, err, "Review")
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) UpdateReview(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := utils.GetCurrentPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.UpdateReviewRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	review, err := h.reviews.Update(ctx.Request.Context(), principal, id, req)

	if err != nil {
		respondError(ctx, err, "Review")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  review,
	})
}

func (h *ReviewHandler) DeleteReview(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviews.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Review")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
