package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/monocle-dev/companies/internal/utils"
)

type AccomplishmentHandler struct {
	accomplishments services.AccomplishmentService
}

func NewAccomplishmentHandler(accomplishments services.AccomplishmentService) *AccomplishmentHandler {
	return &AccomplishmentHandler{accomplishments: accomplishments}
}

func (h *AccomplishmentHandler) CreateAccomplishment(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req services.AccomplishmentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	accomplishment, err := h.accomplishments.Create(ctx.Request.Context(), companyID, req)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":        "Accomplishment created successfully",
		"accomplishment": accomplishment,
	})
}

func (h *AccomplishmentHandler) ListAccomplishments(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accomplishments, err := h.accomplishments.ListByCompany(ctx.Request.Context(), companyID)

	if err != nil {
		respondError(ctx, err, "Accomplishment")
		return
	}

	ctx.JSON(http.StatusOK, accomplishments)
}

func (h *AccomplishmentHandler) UpdateAccomplishment(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req services.UpdateAccomplishmentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	accomplishment, err := h.accomplishments.Update(ctx.Request.Context(), id, req)

	if err != nil {
		respondError(ctx, err, "Accomplishment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":        "Accomplishment updated successfully",
		"accomplishment": accomplishment,
	})
}

func (h *AccomplishmentHandler) DeleteAccomplishment(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accomplishments.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Accomplishment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Accomplishment deleted successfully"})
}
