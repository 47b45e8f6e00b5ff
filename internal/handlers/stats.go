package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/monocle-dev/companies/internal/utils"
)

type StatsHandler struct {
	stats services.StatsService
}

func NewStatsHandler(stats services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) TopRated(ctx *gin.Context) {
	rows, err := h.stats.TopRatedCompanies(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *StatsHandler) AverageRating(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.stats.AverageRating(ctx.Request.Context(), companyID)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) ReviewCounts(ctx *gin.Context) {
	rows, err := h.stats.ReviewCounts(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *StatsHandler) RatingDistribution(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.stats.RatingDistribution(ctx.Request.Context(), companyID)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *StatsHandler) Engagement(ctx *gin.Context) {
	rows, err := h.stats.Engagement(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func (h *StatsHandler) TopAccomplishments(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.stats.TopAccomplishments(ctx.Request.Context(), companyID)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}
