package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/services"
	"github.com/monocle-dev/companies/internal/utils"
)

type CompanyHandler struct {
	companies services.CompanyService
}

func NewCompanyHandler(companies services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

func (h *CompanyHandler) CreateCompany(ctx *gin.Context) {
	var req services.CompanyRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	company, err := h.companies.Create(ctx.Request.Context(), req)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": company,
	})
}

func (h *CompanyHandler) ListCompanies(ctx *gin.Context) {
	companies, err := h.companies.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companies.Get(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req services.UpdateCompanyRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	company, err := h.companies.Update(ctx.Request.Context(), id, req)

	if err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Company updated successfully",
		"company": company,
	})
}

func (h *CompanyHandler) DeleteCompany(ctx *gin.Context) {
	id, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.companies.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, "Company")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
