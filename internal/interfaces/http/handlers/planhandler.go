package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *billingUsecases.ListPlansUseCase
	logger      logger.Interface
}

func NewPlanHandler(listPlansUC *billingUsecases.ListPlansUseCase, logger logger.Interface) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		logger:      logger,
	}
}

type PackageResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Tag         string   `json:"tag"`
	Count       *float64 `json:"count"`
	IsUnlimited bool     `json:"is_unlimited"`
}

type PlanResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Frequency   string            `json:"frequency"`
	PlanStatus  string            `json:"plan_status"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Packages    []PackageResponse `json:"packages"`
}

// ListPlans returns the active plan catalog with each plan's packages.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list plans", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		packages := make([]PackageResponse, 0, len(p.Packages))
		for _, pkg := range p.Packages {
			packages = append(packages, PackageResponse{
				ID:          pkg.ID,
				Name:        pkg.Name,
				Tag:         pkg.Tag,
				Count:       pkg.Count,
				IsUnlimited: pkg.IsUnlimited,
			})
		}
		response = append(response, PlanResponse{
			ID:          p.Plan.ID(),
			Name:        p.Plan.Name(),
			Slug:        p.Plan.Slug(),
			Description: p.Plan.Description(),
			Frequency:   string(p.Plan.Frequency()),
			PlanStatus:  string(p.Plan.PlanStatus()),
			Amount:      p.Plan.Amount(),
			Currency:    p.Plan.Currency(),
			Packages:    packages,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "plans retrieved successfully", response)
}
