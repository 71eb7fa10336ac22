package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	projectUsecases "github.com/oysterbuild/backend/internal/application/project/usecases"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type ProjectHandler struct {
	createProjectUC *projectUsecases.CreateProjectUseCase
	getProjectUC    *projectUsecases.GetProjectUseCase
	listProjectsUC  *projectUsecases.ListProjectsUseCase
	updateProjectUC *projectUsecases.UpdateProjectUseCase
	deleteProjectUC *projectUsecases.DeleteProjectUseCase
	upgradePlanUC   *projectUsecases.UpgradePlanUseCase
	paymentHistory  *projectUsecases.PaymentHistoryUseCase
	logger          logger.Interface
}

func NewProjectHandler(
	createProjectUC *projectUsecases.CreateProjectUseCase,
	getProjectUC *projectUsecases.GetProjectUseCase,
	listProjectsUC *projectUsecases.ListProjectsUseCase,
	updateProjectUC *projectUsecases.UpdateProjectUseCase,
	deleteProjectUC *projectUsecases.DeleteProjectUseCase,
	upgradePlanUC *projectUsecases.UpgradePlanUseCase,
	paymentHistory *projectUsecases.PaymentHistoryUseCase,
	logger logger.Interface,
) *ProjectHandler {
	return &ProjectHandler{
		createProjectUC: createProjectUC,
		getProjectUC:    getProjectUC,
		listProjectsUC:  listProjectsUC,
		updateProjectUC: updateProjectUC,
		deleteProjectUC: deleteProjectUC,
		upgradePlanUC:   upgradePlanUC,
		paymentHistory:  paymentHistory,
		logger:          logger,
	}
}

// createProjectPayload is the JSON document carried in the project_data
// multipart field. Dates accept RFC3339 or bare YYYY-MM-DD.
type createProjectPayload struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ProjectType      string   `json:"project_type"`
	LocationText     string   `json:"location_text"`
	LocationMap      string   `json:"location_map"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Budget           float64  `json:"budget"`
	BudgetCurrency   string   `json:"budget_currency"`
	FloorNumber      int      `json:"floor_number"`
	PlanID           uint     `json:"plan_id"`
	Months           int      `json:"months"`
	InspectionDays   []string `json:"preferred_inspection_days"`
	InspectionWindow string   `json:"preferred_inspection_window"`
}

// CreateProject sets up a project from a multipart form: the project_data
// field holds the JSON payload, the images field holds the site photos.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	raw := c.PostForm("project_data")
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "project_data is required")
		return
	}
	var payload createProjectPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid project_data: "+err.Error())
		return
	}

	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate(payload.EndDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	images, err := formImages(c, "images")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := projectUsecases.CreateProjectCommand{
		OwnerID:          userID,
		Name:             payload.Name,
		Description:      payload.Description,
		ProjectType:      payload.ProjectType,
		LocationText:     payload.LocationText,
		LocationMap:      payload.LocationMap,
		StartDate:        startDate,
		EndDate:          endDate,
		Budget:           payload.Budget,
		BudgetCurrency:   payload.BudgetCurrency,
		FloorNumber:      payload.FloorNumber,
		InspectionDays:   payload.InspectionDays,
		InspectionWindow: payload.InspectionWindow,
		PlanID:           payload.PlanID,
		Months:           payload.Months,
		Images:           images,
	}

	result, err := h.createProjectUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to create project", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "project created successfully")
}

// ListProjects pages through the caller's projects. Supports a status query
// filter alongside page and page_size.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	p := utils.ParsePagination(c)
	cmd := projectUsecases.ListProjectsCommand{
		UserID:   userID,
		Status:   c.Query("status"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	result, err := h.listProjectsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to list projects", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Projects, result.Total, result.Page, result.PageSize)
}

// GetProjectOverview returns a single project enriched with plan, quota and
// media details.
func (h *ProjectHandler) GetProjectOverview(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.getProjectUC.Execute(c.Request.Context(), userID, projectID)
	if err != nil {
		h.logger.Errorw("failed to get project", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "project retrieved successfully", detail)
}

type updateProjectPayload struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	LocationText     *string  `json:"location_text"`
	LocationMap      *string  `json:"location_map"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Budget           *float64 `json:"budget"`
	BudgetCurrency   *string  `json:"budget_currency"`
	Status           *string  `json:"status"`
	FloorNumber      *int     `json:"floor_number"`
	InspectionDays   []string `json:"preferred_inspection_days"`
	InspectionWindow *string  `json:"preferred_inspection_window"`
	KeepUploadIDs    []uint   `json:"keep_upload_ids"`
}

// UpdateProject applies a partial edit from the project_data multipart field.
// Existing uploads outside keep_upload_ids are dropped and new images files
// are appended.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	raw := c.PostForm("project_data")
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "project_data is required")
		return
	}
	var payload updateProjectPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid project_data: "+err.Error())
		return
	}

	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate(payload.EndDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	images, err := formImages(c, "images")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := projectUsecases.UpdateProjectCommand{
		UserID:           userID,
		ProjectID:        projectID,
		Name:             payload.Name,
		Description:      payload.Description,
		LocationText:     payload.LocationText,
		LocationMap:      payload.LocationMap,
		StartDate:        startDate,
		EndDate:          endDate,
		Budget:           payload.Budget,
		BudgetCurrency:   payload.BudgetCurrency,
		Status:           payload.Status,
		FloorNumber:      payload.FloorNumber,
		InspectionDays:   payload.InspectionDays,
		InspectionWindow: payload.InspectionWindow,
		KeepUploadIDs:    payload.KeepUploadIDs,
		NewImages:        images,
	}

	updated, err := h.updateProjectUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to update project", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "project updated successfully", updated)
}

// DeleteProject removes a project. Owner-only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.deleteProjectUC.Execute(c.Request.Context(), userID, projectID); err != nil {
		h.logger.Errorw("failed to delete project", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "project deleted successfully", nil)
}

// UpgradePlan moves the project onto another plan. The months query value
// sets the billing run length for paid plans, defaulting to one cycle.
func (h *ProjectHandler) UpgradePlan(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	planID, err := pathID(c, "plan_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	months := 1
	if raw := c.Query("months"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			months = parsed
		}
	}

	result, err := h.upgradePlanUC.Execute(c.Request.Context(), projectUsecases.UpgradePlanCommand{
		UserID:    userID,
		ProjectID: projectID,
		PlanID:    planID,
		Months:    months,
	})
	if err != nil {
		h.logger.Errorw("failed to upgrade plan", "error", err, "project_id", projectID, "plan_id", planID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan upgrade initiated", result)
}

// ListPaymentHistory pages through the project's subscription payments.
func (h *ProjectHandler) ListPaymentHistory(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.paymentHistory.List(c.Request.Context(), projectUsecases.ListPaymentHistoryCommand{
		UserID:    userID,
		ProjectID: projectID,
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list payment history", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Payments, result.Total, result.Page, result.PageSize)
}

// GetPaymentHistory returns one subscription payment record.
func (h *ProjectHandler) GetPaymentHistory(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	paymentID, err := pathID(c, "payment_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.paymentHistory.Get(c.Request.Context(), userID, projectID, paymentID)
	if err != nil {
		h.logger.Errorw("failed to get payment record", "error", err, "project_id", projectID, "payment_id", paymentID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment record retrieved successfully", record)
}
