package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	projectUsecases "github.com/oysterbuild/backend/internal/application/project/usecases"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type ReportHandler struct {
	createReportUC *projectUsecases.CreateReportUseCase
	getReportUC    *projectUsecases.GetReportUseCase
	listReportsUC  *projectUsecases.ListReportsUseCase
	updateReportUC *projectUsecases.UpdateReportUseCase
	deleteReportUC *projectUsecases.DeleteReportUseCase
	logger         logger.Interface
}

func NewReportHandler(
	createReportUC *projectUsecases.CreateReportUseCase,
	getReportUC *projectUsecases.GetReportUseCase,
	listReportsUC *projectUsecases.ListReportsUseCase,
	updateReportUC *projectUsecases.UpdateReportUseCase,
	deleteReportUC *projectUsecases.DeleteReportUseCase,
	logger logger.Interface,
) *ReportHandler {
	return &ReportHandler{
		createReportUC: createReportUC,
		getReportUC:    getReportUC,
		listReportsUC:  listReportsUC,
		updateReportUC: updateReportUC,
		deleteReportUC: deleteReportUC,
		logger:         logger,
	}
}

// createReportPayload is the JSON document carried in the report_data
// multipart field.
type createReportPayload struct {
	Title            string   `json:"title"`
	ReportType       string   `json:"report_type"`
	ReportDate       string   `json:"report_date"`
	Description      string   `json:"description"`
	ProgressPercent  float64  `json:"progress_percent"`
	Recommendations  []string `json:"recommendations"`
	ApprovalRequired bool     `json:"approval_required"`
}

// CreateReport files a progress report. Multipart: report_data JSON plus
// optional images files.
func (h *ReportHandler) CreateReport(c *gin.Context) {
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

	raw := c.PostForm("report_data")
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "report_data is required")
		return
	}
	var payload createReportPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid report_data: "+err.Error())
		return
	}

	reportDate, err := parseDate(payload.ReportDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if reportDate == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "report_date is required")
		return
	}

	images, err := formImages(c, "images")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := projectUsecases.CreateReportCommand{
		UserID:           userID,
		ProjectID:        projectID,
		Title:            payload.Title,
		ReportType:       payload.ReportType,
		ReportDate:       *reportDate,
		Description:      payload.Description,
		ProgressPercent:  payload.ProgressPercent,
		Recommendations:  payload.Recommendations,
		ApprovalRequired: payload.ApprovalRequired,
		Images:           images,
	}

	report, err := h.createReportUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to create report", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, report, "report created successfully")
}

// ListReports pages through a project's reports, optionally filtered by
// report_type.
func (h *ReportHandler) ListReports(c *gin.Context) {
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
	cmd := projectUsecases.ListReportsCommand{
		UserID:     userID,
		ProjectID:  projectID,
		ReportType: c.Query("report_type"),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}

	result, err := h.listReportsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to list reports", "error", err, "project_id", projectID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// GetReport returns one report with its attachments.
func (h *ReportHandler) GetReport(c *gin.Context) {
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
	reportID, err := pathID(c, "report_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.getReportUC.Execute(c.Request.Context(), userID, projectID, reportID)
	if err != nil {
		h.logger.Errorw("failed to get report", "error", err, "project_id", projectID, "report_id", reportID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "report retrieved successfully", report)
}

type updateReportPayload struct {
	Title            *string  `json:"title"`
	ReportType       *string  `json:"report_type"`
	ReportDate       string   `json:"report_date"`
	Description      *string  `json:"description"`
	ProgressPercent  *float64 `json:"progress_percent"`
	Recommendations  []string `json:"recommendations"`
	ApprovalRequired *bool    `json:"approval_required"`
	KeepUploadIDs    []uint   `json:"keep_upload_ids"`
}

// UpdateReport applies a partial report edit from the report_data multipart
// field with the same media sync rules as project updates.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
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
	reportID, err := pathID(c, "report_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	raw := c.PostForm("report_data")
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "report_data is required")
		return
	}
	var payload updateReportPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid report_data: "+err.Error())
		return
	}

	reportDate, err := parseDate(payload.ReportDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	images, err := formImages(c, "images")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := projectUsecases.UpdateReportCommand{
		UserID:           userID,
		ProjectID:        projectID,
		ReportID:         reportID,
		Title:            payload.Title,
		ReportType:       payload.ReportType,
		ReportDate:       reportDate,
		Description:      payload.Description,
		ProgressPercent:  payload.ProgressPercent,
		Recommendations:  payload.Recommendations,
		ApprovalRequired: payload.ApprovalRequired,
		KeepUploadIDs:    payload.KeepUploadIDs,
		NewImages:        images,
	}

	report, err := h.updateReportUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to update report", "error", err, "project_id", projectID, "report_id", reportID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "report updated successfully", report)
}

// DeleteReport removes a report and its attachments.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
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
	reportID, err := pathID(c, "report_id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.deleteReportUC.Execute(c.Request.Context(), userID, projectID, reportID); err != nil {
		h.logger.Errorw("failed to delete report", "error", err, "project_id", projectID, "report_id", reportID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "report deleted successfully", nil)
}
