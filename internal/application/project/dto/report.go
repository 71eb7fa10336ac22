package dto

import (
	"time"

	"github.com/oysterbuild/backend/internal/domain/project"
)

// ReportDTO is the full report view.
type ReportDTO struct {
	ID               uint      `json:"id"`
	ProjectID        uint      `json:"project_id"`
	Title            string    `json:"title"`
	ReportType       string    `json:"report_type"`
	ReportDate       time.Time `json:"report_date"`
	Description      string    `json:"description,omitempty"`
	ProgressPercent  float64   `json:"progress_percent"`
	Recommendations  []string  `json:"recommendations"`
	ApprovalRequired bool      `json:"approval_required"`
	Approved         bool      `json:"approved"`
	SubmittedBy      uint      `json:"submitted_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ReportDetailDTO adds the attached media to a report view.
type ReportDetailDTO struct {
	ReportDTO
	Media []*ReportUploadDTO `json:"report_media"`
}

// ReportListItemDTO is the listing row: the report plus its first image URL,
// when one exists.
type ReportListItemDTO struct {
	ReportDTO
	Image string `json:"image,omitempty"`
}

type ReportUploadDTO struct {
	ID         uint      `json:"id"`
	FileURL    string    `json:"file_url"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func ToReportDTO(r *project.Report) *ReportDTO {
	if r == nil {
		return nil
	}
	return &ReportDTO{
		ID:               r.ID(),
		ProjectID:        r.ProjectID(),
		Title:            r.Title(),
		ReportType:       string(r.ReportType()),
		ReportDate:       r.ReportDate(),
		Description:      r.Description(),
		ProgressPercent:  r.ProgressPercent(),
		Recommendations:  r.Recommendations(),
		ApprovalRequired: r.ApprovalRequired(),
		Approved:         r.Approved(),
		SubmittedBy:      r.SubmittedBy(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func ToReportDTOList(reports []*project.Report) []*ReportDTO {
	dtos := make([]*ReportDTO, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			dtos = append(dtos, ToReportDTO(r))
		}
	}
	return dtos
}

func ToReportUploadDTO(u *project.ReportUpload) *ReportUploadDTO {
	if u == nil {
		return nil
	}
	return &ReportUploadDTO{
		ID:         u.ID,
		FileURL:    u.FileURL,
		FileType:   u.FileType,
		UploadedAt: u.UploadedAt,
	}
}

func ToReportUploadDTOList(uploads []*project.ReportUpload) []*ReportUploadDTO {
	dtos := make([]*ReportUploadDTO, 0, len(uploads))
	for _, u := range uploads {
		if u != nil {
			dtos = append(dtos, ToReportUploadDTO(u))
		}
	}
	return dtos
}
