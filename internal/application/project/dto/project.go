package dto

import (
	"time"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
)

// ProjectDTO is the full project view returned by get/create operations.
type ProjectDTO struct {
	ID                  uint       `json:"id"`
	UID                 string     `json:"uid"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	ProjectType         string     `json:"project_type"`
	LocationText        string     `json:"location_text,omitempty"`
	LocationMap         string     `json:"location_map,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	Budget              float64    `json:"budget"`
	BudgetCurrency      string     `json:"budget_currency"`
	Status              string     `json:"status"`
	PaymentStatus       string     `json:"payment_status"`
	OwnerID             uint       `json:"owner_id"`
	PlanID              *uint      `json:"plan_id,omitempty"`
	FloorNumber         int        `json:"floor_number"`
	InspectionDays      []string   `json:"preferred_inspection_days,omitempty"`
	InspectionWindow    string     `json:"preferred_inspection_window,omitempty"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ProjectDetailDTO enriches a project with plan, quota and action flags for
// the single-project view.
type ProjectDetailDTO struct {
	ProjectDTO
	Plan             *PlanSummaryDTO `json:"plan,omitempty"`
	RecentReports    []*ReportDTO    `json:"recent_reports"`
	HasReportQuota   bool            `json:"has_report_package"`
	HasReportAction  bool            `json:"has_report_action"`
	HasPaymentAction bool            `json:"has_payment_action"`
	Images           []*UploadDTO    `json:"images"`
}

// ProjectListItemDTO is the listing row: the project plus up to two
// thumbnail URLs.
type ProjectListItemDTO struct {
	ProjectDTO
	Images []string `json:"images"`
}

// PlanSummaryDTO is the compact plan view embedded in project and payment
// responses.
type PlanSummaryDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Frequency string `json:"frequency"`
}

type UploadDTO struct {
	ID         uint      `json:"id"`
	FileURL    string    `json:"file_url"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func ToProjectDTO(p *project.Project) *ProjectDTO {
	if p == nil {
		return nil
	}
	return &ProjectDTO{
		ID:                  p.ID(),
		UID:                 p.UID(),
		Name:                p.Name(),
		Description:         p.Description(),
		ProjectType:         string(p.ProjectType()),
		LocationText:        p.LocationText(),
		LocationMap:         p.LocationMap(),
		StartDate:           p.StartDate(),
		EndDate:             p.EndDate(),
		Budget:              p.Budget(),
		BudgetCurrency:      p.BudgetCurrency(),
		Status:              string(p.Status()),
		PaymentStatus:       string(p.PaymentStatus()),
		OwnerID:             p.OwnerID(),
		PlanID:              p.PlanID(),
		FloorNumber:         p.FloorNumber(),
		InspectionDays:      p.InspectionDays(),
		InspectionWindow:    p.InspectionWindow(),
		SubscriptionEndDate: p.SubscriptionEndDate(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func ToPlanSummaryDTO(plan *billing.Plan) *PlanSummaryDTO {
	if plan == nil {
		return nil
	}
	return &PlanSummaryDTO{
		ID:        plan.ID(),
		Name:      plan.Name(),
		Slug:      plan.Slug(),
		Amount:    plan.Amount(),
		Currency:  plan.Currency(),
		Frequency: string(plan.Frequency()),
	}
}

func ToUploadDTO(u *project.Upload) *UploadDTO {
	if u == nil {
		return nil
	}
	return &UploadDTO{
		ID:         u.ID,
		FileURL:    u.FileURL,
		FileType:   u.FileType,
		UploadedAt: u.UploadedAt,
	}
}

func ToUploadDTOList(uploads []*project.Upload) []*UploadDTO {
	dtos := make([]*UploadDTO, 0, len(uploads))
	for _, u := range uploads {
		if u != nil {
			dtos = append(dtos, ToUploadDTO(u))
		}
	}
	return dtos
}
