package mappers

import (
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
)

func ProjectToModel(p *project.Project) *models.ProjectModel {
	return &models.ProjectModel{
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
		InspectionDays:      models.StringSlice(p.InspectionDays()),
		InspectionWindow:    p.InspectionWindow(),
		SubscriptionEndDate: p.SubscriptionEndDate(),
		Version:             p.Version(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func ProjectToDomain(model *models.ProjectModel) (*project.Project, error) {
	return project.ReconstructProject(
		model.ID, model.UID, model.Name, model.Description,
		project.Type(model.ProjectType), model.LocationText, model.LocationMap,
		model.StartDate, model.EndDate, model.Budget, model.BudgetCurrency,
		project.Status(model.Status), project.PaymentStatus(model.PaymentStatus),
		model.OwnerID, model.PlanID, model.FloorNumber,
		[]string(model.InspectionDays), model.InspectionWindow,
		model.SubscriptionEndDate, model.Version, model.CreatedAt, model.UpdatedAt,
	)
}

func MemberToModel(m *project.Member) *models.ProjectMemberModel {
	return &models.ProjectMemberModel{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		RoleID:    m.RoleID,
		IsActive:  m.IsActive,
		JoinedAt:  m.JoinedAt,
	}
}

func MemberToDomain(model *models.ProjectMemberModel) *project.Member {
	return &project.Member{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		UserID:    model.UserID,
		RoleID:    model.RoleID,
		IsActive:  model.IsActive,
		JoinedAt:  model.JoinedAt,
	}
}

func ReportToModel(r *project.Report) *models.ProjectReportModel {
	return &models.ProjectReportModel{
		ID:               r.ID(),
		ProjectID:        r.ProjectID(),
		Title:            r.Title(),
		ReportType:       string(r.ReportType()),
		ReportDate:       r.ReportDate(),
		Description:      r.Description(),
		ProgressPercent:  r.ProgressPercent(),
		Recommendations:  models.StringSlice(r.Recommendations()),
		ApprovalRequired: r.ApprovalRequired(),
		Approved:         r.Approved(),
		SubmittedBy:      r.SubmittedBy(),
		Version:          r.Version(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func ReportToDomain(model *models.ProjectReportModel) (*project.Report, error) {
	return project.ReconstructReport(
		model.ID, model.ProjectID, model.Title, project.ReportType(model.ReportType),
		model.ReportDate, model.Description, model.ProgressPercent,
		[]string(model.Recommendations), model.ApprovalRequired, model.Approved,
		model.SubmittedBy, model.Version, model.CreatedAt, model.UpdatedAt,
	)
}

func ProjectUploadToModel(u *project.Upload) *models.ProjectUploadModel {
	return &models.ProjectUploadModel{
		ID:         u.ID,
		ProjectID:  u.ProjectID,
		FileURL:    u.FileURL,
		FileType:   u.FileType,
		UploadedAt: u.UploadedAt,
	}
}

func ProjectUploadToDomain(model *models.ProjectUploadModel) *project.Upload {
	return &project.Upload{
		ID:         model.ID,
		ProjectID:  model.ProjectID,
		FileURL:    model.FileURL,
		FileType:   model.FileType,
		UploadedAt: model.UploadedAt,
	}
}

func ReportUploadToModel(u *project.ReportUpload) *models.ReportUploadModel {
	return &models.ReportUploadModel{
		ID:         u.ID,
		ReportID:   u.ReportID,
		FileURL:    u.FileURL,
		FileType:   u.FileType,
		UploadedAt: u.UploadedAt,
	}
}

func ReportUploadToDomain(model *models.ReportUploadModel) *project.ReportUpload {
	return &project.ReportUpload{
		ID:         model.ID,
		ReportID:   model.ReportID,
		FileURL:    model.FileURL,
		FileType:   model.FileType,
		UploadedAt: model.UploadedAt,
	}
}
