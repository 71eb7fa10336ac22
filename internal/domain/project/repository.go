package project

import (
	"context"
	"time"
)

type Filter struct {
	Status   *Status
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	GetByUID(ctx context.Context, uid string) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uint) error
	// ListByMember returns projects where userID holds an active membership.
	ListByMember(ctx context.Context, userID uint, filter Filter) ([]*Project, int64, error)
	// ExpireDueSubscriptions bulk-updates active projects whose subscription
	// window has closed. Idempotent; returns the number of rows changed.
	ExpireDueSubscriptions(ctx context.Context, asOf time.Time) (int64, error)
	// FindExpiringBetween returns active projects whose subscription end date
	// falls inside [from, to], for reminder dispatch.
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*Project, error)
}

type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	GetActive(ctx context.Context, projectID, userID uint) (*Member, error)
	IsActiveMember(ctx context.Context, projectID, userID uint) (bool, error)
	ListByProjectID(ctx context.Context, projectID uint) ([]*Member, error)
	Deactivate(ctx context.Context, projectID, userID uint) error
}

type ReportFilter struct {
	ReportType *ReportType
	Page       int
	PageSize   int
}

type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uint) (*Report, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uint) error
	ListByProjectID(ctx context.Context, projectID uint, filter ReportFilter) ([]*Report, int64, error)
}

type UploadRepository interface {
	Create(ctx context.Context, u *Upload) error
	ListByProjectID(ctx context.Context, projectID uint, limit int) ([]*Upload, error)
	DeleteByProjectID(ctx context.Context, projectID uint) error
	// DeleteByProjectIDExcept removes project media not listed in keepIDs,
	// used to sync uploads on project update.
	DeleteByProjectIDExcept(ctx context.Context, projectID uint, keepIDs []uint) error
}

type ReportUploadRepository interface {
	Create(ctx context.Context, u *ReportUpload) error
	ListByReportID(ctx context.Context, reportID uint) ([]*ReportUpload, error)
	DeleteByReportID(ctx context.Context, reportID uint) error
	DeleteByReportIDExcept(ctx context.Context, reportID uint, keepIDs []uint) error
}
