package project

import (
	"fmt"
	"time"
)

type ReportType string

const (
	ReportTypeDaily     ReportType = "Daily"
	ReportTypeWeekly    ReportType = "Weekly"
	ReportTypeMilestone ReportType = "Milestone Completion"
	ReportTypeIncident  ReportType = "Incident"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMilestone, ReportTypeIncident:
		return true
	}
	return false
}

// Report is a progress report submitted against a project. Creation is
// quota-gated by the project's reports package.
type Report struct {
	id               uint
	projectID        uint
	title            string
	reportType       ReportType
	reportDate       time.Time
	description      string
	progressPercent  float64
	recommendations  []string
	approvalRequired bool
	approved         bool
	submittedBy      uint
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewReport(projectID uint, title string, reportType ReportType, reportDate time.Time,
	description string, progressPercent float64, recommendations []string,
	approvalRequired bool, submittedBy uint) (*Report, error) {

	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("report title is required")
	}
	if len(title) > 225 {
		return nil, fmt.Errorf("report title too long (max 225 characters)")
	}
	if !reportType.IsValid() {
		return nil, fmt.Errorf("invalid report type: %s", reportType)
	}
	if progressPercent < 0 || progressPercent > 100 {
		return nil, fmt.Errorf("progress percent must be between 0 and 100")
	}
	if submittedBy == 0 {
		return nil, fmt.Errorf("report submitter is required")
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	now := time.Now().UTC()
	return &Report{
		projectID:        projectID,
		title:            title,
		reportType:       reportType,
		reportDate:       reportDate,
		description:      description,
		progressPercent:  progressPercent,
		recommendations:  recommendations,
		approvalRequired: approvalRequired,
		submittedBy:      submittedBy,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructReport(id, projectID uint, title string, reportType ReportType,
	reportDate time.Time, description string, progressPercent float64,
	recommendations []string, approvalRequired, approved bool, submittedBy uint,
	version int, createdAt, updatedAt time.Time) (*Report, error) {

	if id == 0 {
		return nil, fmt.Errorf("report ID cannot be zero")
	}
	if !reportType.IsValid() {
		return nil, fmt.Errorf("invalid report type: %s", reportType)
	}

	return &Report{
		id:               id,
		projectID:        projectID,
		title:            title,
		reportType:       reportType,
		reportDate:       reportDate,
		description:      description,
		progressPercent:  progressPercent,
		recommendations:  recommendations,
		approvalRequired: approvalRequired,
		approved:         approved,
		submittedBy:      submittedBy,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *Report) ID() uint                  { return r.id }
func (r *Report) ProjectID() uint           { return r.projectID }
func (r *Report) Title() string             { return r.title }
func (r *Report) ReportType() ReportType    { return r.reportType }
func (r *Report) ReportDate() time.Time     { return r.reportDate }
func (r *Report) Description() string       { return r.description }
func (r *Report) ProgressPercent() float64  { return r.progressPercent }
func (r *Report) Recommendations() []string { return r.recommendations }
func (r *Report) ApprovalRequired() bool    { return r.approvalRequired }
func (r *Report) Approved() bool            { return r.approved }
func (r *Report) SubmittedBy() uint         { return r.submittedBy }
func (r *Report) Version() int              { return r.version }
func (r *Report) CreatedAt() time.Time      { return r.createdAt }
func (r *Report) UpdatedAt() time.Time      { return r.updatedAt }

func (r *Report) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("report ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("report ID cannot be zero")
	}
	r.id = id
	return nil
}

// Update applies a partial edit. Nil pointers leave fields untouched.
func (r *Report) Update(title, description *string, reportType *ReportType,
	reportDate *time.Time, progressPercent *float64, recommendations []string) error {

	if title != nil {
		if *title == "" {
			return fmt.Errorf("report title cannot be empty")
		}
		r.title = *title
	}
	if description != nil {
		r.description = *description
	}
	if reportType != nil {
		if !reportType.IsValid() {
			return fmt.Errorf("invalid report type: %s", *reportType)
		}
		r.reportType = *reportType
	}
	if reportDate != nil {
		r.reportDate = *reportDate
	}
	if progressPercent != nil {
		if *progressPercent < 0 || *progressPercent > 100 {
			return fmt.Errorf("progress percent must be between 0 and 100")
		}
		r.progressPercent = *progressPercent
	}
	if recommendations != nil {
		r.recommendations = recommendations
	}
	r.updatedAt = time.Now().UTC()
	r.version++
	return nil
}

// Approve marks an approval-required report accepted.
func (r *Report) Approve() error {
	if !r.approvalRequired {
		return fmt.Errorf("report does not require approval")
	}
	r.approved = true
	r.updatedAt = time.Now().UTC()
	r.version++
	return nil
}
