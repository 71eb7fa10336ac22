package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeResidential    Type = "Residential"
	TypeCommercial     Type = "Commercial"
	TypeInfrastructure Type = "Infrastructure"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeResidential, TypeCommercial, TypeInfrastructure:
		return true
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusActive    Status = "Active"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// PaymentStatus tracks whether a project's subscription is billable-active.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusActive  PaymentStatus = "Active"
	PaymentStatusExpired PaymentStatus = "Expired"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusActive, PaymentStatusExpired:
		return true
	}
	return false
}

// Project is a building project, the tenant boundary for reports, members,
// media, and subscription billing.
type Project struct {
	id                  uint
	uid                 string
	name                string
	description         string
	projectType         Type
	locationText        string
	locationMap         string
	startDate           *time.Time
	endDate             *time.Time
	budget              float64
	budgetCurrency      string
	status              Status
	paymentStatus       PaymentStatus
	ownerID             uint
	planID              *uint
	floorNumber         int
	inspectionDays      []string
	inspectionWindow    string
	subscriptionEndDate *time.Time
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewProject(name string, projectType Type, ownerID uint) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if len(name) > 225 {
		return nil, fmt.Errorf("project name too long (max 225 characters)")
	}
	if !projectType.IsValid() {
		return nil, fmt.Errorf("invalid project type: %s", projectType)
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("project owner is required")
	}

	now := time.Now().UTC()
	return &Project{
		uid:            uuid.NewString(),
		name:           name,
		projectType:    projectType,
		ownerID:        ownerID,
		budgetCurrency: "NGN",
		status:         StatusDraft,
		paymentStatus:  PaymentStatusPending,
		floorNumber:    1,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructProject(id uint, uid, name, description string, projectType Type,
	locationText, locationMap string, startDate, endDate *time.Time, budget float64,
	budgetCurrency string, status Status, paymentStatus PaymentStatus, ownerID uint,
	planID *uint, floorNumber int, inspectionDays []string, inspectionWindow string,
	subscriptionEndDate *time.Time, version int, createdAt, updatedAt time.Time) (*Project, error) {

	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid project status: %s", status)
	}
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", paymentStatus)
	}

	return &Project{
		id:                  id,
		uid:                 uid,
		name:                name,
		description:         description,
		projectType:         projectType,
		locationText:        locationText,
		locationMap:         locationMap,
		startDate:           startDate,
		endDate:             endDate,
		budget:              budget,
		budgetCurrency:      budgetCurrency,
		status:              status,
		paymentStatus:       paymentStatus,
		ownerID:             ownerID,
		planID:              planID,
		floorNumber:         floorNumber,
		inspectionDays:      inspectionDays,
		inspectionWindow:    inspectionWindow,
		subscriptionEndDate: subscriptionEndDate,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (p *Project) ID() uint                        { return p.id }
func (p *Project) UID() string                     { return p.uid }
func (p *Project) Name() string                    { return p.name }
func (p *Project) Description() string             { return p.description }
func (p *Project) ProjectType() Type               { return p.projectType }
func (p *Project) LocationText() string            { return p.locationText }
func (p *Project) LocationMap() string             { return p.locationMap }
func (p *Project) StartDate() *time.Time           { return p.startDate }
func (p *Project) EndDate() *time.Time             { return p.endDate }
func (p *Project) Budget() float64                 { return p.budget }
func (p *Project) BudgetCurrency() string          { return p.budgetCurrency }
func (p *Project) Status() Status                  { return p.status }
func (p *Project) PaymentStatus() PaymentStatus    { return p.paymentStatus }
func (p *Project) OwnerID() uint                   { return p.ownerID }
func (p *Project) PlanID() *uint                   { return p.planID }
func (p *Project) FloorNumber() int                { return p.floorNumber }
func (p *Project) InspectionDays() []string        { return p.inspectionDays }
func (p *Project) InspectionWindow() string        { return p.inspectionWindow }
func (p *Project) SubscriptionEndDate() *time.Time { return p.subscriptionEndDate }
func (p *Project) Version() int                    { return p.version }
func (p *Project) CreatedAt() time.Time            { return p.createdAt }
func (p *Project) UpdatedAt() time.Time            { return p.updatedAt }

func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsOwner reports whether userID owns the project. Deletion and plan changes
// are owner-only regardless of membership role.
func (p *Project) IsOwner(userID uint) bool {
	return p.ownerID == userID
}

// HasActiveSubscription reports whether quota-gated resources are usable.
func (p *Project) HasActiveSubscription() bool {
	return p.planID != nil && p.paymentStatus == PaymentStatusActive
}

// UpdateDetails applies a partial profile update. Nil pointers leave the
// corresponding fields untouched.
func (p *Project) UpdateDetails(name, description, locationText, locationMap *string,
	startDate, endDate *time.Time, budget *float64, budgetCurrency *string,
	status *Status, floorNumber *int, inspectionDays []string, inspectionWindow *string) error {

	if name != nil {
		if *name == "" {
			return fmt.Errorf("project name cannot be empty")
		}
		p.name = *name
	}
	if description != nil {
		p.description = *description
	}
	if locationText != nil {
		p.locationText = *locationText
	}
	if locationMap != nil {
		p.locationMap = *locationMap
	}
	if startDate != nil {
		p.startDate = startDate
	}
	if endDate != nil {
		p.endDate = endDate
	}
	if p.startDate != nil && p.endDate != nil && p.endDate.Before(*p.startDate) {
		return fmt.Errorf("project end date cannot precede start date")
	}
	if budget != nil {
		if *budget < 0 {
			return fmt.Errorf("project budget cannot be negative")
		}
		p.budget = *budget
	}
	if budgetCurrency != nil {
		p.budgetCurrency = *budgetCurrency
	}
	if status != nil {
		if !status.IsValid() {
			return fmt.Errorf("invalid project status: %s", *status)
		}
		p.status = *status
	}
	if floorNumber != nil {
		p.floorNumber = *floorNumber
	}
	if inspectionDays != nil {
		p.inspectionDays = inspectionDays
	}
	if inspectionWindow != nil {
		p.inspectionWindow = *inspectionWindow
	}
	p.updatedAt = time.Now().UTC()
	p.version++
	return nil
}

// ActivateSubscription points the project at a plan and opens the paid
// window until endDate. Called on free-plan selection and on payment success.
func (p *Project) ActivateSubscription(planID uint, endDate time.Time) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	p.planID = &planID
	p.paymentStatus = PaymentStatusActive
	p.subscriptionEndDate = &endDate
	p.updatedAt = time.Now().UTC()
	p.version++
	return nil
}

// ExpireSubscription closes the paid window. Expiring an already-expired
// project is a no-op.
func (p *Project) ExpireSubscription() {
	if p.paymentStatus == PaymentStatusExpired {
		return
	}
	p.paymentStatus = PaymentStatusExpired
	p.updatedAt = time.Now().UTC()
	p.version++
}
