package billing

import (
	"fmt"
	"time"
)

// PlanStatus distinguishes free tiers from paid tiers.
type PlanStatus string

const (
	PlanStatusFree PlanStatus = "Free"
	PlanStatusPaid PlanStatus = "Paid"
)

var validPlanCurrencies = map[string]bool{
	"NGN": true,
	"USD": true,
}

// Plan is an immutable subscription tier. Plans are seeded once and only
// toggled active/inactive at runtime.
type Plan struct {
	id          uint
	name        string
	slug        string
	description string
	frequency   Frequency
	planStatus  PlanStatus
	amount      int64
	currency    string
	deactivated bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPlan(name, slug, description string, frequency Frequency, planStatus PlanStatus,
	amount int64, currency string) (*Plan, error) {

	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid plan frequency: %s", frequency)
	}
	if planStatus != PlanStatusFree && planStatus != PlanStatusPaid {
		return nil, fmt.Errorf("invalid plan status: %s", planStatus)
	}
	if amount < 0 {
		return nil, fmt.Errorf("plan amount cannot be negative")
	}
	if planStatus == PlanStatusFree && amount != 0 {
		return nil, fmt.Errorf("free plan cannot have a non-zero amount")
	}
	if !validPlanCurrencies[currency] {
		return nil, fmt.Errorf("invalid currency code: %s", currency)
	}

	now := time.Now().UTC()
	return &Plan{
		name:        name,
		slug:        slug,
		description: description,
		frequency:   frequency,
		planStatus:  planStatus,
		amount:      amount,
		currency:    currency,
		deactivated: false,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPlan(id uint, name, slug, description string, frequency Frequency,
	planStatus PlanStatus, amount int64, currency string, deactivated bool,
	version int, createdAt, updatedAt time.Time) (*Plan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid plan frequency: %s", frequency)
	}
	if planStatus != PlanStatusFree && planStatus != PlanStatusPaid {
		return nil, fmt.Errorf("invalid plan status: %s", planStatus)
	}

	return &Plan{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		frequency:   frequency,
		planStatus:  planStatus,
		amount:      amount,
		currency:    currency,
		deactivated: deactivated,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) Name() string {
	return p.name
}

func (p *Plan) Slug() string {
	return p.slug
}

func (p *Plan) Description() string {
	return p.description
}

func (p *Plan) Frequency() Frequency {
	return p.frequency
}

func (p *Plan) PlanStatus() PlanStatus {
	return p.planStatus
}

func (p *Plan) Amount() int64 {
	return p.amount
}

func (p *Plan) Currency() string {
	return p.currency
}

func (p *Plan) Deactivated() bool {
	return p.deactivated
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (p *Plan) Version() int {
	return p.version
}

// IsFree reports whether selecting this plan requires no payment.
func (p *Plan) IsFree() bool {
	return p.planStatus == PlanStatusFree
}

func (p *Plan) Deactivate() {
	if p.deactivated {
		return
	}
	p.deactivated = true
	p.updatedAt = time.Now().UTC()
	p.version++
}

func (p *Plan) Reactivate() {
	if !p.deactivated {
		return
	}
	p.deactivated = false
	p.updatedAt = time.Now().UTC()
	p.version++
}
