package billing

import "time"

// UsageCount is a per-(project, package tag) running consumption counter.
// Rows are created lazily on first increment and deleted wholesale when a
// project's plan changes on successful payment.
type UsageCount struct {
	ID         uint
	ProjectID  uint
	PackageTag string
	UsageCount float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
