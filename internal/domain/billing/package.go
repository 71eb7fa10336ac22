package billing

// Package tags recognized by the usage meter.
const (
	PackageTagReports     = "reports"
	PackageTagStorage     = "storage"
	PackageTagProjects    = "projects"
	PackageTagTeamMembers = "team_members"
)

// Package is a quota unit attached to a Plan. Count is nil for unlimited
// packages; IsUnlimited takes precedence over Count when both are set.
type Package struct {
	ID          uint
	PlanID      uint
	Name        string
	Tag         string
	Count       *float64
	IsUnlimited bool
}

// Allows reports whether the given usage is still within this package's quota.
func (p *Package) Allows(usage float64) bool {
	if p.IsUnlimited {
		return true
	}
	if p.Count == nil {
		return false
	}
	return usage < *p.Count
}
