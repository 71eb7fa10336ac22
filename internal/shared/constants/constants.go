// Package constants defines shared constant values used across the application.
package constants

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Table names
const (
	TableUsers              = "users"
	TableProjects           = "building_projects"
	TableProjectMembers     = "project_members"
	TableProjectReports     = "project_reports"
	TableProjectUploads     = "project_uploads"
	TableReportUploads      = "report_uploads"
	TableRoles              = "roles"
	TablePermissions        = "permissions"
	TableRolePermissions    = "role_permissions"
	TablePlans              = "plans"
	TablePackages           = "packages"
	TableUsageCounts        = "plan_package_usage_counts"
	TableInvoices           = "invoices"
	TableTransactions       = "transactions"
	TablePaymentHistories   = "payment_histories"
	TableNotificationOutbox = "notification_outbox"
)

// Global user roles. Project-scoped roles live in the roles table.
const (
	UserRoleSuperAdmin = "SUPER_ADMIN"
	UserRoleUser       = "USER"
)

// Project-scoped role names seeded at startup.
const (
	RoleProjectOwner  = "PROJECT_OWNER"
	RoleReportOfficer = "REPORT_OFFICER"
)

// Permission names checked by the permission resolver.
const (
	PermManageProject        = "CAN_MANAGE_PROJECT"
	PermViewProject          = "CAN_VIEW_PROJECT"
	PermManageReport         = "CAN_MANAGE_REPORT"
	PermViewReport           = "CAN_VIEW_REPORT"
	PermExportReport         = "CAN_EXPORT_REPORT"
	PermSubmitUpdate         = "CAN_SUBMIT_UPDATE"
	PermManageUpdate         = "CAN_MANAGE_UPDATE"
	PermManageFiles          = "CAN_MANAGE_FILES"
	PermManageProjectPayment = "CAN_MANAGE_PROJECT_PAYMENT"
	PermViewProjectPayment   = "CAN_VIEW_PROJECT_PAYMENT"
)

// DefaultCurrency is the currency applied when none is specified.
const DefaultCurrency = "NGN"

// Payment providers accepted on the payment initiation endpoint.
const (
	ProviderPaystack = "PAYSTACK"
)

// Runtime environments. The migration manager picks its strategy from these.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)
