package access

import "strings"

// Permission keys are "<module>.<action>". The universe is fixed by the
// module registry below; persisted role grants may only subset it.
const (
	PermDashboardView = "dashboard.view"

	PermProjectsView = "projects.view"
	PermProjectsEdit = "projects.edit"

	PermEmployeesView = "employees.view"
	PermEmployeesEdit = "employees.edit"

	PermEquipmentView = "equipment.view"
	PermEquipmentEdit = "equipment.edit"

	PermVendorsView = "vendors.view"
	PermVendorsEdit = "vendors.edit"

	PermTimeTrackingView    = "time-tracking.view"
	PermTimeTrackingEdit    = "time-tracking.edit"
	PermTimeTrackingApprove = "time-tracking.approve"
	PermTimeTrackingExport  = "time-tracking.export"

	PermDispatchView = "dispatch.view"
	PermDispatchEdit = "dispatch.edit"

	PermSiteReportsView = "site-reports.view"
	PermSiteReportsEdit = "site-reports.edit"

	PermFLHAView = "flha.view"
	PermFLHAEdit = "flha.edit"

	PermInvoicesView    = "invoices.view"
	PermInvoicesEdit    = "invoices.edit"
	PermInvoicesApprove = "invoices.approve"

	PermSettingsView        = "settings.view"
	PermSettingsManageRoles = "settings.manage-roles"

	PermFieldView = "field.view"
	PermFieldEdit = "field.edit"
)

// Module groups the actions available under one permission prefix, for the
// settings screen that edits role grants.
type Module struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Actions []string `json:"actions"`
}

// Registry is the compiled-in permission universe.
var Registry = []Module{
	{Key: "dashboard", Name: "Dashboard", Actions: []string{"view"}},
	{Key: "projects", Name: "Projects", Actions: []string{"view", "edit"}},
	{Key: "employees", Name: "Employees", Actions: []string{"view", "edit"}},
	{Key: "equipment", Name: "Equipment", Actions: []string{"view", "edit"}},
	{Key: "vendors", Name: "Vendors", Actions: []string{"view", "edit"}},
	{Key: "time-tracking", Name: "Time Tracking", Actions: []string{"view", "edit", "approve", "export"}},
	{Key: "dispatch", Name: "Dispatch", Actions: []string{"view", "edit"}},
	{Key: "site-reports", Name: "Daily Reports", Actions: []string{"view", "edit"}},
	{Key: "flha", Name: "FLHA Forms", Actions: []string{"view", "edit"}},
	{Key: "invoices", Name: "Invoices", Actions: []string{"view", "edit", "approve"}},
	{Key: "settings", Name: "Settings", Actions: []string{"view", "manage-roles"}},
	{Key: "field", Name: "Field Area", Actions: []string{"view", "edit"}},
}

// AllPermissions returns every key in the registry.
func AllPermissions() []string {
	var perms []string
	for _, module := range Registry {
		for _, action := range module.Actions {
			perms = append(perms, module.Key+"."+action)
		}
	}
	return perms
}

// Known role names. Roles are free strings on employee records; these are
// just the ones shipped with templates.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleForeman  = "Foreman"
	RoleLabourer = "Labourer"
)

// Template is a compiled-in default permission set for a role, used when no
// stored grant overrides it.
type Template struct {
	Role        string
	Description string
	Permissions []string
}

var Templates = []Template{
	{
		Role:        RoleAdmin,
		Description: "Full access to every module, including role management.",
		Permissions: AllPermissions(),
	},
	{
		Role:        RoleManager,
		Description: "Runs the office: all operational modules, no role management.",
		Permissions: []string{
			PermDashboardView,
			PermProjectsView, PermProjectsEdit,
			PermEmployeesView, PermEmployeesEdit,
			PermEquipmentView, PermEquipmentEdit,
			PermVendorsView, PermVendorsEdit,
			PermTimeTrackingView, PermTimeTrackingEdit, PermTimeTrackingApprove, PermTimeTrackingExport,
			PermDispatchView, PermDispatchEdit,
			PermSiteReportsView, PermSiteReportsEdit,
			PermFLHAView, PermFLHAEdit,
			PermInvoicesView, PermInvoicesEdit, PermInvoicesApprove,
			PermSettingsView,
		},
	},
	{
		Role:        RoleForeman,
		Description: "Site lead: crews, time approval, daily reports and safety forms.",
		Permissions: []string{
			PermDashboardView,
			PermProjectsView,
			PermEmployeesView,
			PermEquipmentView,
			PermTimeTrackingView, PermTimeTrackingEdit, PermTimeTrackingApprove,
			PermDispatchView,
			PermSiteReportsView, PermSiteReportsEdit,
			PermFLHAView, PermFLHAEdit,
			PermFieldView, PermFieldEdit,
		},
	},
	{
		Role:        RoleLabourer,
		Description: "Field worker: mobile field area, own time and safety forms only.",
		Permissions: []string{
			PermFieldView, PermFieldEdit,
			PermTimeTrackingEdit,
			PermFLHAView, PermFLHAEdit,
		},
	},
}

// TemplateFor returns the compiled-in template whose role matches
// case-insensitively.
func TemplateFor(role string) (Template, bool) {
	key := strings.ToLower(strings.TrimSpace(role))
	for _, tpl := range Templates {
		if strings.ToLower(tpl.Role) == key {
			return tpl, true
		}
	}
	return Template{}, false
}
