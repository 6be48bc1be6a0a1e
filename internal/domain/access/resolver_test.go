package access

import "testing"

var testEmployees = []EmployeeRecord{
	{Email: "jane@co.com", Role: "Foreman"},
	{Email: "oscar@co.com", Role: "Admin"},
	{Email: "pat@co.com", Role: "labourer"},
	{Email: "mo@co.com", Role: "Estimator"},
}

func TestResolveUsesTemplateWhenNoGrant(t *testing.T) {
	res := Resolve(Identity{Email: "jane@co.com"}, testEmployees, nil, "", true)
	if res.EffectiveRole != "Foreman" {
		t.Fatalf("expected Foreman, got %q", res.EffectiveRole)
	}
	if !res.Can(PermTimeTrackingApprove) {
		t.Fatal("foreman template should allow time-tracking.approve")
	}
	if res.Can(PermSettingsManageRoles) {
		t.Fatal("foreman template should not allow settings.manage-roles")
	}
}

func TestResolveStoredGrantSupersedesTemplate(t *testing.T) {
	grants := []RoleGrant{
		{ID: "g1", Role: "foreman", Permissions: []string{PermDashboardView}},
	}
	res := Resolve(Identity{Email: "jane@co.com"}, testEmployees, grants, "", true)
	if res.Can(PermTimeTrackingApprove) {
		t.Fatal("stored grant should fully replace the template")
	}
	if !res.Can(PermDashboardView) {
		t.Fatal("stored grant permission missing")
	}
}

func TestResolveCaseInsensitiveRoleMatch(t *testing.T) {
	res := Resolve(Identity{Email: "pat@co.com"}, testEmployees, nil, "", true)
	if !res.Can(PermFieldView) {
		t.Fatal("lowercase stored role should match Labourer template")
	}
	if res.Can(PermDashboardView) {
		t.Fatal("labourer should not see the dashboard")
	}
}

func TestResolveFailOpen(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "no employee record", email: "ghost@co.com"},
		{name: "role without grant or template", email: "mo@co.com"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(Identity{Email: tc.email}, testEmployees, nil, "", true)
			for _, perm := range AllPermissions() {
				if !res.Can(perm) {
					t.Fatalf("fail-open resolution denied %q", perm)
				}
			}
		})
	}
}

func TestResolveEmailMatchIsExact(t *testing.T) {
	// Email join is case-sensitive as stored; a different-cased email does
	// not match and falls into the fail-open branch with no real role.
	res := Resolve(Identity{Email: "JANE@co.com"}, testEmployees, nil, "", true)
	if res.RealRole != "" {
		t.Fatalf("expected no real role, got %q", res.RealRole)
	}
}

func TestResolvePreviewShadowsRealRole(t *testing.T) {
	res := Resolve(Identity{Email: "oscar@co.com"}, testEmployees, nil, RoleLabourer, true)
	if !res.Previewing {
		t.Fatal("expected previewing resolution")
	}
	if res.EffectiveRole != RoleLabourer || res.RealRole != "Admin" {
		t.Fatalf("unexpected roles: effective=%q real=%q", res.EffectiveRole, res.RealRole)
	}
	if res.Can(PermSettingsManageRoles) {
		t.Fatal("labourer preview should drop settings.manage-roles")
	}

	after := Resolve(Identity{Email: "oscar@co.com"}, testEmployees, nil, "", true)
	if !after.Can(PermSettingsManageRoles) {
		t.Fatal("ending preview should restore admin permissions")
	}
}

func TestResolveLoadingFlag(t *testing.T) {
	res := Resolve(Identity{Email: "jane@co.com"}, nil, nil, "", false)
	if !res.Loading {
		t.Fatal("expected loading resolution before collections arrive")
	}
}

func TestCanPreview(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{role: "Admin", want: true},
		{role: "admin", want: true},
		{role: "", want: true},
		{role: "Foreman", want: false},
		{role: "Labourer", want: false},
	}
	for _, tc := range tests {
		if got := CanPreview(tc.role); got != tc.want {
			t.Fatalf("CanPreview(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
