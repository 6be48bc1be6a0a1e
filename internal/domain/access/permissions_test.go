package access

import (
	"strings"
	"testing"
)

func TestAllPermissionsShape(t *testing.T) {
	seen := map[string]bool{}
	for _, perm := range AllPermissions() {
		parts := strings.Split(perm, ".")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			t.Fatalf("permission %q is not <module>.<action>", perm)
		}
		if seen[perm] {
			t.Fatalf("duplicate permission %q", perm)
		}
		seen[perm] = true
	}
}

func TestTemplatesOnlyUseRegisteredPermissions(t *testing.T) {
	universe := map[string]bool{}
	for _, perm := range AllPermissions() {
		universe[perm] = true
	}
	for _, tpl := range Templates {
		for _, perm := range tpl.Permissions {
			if !universe[perm] {
				t.Fatalf("template %s references unknown permission %q", tpl.Role, perm)
			}
		}
	}
}

func TestAdminTemplateCoversUniverse(t *testing.T) {
	tpl, ok := TemplateFor("Admin")
	if !ok {
		t.Fatal("missing Admin template")
	}
	if len(tpl.Permissions) != len(AllPermissions()) {
		t.Fatalf("admin template has %d permissions, universe has %d",
			len(tpl.Permissions), len(AllPermissions()))
	}
}

func TestTemplateForCaseInsensitive(t *testing.T) {
	lower, ok := TemplateFor("labourer")
	if !ok {
		t.Fatal("lowercase lookup failed")
	}
	upper, ok := TemplateFor("Labourer")
	if !ok {
		t.Fatal("canonical lookup failed")
	}
	if lower.Role != upper.Role {
		t.Fatalf("lookups disagree: %q vs %q", lower.Role, upper.Role)
	}
	if _, ok := TemplateFor("Welder"); ok {
		t.Fatal("unknown role should not resolve to a template")
	}
}

func TestLabourerTemplateIsFieldOnly(t *testing.T) {
	tpl, _ := TemplateFor(RoleLabourer)
	perms := map[string]bool{}
	for _, perm := range tpl.Permissions {
		perms[perm] = true
	}
	if !perms[PermFieldView] {
		t.Fatal("labourer must reach the field area")
	}
	if perms[PermDashboardView] {
		t.Fatal("labourer must not have dashboard access")
	}
}
