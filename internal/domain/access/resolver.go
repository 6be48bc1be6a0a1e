package access

import "strings"

// Identity is the authenticated caller as reported by the auth layer.
type Identity struct {
	UserID string
	Email  string
}

// EmployeeRecord is the slice of an employee the resolver needs: the email
// join key and the assigned role.
type EmployeeRecord struct {
	Email string
	Role  string
}

// RoleGrant is a persisted per-role permission set. When one exists for a
// role it supersedes the compiled-in template for that role.
type RoleGrant struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

// Resolution is the outcome of resolving an identity against a snapshot of
// the employee and role-grant collections. It is recomputed fresh from the
// collections on every call; nothing is patched incrementally.
type Resolution struct {
	EffectiveRole string
	RealRole      string
	Previewing    bool
	Loading       bool

	perms    map[string]struct{}
	allowAll bool
}

// Can reports whether the resolved permission set contains perm exactly.
// While Loading is true callers must not trust a false result.
func (r Resolution) Can(perm string) bool {
	if r.allowAll {
		return true
	}
	_, ok := r.perms[perm]
	return ok
}

// Permissions returns the resolved set for display, expanding the fail-open
// case to the full universe.
func (r Resolution) Permissions() []string {
	if r.allowAll {
		return AllPermissions()
	}
	perms := make([]string, 0, len(r.perms))
	for _, key := range AllPermissions() {
		if _, ok := r.perms[key]; ok {
			perms = append(perms, key)
		}
	}
	return perms
}

// Resolve computes the effective role and permission set for identity.
//
// Resolution order: a live preview role shadows the caller's real role; the
// real role comes from the employee record whose email equals the identity's
// email (exact match, as stored). The permission set is the stored grant for
// the effective role when one exists, else the compiled-in template, else
// the fail-open full universe.
func Resolve(identity Identity, employees []EmployeeRecord, grants []RoleGrant, previewRole string, loaded bool) Resolution {
	res := Resolution{Loading: !loaded}

	for _, emp := range employees {
		if emp.Email == identity.Email {
			res.RealRole = emp.Role
			break
		}
	}

	res.EffectiveRole = res.RealRole
	if previewRole != "" {
		res.EffectiveRole = previewRole
		res.Previewing = true
	}

	roleKey := strings.ToLower(strings.TrimSpace(res.EffectiveRole))
	for _, grant := range grants {
		if strings.ToLower(strings.TrimSpace(grant.Role)) == roleKey {
			res.perms = permSet(grant.Permissions)
			return res
		}
	}

	if tpl, ok := TemplateFor(res.EffectiveRole); ok {
		res.perms = permSet(tpl.Permissions)
		return res
	}

	return fullAccess(res)
}

// fullAccess is the single fail-open branch: an identity with no employee
// record, no role, or a role matching neither a grant nor a template gets
// the entire permission universe so a first-run owner is never locked out of
// Settings. A hardened deployment would swap this one function for a
// fail-closed empty set.
func fullAccess(res Resolution) Resolution {
	res.allowAll = true
	return res
}

func permSet(perms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, perm := range perms {
		set[perm] = struct{}{}
	}
	return set
}

// CanPreview reports whether a caller with the given real role may enter
// preview mode: admins, and unconfigured identities with no role yet.
func CanPreview(realRole string) bool {
	if strings.TrimSpace(realRole) == "" {
		return true
	}
	return strings.EqualFold(realRole, RoleAdmin)
}
