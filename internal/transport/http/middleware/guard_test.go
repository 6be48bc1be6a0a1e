package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/auth"
)

type stubResolver struct {
	employees []access.EmployeeRecord
	grants    []access.RoleGrant
	preview   string
	loaded    bool
}

func (s *stubResolver) Resolve(_ context.Context, identity access.Identity) access.Resolution {
	return access.Resolve(identity, s.employees, s.grants, s.preview, s.loaded)
}

func requestAs(user *auth.UserContext) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if user != nil {
		ctx := context.WithValue(r.Context(), ctxKeyUser, *user)
		r = r.WithContext(ctx)
	}
	return r
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	resolver := &stubResolver{loaded: true}
	next, called := okHandler()
	handler := RequirePermission(access.PermSettingsManageRoles, resolver)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if *called {
		t.Fatal("handler ran without authentication")
	}
}

func TestRequirePermissionLoadingIsNotDenied(t *testing.T) {
	resolver := &stubResolver{
		employees: []access.EmployeeRecord{{Email: "pat@co.com", Role: "Labourer"}},
		loaded:    false,
	}
	next, called := okHandler()
	handler := RequirePermission(access.PermSettingsManageRoles, resolver)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u1", Email: "pat@co.com"}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while loading, got %d", rec.Code)
	}
	if *called {
		t.Fatal("handler ran while permissions were loading")
	}
}

func TestRequirePermissionDenialNamesRole(t *testing.T) {
	resolver := &stubResolver{
		employees: []access.EmployeeRecord{{Email: "pat@co.com", Role: "Labourer"}},
		loaded:    true,
	}
	next, called := okHandler()
	handler := RequirePermission(access.PermSettingsManageRoles, resolver)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u1", Email: "pat@co.com"}))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Labourer") {
		t.Fatalf("denial should name the role, got %s", rec.Body.String())
	}
	if *called {
		t.Fatal("handler ran without permission")
	}
}

func TestRequirePermissionAllows(t *testing.T) {
	resolver := &stubResolver{
		employees: []access.EmployeeRecord{{Email: "jane@co.com", Role: "Foreman"}},
		loaded:    true,
	}
	next, called := okHandler()
	handler := RequirePermission(access.PermTimeTrackingApprove, resolver)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u1", Email: "jane@co.com"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !*called {
		t.Fatal("handler should have run")
	}
}

func TestRequirePermissionHonorsPreview(t *testing.T) {
	resolver := &stubResolver{
		employees: []access.EmployeeRecord{{Email: "oscar@co.com", Role: "Admin"}},
		preview:   access.RoleLabourer,
		loaded:    true,
	}
	next, _ := okHandler()
	handler := RequirePermission(access.PermSettingsManageRoles, resolver)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u1", Email: "oscar@co.com"}))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("previewing admin should be denied like the previewed role, got %d", rec.Code)
	}
}

func TestFieldRedirect(t *testing.T) {
	resolver := &stubResolver{
		employees: []access.EmployeeRecord{
			{Email: "pat@co.com", Role: "Labourer"},
			{Email: "jane@co.com", Role: "Foreman"},
		},
		loaded: true,
	}
	next, _ := okHandler()
	handler := FieldRedirect(resolver, "/field")(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u1", Email: "pat@co.com"}))
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("field-only labourer should be redirected, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/field" {
		t.Fatalf("expected redirect to /field, got %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(&auth.UserContext{UserID: "u2", Email: "jane@co.com"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("foreman with dashboard access should pass through, got %d", rec.Code)
	}
}
