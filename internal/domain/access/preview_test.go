package access

import "testing"

func TestPreviewStoreLifecycle(t *testing.T) {
	store := NewPreviewStore()

	if err := store.Start("u1", "Admin", RoleLabourer); err != nil {
		t.Fatalf("admin preview should start: %v", err)
	}
	if got := store.Active("u1"); got != RoleLabourer {
		t.Fatalf("expected active preview Labourer, got %q", got)
	}
	if got := store.Active("u2"); got != "" {
		t.Fatalf("preview leaked to another user: %q", got)
	}

	store.Stop("u1")
	if got := store.Active("u1"); got != "" {
		t.Fatalf("expected cleared preview, got %q", got)
	}
}

func TestPreviewStoreGating(t *testing.T) {
	store := NewPreviewStore()

	if err := store.Start("u1", "Foreman", RoleAdmin); err == nil {
		t.Fatal("non-admin must not self-elevate via preview")
	}
	if got := store.Active("u1"); got != "" {
		t.Fatalf("rejected preview left state behind: %q", got)
	}

	// Unconfigured identities (no role yet) may preview.
	if err := store.Start("u2", "", RoleForeman); err != nil {
		t.Fatalf("unconfigured owner preview should start: %v", err)
	}
}
