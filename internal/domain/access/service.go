package access

import (
	"context"
	"log/slog"
	"sync"
)

// Service resolves permissions against a cached snapshot of the employee
// and role-grant collections. The snapshot is replaced wholesale on every
// refresh: resolution always sees a consistent pair of collections, never a
// half-updated mix, and reports Loading until the first load completes.
type Service struct {
	store   *Store
	Preview *PreviewStore

	mu        sync.RWMutex
	employees []EmployeeRecord
	grants    []RoleGrant
	loaded    bool
}

func NewService(store *Store) *Service {
	return &Service{store: store, Preview: NewPreviewStore()}
}

// Resolve computes the caller's effective permission set. A failed snapshot
// load degrades to a Loading resolution rather than a denial, so a store
// outage can never surface as a false "access denied".
func (s *Service) Resolve(ctx context.Context, identity Identity) Resolution {
	employees, grants, loaded := s.snapshot(ctx)
	preview := s.Preview.Active(identity.UserID)
	return Resolve(identity, employees, grants, preview, loaded)
}

// Invalidate drops the cached snapshot; the next resolution reloads both
// collections. Called after any write to employees or role grants.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *Service) snapshot(ctx context.Context) ([]EmployeeRecord, []RoleGrant, bool) {
	s.mu.RLock()
	if s.loaded {
		employees, grants := s.employees, s.grants
		s.mu.RUnlock()
		return employees, grants, true
	}
	s.mu.RUnlock()

	employees, err := s.store.ListEmployeeRecords(ctx)
	if err != nil {
		slog.Warn("access snapshot employee load failed", "err", err)
		return nil, nil, false
	}
	grants, err := s.store.ListGrants(ctx)
	if err != nil {
		slog.Warn("access snapshot grant load failed", "err", err)
		return nil, nil, false
	}

	s.mu.Lock()
	s.employees = employees
	s.grants = grants
	s.loaded = true
	s.mu.Unlock()
	return employees, grants, true
}
