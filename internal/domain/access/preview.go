package access

import (
	"errors"
	"sync"
)

// ErrPreviewNotAllowed is returned when a non-admin tries to enter preview.
var ErrPreviewNotAllowed = errors.New("preview requires an admin or unconfigured role")

// PreviewStore holds the ephemeral preview-as-role flag per user. It lives
// only in process memory: a restart clears every preview, which is the
// intended lifecycle. Each key has a single writer, the previewing user's
// own session.
type PreviewStore struct {
	mu    sync.RWMutex
	roles map[string]string
}

func NewPreviewStore() *PreviewStore {
	return &PreviewStore{roles: map[string]string{}}
}

// Start activates a preview of targetRole for userID. The caller's real
// role gates the operation so a non-admin cannot self-elevate.
func (s *PreviewStore) Start(userID, realRole, targetRole string) error {
	if !CanPreview(realRole) {
		return ErrPreviewNotAllowed
	}
	s.mu.Lock()
	s.roles[userID] = targetRole
	s.mu.Unlock()
	return nil
}

// Stop clears any active preview for userID.
func (s *PreviewStore) Stop(userID string) {
	s.mu.Lock()
	delete(s.roles, userID)
	s.mu.Unlock()
}

// Active returns the previewed role for userID, or "" when none is active.
func (s *PreviewStore) Active(userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles[userID]
}
