package identity // import "github.com/bookgrove/bookgrove/identity"

import (
	"sync"

	"github.com/bookgrove/bookgrove/model"
)

// Provider supplies the current user identity, or nil when anonymous,
// and notifies on change.
type Provider interface {
	Current() *model.User
	OnChange(fn func(*model.User))
}

// Session is a Provider scoped to one viewer session.
type Session struct {
	mu        sync.RWMutex
	user      *model.User
	callbacks []func(*model.User)
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) OnChange(fn func(*model.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// Set replaces the session identity. Callbacks fire only when the
// identity actually changes (sign-in, sign-out, user switch).
func (s *Session) Set(user *model.User) {
	s.mu.Lock()
	prev := s.user
	s.user = user
	callbacks := s.callbacks
	s.mu.Unlock()

	if sameUser(prev, user) {
		return
	}
	for _, fn := range callbacks {
		fn(user)
	}
}

func sameUser(a, b *model.User) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
