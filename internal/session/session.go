package session

import "github.com/dmorozov/vaccine_scheduler/internal/model"

// Identity is the account currently driving the CLI.
type Identity struct {
	Username string
	Role     model.Role
}

// Session holds at most one logged-in identity. The CLI loop is serial,
// so no locking is needed.
type Session struct {
	identity *Identity
}

func New() *Session {
	return &Session{}
}

// LogIn replaces the active identity. Callers must check LoggedIn first;
// login handlers reject when any identity is already active.
func (s *Session) LogIn(username string, role model.Role) {
	s.identity = &Identity{Username: username, Role: role}
}

// LogOut clears the active identity and reports whether one was set.
func (s *Session) LogOut() bool {
	if s.identity == nil {
		return false
	}
	s.identity = nil
	return true
}

// Identity returns the active identity, if any.
func (s *Session) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// LoggedIn reports whether any identity is active.
func (s *Session) LoggedIn() bool {
	return s.identity != nil
}
