package service

import "jakca/internal/models"

// Session is the signed-in caller as resolved from the access token. It is
// passed explicitly to every operation that acts on behalf of a user.
type Session struct {
	UserID   string
	Nickname string
	Status   string
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// requireActive returns an error unless the session belongs to an active user.
func (s *Session) requireActive() error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	if s.Status != "" && s.Status != models.StatusActive {
		return ErrInactiveUser
	}
	return nil
}

// SessionFor builds the session of a freshly authenticated user.
func SessionFor(user *models.User) Session {
	return Session{UserID: user.ID, Nickname: user.Nickname, Status: user.Status}
}
