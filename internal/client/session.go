package client

import "github.com/matiasroldan/cuchilleria/internal/models"

// Session holds the current credentials explicitly. The token is injected
// into each request by the client; nothing mutates shared default headers.
type Session struct {
	token string
	user  *models.User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetCredentials(token string, user *models.User) {
	s.token = token
	s.user = user
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) User() *models.User {
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.token != ""
}

// Clear drops the credentials. Logout is purely local.
func (s *Session) Clear() {
	s.token = ""
	s.user = nil
}
