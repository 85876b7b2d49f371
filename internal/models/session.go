package models

// Session is one identity against the sports portal. A Session is replaced
// wholesale on re-login and never mutated once handed out.
type Session struct {
	// UserID is the chat user this session belongs to
	UserID string

	// SessionID is the portal "sessionid" cookie. Empty for offline sessions.
	SessionID string

	// CSRFToken is the portal "csrftoken" cookie
	CSRFToken string

	// StudentID is the opaque portal student identifier
	StudentID string
}

// IsOffline reports whether the session carries no portal login. Offline
// sessions may browse schedules but cannot check in.
func (s *Session) IsOffline() bool {
	return s.SessionID == ""
}

// Credentials is the persisted form of a Session
type Credentials struct {
	UserID    string `json:"user_id"`
	StudentID string `json:"student_id"`
	SessionID string `json:"session_id"`
	CSRFToken string `json:"csrf_token"`
}

// ToSession builds a Session from the persisted record
func (c *Credentials) ToSession() *Session {
	return &Session{
		UserID:    c.UserID,
		SessionID: c.SessionID,
		CSRFToken: c.CSRFToken,
		StudentID: c.StudentID,
	}
}

// CredentialsFromSession builds the persisted record for a Session
func CredentialsFromSession(s *Session) *Credentials {
	return &Credentials{
		UserID:    s.UserID,
		StudentID: s.StudentID,
		SessionID: s.SessionID,
		CSRFToken: s.CSRFToken,
	}
}
