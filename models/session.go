package models

import "strings"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Session identifies the user behind a request. It is extracted from the JWT
// by the auth middleware and passed explicitly into every enrollment and
// progress operation, so records are keyed per user rather than per ambient
// "current session".
type Session struct {
	UserID string `json:"userId"` // email, the original's only stable key
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// DisplayName is what goes on certificates: the registered name, or the
// local part of the email when none was given.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if at := strings.Index(s.UserID, "@"); at > 0 {
		return s.UserID[:at]
	}
	return s.UserID
}
