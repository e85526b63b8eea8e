package domain

import "time"

// SessionUser is the ephemeral projection of a User held for the duration
// of a session. It never carries credentials.
type SessionUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Email     string `json:"email,omitempty"`
	TecnicoID string `json:"tecnicoId,omitempty"`
}

// Session is a persisted login session. ExpiresAt is epoch milliseconds.
type Session struct {
	ID        string      `json:"id"`
	User      SessionUser `json:"user"`
	ExpiresAt int64       `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.UnixMilli()
}

// SessionUserFrom projects a User into its session shape.
func SessionUserFrom(u User) SessionUser {
	return SessionUser{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Email:     u.Email,
		TecnicoID: u.TecnicoID,
	}
}
