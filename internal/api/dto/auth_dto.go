package dto

import (
	"github.com/spec-kit/requisition-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse standard response for auth endpoints.
type SessionResponse struct {
	User      domain.SessionUser `json:"user"`
	Token     string             `json:"token,omitempty"`
	ExpiresAt int64              `json:"expiresAt"`
	Menu      []string           `json:"menu"`
}
