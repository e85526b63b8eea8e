package dto

import "github.com/spec-kit/requisition-service/internal/domain"

// UserRequest payload for account management.
type UserRequest struct {
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	Email     string      `json:"email"`
	Password  string      `json:"password,omitempty"`
	TecnicoID string      `json:"tecnicoId"`
	Disabled  *bool       `json:"disabled"`
}

// UserResponse is the credential-free projection returned by the API.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	Email     string      `json:"email,omitempty"`
	TecnicoID string      `json:"tecnicoId,omitempty"`
	Disabled  bool        `json:"disabled"`
}

// ToResponse strips credentials from a user record.
func ToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Email:     u.Email,
		TecnicoID: u.TecnicoID,
		Disabled:  u.Disabled,
	}
}
