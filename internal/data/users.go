package data

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/domain"
	"github.com/spec-kit/requisition-service/pkg/util"
)

// Users returns all user records.
func (m *Manager) Users(ctx context.Context) []domain.User {
	var users []domain.User
	m.loadCollection(ctx, KeyUsers, &users)
	return users
}

// UserByID returns the user with the given id.
func (m *Manager) UserByID(ctx context.Context, id string) (*domain.User, bool) {
	for _, user := range m.Users(ctx) {
		if user.ID == id {
			u := user
			return &u, true
		}
	}
	return nil, false
}

// UserByUsername returns the user matching the normalized username.
func (m *Manager) UserByUsername(ctx context.Context, username string) (*domain.User, bool) {
	normalized := auth.NormalizeUsername(username)
	for _, user := range m.Users(ctx) {
		if auth.NormalizeUsername(user.Username) == normalized {
			u := user
			return &u, true
		}
	}
	return nil, false
}

// SaveUser inserts or replaces a user. Usernames are unique
// case-insensitively after normalization; a duplicate is a conflict error,
// never a silent overwrite.
func (m *Manager) SaveUser(ctx context.Context, user *domain.User) error {
	user.Username = auth.NormalizeUsername(user.Username)
	if user.Username == "" {
		return util.NewValidationError("username obrigatório", nil)
	}
	if !user.Role.Valid() {
		return util.NewValidationError("perfil inválido", map[string]any{"role": string(user.Role)})
	}

	users := m.Users(ctx)
	for _, existing := range users {
		if existing.ID != user.ID && auth.NormalizeUsername(existing.Username) == user.Username {
			return util.NewConflict("username já cadastrado", map[string]any{"username": user.Username})
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
		users = append(users, *user)
	} else {
		replaced := false
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = *user
				replaced = true
				break
			}
		}
		if !replaced {
			users = append(users, *user)
		}
	}

	m.saveCollection(ctx, KeyUsers, users)
	return nil
}

// DeleteUser removes the user with the given id.
func (m *Manager) DeleteUser(ctx context.Context, id string) bool {
	users := m.Users(ctx)
	for i := range users {
		if users[i].ID == id {
			users = append(users[:i], users[i+1:]...)
			m.saveCollection(ctx, KeyUsers, users)
			return true
		}
	}
	return false
}
