package data

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/auth"
)

// MigratePasswords converts any user record still holding a plaintext
// password into the salted-hash form and drops the plaintext field.
// Idempotent: a record with a hash and no plaintext is left alone.
func (m *Manager) MigratePasswords(ctx context.Context) error {
	users := m.Users(ctx)

	migrated := 0
	for i := range users {
		if users[i].Password == "" {
			continue
		}
		hash, err := m.hasher.HashPassword(users[i].Password, auth.NormalizeUsername(users[i].Username))
		if err != nil {
			return err
		}
		users[i].PasswordHash = hash
		users[i].Password = ""
		migrated++
	}

	if migrated > 0 {
		m.saveCollection(ctx, KeyUsers, users)
		m.logger.Info("migrated plaintext passwords", zap.Int("count", migrated))
	}
	return nil
}
