package data

import (
	"context"

	"github.com/spec-kit/requisition-service/internal/domain"
)

// Settings returns the single settings record, defaults when absent.
func (m *Manager) Settings(ctx context.Context) domain.Settings {
	settings := domain.DefaultSettings()
	m.loadCollection(ctx, KeySettings, &settings)
	return settings
}

// SaveSettings replaces the settings record.
func (m *Manager) SaveSettings(ctx context.Context, settings domain.Settings) {
	m.saveCollection(ctx, KeySettings, settings)
}
