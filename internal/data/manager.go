// Package data is the single source of truth for all domain collections.
// Every collection is one JSON document synchronized through the cloud
// client; the manager owns seeding, migration, numbering, search and
// statistics on top of that.
package data

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/cloud"
	"github.com/spec-kit/requisition-service/internal/config"
	"github.com/spec-kit/requisition-service/internal/events"
)

// Collection keys. These strings are part of the persisted contract and
// must remain stable.
const (
	KeyUsers         = "users"
	KeyTechnicians   = "technicians"
	KeySuppliers     = "suppliers"
	KeyParts         = "parts"
	KeySolicitations = "solicitations"
	KeySettings      = "settings"
	KeyRecentParts   = "recent-parts-by-technician"
)

// Manager coordinates reads and writes for every collection.
type Manager struct {
	client     *cloud.Client
	hasher     *auth.Hasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
	seedCfg    config.SeedConfig
}

// NewManager builds the data layer.
func NewManager(client *cloud.Client, hasher *auth.Hasher, dispatcher events.Dispatcher, logger *zap.Logger) *Manager {
	return &Manager{client: client, hasher: hasher, dispatcher: dispatcher, logger: logger}
}

// Init prepares the data layer: best-effort cloud connection (cache-only
// operation continues when it fails), one-time seeding of absent
// collections, the plaintext-password migration pass, and the remote
// subscription that signals the shell when solicitations change elsewhere.
func (m *Manager) Init(ctx context.Context) error {
	if !m.client.Init(ctx) {
		m.logger.Warn("cloud unavailable at startup; continuing in cache-only mode")
	}

	if err := m.seed(ctx); err != nil {
		return err
	}
	if err := m.MigratePasswords(ctx); err != nil {
		return err
	}

	m.client.Subscribe(ctx, KeySolicitations, func(json.RawMessage) {
		_ = m.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCollectionChanged,
			Timestamp: time.Now(),
			Payload:   events.CollectionChangedPayload{Collection: KeySolicitations},
		})
	})

	return nil
}

// Client exposes the underlying cloud client for health reporting and the
// sync worker.
func (m *Manager) Client() *cloud.Client {
	return m.client
}

// loadCollection unmarshals the document at key into out. Absent documents
// leave out untouched, so callers pass a zero slice and get a zero slice.
func (m *Manager) loadCollection(ctx context.Context, key string, out any) {
	raw := m.client.LoadData(ctx, key, nil)
	if raw == nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		m.logger.Warn("corrupt collection document", zap.String("key", key), zap.Error(err))
	}
}

// saveCollection marshals and writes the full collection document.
func (m *Manager) saveCollection(ctx context.Context, key string, value any) cloud.SaveResult {
	raw, err := json.Marshal(value)
	if err != nil {
		m.logger.Error("marshal collection failed", zap.String("key", key), zap.Error(err))
		return cloud.SaveResult{}
	}
	return m.client.SaveData(ctx, key, raw)
}

// collectionAbsent reports whether the key has no document in cache or
// remote, which is the only condition under which seeding runs.
func (m *Manager) collectionAbsent(ctx context.Context, key string) bool {
	return m.client.LoadData(ctx, key, nil) == nil
}
