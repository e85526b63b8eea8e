package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/requisition-service/internal/cache"
	"github.com/spec-kit/requisition-service/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists login sessions in the local cache store, keyed
// independently from the data collections. Expiry lives in the record
// itself, so restore works offline.
type SessionStore struct {
	store cache.Store
}

// NewSessionStore builds the store.
func NewSessionStore(store cache.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Get returns the session with the given id, if present and well formed.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, bool) {
	raw, ok, err := s.store.Get(ctx, sessionKeyPrefix+id)
	if err != nil || !ok {
		return nil, false
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, false
	}
	return &session, true
}

// Put persists the session.
func (s *SessionStore) Put(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKeyPrefix+session.ID, raw)
}

// Delete removes the session unconditionally.
func (s *SessionStore) Delete(ctx context.Context, id string) {
	_ = s.store.Delete(ctx, sessionKeyPrefix+id)
}
