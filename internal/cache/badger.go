package cache

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/spec-kit/requisition-service/internal/config"
)

// BadgerStore persists keys in an embedded BadgerDB database so cached
// documents and the write queue survive process restarts.
type BadgerStore struct {
	db        *badger.DB
	namespace string
}

// NewBadgerStore opens the database at cfg.Dir, creating it if needed.
func NewBadgerStore(cfg config.CacheConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db, namespace: cfg.Namespace}, nil
}

func (s *BadgerStore) fullKey(key string) []byte {
	return []byte(s.namespace + ":" + key)
}

// Get returns the stored value, or found=false when the key is absent.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.fullKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores the value under the namespaced key.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.fullKey(key), value)
	})
}

// Delete removes the key; deleting an absent key is not an error.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.fullKey(key))
	})
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
