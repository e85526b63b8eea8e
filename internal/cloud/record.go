// Package cloud synchronizes named JSON documents with a remote store.
// Reads are cache-first; writes land in the local cache immediately and are
// retried through a durable FIFO queue whenever the remote is unreachable.
package cloud

import (
	"encoding/json"
	"errors"
)

// Record is the persisted envelope for every document, local or remote.
type Record struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt int64           `json:"updatedAt"` // epoch ms
	UpdatedBy string          `json:"updatedBy"` // device identity
	OpID      string          `json:"opId"`      // idempotency token
}

// ErrNotFound is returned by RemoteStore.Get when the key has no document.
var ErrNotFound = errors.New("document not found")

// SaveResult reports the outcome of a write. Queued means the write reached
// the local cache and the retry queue but not yet the remote store.
type SaveResult struct {
	Success bool   `json:"success"`
	Queued  bool   `json:"queued,omitempty"`
	OpID    string `json:"opId,omitempty"`
}
