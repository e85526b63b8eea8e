package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/cache"
)

// fakeRemote is an in-memory RemoteStore whose connectivity and write path
// can be failed on demand.
type fakeRemote struct {
	mu       sync.Mutex
	docs     map[string]Record
	handlers map[string]func(Record)
	initErr  error
	setErr   error
	setCalls int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:     make(map[string]Record),
		handlers: make(map[string]func(Record)),
	}
}

func (f *fakeRemote) fail(err error)        { f.mu.Lock(); f.initErr = err; f.mu.Unlock() }
func (f *fakeRemote) failWrites(err error)  { f.mu.Lock(); f.setErr = err; f.mu.Unlock() }
func (f *fakeRemote) writes() int           { f.mu.Lock(); defer f.mu.Unlock(); return f.setCalls }
func (f *fakeRemote) Init(context.Context) error { f.mu.Lock(); defer f.mu.Unlock(); return f.initErr }
func (f *fakeRemote) Ping(context.Context) error { f.mu.Lock(); defer f.mu.Unlock(); return f.initErr }
func (f *fakeRemote) Close() error               { return nil }

func (f *fakeRemote) Get(_ context.Context, key string) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (f *fakeRemote) Set(_ context.Context, key string, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	if existing, ok := f.docs[key]; ok && existing.OpID == rec.OpID {
		return nil
	}
	f.docs[key] = rec
	if handler := f.handlers[key]; handler != nil {
		handler(rec)
	}
	return nil
}

func (f *fakeRemote) Subscribe(_ context.Context, key string, handler func(Record)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[key] = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, key)
	}, nil
}

// emit simulates a change written by another device.
func (f *fakeRemote) emit(key string, rec Record) {
	f.mu.Lock()
	handler := f.handlers[key]
	f.docs[key] = rec
	f.mu.Unlock()
	if handler != nil {
		handler(rec)
	}
}

func newTestClient(remote RemoteStore) (*Client, cache.Store) {
	store := cache.NewMemoryStore("test")
	client := NewClient(ClientOptions{
		Remote:       remote,
		Cache:        store,
		Logger:       zap.NewNop(),
		ReadyTimeout: time.Second,
		CacheTTL:     time.Minute,
	})
	return client, store
}

// TestDeviceID_Stable verifies the identity survives across clients sharing
// a cache.
func TestDeviceID_Stable(t *testing.T) {
	ctx := context.Background()
	first, store := newTestClient(nil)

	id := first.DeviceID(ctx)
	require.NotEmpty(t, id)
	assert.Equal(t, id, first.DeviceID(ctx))

	second := NewClient(ClientOptions{Cache: store, Logger: zap.NewNop()})
	assert.Equal(t, id, second.DeviceID(ctx))
}

// TestInit_Unavailable verifies a failing remote resolves to not-available
// instead of an error.
func TestInit_Unavailable(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail(errors.New("connection refused"))
	client, _ := newTestClient(remote)

	assert.False(t, client.Init(ctx))
	assert.False(t, client.IsCloudAvailable())

	remote.fail(nil)
	assert.True(t, client.Init(ctx))
	assert.True(t, client.IsCloudAvailable())
}

// TestSaveData_Online verifies a connected write reaches the remote and
// reports success with no queueing.
func TestSaveData_Online(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	client, _ := newTestClient(remote)
	require.True(t, client.Init(ctx))

	result := client.SaveData(ctx, "parts", json.RawMessage(`["CB001"]`))

	assert.True(t, result.Success)
	assert.False(t, result.Queued)
	assert.NotEmpty(t, result.OpID)
	assert.Equal(t, 0, client.QueueDepth(ctx))

	rec, err := remote.Get(ctx, "parts")
	require.NoError(t, err)
	assert.JSONEq(t, `["CB001"]`, string(rec.Data))
	assert.Equal(t, client.DeviceID(ctx), rec.UpdatedBy)
	assert.Equal(t, result.OpID, rec.OpID)
}

// TestSaveData_OfflineQueues verifies an offline write lands in the cache
// and the retry queue, and that reads keep serving the local copy.
func TestSaveData_OfflineQueues(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail(errors.New("connection refused"))
	client, _ := newTestClient(remote)
	require.False(t, client.Init(ctx))

	result := client.SaveData(ctx, "parts", json.RawMessage(`["CB001"]`))

	assert.False(t, result.Success)
	assert.True(t, result.Queued)
	assert.Equal(t, 1, client.QueueDepth(ctx))

	got := client.LoadData(ctx, "parts", nil)
	assert.JSONEq(t, `["CB001"]`, string(got))
}

// TestProcessQueue_DrainsInOrder verifies queued writes replay FIFO once
// connectivity returns and the queue empties.
func TestProcessQueue_DrainsInOrder(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail(errors.New("connection refused"))
	client, _ := newTestClient(remote)
	require.False(t, client.Init(ctx))

	client.SaveData(ctx, "parts", json.RawMessage(`["CB001"]`))
	client.SaveData(ctx, "parts", json.RawMessage(`["CB001","CB002"]`))
	client.SaveData(ctx, "suppliers", json.RawMessage(`["f-1"]`))
	require.Equal(t, 3, client.QueueDepth(ctx))

	remote.fail(nil)
	assert.True(t, client.ProcessQueue(ctx))
	assert.Equal(t, 0, client.QueueDepth(ctx))

	rec, err := remote.Get(ctx, "parts")
	require.NoError(t, err)
	assert.JSONEq(t, `["CB001","CB002"]`, string(rec.Data))

	_, err = remote.Get(ctx, "suppliers")
	assert.NoError(t, err)
}

// TestProcessQueue_StopsOnFirstFailure verifies a failed replay keeps the
// failed entry and everything behind it queued.
func TestProcessQueue_StopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.fail(errors.New("connection refused"))
	client, _ := newTestClient(remote)
	require.False(t, client.Init(ctx))

	client.SaveData(ctx, "parts", json.RawMessage(`["CB001"]`))
	client.SaveData(ctx, "suppliers", json.RawMessage(`["f-1"]`))

	remote.fail(nil)
	remote.failWrites(errors.New("write timeout"))
	assert.False(t, client.ProcessQueue(ctx))
	assert.Equal(t, 2, client.QueueDepth(ctx))

	remote.failWrites(nil)
	assert.True(t, client.ProcessQueue(ctx))
	assert.Equal(t, 0, client.QueueDepth(ctx))
}

// TestRemoteSet_DuplicateOpIsNoop verifies replaying the same record twice
// leaves the stored document unchanged.
func TestRemoteSet_DuplicateOpIsNoop(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()

	rec := Record{Data: json.RawMessage(`["CB001"]`), UpdatedAt: time.Now().UnixMilli(), UpdatedBy: "dev-1", OpID: "op-1"}
	require.NoError(t, remote.Set(ctx, "parts", rec))
	require.NoError(t, remote.Set(ctx, "parts", rec))

	stored, err := remote.Get(ctx, "parts")
	require.NoError(t, err)
	assert.Equal(t, "op-1", stored.OpID)
	assert.Equal(t, 2, remote.writes())
}

// TestLoadData_Fallback verifies an empty offline store serves the caller's
// fallback document.
func TestLoadData_Fallback(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(nil)

	got := client.LoadData(ctx, "settings", json.RawMessage(`{"tema":"light"}`))
	assert.JSONEq(t, `{"tema":"light"}`, string(got))

	assert.Nil(t, client.LoadData(ctx, "settings", nil))
}

// TestLoadData_RemoteOnCacheMiss verifies an online miss pulls the remote
// document and caches it for the next read.
func TestLoadData_RemoteOnCacheMiss(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.docs["parts"] = Record{Data: json.RawMessage(`["CB001"]`), UpdatedAt: time.Now().UnixMilli(), UpdatedBy: "other", OpID: "op-1"}
	client, _ := newTestClient(remote)
	require.True(t, client.Init(ctx))

	got := client.LoadData(ctx, "parts", nil)
	assert.JSONEq(t, `["CB001"]`, string(got))

	// Second read is served from cache even after the remote goes away.
	remote.fail(errors.New("connection refused"))
	got = client.LoadData(ctx, "parts", nil)
	assert.JSONEq(t, `["CB001"]`, string(got))
}

// TestSubscribe_SuppressesEcho verifies changes written by this device never
// reach the callback while foreign changes do and update the cache.
func TestSubscribe_SuppressesEcho(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	client, _ := newTestClient(remote)
	require.True(t, client.Init(ctx))

	var mu sync.Mutex
	var calls []string
	client.Subscribe(ctx, "solicitations", func(data json.RawMessage) {
		mu.Lock()
		calls = append(calls, string(data))
		mu.Unlock()
	})

	// Own write echoes back through the remote handler.
	client.SaveData(ctx, "solicitations", json.RawMessage(`["own"]`))

	remote.emit("solicitations", Record{
		Data:      json.RawMessage(`["foreign"]`),
		UpdatedAt: time.Now().UnixMilli(),
		UpdatedBy: "other-device",
		OpID:      "op-foreign",
	})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `["foreign"]`, calls[0])

	got := client.LoadData(ctx, "solicitations", nil)
	assert.JSONEq(t, `["foreign"]`, string(got))
}

// TestUnsubscribe verifies a cancelled listener stops receiving changes.
func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	client, _ := newTestClient(remote)
	require.True(t, client.Init(ctx))

	calls := 0
	client.Subscribe(ctx, "parts", func(json.RawMessage) { calls++ })
	client.Unsubscribe("parts")

	remote.emit("parts", Record{Data: json.RawMessage(`[]`), UpdatedBy: "other", OpID: "op-1"})
	assert.Equal(t, 0, calls)
}
