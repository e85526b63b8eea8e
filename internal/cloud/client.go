package cloud

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/cache"
	"github.com/spec-kit/requisition-service/internal/observability"
)

// Reserved local cache keys. Documents live under docKeyPrefix.
const (
	docKeyPrefix  = "doc:"
	deviceIDKey   = "device-id"
	writeQueueKey = "sync-queue"
)

// queuedWrite is one pending remote write, persisted with the full record so
// a retry replays exactly what was written locally.
type queuedWrite struct {
	Key    string `json:"key"`
	Record Record `json:"record"`
}

// Client is the cloud store client: cache-first reads, optimistic writes
// with a durable retry queue, and echo-suppressed change subscriptions.
// Remote failures are absorbed into fallback or queued behavior; no method
// returns a remote error to the caller.
type Client struct {
	remote  RemoteStore
	cache   cache.Store
	logger  *zap.Logger
	metrics *observability.Metrics

	readyTimeout time.Duration
	cacheTTL     time.Duration

	available atomic.Bool
	initMu    sync.Mutex
	initDone  chan struct{} // non-nil while an Init attempt is in flight

	queueMu sync.Mutex

	subMu sync.Mutex
	subs  map[string]func()

	deviceMu sync.Mutex
	deviceID string
}

// ClientOptions bundles construction parameters.
type ClientOptions struct {
	Remote       RemoteStore // nil means cache-only operation
	Cache        cache.Store
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	ReadyTimeout time.Duration
	CacheTTL     time.Duration
}

// NewClient builds the client.
func NewClient(opts ClientOptions) *Client {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 5 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	return &Client{
		remote:       opts.Remote,
		cache:        opts.Cache,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		readyTimeout: opts.ReadyTimeout,
		cacheTTL:     opts.CacheTTL,
		subs:         make(map[string]func()),
	}
}

// Init establishes remote connectivity and reports whether the cloud is
// usable. Concurrent calls share a single in-flight attempt; repeated calls
// on an available client return immediately.
func (c *Client) Init(ctx context.Context) bool {
	if c.remote == nil {
		return false
	}
	if c.available.Load() {
		return true
	}

	c.initMu.Lock()
	if done := c.initDone; done != nil {
		c.initMu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return c.available.Load()
	}
	done := make(chan struct{})
	c.initDone = done
	c.initMu.Unlock()

	ok := c.tryInit(ctx)
	c.available.Store(ok)

	c.initMu.Lock()
	c.initDone = nil
	c.initMu.Unlock()
	close(done)

	return ok
}

// tryInit performs one bounded connection attempt. It resolves to not-ready
// rather than hanging.
func (c *Client) tryInit(ctx context.Context) bool {
	initCtx, cancel := context.WithTimeout(ctx, c.readyTimeout)
	defer cancel()

	if err := c.remote.Init(initCtx); err != nil {
		c.logger.Warn("cloud store unavailable", zap.Error(err))
		return false
	}
	if err := c.remote.Ping(initCtx); err != nil {
		c.logger.Warn("cloud store not responding", zap.Error(err))
		return false
	}
	c.logger.Info("cloud store ready", zap.String("device", c.DeviceID(ctx)))
	return true
}

// IsCloudAvailable reports whether connectivity and authentication are both
// established.
func (c *Client) IsCloudAvailable() bool {
	return c.available.Load()
}

// DeviceID returns the stable identity of this client, generating and
// persisting one on first use. When the cache rejects the write the id is
// kept in memory only and regenerated on the next start.
func (c *Client) DeviceID(ctx context.Context) string {
	c.deviceMu.Lock()
	defer c.deviceMu.Unlock()

	if c.deviceID != "" {
		return c.deviceID
	}
	if raw, ok, err := c.cache.Get(ctx, deviceIDKey); err == nil && ok && len(raw) > 0 {
		c.deviceID = string(raw)
		return c.deviceID
	}
	c.deviceID = uuid.NewString()
	if err := c.cache.Set(ctx, deviceIDKey, []byte(c.deviceID)); err != nil {
		c.logger.Warn("device id not persisted", zap.Error(err))
	}
	return c.deviceID
}

// LoadData reads the document for key. The local cache answers first; the
// remote is consulted only on a miss or when the cached record is older than
// the staleness window. Remote failures fall back to the cached record or
// the provided fallback, never an error.
func (c *Client) LoadData(ctx context.Context, key string, fallback json.RawMessage) json.RawMessage {
	cached, hasCached := c.cachedRecord(ctx, key)
	if hasCached && !c.stale(cached) {
		return cached.Data
	}

	if !c.IsCloudAvailable() {
		if hasCached {
			return cached.Data
		}
		return fallback
	}

	rec, err := c.remote.Get(ctx, key)
	if err == ErrNotFound {
		if hasCached {
			return cached.Data
		}
		return fallback
	}
	if err != nil {
		c.logger.Warn("remote read failed", zap.String("key", key), zap.Error(err))
		c.available.Store(false)
		if hasCached {
			return cached.Data
		}
		return fallback
	}

	c.storeRecord(ctx, key, *rec)
	return rec.Data
}

// SaveData writes the document locally, then attempts the remote write.
// When the cloud is unavailable or the write fails, the operation joins the
// durable queue and the result reports queued=true.
func (c *Client) SaveData(ctx context.Context, key string, data json.RawMessage) SaveResult {
	rec := Record{
		Data:      data,
		UpdatedAt: time.Now().UnixMilli(),
		UpdatedBy: c.DeviceID(ctx),
		OpID:      uuid.NewString(),
	}

	c.storeRecord(ctx, key, rec)

	if !c.IsCloudAvailable() {
		c.enqueue(ctx, key, rec)
		return SaveResult{Success: false, Queued: true, OpID: rec.OpID}
	}

	if err := c.remote.Set(ctx, key, rec); err != nil {
		c.logger.Warn("remote write failed; queueing", zap.String("key", key), zap.Error(err))
		c.available.Store(false)
		c.enqueue(ctx, key, rec)
		return SaveResult{Success: false, Queued: true, OpID: rec.OpID}
	}

	return SaveResult{Success: true, OpID: rec.OpID}
}

// Subscribe registers a change listener for key, replacing any previous
// listener on the same key. Remote records written by this device are
// echoes and are dropped; everything else refreshes the cache before the
// callback runs.
func (c *Client) Subscribe(ctx context.Context, key string, callback func(json.RawMessage)) {
	if c.remote == nil {
		return
	}

	deviceID := c.DeviceID(ctx)
	cancel, err := c.remote.Subscribe(ctx, key, func(rec Record) {
		if rec.UpdatedBy == deviceID {
			return
		}
		c.storeRecord(ctx, key, rec)
		callback(rec.Data)
	})
	if err != nil {
		c.logger.Warn("subscribe failed", zap.String("key", key), zap.Error(err))
		return
	}

	c.subMu.Lock()
	if previous := c.subs[key]; previous != nil {
		previous()
	}
	c.subs[key] = cancel
	c.subMu.Unlock()
}

// Unsubscribe removes the listener for key, if any.
func (c *Client) Unsubscribe(key string) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if cancel := c.subs[key]; cancel != nil {
		cancel()
		delete(c.subs, key)
	}
}

// ProcessQueue drains pending writes in FIFO order. An entry leaves the
// queue only after a confirmed remote success; the first failure stops the
// drain and everything behind it stays queued. Returns true when the queue
// is empty afterwards.
func (c *Client) ProcessQueue(ctx context.Context) bool {
	if !c.IsCloudAvailable() && !c.Init(ctx) {
		return false
	}

	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	queue := c.loadQueue(ctx)
	if len(queue) == 0 {
		return true
	}

	remaining := queue
	for len(remaining) > 0 {
		entry := remaining[0]
		if err := c.remote.Set(ctx, entry.Key, entry.Record); err != nil {
			c.logger.Warn("queued write failed; will retry",
				zap.String("key", entry.Key), zap.String("opId", entry.Record.OpID), zap.Error(err))
			c.available.Store(false)
			break
		}
		remaining = remaining[1:]
	}

	c.persistQueue(ctx, remaining)
	if len(remaining) == 0 {
		c.metrics.RecordQueueFlush()
		c.logger.Info("offline queue drained", zap.Int("writes", len(queue)))
		return true
	}
	return false
}

// QueueDepth reports how many writes are waiting to sync.
func (c *Client) QueueDepth(ctx context.Context) int {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	return len(c.loadQueue(ctx))
}

// Close cancels subscriptions and releases the remote store.
func (c *Client) Close() {
	c.subMu.Lock()
	for key, cancel := range c.subs {
		cancel()
		delete(c.subs, key)
	}
	c.subMu.Unlock()
	if c.remote != nil {
		_ = c.remote.Close()
	}
}

func (c *Client) stale(rec Record) bool {
	age := time.Since(time.UnixMilli(rec.UpdatedAt))
	return age > c.cacheTTL
}

func (c *Client) cachedRecord(ctx context.Context, key string) (Record, bool) {
	raw, ok, err := c.cache.Get(ctx, docKeyPrefix+key)
	if err != nil || !ok {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.logger.Warn("corrupt cached document", zap.String("key", key), zap.Error(err))
		return Record{}, false
	}
	return rec, true
}

func (c *Client) storeRecord(ctx context.Context, key string, rec Record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		c.logger.Warn("marshal document failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, docKeyPrefix+key, raw); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Client) enqueue(ctx context.Context, key string, rec Record) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	queue := c.loadQueue(ctx)
	queue = append(queue, queuedWrite{Key: key, Record: rec})
	c.persistQueue(ctx, queue)
	c.metrics.RecordQueuedWrite()
}

// loadQueue and persistQueue run under queueMu.
func (c *Client) loadQueue(ctx context.Context) []queuedWrite {
	raw, ok, err := c.cache.Get(ctx, writeQueueKey)
	if err != nil || !ok {
		return nil
	}
	var queue []queuedWrite
	if err := json.Unmarshal(raw, &queue); err != nil {
		c.logger.Warn("corrupt write queue; discarding", zap.Error(err))
		return nil
	}
	return queue
}

func (c *Client) persistQueue(ctx context.Context, queue []queuedWrite) {
	if len(queue) == 0 {
		if err := c.cache.Delete(ctx, writeQueueKey); err != nil {
			c.logger.Warn("clear write queue failed", zap.Error(err))
		}
		return
	}
	raw, err := json.Marshal(queue)
	if err != nil {
		c.logger.Warn("marshal write queue failed", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, writeQueueKey, raw); err != nil {
		c.logger.Warn("persist write queue failed", zap.Error(err))
	}
}
