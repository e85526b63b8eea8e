package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/cloud"
	"github.com/spec-kit/requisition-service/internal/events"
)

// SyncWorker retries queued writes: once at startup and then on every
// tick. A tick that finds the cloud unavailable re-initializes the client,
// which is the connectivity-restored trigger.
type SyncWorker struct {
	client     *cloud.Client
	dispatcher events.Dispatcher
	interval   time.Duration
	logger     *zap.Logger
}

// NewSyncWorker builds the worker.
func NewSyncWorker(client *cloud.Client, dispatcher events.Dispatcher, interval time.Duration, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{client: client, dispatcher: dispatcher, interval: interval, logger: logger}
}

// Start runs the drain loop until ctx is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	go func() {
		w.drain(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.drain(ctx)
			}
		}
	}()
}

func (w *SyncWorker) drain(ctx context.Context) {
	pending := w.client.QueueDepth(ctx)
	if pending == 0 {
		return
	}

	if w.client.ProcessQueue(ctx) {
		_ = w.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventQueueDrained,
			Timestamp: time.Now(),
		})
		return
	}
	w.logger.Debug("queue not fully drained", zap.Int("pendingBefore", pending))
}
