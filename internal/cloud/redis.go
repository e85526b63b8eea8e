package cloud

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/config"
)

// RedisStore keeps documents as JSON strings and broadcasts changes over
// pub/sub, one channel per document key.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore builds the backend; connectivity is established in Init.
func NewRedisStore(cfg config.RedisConfig, namespace string, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client, prefix: namespace, logger: logger}
}

func (s *RedisStore) docKey(key string) string {
	return s.prefix + ":doc:" + key
}

func (s *RedisStore) channel(key string) string {
	return s.prefix + ":changes:" + key
}

// Init verifies the server is reachable.
func (s *RedisStore) Init(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the stored document or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (*Record, error) {
	raw, err := s.client.Get(ctx, s.docKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set stores the document and publishes it on the change channel. A record
// carrying the already-stored opId is a retried duplicate and is skipped.
func (s *RedisStore) Set(ctx context.Context, key string, rec Record) error {
	if rec.OpID != "" {
		if current, err := s.Get(ctx, key); err == nil && current.OpID == rec.OpID {
			return nil
		}
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.docKey(key), raw, 0).Err(); err != nil {
		return err
	}
	if err := s.client.Publish(ctx, s.channel(key), raw).Err(); err != nil {
		s.logger.Warn("publish change notification failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Subscribe listens on the change channel for key until cancelled.
func (s *RedisStore) Subscribe(ctx context.Context, key string, handler func(Record)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, s.channel(key))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			var rec Record
			if err := json.Unmarshal([]byte(msg.Payload), &rec); err != nil {
				s.logger.Warn("malformed change notification", zap.String("key", key), zap.Error(err))
				continue
			}
			handler(rec)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
