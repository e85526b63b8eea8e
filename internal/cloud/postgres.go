package cloud

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/config"
)

const notifyChannel = "requisition_documents"

// PostgresStore keeps documents in a single jsonb table and delivers change
// notifications over LISTEN/NOTIFY.
type PostgresStore struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgresStore builds the backend; the pool is created in Init.
func NewPostgresStore(cfg config.PostgresConfig, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{cfg: cfg, logger: logger}
}

// Init creates the connection pool and bootstraps the schema. Safe to call
// repeatedly; an existing healthy pool is reused.
func (s *PostgresStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		if err := s.pool.Ping(ctx); err == nil {
			return nil
		}
		s.pool.Close()
		s.pool = nil
	}

	if s.cfg.DSN == "" {
		return errors.New("POSTGRES_DSN not configured")
	}

	poolCfg, err := pgxpool.ParseConfig(s.cfg.DSN)
	if err != nil {
		return err
	}
	if s.cfg.MaxConns > 0 {
		poolCfg.MaxConns = s.cfg.MaxConns
	}
	if s.cfg.MinConns > 0 {
		poolCfg.MinConns = s.cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	if s.cfg.BootstrapSchema {
		const schema = `
            CREATE TABLE IF NOT EXISTS documents (
                key        TEXT PRIMARY KEY,
                data       JSONB NOT NULL,
                updated_at BIGINT NOT NULL,
                updated_by TEXT NOT NULL DEFAULT '',
                op_id      TEXT NOT NULL DEFAULT ''
            )`
		if _, err := pool.Exec(ctx, schema); err != nil {
			pool.Close()
			return err
		}
	}

	s.pool = pool
	s.logger.Info("connected to postgres document store")
	return nil
}

func (s *PostgresStore) poolHandle() (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool == nil {
		return nil, errors.New("postgres store not initialized")
	}
	return s.pool, nil
}

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	pool, err := s.poolHandle()
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Get returns the stored document or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, key string) (*Record, error) {
	pool, err := s.poolHandle()
	if err != nil {
		return nil, err
	}

	const query = `
        SELECT data, updated_at, updated_by, op_id
        FROM documents WHERE key=$1`

	var rec Record
	if err := pool.QueryRow(ctx, query, key).Scan(
		&rec.Data,
		&rec.UpdatedAt,
		&rec.UpdatedBy,
		&rec.OpID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Set upserts the document. The op_id guard makes a retried write with the
// same opId a no-op, then listeners are notified with the document key.
func (s *PostgresStore) Set(ctx context.Context, key string, rec Record) error {
	pool, err := s.poolHandle()
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO documents (key, data, updated_at, updated_by, op_id)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (key) DO UPDATE
            SET data=EXCLUDED.data,
                updated_at=EXCLUDED.updated_at,
                updated_by=EXCLUDED.updated_by,
                op_id=EXCLUDED.op_id
            WHERE documents.op_id IS DISTINCT FROM EXCLUDED.op_id`

	if _, err := pool.Exec(ctx, query, key, rec.Data, rec.UpdatedAt, rec.UpdatedBy, rec.OpID); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, "SELECT pg_notify($1, $2)", notifyChannel, key); err != nil {
		s.logger.Warn("pg_notify failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Subscribe holds a dedicated connection on LISTEN and re-reads the document
// whenever a notification for key arrives.
func (s *PostgresStore) Subscribe(ctx context.Context, key string, handler func(Record)) (func(), error) {
	pool, err := s.poolHandle()
	if err != nil {
		return nil, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					s.logger.Warn("subscription lost", zap.String("key", key), zap.Error(err))
				}
				return
			}
			if notification.Payload != key {
				continue
			}
			rec, err := s.Get(subCtx, key)
			if err != nil {
				s.logger.Warn("fetch after notification failed", zap.String("key", key), zap.Error(err))
				continue
			}
			handler(*rec)
		}
	}()

	return cancel, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	return nil
}
