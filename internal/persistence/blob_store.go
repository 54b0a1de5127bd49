package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/config"
)

// ErrBlobNotFound is returned when no value is stored under a key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the key-value capability every repository persists through.
// Values are opaque serialized blobs.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// ExpiringBlobStore is implemented by backends that expire keys natively.
type ExpiringBlobStore interface {
	BlobStore
	PutWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PutExpiring writes value with a ttl when store supports expiry and falls
// back to a plain Put otherwise.
func PutExpiring(ctx context.Context, store BlobStore, key string, value []byte, ttl time.Duration) error {
	if expiring, ok := store.(ExpiringBlobStore); ok && ttl > 0 {
		return expiring.PutWithTTL(ctx, key, value, ttl)
	}
	return store.Put(ctx, key, value)
}

// NewBlobStore opens the backend selected by cfg.Storage.Backend.
func NewBlobStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (BlobStore, error) {
	var (
		store BlobStore
		err   error
	)
	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		store = NewMemoryBlobStore()
	case config.StoragePostgres:
		var pg *Postgres
		pg, err = NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err = RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		store = NewPostgresBlobStore(pg)
	case config.StorageRedis:
		store = NewRedisBlobStore(NewRedis(cfg.Redis, logger))
	case config.StorageSQLite:
		store, err = NewSQLiteBlobStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	logger.Info("blob store ready", zap.String("backend", cfg.Storage.Backend), zap.String("prefix", cfg.Storage.KeyPrefix))
	return WithPrefix(store, cfg.Storage.KeyPrefix), nil
}

type prefixedStore struct {
	BlobStore
	prefix string
}

// WithPrefix namespaces every key written through store.
func WithPrefix(store BlobStore, prefix string) BlobStore {
	if prefix == "" {
		return store
	}
	return &prefixedStore{BlobStore: store, prefix: prefix + "-"}
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.BlobStore.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Put(ctx context.Context, key string, value []byte) error {
	return p.BlobStore.Put(ctx, p.prefix+key, value)
}

func (p *prefixedStore) PutWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return PutExpiring(ctx, p.BlobStore, p.prefix+key, value, ttl)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.BlobStore.Delete(ctx, p.prefix+key)
}
