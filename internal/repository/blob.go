package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spec-kit/ideaflow/internal/persistence"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// Fixed blob keys, one per store.
const (
	usersKey             = "users"
	pendingDevelopersKey = "pending-developers"
	ideasKey             = "dashboard-data"
	sessionKeyPrefix     = "auth:"
)

// blobList persists a slice of records as one JSON blob.
type blobList[T any] struct {
	store persistence.BlobStore
	key   string
}

func (b blobList[T]) load(ctx context.Context) ([]T, error) {
	raw, err := b.store.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, persistence.ErrBlobNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", b.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.key, err)
	}
	return items, nil
}

func (b blobList[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	if err := b.store.Put(ctx, b.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", b.key, err)
	}
	return nil
}
