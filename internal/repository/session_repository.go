package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/persistence"
)

// SessionRepository persists one login snapshot per client context.
type SessionRepository interface {
	// Save stores the session; backends that support expiry drop it after ttl.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	store persistence.BlobStore
}

// NewSessionRepository returns a blob-backed implementation.
func NewSessionRepository(store persistence.BlobStore) SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	stored := *session
	stored.User = session.User.Public()
	raw, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := persistence.PutExpiring(ctx, r.store, sessionKeyPrefix+session.ID, raw, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.store.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, persistence.ErrBlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
