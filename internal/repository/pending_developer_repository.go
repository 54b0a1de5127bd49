package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/persistence"
)

// PendingDeveloperRepository holds developer registrations awaiting approval.
type PendingDeveloperRepository interface {
	Add(ctx context.Context, dev *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Remove deletes the entry with the given id and returns it.
	Remove(ctx context.Context, id string) (*domain.User, error)
}

type pendingDeveloperRepository struct {
	mu      sync.Mutex
	pending blobList[domain.User]
}

// NewPendingDeveloperRepository returns a blob-backed implementation.
func NewPendingDeveloperRepository(store persistence.BlobStore) PendingDeveloperRepository {
	return &pendingDeveloperRepository{pending: blobList[domain.User]{store: store, key: pendingDevelopersKey}}
}

func (r *pendingDeveloperRepository) Add(ctx context.Context, dev *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.pending.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range pending {
		if existing.Email == dev.Email {
			return ErrDuplicate
		}
	}
	return r.pending.save(ctx, append(pending, *dev))
}

func (r *pendingDeveloperRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.pending.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].Email == email {
			return &pending[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *pendingDeveloperRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending.load(ctx)
}

func (r *pendingDeveloperRepository) Remove(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.pending.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].ID != id {
			continue
		}
		removed := pending[i]
		rest := append(pending[:i:i], pending[i+1:]...)
		if err := r.pending.save(ctx, rest); err != nil {
			return nil, err
		}
		return &removed, nil
	}
	return nil, ErrNotFound
}
