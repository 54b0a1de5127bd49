package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/persistence"
)

// IdeaFilter narrows idea listings. Nil fields match everything.
type IdeaFilter struct {
	CustomerEmail     *string
	AssignedDeveloper *string
	Statuses          []domain.IdeaStatus
}

func (f IdeaFilter) matches(idea *domain.Idea) bool {
	if f.CustomerEmail != nil && idea.CustomerEmail != *f.CustomerEmail {
		return false
	}
	if f.AssignedDeveloper != nil && !idea.AssignedTo(*f.AssignedDeveloper) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, status := range f.Statuses {
			if idea.Status == status {
				return true
			}
		}
		return false
	}
	return true
}

// IdeaRepository encapsulates idea persistence.
type IdeaRepository interface {
	Create(ctx context.Context, idea *domain.Idea) error
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	// List returns matching ideas in insertion order.
	List(ctx context.Context, filter IdeaFilter) ([]domain.Idea, error)
	// Mutate applies fn to the stored idea and saves it if fn succeeds.
	// The read-modify-write runs under the repository lock.
	Mutate(ctx context.Context, id string, fn func(*domain.Idea) error) (*domain.Idea, error)
}

type ideaRepository struct {
	mu    sync.Mutex
	ideas blobList[domain.Idea]
}

// NewIdeaRepository returns a blob-backed implementation.
func NewIdeaRepository(store persistence.BlobStore) IdeaRepository {
	return &ideaRepository{ideas: blobList[domain.Idea]{store: store, key: ideasKey}}
}

func (r *ideaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.ideas.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ideas {
		if existing.ID == idea.ID {
			return ErrDuplicate
		}
	}
	return r.ideas.save(ctx, append(ideas, idea.Clone()))
}

func (r *ideaRepository) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.ideas.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID == id {
			return &ideas[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *ideaRepository) List(ctx context.Context, filter IdeaFilter) ([]domain.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.ideas.load(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Idea{}
	for i := range ideas {
		if filter.matches(&ideas[i]) {
			result = append(result, ideas[i])
		}
	}
	return result, nil
}

func (r *ideaRepository) Mutate(ctx context.Context, id string, fn func(*domain.Idea) error) (*domain.Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ideas, err := r.ideas.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID != id {
			continue
		}
		working := ideas[i].Clone()
		if err := fn(&working); err != nil {
			return nil, err
		}
		ideas[i] = working
		if err := r.ideas.save(ctx, ideas); err != nil {
			return nil, err
		}
		out := working.Clone()
		return &out, nil
	}
	return nil, ErrNotFound
}
