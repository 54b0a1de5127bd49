package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/persistence"
)

// UserRepository is the credential store for active accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type userRepository struct {
	mu    sync.Mutex
	users blobList[domain.User]
}

// NewUserRepository returns a blob-backed implementation.
func NewUserRepository(store persistence.BlobStore) UserRepository {
	return &userRepository{users: blobList[domain.User]{store: store, key: usersKey}}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	return r.users.save(ctx, append(users, *user))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

// GetByEmail matches the email exactly; no case folding.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.User{}
	for _, u := range users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *userRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}
