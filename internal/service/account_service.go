package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/observability"
	"github.com/spec-kit/ideaflow/internal/repository"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

const (
	registeredMessage = "Registration successful! You can now login."
	pendingMessage    = "Registration submitted! Waiting for owner approval."
)

// RegisterInput describes a registration form submission.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Role            domain.Role
	SecretKey       string
}

// RegisterResult reports where a registration landed.
type RegisterResult struct {
	User    *domain.User
	Pending bool
	Message string
}

// AccountService owns the credential store and the developer approval queue.
type AccountService struct {
	// registry serializes every write that must keep an email unique across
	// the credential store and the approval queue.
	registry sync.Mutex

	users           repository.UserRepository
	pending         repository.PendingDeveloperRepository
	dispatcher      events.Dispatcher
	metrics         *observability.Metrics
	bcryptCost      int
	ownerSecretHash string
	now             Clock
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	UserRepo    repository.UserRepository
	PendingRepo repository.PendingDeveloperRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Clock       Clock
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.AuthConfig, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:           deps.UserRepo,
		pending:         deps.PendingRepo,
		dispatcher:      deps.Dispatcher,
		metrics:         deps.Metrics,
		bcryptCost:      cfg.BcryptCost,
		ownerSecretHash: cfg.OwnerSecretHash,
		now:             deps.Clock.orDefault(),
	}
}

// Register validates a registration and stores it. Developers are routed to
// the approval queue; customers and owners become active immediately.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	result, err := s.register(ctx, input)
	if err != nil {
		s.metrics.RecordRegistration(string(input.Role), outcomeFor(err))
		return nil, err
	}
	outcome := "registered"
	if result.Pending {
		outcome = "pending"
	}
	s.metrics.RecordRegistration(string(input.Role), outcome)
	return result, nil
}

// SubmitDeveloper places a developer registration in the approval queue.
func (s *AccountService) SubmitDeveloper(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Role != domain.RoleDeveloper {
		return nil, apperrors.NewValidationError("only developer registrations can be queued", map[string]any{"role": input.Role})
	}
	result, err := s.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return result.User, nil
}

func (s *AccountService) register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)

	if err := validateRegistration(input); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleOwner {
		if auth.VerifyOwnerSecret(s.ownerSecretHash, input.SecretKey) != nil {
			return nil, apperrors.NewInvalidSecret()
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		Phone:        input.Phone,
		CreatedAt:    s.now(),
	}

	s.registry.Lock()
	defer s.registry.Unlock()

	if err := s.ensureEmailFree(ctx, user.Email); err != nil {
		return nil, err
	}

	if user.Role == domain.RoleDeveloper {
		if err := s.pending.Add(ctx, user); err != nil {
			return nil, s.mapRegistryError(err, user.Email)
		}
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:      events.EventDeveloperSubmitted,
			SubjectID: user.ID,
			Actor:     actorFromUser(user),
			Payload:   accountPayload(user),
		})
		return &RegisterResult{User: user, Pending: true, Message: pendingMessage}, nil
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.mapRegistryError(err, user.Email)
	}
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Actor:     actorFromUser(user),
		Payload:   accountPayload(user),
	})
	return &RegisterResult{User: user, Message: registeredMessage}, nil
}

func validateRegistration(input RegisterInput) error {
	fields := []struct{ name, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"password", input.Password},
		{"confirm_password", input.ConfirmPassword},
	}
	var missing []string
	for _, f := range fields {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}
	if !input.Role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if input.Password != input.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match", nil)
	}
	if len(input.Password) < auth.MinPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", map[string]any{"min_length": auth.MinPasswordLength})
	}
	if len(input.Password) > auth.MaxPasswordLength {
		return apperrors.NewValidationError("password must be at most 72 bytes", map[string]any{"max_length": auth.MaxPasswordLength})
	}
	return nil
}

// ensureEmailFree must be called with the registry lock held.
func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewDuplicateEmail(email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewPersistenceError(err)
	}
	if _, err := s.pending.GetByEmail(ctx, email); err == nil {
		return apperrors.NewDuplicateEmail(email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (s *AccountService) mapRegistryError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewDuplicateEmail(email)
	}
	return apperrors.NewPersistenceError(err)
}

// FindByEmail returns the active account with the exact email.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapStoreError(err, "user", map[string]any{"email": email})
	}
	return user, nil
}

// GetByID returns the active account with the given id.
func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "user", map[string]any{"id": id})
	}
	return user, nil
}

// Authenticate checks an email and password against the credential store.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return user, nil
}

// ListDevelopers returns approved developers in registration order.
func (s *AccountService) ListDevelopers(ctx context.Context) ([]domain.User, error) {
	devs, err := s.users.ListByRole(ctx, domain.RoleDeveloper)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return devs, nil
}

// ListPendingDevelopers returns queued developer registrations.
func (s *AccountService) ListPendingDevelopers(ctx context.Context) ([]domain.User, error) {
	pending, err := s.pending.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return pending, nil
}

// ApproveDeveloper moves a queued registration into the credential store.
// Approved developer names stay unique because assignment is by name. If the
// store rejects the insert, the entry is put back in the queue.
func (s *AccountService) ApproveDeveloper(ctx context.Context, actor *domain.User, pendingID string) (*domain.User, error) {
	s.registry.Lock()
	defer s.registry.Unlock()

	queued, err := s.pendingByID(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	taken, err := s.developerNamed(ctx, queued.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewDuplicateDeveloperName(queued.Name)
	}

	dev, err := s.pending.Remove(ctx, pendingID)
	if err != nil {
		return nil, mapStoreError(err, "pending developer", map[string]any{"id": pendingID})
	}
	dev.Role = domain.RoleDeveloper

	if err := s.users.Create(ctx, dev); err != nil {
		if restoreErr := s.pending.Add(ctx, dev); restoreErr != nil {
			return nil, apperrors.NewPersistenceError(errors.Join(err, restoreErr))
		}
		return nil, s.mapRegistryError(err, dev.Email)
	}

	s.metrics.RecordRegistration(string(domain.RoleDeveloper), "approved")
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventDeveloperApproved,
		SubjectID: dev.ID,
		Actor:     actorFromUser(actor),
		Payload:   accountPayload(dev),
	})
	return dev, nil
}

// RejectDeveloper discards a queued registration.
func (s *AccountService) RejectDeveloper(ctx context.Context, actor *domain.User, pendingID string) (*domain.User, error) {
	s.registry.Lock()
	defer s.registry.Unlock()

	dev, err := s.pending.Remove(ctx, pendingID)
	if err != nil {
		return nil, mapStoreError(err, "pending developer", map[string]any{"id": pendingID})
	}

	s.metrics.RecordRegistration(string(domain.RoleDeveloper), "rejected")
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventDeveloperRejected,
		SubjectID: dev.ID,
		Actor:     actorFromUser(actor),
		Payload:   accountPayload(dev),
	})
	return dev, nil
}

// developerNamed reports whether an approved developer carries the name.
func (s *AccountService) developerNamed(ctx context.Context, name string) (bool, error) {
	devs, err := s.ListDevelopers(ctx)
	if err != nil {
		return false, err
	}
	for _, dev := range devs {
		if dev.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccountService) pendingByID(ctx context.Context, id string) (*domain.User, error) {
	queue, err := s.pending.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	for i := range queue {
		if queue[i].ID == id {
			return &queue[i], nil
		}
	}
	return nil, apperrors.NewNotFound("pending developer", map[string]any{"id": id})
}

func accountPayload(user *domain.User) events.AccountPayload {
	return events.AccountPayload{Email: user.Email, Name: user.Name, Role: user.Role}
}

func outcomeFor(err error) string {
	if domainErr := apperrors.ToDomainError(err); domainErr != nil {
		return strings.ToLower(domainErr.Code)
	}
	return "error"
}
