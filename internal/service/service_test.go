package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/observability"
	"github.com/spec-kit/ideaflow/internal/persistence"
	"github.com/spec-kit/ideaflow/internal/repository"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

const testOwnerSecret = "3234042"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now().UTC().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type harness struct {
	store      *persistence.MemoryBlobStore
	clock      *fakeClock
	dispatcher events.Dispatcher
	published  *eventLog
	accounts   *AccountService
	sessions   *SessionManager
	workflow   *WorkflowEngine
	ideas      *IdeaService
	ideaRepo   repository.IdeaRepository
}

type eventLog struct {
	mu     sync.Mutex
	events []events.Event
}

func (l *eventLog) record(_ context.Context, e events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) types() []events.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]events.EventType, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type)
	}
	return out
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, persistence.NewMemoryBlobStore())
}

func newHarnessWithStore(t *testing.T, store persistence.BlobStore) *harness {
	t.Helper()
	secretHash, err := auth.HashPassword(testOwnerSecret, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	cfg := config.AuthConfig{
		JWTSecret:       "test-secret",
		SessionTTLHours: 24,
		BcryptCost:      bcrypt.MinCost,
		OwnerSecretHash: secretHash,
	}

	h := &harness{clock: newFakeClock(), dispatcher: events.NewInMemoryDispatcher(), published: &eventLog{}}
	if mem, ok := store.(*persistence.MemoryBlobStore); ok {
		h.store = mem
	}
	for _, et := range []events.EventType{
		events.EventIdeaSubmitted, events.EventIdeaStatusChanged, events.EventIdeaAssigned,
		events.EventIdeaProgressAdded, events.EventUserRegistered, events.EventDeveloperSubmitted,
		events.EventDeveloperApproved, events.EventDeveloperRejected, events.EventContactDraftComposed,
	} {
		h.dispatcher.Subscribe(et, h.published.record)
	}

	clock := Clock(h.clock.Now)
	metrics := observability.NewMetrics()
	h.ideaRepo = repository.NewIdeaRepository(store)
	h.accounts = NewAccountService(cfg, AccountDependencies{
		UserRepo:    repository.NewUserRepository(store),
		PendingRepo: repository.NewPendingDeveloperRepository(store),
		Dispatcher:  h.dispatcher,
		Metrics:     metrics,
		Clock:       clock,
	})
	h.sessions = NewSessionManager(cfg, SessionDependencies{
		Accounts:    h.accounts,
		SessionRepo: repository.NewSessionRepository(store),
		Tokens:      auth.NewTokenManager(cfg.JWTSecret),
		Clock:       clock,
	})
	h.workflow = NewWorkflowEngine(WorkflowDependencies{
		IdeaRepo:   h.ideaRepo,
		Dispatcher: h.dispatcher,
		Metrics:    metrics,
		Clock:      clock,
	})
	h.ideas = NewIdeaService(IdeaDependencies{
		IdeaRepo:   h.ideaRepo,
		Accounts:   h.accounts,
		Workflow:   h.workflow,
		Dispatcher: h.dispatcher,
		Clock:      clock,
	})
	return h
}

func registration(name, email string, role domain.Role) RegisterInput {
	return RegisterInput{
		Name:            name,
		Email:           email,
		Phone:           "555-0100",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            role,
	}
}

func (h *harness) register(t *testing.T, input RegisterInput) *RegisterResult {
	t.Helper()
	result, err := h.accounts.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register(%s) error = %v", input.Email, err)
	}
	return result
}

func (h *harness) owner(t *testing.T) *domain.User {
	t.Helper()
	in := registration("Olivia Owner", "owner@techlearners.com", domain.RoleOwner)
	in.SecretKey = testOwnerSecret
	return h.register(t, in).User
}

func (h *harness) approvedDeveloper(t *testing.T, name, email string) *domain.User {
	t.Helper()
	pending := h.register(t, registration(name, email, domain.RoleDeveloper))
	dev, err := h.accounts.ApproveDeveloper(context.Background(), nil, pending.User.ID)
	if err != nil {
		t.Fatalf("ApproveDeveloper() error = %v", err)
	}
	return dev
}

func (h *harness) submit(t *testing.T, title string) *domain.Idea {
	t.Helper()
	idea, err := h.ideas.Submit(context.Background(), SubmitIdeaInput{
		CustomerName:  "Carla Customer",
		CustomerEmail: "carla@example.com",
		Title:         title,
		Description:   "description of " + title,
	})
	if err != nil {
		t.Fatalf("Submit(%s) error = %v", title, err)
	}
	return idea
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !apperrors.HasCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

// failingStore fails every operation to exercise persistence error paths.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (failingStore) Put(context.Context, string, []byte) error  { return errStoreDown }
func (failingStore) Delete(context.Context, string) error        { return errStoreDown }
func (failingStore) Ping(context.Context) error                  { return errStoreDown }
func (failingStore) Close() error                                { return nil }

func TestPersistenceFailuresSurfaceAsPersistenceError(t *testing.T) {
	h := newHarnessWithStore(t, failingStore{})
	ctx := context.Background()

	_, err := h.accounts.Register(ctx, registration("Cara", "cara@example.com", domain.RoleCustomer))
	assertCode(t, err, apperrors.CodePersistence)

	_, err = h.ideas.Submit(ctx, SubmitIdeaInput{CustomerEmail: "c@example.com", Title: "t", Description: "d"})
	assertCode(t, err, apperrors.CodePersistence)

	_, err = h.ideas.ListAll(ctx)
	assertCode(t, err, apperrors.CodePersistence)
}

func TestStringPreview(t *testing.T) {
	tests := []struct {
		name string
		body string
		max  int
		want string
	}{
		{name: "short", body: "  done  ", max: 10, want: "done"},
		{name: "ascii cut", body: "abcdefghij", max: 6, want: "abc..."},
		{name: "multibyte cut", body: "héllo wörld ✓✓✓", max: 8, want: "héllo..."},
		{name: "emoji at boundary", body: "🚀🚀🚀🚀🚀", max: 4, want: "🚀..."},
		{name: "tiny max", body: "ñañaña", max: 2, want: "ña"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stringPreview(tt.body, tt.max)
			if got != tt.want {
				t.Errorf("stringPreview(%q, %d) = %q, want %q", tt.body, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("stringPreview(%q, %d) = %q is not valid UTF-8", tt.body, tt.max, got)
			}
		})
	}
}
