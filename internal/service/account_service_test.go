package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/events"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

func TestRegister_CustomerIsActiveImmediately(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result := h.register(t, registration("Carla", "carla@example.com", domain.RoleCustomer))
	if result.Pending {
		t.Fatal("customer registration should not be pending")
	}
	if result.Message != "Registration successful! You can now login." {
		t.Errorf("Message = %q", result.Message)
	}
	if result.User.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}

	got, err := h.accounts.FindByEmail(ctx, "carla@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if got.Role != domain.RoleCustomer {
		t.Errorf("Role = %q, want customer", got.Role)
	}
}

func TestRegister_DeveloperGoesToQueue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	result := h.register(t, registration("Dana Dev", "dana@example.com", domain.RoleDeveloper))
	if !result.Pending {
		t.Fatal("developer registration should be pending")
	}
	if result.Message != "Registration submitted! Waiting for owner approval." {
		t.Errorf("Message = %q", result.Message)
	}

	_, err := h.accounts.FindByEmail(ctx, "dana@example.com")
	assertCode(t, err, apperrors.CodeNotFound)

	pending, err := h.accounts.ListPendingDevelopers(ctx)
	if err != nil {
		t.Fatalf("ListPendingDevelopers() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Email != "dana@example.com" {
		t.Fatalf("pending = %+v", pending)
	}

	_, err = h.sessions.Login(ctx, "dana@example.com", "secret1")
	assertCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input func() RegisterInput
		code  string
	}{
		{
			name: "missing phone",
			input: func() RegisterInput {
				in := registration("A", "a@example.com", domain.RoleCustomer)
				in.Phone = "  "
				return in
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "password mismatch",
			input: func() RegisterInput {
				in := registration("A", "a@example.com", domain.RoleCustomer)
				in.ConfirmPassword = "secret2"
				return in
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "short password",
			input: func() RegisterInput {
				in := registration("A", "a@example.com", domain.RoleCustomer)
				in.Password, in.ConfirmPassword = "abc", "abc"
				return in
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "password over bcrypt limit",
			input: func() RegisterInput {
				in := registration("A", "a@example.com", domain.RoleCustomer)
				long := strings.Repeat("p", 80)
				in.Password, in.ConfirmPassword = long, long
				return in
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "unknown role",
			input: func() RegisterInput {
				return registration("A", "a@example.com", domain.Role("admin"))
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "owner without secret",
			input: func() RegisterInput {
				return registration("A", "a@example.com", domain.RoleOwner)
			},
			code: apperrors.CodeInvalidSecret,
		},
		{
			name: "owner with wrong secret",
			input: func() RegisterInput {
				in := registration("A", "a@example.com", domain.RoleOwner)
				in.SecretKey = "1234567"
				return in
			},
			code: apperrors.CodeInvalidSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.accounts.Register(context.Background(), tt.input())
			assertCode(t, err, tt.code)
			if _, err := h.accounts.FindByEmail(context.Background(), "a@example.com"); err == nil {
				t.Error("rejected registration was stored")
			}
		})
	}
}

func TestRegister_OwnerWithSecret(t *testing.T) {
	h := newHarness(t)
	owner := h.owner(t)
	if owner.Role != domain.RoleOwner {
		t.Fatalf("Role = %q, want owner", owner.Role)
	}
}

func TestRegister_DuplicateEmailAcrossStores(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.register(t, registration("Carla", "carla@example.com", domain.RoleCustomer))
	h.register(t, registration("Dana", "dana@example.com", domain.RoleDeveloper))

	_, err := h.accounts.Register(ctx, registration("Other", "carla@example.com", domain.RoleDeveloper))
	assertCode(t, err, apperrors.CodeDuplicateEmail)

	_, err = h.accounts.Register(ctx, registration("Other", "dana@example.com", domain.RoleCustomer))
	assertCode(t, err, apperrors.CodeDuplicateEmail)

	pending, _ := h.accounts.ListPendingDevelopers(ctx)
	if len(pending) != 1 {
		t.Errorf("pending count = %d, want 1", len(pending))
	}
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 8; i++ {
		role := domain.RoleCustomer
		if i%2 == 0 {
			role = domain.RoleDeveloper
		}
		wg.Add(1)
		go func(role domain.Role) {
			defer wg.Done()
			if _, err := h.accounts.Register(ctx, registration("Racer", "race@example.com", role)); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(role)
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want 1", successes)
	}
}

func TestSubmitDeveloper_RejectsOtherRoles(t *testing.T) {
	h := newHarness(t)
	_, err := h.accounts.SubmitDeveloper(context.Background(), registration("C", "c@example.com", domain.RoleCustomer))
	assertCode(t, err, apperrors.CodeValidation)

	dev, err := h.accounts.SubmitDeveloper(context.Background(), registration("D", "d@example.com", domain.RoleDeveloper))
	if err != nil {
		t.Fatalf("SubmitDeveloper() error = %v", err)
	}
	if dev.Role != domain.RoleDeveloper {
		t.Errorf("Role = %q", dev.Role)
	}
}

func TestApproveDeveloper(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.owner(t)

	pending := h.register(t, registration("Dana", "dana@example.com", domain.RoleDeveloper))
	dev, err := h.accounts.ApproveDeveloper(ctx, owner, pending.User.ID)
	if err != nil {
		t.Fatalf("ApproveDeveloper() error = %v", err)
	}
	if dev.Email != "dana@example.com" {
		t.Errorf("Email = %q", dev.Email)
	}

	found, err := h.accounts.FindByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.Role != domain.RoleDeveloper {
		t.Errorf("Role = %q", found.Role)
	}
	queue, _ := h.accounts.ListPendingDevelopers(ctx)
	if len(queue) != 0 {
		t.Errorf("queue = %+v, want empty", queue)
	}

	if _, err := h.sessions.Login(ctx, "dana@example.com", "secret1"); err != nil {
		t.Errorf("Login() after approval error = %v", err)
	}

	_, err = h.accounts.ApproveDeveloper(ctx, owner, pending.User.ID)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestRejectDeveloper(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pending := h.register(t, registration("Dana", "dana@example.com", domain.RoleDeveloper))
	if _, err := h.accounts.RejectDeveloper(ctx, nil, pending.User.ID); err != nil {
		t.Fatalf("RejectDeveloper() error = %v", err)
	}

	_, err := h.accounts.FindByEmail(ctx, "dana@example.com")
	assertCode(t, err, apperrors.CodeNotFound)
	queue, _ := h.accounts.ListPendingDevelopers(ctx)
	if len(queue) != 0 {
		t.Errorf("queue = %+v, want empty", queue)
	}

	// The email is free again after rejection.
	h.register(t, registration("Dana", "dana@example.com", domain.RoleCustomer))

	_, err = h.accounts.RejectDeveloper(ctx, nil, "missing")
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestAuthenticate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, registration("Carla", "carla@example.com", domain.RoleCustomer))

	if _, err := h.accounts.Authenticate(ctx, "carla@example.com", "secret1"); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	_, err := h.accounts.Authenticate(ctx, "carla@example.com", "wrong!")
	assertCode(t, err, apperrors.CodeInvalidCredentials)
	_, err = h.accounts.Authenticate(ctx, "nobody@example.com", "secret1")
	assertCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestRegister_PublishesEvents(t *testing.T) {
	h := newHarness(t)
	h.register(t, registration("Carla", "carla@example.com", domain.RoleCustomer))
	dev := h.register(t, registration("Dana", "dana@example.com", domain.RoleDeveloper))
	if _, err := h.accounts.ApproveDeveloper(context.Background(), nil, dev.User.ID); err != nil {
		t.Fatalf("ApproveDeveloper() error = %v", err)
	}

	want := []events.EventType{events.EventUserRegistered, events.EventDeveloperSubmitted, events.EventDeveloperApproved}
	got := h.published.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestApproveDeveloper_RejectsDuplicateName(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := h.owner(t)
	h.approvedDeveloper(t, "Alice Dev", "alice@techlearners.com")

	twin := h.register(t, registration("Alice Dev", "alice.two@techlearners.com", domain.RoleDeveloper))
	_, err := h.accounts.ApproveDeveloper(ctx, owner, twin.User.ID)
	assertCode(t, err, apperrors.CodeDuplicateName)

	queue, err := h.accounts.ListPendingDevelopers(ctx)
	if err != nil {
		t.Fatalf("ListPendingDevelopers() error = %v", err)
	}
	if len(queue) != 1 || queue[0].ID != twin.User.ID {
		t.Fatalf("queue = %+v, want the second Alice Dev still pending", queue)
	}
	_, err = h.accounts.FindByEmail(ctx, "alice.two@techlearners.com")
	assertCode(t, err, apperrors.CodeNotFound)

	devs, _ := h.accounts.ListDevelopers(ctx)
	if len(devs) != 1 {
		t.Errorf("developers = %+v, want one Alice Dev", devs)
	}
}
