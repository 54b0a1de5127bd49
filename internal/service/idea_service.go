package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/repository"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

const progressPreviewLength = 140

// SubmitIdeaInput describes a customer idea submission.
type SubmitIdeaInput struct {
	CustomerName  string
	CustomerEmail string
	Title         string
	Description   string
}

// IdeaStats counts ideas per status for the owner dashboard.
type IdeaStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// StatusInfo pairs a status value with its display label.
type StatusInfo struct {
	Value domain.IdeaStatus `json:"value"`
	Label string            `json:"label"`
}

// IdeaService coordinates idea submission, listing and progress tracking.
type IdeaService struct {
	ideas      repository.IdeaRepository
	accounts   *AccountService
	workflow   *WorkflowEngine
	dispatcher events.Dispatcher
	now        Clock
}

// IdeaDependencies bundles collaborators for the idea service.
type IdeaDependencies struct {
	IdeaRepo   repository.IdeaRepository
	Accounts   *AccountService
	Workflow   *WorkflowEngine
	Dispatcher events.Dispatcher
	Clock      Clock
}

// NewIdeaService constructs the service.
func NewIdeaService(deps IdeaDependencies) *IdeaService {
	return &IdeaService{
		ideas:      deps.IdeaRepo,
		accounts:   deps.Accounts,
		workflow:   deps.Workflow,
		dispatcher: deps.Dispatcher,
		now:        deps.Clock.orDefault(),
	}
}

// Submit stores a new pending idea for the customer.
func (s *IdeaService) Submit(ctx context.Context, input SubmitIdeaInput) (*domain.Idea, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)

	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.CustomerEmail == "" {
		missing = append(missing, "customer_email")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill in all fields", map[string]any{"missing": missing})
	}

	now := s.now()
	idea := &domain.Idea{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: input.CustomerEmail,
		Status:        domain.IdeaStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		Progress:      []domain.ProgressUpdate{},
	}
	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventIdeaSubmitted,
		SubjectID: idea.ID,
		Actor:     events.Actor{Role: domain.RoleCustomer, Email: idea.CustomerEmail},
		Payload:   events.IdeaSubmittedPayload{Title: idea.Title, CustomerEmail: idea.CustomerEmail},
	})
	return idea, nil
}

// Get returns one idea.
func (s *IdeaService) Get(ctx context.Context, id string) (*domain.Idea, error) {
	idea, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "idea", map[string]any{"id": id})
	}
	return idea, nil
}

// ListByCustomer returns the ideas submitted under the email.
func (s *IdeaService) ListByCustomer(ctx context.Context, email string) ([]domain.Idea, error) {
	return s.list(ctx, repository.IdeaFilter{CustomerEmail: &email})
}

// ListByDeveloper returns the ideas assigned to the named developer.
func (s *IdeaService) ListByDeveloper(ctx context.Context, name string) ([]domain.Idea, error) {
	return s.list(ctx, repository.IdeaFilter{AssignedDeveloper: &name})
}

// ListAll returns every idea, optionally narrowed to some statuses.
func (s *IdeaService) ListAll(ctx context.Context, statuses ...domain.IdeaStatus) ([]domain.Idea, error) {
	for _, status := range statuses {
		if !status.Valid() {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
		}
	}
	return s.list(ctx, repository.IdeaFilter{Statuses: statuses})
}

func (s *IdeaService) list(ctx context.Context, filter repository.IdeaFilter) ([]domain.Idea, error) {
	ideas, err := s.ideas.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return ideas, nil
}

// AppendProgress adds an entry to the idea's progress log. Terminal ideas
// still accept entries.
func (s *IdeaService) AppendProgress(ctx context.Context, ideaID, message string) (*domain.ProgressUpdate, error) {
	return s.appendProgress(ctx, nil, ideaID, message)
}

// AppendProgressAs appends on behalf of actor. Developers may only write to
// ideas assigned to them; customers may not write at all.
func (s *IdeaService) AppendProgressAs(ctx context.Context, actor *domain.User, ideaID, message string) (*domain.ProgressUpdate, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if actor.Role != domain.RoleDeveloper && actor.Role != domain.RoleOwner {
		return nil, apperrors.NewForbidden("only developers and owners can post progress")
	}
	return s.appendProgress(ctx, actor, ideaID, message)
}

func (s *IdeaService) appendProgress(ctx context.Context, actor *domain.User, ideaID, message string) (*domain.ProgressUpdate, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("progress message is required", nil)
	}

	update := domain.ProgressUpdate{ID: uuid.NewString(), Message: message}
	_, err := s.ideas.Mutate(ctx, ideaID, func(idea *domain.Idea) error {
		if actor != nil && actor.Role == domain.RoleDeveloper && !idea.AssignedTo(actor.Name) {
			return apperrors.NewForbidden("idea is not assigned to you")
		}
		now := s.now()
		update.Timestamp = now
		idea.Progress = append(idea.Progress, update)
		idea.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "idea", map[string]any{"id": ideaID})
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:      events.EventIdeaProgressAdded,
		SubjectID: ideaID,
		Actor:     actorFromUser(actor),
		Payload:   events.IdeaProgressAddedPayload{UpdateID: update.ID, MessagePreview: stringPreview(message, progressPreviewLength)},
	})
	return &update, nil
}

// Assign hands a pending idea to an approved developer.
func (s *IdeaService) Assign(ctx context.Context, actor *domain.User, ideaID, developerName string) (*domain.Idea, error) {
	developerName = strings.TrimSpace(developerName)
	if developerName == "" {
		return nil, apperrors.NewValidationError("developer name is required", nil)
	}
	ok, err := s.accounts.developerNamed(ctx, developerName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewNotFound("developer", map[string]any{"name": developerName})
	}
	return s.workflow.Transition(ctx, TransitionRequest{
		IdeaID:        ideaID,
		Target:        domain.IdeaStatusAssigned,
		ActingRole:    roleOf(actor),
		DeveloperName: developerName,
		Actor:         actor,
	})
}

// Start moves an assigned idea into progress.
func (s *IdeaService) Start(ctx context.Context, actor *domain.User, ideaID string) (*domain.Idea, error) {
	return s.transition(ctx, actor, ideaID, domain.IdeaStatusInProgress)
}

// Complete marks an in-progress idea as done.
func (s *IdeaService) Complete(ctx context.Context, actor *domain.User, ideaID string) (*domain.Idea, error) {
	return s.transition(ctx, actor, ideaID, domain.IdeaStatusCompleted)
}

// Cancel withdraws an assigned or in-progress idea.
func (s *IdeaService) Cancel(ctx context.Context, actor *domain.User, ideaID string) (*domain.Idea, error) {
	return s.transition(ctx, actor, ideaID, domain.IdeaStatusCancelled)
}

func (s *IdeaService) transition(ctx context.Context, actor *domain.User, ideaID string, target domain.IdeaStatus) (*domain.Idea, error) {
	return s.workflow.Transition(ctx, TransitionRequest{
		IdeaID:     ideaID,
		Target:     target,
		ActingRole: roleOf(actor),
		Actor:      actor,
	})
}

// Stats counts every idea by status.
func (s *IdeaService) Stats(ctx context.Context) (*IdeaStats, error) {
	ideas, err := s.list(ctx, repository.IdeaFilter{})
	if err != nil {
		return nil, err
	}
	stats := &IdeaStats{Total: len(ideas)}
	for _, idea := range ideas {
		switch idea.Status {
		case domain.IdeaStatusPending:
			stats.Pending++
		case domain.IdeaStatusAssigned:
			stats.Assigned++
		case domain.IdeaStatusInProgress:
			stats.InProgress++
		case domain.IdeaStatusCompleted:
			stats.Completed++
		case domain.IdeaStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

// Statuses lists every idea status with its label in lifecycle order.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, 0, len(domain.IdeaStatuses))
	for _, status := range domain.IdeaStatuses {
		out = append(out, StatusInfo{Value: status, Label: status.Label()})
	}
	return out
}

func roleOf(user *domain.User) domain.Role {
	if user == nil {
		return ""
	}
	return user.Role
}
