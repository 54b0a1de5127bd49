package service

import (
	"context"
	"strings"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/observability"
	"github.com/spec-kit/ideaflow/internal/repository"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

// transitionRule is one edge of the idea lifecycle and the role allowed to
// take it.
type transitionRule struct {
	to   domain.IdeaStatus
	role domain.Role
}

var workflowRules = map[domain.IdeaStatus][]transitionRule{
	domain.IdeaStatusPending: {
		{to: domain.IdeaStatusAssigned, role: domain.RoleOwner},
	},
	domain.IdeaStatusAssigned: {
		{to: domain.IdeaStatusInProgress, role: domain.RoleDeveloper},
		{to: domain.IdeaStatusCancelled, role: domain.RoleOwner},
	},
	domain.IdeaStatusInProgress: {
		{to: domain.IdeaStatusCompleted, role: domain.RoleDeveloper},
		{to: domain.IdeaStatusCancelled, role: domain.RoleOwner},
	},
}

// CanTransition reports whether role may move an idea from one status to
// another.
func CanTransition(from, to domain.IdeaStatus, role domain.Role) bool {
	for _, rule := range workflowRules[from] {
		if rule.to == to && rule.role == role {
			return true
		}
	}
	return false
}

// AllowedTargets lists the statuses role may move an idea to from the given
// status.
func AllowedTargets(from domain.IdeaStatus, role domain.Role) []domain.IdeaStatus {
	var targets []domain.IdeaStatus
	for _, rule := range workflowRules[from] {
		if rule.role == role {
			targets = append(targets, rule.to)
		}
	}
	return targets
}

// TransitionRequest asks the engine to move one idea.
type TransitionRequest struct {
	IdeaID     string
	Target     domain.IdeaStatus
	ActingRole domain.Role
	// DeveloperName is required when Target is assigned.
	DeveloperName string
	// Actor, when set to a developer, must be the idea's assignee.
	Actor *domain.User
}

// WorkflowEngine enforces the idea state machine.
type WorkflowEngine struct {
	ideas      repository.IdeaRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	now        Clock
}

// WorkflowDependencies bundles collaborators for the workflow engine.
type WorkflowDependencies struct {
	IdeaRepo   repository.IdeaRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Clock      Clock
}

// NewWorkflowEngine constructs the engine.
func NewWorkflowEngine(deps WorkflowDependencies) *WorkflowEngine {
	return &WorkflowEngine{
		ideas:      deps.IdeaRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		now:        deps.Clock.orDefault(),
	}
}

// Transition applies req atomically. Nothing is written when any check fails.
func (w *WorkflowEngine) Transition(ctx context.Context, req TransitionRequest) (*domain.Idea, error) {
	if !req.Target.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": req.Target})
	}
	developer := strings.TrimSpace(req.DeveloperName)

	var from domain.IdeaStatus
	updated, err := w.ideas.Mutate(ctx, req.IdeaID, func(idea *domain.Idea) error {
		from = idea.Status
		if !CanTransition(idea.Status, req.Target, req.ActingRole) {
			return apperrors.NewIllegalTransition(string(idea.Status), string(req.Target), map[string]any{
				"role": req.ActingRole,
			})
		}
		if req.Actor != nil && req.Actor.Role == domain.RoleDeveloper && !idea.AssignedTo(req.Actor.Name) {
			return apperrors.NewForbidden("idea is not assigned to you")
		}
		if req.Target == domain.IdeaStatusAssigned {
			if developer == "" {
				return apperrors.NewValidationError("developer name is required", nil)
			}
			idea.AssignedDeveloper = &developer
		}
		idea.Status = req.Target
		idea.UpdatedAt = w.now()
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, "idea", map[string]any{"id": req.IdeaID})
	}

	w.metrics.RecordTransition(string(from), string(updated.Status))
	actor := actorFromUser(req.Actor)
	if req.Actor == nil {
		actor.Role = req.ActingRole
	}
	publishEvent(ctx, w.dispatcher, w.now, events.Event{
		Type:      events.EventIdeaStatusChanged,
		SubjectID: updated.ID,
		Actor:     actor,
		Payload:   events.IdeaStatusChangedPayload{OldStatus: from, NewStatus: updated.Status},
	})
	if updated.Status == domain.IdeaStatusAssigned {
		publishEvent(ctx, w.dispatcher, w.now, events.Event{
			Type:      events.EventIdeaAssigned,
			SubjectID: updated.ID,
			Actor:     actor,
			Payload:   events.IdeaAssignedPayload{Developer: developer},
		})
	}
	return updated, nil
}
