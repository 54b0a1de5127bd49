package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/api/dto"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/service"
)

// DeveloperHandler serves the developer dashboard.
type DeveloperHandler struct {
	ideas *service.IdeaService
}

// NewDeveloperHandler constructs handler.
func NewDeveloperHandler(ideas *service.IdeaService) *DeveloperHandler {
	return &DeveloperHandler{ideas: ideas}
}

// ListIdeas GET /developer/ideas.
func (h *DeveloperHandler) ListIdeas(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ideas, err := h.ideas.ListByDeveloper(c.UserContext(), user.Name)
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaList(ideas))
}

// Start POST /developer/ideas/:id/start.
func (h *DeveloperHandler) Start(c *fiber.Ctx) error {
	return h.transition(c, h.ideas.Start)
}

// Complete POST /developer/ideas/:id/complete.
func (h *DeveloperHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.ideas.Complete)
}

// AddProgress POST /developer/ideas/:id/progress.
func (h *DeveloperHandler) AddProgress(c *fiber.Ctx) error {
	return addProgress(c, h.ideas)
}

func (h *DeveloperHandler) transition(c *fiber.Ctx, move func(context.Context, *domain.User, string) (*domain.Idea, error)) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	idea, err := move(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaResponse(idea))
}

func addProgress(c *fiber.Ctx, ideas *service.IdeaService) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ProgressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	update, err := ideas.AppendProgressAs(c.UserContext(), user, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return created(c, dto.NewProgressResponse(*update))
}
