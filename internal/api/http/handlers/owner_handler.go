package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/api/dto"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/service"
)

// OwnerHandler serves the owner dashboard.
type OwnerHandler struct {
	ideas    *service.IdeaService
	accounts *service.AccountService
}

// NewOwnerHandler constructs handler.
func NewOwnerHandler(ideas *service.IdeaService, accounts *service.AccountService) *OwnerHandler {
	return &OwnerHandler{ideas: ideas, accounts: accounts}
}

// ListIdeas GET /owner/ideas?status=pending,assigned.
func (h *OwnerHandler) ListIdeas(c *fiber.Ctx) error {
	var statuses []domain.IdeaStatus
	for _, raw := range strings.Split(c.Query("status"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			statuses = append(statuses, domain.IdeaStatus(raw))
		}
	}
	ideas, err := h.ideas.ListAll(c.UserContext(), statuses...)
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaList(ideas))
}

// Stats GET /owner/ideas/stats.
func (h *OwnerHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ideas.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, stats)
}

// GetIdea GET /owner/ideas/:id.
func (h *OwnerHandler) GetIdea(c *fiber.Ctx) error {
	idea, err := h.ideas.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaResponse(idea))
}

// Assign POST /owner/ideas/:id/assign.
func (h *OwnerHandler) Assign(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.AssignIdeaRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	idea, err := h.ideas.Assign(c.UserContext(), user, c.Params("id"), req.Developer)
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaResponse(idea))
}

// Cancel POST /owner/ideas/:id/cancel.
func (h *OwnerHandler) Cancel(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	idea, err := h.ideas.Cancel(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaResponse(idea))
}

// AddProgress POST /owner/ideas/:id/progress.
func (h *OwnerHandler) AddProgress(c *fiber.Ctx) error {
	return addProgress(c, h.ideas)
}

// ListDevelopers GET /owner/developers.
func (h *OwnerHandler) ListDevelopers(c *fiber.Ctx) error {
	devs, err := h.accounts.ListDevelopers(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserList(devs))
}

// ListPendingDevelopers GET /owner/developers/pending.
func (h *OwnerHandler) ListPendingDevelopers(c *fiber.Ctx) error {
	pending, err := h.accounts.ListPendingDevelopers(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserList(pending))
}

// ApproveDeveloper POST /owner/developers/pending/:id/approve.
func (h *OwnerHandler) ApproveDeveloper(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	dev, err := h.accounts.ApproveDeveloper(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserResponse(dev))
}

// RejectDeveloper POST /owner/developers/pending/:id/reject.
func (h *OwnerHandler) RejectDeveloper(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	dev, err := h.accounts.RejectDeveloper(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserResponse(dev))
}
