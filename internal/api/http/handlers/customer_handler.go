package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/api/dto"
	"github.com/spec-kit/ideaflow/internal/service"
)

// CustomerHandler serves the customer dashboard.
type CustomerHandler struct {
	ideas *service.IdeaService
}

// NewCustomerHandler constructs handler.
func NewCustomerHandler(ideas *service.IdeaService) *CustomerHandler {
	return &CustomerHandler{ideas: ideas}
}

// SubmitIdea POST /customer/ideas.
func (h *CustomerHandler) SubmitIdea(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.SubmitIdeaRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	idea, err := h.ideas.Submit(c.UserContext(), service.SubmitIdeaInput{
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		Title:         req.Title,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewIdeaResponse(idea))
}

// ListIdeas GET /customer/ideas.
func (h *CustomerHandler) ListIdeas(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ideas, err := h.ideas.ListByCustomer(c.UserContext(), user.Email)
	if err != nil {
		return err
	}
	return ok(c, dto.NewIdeaList(ideas))
}

// IdeaStatuses GET /ideas/statuses.
func IdeaStatuses(c *fiber.Ctx) error {
	return ok(c, service.Statuses())
}
