package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/api/dto"
	"github.com/spec-kit/ideaflow/internal/service"
)

// ContactHandler turns contact form posts into mail drafts.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Compose POST /contact.
func (h *ContactHandler) Compose(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	draft, err := h.contact.Compose(c.UserContext(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return ok(c, draft)
}
