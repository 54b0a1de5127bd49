package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/api/dto"
	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/service"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *service.SessionManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.accounts.Register(c.UserContext(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		SecretKey:       req.SecretKey,
	})
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if result.Pending {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data": dto.RegisterResponse{
			User:    dto.NewUserResponse(result.User),
			Pending: result.Pending,
			Message: result.Message,
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	login, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"user": dto.NewUserResponse(&login.Session.User),
		"auth": dto.AuthResponse{Token: login.Token, ExpiresAt: login.ExpiresAt},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.sessions.Logout(c.UserContext(), principal.SessionID); err != nil {
		return err
	}
	return ok(c, fiber.Map{"logged_out": true})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	session, err := h.sessions.Current(c.UserContext(), principal.SessionID)
	if err != nil {
		return err
	}
	return ok(c, dto.SessionResponse{
		User:      dto.NewUserResponse(principal.User),
		LoginTime: session.LoginTime,
		ExpiresAt: session.ExpiresAt(h.sessions.TTL()),
	})
}
