package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AuthHandler exposes login, refresh and logout.
type AuthHandler struct {
	auth       *service.AuthService
	sessionTTL time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: authService, sessionTTL: sessionTTL}
}

// StaffLogin handles POST /api/accounts/staff/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	return h.login(c, service.LoginKindStaff)
}

// DinerLogin handles POST /api/accounts/diner/login.
func (h *AuthHandler) DinerLogin(c *fiber.Ctx) error {
	return h.login(c, service.LoginKindCustomer)
}

func (h *AuthHandler) login(c *fiber.Ctx, kind service.LoginKind) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	// reuse an existing session key so staff and diner logins can coexist
	result, err := h.auth.Login(c.UserContext(), req.Name, req.Password, kind, c.Cookies(auth.SessionCookie))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.SessionKey,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserSummary(result.User),
			"auth": dto.NewAuthResponse(result.Tokens),
		},
	})
}

// Refresh handles POST /api/accounts/token/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	accessToken, expiresAt, err := h.auth.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Access: accessToken, AccessExpiresAt: expiresAt},
	})
}

// Logout handles POST /api/accounts/logout. It clears the server-side
// session and the cookie; it succeeds even for anonymous callers.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if key := c.Cookies(auth.SessionCookie); key != "" {
		if err := h.auth.Logout(c.UserContext(), key); err != nil {
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Me handles GET /api/accounts/me: the resolved identity summary.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleAuthenticated, ""); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": dto.NewUserSummary(user)})
}
