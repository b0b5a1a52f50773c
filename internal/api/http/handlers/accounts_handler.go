package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AccountsHandler exposes account CRUD.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Register handles POST /api/accounts/register: public customer
// self-registration.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.UserContext(), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserSummary(user)})
}

// GetDinerInfo handles GET /api/accounts/diner/info?diner_id=. A customer
// may read their own record, a manager anyone's.
func (h *AccountsHandler) GetDinerInfo(c *fiber.Ctx) error {
	dinerID := c.Query("diner_id")
	if dinerID == "" {
		return apperrors.NewValidationError("diner_id parameter required", nil)
	}

	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleSelfOrManager, dinerID); err != nil {
		return err
	}

	diner, err := h.accounts.GetAccount(c.UserContext(), dinerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserSummary(diner)})
}

// UpdateInfo handles POST /api/accounts/user/update. The target owner is
// the user_id named in the request.
func (h *AccountsHandler) UpdateInfo(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleSelfOrManager, req.UserID); err != nil {
		return err
	}

	updated, err := h.accounts.UpdateInfo(c.UserContext(), req.UserID, service.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserSummary(updated)})
}

// Create handles POST /api/accounts/manager/add: manager-issued creation of
// any role.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return apperrors.NewValidationError("invalid role; must be CUSTOMER, STAFF or MANAGER", nil)
	}

	created, err := h.accounts.CreateAccount(c.UserContext(), service.AccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserSummary(created)})
}

// Delete handles POST /api/accounts/manager/remove.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.UserContext(), user, req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// UpdateRole handles POST /api/accounts/manager/update_role.
func (h *AccountsHandler) UpdateRole(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	role, ok := domain.ParseRole(req.NewRole)
	if !ok {
		return apperrors.NewValidationError("invalid role; must be CUSTOMER, STAFF or MANAGER", nil)
	}

	updated, err := h.accounts.UpdateRole(c.UserContext(), req.UserID, role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserSummary(updated)})
}

// List handles GET /api/accounts: the full account list for managers.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	users, err := h.accounts.ListAccounts(c.UserContext())
	if err != nil {
		return err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, dto.NewUserSummary(&users[i]))
	}
	return c.JSON(fiber.Map{"data": summaries})
}
