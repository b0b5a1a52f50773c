package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AccountService handles account lifecycle: registration, manager-issued
// creation, updates, role changes and deletion.
type AccountService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository, bcryptCost int) *AccountService {
	return &AccountService{users: users, bcryptCost: bcryptCost}
}

// AccountInput carries fields for account creation.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
}

// Register creates a self-registered CUSTOMER account.
func (s *AccountService) Register(ctx context.Context, input AccountInput) (*domain.User, error) {
	input.Role = domain.RoleCustomer
	return s.create(ctx, input)
}

// CreateAccount is the manager-issued creation path; any role is allowed.
func (s *AccountService) CreateAccount(ctx context.Context, input AccountInput) (*domain.User, error) {
	return s.create(ctx, input)
}

func (s *AccountService) create(ctx context.Context, input AccountInput) (*domain.User, error) {
	if err := s.checkUnique(ctx, input.Name, input.Email, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateInput carries optional fields for an account update; empty fields
// are left untouched.
type UpdateInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateInfo mutates an account. Authorization (self or manager) has
// already been decided by the caller.
func (s *AccountService) UpdateInfo(ctx context.Context, userID string, input UpdateInput) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, input.Name, input.Email, userID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateRole changes an account's role within the closed role set.
func (s *AccountService) UpdateRole(ctx context.Context, userID string, newRole domain.Role) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = newRole
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteAccount removes an account. A manager may not delete their own.
func (s *AccountService) DeleteAccount(ctx context.Context, actor *domain.User, userID string) error {
	if actor != nil && actor.ID == userID {
		return apperrors.NewValidationError("cannot delete own account", nil)
	}

	err := s.users.Delete(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", nil)
	}
	return err
}

// GetAccount loads one account.
func (s *AccountService) GetAccount(ctx context.Context, userID string) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

// ListAccounts returns every account.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", nil)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// checkUnique rejects a name or email already held by another account. The
// DB unique constraints remain the arbiter for concurrent writers; this
// pre-check just gives the common case a clean CONFLICT.
func (s *AccountService) checkUnique(ctx context.Context, name, email, excludeID string) error {
	if name != "" {
		taken, err := s.users.ExistsWithName(ctx, name, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflict("name already taken", nil)
		}
	}
	if email != "" {
		taken, err := s.users.ExistsWithEmail(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflict("email already taken", nil)
		}
	}
	return nil
}
