package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// LoginKind selects which roles a login attempt may match.
type LoginKind string

const (
	LoginKindStaff    LoginKind = "staff"
	LoginKindCustomer LoginKind = "customer"
)

// LoginResult bundles what a successful login hands back to the client: the
// credential pair, the fallback session key and an identity summary.
type LoginResult struct {
	User       *domain.User
	Tokens     domain.TokenPair
	SessionKey string
}

// AuthService coordinates login, token refresh and logout.
type AuthService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, sessions auth.SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL()),
	}
}

// Login authenticates by display name and password. Staff logins match
// STAFF and MANAGER accounts, customer logins match CUSTOMER accounts. On
// success it issues a credential pair and binds the matching session
// namespace, reusing sessionKey so both namespaces can coexist in one
// session. Unknown name and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, name, password string, kind LoginKind, sessionKey string) (*LoginResult, error) {
	var roles []domain.Role
	var namespace domain.SessionNamespace
	switch kind {
	case LoginKindStaff:
		roles = domain.StaffRoles()
		namespace = domain.SessionNamespaceStaff
	case LoginKindCustomer:
		roles = []domain.Role{domain.RoleCustomer}
		namespace = domain.SessionNamespaceDiner
	default:
		return nil, apperrors.NewValidationError("unknown login kind", nil)
	}

	user, err := s.users.GetByNameAndRoles(ctx, name, roles)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInvalidCredential()
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredential()
	}

	tokens, err := s.tokenMgr.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	key, err := s.sessions.Login(ctx, sessionKey, namespace, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Tokens: tokens, SessionKey: key}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token stays valid; there is no rotation or revocation state.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, time.Time, error) {
	accessToken, expiresAt, err := s.tokenMgr.RefreshAccess(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredential()
	}
	return accessToken, expiresAt, nil
}

// Logout drops the server-side session, both namespaces included. Issued
// tokens remain valid until they expire.
func (s *AuthService) Logout(ctx context.Context, sessionKey string) error {
	return s.sessions.Logout(ctx, sessionKey)
}

// TokenManager exposes the underlying token manager for resolver wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
