package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// UserSource is the identity lookup the resolver needs from persistence.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver turns request credentials into an identity, or anonymous.
type Resolver struct {
	tokens   *TokenManager
	sessions SessionStore
	users    UserSource
}

// NewResolver builds the resolver.
func NewResolver(tokens *TokenManager, sessions SessionStore, users UserSource) *Resolver {
	return &Resolver{tokens: tokens, sessions: sessions, users: users}
}

// ResolveIdentity resolves the caller, in strict order:
//
//  1. A valid bearer token wins outright. A token for a user that no longer
//     exists falls through instead of failing, so stale tokens for deleted
//     accounts degrade to the session path.
//  2. The staff session namespace, accepted only for STAFF or MANAGER users.
//  3. The diner session namespace, accepted only for CUSTOMER users.
//  4. Anonymous (nil user).
//
// A request holding both a valid token and a stale session is always the
// token's identity; a request with an expired token but a live session stays
// usable via the session. Only infrastructure failures return an error.
func (r *Resolver) ResolveIdentity(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if creds.Bearer != "" {
		if userID, err := r.tokens.ValidateAccess(creds.Bearer); err == nil {
			user, err := r.users.GetByID(ctx, userID)
			switch {
			case err == nil:
				return user, nil
			case errors.Is(err, pgx.ErrNoRows):
				// stale token for a deleted account
			default:
				return nil, err
			}
		}
	}

	if user, err := r.resolveSession(ctx, creds.SessionKey, domain.SessionNamespaceStaff); err != nil {
		return nil, err
	} else if user != nil && user.Role.IsStaff() {
		return user, nil
	}

	if user, err := r.resolveSession(ctx, creds.SessionKey, domain.SessionNamespaceDiner); err != nil {
		return nil, err
	} else if user != nil && user.Role == domain.RoleCustomer {
		return user, nil
	}

	return nil, nil
}

func (r *Resolver) resolveSession(ctx context.Context, sessionKey string, ns domain.SessionNamespace) (*domain.User, error) {
	if sessionKey == "" {
		return nil, nil
	}
	userID, err := r.sessions.Resolve(ctx, ns, sessionKey)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}
	user, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
