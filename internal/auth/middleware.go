package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

const identityKey = "auth_identity"

// SessionCookie is the cookie carrying the fallback session key.
const SessionCookie = "restaurant_session"

// Middleware resolves the caller's identity on every request and stashes it
// in locals. It never rejects: resolution degrades to anonymous and the
// per-handler Authorize call decides access.
type Middleware struct {
	resolver *Resolver
}

// NewMiddleware constructs the middleware.
func NewMiddleware(resolver *Resolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// Handle resolves credentials from the Authorization header and the session
// cookie.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	creds := domain.Credentials{
		Bearer:     bearerFromHeader(c.Get("Authorization")),
		SessionKey: c.Cookies(SessionCookie),
	}

	user, err := m.resolver.ResolveIdentity(c.UserContext(), creds)
	if err != nil {
		return apperrors.MapError(err)
	}
	if user != nil {
		c.Locals(identityKey, user)
	}
	return c.Next()
}

func bearerFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFromContext retrieves the resolved user; nil means anonymous.
func IdentityFromContext(c *fiber.Ctx) *domain.User {
	val := c.Locals(identityKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
