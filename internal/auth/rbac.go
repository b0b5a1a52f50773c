package auth

import (
	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// Rule is the authorization requirement an operation binds to. Each handler
// binds to exactly one rule.
type Rule int

const (
	// RulePublic needs no identity at all.
	RulePublic Rule = iota
	// RuleAuthenticated needs any resolved identity.
	RuleAuthenticated
	// RuleSelfOrManager needs the caller to own the target resource, or to
	// be a MANAGER.
	RuleSelfOrManager
	// RuleManagerOnly needs a MANAGER.
	RuleManagerOnly
)

// Authorize applies a rule to the resolved identity. user is nil for an
// anonymous caller; targetOwnerID is consulted only by RuleSelfOrManager.
// Returns nil on allow, an UNAUTHENTICATED or FORBIDDEN error on deny.
func Authorize(user *domain.User, rule Rule, targetOwnerID string) error {
	if rule == RulePublic {
		return nil
	}
	if user == nil {
		return apperrors.NewUnauthenticated("authentication required")
	}

	switch rule {
	case RuleAuthenticated:
		return nil
	case RuleSelfOrManager:
		if user.Role == domain.RoleManager || user.ID == targetOwnerID {
			return nil
		}
		return apperrors.NewForbidden("can only access own resources")
	case RuleManagerOnly:
		if user.Role == domain.RoleManager {
			return nil
		}
		return apperrors.NewForbidden("manager access required")
	default:
		return apperrors.NewForbidden("unknown authorization rule")
	}
}
