package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

func TestIssueAndValidateAccess(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute, time.Hour)

	pair, err := tm.Issue("user-1", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if !pair.RefreshExpiresAt.After(pair.AccessExpiresAt) {
		t.Fatalf("refresh token must outlive access token")
	}

	userID, err := tm.ValidateAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate fresh token: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %s", userID)
	}
}

func TestValidateAccessExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Millisecond, time.Hour)

	pair, err := tm.Issue("user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.ValidateAccess(pair.AccessToken); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestValidateAccessWrongKey(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute, time.Hour)
	verifier := NewTokenManager("secret-b", time.Minute, time.Hour)

	pair, err := issuer.Issue("user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.ValidateAccess(pair.AccessToken); err == nil {
		t.Fatalf("expected token signed with another key to be rejected")
	}
}

func TestValidateAccessMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute, time.Hour)
	if _, err := tm.ValidateAccess("not.a.jwt"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute, time.Hour)

	pair, err := tm.Issue("user-1", domain.RoleStaff)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.ValidateAccess(pair.RefreshToken); err == nil {
		t.Fatalf("refresh token must not validate as access token")
	}
}

func TestRefreshAccess(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute, time.Hour)

	pair, err := tm.Issue("user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	access, expiresAt, err := tm.RefreshAccess(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("new access token already expired")
	}

	userID, err := tm.ValidateAccess(access)
	if err != nil {
		t.Fatalf("validate refreshed token: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %s", userID)
	}

	// the refresh token stays valid; there is no rotation
	if _, _, err := tm.RefreshAccess(pair.RefreshToken); err != nil {
		t.Fatalf("second refresh with the same token: %v", err)
	}
}

func TestRefreshAccessRejectsAccessToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute, time.Hour)

	pair, err := tm.Issue("user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := tm.RefreshAccess(pair.AccessToken); err == nil {
		t.Fatalf("access token must not be exchangeable for a new access token")
	}
}
