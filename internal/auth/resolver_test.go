package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

type fakeUserSource struct {
	users map[string]*domain.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeSessionStore struct {
	entries map[domain.SessionNamespace]map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{entries: map[domain.SessionNamespace]map[string]string{
		domain.SessionNamespaceStaff: {},
		domain.SessionNamespaceDiner: {},
	}}
}

func (f *fakeSessionStore) Login(_ context.Context, sessionKey string, ns domain.SessionNamespace, userID string) (string, error) {
	if sessionKey == "" {
		sessionKey = "generated-key"
	}
	f.entries[ns][sessionKey] = userID
	return sessionKey, nil
}

func (f *fakeSessionStore) Resolve(_ context.Context, ns domain.SessionNamespace, sessionKey string) (string, error) {
	return f.entries[ns][sessionKey], nil
}

func (f *fakeSessionStore) Logout(_ context.Context, sessionKey string) error {
	for _, byKey := range f.entries {
		delete(byKey, sessionKey)
	}
	return nil
}

func resolverFixture(t *testing.T, accessTTL time.Duration) (*Resolver, *TokenManager, *fakeSessionStore, *fakeUserSource) {
	t.Helper()
	tm := NewTokenManager("resolver-secret", accessTTL, time.Hour)
	sessions := newFakeSessionStore()
	users := &fakeUserSource{users: map[string]*domain.User{
		"alice": {ID: "alice", Name: "alice", Role: domain.RoleManager},
		"bob":   {ID: "bob", Name: "bob", Role: domain.RoleStaff},
		"carol": {ID: "carol", Name: "carol", Role: domain.RoleCustomer},
	}}
	return NewResolver(tm, sessions, users), tm, sessions, users
}

func TestResolveBearerTakesPrecedenceOverSession(t *testing.T) {
	resolver, tm, sessions, _ := resolverFixture(t, time.Minute)

	pair, err := tm.Issue("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// stale staff session points at a different identity
	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceStaff, "bob"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{
		Bearer:     pair.AccessToken,
		SessionKey: "sess-1",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user == nil || user.ID != "alice" {
		t.Fatalf("expected token identity alice, got %+v", user)
	}
}

func TestResolveExpiredBearerFallsBackToSession(t *testing.T) {
	resolver, tm, sessions, _ := resolverFixture(t, time.Millisecond)

	pair, err := tm.Issue("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceDiner, "carol"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{
		Bearer:     pair.AccessToken,
		SessionKey: "sess-1",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user == nil || user.ID != "carol" {
		t.Fatalf("expected session identity carol, got %+v", user)
	}
}

func TestResolveStaleTokenForDeletedAccountFallsThrough(t *testing.T) {
	resolver, tm, sessions, users := resolverFixture(t, time.Minute)

	pair, err := tm.Issue("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(users.users, "alice")

	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceStaff, "bob"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{
		Bearer:     pair.AccessToken,
		SessionKey: "sess-1",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user == nil || user.ID != "bob" {
		t.Fatalf("expected fallback to session identity bob, got %+v", user)
	}
}

func TestResolveStaffNamespaceRejectsCustomerRole(t *testing.T) {
	resolver, _, sessions, _ := resolverFixture(t, time.Minute)

	// a customer id wrongly sitting in the staff namespace must not resolve
	// there, but the diner namespace entry still counts
	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceStaff, "carol"); err != nil {
		t.Fatalf("session login: %v", err)
	}
	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceDiner, "carol"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{SessionKey: "sess-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user == nil || user.ID != "carol" {
		t.Fatalf("expected carol via diner namespace, got %+v", user)
	}
}

func TestResolveDinerNamespaceRejectsStaffRole(t *testing.T) {
	resolver, _, sessions, _ := resolverFixture(t, time.Minute)

	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceDiner, "bob"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{SessionKey: "sess-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil {
		t.Fatalf("staff identity in diner namespace must stay anonymous, got %+v", user)
	}
}

func TestResolveAnonymous(t *testing.T) {
	resolver, _, _, _ := resolverFixture(t, time.Minute)

	user, err := resolver.ResolveIdentity(context.Background(), domain.Credentials{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil {
		t.Fatalf("expected anonymous, got %+v", user)
	}
}
