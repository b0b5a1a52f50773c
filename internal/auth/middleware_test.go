package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

func middlewareApp(t *testing.T) (*fiber.App, *TokenManager, *fakeSessionStore) {
	t.Helper()
	resolver, tm, sessions, _ := resolverFixture(t, time.Minute)

	app := fiber.New()
	app.Use(NewMiddleware(resolver).Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user := IdentityFromContext(c)
		if user == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(user.ID)
	})
	return app, tm, sessions
}

func whoami(t *testing.T, app *fiber.App, decorate func(*http.Request)) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if decorate != nil {
		decorate(req)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestMiddlewareBearerIdentity(t *testing.T) {
	app, tm, _ := middlewareApp(t)
	pair, err := tm.Issue("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got := whoami(t, app, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	})
	if got != "alice" {
		t.Fatalf("identity %q, want alice", got)
	}
}

func TestMiddlewareSessionCookieIdentity(t *testing.T) {
	app, _, sessions := middlewareApp(t)
	if _, err := sessions.Login(context.Background(), "sess-1", domain.SessionNamespaceDiner, "carol"); err != nil {
		t.Fatalf("session login: %v", err)
	}

	got := whoami(t, app, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess-1"})
	})
	if got != "carol" {
		t.Fatalf("identity %q, want carol", got)
	}
}

func TestMiddlewareAnonymousPassesThrough(t *testing.T) {
	app, _, _ := middlewareApp(t)

	if got := whoami(t, app, nil); got != "anonymous" {
		t.Fatalf("identity %q, want anonymous", got)
	}
}

func TestMiddlewareMalformedAuthorizationHeader(t *testing.T) {
	app, _, _ := middlewareApp(t)

	got := whoami(t, app, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})
	if got != "anonymous" {
		t.Fatalf("identity %q, want anonymous", got)
	}
}

func TestBearerFromHeader(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer abc":       "abc",
		"Bearer  abc ":     "abc",
		"Basic dXNlcjpwdw": "",
		"Bearer":           "",
	}
	for header, want := range cases {
		if got := bearerFromHeader(header); got != want {
			t.Errorf("bearerFromHeader(%q) = %q, want %q", header, got, want)
		}
	}
}
