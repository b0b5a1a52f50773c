package service

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func accountFixture() (*AccountService, *stubUserRepo) {
	users := newStubUserRepo()
	return NewAccountService(users, 4), users
}

func TestRegisterForcesCustomerRole(t *testing.T) {
	svc, _ := accountFixture()

	user, err := svc.Register(context.Background(), AccountInput{
		Name:     "dana",
		Email:    "dana@example.com",
		Password: "letmein",
		Role:     domain.RoleManager, // must be ignored
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("self-registration produced role %s", user.Role)
	}
	if !auth.VerifyPassword(user.PasswordHash, "letmein") {
		t.Fatal("stored hash does not verify")
	}
}

func TestCreateAccountKeepsRequestedRole(t *testing.T) {
	svc, _ := accountFixture()

	user, err := svc.CreateAccount(context.Background(), AccountInput{
		Name:     "greta",
		Email:    "greta@example.com",
		Password: "letmein",
		Role:     domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleStaff {
		t.Fatalf("got role %s, want STAFF", user.Role)
	}
}

func TestRegisterDuplicateNameConflicts(t *testing.T) {
	svc, _ := accountFixture()

	input := AccountInput{Name: "dana", Email: "dana@example.com", Password: "letmein"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	input.Email = "other@example.com"
	_, err := svc.Register(context.Background(), input)
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := accountFixture()

	if _, err := svc.Register(context.Background(), AccountInput{
		Name: "dana", Email: "dana@example.com", Password: "letmein",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), AccountInput{
		Name: "other", Email: "dana@example.com", Password: "letmein",
	})
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestConcurrentRegistersSameNameOneWins(t *testing.T) {
	svc, _ := accountFixture()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), AccountInput{
				Name:     "dana",
				Email:    "dana@example.com",
				Password: "letmein",
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.IsCode(err, "CONFLICT"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != attempts-1 {
		t.Fatalf("got %d successes and %d conflicts, want 1 and %d", ok, conflicts, attempts-1)
	}
}

func TestUpdateInfoRejectsTakenName(t *testing.T) {
	svc, users := accountFixture()
	users.add(&domain.User{ID: "u1", Name: "dana", Email: "dana@example.com", Role: domain.RoleCustomer})
	users.add(&domain.User{ID: "u2", Name: "erik", Email: "erik@example.com", Role: domain.RoleCustomer})

	_, err := svc.UpdateInfo(context.Background(), "u2", UpdateInput{Name: "dana"})
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestUpdateInfoKeepingOwnNameIsAllowed(t *testing.T) {
	svc, users := accountFixture()
	users.add(&domain.User{ID: "u1", Name: "dana", Email: "dana@example.com", Role: domain.RoleCustomer})

	user, err := svc.UpdateInfo(context.Background(), "u1", UpdateInput{Name: "dana", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Phone != "555-0101" {
		t.Fatalf("phone not updated: %q", user.Phone)
	}
}

func TestUpdateRole(t *testing.T) {
	svc, users := accountFixture()
	users.add(&domain.User{ID: "u1", Name: "dana", Role: domain.RoleCustomer})

	user, err := svc.UpdateRole(context.Background(), "u1", domain.RoleStaff)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if user.Role != domain.RoleStaff {
		t.Fatalf("got role %s, want STAFF", user.Role)
	}
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	svc, users := accountFixture()
	manager := users.add(&domain.User{ID: "m1", Name: "greta", Role: domain.RoleManager})

	err := svc.DeleteAccount(context.Background(), manager, manager.ID)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, users := accountFixture()
	manager := users.add(&domain.User{ID: "m1", Name: "greta", Role: domain.RoleManager})
	users.add(&domain.User{ID: "u1", Name: "dana", Role: domain.RoleCustomer})

	if err := svc.DeleteAccount(context.Background(), manager, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := svc.GetAccount(context.Background(), "u1")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestDeleteMissingAccount(t *testing.T) {
	svc, users := accountFixture()
	manager := users.add(&domain.User{ID: "m1", Name: "greta", Role: domain.RoleManager})

	err := svc.DeleteAccount(context.Background(), manager, "nope")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
