package domain

import "time"

// Role enumerates the account roles. Every authorization site must handle
// all three values.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleManager  Role = "MANAGER"
)

// ParseRole validates a role value supplied by a caller.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleCustomer, RoleStaff, RoleManager:
		return Role(value), true
	}
	return "", false
}

// StaffRoles are the roles accepted by the staff login flow and the
// staff-namespace session.
func StaffRoles() []Role {
	return []Role{RoleStaff, RoleManager}
}

// IsStaff reports whether the role grants staff-level access.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleManager
}

// User is the domain model for one account: a customer, a staff member or a
// manager.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
