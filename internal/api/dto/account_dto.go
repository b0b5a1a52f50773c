package dto

// RegisterRequest payload for customer self-registration.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=200"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Phone    string `json:"phone_num" form:"phone_num" validate:"max=20"`
}

// CreateAccountRequest payload for manager-issued account creation.
type CreateAccountRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=200"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Phone    string `json:"phone_num" form:"phone_num" validate:"max=20"`
	Role     string `json:"role" form:"role" validate:"required"`
}

// UpdateUserRequest payload for account updates; empty fields are ignored.
type UpdateUserRequest struct {
	UserID   string `json:"user_id" form:"user_id" validate:"required"`
	Name     string `json:"name" form:"name" validate:"max=100"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=200"`
	Phone    string `json:"phone_num" form:"phone_num" validate:"max=20"`
	Password string `json:"password" form:"password" validate:"omitempty,min=8"`
}

// UpdateRoleRequest payload for role changes.
type UpdateRoleRequest struct {
	UserID  string `json:"user_id" form:"user_id" validate:"required"`
	NewRole string `json:"new_role" form:"new_role" validate:"required"`
}

// DeleteAccountRequest payload for account deletion.
type DeleteAccountRequest struct {
	UserID string `json:"user_id" form:"user_id" validate:"required"`
}
