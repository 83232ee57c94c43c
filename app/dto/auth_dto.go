// Package dto contains Data Transfer Objects for API request and response structures
package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150,username_format" example:"johndoe"`
	Email           string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password        string `json:"password" validate:"required,min=8,max=100,password_strength" example:"SecurePass123!"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password" example:"SecurePass123!"`
	FirstName       string `json:"first_name" validate:"omitempty,max=150" example:"John"`
	LastName        string `json:"last_name" validate:"omitempty,max=150" example:"Doe"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3,max=255" example:"johndoe or user@example.com"`
	Password   string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// ChangePasswordRequest represents the request to change the current password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=8,max=100" example:"OldPass123!"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=100,password_strength" example:"NewSecurePass123!"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword" example:"NewSecurePass123!"`
}

// AuthUserDTO represents user information returned by auth operations
type AuthUserDTO struct {
	ID          uint    `json:"id" example:"123"`
	UUID        string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username    string  `json:"username" example:"johndoe"`
	Email       string  `json:"email" example:"user@example.com"`
	FirstName   string  `json:"first_name" example:"John"`
	LastName    string  `json:"last_name" example:"Doe"`
	IsActive    *bool   `json:"is_active" example:"true"`
	IsStaff     *bool   `json:"is_staff" example:"false"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	LastLoginAt *string `json:"last_login_at,omitempty" example:"2024-01-15T16:30:00Z"`
}

// SessionDTO represents the issued token pair
type SessionDTO struct {
	AccessToken  string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken *string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string  `json:"token_type" example:"Bearer"`
	ExpiresIn    int     `json:"expires_in" example:"86400"`
	CreatedAt    string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// RegisterResponse represents the successful registration payload
type RegisterResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// LoginResponse represents the successful login payload
type LoginResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// ChangePasswordResponse carries the fresh session issued after a
// password change revokes every prior one.
type ChangePasswordResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// LogoutResponse represents the payload after logout
type LogoutResponse struct {
	SessionsRevoked int `json:"sessions_revoked" example:"1"`
}

// Common error codes for auth operations
const (
	ErrorUserNotFound          = "USER_NOT_FOUND"
	ErrorIncorrectPassword     = "INCORRECT_PASSWORD"
	ErrorAccountInactive       = "ACCOUNT_INACTIVE"
	ErrorUsernameAlreadyExists = "USERNAME_ALREADY_EXISTS"
	ErrorEmailAlreadyExists    = "EMAIL_ALREADY_EXISTS"
)
