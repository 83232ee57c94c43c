// Package dto contains Data Transfer Objects for API request and response structures
package dto

// UserProfileDTO represents the profile attached to a user
type UserProfileDTO struct {
	Bio                *string `json:"bio,omitempty" example:"Backend developer"`
	BirthDate          *string `json:"birth_date,omitempty" example:"1990-04-21"`
	PhoneNumber        *string `json:"phone_number,omitempty" example:"+14155552671"`
	Website            *string `json:"website,omitempty" example:"https://example.com"`
	Country            *string `json:"country,omitempty" example:"Germany"`
	City               *string `json:"city,omitempty" example:"Berlin"`
	IsPublic           *bool   `json:"is_public" example:"true"`
	ShowEmail          *bool   `json:"show_email" example:"false"`
	EmailNotifications *bool   `json:"email_notifications" example:"true"`
	MarketingEmails    *bool   `json:"marketing_emails" example:"false"`
	CreatedAt          string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt          string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields
// stay untouched so PATCH semantics work.
type UpdateProfileRequest struct {
	Bio                *string `json:"bio,omitempty" validate:"omitempty,max=2000" example:"Backend developer"`
	BirthDate          *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"1990-04-21"`
	PhoneNumber        *string `json:"phone_number,omitempty" validate:"omitempty,max=20" example:"+14155552671"`
	Website            *string `json:"website,omitempty" validate:"omitempty,url,max=255" example:"https://example.com"`
	Country            *string `json:"country,omitempty" validate:"omitempty,max=100" example:"Germany"`
	City               *string `json:"city,omitempty" validate:"omitempty,max=100" example:"Berlin"`
	IsPublic           *bool   `json:"is_public,omitempty" example:"true"`
	ShowEmail          *bool   `json:"show_email,omitempty" example:"false"`
	EmailNotifications *bool   `json:"email_notifications,omitempty" example:"true"`
	MarketingEmails    *bool   `json:"marketing_emails,omitempty" example:"false"`
}

// UpdateMeRequest represents the request to update the current user
type UpdateMeRequest struct {
	FirstName *string               `json:"first_name,omitempty" validate:"omitempty,max=150" example:"John"`
	LastName  *string               `json:"last_name,omitempty" validate:"omitempty,max=150" example:"Doe"`
	Email     *string               `json:"email,omitempty" validate:"omitempty,email,max=255" example:"user@example.com"`
	Profile   *UpdateProfileRequest `json:"profile,omitempty" validate:"omitempty"`
}

// MeResponse represents the current user together with their profile
type MeResponse struct {
	User    AuthUserDTO    `json:"user"`
	Profile UserProfileDTO `json:"profile"`
}

// PublicUserDTO represents a user as shown in public listings. Email
// is present only when the profile opts into showing it.
type PublicUserDTO struct {
	ID        uint            `json:"id" example:"123"`
	UUID      string          `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username  string          `json:"username" example:"johndoe"`
	FirstName string          `json:"first_name" example:"John"`
	LastName  string          `json:"last_name" example:"Doe"`
	Email     *string         `json:"email,omitempty" example:"user@example.com"`
	Profile   *UserProfileDTO `json:"profile,omitempty"`
	CreatedAt string          `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// UserListRequest represents query parameters for the public user listing
type UserListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1" example:"1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100" example:"20"`
	Search   string `query:"search" validate:"omitempty,max=255" example:"john"`
	OrderBy  string `query:"order_by" validate:"omitempty,oneof=username created_at" example:"created_at"`
}

// UserListResponse represents the public user listing payload
type UserListResponse struct {
	Items      []PublicUserDTO `json:"items"`
	Pagination PaginationDTO   `json:"pagination"`
}

// DeactivateAccountResponse represents the payload after soft deactivation
type DeactivateAccountResponse struct {
	Deactivated     bool `json:"deactivated" example:"true"`
	SessionsRevoked int  `json:"sessions_revoked" example:"2"`
}

// Common error codes for user operations
const (
	ErrorProfileNotFound = "PROFILE_NOT_FOUND"
	ErrorProfilePrivate  = "PROFILE_PRIVATE"
	ErrorStaffOnly       = "STAFF_ONLY"
)
