// Package dto contains Data Transfer Objects for API request and response structures
package dto

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID          uint    `json:"id" example:"7"`
	Name        string  `json:"name" example:"golang"`
	Slug        string  `json:"slug" example:"golang"`
	Description *string `json:"description,omitempty" example:"Posts about the Go language"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// CreateTagRequest represents the request to create a tag. Slug is
// derived from the name when omitted.
type CreateTagRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100" example:"golang"`
	Slug        string  `json:"slug" validate:"omitempty,min=1,max=100,slug_format" example:"golang"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Posts about the Go language"`
}

// UpdateTagRequest represents the request to update a tag. Nil fields
// stay untouched so PATCH semantics work.
type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" example:"golang"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1,max=100,slug_format" example:"golang"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Posts about the Go language"`
}

// TagListRequest represents query parameters for tag listings
type TagListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1" example:"1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100" example:"20"`
	Name     string `query:"name" validate:"omitempty,max=100" example:"golang"`
	Search   string `query:"search" validate:"omitempty,max=255" example:"go"`
	OrderBy  string `query:"order_by" validate:"omitempty,oneof=name created_at" example:"name"`
}

// TagListResponse represents the tag listing payload
type TagListResponse struct {
	Items      []TagDTO      `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// Common error codes for tag operations
const (
	ErrorTagNotFound          = "TAG_NOT_FOUND"
	ErrorTagNameAlreadyExists = "TAG_NAME_ALREADY_EXISTS"
	ErrorSlugAlreadyExists    = "SLUG_ALREADY_EXISTS"
)
