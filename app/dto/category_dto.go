// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID          uint    `json:"id" example:"3"`
	Name        string  `json:"name" example:"Databases"`
	Slug        string  `json:"slug" example:"databases"`
	Description *string `json:"description,omitempty" example:"Relational and NoSQL databases"`
	ParentID    *uint   `json:"parent_id,omitempty" example:"1"`
	IsActive    *bool   `json:"is_active" example:"true"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// CategoryTreeNodeDTO is a category with its recursive children
type CategoryTreeNodeDTO struct {
	CategoryDTO
	Children []CategoryTreeNodeDTO `json:"children"`
}

// CreateCategoryRequest represents the request to create a category.
// Slug is derived from the name when omitted.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100" example:"Databases"`
	Slug        string  `json:"slug" validate:"omitempty,min=1,max=100,slug_format" example:"databases"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Relational and NoSQL databases"`
	ParentID    *uint   `json:"parent_id,omitempty" validate:"omitempty,min=1" example:"1"`
	IsActive    *bool   `json:"is_active,omitempty" example:"true"`
}

// UpdateCategoryRequest represents the request to update a category.
// Nil fields stay untouched so PATCH semantics work. ClearParent moves
// the category to the root level.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" example:"Databases"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1,max=100,slug_format" example:"databases"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Relational and NoSQL databases"`
	ParentID    *uint   `json:"parent_id,omitempty" validate:"omitempty,min=1" example:"1"`
	ClearParent *bool   `json:"clear_parent,omitempty" example:"false"`
	IsActive    *bool   `json:"is_active,omitempty" example:"true"`
}

// CategoryListRequest represents query parameters for category listings
type CategoryListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1" example:"1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100" example:"20"`
	ParentID *uint  `query:"parent_id" validate:"omitempty,min=1" example:"1"`
	Search   string `query:"search" validate:"omitempty,max=255" example:"data"`
	OrderBy  string `query:"order_by" validate:"omitempty,oneof=name created_at" example:"name"`
}

// CategoryListResponse represents the category listing payload
type CategoryListResponse struct {
	Items      []CategoryDTO `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// CategoryFullPathResponse carries the ancestor chain joined by " > "
type CategoryFullPathResponse struct {
	ID       uint   `json:"id" example:"3"`
	FullPath string `json:"full_path" example:"Engineering > Databases > PostgreSQL"`
}

// Common error codes for category operations
const (
	ErrorCategoryNotFound       = "CATEGORY_NOT_FOUND"
	ErrorParentCategoryNotFound = "PARENT_CATEGORY_NOT_FOUND"
	ErrorCategoryOwnParent      = "CATEGORY_OWN_PARENT"
	ErrorCategoryCycle          = "CATEGORY_CYCLE"
)
