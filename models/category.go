package models

import (
	"strings"
	"time"
)

// Category is a node in the hierarchical taxonomy tree. A nil ParentID
// marks a root. The ancestor chain must stay acyclic; the business flow
// walks the chain on every reparenting to enforce that.
// Table: categories
// Unique by slug globally and by (name, parent_id) among siblings.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null;uniqueIndex:uk_categories_name_parent,priority:1" json:"name"`
	Slug        string  `gorm:"size:100;not null;uniqueIndex:uk_categories_slug" json:"slug"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	ParentID *uint     `gorm:"uniqueIndex:uk_categories_name_parent,priority:2;index:idx_categories_parent_id" json:"parent_id,omitempty"`
	Parent   *Category `gorm:"foreignKey:ParentID;references:ID" json:"-"`

	IsActive  *bool      `gorm:"default:true;index:idx_categories_is_active" json:"is_active"`
	IsDeleted *bool      `gorm:"default:false;index:idx_categories_is_deleted" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_categories_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// FullPathFrom joins the names along the given ancestor chain, root
// first, ending with this category. The chain is expected ordered from
// direct parent up to the root.
func (c *Category) FullPathFrom(ancestors []Category) string {
	parts := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		parts = append(parts, ancestors[i].Name)
	}
	parts = append(parts, c.Name)
	return strings.Join(parts, " > ")
}

// CategoryFilter represents filter criteria for category queries
type CategoryFilter struct {
	ID            *uint
	Name          *string
	Slug          *string
	ParentID      *uint
	RootsOnly     *bool // Restricts to parent IS NULL
	IsActive      *bool
	IsDeleted     *bool
	Search        *string // Matches name or description
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
