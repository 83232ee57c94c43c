package models

import "time"

// Tag is a flat label attached to content for discovery and filtering.
// Table: tags
// Unique by name and by slug; deletes are soft so historical references
// stay resolvable.
// Timestamps default to UTC at DB level.
type Tag struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;not null;uniqueIndex:uk_tags_name;index:idx_tags_name" json:"name"`
	Slug        string  `gorm:"size:100;not null;uniqueIndex:uk_tags_slug" json:"slug"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	IsDeleted *bool      `gorm:"default:false;index:idx_tags_is_deleted" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_tags_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Tag) TableName() string { return "tags" }

// TagFilter represents filter criteria for tag queries
type TagFilter struct {
	ID            *uint
	Name          *string
	Slug          *string
	IsDeleted     *bool
	Search        *string // Matches name or description
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
