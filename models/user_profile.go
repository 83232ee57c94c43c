// Package models contains domain entities and business models for the accounts and taxonomy system
package models

import (
	"time"
)

// UserProfile is the extended, optionally public profile attached to
// every user. One row per user, created together with the user.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:uk_user_profiles_user_id" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Bio         *string    `gorm:"type:text" json:"bio,omitempty"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	PhoneNumber *string    `gorm:"size:20" json:"phone_number,omitempty"`
	Website     *string    `gorm:"size:255" json:"website,omitempty"`
	Country     *string    `gorm:"size:100" json:"country,omitempty"`
	City        *string    `gorm:"size:100" json:"city,omitempty"`

	// Privacy settings
	IsPublic  *bool `gorm:"default:true;index:idx_user_profiles_is_public" json:"is_public"`
	ShowEmail *bool `gorm:"default:false" json:"show_email"`

	// Notification preferences
	EmailNotifications *bool `gorm:"default:true" json:"email_notifications"`
	MarketingEmails    *bool `gorm:"default:false" json:"marketing_emails"`

	// Soft delete
	IsDeleted *bool      `gorm:"default:false;index:idx_user_profiles_is_deleted" json:"-"`
	DeletedAt *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// UserProfileFilter represents filter criteria for profile queries
type UserProfileFilter struct {
	ID        *uint
	UserID    *uint
	IsPublic  *bool
	IsDeleted *bool
	Country   *string
	City      *string
}
