// Package models contains domain entities and business models for the accounts and taxonomy system
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`
	Username string    `gorm:"size:150;not null;uniqueIndex:uk_users_username" json:"username"`
	Email    string    `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`

	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash

	// Status flags
	IsActive *bool `gorm:"default:true;index:idx_users_is_active" json:"is_active"`
	IsStaff  *bool `gorm:"default:false" json:"is_staff"`

	// Timestamps
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_users_last_login_at" json:"last_login_at,omitempty"`

	// Relations
	Profile   *UserProfile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Sessions  []UserSession `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs []AuditLog    `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Username      *string
	Email         *string
	IsActive      *bool
	IsStaff       *bool
	Search        *string // Matches username, email, first or last name
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// FullName joins first and last name, falling back to the username
// when both are empty.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
