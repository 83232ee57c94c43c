package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{
			name:     "first and last name",
			user:     User{Username: "jdoe", FirstName: "John", LastName: "Doe"},
			expected: "John Doe",
		},
		{
			name:     "first name only",
			user:     User{Username: "jdoe", FirstName: "John"},
			expected: "John",
		},
		{
			name:     "falls back to username",
			user:     User{Username: "jdoe"},
			expected: "jdoe",
		},
		{
			name:     "whitespace only names fall back to username",
			user:     User{Username: "jdoe", FirstName: " ", LastName: " "},
			expected: "jdoe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}

func TestCategoryIsRoot(t *testing.T) {
	root := Category{Name: "Electronics"}
	assert.True(t, root.IsRoot())

	parentID := uint(1)
	child := Category{Name: "Laptops", ParentID: &parentID}
	assert.False(t, child.IsRoot())
}

func TestCategoryFullPathFrom(t *testing.T) {
	leaf := Category{Name: "Gaming Laptops"}

	t.Run("no ancestors", func(t *testing.T) {
		assert.Equal(t, "Gaming Laptops", leaf.FullPathFrom(nil))
	})

	t.Run("ancestors ordered nearest first", func(t *testing.T) {
		// FullPathFrom receives ancestors from direct parent up to the root
		ancestors := []Category{
			{Name: "Laptops"},
			{Name: "Computers"},
			{Name: "Electronics"},
		}
		assert.Equal(t, "Electronics > Computers > Laptops > Gaming Laptops", leaf.FullPathFrom(ancestors))
	})
}

func TestUserSessionIsExpired(t *testing.T) {
	active := UserSession{ExpiresAt: time.Now().Add(1 * time.Hour)}
	assert.False(t, active.IsExpired())

	expired := UserSession{ExpiresAt: time.Now().Add(-1 * time.Minute)}
	assert.True(t, expired.IsExpired())
}

func TestAuditLogHelpers(t *testing.T) {
	success := true
	failure := false

	ok := AuditLog{Action: AuditActionLoginSuccessful, Success: &success}
	assert.False(t, ok.IsFailed())

	failed := AuditLog{Action: AuditActionLoginFailed, Success: &failure}
	assert.True(t, failed.IsFailed())
}
