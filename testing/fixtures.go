// Package testing provides test utilities and database setup for testing the API
package testing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates an active user with a hashed password and a profile
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	suffix := fmt.Sprintf("%09d", mrand.Intn(900000000)+100000000)

	user := &models.User{
		UUID:         uuid.New(),
		Username:     fmt.Sprintf("user_%s", suffix),
		Email:        fmt.Sprintf("user.%s@example.com", suffix),
		FirstName:    "John",
		LastName:     "Doe",
		PasswordHash: string(hashedPassword),
		IsActive:     utils.ToPtr(true),
		IsStaff:      utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	profile := &models.UserProfile{
		UserID:             user.ID,
		IsPublic:           utils.ToPtr(true),
		ShowEmail:          utils.ToPtr(false),
		EmailNotifications: utils.ToPtr(true),
		MarketingEmails:    utils.ToPtr(false),
		IsDeleted:          utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create test profile: %w", err)
	}

	user.Profile = profile
	return user, nil
}

// CreateTestStaffUser creates an active user with the staff flag set
func (tf *TestFixtures) CreateTestStaffUser() (*models.User, error) {
	user, err := tf.CreateTestUser()
	if err != nil {
		return nil, err
	}

	user.IsStaff = utils.ToPtr(true)
	if err := tf.DB.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to promote test user to staff: %w", err)
	}

	return user, nil
}

// CreateInactiveTestUser creates a deactivated user
func (tf *TestFixtures) CreateInactiveTestUser() (*models.User, error) {
	user, err := tf.CreateTestUser()
	if err != nil {
		return nil, err
	}

	user.IsActive = utils.ToPtr(false)
	if err := tf.DB.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to deactivate test user: %w", err)
	}

	return user, nil
}

// GenerateSecureToken returns a random URL-safe token of the given byte length
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateTestSession creates an active session for the given user
func (tf *TestFixtures) CreateTestSession(userID uint) (*models.UserSession, error) {
	accessToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure access token: %w", err)
	}

	refreshToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure refresh token: %w", err)
	}

	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	session := &models.UserSession{
		CorrelationID: uuid.New(),
		UserID:        userID,
		AccessToken:   accessToken,
		RefreshToken:  &refreshToken,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      utils.ToPtr(true),
		IPAddress:     &ipAddress,
		UserAgent:     &userAgent,
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}

	return session, nil
}

// CreateExpiredTestSession creates a session that expired an hour ago
func (tf *TestFixtures) CreateExpiredTestSession(userID uint) (*models.UserSession, error) {
	session, err := tf.CreateTestSession(userID)
	if err != nil {
		return nil, err
	}

	session.ExpiresAt = time.Now().Add(-1 * time.Hour)
	if err := tf.DB.DB.Save(session).Error; err != nil {
		return nil, fmt.Errorf("failed to expire test session: %w", err)
	}

	return session, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(userID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}

// CreateTestTag creates a tag with a unique name and slug
func (tf *TestFixtures) CreateTestTag(name string) (*models.Tag, error) {
	if name == "" {
		name = fmt.Sprintf("tag %d", mrand.Intn(10000000))
	}

	tag := &models.Tag{
		Name:      name,
		Slug:      utils.Slugify(name),
		IsDeleted: utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create test tag: %w", err)
	}

	return tag, nil
}

// CreateTestCategory creates an active category, optionally under a parent
func (tf *TestFixtures) CreateTestCategory(name string, parentID *uint) (*models.Category, error) {
	if name == "" {
		name = fmt.Sprintf("category %d", mrand.Intn(10000000))
	}

	category := &models.Category{
		Name:      name,
		Slug:      utils.Slugify(name),
		ParentID:  parentID,
		IsActive:  utils.ToPtr(true),
		IsDeleted: utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}

	return category, nil
}

// CreateTestCategoryTree creates a three level category chain and returns root, child, grandchild
func (tf *TestFixtures) CreateTestCategoryTree() (*models.Category, *models.Category, *models.Category, error) {
	suffix := mrand.Intn(10000000)

	root, err := tf.CreateTestCategory(fmt.Sprintf("root %d", suffix), nil)
	if err != nil {
		return nil, nil, nil, err
	}

	child, err := tf.CreateTestCategory(fmt.Sprintf("child %d", suffix), &root.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	grandchild, err := tf.CreateTestCategory(fmt.Sprintf("grandchild %d", suffix), &child.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	return root, child, grandchild, nil
}

// CreateMultipleTestUsers creates several unique active users
func (tf *TestFixtures) CreateMultipleTestUsers(count int) ([]*models.User, error) {
	var users []*models.User
	for i := 0; i < count; i++ {
		user, err := tf.CreateTestUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}
