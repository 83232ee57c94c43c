// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/utils"
	"gorm.io/gorm"
)

// UserProfileRepositoryImpl implements UserProfileRepository interface
type UserProfileRepositoryImpl struct {
	*BaseRepository[models.UserProfile, models.UserProfileFilter]
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &UserProfileRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserProfile, models.UserProfileFilter](db),
	}
}

// ByUserID retrieves the profile attached to a user
func (r *UserProfileRepositoryImpl) ByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	db := r.getDB(ctx)

	var profile models.UserProfile
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}

	return &profile, nil
}

// Update persists changes to an already-loaded profile
func (r *UserProfileRepositoryImpl) Update(ctx context.Context, profile *models.UserProfile) error {
	profile.UpdatedAt = utils.UTCNow()
	return r.updateEntity(ctx, profile)
}

// applyFilter applies filter criteria to a GORM query
func (r *UserProfileRepositoryImpl) applyFilter(query *gorm.DB, filter models.UserProfileFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	if filter.Country != nil {
		query = query.Where("country = ?", *filter.Country)
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	return query
}

// ByFilter retrieves profiles based on filter criteria
func (r *UserProfileRepositoryImpl) ByFilter(ctx context.Context, filter models.UserProfileFilter, orderBy string, limit, offset int) ([]*models.UserProfile, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.UserProfile{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.UserProfile
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of profiles matching the filter
func (r *UserProfileRepositoryImpl) Count(ctx context.Context, filter models.UserProfileFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.UserProfile{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any profile matching the filter exists
func (r *UserProfileRepositoryImpl) Exists(ctx context.Context, filter models.UserProfileFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
