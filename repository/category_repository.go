package repository

import (
	"context"
	"fmt"

	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/utils"
	"gorm.io/gorm"
)

// CategoryRepositoryImpl implements CategoryRepository interface
type CategoryRepositoryImpl struct {
	*BaseRepository[models.Category, models.CategoryFilter]
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &CategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Category, models.CategoryFilter](db),
	}
}

// BySlug retrieves a category by slug
func (r *CategoryRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.Category, error) {
	filter := models.CategoryFilter{Slug: &slug}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListRoots retrieves active top-level categories ordered by name
func (r *CategoryRepositoryImpl) ListRoots(ctx context.Context) ([]*models.Category, error) {
	filter := models.CategoryFilter{
		RootsOnly: utils.ToPtr(true),
		IsActive:  utils.ToPtr(true),
		IsDeleted: utils.ToPtr(false),
	}
	return r.ByFilter(ctx, filter, "name ASC", 0, 0)
}

// ListChildren retrieves active direct children of a category ordered by name
func (r *CategoryRepositoryImpl) ListChildren(ctx context.Context, parentID uint) ([]*models.Category, error) {
	filter := models.CategoryFilter{
		ParentID:  &parentID,
		IsActive:  utils.ToPtr(true),
		IsDeleted: utils.ToPtr(false),
	}
	return r.ByFilter(ctx, filter, "name ASC", 0, 0)
}

// ListActive retrieves every active, non-deleted category. Used to
// assemble the full tree in memory.
func (r *CategoryRepositoryImpl) ListActive(ctx context.Context) ([]*models.Category, error) {
	filter := models.CategoryFilter{
		IsActive:  utils.ToPtr(true),
		IsDeleted: utils.ToPtr(false),
	}
	return r.ByFilter(ctx, filter, "name ASC", 0, 0)
}

// Update persists changes to an already-loaded category
func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = utils.UTCNow()
	return r.updateEntity(ctx, category)
}

// SoftDelete marks a category deleted without removing the row
func (r *CategoryRepositoryImpl) SoftDelete(ctx context.Context, categoryID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := utils.UTCNow()
	err = db.Model(&models.Category{}).
		Where("id = ?", categoryID).
		Updates(map[string]any{
			"is_deleted": true,
			"is_active":  false,
			"deleted_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to soft delete category: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CategoryRepositoryImpl) applyFilter(query *gorm.DB, filter models.CategoryFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if utils.IsTrue(filter.RootsOnly) {
		query = query.Where("parent_id IS NULL")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves categories based on filter criteria
func (r *CategoryRepositoryImpl) ByFilter(ctx context.Context, filter models.CategoryFilter, orderBy string, limit, offset int) ([]*models.Category, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Category{})

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

	var rows []*models.Category
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of categories matching the filter
func (r *CategoryRepositoryImpl) Count(ctx context.Context, filter models.CategoryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Category{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any category matching the filter exists
func (r *CategoryRepositoryImpl) Exists(ctx context.Context, filter models.CategoryFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
