// Package businessflow contains the core business logic and use cases for account and taxonomy workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	"github.com/simorgh-project/simorgh/utils"
	"gorm.io/gorm"
)

// maxCategoryDepth bounds the ancestor walks so a corrupted parent chain
// cannot loop forever.
const maxCategoryDepth = 100

// CategoryFlow handles the hierarchical category surface. The full tree
// is cached in Redis and the cache is dropped on every write.
type CategoryFlow interface {
	CreateCategory(ctx context.Context, userID uint, request *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	GetCategory(ctx context.Context, categoryID uint) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context, request *dto.CategoryListRequest) (*dto.CategoryListResponse, error)
	UpdateCategory(ctx context.Context, userID, categoryID uint, request *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, userID, categoryID uint, metadata *ClientMetadata) error
	ListRoots(ctx context.Context) ([]dto.CategoryDTO, error)
	ListChildren(ctx context.Context, categoryID uint) ([]dto.CategoryDTO, error)
	FullPath(ctx context.Context, categoryID uint) (*dto.CategoryFullPathResponse, error)
	Tree(ctx context.Context) ([]dto.CategoryTreeNodeDTO, error)
}

// CategoryFlowImpl implements the category business flow
type CategoryFlowImpl struct {
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
	rc           *redis.Client
}

// NewCategoryFlow creates a new category flow instance
func NewCategoryFlow(
	categoryRepo repository.CategoryRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
	rc *redis.Client,
) CategoryFlow {
	return &CategoryFlowImpl{
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		db:           db,
		rc:           rc,
	}
}

// CreateCategory creates a category under an optional parent. The parent
// must exist, be active and not deleted. Sibling names must be unique.
func (cf *CategoryFlowImpl) CreateCategory(ctx context.Context, userID uint, request *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	resp, err := withFlowTransaction(ctx, cf.db, func(ctx context.Context) (*dto.CategoryDTO, error) {
		name := strings.TrimSpace(request.Name)
		if name == "" {
			return nil, ErrCategoryNameRequired
		}

		slug := strings.TrimSpace(request.Slug)
		if slug == "" {
			slug = utils.Slugify(name)
		}

		if request.ParentID != nil {
			if err := cf.requireUsableParent(ctx, *request.ParentID); err != nil {
				return nil, err
			}
		}

		if err := cf.requireUniqueSiblingName(ctx, name, request.ParentID, 0); err != nil {
			return nil, err
		}
		if err := cf.requireUniqueSlug(ctx, slug, 0); err != nil {
			return nil, err
		}

		category := &models.Category{
			Name:        name,
			Slug:        slug,
			Description: request.Description,
			ParentID:    request.ParentID,
			IsActive:    utils.ToPtr(true),
			IsDeleted:   utils.ToPtr(false),
		}
		if request.IsActive != nil {
			category.IsActive = request.IsActive
		}

		if err := cf.categoryRepo.Save(ctx, category); err != nil {
			return nil, err
		}

		out := ToCategoryDTO(*category)
		return &out, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Category creation failed: %s", err.Error())
		_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryCreated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CATEGORY_CREATE_FAILED", "Category creation failed", err)
	}

	cf.invalidateTreeCache(ctx)

	msg := fmt.Sprintf("Category created: %d (%s)", resp.ID, resp.Name)
	_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryCreated, msg, true, nil, metadata)

	return resp, nil
}

// GetCategory retrieves a single category; soft-deleted rows read as missing
func (cf *CategoryFlowImpl) GetCategory(ctx context.Context, categoryID uint) (*dto.CategoryDTO, error) {
	category, err := cf.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
	}

	out := ToCategoryDTO(*category)
	return &out, nil
}

// ListCategories lists categories excluding soft-deleted rows
func (cf *CategoryFlowImpl) ListCategories(ctx context.Context, request *dto.CategoryListRequest) (*dto.CategoryListResponse, error) {
	page, pageSize, err := NormalizePagination(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_VALIDATION_FAILED", "Invalid pagination", err)
	}

	filter := models.CategoryFilter{IsDeleted: utils.ToPtr(false)}
	if request.ParentID != nil {
		filter.ParentID = request.ParentID
	}
	if search := strings.TrimSpace(request.Search); search != "" {
		filter.Search = &search
	}

	orderBy := "name ASC"
	if request.OrderBy == "created_at" {
		orderBy = "created_at DESC"
	}

	total, err := cf.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	categories, err := cf.categoryRepo.ByFilter(ctx, filter, orderBy, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	items := make([]dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		items = append(items, ToCategoryDTO(*category))
	}

	return &dto.CategoryListResponse{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: TotalPages(total, pageSize),
		},
	}, nil
}

// UpdateCategory applies partial updates. Reparenting is validated
// against self-parenting and cycles by walking the new parent chain.
func (cf *CategoryFlowImpl) UpdateCategory(ctx context.Context, userID, categoryID uint, request *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	resp, err := withFlowTransaction(ctx, cf.db, func(ctx context.Context) (*dto.CategoryDTO, error) {
		category, err := cf.loadCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}

		newParentID := category.ParentID
		switch {
		case utils.IsTrue(request.ClearParent):
			newParentID = nil
		case request.ParentID != nil:
			if *request.ParentID == category.ID {
				return nil, ErrCategoryOwnParent
			}
			if err := cf.requireUsableParent(ctx, *request.ParentID); err != nil {
				return nil, err
			}
			if err := cf.requireNoCycle(ctx, category.ID, *request.ParentID); err != nil {
				return nil, err
			}
			newParentID = request.ParentID
		}

		newName := category.Name
		if request.Name != nil {
			newName = strings.TrimSpace(*request.Name)
			if newName == "" {
				return nil, ErrCategoryNameRequired
			}
		}

		parentChanged := !equalParentID(newParentID, category.ParentID)
		if newName != category.Name || parentChanged {
			if err := cf.requireUniqueSiblingName(ctx, newName, newParentID, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = newName
		category.ParentID = newParentID

		if request.Slug != nil {
			slug := strings.TrimSpace(*request.Slug)
			if slug == "" {
				slug = utils.Slugify(category.Name)
			}
			if slug != category.Slug {
				if err := cf.requireUniqueSlug(ctx, slug, category.ID); err != nil {
					return nil, err
				}
				category.Slug = slug
			}
		}

		if request.Description != nil {
			category.Description = request.Description
		}
		if request.IsActive != nil {
			category.IsActive = request.IsActive
		}

		if err := cf.categoryRepo.Update(ctx, category); err != nil {
			return nil, err
		}

		out := ToCategoryDTO(*category)
		return &out, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Category update failed: %s", err.Error())
		_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryUpdated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CATEGORY_UPDATE_FAILED", "Category update failed", err)
	}

	cf.invalidateTreeCache(ctx)

	msg := fmt.Sprintf("Category updated: %d", categoryID)
	_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryUpdated, msg, true, nil, metadata)

	return resp, nil
}

// DeleteCategory soft-deletes a category. Children keep their parent
// reference but drop out of the active tree and child listings.
func (cf *CategoryFlowImpl) DeleteCategory(ctx context.Context, userID, categoryID uint, metadata *ClientMetadata) error {
	_, err := withFlowTransaction(ctx, cf.db, func(ctx context.Context) (*struct{}, error) {
		category, err := cf.loadCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}

		if err := cf.categoryRepo.SoftDelete(ctx, category.ID); err != nil {
			return nil, err
		}

		return &struct{}{}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Category deletion failed: %s", err.Error())
		_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryDeleted, errMsg, false, &errMsg, metadata)

		return NewBusinessError("CATEGORY_DELETE_FAILED", "Category deletion failed", err)
	}

	cf.invalidateTreeCache(ctx)

	msg := fmt.Sprintf("Category deleted: %d", categoryID)
	_ = cf.logCategoryEvent(ctx, userID, models.AuditActionCategoryDeleted, msg, true, nil, metadata)

	return nil
}

// ListRoots returns active top-level categories
func (cf *CategoryFlowImpl) ListRoots(ctx context.Context) ([]dto.CategoryDTO, error) {
	roots, err := cf.categoryRepo.ListRoots(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list root categories", err)
	}

	items := make([]dto.CategoryDTO, 0, len(roots))
	for _, category := range roots {
		items = append(items, ToCategoryDTO(*category))
	}
	return items, nil
}

// ListChildren returns active direct children of a category
func (cf *CategoryFlowImpl) ListChildren(ctx context.Context, categoryID uint) ([]dto.CategoryDTO, error) {
	if _, err := cf.loadCategory(ctx, categoryID); err != nil {
		return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
	}

	children, err := cf.categoryRepo.ListChildren(ctx, categoryID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list children", err)
	}

	items := make([]dto.CategoryDTO, 0, len(children))
	for _, category := range children {
		items = append(items, ToCategoryDTO(*category))
	}
	return items, nil
}

// FullPath walks the ancestor chain and joins the names root first
func (cf *CategoryFlowImpl) FullPath(ctx context.Context, categoryID uint) (*dto.CategoryFullPathResponse, error) {
	category, err := cf.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch category", err)
	}

	ancestors := make([]models.Category, 0, 4)
	parentID := category.ParentID
	for depth := 0; parentID != nil; depth++ {
		if depth >= maxCategoryDepth {
			return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Category ancestor chain too deep", ErrCategoryCycle)
		}

		parent, err := cf.categoryRepo.ByID(ctx, *parentID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_FETCH_FAILED", "Failed to fetch ancestor", err)
		}
		if parent == nil {
			break
		}

		ancestors = append(ancestors, *parent)
		parentID = parent.ParentID
	}

	return &dto.CategoryFullPathResponse{
		ID:       category.ID,
		FullPath: category.FullPathFrom(ancestors),
	}, nil
}

// Tree returns the full active category hierarchy. The assembled tree is
// cached in Redis and rebuilt only after the cache expires or a write
// invalidates it.
func (cf *CategoryFlowImpl) Tree(ctx context.Context) ([]dto.CategoryTreeNodeDTO, error) {
	if cf.rc != nil {
		bs, err := cf.rc.Get(ctx, utils.CategoryTreeCacheKey).Bytes()
		if err == nil {
			var cached []dto.CategoryTreeNodeDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	categories, err := cf.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_TREE_FAILED", "Failed to build category tree", err)
	}

	tree := buildCategoryTree(categories)

	if cf.rc != nil {
		if bs, err := json.Marshal(tree); err == nil {
			_ = cf.rc.Set(ctx, utils.CategoryTreeCacheKey, bs, utils.CategoryTreeCacheTTL).Err()
		}
	}

	return tree, nil
}

// buildCategoryTree assembles the nested structure from a flat list.
// Children keep the repository ordering, which is by name. A child whose
// parent is missing from the list (inactive or deleted) is dropped.
func buildCategoryTree(categories []*models.Category) []dto.CategoryTreeNodeDTO {
	byParent := make(map[uint][]*models.Category)
	roots := make([]*models.Category, 0)
	present := make(map[uint]bool, len(categories))

	for _, category := range categories {
		present[category.ID] = true
	}
	for _, category := range categories {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		if present[*category.ParentID] {
			byParent[*category.ParentID] = append(byParent[*category.ParentID], category)
		}
	}

	var build func(category *models.Category) dto.CategoryTreeNodeDTO
	build = func(category *models.Category) dto.CategoryTreeNodeDTO {
		node := dto.CategoryTreeNodeDTO{
			CategoryDTO: ToCategoryDTO(*category),
			Children:    make([]dto.CategoryTreeNodeDTO, 0),
		}
		for _, child := range byParent[category.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	out := make([]dto.CategoryTreeNodeDTO, 0, len(roots))
	for _, root := range roots {
		out = append(out, build(root))
	}
	return out
}

// loadCategory fetches a category treating soft-deleted rows as missing
func (cf *CategoryFlowImpl) loadCategory(ctx context.Context, categoryID uint) (*models.Category, error) {
	category, err := cf.categoryRepo.ByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || utils.IsTrue(category.IsDeleted) {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// requireUsableParent verifies the parent exists, is active and not deleted
func (cf *CategoryFlowImpl) requireUsableParent(ctx context.Context, parentID uint) error {
	parent, err := cf.categoryRepo.ByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil || utils.IsTrue(parent.IsDeleted) || !utils.IsTrue(parent.IsActive) {
		return ErrParentCategoryNotFound
	}
	return nil
}

// requireNoCycle walks up from the proposed parent and rejects the move
// if the category itself appears in the chain.
func (cf *CategoryFlowImpl) requireNoCycle(ctx context.Context, categoryID, newParentID uint) error {
	currentID := &newParentID
	for depth := 0; currentID != nil; depth++ {
		if depth >= maxCategoryDepth {
			return ErrCategoryCycle
		}
		if *currentID == categoryID {
			return ErrCategoryCycle
		}

		ancestor, err := cf.categoryRepo.ByID(ctx, *currentID)
		if err != nil {
			return err
		}
		if ancestor == nil {
			break
		}
		currentID = ancestor.ParentID
	}
	return nil
}

// requireUniqueSiblingName checks (name, parent) uniqueness among
// non-deleted rows. excludeID skips the category being updated.
func (cf *CategoryFlowImpl) requireUniqueSiblingName(ctx context.Context, name string, parentID *uint, excludeID uint) error {
	filter := models.CategoryFilter{
		Name:      &name,
		IsDeleted: utils.ToPtr(false),
	}
	if parentID != nil {
		filter.ParentID = parentID
	} else {
		filter.RootsOnly = utils.ToPtr(true)
	}

	siblings, err := cf.categoryRepo.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if sibling.ID != excludeID {
			return ErrSiblingNameTaken
		}
	}
	return nil
}

// requireUniqueSlug checks global slug uniqueness among non-deleted rows
func (cf *CategoryFlowImpl) requireUniqueSlug(ctx context.Context, slug string, excludeID uint) error {
	existing, err := cf.categoryRepo.BySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID && !utils.IsTrue(existing.IsDeleted) {
		return ErrSlugAlreadyExists
	}
	return nil
}

// invalidateTreeCache drops the cached tree after a successful write
func (cf *CategoryFlowImpl) invalidateTreeCache(ctx context.Context) {
	if cf.rc == nil {
		return
	}
	_ = cf.rc.Del(ctx, utils.CategoryTreeCacheKey).Err()
}

func equalParentID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (cf *CategoryFlowImpl) logCategoryEvent(ctx context.Context, userID uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       &userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return cf.auditRepo.Save(ctx, audit)
}
