// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/middleware"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CategoryHandlerInterface defines the contract for category handlers
type CategoryHandlerInterface interface {
	ListCategories(c fiber.Ctx) error
	ListRoots(c fiber.Ctx) error
	Tree(c fiber.Ctx) error
	GetCategory(c fiber.Ctx) error
	ListChildren(c fiber.Ctx) error
	FullPath(c fiber.Ctx) error
	CreateCategory(c fiber.Ctx) error
	UpdateCategory(c fiber.Ctx) error
	DeleteCategory(c fiber.Ctx) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryFlow businessflow.CategoryFlow
	validator    *validator.Validate
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryFlow businessflow.CategoryFlow) *CategoryHandler {
	return &CategoryHandler{
		categoryFlow: categoryFlow,
		validator:    newValidator(),
	}
}

func (h *CategoryHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CategoryHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListCategories lists categories with pagination
// @Summary List Categories
// @Description List categories with pagination, parent filter and free-text search
// @Tags Categories
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param parent_id query int false "Restrict to children of this category"
// @Param search query string false "Match against name or description"
// @Param order_by query string false "Ordering" Enums(name, created_at)
// @Success 200 {object} dto.APIResponse{data=dto.CategoryListResponse} "Category listing"
// @Failure 400 {object} dto.APIResponse "Invalid query parameters"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c fiber.Ctx) error {
	var req dto.CategoryListRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.categoryFlow.ListCategories(createRequestContext(c, "/api/v1/categories"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "VALIDATION_ERROR", err.Error())
		}

		log.Println("Listing categories failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Categories retrieved", result)
}

// ListRoots lists active top-level categories
// @Summary Root Categories
// @Description List active categories without a parent, ordered by name
// @Tags Categories
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryDTO} "Root categories"
// @Router /api/v1/categories/roots [get]
func (h *CategoryHandler) ListRoots(c fiber.Ctx) error {
	result, err := h.categoryFlow.ListRoots(createRequestContext(c, "/api/v1/categories/roots"))
	if err != nil {
		log.Println("Listing root categories failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list root categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Root categories retrieved", result)
}

// Tree returns the full active category hierarchy
// @Summary Category Tree
// @Description Retrieve the nested tree of active categories. Served from cache when warm.
// @Tags Categories
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryTreeNodeDTO} "Category tree"
// @Router /api/v1/categories/tree [get]
func (h *CategoryHandler) Tree(c fiber.Ctx) error {
	result, err := h.categoryFlow.Tree(createRequestContext(c, "/api/v1/categories/tree"))
	if err != nil {
		log.Println("Building category tree failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build category tree", "CATEGORY_TREE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category tree retrieved", result)
}

// GetCategory retrieves a single category
// @Summary Get Category
// @Description Retrieve a category by ID. Soft-deleted categories read as missing.
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryDTO} "Category"
// @Failure 400 {object} dto.APIResponse "Invalid category ID"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.categoryFlow.GetCategory(createRequestContext(c, "/api/v1/categories/:id"), categoryID)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", dto.ErrorCategoryNotFound, nil)
		}

		log.Println("Fetching category failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch category", "CATEGORY_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category retrieved", result)
}

// ListChildren lists active direct children of a category
// @Summary Category Children
// @Description List active direct children of a category, ordered by name
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryDTO} "Children"
// @Failure 400 {object} dto.APIResponse "Invalid category ID"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /api/v1/categories/{id}/children [get]
func (h *CategoryHandler) ListChildren(c fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.categoryFlow.ListChildren(createRequestContext(c, "/api/v1/categories/:id/children"), categoryID)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", dto.ErrorCategoryNotFound, nil)
		}

		log.Println("Listing category children failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list children", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Children retrieved", result)
}

// FullPath returns the ancestor chain of a category joined by " > "
// @Summary Category Full Path
// @Description Retrieve the full path from the root to this category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryFullPathResponse} "Full path"
// @Failure 400 {object} dto.APIResponse "Invalid category ID"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /api/v1/categories/{id}/full-path [get]
func (h *CategoryHandler) FullPath(c fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.categoryFlow.FullPath(createRequestContext(c, "/api/v1/categories/:id/full-path"), categoryID)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", dto.ErrorCategoryNotFound, nil)
		}

		log.Println("Resolving category full path failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve full path", "CATEGORY_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Full path resolved", result)
}

// CreateCategory creates a new category
// @Summary Create Category
// @Description Create a category under an optional parent. The slug is derived from the name when omitted.
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryDTO} "Created category"
// @Failure 400 {object} dto.APIResponse "Validation error or unusable parent"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 409 {object} dto.APIResponse "Sibling name or slug already exists"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.categoryFlow.CreateCategory(createRequestContext(c, "/api/v1/categories"), userID, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsParentCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Parent category not found", dto.ErrorParentCategoryNotFound, nil)
		}
		if businessflow.IsSiblingNameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A sibling with this name already exists", "SIBLING_NAME_TAKEN", nil)
		}
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
		}
		if businessflow.IsCategoryNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Category name is required", "VALIDATION_ERROR", nil)
		}

		log.Println("Category creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category", "CATEGORY_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Category created", result)
}

// UpdateCategory applies partial updates to a category
// @Summary Update Category
// @Description Update a category. Reparenting is validated against self-parenting and cycles.
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryDTO} "Updated category"
// @Failure 400 {object} dto.APIResponse "Validation error, unusable parent or cycle"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Failure 409 {object} dto.APIResponse "Sibling name or slug already exists"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_REQUEST", err.Error())
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.categoryFlow.UpdateCategory(createRequestContext(c, "/api/v1/categories/:id"), userID, categoryID, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", dto.ErrorCategoryNotFound, nil)
		}
		if businessflow.IsParentCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Parent category not found", dto.ErrorParentCategoryNotFound, nil)
		}
		if businessflow.IsCategoryOwnParent(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "A category cannot be its own parent", dto.ErrorCategoryOwnParent, nil)
		}
		if businessflow.IsCategoryCycle(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "The new parent would create a cycle", dto.ErrorCategoryCycle, nil)
		}
		if businessflow.IsSiblingNameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A sibling with this name already exists", "SIBLING_NAME_TAKEN", nil)
		}
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
		}
		if businessflow.IsCategoryNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Category name is required", "VALIDATION_ERROR", nil)
		}

		log.Println("Category update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category", "CATEGORY_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category updated", result)
}

// DeleteCategory soft-deletes a category
// @Summary Delete Category
// @Description Soft-delete a category. The row is kept but drops out of the active tree.
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Failure 400 {object} dto.APIResponse "Invalid category ID"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID", "INVALID_REQUEST", err.Error())
	}

	if err := h.categoryFlow.DeleteCategory(createRequestContext(c, "/api/v1/categories/:id"), userID, categoryID, clientMetadata(c)); err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", dto.ErrorCategoryNotFound, nil)
		}

		log.Println("Category deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category", "CATEGORY_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category deleted", nil)
}
