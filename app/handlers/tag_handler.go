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

// TagHandlerInterface defines the contract for tag handlers
type TagHandlerInterface interface {
	ListTags(c fiber.Ctx) error
	PopularTags(c fiber.Ctx) error
	GetTag(c fiber.Ctx) error
	CreateTag(c fiber.Ctx) error
	UpdateTag(c fiber.Ctx) error
	DeleteTag(c fiber.Ctx) error
}

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagFlow   businessflow.TagFlow
	validator *validator.Validate
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagFlow businessflow.TagFlow) *TagHandler {
	return &TagHandler{
		tagFlow:   tagFlow,
		validator: newValidator(),
	}
}

func (h *TagHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TagHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListTags lists tags with pagination and search
// @Summary List Tags
// @Description List tags with pagination, name filter and free-text search
// @Tags Tags
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param name query string false "Exact name filter"
// @Param search query string false "Match against name or description"
// @Param order_by query string false "Ordering" Enums(name, created_at)
// @Success 200 {object} dto.APIResponse{data=dto.TagListResponse} "Tag listing"
// @Failure 400 {object} dto.APIResponse "Invalid query parameters"
// @Router /api/v1/tags [get]
func (h *TagHandler) ListTags(c fiber.Ctx) error {
	var req dto.TagListRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.tagFlow.ListTags(createRequestContext(c, "/api/v1/tags"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "VALIDATION_ERROR", err.Error())
		}

		log.Println("Listing tags failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tags", "TAG_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tags retrieved", result)
}

// PopularTags lists the most popular tags
// @Summary Popular Tags
// @Description List the first tags ordered by name, capped at a fixed limit
// @Tags Tags
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.TagDTO} "Popular tags"
// @Router /api/v1/tags/popular [get]
func (h *TagHandler) PopularTags(c fiber.Ctx) error {
	result, err := h.tagFlow.ListPopularTags(createRequestContext(c, "/api/v1/tags/popular"))
	if err != nil {
		log.Println("Listing popular tags failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list popular tags", "TAG_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Popular tags retrieved", result)
}

// GetTag retrieves a single tag
// @Summary Get Tag
// @Description Retrieve a tag by ID. Soft-deleted tags read as missing.
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.APIResponse{data=dto.TagDTO} "Tag"
// @Failure 400 {object} dto.APIResponse "Invalid tag ID"
// @Failure 404 {object} dto.APIResponse "Tag not found"
// @Router /api/v1/tags/{id} [get]
func (h *TagHandler) GetTag(c fiber.Ctx) error {
	tagID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.tagFlow.GetTag(createRequestContext(c, "/api/v1/tags/:id"), tagID)
	if err != nil {
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", dto.ErrorTagNotFound, nil)
		}

		log.Println("Fetching tag failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tag", "TAG_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag retrieved", result)
}

// CreateTag creates a new tag
// @Summary Create Tag
// @Description Create a tag. The slug is derived from the name when omitted.
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTagRequest true "Tag data"
// @Success 201 {object} dto.APIResponse{data=dto.TagDTO} "Created tag"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 409 {object} dto.APIResponse "Name or slug already exists"
// @Router /api/v1/tags [post]
func (h *TagHandler) CreateTag(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.tagFlow.CreateTag(createRequestContext(c, "/api/v1/tags"), userID, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTagNameAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Tag name already exists", dto.ErrorTagNameAlreadyExists, nil)
		}
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
		}
		if businessflow.IsTagNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Tag name is required", "VALIDATION_ERROR", nil)
		}

		log.Println("Tag creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tag", "TAG_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Tag created", result)
}

// UpdateTag applies partial updates to a tag
// @Summary Update Tag
// @Description Update a tag. Omitted fields stay untouched.
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body dto.UpdateTagRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TagDTO} "Updated tag"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Tag not found"
// @Failure 409 {object} dto.APIResponse "Name or slug already exists"
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) UpdateTag(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	tagID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag ID", "INVALID_REQUEST", err.Error())
	}

	var req dto.UpdateTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.tagFlow.UpdateTag(createRequestContext(c, "/api/v1/tags/:id"), userID, tagID, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", dto.ErrorTagNotFound, nil)
		}
		if businessflow.IsTagNameAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Tag name already exists", dto.ErrorTagNameAlreadyExists, nil)
		}
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", dto.ErrorSlugAlreadyExists, nil)
		}
		if businessflow.IsTagNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Tag name is required", "VALIDATION_ERROR", nil)
		}

		log.Println("Tag update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update tag", "TAG_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag updated", result)
}

// DeleteTag soft-deletes a tag
// @Summary Delete Tag
// @Description Soft-delete a tag. The row is kept but disappears from every read path.
// @Tags Tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.APIResponse "Tag deleted"
// @Failure 400 {object} dto.APIResponse "Invalid tag ID"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Tag not found"
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	tagID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag ID", "INVALID_REQUEST", err.Error())
	}

	if err := h.tagFlow.DeleteTag(createRequestContext(c, "/api/v1/tags/:id"), userID, tagID, clientMetadata(c)); err != nil {
		if businessflow.IsTagNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Tag not found", dto.ErrorTagNotFound, nil)
		}

		log.Println("Tag deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete tag", "TAG_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag deleted", nil)
}
