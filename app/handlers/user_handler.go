// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/middleware"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// UserHandlerInterface defines the contract for user handlers
type UserHandlerInterface interface {
	Me(c fiber.Ctx) error
	UpdateMe(c fiber.Ctx) error
	DeactivateMe(c fiber.Ctx) error
	ListUsers(c fiber.Ctx) error
	PublicProfile(c fiber.Ctx) error
	ExportUsers(c fiber.Ctx) error
}

// UserHandler handles user and profile HTTP requests
type UserHandler struct {
	profileFlow businessflow.ProfileFlow
	validator   *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(profileFlow businessflow.ProfileFlow) *UserHandler {
	return &UserHandler{
		profileFlow: profileFlow,
		validator:   newValidator(),
	}
}

func (h *UserHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *UserHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Me returns the current user with their profile
// @Summary Current User
// @Description Retrieve the authenticated user together with their profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeResponse} "Current user"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.profileFlow.Me(createRequestContext(c, "/api/v1/users/me"), userID)
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", dto.ErrorProfileNotFound, nil)
		}

		log.Println("Fetching current user failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user", "USER_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Current user retrieved", result)
}

// UpdateMe applies partial updates to the current user and profile
// @Summary Update Current User
// @Description Update the authenticated user's fields and profile. Omitted fields stay untouched.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MeResponse} "Updated user"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateMeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.profileFlow.UpdateMe(createRequestContext(c, "/api/v1/users/me"), userID, &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}
		if businessflow.IsEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already exists", dto.ErrorEmailAlreadyExists, nil)
		}
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", dto.ErrorProfileNotFound, nil)
		}

		log.Println("Updating current user failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", "USER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User updated", result)
}

// DeactivateMe soft-deactivates the current account
// @Summary Deactivate Account
// @Description Deactivate the authenticated account and revoke every session. The row is kept.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DeactivateAccountResponse} "Account deactivated"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /api/v1/users/me [delete]
func (h *UserHandler) DeactivateMe(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.profileFlow.DeactivateMe(createRequestContext(c, "/api/v1/users/me"), userID, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}

		log.Println("Account deactivation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to deactivate account", "ACCOUNT_DEACTIVATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Account deactivated", result)
}

// ListUsers lists active users with public profiles
// @Summary List Users
// @Description List active users whose profiles are public, with pagination and search
// @Tags Users
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Match against username or name"
// @Param order_by query string false "Ordering" Enums(username, created_at)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "User listing"
// @Failure 400 {object} dto.APIResponse "Invalid query parameters"
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	var req dto.UserListRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.profileFlow.ListPublicUsers(createRequestContext(c, "/api/v1/users"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "VALIDATION_ERROR", err.Error())
		}

		log.Println("Listing users failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list users", "USER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Users retrieved", result)
}

// PublicProfile returns the public view of a user
// @Summary Public Profile
// @Description Retrieve the public profile of a user. Private or inactive users read as missing.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.PublicUserDTO} "Public profile"
// @Failure 400 {object} dto.APIResponse "Invalid user ID"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /api/v1/users/{id}/profile [get]
func (h *UserHandler) PublicProfile(c fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.profileFlow.PublicProfile(createRequestContext(c, "/api/v1/users/:id/profile"), userID)
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}

		log.Println("Fetching public profile failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch profile", "PROFILE_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved", result)
}

// ExportUsers streams an xlsx export of all users. Staff only.
// @Summary Export Users
// @Description Download an xlsx listing of all users. Requires a staff account.
// @Tags Users
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "xlsx file"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Staff access required"
// @Router /api/v1/users/export [get]
func (h *UserHandler) ExportUsers(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	// Exports walk every user row, so give them more room than the default
	ctx := createRequestContextWithTimeout(c, "/api/v1/users/export", 2*time.Minute)
	payload, err := h.profileFlow.ExportUsers(ctx, userID)
	if err != nil {
		if businessflow.IsStaffOnly(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Staff access required", dto.ErrorStaffOnly, nil)
		}
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}

		log.Println("User export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export users", "USER_EXPORT_FAILED", nil)
	}

	filename := fmt.Sprintf("users_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}
