// Package businessflow contains the core business logic and use cases for account and taxonomy workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound          = errors.New("user not found")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfilePrivate        = errors.New("profile is private")
	ErrStaffOnly             = errors.New("staff access required")
	ErrSessionNotFound       = errors.New("session not found")

	// Tag-related errors
	ErrTagNotFound          = errors.New("tag not found")
	ErrTagNameAlreadyExists = errors.New("tag name already exists")
	ErrSlugAlreadyExists    = errors.New("slug already exists")
	ErrTagNameRequired      = errors.New("tag name is required")

	// Category-related errors
	ErrCategoryNotFound       = errors.New("category not found")
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrCategoryOwnParent      = errors.New("category cannot be its own parent")
	ErrCategoryCycle          = errors.New("category parent chain would form a cycle")
	ErrCategoryNameRequired   = errors.New("category name is required")
	ErrSiblingNameTaken       = errors.New("a sibling category with this name already exists")

	// Cache errors
	ErrCacheNotAvailable = errors.New("cache not available")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsProfilePrivate(err error) bool {
	return errors.Is(err, ErrProfilePrivate)
}

func IsStaffOnly(err error) bool {
	return errors.Is(err, ErrStaffOnly)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsTagNotFound(err error) bool {
	return errors.Is(err, ErrTagNotFound)
}

func IsTagNameAlreadyExists(err error) bool {
	return errors.Is(err, ErrTagNameAlreadyExists)
}

func IsSlugAlreadyExists(err error) bool {
	return errors.Is(err, ErrSlugAlreadyExists)
}

func IsTagNameRequired(err error) bool {
	return errors.Is(err, ErrTagNameRequired)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsParentCategoryNotFound(err error) bool {
	return errors.Is(err, ErrParentCategoryNotFound)
}

func IsCategoryOwnParent(err error) bool {
	return errors.Is(err, ErrCategoryOwnParent)
}

func IsCategoryCycle(err error) bool {
	return errors.Is(err, ErrCategoryCycle)
}

func IsCategoryNameRequired(err error) bool {
	return errors.Is(err, ErrCategoryNameRequired)
}

func IsSiblingNameTaken(err error) bool {
	return errors.Is(err, ErrSiblingNameTaken)
}

func IsCacheNotAvailable(err error) bool {
	return errors.Is(err, ErrCacheNotAvailable)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
