// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "eqfield":
		return err.Field() + " must match " + err.Param()
	case "username_format":
		return "Username may contain only letters, numbers, dots, hyphens and underscores"
	case "password_strength":
		return "Password must contain at least 1 uppercase letter and 1 number"
	case "slug_format":
		return "Slug may contain only lowercase letters, numbers and hyphens"
	case "datetime":
		return err.Field() + " must be a date in format " + err.Param()
	case "url":
		return err.Field() + " must be a valid URL"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// newValidator builds a validator with the custom rules used across the API
func newValidator() *validator.Validate {
	v := validator.New()

	// Django-style username charset: letters, digits and .-_
	_ = v.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}
		for _, char := range value {
			ok := (char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') ||
				char == '.' || char == '-' || char == '_'
			if !ok {
				return false
			}
		}
		return true
	})

	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()

		hasUpper := false
		hasNumber := false

		for _, char := range value {
			if char >= 'A' && char <= 'Z' {
				hasUpper = true
			}
			if char >= '0' && char <= '9' {
				hasNumber = true
			}
		}

		return hasUpper && hasNumber
	})

	// Lowercase letters, digits and single hyphens, no leading or trailing hyphen
	_ = v.RegisterValidation("slug_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" || value[0] == '-' || value[len(value)-1] == '-' {
			return false
		}
		for i := 0; i < len(value); i++ {
			char := value[i]
			ok := (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-'
			if !ok {
				return false
			}
			if char == '-' && value[i-1] == '-' {
				return false
			}
		}
		return true
	})

	_ = v.RegisterValidation("url", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		parsed, err := url.Parse(value)
		if err != nil {
			return false
		}
		return parsed.Scheme != "" && parsed.Host != ""
	})

	return v
}

// validationErrors flattens validator output into user-facing messages
func validationErrors(err error) []string {
	var messages []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			messages = append(messages, getValidationErrorMessage(fieldErr))
		}
		return messages
	}
	return []string{"Validation failed"}
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, businessflow.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel)

	return ctx
}

// clientMetadata collects client info for audit logging and session tracking
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}

// parseIDParam parses a positive numeric path parameter
func parseIDParam(c fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}
