// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAuthUserDTO converts a user model to AuthUserDTO for auth responses
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	out := dto.AuthUserDTO{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		out.LastLoginAt = utils.ToPtr(user.LastLoginAt.Format(time.RFC3339))
	}

	return out
}

// ToSessionDTO converts a session model to the issued token pair DTO
func ToSessionDTO(session models.UserSession) dto.SessionDTO {
	return dto.SessionDTO{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserProfileDTO converts a profile model to its DTO
func ToUserProfileDTO(profile models.UserProfile) dto.UserProfileDTO {
	out := dto.UserProfileDTO{
		Bio:                profile.Bio,
		PhoneNumber:        profile.PhoneNumber,
		Website:            profile.Website,
		Country:            profile.Country,
		City:               profile.City,
		IsPublic:           profile.IsPublic,
		ShowEmail:          profile.ShowEmail,
		EmailNotifications: profile.EmailNotifications,
		MarketingEmails:    profile.MarketingEmails,
		CreatedAt:          profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          profile.UpdatedAt.Format(time.RFC3339),
	}

	if profile.BirthDate != nil {
		out.BirthDate = utils.ToPtr(profile.BirthDate.Format("2006-01-02"))
	}

	return out
}

// ToPublicUserDTO converts a user with loaded profile to the public
// listing shape. Email is withheld unless the profile shows it.
func ToPublicUserDTO(user models.User) dto.PublicUserDTO {
	out := dto.PublicUserDTO{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.Profile != nil {
		profileDTO := ToUserProfileDTO(*user.Profile)
		out.Profile = &profileDTO
		if utils.IsTrue(user.Profile.ShowEmail) {
			out.Email = &user.Email
		}
	}

	return out
}

// ToTagDTO converts a tag model to its DTO
func ToTagDTO(tag models.Tag) dto.TagDTO {
	return dto.TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		Slug:        tag.Slug,
		Description: tag.Description,
		CreatedAt:   tag.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tag.UpdatedAt.Format(time.RFC3339),
	}
}

// ToCategoryDTO converts a category model to its DTO
func ToCategoryDTO(category models.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}

// NormalizePagination applies defaults and bounds to page parameters
func NormalizePagination(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = utils.DefaultPageSize
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > utils.MaxPageSize {
		return 0, 0, ErrInvalidPageSize
	}
	return page, pageSize, nil
}

// TotalPages computes the page count for a listing
func TotalPages(totalItems int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := totalItems / int64(pageSize)
	if totalItems%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}
