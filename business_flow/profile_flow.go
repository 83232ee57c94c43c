// Package businessflow contains the core business logic and use cases for account and taxonomy workflows
package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/services"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ProfileFlow handles the current user's account and the public user surface
type ProfileFlow interface {
	Me(ctx context.Context, userID uint) (*dto.MeResponse, error)
	UpdateMe(ctx context.Context, userID uint, request *dto.UpdateMeRequest, metadata *ClientMetadata) (*dto.MeResponse, error)
	DeactivateMe(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.DeactivateAccountResponse, error)
	ListPublicUsers(ctx context.Context, request *dto.UserListRequest) (*dto.UserListResponse, error)
	PublicProfile(ctx context.Context, userID uint) (*dto.PublicUserDTO, error)
	ExportUsers(ctx context.Context, requestingUserID uint) ([]byte, error)
}

// ProfileFlowImpl implements the profile business flow
type ProfileFlowImpl struct {
	userRepo     repository.UserRepository
	profileRepo  repository.UserProfileRepository
	sessionRepo  repository.UserSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	db           *gorm.DB
}

// NewProfileFlow creates a new profile flow instance
func NewProfileFlow(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	db *gorm.DB,
) ProfileFlow {
	return &ProfileFlowImpl{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		db:           db,
	}
}

// Me returns the current user together with their profile
func (pf *ProfileFlowImpl) Me(ctx context.Context, userID uint) (*dto.MeResponse, error) {
	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("ME_FAILED", "Failed to load account", err)
	}
	if user == nil {
		return nil, NewBusinessError("ME_FAILED", "Failed to load account", ErrUserNotFound)
	}

	profile, err := pf.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("ME_FAILED", "Failed to load profile", err)
	}
	if profile == nil {
		return nil, NewBusinessError("ME_FAILED", "Failed to load profile", ErrProfileNotFound)
	}

	return &dto.MeResponse{
		User:    ToAuthUserDTO(*user),
		Profile: ToUserProfileDTO(*profile),
	}, nil
}

// UpdateMe applies partial updates to the user and the nested profile
func (pf *ProfileFlowImpl) UpdateMe(ctx context.Context, userID uint, request *dto.UpdateMeRequest, metadata *ClientMetadata) (*dto.MeResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, pf.db, func(ctx context.Context) (*dto.MeResponse, error) {
		var err error
		user, err = pf.userRepo.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if request.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*request.Email))
			if email != user.Email {
				existing, err := pf.userRepo.ByEmail(ctx, email)
				if err != nil {
					return nil, err
				}
				if existing != nil && existing.ID != user.ID {
					return nil, ErrEmailAlreadyExists
				}
				user.Email = email
			}
		}
		if request.FirstName != nil {
			user.FirstName = strings.TrimSpace(*request.FirstName)
		}
		if request.LastName != nil {
			user.LastName = strings.TrimSpace(*request.LastName)
		}

		if err := pf.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}

		profile, err := pf.profileRepo.ByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, ErrProfileNotFound
		}

		if request.Profile != nil {
			if err := applyProfileUpdate(profile, request.Profile); err != nil {
				return nil, err
			}
			if err := pf.profileRepo.Update(ctx, profile); err != nil {
				return nil, err
			}
		}

		return &dto.MeResponse{
			User:    ToAuthUserDTO(*user),
			Profile: ToUserProfileDTO(*profile),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Profile update failed: %s", err.Error())
		_ = pf.logProfileEvent(ctx, user, models.AuditActionProfileUpdated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("PROFILE_UPDATE_FAILED", "Profile update failed", err)
	}

	msg := fmt.Sprintf("Profile updated for user %d", userID)
	_ = pf.logProfileEvent(ctx, user, models.AuditActionProfileUpdated, msg, true, nil, metadata)

	return resp, nil
}

// DeactivateMe soft-deactivates the account and revokes all sessions
func (pf *ProfileFlowImpl) DeactivateMe(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.DeactivateAccountResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, pf.db, func(ctx context.Context) (*dto.DeactivateAccountResponse, error) {
		var err error
		user, err = pf.userRepo.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		sessions, err := pf.sessionRepo.ListActiveSessionsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		for _, session := range sessions {
			if err := pf.tokenService.RevokeToken(ctx, session.AccessToken); err != nil {
				return nil, err
			}
			if session.RefreshToken != nil {
				if err := pf.tokenService.RevokeToken(ctx, *session.RefreshToken); err != nil {
					return nil, err
				}
			}
		}

		if err := pf.sessionRepo.ExpireAllUserSessions(ctx, userID); err != nil {
			return nil, err
		}

		if err := pf.userRepo.Deactivate(ctx, userID); err != nil {
			return nil, err
		}

		return &dto.DeactivateAccountResponse{
			Deactivated:     true,
			SessionsRevoked: len(sessions),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Account deactivation failed: %s", err.Error())
		_ = pf.logProfileEvent(ctx, user, models.AuditActionAccountDeactivated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("DEACTIVATION_FAILED", "Account deactivation failed", err)
	}

	msg := fmt.Sprintf("Account deactivated: %d", userID)
	_ = pf.logProfileEvent(ctx, user, models.AuditActionAccountDeactivated, msg, true, nil, metadata)

	return resp, nil
}

// ListPublicUsers lists active users with public profiles
func (pf *ProfileFlowImpl) ListPublicUsers(ctx context.Context, request *dto.UserListRequest) (*dto.UserListResponse, error) {
	page, pageSize, err := NormalizePagination(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_VALIDATION_FAILED", "Invalid pagination", err)
	}

	orderBy := "users.created_at DESC"
	if request.OrderBy == "username" {
		orderBy = "users.username ASC"
	}

	users, total, err := pf.userRepo.ListPublicUsers(ctx, strings.TrimSpace(request.Search), orderBy, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to list users", err)
	}

	items := make([]dto.PublicUserDTO, 0, len(users))
	for _, user := range users {
		items = append(items, ToPublicUserDTO(*user))
	}

	return &dto.UserListResponse{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: TotalPages(total, pageSize),
		},
	}, nil
}

// PublicProfile returns a user's public view, or not-found when the
// profile is private. Private profiles are indistinguishable from
// missing users on purpose.
func (pf *ProfileFlowImpl) PublicProfile(ctx context.Context, userID uint) (*dto.PublicUserDTO, error) {
	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PUBLIC_PROFILE_FAILED", "Failed to load profile", err)
	}
	if user == nil || !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("PUBLIC_PROFILE_FAILED", "Profile not found", ErrUserNotFound)
	}

	profile, err := pf.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PUBLIC_PROFILE_FAILED", "Failed to load profile", err)
	}
	if profile == nil || !utils.IsTrue(profile.IsPublic) {
		return nil, NewBusinessError("PUBLIC_PROFILE_FAILED", "Profile not found", ErrUserNotFound)
	}

	user.Profile = profile
	out := ToPublicUserDTO(*user)
	return &out, nil
}

// ExportUsers builds an xlsx workbook of all users. Staff only.
func (pf *ProfileFlowImpl) ExportUsers(ctx context.Context, requestingUserID uint) ([]byte, error) {
	requester, err := pf.userRepo.ByID(ctx, requestingUserID)
	if err != nil {
		return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to export users", err)
	}
	if requester == nil {
		return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to export users", ErrUserNotFound)
	}
	if !utils.IsTrue(requester.IsStaff) {
		return nil, NewBusinessError("USER_EXPORT_FAILED", "Staff access required", ErrStaffOnly)
	}

	users, err := pf.userRepo.ByFilter(ctx, models.UserFilter{}, "id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to export users", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "UUID", "Username", "Email", "First Name", "Last Name", "Active", "Staff", "Created At", "Last Login At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to build export", err)
		}
	}

	for row, user := range users {
		lastLogin := ""
		if user.LastLoginAt != nil {
			lastLogin = user.LastLoginAt.Format(time.RFC3339)
		}
		values := []any{
			user.ID,
			user.UUID.String(),
			user.Username,
			user.Email,
			user.FirstName,
			user.LastName,
			utils.IsTrue(user.IsActive),
			utils.IsTrue(user.IsStaff),
			user.CreatedAt.Format(time.RFC3339),
			lastLogin,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to build export", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewBusinessError("USER_EXPORT_FAILED", "Failed to write export", err)
	}

	return buf.Bytes(), nil
}

// Private helper methods

func applyProfileUpdate(profile *models.UserProfile, update *dto.UpdateProfileRequest) error {
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *update.BirthDate)
		if err != nil {
			return fmt.Errorf("invalid birth date: %w", err)
		}
		profile.BirthDate = &birthDate
	}
	if update.PhoneNumber != nil {
		profile.PhoneNumber = update.PhoneNumber
	}
	if update.Website != nil {
		profile.Website = update.Website
	}
	if update.Country != nil {
		profile.Country = update.Country
	}
	if update.City != nil {
		profile.City = update.City
	}
	if update.IsPublic != nil {
		profile.IsPublic = update.IsPublic
	}
	if update.ShowEmail != nil {
		profile.ShowEmail = update.ShowEmail
	}
	if update.EmailNotifications != nil {
		profile.EmailNotifications = update.EmailNotifications
	}
	if update.MarketingEmails != nil {
		profile.MarketingEmails = update.MarketingEmails
	}
	return nil
}

func (pf *ProfileFlowImpl) logProfileEvent(ctx context.Context, user *models.User, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	var userID *uint
	if user != nil {
		userID = &user.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
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

	return pf.auditRepo.Save(ctx, audit)
}
