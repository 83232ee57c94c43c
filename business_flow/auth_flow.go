// Package businessflow contains the core business logic and use cases for account and taxonomy workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/services"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	"github.com/simorgh-project/simorgh/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles registration, authentication and session lifecycle
type AuthFlow interface {
	Register(ctx context.Context, request *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error)
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint, accessToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error)
	LogoutAll(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.LogoutResponse, error)
	ChangePassword(ctx context.Context, userID uint, request *dto.ChangePasswordRequest, metadata *ClientMetadata) (*dto.ChangePasswordResponse, error)
}

// AuthFlowImpl implements the auth business flow
type AuthFlowImpl struct {
	userRepo        repository.UserRepository
	profileRepo     repository.UserProfileRepository
	sessionRepo     repository.UserSessionRepository
	auditRepo       repository.AuditLogRepository
	tokenService    services.TokenService
	notificationSvc services.NotificationService
	db              *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	notificationSvc services.NotificationService,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		sessionRepo:     sessionRepo,
		auditRepo:       auditRepo,
		tokenService:    tokenService,
		notificationSvc: notificationSvc,
		db:              db,
	}
}

// Register creates a user together with an empty profile and logs them in
func (af *AuthFlowImpl) Register(ctx context.Context, request *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, af.db, func(ctx context.Context) (*dto.RegisterResponse, error) {
		username := strings.TrimSpace(strings.ToLower(request.Username))
		email := strings.TrimSpace(strings.ToLower(request.Email))

		existing, err := af.userRepo.ByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameAlreadyExists
		}

		existing, err = af.userRepo.ByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user = &models.User{
			UUID:         uuid.New(),
			Username:     username,
			Email:        email,
			FirstName:    strings.TrimSpace(request.FirstName),
			LastName:     strings.TrimSpace(request.LastName),
			PasswordHash: string(hashedPassword),
			IsActive:     utils.ToPtr(true),
			IsStaff:      utils.ToPtr(false),
		}
		if err := af.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}

		// Profile rows always exist alongside the user
		profile := &models.UserProfile{
			UserID:             user.ID,
			IsPublic:           utils.ToPtr(true),
			ShowEmail:          utils.ToPtr(false),
			EmailNotifications: utils.ToPtr(true),
			MarketingEmails:    utils.ToPtr(false),
			IsDeleted:          utils.ToPtr(false),
		}
		if err := af.profileRepo.Save(ctx, profile); err != nil {
			return nil, err
		}

		session, err := af.CreateSession(ctx, user.ID, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.RegisterResponse{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Registration failed: %s", err.Error())
		_ = af.logAuthEvent(ctx, user, models.AuditActionRegistrationCompleted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("REGISTRATION_FAILED", "Registration failed", err)
	}

	msg := fmt.Sprintf("User registered successfully: %d", resp.User.ID)
	_ = af.logAuthEvent(ctx, user, models.AuditActionRegistrationCompleted, msg, true, nil, metadata)

	welcome := fmt.Sprintf("Welcome, %s! Your account is ready.", resp.User.Username)
	if err := af.notificationSvc.SendEmail(resp.User.Email, "Welcome", welcome); err != nil {
		// Registration already committed; a failed welcome email is only audit-worthy
		errMsg := fmt.Sprintf("Welcome email failed: %v", err)
		_ = af.logAuthEvent(ctx, user, models.AuditActionRegistrationCompleted, errMsg, false, &errMsg, metadata)
	}

	return resp, nil
}

// Login authenticates a user with username/email and password
func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, af.db, func(ctx context.Context) (*dto.LoginResponse, error) {
		var err error
		user, err = af.FindUserByIdentifier(ctx, request.Identifier)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
			return nil, ErrIncorrectPassword
		}

		if err := af.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
			return nil, err
		}

		session, err := af.CreateSession(ctx, user.ID, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.LoginResponse{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		_ = af.logAuthEvent(ctx, user, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("User logged in successfully: %d", resp.User.ID)
	_ = af.logAuthEvent(ctx, user, models.AuditActionLoginSuccessful, msg, true, nil, metadata)

	return resp, nil
}

// Logout revokes the presented token and expires its session
func (af *AuthFlowImpl) Logout(ctx context.Context, userID uint, accessToken string, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, af.db, func(ctx context.Context) (*dto.LogoutResponse, error) {
		var err error
		user, err = af.userRepo.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		session, err := af.sessionRepo.ByAccessToken(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}

		if err := af.sessionRepo.ExpireSession(ctx, session.ID); err != nil {
			return nil, err
		}

		if err := af.revokeSessionTokens(ctx, session); err != nil {
			return nil, err
		}

		return &dto.LogoutResponse{SessionsRevoked: 1}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Logout failed: %s", err.Error())
		_ = af.logAuthEvent(ctx, user, models.AuditActionLogout, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}

	msg := fmt.Sprintf("User logged out: %d", userID)
	_ = af.logAuthEvent(ctx, user, models.AuditActionLogout, msg, true, nil, metadata)

	return resp, nil
}

// LogoutAll revokes every active session of the user
func (af *AuthFlowImpl) LogoutAll(ctx context.Context, userID uint, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, af.db, func(ctx context.Context) (*dto.LogoutResponse, error) {
		var err error
		user, err = af.userRepo.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		revoked, err := af.revokeAllSessions(ctx, userID)
		if err != nil {
			return nil, err
		}

		return &dto.LogoutResponse{SessionsRevoked: revoked}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Logout all failed: %s", err.Error())
		_ = af.logAuthEvent(ctx, user, models.AuditActionLogoutAll, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGOUT_ALL_FAILED", "Logout all failed", err)
	}

	msg := fmt.Sprintf("All sessions revoked for user %d: %d", userID, resp.SessionsRevoked)
	_ = af.logAuthEvent(ctx, user, models.AuditActionLogoutAll, msg, true, nil, metadata)

	return resp, nil
}

// ChangePassword verifies the current password, stores the new hash,
// revokes every session and issues a fresh one.
func (af *AuthFlowImpl) ChangePassword(ctx context.Context, userID uint, request *dto.ChangePasswordRequest, metadata *ClientMetadata) (*dto.ChangePasswordResponse, error) {
	var user *models.User

	resp, err := withFlowTransaction(ctx, af.db, func(ctx context.Context) (*dto.ChangePasswordResponse, error) {
		var err error
		user, err = af.userRepo.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.CurrentPassword)); err != nil {
			return nil, ErrIncorrectPassword
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		if err := af.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
			return nil, err
		}

		if _, err := af.revokeAllSessions(ctx, user.ID); err != nil {
			return nil, err
		}

		session, err := af.CreateSession(ctx, user.ID, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.ChangePasswordResponse{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Password change failed: %s", err.Error())
		_ = af.logAuthEvent(ctx, user, models.AuditActionPasswordChanged, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("PASSWORD_CHANGE_FAILED", "Password change failed", err)
	}

	msg := fmt.Sprintf("Password changed for user %d", userID)
	_ = af.logAuthEvent(ctx, user, models.AuditActionPasswordChanged, msg, true, nil, metadata)

	return resp, nil
}

// Private helper methods

func (af *AuthFlowImpl) FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))

	if strings.Contains(identifier, "@") {
		return af.userRepo.ByEmail(ctx, identifier)
	}
	return af.userRepo.ByUsername(ctx, identifier)
}

func (af *AuthFlowImpl) CreateSession(ctx context.Context, userID uint, metadata *ClientMetadata) (*models.UserSession, error) {
	accessToken, refreshToken, err := af.tokenService.GenerateTokens(userID)
	if err != nil {
		return nil, err
	}

	expiresAt := utils.UTCNowAdd(utils.SessionTimeout)

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	session := &models.UserSession{
		UserID:        userID,
		CorrelationID: uuid.New(),
		AccessToken:   accessToken,
		RefreshToken:  &refreshToken,
		ExpiresAt:     expiresAt,
		IsActive:      utils.ToPtr(true),
		IPAddress:     &ipAddress,
		UserAgent:     &userAgent,
	}

	if err := af.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// revokeSessionTokens pushes both tokens of a session onto the Redis
// revocation list so the middleware rejects them immediately.
func (af *AuthFlowImpl) revokeSessionTokens(ctx context.Context, session *models.UserSession) error {
	if err := af.tokenService.RevokeToken(ctx, session.AccessToken); err != nil {
		return err
	}
	if session.RefreshToken != nil {
		if err := af.tokenService.RevokeToken(ctx, *session.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (af *AuthFlowImpl) revokeAllSessions(ctx context.Context, userID uint) (int, error) {
	sessions, err := af.sessionRepo.ListActiveSessionsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	for _, session := range sessions {
		if err := af.revokeSessionTokens(ctx, session); err != nil {
			return 0, err
		}
	}

	if err := af.sessionRepo.ExpireAllUserSessions(ctx, userID); err != nil {
		return 0, err
	}

	return len(sessions), nil
}

func (af *AuthFlowImpl) logAuthEvent(ctx context.Context, user *models.User, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
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

	return af.auditRepo.Save(ctx, audit)
}

// withFlowTransaction runs fn inside a database transaction and
// returns its typed result.
func withFlowTransaction[T any](ctx context.Context, db *gorm.DB, fn func(context.Context) (*T, error)) (*T, error) {
	var result *T
	var fnErr error

	err := repository.WithTransaction(ctx, db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}
