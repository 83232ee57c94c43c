package businessflow_test

import (
	"testing"
	"time"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/services"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	testingutil "github.com/simorgh-project/simorgh/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthFlow(t *testing.T, testDB *testingutil.TestDB) businessflow.AuthFlow {
	t.Helper()

	tokenService, err := services.NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
		nil,
	)
	require.NoError(t, err)

	return businessflow.NewAuthFlow(
		repository.NewUserRepository(testDB.DB),
		repository.NewUserProfileRepository(testDB.DB),
		repository.NewUserSessionRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		tokenService,
		services.NewNotificationService(services.NewMockEmailProvider()),
		testDB.DB,
	)
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
}

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "SecurePass123",
		ConfirmPassword: "SecurePass123",
		FirstName:       "John",
		LastName:        "Doe",
	}
}

func TestAuthFlowRegister(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestAuthFlow(t, testDB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.Register(ctx, registerRequest("alice"), testMetadata())
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.Equal(t, "alice", resp.User.Username)
			assert.Equal(t, "alice@example.com", resp.User.Email)
			assert.NotEmpty(t, resp.Session.AccessToken)
			assert.NotNil(t, resp.Session.RefreshToken)
			assert.Equal(t, "Bearer", resp.Session.TokenType)

			// Profile row is created alongside the user
			profileRepo := repository.NewUserProfileRepository(testDB.DB)
			profile, err := profileRepo.ByUserID(ctx, resp.User.ID)
			require.NoError(t, err)
			assert.NotNil(t, profile)

			// Audit trail records the registration
			logs, err := auditRepo.ListByAction(ctx, models.AuditActionRegistrationCompleted, 10, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, logs)
		})

		t.Run("NormalizesIdentifiers", func(t *testing.T) {
			req := registerRequest("bob")
			req.Username = "  BOB  "
			req.Email = "  Bob@Example.COM  "

			resp, err := flow.Register(ctx, req, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "bob", resp.User.Username)
			assert.Equal(t, "bob@example.com", resp.User.Email)
		})

		t.Run("DuplicateUsername", func(t *testing.T) {
			_, err := flow.Register(ctx, registerRequest("carol"), testMetadata())
			require.NoError(t, err)

			req := registerRequest("carol")
			req.Email = "carol2@example.com"
			_, err = flow.Register(ctx, req, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			_, err := flow.Register(ctx, registerRequest("dave"), testMetadata())
			require.NoError(t, err)

			req := registerRequest("dave2")
			req.Email = "dave@example.com"
			_, err = flow.Register(ctx, req, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAuthFlowLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestAuthFlow(t, testDB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		_, err := flow.Register(ctx, registerRequest("erin"), testMetadata())
		require.NoError(t, err)

		t.Run("ByUsername", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{
				Identifier: "erin",
				Password:   "SecurePass123",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "erin", resp.User.Username)
			assert.NotEmpty(t, resp.Session.AccessToken)
		})

		t.Run("ByEmail", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{
				Identifier: "erin@example.com",
				Password:   "SecurePass123",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "erin", resp.User.Username)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Identifier: "erin",
				Password:   "WrongPass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))

			// Failed login leaves a failure audit record
			logs, err := auditRepo.ListByAction(ctx, models.AuditActionLoginFailed, 10, 0)
			require.NoError(t, err)
			require.NotEmpty(t, logs)
			assert.True(t, logs[0].IsFailed())
		})

		t.Run("UnknownUser", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Identifier: "nobody",
				Password:   "SecurePass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("InactiveAccount", func(t *testing.T) {
			fixtures := testingutil.NewTestFixtures(testDB)
			user, err := fixtures.CreateInactiveTestUser()
			require.NoError(t, err)

			_, err = flow.Login(ctx, &dto.LoginRequest{
				Identifier: user.Username,
				Password:   "TestPass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAuthFlowLogout(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestAuthFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SessionNotFound", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = flow.Logout(ctx, user.ID, "unknown-token", testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSessionNotFound(err))
		})

		t.Run("UserNotFound", func(t *testing.T) {
			_, err := flow.Logout(ctx, 999999, "token", testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("LogoutAllWithNoSessions", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, err := flow.LogoutAll(ctx, user.ID, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 0, resp.SessionsRevoked)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAuthFlowChangePassword(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestAuthFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Success", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, err := flow.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
				CurrentPassword: "TestPass123",
				NewPassword:     "NewSecurePass123",
				ConfirmPassword: "NewSecurePass123",
			}, testMetadata())
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Session.AccessToken)

			// Old password no longer works
			_, err = flow.Login(ctx, &dto.LoginRequest{
				Identifier: user.Username,
				Password:   "TestPass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))

			// New password does
			_, err = flow.Login(ctx, &dto.LoginRequest{
				Identifier: user.Username,
				Password:   "NewSecurePass123",
			}, testMetadata())
			require.NoError(t, err)
		})

		t.Run("WrongCurrentPassword", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = flow.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
				CurrentPassword: "NotTheRightOne1",
				NewPassword:     "NewSecurePass123",
				ConfirmPassword: "NewSecurePass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		return nil
	})
	require.NoError(t, err)
}
