package businessflow_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/app/services"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/simorgh-project/simorgh/repository"
	testingutil "github.com/simorgh-project/simorgh/testing"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileFlow(t *testing.T, testDB *testingutil.TestDB) businessflow.ProfileFlow {
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

	return businessflow.NewProfileFlow(
		repository.NewUserRepository(testDB.DB),
		repository.NewUserProfileRepository(testDB.DB),
		repository.NewUserSessionRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		tokenService,
		testDB.DB,
	)
}

func TestProfileFlowMe(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestProfileFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Success", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, err := flow.Me(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.Username, resp.User.Username)
			assert.True(t, utils.IsTrue(resp.Profile.IsPublic))
		})

		t.Run("UserNotFound", func(t *testing.T) {
			_, err := flow.Me(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProfileFlowUpdateMe(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestProfileFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("UpdatesNamesAndEmail", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			first := "Jane"
			email := "Jane.Renamed@Example.COM"
			resp, err := flow.UpdateMe(ctx, user.ID, &dto.UpdateMeRequest{
				FirstName: &first,
				Email:     &email,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Jane", resp.User.FirstName)
			assert.Equal(t, "jane.renamed@example.com", resp.User.Email)
			// Untouched fields keep their values
			assert.Equal(t, "Doe", resp.User.LastName)
		})

		t.Run("DuplicateEmailRejected", func(t *testing.T) {
			first, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			second, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = flow.UpdateMe(ctx, second.ID, &dto.UpdateMeRequest{
				Email: &first.Email,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("UpdatesNestedProfile", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			bio := "Backend developer"
			birthDate := "1990-04-21"
			hide := false
			resp, err := flow.UpdateMe(ctx, user.ID, &dto.UpdateMeRequest{
				Profile: &dto.UpdateProfileRequest{
					Bio:       &bio,
					BirthDate: &birthDate,
					IsPublic:  &hide,
				},
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, resp.Profile.Bio)
			assert.Equal(t, bio, *resp.Profile.Bio)
			require.NotNil(t, resp.Profile.BirthDate)
			assert.Equal(t, birthDate, *resp.Profile.BirthDate)
			assert.False(t, utils.IsTrue(resp.Profile.IsPublic))
			// Profile fields not in the request are preserved
			assert.True(t, utils.IsTrue(resp.Profile.EmailNotifications))
		})

		t.Run("InvalidBirthDate", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			bad := "21-04-1990"
			_, err = flow.UpdateMe(ctx, user.ID, &dto.UpdateMeRequest{
				Profile: &dto.UpdateProfileRequest{BirthDate: &bad},
			}, testMetadata())
			require.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProfileFlowDeactivateMe(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestProfileFlow(t, testDB)
		authFlow := newTestAuthFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Success", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, err := flow.DeactivateMe(ctx, user.ID, testMetadata())
			require.NoError(t, err)
			assert.True(t, resp.Deactivated)
			assert.Equal(t, 0, resp.SessionsRevoked)

			// Deactivated accounts can no longer log in
			_, err = authFlow.Login(ctx, &dto.LoginRequest{
				Identifier: user.Username,
				Password:   "TestPass123",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		t.Run("UserNotFound", func(t *testing.T) {
			_, err := flow.DeactivateMe(ctx, 999999, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProfileFlowPublicSurface(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestProfileFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		public, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		private, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		hide := false
		_, err = flow.UpdateMe(ctx, private.ID, &dto.UpdateMeRequest{
			Profile: &dto.UpdateProfileRequest{IsPublic: &hide},
		}, testMetadata())
		require.NoError(t, err)

		inactive, err := fixtures.CreateInactiveTestUser()
		require.NoError(t, err)

		t.Run("ListHidesPrivateAndInactive", func(t *testing.T) {
			resp, err := flow.ListPublicUsers(ctx, &dto.UserListRequest{})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, public.ID, resp.Items[0].ID)
		})

		t.Run("ListSearchByUsername", func(t *testing.T) {
			resp, err := flow.ListPublicUsers(ctx, &dto.UserListRequest{
				Search: public.Username,
			})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)

			resp, err = flow.ListPublicUsers(ctx, &dto.UserListRequest{
				Search: "no-such-user",
			})
			require.NoError(t, err)
			assert.Empty(t, resp.Items)
		})

		t.Run("EmailHiddenByDefault", func(t *testing.T) {
			resp, err := flow.PublicProfile(ctx, public.ID)
			require.NoError(t, err)
			assert.Nil(t, resp.Email)

			show := true
			_, err = flow.UpdateMe(ctx, public.ID, &dto.UpdateMeRequest{
				Profile: &dto.UpdateProfileRequest{ShowEmail: &show},
			}, testMetadata())
			require.NoError(t, err)

			resp, err = flow.PublicProfile(ctx, public.ID)
			require.NoError(t, err)
			require.NotNil(t, resp.Email)
			assert.Equal(t, public.Email, *resp.Email)
		})

		t.Run("PrivateProfileLooksMissing", func(t *testing.T) {
			_, err := flow.PublicProfile(ctx, private.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("InactiveUserLooksMissing", func(t *testing.T) {
			_, err := flow.PublicProfile(ctx, inactive.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestProfileFlowExportUsers(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestProfileFlow(t, testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("StaffOnly", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, err = flow.ExportUsers(ctx, user.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsStaffOnly(err))
		})

		t.Run("ProducesWorkbook", func(t *testing.T) {
			staff, err := fixtures.CreateTestStaffUser()
			require.NoError(t, err)
			_, err = fixtures.CreateMultipleTestUsers(3)
			require.NoError(t, err)

			data, err := flow.ExportUsers(ctx, staff.ID)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			// xlsx files are zip archives
			assert.True(t, bytes.HasPrefix(data, []byte("PK")))
		})

		return nil
	})
	require.NoError(t, err)
}
