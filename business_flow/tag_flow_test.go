package businessflow_test

import (
	"testing"

	"github.com/simorgh-project/simorgh/app/dto"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	testingutil "github.com/simorgh-project/simorgh/testing"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTagFlow(testDB *testingutil.TestDB) businessflow.TagFlow {
	return businessflow.NewTagFlow(
		repository.NewTagRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
	)
}

func TestTagFlowCreate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestTagFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("DerivesSlugFromName", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{
				Name: "Machine Learning",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Machine Learning", tag.Name)
			assert.Equal(t, "machine-learning", tag.Slug)
		})

		t.Run("ExplicitSlug", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{
				Name: "Go Language",
				Slug: "golang",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "golang", tag.Slug)
		})

		t.Run("BlankNameRejected", func(t *testing.T) {
			_, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{
				Name: "   ",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNameRequired(err))
		})

		t.Run("DuplicateName", func(t *testing.T) {
			_, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Databases"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Databases"}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNameAlreadyExists(err))
		})

		t.Run("DuplicateSlug", func(t *testing.T) {
			_, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Testing", Slug: "testing"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Testing 2", Slug: "testing"}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		t.Run("NameFreedAfterSoftDelete", func(t *testing.T) {
			created, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Transient"}, testMetadata())
			require.NoError(t, err)

			err = flow.DeleteTag(ctx, user.ID, created.ID, testMetadata())
			require.NoError(t, err)

			// Soft-deleted names can be reused
			again, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Transient"}, testMetadata())
			require.NoError(t, err)
			assert.NotEqual(t, created.ID, again.ID)
		})

		t.Run("WritesAuditRecord", func(t *testing.T) {
			auditRepo := repository.NewAuditLogRepository(testDB.DB)
			logs, err := auditRepo.ListByAction(ctx, models.AuditActionTagCreated, 100, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, logs)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTagFlowReads(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestTagFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		names := []string{"alpha", "beta", "gamma"}
		ids := make(map[string]uint)
		for _, name := range names {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: name}, testMetadata())
			require.NoError(t, err)
			ids[name] = tag.ID
		}

		t.Run("GetTag", func(t *testing.T) {
			tag, err := flow.GetTag(ctx, ids["alpha"])
			require.NoError(t, err)
			assert.Equal(t, "alpha", tag.Name)
		})

		t.Run("GetTagNotFound", func(t *testing.T) {
			_, err := flow.GetTag(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNotFound(err))
		})

		t.Run("ListOrderedByName", func(t *testing.T) {
			resp, err := flow.ListTags(ctx, &dto.TagListRequest{})
			require.NoError(t, err)
			require.Len(t, resp.Items, 3)
			assert.Equal(t, "alpha", resp.Items[0].Name)
			assert.Equal(t, "beta", resp.Items[1].Name)
			assert.Equal(t, "gamma", resp.Items[2].Name)
			assert.Equal(t, int64(3), resp.Pagination.TotalItems)
		})

		t.Run("ListPagination", func(t *testing.T) {
			resp, err := flow.ListTags(ctx, &dto.TagListRequest{Page: 2, PageSize: 2})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "gamma", resp.Items[0].Name)
			assert.Equal(t, 2, resp.Pagination.TotalPages)
		})

		t.Run("ListSearch", func(t *testing.T) {
			resp, err := flow.ListTags(ctx, &dto.TagListRequest{Search: "bet"})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "beta", resp.Items[0].Name)
		})

		t.Run("SoftDeletedExcludedFromReads", func(t *testing.T) {
			err := flow.DeleteTag(ctx, user.ID, ids["beta"], testMetadata())
			require.NoError(t, err)

			_, err = flow.GetTag(ctx, ids["beta"])
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNotFound(err))

			resp, err := flow.ListTags(ctx, &dto.TagListRequest{})
			require.NoError(t, err)
			assert.Len(t, resp.Items, 2)

			popular, err := flow.ListPopularTags(ctx)
			require.NoError(t, err)
			for _, item := range popular {
				assert.NotEqual(t, "beta", item.Name)
			}
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTagFlowUpdateAndDelete(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestTagFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("PartialUpdate", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Observability"}, testMetadata())
			require.NoError(t, err)

			desc := "Logs, metrics and traces"
			updated, err := flow.UpdateTag(ctx, user.ID, tag.ID, &dto.UpdateTagRequest{
				Description: &desc,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "Observability", updated.Name)
			require.NotNil(t, updated.Description)
			assert.Equal(t, desc, *updated.Description)
		})

		t.Run("RenameChecksDuplicates", func(t *testing.T) {
			first, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "First"}, testMetadata())
			require.NoError(t, err)
			_, err = flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Second"}, testMetadata())
			require.NoError(t, err)

			name := "Second"
			_, err = flow.UpdateTag(ctx, user.ID, first.ID, &dto.UpdateTagRequest{Name: &name}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNameAlreadyExists(err))
		})

		t.Run("EmptySlugRederived", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Cloud Native", Slug: "cn"}, testMetadata())
			require.NoError(t, err)

			empty := ""
			updated, err := flow.UpdateTag(ctx, user.ID, tag.ID, &dto.UpdateTagRequest{Slug: &empty}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "cloud-native", updated.Slug)
		})

		t.Run("DeleteTwiceFails", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Once"}, testMetadata())
			require.NoError(t, err)

			require.NoError(t, flow.DeleteTag(ctx, user.ID, tag.ID, testMetadata()))

			err = flow.DeleteTag(ctx, user.ID, tag.ID, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsTagNotFound(err))
		})

		t.Run("RowSurvivesSoftDelete", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, user.ID, &dto.CreateTagRequest{Name: "Archived"}, testMetadata())
			require.NoError(t, err)
			require.NoError(t, flow.DeleteTag(ctx, user.ID, tag.ID, testMetadata()))

			repo := repository.NewTagRepository(testDB.DB)
			row, err := repo.ByID(ctx, tag.ID)
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.True(t, utils.IsTrue(row.IsDeleted))
		})

		return nil
	})
	require.NoError(t, err)
}
