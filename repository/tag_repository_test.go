package repository_test

import (
	"testing"

	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	testingutil "github.com/simorgh-project/simorgh/testing"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewTagRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Save", func(t *testing.T) {
			tag, err := fixtures.CreateTestTag("golang")
			require.NoError(t, err)
			assert.NotZero(t, tag.ID)
			assert.Equal(t, "golang", tag.Slug)
		})

		t.Run("ByID", func(t *testing.T) {
			original, err := fixtures.CreateTestTag("databases")
			require.NoError(t, err)

			tag, err := repo.ByID(ctx, original.ID)
			require.NoError(t, err)
			assert.NotNil(t, tag)
			assert.Equal(t, original.ID, tag.ID)
			assert.Equal(t, "databases", tag.Name)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			tag, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, tag)
		})

		t.Run("ByName", func(t *testing.T) {
			original, err := fixtures.CreateTestTag("networking")
			require.NoError(t, err)

			tag, err := repo.ByName(ctx, "networking")
			require.NoError(t, err)
			assert.NotNil(t, tag)
			assert.Equal(t, original.ID, tag.ID)
		})

		t.Run("ByNameNotFound", func(t *testing.T) {
			tag, err := repo.ByName(ctx, "does-not-exist")
			assert.NoError(t, err)
			assert.Nil(t, tag)
		})

		t.Run("BySlug", func(t *testing.T) {
			original, err := fixtures.CreateTestTag("machine learning")
			require.NoError(t, err)

			tag, err := repo.BySlug(ctx, "machine-learning")
			require.NoError(t, err)
			assert.NotNil(t, tag)
			assert.Equal(t, original.ID, tag.ID)
		})

		t.Run("Update", func(t *testing.T) {
			tag, err := fixtures.CreateTestTag("securty")
			require.NoError(t, err)

			tag.Name = "security"
			tag.Slug = "security"
			err = repo.Update(ctx, tag)
			require.NoError(t, err)

			reloaded, err := repo.ByID(ctx, tag.ID)
			require.NoError(t, err)
			assert.Equal(t, "security", reloaded.Name)
			assert.Equal(t, "security", reloaded.Slug)
		})

		t.Run("SoftDelete", func(t *testing.T) {
			tag, err := fixtures.CreateTestTag("deprecated")
			require.NoError(t, err)

			err = repo.SoftDelete(ctx, tag.ID)
			require.NoError(t, err)

			// Row survives but is marked deleted
			reloaded, err := repo.ByID(ctx, tag.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.True(t, utils.IsTrue(reloaded.IsDeleted))
			assert.NotNil(t, reloaded.DeletedAt)

			// Listings that exclude deleted rows must skip it
			rows, err := repo.ByFilter(ctx, models.TagFilter{
				Name:      utils.ToPtr("deprecated"),
				IsDeleted: utils.ToPtr(false),
			}, "", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("ByFilterSearch", func(t *testing.T) {
			_, err := fixtures.CreateTestTag("distributed systems")
			require.NoError(t, err)

			search := "distributed"
			rows, err := repo.ByFilter(ctx, models.TagFilter{
				Search:    &search,
				IsDeleted: utils.ToPtr(false),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "distributed systems", rows[0].Name)
		})

		t.Run("CountAndExists", func(t *testing.T) {
			_, err := fixtures.CreateTestTag("observability")
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.TagFilter{Name: utils.ToPtr("observability")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			exists, err := repo.Exists(ctx, models.TagFilter{Name: utils.ToPtr("observability")})
			require.NoError(t, err)
			assert.True(t, exists)

			exists, err = repo.Exists(ctx, models.TagFilter{Name: utils.ToPtr("nope")})
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("ListPopular", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			for _, name := range []string{"zebra", "alpha", "middle"} {
				_, err := fixtures.CreateTestTag(name)
				require.NoError(t, err)
			}

			rows, err := repo.ListPopular(ctx, 2)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "alpha", rows[0].Name)
			assert.Equal(t, "middle", rows[1].Name)
		})

		return nil
	})
	require.NoError(t, err)
}
