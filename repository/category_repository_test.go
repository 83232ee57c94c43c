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

func TestCategoryRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewCategoryRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("Save", func(t *testing.T) {
			category, err := fixtures.CreateTestCategory("Electronics", nil)
			require.NoError(t, err)
			assert.NotZero(t, category.ID)
			assert.Equal(t, "electronics", category.Slug)
			assert.True(t, category.IsRoot())
		})

		t.Run("ByID", func(t *testing.T) {
			original, err := fixtures.CreateTestCategory("Books", nil)
			require.NoError(t, err)

			category, err := repo.ByID(ctx, original.ID)
			require.NoError(t, err)
			assert.NotNil(t, category)
			assert.Equal(t, original.ID, category.ID)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			category, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, category)
		})

		t.Run("BySlug", func(t *testing.T) {
			original, err := fixtures.CreateTestCategory("Home Appliances", nil)
			require.NoError(t, err)

			category, err := repo.BySlug(ctx, "home-appliances")
			require.NoError(t, err)
			assert.NotNil(t, category)
			assert.Equal(t, original.ID, category.ID)
		})

		t.Run("ListRootsAndChildren", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			root, child, grandchild, err := fixtures.CreateTestCategoryTree()
			require.NoError(t, err)

			roots, err := repo.ListRoots(ctx)
			require.NoError(t, err)
			require.Len(t, roots, 1)
			assert.Equal(t, root.ID, roots[0].ID)

			children, err := repo.ListChildren(ctx, root.ID)
			require.NoError(t, err)
			require.Len(t, children, 1)
			assert.Equal(t, child.ID, children[0].ID)

			grandchildren, err := repo.ListChildren(ctx, child.ID)
			require.NoError(t, err)
			require.Len(t, grandchildren, 1)
			assert.Equal(t, grandchild.ID, grandchildren[0].ID)

			// Leaf has no children
			leafChildren, err := repo.ListChildren(ctx, grandchild.ID)
			require.NoError(t, err)
			assert.Empty(t, leafChildren)
		})

		t.Run("ListActive", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			_, _, _, err := fixtures.CreateTestCategoryTree()
			require.NoError(t, err)

			rows, err := repo.ListActive(ctx)
			require.NoError(t, err)
			assert.Len(t, rows, 3)
		})

		t.Run("Update", func(t *testing.T) {
			category, err := fixtures.CreateTestCategory("Musik", nil)
			require.NoError(t, err)

			category.Name = "Music"
			category.Slug = "music"
			err = repo.Update(ctx, category)
			require.NoError(t, err)

			reloaded, err := repo.ByID(ctx, category.ID)
			require.NoError(t, err)
			assert.Equal(t, "Music", reloaded.Name)
		})

		t.Run("SoftDelete", func(t *testing.T) {
			category, err := fixtures.CreateTestCategory("Obsolete", nil)
			require.NoError(t, err)

			err = repo.SoftDelete(ctx, category.ID)
			require.NoError(t, err)

			reloaded, err := repo.ByID(ctx, category.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.True(t, utils.IsTrue(reloaded.IsDeleted))
			assert.False(t, utils.IsTrue(reloaded.IsActive))
			assert.NotNil(t, reloaded.DeletedAt)

			// Soft deleted categories disappear from root listings
			roots, err := repo.ListRoots(ctx)
			require.NoError(t, err)
			for _, r := range roots {
				assert.NotEqual(t, category.ID, r.ID)
			}
		})

		t.Run("ByFilterRootsOnly", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			root, _, _, err := fixtures.CreateTestCategoryTree()
			require.NoError(t, err)

			rows, err := repo.ByFilter(ctx, models.CategoryFilter{
				RootsOnly: utils.ToPtr(true),
				IsDeleted: utils.ToPtr(false),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, root.ID, rows[0].ID)
		})

		t.Run("ByFilterSiblingName", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			root, err := fixtures.CreateTestCategory("Root", nil)
			require.NoError(t, err)
			_, err = fixtures.CreateTestCategory("Shared Name", &root.ID)
			require.NoError(t, err)

			// Same name is free under a different parent
			other, err := fixtures.CreateTestCategory("Other Root", nil)
			require.NoError(t, err)

			name := "Shared Name"
			exists, err := repo.Exists(ctx, models.CategoryFilter{
				Name:      &name,
				ParentID:  &root.ID,
				IsDeleted: utils.ToPtr(false),
			})
			require.NoError(t, err)
			assert.True(t, exists)

			exists, err = repo.Exists(ctx, models.CategoryFilter{
				Name:      &name,
				ParentID:  &other.ID,
				IsDeleted: utils.ToPtr(false),
			})
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("Count", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			_, _, _, err := fixtures.CreateTestCategoryTree()
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.CategoryFilter{IsDeleted: utils.ToPtr(false)})
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})

		return nil
	})
	require.NoError(t, err)
}
