package businessflow_test

import (
	"testing"

	"github.com/simorgh-project/simorgh/app/dto"
	businessflow "github.com/simorgh-project/simorgh/business_flow"
	"github.com/simorgh-project/simorgh/repository"
	testingutil "github.com/simorgh-project/simorgh/testing"
	"github.com/simorgh-project/simorgh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategoryFlow(testDB *testingutil.TestDB) businessflow.CategoryFlow {
	return businessflow.NewCategoryFlow(
		repository.NewCategoryRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		testDB.DB,
		nil, // tree cache disabled in tests
	)
}

func TestCategoryFlowCreate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestCategoryFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("Root", func(t *testing.T) {
			category, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{
				Name: "Engineering",
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "engineering", category.Slug)
			assert.Nil(t, category.ParentID)
			assert.True(t, utils.IsTrue(category.IsActive))
		})

		t.Run("Child", func(t *testing.T) {
			root, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Science"}, testMetadata())
			require.NoError(t, err)

			child, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{
				Name:     "Physics",
				ParentID: &root.ID,
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, child.ParentID)
			assert.Equal(t, root.ID, *child.ParentID)
		})

		t.Run("MissingParent", func(t *testing.T) {
			badParent := uint(999999)
			_, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{
				Name:     "Orphan",
				ParentID: &badParent,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsParentCategoryNotFound(err))
		})

		t.Run("InactiveParentRejected", func(t *testing.T) {
			inactive := false
			parent, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{
				Name:     "Hidden",
				IsActive: &inactive,
			}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{
				Name:     "Under Hidden",
				ParentID: &parent.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsParentCategoryNotFound(err))
		})

		t.Run("SiblingNameTaken", func(t *testing.T) {
			root, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Music"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Jazz", ParentID: &root.ID}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Jazz", ParentID: &root.ID}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSiblingNameTaken(err))
		})

		t.Run("SameNameUnderDifferentParents", func(t *testing.T) {
			first, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Movies"}, testMetadata())
			require.NoError(t, err)
			second, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Series"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Drama", ParentID: &first.ID}, testMetadata())
			require.NoError(t, err)
			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Drama", ParentID: &second.ID, Slug: "drama-series"}, testMetadata())
			require.NoError(t, err)
		})

		t.Run("DuplicateSlug", func(t *testing.T) {
			_, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Gaming", Slug: "gaming"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Gaming News", Slug: "gaming"}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCategoryFlowUpdate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestCategoryFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("SelfParentRejected", func(t *testing.T) {
			category, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Loop"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.UpdateCategory(ctx, user.ID, category.ID, &dto.UpdateCategoryRequest{
				ParentID: &category.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCategoryOwnParent(err))
		})

		t.Run("CycleRejected", func(t *testing.T) {
			a, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "A"}, testMetadata())
			require.NoError(t, err)
			b, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "B", ParentID: &a.ID}, testMetadata())
			require.NoError(t, err)
			c, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "C", ParentID: &b.ID}, testMetadata())
			require.NoError(t, err)

			// Moving A under its grandchild C would close a cycle
			_, err = flow.UpdateCategory(ctx, user.ID, a.ID, &dto.UpdateCategoryRequest{
				ParentID: &c.ID,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsCategoryCycle(err))
		})

		t.Run("Reparent", func(t *testing.T) {
			first, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Old Home"}, testMetadata())
			require.NoError(t, err)
			second, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "New Home"}, testMetadata())
			require.NoError(t, err)
			child, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Mover", ParentID: &first.ID}, testMetadata())
			require.NoError(t, err)

			updated, err := flow.UpdateCategory(ctx, user.ID, child.ID, &dto.UpdateCategoryRequest{
				ParentID: &second.ID,
			}, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, updated.ParentID)
			assert.Equal(t, second.ID, *updated.ParentID)
		})

		t.Run("ClearParent", func(t *testing.T) {
			root, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Anchor"}, testMetadata())
			require.NoError(t, err)
			child, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Promotable", ParentID: &root.ID}, testMetadata())
			require.NoError(t, err)

			clear := true
			updated, err := flow.UpdateCategory(ctx, user.ID, child.ID, &dto.UpdateCategoryRequest{
				ClearParent: &clear,
			}, testMetadata())
			require.NoError(t, err)
			assert.Nil(t, updated.ParentID)
		})

		t.Run("RenameChecksSiblings", func(t *testing.T) {
			root, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Container"}, testMetadata())
			require.NoError(t, err)
			_, err = flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Taken", ParentID: &root.ID}, testMetadata())
			require.NoError(t, err)
			other, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Free", ParentID: &root.ID}, testMetadata())
			require.NoError(t, err)

			name := "Taken"
			_, err = flow.UpdateCategory(ctx, user.ID, other.ID, &dto.UpdateCategoryRequest{Name: &name}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSiblingNameTaken(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCategoryFlowHierarchyReads(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newTestCategoryFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		root, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Electronics"}, testMetadata())
		require.NoError(t, err)
		child, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Computers", ParentID: &root.ID}, testMetadata())
		require.NoError(t, err)
		leaf, err := flow.CreateCategory(ctx, user.ID, &dto.CreateCategoryRequest{Name: "Laptops", ParentID: &child.ID}, testMetadata())
		require.NoError(t, err)

		t.Run("ListRoots", func(t *testing.T) {
			roots, err := flow.ListRoots(ctx)
			require.NoError(t, err)
			require.Len(t, roots, 1)
			assert.Equal(t, root.ID, roots[0].ID)
		})

		t.Run("ListChildren", func(t *testing.T) {
			children, err := flow.ListChildren(ctx, root.ID)
			require.NoError(t, err)
			require.Len(t, children, 1)
			assert.Equal(t, child.ID, children[0].ID)
		})

		t.Run("ListChildrenOfMissingCategory", func(t *testing.T) {
			_, err := flow.ListChildren(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsCategoryNotFound(err))
		})

		t.Run("FullPath", func(t *testing.T) {
			resp, err := flow.FullPath(ctx, leaf.ID)
			require.NoError(t, err)
			assert.Equal(t, "Electronics > Computers > Laptops", resp.FullPath)

			resp, err = flow.FullPath(ctx, root.ID)
			require.NoError(t, err)
			assert.Equal(t, "Electronics", resp.FullPath)
		})

		t.Run("Tree", func(t *testing.T) {
			tree, err := flow.Tree(ctx)
			require.NoError(t, err)
			require.Len(t, tree, 1)
			assert.Equal(t, root.ID, tree[0].ID)
			require.Len(t, tree[0].Children, 1)
			assert.Equal(t, child.ID, tree[0].Children[0].ID)
			require.Len(t, tree[0].Children[0].Children, 1)
			assert.Equal(t, leaf.ID, tree[0].Children[0].Children[0].ID)
			assert.Empty(t, tree[0].Children[0].Children[0].Children)
		})

		t.Run("TreeSkipsInactiveBranches", func(t *testing.T) {
			inactive := false
			_, err := flow.UpdateCategory(ctx, user.ID, child.ID, &dto.UpdateCategoryRequest{
				IsActive: &inactive,
			}, testMetadata())
			require.NoError(t, err)

			tree, err := flow.Tree(ctx)
			require.NoError(t, err)
			require.Len(t, tree, 1)
			// Deactivating the middle category drops its whole branch
			assert.Empty(t, tree[0].Children)

			active := true
			_, err = flow.UpdateCategory(ctx, user.ID, child.ID, &dto.UpdateCategoryRequest{
				IsActive: &active,
			}, testMetadata())
			require.NoError(t, err)
		})

		t.Run("SoftDeleteHidesSubtree", func(t *testing.T) {
			err := flow.DeleteCategory(ctx, user.ID, child.ID, testMetadata())
			require.NoError(t, err)

			_, err = flow.GetCategory(ctx, child.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsCategoryNotFound(err))

			children, err := flow.ListChildren(ctx, root.ID)
			require.NoError(t, err)
			assert.Empty(t, children)

			// Orphaned grandchild drops out of the tree as well
			tree, err := flow.Tree(ctx)
			require.NoError(t, err)
			require.Len(t, tree, 1)
			assert.Empty(t, tree[0].Children)
		})

		return nil
	})
	require.NoError(t, err)
}
