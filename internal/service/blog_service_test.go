package service_test

import (
	"testing"

	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/service"
	"github.com/inkwell-app/inkwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlogService(testDB *testutil.TestDatabase) *service.BlogService {
	return service.NewBlogService(
		repository.NewBlogRepository(testDB.DB),
		repository.NewCategoryRepository(testDB.DB),
	)
}

func seedAuthor(t *testing.T, testDB *testutil.TestDatabase) *models.User {
	hasher := testutil.NewTestHasher(t)
	return testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
}

func TestBlogService_ModerationLadder(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	svc := newBlogService(testDB)
	author := seedAuthor(t, testDB)
	blog, err := svc.Create(author.ID, "my entry", "content", nil)
	require.NoError(t, err)

	// Act & Assert: each rung requires the previous one.
	err = svc.Approve(blog.ID)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))

	err = svc.Publish(blog.ID)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))

	require.NoError(t, svc.Review(blog.ID))
	require.NoError(t, svc.Approve(blog.ID))
	require.NoError(t, svc.Publish(blog.ID))

	published, err := svc.Get(blog.ID)
	require.NoError(t, err)
	assert.True(t, published.Reviewed)
	assert.True(t, published.Approved)
	assert.True(t, published.Published)
	assert.NotNil(t, published.PublishedAt)
}

func TestBlogService_BannedBlogCannotPublish(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	svc := newBlogService(testDB)
	author := seedAuthor(t, testDB)
	blog, err := svc.Create(author.ID, "dubious entry", "content", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Review(blog.ID))
	require.NoError(t, svc.Approve(blog.ID))
	require.NoError(t, svc.Ban(blog.ID))

	// Act
	err = svc.Publish(blog.ID)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))
}

func TestBlogService_CreateRequiresExistingCategory(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	svc := newBlogService(testDB)
	author := seedAuthor(t, testDB)
	missing := uint64(12345)

	// Act
	_, err := svc.Create(author.ID, "entry", "content", &missing)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))

	// With a real category it goes through.
	category := testutil.CreateTestCategory(t, testDB.DB, "travel")
	blog, err := svc.Create(author.ID, "entry", "content", &category.ID)
	require.NoError(t, err)
	require.NotNil(t, blog.CategoryID)
	assert.Equal(t, category.ID, *blog.CategoryID)
}

func TestBlogService_GetRetiredIsNotFound(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	svc := newBlogService(testDB)
	author := seedAuthor(t, testDB)
	blog, err := svc.Create(author.ID, "short lived", "content", nil)
	require.NoError(t, err)

	// Act
	require.NoError(t, svc.SoftDelete(blog.ID))
	_, err = svc.Get(blog.ID)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.NotFound, httperr.KindOf(err))

	// Retiring twice reads as not found as well.
	err = svc.SoftDelete(blog.ID)
	assert.Equal(t, httperr.NotFound, httperr.KindOf(err))
}

func TestBlogService_UpdateValidation(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	svc := newBlogService(testDB)
	author := seedAuthor(t, testDB)
	blog, err := svc.Create(author.ID, "original", "content", nil)
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(blog.ID, &empty, nil, nil)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))

	_, err = svc.Update(blog.ID, nil, nil, nil)
	assert.Equal(t, httperr.BadRequest, httperr.KindOf(err))

	newTitle := "updated"
	updated, err := svc.Update(blog.ID, &newTitle, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Title)
	assert.Equal(t, "content", updated.Content)
}
