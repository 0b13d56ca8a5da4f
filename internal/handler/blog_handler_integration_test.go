package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/authz"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/handler"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/service"
	"github.com/inkwell-app/inkwell/internal/testutil"
	"github.com/inkwell-app/inkwell/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blogStack struct {
	router *gin.Engine
	ids    *hashid.Codec
	tokens *utils.TokenCodec
}

// newBlogStack wires the blog slice of the API with real authorization.
func newBlogStack(t *testing.T, testDB *testutil.TestDatabase) *blogStack {
	gin.SetMode(gin.TestMode)

	users := repository.NewUserRepository(testDB.DB)
	blogs := repository.NewBlogRepository(testDB.DB)
	comments := repository.NewCommentRepository(testDB.DB)
	messages := repository.NewMessageRepository(testDB.DB)
	likes := repository.NewLikeRepository(testDB.DB)
	requests := repository.NewRequestRepository(testDB.DB)
	categories := repository.NewCategoryRepository(testDB.DB)

	ids := testutil.NewTestCodec(t)
	tokens, err := utils.NewTokenCodec("blog-test-secret", "inkwell-test", 15*time.Minute, 0, 30*time.Minute, ids)
	require.NoError(t, err)

	resolver := authz.NewResolver(nil)
	authz.RegisterDefaultOwnerships(resolver, users, blogs, comments, messages, likes, requests)

	blogService := service.NewBlogService(blogs, categories)
	commentService := service.NewCommentService(comments, blogs)
	likeService := service.NewLikeService(likes, blogs)
	blogHandler := handler.NewBlogHandler(blogService, commentService, likeService, resolver, ids, 20)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Authenticate(users, tokens, nil))
	api.GET("/blogs", blogHandler.List)
	api.GET("/blogs/:id", blogHandler.Get)
	api.PATCH("/blogs/:id", blogHandler.Update)
	api.POST("/blogs/:id/review", blogHandler.Review)
	api.POST("/blogs/:id/likes", blogHandler.Like)

	return &blogStack{router: router, ids: ids, tokens: tokens}
}

func (s *blogStack) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *blogStack) post(t *testing.T, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *blogStack) patchJSON(t *testing.T, path, token string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *blogStack) sessionFor(t *testing.T, user *models.User) string {
	token, err := s.tokens.IssueSession(user.ID)
	require.NoError(t, err)
	return token
}

func TestBlogList_AnonymousSeesPublishedOnly(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	testutil.CreateTestBlog(t, testDB.DB, author.ID, "published entry", true)
	testutil.CreateTestBlog(t, testDB.DB, author.ID, "draft entry", false)

	// Act
	recorder := stack.get(t, "/api/blogs", "")

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Count)
	assert.NotContains(t, recorder.Body.String(), "draft entry")
}

func TestBlogList_ReviewerSeesBacklog(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	reviewer := testutil.CreateTestUser(t, testDB.DB, hasher, "reviewer", "reviewer@example.com", "Password123")
	testutil.GrantTestPermission(t, testDB.DB, reviewer.ID, authz.PermReviewBlog)
	testutil.CreateTestBlog(t, testDB.DB, author.ID, "published entry", true)
	testutil.CreateTestBlog(t, testDB.DB, author.ID, "draft entry", false)

	// Act
	recorder := stack.get(t, "/api/blogs", stack.sessionFor(t, reviewer))

	// Assert
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Count)
}

func TestBlogGet_UnpublishedVisibility(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	stranger := testutil.CreateTestUser(t, testDB.DB, hasher, "stranger", "stranger@example.com", "Password123")
	draft := testutil.CreateTestBlog(t, testDB.DB, author.ID, "secret draft", false)
	path := "/api/blogs/" + stack.ids.MustEncode(entity.Blogs, draft.ID)

	// Act & Assert: a draft reads as absent to everyone but its author.
	assert.Equal(t, http.StatusNotFound, stack.get(t, path, "").Code)
	assert.Equal(t, http.StatusNotFound, stack.get(t, path, stack.sessionFor(t, stranger)).Code)
	assert.Equal(t, http.StatusOK, stack.get(t, path, stack.sessionFor(t, author)).Code)
}

func TestBlogGet_MalformedIdIsNotFound(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)

	// Act
	recorder := stack.get(t, "/api/blogs/garbage-id", "")

	// Assert: decode failure reads exactly like a missing row.
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestBlogReview_RequiresPermission(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	reviewer := testutil.CreateTestUser(t, testDB.DB, hasher, "reviewer", "reviewer@example.com", "Password123")
	testutil.GrantTestPermission(t, testDB.DB, reviewer.ID, authz.PermReviewBlog)

	blog := testutil.CreateTestBlog(t, testDB.DB, author.ID, "pending entry", false)
	path := "/api/blogs/" + stack.ids.MustEncode(entity.Blogs, blog.ID) + "/review"

	// Act & Assert: even the author cannot review their own entry.
	assert.Equal(t, http.StatusForbidden, stack.post(t, path, stack.sessionFor(t, author)).Code)
	assert.Equal(t, http.StatusForbidden, stack.post(t, path, "").Code)
	assert.Equal(t, http.StatusOK, stack.post(t, path, stack.sessionFor(t, reviewer)).Code)
}

func TestBlogUpdate_IsOwnerOnly(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	admin := testutil.CreateTestUser(t, testDB.DB, hasher, "admin", "admin@example.com", "Password123")
	testutil.GrantTestPermission(t, testDB.DB, admin.ID, authz.PermUpdateUser)

	blog := testutil.CreateTestBlog(t, testDB.DB, author.ID, "original title", true)
	path := "/api/blogs/" + stack.ids.MustEncode(entity.Blogs, blog.ID)
	body := gin.H{"title": "defaced"}

	// Act & Assert: the user-admin capability grants nothing over blogs.
	assert.Equal(t, http.StatusForbidden, stack.patchJSON(t, path, stack.sessionFor(t, admin), body).Code)
	assert.Equal(t, http.StatusForbidden, stack.patchJSON(t, path, "", body).Code)

	recorder := stack.patchJSON(t, path, stack.sessionFor(t, author), gin.H{"title": "revised title"})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "revised title")
}

func TestBlogLike_RequiresAuthentication(t *testing.T) {
	// Arrange
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	defer testutil.CleanDatabase(t, testDB.DB)

	stack := newBlogStack(t, testDB)
	hasher := testutil.NewTestHasher(t)
	author := testutil.CreateTestUser(t, testDB.DB, hasher, "author", "author@example.com", "Password123")
	reader := testutil.CreateTestUser(t, testDB.DB, hasher, "reader", "reader@example.com", "Password123")
	blog := testutil.CreateTestBlog(t, testDB.DB, author.ID, "likeable", true)
	path := "/api/blogs/" + stack.ids.MustEncode(entity.Blogs, blog.ID) + "/likes"

	// Act & Assert
	assert.Equal(t, http.StatusUnauthorized, stack.post(t, path, "").Code)
	assert.Equal(t, http.StatusCreated, stack.post(t, path, stack.sessionFor(t, reader)).Code)
}
