package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/authz"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/pagination"
	"github.com/inkwell-app/inkwell/internal/service"
)

type BlogHandler struct {
	blogs        *service.BlogService
	comments     *service.CommentService
	likes        *service.LikeService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewBlogHandler(blogs *service.BlogService, comments *service.CommentService, likes *service.LikeService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *BlogHandler {
	return &BlogHandler{
		blogs:        blogs,
		comments:     comments,
		likes:        likes,
		resolver:     resolver,
		ids:          ids,
		defaultLimit: defaultLimit,
	}
}

// List shows published blogs to everyone; callers holding review-blog also
// see the unpublished backlog.
func (h *BlogHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)
	ident := middleware.GetIdentity(c)

	blogs, count, err := h.blogs.List(params.Offset(), params.Limit, ident.Has(authz.PermReviewBlog))
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(blogs))
	for i := range blogs {
		data = append(data, blogResponse(h.ids, &blogs[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *BlogHandler) Counts(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	count, err := h.blogs.Count(ident.Has(authz.PermReviewBlog))
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count blogs"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	blog, err := h.blogs.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	// Unpublished blogs are visible to their author and to reviewers only.
	ident := middleware.GetIdentity(c)
	if !blog.Published && blog.AuthorID != ident.UserID && !ident.Has(authz.PermReviewBlog) {
		httperr.Render(c, httperr.New(httperr.NotFound, "blog not found"))
		return
	}

	c.JSON(http.StatusOK, blogResponse(h.ids, blog))
}

type CreateBlogRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	CategoryID *string `json:"category_id"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}
	if ident.Banned || ident.Deleted {
		httperr.Render(c, httperr.New(httperr.Forbidden, "account is not in good standing"))
		return
	}

	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	var categoryID *uint64
	if req.CategoryID != nil {
		id, err := h.ids.Decode(entity.Categories, *req.CategoryID)
		if err != nil {
			httperr.Render(c, httperr.New(httperr.BadRequest, "unknown category"))
			return
		}
		categoryID = &id
	}

	blog, err := h.blogs.Create(ident.UserID, req.Title, req.Content, categoryID)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	public := h.ids.MustEncode(entity.Blogs, blog.ID)
	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"id":      public,
		"path":    "/api/blogs/" + public,
	})
}

type UpdateBlogRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *string `json:"category_id"`
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner}, entity.Blogs, id); err != nil {
		httperr.Render(c, err)
		return
	}

	var categoryID *uint64
	if req.CategoryID != nil {
		cid, err := h.ids.Decode(entity.Categories, *req.CategoryID)
		if err != nil {
			httperr.Render(c, httperr.New(httperr.BadRequest, "unknown category"))
			return
		}
		categoryID = &cid
	}

	blog, err := h.blogs.Update(id, req.Title, req.Content, categoryID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, blogResponse(h.ids, blog))
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermDeleteBlog}, entity.Blogs, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.blogs.SoftDelete(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *BlogHandler) Review(c *gin.Context) {
	h.markStatus(c, authz.PermReviewBlog, h.blogs.Review)
}

func (h *BlogHandler) Approve(c *gin.Context) {
	h.markStatus(c, authz.PermApproveBlog, h.blogs.Approve)
}

func (h *BlogHandler) Publish(c *gin.Context) {
	h.markStatus(c, authz.PermPublishBlog, h.blogs.Publish)
}

func (h *BlogHandler) Ban(c *gin.Context) {
	h.markStatus(c, authz.PermBanBlog, h.blogs.Ban)
}

func (h *BlogHandler) markStatus(c *gin.Context, perm string, mark func(uint64) error) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{perm}, entity.Blogs, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := mark(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *BlogHandler) ListComments(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}
	if _, err := h.blogs.Get(id); err != nil {
		httperr.Render(c, err)
		return
	}

	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)
	comments, count, err := h.comments.ListByBlog(id, params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(comments))
	for i := range comments {
		data = append(data, commentResponse(h.ids, &comments[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *BlogHandler) CreateComment(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}
	if ident.Banned || ident.Deleted {
		httperr.Render(c, httperr.New(httperr.Forbidden, "account is not in good standing"))
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	comment, err := h.comments.Create(id, ident.UserID, req.Content)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	public := h.ids.MustEncode(entity.Comments, comment.ID)
	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"id":      public,
		"path":    "/api/comments/" + public,
	})
}

func (h *BlogHandler) ListLikes(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}
	if _, err := h.blogs.Get(id); err != nil {
		httperr.Render(c, err)
		return
	}

	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)
	likes, count, err := h.likes.ListByBlog(id, params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(likes))
	for i := range likes {
		data = append(data, likeResponse(h.ids, &likes[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *BlogHandler) Like(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}

	like, err := h.likes.Like(id, ident.UserID)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, likeResponse(h.ids, like))
}

func (h *BlogHandler) Unlike(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Blogs, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}

	if err := h.likes.Unlike(id, ident.UserID); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
