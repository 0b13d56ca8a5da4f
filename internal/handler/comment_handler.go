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

type CommentHandler struct {
	comments     *service.CommentService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewCommentHandler(comments *service.CommentService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *CommentHandler {
	return &CommentHandler{comments: comments, resolver: resolver, ids: ids, defaultLimit: defaultLimit}
}

func (h *CommentHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	comments, count, err := h.comments.List(params.Offset(), params.Limit)
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

func (h *CommentHandler) Counts(c *gin.Context) {
	count, err := h.comments.Count()
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count comments"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Comments, "id")
	if !ok {
		return
	}

	comment, err := h.comments.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResponse(h.ids, comment))
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Comments, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner}, entity.Comments, id); err != nil {
		httperr.Render(c, err)
		return
	}

	comment, err := h.comments.Update(id, req.Content)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResponse(h.ids, comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Comments, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermDeleteComment}, entity.Comments, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.comments.SoftDelete(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *CommentHandler) Review(c *gin.Context) {
	h.markStatus(c, h.comments.Review)
}

func (h *CommentHandler) Approve(c *gin.Context) {
	h.markStatus(c, h.comments.Approve)
}

func (h *CommentHandler) markStatus(c *gin.Context, mark func(uint64) error) {
	id, ok := decodeParam(c, h.ids, entity.Comments, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.PermReviewComment}, entity.Comments, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := mark(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
