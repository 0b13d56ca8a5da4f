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

type CategoryHandler struct {
	categories   *service.CategoryService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewCategoryHandler(categories *service.CategoryService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *CategoryHandler {
	return &CategoryHandler{categories: categories, resolver: resolver, ids: ids, defaultLimit: defaultLimit}
}

func (h *CategoryHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	categories, count, err := h.categories.List(params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(categories))
	for i := range categories {
		data = append(data, categoryResponse(h.ids, &categories[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *CategoryHandler) Counts(c *gin.Context) {
	count, err := h.categories.Count()
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count categories"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Categories, "id")
	if !ok {
		return
	}

	category, err := h.categories.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryResponse(h.ids, category))
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.PermManageCategories}, entity.Categories, 0); err != nil {
		httperr.Render(c, err)
		return
	}

	category, err := h.categories.Create(req.Name, req.Description)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	public := h.ids.MustEncode(entity.Categories, category.ID)
	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"id":      public,
		"path":    "/api/categories/" + public,
	})
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Categories, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.PermManageCategories}, entity.Categories, id); err != nil {
		httperr.Render(c, err)
		return
	}

	category, err := h.categories.Update(id, req.Name, req.Description)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryResponse(h.ids, category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Categories, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.PermManageCategories}, entity.Categories, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.categories.SoftDelete(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
