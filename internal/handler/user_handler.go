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

type UserHandler struct {
	users        *service.UserService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewUserHandler(users *service.UserService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *UserHandler {
	return &UserHandler{users: users, resolver: resolver, ids: ids, defaultLimit: defaultLimit}
}

func (h *UserHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	users, count, err := h.users.List(params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(users))
	for i := range users {
		data = append(data, userResponse(h.ids, &users[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *UserHandler) Counts(c *gin.Context) {
	count, err := h.users.Count()
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count users"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(h.ids, user))
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Anonym   *bool   `json:"anonym"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermUpdateUser}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	user, err := h.users.UpdateProfile(id, req.Username, req.Anonym)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(h.ids, user))
}

// Erase is the hard-delete path: the account and all dependent rows go for
// good.
func (h *UserHandler) Erase(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermDeleteUser}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.users.Erase(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type UpdateOptionRequest struct {
	Newsletter    *bool `json:"newsletter"`
	PublicProfile *bool `json:"public_profile"`
}

func (h *UserHandler) UpdateOption(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	var req UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermUpdateUser}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.users.UpdateOption(id, req.Newsletter, req.PublicProfile); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

type UpdateDetailRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Location  *string `json:"location"`
}

func (h *UserHandler) UpdateDetail(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	var req UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermUpdateUser}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}

	if err := h.users.UpdateDetail(id, fields); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

type RotateCredentialRequest struct {
	Password string `json:"password" binding:"required"`
}

// RotateCredential replaces the caller's password. Owner only; not even
// update-user reaches another user's credential.
func (h *UserHandler) RotateCredential(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	var req RotateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.users.RotateCredential(id, req.Password); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *UserHandler) Validate(c *gin.Context) {
	h.markStatus(c, authz.PermValidateUser, h.users.Validate)
}

func (h *UserHandler) Ban(c *gin.Context) {
	h.markStatus(c, authz.PermBanUser, h.users.Ban)
}

func (h *UserHandler) markStatus(c *gin.Context, perm string, mark func(uint64) error) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{perm}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := mark(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *UserHandler) ListPermissions(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermManagePermissions}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	links, err := h.users.ListPermissions(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(links))
	for i := range links {
		data = append(data, permissionResponse(h.ids, &links[i].Permission))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

type PermissionChangeRequest struct {
	Permission string `json:"permission" binding:"required"`
}

func (h *UserHandler) GrantPermission(c *gin.Context) {
	h.changePermission(c, h.users.Grant)
}

func (h *UserHandler) RevokePermission(c *gin.Context) {
	h.changePermission(c, h.users.Revoke)
}

func (h *UserHandler) changePermission(c *gin.Context, change func(uint64, string) error) {
	id, ok := decodeParam(c, h.ids, entity.Users, "id")
	if !ok {
		return
	}

	var req PermissionChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.PermManagePermissions}, entity.Users, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := change(id, req.Permission); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
