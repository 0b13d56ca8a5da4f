package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/pagination"
	"github.com/inkwell-app/inkwell/internal/service"
)

// PermissionHandler exposes the read-only permission catalog. Granting and
// revoking live under /users/:id/permissions.
type PermissionHandler struct {
	permissions  *service.PermissionService
	ids          *hashid.Codec
	defaultLimit int
}

func NewPermissionHandler(permissions *service.PermissionService, ids *hashid.Codec, defaultLimit int) *PermissionHandler {
	return &PermissionHandler{permissions: permissions, ids: ids, defaultLimit: defaultLimit}
}

func (h *PermissionHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	permissions, count, err := h.permissions.List(params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(permissions))
	for i := range permissions {
		data = append(data, permissionResponse(h.ids, &permissions[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Permissions, "id")
	if !ok {
		return
	}

	permission, err := h.permissions.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, permissionResponse(h.ids, permission))
}
