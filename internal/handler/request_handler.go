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

// RequestHandler exposes the read/retire surface for user requests. There is
// deliberately no create or update route here.
type RequestHandler struct {
	requests     *service.RequestService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewRequestHandler(requests *service.RequestService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *RequestHandler {
	return &RequestHandler{requests: requests, resolver: resolver, ids: ids, defaultLimit: defaultLimit}
}

func (h *RequestHandler) List(c *gin.Context) {
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	requests, count, err := h.requests.List(params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(requests))
	for i := range requests {
		data = append(data, requestResponse(h.ids, &requests[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *RequestHandler) Counts(c *gin.Context) {
	count, err := h.requests.Count()
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count requests"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Requests, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermDeleteRequest}, entity.Requests, id); err != nil {
		httperr.Render(c, err)
		return
	}

	request, err := h.requests.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, requestResponse(h.ids, request))
}

func (h *RequestHandler) Delete(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Requests, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner, authz.PermDeleteRequest}, entity.Requests, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.requests.SoftDelete(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
