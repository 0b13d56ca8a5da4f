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

type MessageHandler struct {
	messages     *service.MessageService
	resolver     *authz.Resolver
	ids          *hashid.Codec
	defaultLimit int
}

func NewMessageHandler(messages *service.MessageService, resolver *authz.Resolver, ids *hashid.Codec, defaultLimit int) *MessageHandler {
	return &MessageHandler{messages: messages, resolver: resolver, ids: ids, defaultLimit: defaultLimit}
}

// List returns the caller's own conversations; there is no global message
// listing.
func (h *MessageHandler) List(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	params := pagination.ParseQuery(c.Request.URL.Query(), h.defaultLimit)

	messages, count, err := h.messages.ListForUser(ident.UserID, params.Offset(), params.Limit)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	data := make([]gin.H, 0, len(messages))
	for i := range messages {
		data = append(data, messageResponse(h.ids, &messages[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c.Request.URL.Path, params, count, data))
}

func (h *MessageHandler) Counts(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	count, err := h.messages.CountForUser(ident.UserID)
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to count messages"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Messages, "id")
	if !ok {
		return
	}

	// Either party of the conversation may read it.
	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner}, entity.Messages, id); err != nil {
		httperr.Render(c, err)
		return
	}

	message, err := h.messages.Get(id)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse(h.ids, message))
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}
	if ident.Banned || ident.Deleted {
		httperr.Render(c, httperr.New(httperr.Forbidden, "account is not in good standing"))
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	receiverID, err := h.ids.Decode(entity.Users, req.ReceiverID)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	message, err := h.messages.Send(c.Request.Context(), ident.UserID, receiverID, req.Content)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	public := h.ids.MustEncode(entity.Messages, message.ID)
	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"id":      public,
		"path":    "/api/messages/" + public,
	})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := decodeParam(c, h.ids, entity.Messages, "id")
	if !ok {
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.resolver.Authorize(ident, []string{authz.Owner}, entity.Messages, id); err != nil {
		httperr.Render(c, err)
		return
	}

	if err := h.messages.SoftDelete(id); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
