package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/inkwell-app/inkwell/internal/broker"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the CORS layer in front
	},
}

// StreamHandler pushes new-message events to a connected client over a
// websocket. Each client only ever sees its own inbox channel.
type StreamHandler struct {
	broker broker.Broker
	ids    *hashid.Codec
}

func NewStreamHandler(b broker.Broker, ids *hashid.Codec) *StreamHandler {
	return &StreamHandler{broker: b, ids: ids}
}

func (h *StreamHandler) Inbox(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}

	recipient := h.ids.MustEncode(entity.Users, ident.UserID)

	events, cancel, err := h.broker.SubscribeInbox(c.Request.Context(), recipient)
	if err != nil {
		httperr.Render(c, httperr.Wrap(httperr.Internal, err, "failed to subscribe"))
		return
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed",
			zap.Uint64("user_id", ident.UserID),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	logger.Log.Info("inbox stream opened", zap.Uint64("user_id", ident.UserID))

	// Read pump: we never expect client frames, but reading is what surfaces
	// close and keeps pong handling alive.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
