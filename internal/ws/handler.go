package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/foliohq/folio/internal/logging"
	"github.com/foliohq/folio/internal/reader"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the webview host connects from an app-local origin
	},
}

// ReaderFactory builds the reader bound to one incoming connection.
type ReaderFactory func() *reader.Reader

// Handler binds each WebSocket connection to a fresh reader: the connection
// becomes the reader's command channel, and every inbound frame is handed to
// the reader's message handler.
type Handler struct {
	newReader ReaderFactory
	log       *logging.Logger

	// OnAttach, when set, runs after a connection is attached to its
	// reader. The server uses it to push theme presets to the engine.
	OnAttach func(*reader.Reader)
}

// NewHandler creates a WebSocket handler.
func NewHandler(factory ReaderFactory, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{newReader: factory, log: log}
}

// HandleConnection upgrades the request and pumps messages until the peer
// closes. The reader is detached when the connection drops, so any commands
// issued afterwards degrade to no-ops.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	r := h.newReader()
	r.AttachChannel(NewConn(conn))
	defer r.DetachChannel()

	if h.OnAttach != nil {
		h.OnAttach(r)
	}

	h.log.Info("engine channel connected", zap.String("reader_id", string(r.ID())))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.log.Debug("websocket closed", zap.Error(err))
			return
		}
		r.HandleMessage(data)
	}
}
