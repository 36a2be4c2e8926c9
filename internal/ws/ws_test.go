package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/reader"
	"github.com/foliohq/folio/internal/state"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestConnInjectFrameShape(t *testing.T) {
	upgraded := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		upgraded <- conn
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	server := <-upgraded
	defer server.Close()

	c := NewConn(server)
	require.NoError(t, c.Inject(`next();`))

	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var frame injectFrame
	require.NoError(t, sonic.Unmarshal(data, &frame))
	assert.Equal(t, "inject", frame.Type)
	assert.Equal(t, "next();", frame.Script)
}

func TestHandlerBindsConnectionToReader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	readers := make(chan *reader.Reader, 1)
	handler := NewHandler(func() *reader.Reader {
		r := reader.New(reader.Options{BookKey: "ws-book"})
		readers <- r
		return r
	}, nil)

	router := gin.New()
	router.GET("/ws", handler.HandleConnection)
	srv := httptest.NewServer(router)
	defer srv.Close()

	peer := dial(t, srv)
	r := <-readers

	// The factory returns before the handler attaches the connection.
	require.Eventually(t, r.EngineAttached, time.Second, 5*time.Millisecond)

	// Commands flow out as inject frames.
	r.GoNext()
	_, data, err := peer.ReadMessage()
	require.NoError(t, err)
	var frame injectFrame
	require.NoError(t, sonic.Unmarshal(data, &frame))
	assert.Equal(t, "next();", frame.Script)

	// Engine messages flow back into the reader's state.
	err = peer.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"onSearch","results":[{"cfi":"x","excerpt":"hit"}]}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(r.State().SearchResults) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "x", r.State().SearchResults[0].CFI)

	// Closing the peer detaches the reader; later commands are no-ops.
	peer.Close()
	require.Eventually(t, func() bool {
		return !r.EngineAttached()
	}, time.Second, 10*time.Millisecond)
	r.GoPrevious()
	assert.Equal(t, []state.SearchResult{{CFI: "x", Excerpt: "hit"}}, r.State().SearchResults)
}
