// Package ws carries the host/engine bridge over a WebSocket: commands go
// out as inject frames, the engine's postMessage payloads come back as raw
// frames fed to the reader's message handler.
package ws

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// injectFrame is the single outbound frame shape: a script for the remote
// webview host to inject into the engine's context.
type injectFrame struct {
	Type   string `json:"type"`
	Script string `json:"script"`
}

// Conn adapts a websocket connection to bridge.Channel. Writes are
// serialized; gorilla connections allow one concurrent writer.
type Conn struct {
	writeMu sync.Mutex
	ws      *websocket.Conn
}

// NewConn wraps an upgraded websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Inject sends one script to the remote host, fire-and-forget.
func (c *Conn) Inject(script string) error {
	payload, err := sonic.Marshal(injectFrame{Type: "inject", Script: script})
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
