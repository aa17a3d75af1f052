package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Seednode/cardhub/internal/applog"
	"github.com/Seednode/cardhub/internal/wire"
)

const writeWait = 10 * time.Second

// wsConn adapts a gorilla/websocket connection to engine.Connection. Sends
// are buffered onto a channel drained by a single writer goroutine, since
// gorilla/websocket forbids concurrent writers; a full buffer means the
// client isn't keeping up, and the connection is torn down rather than
// left to back-pressure the rest of the game.
type wsConn struct {
	ws    *websocket.Conn
	log   *applog.Logger
	trace string

	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newWSConn(ws *websocket.Conn, log *applog.Logger) *wsConn {
	c := &wsConn{
		ws:     ws,
		log:    log,
		trace:  uuid.NewString(),
		send:   make(chan []byte, 32),
		closed: make(chan struct{}),
	}
	log.Printf("conn %s: opened", c.trace)
	go c.writePump()
	return c
}

func (c *wsConn) Send(frame wire.ServerFrame) {
	data, err := wire.Encode(frame)
	if err != nil {
		c.log.Printf("encode frame: %v", err)
		return
	}

	select {
	case c.send <- data:
	case <-c.closed:
	default:
		// Slow consumer; drop the connection rather than stall the game.
		c.Close()
	}
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	messageType, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	if messageType != websocket.TextMessage {
		return nil, errors.New("transport: binary frame received")
	}
	return data, nil
}

func (c *wsConn) Close() {
	c.closeOnce.Do(func() {
		c.log.Printf("conn %s: closed", c.trace)
		close(c.closed)
		_ = c.ws.Close()
	})
}

func (c *wsConn) writePump() {
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.Close()
				return
			}

		case <-c.closed:
			return
		}
	}
}
