package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pwspen/vlmcar/internal/shared"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 32
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSObserver is one connected websocket viewer. Snapshots are queued on
// a bounded send channel and dropped when the viewer falls behind; the
// control loop never waits on a socket.
type WSObserver struct {
	ws     *websocket.Conn
	id     string
	logger *slog.Logger
	send   chan *Message
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewWSObserver(ws *websocket.Conn, logger *slog.Logger) *WSObserver {
	id := shared.NewID("obs-")
	return &WSObserver{
		ws:     ws,
		id:     id,
		logger: logger.With("observer_id", id),
		send:   make(chan *Message, sendBuffer),
		done:   make(chan struct{}),
	}
}

func (c *WSObserver) ID() string {
	return c.id
}

func (c *WSObserver) Send(_ context.Context, msg *Message) error {
	// The lock is held across the channel send so Close cannot close
	// the channel underneath it. The send is non-blocking, so the lock
	// is never held for long.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send buffer full, dropping snapshot")
	}
	return nil
}

func (c *WSObserver) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	close(c.send)
	return c.ws.Close()
}

// readPump consumes the connection until the peer goes away. Observers
// are passive: inbound payloads are discarded, the read only tracks
// liveness. Blocks until disconnect.
func (c *WSObserver) readPump(ctx context.Context) {
	defer func() {
		_ = c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *WSObserver) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error("failed to marshal snapshot", "error", err)
				continue
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
