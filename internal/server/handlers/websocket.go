// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4096,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// trendStreamClient forwards published reports to one WebSocket peer.
type trendStreamClient struct {
	conn   *websocket.Conn
	send   chan []byte
	sub    *nats.Subscription
	logger *zap.Logger
}

// TrendsWebSocketHandler streams completed trend reports to WebSocket
// clients as they are published on the event bus. The stream is
// server-to-client only; anything the client sends besides control frames
// is discarded.
func TrendsWebSocketHandler(natsConn *nats.Conn, subject string, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &trendStreamClient{
			conn:   conn,
			send:   make(chan []byte, 16),
			logger: logger,
		}

		sub, err := natsConn.Subscribe(subject, func(msg *nats.Msg) {
			select {
			case client.send <- msg.Data:
			default:
				// Slow consumer; drop the report rather than block the bus.
				logger.Warn("dropping report for slow websocket client")
			}
		})
		if err != nil {
			logger.Warn("report subscription failed", zap.Error(err))
			conn.Close()
			return
		}
		client.sub = sub

		go client.writePump()
		go client.readPump()

		welcome, _ := json.Marshal(map[string]interface{}{
			"type":    "welcome",
			"subject": subject,
			"time":    time.Now().UTC(),
		})
		client.send <- welcome

		logger.Debug("websocket client connected",
			zap.String("remote", r.RemoteAddr))
	}
}

// readPump consumes control frames until the peer disconnects.
func (c *trendStreamClient) readPump() {
	config := DefaultWebSocketConfig()

	defer c.close()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump pushes queued reports and keepalive pings to the peer.
func (c *trendStreamClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *trendStreamClient) close() {
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
	c.conn.Close()
}
