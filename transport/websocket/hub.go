package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/incognitojam/minepad/pad/controller"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Control events are tiny.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The pairing code is the credential; the pad page may be opened
		// from a phone browser on any origin.
		return true
	},
}

// ErrClientClosed reports a push to a connection that is gone or has a full
// send buffer. The registry treats push failures as non-fatal.
var ErrClientClosed = errors.New("websocket client closed or send buffer full")

// Envelope is the JSON frame exchanged with the web pad.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EventHandler receives decoded pad events. The controller registry
// implements it; the hub stays agnostic of session semantics.
type EventHandler interface {
	HandleValidateCode(conn controller.Conn, code string)
	HandleStateUpdate(conn controller.Conn, payload []byte)
	HandleGamepadPresence(conn controller.Conn, connected bool)
	HandleDisconnect(conn controller.Conn)
}

// Client is one web pad connection. It implements controller.Conn so the
// registry can bind it to a session and push events back.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Send queues a named event for delivery to the pad. It never blocks; a
// full buffer or closed connection yields ErrClientClosed.
func (c *Client) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrClientClosed
	}
}

// Close tears down the underlying websocket connection. The read pump then
// reports the disconnect through the usual path.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Hub maintains the set of active pad connections and routes their inbound
// events to the handler.
type Hub struct {
	handler EventHandler
	logger  *slog.Logger

	// Registered clients
	clients map[*Client]bool

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client
}

// NewHub creates a hub dispatching to the given handler.
func NewHub(handler EventHandler, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		handler:    handler,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS handles a websocket upgrade request from a web pad.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.logger.Debug("pad connected", "remote", client.conn.RemoteAddr(), "total", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if h.clients[client] {
		delete(h.clients, client)
		close(client.done)
		h.logger.Debug("pad disconnected", "total", len(h.clients))
	}
}

// route decodes one inbound frame and dispatches it. Malformed frames are
// dropped without touching the connection.
func (h *Hub) route(c *Client, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		h.logger.Debug("dropping malformed frame", "error", err)
		return
	}

	switch env.Event {
	case controller.EventValidateCode:
		var code string
		if err := json.Unmarshal(env.Data, &code); err != nil {
			h.logger.Debug("dropping validate_code with bad data", "error", err)
			return
		}
		h.handler.HandleValidateCode(c, code)

	case controller.EventUpdateState:
		h.handler.HandleStateUpdate(c, normalizePayload(env.Data))

	case controller.EventGamepadState:
		var connected bool
		if err := json.Unmarshal(env.Data, &connected); err != nil {
			h.logger.Debug("dropping gamepad_state with bad data", "error", err)
			return
		}
		h.handler.HandleGamepadPresence(c, connected)

	default:
		h.logger.Debug("unknown event", "event", env.Event)
	}
}

// normalizePayload unwraps pads that send the control event as a JSON
// string instead of an object.
func normalizePayload(data json.RawMessage) []byte {
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err == nil {
			return []byte(inner)
		}
	}
	return data
}

// readPump pumps frames from the websocket connection to the handler.
// Handler calls are synchronous, so events from one pad arrive in order.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.hub.handler.HandleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", "error", err)
			}
			break
		}
		c.hub.route(c, frame)
	}
}

// writePump pumps queued frames to the websocket connection and keeps the
// peer alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
