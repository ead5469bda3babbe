// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package websocket

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinecatalog/internal/catalog"
	"github.com/tomtom215/cinecatalog/internal/logging"
	"github.com/tomtom215/cinecatalog/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // clients send pings and subscriptions only
	sendBuffer     = 256
)

// Close reasons sent to feed clients in the close frame.
const (
	closeReasonShutdown   = "catalog feed shutting down"
	closeReasonFellBehind = "catalog feed: client fell behind, reconnect to resume"
)

// clientIDCounter hands out monotonically increasing client IDs so
// broadcasts iterate clients in a stable order.
var clientIDCounter atomic.Uint64

// feedEntities are the entity kinds a client may subscribe to.
var feedEntities = map[string]bool{
	catalog.EntityMovie: true,
	catalog.EntityActor: true,
	catalog.EntityGenre: true,
}

// clientMessage is what a client may send: {"type":"ping"} or
// {"type":"subscribe","entities":["movie","genre"]}.
type clientMessage struct {
	Type     string   `json:"type"`
	Entities []string `json:"entities"`
}

// Client is one subscriber of the catalog change feed.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	// entities restricts which changes are delivered; nil means all.
	entities atomic.Pointer[map[string]bool]

	// closeCode and closeReason are set by the hub before it closes send.
	closeCode   int
	closeReason string
}

// NewClient creates a client subscribed to every entity kind.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() uint64 {
	return c.id
}

// wants reports whether a change to entity should reach this client.
func (c *Client) wants(entity string) bool {
	set := c.entities.Load()
	return set == nil || (*set)[entity]
}

// subscribe narrows the feed to the known entities in names. An empty or
// entirely unknown list restores the full feed. It returns the accepted
// entity names, sorted.
func (c *Client) subscribe(names []string) []string {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if feedEntities[name] {
			set[name] = true
		}
	}
	if len(set) == 0 {
		c.entities.Store(nil)
		set = feedEntities
	} else {
		c.entities.Store(&set)
	}

	accepted := make([]string, 0, len(set))
	for name := range set {
		accepted = append(accepted, name)
	}
	sort.Strings(accepted)
	return accepted
}

// evict records why the hub is dropping the client and closes its send
// channel. Caller holds the hub lock.
func (c *Client) evict(code int, reason string) {
	c.closeCode = code
	c.closeReason = reason
	close(c.send)
}

// reply queues a direct answer to this client without blocking the reader.
func (c *Client) reply(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

// readPump handles pings and subscriptions until the connection fails.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.WSErrors.WithLabelValues("unexpected_close").Inc()
				logging.Warn().Err(err).Uint64("client_id", c.id).Msg("unexpected websocket close error")
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			metrics.WSErrors.WithLabelValues("bad_message").Inc()
			continue
		}

		switch msg.Type {
		case MessageTypePing:
			c.reply(Message{Type: MessageTypePong})
		case MessageTypeSubscribe:
			accepted := c.subscribe(msg.Entities)
			logging.Debug().Uint64("client_id", c.id).Strs("entities", accepted).Msg("websocket client subscribed")
			c.reply(Message{Type: MessageTypeSubscribed, Data: map[string][]string{"entities": accepted}})
		default:
			metrics.WSErrors.WithLabelValues("bad_message").Inc()
		}
	}
}

// writePump writes hub messages and keepalive pings to the connection.
// When the hub closes send, the close frame carries the hub's reason.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				code := c.closeCode
				if code == 0 {
					code = websocket.CloseNormalClosure
				}
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, c.closeReason))
				return
			}

			payload, err := json.Marshal(message)
			if err != nil {
				metrics.WSErrors.WithLabelValues("encode").Inc()
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to encode feed message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				logging.Debug().Err(err).Uint64("client_id", c.id).Msg("failed to write feed message")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
