package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 10 * time.Second

	// DefaultReadLimit caps one inbound frame when no limit is configured.
	DefaultReadLimit int64 = 4096

	errEvicted = errors.New("client evicted by relay")
)

// Client is one websocket session. readMessages turns frames into actions
// for the relay; writeMessages drains egress onto the socket in order.
type Client struct {
	ID         string
	Name       string
	connection *websocket.Conn
	relay      *Relay
	readLimit  int64
	egress     chan Payload
	done       chan struct{}
	closeOnce  sync.Once
	err        chan error
}

func NewClient(conn *websocket.Conn, relay *Relay, name string, queueSize int, readLimit int64) *Client {
	if queueSize <= 0 {
		queueSize = 1
	}
	if readLimit <= 0 {
		readLimit = DefaultReadLimit
	}

	return &Client{
		ID:         uuid.NewString(),
		Name:       name,
		connection: conn,
		relay:      relay,
		readLimit:  readLimit,
		egress:     make(chan Payload, queueSize),
		done:       make(chan struct{}),
		// one slot each for the read and write goroutines
		err: make(chan error, 2),
	}
}

// Reads incoming frames from the client's websocket connection
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(c.readLimit)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		if ctx.Err() != nil {
			return
		}

		_, data, err := c.connection.ReadMessage()

		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error reading message from %v: %v", c.Name, err)
			}
			c.handleError(err)
			return
		}

		action, err := DecodeAction(data, c.ID)

		if err != nil {
			log.Printf("dropping frame from %v: %v", c.Name, err)
			continue
		}

		if err := c.relay.Submit(ctx, action); err != nil {
			c.handleError(err)
			return
		}
	}
}

// writes payloads pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			c.handleError(errEvicted)
			return
		case payload := <-c.egress:
			data, err := json.Marshal(payload)

			if err != nil {
				log.Printf("err marshalling payload %v for client %v: %v", payload.Variant, c.Name, err)
				continue
			}

			c.connection.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			c.connection.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// Deliver queues p without blocking. It reports false once the client
// is closed or its queue is full.
func (c *Client) Deliver(p Payload) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.egress <- p:
		return true
	default:
		return false
	}
}

// Close stops the write loop. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Push error to client error channel. ServeWS waits on it to tear the
// session down; only the first error matters.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() <-chan error {
	return c.err
}
