package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/chess-relay/tokens"
	"github.com/samber/lo"
)

type ClientList map[string]*Client

type wsQuery struct {
	Token string `form:"token"`
}

// Manager upgrades HTTP requests to websocket sessions and tracks open
// connections so they can be closed on shutdown. Game state lives in the
// relay, not here.
type Manager struct {
	clients ClientList
	sync.RWMutex
	relay      *Relay
	tokenMaker tokens.Maker
	upgrader   websocket.Upgrader
	queueSize  int
	readLimit  int64
}

func NewManager(relay *Relay, maker tokens.Maker, allowedOrigins []string, queueSize int, readLimit int64) *Manager {
	m := &Manager{
		clients:    make(ClientList),
		relay:      relay,
		tokenMaker: maker,
		queueSize:  queueSize,
		readLimit:  readLimit,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return m
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		client.connection.Close()
		delete(m.clients, client.ID)
	}
}

// Count returns the number of open connections.
func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.clients)
}

// CloseAll closes every open connection. Each session then reports its
// disconnect through the usual path.
func (m *Manager) CloseAll() {
	m.RLock()
	defer m.RUnlock()

	for _, client := range m.clients {
		client.connection.Close()
	}
}

// Websocket connection handler. A token is optional; when present it must
// be valid and its username becomes the client's display name.
func (m *Manager) ServeWS(c *gin.Context) {
	var query wsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	name := c.Request.RemoteAddr

	if query.Token != "" {
		payload, err := m.tokenMaker.VerifyToken(query.Token)

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": err.Error()})
			return
		}

		name = payload.Username
	}

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		log.Printf("error upgrading to websocket connection: %v\n", err)
		return
	}

	client := NewClient(conn, m.relay, name, m.queueSize, m.readLimit)

	m.addClient(client)

	ctx, cancel := context.WithCancel(c.Request.Context())

	defer func() {
		cancel()

		if err := m.relay.Submit(context.Background(), DisconnectAction{ClientID: client.ID, Addr: client.Name}); err != nil {
			log.Printf("could not report disconnect of %v: %v", client.Name, err)
		}

		err := conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))

		if err != nil && err != websocket.ErrCloseSent {
			log.Println("Error sending close message:", err)
		}

		m.removeClient(client)
	}()

	go client.writeMessages(ctx)

	if err := m.relay.Submit(ctx, ConnectAction{ClientID: client.ID, Addr: client.Name, Sink: client}); err != nil {
		log.Printf("could not register %v: %v", client.Name, err)
		return
	}

	go client.readMessages(ctx)

	err = <-client.Err()

	log.Printf("Client %v closed: %v", client.Name, err)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// non-browser clients send no Origin
		if origin == "" {
			return true
		}

		return lo.Contains(allowed, "*") || lo.Contains(allowed, origin)
	}
}
