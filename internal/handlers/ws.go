package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/companies/internal/types"
	"github.com/monocle-dev/companies/internal/utils"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// client serialises writes; gorilla connections allow one writer at a time
// and both broadcasts and the ping loop write.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks websocket subscribers per company and tells them to refetch
// after writes.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]bool
	upgrader websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Hub{
		clients: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			// Non-browser clients send no Origin header.
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Hub) register(companyID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[companyID] == nil {
		h.clients[companyID] = make(map[*client]bool)
	}

	h.clients[companyID][c] = true
}

func (h *Hub) unregister(companyID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[companyID]; exists {
		delete(clients, c)

		if len(clients) == 0 {
			delete(h.clients, companyID)
		}
	}
}

// Subscribers reports how many connections follow a company.
func (h *Hub) Subscribers(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[companyID])
}

// BroadcastRefresh queues a refresh message for every subscriber of
// companyID and returns without waiting for the writes.
func (h *Hub) BroadcastRefresh(companyID, reason string) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients[companyID]))
	for c := range h.clients[companyID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	msg := types.FeedMessage{
		Type:      "refresh",
		Message:   "Company data updated",
		CompanyID: companyID,
		Reason:    reason,
	}

	for _, c := range clients {
		go h.deliver(companyID, c, msg)
	}
}

func (h *Hub) deliver(companyID string, c *client, msg types.FeedMessage) {
	if err := c.writeJSON(msg); err != nil {
		log.Printf("Failed to broadcast refresh for company %s: %v", companyID, err)
		h.unregister(companyID, c)
		c.conn.Close()
	}
}

func (h *Hub) WebSocket(ctx *gin.Context) {
	companyID, err := utils.GetPathID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Company ID is required"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(companyID, c)

	done := make(chan struct{})

	defer func() {
		close(done)
		h.unregister(companyID, c)
		conn.Close()

		log.Debugf("WebSocket connection closed for company %s", companyID)
	}()

	err = c.writeJSON(types.FeedMessage{
		Type:      "connected",
		Message:   "WebSocket connection established",
		CompanyID: companyID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					log.Debugf("Ping failed for company %s: %v", companyID, err)
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		// Clients only listen; anything they send is read and dropped so
		// control frames keep being processed.
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for company %s: %v", companyID, err)
			}
			break
		}
	}
}
