package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/companies/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, hub *Hub) string {
	t.Helper()

	r := gin.New()
	r.GET("/ws/companies/:id", hub.WebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readFeed(t *testing.T, conn *websocket.Conn) types.FeedMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg types.FeedMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubDeliversRefresh(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub([]string{"http://localhost:3000"})
	url := newHubServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws/companies/acme", nil)
	require.NoError(t, err)

	welcome := readFeed(t, conn)
	assert.Equal(t, "connected", welcome.Type)
	assert.Equal(t, "acme", welcome.CompanyID)
	assert.Equal(t, 1, hub.Subscribers("acme"))

	hub.BroadcastRefresh("other", "review_created")
	hub.BroadcastRefresh("acme", "review_created")

	msg := readFeed(t, conn)
	assert.Equal(t, "refresh", msg.Type)
	assert.Equal(t, "acme", msg.CompanyID)
	assert.Equal(t, "review_created", msg.Reason)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return hub.Subscribers("acme") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub([]string{"http://localhost:3000"})
	url := newHubServer(t, hub)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")

	_, resp, err := websocket.DefaultDialer.Dial(url+"/ws/companies/acme", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Subscribers("acme"))

	header.Set("Origin", "http://localhost:3000")

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws/companies/acme", header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "connected", readFeed(t, conn).Type)
}

func TestBroadcastDoesNotWaitForSlowSubscribers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	url := newHubServer(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws/companies/acme", nil)
	require.NoError(t, err)
	defer conn.Close()

	readFeed(t, conn)

	hub.mu.RLock()
	var stalled *client
	for c := range hub.clients["acme"] {
		stalled = c
	}
	hub.mu.RUnlock()
	require.NotNil(t, stalled)

	// Holding the write lock stands in for a subscriber whose socket is full.
	stalled.mu.Lock()

	returned := make(chan struct{})
	go func() {
		hub.BroadcastRefresh("acme", "review_updated")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		stalled.mu.Unlock()
		t.Fatal("BroadcastRefresh blocked on a stalled subscriber")
	}

	stalled.mu.Unlock()

	msg := readFeed(t, conn)
	assert.Equal(t, "refresh", msg.Type)
	assert.Equal(t, "review_updated", msg.Reason)
}
