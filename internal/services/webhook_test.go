package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebhookServer(t *testing.T, status int) (*httptest.Server, chan []byte) {
	t.Helper()

	bodies := make(chan []byte, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			bodies <- raw
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, bodies
}

func TestNewWebhookNotifierDisabled(t *testing.T) {
	assert.Nil(t, NewWebhookNotifier("", ""))
}

func TestWebhookNotifierSend(t *testing.T) {
	discord, discordBodies := newWebhookServer(t, http.StatusNoContent)
	slack, slackBodies := newWebhookServer(t, http.StatusOK)

	w := NewWebhookNotifier(discord.URL, slack.URL)
	w.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, w.Send(context.Background(), "acme", "review_deleted"))

	var d DiscordWebhookRequest
	require.NoError(t, json.Unmarshal(<-discordBodies, &d))
	require.Len(t, d.Embeds, 1)
	assert.Equal(t, "Review deleted", d.Embeds[0].Title)
	assert.Equal(t, ColorRed, d.Embeds[0].Color)
	assert.Equal(t, "2024-01-02T03:04:05Z", d.Embeds[0].Timestamp)

	var s SlackWebhookRequest
	require.NoError(t, json.Unmarshal(<-slackBodies, &s))
	require.Len(t, s.Attachments, 1)
	assert.Equal(t, "danger", s.Attachments[0].Color)
	assert.Equal(t, "acme", s.Attachments[0].Fields[0].Value)
}

func TestWebhookNotifierReportsFailures(t *testing.T) {
	discord, _ := newWebhookServer(t, http.StatusInternalServerError)

	w := NewWebhookNotifier(discord.URL, "")

	err := w.Send(context.Background(), "acme", "company_updated")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord: webhook returned status 500")
}

func TestWebhookNotifierBroadcastIsAsync(t *testing.T) {
	slack, bodies := newWebhookServer(t, http.StatusOK)

	w := NewWebhookNotifier("", slack.URL)
	w.BroadcastRefresh("acme", "review_created")

	select {
	case body := <-bodies:
		assert.Contains(t, string(body), "Review created")
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

type countingNotifier struct {
	calls int
}

func (c *countingNotifier) BroadcastRefresh(companyID, reason string) {
	c.calls++
}

func TestNotifiersFanOut(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}

	Notifiers(a, nil, b).BroadcastRefresh("acme", "company_updated")

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.IsType(t, nopNotifier{}, Notifiers())
	assert.Same(t, a, Notifiers(nil, a))
}
