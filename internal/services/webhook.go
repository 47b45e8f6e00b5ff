package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Fields    []SlackField `json:"fields"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB
	ColorRed  = 15158332

	WebhookUsername = "Company Reviews"

	webhookTimeout = 10 * time.Second
)

// WebhookNotifier posts company change events to Discord and Slack incoming
// webhooks. Delivery happens off the request path; failures are logged.
type WebhookNotifier struct {
	discordURL string
	slackURL   string
	client     *http.Client
	now        func() time.Time
}

// NewWebhookNotifier returns nil when neither URL is set.
func NewWebhookNotifier(discordURL, slackURL string) *WebhookNotifier {
	if discordURL == "" && slackURL == "" {
		return nil
	}

	return &WebhookNotifier{
		discordURL: discordURL,
		slackURL:   slackURL,
		client:     &http.Client{Timeout: webhookTimeout},
		now:        time.Now,
	}
}

func (w *WebhookNotifier) BroadcastRefresh(companyID, reason string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
		defer cancel()

		if err := w.Send(ctx, companyID, reason); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"company_id": companyID,
				"reason":     reason,
			}).Warn("Failed to deliver webhook notification")
		}
	}()
}

// Send delivers one event to every configured webhook.
func (w *WebhookNotifier) Send(ctx context.Context, companyID, reason string) error {
	var errs []error

	if w.discordURL != "" {
		if err := w.post(ctx, w.discordURL, w.discordPayload(companyID, reason)); err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}

	if w.slackURL != "" {
		if err := w.post(ctx, w.slackURL, w.slackPayload(companyID, reason)); err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (w *WebhookNotifier) discordPayload(companyID, reason string) DiscordWebhookRequest {
	color := ColorBlue
	if strings.HasSuffix(reason, "_deleted") {
		color = ColorRed
	}

	return DiscordWebhookRequest{
		Username: WebhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       eventTitle(reason),
				Description: fmt.Sprintf("Company **%s** has changed.", companyID),
				Color:       color,
				Fields: []DiscordWebhookField{
					{Name: "Company", Value: companyID, Inline: true},
					{Name: "Event", Value: reason, Inline: true},
				},
				Timestamp: w.now().Format(time.RFC3339),
			},
		},
	}
}

func (w *WebhookNotifier) slackPayload(companyID, reason string) SlackWebhookRequest {
	color := "good"
	if strings.HasSuffix(reason, "_deleted") {
		color = "danger"
	}

	return SlackWebhookRequest{
		Username: WebhookUsername,
		Text:     "*" + eventTitle(reason) + "*",
		Attachments: []SlackAttachment{
			{
				Color: color,
				Title: fmt.Sprintf("Company %s has changed", companyID),
				Fields: []SlackField{
					{Title: "Company", Value: companyID, Short: true},
					{Title: "Event", Value: reason, Short: true},
				},
				Timestamp: w.now().Unix(),
			},
		},
	}
}

// eventTitle turns "review_created" into "Review created".
func eventTitle(reason string) string {
	title := strings.ReplaceAll(reason, "_", " ")
	if title == "" {
		return "Company changed"
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

func (w *WebhookNotifier) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
