package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pickit/print-system/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the device bridge webhook endpoint.
type Config struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// Client posts notification payloads to the device bridge. The bridge relays
// them to whatever the customer has in front of them: a browser tab, a kiosk
// screen, a phone.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type payload struct {
	Event      string    `json:"event"`
	CustomerID string    `json:"customer_id"`
	JobID      string    `json:"job_id"`
	ShopID     string    `json:"shop_id"`
	Timestamp  time.Time `json:"timestamp"`
	Data       any       `json:"data"`
}

func (c *Client) post(ctx context.Context, event string, n ports.ReadyNotification, data any) error {
	body, err := json.Marshal(payload{
		Event:      event,
		CustomerID: n.CustomerID,
		JobID:      n.JobID,
		ShopID:     n.ShopID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", event)
	if c.cfg.Secret != "" {
		req.Header.Set("X-Webhook-Signature", sign(body, c.cfg.Secret))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("http error: %d", resp.StatusCode)
	}
	return nil
}

func sign(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// AlertSender delivers the "Order Ready" banner for a finished job.
type AlertSender struct {
	client *Client
}

func NewAlertSender(client *Client) *AlertSender {
	return &AlertSender{client: client}
}

func (s *AlertSender) Name() string { return "alert" }

func (s *AlertSender) Notify(ctx context.Context, n ports.ReadyNotification) error {
	return s.client.post(ctx, "job_ready_alert", n, map[string]string{
		"title": "Order Ready",
		"body":  fmt.Sprintf("Your print job \"%s\" is ready for pickup.", n.FileName),
	})
}

// ChimeSender asks the device bridge to play the two-tone pickup chime.
// The tones are C6 then E6, matching the counter bell in the shops.
type ChimeSender struct {
	client *Client
}

func NewChimeSender(client *Client) *ChimeSender {
	return &ChimeSender{client: client}
}

func (s *ChimeSender) Name() string { return "chime" }

type tone struct {
	FrequencyHz float64 `json:"frequency_hz"`
	DurationMs  int     `json:"duration_ms"`
}

func (s *ChimeSender) Notify(ctx context.Context, n ports.ReadyNotification) error {
	return s.client.post(ctx, "job_ready_chime", n, []tone{
		{FrequencyHz: 1046.50, DurationMs: 180},
		{FrequencyHz: 1318.51, DurationMs: 260},
	})
}
