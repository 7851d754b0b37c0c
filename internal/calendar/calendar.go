// Package calendar is a minimal client for the external calendar API that
// mirrors confirmed bookings as events. Event creation is fire-and-report:
// a failure here never touches the stored booking.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/speakerdesk/config"
)

type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
}

type Event struct {
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees"`
}

func New(cfg config.NotifierConfig) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 5 * time.Second},
		baseURL: cfg.CalendarURL,
		apiKey:  cfg.CalendarAPIKey,
	}
}

func (c *Client) CreateEvent(ctx context.Context, ev Event) error {
	if c.baseURL == "" {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var r struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &r)
		if r.Message != "" {
			return fmt.Errorf("calendar event failed: %s (status=%d)", r.Message, resp.StatusCode)
		}
		return fmt.Errorf("calendar event failed (status=%d)", resp.StatusCode)
	}
	return nil
}
