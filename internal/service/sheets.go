package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SheetsClient forwards a subscription to an external spreadsheet.
type SheetsClient interface {
	Append(ctx context.Context, email string, at time.Time) error
}

// Matches JavaScript's Date.toISOString, which the Apps Script side expects.
const isoMillisLayout = "2006-01-02T15:04:05.000Z07:00"

type sheetsPayload struct {
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// SheetsWebhook posts subscriptions to a Google Apps Script web app.
type SheetsWebhook struct {
	url    string
	client *http.Client
}

func NewSheetsWebhook(url string, timeout time.Duration) *SheetsWebhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SheetsWebhook{url: url, client: &http.Client{Timeout: timeout}}
}

var _ SheetsClient = (*SheetsWebhook)(nil)

func (w *SheetsWebhook) Append(ctx context.Context, email string, at time.Time) error {
	body, err := json.Marshal(sheetsPayload{Email: email, Timestamp: at.UTC().Format(isoMillisLayout)})
	if err != nil {
		return fmt.Errorf("encode sheets payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sheets request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to sheets: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post to sheets: unexpected status %d", resp.StatusCode)
	}
	return nil
}
