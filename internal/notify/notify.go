// Package notify delivers accepted submissions to the site owner by email.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tablecreole/contact-api/internal/models"
)

// Notifier is the outbound collaborator the pipeline hands accepted
// submissions to. Implementations own template rendering and transport.
type Notifier interface {
	Send(ctx context.Context, sub models.CleanSubmission, subject string) error
}

// ErrNotConfigured is returned when no notifier API key is set.
var ErrNotConfigured = errors.New("notify: no API key configured")

const defaultEndpoint = "https://api.resend.com/emails"

// Resend sends notification emails through the Resend HTTP API using raw
// HTTP calls rather than an SDK.
type Resend struct {
	apiKey   string
	from     string
	to       string
	endpoint string
	client   *http.Client
}

// NewResend creates a Resend notifier delivering to the given address.
func NewResend(apiKey, from, to string) *Resend {
	return NewResendWithEndpoint(apiKey, from, to, defaultEndpoint)
}

// NewResendWithEndpoint creates a Resend notifier against a custom endpoint.
// Used by tests to point at a stub server.
func NewResendWithEndpoint(apiKey, from, to, endpoint string) *Resend {
	return &Resend{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send renders the notification email and posts it to the Resend API.
// reply_to is set to the visitor's address so the chef can answer directly.
func (r *Resend) Send(ctx context.Context, sub models.CleanSubmission, subject string) error {
	if r.apiKey == "" {
		return ErrNotConfigured
	}

	html, err := renderHTML(sub)
	if err != nil {
		return fmt.Errorf("notify: render email: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"from":     r.from,
		"to":       []string{r.to},
		"reply_to": sub.Email,
		"subject":  subject,
		"html":     html,
	})
	if err != nil {
		return fmt.Errorf("notify: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: email API returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
