// Package mail dispatches booking request messages through the external
// transactional email widget.  The widget takes a template id and a flat
// parameter map and returns an HTTP status; delivery confirmation and
// retries are its problem, not ours.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Emailer posts template sends to the widget endpoint.
type Emailer struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Client     *http.Client
}

// NewEmailer builds an emailer with a bounded request timeout.
func NewEmailer(endpoint, serviceID, templateID, publicKey string) *Emailer {
	return &Emailer{
		Endpoint:   endpoint,
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// sendRequest is the widget's wire format: identity plus a flat string map.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send dispatches one templated email.  Any non-2xx status is an error; the
// caller decides whether that is surfaced as a dialog or retried later.
func (e *Emailer) Send(ctx context.Context, params map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      e.ServiceID,
		TemplateID:     e.TemplateID,
		UserID:         e.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		log.Printf("mailer: send failed: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mailer: widget status %d", resp.StatusCode)
	}
	return nil
}
