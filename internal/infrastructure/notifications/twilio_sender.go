package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/academiebarbier/marcel-backend/pkg/config"
	"github.com/academiebarbier/marcel-backend/pkg/retry"
)

// TwilioSender sends SMS messages through the Twilio REST API
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

// NewTwilioSender creates a new Twilio SMS sender
func NewTwilioSender(cfg *config.TwilioConfig) (*TwilioSender, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER must be set")
	}

	return &TwilioSender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.twilio.com/2010-04-01",
	}, nil
}

// twilioMessageResponse is the subset of the Twilio message resource we read
type twilioMessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// SendText sends a text message and returns the provider message SID.
// Transient failures are retried with exponential backoff.
func (t *TwilioSender) SendText(ctx context.Context, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.fromNumber)
	form.Set("Body", body)

	var sid string
	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.SetBasicAuth(t.accountSID, t.authToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := t.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("Twilio API error (status %d): %s", resp.StatusCode, string(respBody))
		}

		var msg twilioMessageResponse
		if err := json.Unmarshal(respBody, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if msg.SID == "" {
			return fmt.Errorf("no message SID in response")
		}
		sid = msg.SID
		return nil
	})
	if err != nil {
		return "", err
	}
	return sid, nil
}
