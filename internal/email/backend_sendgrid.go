package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SendGridBackend delivers mail through the SendGrid v3 API.
type SendGridBackend struct {
	apiKey string
	url    string
	sender string
	client *http.Client
}

func NewSendGridBackend(apiKey, url, sender string) *SendGridBackend {
	return &SendGridBackend{
		apiKey: apiKey,
		url:    url,
		sender: sender,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *SendGridBackend) SenderAddress() string { return b.sender }

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (b *SendGridBackend) SendBlocking(ctx context.Context, mail Data) error {
	payload := sendGridPayload{
		From:    sendGridAddress{Email: mail.Sender},
		Subject: mail.Subject,
	}
	payload.Personalizations = []struct {
		To []sendGridAddress `json:"to"`
	}{{To: []sendGridAddress{{Email: mail.Recipient}}}}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/html", Value: mail.Body}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendgrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}
