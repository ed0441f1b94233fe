// Package notification dispatches templated notifications to customers.
// Only the email channel is implemented; delivery goes through Resend.
package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// EmailConfig holds the email client configuration.
type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
}

// EmailClient wraps the Resend client. A client without an API key is
// disabled and refuses to send.
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

func NewEmailClient(cfg EmailConfig) *EmailClient {
	if !cfg.Enabled || cfg.APIKey == "" {
		return &EmailClient{enabled: false}
	}

	return &EmailClient{
		client:      resend.NewClient(cfg.APIKey),
		enabled:     true,
		fromAddress: cfg.FromAddress,
		replyTo:     cfg.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled.
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// Send delivers an HTML email and returns the provider message id.
func (c *EmailClient) Send(ctx context.Context, to, subject, htmlContent string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}
