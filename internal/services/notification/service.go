package notification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrUnknownChannel  = errors.New("unknown notification channel")
	ErrUnknownTemplate = errors.New("unknown notification template")
)

// ChannelEmail is the only delivery channel currently wired.
const ChannelEmail = "email"

// Notification is a single dispatch request.
type Notification struct {
	To       string                 `json:"to"`
	Channel  string                 `json:"channel"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
}

// Dispatcher routes notifications to their channel. Delivery is
// fire-and-forget from the caller's perspective: the dispatcher reports
// errors but callers are expected to decide whether they are fatal.
type Dispatcher struct {
	email  *EmailClient
	logger *zap.SugaredLogger
}

func NewDispatcher(email *EmailClient, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		email:  email,
		logger: logger.Sugar(),
	}
}

// Send renders the notification's template and delivers it on its channel.
func (d *Dispatcher) Send(ctx context.Context, n Notification) error {
	switch n.Channel {
	case ChannelEmail:
		return d.sendEmail(ctx, n)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChannel, n.Channel)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, n Notification) error {
	subject, body, err := renderTemplate(n.Template, n.Data)
	if err != nil {
		return err
	}

	if !d.email.IsEnabled() {
		d.logger.Warnw("email client is disabled, skipping send",
			"to", n.To,
			"template", n.Template,
		)
		return nil
	}

	messageID, err := d.email.Send(ctx, n.To, subject, body)
	if err != nil {
		d.logger.Errorw("failed to send email",
			"error", err,
			"to", n.To,
			"template", n.Template,
		)
		return err
	}

	d.logger.Infow("email sent",
		"message_id", messageID,
		"to", n.To,
		"template", n.Template,
	)
	return nil
}
