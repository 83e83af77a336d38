// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail delivers subscriber notifications.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Message is a single outgoing HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Headers map[string]string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendSender sends mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using apiKey and the default from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send sends msg via Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Headers: msg.Headers,
	})
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("mail sent", "message_id", sent.Id, "subject", msg.Subject)
	return nil
}

// LogSender logs messages instead of sending them. Used when no mail
// provider is configured.
type LogSender struct{}

// Send logs the message envelope.
func (LogSender) Send(_ context.Context, msg Message) error {
	slog.Info("mail delivery disabled, message not sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<p>Hi{{if .Name}} {{.Name}}{{end}},</p>
<p>Thanks for joining the {{.Site}} mailing list. We will let you know about new shows and releases.</p>
<p>Changed your mind? <a href="{{.UnsubscribeURL}}">Unsubscribe</a> at any time.</p>
`))

// WelcomeData fills the welcome email.
type WelcomeData struct {
	Site           string
	Name           string
	UnsubscribeURL string
}

// Welcome builds the message sent after a new or renewed subscription.
func Welcome(to string, data WelcomeData) (Message, error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("rendering welcome email: %w", err)
	}
	msg := Message{
		To:      to,
		Subject: "Welcome to the " + data.Site + " mailing list",
		HTML:    buf.String(),
	}
	if data.UnsubscribeURL != "" {
		// RFC 8058 one-click: mail clients POST to the link.
		msg.Headers = map[string]string{
			"List-Unsubscribe":      "<" + data.UnsubscribeURL + ">",
			"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
		}
	}
	return msg, nil
}
