// Package mailer renders markdown email templates into HTML and hands the
// result to a delivery backend.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
)

// Config is read from the environment.
type Config struct {
	FromEmail       string `env:"MAILER_FROM_EMAIL" envDefault:"hello@bbyeodagung.kr"`
	FromName        string `env:"MAILER_FROM_NAME" envDefault:"BByeoDaGung"`
	BaseURL         string `env:"MAILER_BASE_URL" envDefault:"http://localhost:3000"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"BByeoDaGung"`
}

// From returns the configured sender in "Name <email>" form.
func (c Config) From() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return (&mail.Address{Name: c.FromName, Address: c.FromEmail}).String()
}

// Email is a rendered message ready for delivery.
type Email struct {
	Tags    map[string]string
	From    string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
	To      []string
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Message selects a template and its data.
type Message struct {
	Data     any
	Tags     map[string]string
	To       string
	Template string
	// Subject overrides the template's front matter subject.
	Subject string
}

type Mailer struct {
	sender   Sender
	renderer *Renderer
	cfg      Config
}

func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, cfg: cfg}
}

// Send renders msg.Template and delivers it. The subject comes from
// msg.Subject, then the template's "subject" front matter, then the
// fallback, and may itself use template actions.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	out, err := m.renderer.render(msg.Template, msg.Data, msg.Subject, m.cfg.FallbackSubject)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		From:    m.cfg.From(),
		To:      []string{msg.To},
		Subject: out.Subject,
		HTML:    out.HTML,
		Text:    out.Text,
		Tags:    msg.Tags,
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them. Used when
// no provider API key is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, email *Email) error {
	s.Logger.InfoContext(ctx, "email not sent, no provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
