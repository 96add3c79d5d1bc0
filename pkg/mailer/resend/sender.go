// Package resend delivers mailer emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/resend/resend-go/v3"

	"github.com/bbyeodagung/web/pkg/mailer"
)

// Config is read from the environment. An empty APIKey disables delivery.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
}

type Sender struct {
	client *resend.Client
}

func New(cfg Config) *Sender {
	return &Sender{client: resend.NewClient(cfg.APIKey)}
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if _, err := s.client.Emails.SendWithContext(ctx, request(email)); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func request(email *mailer.Email) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}
	for _, name := range slices.Sorted(maps.Keys(email.Tags)) {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: email.Tags[name]})
	}
	return req
}
