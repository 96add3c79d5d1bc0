package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bbyeodagung/web/pkg/mailer"
)

// SendWelcomeEmailName is the job name handlers enqueue.
const SendWelcomeEmailName = "send_welcome_email"

// EmailQueue keeps slow mail provider calls from holding up other jobs.
const EmailQueue = "email"

type WelcomeEmailPayload struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
}

// Emailer is satisfied by *mailer.Mailer.
type Emailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// SendWelcomeEmail greets a new subscriber.
type SendWelcomeEmail struct {
	mailer  Emailer
	baseURL string
}

func NewSendWelcomeEmail(m Emailer, baseURL string) *SendWelcomeEmail {
	return &SendWelcomeEmail{mailer: m, baseURL: baseURL}
}

func (t *SendWelcomeEmail) Name() string { return SendWelcomeEmailName }

func (t *SendWelcomeEmail) Handle(ctx context.Context, p WelcomeEmailPayload) error {
	if p.Email == "" {
		return fmt.Errorf("send welcome email to subscriber %s: %w", p.SubscriberID, mailer.ErrNoRecipient)
	}
	return t.mailer.Send(ctx, mailer.Message{
		To:       p.Email,
		Template: "welcome",
		Data: map[string]string{
			"Name":       p.Name,
			"CoursesURL": t.baseURL + "/courses",
			"TalksURL":   t.baseURL + "/talks",
		},
		Tags: map[string]string{"category": "welcome"},
	})
}
