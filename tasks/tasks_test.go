package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/pkg/cache"
	"github.com/bbyeodagung/web/pkg/mailer"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/tasks"
)

type captureSender struct {
	sent []*mailer.Email
}

func (c *captureSender) Send(_ context.Context, e *mailer.Email) error {
	c.sent = append(c.sent, e)
	return nil
}

func TestSendWelcomeEmail(t *testing.T) {
	t.Parallel()

	r, err := mailer.NewRenderer(tasks.Emails())
	require.NoError(t, err)
	sender := &captureSender{}
	m := mailer.New(sender, r, mailer.Config{FromEmail: "hello@bbyeodagung.kr"})
	task := tasks.NewSendWelcomeEmail(m, "https://bbyeodagung.kr")

	assert.Equal(t, tasks.SendWelcomeEmailName, task.Name())

	err = task.Handle(context.Background(), tasks.WelcomeEmailPayload{
		SubscriberID: uuid.New(),
		Name:         "Jane",
		Email:        "jane@example.com",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	e := sender.sent[0]
	assert.Equal(t, "Welcome to BByeoDaGung, Jane!", e.Subject)
	assert.Equal(t, []string{"jane@example.com"}, e.To)
	assert.Contains(t, e.HTML, "https://bbyeodagung.kr/courses")
	assert.Equal(t, "welcome", e.Tags["category"])

	err = task.Handle(context.Background(), tasks.WelcomeEmailPayload{Name: "Nobody"})
	assert.ErrorIs(t, err, mailer.ErrNoRecipient)
}

type trainLister struct {
	trains []repository.Train
	calls  int
	err    error
}

func (l *trainLister) ListTrainsByDeparture(context.Context) ([]repository.Train, error) {
	l.calls++
	return l.trains, l.err
}

func TestWarmTransportationCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lister := &trainLister{trains: []repository.Train{{LineName: "KTX", DepartsAt: "06:00"}}}
	c := cache.NewMemory[[]repository.Train](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = c.Close() })

	task := tasks.NewWarmTransportationCache(lister, c)
	assert.Equal(t, "@every 15m", task.Schedule())
	assert.True(t, task.RunOnStart())

	require.NoError(t, task.Handle(ctx))
	assert.Equal(t, 1, c.Len())

	// A warm cache answers without touching the lister.
	trains, err := tasks.LoadTransportation(ctx, lister, c)
	require.NoError(t, err)
	assert.Equal(t, lister.trains, trains)
	assert.Equal(t, 1, lister.calls)

	require.NoError(t, tasks.InvalidateTransportation(ctx, c))
	_, err = tasks.LoadTransportation(ctx, lister, c)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)

	lister.err = errors.New("db down")
	assert.Error(t, task.Handle(ctx))
}
