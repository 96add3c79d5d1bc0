package mailer_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/pkg/logger"
	"github.com/bbyeodagung/web/pkg/mailer"
)

var templates = fstest.MapFS{
	"layout.html": {Data: []byte(`<html><title>{{.Subject}}</title><body>{{.Content}}</body></html>`)},
	"welcome.md":  {Data: []byte("---\nsubject: Welcome, {{.Name}}!\npreview: hi\n---\n# Hello {{.Name}}\n\nVisit https://example.com\n")},
	"plain.md":    {Data: []byte("Just text for {{.Name}}.")},
	"broken.md":   {Data: []byte("---\nsubject: [unclosed\n")},
}

type captureSender struct {
	sent []*mailer.Email
	err  error
}

func (c *captureSender) Send(_ context.Context, e *mailer.Email) error {
	c.sent = append(c.sent, e)
	return c.err
}

func newMailer(t *testing.T, s mailer.Sender) *mailer.Mailer {
	t.Helper()
	r, err := mailer.NewRenderer(templates)
	require.NoError(t, err)
	return mailer.New(s, r, mailer.Config{
		FromEmail:       "hello@bbyeodagung.kr",
		FromName:        "BByeoDaGung",
		FallbackSubject: "News",
	})
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	fm, body, err := mailer.SplitFrontMatter([]byte("---\r\nsubject: Hi\r\n---\r\nBody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", fm.Subject)
	assert.Equal(t, "Body\n", string(body))

	fm, body, err = mailer.SplitFrontMatter([]byte("No header"))
	require.NoError(t, err)
	assert.Empty(t, fm.Subject)
	assert.Equal(t, "No header", string(body))

	_, _, err = mailer.SplitFrontMatter([]byte("---\nsubject: x\n"))
	require.ErrorIs(t, err, mailer.ErrInvalidFrontmatter)
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("renders subject and body", func(t *testing.T) {
		t.Parallel()
		s := &captureSender{}
		m := newMailer(t, s)

		require.NoError(t, m.Send(context.Background(), mailer.Message{
			To:       "lee@example.com",
			Template: "welcome",
			Data:     map[string]string{"Name": "Lee"},
		}))

		require.Len(t, s.sent, 1)
		e := s.sent[0]
		assert.Equal(t, "Welcome, Lee!", e.Subject)
		assert.Equal(t, `"BByeoDaGung" <hello@bbyeodagung.kr>`, e.From)
		assert.Equal(t, []string{"lee@example.com"}, e.To)
		assert.Contains(t, e.HTML, "<h1>Hello Lee</h1>")
		assert.Contains(t, e.HTML, `<a href="https://example.com">`)
		assert.Contains(t, e.HTML, "<title>Welcome, Lee!</title>")
		assert.Contains(t, e.Text, "# Hello Lee")
	})

	t.Run("fallback subject", func(t *testing.T) {
		t.Parallel()
		s := &captureSender{}
		require.NoError(t, newMailer(t, s).Send(context.Background(), mailer.Message{
			To: "a@b.co", Template: "plain", Data: map[string]string{"Name": "Kim"},
		}))
		assert.Equal(t, "News", s.sent[0].Subject)
		assert.Contains(t, s.sent[0].HTML, "<title>News</title>")
	})

	t.Run("message subject wins", func(t *testing.T) {
		t.Parallel()
		s := &captureSender{}
		require.NoError(t, newMailer(t, s).Send(context.Background(), mailer.Message{
			To: "a@b.co", Template: "welcome", Subject: "Hello again, {{.Name}}",
			Data: map[string]string{"Name": "Choi"},
		}))
		assert.Equal(t, "Hello again, Choi", s.sent[0].Subject)
		assert.Contains(t, s.sent[0].HTML, "<title>Hello again, Choi</title>")
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		m := newMailer(t, &captureSender{})
		require.ErrorIs(t, m.Send(ctx, mailer.Message{Template: "welcome"}), mailer.ErrNoRecipient)
		require.ErrorIs(t, m.Send(ctx, mailer.Message{To: "a@b.co", Template: "missing"}), mailer.ErrTemplateNotFound)
		require.ErrorIs(t, m.Send(ctx, mailer.Message{To: "a@b.co", Template: "broken"}), mailer.ErrInvalidFrontmatter)

		failing := newMailer(t, &captureSender{err: errors.New("provider down")})
		err := failing.Send(ctx, mailer.Message{To: "a@b.co", Template: "plain", Data: map[string]string{"Name": "x"}})
		require.ErrorIs(t, err, mailer.ErrSendFailed)
	})
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := mailer.NewRenderer(templates)
	require.NoError(t, err)

	out, err := r.Render("welcome", map[string]string{"Name": "Park"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Park!", out.Subject)
	assert.Contains(t, out.HTML, "<title>Welcome, Park!</title>")
	assert.NotContains(t, out.HTML, "{{")
}

func TestNewRenderer_MissingLayout(t *testing.T) {
	t.Parallel()

	_, err := mailer.NewRenderer(fstest.MapFS{})
	require.ErrorIs(t, err, mailer.ErrLayoutNotFound)
}

func TestLogSender(t *testing.T) {
	t.Parallel()

	s := mailer.LogSender{Logger: logger.NewNope()}
	require.NoError(t, s.Send(context.Background(), &mailer.Email{To: []string{"a@b.co"}}))
}
