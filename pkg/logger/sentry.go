package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Release     string `env:"SENTRY_RELEASE"`
}

// NewWithSentry logs to stdout and, when cfg.Sentry.DSN is set, also sends
// errors to Sentry as issues and warnings as breadcrumb logs. The returned
// flush func drains buffered events and is safe to call without Sentry.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	stdout := newHandler(os.Stdout, cfg)
	noop := func(context.Context) error { return nil }

	if cfg.Sentry.DSN == "" {
		return slog.New(WithContextAttrs(stdout, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed, logging to stdout only", slog.Any("error", err))
		return slog.New(WithContextAttrs(stdout, extractors...)), noop
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	log := slog.New(WithContextAttrs(fanout{stdout, sentryHandler}, extractors...))
	return log, Flush
}

// Flush waits up to two seconds, or until ctx is done, for Sentry to send
// queued events. Use as a shutdown hook.
func Flush(ctx context.Context) error {
	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	sentry.Flush(timeout)
	return nil
}
