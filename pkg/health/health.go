// Package health serves liveness and readiness probes. Readiness runs the
// named checks concurrently under a shared timeout.
package health

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 3 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc matches the Healthcheck closures of pkg/db, pkg/redis and pkg/job.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// Response is the JSON body of a probe.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*config)

func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks and aggregates the result. Unhealthy when any check fails.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	names := slices.Sorted(maps.Keys(checks))
	errs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			errs[i] = probe(ctx, checks[name])
			return nil
		})
	}
	_ = g.Wait()

	resp.Checks = make(map[string]Check, len(names))
	for i, name := range names {
		err := errs[i]
		if err == nil {
			resp.Checks[name] = Check{Status: StatusHealthy}
			continue
		}
		resp.Status = StatusUnhealthy
		resp.Checks[name] = Check{Status: StatusUnhealthy, Error: err.Error()}
		cfg.logger.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
	}
	return resp
}

// probe tags a failure caused by the shared deadline with ErrCheckTimeout.
func probe(ctx context.Context, check CheckFunc) error {
	err := check(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrCheckTimeout, err)
	}
	return err
}
