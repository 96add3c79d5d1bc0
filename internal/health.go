package internal

import (
	"net/http"

	"github.com/bbyeodagung/web/pkg/health"
)

type healthRoutes struct {
	checks    health.Checks
	liveness  string
	readiness string
}

// HealthOption tunes WithHealthChecks.
type HealthOption func(*healthRoutes)

func WithLivenessPath(path string) HealthOption {
	return func(h *healthRoutes) {
		if path != "" {
			h.liveness = path
		}
	}
}

func WithReadinessPath(path string) HealthOption {
	return func(h *healthRoutes) {
		if path != "" {
			h.readiness = path
		}
	}
}

// WithReadinessCheck adds a named dependency check to the readiness probe:
//
//	internal.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(h *healthRoutes) {
		if h.checks == nil {
			h.checks = health.Checks{}
		}
		h.checks[name] = fn
	}
}

// WithHealthChecks serves /health/live and /health/ready. Readiness runs
// every check and answers 503 if one fails.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		h := &healthRoutes{liveness: "/health/live", readiness: "/health/ready"}
		for _, opt := range opts {
			opt(h)
		}
		a.mounts = append(a.mounts,
			mount{pattern: h.liveness, handler: health.LivenessHandler(), exact: true},
			mount{pattern: h.readiness, handler: readiness{a, h.checks}, exact: true},
		)
	}
}

// readiness reads the App logger per request so WithLogger may be passed
// after WithHealthChecks.
type readiness struct {
	app    *App
	checks health.Checks
}

func (rd readiness) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health.ReadinessHandler(rd.checks, health.WithLogger(rd.app.logger))(w, r)
}
