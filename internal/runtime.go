package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bbyeodagung/web/pkg/logger"
)

type hook = func(context.Context) error

// RunOption tunes App.Run.
type RunOption func(*runner)

type runner struct {
	log             *slog.Logger
	parent          context.Context
	onStart         []hook
	onStop          []hook
	shutdownTimeout time.Duration
}

// Logger sets the logger used for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return func(rt *runner) {
		if l != nil {
			rt.log = l
		}
	}
}

// ShutdownTimeout bounds request draining plus all shutdown hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(rt *runner) {
		if d > 0 {
			rt.shutdownTimeout = d
		}
	}
}

// StartupHook runs fn before the listener opens. An error aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(rt *runner) {
		if fn != nil {
			rt.onStart = append(rt.onStart, fn)
		}
	}
}

// ShutdownHook registers fn to run after the server stops accepting
// requests, in registration order:
//
//	internal.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(rt *runner) {
		if fn != nil {
			rt.onStop = append(rt.onStop, fn)
		}
	}
}

// WithContext replaces the parent of the signal context. Cancelling it
// shuts the server down as SIGTERM would.
func WithContext(ctx context.Context) RunOption {
	return func(rt *runner) {
		if ctx != nil {
			rt.parent = ctx
		}
	}
}

func newRunner(opts []RunOption) *runner {
	rt := &runner{
		log:             logger.NewNope(),
		parent:          context.Background(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// serve runs h on addr until the parent context is cancelled or a signal
// arrives, then drains requests and runs the stop hooks.
func (rt *runner) serve(addr string, h http.Handler) error {
	if addr == "" {
		addr = ":3000"
	}

	ctx, stop := signal.NotifyContext(rt.parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, fn := range rt.onStart {
		if err := fn(ctx); err != nil {
			return errors.Join(fmt.Errorf("startup hook: %w", err), rt.stop(nil))
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Join(err, rt.stop(nil))
	}

	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return rt.parent },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		rt.log.Info("shutting down server")
		return rt.stop(srv)
	})

	if err := g.Wait(); err != nil {
		rt.log.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	rt.log.Info("shutdown completed")
	return nil
}

// stop shuts srv down when given, then runs every stop hook even if an
// earlier one failed.
func (rt *runner) stop(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), rt.shutdownTimeout)
	defer cancel()

	var errs []error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	for _, fn := range rt.onStop {
		if err := fn(ctx); err != nil {
			rt.log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
