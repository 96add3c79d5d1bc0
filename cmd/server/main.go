package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/config"
	"github.com/bbyeodagung/web/handlers"
	"github.com/bbyeodagung/web/middlewares"
	"github.com/bbyeodagung/web/pkg/cache"
	"github.com/bbyeodagung/web/pkg/db"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/logger"
	"github.com/bbyeodagung/web/pkg/mailer"
	"github.com/bbyeodagung/web/pkg/mailer/resend"
	"github.com/bbyeodagung/web/pkg/redis"
	"github.com/bbyeodagung/web/pkg/session"
	"github.com/bbyeodagung/web/pkg/storage"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/tasks"
	"github.com/bbyeodagung/web/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log, flush := logger.NewWithSentry(cfg.Log, middlewares.RequestIDExtractor())
	if err := run(cfg, log, flush); err != nil {
		log.Error("application error", slog.Any("error", err))
		_ = flush(context.Background())
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger, flush func(context.Context) error) error {
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, repository.Migrations(), cfg.Database.MigrationsTable, log); err != nil {
		return err
	}
	if err := job.Migrate(ctx, pool, log); err != nil {
		return err
	}
	q := repository.New(pool)

	opts := []web.Option{
		web.WithLogger(log),
		web.WithCookieOptions(
			web.WithCookieSecret(cfg.CookieSecret),
			web.WithCookieSecure(cfg.IsProduction()),
			web.WithCookieSameSite(http.SameSiteLaxMode),
		),
		web.WithStaticFiles("/public/", views.Public(), "."),
		web.WithErrorHandler(handlers.ErrorHandler),
		web.WithNotFoundHandler(handlers.NotFound),
		web.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
	}
	runOpts := []web.RunOption{
		web.Logger(log),
		web.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	checks := []web.HealthOption{web.WithReadinessCheck("postgres", db.Healthcheck(pool))}

	// Sessions and the timetable cache live in Redis when it is configured.
	var (
		sessions session.Store
		trains   cache.Cache[[]repository.Train]
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		sessions = session.NewRedisStore(client, session.WithKeyPrefix("bbyeodagung:session:"))
		trains = cache.NewRedis[[]repository.Train](client, cache.WithPrefix("bbyeodagung:cache:"))
		checks = append(checks, web.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, web.ShutdownHook(redis.Shutdown(client)))
	} else {
		log.Warn("REDIS_URL not set, sessions and cache are kept in memory")
		memSessions := session.NewMemoryStore()
		memTrains := cache.NewMemory[[]repository.Train]()
		sessions, trains = memSessions, memTrains
		runOpts = append(runOpts, web.ShutdownHook(func(context.Context) error {
			return errors.Join(memSessions.Close(), memTrains.Close())
		}))
	}
	opts = append(opts, web.WithSession(sessions, web.WithSessionMaxAge(cfg.SessionMaxAge)))

	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3(cfg.Storage)
		if err != nil {
			return err
		}
		opts = append(opts, web.WithStorage(s3, cfg.Storage.MaxUploadSize))
	} else {
		log.Warn("STORAGE_BUCKET not set, course image uploads are disabled")
	}

	if cfg.JobsEnabled {
		m, err := newJobs(cfg, log, pool, q, trains)
		if err != nil {
			return err
		}
		opts = append(opts, web.WithJobs(m))
		checks = append(checks, web.WithReadinessCheck("jobs", job.Healthcheck(m)))
	}

	opts = append(opts,
		web.WithHealthChecks(checks...),
		web.WithMiddleware(
			middlewares.Recover(),
			middlewares.RequestID(),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Flash("/public/", "/health/"),
			middlewares.CurrentUser(handlers.LoadUser(q)),
			middlewares.MethodOverride(),
		),
		web.WithHandlers(
			handlers.NewPagesHandler(q, trains),
			handlers.NewUsersHandler(q, q),
			handlers.NewSubscribersHandler(q),
			handlers.NewCoursesHandler(q),
			handlers.NewTalksHandler(q),
			handlers.NewTrainsHandler(q, trains),
		),
	)
	runOpts = append(runOpts,
		web.ShutdownHook(db.Shutdown(pool)),
		web.ShutdownHook(flush),
	)

	return web.New(opts...).Run(cfg.Addr(), runOpts...)
}

func newJobs(cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool, q *repository.Queries, trains cache.Cache[[]repository.Train]) (*job.Manager, error) {
	renderer, err := mailer.NewRenderer(tasks.Emails())
	if err != nil {
		return nil, err
	}

	var sender mailer.Sender = mailer.LogSender{Logger: log}
	if cfg.Resend.APIKey != "" {
		sender = resend.New(cfg.Resend)
	}
	m := mailer.New(sender, renderer, cfg.Mailer)

	return job.NewManager(pool,
		job.WithLogger(log),
		job.WithMaxWorkers(cfg.JobWorkers),
		job.WithQueue(tasks.EmailQueue, cfg.EmailWorkers),
		job.WithTask(tasks.NewSendWelcomeEmail(m, cfg.Mailer.BaseURL)),
		job.WithScheduledTask(tasks.NewWarmTransportationCache(q, trains)),
	)
}
