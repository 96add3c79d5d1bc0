package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// executor runs one task from its raw JSON payload.
type executor func(ctx context.Context, payload json.RawMessage) error

type registry struct {
	tasks map[string]executor
	mu    sync.RWMutex
}

func newRegistry() *registry {
	return &registry{tasks: make(map[string]executor)}
}

func (r *registry) add(name string, ex executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = ex
}

func (r *registry) get(name string) (executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.tasks[name]
	return ex, ok
}

func (r *registry) has(name string) bool {
	_, ok := r.get(name)
	return ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tasks))
}

// typed decodes the payload into P before calling handle.
func typed[P any](handle func(context.Context, P) error) executor {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p P
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return errors.Join(ErrInvalidPayload, err)
			}
		}
		return handle(ctx, p)
	}
}

// taskArgs is the single River job kind; TaskName selects the executor.
type taskArgs struct {
	TaskName  string          `json:"task_name" river:"unique"`
	UniqueKey string          `json:"unique_key,omitempty" river:"unique"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return "web:task" }

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *registry
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, j *river.Job[taskArgs]) error {
	ex, ok := w.registry.get(j.Args.TaskName)
	if !ok {
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownTask, j.Args.TaskName))
	}

	log := w.logger.With(
		slog.String("task", j.Args.TaskName),
		slog.Int64("job_id", j.ID),
		slog.Int("attempt", j.Attempt),
	)

	start := time.Now()
	if err := ex(ctx, j.Args.Payload); err != nil {
		log.ErrorContext(ctx, "task failed", slog.Any("error", err))
		return err
	}
	log.DebugContext(ctx, "task done", slog.Duration("took", time.Since(start)))
	return nil
}

type cronSchedule struct {
	cron.Schedule
}

func (s cronSchedule) Next(t time.Time) time.Time { return s.Schedule.Next(t) }

// parseSchedule accepts five-field cron expressions and descriptors such
// as "@every 15m" or "@hourly".
func parseSchedule(spec string) (river.PeriodicSchedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return cronSchedule{s}, nil
}
