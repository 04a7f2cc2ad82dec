package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/five82/spaggo/internal/portal"
	"github.com/five82/spaggo/internal/service"
)

const (
	defaultRetryBase = 2 * time.Second
	defaultRetries   = 3
	maxBackoff       = 30 * time.Second
)

// GradeSource fetches the full grade list.
type GradeSource interface {
	Grades(ctx context.Context) ([]portal.Grade, error)
}

// Options configure a Watcher.
type Options struct {
	Source   GradeSource
	Store    *Store
	Schedule string // standard 5-field cron spec or a descriptor such as @hourly
	Logger   *zap.Logger

	// Notify receives grades that appeared since the previous check.
	Notify func([]portal.Grade)

	// RetryBase is the first retry delay after a failed fetch; zero uses 2s.
	RetryBase time.Duration

	// Retries bounds extra fetch attempts per check; zero uses 3 and a
	// negative value disables retries.
	Retries int
}

// Watcher polls grades on a cron schedule and reports new ones.
type Watcher struct {
	source    GradeSource
	store     *Store
	schedule  string
	logger    *zap.Logger
	notify    func([]portal.Grade)
	retryBase time.Duration
	retries   int
}

// New validates opts and returns a Watcher.
func New(opts Options) (*Watcher, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("grade source is required")
	}
	if _, err := cron.ParseStandard(opts.Schedule); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", opts.Schedule, err)
	}
	store := opts.Store
	if store == nil {
		store = &Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notify := opts.Notify
	if notify == nil {
		notify = func([]portal.Grade) {}
	}
	retryBase := opts.RetryBase
	if retryBase <= 0 {
		retryBase = defaultRetryBase
	}
	retries := opts.Retries
	if retries == 0 {
		retries = defaultRetries
	}
	if retries < 0 {
		retries = 0
	}
	return &Watcher{
		source:    opts.Source,
		store:     store,
		schedule:  opts.Schedule,
		logger:    logger,
		notify:    notify,
		retryBase: retryBase,
		retries:   retries,
	}, nil
}

// Store returns the watcher's snapshot store.
func (w *Watcher) Store() *Store {
	return w.store
}

// Run checks once immediately, then on every schedule tick until ctx is
// cancelled. A rejected login stops the watcher with that error.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	run := func() {
		if _, err := w.Check(ctx); err != nil && isPermanent(err) {
			cancel(err)
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(w.logger)))))
	if _, err := c.AddFunc(w.schedule, run); err != nil {
		return fmt.Errorf("schedule grade check: %w", err)
	}

	run()
	c.Start()
	w.logger.Info("watching grades", zap.String("schedule", w.schedule))

	<-ctx.Done()
	<-c.Stop().Done()

	if cause := context.Cause(ctx); cause != nil && isPermanent(cause) {
		return cause
	}
	return nil
}

// Check fetches grades, retrying transient failures with exponential backoff,
// updates the store and notifies about grades not seen before.
func (w *Watcher) Check(ctx context.Context) ([]portal.Grade, error) {
	var (
		grades []portal.Grade
		err    error
	)
	for attempt := 0; ; attempt++ {
		grades, err = w.source.Grades(ctx)
		if err == nil || attempt >= w.retries || isPermanent(err) || ctx.Err() != nil {
			break
		}
		delay := calculateBackoff(attempt, w.retryBase)
		w.logger.Warn("grade check failed, retrying", zap.Error(err), zap.Duration("delay", delay))
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}

	fresh := w.store.Update(grades, err)
	if err != nil {
		snap := w.store.Snapshot()
		w.logger.Error("grade check failed",
			zap.Error(err),
			zap.Int("consecutive_failures", snap.ConsecutiveFailures),
			zap.Bool("offline", snap.IsOffline()))
		return nil, err
	}

	w.logger.Debug("grade check done", zap.Int("grades", len(grades)), zap.Int("new", len(fresh)))
	if len(fresh) > 0 {
		w.notify(fresh)
	}
	return fresh, nil
}

// calculateBackoff doubles base for every prior failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func isPermanent(err error) bool {
	var rejected *service.LoginRejectedError
	return errors.As(err, &rejected)
}
