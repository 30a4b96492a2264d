package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deppfellow/attendance-bot/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner runs one sweep. *Sweeper implements it.
type Runner interface {
	Run(ctx context.Context, kind Kind) (Report, error)
}

// Scheduler runs each sweep on its own interval. A sweep that is still
// running when its next turn comes is skipped rather than stacked.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	cfg    config.LifecycleConfig
	logger *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(runner Runner, cfg config.LifecycleConfig, logger *zerolog.Logger) *Scheduler {
	cronLogger := cronLogAdapter{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers both sweeps and starts the cron loop. With
// SweepOnStart each sweep also runs once immediately, in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	sweeps := []struct {
		kind     Kind
		interval time.Duration
	}{
		{KindExpire, s.cfg.ExpireInterval},
		{KindDedupe, s.cfg.DedupeInterval},
	}

	for _, sw := range sweeps {
		job := cron.NewChain(cron.SkipIfStillRunning(cronLogAdapter{logger: s.logger})).
			Then(cron.FuncJob(s.sweepFunc(sw.kind)))

		if _, err := s.cron.AddJob(fmt.Sprintf("@every %s", sw.interval), job); err != nil {
			return fmt.Errorf("scheduling %s sweep: %w", sw.kind, err)
		}

		s.logger.Info().
			Str("sweep", string(sw.kind)).
			Dur("interval", sw.interval).
			Msg("sweep scheduled")

		if s.cfg.SweepOnStart {
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				job.Run()
			}()
		}
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) sweepFunc(kind Kind) func() {
	return func() {
		if s.ctx.Err() != nil {
			return
		}
		// The sweeper logs its own report and failures.
		_, _ = s.runner.Run(s.ctx, kind)
	}
}

// Stop cancels running sweeps and waits for them to return, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		<-s.cron.Stop().Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn().Msg("sweep scheduler did not stop in time")
	}
}

// cronLogAdapter lets robfig/cron write through zerolog.
type cronLogAdapter struct {
	logger *zerolog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug().Fields(keysAndValues).Str("component", "cron").Msg(msg)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error().Err(err).Fields(keysAndValues).Str("component", "cron").Msg(msg)
}
