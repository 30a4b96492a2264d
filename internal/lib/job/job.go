// Package job runs on-demand sweeps through an asynq queue backed by Redis.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/attendance-bot/internal/config"
	"github.com/deppfellow/attendance-bot/internal/lifecycle"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	runner lifecycle.Runner
	logger *zerolog.Logger
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	client := asynq.NewClient(redisOpt(cfg))

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			// Sweeps touch the same rows; run them one at a time.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: asynqLogAdapter{logger: logger},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start begins processing tasks; it does not block.
func (j *JobService) Start() error {
	if j.runner == nil {
		return errors.New("job handlers not initialized")
	}

	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskExpireCodes, j.sweepHandler(lifecycle.KindExpire))
	mux.HandleFunc(TaskDedupeCodes, j.sweepHandler(lifecycle.KindDedupe))

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueSweep queues an on-demand sweep and returns the task id.
func (j *JobService) EnqueueSweep(ctx context.Context, kind lifecycle.Kind, requestID string) (string, error) {
	task, err := NewSweepTask(kind, requestID)
	if err != nil {
		return "", err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("enqueueing %s sweep: %w", kind, err)
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("type", task.Type()).
		Msg("Sweep task enqueued")

	return info.ID, nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

// asynqLogAdapter routes asynq's own logging through zerolog.
type asynqLogAdapter struct {
	logger *zerolog.Logger
}

func (a asynqLogAdapter) Debug(args ...interface{}) {
	a.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (a asynqLogAdapter) Info(args ...interface{}) {
	a.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (a asynqLogAdapter) Warn(args ...interface{}) {
	a.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (a asynqLogAdapter) Error(args ...interface{}) {
	a.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (a asynqLogAdapter) Fatal(args ...interface{}) {
	a.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...))
}
