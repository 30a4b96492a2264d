package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/attendance-bot/internal/lifecycle"
	"github.com/hibiken/asynq"
)

// InitHandlers gives the job service the sweeps it runs. It must be
// called before Start.
func (j *JobService) InitHandlers(runner lifecycle.Runner) {
	j.runner = runner
}

func (j *JobService) sweepHandler(kind lifecycle.Kind) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p SweepPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("failed to unmarshal sweep payload: %w", err)
		}

		logger := j.logger.With().
			Str("type", t.Type()).
			Str("request_id", p.RequestID).
			Logger()

		logger.Info().Msg("Processing sweep task")

		report, err := j.runner.Run(ctx, kind)
		if err != nil {
			logger.Error().Err(err).Msg("Sweep task failed")
			return err
		}

		logger.Info().
			Int("deleted", report.Deleted).
			Int("failed", report.Failed).
			Msg("Sweep task finished")

		return nil
	}
}
