package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/attendance-bot/internal/lifecycle"
	"github.com/hibiken/asynq"
)

const (
	TaskExpireCodes = "codes:expire"
	TaskDedupeCodes = "codes:dedupe"
)

// SweepPayload records who asked for an on-demand sweep.
type SweepPayload struct {
	RequestID   string    `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// TaskType returns the task type that runs the given sweep.
func TaskType(kind lifecycle.Kind) (string, error) {
	switch kind {
	case lifecycle.KindExpire:
		return TaskExpireCodes, nil
	case lifecycle.KindDedupe:
		return TaskDedupeCodes, nil
	default:
		return "", fmt.Errorf("unknown sweep kind %q", kind)
	}
}

// NewSweepTask builds the task for an on-demand sweep. Sweeps are not
// retried: the next scheduled run does the same work anyway.
func NewSweepTask(kind lifecycle.Kind, requestID string) (*asynq.Task, error) {
	taskType, err := TaskType(kind)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(SweepPayload{
		RequestID:   requestID,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue("default"),
		asynq.Timeout(5*time.Minute),
	), nil
}
