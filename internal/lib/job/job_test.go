package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/attendance-bot/internal/lifecycle"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	kinds []lifecycle.Kind
	err   error
}

func (s *stubRunner) Run(_ context.Context, kind lifecycle.Kind) (lifecycle.Report, error) {
	s.kinds = append(s.kinds, kind)
	return lifecycle.Report{Kind: kind, Deleted: 2}, s.err
}

func TestNewSweepTask(t *testing.T) {
	task, err := NewSweepTask(lifecycle.KindDedupe, "req-1")
	require.NoError(t, err)
	assert.Equal(t, TaskDedupeCodes, task.Type())

	var p SweepPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "req-1", p.RequestID)
	assert.False(t, p.RequestedAt.IsZero())

	_, err = NewSweepTask(lifecycle.Kind("vacuum"), "req-2")
	assert.Error(t, err)
}

func TestSweepHandlerRunsSweep(t *testing.T) {
	logger := zerolog.Nop()
	runner := &stubRunner{}
	j := &JobService{logger: &logger}
	j.InitHandlers(runner)

	payload, _ := json.Marshal(SweepPayload{RequestID: "req-1"})
	err := j.sweepHandler(lifecycle.KindExpire)(context.Background(), asynq.NewTask(TaskExpireCodes, payload))

	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Kind{lifecycle.KindExpire}, runner.kinds)
}

func TestSweepHandlerReportsFailure(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(&stubRunner{err: errors.New("db down")})

	payload, _ := json.Marshal(SweepPayload{})
	err := j.sweepHandler(lifecycle.KindDedupe)(context.Background(), asynq.NewTask(TaskDedupeCodes, payload))

	assert.ErrorContains(t, err, "db down")
}

func TestSweepHandlerRejectsBadPayload(t *testing.T) {
	logger := zerolog.Nop()
	runner := &stubRunner{}
	j := &JobService{logger: &logger}
	j.InitHandlers(runner)

	err := j.sweepHandler(lifecycle.KindDedupe)(context.Background(), asynq.NewTask(TaskDedupeCodes, []byte("{")))

	assert.Error(t, err)
	assert.Empty(t, runner.kinds)
}

func TestStartRequiresHandlers(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	assert.Error(t, j.Start())
}
