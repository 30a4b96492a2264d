package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "attendance:draft:"

// DraftRepository keeps interactive assignment drafts in Redis. Redis
// expires them, so an abandoned draft needs no cleanup.
type DraftRepository struct {
	client redis.Cmdable
}

func NewDraftRepository(client redis.Cmdable) *DraftRepository {
	return &DraftRepository{client: client}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

// Save stores the draft until ttl elapses.
func (r *DraftRepository) Save(ctx context.Context, draft *model.AssignmentDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft %s: %w", draft.ID, err)
	}

	if err := r.client.Set(ctx, draftKey(draft.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("saving draft %s: %w", draft.ID, err)
	}
	return nil
}

// Get loads a draft; an unknown or expired id yields ErrNotFound.
func (r *DraftRepository) Get(ctx context.Context, id string) (*model.AssignmentDraft, error) {
	payload, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft %s: %w", id, err)
	}

	var draft model.AssignmentDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", id, err)
	}
	return &draft, nil
}

// Delete removes a draft. Deleting an unknown id is not an error.
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	return nil
}

// ErrDraftNotFound is returned for expired or unknown drafts; the client
// has to start the assignment again.
func ErrDraftNotFound() *errs.HTTPError {
	code := "DRAFT_NOT_FOUND"
	err := errs.NewNotFoundError("The code assignment has expired or does not exist", true, &code)
	err.Action = &errs.Action{
		Type:    errs.ActionTypeRetry,
		Message: "Start the code assignment again",
		Value:   "POST /api/v1/codes/assignments",
	}
	return err
}
