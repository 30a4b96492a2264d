package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/attendance-bot/internal/config"
	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CodeStore interface {
	AddCode(ctx context.Context, code, moduleCode string, target model.Target) (*model.Code, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	RemoveCode(ctx context.Context, code string) (int64, error)
	ListCodes(ctx context.Context, window model.Window) ([]model.CodeListing, error)
}

type DraftStore interface {
	Save(ctx context.Context, draft *model.AssignmentDraft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.AssignmentDraft, error)
	Delete(ctx context.Context, id string) error
}

// CodeListingResult is a listing together with the window it covers.
type CodeListingResult struct {
	Window model.Window        `json:"window"`
	Codes  []model.CodeListing `json:"codes"`
}

type CodeService struct {
	codes    CodeStore
	lectures LectureStore
	seminars SeminarStore
	drafts   DraftStore

	lookBack  time.Duration
	lookAhead time.Duration
	draftTTL  time.Duration

	logger *zerolog.Logger
	now    func() time.Time
}

func NewCodeService(
	codes CodeStore,
	lectures LectureStore,
	seminars SeminarStore,
	drafts DraftStore,
	cfg *config.Config,
	logger *zerolog.Logger,
) *CodeService {
	return &CodeService{
		codes:     codes,
		lectures:  lectures,
		seminars:  seminars,
		drafts:    drafts,
		lookBack:  cfg.Lifecycle.ListLookBack,
		lookAhead: cfg.Lifecycle.ListLookAhead,
		draftTTL:  cfg.Bot.DraftTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// TargetFrom builds the target of a code from the optional lecture and
// seminar names; exactly one must be given.
func TargetFrom(lecture, seminar *string) (model.Target, error) {
	switch {
	case lecture != nil && seminar == nil:
		return model.Target{Kind: model.TargetLecture, Name: *lecture}, nil
	case seminar != nil && lecture == nil:
		return model.Target{Kind: model.TargetSeminar, Name: *seminar}, nil
	default:
		return model.Target{}, errs.NewBadRequestError(
			"Specify either a lecture or a seminar for the code",
			true, errs.StrPtr("CODE_TARGET_REQUIRED"), nil, nil,
		)
	}
}

// AddCode stores a code for a lecture or seminar of a module.
func (s *CodeService) AddCode(ctx context.Context, code, moduleCode string, target model.Target) (*model.Code, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	moduleCode, err = NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}

	kind, err := model.ParseTargetKind(string(target.Kind))
	if err != nil {
		return nil, errs.NewBadRequestError(err.Error(), true, errs.StrPtr("CODE_TARGET_INVALID"), nil, nil)
	}
	target.Kind = kind

	target.Name, err = NormalizeName(string(target.Kind), target.Name)
	if err != nil {
		return nil, err
	}

	return s.codes.AddCode(ctx, code, moduleCode, target)
}

// RemoveCode deletes every copy of a code and returns how many rows went.
func (s *CodeService) RemoveCode(ctx context.Context, code string) (int64, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return 0, err
	}
	return s.codes.RemoveCode(ctx, code)
}

// ListRecent lists the codes created within [now-lookBack, now+lookAhead].
// A nil duration uses the configured default.
func (s *CodeService) ListRecent(ctx context.Context, lookBack, lookAhead *time.Duration) (*CodeListingResult, error) {
	back, ahead := s.lookBack, s.lookAhead
	if lookBack != nil {
		back = *lookBack
	}
	if lookAhead != nil {
		ahead = *lookAhead
	}

	if back < 0 || ahead < 0 {
		return nil, errs.NewBadRequestError("The listing window must not be negative", true, errs.StrPtr("WINDOW_INVALID"), nil, nil)
	}

	window := model.RecentWindow(s.now(), back, ahead)

	codes, err := s.codes.ListCodes(ctx, window)
	if err != nil {
		return nil, err
	}

	if codes == nil {
		codes = []model.CodeListing{}
	}

	return &CodeListingResult{Window: window, Codes: codes}, nil
}

// BeginAssignment starts a two step code assignment. It checks the code
// is new, collects the module's lectures or seminars as candidates and
// stores a draft the client later completes with CommitAssignment.
func (s *CodeService) BeginAssignment(ctx context.Context, code, moduleCode string, kind model.TargetKind) (*model.AssignmentDraft, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	moduleCode, err = NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}

	exists, err := s.codes.CodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewDuplicateKeyError(fmt.Sprintf("Code %s already exists", code), true, errs.StrPtr("CODE_ALREADY_EXISTS"))
	}

	candidates, err := s.candidates(ctx, moduleCode, kind)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		errCode := strings.ToUpper(string(kind)) + "_NOT_FOUND"
		return nil, errs.NewNotFoundError(
			fmt.Sprintf("Module %s has no %ss to choose from", moduleCode, kind),
			true, &errCode,
		)
	}

	draft := &model.AssignmentDraft{
		ID:         uuid.NewString(),
		Code:       code,
		ModuleCode: moduleCode,
		Kind:       kind,
		Candidates: candidates,
		ExpiresAt:  s.now().Add(s.draftTTL).UTC(),
	}

	if err := s.drafts.Save(ctx, draft, s.draftTTL); err != nil {
		return nil, err
	}

	return draft, nil
}

func (s *CodeService) candidates(ctx context.Context, moduleCode string, kind model.TargetKind) ([]string, error) {
	var names []string

	switch kind {
	case model.TargetLecture:
		lectures, err := s.lectures.ListLectures(ctx, moduleCode)
		if err != nil {
			return nil, err
		}
		for _, l := range lectures {
			names = append(names, l.Name)
		}

	case model.TargetSeminar:
		seminars, err := s.seminars.ListSeminars(ctx, moduleCode)
		if err != nil {
			return nil, err
		}
		for _, sem := range seminars {
			names = append(names, sem.Name)
		}

	default:
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("unknown target kind %q", kind),
			true, errs.StrPtr("CODE_TARGET_INVALID"), nil, nil,
		)
	}

	return names, nil
}

// CommitAssignment completes a draft with the chosen target.
//
// The code is checked again inside AddCode's transaction, so a code
// stored by someone else since BeginAssignment is rejected with
// ErrDuplicateKey instead of being added twice.
func (s *CodeService) CommitAssignment(ctx context.Context, draftID, choice string) (*model.Code, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if !draft.HasCandidate(choice) {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("%q is not one of the offered %ss", choice, draft.Kind),
			true, errs.StrPtr("CHOICE_INVALID"), nil, nil,
		)
	}

	code, err := s.codes.AddCode(ctx, draft.Code, draft.ModuleCode, model.Target{Kind: draft.Kind, Name: choice})
	if err != nil {
		// The draft cannot succeed any more.
		if errors.Is(err, errs.ErrDuplicateKey) {
			s.discardDraft(ctx, draftID)
		}
		return nil, err
	}

	s.discardDraft(ctx, draftID)

	return code, nil
}

func (s *CodeService) discardDraft(ctx context.Context, id string) {
	if err := s.drafts.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("draft_id", id).Msg("could not delete assignment draft")
	}
}
