package model

import (
	"time"

	"github.com/deppfellow/attendance-bot/internal/validation"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// EmptyRequest is used by commands that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

type AddModulePayload struct {
	Name        string  `json:"name" validate:"required,max=50"`
	ModuleCode  string  `json:"module_code" validate:"required,max=20,alphanum"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (p *AddModulePayload) Validate() error { return validate.Struct(p) }

type ModuleCodeParam struct {
	ModuleCode string `param:"module_code" validate:"required,max=20"`
}

func (p *ModuleCodeParam) Validate() error { return validate.Struct(p) }

type AddSessionPayload struct {
	ModuleCode string `param:"module_code" validate:"required,max=20"`
	Name       string `json:"name" validate:"required,max=50"`
}

func (p *AddSessionPayload) Validate() error { return validate.Struct(p) }

type RemoveLecturePayload struct {
	Name       string `param:"name" validate:"required,max=50"`
	ModuleCode string `query:"module_code" validate:"omitempty,max=20"`
}

func (p *RemoveLecturePayload) Validate() error { return validate.Struct(p) }

type RemoveSeminarPayload struct {
	Name string `param:"name" validate:"required,max=50"`
}

func (p *RemoveSeminarPayload) Validate() error { return validate.Struct(p) }

type AddCodePayload struct {
	Code       string  `json:"code" validate:"required,max=5,alphanum"`
	ModuleCode string  `json:"module_code" validate:"required,max=20"`
	Lecture    *string `json:"lecture" validate:"omitempty,max=50"`
	Seminar    *string `json:"seminar" validate:"omitempty,max=50"`
}

func (p *AddCodePayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if (p.Lecture == nil) == (p.Seminar == nil) {
		return validation.CustomValidationErrors{{
			Field:   "lecture",
			Message: "exactly one of lecture or seminar is required",
		}}
	}
	return nil
}

type CodeParam struct {
	Code string `param:"code" validate:"required,max=5,alphanum"`
}

func (p *CodeParam) Validate() error { return validate.Struct(p) }

// ListCodesQuery selects the listing window relative to now, e.g.
// ?since=24h&until=0s. Empty values fall back to the configured defaults.
type ListCodesQuery struct {
	Since string `query:"since"`
	Until string `query:"until"`

	since, until *time.Duration
}

func (q *ListCodesQuery) Validate() error {
	var errs validation.CustomValidationErrors

	parse := func(field, value string) *time.Duration {
		if value == "" {
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			errs = append(errs, validation.CustomValidationError{
				Field:   field,
				Message: "must be a non-negative duration such as 90m or 24h",
			})
			return nil
		}
		return &d
	}

	q.since = parse("since", q.Since)
	q.until = parse("until", q.Until)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LookBack and LookAhead return the parsed durations, nil when not given.
func (q *ListCodesQuery) LookBack() *time.Duration { return q.since }
func (q *ListCodesQuery) LookAhead() *time.Duration { return q.until }

type BeginAssignmentPayload struct {
	Code       string `json:"code" validate:"required,max=5,alphanum"`
	ModuleCode string `json:"module_code" validate:"required,max=20"`
	Kind       string `json:"kind" validate:"required,oneof=lecture seminar"`
}

func (p *BeginAssignmentPayload) Validate() error { return validate.Struct(p) }

type SelectAssignmentPayload struct {
	ID     string `param:"id" validate:"required,uuid"`
	Choice string `json:"choice" validate:"required,max=50"`
}

func (p *SelectAssignmentPayload) Validate() error { return validate.Struct(p) }

type CountQuery struct {
	Kind string `query:"kind" validate:"omitempty,oneof=module lecture seminar code"`
}

func (q *CountQuery) Validate() error { return validate.Struct(q) }

type SweepRequest struct {
	Kind string `param:"kind" validate:"required,oneof=expire dedupe"`
}

func (r *SweepRequest) Validate() error { return validate.Struct(r) }
