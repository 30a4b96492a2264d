package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValidator = validator.New()

type samplePayload struct {
	ModuleCode string `json:"module_code" validate:"required,max=5,alphanum"`
	Kind       string `json:"kind" validate:"required,oneof=lecture seminar"`
}

func (p *samplePayload) Validate() error {
	return testValidator.Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "lecture", Message: "give a lecture or a seminar"}}
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"module_code":"COMP-101","kind":"lab"}`), &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "module_code", Error: "must not exceed 5 characters"},
		{Field: "kind", Error: "must be one of: lecture seminar"},
	}, httpErr.Errors)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(`{"module_code":`), &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &customPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{{Field: "lecture", Error: "give a lecture or a seminar"}}, httpErr.Errors)
}

func TestBindAndValidateOK(t *testing.T) {
	payload := &samplePayload{}

	require.NoError(t, BindAndValidate(newContext(`{"module_code":"COMP1","kind":"seminar"}`), payload))
	assert.Equal(t, "COMP1", payload.ModuleCode)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "module_code", toSnakeCase("ModuleCode"))
	assert.Equal(t, "id", toSnakeCase("ID"))
	assert.Equal(t, "code", toSnakeCase("Code"))
}
