package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsAreReachableThroughWrapping(t *testing.T) {
	cases := []struct {
		name   string
		err    *HTTPError
		kind   error
		status int
	}{
		{"not found", NewNotFoundError("Module not found", true, nil), ErrNotFound, http.StatusNotFound},
		{"duplicate", NewDuplicateKeyError("exists", true, StrPtr("MODULE_ALREADY_EXISTS")), ErrDuplicateKey, http.StatusConflict},
		{"dependents", NewHasDependentsError("in use", true, nil), ErrHasDependents, http.StatusConflict},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), ErrInvalidArgument, http.StatusBadRequest},
		{"internal", NewInternalServerError(), ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("adding module: %w", tc.err)

			assert.ErrorIs(t, wrapped, tc.kind)
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.kind, tc.err.Kind())

			var httpErr *HTTPError
			require.True(t, errors.As(wrapped, &httpErr))
		})
	}
}

func TestKindsDoNotCrossMatch(t *testing.T) {
	err := NewNotFoundError("Lecture not found", true, nil)

	assert.NotErrorIs(t, err, ErrDuplicateKey)
	assert.NotErrorIs(t, err, ErrHasDependents)
}

func TestWithMessageKeepsKind(t *testing.T) {
	base := NewDuplicateKeyError("exists", true, StrPtr("CODE_ALREADY_EXISTS"))
	copied := base.WithMessage("Code AB12X already exists")

	assert.Equal(t, "Code AB12X already exists", copied.Error())
	assert.Equal(t, "CODE_ALREADY_EXISTS", copied.Code)
	assert.ErrorIs(t, copied, ErrDuplicateKey)
	assert.Equal(t, "exists", base.Message)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}
