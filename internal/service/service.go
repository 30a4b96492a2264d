// Package service holds the business rules between the command
// handlers and the repositories: input normalisation, the interactive
// code assignment and on-demand sweeps.
//
// Services depend on small interfaces rather than on the concrete
// repositories; the repository package provides the implementations.
package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/attendance-bot/internal/errs"
)

var (
	codePattern       = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)
	moduleCodePattern = regexp.MustCompile(`^[A-Z0-9]{1,20}$`)
)

const maxNameLength = 50

// NormalizeCode trims and upper-cases an attendance code and checks it
// is 1 to 5 letters or digits.
func NormalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(normalized) {
		return "", errs.NewBadRequestError(
			fmt.Sprintf("%q is not a valid code: use 1 to 5 letters or digits", code),
			true, errs.StrPtr("CODE_INVALID"), nil, nil,
		)
	}
	return normalized, nil
}

// NormalizeModuleCode trims and upper-cases a module code.
func NormalizeModuleCode(moduleCode string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(moduleCode))
	if !moduleCodePattern.MatchString(normalized) {
		return "", errs.NewBadRequestError(
			fmt.Sprintf("%q is not a valid module code: use 1 to 20 letters or digits", moduleCode),
			true, errs.StrPtr("MODULE_CODE_INVALID"), nil, nil,
		)
	}
	return normalized, nil
}

// NormalizeName trims a module, lecture or seminar name.
func NormalizeName(field, name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" || len(normalized) > maxNameLength {
		return "", errs.NewBadRequestError(
			fmt.Sprintf("The %s must be between 1 and %d characters", field, maxNameLength),
			true, errs.StrPtr(strings.ToUpper(field)+"_NAME_INVALID"), nil, nil,
		)
	}
	return normalized, nil
}
