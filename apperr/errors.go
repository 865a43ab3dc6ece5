package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the API reports. Match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("not authorized")
	ErrUnauthenticated = errors.New("access denied")
	ErrUpstream        = errors.New("upstream service failed")
)

func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func Forbidden(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

func Upstream(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, what, err)
}

// ValidationError rejects a request and enumerates the offending values,
// e.g. the invalid email addresses in a share request.
type ValidationError struct {
	Msg    string
	Values []string
}

func (e *ValidationError) Error() string {
	if len(e.Values) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Values, ", ")
}

func Validation(msg string, values ...string) error {
	return &ValidationError{Msg: msg, Values: values}
}
