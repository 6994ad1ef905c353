package usecase

import (
	"context"
	"errors"
	"fmt"

	"skillmatch/internal/domain/matching"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrJobNotFound         = errors.New("job not found")
	ErrUserProfileNotFound = errors.New("user profile not found")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrInternal            = errors.New("internal error")
)

// inputError is an ErrInvalidInput that keeps the engine's message so the
// API can tell callers which field was rejected.
type inputError struct {
	cause error
}

func (e inputError) Error() string        { return e.cause.Error() }
func (e inputError) Unwrap() error        { return e.cause }
func (e inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(format string, args ...any) error {
	return inputError{cause: fmt.Errorf("invalid input: "+format, args...)}
}

func engineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matching.ErrInvalidInput):
		return inputError{cause: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return ErrInternal
	}
}
