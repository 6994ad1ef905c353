package matching

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownStrategy is an ErrInvalidInput.
	ErrUnknownStrategy = fmt.Errorf("%w: unknown strategy", ErrInvalidInput)

	// ErrProviderUnavailable is recovered inside the engine and never
	// returned by Match.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
