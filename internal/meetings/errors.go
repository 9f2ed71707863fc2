package meetings

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookups of records that do not exist. Callers are
// expected to treat these as normal outcomes, not internal failures.
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrPreferenceNotFound = errors.New("user preferences not found")
)

// InvalidInputError reports an argument that fails validation before any
// engine work happens (malformed times, empty participant lists, negative
// durations).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// invalidInputf builds an InvalidInputError from a format string.
func invalidInputf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMeetingNotFound) || errors.Is(err, ErrPreferenceNotFound)
}
