// Package errs defines the typed error kinds the core surfaces, per spec §7:
// fatal build errors, query errors returned to the caller, and internal
// invariant violations. The core never panics on user input; only
// InternalError indicates a bug in the core itself.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel kinds callers can match with errors.Is.
var (
	// ErrUnknownStation wraps a station-name lookup miss.
	ErrUnknownStation = errors.New("unknown station")
	// ErrInvalidParameter wraps a malformed query parameter (K <= 0, empty
	// departure window, ...).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrCancelled is returned when a cooperative cancellation token fired
	// between rounds or route scans.
	ErrCancelled = errors.New("search cancelled")
)

// BuildError reports a fatal, build-time timetable construction failure,
// identifying the offending entities (spec §4.2, §7).
type BuildError struct {
	Kind    string
	Detail  string
	cause   error
}

func (e *BuildError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("build error (%s): %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("build error (%s): %s", e.Kind, e.Detail)
}

func (e *BuildError) Unwrap() error { return e.cause }

// NewBuildError constructs a BuildError, wrapping cause (if any) with
// github.com/pkg/errors so a human diagnosing a failed build gets a stack
// trace, not just a one-line message.
func NewBuildError(kind, detail string, cause error) *BuildError {
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrapf(cause, "%s: %s", kind, detail)
	}
	return &BuildError{Kind: kind, Detail: detail, cause: wrapped}
}

// Build error kinds (spec §7).
const (
	KindNonMonotoneTripTimes = "non_monotone_trip_times"
	KindDuplicateStopInTrip  = "duplicate_stop_in_trip"
	KindOvertaking           = "overtaking"
	KindUnknownParentStation = "unknown_parent_station"
	KindOrphanedStop         = "orphaned_stop"
	KindZeroLengthTrip       = "zero_length_trip"
)

// UnknownStation builds a caller-facing "no such station" query error.
func UnknownStation(name string) error {
	return errors.Wrapf(ErrUnknownStation, "station %q", name)
}

// InvalidParameter builds a caller-facing malformed-parameter query error.
func InvalidParameter(reason string) error {
	return errors.Wrap(ErrInvalidParameter, reason)
}

// InternalError reports an internal invariant violation: a bug in the core,
// never a user-input problem (spec §7).
type InternalError struct {
	Context string
	cause   error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Context, e.cause)
	}
	return fmt.Sprintf("internal error: %s", e.Context)
}

func (e *InternalError) Unwrap() error { return e.cause }

// NewInternalError constructs an InternalError with stack context.
func NewInternalError(context string, cause error) *InternalError {
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrap(cause, context)
	}
	return &InternalError{Context: context, cause: wrapped}
}
