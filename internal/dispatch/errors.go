package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotTransferable is wrapped by failures raised when a job cannot
// cross the worker boundary in parallel mode.
var ErrNotTransferable = errors.New("value cannot cross the worker boundary")

// Violation describes a single constraint broken during dispatcher
// construction.
type Violation struct {
	Field   string
	Problem string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Problem)
}

// ValidationError aggregates every constraint violated by a dispatcher
// configuration into one report instead of failing on the first.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	problems := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		problems[i] = v.String()
	}
	return fmt.Sprintf("invalid dispatcher configuration: %s", strings.Join(problems, "; "))
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Violations = append(e.Violations, Violation{
		Field:   field,
		Problem: fmt.Sprintf(format, args...),
	})
}

// IsValidationError reports whether err is a construction-time
// validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// JobError is a fatal failure raised out of a job's execution wrapper,
// carrying the submission index of the offending job.
type JobError struct {
	JobIndex int
	Err      error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %d failed: %v", e.JobIndex, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// FailedJobIndex returns the submission index carried by a JobError, if
// err is one.
func FailedJobIndex(err error) (int, bool) {
	var je *JobError
	if errors.As(err, &je) {
		return je.JobIndex, true
	}
	return 0, false
}
