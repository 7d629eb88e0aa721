package cli

import (
	"errors"

	"github.com/yaklabco/gomdhl/internal/configloader"
)

// Exit codes for gomdhl.
const (
	// ExitSuccess indicates every file was highlighted.
	ExitSuccess = 0

	// ExitFileErrors indicates the run completed but some files failed, or
	// the command failed at runtime.
	ExitFileErrors = 1

	// ExitInvalidUsage indicates bad flags, arguments or configuration.
	ExitInvalidUsage = 2
)

// ErrFilesFailed is returned when at least one file could not be
// highlighted. The failures themselves have already been reported.
var ErrFilesFailed = errors.New("some files could not be highlighted")

// UsageError marks an error caused by how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitInvalidUsage
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitInvalidUsage
	}

	return ExitFileErrors
}
