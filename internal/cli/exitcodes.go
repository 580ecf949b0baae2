package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/pkg/fsutil"
	"github.com/yaklabco/gojot/pkg/script"
)

// Exit codes for gojot.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a command that ran but failed.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage or a malformed
	// edit script.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors that select an exit code.
var (
	ErrUsage  = errors.New("invalid usage")
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validation *configloader.ValidationError
	var stepErr *script.StepError
	switch {
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrUsage),
		errors.As(err, &stepErr),
		errors.Is(err, script.ErrEmptyScript):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrChangedOnDisk),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitFailure
	}
}
