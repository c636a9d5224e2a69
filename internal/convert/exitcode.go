package convert

import (
	"context"
	"errors"
	"io"

	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/pkg/fileops"
	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// Process exit codes. Scripts depend on these values.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitOpenInput    = 2
	ExitCreateOutput = 3
	ExitWriteFailed  = 4
	ExitShortWrite   = 5
	ExitTooLarge     = 6
	ExitReadFailed   = 7
	ExitShortRead    = 8
	ExitMalformed    = 9
	ExitOutOfMemory  = 10
	ExitTooDeep      = 11
	ExitRemote       = 12
	ExitCancelled    = 130
)

// ExitCode maps an error returned by Run (or NewEngine) to a process exit
// code. Errors outside the known categories exit with ExitUsage.
//
//nolint:cyclop // One case per exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, filesystem.ErrConnect):
		return ExitRemote
	case errors.Is(err, io.ErrShortWrite):
		return ExitShortWrite
	case errors.Is(err, fileops.ErrWriteOutput):
		return ExitWriteFailed
	case errors.Is(err, fileops.ErrCreateOutput):
		return ExitCreateOutput
	case errors.Is(err, fileops.ErrOpenInput):
		return ExitOpenInput
	case errors.Is(err, fileops.ErrInputTooLarge):
		return ExitTooLarge
	case errors.Is(err, fileops.ErrShortRead):
		return ExitShortRead
	case errors.Is(err, fileops.ErrReadInput):
		return ExitReadFailed
	case errors.Is(err, ltfs.ErrTooDeep):
		return ExitTooDeep
	case errors.Is(err, ltfs.ErrMalformed):
		return ExitMalformed
	default:
		return ExitUsage
	}
}
