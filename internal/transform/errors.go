package transform

import (
	"errors"
	"fmt"
)

// ErrNoEntryPoint is returned when none of the configured entry
// candidates exist in the snapshot.
var ErrNoEntryPoint = errors.New("no entry point found")

// CompileError describes a syntax error in a single file. Compilation is
// isolated per file, so one CompileError never aborts the pipeline.
type CompileError struct {
	Path    string
	Message string
	Line    int // 1-based, 0 when unknown
	Column  int // 0-based, per the compiler's convention
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("compile %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("compile %s: %s", e.Path, e.Message)
}
