package editor

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNoMatch        = errors.New("old_str not found in file")
	ErrAmbiguousMatch = errors.New("old_str matches more than once")
	ErrOutOfRange     = errors.New("insert_line is past the end of the file")
	ErrFileTooLarge   = errors.New("file too large")
)

// MatchCountError reports how many times old_str matched when exactly one
// match was required. The applier echoes it back to the AI collaborator so
// it can retry with a longer, unambiguous snippet.
type MatchCountError struct {
	Path  string
	Count int
}

func (e *MatchCountError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%v: %s", ErrNoMatch, e.Path)
	}
	return fmt.Sprintf("%v: %s (%d matches)", ErrAmbiguousMatch, e.Path, e.Count)
}

func (e *MatchCountError) Unwrap() error {
	if e.Count == 0 {
		return ErrNoMatch
	}
	return ErrAmbiguousMatch
}

// LineRangeError reports an insert position beyond the file's line count.
type LineRangeError struct {
	Path  string
	Line  int
	Lines int
}

func (e *LineRangeError) Error() string {
	return fmt.Sprintf("%v: %s has %d lines, requested line %d", ErrOutOfRange, e.Path, e.Lines, e.Line)
}

func (e *LineRangeError) Unwrap() error { return ErrOutOfRange }
