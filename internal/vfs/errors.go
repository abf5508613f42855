package vfs

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrNotFound      = errors.New("file or directory not found")
	ErrExists        = errors.New("file or directory already exists")
	ErrIsDirectory   = errors.New("path is a directory")
	ErrNotDirectory  = errors.New("path is not a directory")
	ErrRootForbidden = errors.New("operation not permitted on root")
	ErrInvalidFormat = errors.New("invalid serialized tree")
)

// PathError wraps a sentinel with the failing operation and path.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}
func (e *PathError) Unwrap() error { return e.Err }

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
