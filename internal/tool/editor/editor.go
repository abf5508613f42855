// Package editor implements the editor capability: viewing, creating and
// modifying files. It operates only through the VFS public contract and
// never touches the tree directly.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/forge/internal/config"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/vfs"
	"github.com/pmezard/go-difflib/difflib"
)

// Editor executes the editor capability against a single session VFS.
type Editor struct {
	fs     *vfs.FS
	config *config.Config
}

// New creates an Editor bound to the given VFS.
func New(fs *vfs.FS, cfg *config.Config) *Editor {
	if fs == nil {
		panic("fs is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &Editor{fs: fs, config: cfg}
}

// -- Responses --

type ViewResponse struct {
	Path    string   `json:"path"`
	Content string   `json:"content,omitempty"`
	Entries []string `json:"entries,omitempty"`
	IsDir   bool     `json:"is_dir"`
}

type CreateResponse struct {
	Path         string `json:"path"`
	BytesWritten int    `json:"bytes_written"`
}

type StrReplaceResponse struct {
	Path         string `json:"path"`
	Diff         string `json:"diff"`
	AddedLines   int    `json:"added_lines"`
	RemovedLines int    `json:"removed_lines"`
}

type InsertResponse struct {
	Path         string `json:"path"`
	Diff         string `json:"diff"`
	AddedLines   int    `json:"added_lines"`
	RemovedLines int    `json:"removed_lines"`
}

// View returns a file's content, or the sorted child names for a
// directory.
//
// Note: ctx is accepted for API consistency but not used - the VFS is in
// memory and synchronous.
func (e *Editor) View(ctx context.Context, req *tool.ViewRequest) (*ViewResponse, error) {
	node, err := e.fs.Read(req.Path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return &ViewResponse{Path: node.Path, Entries: node.ChildNames(), IsDir: true}, nil
	}
	return &ViewResponse{Path: node.Path, Content: node.Content}, nil
}

// Create adds a new file, creating missing parent directories first.
func (e *Editor) Create(ctx context.Context, req *tool.CreateRequest) (*CreateResponse, error) {
	if int64(len(req.Content)) > e.config.Tools.MaxFileSize {
		return nil, fmt.Errorf("%w: %s (size %d, limit %d)", ErrFileTooLarge, req.Path, len(req.Content), e.config.Tools.MaxFileSize)
	}
	path := vfs.Normalize(req.Path)
	parent, _ := vfs.Split(path)
	if err := e.fs.MkdirAll(parent); err != nil {
		return nil, err
	}
	if err := e.fs.Create(path, req.Content); err != nil {
		return nil, err
	}
	return &CreateResponse{Path: path, BytesWritten: len(req.Content)}, nil
}

// StrReplace replaces old_str with new_str in a file. old_str must occur
// exactly once: absent and ambiguous matches are both errors, and the
// file is left unchanged in either case.
func (e *Editor) StrReplace(ctx context.Context, req *tool.StrReplaceRequest) (*StrReplaceResponse, error) {
	node, err := e.fs.Read(req.Path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, &vfs.PathError{Op: "str_replace", Path: node.Path, Err: vfs.ErrIsDirectory}
	}

	count := strings.Count(node.Content, req.OldStr)
	if count != 1 {
		return nil, &MatchCountError{Path: node.Path, Count: count}
	}

	updated := strings.Replace(node.Content, req.OldStr, req.NewStr, 1)
	if int64(len(updated)) > e.config.Tools.MaxFileSize {
		return nil, fmt.Errorf("%w: %s (size %d, limit %d)", ErrFileTooLarge, node.Path, len(updated), e.config.Tools.MaxFileSize)
	}
	if err := e.fs.Update(node.Path, updated); err != nil {
		return nil, err
	}

	diff, added, removed := computeUnifiedDiff(node.Name, node.Content, updated)
	return &StrReplaceResponse{
		Path:         node.Path,
		Diff:         diff,
		AddedLines:   added,
		RemovedLines: removed,
	}, nil
}

// Insert adds text after the given 1-based line number; line 0 inserts at
// the top of the file. A line number past the end of the file is an
// error and leaves the file unchanged.
func (e *Editor) Insert(ctx context.Context, req *tool.InsertRequest) (*InsertResponse, error) {
	node, err := e.fs.Read(req.Path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, &vfs.PathError{Op: "insert", Path: node.Path, Err: vfs.ErrIsDirectory}
	}

	lines := strings.Split(node.Content, "\n")
	if req.InsertLine > len(lines) {
		return nil, &LineRangeError{Path: node.Path, Line: req.InsertLine, Lines: len(lines)}
	}

	inserted := strings.Split(req.Text, "\n")
	merged := make([]string, 0, len(lines)+len(inserted))
	merged = append(merged, lines[:req.InsertLine]...)
	merged = append(merged, inserted...)
	merged = append(merged, lines[req.InsertLine:]...)
	updated := strings.Join(merged, "\n")

	if int64(len(updated)) > e.config.Tools.MaxFileSize {
		return nil, fmt.Errorf("%w: %s (size %d, limit %d)", ErrFileTooLarge, node.Path, len(updated), e.config.Tools.MaxFileSize)
	}
	if err := e.fs.Update(node.Path, updated); err != nil {
		return nil, err
	}

	diff, added, removed := computeUnifiedDiff(node.Name, node.Content, updated)
	return &InsertResponse{
		Path:         node.Path,
		Diff:         diff,
		AddedLines:   added,
		RemovedLines: removed,
	}, nil
}

func computeUnifiedDiff(filename, oldContent, newContent string) (diff string, added, removed int) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	diff, _ = difflib.GetUnifiedDiffString(ud)

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return diff, added, removed
}
