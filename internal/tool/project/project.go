// Package project implements the manager capability: renaming and
// deleting nodes. Both operations delegate to the VFS and surface its
// failure semantics unchanged.
package project

import (
	"context"

	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/vfs"
)

// Manager executes the manager capability against a single session VFS.
type Manager struct {
	fs *vfs.FS
}

// New creates a Manager bound to the given VFS.
func New(fs *vfs.FS) *Manager {
	if fs == nil {
		panic("fs is required")
	}
	return &Manager{fs: fs}
}

type RenameResponse struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

type DeleteResponse struct {
	Path string `json:"path"`
}

// Rename moves a node; for directories every descendant path is rewritten
// by the VFS.
//
// Note: ctx is accepted for API consistency but not used - the VFS is in
// memory and synchronous.
func (m *Manager) Rename(ctx context.Context, req *tool.RenameRequest) (*RenameResponse, error) {
	oldPath := vfs.Normalize(req.OldPath)
	newPath := vfs.Normalize(req.NewPath)
	if err := m.fs.Rename(oldPath, newPath); err != nil {
		return nil, err
	}
	return &RenameResponse{OldPath: oldPath, NewPath: newPath}, nil
}

// Delete removes a node and, for directories, its whole subtree.
func (m *Manager) Delete(ctx context.Context, req *tool.DeleteRequest) (*DeleteResponse, error) {
	path := vfs.Normalize(req.Path)
	if err := m.fs.Delete(path); err != nil {
		return nil, err
	}
	return &DeleteResponse{Path: path}, nil
}
