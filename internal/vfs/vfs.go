// Package vfs implements the in-memory virtual file system that holds all
// generated source for a session. Every mutation is atomic per call: inputs
// are fully validated before the tree is touched, so a failed operation
// leaves the tree exactly as it was.
package vfs

import (
	"sort"
	"strings"
)

// FS is the virtual file system. It is the sole owner of its node tree;
// all reads hand out copies. FS assumes single-threaded use per session
// (one writer, readers between writes), matching the cooperative model of
// the tool-call applier.
type FS struct {
	root        *Node
	broadcaster *Broadcaster
}

// New creates an empty FS containing only the root directory.
func New() *FS {
	return &FS{
		root:        newRoot(),
		broadcaster: NewBroadcaster(),
	}
}

// Watch returns the broadcaster publishing a Change for every successful
// mutation.
func (fs *FS) Watch() *Broadcaster { return fs.broadcaster }

// lookup walks the tree to the node at a normalized path, or nil.
func (fs *FS) lookup(path string) *Node {
	if path == "/" {
		return fs.root
	}
	node := fs.root
	for _, seg := range strings.Split(path[1:], "/") {
		if node == nil || !node.IsDir() {
			return nil
		}
		node = node.children[seg]
	}
	return node
}

// locateParent resolves the parent directory and final segment for a
// normalized path, validating the segment name.
func (fs *FS) locateParent(op, path string) (*Node, string, error) {
	if path == "/" {
		return nil, "", pathErr(op, path, ErrRootForbidden)
	}
	parentPath, name := Split(path)
	if !validName(name) {
		return nil, "", pathErr(op, path, ErrInvalidPath)
	}
	parent := fs.lookup(parentPath)
	if parent == nil {
		return nil, "", pathErr(op, path, ErrInvalidPath)
	}
	if !parent.IsDir() {
		return nil, "", pathErr(op, path, ErrNotDirectory)
	}
	return parent, name, nil
}

// Create adds a file node with the given content.
func (fs *FS) Create(path, content string) error {
	path = Normalize(path)
	parent, name, err := fs.locateParent("create", path)
	if err != nil {
		return err
	}
	if _, ok := parent.children[name]; ok {
		return pathErr("create", path, ErrExists)
	}
	parent.children[name] = newFile(parent.Path, name, content)
	fs.broadcaster.Publish(Change{Kind: ChangeCreate, Path: path})
	return nil
}

// Mkdir adds a directory node.
func (fs *FS) Mkdir(path string) error {
	path = Normalize(path)
	parent, name, err := fs.locateParent("mkdir", path)
	if err != nil {
		return err
	}
	if _, ok := parent.children[name]; ok {
		return pathErr("mkdir", path, ErrExists)
	}
	parent.children[name] = newDirectory(parent.Path, name)
	fs.broadcaster.Publish(Change{Kind: ChangeCreate, Path: path})
	return nil
}

// MkdirAll creates a directory and any missing ancestors. Existing
// directories along the way are fine; a file in the way is not.
func (fs *FS) MkdirAll(path string) error {
	path = Normalize(path)
	if path == "/" {
		return nil
	}
	current := fs.root
	walked := "/"
	for _, seg := range strings.Split(path[1:], "/") {
		if !validName(seg) {
			return pathErr("mkdir", path, ErrInvalidPath)
		}
		walked = Join(walked, seg)
		next, ok := current.children[seg]
		if !ok {
			next = newDirectory(current.Path, seg)
			current.children[seg] = next
			fs.broadcaster.Publish(Change{Kind: ChangeCreate, Path: walked})
		} else if !next.IsDir() {
			return pathErr("mkdir", walked, ErrNotDirectory)
		}
		current = next
	}
	return nil
}

// Read returns a deep copy of the node at path.
func (fs *FS) Read(path string) (*Node, error) {
	path = Normalize(path)
	node := fs.lookup(path)
	if node == nil {
		return nil, pathErr("read", path, ErrNotFound)
	}
	return node.clone(), nil
}

// Update replaces the content of an existing file.
func (fs *FS) Update(path, content string) error {
	path = Normalize(path)
	node := fs.lookup(path)
	if node == nil {
		return pathErr("update", path, ErrNotFound)
	}
	if node.IsDir() {
		return pathErr("update", path, ErrIsDirectory)
	}
	node.Content = content
	fs.broadcaster.Publish(Change{Kind: ChangeUpdate, Path: path})
	return nil
}

// Delete removes the node at path and, for directories, its entire
// subtree. The root cannot be deleted.
func (fs *FS) Delete(path string) error {
	path = Normalize(path)
	if path == "/" {
		return pathErr("delete", path, ErrRootForbidden)
	}
	parentPath, name := Split(path)
	parent := fs.lookup(parentPath)
	if parent == nil || !parent.IsDir() {
		return pathErr("delete", path, ErrNotFound)
	}
	if _, ok := parent.children[name]; !ok {
		return pathErr("delete", path, ErrNotFound)
	}
	delete(parent.children, name)
	fs.broadcaster.Publish(Change{Kind: ChangeDelete, Path: path})
	return nil
}

// Rename moves the node at oldPath to newPath, rewriting the path of the
// node and every descendant while preserving relative structure.
func (fs *FS) Rename(oldPath, newPath string) error {
	oldPath = Normalize(oldPath)
	newPath = Normalize(newPath)
	if oldPath == "/" || newPath == "/" {
		return pathErr("rename", oldPath, ErrRootForbidden)
	}
	node := fs.lookup(oldPath)
	if node == nil {
		return pathErr("rename", oldPath, ErrNotFound)
	}
	if fs.lookup(newPath) != nil {
		return pathErr("rename", newPath, ErrExists)
	}
	// A directory cannot be moved under itself.
	if node.IsDir() && strings.HasPrefix(newPath, oldPath+"/") {
		return pathErr("rename", newPath, ErrInvalidPath)
	}
	newParent, newName, err := fs.locateParent("rename", newPath)
	if err != nil {
		return err
	}
	oldParentPath, oldName := Split(oldPath)
	oldParent := fs.lookup(oldParentPath)
	delete(oldParent.children, oldName)
	node.rebase(newParent.Path, newName)
	newParent.children[newName] = node
	fs.broadcaster.Publish(Change{Kind: ChangeRename, Path: newPath, OldPath: oldPath})
	return nil
}

// Snapshot returns a deep copy of the whole tree, safe to hand to readers
// while the FS keeps mutating.
func (fs *FS) Snapshot() *Node {
	return fs.root.clone()
}

// Files returns every file path mapped to its content.
func (fs *FS) Files() map[string]string {
	files := make(map[string]string)
	collectFiles(fs.root, files)
	return files
}

// Paths returns every file path in sorted order.
func (fs *FS) Paths() []string {
	files := fs.Files()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func collectFiles(node *Node, out map[string]string) {
	if !node.IsDir() {
		out[node.Path] = node.Content
		return
	}
	for _, child := range node.children {
		collectFiles(child, out)
	}
}
