package vfs

import "sort"

// NodeType discriminates file nodes from directory nodes.
type NodeType string

const (
	TypeFile      NodeType = "file"
	TypeDirectory NodeType = "directory"
)

// Node is a single entry in the virtual tree. Nodes are owned exclusively
// by their FS; accessors on FS hand out deep copies, never live pointers.
type Node struct {
	Name    string
	Path    string
	Type    NodeType
	Content string // files only

	children map[string]*Node // directories only
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Type == TypeDirectory }

// ChildNames returns the node's child names sorted lexicographically.
// Returns nil for file nodes.
func (n *Node) ChildNames() []string {
	if !n.IsDir() {
		return nil
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Child returns the named child, or nil.
func (n *Node) Child(name string) *Node {
	if !n.IsDir() {
		return nil
	}
	return n.children[name]
}

// clone deep-copies the node and its subtree.
func (n *Node) clone() *Node {
	out := &Node{
		Name:    n.Name,
		Path:    n.Path,
		Type:    n.Type,
		Content: n.Content,
	}
	if n.IsDir() {
		out.children = make(map[string]*Node, len(n.children))
		for name, child := range n.children {
			out.children[name] = child.clone()
		}
	}
	return out
}

// rebase rewrites the node's path for a new location and cascades the
// rewrite to every descendant, preserving relative structure.
func (n *Node) rebase(parentPath, name string) {
	n.Name = name
	n.Path = Join(parentPath, name)
	for childName, child := range n.children {
		child.rebase(n.Path, childName)
	}
}

func newFile(parentPath, name, content string) *Node {
	return &Node{
		Name:    name,
		Path:    Join(parentPath, name),
		Type:    TypeFile,
		Content: content,
	}
}

func newDirectory(parentPath, name string) *Node {
	return &Node{
		Name:     name,
		Path:     Join(parentPath, name),
		Type:     TypeDirectory,
		children: make(map[string]*Node),
	}
}

func newRoot() *Node {
	return &Node{
		Name:     "",
		Path:     "/",
		Type:     TypeDirectory,
		children: make(map[string]*Node),
	}
}
