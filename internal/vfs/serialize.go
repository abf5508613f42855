package vfs

import (
	"encoding/json"
	"fmt"
)

// encodedNode is the plain nested structure handed to the persistence
// collaborator. Paths are not encoded; they are derived from the tree
// shape on load, so a blob can never smuggle in an inconsistent path.
type encodedNode struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Content  *string       `json:"content,omitempty"`
	Children []encodedNode `json:"children,omitempty"`
}

// Serialize renders the tree as a JSON blob suitable for external
// persistence. Children are emitted in sorted name order so equal trees
// serialize identically.
func (fs *FS) Serialize() ([]byte, error) {
	return json.Marshal(encodeNode(fs.root))
}

func encodeNode(n *Node) encodedNode {
	out := encodedNode{Name: n.Name, Type: string(n.Type)}
	if n.IsDir() {
		out.Children = make([]encodedNode, 0, len(n.children))
		for _, name := range n.ChildNames() {
			out.Children = append(out.Children, encodeNode(n.children[name]))
		}
	} else {
		content := n.Content
		out.Content = &content
	}
	return out
}

// Deserialize rebuilds an FS from a serialized blob. Malformed trees are
// rejected with ErrInvalidFormat: unknown type tags, missing names,
// duplicate sibling names, files with children, directories with content.
func Deserialize(blob []byte) (*FS, error) {
	var enc encodedNode
	if err := json.Unmarshal(blob, &enc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if enc.Type != string(TypeDirectory) {
		return nil, fmt.Errorf("%w: root must be a directory", ErrInvalidFormat)
	}
	fs := New()
	if err := decodeChildren(fs.root, enc.Children); err != nil {
		return nil, err
	}
	return fs, nil
}

func decodeChildren(parent *Node, children []encodedNode) error {
	seen := make(map[string]bool, len(children))
	for _, enc := range children {
		if !validName(enc.Name) {
			return fmt.Errorf("%w: bad node name %q under %s", ErrInvalidFormat, enc.Name, parent.Path)
		}
		if seen[enc.Name] {
			return fmt.Errorf("%w: duplicate sibling %q under %s", ErrInvalidFormat, enc.Name, parent.Path)
		}
		seen[enc.Name] = true

		switch enc.Type {
		case string(TypeFile):
			if len(enc.Children) > 0 {
				return fmt.Errorf("%w: file %s has children", ErrInvalidFormat, Join(parent.Path, enc.Name))
			}
			content := ""
			if enc.Content != nil {
				content = *enc.Content
			}
			parent.children[enc.Name] = newFile(parent.Path, enc.Name, content)
		case string(TypeDirectory):
			if enc.Content != nil {
				return fmt.Errorf("%w: directory %s has content", ErrInvalidFormat, Join(parent.Path, enc.Name))
			}
			dir := newDirectory(parent.Path, enc.Name)
			parent.children[enc.Name] = dir
			if err := decodeChildren(dir, enc.Children); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown node type %q", ErrInvalidFormat, enc.Type)
		}
	}
	return nil
}

// Equal reports whether two trees have identical structure and content.
// Used by round-trip tests and the session store.
func Equal(a, b *Node) bool {
	if a.Name != b.Name || a.Path != b.Path || a.Type != b.Type {
		return false
	}
	if !a.IsDir() {
		return a.Content == b.Content
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for _, name := range a.ChildNames() {
		other := b.children[name]
		if other == nil || !Equal(a.children[name], other) {
			return false
		}
	}
	return true
}
