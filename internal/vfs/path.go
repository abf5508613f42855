package vfs

import "strings"

// Normalize canonicalizes a path: single leading slash, duplicate slashes
// collapsed, trailing slash stripped (except for the root itself).
// It is pure and idempotent: Normalize(Normalize(p)) == Normalize(p).
func Normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Split returns the parent path and the final segment of a normalized path.
// Split("/") returns ("/", "").
func Split(p string) (parent, name string) {
	if p == "/" {
		return "/", ""
	}
	i := strings.LastIndexByte(p, '/')
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

// Join appends a name segment to a normalized parent path.
func Join(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// validName reports whether a segment is usable as a node name.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/')
}
