// Package session defines the JSON blob exchanged with the external
// persistence collaborator: the serialized file tree paired with the
// ordered chat transcript. The collaborator's schema is its own
// business; this package only owns the blob shape.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/vfs"
)

// Session is one persisted generation session.
type Session struct {
	Files    json.RawMessage    `json:"files"`
	Messages []provider.Message `json:"messages"`
}

// New captures the current file tree and transcript into a Session.
func New(fs *vfs.FS, messages []provider.Message) (*Session, error) {
	blob, err := fs.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize files: %w", err)
	}
	return &Session{Files: blob, Messages: messages}, nil
}

// Restore rebuilds the file tree from a Session. Malformed file blobs
// surface the tree's own validation errors.
func (s *Session) Restore() (*vfs.FS, error) {
	return vfs.Deserialize(s.Files)
}

// Marshal encodes the session for storage.
func (s *Session) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a stored session blob.
func Unmarshal(blob []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
