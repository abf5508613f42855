package vfs

import "sync"

// ChangeKind tags the mutation that produced a Change.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "create"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
	ChangeRename ChangeKind = "rename"
)

// Change describes a single successful mutation of the tree.
type Change struct {
	Kind    ChangeKind
	Path    string
	OldPath string // renames only
}

// Broadcaster fans out Changes to subscribers. Publish is non-blocking
// and drops events for slow consumers.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Change]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[chan Change]struct{})}
}

// Subscribe adds a subscriber and returns its channel. The caller must
// call Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan Change {
	ch := make(chan Change, 64)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Change) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	close(ch)
	b.mu.Unlock()
}

// Publish sends a change to all subscribers.
func (b *Broadcaster) Publish(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
