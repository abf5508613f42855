// Package provider defines the interface between the generation loop and
// the AI collaborator that produces tool calls. Implementations live in
// subpackages; the loop only ever sees these types.
package provider

import (
	"context"
	"io"
	"sync"

	"github.com/Cyclone1070/forge/internal/tool"
)

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolResult carries the outcome of an executed tool call back to the
// model on the next turn.
type ToolResult struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Message is a single conversation turn.
type Message struct {
	Role        Role         `json:"role"`
	Content     string       `json:"content,omitempty"`
	ToolCalls   []tool.Call  `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// CallStream yields tool calls in the order the model issued them.
// Next returns io.EOF once the stream is exhausted. Close releases any
// resources held by the stream and is safe to call more than once.
type CallStream interface {
	Next() (tool.Call, error)
	Close() error
}

// Response is one model turn: optional prose plus an ordered stream of
// tool calls. Calls is never nil; an empty stream means the model issued
// no tool calls this turn.
type Response struct {
	Text  string
	Calls CallStream
}

// Generator produces model responses. The concrete implementation is
// injected at construction time, so callers can swap the live API for a
// scripted one without touching the loop.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []Message) (*Response, error)
}

// NewCallStream wraps an already materialized slice of calls in a
// CallStream. A nil or empty slice yields an immediately exhausted stream.
func NewCallStream(calls []tool.Call) CallStream {
	return &sliceStream{calls: calls}
}

type sliceStream struct {
	mu     sync.Mutex
	calls  []tool.Call
	next   int
	closed bool
}

func (s *sliceStream) Next() (tool.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.next >= len(s.calls) {
		return tool.Call{}, io.EOF
	}

	call := s.calls[s.next]
	s.next++
	return call, nil
}

func (s *sliceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
