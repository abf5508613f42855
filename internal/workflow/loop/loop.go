// Package loop runs the generate/apply conversation: each turn asks the
// model for a response, applies its tool calls in order, and feeds the
// results back until the model stops issuing calls.
package loop

import (
	"context"
	"fmt"
	"io"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/workflow"
)

type Loop struct {
	generator     generator
	applier       applier
	events        chan<- workflow.Event
	maxIterations int
}

func NewLoop(gen generator, app applier, events chan<- workflow.Event, maxIterations int) *Loop {
	return &Loop{
		generator:     gen,
		applier:       app,
		events:        events,
		maxIterations: maxIterations,
	}
}

// Run drives one request through to completion. The initial message is
// the user's prompt; the loop ends when a turn produces no tool calls,
// the iteration cap is hit, or the context is cancelled. Work applied
// before a cancellation stays applied.
func (l *Loop) Run(ctx context.Context, initialMessage string) error {
	var history []provider.Message
	prompt := initialMessage

	defer func() {
		if l.events != nil {
			l.events <- workflow.DoneEvent{}
		}
	}()

	for i := 0; i < l.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := l.generator.Generate(ctx, prompt, history)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		if prompt != "" {
			history = append(history, provider.Message{Role: provider.RoleUser, Content: prompt})
			prompt = ""
		}

		if resp.Text != "" && l.events != nil {
			l.events <- workflow.TextEvent{Text: resp.Text}
		}

		recorded := record(resp.Calls)
		results, err := l.applier.Apply(ctx, recorded)

		history = append(history, provider.Message{
			Role:      provider.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: recorded.calls,
		})

		if err != nil {
			return fmt.Errorf("apply: %w", err)
		}

		if len(results) == 0 {
			return nil
		}

		toolMsg := provider.Message{Role: provider.RoleTool}
		for _, result := range results {
			toolMsg.ToolResults = append(toolMsg.ToolResults, provider.ToolResult{
				Name:    result.Tool,
				Content: result.Content,
				Error:   result.Err,
			})
		}
		history = append(history, toolMsg)
	}

	return fmt.Errorf("max iterations (%d) reached", l.maxIterations)
}

// recordingStream remembers every call it hands out so the conversation
// history can replay the assistant's tool calls verbatim.
type recordingStream struct {
	inner provider.CallStream
	calls []tool.Call
}

func record(inner provider.CallStream) *recordingStream {
	return &recordingStream{inner: inner}
}

func (s *recordingStream) Next() (tool.Call, error) {
	call, err := s.inner.Next()
	if err == nil {
		s.calls = append(s.calls, call)
	} else if err != io.EOF {
		return call, err
	}
	return call, err
}

func (s *recordingStream) Close() error {
	return s.inner.Close()
}
