// Package apply consumes an ordered stream of tool calls and executes
// them one at a time. Application is strictly sequential: call N+1 never
// starts before call N finishes, and cancelling the context leaves every
// already-applied call in place.
package apply

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/workflow"
	"github.com/Cyclone1070/forge/internal/workflow/toolmanager"
)

// ErrTooManyCalls is returned when a single stream exceeds the configured
// call limit. Calls applied before the limit was hit stay applied.
var ErrTooManyCalls = errors.New("too many tool calls in one stream")

// toolExecutor runs one decoded tool call.
type toolExecutor interface {
	Execute(ctx context.Context, call tool.Call) (toolmanager.Result, error)
}

// Applier applies call streams against a session's tool manager.
type Applier struct {
	tools    toolExecutor
	events   chan<- workflow.Event
	maxCalls int
	logger   *zap.Logger
}

// New creates an Applier. The events channel may be nil when no host is
// listening. maxCalls bounds a single stream; zero or negative means a
// misconfiguration and panics early.
func New(tools toolExecutor, events chan<- workflow.Event, maxCalls int, logger *zap.Logger) *Applier {
	if tools == nil {
		panic("tool executor is required")
	}
	if maxCalls <= 0 {
		panic("maxCalls must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{
		tools:    tools,
		events:   events,
		maxCalls: maxCalls,
		logger:   logger,
	}
}

// Apply drains the stream, executing each call in order. It returns the
// results of every executed call, including tool failures, which are
// values inside the results rather than Go errors. The error return is
// reserved for infrastructure problems: context cancellation, a broken
// stream, or the call limit. On error the returned results still hold the
// applied prefix.
func (a *Applier) Apply(ctx context.Context, stream provider.CallStream) ([]toolmanager.Result, error) {
	defer stream.Close()

	var results []toolmanager.Result
	var changed []string

	for {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		call, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return results, fmt.Errorf("call stream: %w", err)
		}

		if len(results) >= a.maxCalls {
			return results, fmt.Errorf("%w (limit %d)", ErrTooManyCalls, a.maxCalls)
		}

		a.emit(workflow.ToolStartEvent{ToolName: call.Tool, Path: primaryPath(call)})
		a.logger.Debug("applying tool call",
			zap.String("tool", call.Tool),
			zap.String("path", primaryPath(call)))

		result, err := a.tools.Execute(ctx, call)
		if err != nil {
			return results, err
		}

		a.emit(workflow.ToolEndEvent{ToolName: result.Tool, Display: result.Display, Err: result.Err})

		if result.OK() {
			changed = append(changed, mutatedPaths(call)...)
		} else {
			a.logger.Warn("tool call failed",
				zap.String("tool", call.Tool),
				zap.String("error", result.Err))
		}

		results = append(results, result)
	}

	if len(changed) > 0 {
		a.emit(workflow.PreviewEvent{ChangedPaths: changed})
	}

	return results, nil
}

func (a *Applier) emit(event workflow.Event) {
	if a.events != nil {
		a.events <- event
	}
}

// primaryPath extracts the path argument most useful for display.
func primaryPath(call tool.Call) string {
	for _, key := range []string{"path", "old_path"} {
		if v, ok := call.Args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// mutatedPaths lists the paths a successful call changed. View calls
// change nothing.
func mutatedPaths(call tool.Call) []string {
	str := func(key string) string {
		v, _ := call.Args[key].(string)
		return v
	}

	switch call.Tool {
	case tool.NameCreate, tool.NameStrReplace, tool.NameInsert, tool.NameDelete:
		if p := str("path"); p != "" {
			return []string{p}
		}
	case tool.NameRename:
		var paths []string
		if p := str("old_path"); p != "" {
			paths = append(paths, p)
		}
		if p := str("new_path"); p != "" {
			paths = append(paths, p)
		}
		return paths
	}
	return nil
}
