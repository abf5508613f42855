// Package toolmanager executes decoded tool calls against the two
// capability sets. Dispatch is an exhaustive switch over the closed
// request set, so a new tool cannot be forgotten here without a compile
// error.
package toolmanager

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/tool/editor"
	"github.com/Cyclone1070/forge/internal/tool/project"
)

// Result is the outcome of a single tool call. Tool failures are carried
// in Err and echoed back to the AI collaborator; they are never Go errors
// at this layer.
type Result struct {
	Tool    string
	Content string // JSON response body on success
	Display tool.ToolDisplay
	Err     string
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == "" }

// ToolManager owns the capability implementations for one session.
type ToolManager struct {
	editor  *editor.Editor
	project *project.Manager
}

// New creates a ToolManager over the given capabilities.
func New(ed *editor.Editor, pm *project.Manager) *ToolManager {
	if ed == nil || pm == nil {
		panic("editor and project manager are required")
	}
	return &ToolManager{editor: ed, project: pm}
}

// Declarations returns the schemas for every tool the manager can run.
func (m *ToolManager) Declarations() []tool.Declaration {
	return tool.Declarations()
}

// Execute decodes and runs one call. All tool and decode failures come
// back as Result.Err; the error return is reserved for infrastructure
// problems (context cancellation).
func (m *ToolManager) Execute(ctx context.Context, call tool.Call) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	req, err := tool.DecodeCall(call)
	if err != nil {
		return Result{Tool: call.Tool, Err: err.Error(), Display: tool.StringDisplay("Invalid tool request")}, nil
	}

	switch r := req.(type) {
	case *tool.ViewRequest:
		resp, err := m.editor.View(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		display := tool.ToolDisplay(tool.StringDisplay(resp.Content))
		if resp.IsDir {
			display = tool.ListingDisplay{Path: resp.Path, Entries: resp.Entries}
		}
		return success(call.Tool, resp, display)

	case *tool.CreateRequest:
		resp, err := m.editor.Create(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		return success(call.Tool, resp, tool.StringDisplay(fmt.Sprintf("Created %s", resp.Path)))

	case *tool.StrReplaceRequest:
		resp, err := m.editor.StrReplace(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		return success(call.Tool, resp, tool.DiffDisplay{
			Diff:         resp.Diff,
			AddedLines:   resp.AddedLines,
			RemovedLines: resp.RemovedLines,
		})

	case *tool.InsertRequest:
		resp, err := m.editor.Insert(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		return success(call.Tool, resp, tool.DiffDisplay{
			Diff:         resp.Diff,
			AddedLines:   resp.AddedLines,
			RemovedLines: resp.RemovedLines,
		})

	case *tool.RenameRequest:
		resp, err := m.project.Rename(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		return success(call.Tool, resp, tool.StringDisplay(fmt.Sprintf("Renamed %s to %s", resp.OldPath, resp.NewPath)))

	case *tool.DeleteRequest:
		resp, err := m.project.Delete(ctx, r)
		if err != nil {
			return failure(call.Tool, err), nil
		}
		return success(call.Tool, resp, tool.StringDisplay(fmt.Sprintf("Deleted %s", resp.Path)))

	default:
		// Unreachable while the Request set stays closed.
		return Result{Tool: call.Tool, Err: fmt.Sprintf("unhandled request type %T", req)}, nil
	}
}

func success(name string, resp any, display tool.ToolDisplay) (Result, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return Result{Tool: name, Err: fmt.Sprintf("failed to marshal response: %v", err)}, nil
	}
	return Result{Tool: name, Content: string(body), Display: display}, nil
}

func failure(name string, err error) Result {
	return Result{Tool: name, Err: err.Error(), Display: tool.StringDisplay(err.Error())}
}
