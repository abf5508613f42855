package loop

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/forge/internal/provider"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/workflow"
	"github.com/Cyclone1070/forge/internal/workflow/toolmanager"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error)
	histories    [][]provider.Message
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
	m.histories = append(m.histories, history)
	return m.generateFunc(ctx, prompt, history)
}

type mockApplier struct {
	applyFunc func(ctx context.Context, stream provider.CallStream) ([]toolmanager.Result, error)
}

func (m *mockApplier) Apply(ctx context.Context, stream provider.CallStream) ([]toolmanager.Result, error) {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, stream)
	}

	// Drain the stream so recorded calls land in history.
	var results []toolmanager.Result
	for {
		call, err := stream.Next()
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return results, err
		}
		results = append(results, toolmanager.Result{Tool: call.Tool, Content: "{}"})
	}
}

func TestRun_TextOnlyTurnEnds(t *testing.T) {
	events := make(chan workflow.Event, 10)

	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
			return &provider.Response{Text: "All set.", Calls: provider.NewCallStream(nil)}, nil
		},
	}

	l := NewLoop(gen, &mockApplier{}, events, 5)
	err := l.Run(context.Background(), "build a counter")

	require.NoError(t, err)
	assert.Equal(t, workflow.TextEvent{Text: "All set."}, <-events)
	assert.IsType(t, workflow.DoneEvent{}, <-events)
}

func TestRun_ToolCallTurnFeedsResultsBack(t *testing.T) {
	events := make(chan workflow.Event, 10)

	turn := 0
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
			turn++
			if turn == 1 {
				return &provider.Response{
					Calls: provider.NewCallStream([]tool.Call{
						{Tool: tool.NameCreate, Args: map[string]any{"path": "/App.jsx", "content": "x"}},
					}),
				}, nil
			}
			return &provider.Response{Text: "Created the app.", Calls: provider.NewCallStream(nil)}, nil
		},
	}

	l := NewLoop(gen, &mockApplier{}, events, 5)
	err := l.Run(context.Background(), "make an app")

	require.NoError(t, err)
	assert.Equal(t, 2, turn)

	// The second turn sees: user prompt, assistant tool calls, tool results.
	secondHistory := gen.histories[1]
	require.Len(t, secondHistory, 3)
	assert.Equal(t, provider.RoleUser, secondHistory[0].Role)
	assert.Equal(t, "make an app", secondHistory[0].Content)

	assert.Equal(t, provider.RoleAssistant, secondHistory[1].Role)
	require.Len(t, secondHistory[1].ToolCalls, 1)
	assert.Equal(t, tool.NameCreate, secondHistory[1].ToolCalls[0].Tool)

	assert.Equal(t, provider.RoleTool, secondHistory[2].Role)
	require.Len(t, secondHistory[2].ToolResults, 1)
	assert.Equal(t, tool.NameCreate, secondHistory[2].ToolResults[0].Name)
}

func TestRun_ToolFailureIsEchoedNotFatal(t *testing.T) {
	turn := 0
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
			turn++
			if turn == 1 {
				return &provider.Response{
					Calls: provider.NewCallStream([]tool.Call{
						{Tool: tool.NameDelete, Args: map[string]any{"path": "/missing.jsx"}},
					}),
				}, nil
			}
			return &provider.Response{Text: "That file was already gone.", Calls: provider.NewCallStream(nil)}, nil
		},
	}

	app := &mockApplier{
		applyFunc: func(ctx context.Context, stream provider.CallStream) ([]toolmanager.Result, error) {
			for {
				_, err := stream.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
			}
			return []toolmanager.Result{{Tool: tool.NameDelete, Err: "path not found"}}, nil
		},
	}

	l := NewLoop(gen, app, nil, 5)
	err := l.Run(context.Background(), "delete it")

	require.NoError(t, err)
	require.Equal(t, 2, turn)

	secondHistory := gen.histories[1]
	toolMsg := secondHistory[len(secondHistory)-1]
	require.Len(t, toolMsg.ToolResults, 1)
	assert.Equal(t, "path not found", toolMsg.ToolResults[0].Error)
}

func TestRun_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
			t.Fatal("generate must not run after cancellation")
			return nil, nil
		},
	}

	l := NewLoop(gen, &mockApplier{}, nil, 5)
	err := l.Run(ctx, "anything")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MaxIterations(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, prompt string, history []provider.Message) (*provider.Response, error) {
			return &provider.Response{
				Calls: provider.NewCallStream([]tool.Call{
					{Tool: tool.NameView, Args: map[string]any{"path": "/App.jsx"}},
				}),
			}, nil
		},
	}

	l := NewLoop(gen, &mockApplier{}, nil, 3)
	err := l.Run(context.Background(), "loop forever")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}
