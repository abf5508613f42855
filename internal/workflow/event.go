package workflow

import "github.com/Cyclone1070/forge/internal/tool"

// Event is the interface for all workflow events.
// The host UI handles events via type switch.
type Event interface {
	isEvent()
}

// TextEvent is emitted when the generator produces text output.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// DoneEvent is emitted when stream application completes.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}

// ToolStartEvent is emitted when a tool call begins.
type ToolStartEvent struct {
	ToolName string
	Path     string // primary path argument, for display
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool call completes.
type ToolEndEvent struct {
	ToolName string
	Display  tool.ToolDisplay
	Err      string // tool failure echoed to the AI collaborator, empty on success
}

func (ToolEndEvent) isEvent() {}

// PreviewEvent is emitted after each applied mutation batch so the host
// can rebuild the preview surface.
type PreviewEvent struct {
	ChangedPaths []string
}

func (PreviewEvent) isEvent() {}
