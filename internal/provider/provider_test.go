package provider

import (
	"io"
	"testing"

	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStreamYieldsInOrder(t *testing.T) {
	stream := NewCallStream([]tool.Call{
		{Tool: tool.NameCreate, Args: map[string]any{"path": "/App.jsx"}},
		{Tool: tool.NameView, Args: map[string]any{"path": "/App.jsx"}},
	})

	first, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, tool.NameCreate, first.Tool)

	second, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, tool.NameView, second.Tool)

	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCallStreamEmpty(t *testing.T) {
	stream := NewCallStream(nil)

	_, err := stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCallStreamCloseStopsIteration(t *testing.T) {
	stream := NewCallStream([]tool.Call{
		{Tool: tool.NameDelete, Args: map[string]any{"path": "/old.jsx"}},
	})

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	_, err := stream.Next()
	assert.Equal(t, io.EOF, err)
}
