package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cyclone1070/forge/internal/config"
	"github.com/Cyclone1070/forge/internal/provider/fixture"
	"github.com/Cyclone1070/forge/internal/session"
	"github.com/Cyclone1070/forge/internal/tool"
)

func scriptedDeps(turns ...fixture.Turn) Dependencies {
	return Dependencies{
		Config:    config.DefaultConfig(),
		Logger:    zap.NewNop(),
		Generator: fixture.New(turns...),
	}
}

func TestRunWritesPreviewFromScriptedSession(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "preview.html")

	deps := scriptedDeps(
		fixture.Turn{
			Text: "Creating a greeting app.",
			Calls: []tool.Call{
				{Tool: tool.NameCreate, Args: map[string]any{
					"path":    "/App.jsx",
					"content": "export default function App(){return <h1>hello</h1>}",
				}},
			},
		},
		fixture.Turn{Text: "Done."},
	)

	err := run(context.Background(), deps, "make a greeting app", outPath, "")
	require.NoError(t, err)

	doc, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `import App from "/App.jsx"`)
	assert.Contains(t, string(doc), "data:text/javascript;base64,")
}

func TestRunWritesSessionBlob(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "preview.html")
	sessionPath := filepath.Join(dir, "session.json")

	deps := scriptedDeps(
		fixture.Turn{
			Calls: []tool.Call{
				{Tool: tool.NameCreate, Args: map[string]any{
					"path":    "/App.jsx",
					"content": "export default function App(){return null}",
				}},
			},
		},
		fixture.Turn{Text: "Done."},
	)

	err := run(context.Background(), deps, "make an app", outPath, sessionPath)
	require.NoError(t, err)

	blob, err := os.ReadFile(sessionPath)
	require.NoError(t, err)

	sess, err := session.Unmarshal(blob)
	require.NoError(t, err)

	fs, err := sess.Restore()
	require.NoError(t, err)
	assert.Contains(t, fs.Files(), "/App.jsx")
}

func TestRunNoEntryPointStillRenders(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "preview.html")

	deps := scriptedDeps(
		fixture.Turn{
			Calls: []tool.Call{
				{Tool: tool.NameCreate, Args: map[string]any{
					"path":    "/components/Foo.jsx",
					"content": "export default function Foo(){return null}",
				}},
			},
		},
		fixture.Turn{Text: "Done."},
	)

	err := run(context.Background(), deps, "make a component", outPath, "")
	require.NoError(t, err)

	doc, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "No entry point")
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"Text": "working", "Calls": [{"tool": "create", "args": {"path": "/App.jsx", "content": "x"}}]},
		{"Text": "done"}
	]`), 0o644))

	turns, err := loadScript(path)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "working", turns[0].Text)
	require.Len(t, turns[0].Calls, 1)
	assert.Equal(t, tool.NameCreate, turns[0].Calls[0].Tool)
}
