package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/Cyclone1070/forge/internal/config"
	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) (*Editor, *vfs.FS) {
	t.Helper()
	fs := vfs.New()
	return New(fs, config.DefaultConfig()), fs
}

func TestView(t *testing.T) {
	t.Run("file returns content", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "export default 1"))

		resp, err := e.View(context.Background(), &tool.ViewRequest{Path: "/App.jsx"})
		require.NoError(t, err)
		assert.False(t, resp.IsDir)
		assert.Equal(t, "export default 1", resp.Content)
	})

	t.Run("directory returns sorted listing", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Mkdir("/components"))
		require.NoError(t, fs.Create("/components/b.jsx", ""))
		require.NoError(t, fs.Create("/components/a.jsx", ""))

		resp, err := e.View(context.Background(), &tool.ViewRequest{Path: "/components"})
		require.NoError(t, err)
		assert.True(t, resp.IsDir)
		assert.Equal(t, []string{"a.jsx", "b.jsx"}, resp.Entries)
	})

	t.Run("missing path fails with not found", func(t *testing.T) {
		e, _ := newEditor(t)
		_, err := e.View(context.Background(), &tool.ViewRequest{Path: "/nope"})
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})
}

func TestCreate(t *testing.T) {
	t.Run("creates file and missing parents", func(t *testing.T) {
		e, fs := newEditor(t)
		resp, err := e.Create(context.Background(), &tool.CreateRequest{
			Path:    "/components/forms/Input.jsx",
			Content: "export default () => null",
		})
		require.NoError(t, err)
		assert.Equal(t, "/components/forms/Input.jsx", resp.Path)

		node, err := fs.Read("/components/forms/Input.jsx")
		require.NoError(t, err)
		assert.Equal(t, "export default () => null", node.Content)
	})

	t.Run("fails when file exists", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "a"))
		_, err := e.Create(context.Background(), &tool.CreateRequest{Path: "/App.jsx", Content: "b"})
		assert.ErrorIs(t, err, vfs.ErrExists)
	})

	t.Run("enforces size limit", func(t *testing.T) {
		fs := vfs.New()
		cfg := config.DefaultConfig()
		cfg.Tools.MaxFileSize = 8
		e := New(fs, cfg)

		_, err := e.Create(context.Background(), &tool.CreateRequest{Path: "/big.jsx", Content: "123456789"})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})
}

func TestStrReplace(t *testing.T) {
	t.Run("replaces a unique match and reports a diff", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "const color = 'red'\nexport default App"))

		resp, err := e.StrReplace(context.Background(), &tool.StrReplaceRequest{
			Path:   "/App.jsx",
			OldStr: "'red'",
			NewStr: "'blue'",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.AddedLines)
		assert.Equal(t, 1, resp.RemovedLines)
		assert.Contains(t, resp.Diff, "-const color = 'red'")
		assert.Contains(t, resp.Diff, "+const color = 'blue'")

		node, err := fs.Read("/App.jsx")
		require.NoError(t, err)
		assert.Equal(t, "const color = 'blue'\nexport default App", node.Content)
	})

	t.Run("absent match fails and leaves file unchanged", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "hello"))

		_, err := e.StrReplace(context.Background(), &tool.StrReplaceRequest{
			Path:   "/App.jsx",
			OldStr: "goodbye",
			NewStr: "x",
		})
		assert.ErrorIs(t, err, ErrNoMatch)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, "hello", node.Content)
	})

	t.Run("ambiguous match fails and leaves file unchanged", func(t *testing.T) {
		e, fs := newEditor(t)
		content := "value := 1\nvalue := 1\n"
		require.NoError(t, fs.Create("/App.jsx", content))

		_, err := e.StrReplace(context.Background(), &tool.StrReplaceRequest{
			Path:   "/App.jsx",
			OldStr: "value := 1",
			NewStr: "value := 2",
		})
		assert.ErrorIs(t, err, ErrAmbiguousMatch)

		var mce *MatchCountError
		require.ErrorAs(t, err, &mce)
		assert.Equal(t, 2, mce.Count)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, content, node.Content)
	})

	t.Run("directory path fails with type mismatch", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Mkdir("/components"))
		_, err := e.StrReplace(context.Background(), &tool.StrReplaceRequest{
			Path:   "/components",
			OldStr: "a",
			NewStr: "b",
		})
		assert.ErrorIs(t, err, vfs.ErrIsDirectory)
	})
}

func TestInsert(t *testing.T) {
	fiveLines := "l1\nl2\nl3\nl4\nl5"

	t.Run("inserts after a line", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", fiveLines))

		_, err := e.Insert(context.Background(), &tool.InsertRequest{
			Path:       "/App.jsx",
			InsertLine: 2,
			Text:       "inserted",
		})
		require.NoError(t, err)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, "l1\nl2\ninserted\nl3\nl4\nl5", node.Content)
	})

	t.Run("line zero inserts at the top", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "body"))

		_, err := e.Insert(context.Background(), &tool.InsertRequest{
			Path:       "/App.jsx",
			InsertLine: 0,
			Text:       "// header",
		})
		require.NoError(t, err)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, "// header\nbody", node.Content)
	})

	t.Run("line past end of a 5-line file fails with out of range", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", fiveLines))

		_, err := e.Insert(context.Background(), &tool.InsertRequest{
			Path:       "/App.jsx",
			InsertLine: 100,
			Text:       "// x",
		})
		assert.ErrorIs(t, err, ErrOutOfRange)

		var lre *LineRangeError
		require.ErrorAs(t, err, &lre)
		assert.Equal(t, 5, lre.Lines)
		assert.Equal(t, 100, lre.Line)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, fiveLines, node.Content)
	})

	t.Run("multiline text inserts every line", func(t *testing.T) {
		e, fs := newEditor(t)
		require.NoError(t, fs.Create("/App.jsx", "a\nb"))

		_, err := e.Insert(context.Background(), &tool.InsertRequest{
			Path:       "/App.jsx",
			InsertLine: 1,
			Text:       "x\ny",
		})
		require.NoError(t, err)

		node, _ := fs.Read("/App.jsx")
		assert.Equal(t, "a\nx\ny\nb", node.Content)
		assert.Equal(t, 4, len(strings.Split(node.Content, "\n")))
	})
}
