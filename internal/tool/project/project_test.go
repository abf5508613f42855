package project

import (
	"context"
	"testing"

	"github.com/Cyclone1070/forge/internal/tool"
	"github.com/Cyclone1070/forge/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRename(t *testing.T) {
	t.Run("delegates to the VFS with cascading paths", func(t *testing.T) {
		fs := vfs.New()
		require.NoError(t, fs.Mkdir("/components"))
		require.NoError(t, fs.Create("/components/Foo.jsx", "x"))
		m := New(fs)

		resp, err := m.Rename(context.Background(), &tool.RenameRequest{
			OldPath: "/components",
			NewPath: "/widgets",
		})
		require.NoError(t, err)
		assert.Equal(t, "/components", resp.OldPath)
		assert.Equal(t, "/widgets", resp.NewPath)

		node, err := fs.Read("/widgets/Foo.jsx")
		require.NoError(t, err)
		assert.Equal(t, "/widgets/Foo.jsx", node.Path)
	})

	t.Run("surfaces VFS failures unchanged", func(t *testing.T) {
		m := New(vfs.New())
		_, err := m.Rename(context.Background(), &tool.RenameRequest{
			OldPath: "/missing",
			NewPath: "/x",
		})
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes a subtree", func(t *testing.T) {
		fs := vfs.New()
		require.NoError(t, fs.Mkdir("/components"))
		require.NoError(t, fs.Create("/components/Foo.jsx", "x"))
		m := New(fs)

		_, err := m.Delete(context.Background(), &tool.DeleteRequest{Path: "/components"})
		require.NoError(t, err)

		_, err = fs.Read("/components/Foo.jsx")
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})

	t.Run("missing node fails with not found", func(t *testing.T) {
		m := New(vfs.New())
		_, err := m.Delete(context.Background(), &tool.DeleteRequest{Path: "/nope"})
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})

	t.Run("root is refused", func(t *testing.T) {
		m := New(vfs.New())
		_, err := m.Delete(context.Background(), &tool.DeleteRequest{Path: "/"})
		assert.ErrorIs(t, err, vfs.ErrRootForbidden)
	})
}
