package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	fs := buildProject(t)
	require.NoError(t, fs.Mkdir("/styles"))
	require.NoError(t, fs.Create("/styles/app.css", ".app { color: red }"))
	require.NoError(t, fs.Create("/empty.txt", ""))

	blob, err := fs.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(blob)
	require.NoError(t, err)
	assert.True(t, Equal(fs.Snapshot(), restored.Snapshot()))

	// And the restored tree serializes to the same blob.
	blob2, err := restored.Serialize()
	require.NoError(t, err)
	assert.Equal(t, string(blob), string(blob2))
}

func TestSerializeEmptyTree(t *testing.T) {
	fs := New()
	blob, err := fs.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(blob)
	require.NoError(t, err)
	assert.Empty(t, restored.Paths())
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		blob string
	}{
		{"not json", `{{{`},
		{"root is a file", `{"name":"","type":"file","content":""}`},
		{"missing type", `{"name":"","type":"directory","children":[{"name":"a"}]}`},
		{"unknown type", `{"name":"","type":"directory","children":[{"name":"a","type":"symlink"}]}`},
		{"missing name", `{"name":"","type":"directory","children":[{"type":"file","content":""}]}`},
		{"slash in name", `{"name":"","type":"directory","children":[{"name":"a/b","type":"file","content":""}]}`},
		{"duplicate siblings", `{"name":"","type":"directory","children":[{"name":"a","type":"file","content":""},{"name":"a","type":"file","content":""}]}`},
		{"file with children", `{"name":"","type":"directory","children":[{"name":"a","type":"file","content":"","children":[{"name":"b","type":"file","content":""}]}]}`},
		{"directory with content", `{"name":"","type":"directory","children":[{"name":"a","type":"directory","content":"x"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tc.blob))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestDeserializeRecomputesPaths(t *testing.T) {
	blob := `{"name":"","type":"directory","children":[
		{"name":"components","type":"directory","children":[
			{"name":"Foo.jsx","type":"file","content":"export default 1"}
		]}
	]}`
	fs, err := Deserialize([]byte(blob))
	require.NoError(t, err)

	node, err := fs.Read("/components/Foo.jsx")
	require.NoError(t, err)
	assert.Equal(t, "/components/Foo.jsx", node.Path)
	assert.Equal(t, "export default 1", node.Content)
}
