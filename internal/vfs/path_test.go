package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"//", "/"},
		{"App.jsx", "/App.jsx"},
		{"/App.jsx", "/App.jsx"},
		{"/components/", "/components"},
		{"//components///Button.tsx", "/components/Button.tsx"},
		{"components/Button.tsx/", "/components/Button.tsx"},
		{"///", "/"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "/", "//", "a", "/a/", "//a//b///c/", "/App.jsx", "weird//path///",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestSplit(t *testing.T) {
	parent, name := Split("/components/Button.tsx")
	assert.Equal(t, "/components", parent)
	assert.Equal(t, "Button.tsx", name)

	parent, name = Split("/App.jsx")
	assert.Equal(t, "/", parent)
	assert.Equal(t, "App.jsx", name)

	parent, name = Split("/")
	assert.Equal(t, "/", parent)
	assert.Equal(t, "", name)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/App.jsx", Join("/", "App.jsx"))
	assert.Equal(t, "/components/Button.tsx", Join("/components", "Button.tsx"))
}
