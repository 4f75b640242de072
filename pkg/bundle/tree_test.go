package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	paths := []string{"main.go", "src/app.go", "src/util/helper.go", "README.md"}
	want := "./\n" +
		"├── README.md\n" +
		"├── main.go\n" +
		"└── src/\n" +
		"    ├── app.go\n" +
		"    └── util/\n" +
		"        └── helper.go"

	assert.Equal(t, want, renderTree(paths))
}

func TestRenderTree_ContinuationLines(t *testing.T) {
	paths := []string{"a/x.go", "b/y.go", "c.md"}
	want := "./\n" +
		"├── a/\n" +
		"│   └── x.go\n" +
		"├── b/\n" +
		"│   └── y.go\n" +
		"└── c.md"

	assert.Equal(t, want, renderTree(paths))
}

func TestRenderTree_FiltersGitPaths(t *testing.T) {
	paths := []string{".git/config", "nested/.git/HEAD", "main.go"}

	assert.Equal(t, "./\n└── main.go", renderTree(paths))
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Equal(t, "./", renderTree(nil))
}
