package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStripComments_GoLineAndBlock(t *testing.T) {
	src := "package main\n\n// drop this\nfunc main() {\n\tx := 1 // inline\n\t/* block\n\tspanning */\n\t_ = x\n}\n"
	want := "package main\n\nfunc main() {\n\tx := 1\n\t_ = x\n}\n"

	assert.Equal(t, want, stripComments(src, "main.go"))
}

func TestStripComments_ProtectedMarkers(t *testing.T) {
	src := "/*! license */\n//! keep note\n//go:generate stringer -type=Kind\n//go: not a directive\n// gone\nvar x int\n"
	want := "/*! license */\n//! keep note\n//go:generate stringer -type=Kind\nvar x int\n"

	assert.Equal(t, want, stripComments(src, "kind.go"))
}

func TestStripComments_EmbedDirectiveSurvives(t *testing.T) {
	src := "package assets\n\nimport _ \"embed\"\n\n// comment\n//go:embed static\nvar static embed.FS\n"
	got := stripComments(src, "assets.go")

	assert.Contains(t, got, "//go:embed static")
	assert.NotContains(t, got, "// comment")
	assert.Equal(t, "package assets\n\nimport _ \"embed\"\n\n//go:embed static\nvar static embed.FS\n", got)
}

func TestStripComments_StringLiteralsShielded(t *testing.T) {
	src := "const url = \"https://example.com\"; // site\nconst re = 'a // b';\nconst tpl = `x // y\nz`;\n"
	want := "const url = \"https://example.com\";\nconst re = 'a // b';\nconst tpl = `x // y\nz`;\n"

	assert.Equal(t, want, stripComments(src, "app.js"))
}

func TestStripComments_Python(t *testing.T) {
	src := "#!/usr/bin/env python3\n# setup comment\ndef f():\n    \"\"\"Keep # this docstring.\"\"\"\n    x = 1  # trailing\n    return x\n"
	want := "#!/usr/bin/env python3\ndef f():\n    \"\"\"Keep # this docstring.\"\"\"\n    x = 1\n    return x\n"

	assert.Equal(t, want, stripComments(src, "script.py"))
}

func TestStripComments_PythonMultilineDocstring(t *testing.T) {
	// Hash lines inside an open triple-quoted string are content, not
	// comments, and indentation is untouched.
	src := "def g():\n    '''\n    # not a comment\n    '''\n    pass\n"

	assert.Equal(t, src, stripComments(src, "keep.py"))
}

func TestStripComments_Shell(t *testing.T) {
	src := "#!/bin/sh\n# install deps\necho \"a # b\" # done\n"
	want := "#!/bin/sh\necho \"a # b\"\n"

	assert.Equal(t, want, stripComments(src, "setup.sh"))
}

func TestStripComments_DockerfileByBasename(t *testing.T) {
	src := "FROM alpine:3.20\n# build stage\nRUN apk add git\n"
	want := "FROM alpine:3.20\nRUN apk add git\n"

	assert.Equal(t, want, stripComments(src, "docker/Dockerfile"))
}

func TestStripComments_Markup(t *testing.T) {
	src := "<div>\n  <!-- nav -->\n  <a href=\"/\">home</a>\n</div>\n"
	want := "<div>\n  <a href=\"/\">home</a>\n</div>\n"
	assert.Equal(t, want, stripComments(src, "index.html"))

	multiline := "<a>\n<!-- one\ntwo -->\n<b>\n"
	assert.Equal(t, "<a>\n<b>\n", stripComments(multiline, "page.xml"))
}

func TestStripComments_Stylesheets(t *testing.T) {
	css := "/* theme */\nbody { color: red; }\na { background: url(//cdn.example.com/x.png); }\n"
	wantCSS := "body { color: red; }\na { background: url(//cdn.example.com/x.png); }\n"
	assert.Equal(t, wantCSS, stripComments(css, "style.css"))

	scss := "// note\n.btn { /* inline */ color: blue; }\n"
	wantSCSS := ".btn {  color: blue; }\n"
	assert.Equal(t, wantSCSS, stripComments(scss, "style.scss"))
}

func TestStripComments_SQL(t *testing.T) {
	src := "-- users query\nSELECT * FROM users WHERE tag = 'a -- b';\n"
	want := "SELECT * FROM users WHERE tag = 'a -- b';\n"

	assert.Equal(t, want, stripComments(src, "query.sql"))
}

func TestStripComments_UntouchedTypes(t *testing.T) {
	tests := []struct {
		name string
		path string
		src  string
	}{
		{"markdown keeps html comments", "README.md", "# Title\n\n<!-- toc -->\ntext\n"},
		{"yaml untouched", "config.yaml", "# comment\nkey: value\n"},
		{"unknown extension untouched", "data.xyz", "// not code\n"},
		{"makefile untouched", "Makefile", "# comment\nall:\n\tgo build\n"},
		{"haskell untouched", "main.hs", "-- where clauses depend on layout\nmain = return ()\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.src, stripComments(tt.src, tt.path))
		})
	}
}

func TestStripComments_UnterminatedBlock(t *testing.T) {
	src := "a()\n/* never closed\nmore text"

	assert.Equal(t, "a()\n", stripComments(src, "broken.c"))
}

func TestStripComments_CommentOnlyFile(t *testing.T) {
	src := "// one\n// two\n"

	assert.Equal(t, "", stripComments(src, "empty.go"))
}

func TestSafeStrip_MatchesStripComments(t *testing.T) {
	src := "// gone\ncode()\n"

	assert.Equal(t, stripComments(src, "x.go"), safeStrip(src, "x.go", zap.NewNop()))
}
