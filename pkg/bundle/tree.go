package bundle

import (
	"sort"
	"strings"
)

// treeNode is one level of the rendered directory tree. A node with
// children renders as a directory with a trailing slash.
type treeNode struct {
	children map[string]*treeNode
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

// renderTree draws the box-drawing tree for the final display paths.
// Siblings are ordered lexicographically at every level under a "./" root
// marker. Git internals are filtered again here as a backstop against
// anything discovery let through.
func renderTree(paths []string) string {
	root := newTreeNode()
	for _, p := range paths {
		if hasGitSegment(p) {
			continue
		}
		node := root
		for _, seg := range strings.Split(p, "/") {
			if seg == "" || seg == "." {
				continue
			}
			child, ok := node.children[seg]
			if !ok {
				child = newTreeNode()
				node.children[seg] = child
			}
			node = child
		}
	}

	var b strings.Builder
	b.WriteString("./")
	writeTreeLevel(&b, root, "")
	return b.String()
}

// writeTreeLevel emits one level's entries with branch connectors, then
// recurses with the prefix extended for continuation lines.
func writeTreeLevel(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		child := node.children[name]
		label := name
		if len(child.children) > 0 {
			label += "/"
		}

		b.WriteByte('\n')
		b.WriteString(prefix + connector + label)
		writeTreeLevel(b, child, prefix+extension)
	}
}
