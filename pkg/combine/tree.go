// File: pkg/combine/tree.go
package combine

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// TreeNode is one path segment of a dry-run tree. A node without a File
// but with children is a directory inferred from deeper paths.
type TreeNode struct {
	Name     string
	File     *FileInfo
	Children []int
	IsDir    bool
}

// Tree holds nodes in a flat table; node 0 is the unnamed root. Children
// refer to nodes by index.
type Tree struct {
	nodes []TreeNode
	index map[string]int
}

// BuildTree arranges files into a tree sorted with directories first, then
// by name.
func BuildTree(files []FileInfo) *Tree {
	t := &Tree{
		nodes: []TreeNode{{IsDir: true}},
		index: make(map[string]int),
	}
	for i := range files {
		t.insert(&files[i])
	}
	t.sortChildren(0)
	return t
}

// insert adds file under its parents, creating or reusing one node per
// path segment. The final segment carries the file.
func (t *Tree) insert(file *FileInfo) {
	parts := strings.Split(file.RelPath, "/")
	current := 0

	for i, part := range parts {
		isLast := i == len(parts)-1
		key := strings.Join(parts[:i+1], "/")

		child, ok := t.index[key]
		if !ok {
			child = len(t.nodes)
			t.nodes = append(t.nodes, TreeNode{Name: part, IsDir: !isLast || file.IsDir})
			t.index[key] = child
			t.nodes[current].Children = append(t.nodes[current].Children, child)
		}

		if isLast {
			t.nodes[child].File = file
			t.nodes[child].IsDir = file.IsDir
		}
		current = child
	}
}

func (t *Tree) sortChildren(n int) {
	children := t.nodes[n].Children
	sort.SliceStable(children, func(i, j int) bool {
		a, b := t.nodes[children[i]], t.nodes[children[j]]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range children {
		t.sortChildren(c)
	}
}

// Len returns the number of nodes, excluding the root.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Render writes the tree below the root, each top-level entry indented by
// two spaces. With showReasons, excluded entries carry "[category: pattern]".
func (t *Tree) Render(w io.Writer, showReasons bool) {
	t.render(w, 0, "", false, showReasons)
}

func (t *Tree) render(w io.Writer, n int, prefix string, isLast, showReasons bool) {
	if n != 0 {
		t.renderNode(w, n, prefix, isLast, showReasons)
	}

	children := t.nodes[n].Children
	for i, c := range children {
		var childPrefix string
		switch {
		case n == 0:
			childPrefix = "  "
		case isLast:
			childPrefix = prefix + "    "
		default:
			childPrefix = prefix + "│   "
		}
		t.render(w, c, childPrefix, i == len(children)-1, showReasons)
	}
}

func (t *Tree) renderNode(w io.Writer, n int, prefix string, isLast, showReasons bool) {
	node := t.nodes[n]

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	name := node.Name
	switch {
	case node.IsDir:
		name += "/"
	case node.File != nil && !node.File.IsText && !node.File.Excluded:
		name += " (binary, will be skipped)"
	}

	fmt.Fprintf(w, "%s%s%s", prefix, connector, name)
	if showReasons && node.File != nil && node.File.Reason != nil {
		fmt.Fprintf(w, " [%s: %s]", node.File.Reason.Category, node.File.Reason.Pattern)
	}
	fmt.Fprintln(w)
}
