// Package resolver walks the command tree under absolute, relative and ".." path semantics.
package resolver

import (
	"devcli/internal/cmdpath"
	"devcli/internal/tree"
)

// Resolver maps paths to tree nodes.
type Resolver struct {
	tree *tree.Tree
}

// New creates a resolver over t.
func New(t *tree.Tree) *Resolver {
	return &Resolver{tree: t}
}

// Resolve normalizes p and walks it from the root (absolute paths) or from
// current. ".." moves to the parent and stays at the root when already there.
// Any other component must name a child of a directory. An empty path
// resolves to the start node.
func (r *Resolver) Resolve(p cmdpath.Path, current tree.NodeID) (tree.NodeID, bool) {
	start := current
	if p.IsAbsolute() {
		start = tree.RootID
	}
	node := r.tree.Node(start)
	if node == nil {
		return tree.NoNode, false
	}

	for _, component := range p.Normalized().Components() {
		if component == cmdpath.ParentRef {
			if !node.IsRoot() {
				node = r.tree.Node(node.Parent())
			}
			continue
		}
		if !node.IsDirectory() {
			return tree.NoNode, false
		}
		child, ok := r.tree.Child(node.ID(), component)
		if !ok {
			return tree.NoNode, false
		}
		node = r.tree.Node(child)
	}
	return node.ID(), true
}

// AbsolutePath returns the absolute path of id by walking parent links to the root.
func (r *Resolver) AbsolutePath(id tree.NodeID) cmdpath.Path {
	lineage := r.tree.Lineage(id)
	names := make([]string, 0, len(lineage))
	for _, n := range lineage {
		if n == tree.RootID {
			continue
		}
		names = append(names, r.tree.Node(n).Name())
	}
	return cmdpath.New(true, names...)
}
