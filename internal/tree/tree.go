// Package tree implements the command namespace: a tree of directories and
// commands stored in an arena and addressed by NodeID handles.
//
// The tree is built once at startup by trusted configuration code. Name
// collisions and inserts below a command are configuration errors; the Must*
// helpers turn them into panics at that boundary. After Freeze the shape is fixed.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"devcli/pkg/clitypes"
)

// NodeID addresses a node inside its Tree.
type NodeID int

const (
	// RootID is the handle of the root directory of every tree
	RootID NodeID = 0
	// NoNode marks the absent parent of the root
	NoNode NodeID = -1
)

var (
	// ErrDuplicateName is returned when a directory already has a child with the same name
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrNotDirectory is returned when a child is added below a command
	ErrNotDirectory = errors.New("parent is not a directory")
	// ErrInvalidName is returned for empty names or names containing a separator or whitespace
	ErrInvalidName = errors.New("invalid node name")
	// ErrFrozen is returned when the tree is modified after Freeze
	ErrFrozen = errors.New("tree is frozen")
	// ErrUnknownNode is returned for handles that do not belong to the tree
	ErrUnknownNode = errors.New("unknown node")
)

// Kind distinguishes directories from commands.
type Kind int

const (
	// KindDirectory nodes have children
	KindDirectory Kind = iota
	// KindCommand nodes are executable leaves
	KindCommand
)

// Node is one entry of the namespace. Nodes are owned by the Tree and must
// not be modified by callers.
type Node struct {
	id       NodeID
	name     string
	level    clitypes.AccessLevel
	parent   NodeID
	kind     Kind
	children []NodeID
	command  clitypes.Command
}

// ID returns the node's handle.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's name, "" for the root.
func (n *Node) Name() string { return n.name }

// AccessLevel returns the minimum level needed to see or use the node.
func (n *Node) AccessLevel() clitypes.AccessLevel { return n.level }

// Parent returns the parent handle, NoNode for the root.
func (n *Node) Parent() NodeID { return n.parent }

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool { return n.parent == NoNode }

// IsDirectory reports whether the node can hold children.
func (n *Node) IsDirectory() bool { return n.kind == KindDirectory }

// Command returns the executable capability, nil for directories.
func (n *Node) Command() clitypes.Command { return n.command }

// Description returns the command description, "" for directories.
func (n *Node) Description() string {
	if n.command == nil {
		return ""
	}
	return n.command.Description()
}

// Usage returns the command usage, "" for directories.
func (n *Node) Usage() string {
	if n.command == nil {
		return ""
	}
	return n.command.Usage()
}

// Tree is an arena of nodes. The zero value is not usable; call New.
type Tree struct {
	nodes  []*Node
	frozen bool
}

// New creates a tree holding only the root directory, accessible to every user.
func New() *Tree {
	return &Tree{
		nodes: []*Node{{
			id:     RootID,
			parent: NoNode,
			kind:   KindDirectory,
			level:  clitypes.AccessUser,
		}},
	}
}

// Root returns the root directory.
func (t *Tree) Root() *Node {
	return t.nodes[RootID]
}

// Node returns the node for id, or nil if id is not part of the tree.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Freeze fixes the shape of the tree. Further adds return ErrFrozen.
func (t *Tree) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze has been called.
func (t *Tree) Frozen() bool {
	return t.frozen
}

// AddDirectory adds an empty directory below parent.
func (t *Tree) AddDirectory(parent NodeID, name string, level clitypes.AccessLevel) (NodeID, error) {
	return t.add(parent, &Node{name: name, level: level, kind: KindDirectory})
}

// AddCommand mounts cmd below parent under name. The command value may be
// shared with other trees or live for the whole process; the tree only
// records a reference to it.
func (t *Tree) AddCommand(parent NodeID, name string, level clitypes.AccessLevel, cmd clitypes.Command) (NodeID, error) {
	if cmd == nil {
		return NoNode, fmt.Errorf("command %q: nil command", name)
	}
	return t.add(parent, &Node{name: name, level: level, kind: KindCommand, command: cmd})
}

// MustAddDirectory is AddDirectory for configuration code; it panics on error.
func (t *Tree) MustAddDirectory(parent NodeID, name string, level clitypes.AccessLevel) NodeID {
	id, err := t.AddDirectory(parent, name, level)
	if err != nil {
		panic(fmt.Sprintf("tree configuration: %v", err))
	}
	return id
}

// MustAddCommand is AddCommand for configuration code; it panics on error.
func (t *Tree) MustAddCommand(parent NodeID, name string, level clitypes.AccessLevel, cmd clitypes.Command) NodeID {
	id, err := t.AddCommand(parent, name, level, cmd)
	if err != nil {
		panic(fmt.Sprintf("tree configuration: %v", err))
	}
	return id
}

func (t *Tree) add(parent NodeID, n *Node) (NodeID, error) {
	if t.frozen {
		return NoNode, fmt.Errorf("add %q: %w", n.name, ErrFrozen)
	}
	if err := validateName(n.name); err != nil {
		return NoNode, err
	}
	p := t.Node(parent)
	if p == nil {
		return NoNode, fmt.Errorf("add %q below %d: %w", n.name, parent, ErrUnknownNode)
	}
	if !p.IsDirectory() {
		return NoNode, fmt.Errorf("add %q below %q: %w", n.name, p.name, ErrNotDirectory)
	}
	if _, exists := t.Child(parent, n.name); exists {
		return NoNode, fmt.Errorf("add %q below %q: %w", n.name, t.displayName(p), ErrDuplicateName)
	}

	n.id = NodeID(len(t.nodes))
	n.parent = parent
	t.nodes = append(t.nodes, n)
	p.children = append(p.children, n.id)
	return n.id, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "/ \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (t *Tree) displayName(n *Node) string {
	if n.IsRoot() {
		return "/"
	}
	return n.name
}

// Child looks up a direct child of dir by exact name.
func (t *Tree) Child(dir NodeID, name string) (NodeID, bool) {
	d := t.Node(dir)
	if d == nil || !d.IsDirectory() {
		return NoNode, false
	}
	for _, id := range d.children {
		if t.nodes[id].name == name {
			return id, true
		}
	}
	return NoNode, false
}

// Children returns the direct children of dir in insertion order.
func (t *Tree) Children(dir NodeID) []*Node {
	d := t.Node(dir)
	if d == nil {
		return nil
	}
	out := make([]*Node, 0, len(d.children))
	for _, id := range d.children {
		out = append(out, t.nodes[id])
	}
	return out
}

// FindNode walks components from the directory from by exact name match.
// It fails if a component is missing or if a command is reached while
// components remain. Dot components are not interpreted; see the resolver.
func (t *Tree) FindNode(from NodeID, components []string) (NodeID, bool) {
	current := from
	if t.Node(current) == nil {
		return NoNode, false
	}
	for _, name := range components {
		next, ok := t.Child(current, name)
		if !ok {
			return NoNode, false
		}
		current = next
	}
	return current, true
}

// Lineage returns the handles from the root down to id, inclusive.
func (t *Tree) Lineage(id NodeID) []NodeID {
	var chain []NodeID
	for n := t.Node(id); n != nil; n = t.Node(n.parent) {
		chain = append(chain, n.id)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Accessible reports whether every node from the root down to id is visible at level.
func (t *Tree) Accessible(id NodeID, level clitypes.AccessLevel) bool {
	lineage := t.Lineage(id)
	if len(lineage) == 0 {
		return false
	}
	for _, n := range lineage {
		if !level.Allows(t.nodes[n].level) {
			return false
		}
	}
	return true
}

// Visitor is called for every node during Traverse. Returning false skips
// the children of a directory.
type Visitor func(n *Node, depth int) bool

// Traverse visits from and its descendants in pre-order. The start node has depth 0.
func (t *Tree) Traverse(from NodeID, visit Visitor) {
	n := t.Node(from)
	if n == nil {
		return
	}
	t.traverse(n, 0, visit)
}

func (t *Tree) traverse(n *Node, depth int, visit Visitor) {
	if !visit(n, depth) {
		return
	}
	for _, id := range n.children {
		t.traverse(t.nodes[id], depth+1, visit)
	}
}
