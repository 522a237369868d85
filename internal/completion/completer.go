// Package completion computes tab completions for partially typed paths.
package completion

import (
	"sort"
	"strings"

	"devcli/internal/cmdpath"
	"devcli/internal/resolver"
	"devcli/internal/tree"
	"devcli/pkg/clitypes"
)

// Result describes the completion of a partial path.
// The zero value means "nothing to complete".
type Result struct {
	FullCompletion    string   // Typed directory prefix followed by PartialCompletion
	PartialCompletion string   // Longest common prefix of the matching names
	NewCharacters     string   // Part of PartialCompletion the user has not typed yet
	IsDirectory       bool     // Whether the first match is a directory
	AllOptions        []string // Sorted matching names, directories suffixed with "/"
}

// Empty reports whether no candidate matched.
func (r Result) Empty() bool {
	return len(r.AllOptions) == 0
}

// Unique reports whether exactly one candidate matched.
func (r Result) Unique() bool {
	return len(r.AllOptions) == 1
}

// Completer enumerates the children of the directory a partial path points into.
type Completer struct {
	tree     *tree.Tree
	resolver *resolver.Resolver
}

// New creates a completer over t.
func New(t *tree.Tree, r *resolver.Resolver) *Completer {
	return &Completer{tree: t, resolver: r}
}

type candidate struct {
	name      string
	directory bool
}

// Complete splits partial at its final "/" into a directory part and the
// fragment to complete, resolves the directory part relative to current (or
// the root for absolute input) and matches the fragment against the children
// visible at level.
func (c *Completer) Complete(current tree.NodeID, partial string, level clitypes.AccessLevel) Result {
	prefix, fragment := splitPartial(partial)

	target, ok := c.resolver.Resolve(cmdpath.Parse(prefix), current)
	if !ok {
		return Result{}
	}
	dir := c.tree.Node(target)
	if !dir.IsDirectory() || !c.tree.Accessible(target, level) {
		return Result{}
	}

	var matches []candidate
	for _, child := range c.tree.Children(target) {
		if !level.Allows(child.AccessLevel()) {
			continue
		}
		if strings.HasPrefix(child.Name(), fragment) {
			matches = append(matches, candidate{name: child.Name(), directory: child.IsDirectory()})
		}
	}
	if len(matches) == 0 {
		return Result{}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].name < matches[j].name
	})

	names := make([]string, len(matches))
	options := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
		options[i] = m.name
		if m.directory {
			options[i] += cmdpath.Separator
		}
	}

	common := longestCommonPrefix(names)
	return Result{
		FullCompletion:    prefix + common,
		PartialCompletion: common,
		NewCharacters:     strings.TrimPrefix(common, fragment),
		IsDirectory:       matches[0].directory,
		AllOptions:        options,
	}
}

// splitPartial returns everything up to and including the final separator,
// and the fragment after it.
func splitPartial(partial string) (prefix, fragment string) {
	idx := strings.LastIndex(partial, cmdpath.Separator)
	if idx < 0 {
		return "", partial
	}
	return partial[:idx+1], partial[idx+1:]
}

func longestCommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		n := 0
		for n < len(prefix) && n < len(name) && prefix[n] == name[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			break
		}
	}
	return prefix
}
