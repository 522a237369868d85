// Package cmdpath implements the path value type used to address nodes in the
// command namespace. Paths are immutable values; every operation returns a new Path.
package cmdpath

import "strings"

const (
	// Separator delimits path components
	Separator = "/"
	// Current is the component naming the current directory
	Current = "."
	// ParentRef is the component naming the parent directory
	ParentRef = ".."
)

// Path is an ordered list of non-empty components plus an absolute flag.
// No component is empty or contains a separator.
type Path struct {
	components []string
	absolute   bool
}

// Parse builds a Path from its textual form. It never fails: consecutive
// separators collapse and empty segments are dropped.
func Parse(text string) Path {
	p := Path{absolute: strings.HasPrefix(text, Separator)}
	for _, segment := range strings.Split(text, Separator) {
		if segment != "" {
			p.components = append(p.components, segment)
		}
	}
	return p
}

// New builds a Path from components. Components containing separators are
// split and empty components are dropped, so the result always holds the invariant.
func New(absolute bool, components ...string) Path {
	p := Path{absolute: absolute}
	for _, c := range components {
		for _, segment := range strings.Split(c, Separator) {
			if segment != "" {
				p.components = append(p.components, segment)
			}
		}
	}
	return p
}

// Root returns the empty absolute path.
func Root() Path {
	return Path{absolute: true}
}

// IsAbsolute reports whether the path starts at the root.
func (p Path) IsAbsolute() bool {
	return p.absolute
}

// IsEmpty reports whether the path has no components.
func (p Path) IsEmpty() bool {
	return len(p.components) == 0
}

// Len returns the number of components.
func (p Path) Len() int {
	return len(p.components)
}

// Components returns a copy of the component list.
func (p Path) Components() []string {
	out := make([]string, len(p.components))
	copy(out, p.components)
	return out
}

// First returns the first component, or "" for an empty path.
func (p Path) First() string {
	if len(p.components) == 0 {
		return ""
	}
	return p.components[0]
}

// Last returns the last component, or "" for an empty path.
func (p Path) Last() string {
	if len(p.components) == 0 {
		return ""
	}
	return p.components[len(p.components)-1]
}

// Normalized resolves "." and ".." components.
// A ".." with nothing to cancel is kept for relative paths and dropped for
// absolute ones, since the root has no parent.
func (p Path) Normalized() Path {
	out := make([]string, 0, len(p.components))
	for _, c := range p.components {
		switch c {
		case Current:
		case ParentRef:
			if len(out) > 0 && out[len(out)-1] != ParentRef {
				out = out[:len(out)-1]
			} else if !p.absolute {
				out = append(out, ParentRef)
			}
		default:
			out = append(out, c)
		}
	}
	return Path{components: out, absolute: p.absolute}
}

// Parent drops the last component. The parent of an empty path is "..",
// keeping the absolute flag.
func (p Path) Parent() Path {
	if len(p.components) == 0 {
		return Path{components: []string{ParentRef}, absolute: p.absolute}
	}
	return Path{components: p.Components()[:len(p.components)-1], absolute: p.absolute}
}

// Join appends other to p. An absolute other replaces p entirely, as cd does.
func (p Path) Join(other Path) Path {
	if other.absolute {
		return other
	}
	out := make([]string, 0, len(p.components)+len(other.components))
	out = append(out, p.components...)
	out = append(out, other.components...)
	return Path{components: out, absolute: p.absolute}
}

// Equal compares the absolute flag and the component lists.
func (p Path) Equal(other Path) bool {
	if p.absolute != other.absolute || len(p.components) != len(other.components) {
		return false
	}
	for i := range p.components {
		if p.components[i] != other.components[i] {
			return false
		}
	}
	return true
}

// String renders the path. The empty path renders as "/" when absolute and "." otherwise.
func (p Path) String() string {
	if len(p.components) == 0 {
		if p.absolute {
			return Separator
		}
		return Current
	}
	joined := strings.Join(p.components, Separator)
	if p.absolute {
		return Separator + joined
	}
	return joined
}
