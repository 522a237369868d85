package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devcli/internal/cmdpath"
	"devcli/internal/testutils"
	"devcli/internal/tree"
)

func TestResolve(t *testing.T) {
	sample := testutils.NewSampleTree()
	r := New(sample.Tree)

	tests := []struct {
		name    string
		path    string
		current string
		want    string
		ok      bool
	}{
		{name: "empty resolves to start", path: "", current: "/dir1", want: "/dir1", ok: true},
		{name: "root", path: "/", current: "/dir1/test", want: "/", ok: true},
		{name: "absolute", path: "/dir1/test/test1", current: "/dir2", want: "/dir1/test/test1", ok: true},
		{name: "relative", path: "test/test2", current: "/dir1", want: "/dir1/test/test2", ok: true},
		{name: "dot", path: "./test", current: "/dir1", want: "/dir1/test", ok: true},
		{name: "parent", path: "..", current: "/dir1/test", want: "/dir1", ok: true},
		{name: "parent at root stays", path: "../../..", current: "/", want: "/", ok: true},
		{name: "no underflow", path: "/dir1/../../dir2", current: "/dir1/test", want: "/dir2", ok: true},
		{name: "relative underflow", path: "../../../dir2", current: "/dir1/test", want: "/dir2", ok: true},
		{name: "command", path: "/dir2/echo", current: "/", want: "/dir2/echo", ok: true},
		{name: "missing", path: "nope", current: "/", ok: false},
		{name: "through command", path: "/dir2/echo/x", current: "/", ok: false},
		{name: "collapsed separators", path: "//dir1///test", current: "/dir2", want: "/dir1/test", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := sample.MustID(tt.current)
			got, ok := r.Resolve(cmdpath.Parse(tt.path), current)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, r.AbsolutePath(got).String())
			}
		})
	}
}

func TestResolve_UnknownStart(t *testing.T) {
	sample := testutils.NewSampleTree()
	r := New(sample.Tree)
	_, ok := r.Resolve(cmdpath.Parse("dir1"), tree.NodeID(1000))
	assert.False(t, ok)
}

// Every reachable node resolves back to itself from its absolute path.
func TestResolve_AbsolutePathRoundTrip(t *testing.T) {
	sample := testutils.NewSampleTree()
	r := New(sample.Tree)

	count := 0
	sample.Tree.Traverse(tree.RootID, func(n *tree.Node, _ int) bool {
		count++
		abs := r.AbsolutePath(n.ID())
		require.True(t, abs.IsAbsolute())
		got, ok := r.Resolve(abs, tree.RootID)
		require.True(t, ok, "path %s", abs)
		assert.Equal(t, n.ID(), got, "path %s", abs)

		fromElsewhere, ok := r.Resolve(abs, sample.MustID("/dir1/test"))
		require.True(t, ok)
		assert.Equal(t, n.ID(), fromElsewhere)
		return true
	})
	assert.Equal(t, sample.Tree.Len(), count)
}

func TestAbsolutePath(t *testing.T) {
	sample := testutils.NewSampleTree()
	r := New(sample.Tree)
	assert.Equal(t, "/", r.AbsolutePath(tree.RootID).String())
	assert.Equal(t, "/dir1/test/testing", r.AbsolutePath(sample.MustID("/dir1/test/testing")).String())
}
