package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devcli/pkg/clitypes"
)

type stubCommand struct {
	description string
}

func (s *stubCommand) Execute(_ []string) clitypes.Response {
	return clitypes.Success("ok")
}

func (s *stubCommand) Description() string { return s.description }

func (s *stubCommand) Usage() string { return "" }

func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tr := New()
	ids := map[string]NodeID{}
	ids["dir1"] = tr.MustAddDirectory(RootID, "dir1", clitypes.AccessUser)
	ids["dir2"] = tr.MustAddDirectory(RootID, "dir2", clitypes.AccessUser)
	ids["admin"] = tr.MustAddDirectory(RootID, "admin", clitypes.AccessAdmin)
	ids["sub"] = tr.MustAddDirectory(ids["dir1"], "sub", clitypes.AccessUser)
	ids["cmd"] = tr.MustAddCommand(ids["sub"], "cmd", clitypes.AccessUser, &stubCommand{description: "a command"})
	ids["reboot"] = tr.MustAddCommand(ids["admin"], "reboot", clitypes.AccessAdmin, &stubCommand{})
	return tr, ids
}

func TestNew_HasRoot(t *testing.T) {
	tr := New()
	root := tr.Root()
	require.NotNil(t, root)
	assert.Equal(t, RootID, root.ID())
	assert.True(t, root.IsRoot())
	assert.True(t, root.IsDirectory())
	assert.Equal(t, NoNode, root.Parent())
	assert.Equal(t, 1, tr.Len())
}

func TestAdd_DuplicateName(t *testing.T) {
	tr := New()
	_, err := tr.AddDirectory(RootID, "dir", clitypes.AccessUser)
	require.NoError(t, err)

	_, err = tr.AddDirectory(RootID, "dir", clitypes.AccessAdmin)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = tr.AddCommand(RootID, "dir", clitypes.AccessUser, &stubCommand{})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestAdd_SameNameInDifferentDirectories(t *testing.T) {
	tr := New()
	a := tr.MustAddDirectory(RootID, "a", clitypes.AccessUser)
	b := tr.MustAddDirectory(RootID, "b", clitypes.AccessUser)
	assert.NotPanics(t, func() {
		tr.MustAddDirectory(a, "x", clitypes.AccessUser)
		tr.MustAddDirectory(b, "x", clitypes.AccessUser)
	})
}

func TestMustAdd_PanicsOnConfigurationError(t *testing.T) {
	tr := New()
	tr.MustAddDirectory(RootID, "dir", clitypes.AccessUser)
	assert.Panics(t, func() {
		tr.MustAddDirectory(RootID, "dir", clitypes.AccessUser)
	})
	assert.Panics(t, func() {
		tr.MustAddCommand(RootID, "dir", clitypes.AccessUser, &stubCommand{})
	})
}

func TestAdd_BelowCommand(t *testing.T) {
	tr := New()
	cmd := tr.MustAddCommand(RootID, "cmd", clitypes.AccessUser, &stubCommand{})
	_, err := tr.AddDirectory(cmd, "x", clitypes.AccessUser)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestAdd_InvalidNames(t *testing.T) {
	tr := New()
	for _, name := range []string{"", ".", "..", "a/b", "a b"} {
		_, err := tr.AddDirectory(RootID, name, clitypes.AccessUser)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestAdd_NilCommand(t *testing.T) {
	tr := New()
	_, err := tr.AddCommand(RootID, "cmd", clitypes.AccessUser, nil)
	assert.Error(t, err)
}

func TestAdd_UnknownParent(t *testing.T) {
	tr := New()
	_, err := tr.AddDirectory(NodeID(42), "x", clitypes.AccessUser)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestFreeze(t *testing.T) {
	tr := New()
	tr.Freeze()
	assert.True(t, tr.Frozen())
	_, err := tr.AddDirectory(RootID, "late", clitypes.AccessUser)
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestSharedCommandValue(t *testing.T) {
	shared := &stubCommand{description: "shared"}
	tr := New()
	a := tr.MustAddCommand(RootID, "a", clitypes.AccessUser, shared)
	d := tr.MustAddDirectory(RootID, "d", clitypes.AccessUser)
	b := tr.MustAddCommand(d, "b", clitypes.AccessUser, shared)

	assert.Same(t, tr.Node(a).Command(), tr.Node(b).Command())
	assert.Equal(t, "shared", tr.Node(b).Description())
}

func TestFindNode(t *testing.T) {
	tr, ids := buildSample(t)

	tests := []struct {
		name       string
		from       NodeID
		components []string
		want       NodeID
		ok         bool
	}{
		{name: "empty returns start", from: RootID, components: nil, want: RootID, ok: true},
		{name: "direct child", from: RootID, components: []string{"dir1"}, want: ids["dir1"], ok: true},
		{name: "nested command", from: RootID, components: []string{"dir1", "sub", "cmd"}, want: ids["cmd"], ok: true},
		{name: "relative start", from: ids["dir1"], components: []string{"sub"}, want: ids["sub"], ok: true},
		{name: "missing", from: RootID, components: []string{"nope"}, ok: false},
		{name: "through command", from: RootID, components: []string{"dir1", "sub", "cmd", "x"}, ok: false},
		{name: "dot not interpreted", from: RootID, components: []string{".."}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.FindNode(tt.from, tt.components)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChildren_InsertionOrder(t *testing.T) {
	tr, _ := buildSample(t)
	var names []string
	for _, n := range tr.Children(RootID) {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"dir1", "dir2", "admin"}, names)
}

func TestLineage(t *testing.T) {
	tr, ids := buildSample(t)
	assert.Equal(t, []NodeID{RootID, ids["dir1"], ids["sub"], ids["cmd"]}, tr.Lineage(ids["cmd"]))
	assert.Equal(t, []NodeID{RootID}, tr.Lineage(RootID))
	assert.Empty(t, tr.Lineage(NodeID(99)))
}

func TestAccessible(t *testing.T) {
	tr, ids := buildSample(t)
	assert.True(t, tr.Accessible(ids["cmd"], clitypes.AccessUser))
	assert.False(t, tr.Accessible(ids["admin"], clitypes.AccessUser))
	assert.False(t, tr.Accessible(ids["reboot"], clitypes.AccessUser))
	assert.True(t, tr.Accessible(ids["reboot"], clitypes.AccessAdmin))
	assert.False(t, tr.Accessible(NodeID(99), clitypes.AccessAdmin))
}

func TestTraverse_PreOrderWithDepth(t *testing.T) {
	tr, _ := buildSample(t)

	type visit struct {
		name  string
		depth int
	}
	var visits []visit
	tr.Traverse(RootID, func(n *Node, depth int) bool {
		visits = append(visits, visit{n.Name(), depth})
		return true
	})

	assert.Equal(t, []visit{
		{"", 0},
		{"dir1", 1},
		{"sub", 2},
		{"cmd", 3},
		{"dir2", 1},
		{"admin", 1},
		{"reboot", 2},
	}, visits)
}

func TestTraverse_SkipSubtree(t *testing.T) {
	tr, _ := buildSample(t)

	var names []string
	tr.Traverse(RootID, func(n *Node, _ int) bool {
		if !clitypes.AccessUser.Allows(n.AccessLevel()) {
			return false
		}
		names = append(names, n.Name())
		return true
	})

	assert.Equal(t, []string{"", "dir1", "sub", "cmd", "dir2"}, names)
}
