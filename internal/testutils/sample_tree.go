// Package testutils provides fixtures shared by the devcli package tests.
package testutils

import (
	"fmt"
	"strings"
	"sync"

	"devcli/internal/cmdpath"
	"devcli/internal/tree"
	"devcli/pkg/clitypes"
)

// MockCommand records every invocation and answers with a fixed response.
type MockCommand struct {
	mu          sync.Mutex
	description string
	usage       string
	response    clitypes.Response
	calls       [][]string
}

// NewMockCommand creates a mock that answers with a success response carrying message.
func NewMockCommand(description, message string) *MockCommand {
	return &MockCommand{
		description: description,
		usage:       "[args...]",
		response:    clitypes.Success(message),
	}
}

// WithResponse replaces the canned response.
func (m *MockCommand) WithResponse(r clitypes.Response) *MockCommand {
	m.response = r
	return m
}

// Execute records args and returns the canned response.
func (m *MockCommand) Execute(args []string) clitypes.Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]string, len(args))
	copy(copied, args)
	m.calls = append(m.calls, copied)
	return m.response
}

// Description returns the configured description.
func (m *MockCommand) Description() string { return m.description }

// Usage returns the configured usage.
func (m *MockCommand) Usage() string { return m.usage }

// Calls returns the argument lists of every Execute call.
func (m *MockCommand) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SampleTree is a small namespace used across tests:
//
//	/
//	├── dir1/
//	│   ├── test/
//	│   │   ├── test1/
//	│   │   ├── test2/
//	│   │   └── testing/
//	│   ├── secret/        (admin)
//	│   └── status         command
//	├── dir2/
//	│   └── echo           command
//	└── admin/             (admin)
//	    ├── reboot         command (admin)
//	    └── logs/
type SampleTree struct {
	Tree   *tree.Tree
	Echo   *MockCommand
	Status *MockCommand
	Reboot *MockCommand
	ids    map[string]tree.NodeID
}

// NewSampleTree builds and freezes the sample namespace.
func NewSampleTree() *SampleTree {
	t := tree.New()
	s := &SampleTree{
		Tree:   t,
		Echo:   NewMockCommand("Echo the arguments", "echoed"),
		Status: NewMockCommand("Show status", "all good"),
		Reboot: NewMockCommand("Reboot the device", "rebooting"),
		ids:    map[string]tree.NodeID{"/": tree.RootID},
	}

	dir1 := s.dir(tree.RootID, "/dir1", clitypes.AccessUser)
	test := s.dir(dir1, "/dir1/test", clitypes.AccessUser)
	s.dir(test, "/dir1/test/test1", clitypes.AccessUser)
	s.dir(test, "/dir1/test/test2", clitypes.AccessUser)
	s.dir(test, "/dir1/test/testing", clitypes.AccessUser)
	s.dir(dir1, "/dir1/secret", clitypes.AccessAdmin)
	s.cmd(dir1, "/dir1/status", clitypes.AccessUser, s.Status)

	dir2 := s.dir(tree.RootID, "/dir2", clitypes.AccessUser)
	s.cmd(dir2, "/dir2/echo", clitypes.AccessUser, s.Echo)

	admin := s.dir(tree.RootID, "/admin", clitypes.AccessAdmin)
	s.cmd(admin, "/admin/reboot", clitypes.AccessAdmin, s.Reboot)
	s.dir(admin, "/admin/logs", clitypes.AccessUser)

	t.Freeze()
	return s
}

func (s *SampleTree) dir(parent tree.NodeID, path string, level clitypes.AccessLevel) tree.NodeID {
	id := s.Tree.MustAddDirectory(parent, cmdpath.Parse(path).Last(), level)
	s.ids[path] = id
	return id
}

func (s *SampleTree) cmd(parent tree.NodeID, path string, level clitypes.AccessLevel, c clitypes.Command) tree.NodeID {
	id := s.Tree.MustAddCommand(parent, cmdpath.Parse(path).Last(), level, c)
	s.ids[path] = id
	return id
}

// MustID returns the handle registered for an absolute path and panics for unknown paths.
func (s *SampleTree) MustID(path string) tree.NodeID {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	id, ok := s.ids[path]
	if !ok {
		panic(fmt.Sprintf("sample tree has no node %q", path))
	}
	return id
}
