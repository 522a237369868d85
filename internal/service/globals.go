package service

import (
	"fmt"
	"sort"
)

// globalFunc handles a global command for the logged-in session.
type globalFunc func(s *Service, args []string)

// globalCommand is a command available in every directory, ahead of tree lookup.
type globalCommand struct {
	name        string
	usage       string
	description string
	run         globalFunc
}

// globalRegistry manages the global commands by name.
type globalRegistry struct {
	commands map[string]globalCommand
}

func newGlobalRegistry() *globalRegistry {
	return &globalRegistry{commands: make(map[string]globalCommand)}
}

// Register adds a global command. Returns an error if the name is empty or taken.
func (r *globalRegistry) Register(cmd globalCommand) error {
	if cmd.name == "" {
		return fmt.Errorf("global command name cannot be empty")
	}
	if _, exists := r.commands[cmd.name]; exists {
		return fmt.Errorf("global command %s already registered", cmd.name)
	}
	r.commands[cmd.name] = cmd
	return nil
}

// Get retrieves a global command by name.
func (r *globalRegistry) Get(name string) (globalCommand, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// All returns the global commands sorted by name.
func (r *globalRegistry) All() []globalCommand {
	all := make([]globalCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		all = append(all, cmd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}

// defaultGlobals registers logout, exit, tree and help.
func defaultGlobals() *globalRegistry {
	r := newGlobalRegistry()
	for _, cmd := range []globalCommand{
		{name: "logout", description: "End the session and return to the login prompt", run: (*Service).logout},
		{name: "exit", description: "Close the command line", run: (*Service).exit},
		{name: "tree", usage: "[path]", description: "List the namespace below a directory", run: (*Service).listTree},
		{name: "help", usage: "[path]", description: "Describe a command or the contents of a directory", run: (*Service).help},
	} {
		if err := r.Register(cmd); err != nil {
			panic(fmt.Sprintf("failed to register global command: %v", err))
		}
	}
	return r
}
