package service

import (
	"fmt"
	"strings"

	"devcli/internal/cmdpath"
	"devcli/internal/input"
	"devcli/internal/logger"
	"devcli/internal/output"
	"devcli/internal/tree"
	"devcli/pkg/clitypes"
)

// User-facing messages.
const (
	msgInvalidPath   = "Invalid path"
	msgAccessDenied  = "Access denied"
	msgTrailingSlash = "A path ending in '/' cannot take arguments"
	msgNotDirectory  = "Not a directory"
)

func (s *Service) handleAction(req input.Request) {
	if req.Err != nil {
		s.logger.Debug("Rejected command line", "error", req.Err)
		s.respond(clitypes.NewResponse(msgTrailingSlash, clitypes.StatusInvalidArguments))
		return
	}

	if !req.Path.IsAbsolute() && req.Path.Len() == 1 {
		if cmd, ok := s.globals.Get(req.Path.First()); ok {
			s.logger.Debug("Global command", "name", cmd.name, "args", req.Args)
			cmd.run(s, req.Args)
			return
		}
	}

	id, ok := s.lookup(req.Path)
	if !ok {
		return
	}

	node := s.tree.Node(id)
	if node.IsDirectory() {
		s.current = id
		s.logger.Debug("Changed directory", "path", s.CurrentDirectory().String())
		s.showPrompt()
		return
	}

	logger.CommandExecution(s.resolver.AbsolutePath(id).String(), req.Args)
	s.respond(node.Command().Execute(req.Args))
}

// lookup resolves p against the current directory and applies the access
// check, reporting failures to the user.
func (s *Service) lookup(p cmdpath.Path) (tree.NodeID, bool) {
	id, ok := s.resolver.Resolve(p, s.current)
	if !ok {
		s.respond(clitypes.NewResponse(msgInvalidPath, clitypes.StatusInvalidPath))
		return tree.NoNode, false
	}
	if !s.tree.Accessible(id, s.user.AccessLevel) {
		s.logger.Warn("Access denied", "user", s.user.Username, "path", s.resolver.AbsolutePath(id).String())
		s.respond(clitypes.NewResponse(msgAccessDenied, clitypes.StatusAccessDenied))
		return tree.NoNode, false
	}
	return id, true
}

func (s *Service) respond(resp clitypes.Response) {
	s.renderer.Response(resp)
	if resp.ShowPrompt {
		s.showPrompt()
	}
}

// handleCompletion completes the edit buffer in place. Leading spaces are
// ignored; lines with a space after the path are argument input and left alone.
func (s *Service) handleCompletion(req input.Request) {
	line := strings.TrimLeft(req.Line, " ")
	if strings.Contains(line, " ") {
		return
	}

	result := s.completer.Complete(s.current, line, s.user.AccessLevel)
	if result.Empty() {
		return
	}
	if result.Unique() {
		insert := result.NewCharacters
		if result.IsDirectory {
			insert += cmdpath.Separator
		}
		s.parser.Insert(insert)
		return
	}

	s.parser.Insert(result.NewCharacters)
	s.renderer.Write(output.LineBreak)
	s.renderer.Line(strings.Join(result.AllOptions, s.renderer.Indent()))
	s.showPrompt()
	s.renderer.Write(s.parser.Buffer())
}

func (s *Service) listTree(args []string) {
	if len(args) > 1 {
		s.respond(clitypes.InvalidArguments("usage: tree [path]"))
		return
	}
	from := s.current
	if len(args) == 1 {
		id, ok := s.lookup(cmdpath.Parse(args[0]))
		if !ok {
			return
		}
		from = id
	}
	if !s.tree.Node(from).IsDirectory() {
		s.respond(clitypes.InvalidArguments(msgNotDirectory))
		return
	}

	s.renderer.Listing(s.entries(from, -1, false))
	s.showPrompt()
}

func (s *Service) help(args []string) {
	if len(args) > 1 {
		s.respond(clitypes.InvalidArguments("usage: help [path]"))
		return
	}
	target := s.current
	if len(args) == 1 {
		if cmd, ok := s.globals.Get(args[0]); ok {
			s.respond(clitypes.Success(helpText(cmd.name, cmd.usage, cmd.description)))
			return
		}
		id, ok := s.lookup(cmdpath.Parse(args[0]))
		if !ok {
			return
		}
		target = id
	}

	node := s.tree.Node(target)
	if !node.IsDirectory() {
		s.respond(clitypes.Success(helpText(node.Name(), node.Usage(), node.Description())))
		return
	}

	s.renderer.Listing(s.entries(target, 1, true))
	s.renderer.Line("Global commands:")
	globals := make([]output.Entry, 0, len(s.globals.All()))
	for _, cmd := range s.globals.All() {
		globals = append(globals, output.Entry{Name: usageLine(cmd.name, cmd.usage), Depth: 1, Description: cmd.description})
	}
	s.renderer.Listing(globals)
	s.showPrompt()
}

// entries lists the accessible descendants of dir, at most maxDepth levels
// deep (unbounded when negative). The directory itself is not listed.
func (s *Service) entries(dir tree.NodeID, maxDepth int, describe bool) []output.Entry {
	var list []output.Entry
	level := s.user.AccessLevel
	s.tree.Traverse(dir, func(n *tree.Node, depth int) bool {
		if !level.Allows(n.AccessLevel()) {
			return false
		}
		if depth == 0 {
			return true
		}
		entry := output.Entry{Name: n.Name(), Depth: depth - 1, Directory: n.IsDirectory()}
		if describe {
			entry.Description = n.Description()
		}
		list = append(list, entry)
		return maxDepth < 0 || depth < maxDepth
	})
	return list
}

func usageLine(name, usage string) string {
	if usage == "" {
		return name
	}
	return fmt.Sprintf("%s %s", name, usage)
}

func helpText(name, usage, description string) string {
	text := "usage: " + usageLine(name, usage)
	if description != "" {
		text += "\n" + description
	}
	return text
}
