// Package service implements the interactive session: login, command dispatch
// over the namespace tree, tab completion and the global commands.
// A Service is single-threaded and driven by repeated calls to Service.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"devcli/internal/charstream"
	"devcli/internal/cmdpath"
	"devcli/internal/completion"
	"devcli/internal/history"
	"devcli/internal/input"
	"devcli/internal/logger"
	"devcli/internal/output"
	"devcli/internal/resolver"
	"devcli/internal/tree"
	"devcli/internal/users"
	"devcli/pkg/clitypes"
)

// Configuration errors returned by New.
var (
	ErrNoUsers  = errors.New("no users configured")
	ErrNoTree   = errors.New("no command tree configured")
	ErrNoStream = errors.New("no character stream configured")
)

// DefaultWelcome is shown on activation when Config.Welcome is empty.
const DefaultWelcome = "Welcome to devcli"

// LoginPrompt asks for credentials while logged out.
const LoginPrompt = "Login (username:password): "

// Config holds everything a Service needs. Users, Tree and Stream are required.
type Config struct {
	Users       *users.Directory
	Tree        *tree.Tree
	Stream      charstream.Stream
	HistorySize int
	MaxLine     int
	Indent      string
	Color       output.Mode
	// Output holds extra renderer options, applied after Indent and Color.
	Output []output.Option
	Welcome     string
	// SessionID generates the id attached to a login; defaults to random UUIDs.
	SessionID func() string
}

// Service is the top-level session state machine.
type Service struct {
	users     *users.Directory
	tree      *tree.Tree
	stream    charstream.Stream
	resolver  *resolver.Resolver
	completer *completion.Completer
	parser    *input.Parser
	renderer  *output.Renderer
	globals   *globalRegistry
	logger    *log.Logger
	welcome   string
	sessionID func() string

	state   clitypes.SessionState
	user    users.User
	current tree.NodeID
	session string
	exited  bool
}

// New validates cfg and builds an inactive Service.
func New(cfg Config) (*Service, error) {
	if cfg.Users == nil || cfg.Users.Len() == 0 {
		return nil, ErrNoUsers
	}
	if cfg.Tree == nil {
		return nil, ErrNoTree
	}
	if cfg.Stream == nil {
		return nil, ErrNoStream
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = history.DefaultCapacity
	}
	if cfg.Indent == "" {
		cfg.Indent = output.DefaultIndent
	}
	if cfg.Welcome == "" {
		cfg.Welcome = DefaultWelcome
	}
	if cfg.SessionID == nil {
		cfg.SessionID = uuid.NewString
	}

	r := resolver.New(cfg.Tree)
	s := &Service{
		users:     cfg.Users,
		tree:      cfg.Tree,
		stream:    cfg.Stream,
		resolver:  r,
		completer: completion.New(cfg.Tree, r),
		renderer:  output.NewRenderer(cfg.Stream, rendererOptions(cfg)...),
		globals:   defaultGlobals(),
		logger:    logger.NewStyledLogger("Service"),
		welcome:   cfg.Welcome,
		sessionID: cfg.SessionID,
		state:     clitypes.StateInactive,
		current:   tree.RootID,
	}
	s.parser = input.NewParser(cfg.Stream, history.New(cfg.HistorySize),
		input.WithMaxLine(cfg.MaxLine),
		input.WithRedraw(s.showPrompt),
	)
	return s, nil
}

// State returns the current session state.
func (s *Service) State() clitypes.SessionState {
	return s.state
}

// CurrentUser returns the logged-in user, if any.
func (s *Service) CurrentUser() (users.User, bool) {
	return s.user, s.state == clitypes.StateLoggedIn
}

// CurrentDirectory returns the absolute path of the current directory.
func (s *Service) CurrentDirectory() cmdpath.Path {
	return s.resolver.AbsolutePath(s.current)
}

// SessionID returns the id of the current login, or "" when logged out.
func (s *Service) SessionID() string {
	return s.session
}

// Exited reports whether the session was closed with the exit command.
func (s *Service) Exited() bool {
	return s.exited
}

// History returns the command history of the session.
func (s *Service) History() *history.History {
	return s.parser.History()
}

// Prompt returns the prompt for the current state.
func (s *Service) Prompt() string {
	if s.state == clitypes.StateLoggedIn {
		return s.renderer.Prompt(s.user.Username, s.CurrentDirectory().String())
	}
	return LoginPrompt
}

// Activate moves an inactive service to LoggedOut and shows the welcome text
// and login prompt. Activating an active service is a programming error.
func (s *Service) Activate() {
	if s.state != clitypes.StateInactive {
		panic(fmt.Sprintf("service: Activate called in state %s", s.state))
	}
	s.exited = false
	s.parser.Reset()
	s.transition(clitypes.StateLoggedOut)
	s.renderer.Line(s.welcome)
	s.showPrompt()
	s.flush()
}

// Deactivate moves the service to Inactive from any state.
func (s *Service) Deactivate() {
	if s.state == clitypes.StateInactive {
		return
	}
	s.clearSession()
	s.parser.Reset()
	s.transition(clitypes.StateInactive)
	s.flush()
}

// Service runs one tick: it pulls at most one completed request from the
// input parser and dispatches it by state.
func (s *Service) Service() {
	if s.state == clitypes.StateInactive {
		return
	}
	if !s.stream.IsOpen() {
		s.logger.Warn("Stream closed", "error", s.stream.Err())
		s.Deactivate()
		return
	}

	req, ok := s.parser.Poll(s.state)
	if ok {
		s.dispatch(req)
	}
	s.flush()
}

// Run ticks every interval until the service becomes inactive or ctx is done.
// It returns nil when the session ended on its own.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.Service()
		if s.state == clitypes.StateInactive {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Service) dispatch(req input.Request) {
	switch s.state {
	case clitypes.StateLoggedOut:
		s.handleLogin(req)
	case clitypes.StateLoggedIn:
		switch req.Kind {
		case input.KindAction:
			s.handleAction(req)
		case input.KindTabCompletion:
			s.handleCompletion(req)
		case input.KindHistoryNavigation:
			// The parser already replaced the buffer.
		}
	}
}

func (s *Service) handleLogin(req input.Request) {
	if req.Kind == input.KindLogin {
		if u, ok := s.users.Authenticate(req.Username, req.Password); ok {
			s.user = u
			s.current = tree.RootID
			s.session = s.sessionID()
			s.parser.History().ResetNavigation()
			s.transition(clitypes.StateLoggedIn)
			s.logger.Info("Login", "user", u.Username, "level", u.AccessLevel, "session", s.session)
			s.showPrompt()
			return
		}
		s.logger.Warn("Login failed", "user", req.Username)
	}
	s.renderer.ErrorLine("Invalid username or password")
	s.showPrompt()
}

func (s *Service) logout(_ []string) {
	s.logger.Info("Logout", "user", s.user.Username, "session", s.session)
	s.clearSession()
	s.transition(clitypes.StateLoggedOut)
	s.showPrompt()
}

func (s *Service) exit(_ []string) {
	s.logger.Info("Exit", "user", s.user.Username, "session", s.session)
	s.renderer.Line("Bye")
	s.exited = true
	s.Deactivate()
}

// clearSession forgets the user, including the command history, so the next
// login cannot recall it.
func (s *Service) clearSession() {
	s.parser.History().Clear()
	s.user = users.User{}
	s.current = tree.RootID
	s.session = ""
}

func (s *Service) transition(next clitypes.SessionState) {
	s.logger.Debug("State transition", "from", s.state, "state", next)
	s.state = next
}

func (s *Service) showPrompt() {
	s.renderer.Write(s.Prompt())
}

func (s *Service) flush() {
	if err := s.stream.Flush(); err != nil {
		s.logger.Error("Flush failed", "error", err)
	}
}

func rendererOptions(cfg Config) []output.Option {
	opts := []output.Option{output.WithIndent(cfg.Indent), output.WithMode(cfg.Color)}
	return append(opts, cfg.Output...)
}
