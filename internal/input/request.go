// Package input turns the raw byte stream of a terminal into discrete
// requests: logins, command lines, tab completions and history navigation.
package input

import (
	"errors"
	"fmt"
	"strings"

	"devcli/internal/cmdpath"
)

// ErrTrailingSlashWithArgs rejects command lines such as "dir/ arg": a path
// ending in a separator names a directory, which takes no arguments.
var ErrTrailingSlashWithArgs = errors.New("path ending in '/' cannot take arguments")

// Trigger is the input event that completed a request.
type Trigger int

const (
	// TriggerEnter is CR or LF
	TriggerEnter Trigger = iota
	// TriggerTab is the tab key
	TriggerTab
	// TriggerArrowUp is ESC [ A
	TriggerArrowUp
	// TriggerArrowDown is ESC [ B
	TriggerArrowDown
	// TriggerArrowRight is ESC [ C
	TriggerArrowRight
	// TriggerArrowLeft is ESC [ D
	TriggerArrowLeft
)

func (t Trigger) String() string {
	switch t {
	case TriggerEnter:
		return "enter"
	case TriggerTab:
		return "tab"
	case TriggerArrowUp:
		return "up"
	case TriggerArrowDown:
		return "down"
	case TriggerArrowRight:
		return "right"
	case TriggerArrowLeft:
		return "left"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Kind classifies a request.
type Kind int

const (
	// KindLogin carries a username and password
	KindLogin Kind = iota
	// KindInvalidLogin marks a login line without ':' or with an empty half
	KindInvalidLogin
	// KindAction carries a command line completed with Enter
	KindAction
	// KindTabCompletion carries the current edit buffer
	KindTabCompletion
	// KindHistoryNavigation reports that the edit buffer was replaced from history
	KindHistoryNavigation
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindInvalidLogin:
		return "invalid_login"
	case KindAction:
		return "action"
	case KindTabCompletion:
		return "tab_completion"
	case KindHistoryNavigation:
		return "history_navigation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request is a fully assembled user intent.
type Request struct {
	Kind     Kind
	Trigger  Trigger
	Line     string       // Raw line, or the edit buffer for tab and history requests
	Username string       // KindLogin only
	Password string       // KindLogin only
	Path     cmdpath.Path // KindAction only
	Args     []string     // KindAction only
	Err      error        // Set when the command line is malformed
}

// ParseLogin splits "username:password" at the first ':'.
func ParseLogin(line string) Request {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 || idx == len(line)-1 {
		return Request{Kind: KindInvalidLogin, Trigger: TriggerEnter, Line: line}
	}
	return Request{
		Kind:     KindLogin,
		Trigger:  TriggerEnter,
		Line:     line,
		Username: line[:idx],
		Password: line[idx+1:],
	}
}

// ParseCommandLine splits line into the path (everything up to the first
// unescaped space, "\ " being a literal space) and whitespace-separated arguments.
func ParseCommandLine(line string) Request {
	req := Request{Kind: KindAction, Trigger: TriggerEnter, Line: line}

	trimmed := strings.TrimLeft(line, " ")
	var token strings.Builder
	i := 0
	for ; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\\' && i+1 < len(trimmed) && trimmed[i+1] == ' ' {
			token.WriteByte(' ')
			i++
			continue
		}
		if c == ' ' {
			break
		}
		token.WriteByte(c)
	}

	pathText := token.String()
	req.Path = cmdpath.Parse(pathText)
	req.Args = strings.Fields(trimmed[i:])
	if strings.HasSuffix(pathText, cmdpath.Separator) && len(req.Args) > 0 {
		req.Err = fmt.Errorf("%q: %w", pathText, ErrTrailingSlashWithArgs)
	}
	return req
}
