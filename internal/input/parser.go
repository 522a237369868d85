package input

import (
	"bytes"

	"github.com/charmbracelet/log"

	"devcli/internal/charstream"
	"devcli/internal/history"
	"devcli/internal/logger"
	"devcli/pkg/clitypes"
)

// Control bytes recognised by the parser.
const (
	keyBackspace = 0x08
	keyTab       = 0x09
	keyLF        = 0x0a
	keyCR        = 0x0d
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// Terminal sequences written back to the user.
const (
	echoNewline = "\r\n"
	echoErase   = "\b \b"
	maskByte    = '*'
)

// DefaultMaxLine bounds the edit buffer.
const DefaultMaxLine = 128

type parserState int

const (
	stateIdle parserState = iota
	stateEscape
)

// Parser is the byte-at-a-time input state machine. It owns the edit buffer
// and drives the command history; it is not safe for concurrent use.
type Parser struct {
	stream  charstream.Stream
	history *history.History
	logger  *log.Logger
	redraw  func()

	buffer  []byte
	maxLine int
	state   parserState
	escape  []byte
	lastCR  bool

	// live holds the line being edited while history entries are shown.
	live string
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxLine bounds the edit buffer; extra printable bytes are dropped.
func WithMaxLine(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLine = n
		}
	}
}

// WithRedraw registers a callback run after an empty line is entered, so the
// owner can show its prompt again.
func WithRedraw(fn func()) Option {
	return func(p *Parser) {
		p.redraw = fn
	}
}

// NewParser creates a parser reading from stream and recording into h.
func NewParser(stream charstream.Stream, h *history.History, opts ...Option) *Parser {
	p := &Parser{
		stream:  stream,
		history: h,
		logger:  logger.NewStyledLogger("Input"),
		maxLine: DefaultMaxLine,
		escape:  make([]byte, 0, 2),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// History returns the command history the parser records into.
func (p *Parser) History() *history.History {
	return p.history
}

// Buffer returns the current edit buffer.
func (p *Parser) Buffer() string {
	return string(p.buffer)
}

// Poll consumes bytes while the stream has them and returns as soon as a
// request is complete. It returns false when input ran out first; partial
// input stays buffered for the next call.
func (p *Parser) Poll(state clitypes.SessionState) (Request, bool) {
	for p.stream.Available() {
		c, ok := p.stream.ReadOne()
		if !ok {
			break
		}
		if req, done := p.consume(c, state); done {
			p.logger.Debug("Request", "kind", req.Kind, "trigger", req.Trigger)
			return req, true
		}
	}
	return Request{}, false
}

// Insert appends text to the edit buffer and echoes it, as if typed.
func (p *Parser) Insert(text string) {
	for i := 0; i < len(text); i++ {
		if len(p.buffer) >= p.maxLine {
			break
		}
		p.buffer = append(p.buffer, text[i])
		p.echo([]byte{text[i]})
	}
}

// Reset discards the edit buffer, any partial escape sequence and the saved live line.
func (p *Parser) Reset() {
	p.buffer = p.buffer[:0]
	p.state = stateIdle
	p.escape = p.escape[:0]
	p.live = ""
	p.lastCR = false
}

func (p *Parser) consume(c byte, state clitypes.SessionState) (Request, bool) {
	if state == clitypes.StateInactive {
		return Request{}, false
	}

	if p.state == stateEscape {
		p.escape = append(p.escape, c)
		if len(p.escape) < 2 {
			return Request{}, false
		}
		p.state = stateIdle
		return p.handleEscape(state)
	}

	// CR LF from a cooked terminal counts as a single Enter.
	if c == keyLF && p.lastCR {
		p.lastCR = false
		return Request{}, false
	}
	p.lastCR = c == keyCR

	switch c {
	case keyCR, keyLF:
		return p.completeLine(state)
	case keyBackspace, keyDelete:
		p.backspace()
	case keyTab:
		if state == clitypes.StateLoggedIn {
			return Request{Kind: KindTabCompletion, Trigger: TriggerTab, Line: p.Buffer()}, true
		}
	case keyEscape:
		p.state = stateEscape
		p.escape = p.escape[:0]
	default:
		if c < 0x20 {
			return Request{}, false
		}
		p.appendPrintable(c, state)
	}
	return Request{}, false
}

func (p *Parser) appendPrintable(c byte, state clitypes.SessionState) {
	if len(p.buffer) >= p.maxLine {
		return
	}
	masked := state == clitypes.StateLoggedOut && bytes.IndexByte(p.buffer, ':') >= 0
	p.buffer = append(p.buffer, c)
	if masked {
		p.echo([]byte{maskByte})
		return
	}
	p.echo([]byte{c})
}

func (p *Parser) backspace() {
	if len(p.buffer) == 0 {
		return
	}
	p.buffer = p.buffer[:len(p.buffer)-1]
	p.echo([]byte(echoErase))
}

func (p *Parser) completeLine(state clitypes.SessionState) (Request, bool) {
	p.echo([]byte(echoNewline))
	if len(bytes.TrimSpace(p.buffer)) == 0 {
		p.buffer = p.buffer[:0]
		p.live = ""
		p.history.ResetNavigation()
		if p.redraw != nil {
			p.redraw()
		}
		return Request{}, false
	}

	line := string(p.buffer)
	p.buffer = p.buffer[:0]
	p.live = ""

	if state == clitypes.StateLoggedOut {
		return ParseLogin(line), true
	}

	p.history.Add(line)
	p.history.ResetNavigation()
	return ParseCommandLine(line), true
}

func (p *Parser) handleEscape(state clitypes.SessionState) (Request, bool) {
	seq := string(p.escape)
	p.escape = p.escape[:0]
	if state != clitypes.StateLoggedIn {
		return Request{}, false
	}

	switch seq {
	case "[A":
		p.historyPrevious()
		return Request{Kind: KindHistoryNavigation, Trigger: TriggerArrowUp, Line: p.Buffer()}, true
	case "[B":
		p.historyNext()
		return Request{Kind: KindHistoryNavigation, Trigger: TriggerArrowDown, Line: p.Buffer()}, true
	case "[C", "[D":
		// No in-line cursor movement; the keys are consumed.
		return Request{}, false
	default:
		p.logger.Debug("Discarded escape sequence", "sequence", seq)
		return Request{}, false
	}
}

func (p *Parser) historyPrevious() {
	if p.history.Len() == 0 {
		return
	}
	if !p.history.Navigating() {
		p.live = p.Buffer()
	}
	p.replaceBuffer(p.history.Previous())
}

func (p *Parser) historyNext() {
	if !p.history.Navigating() {
		return
	}
	entry := p.history.Next()
	if !p.history.Navigating() {
		entry = p.live
		p.live = ""
	}
	p.replaceBuffer(entry)
}

func (p *Parser) replaceBuffer(text string) {
	var out bytes.Buffer
	for range p.buffer {
		out.WriteString(echoErase)
	}
	if len(text) > p.maxLine {
		text = text[:p.maxLine]
	}
	p.buffer = append(p.buffer[:0], text...)
	out.WriteString(text)
	p.echo(out.Bytes())
}

func (p *Parser) echo(b []byte) {
	_, _ = p.stream.Write(b)
}
