package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"devcli/pkg/clitypes"
)

// LineBreak terminates every line written to the terminal.
const LineBreak = "\r\n"

// DefaultIndent is the indent unit used when none is configured.
const DefaultIndent = "  "

// Renderer writes the terminal line protocol to w.
type Renderer struct {
	writer   io.Writer
	indent   string
	mode     Mode
	testMode bool
	styles   map[SemanticType]lipgloss.Style
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, options ...Option) *Renderer {
	r := &Renderer{
		writer: w,
		indent: DefaultIndent,
		mode:   ModeAuto,
		styles: defaultStyles(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Indent returns the indent unit.
func (r *Renderer) Indent() string {
	return r.indent
}

// IsStyled reports whether text is rendered with colour.
func (r *Renderer) IsStyled() bool {
	if r.testMode {
		return false
	}
	switch r.mode {
	case ModeStyled:
		return true
	case ModePlain:
		return false
	default:
		return colorSupported()
	}
}

// Style renders text with the style of semantic, or returns it unchanged in plain mode.
func (r *Renderer) Style(semantic SemanticType, text string) string {
	if !r.IsStyled() || text == "" {
		return text
	}
	style, ok := r.styles[semantic]
	if !ok {
		return text
	}
	return style.Render(text)
}

// Prompt formats "username@/current/path > ".
func (r *Renderer) Prompt(username, path string) string {
	return r.Style(SemanticUser, username) + "@" + r.Style(SemanticPath, path) + " > "
}

// Write writes text as is.
func (r *Renderer) Write(text string) {
	_, _ = io.WriteString(r.writer, text)
}

// Line writes text followed by a line break. Embedded "\n" become "\r\n".
func (r *Renderer) Line(text string) {
	r.Write(toCRLF(text) + LineBreak)
}

// ErrorLine writes text styled as an error.
func (r *Renderer) ErrorLine(text string) {
	r.Line(r.Style(SemanticError, text))
}

// Response writes a command response according to its presentation hints.
// Non-success responses are styled as errors. In plain mode escape sequences
// emitted by commands are stripped.
func (r *Renderer) Response(resp clitypes.Response) {
	if resp.Message == "" {
		return
	}
	message := strings.TrimRight(resp.Message, "\r\n")
	if !r.IsStyled() {
		message = ansi.Strip(message)
	}

	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if resp.Indent && line != "" {
			line = r.indent + line
		}
		if !resp.IsSuccess() {
			line = r.Style(SemanticError, line)
		}
		lines[i] = line
	}

	text := strings.Join(lines, LineBreak)
	if resp.Newline {
		text += LineBreak
	}
	r.Write(text)
}

// Entry is one line of a tree listing.
type Entry struct {
	Name        string
	Depth       int
	Directory   bool
	Description string
}

// Listing writes one line per entry, indented by depth and suffixed with "/"
// for directories. Descriptions, when present, follow after " - ".
func (r *Renderer) Listing(entries []Entry) {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.Repeat(r.indent, e.Depth))
		if e.Directory {
			b.WriteString(r.Style(SemanticDirectory, e.Name+"/"))
		} else {
			b.WriteString(e.Name)
		}
		if e.Description != "" {
			b.WriteString(" - ")
			b.WriteString(r.Style(SemanticMasked, e.Description))
		}
		b.WriteString(LineBreak)
	}
	r.Write(b.String())
}

func toCRLF(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", LineBreak)
}
