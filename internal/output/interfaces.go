// Package output renders the line protocol written to the session terminal:
// prompts, command responses and tree listings, all "\r\n" terminated.
// It styles text with lipgloss when the terminal supports colour and falls
// back to plain text otherwise.
package output

// Mode defines how the renderer decides between styled and plain output.
type Mode int

const (
	// ModeAuto styles output when the detected colour profile supports it
	ModeAuto Mode = iota
	// ModeStyled forces styled output
	ModeStyled
	// ModePlain forces plain text, stripping escape sequences from command output
	ModePlain
)

// ParseMode converts a configuration value ("auto", "always", "never") into a Mode.
func ParseMode(s string) Mode {
	switch s {
	case "always", "styled", "true":
		return ModeStyled
	case "never", "plain", "false":
		return ModePlain
	default:
		return ModeAuto
	}
}

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
	// SemanticUser represents the user name in the prompt.
	SemanticUser SemanticType = "user"
	// SemanticPath represents a namespace path.
	SemanticPath SemanticType = "path"
	// SemanticDirectory represents directory names in listings.
	SemanticDirectory SemanticType = "directory"
	// SemanticMasked represents comment-like secondary text such as descriptions.
	SemanticMasked SemanticType = "muted"
)
