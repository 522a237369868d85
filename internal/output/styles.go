package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// colorSupported reports whether the detected terminal profile can show colour.
func colorSupported() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// defaultStyles maps semantic types to lipgloss styles.
func defaultStyles() map[SemanticType]lipgloss.Style {
	return map[SemanticType]lipgloss.Style{
		SemanticInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		SemanticError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		SemanticUser:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		SemanticPath:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		SemanticDirectory: lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		SemanticMasked:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
