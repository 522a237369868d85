package transcript

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// NormalizationPattern replaces run-dependent output with a placeholder.
type NormalizationPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Normalizer turns raw terminal output into comparable transcript text.
type Normalizer struct {
	patterns []NormalizationPattern
}

// NewNormalizer creates a normalizer with the built-in patterns for values
// that change between runs: uptime, heap figures and potentiometer readings.
func NewNormalizer() *Normalizer {
	return &Normalizer{patterns: []NormalizationPattern{
		{Name: "UPTIME", Pattern: regexp.MustCompile(`(Uptime: )\S+`)},
		{Name: "BYTES", Pattern: regexp.MustCompile(`(Heap (?:in use|free): +)[0-9.]+ [KMGT]?i?B`)},
		{Name: "COUNT", Pattern: regexp.MustCompile(`(Objects: +)[0-9,]+`)},
		{Name: "READING", Pattern: regexp.MustCompile(`(Potmeter: )\d+ \(\d+%\)`)},
	}}
}

// Normalize renders raw terminal output as text: escape sequences are
// removed, erase sequences applied and "\r\n" becomes "\n". Dynamic values
// are replaced by "<NAME>" placeholders.
func (n *Normalizer) Normalize(raw string) string {
	text := applyErase(ansi.Strip(raw))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, p := range n.patterns {
		text = p.Pattern.ReplaceAllString(text, "${1}<"+p.Name+">")
	}
	return text
}

// applyErase replays "\b \b" sequences by dropping the erased byte.
func applyErase(s string) string {
	const erase = "\b \b"
	var out []byte
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], erase) {
			if len(out) > 0 && out[len(out)-1] != '\n' {
				out = out[:len(out)-1]
			}
			i += len(erase)
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}
