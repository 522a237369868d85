// Package transcript runs keystroke scripts against a service over an
// in-memory stream and compares the resulting terminal transcript with a
// golden file.
package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// noEnter at the end of a script line suppresses the implicit Enter.
const noEnter = `\c`

// ParseScript converts a keystroke script into raw input bytes. Every line is
// typed followed by Enter ("\r") unless it ends in `\c`. Lines starting with
// "#" are comments. Escapes: \t (Tab), \e (ESC), \b (backspace), \r, \\ and
// the arrow keys \up, \down, \left, \right.
func ParseScript(data []byte) (string, error) {
	var keys strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}

		enter := true
		if strings.HasSuffix(line, noEnter) {
			line = strings.TrimSuffix(line, noEnter)
			enter = false
		}

		decoded, err := unescape(line)
		if err != nil {
			return "", fmt.Errorf("script line %d: %w", lineNo, err)
		}
		keys.WriteString(decoded)
		if enter {
			keys.WriteByte('\r')
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return keys.String(), nil
}

var namedKeys = []struct {
	name string
	keys string
}{
	{"up", "\x1b[A"},
	{"down", "\x1b[B"},
	{"right", "\x1b[C"},
	{"left", "\x1b[D"},
	{"t", "\t"},
	{"e", "\x1b"},
	{"b", "\x7f"},
	{"r", "\r"},
	{`\`, `\`},
}

func unescape(line string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] != '\\' {
			out.WriteByte(line[i])
			continue
		}
		rest := line[i+1:]
		matched := false
		for _, k := range namedKeys {
			if strings.HasPrefix(rest, k.name) {
				out.WriteString(k.keys)
				i += len(k.name)
				matched = true
				break
			}
		}
		if !matched {
			return "", fmt.Errorf("unknown escape at column %d", i+1)
		}
	}
	return out.String(), nil
}
