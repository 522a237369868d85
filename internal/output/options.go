package output

// Option is a functional option for configuring Renderer instances.
type Option func(*Renderer)

// WithIndent sets the indent unit used for responses and listings.
func WithIndent(unit string) Option {
	return func(r *Renderer) {
		r.indent = unit
	}
}

// WithMode configures the renderer to operate in a specific output mode.
func WithMode(mode Mode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// PlainText forces plain text output.
func PlainText() Option {
	return func(r *Renderer) {
		r.mode = ModePlain
	}
}

// TestMode configures the renderer for deterministic output: plain text that
// a later WithMode cannot switch back to styled.
func TestMode() Option {
	return func(r *Renderer) {
		r.mode = ModePlain
		r.testMode = true
	}
}
