package transcript

import (
	"devcli/internal/charstream"
	"devcli/pkg/clitypes"
)

// Session is the part of the service a Runner drives.
type Session interface {
	Activate()
	Service()
	State() clitypes.SessionState
}

// Runner feeds keystrokes into a session through an in-memory stream.
type Runner struct {
	session Session
	stream  *charstream.Buffer
}

// NewRunner creates a runner for session, which must write to stream.
func NewRunner(session Session, stream *charstream.Buffer) *Runner {
	return &Runner{session: session, stream: stream}
}

// Run activates the session if needed, types keys and ticks until the input
// is consumed or the session ends. It returns the raw terminal output.
func (r *Runner) Run(keys string) string {
	if r.session.State() == clitypes.StateInactive {
		r.session.Activate()
	}
	r.stream.Feed(keys)
	for r.stream.Available() && r.session.State() != clitypes.StateInactive {
		r.session.Service()
	}
	return r.stream.TakeOutput()
}
