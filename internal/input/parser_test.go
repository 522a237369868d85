package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devcli/internal/charstream"
	"devcli/internal/history"
	"devcli/internal/testutils"
	"devcli/pkg/clitypes"
)

func newParser(opts ...Option) (*Parser, *charstream.Buffer) {
	stream := charstream.NewBuffer()
	return NewParser(stream, history.New(8), opts...), stream
}

// pollAll feeds input and collects every request produced.
func pollAll(p *Parser, stream *charstream.Buffer, state clitypes.SessionState, input string) []Request {
	stream.Feed(input)
	var requests []Request
	for {
		req, ok := p.Poll(state)
		if !ok {
			return requests
		}
		requests = append(requests, req)
	}
}

func TestPoll_NoInput(t *testing.T) {
	p, _ := newParser()
	_, ok := p.Poll(clitypes.StateLoggedIn)
	assert.False(t, ok)
}

func TestPoll_PartialInputIsBuffered(t *testing.T) {
	p, stream := newParser()

	assert.Empty(t, pollAll(p, stream, clitypes.StateLoggedIn, "dir"))
	assert.Equal(t, "dir", p.Buffer())

	requests := pollAll(p, stream, clitypes.StateLoggedIn, "1/test"+testutils.KeyEnter)
	require.Len(t, requests, 1)
	assert.Equal(t, KindAction, requests[0].Kind)
	assert.Equal(t, "dir1/test", requests[0].Path.String())
	assert.Equal(t, "", p.Buffer())
}

func TestPoll_LoginMasksPassword(t *testing.T) {
	p, stream := newParser()

	requests := pollAll(p, stream, clitypes.StateLoggedOut, "admin:admin123"+testutils.KeyEnter)

	require.Len(t, requests, 1)
	assert.Equal(t, KindLogin, requests[0].Kind)
	assert.Equal(t, "admin", requests[0].Username)
	assert.Equal(t, "admin123", requests[0].Password)
	assert.Equal(t, "admin:********\r\n", stream.Output())
	assert.Equal(t, 0, p.History().Len(), "logins are never recorded")
}

func TestPoll_MaskingFollowsDelimiter(t *testing.T) {
	p, stream := newParser()

	pollAll(p, stream, clitypes.StateLoggedOut, "a:b"+testutils.KeyBackspace+testutils.KeyBackspace+"c")

	assert.Equal(t, "ac", p.Buffer())
	assert.Equal(t, "a:*\b \b\b \bc", stream.Output(), "echo is verbatim again once ':' is erased")

	stream.TakeOutput()
	pollAll(p, stream, clitypes.StateLoggedOut, ":xy")
	assert.Equal(t, ":**", stream.Output())
}

func TestPoll_InvalidLogin(t *testing.T) {
	for _, line := range []string{"admin", ":secret", "admin:"} {
		t.Run(line, func(t *testing.T) {
			p, stream := newParser()
			requests := pollAll(p, stream, clitypes.StateLoggedOut, line+testutils.KeyEnter)
			require.Len(t, requests, 1)
			assert.Equal(t, KindInvalidLogin, requests[0].Kind)
		})
	}
}

func TestPoll_EchoesWhenLoggedIn(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "a:b")
	assert.Equal(t, "a:b", stream.Output())
}

func TestPoll_EmptyLineIsSwallowed(t *testing.T) {
	redraws := 0
	p, stream := newParser(WithRedraw(func() { redraws++ }))

	requests := pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyEnter+"   "+testutils.KeyEnter)

	assert.Empty(t, requests)
	assert.Equal(t, 2, redraws)
	assert.Equal(t, "\r\n   \r\n", stream.Output())
	assert.Equal(t, 0, p.History().Len())
}

func TestPoll_CRLFIsOneEnter(t *testing.T) {
	redraws := 0
	p, stream := newParser(WithRedraw(func() { redraws++ }))

	requests := pollAll(p, stream, clitypes.StateLoggedIn, "ls\r\n\n")

	require.Len(t, requests, 1)
	assert.Equal(t, 1, redraws, "the lone LF is an empty line")
}

func TestPoll_Backspace(t *testing.T) {
	p, stream := newParser()

	pollAll(p, stream, clitypes.StateLoggedIn, "abc"+testutils.KeyBackspace+"\x08")
	assert.Equal(t, "a", p.Buffer())
	assert.Equal(t, "abc\b \b\b \b", stream.Output())

	stream.TakeOutput()
	pollAll(p, stream, clitypes.StateLoggedIn, "\x7f\x7f")
	assert.Equal(t, "", p.Buffer())
	assert.Equal(t, "\b \b", stream.Output(), "nothing erased past the start of the line")
}

func TestPoll_TabKeepsBuffer(t *testing.T) {
	p, stream := newParser()

	requests := pollAll(p, stream, clitypes.StateLoggedIn, "dir"+testutils.KeyTab)

	require.Len(t, requests, 1)
	assert.Equal(t, KindTabCompletion, requests[0].Kind)
	assert.Equal(t, TriggerTab, requests[0].Trigger)
	assert.Equal(t, "dir", requests[0].Line)
	assert.Equal(t, "dir", p.Buffer())
}

func TestPoll_TabIgnoredWhenLoggedOut(t *testing.T) {
	p, stream := newParser()
	requests := pollAll(p, stream, clitypes.StateLoggedOut, "adm"+testutils.KeyTab)
	assert.Empty(t, requests)
	assert.Equal(t, "adm", p.Buffer())
}

func TestPoll_IgnoresOtherControlBytes(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "a\x01\x02b")
	assert.Equal(t, "ab", p.Buffer())
}

func TestPoll_InactiveDiscardsInput(t *testing.T) {
	p, stream := newParser()
	requests := pollAll(p, stream, clitypes.StateInactive, "ls"+testutils.KeyEnter)
	assert.Empty(t, requests)
	assert.Equal(t, "", p.Buffer())
	assert.Equal(t, "", stream.Output())
}

func TestPoll_MaxLine(t *testing.T) {
	p, stream := newParser(WithMaxLine(4))
	pollAll(p, stream, clitypes.StateLoggedIn, "abcdef")
	assert.Equal(t, "abcd", p.Buffer())
	assert.Equal(t, "abcd", stream.Output())
}

func TestPoll_EnterRecordsHistory(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "ls"+testutils.KeyEnter+"ls"+testutils.KeyEnter+"cd"+testutils.KeyEnter)
	assert.Equal(t, []string{"ls", "cd"}, p.History().Entries())
	assert.False(t, p.History().Navigating())
}

func TestPoll_HistoryNavigation(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "first"+testutils.KeyEnter+"second"+testutils.KeyEnter)

	pollAll(p, stream, clitypes.StateLoggedIn, "dra")
	stream.TakeOutput()

	requests := pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp)
	require.Len(t, requests, 1)
	assert.Equal(t, KindHistoryNavigation, requests[0].Kind)
	assert.Equal(t, TriggerArrowUp, requests[0].Trigger)
	assert.Equal(t, "second", p.Buffer())
	assert.Equal(t, "\b \b\b \b\b \bsecond", stream.TakeOutput())

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp)
	assert.Equal(t, "first", p.Buffer())

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp)
	assert.Equal(t, "first", p.Buffer(), "stays at the oldest entry")

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyDown)
	assert.Equal(t, "second", p.Buffer())

	requests = pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyDown)
	require.Len(t, requests, 1)
	assert.Equal(t, TriggerArrowDown, requests[0].Trigger)
	assert.Equal(t, "dra", p.Buffer(), "live line restored past the newest entry")

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyDown)
	assert.Equal(t, "dra", p.Buffer())
}

func TestPoll_EmptyEnterEndsNavigation(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "a"+testutils.KeyEnter+"b"+testutils.KeyEnter+"c"+testutils.KeyEnter)

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp+testutils.KeyUp)
	require.Equal(t, "b", p.Buffer())

	requests := pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyBackspace+testutils.KeyEnter)
	assert.Empty(t, requests)
	assert.False(t, p.History().Navigating())

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp)
	assert.Equal(t, "c", p.Buffer(), "navigation restarts from the newest entry")

	pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyDown)
	assert.Equal(t, "", p.Buffer(), "no stale live line is restored")
}

func TestPoll_HistoryRecallThenEnter(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "dir1/status"+testutils.KeyEnter)

	requests := pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp+testutils.KeyEnter)

	require.Len(t, requests, 2)
	assert.Equal(t, KindAction, requests[1].Kind)
	assert.Equal(t, "dir1/status", requests[1].Path.String())
	assert.Equal(t, 1, p.History().Len())
}

func TestPoll_HistoryEmpty(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "abc")

	requests := pollAll(p, stream, clitypes.StateLoggedIn, testutils.KeyUp)
	require.Len(t, requests, 1)
	assert.Equal(t, "abc", p.Buffer())
}

func TestPoll_EscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		state clitypes.SessionState
		input string
	}{
		{name: "left", state: clitypes.StateLoggedIn, input: testutils.KeyLeft},
		{name: "right", state: clitypes.StateLoggedIn, input: testutils.KeyRight},
		{name: "unknown", state: clitypes.StateLoggedIn, input: "\x1b[Z"},
		{name: "not CSI", state: clitypes.StateLoggedIn, input: "\x1bOA"},
		{name: "arrows logged out", state: clitypes.StateLoggedOut, input: testutils.KeyUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stream := newParser()
			requests := pollAll(p, stream, tt.state, tt.input)
			assert.Empty(t, requests)
			assert.Equal(t, "", p.Buffer(), "sequence bytes never reach the buffer")
			assert.Equal(t, "", stream.Output())
		})
	}
}

func TestPoll_EscapeSplitAcrossPolls(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "ls"+testutils.KeyEnter)

	assert.Empty(t, pollAll(p, stream, clitypes.StateLoggedIn, "\x1b"))
	assert.Empty(t, pollAll(p, stream, clitypes.StateLoggedIn, "["))
	requests := pollAll(p, stream, clitypes.StateLoggedIn, "A")
	require.Len(t, requests, 1)
	assert.Equal(t, "ls", p.Buffer())
}

func TestInsert(t *testing.T) {
	p, stream := newParser(WithMaxLine(6))
	pollAll(p, stream, clitypes.StateLoggedIn, "di")
	p.Insert("r1/xyz")
	assert.Equal(t, "dir1/x", p.Buffer())
	assert.Equal(t, "dir1/x", stream.Output())
}

func TestReset(t *testing.T) {
	p, stream := newParser()
	pollAll(p, stream, clitypes.StateLoggedIn, "abc\x1b")
	p.Reset()
	assert.Equal(t, "", p.Buffer())

	requests := pollAll(p, stream, clitypes.StateLoggedIn, "[A")
	assert.Empty(t, requests, "escape state was discarded")
	assert.Equal(t, "[A", p.Buffer())
}
