package testutils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SessionIDGenerator hands out session identifiers. In test mode the ids are
// deterministic: 00000001-0000-4000-8000-000000000001, 00000002-..., and so on.
type SessionIDGenerator struct {
	mu       sync.Mutex
	testMode bool
	counter  uint64
}

// NewSessionIDGenerator creates a generator; testMode selects deterministic output.
func NewSessionIDGenerator(testMode bool) *SessionIDGenerator {
	return &SessionIDGenerator{testMode: testMode}
}

// Next returns the next session identifier.
func (g *SessionIDGenerator) Next() string {
	if !g.testMode {
		return uuid.New().String()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", g.counter, g.counter)
}
