// Package history keeps a bounded log of entered command lines with a
// navigation cursor for arrow-key recall.
package history

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 32

// History holds past command lines, most recent last. The cursor ranges over
// [0, Len()]; Len() is the "no selection" position.
type History struct {
	entries  []string
	capacity int
	cursor   int
}

// New creates an empty history holding at most capacity entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Add records line. Empty lines and repeats of the newest entry are ignored.
// The oldest entry is evicted when the history is full. Navigation is reset
// in every case.
func (h *History) Add(line string) {
	defer h.ResetNavigation()
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	if len(h.entries) == h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, line)
}

// Previous moves the cursor one entry back and returns it. At the oldest
// entry it keeps returning that entry. An empty history returns "".
func (h *History) Previous() string {
	if len(h.entries) == 0 {
		return ""
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor]
}

// Next moves the cursor one entry forward and returns it. Moving past the
// newest entry returns "", meaning "back to the line being edited".
func (h *History) Next() string {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor < len(h.entries) {
		return h.entries[h.cursor]
	}
	return ""
}

// ResetNavigation moves the cursor to the "no selection" position.
func (h *History) ResetNavigation() {
	h.cursor = len(h.entries)
}

// Navigating reports whether the cursor points at an entry.
func (h *History) Navigating() bool {
	return h.cursor < len(h.entries)
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = h.entries[:0]
	h.cursor = 0
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return h.capacity
}

// Cursor returns the navigation cursor.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
