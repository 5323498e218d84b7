// Package scanner turns raw keystrokes into barcode scans. Barcode scanners
// type very fast and finish with Enter, so the state machine accumulates
// characters, treats a long inter-key gap as the start of a new scan, and
// dispatches the buffer on Enter.
package scanner

import (
	"strings"
	"time"
)

// Scanner is the keystroke accumulator: idle until a character arrives,
// accumulating until Enter dispatches or a gap resets it. Not safe for
// concurrent use; feed it from a single event loop.
type Scanner struct {
	gap  time.Duration
	buf  strings.Builder
	last time.Time
}

// New creates a scanner that starts a fresh scan whenever consecutive keys
// are more than gap apart.
func New(gap time.Duration) *Scanner {
	return &Scanner{gap: gap}
}

// touch resets the buffer when the inter-key gap was exceeded.
func (s *Scanner) touch(at time.Time) {
	if !s.last.IsZero() && at.Sub(s.last) > s.gap {
		s.buf.Reset()
	}
	s.last = at
}

// Key feeds one printable character observed at the given time.
func (s *Scanner) Key(r rune, at time.Time) {
	s.touch(at)
	s.buf.WriteRune(r)
}

// Enter terminates the scan. It returns the accumulated code and true when
// anything was buffered; the buffer is cleared either way.
func (s *Scanner) Enter(at time.Time) (string, bool) {
	s.touch(at)
	code := s.buf.String()
	s.buf.Reset()
	return code, code != ""
}

// Pending reports how many characters of the current burst are buffered.
// Callers use it to tell a scan in progress from a lone human keypress.
func (s *Scanner) Pending() int {
	return s.buf.Len()
}

// Reset drops any partial scan, e.g. when focus moves into a form field.
func (s *Scanner) Reset() {
	s.buf.Reset()
	s.last = time.Time{}
}
