package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func feed(s *Scanner, code string, start time.Time, step time.Duration) time.Time {
	at := start
	for _, r := range code {
		s.Key(r, at)
		at = at.Add(step)
	}
	return at
}

func TestScanDispatchOnEnter(t *testing.T) {
	s := New(100 * time.Millisecond)
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	at := feed(s, "ASSET-001", start, 5*time.Millisecond)
	code, ok := s.Enter(at)
	assert.True(t, ok)
	assert.Equal(t, "ASSET-001", code)

	// Buffer must be cleared after dispatch.
	code, ok = s.Enter(at.Add(5 * time.Millisecond))
	assert.False(t, ok)
	assert.Empty(t, code)
}

func TestGapStartsNewScan(t *testing.T) {
	s := New(100 * time.Millisecond)
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	at := feed(s, "STALE", start, 5*time.Millisecond)
	// A human pause; the next key belongs to a new scan.
	at = feed(s, "ASSET-002", at.Add(500*time.Millisecond), 5*time.Millisecond)

	code, ok := s.Enter(at)
	assert.True(t, ok)
	assert.Equal(t, "ASSET-002", code)
}

func TestGapBeforeEnterDropsBuffer(t *testing.T) {
	s := New(100 * time.Millisecond)
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	at := feed(s, "ASSET-003", start, 5*time.Millisecond)
	code, ok := s.Enter(at.Add(500 * time.Millisecond))
	assert.False(t, ok, "a late Enter is not part of the scan")
	assert.Empty(t, code)
}

func TestReset(t *testing.T) {
	s := New(100 * time.Millisecond)
	at := feed(s, "ASSE", time.Now(), 5*time.Millisecond)
	s.Reset()
	code, ok := s.Enter(at)
	assert.False(t, ok)
	assert.Empty(t, code)
}
