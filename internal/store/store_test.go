package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", 0)
	require.NoError(t, err)
	return s
}

func TestGetSeedsDefaultOnMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var got []string
	err := s.Get(ctx, "productTypes", &got, []string{"Cameras"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cameras"}, got)

	// The default must now be persisted: a second read with a different
	// default still returns the seeded value.
	var again []string
	err = s.Get(ctx, "productTypes", &again, []string{"Something Else"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cameras"}, again)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type settings struct {
		Password string `json:"password"`
	}
	require.NoError(t, s.Set(ctx, "appPassword", "admin123"))
	require.NoError(t, s.Set(ctx, "appPassword", "changed"))

	var pw string
	require.NoError(t, s.Get(ctx, "appPassword", &pw, "default"))
	assert.Equal(t, "changed", pw)

	// Unrelated keys stay independent.
	require.NoError(t, s.Set(ctx, "misc", settings{Password: "x"}))
	var misc settings
	require.NoError(t, s.Get(ctx, "misc", &misc, settings{}))
	assert.Equal(t, "x", misc.Password)
}

func TestLatencyHonorsCancellation(t *testing.T) {
	s, err := Open(":memory:", 500*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out string
	err = s.Get(ctx, "appPassword", &out, "default")
	assert.ErrorIs(t, err, context.Canceled)

	err = s.Set(ctx, "appPassword", "x")
	assert.ErrorIs(t, err, context.Canceled)
}
