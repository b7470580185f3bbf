package earnings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/earnings/store"
	"github.com/warp/wage-engine/payrates"
)

// =============================================================================
// WORKSPACE EDITS
// =============================================================================

func TestWorkspace_ToggleDay(t *testing.T) {
	ws := payrates.DefaultWorkspace()

	// WHEN: Selecting two days
	assert.True(t, ws.ToggleDay(monday))
	assert.True(t, ws.ToggleDay(saturday))

	// THEN: Most recent first, default shift 07-15
	require.Len(t, ws.Days, 2)
	assert.Equal(t, saturday, ws.Days[0].Date)
	assertDecimal(t, 7, ws.Days[1].Start)
	assertDecimal(t, 15, ws.Days[1].End)

	// WHEN: Toggling Monday again
	assert.False(t, ws.ToggleDay(monday))

	// THEN: It is deselected
	require.Len(t, ws.Days, 1)
	assert.Equal(t, -1, ws.IndexOf(monday))
}

func TestWorkspace_ToggleDoesNotAliasClone(t *testing.T) {
	ws := payrates.DefaultWorkspace()
	ws.ToggleDay(monday)
	ws.ToggleDay(saturday)
	snapshot := ws.Clone()

	ws.ToggleDay(saturday)

	assert.Len(t, snapshot.Days, 2)
	assert.Equal(t, saturday, snapshot.Days[0].Date)
}

func TestWorkspace_UpdateTimes(t *testing.T) {
	ws := payrates.DefaultWorkspace()
	ws.ToggleDay(monday)

	require.NoError(t, ws.UpdateTimes(monday, dec(7), dec(23)))
	assertDecimal(t, 4050, ws.Summary().Total)

	err := ws.UpdateTimes(sunday, dec(7), dec(23))
	assert.ErrorIs(t, err, earnings.ErrDayNotSelected)
	assert.True(t, earnings.IsNotFound(err))
}

func TestWorkspace_Clear(t *testing.T) {
	ws := payrates.DefaultWorkspace()
	ws.ToggleDay(monday)

	ws.Clear()

	assert.Empty(t, ws.Days)
	assert.Len(t, ws.Rules, 5)
	assert.True(t, ws.Summary().Total.IsZero())
}

func TestWorkspace_ModeSelectsResolver(t *testing.T) {
	// GIVEN: Saturday 05:00-07:00, which no rule covers
	ws := payrates.DefaultWorkspace()
	ws.Days = []earnings.WorkInterval{earnings.NewWorkInterval(saturday, 5, 7)}
	ws.Rules[0].Multiplier = dec(1.5)

	// THEN: Legacy falls back to the weekday-day multiplier
	assertDecimal(t, 2*225*1.5, ws.Summary().Total)

	// AND: Custom falls back to 1.0
	ws.Mode = earnings.ModeCustom
	assertDecimal(t, 2*225, ws.Summary().Total)
}

func TestParseRateMode(t *testing.T) {
	m, err := earnings.ParseRateMode("")
	require.NoError(t, err)
	assert.Equal(t, earnings.ModeLegacy, m)

	m, err = earnings.ParseRateMode("custom")
	require.NoError(t, err)
	assert.Equal(t, earnings.ModeCustom, m)

	_, err = earnings.ParseRateMode("hourly")
	assert.ErrorIs(t, err, earnings.ErrInvalidMode)
}

// =============================================================================
// MEMORY STORE
// =============================================================================

func TestMemoryStore_SaveLoadReset(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(payrates.DefaultWorkspace())

	ws, err := s.Load(ctx)
	require.NoError(t, err)
	ws.ToggleDay(monday)
	require.NoError(t, s.Save(ctx, ws))

	// Mutating the caller's copy does not leak into the store.
	ws.Rules[0].Name = "changed"

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Days, 1)
	assert.Equal(t, earnings.LabelWeekdayDay, loaded.Rules[0].Name)

	require.NoError(t, s.Reset(ctx))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Days)
}

var _ earnings.WorkspaceStore = (*store.Memory)(nil)
