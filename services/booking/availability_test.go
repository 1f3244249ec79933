package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day, err := f.resolver.ResolveDaySchedule(ctx, monday)
	require.NoError(t, err)
	assert.True(t, day.IsWorkingDay)
	assert.Equal(t, "monday", day.Weekday)
	assert.Equal(t, []string{"10:00", "11:00", "12:30", "13:30", "14:30", "15:30"}, day.NominalSlots)

	day, err = f.resolver.ResolveDaySchedule(ctx, sunday)
	require.NoError(t, err)
	assert.False(t, day.IsWorkingDay)
	assert.Empty(t, day.NominalSlots)
}

func TestResolveInitializesSettingsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.resolver.ResolveDaySchedule(ctx, monday)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, f.settingsRepo.Count())

	a, err := f.settings.GetSettings(ctx)
	require.NoError(t, err)
	b, err := f.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.Version, b.Version)
	assert.Equal(t, a.CreatedAt.Unix(), b.CreatedAt.Unix())
}

func TestNonWorkingDayIgnoresStoredLabels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	off := false
	_, err := f.settings.UpdateDay(ctx, "monday", modelsDay(off, "10:00", "11:00"))
	require.NoError(t, err)

	day, err := f.resolver.ResolveDaySchedule(ctx, monday)
	require.NoError(t, err)
	assert.False(t, day.IsWorkingDay)
	assert.Empty(t, day.NominalSlots)
}

func TestAvailabilityWithoutBlock(t *testing.T) {
	f := newFixture(t)

	a, err := f.engine.ComputeAvailableSlots(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, mondayStr, a.Date)
	assert.True(t, a.IsWorkingDay)
	assert.False(t, a.IsFullDayBlocked)
	assert.Equal(t, a.AllDaySlots, a.AvailableSlots)
	assert.Empty(t, a.BlockedSlots)
}

func TestAvailabilitySubtractsPartialBlockCanonically(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "staff training", []string{"11:00", "1:30 PM"})
	require.NoError(t, err)

	a, err := f.engine.ComputeAvailableSlots(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:30", "14:30", "15:30"}, a.AvailableSlots)
	assert.Equal(t, []string{"11:00", "1:30 PM"}, a.BlockedSlots)
	assert.Equal(t, "staff training", a.Reason)
	assert.False(t, a.IsFullDayBlocked)
}

func TestAvailabilityFullDayBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "holiday", nil)
	require.NoError(t, err)

	a, err := f.engine.ComputeAvailableSlots(ctx, monday)
	require.NoError(t, err)
	assert.True(t, a.IsFullDayBlocked)
	assert.Empty(t, a.AvailableSlots)
	assert.Equal(t, a.AllDaySlots, a.BlockedSlots)
	assert.Equal(t, "holiday", a.Reason)
}

func TestAvailabilityNonWorkingDayShortCircuits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, sundayStr, "closed", nil)
	require.NoError(t, err)

	a, err := f.engine.ComputeAvailableSlots(ctx, sunday)
	require.NoError(t, err)
	assert.False(t, a.IsWorkingDay)
	assert.False(t, a.IsFullDayBlocked)
	assert.Empty(t, a.AvailableSlots)
	assert.Empty(t, a.BlockedSlots)
	assert.Equal(t, "Not a working day", a.Message)
	assert.Empty(t, a.Reason)
}

func TestAvailabilityIgnoresInactiveBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", nil)
	require.NoError(t, err)
	_, err = f.blocked.ToggleActive(ctx, b.ID)
	require.NoError(t, err)

	a, err := f.engine.ComputeAvailableSlots(ctx, monday)
	require.NoError(t, err)
	assert.False(t, a.IsFullDayBlocked)
	assert.Len(t, a.AvailableSlots, 6)
}
