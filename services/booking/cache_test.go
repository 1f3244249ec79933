package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"oasis/database/repository/memory"
	"oasis/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pausingBlockedRepo holds the first GetActiveByDate call until release is closed.
type pausingBlockedRepo struct {
	*memory.BlockedDateRepo
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (r *pausingBlockedRepo) GetActiveByDate(ctx context.Context, date time.Time) (*models.BlockedDate, error) {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.BlockedDateRepo.GetActiveByDate(ctx, date)
}

func TestBlockDuringReadDoesNotCacheStaleAvailability(t *testing.T) {
	ctx := context.Background()
	repo := &pausingBlockedRepo{
		BlockedDateRepo: memory.NewBlockedDateRepo(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	cache := NewLocalAvailabilityCache(time.Minute)
	engine := NewAvailabilityEngine(NewScheduleResolver(memory.NewSettingsRepo()), repo, cache)
	blocked := NewBlockedDateService(repo, cache, zap.NewNop())

	done := make(chan *models.Availability)
	go func() {
		a, err := engine.ComputeAvailableSlots(ctx, monday)
		assert.NoError(t, err)
		done <- a
	}()

	<-repo.entered
	_, err := blocked.BlockDate(ctx, mondayStr, "", []string{"10:00"})
	require.NoError(t, err)
	close(repo.release)

	// The in-flight read computed against the old state; it may return it but not cache it.
	stale := <-done
	require.NotNil(t, stale)

	a, err := engine.ComputeAvailableSlots(ctx, monday)
	require.NoError(t, err)
	assert.NotContains(t, a.AvailableSlots, "10:00")
	assert.Equal(t, []string{"10:00"}, a.BlockedSlots)
}

func TestLocalAvailabilityCacheGenerations(t *testing.T) {
	ctx := context.Background()
	c := NewLocalAvailabilityCache(time.Minute)

	gen := c.Generation(ctx, monday)
	c.Set(ctx, monday, gen, &models.Availability{AvailableSlots: []string{"10:00"}})

	a, ok := c.Get(ctx, monday, gen)
	require.True(t, ok)
	assert.Equal(t, []string{"10:00"}, a.AvailableSlots)
	a.AvailableSlots[0] = "mutated"
	a, _ = c.Get(ctx, monday, gen)
	assert.Equal(t, []string{"10:00"}, a.AvailableSlots)

	c.Invalidate(ctx, monday)
	next := c.Generation(ctx, monday)
	assert.NotEqual(t, gen, next)
	_, ok = c.Get(ctx, monday, next)
	assert.False(t, ok)

	// A value computed under the old generation is dropped.
	c.Set(ctx, monday, gen, &models.Availability{AvailableSlots: []string{"10:00"}})
	_, ok = c.Get(ctx, monday, next)
	assert.False(t, ok)

	c.Set(ctx, monday, next, &models.Availability{})
	c.InvalidateAll(ctx)
	assert.NotEqual(t, next, c.Generation(ctx, monday))
	_, ok = c.Get(ctx, monday, next)
	assert.False(t, ok)
}

func TestLocalAvailabilityCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewLocalAvailabilityCache(20 * time.Millisecond)

	gen := c.Generation(ctx, monday)
	c.Set(ctx, monday, gen, &models.Availability{})
	_, ok := c.Get(ctx, monday, gen)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get(ctx, monday, gen)
	assert.False(t, ok)
}
