package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"oasis/database/repository"
	"oasis/models"
	"oasis/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockDateRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, "03/04/2030", "", nil)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date", ve.Field)

	_, err = f.blocked.BlockDate(ctx, mondayStr, "", []string{"25:00"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "timeSlots", ve.Field)

}

func TestBlockSlotsCollapseDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"10:00", "10:00", "13:30", "1:30 PM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "13:30"}, b.BlockedTimeSlots)

	slots := []string{"11:00", "11:00 AM"}
	b, err = f.blocked.Update(ctx, b.ID, models.UpdateBlockedDateRequest{BlockedTimeSlots: &slots})
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00"}, b.BlockedTimeSlots)
	assert.False(t, b.IsFullDayBlocked)

	res, err := f.blocked.BlockDatesBulk(ctx, models.BulkBlockRequest{
		Dates:     []string{"2030-03-11"},
		TimeSlots: []string{"12:30", "12:30 PM"},
	})
	require.NoError(t, err)
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, []string{"12:30"}, res.Blocked[0].BlockedTimeSlots)
}

func TestFullDayBlockTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.blocked.BlockDate(ctx, mondayStr, "holiday", nil)
	require.NoError(t, err)
	assert.True(t, first.IsFullDayBlocked)
	assert.Empty(t, first.BlockedTimeSlots)

	_, err = f.blocked.BlockDate(ctx, mondayStr, "again", nil)
	assert.ErrorIs(t, err, ErrAlreadyBlocked)
	assert.Equal(t, 409, utils.StatusFor(err))

	all, err := f.blocked.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "holiday", all[0].Reason)
}

func TestFullDayOnPartialWithUpgradePolicy(t *testing.T) {
	f := newFixture(t)
	f.blocked.FullDayOnExisting = PolicyUpgrade
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"10:00"})
	require.NoError(t, err)
	b, err := f.blocked.BlockDate(ctx, mondayStr, "closed", nil)
	require.NoError(t, err)
	assert.True(t, b.IsFullDayBlocked)
	assert.Empty(t, b.BlockedTimeSlots)
	assert.Equal(t, "closed", b.Reason)
}

func TestPartialBlocksMergeAsUnion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "first", []string{"10:00", "11:00"})
	require.NoError(t, err)
	b, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"11:00", "12:30"})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "11:00", "12:30"}, b.BlockedTimeSlots)
	assert.False(t, b.IsFullDayBlocked)
	assert.Equal(t, "first", b.Reason)

	again, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"12:30"})
	require.NoError(t, err)
	assert.Equal(t, b.Version, again.Version, "re-blocking the same slots must not write")
}

func TestPartialBlockOverFullDayBecomesPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "", nil)
	require.NoError(t, err)
	b, err := f.blocked.BlockDate(ctx, mondayStr, "maintenance", []string{"14:30"})
	require.NoError(t, err)
	assert.False(t, b.IsFullDayBlocked)
	assert.Equal(t, []string{"14:30"}, b.BlockedTimeSlots)
	assert.Equal(t, "maintenance", b.Reason)
}

func TestRemoveLastSlotDeletesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"10:00", "11:00"})
	require.NoError(t, err)

	after, deleted, err := f.blocked.RemoveSlot(ctx, b.ID, "10:00")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []string{"11:00"}, after.BlockedTimeSlots)

	unchanged, deleted, err := f.blocked.RemoveSlot(ctx, b.ID, "15:30")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []string{"11:00"}, unchanged.BlockedTimeSlots)

	_, deleted, err = f.blocked.RemoveSlot(ctx, b.ID, "11:00")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.blockedRepo.GetByDate(ctx, monday)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = f.blocked.RemoveSlot(ctx, b.ID, "11:00")
	var nf *utils.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRemoveSlotFromFullDayBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", nil)
	require.NoError(t, err)
	_, _, err = f.blocked.RemoveSlot(ctx, b.ID, "10:00")
	assert.ErrorIs(t, err, ErrFullDayBlock)
}

func TestUpdateRecomputesFullDayFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"10:00"})
	require.NoError(t, err)

	empty := []string{}
	reason := "  closed  "
	updated, err := f.blocked.Update(ctx, b.ID, models.UpdateBlockedDateRequest{
		Reason:           &reason,
		BlockedTimeSlots: &empty,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsFullDayBlocked)
	assert.Equal(t, "closed", updated.Reason)

	slots := []string{"12:30"}
	updated, err = f.blocked.Update(ctx, b.ID, models.UpdateBlockedDateRequest{BlockedTimeSlots: &slots})
	require.NoError(t, err)
	assert.False(t, updated.IsFullDayBlocked)
	assert.Contains(t, f.cache.invalidated, mondayStr)
}

func TestToggleAndCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "vacation", []string{"10:00"})
	require.NoError(t, err)

	check, err := f.blocked.Check(ctx, mondayStr)
	require.NoError(t, err)
	assert.True(t, check.IsBlocked)
	assert.Equal(t, []string{"10:00"}, check.BlockedTimeSlots)
	assert.Equal(t, "vacation", check.Reason)

	toggled, err := f.blocked.ToggleActive(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	check, err = f.blocked.Check(ctx, mondayStr)
	require.NoError(t, err)
	assert.False(t, check.IsBlocked)

	active, err := f.blocked.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestBulkBlockPartitionsOutcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, "2030-03-05", "", nil)
	require.NoError(t, err)

	res, err := f.blocked.BlockDatesBulk(ctx, models.BulkBlockRequest{
		Dates:  []string{mondayStr, "2030-03-05", "not-a-date", "2030-03-06"},
		Reason: "conference",
	})
	require.NoError(t, err)
	assert.Len(t, res.Blocked, 2)
	assert.Equal(t, []string{"2030-03-05"}, res.Skipped)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "not-a-date", res.Failed[0].Date)
	assert.Equal(t, models.BulkBlockSummary{Requested: 4, Blocked: 2, Skipped: 1, Failed: 1}, res.Summary)

	active, err := f.blocked.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, mondayStr, active[0].Date)
	assert.True(t, active[0].IsFullDayBlocked)
}

func TestConcurrentPartialBlocksNeverLoseSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slots := []string{"10:00", "11:00", "12:30", "13:30", "14:30", "15:30"}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []string
	)
	for _, s := range slots {
		wg.Add(1)
		go func(slot string) {
			defer wg.Done()
			_, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{slot})
			if err != nil {
				assert.True(t, errors.Is(err, ErrConcurrentModification), "unexpected error: %v", err)
				return
			}
			mu.Lock()
			won = append(won, slot)
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	b, err := f.blockedRepo.GetByDate(ctx, monday)
	require.NoError(t, err)
	stored := models.NewSlotSet(b.BlockedTimeSlots)
	for _, s := range won {
		assert.True(t, stored.Has(s), "slot %s was acknowledged but lost", s)
	}
	assert.False(t, b.IsFullDayBlocked)
}

func TestDeleteBlockedDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.blocked.BlockDate(ctx, mondayStr, "", nil)
	require.NoError(t, err)
	require.NoError(t, f.blocked.Delete(ctx, b.ID))

	err = f.blocked.Delete(ctx, b.ID)
	assert.Equal(t, 404, utils.StatusFor(err))
}
