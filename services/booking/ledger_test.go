package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"oasis/models"
	"oasis/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMondayScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setMonday(t, "12:30", "1:30", "2:30")

	_, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"1:30"})
	require.NoError(t, err)

	appt, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "12:30"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "12:30", appt.AppointmentTime)

	slots, err := f.ledger.BookableSlots(ctx, mondayStr)
	require.NoError(t, err)
	assert.Equal(t, []string{"2:30"}, slots.BookableSlots)
	assert.Equal(t, []string{"12:30"}, slots.BookedSlots)
	assert.Equal(t, []string{"12:30", "2:30"}, slots.AvailableSlots)

	assert.Equal(t, []string{appt.ID}, f.reminders.appts)
}

func TestConcurrentBookingsOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		others []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "10:00"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	for _, err := range others {
		assert.True(t, errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrSlotBooked), "unexpected error: %v", err)
		assert.Equal(t, 409, utils.StatusFor(err))
	}

	booked, err := f.ledger.ListBookedSlots(ctx, mondayStr)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, booked.BookedSlots)
}

func TestBookingRespectsBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.blocked.BlockDate(ctx, mondayStr, "", []string{"11:00"})
	require.NoError(t, err)
	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "11:00"))
	assert.Equal(t, 409, utils.StatusFor(err))

	_, err = f.blocked.BlockDate(ctx, "2030-03-05", "", nil)
	require.NoError(t, err)
	_, err = f.ledger.CreateAppointment(ctx, bookingRequest("2030-03-05", "10:00"))
	assert.Equal(t, 409, utils.StatusFor(err))

	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(sundayStr, "10:00"))
	assert.Equal(t, 409, utils.StatusFor(err))

	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "9:15"))
	assert.Equal(t, 409, utils.StatusFor(err))
}

func TestBookingMatchesEquivalentLabels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "2:30 PM"))
	require.NoError(t, err)
	assert.Equal(t, "14:30", appt.AppointmentTime)

	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "14:30"))
	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(*models.CreateAppointmentRequest)
		field  string
	}{
		"missing name":  {func(r *models.CreateAppointmentRequest) { r.CustomerName = " " }, "customerName"},
		"bad email":     {func(r *models.CreateAppointmentRequest) { r.CustomerEmail = "nope" }, "customerEmail"},
		"missing phone": {func(r *models.CreateAppointmentRequest) { r.CustomerPhone = "" }, "customerPhone"},
		"bad date":      {func(r *models.CreateAppointmentRequest) { r.AppointmentDate = "tomorrow" }, "appointmentDate"},
		"bad time":      {func(r *models.CreateAppointmentRequest) { r.AppointmentTime = "noon" }, "appointmentTime"},
		"in the past":   {func(r *models.CreateAppointmentRequest) { r.AppointmentDate = "2030-02-25" }, "appointmentDate"},
		"too far ahead": {func(r *models.CreateAppointmentRequest) { r.AppointmentDate = "2030-07-01" }, "appointmentDate"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := bookingRequest(mondayStr, "10:00")
			tc.mutate(&req)
			_, err := f.ledger.CreateAppointment(ctx, req)
			var ve *utils.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestBookingMinimumNotice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// fixedNow is 08:00 on March 1st, a Friday; 09:00 the same day is inside the 2h window.
	f.setFriday(t, "9:00", "11:00")
	_, err := f.ledger.CreateAppointment(ctx, bookingRequest("2030-03-01", "9:00"))
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = f.ledger.CreateAppointment(ctx, bookingRequest("2030-03-01", "11:00"))
	require.NoError(t, err)
}

func TestBookingNoticeUsesBusinessTimezone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ledger.Location = time.FixedZone("EAT", 3*60*60)

	// fixedNow is 08:00 UTC, which is 11:00 in the business zone.
	f.setFriday(t, "11:00", "14:00")
	_, err := f.ledger.CreateAppointment(ctx, bookingRequest("2030-03-01", "11:00"))
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "appointmentDate", ve.Field)

	appt, err := f.ledger.CreateAppointment(ctx, bookingRequest("2030-03-01", "14:00"))
	require.NoError(t, err)
	assert.True(t, appt.AppointmentDate.Equal(time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, appt.StartsAt(f.ledger.Location).Equal(time.Date(2030, 3, 1, 11, 0, 0, 0, time.UTC)))
}

func TestBookingDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	disabled := false
	_, err := f.settings.UpdateSettings(ctx, models.UpdateSettingsRequest{IsEnabled: &disabled})
	require.NoError(t, err)

	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "10:00"))
	assert.ErrorIs(t, err, ErrBookingDisabled)
}

func TestCancelFreesSlotAndReactivationConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "12:30"))
	require.NoError(t, err)

	cancelled, err := f.ledger.Cancel(ctx, first.ID, "changed plans")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "changed plans", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	second, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "12:30"))
	require.NoError(t, err)

	_, err = f.ledger.UpdateStatus(ctx, first.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrSlotTaken)

	confirmed, err := f.ledger.UpdateStatus(ctx, second.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	_, err = f.ledger.UpdateStatus(ctx, second.ID, models.AppointmentStatus("lost"))
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAppointmentQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "10:00"))
	require.NoError(t, err)
	_, err = f.ledger.CreateAppointment(ctx, bookingRequest(mondayStr, "11:00"))
	require.NoError(t, err)

	got, err := f.ledger.GetAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", got.CustomerEmail)

	_, err = f.ledger.GetAppointment(ctx, "missing")
	assert.Equal(t, 404, utils.StatusFor(err))

	list, err := f.ledger.ListAppointments(ctx, models.AppointmentFilter{Date: &monday, Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.ledger.Delete(ctx, a.ID))
	assert.Equal(t, 404, utils.StatusFor(f.ledger.Delete(ctx, a.ID)))

	n, err := f.ledger.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
