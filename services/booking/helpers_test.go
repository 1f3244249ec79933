package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"oasis/database/repository/memory"
	"oasis/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 2030-03-04 is a Monday.
var (
	monday    = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	sunday    = time.Date(2030, 3, 3, 0, 0, 0, 0, time.UTC)
	mondayStr = "2030-03-04"
	sundayStr = "2030-03-03"
	fixedNow  = time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)
)

type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
	flushes     int
}

func (c *recordingCache) Generation(context.Context, time.Time) string { return "" }
func (c *recordingCache) Get(context.Context, time.Time, string) (*models.Availability, bool) {
	return nil, false
}
func (c *recordingCache) Set(context.Context, time.Time, string, *models.Availability) {}
func (c *recordingCache) Invalidate(_ context.Context, d time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, models.FormatDate(d))
}
func (c *recordingCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
}

type recordingReminders struct {
	mu    sync.Mutex
	appts []string
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts = append(r.appts, a.ID)
	return nil
}

type fixture struct {
	settingsRepo *memory.SettingsRepo
	blockedRepo  *memory.BlockedDateRepo
	apptRepo     *memory.AppointmentRepo
	cache        *recordingCache
	reminders    *recordingReminders

	resolver *DefaultScheduleResolver
	engine   *DefaultAvailabilityEngine
	settings *DefaultSettingsService
	blocked  *DefaultBlockedDateService
	ledger   *DefaultBookingLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	f := &fixture{
		settingsRepo: memory.NewSettingsRepo(),
		blockedRepo:  memory.NewBlockedDateRepo(),
		apptRepo:     memory.NewAppointmentRepo(),
		cache:        &recordingCache{},
		reminders:    &recordingReminders{},
	}
	f.resolver = NewScheduleResolver(f.settingsRepo)
	f.engine = NewAvailabilityEngine(f.resolver, f.blockedRepo, f.cache)
	f.settings = NewSettingsService(f.settingsRepo, f.cache, logger)
	f.blocked = NewBlockedDateService(f.blockedRepo, f.cache, logger)
	f.ledger = NewBookingLedger(f.apptRepo, f.settingsRepo, f.engine, logger)
	f.ledger.Reminders = f.reminders
	f.ledger.Now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) setMonday(t *testing.T, slots ...string) {
	t.Helper()
	working := true
	_, err := f.settings.UpdateDay(context.Background(), "Monday", models.UpdateDayRequest{
		IsWorking: &working,
		TimeSlots: slots,
	})
	require.NoError(t, err)
}

func bookingRequest(date, slot string) models.CreateAppointmentRequest {
	return models.CreateAppointmentRequest{
		CustomerName:    "Grace Hopper",
		CustomerEmail:   "grace@example.com",
		CustomerPhone:   "+15550100",
		ServiceName:     "Massage",
		AppointmentDate: date,
		AppointmentTime: slot,
	}
}

func modelsDay(working bool, slots ...string) models.UpdateDayRequest {
	return models.UpdateDayRequest{IsWorking: &working, TimeSlots: slots}
}

func (f *fixture) setFriday(t *testing.T, slots ...string) {
	t.Helper()
	_, err := f.settings.UpdateDay(context.Background(), "friday", modelsDay(true, slots...))
	require.NoError(t, err)
}
