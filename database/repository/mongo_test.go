package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"oasis/database/repository"
	appointmentRepo "oasis/database/repository/appointment"
	blockedRepo "oasis/database/repository/blocked"
	settingsRepo "oasis/database/repository/settings"
	"oasis/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// testDB connects to MONGO_TEST_URL and returns a throwaway database with indexes in place.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	url := os.Getenv("MONGO_TEST_URL")
	if url == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("oasis_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	require.NoError(t, settingsRepo.EnsureIndexes(ctx, db))
	require.NoError(t, blockedRepo.EnsureIndexes(ctx, db))
	require.NoError(t, appointmentRepo.EnsureIndexes(ctx, db))
	return db
}

func TestMongoSettingsSingleton(t *testing.T) {
	repo := settingsRepo.NewMongoSettingsRepo(testDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetOrInitialize(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := repo.GetOrInitialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SettingsKey, s.ID)

	stale := *s
	s.IsEnabled = false
	require.NoError(t, repo.Replace(ctx, s))
	assert.ErrorIs(t, repo.Replace(ctx, &stale), repository.ErrVersionConflict)
}

func TestMongoBlockedDateUniquePerDate(t *testing.T) {
	repo := blockedRepo.NewMongoBlockedDateRepo(testDB(t))
	ctx := context.Background()
	date := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

	b := &models.BlockedDate{Date: date, IsFullDayBlocked: true, IsActive: true, BlockedTimeSlots: []string{}}
	require.NoError(t, repo.Create(ctx, b))
	err := repo.Create(ctx, &models.BlockedDate{Date: date, IsActive: true, BlockedTimeSlots: []string{"10:00"}})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	got, err := repo.GetActiveByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	stale := *got
	got.Reason = "holiday"
	require.NoError(t, repo.Update(ctx, got))
	assert.ErrorIs(t, repo.Update(ctx, &stale), repository.ErrVersionConflict)
}

func TestMongoAppointmentSlotIndex(t *testing.T) {
	repo := appointmentRepo.NewMongoAppointmentRepo(testDB(t))
	ctx := context.Background()
	date := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)
	slot := models.MustParseSlot("12:30")

	newAppt := func() *models.Appointment {
		return &models.Appointment{
			CustomerName:    "Amina",
			CustomerEmail:   "amina@example.com",
			AppointmentDate: date,
			AppointmentTime: "12:30",
			SlotKey:         slot,
			Status:          models.StatusPending,
		}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created []string
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := newAppt()
			if err := repo.Create(ctx, a); err == nil {
				mu.Lock()
				created = append(created, a.ID)
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, repository.ErrDuplicateKey)
			}
		}()
	}
	wg.Wait()
	require.Len(t, created, 1)

	_, err := repo.UpdateStatus(ctx, created[0], models.StatusCancelled, "changed plans")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, newAppt()))

	_, err = repo.UpdateStatus(ctx, created[0], models.StatusConfirmed, "")
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}
