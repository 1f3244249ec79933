package contact

import (
	"context"
	"testing"
	"time"

	"oasis/database/repository/memory"
	"oasis/models"
	"oasis/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chanNotifier chan string

func (c chanNotifier) NotifyContactMessage(_ context.Context, m *models.ContactMessage) error {
	c <- m.ID
	return nil
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	notified := make(chanNotifier, 1)
	svc := NewContactService(memory.NewContentRepo[models.ContactMessage](), notified, zap.NewNop())
	ctx := context.Background()

	msg, err := svc.Submit(ctx, &models.ContactMessage{
		Name:    " Bo ",
		Email:   "Bo@Example.com",
		Message: "Is the cabin free in May?",
		IsRead:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "bo@example.com", msg.Email)
	assert.False(t, msg.IsRead)

	select {
	case id := <-notified:
		assert.Equal(t, msg.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("admin was not notified")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewContactService(memory.NewContentRepo[models.ContactMessage](), nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), &models.ContactMessage{Name: "Bo", Email: "bo", Message: "hi"})
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestInboxOperations(t *testing.T) {
	svc := NewContactService(memory.NewContentRepo[models.ContactMessage](), nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Submit(ctx, &models.ContactMessage{Name: "A", Email: "a@x.io", Message: "one"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Submit(ctx, &models.ContactMessage{Name: "B", Email: "b@x.io", Message: "two"})
	require.NoError(t, err)

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)

	require.NoError(t, svc.MarkRead(ctx, first.ID))
	msgs, err = svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, msgs[1].IsRead)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.Equal(t, 404, utils.StatusFor(svc.MarkRead(ctx, first.ID)))
}
