package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/pushqueue"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	"github.com/kevinseya/app-turismo-dnavarro/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePusher struct {
	calls        [][]string
	unregistered []string
	err          error
}

func (p *fakePusher) Send(_ context.Context, tokens []string, title, body string, data map[string]string) (*notificationPort.PushResult, error) {
	p.calls = append(p.calls, tokens)
	if p.err != nil {
		return nil, p.err
	}
	return &notificationPort.PushResult{
		SuccessCount: len(tokens) - len(p.unregistered),
		FailureCount: len(p.unregistered),
		Unregistered: p.unregistered,
	}, nil
}

func setup(t *testing.T, pusher notificationPort.Pusher) (*PushWorker, *gorm.DB) {
	db := testutil.NewTestDB(t)
	w := NewPushWorker(
		dbadapter.NewPushQueueRepositoryDatabase(db),
		dbadapter.NewNotificationRepositoryDatabase(db),
		dbadapter.NewDeviceRepositoryDatabase(db),
		pusher,
		10,
		10*time.Millisecond,
		testutil.Logger(),
	)
	return w, db
}

func enqueue(t *testing.T, db *gorm.DB, recipient uuid.UUID, tokens ...string) *pushqueue.PushQueue {
	t.Helper()
	n := &notification.Notification{Title: "Nuevo comentario", Message: "hola", UserID: recipient, Type: notification.TypeComment}
	require.NoError(t, db.Create(n).Error)
	for _, tok := range tokens {
		require.NoError(t, db.Create(&notification.DeviceToken{UserID: recipient, Token: tok}).Error)
	}
	item := &pushqueue.PushQueue{NotificationID: n.ID, UserID: recipient, Status: pushqueue.StatusPending}
	require.NoError(t, db.Create(item).Error)
	return item
}

func status(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var item pushqueue.PushQueue
	require.NoError(t, db.Where("id = ?", id).First(&item).Error)
	return item.Status
}

func TestProcessPendingDeliversAndPrunesTokens(t *testing.T) {
	ctx := context.Background()
	pusher := &fakePusher{unregistered: []string{"dead"}}
	w, db := setup(t, pusher)
	u := testutil.CreateUser(t, db, "u", userEntity.RoleClient)
	item := enqueue(t, db, u.ID, "live", "dead")

	n, err := w.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pusher.calls, 1)
	assert.ElementsMatch(t, []string{"live", "dead"}, pusher.calls[0])
	assert.Equal(t, pushqueue.StatusDone, status(t, db, item.ID))

	tokens, err := w.DeviceRepo.ListTokensByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, tokens)

	n, err = w.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessPendingWithoutDevices(t *testing.T) {
	ctx := context.Background()
	pusher := &fakePusher{}
	w, db := setup(t, pusher)
	u := testutil.CreateUser(t, db, "u", userEntity.RoleClient)
	item := enqueue(t, db, u.ID)

	_, err := w.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pusher.calls)
	assert.Equal(t, pushqueue.StatusDone, status(t, db, item.ID))
}

func TestProcessPendingMarksFailures(t *testing.T) {
	ctx := context.Background()
	w, db := setup(t, &fakePusher{err: errors.New("fcm unavailable")})
	u := testutil.CreateUser(t, db, "u", userEntity.RoleClient)
	item := enqueue(t, db, u.ID, "tok")

	_, err := w.ProcessPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, pushqueue.StatusFailed, status(t, db, item.ID))
}

func TestRunStopsOnCancel(t *testing.T) {
	pusher := &fakePusher{}
	w, db := setup(t, pusher)
	u := testutil.CreateUser(t, db, "u", userEntity.RoleClient)
	item := enqueue(t, db, u.ID, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		var it pushqueue.PushQueue
		return db.Where("id = ?", item.ID).First(&it).Error == nil && it.Status == pushqueue.StatusDone
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
