package editlockservice

import (
	"collabdocs/internal/models"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMarkerProvider struct {
	mock.Mock
}

func (m *mockMarkerProvider) EditMarker(ctx context.Context, docID string) (string, time.Time, error) {
	args := m.Called(ctx, docID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockMarkerProvider) ClearEditMarker(ctx context.Context, docID string) error {
	args := m.Called(ctx, docID)
	return args.Error(0)
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) CanForceCancel(ctx context.Context, acting *models.User, docID string) (bool, error) {
	args := m.Called(ctx, acting, docID)
	return args.Bool(0), args.Error(1)
}

func TestCurrentLock_Unlocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("", time.Time{}, nil)

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	state, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusUnlocked, state.Status)
}

func TestCurrentLock_LockedByAnotherUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	startedAt := time.Now().Add(-48 * time.Hour)

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u2", startedAt, nil)

	// Zero window: a marker stays active no matter how old it is.
	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	state, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusLocked, state.Status)
	assert.Equal(t, "u2", state.HolderID)
	assert.Equal(t, startedAt, state.AcquiredAt)
}

func TestCurrentLock_SelfEditingNeverLocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u1", time.Now(), nil)

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	state, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusSelfEditing, state.Status)
}

func TestCurrentLock_WindowExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u2", time.Now().Add(-time.Hour), nil)

	svc := New(slog.Default(), markers, new(mockAuthorizer), 5*time.Minute)

	state, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusUnlocked, state.Status)
}

func TestCurrentLock_MemoizedPerScope(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u2", time.Now(), nil).Once()

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	_, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)

	_, err = svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)

	markers.AssertNumberOfCalls(t, "EditMarker", 1)

	// A fresh scope recomputes.
	markers.On("EditMarker", ctx, "doc1").Return("u2", time.Now(), nil).Once()
	_, err = svc.CurrentLock(ctx, models.NewRequestScope(), "doc1", "u1")
	assert.NoError(t, err)
	markers.AssertNumberOfCalls(t, "EditMarker", 2)
}

func TestCurrentLock_ClassifiesPerRequester(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u1", time.Now(), nil).Once()

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	// The holder sees their own marker first.
	state, err := svc.CurrentLock(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusSelfEditing, state.Status)

	// A different requester in the same scope sees the same marker as a
	// lock, without another storage fetch.
	state, err = svc.CurrentLock(ctx, scope, "doc1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusLocked, state.Status)
	assert.Equal(t, "u1", state.HolderID)

	markers.AssertNumberOfCalls(t, "EditMarker", 1)
}

func TestCancel_Unauthorized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()
	acting := &models.User{ID: "u1"}

	markers := new(mockMarkerProvider)

	authorizer := new(mockAuthorizer)
	authorizer.On("CanForceCancel", ctx, acting, "doc1").Return(false, nil)

	svc := New(slog.Default(), markers, authorizer, 0)

	err := svc.Cancel(ctx, scope, "doc1", acting)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	markers.AssertNotCalled(t, "ClearEditMarker", mock.Anything, mock.Anything)
}

func TestCancel_IdempotentOnUnlockedDoc(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()
	acting := &models.User{ID: "admin", IsAdmin: true}

	markers := new(mockMarkerProvider)
	markers.On("ClearEditMarker", ctx, "doc1").Return(nil)

	authorizer := new(mockAuthorizer)
	authorizer.On("CanForceCancel", ctx, acting, "doc1").Return(true, nil)

	svc := New(slog.Default(), markers, authorizer, 0)

	assert.NoError(t, svc.Cancel(ctx, scope, "doc1", acting))
	assert.NoError(t, svc.Cancel(ctx, scope, "doc1", acting))

	state, ok := scope.Locks["doc1"]
	assert.True(t, ok)
	assert.Equal(t, models.LockStatusUnlocked, state.Status)
}

func TestSelfCancel_OwnMarkerCleared(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u1", time.Now(), nil)
	markers.On("ClearEditMarker", ctx, "doc1").Return(nil)

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	err := svc.SelfCancel(ctx, scope, "doc1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, models.LockStatusUnlocked, scope.Locks["doc1"].Status)
}

func TestSelfCancel_RefusedForForeignLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scope := models.NewRequestScope()

	markers := new(mockMarkerProvider)
	markers.On("EditMarker", ctx, "doc1").Return("u2", time.Now(), nil)

	svc := New(slog.Default(), markers, new(mockAuthorizer), 0)

	err := svc.SelfCancel(ctx, scope, "doc1", "u1")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	markers.AssertNotCalled(t, "ClearEditMarker", mock.Anything, mock.Anything)
}
