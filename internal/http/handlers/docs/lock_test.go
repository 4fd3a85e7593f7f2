package docs

import (
	"collabdocs/internal/dto"
	"collabdocs/internal/models"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_AnonymousSeesHolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lm := new(mockLockManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	scope := models.NewRequestScope()
	acquiredAt := time.Now()

	lm.On("CurrentLock", ctx, scope, "doc1", "").
		Return(models.LockedBy("u2", acquiredAt), nil)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodGet, "/api/docs/doc1/lock", nil, scope)

	GetLock(ctx, logger, w, req, "doc1", lm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response dto.LockResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "locked", response.Status)
	assert.Equal(t, "u2", response.HolderID)

	lm.AssertExpectations(t)
}

func TestGetLock_SelfEditing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lm := new(mockLockManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u2"}
	scope := models.NewRequestScope()

	lm.On("CurrentLock", ctx, scope, "doc1", "u2").
		Return(models.SelfEditing(time.Now()), nil)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodGet, "/api/docs/doc1/lock", requester, scope)

	GetLock(ctx, logger, w, req, "doc1", lm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response dto.LockResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "self-editing", response.Status)

	lm.AssertExpectations(t)
}

func TestCancelLock_Unauthorized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lm := new(mockLockManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u3"}
	scope := models.NewRequestScope()

	lm.On("Cancel", ctx, scope, "doc1", requester).Return(models.ErrUnauthorized)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodDelete, "/api/docs/doc1/lock", requester, scope)

	CancelLock(ctx, logger, w, req, "doc1", lm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	lm.AssertExpectations(t)
}

func TestCancelLock_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lm := new(mockLockManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u1", IsAdmin: true}
	scope := models.NewRequestScope()
	scope.Locks["doc1"] = models.Unlocked()

	lm.On("Cancel", ctx, scope, "doc1", requester).Return(nil)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodDelete, "/api/docs/doc1/lock", requester, scope)

	CancelLock(ctx, logger, w, req, "doc1", lm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response dto.LockResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "unlocked", response.Status)

	lm.AssertExpectations(t)
}
