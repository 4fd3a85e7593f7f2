package docs

import (
	"bytes"
	"collabdocs/internal/dto"
	"collabdocs/internal/models"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSettings_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pm := new(mockPermissionManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	settings := models.AccessSettings{
		models.CapRead: models.LevelNoOne,
		models.CapEdit: models.LevelCreator,
	}

	pm.On("Snapshot", ctx, "doc1").Return(settings, models.SummaryPrivate, nil)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodGet, "/api/docs/doc1/settings", nil, nil)

	GetSettings(ctx, logger, w, req, "doc1", pm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response dto.SettingsResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "private", response.Summary)
	assert.Equal(t, "no-one", response.Settings["read"])

	pm.AssertExpectations(t)
}

func TestGetSettings_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pm := new(mockPermissionManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pm.On("Snapshot", ctx, "missing").Return(nil, models.AccessSummary(""), models.ErrDocNotFound)

	w := httptest.NewRecorder()
	req := requestWith(http.MethodGet, "/api/docs/missing/settings", nil, nil)

	GetSettings(ctx, logger, w, req, "missing", pm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	pm.AssertExpectations(t)
}

func settingsRequest(t *testing.T, requester *models.User, req dto.SettingsRequest) *http.Request {
	t.Helper()

	body, err := json.Marshal(req)
	assert.NoError(t, err)

	r := httptest.NewRequest(http.MethodPut, "/api/docs/doc1/settings", bytes.NewReader(body))

	if requester != nil {
		ctx := context.WithValue(r.Context(), models.UserContextKey, requester)
		r = r.WithContext(ctx)
	}

	return r
}

func TestUpdateSettings_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pm := new(mockPermissionManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u1"}

	wantSettings := models.AccessSettings{
		models.CapRead: models.LevelLoggedIn,
	}

	effective := models.AccessSettings{
		models.CapRead: models.LevelLoggedIn,
		models.CapEdit: models.LevelLoggedIn,
	}

	pm.On("UpdateSettings", ctx, "doc1", requester, wantSettings).Return(nil)
	pm.On("Snapshot", ctx, "doc1").Return(effective, models.SummaryLimited, nil)

	w := httptest.NewRecorder()
	req := settingsRequest(t, requester, dto.SettingsRequest{
		Settings: map[string]string{"read": "loggedin"},
	})

	UpdateSettings(ctx, logger, w, req, "doc1", pm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response dto.SettingsResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "limited", response.Summary)

	pm.AssertExpectations(t)
}

func TestUpdateSettings_Forbidden(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pm := new(mockPermissionManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u2"}

	pm.On("UpdateSettings", ctx, "doc1", requester, models.AccessSettings{
		models.CapRead: models.LevelAnyone,
	}).Return(models.ErrForbidden)

	w := httptest.NewRecorder()
	req := settingsRequest(t, requester, dto.SettingsRequest{
		Settings: map[string]string{"read": "anyone"},
	})

	UpdateSettings(ctx, logger, w, req, "doc1", pm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	pm.AssertExpectations(t)
}

func TestUpdateSettings_UnknownLevel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pm := new(mockPermissionManager)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	requester := &models.User{ID: "u1"}

	w := httptest.NewRecorder()
	req := settingsRequest(t, requester, dto.SettingsRequest{
		Settings: map[string]string{"read": "sometimes"},
	})

	UpdateSettings(ctx, logger, w, req, "doc1", pm)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	pm.AssertNotCalled(t, "UpdateSettings")
}
