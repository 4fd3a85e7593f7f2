package docs

import (
	"collabdocs/internal/dto"
	"collabdocs/internal/models"
	errutils "collabdocs/internal/utils/http_errors"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// GetSettings returns the effective per-capability levels plus the
// derived protection summary.
func GetSettings(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, pm PermissionManager) {
	op := pkg + "GetSettings"

	log = log.With(slog.String("op", op))

	settings, summary, err := pm.Snapshot(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocNotFound) {
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
			return
		}
		log.Error("failed to snapshot settings", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(settingsResponse(settings, summary)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// UpdateSettings replaces the doc's access settings. Only the creator or
// a site admin may change them.
func UpdateSettings(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, pm PermissionManager) {
	op := pkg + "UpdateSettings"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	var req dto.SettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	settings, err := parseSettings(req.Settings)
	if err != nil {
		log.Warn("invalid settings in request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		return
	}

	if err := pm.UpdateSettings(ctx, docID, requester, settings); err != nil {
		switch {
		case errors.Is(err, models.ErrForbidden):
			log.Warn("settings update denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		case errors.Is(err, models.ErrDocNotFound):
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
		case errors.Is(err, models.ErrInvalidParams):
			errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		default:
			log.Error("failed to update settings", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	settings, summary, err := pm.Snapshot(ctx, docID)
	if err != nil {
		log.Error("failed to snapshot settings", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(settingsResponse(settings, summary)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
