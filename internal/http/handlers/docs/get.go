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

type docDetailResponse struct {
	Doc      dto.DocResponse      `json:"doc"`
	Settings dto.SettingsResponse `json:"settings"`
	Lock     dto.LockResponse     `json:"lock"`
}

// GetByID returns one doc together with its effective access settings,
// protection summary and current lock state.
func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, ds DocService, pm PermissionManager, lm LockManager) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	doc, err := ds.DocByID(ctx, docID, requester)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("doc read denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
			return
		}
		if errors.Is(err, models.ErrDocNotFound) {
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
			return
		}
		log.Error("failed to get doc", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	settings, summary, err := pm.Snapshot(ctx, docID)
	if err != nil {
		log.Error("failed to snapshot settings", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	requesterID := ""
	if requester != nil {
		requesterID = requester.ID
	}

	scope := scopeFromContext(r)

	lock, err := lm.CurrentLock(ctx, scope, docID, requesterID)
	if err != nil {
		log.Error("failed to get lock state", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := docDetailResponse{
		Doc:      docResponse(doc),
		Settings: settingsResponse(settings, summary),
		Lock:     lockResponse(lock),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func settingsResponse(settings models.AccessSettings, summary models.AccessSummary) dto.SettingsResponse {
	levels := make(map[string]string, len(settings))
	for cap, level := range settings {
		levels[string(cap)] = string(level)
	}

	return dto.SettingsResponse{
		Settings: levels,
		Summary:  string(summary),
	}
}

func lockResponse(lock models.LockState) dto.LockResponse {
	return dto.LockResponse{
		Status:     string(lock.Status),
		HolderID:   lock.HolderID,
		AcquiredAt: lock.AcquiredAt,
	}
}
