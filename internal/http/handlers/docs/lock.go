package docs

import (
	"collabdocs/internal/models"
	errutils "collabdocs/internal/utils/http_errors"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// GetLock reports the doc's lock state from the requester's point of
// view: a doc held by the requester themselves shows as self-editing.
func GetLock(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, lm LockManager) {
	op := pkg + "GetLock"

	log = log.With(slog.String("op", op))

	requesterID := ""
	if requester := requesterFromContext(r); requester != nil {
		requesterID = requester.ID
	}

	scope := scopeFromContext(r)

	lock, err := lm.CurrentLock(ctx, scope, docID, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrDocNotFound) {
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
			return
		}
		log.Error("failed to get lock state", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(lockResponse(lock)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// CancelLock force-releases another user's edit marker. Site admins, the
// doc creator and group admins or mods may do this.
func CancelLock(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, lm LockManager) {
	op := pkg + "CancelLock"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	scope := scopeFromContext(r)

	err := lm.Cancel(ctx, scope, docID, requester)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			log.Warn("lock cancel denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrUnauthorized.Error())
		case errors.Is(err, models.ErrDocNotFound):
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
		default:
			log.Error("failed to cancel lock", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	writeLock(log, w, scope, docID)
}
