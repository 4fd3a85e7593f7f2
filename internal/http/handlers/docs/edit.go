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

// BeginEdit plants the requester's edit marker, unless someone else
// already holds the doc.
func BeginEdit(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, ds DocService) {
	op := pkg + "BeginEdit"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	scope := scopeFromContext(r)

	err := ds.BeginEdit(ctx, scope, docID, requester)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDocLocked):
			errutils.WriteJSONError(w, http.StatusConflict, models.ErrDocLocked.Error())
		case errors.Is(err, models.ErrForbidden):
			log.Warn("edit denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		case errors.Is(err, models.ErrDocNotFound):
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
		default:
			log.Error("failed to begin edit", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	writeLock(log, w, scope, docID)
}

// FinishEdit completes the edit: the requester becomes the doc's last
// editor and their marker is released.
func FinishEdit(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, ds DocService) {
	op := pkg + "FinishEdit"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	scope := scopeFromContext(r)

	err := ds.FinishEdit(ctx, scope, docID, requester)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDocLocked):
			errutils.WriteJSONError(w, http.StatusConflict, models.ErrDocLocked.Error())
		case errors.Is(err, models.ErrForbidden):
			log.Warn("finish edit denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		case errors.Is(err, models.ErrDocNotFound):
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
		default:
			log.Error("failed to finish edit", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	writeLock(log, w, scope, docID)
}

// AbandonEdit releases the requester's own edit marker without recording
// an edit.
func AbandonEdit(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, lm LockManager) {
	op := pkg + "AbandonEdit"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)
	if requester == nil {
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	scope := scopeFromContext(r)

	err := lm.SelfCancel(ctx, scope, docID, requester.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			log.Warn("abandon edit denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrUnauthorized.Error())
		case errors.Is(err, models.ErrDocNotFound):
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
		default:
			log.Error("failed to abandon edit", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	writeLock(log, w, scope, docID)
}

// writeLock reports the doc's lock state as memoized in the scope after
// the operation that just changed it.
func writeLock(log *slog.Logger, w http.ResponseWriter, scope *models.RequestScope, docID string) {
	lock, ok := scope.Locks[docID]
	if !ok {
		lock = models.Unlocked()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(lockResponse(lock)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
