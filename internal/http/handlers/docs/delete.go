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

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, ds DocService) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)

	err := ds.DeleteDoc(ctx, docID, requester)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			log.Warn("doc delete denied", slog.String("doc_id", docID))
			errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
			return
		}
		if errors.Is(err, models.ErrDocNotFound) {
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocNotFound.Error())
			return
		}
		log.Error("failed to delete doc", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"deleted": true,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
