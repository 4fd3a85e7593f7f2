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

// Create stores a new doc with its access settings in one request.
func Create(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ds DocService) {
	op := pkg + "Create"

	log = log.With(slog.String("op", op))

	requester := requesterFromContext(r)
	if requester == nil {
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		return
	}

	var req dto.CreateDocRequest

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

	doc := &models.Doc{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		ParentID: req.ParentID,
		GroupIDs: req.GroupIDs,
		Tags:     req.Tags,
	}

	docID, err := ds.CreateDoc(ctx, requester, doc, settings)
	if err != nil {
		if errors.Is(err, models.ErrInvalidParams) {
			errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
			return
		}
		log.Error("failed to create doc", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"id": docID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// parseSettings converts the wire settings map into typed access
// settings, rejecting unknown capabilities or levels.
func parseSettings(raw map[string]string) (models.AccessSettings, error) {
	settings := make(models.AccessSettings, len(raw))

	for rawCap, rawLevel := range raw {
		cap, ok := models.ParseCapability(rawCap)
		if !ok {
			return nil, models.ErrInvalidParams
		}

		level, ok := models.ParseAccessLevel(rawLevel)
		if !ok {
			return nil, models.ErrInvalidParams
		}

		settings[cap] = level
	}

	return settings, nil
}
