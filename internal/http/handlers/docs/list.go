package docs

import (
	"collabdocs/internal/dto"
	"collabdocs/internal/models"
	errutils "collabdocs/internal/utils/http_errors"
	parseutil "collabdocs/internal/utils/parsequery"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
)

// List serves every doc listing variant. The route supplies the ambient
// context (group scope, viewed profile); the query string supplies the
// raw filters. Malformed filters are dropped by the resolver, so listing
// never fails on bad input.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, lister DocLister, reqCtx models.RequestContext) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	query := r.URL.Query()

	reqCtx.TagsParam = query.Get("tags")
	reqCtx.SearchParam = query.Get("search_terms")
	reqCtx.OrderByParam = query.Get("orderby")
	reqCtx.OrderParam = query.Get("order")
	reqCtx.PageParam = query.Get("paged")
	reqCtx.PageSizeParam = query.Get("posts_per_page")

	if view, ok := parseView(query.Get("view")); ok {
		reqCtx.View = view
	}

	overrides := models.QueryOverrides{
		DocIDs:   parseutil.List(query.Get("doc_id")),
		GroupIDs: parseutil.List(query.Get("group_id")),
	}

	if slug := query.Get("doc_slug"); slug != "" {
		overrides.DocSlug = &slug
	}

	if parentID := query.Get("parent_id"); parentID != "" {
		overrides.ParentID = &parentID
	}

	if authorID := query.Get("author_id"); authorID != "" {
		overrides.AuthorID = &authorID
	}

	if editedByID := query.Get("edited_by_id"); editedByID != "" {
		overrides.EditedByID = &editedByID
	}

	scope := scopeFromContext(r)

	result, err := lister.EnsureQuery(ctx, scope, overrides, reqCtx)
	if err != nil {
		log.Error("failed to list docs", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := dto.ListDocsResponse{
		Docs:       make([]dto.DocResponse, 0, len(result.Docs)),
		Total:      result.Total,
		Page:       result.Spec.Page,
		PageSize:   result.Spec.PageSize,
		RangeStart: lister.CurrentRangeStart(scope),
		RangeEnd:   lister.CurrentRangeEnd(scope),
	}

	for _, doc := range result.Docs {
		response.Docs = append(response.Docs, docResponse(doc))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func parseView(raw string) (models.ViewKind, bool) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	switch models.ViewKind(decoded) {
	case models.ViewStartedBy, models.ViewEditedBy:
		return models.ViewKind(decoded), true
	default:
		return models.ViewAll, false
	}
}

func docResponse(doc *models.Doc) dto.DocResponse {
	return dto.DocResponse{
		ID:           doc.ID,
		Title:        doc.Title,
		Slug:         doc.Slug,
		Excerpt:      doc.Excerpt,
		AuthorID:     doc.AuthorID,
		ParentID:     doc.ParentID,
		GroupIDs:     doc.GroupIDs,
		Tags:         doc.Tags,
		LastEditorID: doc.LastEditorID,
		CreatedAt:    doc.CreatedAt,
		ModifiedAt:   doc.ModifiedAt,
	}
}
