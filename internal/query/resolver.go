package query

import (
	"collabdocs/internal/models"
	parseutil "collabdocs/internal/utils/parsequery"
)

const (
	defaultPageSize = 10
)

// Resolver turns explicit overrides plus ambient request context into a
// canonical models.QuerySpec. Resolution is a pure function: overrides win
// over context-derived defaults, which win over hard defaults. The resolver
// itself holds no per-request state; memoizing the resolved result is the
// doc list service's job.
type Resolver struct {
	defaultOrderBy func() models.OrderBy
	defaultSize    func() int
}

// NewResolver builds a resolver. The two policy funcs are the embedding
// application's extension points for the default sort key and page size;
// pass nil to keep the built-in defaults (modified, 10).
func NewResolver(defaultOrderBy func() models.OrderBy, defaultSize func() int) *Resolver {
	if defaultOrderBy == nil {
		defaultOrderBy = func() models.OrderBy { return models.OrderByModified }
	}

	if defaultSize == nil {
		defaultSize = func() int { return defaultPageSize }
	}

	return &Resolver{
		defaultOrderBy: defaultOrderBy,
		defaultSize:    defaultSize,
	}
}

func (r *Resolver) Resolve(overrides models.QueryOverrides, reqCtx models.RequestContext) models.QuerySpec {
	spec := models.QuerySpec{
		DocIDs: overrides.DocIDs,
		Tags:   overrides.Tags,
	}

	if overrides.DocSlug != nil {
		spec.DocSlug = *overrides.DocSlug
	}

	if overrides.ParentID != nil {
		spec.ParentID = *overrides.ParentID
	}

	// Group filter defaults to the group the request is scoped to.
	switch {
	case len(overrides.GroupIDs) > 0:
		spec.GroupIDs = overrides.GroupIDs
	case reqCtx.CurrentGroupID != "":
		spec.GroupIDs = []string{reqCtx.CurrentGroupID}
	}

	// Author and editor filters follow the started-by / edited-by views of
	// the viewed profile, unless explicitly overridden.
	switch {
	case overrides.AuthorID != nil:
		spec.AuthorID = *overrides.AuthorID
	case reqCtx.View == models.ViewStartedBy:
		spec.AuthorID = reqCtx.ViewedUserID
	}

	switch {
	case overrides.EditedByID != nil:
		spec.EditedByID = *overrides.EditedByID
	case reqCtx.View == models.ViewEditedBy:
		spec.EditedByID = reqCtx.ViewedUserID
	}

	if spec.Tags == nil {
		spec.Tags = parseutil.List(reqCtx.TagsParam)
	}

	spec.OrderBy = r.resolveOrderBy(overrides, reqCtx)
	spec.Order = resolveOrder(overrides, reqCtx, spec.OrderBy)

	switch {
	case overrides.SearchTerms != nil:
		spec.SearchTerms = *overrides.SearchTerms
	case reqCtx.SearchParam != "":
		spec.SearchTerms = parseutil.Term(reqCtx.SearchParam)
	}

	spec.Page = resolvePositive(overrides.Page, reqCtx.PageParam, 1)
	spec.PageSize = resolvePositive(overrides.PageSize, reqCtx.PageSizeParam, r.defaultSize())

	return spec
}

func (r *Resolver) resolveOrderBy(overrides models.QueryOverrides, reqCtx models.RequestContext) models.OrderBy {
	if overrides.OrderBy != nil {
		if orderBy, ok := models.ParseOrderBy(string(*overrides.OrderBy)); ok {
			return orderBy
		}
	}

	if orderBy, ok := models.ParseOrderBy(parseutil.Term(reqCtx.OrderByParam)); ok {
		return orderBy
	}

	return r.defaultOrderBy()
}

func resolveOrder(overrides models.QueryOverrides, reqCtx models.RequestContext, orderBy models.OrderBy) models.Order {
	if overrides.Order != nil {
		if order, ok := models.ParseOrder(string(*overrides.Order)); ok {
			return order
		}
	}

	if order, ok := models.ParseOrder(reqCtx.OrderParam); ok {
		return order
	}

	return models.DefaultOrderFor(orderBy)
}

func resolvePositive(override *int, raw string, def int) int {
	if override != nil && *override > 0 {
		return *override
	}

	return parseutil.PositiveInt(raw, def)
}
