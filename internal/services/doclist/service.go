package doclistservice

import (
	"collabdocs/internal/models"
	"collabdocs/internal/query"
	"context"
	"fmt"
	"log/slog"
)

const pkg = "doclistService/"

// DocListService owns the per-request doc listing: it resolves the query
// spec exactly once per request scope, runs it against storage exactly
// once, and exposes iteration and pagination over the memoized result.
type DocListService struct {
	log      *slog.Logger
	resolver *query.Resolver
	finder   DocFinder
}

func New(log *slog.Logger, resolver *query.Resolver, finder DocFinder) *DocListService {
	return &DocListService{
		log:      log,
		resolver: resolver,
		finder:   finder,
	}
}

// EnsureQuery resolves and executes the listing query for this scope.
// Idempotent: a second call within the same scope returns the memoized
// result without touching the resolver or storage again.
func (s *DocListService) EnsureQuery(ctx context.Context, scope *models.RequestScope, overrides models.QueryOverrides, reqCtx models.RequestContext) (*models.QueryResult, error) {
	op := pkg + "EnsureQuery"

	if scope.Query != nil {
		return scope.Query, nil
	}

	log := s.log.With(slog.String("op", op))

	spec := s.resolver.Resolve(overrides, reqCtx)

	log.Debug("executing doc query",
		slog.String("orderby", string(spec.OrderBy)),
		slog.String("order", string(spec.Order)),
		slog.Int("page", spec.Page),
		slog.Int("page_size", spec.PageSize))

	docs, total, err := s.finder.FindDocs(ctx, spec)
	if err != nil {
		log.Error("failed to find docs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	scope.Query = &models.QueryResult{
		Spec:  spec,
		Docs:  docs,
		Total: total,
	}

	return scope.Query, nil
}

// Reset discards the memoized query so the next EnsureQuery resolves and
// queries afresh. Used after a mid-request filter change.
func (s *DocListService) Reset(scope *models.RequestScope) {
	scope.Query = nil
}

func (s *DocListService) HasMore(scope *models.RequestScope) bool {
	if scope.Query == nil {
		return false
	}

	return scope.Query.Cursor < len(scope.Query.Docs)
}

// Advance yields the next doc in spec order. Calling it before EnsureQuery
// is a caller protocol violation and fails loudly.
func (s *DocListService) Advance(scope *models.RequestScope) (*models.Doc, error) {
	op := pkg + "Advance"

	if scope.Query == nil {
		s.log.Error("advance called before query resolution", slog.String("op", op))
		return nil, models.ErrNoActiveQuery
	}

	if scope.Query.Cursor >= len(scope.Query.Docs) {
		return nil, models.ErrNoRows
	}

	doc := scope.Query.Docs[scope.Query.Cursor]
	scope.Query.Cursor++

	return doc, nil
}

func (s *DocListService) TotalCount(scope *models.RequestScope) int {
	if scope.Query == nil {
		return 0
	}

	return scope.Query.Total
}

// CurrentRangeStart returns the ordinal of the first doc on the current
// page ("Viewing *5* - 8 of 12"), or zero for an empty result.
func (s *DocListService) CurrentRangeStart(scope *models.RequestScope) int {
	if scope.Query == nil || scope.Query.Total == 0 {
		return 0
	}

	spec := scope.Query.Spec

	return (spec.Page-1)*spec.PageSize + 1
}

// CurrentRangeEnd returns the ordinal of the last doc on the current page,
// capped at the total match count.
func (s *DocListService) CurrentRangeEnd(scope *models.RequestScope) int {
	if scope.Query == nil || scope.Query.Total == 0 {
		return 0
	}

	spec := scope.Query.Spec

	end := spec.Page * spec.PageSize
	if end > scope.Query.Total {
		end = scope.Query.Total
	}

	return end
}
