package docs

import (
	"collabdocs/internal/models"
	"context"
)

const pkg = "docsHandler/"

type DocLister interface {
	EnsureQuery(ctx context.Context, scope *models.RequestScope, overrides models.QueryOverrides, reqCtx models.RequestContext) (*models.QueryResult, error)
	CurrentRangeStart(scope *models.RequestScope) int
	CurrentRangeEnd(scope *models.RequestScope) int
}

type DocService interface {
	CreateDoc(ctx context.Context, requester *models.User, doc *models.Doc, settings models.AccessSettings) (string, error)
	DocByID(ctx context.Context, docID string, requester *models.User) (*models.Doc, error)
	DeleteDoc(ctx context.Context, docID string, requester *models.User) error
	BeginEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error
	FinishEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error
}

type PermissionManager interface {
	Snapshot(ctx context.Context, docID string) (models.AccessSettings, models.AccessSummary, error)
	UpdateSettings(ctx context.Context, docID string, acting *models.User, settings models.AccessSettings) error
}

type LockManager interface {
	CurrentLock(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) (models.LockState, error)
	Cancel(ctx context.Context, scope *models.RequestScope, docID string, acting *models.User) error
	SelfCancel(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) error
}
