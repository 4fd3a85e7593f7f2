package docs

import (
	"collabdocs/internal/models"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/mock"
)

type mockDocLister struct {
	mock.Mock
}

func (m *mockDocLister) EnsureQuery(ctx context.Context, scope *models.RequestScope, overrides models.QueryOverrides, reqCtx models.RequestContext) (*models.QueryResult, error) {
	args := m.Called(ctx, scope, overrides, reqCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueryResult), args.Error(1)
}

func (m *mockDocLister) CurrentRangeStart(scope *models.RequestScope) int {
	args := m.Called(scope)
	return args.Int(0)
}

func (m *mockDocLister) CurrentRangeEnd(scope *models.RequestScope) int {
	args := m.Called(scope)
	return args.Int(0)
}

type mockDocService struct {
	mock.Mock
}

func (m *mockDocService) CreateDoc(ctx context.Context, requester *models.User, doc *models.Doc, settings models.AccessSettings) (string, error) {
	args := m.Called(ctx, requester, doc, settings)
	return args.String(0), args.Error(1)
}

func (m *mockDocService) DocByID(ctx context.Context, docID string, requester *models.User) (*models.Doc, error) {
	args := m.Called(ctx, docID, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doc), args.Error(1)
}

func (m *mockDocService) DeleteDoc(ctx context.Context, docID string, requester *models.User) error {
	args := m.Called(ctx, docID, requester)
	return args.Error(0)
}

func (m *mockDocService) BeginEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error {
	args := m.Called(ctx, scope, docID, requester)
	return args.Error(0)
}

func (m *mockDocService) FinishEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error {
	args := m.Called(ctx, scope, docID, requester)
	return args.Error(0)
}

type mockPermissionManager struct {
	mock.Mock
}

func (m *mockPermissionManager) Snapshot(ctx context.Context, docID string) (models.AccessSettings, models.AccessSummary, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(models.AccessSettings), args.Get(1).(models.AccessSummary), args.Error(2)
}

func (m *mockPermissionManager) UpdateSettings(ctx context.Context, docID string, acting *models.User, settings models.AccessSettings) error {
	args := m.Called(ctx, docID, acting, settings)
	return args.Error(0)
}

type mockLockManager struct {
	mock.Mock
}

func (m *mockLockManager) CurrentLock(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) (models.LockState, error) {
	args := m.Called(ctx, scope, docID, requesterID)
	return args.Get(0).(models.LockState), args.Error(1)
}

func (m *mockLockManager) Cancel(ctx context.Context, scope *models.RequestScope, docID string, acting *models.User) error {
	args := m.Called(ctx, scope, docID, acting)
	return args.Error(0)
}

func (m *mockLockManager) SelfCancel(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) error {
	args := m.Called(ctx, scope, docID, requesterID)
	return args.Error(0)
}

// requestWith builds a request carrying an authenticated user and a fresh
// request scope, the way the middleware chain does.
func requestWith(method string, target string, requester *models.User, scope *models.RequestScope) *http.Request {
	req := httptest.NewRequest(method, target, nil)

	ctx := req.Context()
	if requester != nil {
		ctx = context.WithValue(ctx, models.UserContextKey, requester)
	}
	if scope != nil {
		ctx = context.WithValue(ctx, models.ScopeContextKey, scope)
	}

	return req.WithContext(ctx)
}
