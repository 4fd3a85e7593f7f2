package docservice

import (
	"collabdocs/internal/models"
	"context"
	"time"
)

type DocRepository interface {
	CreateDoc(ctx context.Context, doc *models.Doc) error
	DeleteDoc(ctx context.Context, id string) error
	DocByID(ctx context.Context, id string) (*models.Doc, error)
	SetEditMarker(ctx context.Context, docID string, userID string, at time.Time) error
	Touch(ctx context.Context, docID string, userID string, at time.Time) error
}

type SettingsStorer interface {
	SaveDocSettings(ctx context.Context, docID string, settings models.AccessSettings) error
}

type PermissionChecker interface {
	Can(ctx context.Context, viewer *models.User, capability models.Capability, docID string) (bool, error)
}

type LockChecker interface {
	CurrentLock(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) (models.LockState, error)
}

type Cache interface {
	Del(ctx context.Context, keys ...string) error
}
