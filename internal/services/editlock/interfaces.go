package editlockservice

import (
	"collabdocs/internal/models"
	"context"
	"time"
)

type EditMarkerProvider interface {
	EditMarker(ctx context.Context, docID string) (string, time.Time, error)
	ClearEditMarker(ctx context.Context, docID string) error
}

type Authorizer interface {
	CanForceCancel(ctx context.Context, acting *models.User, docID string) (bool, error)
}
