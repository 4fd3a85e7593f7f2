package permissionservice

import (
	"collabdocs/internal/models"
	"context"
)

type DocProvider interface {
	DocByID(ctx context.Context, docID string) (*models.Doc, error)
}

type SettingsRepository interface {
	DocSettings(ctx context.Context, docID string) (models.AccessSettings, error)
	SaveDocSettings(ctx context.Context, docID string, settings models.AccessSettings) error
}

type GroupRepository interface {
	VisibilityByID(ctx context.Context, groupID string) (models.GroupVisibility, error)
	MemberRole(ctx context.Context, groupID string, userID string) (string, error)
}

type Friender interface {
	AreFriends(ctx context.Context, userID string, otherID string) (bool, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}
