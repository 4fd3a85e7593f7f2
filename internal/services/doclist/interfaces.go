package doclistservice

import (
	"collabdocs/internal/models"
	"context"
)

type DocFinder interface {
	FindDocs(ctx context.Context, spec models.QuerySpec) ([]*models.Doc, int, error)
}
