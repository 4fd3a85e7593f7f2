package grouprepo

import (
	"collabdocs/internal/entities"
	"collabdocs/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "groupRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// VisibilityByID reports whether the group is browsable by anyone.
// Any status other than public (private, hidden) counts as non-public.
func (r *repository) VisibilityByID(ctx context.Context, groupID string) (models.GroupVisibility, error) {
	op := pkg + "VisibilityByID"

	group := entities.Group{}

	err := r.db.GetContext(ctx, &group,
		`SELECT
			g.id AS id,
			g.name AS name,
			g.visibility AS visibility
		FROM groups g
		WHERE g.id = $1`,
		groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.GroupNone, fmt.Errorf("%s: %w", op, models.ErrGroupNotFound)
		}
		return models.GroupNone, fmt.Errorf("%s: %w", op, err)
	}

	if group.Visibility == string(models.GroupPublic) {
		return models.GroupPublic, nil
	}

	return models.GroupNonPublic, nil
}

// MemberRole returns the user's role in the group, or an empty string
// when the user is not a member.
func (r *repository) MemberRole(ctx context.Context, groupID string, userID string) (string, error) {
	op := pkg + "MemberRole"

	member := entities.GroupMember{}

	err := r.db.GetContext(ctx, &member,
		`SELECT
			gm.group_id AS group_id,
			gm.user_id AS user_id,
			gm.role AS role
		FROM group_members gm
		WHERE gm.group_id = $1 AND gm.user_id = $2`,
		groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return member.Role, nil
}
