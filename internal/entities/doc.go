package entities

import (
	"database/sql"
	"time"
)

type Doc struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Slug         string         `db:"slug"`
	Excerpt      string         `db:"excerpt"`
	AuthorID     string         `db:"author_id"`
	ParentID     sql.NullString `db:"parent_id"`
	LastEditorID sql.NullString `db:"last_editor_id"`
	CreatedAt    time.Time      `db:"created_at"`
	ModifiedAt   time.Time      `db:"modified_at"`
	TotalCount   int            `db:"total_count"`
}

type EditMarker struct {
	EditingUserID    sql.NullString `db:"editing_user_id"`
	EditingStartedAt sql.NullTime   `db:"editing_started_at"`
}

type DocSetting struct {
	DocID      string `db:"doc_id"`
	Capability string `db:"capability"`
	Level      string `db:"level"`
}
