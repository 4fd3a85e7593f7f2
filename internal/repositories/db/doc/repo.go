package docrepo

import (
	"collabdocs/internal/entities"
	"collabdocs/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "docRepo/"

const docColumns = `d.id AS id,
			d.title AS title,
			d.slug AS slug,
			d.excerpt AS excerpt,
			d.author_id AS author_id,
			d.parent_id AS parent_id,
			d.last_editor_id AS last_editor_id,
			d.created_at AS created_at,
			d.modified_at AS modified_at`

// orderColumns whitelists the sort keys; anything else never reaches SQL.
var orderColumns = map[models.OrderBy]string{
	models.OrderByModified: "d.modified_at",
	models.OrderByTitle:    "d.title",
	models.OrderByAuthor:   "u.login",
	models.OrderByCreated:  "d.created_at",
	models.OrderByDate:     "d.created_at",
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// FindDocs executes a canonical query spec and returns one page of docs
// plus the total match count.
func (r *repository) FindDocs(ctx context.Context, spec models.QuerySpec) ([]*models.Doc, int, error) {
	op := pkg + "FindDocs"

	where := make([]string, 0, 8)
	args := make([]any, 0, 8)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(spec.DocIDs) > 0 {
		where = append(where, fmt.Sprintf("d.id = ANY(%s)", arg(pq.Array(spec.DocIDs))))
	}

	if spec.DocSlug != "" {
		where = append(where, fmt.Sprintf("d.slug = %s", arg(spec.DocSlug)))
	}

	if len(spec.GroupIDs) > 0 {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM doc_groups dg WHERE dg.doc_id = d.id AND dg.group_id = ANY(%s))",
			arg(pq.Array(spec.GroupIDs))))
	}

	if spec.ParentID != "" {
		where = append(where, fmt.Sprintf("d.parent_id = %s", arg(spec.ParentID)))
	}

	if spec.AuthorID != "" {
		where = append(where, fmt.Sprintf("d.author_id = %s", arg(spec.AuthorID)))
	}

	if spec.EditedByID != "" {
		where = append(where, fmt.Sprintf("d.last_editor_id = %s", arg(spec.EditedByID)))
	}

	if len(spec.Tags) > 0 {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM doc_tags dt WHERE dt.doc_id = d.id AND dt.tag = ANY(%s))",
			arg(pq.Array(spec.Tags))))
	}

	if spec.SearchTerms != "" {
		pattern := "%" + spec.SearchTerms + "%"
		where = append(where, fmt.Sprintf("(d.title ILIKE %s OR d.excerpt ILIKE %s)",
			arg(pattern), arg(pattern)))
	}

	orderColumn, ok := orderColumns[spec.OrderBy]
	if !ok {
		orderColumn = orderColumns[models.OrderByModified]
	}

	direction := "ASC"
	if spec.Order == models.OrderDESC {
		direction = "DESC"
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "\n\t\tWHERE " + strings.Join(where, "\n\t\tAND ")
	}

	// Snapshot before LIMIT/OFFSET placeholders are appended so the count
	// fallback can rerun the same WHERE with the same args.
	filterArgs := args[:len(args):len(args)]

	query := fmt.Sprintf(`SELECT
			%s,
			COUNT(*) OVER() AS total_count
		FROM docs d
		INNER JOIN users u ON u.id = d.author_id`, docColumns)
	query += whereClause
	query += fmt.Sprintf("\n\t\tORDER BY %s %s, d.id ASC", orderColumn, direction)

	offset := (spec.Page - 1) * spec.PageSize
	query += fmt.Sprintf("\n\t\tLIMIT %s OFFSET %s", arg(spec.PageSize), arg(offset))

	rawDocs := make([]entities.Doc, 0)

	if err := r.db.SelectContext(ctx, &rawDocs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	total := 0

	switch {
	case len(rawDocs) > 0:
		total = rawDocs[0].TotalCount
	case offset > 0:
		// A page past the end returns no rows, so the window count is
		// unavailable and the matches have to be counted separately.
		countQuery := "SELECT COUNT(*)\n\t\tFROM docs d\n\t\tINNER JOIN users u ON u.id = d.author_id" + whereClause

		if err := r.db.GetContext(ctx, &total, countQuery, filterArgs...); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	docs := make([]*models.Doc, 0, len(rawDocs))

	for _, rawDoc := range rawDocs {
		doc, err := r.hydrate(ctx, rawDoc)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}

		docs = append(docs, doc)
	}

	return docs, total, nil
}

func (r *repository) DocByID(ctx context.Context, id string) (*models.Doc, error) {
	op := pkg + "DocByID"

	rawDoc := entities.Doc{}

	err := r.db.GetContext(ctx, &rawDoc,
		fmt.Sprintf(`SELECT
			%s
		FROM docs d
		WHERE d.id = $1`, docColumns),
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := r.hydrate(ctx, rawDoc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc, nil
}

func (r *repository) CreateDoc(ctx context.Context, doc *models.Doc) error {
	op := pkg + "CreateDoc"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var parentID any
	if doc.ParentID != "" {
		parentID = doc.ParentID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO docs (id, title, slug, excerpt, author_id, parent_id, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.Title, doc.Slug, doc.Excerpt, doc.AuthorID, parentID, doc.CreatedAt, doc.ModifiedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, tag := range doc.Tags {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO doc_tags (doc_id, tag) VALUES ($1, $2)`,
			doc.ID, tag)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	for _, groupID := range doc.GroupIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO doc_groups (doc_id, group_id) VALUES ($1, $2)`,
			doc.ID, groupID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) DeleteDoc(ctx context.Context, id string) error {
	op := pkg + "DeleteDoc"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM docs WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Touch records userID as last editor at the given time and releases their
// edit marker in the same statement.
func (r *repository) Touch(ctx context.Context, docID string, userID string, at time.Time) error {
	op := pkg + "Touch"

	_, err := r.db.ExecContext(ctx,
		`UPDATE docs
		SET last_editor_id = $2,
			modified_at = $3,
			editing_user_id = NULL,
			editing_started_at = NULL
		WHERE id = $1`,
		docID, userID, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) SetEditMarker(ctx context.Context, docID string, userID string, at time.Time) error {
	op := pkg + "SetEditMarker"

	_, err := r.db.ExecContext(ctx,
		`UPDATE docs SET editing_user_id = $2, editing_started_at = $3 WHERE id = $1`,
		docID, userID, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ClearEditMarker(ctx context.Context, docID string) error {
	op := pkg + "ClearEditMarker"

	_, err := r.db.ExecContext(ctx,
		`UPDATE docs SET editing_user_id = NULL, editing_started_at = NULL WHERE id = $1`,
		docID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// EditMarker returns the current edit marker holder and start time, both
// zero when nobody is editing.
func (r *repository) EditMarker(ctx context.Context, docID string) (string, time.Time, error) {
	op := pkg + "EditMarker"

	marker := entities.EditMarker{}

	err := r.db.GetContext(ctx, &marker,
		`SELECT
			d.editing_user_id AS editing_user_id,
			d.editing_started_at AS editing_started_at
		FROM docs d
		WHERE d.id = $1`,
		docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, fmt.Errorf("%s: %w", op, models.ErrDocNotFound)
		}
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	if !marker.EditingUserID.Valid {
		return "", time.Time{}, nil
	}

	return marker.EditingUserID.String, marker.EditingStartedAt.Time, nil
}

func (r *repository) DocSettings(ctx context.Context, docID string) (models.AccessSettings, error) {
	op := pkg + "DocSettings"

	rawSettings := make([]entities.DocSetting, 0)

	err := r.db.SelectContext(ctx, &rawSettings,
		`SELECT
			s.doc_id AS doc_id,
			s.capability AS capability,
			s.level AS level
		FROM doc_settings s
		WHERE s.doc_id = $1`,
		docID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	settings := make(models.AccessSettings, len(rawSettings))

	for _, raw := range rawSettings {
		settings[models.Capability(raw.Capability)] = models.AccessLevel(raw.Level)
	}

	return settings, nil
}

func (r *repository) SaveDocSettings(ctx context.Context, docID string, settings models.AccessSettings) error {
	op := pkg + "SaveDocSettings"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM doc_settings WHERE doc_id = $1`, docID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, cap := range models.Capabilities {
		level, ok := settings[cap]
		if !ok {
			continue
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO doc_settings (doc_id, capability, level) VALUES ($1, $2, $3)`,
			docID, string(cap), string(level))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) hydrate(ctx context.Context, rawDoc entities.Doc) (*models.Doc, error) {
	tags, err := r.docTags(ctx, rawDoc.ID)
	if err != nil {
		return nil, err
	}

	groupIDs, err := r.docGroups(ctx, rawDoc.ID)
	if err != nil {
		return nil, err
	}

	return &models.Doc{
		ID:           rawDoc.ID,
		Title:        rawDoc.Title,
		Slug:         rawDoc.Slug,
		Excerpt:      rawDoc.Excerpt,
		AuthorID:     rawDoc.AuthorID,
		ParentID:     rawDoc.ParentID.String,
		GroupIDs:     groupIDs,
		Tags:         tags,
		LastEditorID: rawDoc.LastEditorID.String,
		CreatedAt:    rawDoc.CreatedAt,
		ModifiedAt:   rawDoc.ModifiedAt,
	}, nil
}

func (r *repository) docTags(ctx context.Context, docID string) ([]string, error) {
	op := pkg + "docTags"

	tags := make([]string, 0)

	err := r.db.SelectContext(ctx, &tags,
		`SELECT
			dt.tag
		FROM doc_tags dt
		WHERE dt.doc_id = $1
		ORDER BY dt.tag ASC`,
		docID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tags, nil
}

func (r *repository) docGroups(ctx context.Context, docID string) ([]string, error) {
	op := pkg + "docGroups"

	groupIDs := make([]string, 0)

	err := r.db.SelectContext(ctx, &groupIDs,
		`SELECT
			dg.group_id
		FROM doc_groups dg
		WHERE dg.doc_id = $1`,
		docID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groupIDs, nil
}
