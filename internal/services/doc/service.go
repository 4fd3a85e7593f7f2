package docservice

import (
	"collabdocs/internal/access"
	"collabdocs/internal/models"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	uuid "github.com/satori/go.uuid"
)

const pkg = "docService/"

type DocService struct {
	log      *slog.Logger
	docRepo  DocRepository
	settings SettingsStorer
	perms    PermissionChecker
	locks    LockChecker
	cache    Cache
}

func New(
	log *slog.Logger,
	docRepo DocRepository,
	settings SettingsStorer,
	perms PermissionChecker,
	locks LockChecker,
	cache Cache,
) *DocService {
	return &DocService{
		log:      log,
		docRepo:  docRepo,
		settings: settings,
		perms:    perms,
		locks:    locks,
		cache:    cache,
	}
}

// CreateDoc stores a new doc with its access settings attached, as a
// single creation step. Settings gaps are filled with the capability
// defaults before persisting.
func (ds *DocService) CreateDoc(ctx context.Context, requester *models.User, doc *models.Doc, settings models.AccessSettings) (string, error) {
	op := pkg + "CreateDoc"

	log := ds.log.With(slog.String("op", op))

	if requester == nil {
		return "", models.ErrForbidden
	}

	if strings.TrimSpace(doc.Title) == "" {
		log.Warn("rejecting doc without title")
		return "", models.ErrInvalidParams
	}

	for _, level := range settings {
		if _, ok := models.ParseAccessLevel(string(level)); !ok {
			log.Warn("unknown access level", slog.String("level", string(level)))
			return "", models.ErrInvalidParams
		}
	}

	now := time.Now()

	doc.ID = uuid.NewV4().String()
	doc.AuthorID = requester.ID
	doc.Slug = slugify(doc.Title)
	doc.CreatedAt = now
	doc.ModifiedAt = now

	log.Debug("attempting to create doc", slog.String("title", doc.Title), slog.String("slug", doc.Slug))

	if err := ds.docRepo.CreateDoc(ctx, doc); err != nil {
		log.Error("failed to create doc", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := ds.settings.SaveDocSettings(ctx, doc.ID, access.Effective(settings)); err != nil {
		log.Error("failed to save doc settings", slog.String("error", err.Error()))
		_ = ds.docRepo.DeleteDoc(ctx, doc.ID)
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("doc created successfully", slog.String("doc_id", doc.ID))

	return doc.ID, nil
}

// DocByID fetches a doc after the read capability check.
func (ds *DocService) DocByID(ctx context.Context, docID string, requester *models.User) (*models.Doc, error) {
	op := pkg + "DocByID"

	log := ds.log.With(slog.String("op", op))

	doc, err := ds.docRepo.DocByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocNotFound) {
			return nil, models.ErrDocNotFound
		}
		log.Error("failed to get doc", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	canRead, err := ds.perms.Can(ctx, requester, models.CapRead, docID)
	if err != nil {
		log.Error("failed to check read capability", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	if !canRead {
		log.Warn("read refused", slog.String("doc_id", docID))
		return nil, models.ErrForbidden
	}

	return doc, nil
}

func (ds *DocService) DeleteDoc(ctx context.Context, docID string, requester *models.User) error {
	op := pkg + "DeleteDoc"

	log := ds.log.With(slog.String("op", op))

	if requester == nil {
		return models.ErrForbidden
	}

	doc, err := ds.docRepo.DocByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocNotFound) {
			return models.ErrDocNotFound
		}
		log.Error("failed to get doc", slog.String("error", err.Error()))
		return models.ErrInternal
	}

	if doc.AuthorID != requester.ID && !requester.IsAdmin {
		log.Warn("delete refused", slog.String("doc_id", docID), slog.String("user_id", requester.ID))
		return models.ErrForbidden
	}

	if err := ds.docRepo.DeleteDoc(ctx, docID); err != nil {
		log.Error("failed to delete doc", slog.String("error", err.Error()))
		return models.ErrInternal
	}

	if err := ds.cache.Del(ctx, "docsettings:"+docID); err != nil {
		log.Error("failed to invalidate settings cache", slog.String("error", err.Error()))
	}

	log.Debug("doc deleted successfully", slog.String("doc_id", docID))

	return nil
}

// BeginEdit opens the edit screen: it verifies the edit capability, warns
// off when another user holds the lock, and plants the requester's edit
// marker.
func (ds *DocService) BeginEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error {
	op := pkg + "BeginEdit"

	log := ds.log.With(slog.String("op", op))

	if requester == nil {
		return models.ErrForbidden
	}

	canEdit, err := ds.perms.Can(ctx, requester, models.CapEdit, docID)
	if err != nil {
		log.Error("failed to check edit capability", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !canEdit {
		log.Warn("edit refused", slog.String("doc_id", docID), slog.String("user_id", requester.ID))
		return models.ErrForbidden
	}

	state, err := ds.locks.CurrentLock(ctx, scope, docID, requester.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if state.Status == models.LockStatusLocked {
		log.Warn("doc locked by another user",
			slog.String("doc_id", docID), slog.String("holder_id", state.HolderID))
		return models.ErrDocLocked
	}

	now := time.Now()

	if err := ds.docRepo.SetEditMarker(ctx, docID, requester.ID, now); err != nil {
		log.Error("failed to set edit marker", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	scope.Markers[docID] = models.EditMarker{HolderID: requester.ID, AcquiredAt: now}
	scope.Locks[docID] = models.SelfEditing(now)

	log.Debug("edit opened", slog.String("doc_id", docID), slog.String("user_id", requester.ID))

	return nil
}

// FinishEdit records the requester as last editor and releases their
// marker. The holder check mirrors BeginEdit; last write still wins at the
// storage layer.
func (ds *DocService) FinishEdit(ctx context.Context, scope *models.RequestScope, docID string, requester *models.User) error {
	op := pkg + "FinishEdit"

	log := ds.log.With(slog.String("op", op))

	if requester == nil {
		return models.ErrForbidden
	}

	state, err := ds.locks.CurrentLock(ctx, scope, docID, requester.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if state.Status == models.LockStatusLocked {
		log.Warn("finish refused, doc locked by another user",
			slog.String("doc_id", docID), slog.String("holder_id", state.HolderID))
		return models.ErrDocLocked
	}

	if err := ds.docRepo.Touch(ctx, docID, requester.ID, time.Now()); err != nil {
		log.Error("failed to record edit", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	scope.Markers[docID] = models.EditMarker{}
	scope.Locks[docID] = models.Unlocked()

	log.Debug("edit recorded", slog.String("doc_id", docID), slog.String("user_id", requester.ID))

	return nil
}

func slugify(title string) string {
	var b strings.Builder

	lastDash := true

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
