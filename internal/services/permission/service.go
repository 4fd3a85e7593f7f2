package permissionservice

import (
	"collabdocs/internal/access"
	"collabdocs/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

const pkg = "permissionService/"

const (
	roleAdmin = "admin"
	roleMod   = "mod"
)

// PermissionService answers every per-doc access question: the effective
// settings snapshot, its public/private/limited summary, and whether a
// given viewer clears a capability.
type PermissionService struct {
	log          *slog.Logger
	docs         DocProvider
	settingsRepo SettingsRepository
	groups       GroupRepository
	friends      Friender
	cache        Cache
	policy       access.Policy
}

func New(
	log *slog.Logger,
	docs DocProvider,
	settingsRepo SettingsRepository,
	groups GroupRepository,
	friends Friender,
	cache Cache,
	policy access.Policy,
) *PermissionService {
	return &PermissionService{
		log:          log,
		docs:         docs,
		settingsRepo: settingsRepo,
		groups:       groups,
		friends:      friends,
		cache:        cache,
		policy:       policy,
	}
}

// Snapshot returns the doc's effective settings and their summary badge.
func (s *PermissionService) Snapshot(ctx context.Context, docID string) (models.AccessSettings, models.AccessSummary, error) {
	op := pkg + "Snapshot"

	log := s.log.With(slog.String("op", op))

	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	settings, err := s.loadSettings(ctx, docID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	visibility, err := s.groupVisibility(ctx, doc)
	if err != nil {
		log.Error("failed to get group visibility", slog.String("doc_id", docID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	effective := access.Effective(settings)

	return effective, s.policy.Classify(effective, visibility), nil
}

// Can reports whether viewer (nil for anonymous) clears the capability on
// the doc.
func (s *PermissionService) Can(ctx context.Context, viewer *models.User, capability models.Capability, docID string) (bool, error) {
	op := pkg + "Can"

	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	settings, err := s.loadSettings(ctx, docID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	level := access.Effective(settings)[capability]

	facts, err := s.gatherFacts(ctx, viewer, doc, level)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return access.Satisfies(level, facts), nil
}

// CanForceCancel implements the edit-lock coordinator's authorization
// check: site admins, the doc creator, and admins/mods of an associated
// group may force-cancel a lock.
func (s *PermissionService) CanForceCancel(ctx context.Context, acting *models.User, docID string) (bool, error) {
	op := pkg + "CanForceCancel"

	if acting == nil {
		return false, nil
	}

	if acting.IsAdmin {
		return true, nil
	}

	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if doc.AuthorID == acting.ID {
		return true, nil
	}

	return s.isGroupAdminMod(ctx, doc, acting.ID)
}

// UpdateSettings validates and persists a settings change. Only the doc
// creator and site admins may change settings.
func (s *PermissionService) UpdateSettings(ctx context.Context, docID string, acting *models.User, settings models.AccessSettings) error {
	op := pkg + "UpdateSettings"

	log := s.log.With(slog.String("op", op))

	if acting == nil {
		return models.ErrForbidden
	}

	doc, err := s.docs.DocByID(ctx, docID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if doc.AuthorID != acting.ID && !acting.IsAdmin {
		log.Warn("settings change refused", slog.String("doc_id", docID), slog.String("user_id", acting.ID))
		return models.ErrForbidden
	}

	for cap, level := range settings {
		if _, ok := models.ParseCapability(string(cap)); !ok {
			log.Warn("unknown capability", slog.String("capability", string(cap)))
			return models.ErrInvalidParams
		}

		if _, ok := models.ParseAccessLevel(string(level)); !ok {
			log.Warn("unknown access level", slog.String("level", string(level)))
			return models.ErrInvalidParams
		}
	}

	if err := s.settingsRepo.SaveDocSettings(ctx, docID, access.Effective(settings)); err != nil {
		log.Error("failed to save settings", slog.String("doc_id", docID), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Del(ctx, settingsCacheKey(docID)); err != nil {
		log.Error("failed to invalidate settings cache", slog.String("error", err.Error()))
	}

	log.Debug("settings updated", slog.String("doc_id", docID))

	return nil
}

func (s *PermissionService) loadSettings(ctx context.Context, docID string) (models.AccessSettings, error) {
	op := pkg + "loadSettings"

	log := s.log.With(slog.String("op", op))

	key := settingsCacheKey(docID)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var settings models.AccessSettings
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return settings, nil
		}
		log.Warn("dropping malformed cached settings", slog.String("doc_id", docID))
	}

	settings, err := s.settingsRepo.DocSettings(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrNoRows) {
			return models.AccessSettings{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if raw, err := json.Marshal(settings); err == nil {
		if err := s.cache.Set(ctx, key, string(raw)); err != nil {
			log.Error("failed to cache settings", slog.String("error", err.Error()))
		}
	}

	return settings, nil
}

func (s *PermissionService) groupVisibility(ctx context.Context, doc *models.Doc) (models.GroupVisibility, error) {
	if len(doc.GroupIDs) == 0 {
		return models.GroupNone, nil
	}

	// A doc shared with any non-public group inherits the stricter state.
	for _, groupID := range doc.GroupIDs {
		visibility, err := s.groups.VisibilityByID(ctx, groupID)
		if err != nil {
			return "", err
		}

		if visibility != models.GroupPublic {
			return models.GroupNonPublic, nil
		}
	}

	return models.GroupPublic, nil
}

func (s *PermissionService) gatherFacts(ctx context.Context, viewer *models.User, doc *models.Doc, level models.AccessLevel) (access.Facts, error) {
	facts := access.Facts{}

	if viewer == nil {
		return facts, nil
	}

	facts.LoggedIn = true
	facts.IsSiteAdmin = viewer.IsAdmin
	facts.IsCreator = viewer.ID == doc.AuthorID

	// Relationship lookups are only paid for the level under test.
	switch level {
	case models.LevelFriends:
		isFriend, err := s.friends.AreFriends(ctx, viewer.ID, doc.AuthorID)
		if err != nil {
			return facts, err
		}
		facts.IsFriend = isFriend
	case models.LevelGroupMembers:
		for _, groupID := range doc.GroupIDs {
			role, err := s.groups.MemberRole(ctx, groupID, viewer.ID)
			if err != nil {
				return facts, err
			}
			if role != "" {
				facts.IsGroupMember = true
				break
			}
		}
	case models.LevelAdminsMods:
		isAdminMod, err := s.isGroupAdminMod(ctx, doc, viewer.ID)
		if err != nil {
			return facts, err
		}
		facts.IsGroupAdminMod = isAdminMod
	}

	return facts, nil
}

func (s *PermissionService) isGroupAdminMod(ctx context.Context, doc *models.Doc, userID string) (bool, error) {
	for _, groupID := range doc.GroupIDs {
		role, err := s.groups.MemberRole(ctx, groupID, userID)
		if err != nil {
			return false, err
		}

		if role == roleAdmin || role == roleMod {
			return true, nil
		}
	}

	return false, nil
}

func settingsCacheKey(docID string) string {
	return "docsettings:" + docID
}
