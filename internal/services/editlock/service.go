package editlockservice

import (
	"collabdocs/internal/models"
	"context"
	"fmt"
	"log/slog"
	"time"
)

const pkg = "editlockService/"

// EditLockService derives advisory edit locks from a doc's edit marker.
// The lock is a warning signal for the UI, not mutual exclusion: storage
// write ordering remains the actual conflict resolution.
type EditLockService struct {
	log        *slog.Logger
	markers    EditMarkerProvider
	authorizer Authorizer
	window     time.Duration
	now        func() time.Time
}

// New builds the coordinator. A zero window means a marker never expires on
// its own and must be cleared by an explicit cancel.
func New(log *slog.Logger, markers EditMarkerProvider, authorizer Authorizer, window time.Duration) *EditLockService {
	return &EditLockService{
		log:        log,
		markers:    markers,
		authorizer: authorizer,
		window:     window,
		now:        time.Now,
	}
}

// CurrentLock evaluates the lock state of a doc for the given requester.
// The stored marker is memoized into the request scope so repeated calls
// cost one storage lookup, but classification runs per call: the same
// marker reads as self-editing for its holder and as locked for everyone
// else.
func (s *EditLockService) CurrentLock(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) (models.LockState, error) {
	op := pkg + "CurrentLock"

	marker, ok := scope.Markers[docID]
	if !ok {
		log := s.log.With(slog.String("op", op))

		holderID, acquiredAt, err := s.markers.EditMarker(ctx, docID)
		if err != nil {
			log.Error("failed to get edit marker", slog.String("doc_id", docID), slog.String("error", err.Error()))
			return models.LockState{}, fmt.Errorf("%s: %w", op, err)
		}

		marker = models.EditMarker{HolderID: holderID, AcquiredAt: acquiredAt}
		scope.Markers[docID] = marker
	}

	state := s.evaluate(marker.HolderID, marker.AcquiredAt, requesterID)
	scope.Locks[docID] = state

	return state, nil
}

func (s *EditLockService) evaluate(holderID string, acquiredAt time.Time, requesterID string) models.LockState {
	if holderID == "" {
		return models.Unlocked()
	}

	if s.window > 0 && s.now().Sub(acquiredAt) > s.window {
		return models.Unlocked()
	}

	// An edit marker belonging to the requester is never a lock against them.
	if requesterID != "" && holderID == requesterID {
		return models.SelfEditing(acquiredAt)
	}

	return models.LockedBy(holderID, acquiredAt)
}

// Cancel force-clears the edit marker on a doc. Idempotent: cancelling an
// unlocked doc succeeds without side effects. Requires the force-cancel
// privilege.
func (s *EditLockService) Cancel(ctx context.Context, scope *models.RequestScope, docID string, acting *models.User) error {
	op := pkg + "Cancel"

	log := s.log.With(slog.String("op", op))

	allowed, err := s.authorizer.CanForceCancel(ctx, acting, docID)
	if err != nil {
		log.Error("failed to check cancel privilege", slog.String("doc_id", docID), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !allowed {
		log.Warn("unauthorized lock cancel attempt", slog.String("doc_id", docID))
		return models.ErrUnauthorized
	}

	if err := s.markers.ClearEditMarker(ctx, docID); err != nil {
		log.Error("failed to clear edit marker", slog.String("doc_id", docID), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	scope.Markers[docID] = models.EditMarker{}
	scope.Locks[docID] = models.Unlocked()

	log.Debug("edit lock cancelled", slog.String("doc_id", docID))

	return nil
}

// SelfCancel clears the marker only when the requester holds it, backing
// the "cancel my edit" action. Clearing someone else's marker this way is
// refused.
func (s *EditLockService) SelfCancel(ctx context.Context, scope *models.RequestScope, docID string, requesterID string) error {
	op := pkg + "SelfCancel"

	log := s.log.With(slog.String("op", op))

	state, err := s.CurrentLock(ctx, scope, docID, requesterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch state.Status {
	case models.LockStatusUnlocked:
		return nil
	case models.LockStatusLocked:
		log.Warn("self-cancel refused, lock held by another user",
			slog.String("doc_id", docID), slog.String("holder_id", state.HolderID))
		return models.ErrUnauthorized
	}

	if err := s.markers.ClearEditMarker(ctx, docID); err != nil {
		log.Error("failed to clear edit marker", slog.String("doc_id", docID), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	scope.Markers[docID] = models.EditMarker{}
	scope.Locks[docID] = models.Unlocked()

	return nil
}
