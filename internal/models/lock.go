package models

import "time"

type LockStatus string

const (
	LockStatusUnlocked    LockStatus = "unlocked"
	LockStatusLocked      LockStatus = "locked"
	LockStatusSelfEditing LockStatus = "self-editing"
)

// LockState is a derived view of a doc's current edit marker. It is never
// stored; it is recomputed at most once per request.
type LockState struct {
	Status     LockStatus `json:"status"`
	HolderID   string     `json:"holder_id,omitempty"`
	AcquiredAt time.Time  `json:"acquired_at,omitempty"`
}

func Unlocked() LockState {
	return LockState{Status: LockStatusUnlocked}
}

func LockedBy(holderID string, acquiredAt time.Time) LockState {
	return LockState{Status: LockStatusLocked, HolderID: holderID, AcquiredAt: acquiredAt}
}

func SelfEditing(acquiredAt time.Time) LockState {
	return LockState{Status: LockStatusSelfEditing, AcquiredAt: acquiredAt}
}
