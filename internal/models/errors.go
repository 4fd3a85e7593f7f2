package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRows                 = errors.New("no rows")
	ErrUNIQUEConstraintFailed = errors.New("unique constraint failed")
	ErrFailedToAddUser        = errors.New("failed to add user")
	ErrInternal               = errors.New("internal server error")
	ErrMethodNotAllowed       = errors.New("method not allowed")
	ErrForbidden              = errors.New("access denied")
	ErrInvalidParams          = errors.New("invalid params")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
	ErrDocNotFound            = errors.New("doc not found")
	ErrGroupNotFound          = errors.New("group not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")

	// ErrNoActiveQuery means a caller iterated the doc list before
	// resolving a query. A caller protocol violation, never swallowed.
	ErrNoActiveQuery = errors.New("no active query")

	// ErrUnauthorized is returned when a lock cancel is attempted without
	// the force-cancel privilege.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDocLocked means another user holds the edit lock on the doc.
	ErrDocLocked = errors.New("doc is locked for editing")
)

type UniqueConstraintError struct {
	Constraint string
	Err        error
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Constraint)
}

func (e *UniqueConstraintError) Unwrap() error {
	return e.Err
}
