package models

import "time"

// QueryResult is the memoized outcome of one resolved and executed listing
// query: the spec it ran under, the page of docs, the total match count,
// and the iteration cursor.
type QueryResult struct {
	Spec   QuerySpec
	Docs   []*Doc
	Total  int
	Cursor int
}

// EditMarker is the raw edit marker of a doc as stored, before it has been
// classified against any particular requester. A zero marker means the doc
// carries none.
type EditMarker struct {
	HolderID   string
	AcquiredAt time.Time
}

// RequestScope holds all per-request memoized state. A fresh scope is
// created for every inbound request and discarded with it; scopes must
// never be shared between requests.
//
// Markers caches the stored edit markers so repeated lock checks on one doc
// cost a single storage lookup. Locks carries the latest classification of
// each marker for response rendering.
type RequestScope struct {
	Query   *QueryResult
	Markers map[string]EditMarker
	Locks   map[string]LockState
}

func NewRequestScope() *RequestScope {
	return &RequestScope{
		Markers: make(map[string]EditMarker),
		Locks:   make(map[string]LockState),
	}
}
