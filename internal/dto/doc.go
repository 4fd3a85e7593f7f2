package dto

import "time"

type CreateDocRequest struct {
	Title    string            `json:"title"`
	Excerpt  string            `json:"excerpt,omitempty"`
	ParentID string            `json:"parent_id,omitempty"`
	GroupIDs []string          `json:"group_ids,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
}

type DocResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt,omitempty"`
	AuthorID     string    `json:"author_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	GroupIDs     []string  `json:"group_ids,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	LastEditorID string    `json:"last_editor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

type ListDocsResponse struct {
	Docs       []DocResponse `json:"docs"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	RangeStart int           `json:"range_start"`
	RangeEnd   int           `json:"range_end"`
}

type SettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
	Summary  string            `json:"summary"`
}

type LockResponse struct {
	Status     string    `json:"status"`
	HolderID   string    `json:"holder_id,omitempty"`
	AcquiredAt time.Time `json:"acquired_at,omitempty"`
}
