package models

import "time"

type Doc struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	AuthorID     string    `json:"author_id"`
	ParentID     string    `json:"parent_id"`
	GroupIDs     []string  `json:"group_ids"`
	Tags         []string  `json:"tags"`
	LastEditorID string    `json:"last_editor_id"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

type OrderBy string

const (
	OrderByModified OrderBy = "modified"
	OrderByTitle    OrderBy = "title"
	OrderByAuthor   OrderBy = "author"
	OrderByCreated  OrderBy = "created"
	OrderByDate     OrderBy = "date"
)

type Order string

const (
	OrderASC  Order = "ASC"
	OrderDESC Order = "DESC"
)

// ParseOrderBy reports whether s names a known sort key.
func ParseOrderBy(s string) (OrderBy, bool) {
	switch OrderBy(s) {
	case OrderByModified, OrderByTitle, OrderByAuthor, OrderByCreated, OrderByDate:
		return OrderBy(s), true
	default:
		return "", false
	}
}

func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case OrderASC, OrderDESC:
		return Order(s), true
	default:
		return "", false
	}
}

// DefaultOrderFor returns the implicit direction for a sort key: date-like
// keys list newest first, everything else ascending.
func DefaultOrderFor(orderBy OrderBy) Order {
	if orderBy == OrderByModified || orderBy == OrderByDate {
		return OrderDESC
	}
	return OrderASC
}

// QuerySpec is the canonical, fully populated description of one doc listing.
// It is resolved once per request and never mutated afterwards.
type QuerySpec struct {
	DocIDs      []string
	DocSlug     string
	GroupIDs    []string
	ParentID    string
	AuthorID    string
	EditedByID  string
	Tags        []string
	SearchTerms string
	OrderBy     OrderBy
	Order       Order
	Page        int
	PageSize    int
}

// QueryOverrides carries the caller's explicit filter values. Nil/empty
// fields defer to the request context and then to the hard defaults.
type QueryOverrides struct {
	DocIDs      []string
	DocSlug     *string
	GroupIDs    []string
	ParentID    *string
	AuthorID    *string
	EditedByID  *string
	Tags        []string
	SearchTerms *string
	OrderBy     *OrderBy
	Order       *Order
	Page        *int
	PageSize    *int
}

type ViewKind string

const (
	ViewAll       ViewKind = ""
	ViewStartedBy ViewKind = "started-by"
	ViewEditedBy  ViewKind = "edited-by"
)

// RequestContext holds the ambient facts a listing request is resolved
// against: the group the request is scoped to, the profile being viewed,
// and the raw (still URL-encoded) listing parameters.
type RequestContext struct {
	CurrentGroupID string
	ViewedUserID   string
	View           ViewKind

	TagsParam     string
	SearchParam   string
	OrderByParam  string
	OrderParam    string
	PageParam     string
	PageSizeParam string
}
