package models

type Capability string

const (
	CapRead         Capability = "read"
	CapEdit         Capability = "edit"
	CapReadComments Capability = "read_comments"
	CapPostComments Capability = "post_comments"
	CapViewHistory  Capability = "view_history"
)

// Capabilities lists every capability in display order.
var Capabilities = []Capability{
	CapRead,
	CapEdit,
	CapReadComments,
	CapPostComments,
	CapViewHistory,
}

type AccessLevel string

const (
	LevelAnyone       AccessLevel = "anyone"
	LevelLoggedIn     AccessLevel = "loggedin"
	LevelFriends      AccessLevel = "friends"
	LevelGroupMembers AccessLevel = "group-members"
	LevelAdminsMods   AccessLevel = "admins-mods"
	LevelCreator      AccessLevel = "creator"
	LevelNoOne        AccessLevel = "no-one"
)

func ParseAccessLevel(s string) (AccessLevel, bool) {
	switch AccessLevel(s) {
	case LevelAnyone, LevelLoggedIn, LevelFriends, LevelGroupMembers,
		LevelAdminsMods, LevelCreator, LevelNoOne:
		return AccessLevel(s), true
	default:
		return "", false
	}
}

func ParseCapability(s string) (Capability, bool) {
	switch Capability(s) {
	case CapRead, CapEdit, CapReadComments, CapPostComments, CapViewHistory:
		return Capability(s), true
	default:
		return "", false
	}
}

// AccessSettings maps capabilities to access levels. A stored value may be
// partial; access.Effective fills the gaps with per-capability defaults.
type AccessSettings map[Capability]AccessLevel

type AccessSummary string

const (
	SummaryPublic  AccessSummary = "public"
	SummaryPrivate AccessSummary = "private"
	SummaryLimited AccessSummary = "limited"
)

type GroupVisibility string

const (
	GroupPublic    GroupVisibility = "public"
	GroupNonPublic GroupVisibility = "non-public"
	GroupNone      GroupVisibility = "none"
)
