package access

import "collabdocs/internal/models"

// defaults holds the per-capability fallback level applied to unset or
// unknown stored values.
var defaults = models.AccessSettings{
	models.CapRead:         models.LevelAnyone,
	models.CapEdit:         models.LevelLoggedIn,
	models.CapReadComments: models.LevelAnyone,
	models.CapPostComments: models.LevelLoggedIn,
	models.CapViewHistory:  models.LevelAnyone,
}

// Effective fills a possibly partial settings map so that every capability
// resolves to exactly one valid level. It never fails: unknown capabilities
// are ignored and unknown levels fall back to the capability default.
func Effective(partial models.AccessSettings) models.AccessSettings {
	out := make(models.AccessSettings, len(models.Capabilities))

	for _, cap := range models.Capabilities {
		level, ok := partial[cap]
		if !ok {
			out[cap] = defaults[cap]
			continue
		}

		if _, valid := models.ParseAccessLevel(string(level)); !valid {
			out[cap] = defaults[cap]
			continue
		}

		out[cap] = level
	}

	return out
}

// Policy is the classification contract: the per-capability baseline that
// still counts as "open", and how to treat the group-members level when the
// associated group is itself public. Both are embedder-overridable.
type Policy struct {
	Baselines models.AccessSettings

	// GroupMembersOpenWhenPublic controls the ambiguous branch: a
	// members-only capability of a public group counts as open when true,
	// and as neither open nor closed (forcing a limited summary) when
	// false.
	GroupMembersOpenWhenPublic bool
}

func DefaultPolicy() Policy {
	return Policy{
		Baselines: models.AccessSettings{
			models.CapRead:         models.LevelAnyone,
			models.CapEdit:         models.LevelLoggedIn,
			models.CapReadComments: models.LevelAnyone,
			models.CapPostComments: models.LevelLoggedIn,
			models.CapViewHistory:  models.LevelAnyone,
		},
		GroupMembersOpenWhenPublic: true,
	}
}

// Classify reduces a settings snapshot to a single public/private/limited
// badge. All five capabilities closed means private, all five open means
// public, anything else is limited.
func (p Policy) Classify(settings models.AccessSettings, groupVisibility models.GroupVisibility) models.AccessSummary {
	settings = Effective(settings)

	open := 0
	closed := 0

	for _, cap := range models.Capabilities {
		level := settings[cap]

		switch level {
		case models.LevelAnyone:
			open++
		case p.Baselines[cap]:
			open++
		case models.LevelAdminsMods, models.LevelCreator, models.LevelNoOne, models.LevelFriends:
			closed++
		case models.LevelGroupMembers:
			if groupVisibility != models.GroupPublic {
				closed++
			} else if p.GroupMembersOpenWhenPublic {
				open++
			}
		}
	}

	total := len(models.Capabilities)

	switch {
	case closed == total:
		return models.SummaryPrivate
	case open == total:
		return models.SummaryPublic
	default:
		return models.SummaryLimited
	}
}

// Facts are the viewer-versus-doc relationships a level check needs. The
// permission service gathers them from storage; Satisfies stays pure.
type Facts struct {
	LoggedIn        bool
	IsCreator       bool
	IsFriend        bool
	IsGroupMember   bool
	IsGroupAdminMod bool
	IsSiteAdmin     bool
}

// Satisfies reports whether a viewer with the given facts clears an access
// level. Site admins clear everything.
func Satisfies(level models.AccessLevel, facts Facts) bool {
	if facts.IsSiteAdmin {
		return true
	}

	switch level {
	case models.LevelAnyone:
		return true
	case models.LevelLoggedIn:
		return facts.LoggedIn
	case models.LevelFriends:
		return facts.IsCreator || facts.IsFriend
	case models.LevelGroupMembers:
		return facts.IsCreator || facts.IsGroupMember
	case models.LevelAdminsMods:
		return facts.IsCreator || facts.IsGroupAdminMod
	case models.LevelCreator, models.LevelNoOne:
		return facts.IsCreator
	default:
		return false
	}
}
