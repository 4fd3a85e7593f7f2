package access

import (
	"collabdocs/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffective_FillsDefaults(t *testing.T) {
	t.Parallel()

	got := Effective(models.AccessSettings{})

	assert.Equal(t, models.AccessSettings{
		models.CapRead:         models.LevelAnyone,
		models.CapEdit:         models.LevelLoggedIn,
		models.CapReadComments: models.LevelAnyone,
		models.CapPostComments: models.LevelLoggedIn,
		models.CapViewHistory:  models.LevelAnyone,
	}, got)
}

func TestEffective_KeepsValidOverrides(t *testing.T) {
	t.Parallel()

	got := Effective(models.AccessSettings{
		models.CapRead: models.LevelGroupMembers,
		models.CapEdit: models.LevelCreator,
	})

	assert.Equal(t, models.LevelGroupMembers, got[models.CapRead])
	assert.Equal(t, models.LevelCreator, got[models.CapEdit])
	assert.Equal(t, models.LevelAnyone, got[models.CapReadComments])
}

func TestEffective_UnknownLevelFallsBack(t *testing.T) {
	t.Parallel()

	got := Effective(models.AccessSettings{
		models.CapRead: models.AccessLevel("everybody-and-their-dog"),
	})

	assert.Equal(t, models.LevelAnyone, got[models.CapRead])
}

func TestClassify_Public(t *testing.T) {
	t.Parallel()

	settings := models.AccessSettings{
		models.CapRead:         models.LevelAnyone,
		models.CapEdit:         models.LevelLoggedIn,
		models.CapReadComments: models.LevelAnyone,
		models.CapPostComments: models.LevelLoggedIn,
		models.CapViewHistory:  models.LevelAnyone,
	}

	assert.Equal(t, models.SummaryPublic, DefaultPolicy().Classify(settings, models.GroupNone))
}

func TestClassify_Private(t *testing.T) {
	t.Parallel()

	settings := models.AccessSettings{
		models.CapRead:         models.LevelNoOne,
		models.CapEdit:         models.LevelCreator,
		models.CapReadComments: models.LevelNoOne,
		models.CapPostComments: models.LevelCreator,
		models.CapViewHistory:  models.LevelNoOne,
	}

	assert.Equal(t, models.SummaryPrivate, DefaultPolicy().Classify(settings, models.GroupNone))
}

func TestClassify_Mixed(t *testing.T) {
	t.Parallel()

	settings := models.AccessSettings{
		models.CapRead:         models.LevelAnyone,
		models.CapEdit:         models.LevelCreator,
		models.CapReadComments: models.LevelAnyone,
		models.CapPostComments: models.LevelLoggedIn,
		models.CapViewHistory:  models.LevelAnyone,
	}

	assert.Equal(t, models.SummaryLimited, DefaultPolicy().Classify(settings, models.GroupNone))
}

func TestClassify_GroupMembersNonPublicIsClosed(t *testing.T) {
	t.Parallel()

	settings := models.AccessSettings{
		models.CapRead:         models.LevelGroupMembers,
		models.CapEdit:         models.LevelGroupMembers,
		models.CapReadComments: models.LevelGroupMembers,
		models.CapPostComments: models.LevelGroupMembers,
		models.CapViewHistory:  models.LevelGroupMembers,
	}

	assert.Equal(t, models.SummaryPrivate, DefaultPolicy().Classify(settings, models.GroupNonPublic))
}

func TestClassify_GroupMembersPublicGroup(t *testing.T) {
	t.Parallel()

	settings := models.AccessSettings{
		models.CapRead:         models.LevelGroupMembers,
		models.CapEdit:         models.LevelGroupMembers,
		models.CapReadComments: models.LevelGroupMembers,
		models.CapPostComments: models.LevelGroupMembers,
		models.CapViewHistory:  models.LevelGroupMembers,
	}

	// Default policy treats members-of-a-public-group as open.
	assert.Equal(t, models.SummaryPublic, DefaultPolicy().Classify(settings, models.GroupPublic))

	// A stricter embedder can demote the same snapshot to limited.
	strict := DefaultPolicy()
	strict.GroupMembersOpenWhenPublic = false
	assert.Equal(t, models.SummaryLimited, strict.Classify(settings, models.GroupPublic))
}

func TestClassify_PartialSettingsClassified(t *testing.T) {
	t.Parallel()

	// Missing capabilities take their defaults before classification, so an
	// empty snapshot is fully open.
	assert.Equal(t, models.SummaryPublic, DefaultPolicy().Classify(models.AccessSettings{}, models.GroupNone))
}

func TestSatisfies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    models.AccessLevel
		facts    Facts
		expected bool
	}{
		{"anyone always", models.LevelAnyone, Facts{}, true},
		{"loggedin anonymous", models.LevelLoggedIn, Facts{}, false},
		{"loggedin user", models.LevelLoggedIn, Facts{LoggedIn: true}, true},
		{"friends stranger", models.LevelFriends, Facts{LoggedIn: true}, false},
		{"friends friend", models.LevelFriends, Facts{LoggedIn: true, IsFriend: true}, true},
		{"group members outsider", models.LevelGroupMembers, Facts{LoggedIn: true}, false},
		{"group members member", models.LevelGroupMembers, Facts{LoggedIn: true, IsGroupMember: true}, true},
		{"admins-mods plain member", models.LevelAdminsMods, Facts{LoggedIn: true, IsGroupMember: true}, false},
		{"admins-mods mod", models.LevelAdminsMods, Facts{LoggedIn: true, IsGroupAdminMod: true}, true},
		{"creator someone else", models.LevelCreator, Facts{LoggedIn: true}, false},
		{"creator self", models.LevelCreator, Facts{LoggedIn: true, IsCreator: true}, true},
		{"no-one self", models.LevelNoOne, Facts{LoggedIn: true, IsCreator: true}, true},
		{"no-one someone else", models.LevelNoOne, Facts{LoggedIn: true}, false},
		{"site admin clears everything", models.LevelNoOne, Facts{IsSiteAdmin: true}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Satisfies(tt.level, tt.facts))
		})
	}
}
