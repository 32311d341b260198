package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doublesHistory() []MatchResult {
	return []MatchResult{
		{
			MatchID:  1,
			Side1:    TeamRef{PlayerID: 1, PartnerID: 2},
			Side2:    TeamRef{PlayerID: 3, PartnerID: 4},
			Doubles:  true,
			Status:   StatusCompleted,
			Approved: true,
			Winner:   Side1,
			Sets:     &SetScores{P1Set1: 6, P2Set1: 4, P1Set2: 6, P2Set2: 2},
		},
	}
}

func TestResolvePartner(t *testing.T) {
	matches := doublesHistory()

	cases := []struct {
		participant int
		wantPartner int
		wantFound   bool
	}{
		{1, 2, true},
		{2, 1, true},
		{3, 4, true},
		{4, 3, true},
		{9, 0, false},
	}

	for _, tc := range cases {
		partner, ok := ResolvePartner(tc.participant, matches)
		assert.Equal(t, tc.wantFound, ok, "participant %d", tc.participant)
		assert.Equal(t, tc.wantPartner, partner, "participant %d", tc.participant)
	}
}

func TestResolvePartner_IgnoresSinglesMatches(t *testing.T) {
	matches := []MatchResult{
		{
			MatchID:  1,
			Side1:    TeamRef{PlayerID: 1},
			Side2:    TeamRef{PlayerID: 2},
			Status:   StatusCompleted,
			Approved: true,
			Winner:   Side1,
			Sets:     &SetScores{P1Set1: 6, P2Set1: 0, P1Set2: 6, P2Set2: 0},
		},
	}

	_, ok := ResolvePartner(1, matches)
	assert.False(t, ok)
}

func TestMergeTeams(t *testing.T) {
	group := GroupContext{GroupID: 20, ParticipantIDs: []int{1, 2, 3, 4, 7}}
	matches := doublesHistory()

	rows, err := Rebuild(group, matches)
	require.NoError(t, err)

	merged := MergeTeams(rows, matches)

	// Two teams collapse to one row each, the singles entrant stays as is.
	require.Len(t, merged, 3)

	byID := make(map[int]TeamRow, len(merged))
	for _, row := range merged {
		byID[row.ParticipantID] = row
	}

	assert.Equal(t, 2, byID[1].PartnerID)
	assert.Equal(t, 4, byID[3].PartnerID)
	assert.Contains(t, byID, 7)
	assert.Zero(t, byID[7].PartnerID)
	assert.NotContains(t, byID, 2, "partner row must be deduplicated to the lower id")
	assert.NotContains(t, byID, 4)

	assert.Equal(t, 3, byID[1].Points)
	assert.Equal(t, 1, byID[3].Points)
}
