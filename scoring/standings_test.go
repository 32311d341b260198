package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singlesGroup() GroupContext {
	return GroupContext{GroupID: 10, ParticipantIDs: []int{1, 2, 3, 4}}
}

func completedMatch(id, winner, loser int, sets SetScores, tb *TiebreakScore) MatchResult {
	return MatchResult{
		MatchID:  id,
		Side1:    TeamRef{PlayerID: winner},
		Side2:    TeamRef{PlayerID: loser},
		Status:   StatusCompleted,
		Approved: true,
		Winner:   Side1,
		Sets:     &sets,
		Tiebreak: tb,
	}
}

func TestRebuild_WinAndLossPoints(t *testing.T) {
	rows, err := Rebuild(singlesGroup(), []MatchResult{
		completedMatch(1, 1, 2, SetScores{P1Set1: 6, P2Set1: 2, P1Set2: 6, P2Set2: 3}, nil),
	})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byID := rowsByParticipant(rows)
	assert.Equal(t, Row{GroupID: 10, ParticipantID: 1, Points: 3, MatchesWon: 1, GamesWon: 12, GamesTotal: 17}, byID[1])
	assert.Equal(t, Row{GroupID: 10, ParticipantID: 2, Points: 1, MatchesLost: 1, GamesWon: 5, GamesTotal: 17}, byID[2])
	assert.Equal(t, Row{GroupID: 10, ParticipantID: 3}, byID[3])
}

func TestRebuild_DrawAwardsOnePointToBoth(t *testing.T) {
	rows, err := Rebuild(singlesGroup(), []MatchResult{
		{
			MatchID:  1,
			Side1:    TeamRef{PlayerID: 1},
			Side2:    TeamRef{PlayerID: 2},
			Status:   StatusCompleted,
			Approved: true,
			Draw:     true,
			Sets:     &SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
		},
	})
	require.NoError(t, err)

	byID := rowsByParticipant(rows)
	assert.Equal(t, 1, byID[1].Points)
	assert.Equal(t, 1, byID[2].Points)
	assert.Zero(t, byID[1].MatchesWon)
	assert.Zero(t, byID[1].MatchesLost)
	assert.Zero(t, byID[2].MatchesWon)
	assert.Zero(t, byID[2].MatchesLost)
	assert.Equal(t, 9, byID[1].GamesWon)
	assert.Equal(t, 18, byID[1].GamesTotal)
}

func TestRebuild_WalkoverPoints(t *testing.T) {
	rows, err := Rebuild(singlesGroup(), []MatchResult{
		{
			MatchID:        1,
			Side1:          TeamRef{PlayerID: 1},
			Side2:          TeamRef{PlayerID: 2},
			Status:         StatusWalkover,
			Winner:         Side1,
			DefaultingSide: Side2,
		},
	})
	require.NoError(t, err)

	byID := rowsByParticipant(rows)
	assert.Equal(t, Row{GroupID: 10, ParticipantID: 1, Points: 3, MatchesWon: 1, GamesWon: 12, GamesTotal: 12}, byID[1])
	assert.Equal(t, Row{GroupID: 10, ParticipantID: 2, Points: 0, MatchesLost: 1, Walkovers: 1, GamesWon: 0, GamesTotal: 12}, byID[2])
}

func TestRebuild_PendingScoreIsExcluded(t *testing.T) {
	pending := completedMatch(1, 1, 2, SetScores{P1Set1: 6, P2Set1: 4, P1Set2: 6, P2Set2: 4}, nil)
	pending.Approved = false

	rows, err := Rebuild(singlesGroup(), []MatchResult{pending})
	require.NoError(t, err)

	for _, row := range rows {
		assert.Zero(t, row.Points)
		assert.Zero(t, row.GamesTotal)
	}

	// Flipping the same result to approved changes exactly the two sides.
	pending.Approved = true
	rows, err = Rebuild(singlesGroup(), []MatchResult{pending})
	require.NoError(t, err)

	byID := rowsByParticipant(rows)
	assert.Equal(t, 3, byID[1].Points)
	assert.Equal(t, 1, byID[2].Points)
	assert.Zero(t, byID[3].Points)
	assert.Zero(t, byID[4].Points)
}

func TestRebuild_Idempotent(t *testing.T) {
	history := []MatchResult{
		completedMatch(1, 1, 2, SetScores{P1Set1: 6, P2Set1: 2, P1Set2: 6, P2Set2: 3}, nil),
		completedMatch(2, 3, 4, SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6}, &TiebreakScore{P1: 10, P2: 8}),
		{
			MatchID:        3,
			Side1:          TeamRef{PlayerID: 2},
			Side2:          TeamRef{PlayerID: 3},
			Status:         StatusWalkover,
			Winner:         Side2,
			DefaultingSide: Side1,
		},
	}

	first, err := Rebuild(singlesGroup(), history)
	require.NoError(t, err)
	second, err := Rebuild(singlesGroup(), history)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestApply_MatchesRebuild(t *testing.T) {
	group := singlesGroup()
	history := []MatchResult{
		completedMatch(1, 1, 2, SetScores{P1Set1: 6, P2Set1: 2, P1Set2: 6, P2Set2: 3}, nil),
		completedMatch(2, 3, 4, SetScores{P1Set1: 7, P2Set1: 5, P1Set2: 2, P2Set2: 6}, &TiebreakScore{P1: 10, P2: 7}),
		{
			MatchID:        3,
			Side1:          TeamRef{PlayerID: 4},
			Side2:          TeamRef{PlayerID: 1},
			Status:         StatusWalkover,
			Winner:         Side1,
			DefaultingSide: Side2,
		},
		{
			MatchID:  4,
			Side1:    TeamRef{PlayerID: 2},
			Side2:    TeamRef{PlayerID: 3},
			Status:   StatusCompleted,
			Approved: true,
			Draw:     true,
			Sets:     &SetScores{P1Set1: 6, P2Set1: 4, P1Set2: 4, P2Set2: 6},
		},
	}

	rebuilt, err := Rebuild(group, history)
	require.NoError(t, err)

	incremental, err := Rebuild(group, nil)
	require.NoError(t, err)
	for _, result := range history {
		incremental, err = Apply(group, incremental, result)
		require.NoError(t, err)
	}

	assert.Equal(t, rebuilt, incremental)
}

func TestApply_RejectsUnfinishedMatch(t *testing.T) {
	group := singlesGroup()
	rows, err := Rebuild(group, nil)
	require.NoError(t, err)

	_, err = Apply(group, rows, MatchResult{
		MatchID: 9,
		Side1:   TeamRef{PlayerID: 1},
		Side2:   TeamRef{PlayerID: 2},
		Status:  "scheduled",
	})
	assert.ErrorIs(t, err, ErrMatchNotFinished)
}

func TestRebuild_DoublesSymmetry(t *testing.T) {
	group := GroupContext{GroupID: 20, ParticipantIDs: []int{1, 2, 3, 4, 5, 6, 7, 8}}
	history := []MatchResult{
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
		{
			MatchID:        2,
			Side1:          TeamRef{PlayerID: 5, PartnerID: 6},
			Side2:          TeamRef{PlayerID: 1, PartnerID: 2},
			Doubles:        true,
			Status:         StatusWalkover,
			Winner:         Side2,
			DefaultingSide: Side1,
		},
		{
			MatchID:  3,
			Side1:    TeamRef{PlayerID: 3, PartnerID: 4},
			Side2:    TeamRef{PlayerID: 7, PartnerID: 8},
			Doubles:  true,
			Status:   StatusCompleted,
			Approved: true,
			Draw:     true,
			Sets:     &SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
		},
	}

	rows, err := Rebuild(group, history)
	require.NoError(t, err)

	byID := rowsByParticipant(rows)
	for _, pair := range [][2]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}} {
		a, b := byID[pair[0]], byID[pair[1]]
		b.ParticipantID = a.ParticipantID
		assert.Equal(t, a, b, "partners %d and %d must carry identical rows", pair[0], pair[1])
	}

	assert.Equal(t, 6, byID[1].Points) // win + walkover win
	assert.Equal(t, 2, byID[1].MatchesWon)
}

func TestRebuild_InconsistentHistoryAborts(t *testing.T) {
	group := singlesGroup()

	t.Run("participant outside group", func(t *testing.T) {
		_, err := Rebuild(group, []MatchResult{
			completedMatch(1, 1, 99, SetScores{P1Set1: 6, P2Set1: 0, P1Set2: 6, P2Set2: 0}, nil),
		})
		assert.ErrorIs(t, err, ErrParticipantNotInGroup)
	})

	t.Run("doubles without partner", func(t *testing.T) {
		_, err := Rebuild(group, []MatchResult{
			{
				MatchID:  1,
				Side1:    TeamRef{PlayerID: 1, PartnerID: 2},
				Side2:    TeamRef{PlayerID: 3},
				Doubles:  true,
				Status:   StatusCompleted,
				Approved: true,
				Winner:   Side1,
				Sets:     &SetScores{P1Set1: 6, P2Set1: 0, P1Set2: 6, P2Set2: 0},
			},
		})
		assert.ErrorIs(t, err, ErrPartnerMissing)
	})
}

func rowsByParticipant(rows []Row) map[int]Row {
	byID := make(map[int]Row, len(rows))
	for _, row := range rows {
		byID[row.ParticipantID] = row
	}
	return byID
}
