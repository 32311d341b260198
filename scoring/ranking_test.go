package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_PointsFirst(t *testing.T) {
	ranked := Rank([]Row{
		{ParticipantID: 1, Points: 6, GamesWon: 10, GamesTotal: 30},
		{ParticipantID: 2, Points: 9, GamesWon: 5, GamesTotal: 40},
	})

	assert.Equal(t, 2, ranked[0].ParticipantID)
	assert.Equal(t, 1, ranked[1].ParticipantID)
}

func TestRank_AverajBreaksPointTies(t *testing.T) {
	// Equal points, averaj 0.650 vs 0.600.
	ranked := Rank([]Row{
		{ParticipantID: 1, Points: 7, GamesWon: 60, GamesTotal: 100},
		{ParticipantID: 2, Points: 7, GamesWon: 65, GamesTotal: 100},
	})

	assert.Equal(t, 2, ranked[0].ParticipantID)
	assert.Equal(t, 1, ranked[1].ParticipantID)
}

func TestRank_ZeroGamesAverajIsZero(t *testing.T) {
	row := Row{ParticipantID: 1}
	assert.Equal(t, 0.0, row.Averaj())

	ranked := Rank([]Row{
		{ParticipantID: 1, Points: 3},
		{ParticipantID: 2, Points: 3, GamesWon: 1, GamesTotal: 20},
	})
	assert.Equal(t, 2, ranked[0].ParticipantID)
}

func TestRank_StableOnFullTie(t *testing.T) {
	rows := []Row{
		{ParticipantID: 5, Points: 4, GamesWon: 10, GamesTotal: 20},
		{ParticipantID: 3, Points: 4, GamesWon: 15, GamesTotal: 30},
		{ParticipantID: 8, Points: 4, GamesWon: 5, GamesTotal: 10},
	}

	ranked := Rank(rows)

	// Identical points and averaj: input order is preserved.
	assert.Equal(t, []int{5, 3, 8}, []int{ranked[0].ParticipantID, ranked[1].ParticipantID, ranked[2].ParticipantID})
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	rows := []Row{
		{ParticipantID: 1, Points: 1},
		{ParticipantID: 2, Points: 9},
	}
	Rank(rows)

	assert.Equal(t, 1, rows[0].ParticipantID)
}
