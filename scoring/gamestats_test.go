package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGameStats_NoTiebreak(t *testing.T) {
	stats := CalculateGameStats(SetScores{P1Set1: 6, P2Set1: 2, P1Set2: 6, P2Set2: 3}, nil)

	assert.Equal(t, SideGames{GamesWon: 12, GamesTotal: 17}, stats.Side1)
	assert.Equal(t, SideGames{GamesWon: 5, GamesTotal: 17}, stats.Side2)
}

func TestCalculateGameStats_TiebreakCountsAsOneGame(t *testing.T) {
	// Sets split 1-1, side 1 takes the super tiebreak 10-8.
	stats := CalculateGameStats(
		SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
		&TiebreakScore{P1: 10, P2: 8},
	)

	assert.Equal(t, SideGames{GamesWon: 10, GamesTotal: 19}, stats.Side1)
	assert.Equal(t, SideGames{GamesWon: 9, GamesTotal: 19}, stats.Side2)
}

func TestCalculateGameStats_TiebreakCreditedToSide2(t *testing.T) {
	stats := CalculateGameStats(
		SetScores{P1Set1: 6, P2Set1: 4, P1Set2: 4, P2Set2: 6},
		&TiebreakScore{P1: 7, P2: 10},
	)

	assert.Equal(t, SideGames{GamesWon: 10, GamesTotal: 21}, stats.Side1)
	assert.Equal(t, SideGames{GamesWon: 11, GamesTotal: 21}, stats.Side2)
}

func TestCalculateGameStats_TotalsMatchBothSides(t *testing.T) {
	cases := []struct {
		name     string
		sets     SetScores
		tiebreak *TiebreakScore
	}{
		{"straight sets", SetScores{P1Set1: 6, P2Set1: 0, P1Set2: 6, P2Set2: 0}, nil},
		{"with tiebreak", SetScores{P1Set1: 7, P2Set1: 5, P1Set2: 2, P2Set2: 6}, &TiebreakScore{P1: 10, P2: 4}},
		{"zero games", SetScores{}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := CalculateGameStats(tc.sets, tc.tiebreak)
			assert.Equal(t, stats.Side1.GamesTotal, stats.Side2.GamesTotal)
			assert.Equal(t, stats.Side1.GamesTotal, stats.Side1.GamesWon+stats.Side2.GamesWon)
		})
	}
}
