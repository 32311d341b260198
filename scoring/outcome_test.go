package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutcome_StraightSets(t *testing.T) {
	out, err := ResolveOutcome(ScoreInput{
		Kind: KindNormal,
		Sets: &SetScores{P1Set1: 6, P2Set1: 2, P1Set2: 6, P2Set2: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Equal(t, Side1, out.Winner)
	assert.False(t, out.Draw)
	assert.Equal(t, 12, out.Games.Side1.GamesWon)
	assert.Equal(t, 17, out.Games.Side1.GamesTotal)
}

func TestResolveOutcome_SplitSetsTiebreakDecides(t *testing.T) {
	out, err := ResolveOutcome(ScoreInput{
		Kind:     KindNormal,
		Sets:     &SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
		Tiebreak: &TiebreakScore{P1: 10, P2: 8},
	})

	require.NoError(t, err)
	assert.Equal(t, Side1, out.Winner)
	assert.Equal(t, 10, out.Games.Side1.GamesWon)
	assert.Equal(t, 9, out.Games.Side2.GamesWon)
	assert.Equal(t, 19, out.Games.Side1.GamesTotal)
}

func TestResolveOutcome_SplitSetsNoTiebreakIsDraw(t *testing.T) {
	out, err := ResolveOutcome(ScoreInput{
		Kind: KindNormal,
		Sets: &SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
	})

	require.NoError(t, err)
	assert.True(t, out.Draw)
	assert.Equal(t, SideNone, out.Winner)
	assert.Equal(t, StatusCompleted, out.Status)
}

func TestResolveOutcome_Walkover(t *testing.T) {
	out, err := ResolveOutcome(ScoreInput{Kind: KindWalkover, DefaultingSide: Side2})

	require.NoError(t, err)
	assert.Equal(t, StatusWalkover, out.Status)
	assert.Equal(t, Side1, out.Winner)
	assert.Equal(t, Side2, out.DefaultingSide)
	// Synthesized 6-0, 6-0 for display, fixed 12-0 of 12 games for averaj.
	assert.Equal(t, SetScores{P1Set1: 6, P1Set2: 6}, out.DisplaySets)
	assert.Equal(t, SideGames{GamesWon: 12, GamesTotal: 12}, out.Games.Side1)
	assert.Equal(t, SideGames{GamesWon: 0, GamesTotal: 12}, out.Games.Side2)
}

func TestResolveOutcome_WalkoverBySide1(t *testing.T) {
	out, err := ResolveOutcome(ScoreInput{Kind: KindWalkover, DefaultingSide: Side1})

	require.NoError(t, err)
	assert.Equal(t, Side2, out.Winner)
	assert.Equal(t, SetScores{P2Set1: 6, P2Set2: 6}, out.DisplaySets)
	assert.Equal(t, SideGames{GamesWon: 0, GamesTotal: 12}, out.Games.Side1)
}

func TestResolveOutcome_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   ScoreInput
		wantErr error
	}{
		{
			name:    "missing sets",
			input:   ScoreInput{Kind: KindNormal},
			wantErr: ErrMissingSetScores,
		},
		{
			name:    "negative games",
			input:   ScoreInput{Kind: KindNormal, Sets: &SetScores{P1Set1: -1, P2Set1: 6, P1Set2: 6, P2Set2: 4}},
			wantErr: ErrNegativeGames,
		},
		{
			name: "tied tiebreak",
			input: ScoreInput{
				Kind:     KindNormal,
				Sets:     &SetScores{P1Set1: 6, P2Set1: 3, P1Set2: 3, P2Set2: 6},
				Tiebreak: &TiebreakScore{P1: 10, P2: 10},
			},
			wantErr: ErrTiebreakTied,
		},
		{
			name:    "walkover without a side",
			input:   ScoreInput{Kind: KindWalkover},
			wantErr: ErrInvalidSide,
		},
		{
			name:    "unknown kind",
			input:   ScoreInput{Kind: "bye"},
			wantErr: ErrUnknownScoreKind,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveOutcome(tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestResolveOutcome_TiebreakIgnoredWhenSetsDecide(t *testing.T) {
	// Side 2 wins both sets; a recorded tiebreak must not flip the match, but
	// it still counts as a game toward averaj.
	out, err := ResolveOutcome(ScoreInput{
		Kind:     KindNormal,
		Sets:     &SetScores{P1Set1: 6, P2Set1: 7, P1Set2: 3, P2Set2: 6},
		Tiebreak: &TiebreakScore{P1: 10, P2: 8},
	})

	require.NoError(t, err)
	assert.Equal(t, Side2, out.Winner)
	assert.Equal(t, 23, out.Games.Side1.GamesTotal)
}
