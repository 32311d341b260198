package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EveryPairExactlyOnce(t *testing.T) {
	for _, size := range []int{4, 5, 8, 9} {
		t.Run(fmt.Sprintf("%d players", size), func(t *testing.T) {
			players := make([]int, size)
			for i := range players {
				players[i] = 100 + i
			}

			fixtures, err := Generate(players)
			require.NoError(t, err)

			assert.Len(t, fixtures, size*(size-1)/2)

			seen := make(map[[2]int]int)
			for _, f := range fixtures {
				assert.NotEqual(t, f.Player1ID, f.Player2ID, "no self pairing")
				key := [2]int{f.Player1ID, f.Player2ID}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				seen[key]++
			}
			for key, count := range seen {
				assert.Equal(t, 1, count, "pair %v scheduled more than once", key)
			}
			assert.Len(t, seen, size*(size-1)/2)
		})
	}
}

func TestRounds_OnePlayerPerWeek(t *testing.T) {
	players := []int{1, 2, 3, 4, 5, 6, 7, 8}

	rounds, err := Rounds(players)
	require.NoError(t, err)
	require.Len(t, rounds, 7)

	for i, round := range rounds {
		busy := make(map[int]bool)
		for _, f := range round {
			assert.Equal(t, i+1, f.Week)
			assert.False(t, busy[f.Player1ID], "player %d plays twice in week %d", f.Player1ID, f.Week)
			assert.False(t, busy[f.Player2ID], "player %d plays twice in week %d", f.Player2ID, f.Week)
			busy[f.Player1ID] = true
			busy[f.Player2ID] = true
		}
		assert.Len(t, round, 4)
	}
}

func TestRounds_OddCountGetsByes(t *testing.T) {
	rounds, err := Rounds([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// 5 players: 5 rounds, one sits out each week.
	require.Len(t, rounds, 5)
	for _, round := range rounds {
		assert.Len(t, round, 2)
	}
}

func TestRounds_PeriodsSpanTwoWeeks(t *testing.T) {
	fixtures, err := Generate([]int{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	for _, f := range fixtures {
		assert.Equal(t, (f.Week+1)/2, f.Period)
	}
	// 7 rounds for 8 players fold into 4 periods.
	last := fixtures[len(fixtures)-1]
	assert.Equal(t, 7, last.Week)
	assert.Equal(t, 4, last.Period)
}

func TestRounds_TooFewPlayers(t *testing.T) {
	_, err := Rounds([]int{1})
	assert.Error(t, err)
}
