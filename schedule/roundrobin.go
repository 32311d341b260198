// Package schedule generates round-robin fixtures for league groups.
package schedule

import "fmt"

// Pairing is one generated fixture between two players of a group.
type Pairing struct {
	Player1ID int
	Player2ID int
	// Week is the 1-based round the pairing belongs to; each player appears at
	// most once per week.
	Week int
	// Period groups two consecutive weeks into one scheduling window, the
	// granularity players book their own court times in.
	Period int
}

// Rounds builds a single round-robin over the given players using the circle
// method: one player stays fixed while the rest rotate. С нечётным числом
// игроков добавляется пустая позиция, её пары пропускаются (bye).
func Rounds(playerIDs []int) ([][]Pairing, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("round robin needs at least 2 players, got %d", len(playerIDs))
	}

	ring := make([]int, len(playerIDs))
	copy(ring, playerIDs)
	if len(ring)%2 != 0 {
		ring = append(ring, 0) // bye slot
	}

	n := len(ring)
	totalRounds := n - 1
	rounds := make([][]Pairing, 0, totalRounds)

	for round := 0; round < totalRounds; round++ {
		var pairings []Pairing
		for match := 0; match < n/2; match++ {
			home := (round + match) % (n - 1)
			away := (n - 1 - match + round) % (n - 1)
			if match == 0 {
				away = n - 1 // fixed position
			}

			p1, p2 := ring[home], ring[away]
			if p1 == 0 || p2 == 0 {
				continue
			}

			week := round + 1
			pairings = append(pairings, Pairing{
				Player1ID: p1,
				Player2ID: p2,
				Week:      week,
				Period:    (week + 1) / 2,
			})
		}
		rounds = append(rounds, pairings)
	}

	return rounds, nil
}

// Generate flattens Rounds into a single fixture list, ordered by week.
func Generate(playerIDs []int) ([]Pairing, error) {
	rounds, err := Rounds(playerIDs)
	if err != nil {
		return nil, err
	}

	var fixtures []Pairing
	for _, round := range rounds {
		fixtures = append(fixtures, round...)
	}
	return fixtures, nil
}
