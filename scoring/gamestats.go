package scoring

// Side identifies one of the two competing sides of a match.
// A side is a single player, or a player plus partner in doubles.
type Side int

const (
	SideNone Side = 0
	Side1    Side = 1
	Side2    Side = 2
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case Side1:
		return Side2
	case Side2:
		return Side1
	default:
		return SideNone
	}
}

func (s Side) valid() bool {
	return s == Side1 || s == Side2
}

// SetScores holds the game counts of the two played sets.
type SetScores struct {
	P1Set1 int `json:"player1_set1"`
	P2Set1 int `json:"player2_set1"`
	P1Set2 int `json:"player1_set2"`
	P2Set2 int `json:"player2_set2"`
}

func (s SetScores) nonNegative() bool {
	return s.P1Set1 >= 0 && s.P2Set1 >= 0 && s.P1Set2 >= 0 && s.P2Set2 >= 0
}

// TiebreakScore is the optional super tiebreak played at one set all.
// Both values are present or the tiebreak was not played at all.
type TiebreakScore struct {
	P1 int `json:"super_tiebreak_p1"`
	P2 int `json:"super_tiebreak_p2"`
}

// SideGames is one side's contribution to the averaj ratio.
type SideGames struct {
	GamesWon   int `json:"games_won"`
	GamesTotal int `json:"games_total"`
}

// GameStats carries the per-side game tallies of a single match.
// GamesTotal is identical for both sides.
type GameStats struct {
	Side1 SideGames `json:"side1"`
	Side2 SideGames `json:"side2"`
}

// CalculateGameStats converts set scores (plus an optional super tiebreak)
// into per-side games won / games total.
//
// По регламенту супер тай-брейк считается ровно одним геймом: он увеличивает
// общий счёт геймов на единицу и этот гейм записывается стороне со строго
// большим значением тай-брейка. Tied tiebreak values must be rejected by the
// caller before reaching this function.
func CalculateGameStats(sets SetScores, tiebreak *TiebreakScore) GameStats {
	side1Games := sets.P1Set1 + sets.P1Set2
	side2Games := sets.P2Set1 + sets.P2Set2
	total := side1Games + side2Games

	if tiebreak != nil {
		total++
		if tiebreak.P1 > tiebreak.P2 {
			side1Games++
		} else {
			side2Games++
		}
	}

	return GameStats{
		Side1: SideGames{GamesWon: side1Games, GamesTotal: total},
		Side2: SideGames{GamesWon: side2Games, GamesTotal: total},
	}
}
