package scoring

import "fmt"

// Status is the terminal lifecycle state a resolved match ends up in.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusWalkover  Status = "walkover"
)

// DrawParticipantID is the sentinel stored in match_scores.winner_id when a
// match ends level. It can never collide with a real user id.
const DrawParticipantID = -1

// ScoreKind tags the two shapes a score submission can take.
type ScoreKind string

const (
	KindNormal   ScoreKind = "normal"
	KindWalkover ScoreKind = "walkover"
)

// Walkover fixed game credit: the match is recorded as 6-0, 6-0 for display,
// and counts as a 12-0 split of 12 games toward averaj. It never passes
// through the tiebreak-aware calculator.
const (
	walkoverGamesWon   = 12
	walkoverGamesTotal = 12
)

// ScoreInput is the tagged score variant accepted at the boundary. Exactly one
// of the two shapes is populated depending on Kind.
type ScoreInput struct {
	Kind ScoreKind

	// Walkover path.
	DefaultingSide Side

	// Normal path.
	Sets     *SetScores
	Tiebreak *TiebreakScore
}

// Outcome is the resolved result of a score submission, ready to be persisted
// and fed to the standings aggregator.
type Outcome struct {
	Status Status

	// Winner is SideNone when Draw is set.
	Winner Side
	Draw   bool

	// DefaultingSide is set only for walkovers.
	DefaultingSide Side

	// DisplaySets are the sets as shown to users. For a walkover they are the
	// synthesized 6-0, 6-0 in the winner's favor.
	DisplaySets SetScores
	Tiebreak    *TiebreakScore

	// Games is the averaj contribution of the match.
	Games GameStats
}

// ResolveOutcome determines the winner (or draw) of a match from a tagged
// score input.
//
// Каждый сет выигрывает сторона со строго большим числом геймов. При счёте
// 1-1 по сетам решает супер тай-брейк; без него матч фиксируется как ничья.
func ResolveOutcome(input ScoreInput) (Outcome, error) {
	switch input.Kind {
	case KindWalkover:
		return resolveWalkover(input.DefaultingSide)
	case KindNormal:
		return resolveNormal(input.Sets, input.Tiebreak)
	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownScoreKind, input.Kind)
	}
}

func resolveWalkover(defaulting Side) (Outcome, error) {
	if !defaulting.valid() {
		return Outcome{}, fmt.Errorf("%w: defaulting side %d", ErrInvalidSide, defaulting)
	}

	winner := defaulting.Other()
	out := Outcome{
		Status:         StatusWalkover,
		Winner:         winner,
		DefaultingSide: defaulting,
	}

	if winner == Side1 {
		out.DisplaySets = SetScores{P1Set1: 6, P1Set2: 6}
		out.Games = GameStats{
			Side1: SideGames{GamesWon: walkoverGamesWon, GamesTotal: walkoverGamesTotal},
			Side2: SideGames{GamesWon: 0, GamesTotal: walkoverGamesTotal},
		}
	} else {
		out.DisplaySets = SetScores{P2Set1: 6, P2Set2: 6}
		out.Games = GameStats{
			Side1: SideGames{GamesWon: 0, GamesTotal: walkoverGamesTotal},
			Side2: SideGames{GamesWon: walkoverGamesWon, GamesTotal: walkoverGamesTotal},
		}
	}

	return out, nil
}

func resolveNormal(sets *SetScores, tiebreak *TiebreakScore) (Outcome, error) {
	if sets == nil {
		return Outcome{}, ErrMissingSetScores
	}
	if !sets.nonNegative() {
		return Outcome{}, ErrNegativeGames
	}
	if tiebreak != nil {
		if tiebreak.P1 < 0 || tiebreak.P2 < 0 {
			return Outcome{}, ErrNegativeGames
		}
		if tiebreak.P1 == tiebreak.P2 {
			return Outcome{}, fmt.Errorf("%w: %d-%d", ErrTiebreakTied, tiebreak.P1, tiebreak.P2)
		}
	}

	var side1Sets, side2Sets int
	if sets.P1Set1 > sets.P2Set1 {
		side1Sets++
	} else {
		side2Sets++
	}
	if sets.P1Set2 > sets.P2Set2 {
		side1Sets++
	} else {
		side2Sets++
	}

	out := Outcome{
		Status:      StatusCompleted,
		DisplaySets: *sets,
		Tiebreak:    tiebreak,
		Games:       CalculateGameStats(*sets, tiebreak),
	}

	switch {
	case side1Sets > side2Sets:
		out.Winner = Side1
	case side2Sets > side1Sets:
		out.Winner = Side2
	case tiebreak != nil:
		// Один-один по сетам, решает супер тай-брейк.
		if tiebreak.P1 > tiebreak.P2 {
			out.Winner = Side1
		} else {
			out.Winner = Side2
		}
	default:
		out.Draw = true
		out.Winner = SideNone
	}

	return out, nil
}
