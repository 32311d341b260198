package scoring

import "fmt"

// Point rules per match outcome.
const (
	pointsWin  = 3
	pointsLoss = 1
	pointsDraw = 1
)

// TeamRef identifies the one or two participants playing one side of a match.
// PartnerID is zero for singles.
type TeamRef struct {
	PlayerID  int
	PartnerID int
}

func (t TeamRef) members() []int {
	if t.PartnerID != 0 {
		return []int{t.PlayerID, t.PartnerID}
	}
	return []int{t.PlayerID}
}

// Contains reports whether the participant plays on this side.
func (t TeamRef) Contains(participantID int) bool {
	return participantID != 0 && (t.PlayerID == participantID || t.PartnerID == participantID)
}

// MatchResult is one finished match of a group, as recorded by the storage
// layer. It is the unit of the immutable event history standings are derived
// from.
type MatchResult struct {
	MatchID int
	Side1   TeamRef
	Side2   TeamRef
	Doubles bool

	Status   Status
	Approved bool

	// Winner is SideNone for a draw. DefaultingSide is set for walkovers.
	Winner         Side
	Draw           bool
	DefaultingSide Side

	// Set scores of a completed match. Nil for walkovers, whose game credit
	// is fixed and does not come from the calculator.
	Sets     *SetScores
	Tiebreak *TiebreakScore
}

// Counts reports whether the result contributes to standings: walkovers count
// immediately (they auto-approve on creation), normal matches only once the
// opponent approved the submitted score.
func (m MatchResult) Counts() bool {
	switch m.Status {
	case StatusWalkover:
		return true
	case StatusCompleted:
		return m.Approved
	default:
		return false
	}
}

// GroupContext names the group and its participants. Rows exist 1:1 with the
// participants listed here.
type GroupContext struct {
	GroupID        int
	ParticipantIDs []int
}

// Row is the per-(group, participant) standings aggregate. In doubles groups a
// partnered pair always carries two identical rows.
type Row struct {
	GroupID       int `json:"group_id"`
	ParticipantID int `json:"user_id"`
	Points        int `json:"points"`
	MatchesWon    int `json:"matches_won"`
	MatchesLost   int `json:"matches_lost"`
	Walkovers     int `json:"walkovers"`
	GamesWon      int `json:"games_won"`
	GamesTotal    int `json:"games_total"`
}

// Averaj is the games-won / games-total ratio, the secondary ranking key.
// Zero when no games were played.
func (r Row) Averaj() float64 {
	if r.GamesTotal == 0 {
		return 0
	}
	return float64(r.GamesWon) / float64(r.GamesTotal)
}

// Rebuild recomputes every row of a group from zero out of its full match
// history. Results that do not count (pending approval, not finished) are
// skipped. An inconsistent result aborts the whole group: no partial rows are
// ever returned.
func Rebuild(group GroupContext, results []MatchResult) ([]Row, error) {
	index := make(map[int]int, len(group.ParticipantIDs))
	rows := make([]Row, 0, len(group.ParticipantIDs))
	for _, id := range group.ParticipantIDs {
		if _, ok := index[id]; ok {
			continue
		}
		index[id] = len(rows)
		rows = append(rows, Row{GroupID: group.GroupID, ParticipantID: id})
	}

	for _, result := range results {
		if !result.Counts() {
			continue
		}
		if err := validateResult(group, index, result); err != nil {
			return nil, err
		}
		applyToRows(rows, index, result)
	}

	return rows, nil
}

// Apply folds one newly counted result into an existing row set and returns
// the updated rows. Applying every result of a history one by one yields the
// same rows as a full Rebuild over that history.
func Apply(group GroupContext, rows []Row, result MatchResult) ([]Row, error) {
	if !result.Counts() {
		return nil, fmt.Errorf("%w: match %d has status %q", ErrMatchNotFinished, result.MatchID, result.Status)
	}

	index := make(map[int]int, len(rows))
	updated := make([]Row, len(rows))
	copy(updated, rows)
	for i, row := range updated {
		index[row.ParticipantID] = i
	}

	if err := validateResult(group, index, result); err != nil {
		return nil, err
	}
	applyToRows(updated, index, result)

	return updated, nil
}

func validateResult(group GroupContext, index map[int]int, result MatchResult) error {
	if result.Doubles && (result.Side1.PartnerID == 0 || result.Side2.PartnerID == 0) {
		return fmt.Errorf("%w: match %d", ErrPartnerMissing, result.MatchID)
	}
	for _, side := range []TeamRef{result.Side1, result.Side2} {
		for _, id := range side.members() {
			if _, ok := index[id]; !ok {
				return fmt.Errorf("%w: match %d, participant %d, group %d",
					ErrParticipantNotInGroup, result.MatchID, id, group.GroupID)
			}
		}
	}
	return nil
}

// applyToRows mutates the rows of the two sides by the deltas of one result.
// Оба участника пары получают одинаковые дельты, строки партнёров всегда
// совпадают по всем числовым полям.
func applyToRows(rows []Row, index map[int]int, result MatchResult) {
	side1Delta, side2Delta := resultDeltas(result)

	for _, id := range result.Side1.members() {
		addDelta(&rows[index[id]], side1Delta)
	}
	for _, id := range result.Side2.members() {
		addDelta(&rows[index[id]], side2Delta)
	}
}

type rowDelta struct {
	points, won, lost, walkovers int
	gamesWon, gamesTotal         int
}

func addDelta(row *Row, d rowDelta) {
	row.Points += d.points
	row.MatchesWon += d.won
	row.MatchesLost += d.lost
	row.Walkovers += d.walkovers
	row.GamesWon += d.gamesWon
	row.GamesTotal += d.gamesTotal
}

func resultDeltas(result MatchResult) (side1, side2 rowDelta) {
	if result.Status == StatusWalkover {
		winner := rowDelta{
			points:     pointsWin,
			won:        1,
			gamesWon:   walkoverGamesWon,
			gamesTotal: walkoverGamesTotal,
		}
		defaulter := rowDelta{
			lost:       1,
			walkovers:  1,
			gamesTotal: walkoverGamesTotal,
		}
		if result.DefaultingSide == Side1 {
			return defaulter, winner
		}
		return winner, defaulter
	}

	if result.Sets != nil {
		stats := CalculateGameStats(*result.Sets, result.Tiebreak)
		side1.gamesWon, side1.gamesTotal = stats.Side1.GamesWon, stats.Side1.GamesTotal
		side2.gamesWon, side2.gamesTotal = stats.Side2.GamesWon, stats.Side2.GamesTotal
	}

	switch {
	case result.Draw:
		side1.points += pointsDraw
		side2.points += pointsDraw
	case result.Winner == Side1:
		side1.points += pointsWin
		side1.won++
		side2.points += pointsLoss
		side2.lost++
	case result.Winner == Side2:
		side2.points += pointsWin
		side2.won++
		side1.points += pointsLoss
		side1.lost++
	}

	return side1, side2
}
