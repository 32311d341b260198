package models

// StandingRow is the persisted per-(group, player) aggregate. It is always a
// derived projection of the approved match history and is rewritten only by
// the standings recalculation, never by handler code.
type StandingRow struct {
	ID          int `json:"id" db:"id"`
	GroupID     int `json:"group_id" db:"group_id"`
	UserID      int `json:"user_id" db:"user_id"`
	Points      int `json:"points" db:"points"`
	MatchesWon  int `json:"matches_won" db:"matches_won"`
	MatchesLost int `json:"matches_lost" db:"matches_lost"`
	Walkovers   int `json:"walkovers" db:"walkovers"`
	GamesWon    int `json:"games_won" db:"games_won"`
	GamesTotal  int `json:"games_total" db:"games_total"`

	// Optional linked data, populated by services.
	PlayerName *string `json:"player_name,omitempty" db:"-"`
}

// Averaj is games won over games total, 0 when no games were played.
func (s StandingRow) Averaj() float64 {
	if s.GamesTotal == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.GamesTotal)
}
