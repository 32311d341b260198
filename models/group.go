package models

// Group is a round-robin pool of 4 to 9 players within a category; the unit of
// scheduling and of standings.
type Group struct {
	ID         int    `json:"id" db:"id"`
	CategoryID int    `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`

	// Optional linked data, populated by services.
	CategoryName *string `json:"category_name,omitempty" db:"-"`
	Gender       *Gender `json:"gender,omitempty" db:"-"`
	PlayerCount  *int    `json:"player_count,omitempty" db:"-"`
}

// Roster size limits enforced on group membership changes.
const (
	GroupMinPlayers = 4
	GroupMaxPlayers = 9
)
