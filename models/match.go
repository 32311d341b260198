package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusWalkover  MatchStatus = "walkover"
)

// Match is one fixture of a group. Side 1 and side 2 are single players, or
// player plus partner pairs for doubles. Scheduling metadata is set by the
// players (or an admin) before a score exists.
type Match struct {
	ID               int         `json:"id" db:"id"`
	GroupID          int         `json:"group_id" db:"group_id"`
	Player1ID        int         `json:"player1_id" db:"player1_id"`
	Player2ID        int         `json:"player2_id" db:"player2_id"`
	Player1PartnerID *int        `json:"player1_partner_id,omitempty" db:"player1_partner_id"`
	Player2PartnerID *int        `json:"player2_partner_id,omitempty" db:"player2_partner_id"`
	IsDoubles        bool        `json:"is_doubles" db:"is_doubles"`
	WeekNumber       int         `json:"week_number" db:"week_number"`
	MatchDate        *time.Time  `json:"match_date,omitempty" db:"match_date"`
	MatchTime        *string     `json:"match_time,omitempty" db:"match_time"`
	Venue            *string     `json:"venue,omitempty" db:"venue"`
	ScheduledBy      *int        `json:"scheduled_by,omitempty" db:"scheduled_by"`
	Status           MatchStatus `json:"status" db:"status"`

	// Optional linked data, populated by services.
	Player1Name        *string     `json:"player1_name,omitempty" db:"-"`
	Player2Name        *string     `json:"player2_name,omitempty" db:"-"`
	Player1PartnerName *string     `json:"player1_partner_name,omitempty" db:"-"`
	Player2PartnerName *string     `json:"player2_partner_name,omitempty" db:"-"`
	GroupName          *string     `json:"group_name,omitempty" db:"-"`
	CategoryName       *string     `json:"category_name,omitempty" db:"-"`
	Gender             *Gender     `json:"gender,omitempty" db:"-"`
	Score              *MatchScore `json:"score,omitempty" db:"-"`
}

// HasParticipant reports whether the user plays in this match, partners
// included.
func (m Match) HasParticipant(userID int) bool {
	if m.Player1ID == userID || m.Player2ID == userID {
		return true
	}
	if m.Player1PartnerID != nil && *m.Player1PartnerID == userID {
		return true
	}
	if m.Player2PartnerID != nil && *m.Player2PartnerID == userID {
		return true
	}
	return false
}

// SideOf returns 1 or 2 for a participant of the match, 0 for an outsider.
func (m Match) SideOf(userID int) int {
	switch {
	case m.Player1ID == userID,
		m.Player1PartnerID != nil && *m.Player1PartnerID == userID:
		return 1
	case m.Player2ID == userID,
		m.Player2PartnerID != nil && *m.Player2PartnerID == userID:
		return 2
	default:
		return 0
	}
}
