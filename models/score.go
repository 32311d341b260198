package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// MatchScore is the recorded result of a completed or walkover match.
// WinnerID holds a user id, or the draw sentinel (-1) when the match ended
// level. For walkovers the set fields hold the synthesized 6-0, 6-0 and
// WalkoverPlayerID names the defaulting player.
type MatchScore struct {
	ID              int            `json:"id" db:"id"`
	MatchID         int            `json:"match_id" db:"match_id"`
	Player1Set1     *int           `json:"player1_set1" db:"player1_set1"`
	Player2Set1     *int           `json:"player2_set1" db:"player2_set1"`
	Player1Set2     *int           `json:"player1_set2" db:"player1_set2"`
	Player2Set2     *int           `json:"player2_set2" db:"player2_set2"`
	SuperTiebreakP1 *int           `json:"super_tiebreak_p1,omitempty" db:"super_tiebreak_p1"`
	SuperTiebreakP2 *int           `json:"super_tiebreak_p2,omitempty" db:"super_tiebreak_p2"`
	WinnerID        int            `json:"winner_id" db:"winner_id"`
	WalkoverPlayer  *int           `json:"walkover_player_id,omitempty" db:"walkover_player_id"`
	SubmittedBy     int            `json:"submitted_by" db:"submitted_by"`
	SubmittedAt     time.Time      `json:"submitted_at" db:"submitted_at"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" db:"approval_status"`
	ApprovedBy      *int           `json:"approved_by,omitempty" db:"approved_by"`

	WinnerName *string `json:"winner_name,omitempty" db:"-"`
}

// IsWalkover reports whether the score records a forfeited match.
func (s MatchScore) IsWalkover() bool {
	return s.WalkoverPlayer != nil
}
