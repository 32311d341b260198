package scoring

// ResolvePartner derives a participant's doubles partner by scanning which
// participants appear together on one side of a doubles match. A participant
// with no doubles match in view is a singles entrant, not an error.
func ResolvePartner(participantID int, matches []MatchResult) (int, bool) {
	for _, m := range matches {
		if !m.Doubles {
			continue
		}
		for _, side := range []TeamRef{m.Side1, m.Side2} {
			if side.PlayerID == participantID && side.PartnerID != 0 {
				return side.PartnerID, true
			}
			if side.PartnerID == participantID {
				return side.PlayerID, true
			}
		}
	}
	return 0, false
}

// TeamRow is one display row of a group's standings. For a partnered pair only
// the canonical member's row is kept and PartnerID names the other member;
// PartnerID is zero for singles entrants.
type TeamRow struct {
	Row
	PartnerID int `json:"partner_id,omitempty"`
}

// MergeTeams collapses partnered pairs into single team rows. The member with
// the lower participant id is retained as canonical; its partner's row is
// dropped. Partner rows are numerically identical by the doubles symmetry
// invariant, so no values are combined.
func MergeTeams(rows []Row, matches []MatchResult) []TeamRow {
	merged := make([]TeamRow, 0, len(rows))

	for _, row := range rows {
		partnerID, ok := ResolvePartner(row.ParticipantID, matches)
		if !ok {
			merged = append(merged, TeamRow{Row: row})
			continue
		}
		if partnerID < row.ParticipantID {
			// Канонической остаётся строка с меньшим id.
			continue
		}
		merged = append(merged, TeamRow{Row: row, PartnerID: partnerID})
	}

	return merged
}
