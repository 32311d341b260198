package scoring

import "sort"

// Rank orders standings rows by points, then averaj, both descending. Rows
// still tied after both keys keep their relative input order; deeper
// head-to-head cascades from the rules text are intentionally not applied
// here. Rank position is the 1-based index of the returned slice.
func Rank(rows []Row) []Row {
	ranked := make([]Row, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Averaj() > ranked[j].Averaj()
	})

	return ranked
}

// RankTeams orders merged team rows the same way as Rank.
func RankTeams(rows []TeamRow) []TeamRow {
	ranked := make([]TeamRow, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Averaj() > ranked[j].Averaj()
	})

	return ranked
}
