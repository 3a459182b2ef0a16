package domain

// SlapSide is the result of SlapDownValidFrom: which end of the
// last-discarded set the drawn card may extend, if either.
type SlapSide int

const (
	SlapNone SlapSide = iota
	SlapLeft
	SlapRight
)

// SlapDownValidFrom reports whether drawn may be slapped onto the
// just-discarded combination lastDiscarded, and if so, which end it
// extends. A multi-card lastDiscarded containing any joker never
// qualifies (the single-card case handles joker-onto-joker directly).
func SlapDownValidFrom(lastDiscarded []Card, drawn Card) SlapSide {
	if len(lastDiscarded) == 0 {
		return SlapNone
	}

	if len(lastDiscarded) == 1 {
		if drawn.Rank == lastDiscarded[0].Rank {
			return SlapRight
		}
		return SlapNone
	}

	for _, c := range lastDiscarded {
		if c.IsJoker() {
			return SlapNone
		}
	}

	if isSameRankSet(lastDiscarded) {
		if drawn.Rank == lastDiscarded[0].Rank {
			return SlapRight
		}
		return SlapNone
	}

	if !isSameSuitDistinctRanks(lastDiscarded) || len(lastDiscarded) < 3 {
		return SlapNone
	}

	suit := lastDiscarded[0].Suit
	if drawn.IsJoker() || drawn.Suit != suit {
		return SlapNone
	}

	minRank, maxRank := lastDiscarded[0].Rank, lastDiscarded[0].Rank
	for _, c := range lastDiscarded[1:] {
		if c.Rank < minRank {
			minRank = c.Rank
		}
		if c.Rank > maxRank {
			maxRank = c.Rank
		}
	}

	switch {
	case int(drawn.Rank) == int(minRank)-1 && minRank > 1:
		return SlapLeft
	case int(drawn.Rank) == int(maxRank)+1 && maxRank < 13:
		return SlapRight
	default:
		return SlapNone
	}
}

// CanPickup reports whether index is a legal pickup position in a pile of
// pileLength cards: either end, when the pile is non-empty.
func CanPickup(pileLength, index int) bool {
	if pileLength <= 0 {
		return false
	}
	return index == 0 || index == pileLength-1
}
