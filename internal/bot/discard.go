package bot

import (
	"sort"

	"yaniv/internal/domain"
)

// maxRunJokers bounds how many jokers a synthesized run may absorb for a
// given difficulty (spec.md §4.3): easy sees no run candidates at all,
// medium only sees runs already complete in hand, hard allows exactly
// one joker bridge.
func maxRunJokers(difficulty domain.Difficulty) int {
	switch difficulty {
	case domain.Easy:
		return -1
	case domain.Hard:
		return 1
	default:
		return 0
	}
}

// pickupTop reports the reference card chooseCards reasons about when
// deciding whether to protect, extend, or ignore the pickup pile; the
// actual pickup index (either end) is decided separately by
// decidePickupIndex.
func pickupTop(pile []domain.Card) (domain.Card, bool) {
	if len(pile) == 0 {
		return domain.Card{}, false
	}
	return pile[0], true
}

// ChooseCards is the bot's discard policy (spec.md §4.3 "chooseCards"):
// an ordered list of rules, the first that applies wins. hand is the
// player's current hand; pickupPile is the live pickup pile (its front
// card is used as "the top" for rules that react to it); difficulty
// gates how aggressively runs may be synthesized with a joker.
func ChooseCards(hand []domain.Card, pickupPile []domain.Card, difficulty domain.Difficulty) []domain.Card {
	if len(hand) == 1 {
		return append([]domain.Card{}, hand...)
	}

	gate := maxRunJokers(difficulty)
	combos := candidateCombosGated(hand, gate)
	top, hasPickup := pickupTop(pickupPile)

	// Rule 1: protect a planned run - if the pickup top plus two cards
	// already in hand could form a run of length >= 3, discard something
	// that leaves those two cards alone.
	if hasPickup && !top.IsJoker() && gate >= 0 {
		if protect, ok := protectPlannedRun(hand, top); ok {
			return protect
		}
	}

	// Rule 2: take free jokers - if the pickup top is a joker, any safe
	// discard (one that doesn't break an existing combo) is fine.
	if hasPickup && top.IsJoker() {
		if d := safeDiscard(hand, combos); d != nil {
			return d
		}
	}

	// Rule 3: prefer long runs - discard an in-hand run of length >= 3,
	// longest first, ties broken by larger total value.
	if run := longestThenHighest(ofKind(combos, kindRun)); run != nil {
		return run.cards
	}

	// Rule 4: extend runs - if the top extends an in-hand run, discard the
	// highest non-joker card whose rank differs from the top's. The run's
	// own cards are not excluded from that choice.
	if hasPickup && !top.IsJoker() && gate >= 0 && extendsHandRun(hand, top, gate) {
		if d := discardOtherThanRank(hand, top.Rank); d != nil {
			return []domain.Card{*d}
		}
	}

	// Rule 5: keep completing pairs - if the top matches an in-hand rank,
	// keep that pairing and discard a different set if one exists, else
	// the highest card of a different rank.
	if hasPickup && !top.IsJoker() && matchesHandRank(hand, top.Rank) {
		sets := ofKind(combos, kindSet)
		var others []combo
		for _, s := range sets {
			if !containsRank(s.cards, top.Rank) {
				others = append(others, s)
			}
		}
		if best := bestByValue(others); best != nil {
			return best.cards
		}
		if d := discardOtherThanRank(hand, top.Rank); d != nil {
			return []domain.Card{*d}
		}
	}

	// Rule 6: low-card heuristic - if the pickup top is worth 2 points or
	// less, it's cheap to carry briefly; discard a safe high card now.
	if hasPickup && !top.IsJoker() && top.Value() <= 2 {
		if d := safeDiscard(hand, combos); d != nil {
			return d
		}
	}

	// Rule 7: prefer sets over singletons, with an ace exception: if the
	// best set is all aces and a non-ace singleton exists, keep the aces
	// (low point value) and discard the singleton instead.
	if best := bestByValue(ofKind(combos, kindSet)); best != nil {
		if isAllAces(best.cards) {
			if s := highestNonAceSingleton(hand); s != nil {
				return []domain.Card{*s}
			}
		}
		return best.cards
	}

	// Rule 8: fallback - discard the highest-rank non-joker card.
	return []domain.Card{highestNonJoker(hand)}
}

// protectPlannedRun looks for two hand cards that, with top, would form a
// run of length >= 3, and returns a safe discard that leaves both of them
// in hand. It reports ok=false if no such pair exists or no safe discard
// can be found around it.
func protectPlannedRun(hand []domain.Card, top domain.Card) ([]domain.Card, bool) {
	same := sameSuit(hand, top.Suit)
	for i := 0; i < len(same); i++ {
		for j := i + 1; j < len(same); j++ {
			trio := []domain.Card{same[i], same[j], top}
			if _, ok := domain.FindSequenceArrangement(trio); !ok {
				continue
			}
			protect := []domain.Card{same[i], same[j]}
			if d := safeDiscardExcluding(hand, protect); d != nil {
				return []domain.Card{*d}, true
			}
		}
	}
	return nil, false
}

// extendsHandRun reports whether top would extend some run already
// present in hand: an in-hand run of length >= 2, same suit as top, whose
// low end is top.Rank+1 or whose high end is top.Rank-1.
func extendsHandRun(hand []domain.Card, top domain.Card, gate int) bool {
	same := sameSuit(hand, top.Suit)
	sort.Slice(same, func(i, j int) bool { return same[i].Rank < same[j].Rank })
	for i := 0; i < len(same); i++ {
		for j := i + 1; j < len(same); j++ {
			if int(same[j].Rank)-int(same[i].Rank) != j-i {
				continue // not consecutive
			}
			lo, hi := same[i].Rank, same[j].Rank
			if int(top.Rank) == int(lo)-1 || int(top.Rank) == int(hi)+1 {
				return true
			}
		}
	}
	return false
}

// safeDiscard picks the highest-value single card not used by any
// set/run combo of 2+ cards, falling back to the highest single overall
// if every card participates in a combo.
func safeDiscard(hand []domain.Card, combos []combo) []domain.Card {
	used := make(map[domain.Card]bool)
	for _, c := range combos {
		if len(c.cards) >= 2 {
			for _, card := range c.cards {
				if !card.IsJoker() {
					used[card] = true
				}
			}
		}
	}
	var best *domain.Card
	for i, c := range hand {
		if c.IsJoker() || used[c] {
			continue
		}
		if best == nil || c.Rank > best.Rank {
			best = &hand[i]
		}
	}
	if best != nil {
		return []domain.Card{*best}
	}
	single := highestNonJoker(hand)
	return []domain.Card{single}
}

// safeDiscardExcluding returns the highest-rank non-joker card in hand
// that isn't one of the protected cards, or nil if none exists.
func safeDiscardExcluding(hand []domain.Card, protect []domain.Card) *domain.Card {
	var best *domain.Card
	for i, c := range hand {
		if c.IsJoker() || containsCard(protect, c) {
			continue
		}
		if best == nil || c.Rank > best.Rank {
			best = &hand[i]
		}
	}
	return best
}

// discardOtherThanRank returns the highest-rank non-joker card in hand
// whose rank differs from rank, or nil if none exists.
func discardOtherThanRank(hand []domain.Card, rank domain.Rank) *domain.Card {
	var best *domain.Card
	for i, c := range hand {
		if c.IsJoker() || c.Rank == rank {
			continue
		}
		if best == nil || c.Rank > best.Rank {
			best = &hand[i]
		}
	}
	return best
}

// matchesHandRank reports whether hand already holds a non-joker card of
// the given rank.
func matchesHandRank(hand []domain.Card, rank domain.Rank) bool {
	for _, c := range hand {
		if !c.IsJoker() && c.Rank == rank {
			return true
		}
	}
	return false
}

// containsRank reports whether any non-joker card in cards has rank r.
func containsRank(cards []domain.Card, r domain.Rank) bool {
	for _, c := range cards {
		if !c.IsJoker() && c.Rank == r {
			return true
		}
	}
	return false
}

// sameSuit filters hand to the non-joker cards of the given suit.
func sameSuit(hand []domain.Card, suit domain.Suit) []domain.Card {
	var out []domain.Card
	for _, c := range hand {
		if !c.IsJoker() && c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// isAllAces reports whether every non-joker card in cards is an ace.
func isAllAces(cards []domain.Card) bool {
	any := false
	for _, c := range cards {
		if c.IsJoker() {
			continue
		}
		any = true
		if c.Rank != 1 {
			return false
		}
	}
	return any
}

// highestNonAceSingleton returns the highest-rank card in hand that is
// neither an ace nor a joker, or nil if none exists.
func highestNonAceSingleton(hand []domain.Card) *domain.Card {
	var best *domain.Card
	for i, c := range hand {
		if c.IsJoker() || c.Rank == 1 {
			continue
		}
		if best == nil || c.Rank > best.Rank {
			best = &hand[i]
		}
	}
	return best
}
