// Package bot implements the three AI difficulty tiers that stand in for
// a human player: which cards to discard, whether to take the pickup
// pile or the deck, and when to call Yaniv. None of it touches Nakama;
// it only reads an *engine.GameState and returns a decision for the
// caller to feed back into engine.CompleteTurn / engine.CallYaniv.
package bot

import (
	"sort"

	"yaniv/internal/domain"
)

// comboKind distinguishes the three shapes a candidate discard can take,
// used by the rule-ordered chooseCards policy (spec.md §4.3) to ask "is
// there a run candidate" / "is there a set candidate" separately from
// "what's the best discard overall".
type comboKind int

const (
	kindSingle comboKind = iota
	kindSet
	kindRun
)

// combo is a candidate discard: the cards themselves, already arranged
// in the canonical order the engine expects, their combined value, and
// which shape produced them.
type combo struct {
	cards []domain.Card
	value int
	kind  comboKind
}

// candidateCombos enumerates every valid discard combo a hand can form,
// allowing a single joker to bridge a run. Used by the simpler
// value-maximizing helpers (bestByValue) and by tests.
func candidateCombos(hand []domain.Card) []combo {
	return candidateCombosGated(hand, 1)
}

// candidateCombosGated enumerates candidate discards the same way, but
// bounds how many jokers a synthesized run may absorb: -1 finds no runs
// at all (easy, spec.md §4.3 "easy finds no run candidates at all"), 0
// finds only runs already complete in hand (medium), 1 allows a single
// joker bridge (hard). Set detection is never gated: spec.md's joker
// gating only applies to "synthesized runs".
func candidateCombosGated(hand []domain.Card, maxRunJokers int) []combo {
	var out []combo
	for _, c := range hand {
		out = append(out, combo{cards: []domain.Card{c}, value: c.Value(), kind: kindSingle})
	}

	byRank := make(map[domain.Rank][]domain.Card)
	var allJokers []domain.Card
	for _, c := range hand {
		if c.IsJoker() {
			allJokers = append(allJokers, c)
			continue
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	for _, cards := range byRank {
		if len(cards) < 2 {
			continue
		}
		for size := 2; size <= len(cards) && size <= 4; size++ {
			out = append(out, combo{cards: append([]domain.Card{}, cards[:size]...), value: domain.HandValue(cards[:size]), kind: kindSet})
		}
		if len(allJokers) > 0 && len(cards)+1 <= 4 {
			withJoker := append(append([]domain.Card{}, cards...), allJokers[0])
			out = append(out, combo{cards: withJoker, value: domain.HandValue(withJoker), kind: kindSet})
		}
	}

	if maxRunJokers < 0 {
		return out
	}
	runJokers := allJokers
	if len(runJokers) > maxRunJokers {
		runJokers = runJokers[:maxRunJokers]
	}
	bySuit := make(map[domain.Suit][]domain.Card)
	for _, c := range hand {
		if c.IsJoker() {
			continue
		}
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for _, cards := range bySuit {
		sort.Slice(cards, func(i, j int) bool { return cards[i].Rank < cards[j].Rank })
		out = append(out, runsWithin(cards, runJokers)...)
	}

	return out
}

// runsWithin finds every maximal-or-shorter run of 3+ consecutive ranks
// within a single suit's sorted cards, optionally bridged by one joker.
func runsWithin(sorted []domain.Card, jokers []domain.Card) []combo {
	var out []combo
	n := len(sorted)
	for i := 0; i < n; i++ {
		run := []domain.Card{sorted[i]}
		usedJoker := false
		for j := i + 1; j < n; j++ {
			gap := int(sorted[j].Rank) - int(run[len(run)-1].Rank)
			if gap == 1 {
				run = append(run, sorted[j])
			} else if gap == 2 && !usedJoker && len(jokers) > 0 {
				run = append(run, jokers[0], sorted[j])
				usedJoker = true
			} else {
				break
			}
			if len(run) >= 3 {
				arranged, ok := domain.FindSequenceArrangement(run)
				if ok {
					out = append(out, combo{cards: arranged, value: domain.HandValue(arranged), kind: kindRun})
				}
			}
		}
	}
	return out
}

// bestByValue returns the highest-value combo in combos, nil if empty.
func bestByValue(combos []combo) *combo {
	if len(combos) == 0 {
		return nil
	}
	best := combos[0]
	for _, c := range combos[1:] {
		if c.value > best.value || (c.value == best.value && len(c.cards) > len(best.cards)) {
			best = c
		}
	}
	return &best
}

// ofKind filters combos down to one shape.
func ofKind(combos []combo, kind comboKind) []combo {
	var out []combo
	for _, c := range combos {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// longestThenHighest picks the combo with the most cards, breaking ties
// by total value (spec.md §4.3 rule 3: "break ties by longer, then by
// larger total rank value").
func longestThenHighest(combos []combo) *combo {
	if len(combos) == 0 {
		return nil
	}
	best := combos[0]
	for _, c := range combos[1:] {
		if len(c.cards) > len(best.cards) || (len(c.cards) == len(best.cards) && c.value > best.value) {
			best = c
		}
	}
	return &best
}

// highestNonJoker returns the highest-value non-joker card in hand, or
// the first card if the hand is somehow all jokers.
func highestNonJoker(hand []domain.Card) domain.Card {
	best := hand[0]
	found := false
	for _, c := range hand {
		if c.IsJoker() {
			continue
		}
		if !found || c.Value() > best.Value() {
			best = c
			found = true
		}
	}
	return best
}

// cardsEqual reports whether two cards are the same suit and rank.
func cardsEqual(a, b domain.Card) bool { return a == b }

// containsCard reports whether set holds card.
func containsCard(set []domain.Card, card domain.Card) bool {
	for _, c := range set {
		if cardsEqual(c, card) {
			return true
		}
	}
	return false
}
