package bot

import (
	"testing"

	"yaniv/internal/domain"
)

func TestCandidateCombosFindsSameRankSets(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 7},
		{Suit: domain.Hearts, Rank: 7},
		{Suit: domain.Clubs, Rank: 7},
		{Suit: domain.Diamonds, Rank: 2},
	}
	combos := candidateCombos(hand)
	found := false
	for _, c := range combos {
		if len(c.cards) == 3 && c.value == 21 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a triple of 7s among candidates, got %+v", combos)
	}
}

func TestCandidateCombosFindsRuns(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 3},
		{Suit: domain.Spades, Rank: 4},
		{Suit: domain.Spades, Rank: 5},
	}
	combos := candidateCombos(hand)
	found := false
	for _, c := range combos {
		if len(c.cards) == 3 && c.value == 12 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 3-4-5 run among candidates, got %+v", combos)
	}
}

func TestBestByValuePrefersHigherValue(t *testing.T) {
	combos := []combo{
		{cards: []domain.Card{{Suit: domain.Spades, Rank: 2}}, value: 2},
		{cards: []domain.Card{{Suit: domain.Hearts, Rank: 9}}, value: 9},
	}
	best := bestByValue(combos)
	if best == nil || best.value != 9 {
		t.Fatalf("bestByValue = %+v, want value 9", best)
	}
}

func TestBestByValueOnEmptyReturnsNil(t *testing.T) {
	if bestByValue(nil) != nil {
		t.Fatal("expected nil for empty combo list")
	}
}
