package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 54 {
		t.Fatalf("len(deck) = %d, want 54", len(deck))
	}
	set := CardSet(deck)
	if len(set) != 54 {
		t.Fatalf("expected 54 distinct cards, got %d", len(set))
	}
	jokers := 0
	for c := range set {
		if c.IsJoker() {
			jokers++
		}
	}
	if jokers != 2 {
		t.Errorf("expected 2 jokers, got %d", jokers)
	}
}

func TestShufflePreservesComposition(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(1))
	shuffled := Shuffle(deck, rng)
	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled length changed")
	}
	orig, got := CardSet(deck), CardSet(shuffled)
	for c, n := range orig {
		if got[c] != n {
			t.Fatalf("shuffle changed composition: %v count %d vs %d", c, got[c], n)
		}
	}
}
