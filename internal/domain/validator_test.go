package domain

import (
	"reflect"
	"testing"
)

func c(suit Suit, rank Rank) Card { return Card{Suit: suit, Rank: rank} }

func TestIsValidSet(t *testing.T) {
	tests := []struct {
		name         string
		cards        []Card
		beforePickup bool
		want         bool
	}{
		{"empty", nil, false, false},
		{"single", []Card{c(Spades, 5)}, false, true},
		{"pair same rank", []Card{c(Spades, 5), c(Hearts, 5)}, false, true},
		{"triple with joker", []Card{c(Spades, 7), c(Hearts, 7), c(Spades, JokerRank)}, false, true},
		{"two jokers are a set", []Card{c(Spades, JokerRank), c(Hearts, JokerRank)}, false, true},
		{"quad same rank", []Card{c(Spades, 9), c(Hearts, 9), c(Diamonds, 9), c(Clubs, 9)}, false, true},
		{"run of three", []Card{c(Spades, 3), c(Spades, 4), c(Spades, 5)}, false, true},
		{"run of three beforePickup", []Card{c(Spades, 3), c(Spades, 4), c(Spades, 5)}, true, true},
		{"two distinct cards beforePickup rejected", []Card{c(Spades, 3), c(Spades, 4)}, true, false},
		{"two distinct cards not beforePickup still needs 3", []Card{c(Spades, 3), c(Spades, 4)}, false, false},
		{"joker run with gap", []Card{c(Diamonds, 3), c(Diamonds, 5), c(Spades, JokerRank)}, false, true},
		{"mixed suit not a run", []Card{c(Spades, 3), c(Hearts, 4), c(Diamonds, 5)}, false, false},
		{"five same rank invalid", []Card{c(Spades, 5), c(Hearts, 5), c(Diamonds, 5), c(Clubs, 5), c(Spades, JokerRank)}, false, false},
		{"joker fills jack below queen-king", []Card{c(Spades, 12), c(Spades, 13), c(Spades, JokerRank)}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidSet(tt.cards, tt.beforePickup); got != tt.want {
				t.Errorf("IsValidSet(%v, %v) = %v, want %v", tt.cards, tt.beforePickup, got, tt.want)
			}
		})
	}
}

func TestFindSequenceArrangement(t *testing.T) {
	arr, ok := FindSequenceArrangement([]Card{c(Diamonds, 5), c(Diamonds, 3), c(Spades, JokerRank)})
	if !ok {
		t.Fatalf("expected arrangement to be found")
	}
	want := []Card{c(Diamonds, 3), c(Spades, JokerRank), c(Diamonds, 5)}
	if !reflect.DeepEqual(arr, want) {
		t.Errorf("arrangement = %v, want %v", arr, want)
	}

	if _, ok := FindSequenceArrangement([]Card{c(Spades, 3), c(Hearts, 4)}); ok {
		t.Errorf("expected invalid combination to report false")
	}
}

func TestFindSequenceArrangementRoundTrip(t *testing.T) {
	// Property: whatever FindSequenceArrangement returns must itself be valid,
	// and must not depend on the input order.
	inputs := [][]Card{
		{c(Spades, 7), c(Spades, 5), c(Spades, 6)},
		{c(Hearts, 9), c(Hearts, 9), c(Clubs, 9)},
		{c(Clubs, 2), c(Clubs, JokerRank), c(Clubs, 4)},
	}
	for _, in := range inputs {
		arr, ok := FindSequenceArrangement(in)
		if !ok {
			t.Fatalf("expected %v to be valid", in)
		}
		if !IsValidSet(arr, false) {
			t.Errorf("arrangement %v of %v is not itself valid", arr, in)
		}

		shuffled := []Card{in[2], in[0], in[1]}
		arr2, ok2 := FindSequenceArrangement(shuffled)
		if !ok2 || !reflect.DeepEqual(arr, arr2) {
			t.Errorf("arrangement not stable under reordering: %v vs %v", arr, arr2)
		}
	}
}

func TestSlapDownValidFrom(t *testing.T) {
	tests := []struct {
		name  string
		last  []Card
		drawn Card
		want  SlapSide
	}{
		{"single rank match", []Card{c(Diamonds, 7)}, c(Clubs, 7), SlapRight},
		{"single rank mismatch", []Card{c(Diamonds, 7)}, c(Clubs, 8), SlapNone},
		{"joker matches joker", []Card{c(Spades, JokerRank)}, c(Hearts, JokerRank), SlapRight},
		{"ten does not match king", []Card{c(Diamonds, 10)}, c(Clubs, 13), SlapNone},
		{"same rank set extends", []Card{c(Clubs, 6), c(Hearts, 6)}, c(Diamonds, 6), SlapRight},
		{"run extends right", []Card{c(Clubs, 5), c(Clubs, 6), c(Clubs, 7)}, c(Clubs, 8), SlapRight},
		{"run extends left", []Card{c(Clubs, 5), c(Clubs, 6), c(Clubs, 7)}, c(Clubs, 4), SlapLeft},
		{"run wrong suit", []Card{c(Clubs, 5), c(Clubs, 6), c(Clubs, 7)}, c(Hearts, 8), SlapNone},
		{"run with joker disqualified", []Card{c(Clubs, 5), c(Clubs, 6), c(Spades, JokerRank)}, c(Clubs, 7), SlapNone},
		{"run at rank 13 boundary", []Card{c(Clubs, 11), c(Clubs, 12), c(Clubs, 13)}, c(Clubs, 14), SlapNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlapDownValidFrom(tt.last, tt.drawn); got != tt.want {
				t.Errorf("SlapDownValidFrom(%v, %v) = %v, want %v", tt.last, tt.drawn, got, tt.want)
			}
		})
	}
}

func TestSlapDownLocality(t *testing.T) {
	// Property: a non-none result must yield a still-valid combination when applied.
	cases := []struct {
		last  []Card
		drawn Card
	}{
		{[]Card{c(Clubs, 5), c(Clubs, 6), c(Clubs, 7)}, c(Clubs, 8)},
		{[]Card{c(Clubs, 5), c(Clubs, 6), c(Clubs, 7)}, c(Clubs, 4)},
		{[]Card{c(Diamonds, 7)}, c(Clubs, 7)},
		{[]Card{c(Spades, JokerRank)}, c(Hearts, JokerRank)},
	}
	for _, tc := range cases {
		side := SlapDownValidFrom(tc.last, tc.drawn)
		if side == SlapNone {
			t.Fatalf("expected a side for %v + %v", tc.last, tc.drawn)
		}
		var extended []Card
		if side == SlapLeft {
			extended = append([]Card{tc.drawn}, tc.last...)
		} else {
			extended = append(append([]Card{}, tc.last...), tc.drawn)
		}
		if !IsValidSet(extended, false) {
			t.Errorf("extended combination %v is not valid", extended)
		}
	}
}

func TestCanPickup(t *testing.T) {
	if CanPickup(0, 0) {
		t.Errorf("empty pile should never allow pickup")
	}
	if !CanPickup(3, 0) || !CanPickup(3, 2) {
		t.Errorf("expected both ends of a 3-card pile to be pickup-eligible")
	}
	if CanPickup(3, 1) {
		t.Errorf("middle of pile should not be pickup-eligible")
	}
}
