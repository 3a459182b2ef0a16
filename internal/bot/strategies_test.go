package bot

import (
	"testing"

	"github.com/coder/quartz"

	"yaniv/internal/config"
	"yaniv/internal/domain"
	"yaniv/internal/engine"
)

// buildState deals a throwaway two-player game (to get a well-formed
// GameState with a seeded deck) and then overwrites the seat under test
// with the exact hand and pickup pile the test wants to exercise.
func buildState(t *testing.T, playerID string, hand, pickup []domain.Card, canCallYaniv int) *engine.GameState {
	t.Helper()
	gs := engine.New(quartz.NewMock(t), engine.NewRNG(1), []string{playerID, "opponent"})
	cfg := config.Default()
	cfg.CanCallYaniv = canCallYaniv
	if _, err := gs.Deal(cfg); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	gs.PlayerHands[playerID] = hand
	gs.PickupCards = pickup
	gs.CanCallYaniv = canCallYaniv
	return gs
}

func TestGoodBotCallsYanivAssoonAsLegal(t *testing.T) {
	hand := []domain.Card{{Suit: domain.Spades, Rank: 2}, {Suit: domain.Hearts, Rank: 3}}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Clubs, Rank: 9}}, 10)
	d := GoodBot{}.Decide(gs, "p1")
	if !d.CallYaniv {
		t.Fatalf("expected CallYaniv, got %+v", d)
	}
}

func TestGoodBotDiscardsHighestSingle(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 2},
		{Suit: domain.Hearts, Rank: 11},
		{Suit: domain.Clubs, Rank: 5},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Diamonds, Rank: 9}}, 5)
	d := GoodBot{}.Decide(gs, "p1")
	if d.CallYaniv {
		t.Fatalf("did not expect CallYaniv")
	}
	if len(d.Action.SelectedCards) != 1 || d.Action.SelectedCards[0].Rank != 11 {
		t.Fatalf("expected discard of rank 11 single, got %+v", d.Action.SelectedCards)
	}
}

func TestGoodBotNeverTakesNonJokerPickup(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 2},
		{Suit: domain.Hearts, Rank: 11},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Diamonds, Rank: 1}}, 5)
	d := GoodBot{}.Decide(gs, "p1")
	if d.Action.Choice != engine.ChoiceDeck {
		t.Fatalf("expected deck draw, got choice %v", d.Action.Choice)
	}
}

func TestGoodBotAlwaysTakesFreeJoker(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 2},
		{Suit: domain.Hearts, Rank: 11},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Spades, Rank: domain.JokerRank}}, 5)
	d := GoodBot{}.Decide(gs, "p1")
	if d.Action.Choice != engine.ChoicePickup {
		t.Fatalf("expected pickup of free joker, got choice %v", d.Action.Choice)
	}
}

func TestSmartBotTakesLowValuePickupCard(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 9},
		{Suit: domain.Hearts, Rank: 10},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Diamonds, Rank: 1}}, 5)
	d := SmartBot{}.Decide(gs, "p1")
	if d.Action.Choice != engine.ChoicePickup {
		t.Fatalf("expected pickup of low-value card, got choice %v", d.Action.Choice)
	}
}

func TestSmartBotDiscardsHighestValueCombo(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 5},
		{Suit: domain.Hearts, Rank: 5},
		{Suit: domain.Clubs, Rank: 2},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Diamonds, Rank: 13}}, 5)
	d := SmartBot{}.Decide(gs, "p1")
	if len(d.Action.SelectedCards) != 2 {
		t.Fatalf("expected the pair of 5s discarded, got %+v", d.Action.SelectedCards)
	}
}

func TestGodBotTakesCardCompletingTriple(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.Spades, Rank: 8},
		{Suit: domain.Hearts, Rank: 8},
		{Suit: domain.Clubs, Rank: 1},
	}
	gs := buildState(t, "p1", hand, []domain.Card{{Suit: domain.Diamonds, Rank: 8}}, 5)
	d := GodBot{}.Decide(gs, "p1")
	if d.Action.Choice != engine.ChoicePickup {
		t.Fatalf("expected pickup setting up the triple of 8s, got choice %v", d.Action.Choice)
	}
	// Picking up the third 8 only pays off if the pair stays in hand, so
	// this turn's discard is the lone ace, not either 8.
	if len(d.Action.SelectedCards) != 1 || d.Action.SelectedCards[0].Rank != 1 {
		t.Fatalf("expected the ace discarded and the pair of 8s kept, got %+v", d.Action.SelectedCards)
	}
}

func TestFactoryMapsDifficultyToBrainType(t *testing.T) {
	cases := map[domain.Difficulty]Brain{
		domain.Easy:   GoodBot{},
		domain.Medium: SmartBot{},
		domain.Hard:   GodBot{},
	}
	for difficulty, want := range cases {
		got := NewBrain(difficulty)
		if typeName(got) != typeName(want) {
			t.Fatalf("NewBrain(%v) = %T, want %T", difficulty, got, want)
		}
	}
}

func typeName(b Brain) string {
	switch b.(type) {
	case GoodBot:
		return "GoodBot"
	case SmartBot:
		return "SmartBot"
	case GodBot:
		return "GodBot"
	default:
		return "unknown"
	}
}
