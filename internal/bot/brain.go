package bot

import (
	"yaniv/internal/domain"
	"yaniv/internal/engine"
)

// Decision is everything a Brain decides on its turn: whether to call
// Yaniv instead of playing, and if not, which action to submit.
type Decision struct {
	CallYaniv bool
	Action    engine.TurnAction
}

// Brain is the interface every bot difficulty tier implements.
type Brain interface {
	Decide(gs *engine.GameState, playerID string) Decision
}

// Tier is the shared Brain implementation behind every difficulty: the
// three exported tier types (GoodBot, SmartBot, GodBot) are thin,
// difficulty-tagged wrappers around it. spec.md §4.3 describes a single
// chooseCards/decidePickupIndex policy gated by difficulty, not three
// independent policies, so the three tiers differ only in which
// domain.Difficulty they pass through.
type Tier struct {
	Difficulty domain.Difficulty
}

// Decide calls Yaniv the moment it's legal (bots never bluff a worse
// hand hoping to draw a better one), and otherwise runs decidePickupIndex
// to choose a draw source and chooseCards to choose a discard.
func (t Tier) Decide(gs *engine.GameState, playerID string) Decision {
	hand := gs.PlayerHands[playerID]
	if decideYaniv(gs, playerID) {
		return Decision{CallYaniv: true}
	}

	if idx, take := DecidePickupIndex(hand, gs.PickupCards, t.Difficulty); take {
		discard := ChooseCards(hand, []domain.Card{gs.PickupCards[idx]}, t.Difficulty)
		return Decision{Action: engine.TurnAction{
			Choice:        engine.ChoicePickup,
			PickupIndex:   idx,
			SelectedCards: discard,
		}}
	}

	discard := ChooseCards(hand, gs.PickupCards, t.Difficulty)
	return Decision{Action: engine.TurnAction{Choice: engine.ChoiceDeck, SelectedCards: discard}}
}

// decideYaniv reports whether hand's value is at or below the room's
// threshold. Every difficulty tier calls Yaniv the moment it legally can
// (spec.md §4.3: "Always call Yaniv automatically when handValue <=
// canCallYaniv").
func decideYaniv(gs *engine.GameState, playerID string) bool {
	hand := gs.PlayerHands[playerID]
	return domain.HandValue(hand) <= gs.CanCallYaniv
}
