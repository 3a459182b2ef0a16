package engine

import "yaniv/internal/domain"

// popDeck removes and returns the top card of the draw deck, reshuffling
// the superseded discards back into a fresh deck first if the deck has
// run dry.
func (gs *GameState) popDeck() (domain.Card, []Event) {
	var events []Event
	if len(gs.Deck) == 0 {
		events = gs.reshuffle()
	}
	if len(gs.Deck) == 0 {
		// Degenerate case: every unseen card besides the live discard is
		// already in a hand. There is nothing left to deal from; hand the
		// live discard itself back rather than index out of range.
		card := gs.PickupCards[len(gs.PickupCards)-1]
		gs.PickupCards = gs.PickupCards[:len(gs.PickupCards)-1]
		return card, events
	}
	card := gs.Deck[0]
	gs.Deck = gs.Deck[1:]
	return card, events
}

// reshuffle rebuilds the draw deck when it empties mid-round: every
// superseded discard, plus whatever sits beneath the top of the pickup
// pile, becomes a uniformly shuffled fresh deck. The top pickup card
// (the live discard everyone can see) is never touched.
func (gs *GameState) reshuffle() []Event {
	pool := append([]domain.Card{}, gs.Discarded...)
	if len(gs.PickupCards) > 1 {
		top := gs.PickupCards[len(gs.PickupCards)-1]
		pool = append(pool, gs.PickupCards[:len(gs.PickupCards)-1]...)
		gs.PickupCards = []domain.Card{top}
	}
	if len(pool) == 0 {
		return nil
	}
	gs.Discarded = nil
	gs.Deck = domain.Shuffle(pool, gs.rng)
	return []Event{{Kind: EventDeckReshuffled, Payload: DeckReshuffledPayload{}}}
}
