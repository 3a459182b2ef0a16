package engine

import (
	"time"

	"yaniv/internal/domain"
)

// ResolveSlapDown lets playerID extend the live discard with the just-
// drawn slap-down card, within the open window. The card is removed from
// their hand and prepended or appended to the pickup pile depending on
// which end it matches. The caller and the window are re-validated, and
// domain.SlapDownValidFrom is run again against the current pickup pile
// to choose the end; a card that no longer fits is rejected.
func (gs *GameState) ResolveSlapDown(playerID string) ([]Event, error) {
	if gs.SlapDownActiveFor == "" {
		return nil, ErrNoSlapDownWindow
	}
	if gs.SlapDownActiveFor != playerID {
		return nil, ErrNoSlapDownWindow
	}
	if gs.SlapDownDeadline.IsZero() || gs.clock.Now().After(gs.SlapDownDeadline) {
		gs.clearSlapDown()
		return nil, ErrNoSlapDownWindow
	}

	hand, ok := gs.PlayerHands[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	card := gs.SlapDownCard
	side := domain.SlapDownValidFrom(gs.PickupCards, card)
	if side == domain.SlapNone {
		gs.clearSlapDown()
		return nil, ErrSlapDownInvalid
	}

	switch side {
	case domain.SlapLeft:
		gs.PickupCards = append([]domain.Card{card}, gs.PickupCards...)
	case domain.SlapRight:
		gs.PickupCards = append(gs.PickupCards, card)
	}
	gs.PlayerHands[playerID] = domain.RemoveCards(hand, []domain.Card{card})
	gs.clearSlapDown()

	return []Event{{
		Kind: EventPlayerDrew,
		Payload: PlayerDrewPayload{
			PlayerID:        playerID,
			Source:          SourceSlap,
			Hands:           copyHands(gs.PlayerHands),
			PickupCards:     append([]domain.Card{}, gs.PickupCards...),
			Card:            card,
			CurrentPlayerID: gs.currentPlayerID(),
		},
	}}, nil
}

// ExpireSlapDown silently closes an unresolved slap-down window once
// IsSlapDownDue reports true; no event is emitted for a window closing on
// its own (spec.md §4.2: slap-down is opportunistic, not announced).
func (gs *GameState) ExpireSlapDown() {
	gs.clearSlapDown()
}

func (gs *GameState) clearSlapDown() {
	gs.SlapDownActiveFor = ""
	gs.SlapDownCard = domain.Card{}
	gs.SlapDownDeadline = time.Time{}
}
