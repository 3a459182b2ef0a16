package engine

import (
	"time"

	"yaniv/internal/domain"
)

// armTurn arms the turn timer for the current player and returns the
// turn_started event. It is the terminal step of Deal's scheduled delay
// and of every subsequent turn advance.
func (gs *GameState) armTurn() []Event {
	gs.TurnStartTime = gs.clock.Now()
	gs.TurnDeadline = gs.TurnStartTime.Add(time.Duration(gs.TimePerPlayer) * time.Second)
	return []Event{{
		Kind: EventTurnStarted,
		Payload: TurnStartedPayload{
			CurrentPlayerID:  gs.currentPlayerID(),
			TimeRemainingSec: gs.TimePerPlayer,
		},
	}}
}

// CurrentPlayerID returns the id of the player whose turn it is.
func (gs *GameState) CurrentPlayerID() string {
	return gs.currentPlayerID()
}

func (gs *GameState) currentPlayerID() string {
	if gs.CurrentPlayerIndex < 0 || gs.CurrentPlayerIndex >= len(gs.PlayerOrder) {
		return ""
	}
	return gs.PlayerOrder[gs.CurrentPlayerIndex]
}

// IsTurnTimerDue reports whether the current player's turn timer has
// elapsed.
func (gs *GameState) IsTurnTimerDue() bool {
	return !gs.TurnDeadline.IsZero() && !gs.clock.Now().Before(gs.TurnDeadline)
}

// IsSlapDownDue reports whether an open slap-down window has elapsed.
func (gs *GameState) IsSlapDownDue() bool {
	return !gs.SlapDownDeadline.IsZero() && !gs.clock.Now().Before(gs.SlapDownDeadline)
}

// validateAction rejects an illegal TurnAction: the game has ended, it is
// not playerID's turn, the player has no hand, the cards are not in hand,
// the combination is invalid, or the pickup index is not an end of the pile.
func (gs *GameState) validateAction(playerID string, action TurnAction) error {
	if gs.GameEnded {
		return ErrGameEnded
	}
	if gs.currentPlayerID() != playerID {
		return ErrNotYourTurn
	}
	hand, ok := gs.PlayerHands[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if !domain.ContainsAll(hand, action.SelectedCards) {
		return ErrCardsNotInHand
	}
	if !domain.IsValidSet(action.SelectedCards, true) {
		return ErrInvalidSelection
	}
	if action.Choice == ChoicePickup && !domain.CanPickup(len(gs.PickupCards), action.PickupIndex) {
		return ErrInvalidPickupIndex
	}
	return nil
}

// CompleteTurn processes a validated TurnAction for playerID: pop a card
// (deck or pickup pile), arm a slap-down window if applicable, advance the
// turn, and arm the next player's timer. It is also used, with
// disableSlapDown forced true, to complete a forced timeout discard.
func (gs *GameState) CompleteTurn(playerID string, action TurnAction, disableSlapDown bool) ([]Event, error) {
	if err := gs.validateAction(playerID, action); err != nil {
		return nil, err
	}

	// Any still-open slap-down window belongs to the previous turn; a new
	// action supersedes it (turn advance cancels the slap-down timer).
	gs.clearSlapDown()

	hand := gs.PlayerHands[playerID]
	beforeSize := len(hand)
	positions := positionsOf(hand, action.SelectedCards)

	arranged, _ := domain.FindSequenceArrangement(action.SelectedCards)
	hand = domain.RemoveCards(hand, action.SelectedCards)

	var drawn domain.Card
	source := SourceDeck
	slapDownActiveFor := ""

	switch action.Choice {
	case ChoiceDeck:
		var reshuffleEvents []Event
		drawn, reshuffleEvents = gs.popDeck()
		gs.Discarded = append(gs.Discarded, gs.PickupCards...)
		gs.PickupCards = arranged

		if gs.SlapDown && !disableSlapDown && !drawn.IsJoker() {
			if side := domain.SlapDownValidFrom(arranged, drawn); side != domain.SlapNone {
				gs.SlapDownActiveFor = playerID
				gs.SlapDownCard = drawn
				gs.SlapDownDeadline = gs.clock.Now().Add(3 * time.Second)
				slapDownActiveFor = playerID
			}
		}
		hand = append(hand, drawn)
		domain.SortHand(hand)
		gs.PlayerHands[playerID] = hand

		gs.advanceTurn()
		events := reshuffleEvents
		events = append(events, Event{
			Kind: EventPlayerDrew,
			Payload: PlayerDrewPayload{
				PlayerID:               playerID,
				Source:                 source,
				Hands:                  copyHands(gs.PlayerHands),
				PickupCards:            append([]domain.Card{}, gs.PickupCards...),
				Card:                   drawn,
				SelectedCardsPositions: positions,
				AmountBefore:           beforeSize,
				CurrentPlayerID:        gs.currentPlayerID(),
				SlapDownActiveFor:      slapDownActiveFor,
			},
		})
		events = append(events, gs.armTurn()...)
		return events, nil

	case ChoicePickup:
		source = SourcePickup
		drawn = gs.PickupCards[action.PickupIndex]
		for i, c := range gs.PickupCards {
			if i != action.PickupIndex {
				gs.Discarded = append(gs.Discarded, c)
			}
		}
		gs.PickupCards = arranged
		hand = append(hand, drawn)
		domain.SortHand(hand)
		gs.PlayerHands[playerID] = hand

		gs.advanceTurn()
		events := []Event{{
			Kind: EventPlayerDrew,
			Payload: PlayerDrewPayload{
				PlayerID:               playerID,
				Source:                 source,
				Hands:                  copyHands(gs.PlayerHands),
				PickupCards:            append([]domain.Card{}, gs.PickupCards...),
				Card:                   drawn,
				SelectedCardsPositions: positions,
				AmountBefore:           beforeSize,
				CurrentPlayerID:        gs.currentPlayerID(),
			},
		}}
		events = append(events, gs.armTurn()...)
		return events, nil
	}

	return nil, ErrInvalidSelection
}

// TimeoutTurn forces the current player to discard their highest-rank card
// via the deck, with slap-down disabled, per spec.md §4.2 "Turn timeout".
func (gs *GameState) TimeoutTurn(playerID string) ([]Event, error) {
	hand := gs.PlayerHands[playerID]
	if len(hand) == 0 {
		return nil, ErrUnknownPlayer
	}
	highest := hand[0]
	for _, c := range hand[1:] {
		if c.Rank > highest.Rank {
			highest = c
		}
	}
	return gs.CompleteTurn(playerID, TurnAction{Choice: ChoiceDeck, SelectedCards: []domain.Card{highest}}, true)
}

// advanceTurn moves CurrentPlayerIndex to the next active player
// cyclically (testable property 3: only-one-turn).
func (gs *GameState) advanceTurn() {
	n := len(gs.PlayerOrder)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := (gs.CurrentPlayerIndex + i) % n
		if gs.PlayersStats[gs.PlayerOrder[idx]] == StatusActive {
			gs.CurrentPlayerIndex = idx
			return
		}
	}
}

func positionsOf(hand []domain.Card, selected []domain.Card) []int {
	used := make([]bool, len(hand))
	positions := make([]int, 0, len(selected))
	for _, sc := range selected {
		for i, hc := range hand {
			if !used[i] && hc == sc {
				used[i] = true
				positions = append(positions, i)
				break
			}
		}
	}
	return positions
}
