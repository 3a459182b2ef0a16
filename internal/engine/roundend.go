package engine

import (
	"time"

	"yaniv/internal/domain"
)

// CallYaniv lets playerID end the round early by declaring their hand
// value at or below the room's threshold (spec.md §4.3). A hand value
// above the threshold is rejected outright and changes no state.
func (gs *GameState) CallYaniv(playerID string) ([]Event, error) {
	if gs.GameEnded {
		return nil, ErrGameEnded
	}
	if gs.currentPlayerID() != playerID {
		return nil, ErrNotYourTurn
	}
	hand, ok := gs.PlayerHands[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if v := domain.HandValue(hand); v > gs.CanCallYaniv {
		return nil, &yanivTooHighError{value: v, max: gs.CanCallYaniv}
	}

	outcome := resolveYaniv(gs, playerID)
	round := activePlayers(gs)
	eliminated, scoreDeltas := gs.applyScores(outcome.deltas)

	gs.TurnDeadline = time.Time{}
	gs.clearSlapDown()

	events := []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			WinnerID:          outcome.winnerID,
			PlayersStats:      copyStats(gs.PlayersStats),
			YanivCaller:       playerID,
			AssafCaller:       outcome.assafCaller,
			PlayerHands:       copyHands(gs.PlayerHands),
			RoundPlayers:      round,
			PlayersRoundScore: scoreDeltas,
			Losers:            eliminated,
			DisplayDelayMillis: displayDelay(len(round), len(eliminated) > 0),
		},
	}}

	for _, id := range eliminated {
		events = append(events, Event{Kind: EventHumanLost, Payload: HumanLostPayload{PlayerID: id}})
	}

	if gameOver, endEvents := gs.checkMatchEnd(outcome.assafCaller); gameOver {
		return append(events, endEvents...), nil
	}

	gs.ScheduledKind = ScheduledNextRound
	gs.ScheduledDeadline = gs.clock.Now().Add(time.Duration(displayDelay(len(round), len(eliminated) > 0)) * time.Millisecond)
	return events, nil
}

// displayDelay is the client-facing pause before the next round begins,
// long enough to show the round-end scoreboard and, when someone was just
// eliminated, a little longer to show the elimination banner.
func displayDelay(activeCount int, hadElimination bool) int {
	delay := 2000*activeCount - 1
	if hadElimination {
		delay += 3250
	}
	return delay
}

func copyStats(stats map[string]PlayerStatus) map[string]PlayerStatus {
	out := make(map[string]PlayerStatus, len(stats))
	for k, v := range stats {
		out[k] = v
	}
	return out
}
