package engine

import "yaniv/internal/domain"

// roundOutcome is the result of resolving a Yaniv call: who won the round,
// who (if anyone) successfully called Assaf on the caller, and the signed
// score delta each active player takes away from the round.
type roundOutcome struct {
	winnerID    string
	assafCaller string
	deltas      map[string]int
}

// resolveYaniv computes the round outcome once callerID has called Yaniv.
// The caller wins only if every other active player's hand value is
// strictly above theirs; any opponent at or below the caller's value
// Assafs them, and the first such opponent in player order at the
// minimum value wins the round instead.
func resolveYaniv(gs *GameState, callerID string) roundOutcome {
	callerValue := domain.HandValue(gs.PlayerHands[callerID])

	bestOpponent := ""
	bestValue := -1
	for _, id := range activePlayers(gs) {
		if id == callerID {
			continue
		}
		v := domain.HandValue(gs.PlayerHands[id])
		if bestValue == -1 || v < bestValue {
			bestValue = v
			bestOpponent = id
		}
	}

	deltas := make(map[string]int, len(gs.PlayerOrder))
	assaf := ""
	winner := callerID

	if bestOpponent != "" && bestValue <= callerValue {
		assaf = bestOpponent
		winner = bestOpponent
		deltas[callerID] = 30 + callerValue
	} else {
		deltas[callerID] = 0
	}

	for _, id := range activePlayers(gs) {
		if id == callerID {
			continue
		}
		if id == assaf {
			deltas[id] = 0
			continue
		}
		deltas[id] = domain.HandValue(gs.PlayerHands[id])
	}

	return roundOutcome{winnerID: winner, assafCaller: assaf, deltas: deltas}
}

// applyScores folds a round's signed deltas into cumulative match scores,
// applying the subtract-50-on-multiple-of-50 bonus reduction (spec.md
// §4.3), and returns the players newly eliminated (score exceeds the
// room's max match points), in ascending id order, plus, per player, the
// signed increments actually applied (`[+score, -50?]`) for the
// round_ended broadcast. The same players are appended to
// PlayersLoserOrder in descending id order.
func (gs *GameState) applyScores(deltas map[string]int) (eliminated []string, increments map[string][]int) {
	increments = make(map[string][]int, len(deltas))
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sortStrings(ids)

	for _, id := range ids {
		gs.Scores[id] += deltas[id]
		incs := []int{deltas[id]}
		if gs.Scores[id] > 0 && gs.Scores[id]%50 == 0 {
			gs.Scores[id] -= 50
			incs = append(incs, -50)
		}
		increments[id] = incs
		if gs.Scores[id] > gs.MaxMatchPoints && gs.PlayersStats[id] == StatusActive {
			gs.PlayersStats[id] = StatusLost
			eliminated = append(eliminated, id)
		}
	}

	for i := len(eliminated) - 1; i >= 0; i-- {
		gs.PlayersLoserOrder = append(gs.PlayersLoserOrder, eliminated[i])
	}
	return eliminated, increments
}

func sortStrings(ids []string) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
