package engine

// MarkLeave takes playerID out of active play mid-match: their status
// becomes leave, their hand returns to the discard pool, and, if it was
// their turn, play advances to the next active player (returning the
// next turn_started event). Callers decide separately whether the
// departure ends the match via EndMatchOnLeave.
func (gs *GameState) MarkLeave(playerID string) []Event {
	status, ok := gs.PlayersStats[playerID]
	if !ok {
		return nil
	}
	wasCurrent := gs.currentPlayerID() == playerID
	gs.PlayersStats[playerID] = StatusLeave
	if hand, held := gs.PlayerHands[playerID]; held {
		gs.Discarded = append(gs.Discarded, hand...)
		delete(gs.PlayerHands, playerID)
	}
	if gs.SlapDownActiveFor == playerID {
		gs.clearSlapDown()
	}
	if wasCurrent && status == StatusActive && !gs.GameEnded && len(activePlayers(gs)) > 1 {
		gs.advanceTurn()
		return gs.armTurn()
	}
	return nil
}

// EndMatchOnLeave finalizes the match when a mid-round departure drops
// the active player count below two, outside the normal Yaniv/Assaf
// round-resolution path. It reports whether the match actually ended
// (it won't if departures still leave two or more active players).
func (gs *GameState) EndMatchOnLeave() ([]Event, bool) {
	ended, events := gs.checkMatchEnd("")
	return events, ended
}

// checkMatchEnd detects whether fewer than two active players remain
// after a round's eliminations and, if so, finalizes the match: decides
// the overall winner, marks everyone's terminal status, and builds the
// places list. When the final round eliminated everyone at once, the
// overall winner is the player with the lowest total score, preferring
// preferredAssaf (the round's Assaf caller) on ties, else the lowest id.
func (gs *GameState) checkMatchEnd(preferredAssaf string) (bool, []Event) {
	active := activePlayers(gs)
	if len(active) >= 2 {
		return false, nil
	}

	gs.GameEnded = true
	gs.ScheduledKind = ScheduledNone

	var winner string
	if len(active) == 1 {
		winner = active[0]
	} else {
		winner = lowestScoreWinner(gs, preferredAssaf)
	}
	gs.Winner = winner
	if _, ok := gs.PlayersStats[winner]; ok {
		gs.PlayersStats[winner] = StatusWinner
	}

	gs.Places = buildPlaces(gs.PlayerOrder, gs.PlayersLoserOrder, winner, gs.PlayersStats)

	return true, []Event{{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			Winner:       winner,
			FinalScores:  copyScores(gs.Scores),
			PlayersStats: copyStats(gs.PlayersStats),
			Places:       gs.Places,
		},
	}}
}

// buildPlaces orders every player who ever sat in the room from first to
// last place: the winner, then eliminated players in reverse elimination
// order (most recently eliminated places highest among losers), then
// anyone who left mid-match placed last.
func buildPlaces(order, loserOrder []string, winner string, stats map[string]PlayerStatus) []string {
	places := []string{winner}
	seen := map[string]bool{winner: true}

	for i := len(loserOrder) - 1; i >= 0; i-- {
		id := loserOrder[i]
		if !seen[id] {
			places = append(places, id)
			seen[id] = true
		}
	}

	var leavers []string
	for _, id := range order {
		if seen[id] {
			continue
		}
		if stats[id] == StatusLeave {
			leavers = append(leavers, id)
			continue
		}
		places = append(places, id)
		seen[id] = true
	}
	places = append(places, leavers...)
	return places
}

// lowestScoreWinner picks the overall winner when no active player
// remains: the lowest cumulative score among everyone who didn't leave,
// preferring preferredAssaf on a tie, else the lowest player id.
func lowestScoreWinner(gs *GameState, preferredAssaf string) string {
	best := ""
	bestScore := 0
	for _, id := range gs.PlayerOrder {
		if gs.PlayersStats[id] == StatusLeave {
			continue
		}
		score := gs.Scores[id]
		switch {
		case best == "" || score < bestScore:
			best, bestScore = id, score
		case score == bestScore && id == preferredAssaf:
			best = id
		case score == bestScore && best != preferredAssaf && id < best:
			best = id
		}
	}
	if best == "" {
		best = lowestID(gs.PlayerOrder)
	}
	return best
}

func lowestID(order []string) string {
	lowest := ""
	for _, id := range order {
		if lowest == "" || id < lowest {
			lowest = id
		}
	}
	return lowest
}

func copyScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}
