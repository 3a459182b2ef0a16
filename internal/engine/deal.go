package engine

import (
	"math/rand"
	"time"

	"yaniv/internal/clock"
	"yaniv/internal/config"
	"yaniv/internal/domain"
)

// New builds a fresh GameState for a room about to start its first round.
// playerIDs is the active roster in seat order at match start.
func New(clk clock.Clock, rng *rand.Rand, playerIDs []string) *GameState {
	stats := make(map[string]PlayerStatus, len(playerIDs))
	scores := make(map[string]int, len(playerIDs))
	for _, id := range playerIDs {
		stats[id] = StatusActive
		scores[id] = 0
	}
	return &GameState{
		PlayerOrder:  append([]string{}, playerIDs...),
		PlayersStats: stats,
		Scores:       scores,
		rng:          rng,
		clock:        clk,
	}
}

func activePlayers(gs *GameState) []string {
	var out []string
	for _, id := range gs.PlayerOrder {
		if gs.PlayersStats[id] == StatusActive {
			out = append(out, id)
		}
	}
	return out
}

// Deal shuffles a fresh 54-card deck, pops the first card into the
// pickup pile, and hands 5 sorted cards to every active player. It
// returns the game_initialized event on the first round and new_round on
// every subsequent round, each carrying a startDelay the caller must wait
// out before calling ArmFirstTurn (spec.md §4.2: "only then arm the first
// turn's timer").
func (gs *GameState) Deal(cfg config.RoomConfig) ([]Event, error) {
	active := activePlayers(gs)
	if len(active) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	gs.Round++
	gs.TimePerPlayer = cfg.TimePerPlayer
	gs.CanCallYaniv = cfg.CanCallYaniv
	gs.MaxMatchPoints = cfg.MaxMatchPoints
	gs.SlapDown = cfg.SlapDown
	gs.GameEnded = false
	gs.Winner = ""
	gs.SlapDownActiveFor = ""
	gs.TurnDeadline = time.Time{}
	gs.SlapDownDeadline = time.Time{}

	gs.Discarded = nil
	deck := domain.Shuffle(domain.NewDeck(), gs.rng)
	firstCard := deck[0]
	deck = deck[1:]
	gs.PickupCards = []domain.Card{firstCard}

	hands := make(map[string][]domain.Card, len(active))
	for _, id := range active {
		hand := append([]domain.Card{}, deck[:domain.HandSize]...)
		deck = deck[domain.HandSize:]
		domain.SortHand(hand)
		hands[id] = hand
	}
	gs.Deck = deck
	gs.PlayerHands = hands
	gs.CurrentPlayerIndex = indexOf(gs.PlayerOrder, active[0])

	n := len(active)
	var delayMillis int
	kind := EventGameInitialized
	if gs.Round == 1 {
		gs.GameStartTime = gs.clock.Now()
		delayMillis = 2100 + 500*n
	} else {
		kind = EventNewRound
		delayMillis = 2600 + 700*n
	}

	gs.ScheduledKind = ScheduledStartTurn
	gs.ScheduledDeadline = gs.clock.Now().Add(time.Duration(delayMillis) * time.Millisecond)

	return []Event{{
		Kind: kind,
		Payload: GameInitializedPayload{
			Round:            gs.Round,
			CurrentPlayerID:  active[0],
			PlayerHands:      copyHands(gs.PlayerHands),
			PickupCards:      append([]domain.Card{}, gs.PickupCards...),
			StartDelayMillis: delayMillis,
		},
	}}, nil
}

// IsScheduledDue reports whether the game's scheduled (non-turn,
// non-slap-down) timer has elapsed.
func (gs *GameState) IsScheduledDue() bool {
	return gs.ScheduledKind != ScheduledNone && !gs.ScheduledDeadline.IsZero() && !gs.clock.Now().Before(gs.ScheduledDeadline)
}

// FireScheduled resolves whichever scheduled event is due: arms the first
// turn after a deal, or starts the next round after a round-end display
// delay.
func (gs *GameState) FireScheduled(cfg config.RoomConfig) ([]Event, error) {
	kind := gs.ScheduledKind
	gs.ScheduledKind = ScheduledNone
	gs.ScheduledDeadline = time.Time{}

	switch kind {
	case ScheduledStartTurn:
		return gs.armTurn(), nil
	case ScheduledNextRound:
		return gs.Deal(cfg)
	default:
		return nil, nil
	}
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return 0
}

func copyHands(hands map[string][]domain.Card) map[string][]domain.Card {
	out := make(map[string][]domain.Card, len(hands))
	for id, h := range hands {
		out[id] = append([]domain.Card{}, h...)
	}
	return out
}
