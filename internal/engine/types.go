// Package engine implements the authoritative per-room turn state machine:
// deal, turn loop, slap-down window, Yaniv/Assaf scoring, round and match
// end. It knows nothing about transport; it is driven by explicit method
// calls and returns Events for the caller to broadcast.
package engine

import (
	"math/rand"
	"time"

	"yaniv/internal/clock"
	"yaniv/internal/domain"
)

// PlayerStatus tracks a player's standing within the current match.
type PlayerStatus string

const (
	StatusActive    PlayerStatus = "active"
	StatusLost      PlayerStatus = "lost"
	StatusWinner    PlayerStatus = "winner"
	StatusPlayAgain PlayerStatus = "playAgain"
	StatusLeave     PlayerStatus = "leave"
)

// Player is a participant in a room, human or bot.
type Player struct {
	ID          string            `json:"id"`
	NickName    string            `json:"nickName"`
	AvatarIndex int               `json:"avatarIndex"`
	IsBot       bool              `json:"isBot"`
	Difficulty  domain.Difficulty `json:"difficulty,omitempty"` // only meaningful when IsBot
}

// TurnActionChoice discriminates the two ways a turn action can resolve
// the draw: from the deck, or from an end of the pickup pile. This is a
// discriminated union at the core boundary (design note in spec.md §9),
// not a bare string.
type TurnActionChoice int

const (
	ChoiceDeck TurnActionChoice = iota
	ChoicePickup
)

// TurnAction is the inbound decision a player submits on their turn.
type TurnAction struct {
	Choice        TurnActionChoice
	PickupIndex   int // only meaningful when Choice == ChoicePickup
	SelectedCards []domain.Card
}

// DrawSource tags where a player_drew event's card came from.
type DrawSource string

const (
	SourceDeck   DrawSource = "deck"
	SourcePickup DrawSource = "pickup"
	SourceSlap   DrawSource = "slap"
)

// GameState is the authoritative state of one room's active match. A
// single GameState instance is only ever mutated by its owner, which
// must serialize access to it (spec.md §5) — the Nakama match
// actor model gives this for free, see internal/ports/nakama.
type GameState struct {
	CurrentPlayerIndex int
	PlayerOrder        []string // stable seat order, parallels Room.players

	Deck        []domain.Card
	PickupCards []domain.Card

	// Discarded accumulates sets superseded off the pickup pile. When the
	// draw deck runs dry mid-round these are the "remaining unseen cards"
	// a reshuffle rebuilds the deck from.
	Discarded []domain.Card

	PlayerHands       map[string][]domain.Card
	PlayersStats      map[string]PlayerStatus
	PlayersLoserOrder []string
	Scores            map[string]int

	Round         int
	TurnStartTime time.Time
	GameStartTime time.Time

	TimePerPlayer  int
	CanCallYaniv   int
	MaxMatchPoints int
	SlapDown       bool

	SlapDownActiveFor string
	SlapDownCard      domain.Card

	GameEnded bool
	Winner    string
	Places    []string

	// Timers are represented as absolute deadlines rather than goroutines:
	// the owning caller polls IsTurnTimerDue/IsSlapDownDue/IsScheduledDue
	// once per tick and invokes the matching handler when due. Cancelling a
	// timer (spec.md §5) is exactly zeroing its deadline — with no
	// goroutine ever scheduled, a "late fire after cancellation" cannot
	// happen, so no separate generation counter is needed.
	TurnDeadline      time.Time
	SlapDownDeadline  time.Time
	ScheduledDeadline time.Time
	ScheduledKind     ScheduledEventKind

	rng   *rand.Rand
	clock clock.Clock
}

// ScheduledEventKind distinguishes what a GameState.ScheduledDeadline
// represents: the delay before the first turn of a (re)deal, or the
// display delay before the next round begins.
type ScheduledEventKind int

const (
	ScheduledNone ScheduledEventKind = iota
	ScheduledStartTurn
	ScheduledNextRound
)

// Players returns the roster in a GameState (id -> Player), supplied by
// the caller that owns room membership; GameState itself only tracks
// per-player game data keyed by id.
type Players map[string]*Player

// NewRNG builds the per-shuffle random source. Spec.md §5 requires
// "reasonably unpredictable" shuffles, not cryptographic ones, so a
// time-seeded math/rand.Rand (or a fixed seed in tests) is sufficient.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
