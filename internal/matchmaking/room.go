// Package matchmaking implements the pre-game room lifecycle (spec.md
// §4.4): creating, joining, and leaving a room, the config vote a public
// quick-game room collects from its players, and the staged start timer
// that fires once enough players have joined. It is pure state — no
// Nakama, no timers-as-goroutines — the same way internal/engine is;
// internal/ports/nakama owns exactly one Room per match (mirroring its
// one GameState per match) and drives it from MatchLoop.
package matchmaking

import (
	"errors"
	"time"

	"yaniv/internal/config"
	"yaniv/internal/engine"
)

// Phase is the room's lobby/in-progress state, distinct from the game
// engine's own internal state machine.
type Phase string

const (
	PhaseWaiting Phase = "waiting"
	PhaseStarted Phase = "started"
)

// Kind distinguishes the three room creation entry points (spec.md §4.4).
// It only affects discovery (public vs. private) and how the final config
// is resolved (fixed vs. voted); the engine that eventually runs the room
// doesn't care which Kind created it.
type Kind string

const (
	KindPrivate Kind = "private" // create_room
	KindQuick   Kind = "quick"   // quick_game, public, majority-vote config
	KindBot     Kind = "bot"     // create_bot_room, private, bot seats pre-filled
)

// MaxPlayers bounds room size. Yaniv plays 2-8; unlike the teacher's fixed
// four-seat table, seats here aren't positional, so this is a plain cap
// rather than a fixed-size array.
const MaxPlayers = 8

var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("player already joined this room")
	ErrRoomStarted   = errors.New("room has already started")
	ErrNotOwner      = errors.New("only the room owner may do that")
	ErrTooFewPlayers = errors.New("need at least two players to start")
)

// Room is one lobby's worth of state, from creation through the vote to
// the hand-off that starts the game engine.
type Room struct {
	ID      string
	Code    string
	Kind    Kind
	OwnerID string

	Players []*engine.Player
	Votes   map[string]config.RoomConfig
	Config  config.RoomConfig

	Phase     Phase
	CreatedAt time.Time

	// ScheduledStartAt is the staged quick-game start deadline (spec.md
	// §4.4); zero means no start is currently scheduled. Only meaningful
	// for Kind == KindQuick.
	ScheduledStartAt time.Time
}

// NewRoom creates a room owned by the given player. cfg is the room's
// fixed configuration for private/bot rooms, or the owner's initial vote
// for a quick-game room.
func NewRoom(id, code string, kind Kind, owner *engine.Player, cfg config.RoomConfig, now time.Time) *Room {
	r := &Room{
		ID:        id,
		Code:      code,
		Kind:      kind,
		OwnerID:   owner.ID,
		Phase:     PhaseWaiting,
		Config:    cfg,
		Votes:     make(map[string]config.RoomConfig),
		CreatedAt: now,
		Players:   []*engine.Player{owner},
	}
	if kind == KindQuick {
		r.Votes[owner.ID] = cfg
	}
	return r
}

// Join adds a player to a waiting room. vote is nil for private/bot
// rooms, which have no vote to cast.
func (r *Room) Join(p *engine.Player, vote *config.RoomConfig) error {
	if r.Phase != PhaseWaiting {
		return ErrRoomStarted
	}
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	if r.HasPlayer(p.ID) {
		return ErrAlreadyJoined
	}
	r.Players = append(r.Players, p)
	if vote != nil {
		r.Votes[p.ID] = *vote
	}
	return nil
}

// AddBot seats a bot player directly, bypassing the vote (bots never
// vote on config); used by create_bot_room to pre-fill remaining seats.
func (r *Room) AddBot(p *engine.Player) error {
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	r.Players = append(r.Players, p)
	return nil
}

// Leave removes playerID from the room. It reassigns ownership to the
// first remaining player if the owner left, and reports whether the room
// is now empty (the caller should destroy it).
func (r *Room) Leave(playerID string) (empty bool) {
	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			break
		}
	}
	delete(r.Votes, playerID)
	if len(r.Players) == 0 {
		return true
	}
	if r.OwnerID == playerID {
		r.OwnerID = r.Players[0].ID
	}
	return false
}

// SetVote records or replaces a quick-game room player's config vote.
func (r *Room) SetVote(playerID string, cfg config.RoomConfig) {
	r.Votes[playerID] = cfg
}

// ResolveVotes computes the final config for a quick-game room by
// majority vote across every player currently present.
func (r *Room) ResolveVotes() config.RoomConfig {
	votes := make([]config.RoomConfig, 0, len(r.Votes))
	for _, v := range r.Votes {
		votes = append(votes, v)
	}
	return config.MajorityVote(votes)
}

// Start transitions the room out of the lobby. Callers build the engine
// GameState from r.PlayerIDs() after this returns nil.
func (r *Room) Start(cfg config.RoomConfig) error {
	if len(r.Players) < 2 {
		return ErrTooFewPlayers
	}
	r.Phase = PhaseStarted
	r.Config = cfg
	r.ScheduledStartAt = time.Time{}
	return nil
}

// PlayerIDs returns the current roster in join order, the order the
// engine uses for PlayerOrder and for CurrentPlayerIndex.
func (r *Room) PlayerIDs() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

func (r *Room) HasPlayer(id string) bool {
	for _, p := range r.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (r *Room) Player(id string) *engine.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HumanCount returns how many seated players are not bots.
func (r *Room) HumanCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.IsBot {
			n++
		}
	}
	return n
}
