package matchmaking

import (
	"yaniv/internal/config"
	"yaniv/internal/engine"
)

// EventKind identifies an outbound lobby event (spec.md §6, "Lobby:" list).
type EventKind string

const (
	EventRoomCreated  EventKind = "room_created"
	EventPlayerJoined EventKind = "player_joined"
	EventPlayerLeft   EventKind = "player_left"
	EventVotesConfig  EventKind = "votes_config"
	EventRoomError    EventKind = "room_error"
	EventStartGame    EventKind = "start_game"
)

// Event mirrors engine.Event's shape: a typed kind, a payload, and
// optional explicit recipients (empty means broadcast to the room).
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

type PlayerJoinedPayload struct {
	RoomID  string           `json:"roomId"`
	Players []*engine.Player `json:"players"`
}

type PlayerLeftPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type VotesConfigPayload struct {
	RoomID string                       `json:"roomId"`
	Votes  map[string]config.RoomConfig `json:"votes"`
}

type RoomErrorPayload struct {
	Message string `json:"message"`
}

type StartGamePayload struct {
	RoomID  string            `json:"roomId"`
	Config  config.RoomConfig `json:"config"`
	Players []*engine.Player  `json:"players"`
}
