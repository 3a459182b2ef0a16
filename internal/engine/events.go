package engine

import "yaniv/internal/domain"

// EventKind identifies an outbound game event (spec.md §6).
type EventKind string

const (
	EventGameInitialized EventKind = "game_initialized"
	EventNewRound        EventKind = "new_round"
	EventTurnStarted     EventKind = "turn_started"
	EventPlayerDrew      EventKind = "player_drew"
	EventDeckReshuffled  EventKind = "deck_reshuffled"
	EventRoundEnded      EventKind = "round_ended"
	EventHumanLost       EventKind = "human_lost"
	EventGameEnded       EventKind = "game_ended"
	EventGameError       EventKind = "game_error"
)

// Event is a typed outbound event with optional explicit recipients; an
// empty Recipients means broadcast to the whole room.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string
}

// GameInitializedPayload backs both game_initialized (first deal) and
// new_round (subsequent deals); the Round field distinguishes them at the
// call site, which picks EventGameInitialized or EventNewRound.
type GameInitializedPayload struct {
	Round            int                       `json:"round"`
	CurrentPlayerID  string                    `json:"currentPlayerId"`
	PlayerHands      map[string][]domain.Card  `json:"playerHands"`
	PickupCards      []domain.Card             `json:"pickupCards"`
	StartDelayMillis int                       `json:"startDelay"`
}

type TurnStartedPayload struct {
	CurrentPlayerID  string `json:"currentPlayerId"`
	TimeRemainingSec int    `json:"timeRemaining"`
}

// PlayerDrewPayload is the compact per-turn diff described in spec.md §4.2
// step 4: the caller reconstructs the new state from the previous hand
// size and selected positions rather than replaying the whole hand twice.
type PlayerDrewPayload struct {
	PlayerID               string                   `json:"playerId"`
	Source                 DrawSource               `json:"source"`
	Hands                  map[string][]domain.Card `json:"hands"`
	PickupCards            []domain.Card            `json:"pickupCards"`
	Card                   domain.Card              `json:"card"`
	SelectedCardsPositions []int                    `json:"selectedCardsPositions"`
	AmountBefore           int                      `json:"amountBefore"`
	CurrentPlayerID        string                   `json:"currentPlayerId"`
	SlapDownActiveFor      string                   `json:"slapDownActiveFor,omitempty"`
}

type DeckReshuffledPayload struct{}

type RoundEndedPayload struct {
	WinnerID           string                   `json:"winnerId"`
	PlayersStats       map[string]PlayerStatus  `json:"playersStats"`
	YanivCaller        string                   `json:"yanivCaller"`
	AssafCaller        string                   `json:"assafCaller,omitempty"`
	PlayerHands        map[string][]domain.Card `json:"playerHands"`
	RoundPlayers       []string                 `json:"roundPlayers"`
	PlayersRoundScore  map[string][]int         `json:"playersRoundScore"` // signed increments, e.g. [+score, -50]
	Losers             []string                 `json:"losers"`
	DisplayDelayMillis int                      `json:"displayDelay"`
}

type HumanLostPayload struct {
	PlayerID string `json:"playerId"`
}

type GameEndedPayload struct {
	Winner       string                  `json:"winner"`
	FinalScores  map[string]int          `json:"finalScores"`
	PlayersStats map[string]PlayerStatus `json:"playersStats"`
	Places       []string                `json:"places"`
}

type GameErrorPayload struct {
	Message string `json:"message"`
}
