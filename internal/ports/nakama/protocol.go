package nakama

// Op codes for messages carried over a live match's MatchData channel
// (spec.md §6). Lobby discovery (create/join/quick-match) happens over
// RPC, before a client has joined a match at all; everything below is
// exchanged only once joined, the same split the teacher's RpcFindMatch
// (RPC) vs. OpCode_* (match data) makes.
const (
	// Client -> server
	OpSetQuickGameConfig int64 = 10
	OpStartPrivateGame   int64 = 11
	OpLeaveRoom          int64 = 12
	OpGetRoomState       int64 = 13
	OpCompleteTurn       int64 = 20
	OpCallYaniv          int64 = 21
	OpSlapDown           int64 = 22
	OpPlayAgain          int64 = 23

	// Server -> client, lobby
	OpRoomCreated  int64 = 100
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpVotesConfig  int64 = 103
	OpRoomError    int64 = 104
	OpStartGame    int64 = 105
	OpRoomState    int64 = 106

	// Server -> client, game
	OpGameInitialized int64 = 110
	OpNewRound        int64 = 111
	OpTurnStarted     int64 = 112
	OpPlayerDrew      int64 = 113
	OpDeckReshuffled  int64 = 114
	OpRoundEnded      int64 = 115
	OpHumanLost       int64 = 116
	OpGameEnded       int64 = 117
	OpGameError       int64 = 118

	// Server -> client, post-game
	OpSetPlayersStatsData int64 = 119
)

// config.RoomConfig has no separate wire type here: it carries its own
// JSON tags (internal/config), and the RPC request payloads in rpc.go
// embed it directly.

// SetQuickGameConfigMessage is the payload for OpSetQuickGameConfig.
type SetQuickGameConfigMessage struct {
	SlapDown       bool `json:"slapDown"`
	TimePerPlayer  int  `json:"timePerPlayer"`
	CanCallYaniv   int  `json:"canCallYaniv"`
	MaxMatchPoints int  `json:"maxMatchPoints"`
}

// CardMessage is the wire shape of domain.Card.
type CardMessage struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// CompleteTurnMessage is the payload for OpCompleteTurn.
type CompleteTurnMessage struct {
	Choice        string        `json:"choice"` // "deck" | "pickup"
	PickupIndex   int           `json:"pickupIndex"`
	SelectedCards []CardMessage `json:"selectedCards"`
}

// SlapDownMessage is the payload for OpSlapDown.
type SlapDownMessage struct {
	Card CardMessage `json:"card"`
}

// LeaveRoomMessage is the payload for OpLeaveRoom.
type LeaveRoomMessage struct {
	IsAdmin bool `json:"isAdmin"`
}
