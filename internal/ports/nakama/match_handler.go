package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"yaniv/internal/bot"
	"yaniv/internal/clock"
	"yaniv/internal/config"
	"yaniv/internal/domain"
	"yaniv/internal/engine"
	"yaniv/internal/matchmaking"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState is the authoritative state of one room/match: the lobby
// (matchmaking.Room) before the game starts, and the turn engine
// (engine.GameState) once it has. Nakama's match actor model — one
// matchHandler instance per match, invoked serially — is exactly the
// per-room single-writer serializer spec.md §5 asks for; nothing here
// adds its own locking.
type MatchState struct {
	Room  *matchmaking.Room
	Game  *engine.GameState
	Clock clock.Clock
	RNG   *rand.Rand

	Presences map[string]runtime.Presence
	Agents    map[string]*bot.Agent

	// BotActAt staggers a bot's move by a random think delay so it
	// doesn't act the instant it becomes its turn.
	BotActAt time.Time
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called once, when a room's underlying Nakama match is
// created by one of the create_room/quick_game/create_bot_room RPCs,
// which pass the owning player and initial config through params.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	kind, _ := params["kind"].(matchmaking.Kind)
	if kind == "" {
		kind = matchmaking.KindQuick
	}
	code, _ := params["code"].(string)
	owner, _ := params["owner"].(*engine.Player)
	cfg, ok := params["config"].(config.RoomConfig)
	if !ok {
		cfg = config.Default()
	}
	if owner == nil {
		logger.Error("MatchInit: missing owner param")
		return nil, 0, ""
	}

	room := matchmaking.NewRoom(matchID, code, kind, owner, cfg, time.Now())

	state := &MatchState{
		Room:      room,
		Clock:     clock.NewReal(),
		RNG:       engine.NewRNG(time.Now().UnixNano()),
		Presences: make(map[string]runtime.Presence),
		Agents:    make(map[string]*bot.Agent),
	}

	if diffs, ok := params["botDifficulties"].([]domain.Difficulty); ok {
		mh.seatBots(state, diffs, logger)
	}

	labelBytes, err := json.Marshal(buildLabel(room))
	if err != nil {
		logger.Error("MatchInit: marshal label: %v", err)
		return nil, 0, ""
	}

	const tickRate = 5 // 5 Hz: fine enough granularity for the 3s slap-down window
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) seatBots(state *MatchState, diffs []domain.Difficulty, logger runtime.Logger) {
	for i, d := range diffs {
		identity := bot.GetBotIdentity(i)
		botID := identity.UserID
		if botID == "" {
			botID = fmt.Sprintf("bot:%d", i)
		}
		name := identity.DisplayName
		if name == "" {
			name = fmt.Sprintf("Bot %d", i+1)
		}
		botPlayer := &engine.Player{
			ID:          "bot:" + botID,
			NickName:    name,
			AvatarIndex: identity.AvatarIndex,
			IsBot:       true,
			Difficulty:  d,
		}
		if err := state.Room.AddBot(botPlayer); err != nil {
			logger.Warn("seatBots: could not seat bot %d: %v", i, err)
			return
		}
		state.Agents[botPlayer.ID] = bot.NewAgent(botPlayer)
	}
}

type matchLabelJSON struct {
	Kind  string `json:"kind"`
	Code  string `json:"code"`
	Phase string `json:"phase"`
	Open  int    `json:"open"`
}

func buildLabel(room *matchmaking.Room) matchLabelJSON {
	open := matchmaking.MaxPlayers - len(room.Players)
	if open < 0 {
		open = 0
	}
	return matchLabelJSON{Kind: string(room.Kind), Code: room.Code, Phase: string(room.Phase), Open: open}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := json.Marshal(buildLabel(state.Room))
	if err != nil {
		logger.Error("updateLabel: marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(bytes)); err != nil {
		logger.Error("updateLabel: %v", err)
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	s, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if bot.IsBot(presence.GetUserId()) {
		return s, false, "bot accounts cannot join over a socket"
	}
	if s.Room.HasPlayer(presence.GetUserId()) {
		return s, true, "" // reconnect to an already-seated player
	}
	if s.Room.Phase != matchmaking.PhaseWaiting {
		return s, false, "room has already started"
	}
	if len(s.Room.Players) >= matchmaking.MaxPlayers {
		return s, false, "room is full"
	}
	return s, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		s.Presences[p.GetUserId()] = p
		if s.Room.HasPlayer(p.GetUserId()) {
			if p.GetUserId() == s.Room.OwnerID && s.Room.Phase == matchmaking.PhaseWaiting {
				mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
					Kind:       matchmaking.EventRoomCreated,
					Payload:    matchmaking.RoomCreatedPayload{RoomID: s.Room.ID, Code: s.Room.Code},
					Recipients: []string{p.GetUserId()},
				})
			}
			continue
		}

		player := &engine.Player{ID: p.GetUserId(), NickName: p.GetUsername()}
		var vote *config.RoomConfig
		if s.Room.Kind == matchmaking.KindQuick {
			v := s.Room.Config
			vote = &v
		}
		if err := s.Room.Join(player, vote); err != nil {
			logger.Warn("MatchJoin: %s could not join: %v", p.GetUserId(), err)
			continue
		}

		matchmaking.ReevaluateStart(s.Room, s.Clock.Now())
		mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
			Kind:    matchmaking.EventPlayerJoined,
			Payload: matchmaking.PlayerJoinedPayload{RoomID: s.Room.ID, Players: s.Room.Players},
		})
	}

	mh.updateLabel(s, dispatcher, logger)
	return s
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(s.Presences, p.GetUserId())
		mh.removePlayer(s, dispatcher, logger, p.GetUserId())
	}

	if len(s.Room.Players) == 0 || s.Room.HumanCount() == 0 {
		logger.Info("MatchLeave: room %s has no humans left, terminating match.", s.Room.ID)
		return nil
	}

	mh.updateLabel(s, dispatcher, logger)
	return s
}

// removePlayer handles a player leaving, whether from a disconnect
// (MatchLeave) or an explicit leave_room command, branching on whether a
// round is currently in progress (spec.md §4.4 "Leave/disconnect").
func (mh *matchHandler) removePlayer(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if s.Game != nil && s.Room.Phase == matchmaking.PhaseStarted && !s.Game.GameEnded {
		mh.handleMidMatchLeave(s, dispatcher, logger, userID)
		return
	}
	s.Room.Leave(userID)
	matchmaking.ReevaluateStart(s.Room, s.Clock.Now())
	mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
		Kind:    matchmaking.EventPlayerLeft,
		Payload: matchmaking.PlayerLeftPayload{RoomID: s.Room.ID, PlayerID: userID},
	})
}

func (mh *matchHandler) handleMidMatchLeave(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if _, ok := s.Game.PlayersStats[userID]; !ok {
		return
	}
	turnEvents := s.Game.MarkLeave(userID)
	// Leavers keep their leave status in the GameState (for places) but
	// give up their seat, so a play-again restart deals a clean roster.
	s.Room.Leave(userID)
	mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
		Kind:    matchmaking.EventPlayerLeft,
		Payload: matchmaking.PlayerLeftPayload{RoomID: s.Room.ID, PlayerID: userID},
	})

	if len(activeNonLeave(s.Game)) <= 1 {
		events, _ := s.Game.EndMatchOnLeave()
		for _, ev := range events {
			mh.broadcastGameEvent(s, dispatcher, logger, ev)
		}
		return
	}
	for _, ev := range turnEvents {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
}

func activeNonLeave(gs *engine.GameState) []string {
	var out []string
	for id, status := range gs.PlayersStats {
		if status == engine.StatusActive {
			out = append(out, id)
		}
	}
	return out
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		mh.handleMessage(s, dispatcher, logger, msg)
	}

	if s.Room.Phase == matchmaking.PhaseWaiting {
		if matchmaking.IsStartDue(s.Room, s.Clock.Now()) {
			mh.startGame(s, dispatcher, logger, s.Room.ResolveVotes())
		}
		return s
	}

	if s.Game == nil || s.Game.GameEnded {
		return s
	}

	if s.Game.IsScheduledDue() {
		events, err := s.Game.FireScheduled(s.Room.Config)
		if err != nil {
			logger.Error("MatchLoop: FireScheduled: %v", err)
		}
		for _, ev := range events {
			mh.broadcastGameEvent(s, dispatcher, logger, ev)
		}
	}
	if s.Game.IsSlapDownDue() {
		s.Game.ExpireSlapDown()
	}
	if s.Game.IsTurnTimerDue() {
		events, err := s.Game.TimeoutTurn(s.Game.CurrentPlayerID())
		if err != nil {
			logger.Error("MatchLoop: TimeoutTurn: %v", err)
		}
		for _, ev := range events {
			mh.broadcastGameEvent(s, dispatcher, logger, ev)
		}
	}

	mh.actBots(s, dispatcher, logger)
	return s
}

// actBots lets the current player's bot agent act, after a randomized
// think delay so a bot doesn't move the instant its turn starts.
func (mh *matchHandler) actBots(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if s.Game == nil || s.Game.GameEnded {
		return
	}
	current := s.Game.CurrentPlayerID()
	agent, isBot := s.Agents[current]
	if !isBot {
		s.BotActAt = time.Time{}
		return
	}
	if s.BotActAt.IsZero() {
		s.BotActAt = s.Clock.Now().Add(botThinkDelay(s.RNG))
		return
	}
	if s.Clock.Now().Before(s.BotActAt) {
		return
	}
	s.BotActAt = time.Time{}

	decision := agent.Act(s.Game)
	if decision.CallYaniv {
		events, err := s.Game.CallYaniv(current)
		if err != nil {
			logger.Error("actBots: bot %s CallYaniv: %v", current, err)
			return
		}
		for _, ev := range events {
			mh.broadcastGameEvent(s, dispatcher, logger, ev)
		}
		return
	}
	events, err := s.Game.CompleteTurn(current, decision.Action, false)
	if err != nil {
		logger.Error("actBots: bot %s CompleteTurn: %v", current, err)
		return
	}
	for _, ev := range events {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
}

func botThinkDelay(rng *rand.Rand) time.Duration {
	const minMs, maxMs = 600, 1800
	return time.Duration(minMs+rng.Intn(maxMs-minMs+1)) * time.Millisecond
}

func (mh *matchHandler) handleMessage(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	switch msg.GetOpCode() {
	case OpSetQuickGameConfig:
		mh.handleSetQuickGameConfig(s, dispatcher, logger, senderID, msg.GetData())
	case OpStartPrivateGame:
		mh.handleStartPrivateGame(s, dispatcher, logger, senderID)
	case OpLeaveRoom:
		mh.removePlayer(s, dispatcher, logger, senderID)
	case OpGetRoomState:
		mh.handleGetRoomState(s, dispatcher, logger, senderID)
	case OpCompleteTurn:
		mh.handleCompleteTurn(s, dispatcher, logger, senderID, msg.GetData())
	case OpCallYaniv:
		mh.handleCallYaniv(s, dispatcher, logger, senderID)
	case OpSlapDown:
		mh.handleSlapDown(s, dispatcher, logger, senderID, msg.GetData())
	case OpPlayAgain:
		mh.handlePlayAgain(s, dispatcher, logger, senderID)
	default:
		logger.Warn("handleMessage: unknown opcode %d from %s", msg.GetOpCode(), senderID)
	}
}

func (mh *matchHandler) handleSetQuickGameConfig(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	if s.Room.Kind != matchmaking.KindQuick || s.Room.Phase != matchmaking.PhaseWaiting {
		mh.sendRoomError(s, dispatcher, logger, senderID, "no config vote is open for this room")
		return
	}
	var msg SetQuickGameConfigMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		mh.sendRoomError(s, dispatcher, logger, senderID, "invalid config payload")
		return
	}
	cfg := config.RoomConfig{
		SlapDown:       msg.SlapDown,
		TimePerPlayer:  msg.TimePerPlayer,
		CanCallYaniv:   msg.CanCallYaniv,
		MaxMatchPoints: msg.MaxMatchPoints,
	}
	s.Room.SetVote(senderID, cfg)
	mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
		Kind:    matchmaking.EventVotesConfig,
		Payload: matchmaking.VotesConfigPayload{RoomID: s.Room.ID, Votes: s.Room.Votes},
	})
}

func (mh *matchHandler) handleStartPrivateGame(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	if s.Room.Kind == matchmaking.KindQuick {
		mh.sendRoomError(s, dispatcher, logger, senderID, "quick-game rooms start automatically")
		return
	}
	if senderID != s.Room.OwnerID {
		mh.sendRoomError(s, dispatcher, logger, senderID, "only the room owner may start the game")
		return
	}
	mh.startGame(s, dispatcher, logger, s.Room.Config)
}

func (mh *matchHandler) startGame(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, cfg config.RoomConfig) {
	if err := s.Room.Start(cfg); err != nil {
		logger.Warn("startGame: %v", err)
		return
	}
	s.Game = engine.New(s.Clock, s.RNG, s.Room.PlayerIDs())
	events, err := s.Game.Deal(cfg)
	if err != nil {
		logger.Error("startGame: Deal: %v", err)
		return
	}

	mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
		Kind:    matchmaking.EventStartGame,
		Payload: matchmaking.StartGamePayload{RoomID: s.Room.ID, Config: cfg, Players: s.Room.Players},
	})
	for _, ev := range events {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
	mh.updateLabel(s, dispatcher, logger)
}

// RoomStateMessage is the response payload for get_room_state.
type RoomStateMessage struct {
	RoomID  string            `json:"roomId"`
	Code    string            `json:"code"`
	Phase   string            `json:"phase"`
	Config  config.RoomConfig `json:"config"`
	Players []*engine.Player  `json:"players"`
}

func (mh *matchHandler) handleGetRoomState(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	payload := RoomStateMessage{
		RoomID:  s.Room.ID,
		Code:    s.Room.Code,
		Phase:   string(s.Room.Phase),
		Config:  s.Room.Config,
		Players: s.Room.Players,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("handleGetRoomState: marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRoomState, bytes, mh.recipientPresences(s, []string{senderID}), nil, true); err != nil {
		logger.Error("handleGetRoomState: broadcast: %v", err)
	}
}

func (mh *matchHandler) handleCompleteTurn(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	if s.Game == nil {
		mh.sendGameError(s, dispatcher, logger, senderID, "game has not started")
		return
	}
	var msg CompleteTurnMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		mh.sendGameError(s, dispatcher, logger, senderID, "invalid turn payload")
		return
	}
	action := engine.TurnAction{SelectedCards: cardsFromMessage(msg.SelectedCards)}
	if msg.Choice == "pickup" {
		action.Choice = engine.ChoicePickup
		action.PickupIndex = msg.PickupIndex
	} else {
		action.Choice = engine.ChoiceDeck
	}

	events, err := s.Game.CompleteTurn(senderID, action, false)
	if err != nil {
		mh.sendGameError(s, dispatcher, logger, senderID, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleCallYaniv(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	if s.Game == nil {
		mh.sendGameError(s, dispatcher, logger, senderID, "game has not started")
		return
	}
	events, err := s.Game.CallYaniv(senderID)
	if err != nil {
		mh.sendGameError(s, dispatcher, logger, senderID, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleSlapDown(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	if s.Game == nil {
		mh.sendGameError(s, dispatcher, logger, senderID, "game has not started")
		return
	}
	var msg SlapDownMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		mh.sendGameError(s, dispatcher, logger, senderID, "invalid slap-down payload")
		return
	}
	if cardFromMessage(msg.Card) != s.Game.SlapDownCard {
		mh.sendGameError(s, dispatcher, logger, senderID, "slap-down card does not match the open window")
		return
	}
	events, err := s.Game.ResolveSlapDown(senderID)
	if err != nil {
		mh.sendGameError(s, dispatcher, logger, senderID, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastGameEvent(s, dispatcher, logger, ev)
	}
}

// handlePlayAgain records senderID's wish to start a new match with the
// same roster once the current one has ended: their status flips to
// playAgain and the updated stats are broadcast. Once every human still
// in the room has voted and at least two players remain seated, a fresh
// game is dealt in place. Bots are assumed always willing and don't vote.
func (mh *matchHandler) handlePlayAgain(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	if s.Game == nil || !s.Game.GameEnded {
		mh.sendGameError(s, dispatcher, logger, senderID, "game has not ended")
		return
	}
	if !s.Room.HasPlayer(senderID) || s.Game.PlayersStats[senderID] == engine.StatusLeave {
		return
	}
	s.Game.PlayersStats[senderID] = engine.StatusPlayAgain

	statsPayload := PlayersStatsMessage{
		RoomID:       s.Room.ID,
		PlayerID:     senderID,
		PlayersStats: s.Game.PlayersStats,
	}
	bytes, err := json.Marshal(statsPayload)
	if err != nil {
		logger.Error("handlePlayAgain: marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpSetPlayersStatsData, bytes, nil, nil, true); err != nil {
		logger.Error("handlePlayAgain: broadcast: %v", err)
	}

	if len(s.Room.Players) < 2 {
		return
	}
	for _, id := range remainingRoster(s.Room, s.Game) {
		if s.Game.PlayersStats[id] != engine.StatusPlayAgain {
			return
		}
	}
	s.Room.Phase = matchmaking.PhaseWaiting
	mh.startGame(s, dispatcher, logger, s.Room.Config)
}

// PlayersStatsMessage is the set_playersStats_data payload broadcast
// whenever a player's post-game status changes.
type PlayersStatsMessage struct {
	RoomID       string                         `json:"roomId"`
	PlayerID     string                         `json:"playerId"`
	PlayersStats map[string]engine.PlayerStatus `json:"playersStats"`
}

func remainingRoster(room *matchmaking.Room, gs *engine.GameState) []string {
	var out []string
	for _, p := range room.Players {
		if p.IsBot {
			continue
		}
		if gs.PlayersStats[p.ID] != engine.StatusLeave {
			out = append(out, p.ID)
		}
	}
	return out
}

func (mh *matchHandler) sendRoomError(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, recipientID, message string) {
	mh.broadcastLobbyEvent(s, dispatcher, logger, matchmaking.Event{
		Kind:       matchmaking.EventRoomError,
		Payload:    matchmaking.RoomErrorPayload{Message: message},
		Recipients: []string{recipientID},
	})
}

func (mh *matchHandler) sendGameError(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, recipientID, message string) {
	mh.broadcastGameEvent(s, dispatcher, logger, engine.Event{
		Kind:       engine.EventGameError,
		Payload:    engine.GameErrorPayload{Message: message},
		Recipients: []string{recipientID},
	})
}

func (mh *matchHandler) recipientPresences(s *MatchState, ids []string) []runtime.Presence {
	if len(ids) == 0 {
		return nil // nil means broadcast to the whole match
	}
	out := make([]runtime.Presence, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Presences[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (mh *matchHandler) broadcastLobbyEvent(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev matchmaking.Event) {
	opCode, ok := lobbyOpCode(ev.Kind)
	if !ok {
		logger.Warn("broadcastLobbyEvent: unknown event kind %v", ev.Kind)
		return
	}
	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastLobbyEvent: marshal %v: %v", ev.Kind, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, mh.recipientPresences(s, ev.Recipients), nil, true); err != nil {
		logger.Error("broadcastLobbyEvent: broadcast %v: %v", ev.Kind, err)
	}
}

func (mh *matchHandler) broadcastGameEvent(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev engine.Event) {
	opCode, ok := gameOpCode(ev.Kind)
	if !ok {
		logger.Warn("broadcastGameEvent: unknown event kind %v", ev.Kind)
		return
	}
	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastGameEvent: marshal %v: %v", ev.Kind, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, mh.recipientPresences(s, ev.Recipients), nil, true); err != nil {
		logger.Error("broadcastGameEvent: broadcast %v: %v", ev.Kind, err)
	}
}

func lobbyOpCode(kind matchmaking.EventKind) (int64, bool) {
	switch kind {
	case matchmaking.EventRoomCreated:
		return OpRoomCreated, true
	case matchmaking.EventPlayerJoined:
		return OpPlayerJoined, true
	case matchmaking.EventPlayerLeft:
		return OpPlayerLeft, true
	case matchmaking.EventVotesConfig:
		return OpVotesConfig, true
	case matchmaking.EventRoomError:
		return OpRoomError, true
	case matchmaking.EventStartGame:
		return OpStartGame, true
	default:
		return 0, false
	}
}

func gameOpCode(kind engine.EventKind) (int64, bool) {
	switch kind {
	case engine.EventGameInitialized:
		return OpGameInitialized, true
	case engine.EventNewRound:
		return OpNewRound, true
	case engine.EventTurnStarted:
		return OpTurnStarted, true
	case engine.EventPlayerDrew:
		return OpPlayerDrew, true
	case engine.EventDeckReshuffled:
		return OpDeckReshuffled, true
	case engine.EventRoundEnded:
		return OpRoundEnded, true
	case engine.EventHumanLost:
		return OpHumanLost, true
	case engine.EventGameEnded:
		return OpGameEnded, true
	case engine.EventGameError:
		return OpGameError, true
	default:
		return 0, false
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: match terminated, grace=%ds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
