package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"yaniv/internal/config"
	"yaniv/internal/domain"
	"yaniv/internal/engine"
	"yaniv/internal/matchmaking"

	"github.com/heroiclabs/nakama-common/runtime"
)

const maxCodeGenAttempts = 10

// createRoomRequest is the payload for RpcCreateRoom.
type createRoomRequest struct {
	Config config.RoomConfig `json:"config"`
}

type createBotRoomRequest struct {
	Config       config.RoomConfig   `json:"config"`
	Difficulties []domain.Difficulty `json:"difficulties"`
}

type joinRoomRequest struct {
	Code string `json:"code"`
}

type roomResponse struct {
	MatchID string `json:"matchId"`
	Code    string `json:"code"`
}

func ownerPlayer(ctx context.Context, nk runtime.NakamaModule) (*engine.Player, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("missing user id in context")
	}
	username, _ := ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)
	return &engine.Player{ID: userID, NickName: username}, nil
}

// RpcCreateRoom creates a private room with a fixed config, owned by the
// calling player (spec.md §4.4 "create").
func RpcCreateRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req createRoomRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid create_room payload", 3)
		}
	}
	cfg := req.Config
	if cfg == (config.RoomConfig{}) {
		cfg = config.Default()
	}

	owner, err := ownerPlayer(ctx, nk)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	code, err := reserveRoomCode(ctx, nk)
	if err != nil {
		return "", runtime.NewError(err.Error(), 13)
	}

	params := map[string]interface{}{
		"kind":   matchmaking.KindPrivate,
		"code":   code,
		"owner":  owner,
		"config": cfg,
	}
	matchID, err := nk.MatchCreate(ctx, MatchNameYaniv, params)
	if err != nil {
		return "", runtime.NewError(fmt.Sprintf("failed to create match: %v", err), 13)
	}

	return marshalRoomResponse(matchID, code)
}

// RpcCreateBotRoom creates a private room and immediately seats bots of
// the requested difficulties into the remaining slots (spec.md §4.4
// "create_bot").
func RpcCreateBotRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req createBotRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid create_bot_room payload", 3)
	}
	cfg := req.Config
	if cfg == (config.RoomConfig{}) {
		cfg = config.Default()
	}

	owner, err := ownerPlayer(ctx, nk)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	code, err := reserveRoomCode(ctx, nk)
	if err != nil {
		return "", runtime.NewError(err.Error(), 13)
	}

	params := map[string]interface{}{
		"kind":            matchmaking.KindBot,
		"code":            code,
		"owner":           owner,
		"config":          cfg,
		"botDifficulties": req.Difficulties,
	}
	matchID, err := nk.MatchCreate(ctx, MatchNameYaniv, params)
	if err != nil {
		return "", runtime.NewError(fmt.Sprintf("failed to create match: %v", err), 13)
	}

	return marshalRoomResponse(matchID, code)
}

// RpcQuickGame either creates a new public room or returns the id of an
// existing one with an open seat, so the client's socket MatchJoin call
// always targets a concrete match id (spec.md §4.4 "quick").
func RpcQuickGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := fmt.Sprintf("+label.%s:%s +label.%s:>0", LabelKind, matchmaking.KindQuick, LabelOpen)
	matches, err := nk.MatchList(ctx, 1, true, "", nil, nil, query)
	if err != nil {
		return "", runtime.NewError(fmt.Sprintf("match list failed: %v", err), 13)
	}
	if len(matches) > 0 {
		return marshalRoomResponse(matches[0].GetMatchId(), "")
	}

	owner, err := ownerPlayer(ctx, nk)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	params := map[string]interface{}{
		"kind":   matchmaking.KindQuick,
		"owner":  owner,
		"config": config.Default(),
	}
	matchID, err := nk.MatchCreate(ctx, MatchNameYaniv, params)
	if err != nil {
		return "", runtime.NewError(fmt.Sprintf("failed to create match: %v", err), 13)
	}
	return marshalRoomResponse(matchID, "")
}

// RpcJoinRoom resolves a room code to a match id for join_room.
func RpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req joinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Code == "" {
		return "", runtime.NewError("invalid join_room payload", 3)
	}

	query := fmt.Sprintf("+label.%s:%s", LabelCode, req.Code)
	matches, err := nk.MatchList(ctx, 1, true, "", nil, nil, query)
	if err != nil {
		return "", runtime.NewError(fmt.Sprintf("match list failed: %v", err), 13)
	}
	if len(matches) == 0 {
		return "", runtime.NewError("no room found for that code", 5)
	}
	return marshalRoomResponse(matches[0].GetMatchId(), req.Code)
}

func marshalRoomResponse(matchID, code string) (string, error) {
	bytes, err := json.Marshal(roomResponse{MatchID: matchID, Code: code})
	if err != nil {
		return "", runtime.NewError("failed to marshal response", 13)
	}
	return string(bytes), nil
}

// reserveRoomCode samples a 6-character alphanumeric code and retries on
// collision against currently live matches (spec.md §4.4: "sampled
// uniformly with retry on collision").
func reserveRoomCode(ctx context.Context, nk runtime.NakamaModule) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < maxCodeGenAttempts; i++ {
		code := matchmaking.GenerateCode(rng)
		query := fmt.Sprintf("+label.%s:%s", LabelCode, code)
		matches, err := nk.MatchList(ctx, 1, true, "", nil, nil, query)
		if err != nil {
			return "", fmt.Errorf("match list failed: %w", err)
		}
		if len(matches) == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique room code")
}
