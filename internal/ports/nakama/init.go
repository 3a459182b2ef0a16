package nakama

import (
	"context"
	"database/sql"

	"yaniv/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// envBotIdentities names the runtime env var holding the path to the
// bot identity pool JSON file. Unset means synthetic bot identities.
const envBotIdentities = "yaniv_bot_identities"

// InitModule wires RPCs and the match handler for the Nakama runtime
// (spec.md §6 "external interfaces"): create_room/join_room/quick_game/
// create_bot_room are resolved over RPC before a client has joined any
// match; everything else (votes, turns, Yaniv, slap-down, play-again)
// is carried over the joined match's data channel by matchHandler.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcIDCreateRoom, RpcCreateRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcIDJoinRoom, RpcJoinRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcIDQuickGame, RpcQuickGame); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcIDCreateBotRoom, RpcCreateBotRoom); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameYaniv, NewMatch); err != nil {
		return err
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if path := env[envBotIdentities]; path != "" {
			if err := bot.LoadIdentities(path); err != nil {
				logger.Warn("InitModule: bot identities not loaded: %v", err)
			} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
				logger.Warn("InitModule: bot provisioning incomplete: %v", err)
			}
		}
	}

	logger.Info("Yaniv Go module loaded.")
	return nil
}
