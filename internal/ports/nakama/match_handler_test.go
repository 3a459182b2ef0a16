package nakama

import (
	"testing"
	"time"

	"yaniv/internal/config"
	"yaniv/internal/engine"
	"yaniv/internal/matchmaking"

	"github.com/heroiclabs/nakama-common/runtime"
)

func TestBuildLabelReflectsRoomAndOpenSeats(t *testing.T) {
	owner := &engine.Player{ID: "p1", NickName: "p1"}
	room := matchmaking.NewRoom("m1", "ABC123", matchmaking.KindQuick, owner, config.Default(), time.Now())

	label := buildLabel(room)
	if label.Kind != string(matchmaking.KindQuick) || label.Code != "ABC123" || label.Phase != string(matchmaking.PhaseWaiting) {
		t.Fatalf("unexpected label: %+v", label)
	}
	if label.Open != matchmaking.MaxPlayers-1 {
		t.Fatalf("open = %d, want %d", label.Open, matchmaking.MaxPlayers-1)
	}
}

func TestLobbyOpCodeMapsEveryEventKind(t *testing.T) {
	kinds := []matchmaking.EventKind{
		matchmaking.EventRoomCreated,
		matchmaking.EventPlayerJoined,
		matchmaking.EventPlayerLeft,
		matchmaking.EventVotesConfig,
		matchmaking.EventRoomError,
		matchmaking.EventStartGame,
	}
	for _, k := range kinds {
		if _, ok := lobbyOpCode(k); !ok {
			t.Errorf("lobbyOpCode(%v) reported unknown", k)
		}
	}
	if _, ok := lobbyOpCode(matchmaking.EventKind("nonsense")); ok {
		t.Error("expected unknown event kind to report !ok")
	}
}

func TestGameOpCodeMapsEveryEventKind(t *testing.T) {
	kinds := []engine.EventKind{
		engine.EventGameInitialized,
		engine.EventNewRound,
		engine.EventTurnStarted,
		engine.EventPlayerDrew,
		engine.EventDeckReshuffled,
		engine.EventRoundEnded,
		engine.EventHumanLost,
		engine.EventGameEnded,
		engine.EventGameError,
	}
	for _, k := range kinds {
		if _, ok := gameOpCode(k); !ok {
			t.Errorf("gameOpCode(%v) reported unknown", k)
		}
	}
	if _, ok := gameOpCode(engine.EventKind("nonsense")); ok {
		t.Error("expected unknown event kind to report !ok")
	}
}

func TestActiveNonLeaveCountsOnlyActiveStatus(t *testing.T) {
	gs := engine.New(nil, nil, []string{"a", "b", "c"})
	gs.PlayersStats["b"] = engine.StatusLost
	gs.PlayersStats["c"] = engine.StatusLeave

	got := activeNonLeave(gs)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("activeNonLeave = %+v, want [a]", got)
	}
}

func TestRemainingRosterExcludesBotsAndLeavers(t *testing.T) {
	owner := &engine.Player{ID: "p1", NickName: "p1"}
	room := matchmaking.NewRoom("m1", "ABC123", matchmaking.KindBot, owner, config.Default(), time.Now())
	_ = room.Join(&engine.Player{ID: "p2", NickName: "p2"}, nil)
	_ = room.AddBot(&engine.Player{ID: "bot:1", NickName: "Bot", IsBot: true})

	gs := engine.New(nil, nil, []string{"p1", "p2", "bot:1"})
	gs.PlayersStats["p2"] = engine.StatusLeave

	got := remainingRoster(room, gs)
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("remainingRoster = %+v, want [p1]", got)
	}
}

func TestRecipientPresencesEmptyIDsMeansBroadcast(t *testing.T) {
	mh := &matchHandler{}
	s := &MatchState{Presences: map[string]runtime.Presence{}}
	if got := mh.recipientPresences(s, nil); got != nil {
		t.Fatalf("recipientPresences(nil) = %v, want nil (broadcast)", got)
	}
	if got := mh.recipientPresences(s, []string{"missing"}); len(got) != 0 {
		t.Fatalf("recipientPresences(unknown id) = %v, want empty", got)
	}
}
