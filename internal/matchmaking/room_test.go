package matchmaking

import (
	"math/rand"
	"testing"
	"time"

	"yaniv/internal/config"
	"yaniv/internal/engine"
)

func player(id string) *engine.Player {
	return &engine.Player{ID: id, NickName: id}
}

func TestNewRoomSeatsOwner(t *testing.T) {
	r := NewRoom("room1", "ABC123", KindPrivate, player("p1"), config.Default(), time.Now())
	if len(r.Players) != 1 || r.Players[0].ID != "p1" {
		t.Fatalf("expected owner seated, got %+v", r.Players)
	}
	if r.OwnerID != "p1" {
		t.Fatalf("expected p1 as owner, got %s", r.OwnerID)
	}
	if r.Phase != PhaseWaiting {
		t.Fatalf("expected waiting phase, got %v", r.Phase)
	}
}

func TestJoinRejectsAfterStart(t *testing.T) {
	r := NewRoom("room1", "ABC123", KindPrivate, player("p1"), config.Default(), time.Now())
	if err := r.Join(player("p2"), nil); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start(r.Config); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Join(player("p3"), nil); err != ErrRoomStarted {
		t.Fatalf("expected ErrRoomStarted, got %v", err)
	}
}

func TestJoinRejectsDuplicateAndFull(t *testing.T) {
	r := NewRoom("room1", "ABC123", KindPrivate, player("p1"), config.Default(), time.Now())
	if err := r.Join(player("p1"), nil); err != ErrAlreadyJoined {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	for i := 0; i < MaxPlayers-1; i++ {
		if err := r.Join(player(string(rune('a'+i))), nil); err != nil {
			t.Fatalf("Join %d: %v", i, err)
		}
	}
	if err := r.Join(player("overflow"), nil); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestLeaveReassignsOwnerAndReportsEmpty(t *testing.T) {
	r := NewRoom("room1", "ABC123", KindPrivate, player("p1"), config.Default(), time.Now())
	_ = r.Join(player("p2"), nil)

	if empty := r.Leave("p1"); empty {
		t.Fatalf("expected room non-empty after one of two leaves")
	}
	if r.OwnerID != "p2" {
		t.Fatalf("expected ownership to pass to p2, got %s", r.OwnerID)
	}
	if empty := r.Leave("p2"); !empty {
		t.Fatalf("expected room empty after last player leaves")
	}
}

func TestResolveVotesMajority(t *testing.T) {
	cfg := config.Default()
	cfg.CanCallYaniv = 5
	r := NewRoom("room1", "ABC123", KindQuick, player("p1"), cfg, time.Now())

	v2 := config.Default()
	v2.CanCallYaniv = 5
	r.SetVote("p2", v2)

	v3 := config.Default()
	v3.CanCallYaniv = 9
	r.SetVote("p3", v3)

	got := r.ResolveVotes()
	if got.CanCallYaniv != 5 {
		t.Fatalf("expected majority vote of 5, got %d", got.CanCallYaniv)
	}
}

func TestStagedStartDelayTable(t *testing.T) {
	cases := []struct {
		count int
		want  time.Duration
		ok    bool
	}{
		{0, 0, false},
		{1, 0, false},
		{2, 3 * time.Second, true},
		{3, 10 * time.Second, true},
		{4, 7 * time.Second, true},
		{8, 7 * time.Second, true},
	}
	for _, c := range cases {
		delay, ok := StagedStartDelay(c.count)
		if ok != c.ok || delay != c.want {
			t.Fatalf("StagedStartDelay(%d) = (%v, %v), want (%v, %v)", c.count, delay, ok, c.want, c.ok)
		}
	}
}

func TestReevaluateStartCancelsOnSoloPlayer(t *testing.T) {
	now := time.Now()
	r := NewRoom("room1", "ABC123", KindQuick, player("p1"), config.Default(), now)
	_ = r.Join(player("p2"), nil)
	ReevaluateStart(r, now)
	if r.ScheduledStartAt.IsZero() {
		t.Fatalf("expected a scheduled start with two players")
	}

	r.Leave("p2")
	ReevaluateStart(r, now)
	if !r.ScheduledStartAt.IsZero() {
		t.Fatalf("expected scheduled start cleared with one player left")
	}
}

func TestIsStartDue(t *testing.T) {
	now := time.Now()
	r := NewRoom("room1", "ABC123", KindQuick, player("p1"), config.Default(), now)
	_ = r.Join(player("p2"), nil)
	ReevaluateStart(r, now)

	if IsStartDue(r, now) {
		t.Fatalf("did not expect start due immediately")
	}
	if !IsStartDue(r, now.Add(3*time.Second)) {
		t.Fatalf("expected start due after the 2-player delay")
	}
}

func TestGenerateCodeLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	code := GenerateCode(rng)
	if len(code) != CodeLength {
		t.Fatalf("expected %d-character code, got %q", CodeLength, code)
	}
}
