package config

import "testing"

func TestMajorityVoteStrictMajority(t *testing.T) {
	votes := []RoomConfig{
		{SlapDown: false, TimePerPlayer: 30, CanCallYaniv: 5, MaxMatchPoints: 200},
		{SlapDown: false, TimePerPlayer: 30, CanCallYaniv: 5, MaxMatchPoints: 200},
		{SlapDown: true, TimePerPlayer: 15, CanCallYaniv: 7, MaxMatchPoints: 100},
	}
	got := MajorityVote(votes)
	want := RoomConfig{SlapDown: false, TimePerPlayer: 30, CanCallYaniv: 5, MaxMatchPoints: 200}
	if got != want {
		t.Errorf("MajorityVote = %+v, want %+v", got, want)
	}
}

func TestMajorityVoteNoMajorityFallsBackToDefault(t *testing.T) {
	votes := []RoomConfig{
		{SlapDown: true, TimePerPlayer: 15, CanCallYaniv: 7, MaxMatchPoints: 100},
		{SlapDown: true, TimePerPlayer: 30, CanCallYaniv: 5, MaxMatchPoints: 150},
		{SlapDown: false, TimePerPlayer: 45, CanCallYaniv: 10, MaxMatchPoints: 200},
	}
	got := MajorityVote(votes)
	if got != Default() {
		t.Errorf("MajorityVote with no majority = %+v, want default %+v", got, Default())
	}
}

func TestMajorityVoteEmpty(t *testing.T) {
	if got := MajorityVote(nil); got != Default() {
		t.Errorf("MajorityVote(nil) = %+v, want default", got)
	}
}
