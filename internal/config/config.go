// Package config holds the room configuration defaults and the
// majority-vote resolution used by quick-match rooms, the same
// default-plus-getter shape the teacher uses for its bet-tier
// configuration (internal/config/config.go in the teacher).
package config

// RoomConfig is the set of rules a room plays under.
type RoomConfig struct {
	SlapDown       bool `json:"slapDown"`
	TimePerPlayer  int  `json:"timePerPlayer"`  // seconds
	CanCallYaniv   int  `json:"canCallYaniv"`   // hand-value threshold
	MaxMatchPoints int  `json:"maxMatchPoints"` // elimination threshold
}

// Default returns the built-in default configuration (spec §6).
func Default() RoomConfig {
	return RoomConfig{
		SlapDown:       true,
		TimePerPlayer:  15,
		CanCallYaniv:   7,
		MaxMatchPoints: 100,
	}
}

// MajorityVote resolves the final configuration for a staged quick-game
// start from the per-player votes cast. For each field, the value with a
// strict majority (more than half the votes) wins; otherwise the default
// for that field is used. An empty vote list returns the default config.
func MajorityVote(votes []RoomConfig) RoomConfig {
	result := Default()
	if len(votes) == 0 {
		return result
	}

	threshold := len(votes) / 2

	slapDownTrue, slapDownFalse := 0, 0
	timePerPlayer := map[int]int{}
	canCallYaniv := map[int]int{}
	maxMatchPoints := map[int]int{}

	for _, v := range votes {
		if v.SlapDown {
			slapDownTrue++
		} else {
			slapDownFalse++
		}
		timePerPlayer[v.TimePerPlayer]++
		canCallYaniv[v.CanCallYaniv]++
		maxMatchPoints[v.MaxMatchPoints]++
	}

	if slapDownTrue > threshold {
		result.SlapDown = true
	} else if slapDownFalse > threshold {
		result.SlapDown = false
	}

	if v, ok := strictMajority(timePerPlayer, threshold); ok {
		result.TimePerPlayer = v
	}
	if v, ok := strictMajority(canCallYaniv, threshold); ok {
		result.CanCallYaniv = v
	}
	if v, ok := strictMajority(maxMatchPoints, threshold); ok {
		result.MaxMatchPoints = v
	}
	return result
}

// strictMajority returns the key whose count exceeds threshold, if any.
// Iteration order over a map is unspecified, but at most one key can
// exceed len(votes)/2, so the result is deterministic regardless.
func strictMajority(counts map[int]int, threshold int) (int, bool) {
	for value, count := range counts {
		if count > threshold {
			return value, true
		}
	}
	return 0, false
}
