package matchmaking

import "math/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of a generated room code (spec.md §4.4: "6
// character alphanumeric").
const CodeLength = 6

// GenerateCode returns a uniformly sampled 6-character alphanumeric room
// code. Collision retry against already-live rooms is the caller's job
// (internal/ports/nakama, which can query Nakama's match registry for the
// code); this package has no notion of "every room that currently exists".
func GenerateCode(rng *rand.Rand) string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}
