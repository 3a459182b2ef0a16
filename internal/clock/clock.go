// Package clock supplies the time source the turn engine schedules against.
// Production wires a real clock; tests inject a mock so the literal
// timings in spec scenarios (turn timeout, slap-down window, start delays)
// can be driven deterministically instead of racing real sleeps.
package clock

import "github.com/coder/quartz"

// Clock is an alias for quartz.Clock; the engine uses its wall time.
type Clock = quartz.Clock

// NewReal returns the production clock, backed by the real wall clock.
func NewReal() Clock { return quartz.NewReal() }
