package bot

import "yaniv/internal/engine"

// Agent is an autonomous bot seat: an identity plus the Brain that
// decides its moves.
type Agent struct {
	ID    string
	Name  string
	Brain Brain
}

// NewAgent builds an Agent for a bot Player, selecting its Brain from
// the player's configured difficulty.
func NewAgent(player *engine.Player) *Agent {
	return &Agent{
		ID:    player.ID,
		Name:  player.NickName,
		Brain: NewBrain(player.Difficulty),
	}
}

// Act asks the agent for its decision on the current game state. The
// caller is responsible for feeding the result into
// engine.GameState.CallYaniv or CompleteTurn and broadcasting whatever
// events come back, exactly as it would for a human player's command.
func (a *Agent) Act(gs *engine.GameState) Decision {
	return a.Brain.Decide(gs, a.ID)
}
