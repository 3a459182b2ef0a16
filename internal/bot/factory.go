package bot

import "yaniv/internal/domain"

// NewBrain returns the Brain for a difficulty tier, defaulting to the
// medium tier for an unrecognized value.
func NewBrain(difficulty domain.Difficulty) Brain {
	switch difficulty {
	case domain.Easy:
		return GoodBot{Tier{Difficulty: domain.Easy}}
	case domain.Hard:
		return GodBot{Tier{Difficulty: domain.Hard}}
	default:
		return SmartBot{Tier{Difficulty: domain.Medium}}
	}
}
