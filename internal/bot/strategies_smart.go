package bot

// SmartBot is the medium difficulty tier. spec.md §4.3 limits run
// synthesis at this tier to runs already complete in hand ("medium
// rejects synthesized [joker-containing] runs"), which Tier.Decide
// applies via maxRunJokers for domain.Medium.
type SmartBot struct{ Tier }
