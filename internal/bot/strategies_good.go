package bot

// GoodBot is the easy difficulty tier. spec.md §4.3 gates run synthesis
// off entirely at this tier ("easy finds no run candidates at all"),
// which Tier.Decide applies via maxRunJokers for domain.Easy. Named
// separately from Tier so the difficulty is visible in logs and tests
// without inspecting a field.
type GoodBot struct{ Tier }
