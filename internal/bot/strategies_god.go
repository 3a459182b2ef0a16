package bot

// GodBot is the hard difficulty tier: the full one-ply look-ahead
// pickup evaluation, including the joker-bridged-run bonus components
// spec.md §4.3 reserves for hard ("hard allows exactly one joker in
// synthesized runs"; the low-card connectivity bonus's joker branch is
// likewise hard-only), applied via Tier.Decide's maxRunJokers gate.
type GodBot struct{ Tier }
