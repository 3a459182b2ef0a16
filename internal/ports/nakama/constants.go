package nakama

const (
	// MatchNameYaniv is the authoritative match handler name registered
	// with Nakama.
	MatchNameYaniv = "yaniv_match"

	// RPC ids clients call before joining a match.
	RpcIDCreateRoom    = "create_room"
	RpcIDJoinRoom      = "join_room"
	RpcIDQuickGame     = "quick_game"
	RpcIDCreateBotRoom = "create_bot_room"
)

// Label keys used in a match's label JSON, queried via nk.MatchList.
const (
	LabelKind  = "kind"
	LabelCode  = "code"
	LabelPhase = "phase"
	LabelOpen  = "open"
)
