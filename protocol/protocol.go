// Package protocol defines the wire-level action and message envelopes
// exchanged between connected viewers and a room.
package protocol

// Action kinds accepted by a room. Mode-specific kinds are rejected with a
// rule violation when that mode is not active.
const (
	Join            = "join"
	Connect         = "connect"
	Disconnect      = "disconnect"
	Chat            = "chat"
	Roll            = "roll"
	Draw            = "draw"
	Play            = "play"
	Reset           = "reset"
	Shuffle         = "shuffle"
	ToggleSpectator = "toggle_spectator"
	Spectate        = "spectate"
	StartGame       = "start"

	ElimPick = "elim/pick"

	PairFlip    = "pair/flip"
	PairResolve = "pair/resolve"

	LuckPass        = "luck/pass"
	LuckDiscardDraw = "luck/discard_draw"
	LuckRedrawAll   = "luck/redraw"

	RoleScene        = "role/scene"
	RoleLaw          = "role/law"
	RoleMedal        = "role/medal"
	RolePurge        = "role/purge"
	RoleAccuse       = "role/accuse"
	RoleTimerStart   = "role/timer_start"
	RoleTimerExtend  = "role/timer_extend"
	RoleSetThreshold = "role/set_threshold"

	TemplateFetch     = "template/fetch"
	TemplateSaveDraft = "template/save_draft"
	TemplatePromote   = "template/promote"
	TemplateApply     = "template/apply"
	TemplateSave      = "template/save"
)

// Outbound message kinds.
const (
	KindState    = "state"
	KindConflict = "conflict"
	KindError    = "error"
	KindTemplate = "template"
)
