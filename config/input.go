package config

// ActionID represents a logical input action. The viewer binds keys and
// buttons to them; the headless sim drives them from its autopilot.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionPause
	ActionStep
	ActionReset
	ActionToggleGrid
	ActionToggleGraph
	ActionToggleHUD
	ActionNextLevel
	ActionResize
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:        "none",
	ActionMoveLeft:    "move-left",
	ActionMoveRight:   "move-right",
	ActionJump:        "jump",
	ActionPause:       "pause",
	ActionStep:        "step",
	ActionReset:       "reset",
	ActionToggleGrid:  "toggle-grid",
	ActionToggleGraph: "toggle-graph",
	ActionToggleHUD:   "toggle-hud",
	ActionNextLevel:   "next-level",
	ActionResize:      "resize",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}
