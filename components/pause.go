package components

import "github.com/yohamta/donburi"

// PauseData stores the pause state. StepRequested lets one tick through
// while paused.
type PauseData struct {
	IsPaused      bool
	StepRequested bool
}

var Pause = donburi.NewComponentType[PauseData]()
