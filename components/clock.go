package components

import "github.com/yohamta/donburi"

// ClockData is the simulation clock, advanced once per tick.
type ClockData struct {
	Tick uint64
	// DT is the length of the current tick in seconds.
	DT      float64
	Elapsed float64
}

var Clock = donburi.NewComponentType[ClockData]()
