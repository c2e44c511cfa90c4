package systems

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePause handles the pause toggle and single stepping.
// This system should run AFTER input is polled but BEFORE other game systems.
func UpdatePause(ecs *ecs.ECS) {
	pause := GetOrCreatePause(ecs)
	input := getInput(ecs)
	if input == nil {
		return
	}

	if input.Action(cfg.ActionPause).JustPressed {
		pause.IsPaused = !pause.IsPaused
	}
	if pause.IsPaused && input.Action(cfg.ActionStep).JustPressed {
		pause.StepRequested = true
	}
}

// FinishStep consumes a pending single step. It runs after the wrapped
// systems.
func FinishStep(ecs *ecs.ECS) {
	GetOrCreatePause(ecs).StepRequested = false
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused && !pause.StepRequested {
			return
		}
		system(e)
	}
}

// WithGameplayChecks wraps a system to skip execution when paused.
// This is an alias for WithPauseCheck for semantic clarity.
func WithGameplayChecks(system ecs.System) ecs.System {
	return WithPauseCheck(system)
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ecs.World.Create(components.Pause)
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
