package viewer

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// analogDeadzone is how far the left stick must tilt to count as a press.
const analogDeadzone = 0.25

// Binding lists the keys and gamepad buttons that trigger an action.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps each action to its inputs.
var Bindings = map[cfg.ActionID]Binding{
	cfg.ActionMoveLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	cfg.ActionMoveRight: {
		Keys:                   []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	cfg.ActionJump: {
		Keys:                   []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	cfg.ActionPause: {
		Keys:                   []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight},
	},
	cfg.ActionStep: {
		Keys:                   []ebiten.Key{ebiten.KeyPeriod, ebiten.KeyN},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
	},
	cfg.ActionReset: {
		Keys:                   []ebiten.Key{ebiten.KeyR},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterLeft},
	},
	cfg.ActionToggleHUD:   {Keys: []ebiten.Key{ebiten.KeyF1}},
	cfg.ActionToggleGrid:  {Keys: []ebiten.Key{ebiten.KeyF2, ebiten.KeyG}},
	cfg.ActionToggleGraph: {Keys: []ebiten.Key{ebiten.KeyF3, ebiten.KeyE}},
	cfg.ActionNextLevel:   {Keys: []ebiten.Key{ebiten.KeyTab}},
	cfg.ActionResize:      {Keys: []ebiten.Key{ebiten.KeyF4}},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls the keyboard and gamepads into the Input component.
// Must run BEFORE UpdatePause in the system order.
func UpdateInput(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	input := components.Input.Get(entry)
	input.Swap()
	pollActions(input, ebiten.IsKeyPressed)

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for actionID, binding := range Bindings {
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
				}
			}
		}
		axis := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axis < -analogDeadzone {
			input.Current[cfg.ActionMoveLeft] = true
		} else if axis > analogDeadzone {
			input.Current[cfg.ActionMoveRight] = true
		}
	}
}

// pollActions marks every action with a pressed key.
func pollActions(input *components.InputData, pressed func(ebiten.Key) bool) {
	for actionID, binding := range Bindings {
		for _, key := range binding.Keys {
			if pressed(key) {
				input.Current[actionID] = true
			}
		}
	}
}
