package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/watchtower/common"
	"github.com/milk9111/watchtower/ecs"
	"github.com/milk9111/watchtower/ecs/component"
)

var weaponSlotKeys = [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// InputSystem reads keyboard, mouse and the first gamepad into the player's
// Input and Aim. Aim follows the cursor projected onto the floor.
type InputSystem struct {
	screenW float64
	screenH float64
}

func NewInputSystem(screenW, screenH float64) *InputSystem {
	return &InputSystem{screenW: screenW, screenH: screenH}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveZ := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveZ -= 1
	}
	fire := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	reload := inpututil.IsKeyJustPressed(ebiten.KeyR)
	switchTo := 0
	for slot, key := range weaponSlotKeys {
		if inpututil.IsKeyJustPressed(key) {
			switchTo = slot + 1
		}
	}

	var stick common.Vec3
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveZ = lx, -ly
		}
		fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		reload = reload || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			switchTo = -1
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			stick = common.V3(rx, 0, -ry)
		}
	}

	var cam *component.Camera
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam, _ = ecs.Get(w, e, component.CameraComponent.Kind())
	}
	cx, cy := ebiten.CursorPosition()

	ecs.ForEach2(w, component.InputComponent.Kind(), component.PlayerTagComponent.Kind(), func(e ecs.Entity, input *component.Input, _ *component.PlayerTag) {
		input.MoveX = moveX
		input.MoveZ = moveZ
		input.Fire = fire
		input.Reload = input.Reload || reload
		if switchTo > 0 {
			input.SwitchTo = switchTo
		} else if switchTo < 0 {
			input.SwitchTo = nextSlot(w, e)
		}

		aim, ok := ecs.Get(w, e, component.AimComponent.Kind())
		if !ok {
			return
		}
		if !stick.IsZero() {
			aim.Direction = stick.Normalize()
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		cursor := cam.ToWorld(float64(cx), float64(cy), i.screenW, i.screenH, t.Position.Y)
		if dir := cursor.Sub(t.Position).Flat().Normalize(); !dir.IsZero() {
			aim.Direction = dir
		}
	})
}

// nextSlot cycles to the weapon after the active one.
func nextSlot(w *ecs.World, e ecs.Entity) int {
	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	if !ok || weapon.State == nil {
		return 0
	}
	return (int(weapon.State.Active())+1)%len(weaponSlotKeys) + 1
}
