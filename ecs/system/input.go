package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

// InputSystem samples keyboard, mouse and the first gamepad into every Input
// component.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}

	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyControlLeft)

	in.Grapple = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.GrapplePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.GrappleReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.ReelIn = ebiten.IsKeyPressed(ebiten.KeyE)
	in.ReelInPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.ReelOut = ebiten.IsKeyPressed(ebiten.KeyQ)
	in.ReelOutPressed = inpututil.IsKeyJustPressed(ebiten.KeyQ)

	in.InvertGravityPressed = inpututil.IsKeyJustPressed(ebiten.KeyG)
	in.FirePressed = inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(leftX, leftY) > stickDeadzone {
			in.MoveX = leftX
			in.MoveY = leftY
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightBottom)
		in.DashPressed = in.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.FirePressed = in.FirePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.InvertGravityPressed = in.InvertGravityPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.ReelIn = in.ReelIn || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		in.ReelOut = in.ReelOut || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	px, py := i.pointerWorld(w)
	in.PointerX = px
	in.PointerY = py

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}

// pointerWorld converts the cursor position to world space through the
// camera.
func (i *InputSystem) pointerWorld(w *ecs.World) (float64, float64) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return x, y
	}
	zoom := 1.0
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		return t.X + x/zoom, t.Y + y/zoom
	}
	return x / zoom, y / zoom
}
