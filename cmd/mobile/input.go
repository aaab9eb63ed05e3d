package main

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/mobile/pkg/models"
	"github.com/taigrr/mobile/pkg/scene"
)

// command is a front-end action that does not touch the scene.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdToggleHUD
	cmdReloadMesh
)

// translateKey maps a key press to a scene event or a front-end command.
func translateKey(ev uv.KeyPressEvent) (scene.InputEvent, command) {
	switch {
	case ev.MatchString("esc", "ctrl+c"):
		return nil, cmdQuit
	case ev.MatchString("?", "shift+/"):
		return nil, cmdToggleHUD
	case ev.MatchString("r", "R"):
		return nil, cmdReloadMesh
	case ev.MatchString("a", "A"):
		return scene.ToggleShadows{}, cmdNone
	case ev.MatchString("b", "B"):
		return scene.ToggleTextures{}, cmdNone
	case ev.MatchString("c", "C"):
		return scene.ToggleReflection{}, cmdNone
	case ev.MatchString("d", "D"):
		return scene.ToggleRefraction{}, cmdNone
	case ev.MatchString("i", "I"):
		return scene.WidenCone{}, cmdNone
	case ev.MatchString("p", "P"):
		return scene.NarrowCone{}, cmdNone
	case ev.MatchString("m", "M"):
		return scene.SetShadingMode{Mode: models.ShadingGouraud}, cmdNone
	case ev.MatchString("n", "N"):
		return scene.SetShadingMode{Mode: models.ShadingFlat}, cmdNone
	case ev.MatchString("e", "E"):
		return scene.ToggleExperimental{}, cmdNone
	case ev.MatchString("l", "L"):
		return scene.NudgeLight{Axis: models.AxisX, Sign: 1}, cmdNone
	case ev.MatchString("j", "J"):
		return scene.NudgeLight{Axis: models.AxisX, Sign: -1}, cmdNone
	case ev.MatchString("o", "O"):
		return scene.NudgeLight{Axis: models.AxisY, Sign: 1}, cmdNone
	case ev.MatchString("k", "K"):
		return scene.NudgeLight{Axis: models.AxisY, Sign: -1}, cmdNone
	}
	return nil, cmdNone
}

// dragTracker turns mouse click, motion and release into PointerDrag
// deltas in cell units.
type dragTracker struct {
	down         bool
	lastX, lastY int
}

func (d *dragTracker) press(x, y int) {
	d.down = true
	d.lastX, d.lastY = x, y
}

func (d *dragTracker) release() {
	d.down = false
}

// move reports the drag since the last position, if the button is held and
// the pointer actually moved.
func (d *dragTracker) move(x, y int) (scene.PointerDrag, bool) {
	if !d.down {
		return scene.PointerDrag{}, false
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	if dx == 0 && dy == 0 {
		return scene.PointerDrag{}, false
	}
	return scene.PointerDrag{DX: float64(dx), DY: float64(dy)}, true
}

// translateEvent maps a terminal event to scene events and commands. Resize
// is handled by the caller.
func (d *dragTracker) translateEvent(ev uv.Event) (scene.InputEvent, command) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return translateKey(ev)
	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			d.press(ev.X, ev.Y)
		}
	case uv.MouseReleaseEvent:
		d.release()
	case uv.MouseMotionEvent:
		if drag, ok := d.move(ev.X, ev.Y); ok {
			return drag, cmdNone
		}
	}
	return nil, cmdNone
}
