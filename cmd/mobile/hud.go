package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/mobile/pkg/render"
	"github.com/taigrr/mobile/pkg/scene"
)

var (
	hudBG     = color.RGBA{0, 0, 0, 255}
	hudFG     = color.RGBA{235, 235, 235, 255}
	hudGreen  = color.RGBA{80, 250, 120, 255}
	hudYellow = color.RGBA{250, 220, 80, 255}
	hudCyan   = color.RGBA{80, 220, 250, 255}
)

// HUD renders an overlay with frame rate, draw stats and toggle state.
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// statusLine summarizes the toggles for the bottom row.
func statusLine(ctx *scene.RenderContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s Shadows  %s Textures  %s Reflect  %s Refract  %s Experimental ",
		checkbox(ctx.Shadows), checkbox(ctx.Textures), checkbox(ctx.Reflection),
		checkbox(ctx.Refraction), checkbox(ctx.Experimental))
	fmt.Fprintf(&b, " %s  cone %.3f", ctx.Shading, ctx.Light.ConeAngle)
	if ctx.Experimental {
		fmt.Fprintf(&b, "  light (%.1f, %.1f)  eye (%.2f, %.2f)",
			ctx.Light.Position.X, ctx.Light.Position.Y, ctx.Eye.X, ctx.Eye.Y)
	}
	return b.String()
}

// Draw paints the HUD rows over the scene.
func (h *HUD) Draw(scr uv.Screen, ctx *scene.RenderContext, stats render.FrameStats) {
	if !h.Visible {
		return
	}
	area := scr.Bounds()
	width, height := area.Dx(), area.Dy()
	if width <= 0 || height <= 0 {
		return
	}

	render.DrawText(scr, 0, 0, fmt.Sprintf(" %.0f FPS ", h.fps), hudGreen, hudBG)

	counts := fmt.Sprintf(" %d calls  %d culled  %d tris  %d lines ",
		stats.Calls, stats.Culled, stats.Triangles, stats.Lines)
	render.DrawText(scr, max(width-len(counts), 0), 0, counts, hudCyan, hudBG)

	if height > 1 {
		render.DrawText(scr, 0, height-1, statusLine(ctx), hudFG, hudBG)
	}
	if height > 2 {
		render.DrawText(scr, 0, height-2, " A/B/C/D toggles  I/P cone  M/N shading  E experimental  R reload  Esc quit ", hudYellow, hudBG)
	}
}
