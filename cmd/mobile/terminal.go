package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/mobile/pkg/config"
	"github.com/taigrr/mobile/pkg/logger"
	"github.com/taigrr/mobile/pkg/scene"
)

// frontEvent is what the terminal goroutine hands to the frame loop.
type frontEvent struct {
	input  scene.InputEvent
	cmd    command
	resize bool
	width  int
	height int
}

// forwardEvents translates terminal events until ctx ends or the terminal
// closes its event channel.
func forwardEvents(ctx context.Context, events <-chan uv.Event, out chan<- frontEvent) {
	var drag dragTracker
	for {
		var ev uv.Event
		var ok bool
		select {
		case <-ctx.Done():
			return
		case ev, ok = <-events:
			if !ok {
				return
			}
		}

		var fe frontEvent
		if sz, isSize := ev.(uv.WindowSizeEvent); isSize {
			fe = frontEvent{resize: true, width: sz.Width, height: sz.Height}
		} else {
			fe.input, fe.cmd = drag.translateEvent(ev)
			if fe.input == nil && fe.cmd == cmdNone {
				continue
			}
		}

		select {
		case out <- fe:
		case <-ctx.Done():
			return
		}
	}
}

// runTerminal drives the interactive frame loop on the alternate screen.
func runTerminal(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event tracking (drag)
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", zap.Error(err))
		}
	}
	defer cleanup()

	// Two framebuffer rows per terminal row.
	v, err := newViewer(cfg, width, height*2)
	if err != nil {
		return err
	}
	v.reloadMesh(ctx)

	events := make(chan frontEvent, 64)
	go forwardEvents(ctx, term.Events(), events)

	hud := NewHUD()
	targetDuration := time.Second / time.Duration(cfg.Render.FPS)

	logger.Info("viewer started",
		zap.Int("cols", width), zap.Int("rows", height), zap.Int("fps", cfg.Render.FPS))

	for {
		now := time.Now()

		// Input is applied only between frames.
	drain:
		for {
			select {
			case <-ctx.Done():
				logger.Info("viewer stopped", zap.Int("frames", v.frames), zap.Int("failed", v.failed))
				return nil
			case fe := <-events:
				switch {
				case fe.resize:
					width, height = fe.width, fe.height
					term.Erase()
					if err := term.Resize(width, height); err != nil {
						logger.Warn("resize terminal", zap.Error(err))
					}
					v.resize(width, height*2)
				case fe.cmd == cmdQuit:
					cancel()
				case fe.cmd == cmdToggleHUD:
					hud.Visible = !hud.Visible
				case fe.cmd == cmdReloadMesh:
					if !v.reloadMesh(ctx) {
						logger.Warn("no mesh configured to reload")
					}
				case fe.input != nil:
					v.apply(fe.input)
				}
			default:
				break drain
			}
		}

		if err := v.installImports(ctx, false); err != nil {
			logger.Error("mesh import failed", zap.Error(err))
		}

		v.frame()

		v.fb.Draw(term, term.Bounds())
		hud.UpdateFPS(now)
		hud.Draw(term, v.ctx, v.rast.Stats)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
