// mobile - a hanging mobile of shaded solids rendered in the terminal.
//
// Controls:
//
//	A           - Toggle shadows
//	B           - Toggle textures
//	C           - Toggle reflection
//	D           - Toggle refraction
//	I/P         - Widen/narrow the spotlight cone
//	M/N         - Gouraud/flat shading
//	E           - Toggle experimental mode (light and camera movement)
//	L/J         - Move light along X (experimental)
//	O/K         - Move light along Y (experimental)
//	Mouse drag  - Pan the camera (experimental)
//	R           - Reload the configured mesh
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/mobile/pkg/config"
	"github.com/taigrr/mobile/pkg/logger"
)

var (
	snapshotPath = flag.String("snapshot", "", "Render headless and write the last frame to this PNG")
	frameCount   = flag.Int("frames", 1, "Frames to render before writing the snapshot")
	snapshotSize = flag.String("size", "320x240", "Snapshot size (WxH)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mobile - hierarchical shaded scene in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mobile [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  A/B/C/D     - Shadows, textures, reflection, refraction\n")
		fmt.Fprintf(os.Stderr, "  I/P         - Widen/narrow spotlight\n")
		fmt.Fprintf(os.Stderr, "  M/N         - Gouraud/flat shading\n")
		fmt.Fprintf(os.Stderr, "  E           - Experimental mode\n")
		fmt.Fprintf(os.Stderr, "  L/J, O/K    - Move light (experimental)\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Pan camera (experimental)\n")
		fmt.Fprintf(os.Stderr, "  R           - Reload mesh\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	headless := *snapshotPath != ""

	// The alt screen owns stdout in interactive mode, so only the file core logs there.
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, headless); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", path))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if headless {
		w, h, err := parseSize(*snapshotSize)
		if err != nil {
			return err
		}
		return runSnapshot(ctx, cfg, w, h, *frameCount, *snapshotPath)
	}
	return runTerminal(ctx, cfg)
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("parse size %q: dimensions must be positive", s)
	}
	return w, h, nil
}
