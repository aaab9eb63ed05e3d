package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/mobile/pkg/config"
	"github.com/taigrr/mobile/pkg/logger"
)

// runSnapshot renders frames without a terminal and saves the last one.
func runSnapshot(ctx context.Context, cfg *config.Config, width, height, frames int, path string) error {
	v, err := newViewer(cfg, width, height)
	if err != nil {
		return err
	}

	if v.reloadMesh(ctx) {
		if err := v.installImports(ctx, true); err != nil {
			return err
		}
	}

	for range max(frames, 1) {
		if err := ctx.Err(); err != nil {
			return err
		}
		v.frame()
	}
	if v.frames == 0 {
		return fmt.Errorf("no frame rendered (%d compose failures)", v.failed)
	}

	if err := v.fb.SavePNG(path); err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("frames", v.frames),
		zap.Int("triangles", v.rast.Stats.Triangles),
		zap.Int("lines", v.rast.Stats.Lines))
	return nil
}
