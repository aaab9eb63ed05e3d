package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/taigrr/mobile/pkg/config"
	"github.com/taigrr/mobile/pkg/logger"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
	"github.com/taigrr/mobile/pkg/render"
	"github.com/taigrr/mobile/pkg/scene"
)

// EaseAxis follows a target value with a critically damped spring.
type EaseAxis struct {
	Position float64
	velocity float64
	spring   harmonica.Spring
}

// NewEaseAxis creates an axis resting at start.
func NewEaseAxis(fps int, start float64) EaseAxis {
	return EaseAxis{
		Position: start,
		// Frequency 6.0 settles in a few frames, damping 1.0 never overshoots
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update moves one frame toward target.
func (a *EaseAxis) Update(target float64) float64 {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, target)
	return a.Position
}

// EyeEase smooths the displayed camera eye toward the context eye.
type EyeEase struct {
	X, Y, Z EaseAxis
}

func NewEyeEase(fps int, start math3d.Vec3) *EyeEase {
	return &EyeEase{
		X: NewEaseAxis(fps, start.X),
		Y: NewEaseAxis(fps, start.Y),
		Z: NewEaseAxis(fps, start.Z),
	}
}

func (e *EyeEase) Update(target math3d.Vec3) math3d.Vec3 {
	return math3d.V3(e.X.Update(target.X), e.Y.Update(target.Y), e.Z.Update(target.Z))
}

// meshResult is what the import goroutine hands back to the frame loop.
type meshResult struct {
	path string
	mesh *models.Mesh
	err  error
}

// viewer owns everything a frame needs. All methods run on the frame loop
// goroutine except the import started by startImport.
type viewer struct {
	lib      *models.Library
	composer *scene.Composer
	ctx      *scene.RenderContext
	camera   *render.Camera
	fb       *render.Framebuffer
	rast     *render.Rasterizer
	eye      *EyeEase
	bg       render.Color
	imports  chan meshResult
	meshPath string

	frames int
	failed int
}

func newViewer(cfg *config.Config, width, height int) (*viewer, error) {
	mode, err := cfg.ShadingMode()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	lib, err := models.NewLibrary(mode)
	if err != nil {
		return nil, err
	}

	ctx := scene.NewRenderContext()
	ctx.Light = cfg.LightSource()
	ctx.Shading = mode
	ctx.Shadows = cfg.Scene.Shadows
	ctx.Textures = cfg.Scene.Textures
	ctx.Reflection = cfg.Scene.Reflection
	ctx.Refraction = cfg.Scene.Refraction
	ctx.Experimental = cfg.Scene.Experimental

	camera := render.NewCamera()
	camera.SetFOV(cfg.Render.FOV)
	camera.SetClipPlanes(cfg.Render.Near, cfg.Render.Far)
	camera.SetEye(ctx.Eye)
	camera.LookAt(ctx.At)
	camera.SetUp(ctx.Up)

	fb := render.NewFramebuffer(width, height)
	rast := render.NewRasterizer(camera, fb)
	rast.Refraction = cfg.Render.Refraction
	camera.SetAspectRatio(aspect(width, height))

	if err := bindTextures(rast, cfg); err != nil {
		return nil, err
	}

	root := scene.DefaultHierarchy()
	if err := scene.ApplyMaterials(root, cfg.Scene.Materials); err != nil {
		return nil, err
	}

	return &viewer{
		lib:      lib,
		composer: scene.NewComposerFor(lib, root),
		ctx:      ctx,
		camera:   camera,
		fb:       fb,
		rast:     rast,
		eye:      NewEyeEase(cfg.Render.FPS, ctx.Eye),
		bg:       bg,
		imports:  make(chan meshResult, 1),
		meshPath: cfg.Scene.Mesh,
	}, nil
}

func aspect(width, height int) float64 {
	if height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}

// bindTextures loads the configured images, falling back to the procedural
// grass, stone and sky.
func bindTextures(rast *render.Rasterizer, cfg *config.Config) error {
	size := cfg.Render.TextureSize

	grass := render.NewGrassTexture(size)
	if path := cfg.Textures.Grass; path != "" {
		tex, err := render.LoadTexture(path)
		if err != nil {
			return fmt.Errorf("grass texture: %w", err)
		}
		grass = tex
	}

	stone := render.NewStoneTexture(size)
	if path := cfg.Textures.Stone; path != "" {
		tex, err := render.LoadTexture(path)
		if err != nil {
			return fmt.Errorf("stone texture: %w", err)
		}
		stone = tex
	}

	cube := render.NewSkyCubeMap(size)
	if len(cfg.Textures.CubeMap) == 6 {
		var paths [6]string
		copy(paths[:], cfg.Textures.CubeMap)
		cm, err := render.LoadCubeMap(paths)
		if err != nil {
			return fmt.Errorf("cube map: %w", err)
		}
		cube = cm
	}

	rast.BindTexture(render.UnitGrass, grass)
	rast.BindTexture(render.UnitStone, stone)
	rast.BindCubeMap(cube)
	return nil
}

// resize matches the framebuffer to a new output size.
func (v *viewer) resize(width, height int) {
	if !v.fb.Resize(width, height) {
		return
	}
	v.rast.Resize()
	v.camera.SetAspectRatio(aspect(width, height))
	v.rast.InvalidateFrustum()
	logger.Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))
}

// loadMeshFile reads a .ply or .glb mesh for the sphere slot.
func loadMeshFile(path string) (*models.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		return models.LoadPLY(path)
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s (use .ply or .glb)", ext)
	}
}

// startImport parses path on its own goroutine. The result is installed by
// installImports on the frame loop.
func (v *viewer) startImport(ctx context.Context, path string) {
	go func() {
		m, err := loadMeshFile(path)
		select {
		case v.imports <- meshResult{path: path, mesh: m, err: err}:
		case <-ctx.Done():
		}
	}()
}

// reloadMesh re-reads the configured mesh file. It reports false when no
// mesh is configured.
func (v *viewer) reloadMesh(ctx context.Context) bool {
	if v.meshPath == "" {
		return false
	}
	logger.Debug("reloading mesh", zap.String("path", v.meshPath))
	v.startImport(ctx, v.meshPath)
	return true
}

// installImports installs a finished import, if any. With wait set it
// blocks until one arrives or ctx ends.
func (v *viewer) installImports(ctx context.Context, wait bool) error {
	var res meshResult
	if wait {
		select {
		case res = <-v.imports:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else {
		select {
		case res = <-v.imports:
		default:
			return nil
		}
	}

	if res.err != nil {
		return fmt.Errorf("import %s: %w", res.path, res.err)
	}
	if err := v.lib.ReplaceMesh(res.mesh); err != nil {
		return fmt.Errorf("install %s: %w", res.path, err)
	}
	logger.Info("mesh installed",
		zap.String("path", res.path),
		zap.Int("vertices", res.mesh.VertexCount()),
		zap.Int("triangles", res.mesh.TriangleCount()))
	return nil
}

// apply feeds one input event to the render context.
func (v *viewer) apply(ev scene.InputEvent) {
	if err := v.ctx.Apply(ev); err != nil {
		logger.Warn("input rejected", zap.Error(err))
	}
}

// frame composes and rasterizes one frame and advances the clock. A compose
// failure is logged and the frame is skipped.
func (v *viewer) frame() {
	drawCtx := *v.ctx
	drawCtx.Eye = v.eye.Update(v.ctx.Eye)
	v.camera.SetEye(drawCtx.Eye)

	defer v.composer.Advance(v.ctx)

	calls, err := v.composer.Compose(&drawCtx)
	if err != nil {
		v.failed++
		logger.Error("compose failed", zap.Error(err))
		return
	}

	v.rast.Clear(v.bg)
	if err := v.rast.SubmitAll(calls); err != nil {
		logger.Warn("draw calls rejected", zap.Error(err))
	}
	v.frames++
}
