package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/logger"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
	"github.com/taigrr/mobile/pkg/render"
	"github.com/taigrr/mobile/pkg/shadow"
)

// ErrUnbalanced is returned when a program leaves the transform stack
// non-empty or pops past its root.
var ErrUnbalanced = errors.New("scene: unbalanced transform stack")

// ShadowColor is the flat color of projected shadows.
var ShadowColor = math3d.V4(0, 0, 0, 1)

// Composer replays a compiled hierarchy into draw calls.
type Composer struct {
	lib     *models.Library
	program Program
	stack   *math3d.TransformStack
	calls   []render.DrawCall
}

// NewComposer returns a composer for the default hierarchy.
func NewComposer(lib *models.Library) *Composer {
	return NewComposerFor(lib, DefaultHierarchy())
}

// NewComposerFor returns a composer for an arbitrary hierarchy.
func NewComposerFor(lib *models.Library, root *SceneNode) *Composer {
	p := Compile(root)
	return &Composer{
		lib:     lib,
		program: p,
		stack:   math3d.NewTransformStack(p.MaxDepth() + 1),
	}
}

// Program returns the compiled hierarchy.
func (c *Composer) Program() Program {
	return c.program
}

// Advance moves the rotation clock one frame forward.
func (c *Composer) Advance(ctx *RenderContext) {
	ctx.Tick()
}

// Compose produces the frame's draw calls. The returned slice is reused by
// the next call.
func (c *Composer) Compose(ctx *RenderContext) ([]render.DrawCall, error) {
	if ctx.Shading != c.lib.Mode() {
		if err := c.lib.SetShadingMode(ctx.Shading); err != nil {
			return nil, fmt.Errorf("switch shading: %w", err)
		}
		logger.Debug("shading mode changed", zap.Stringer("mode", ctx.Shading))
	}

	c.calls = c.calls[:0]
	c.stack.Reset()

	current := ctx.View()
	c.stack.Push(current)

	for i, op := range c.program {
		switch op.Code {
		case OpPush:
			c.stack.Push(current)
		case OpPlace:
			current = current.Mul(op.Transform.Matrix(ctx.Theta))
		case OpDraw:
			dc, err := c.drawCall(ctx, op, current)
			if err != nil {
				return nil, err
			}
			c.calls = append(c.calls, dc)
		case OpShadow:
			if !ctx.Shadows {
				continue
			}
			dc, err := c.shadowCall(ctx, op, current)
			if err != nil {
				return nil, err
			}
			c.calls = append(c.calls, dc)
		case OpPop:
			m, err := c.stack.Pop()
			if err != nil {
				return nil, fmt.Errorf("%w: op %d (%s): %w", ErrUnbalanced, i, op.Node, err)
			}
			current = m
		}
	}

	if _, err := c.stack.Pop(); err != nil {
		return nil, fmt.Errorf("%w: root checkpoint missing", ErrUnbalanced)
	}
	if n := c.stack.Len(); n != 0 {
		return nil, fmt.Errorf("%w: %d entries left", ErrUnbalanced, n)
	}
	return c.calls, nil
}

// mesh fetches the geometry for a draw request.
func (c *Composer) mesh(d Draw) (*models.Mesh, error) {
	switch d.Kind {
	case DrawBox:
		return c.lib.Box(d.Size)
	case DrawSphere:
		return c.lib.Sphere()
	case DrawPlane:
		return c.lib.Plane(d.Width, d.Height)
	case DrawLine:
		return models.Line(d.Axis, d.Size), nil
	default:
		return nil, fmt.Errorf("scene: nothing to draw for %v", d.Kind)
	}
}

func (c *Composer) drawCall(ctx *RenderContext, op Op, mv math3d.Mat4) (render.DrawCall, error) {
	m, err := c.mesh(op.Draw)
	if err != nil {
		return render.DrawCall{}, fmt.Errorf("%s: %w", op.Node, err)
	}

	dc := render.DrawCall{
		Label:     op.Node,
		Positions: m.Positions,
		Normals:   m.Normals,
		ModelView: mv,
	}

	switch op.Draw.Kind {
	case DrawLine:
		dc.Primitive = render.PrimitiveLines
		dc.Colors = []math3d.Vec4{op.Draw.Color}
	case DrawPlane:
		dc.Colors = []math3d.Vec4{op.Draw.Color}
		dc.UVs = m.UVs
		dc.Texture = ctx.Textures
		dc.TextureUnit = op.Draw.TextureUnit
		dc.Cull = true
	default:
		dc.Colors = []math3d.Vec4{{X: 1, Y: 1, Z: 1, W: 1}}
		dc.Lighting = true
		dc.Reflect = ctx.Reflection
		dc.Refract = ctx.Refraction
		dc.Cull = true
		dc.Products = lighting.ComputeProducts(ctx.Light, op.Draw.Material)
		dc.LightPosition = ctx.Light.Position
		dc.ConeAngle = ctx.Light.ConeAngle
	}
	return dc, nil
}

// shadowCall flattens the node's geometry onto the back wall as seen from
// the light.
func (c *Composer) shadowCall(ctx *RenderContext, op Op, mv math3d.Mat4) (render.DrawCall, error) {
	m, err := c.mesh(op.Draw)
	if err != nil {
		return render.DrawCall{}, fmt.Errorf("%s shadow: %w", op.Node, err)
	}
	return render.DrawCall{
		Label:     op.Node + " shadow",
		Positions: m.Positions,
		Colors:    []math3d.Vec4{ShadowColor},
		ModelView: shadow.ProjectOntoPlane(mv, ctx.Light.Position, shadow.WallOffset),
	}, nil
}
