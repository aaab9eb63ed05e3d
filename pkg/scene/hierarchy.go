package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
	"github.com/taigrr/mobile/pkg/render"
)

// Transform is one placement step: a translation followed by a rotation
// about Axis of Degrees + Spin*theta.
type Transform struct {
	Translate math3d.Vec3
	Axis      models.Axis
	Degrees   float64
	Spin      float64
}

// Move is a pure translation.
func Move(x, y, z float64) Transform {
	return Transform{Translate: math3d.V3(x, y, z)}
}

// Turn is a fixed rotation in degrees.
func Turn(axis models.Axis, degrees float64) Transform {
	return Transform{Axis: axis, Degrees: degrees}
}

// Spin is a rotation of factor*theta degrees.
func Spin(axis models.Axis, factor float64) Transform {
	return Transform{Axis: axis, Spin: factor}
}

// Matrix evaluates the step at rotation clock theta.
func (t Transform) Matrix(theta float64) math3d.Mat4 {
	m := math3d.Translate(t.Translate)
	angle := t.Degrees + t.Spin*theta
	if angle == 0 {
		return m
	}
	rad := math3d.Radians(angle)
	switch t.Axis {
	case models.AxisX:
		return m.Mul(math3d.RotateX(rad))
	case models.AxisZ:
		return m.Mul(math3d.RotateZ(rad))
	default:
		return m.Mul(math3d.RotateY(rad))
	}
}

// DrawKind selects what a node draws.
type DrawKind int

const (
	DrawNone DrawKind = iota
	DrawBox
	DrawSphere
	DrawPlane
	DrawLine
)

func (k DrawKind) String() string {
	switch k {
	case DrawNone:
		return "none"
	case DrawBox:
		return "box"
	case DrawSphere:
		return "sphere"
	case DrawPlane:
		return "plane"
	case DrawLine:
		return "line"
	default:
		return fmt.Sprintf("DrawKind(%d)", int(k))
	}
}

// Draw is a node's draw request. Solids are lit with Material; planes and
// lines use Color.
type Draw struct {
	Kind        DrawKind
	Size        float64 // box edge or line length
	Width       float64 // plane
	Height      float64 // plane
	Axis        models.Axis
	Material    lighting.Material
	Color       math3d.Vec4
	TextureUnit int
}

// SceneNode is one element of the declarative hierarchy. Place is applied
// on top of the parent's matrix; children inherit the result.
type SceneNode struct {
	Name     string
	Place    []Transform
	Draw     Draw
	Shadow   bool
	Children []*SceneNode
}

// Scene colors.
var (
	WallColor   = math3d.V4(0, 0, 1, 1)
	GroundColor = math3d.V4(0.4, 0.4, 0.4, 1)
	HangerColor = math3d.V4(0.9, 0.9, 0.9, 1)
)

// Mobile dimensions.
const (
	CubeEdge      = 0.5
	HangerLength  = 0.25
	TopCrossbar   = 2.0
	InnerCrossbar = 1.0
)

// solid returns a spinning, shadow-casting object hanging below its hook.
func solid(name string, kind DrawKind, m lighting.Material, children ...*SceneNode) *SceneNode {
	return &SceneNode{
		Name:     name,
		Place:    []Transform{Move(0, -0.375, 0), Spin(models.AxisY, -2)},
		Draw:     Draw{Kind: kind, Size: CubeEdge, Material: m},
		Shadow:   true,
		Children: children,
	}
}

func line(name string, axis models.Axis, length float64, place Transform, children ...*SceneNode) *SceneNode {
	return &SceneNode{
		Name:     name,
		Place:    []Transform{place},
		Draw:     Draw{Kind: DrawLine, Size: length, Axis: axis, Color: HangerColor},
		Children: children,
	}
}

// hanger is the connector below an object: a short vertical line, a
// crossbar, and a hook at each end holding left and right.
func hanger(name string, crossbar float64, left, right *SceneNode) *SceneNode {
	half := crossbar / 2
	return line(name+" hanger-bottom", models.AxisY, HangerLength, Move(0, -0.375, 0),
		line(name+" hanger-crossbar", models.AxisX, crossbar, Move(0, -0.125, 0),
			line(left.Name+" hanger-top", models.AxisY, HangerLength, Move(-half, -0.125, 0), left),
			line(right.Name+" hanger-top", models.AxisY, HangerLength, Move(half, -0.125, 0), right),
		),
	)
}

// DefaultHierarchy returns the classic scene: two stone walls meeting
// behind the origin, a grass floor, and a three-level mobile.
func DefaultHierarchy() *SceneNode {
	b1 := solid("cube B1", DrawBox, lighting.BluePlastic)
	b1.Children = []*SceneNode{hanger("cube B1", InnerCrossbar,
		solid("cube C1", DrawBox, lighting.Ruby),
		solid("sphere C2", DrawSphere, lighting.MagentaRubber),
	)}

	b2 := solid("sphere B2", DrawSphere, lighting.Obsidian)
	b2.Children = []*SceneNode{hanger("sphere B2", InnerCrossbar,
		solid("cube C3", DrawBox, lighting.Gold),
		solid("cube C4", DrawBox, lighting.Turquoise),
	)}

	a1 := &SceneNode{
		Name:     "sphere A1",
		Place:    []Transform{Move(0, 1.5, 0), Spin(models.AxisY, 1)},
		Draw:     Draw{Kind: DrawSphere, Material: lighting.Emerald},
		Shadow:   true,
		Children: []*SceneNode{hanger("sphere A1", TopCrossbar, b1, b2)},
	}

	wall := func(name string, degrees float64) *SceneNode {
		return &SceneNode{
			Name:  name,
			Place: []Transform{Move(0, 0, -4), Turn(models.AxisY, degrees)},
			Draw: Draw{
				Kind: DrawPlane, Width: 20, Height: 10,
				Color: WallColor, TextureUnit: render.UnitStone,
			},
		}
	}

	ground := &SceneNode{
		Name:  "ground",
		Place: []Transform{Move(0, -1, 1), Turn(models.AxisY, 45), Turn(models.AxisX, -90)},
		Draw: Draw{
			Kind: DrawPlane, Width: 15, Height: 15,
			Color: GroundColor, TextureUnit: render.UnitGrass,
		},
	}

	return &SceneNode{
		Name:     "camera",
		Children: []*SceneNode{wall("left wall", 45), wall("right wall", -45), ground, a1},
	}
}

// ErrUnknownNode is returned when a material override names no solid in
// the hierarchy.
var ErrUnknownNode = errors.New("scene: unknown node")

// ApplyMaterials replaces the material of each named solid with a preset.
// The tree is left untouched if any name or preset is unknown.
func ApplyMaterials(root *SceneNode, overrides map[string]string) error {
	solids := make(map[string]*SceneNode)
	var walk func(n *SceneNode)
	walk = func(n *SceneNode) {
		if n == nil {
			return
		}
		if n.Draw.Kind == DrawBox || n.Draw.Kind == DrawSphere {
			solids[n.Name] = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	resolved := make(map[*SceneNode]lighting.Material, len(overrides))
	for name, preset := range overrides {
		n, ok := solids[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
		m, err := lighting.Preset(preset)
		if err != nil {
			return fmt.Errorf("material for %s: %w", name, err)
		}
		resolved[n] = m
	}
	for n, m := range resolved {
		n.Draw.Material = m
	}
	return nil
}

// OpCode is one instruction of a compiled hierarchy.
type OpCode int

const (
	OpPush OpCode = iota
	OpPlace
	OpDraw
	OpShadow
	OpPop
)

func (o OpCode) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpPlace:
		return "place"
	case OpDraw:
		return "draw"
	case OpShadow:
		return "shadow"
	case OpPop:
		return "pop"
	default:
		return fmt.Sprintf("OpCode(%d)", int(o))
	}
}

// Op is one step of a Program. Transform is set for OpPlace; Draw for
// OpDraw and OpShadow.
type Op struct {
	Code      OpCode
	Node      string
	Transform Transform
	Draw      Draw
}

// Program is a flattened hierarchy, replayed against a transform stack.
type Program []Op

// Compile flattens the tree depth-first. Every node saves the incoming
// matrix before placing itself and restores it after its subtree, so
// siblings always start from their parent's matrix.
func Compile(root *SceneNode) Program {
	var p Program
	var walk func(n *SceneNode)
	walk = func(n *SceneNode) {
		p = append(p, Op{Code: OpPush, Node: n.Name})
		for _, t := range n.Place {
			p = append(p, Op{Code: OpPlace, Node: n.Name, Transform: t})
		}
		if n.Draw.Kind != DrawNone {
			p = append(p, Op{Code: OpDraw, Node: n.Name, Draw: n.Draw})
			if n.Shadow {
				p = append(p, Op{Code: OpShadow, Node: n.Name, Draw: n.Draw})
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
		p = append(p, Op{Code: OpPop, Node: n.Name})
	}
	if root != nil {
		walk(root)
	}
	return p
}

// MaxDepth returns the deepest stack the program reaches, not counting the
// root checkpoint pushed by the composer.
func (p Program) MaxDepth() int {
	depth, deepest := 0, 0
	for _, op := range p {
		switch op.Code {
		case OpPush:
			depth++
			deepest = max(deepest, depth)
		case OpPop:
			depth--
		}
	}
	return deepest
}

// Count returns how many ops have the given code.
func (p Program) Count(code OpCode) int {
	n := 0
	for _, op := range p {
		if op.Code == code {
			n++
		}
	}
	return n
}
