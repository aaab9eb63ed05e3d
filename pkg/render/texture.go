package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"math/rand/v2"
	"os"

	"github.com/taigrr/mobile/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// wrap maps a texel index into [0, size).
func (m WrapMode) wrap(i, size int) int {
	if m == WrapClamp {
		return min(max(i, 0), size-1)
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is a row-major RGBA image sampled by UV. V runs bottom to top.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates a black, repeating, nearest-filtered texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture decodes a PNG or JPEG file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			tex.Pixels[y*tex.Width+x] = Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
		}
	}
	return tex
}

// NewGrassTexture creates a speckled green texture.
func NewGrassTexture(size int) *Texture {
	rng := rand.New(rand.NewPCG(1, 2))
	tex := NewTexture(size, size)
	for i := range tex.Pixels {
		g := 90 + rng.IntN(110)
		tex.Pixels[i] = RGB(uint8(g/4), uint8(g), uint8(g/5))
	}
	return tex
}

// NewStoneTexture creates a running-bond brick pattern with grey mortar.
func NewStoneTexture(size int) *Texture {
	rng := rand.New(rand.NewPCG(3, 4))
	tex := NewTexture(size, size)
	brickH := max(size/4, 2)
	brickW := max(size/2, 2)
	mortar := RGB(70, 70, 70)
	for y := range size {
		offset := 0
		if (y/brickH)%2 == 1 {
			offset = brickW / 2
		}
		for x := range size {
			if y%brickH == 0 || (x+offset)%brickW == 0 {
				tex.SetPixel(x, y, mortar)
				continue
			}
			v := 140 + rng.IntN(50)
			tex.SetPixel(x, y, RGB(uint8(v), uint8(v-10), uint8(v-25)))
		}
	}
	return tex
}

// SetPixel sets a pixel; out-of-range writes are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y), or transparent black outside.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the color at (u, v). Row 0 of the image is v = 1.
func (t *Texture) Sample(u, v float64) Color {
	fx := u * float64(t.Width)
	fy := (1 - v) * float64(t.Height)

	if t.FilterMode != FilterBilinear {
		// Rows cover (k, k+1] so v = 0 lands on the bottom row.
		return t.texel(int(math.Floor(fx)), int(math.Ceil(fy))-1)
	}

	fx -= 0.5
	fy -= 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	top := lerpColor(t.texel(ix, iy), t.texel(ix+1, iy), tx)
	bot := lerpColor(t.texel(ix, iy+1), t.texel(ix+1, iy+1), tx)
	return lerpColor(top, bot, ty)
}

// texel fetches a pixel after applying the wrap modes.
func (t *Texture) texel(x, y int) Color {
	return t.Pixels[t.WrapV.wrap(y, t.Height)*t.Width+t.WrapU.wrap(x, t.Width)]
}

func lerpColor(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// ModulateColor multiplies two colors channel by channel.
func ModulateColor(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) * int(b.R)) / 255),
		G: uint8((int(a.G) * int(b.G)) / 255),
		B: uint8((int(a.B) * int(b.B)) / 255),
		A: uint8((int(a.A) * int(b.A)) / 255),
	}
}

// ColorToVec4 converts an 8-bit color to the 0-1 range.
func ColorToVec4(c Color) math3d.Vec4 {
	return math3d.V4(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// Vec4ToColor converts a 0-1 color to 8 bits, clamping out-of-range values.
func Vec4ToColor(v math3d.Vec4) Color {
	v = v.Clamp01()
	return Color{
		R: uint8(v.X*255 + 0.5),
		G: uint8(v.Y*255 + 0.5),
		B: uint8(v.Z*255 + 0.5),
		A: uint8(v.W*255 + 0.5),
	}
}

// Cube map faces, in +X, -X, +Y, -Y, +Z, -Z order.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeMap samples an environment by direction.
type CubeMap struct {
	Faces [6]*Texture
}

// NewCubeMap creates a cube map from six faces. Faces are clamped at the
// edges and filtered bilinearly.
func NewCubeMap(faces [6]*Texture) (*CubeMap, error) {
	for i, f := range faces {
		if f == nil || f.Width == 0 || f.Height == 0 {
			return nil, fmt.Errorf("cube map face %d is empty", i)
		}
		f.WrapU, f.WrapV = WrapClamp, WrapClamp
		f.FilterMode = FilterBilinear
	}
	return &CubeMap{Faces: faces}, nil
}

// LoadCubeMap loads six face images in +X, -X, +Y, -Y, +Z, -Z order.
func LoadCubeMap(paths [6]string) (*CubeMap, error) {
	var faces [6]*Texture
	for i, p := range paths {
		tex, err := LoadTexture(p)
		if err != nil {
			return nil, fmt.Errorf("cube map face %d: %w", i, err)
		}
		faces[i] = tex
	}
	return NewCubeMap(faces)
}

// NewSkyCubeMap creates a procedural environment: a sky gradient above the
// horizon and darker ground below, with a distinct tint per side.
func NewSkyCubeMap(size int) *CubeMap {
	sky, horizon, ground := RGB(90, 150, 230), RGB(230, 230, 240), RGB(60, 70, 50)
	tints := [6]Color{
		RGB(255, 235, 235), RGB(235, 255, 235), RGB(255, 255, 255),
		RGB(255, 255, 255), RGB(235, 235, 255), RGB(255, 255, 220),
	}

	var faces [6]*Texture
	for f := range faces {
		tex := NewTexture(size, size)
		for y := range size {
			for x := range size {
				var c Color
				switch f {
				case FacePosY:
					c = sky
				case FaceNegY:
					c = ground
				default:
					t := float64(y) / float64(max(size-1, 1))
					if t < 0.5 {
						c = lerpColor(sky, horizon, t*2)
					} else {
						c = lerpColor(horizon, ground, (t-0.5)*2)
					}
				}
				tex.SetPixel(x, y, ModulateColor(c, tints[f]))
			}
		}
		faces[f] = tex
	}
	cm, _ := NewCubeMap(faces)
	return cm
}

// Sample returns the environment color in direction dir. A zero direction
// samples +Z.
func (cm *CubeMap) Sample(dir math3d.Vec3) Color {
	face, u, v := cubeFace(dir)
	return cm.Faces[face].Sample(u, v)
}

// cubeFace selects the face hit by dir and the face-local texture
// coordinates in [0,1], following the usual cube map orientation.
func cubeFace(dir math3d.Vec3) (face int, u, v float64) {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az && ax > 0:
		ma = ax
		if dir.X > 0 {
			face, sc, tc = FacePosX, -dir.Z, -dir.Y
		} else {
			face, sc, tc = FaceNegX, dir.Z, -dir.Y
		}
	case ay >= az && ay > 0:
		ma = ay
		if dir.Y > 0 {
			face, sc, tc = FacePosY, dir.X, dir.Z
		} else {
			face, sc, tc = FaceNegY, dir.X, -dir.Z
		}
	case az > 0:
		ma = az
		if dir.Z > 0 {
			face, sc, tc = FacePosZ, dir.X, -dir.Y
		} else {
			face, sc, tc = FaceNegZ, -dir.X, -dir.Y
		}
	default:
		return FacePosZ, 0.5, 0.5
	}
	u = (sc/ma + 1) / 2
	// Sample flips v so image row 0 is the top; tc grows downward.
	v = 1 - (tc/ma+1)/2
	return face, u, v
}
