package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/taigrr/mobile/pkg/math3d"
)

func quadTexture() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, RGB(255, 0, 0))
	tex.SetPixel(1, 0, RGB(0, 255, 0))
	tex.SetPixel(0, 1, RGB(0, 0, 255))
	tex.SetPixel(1, 1, RGB(255, 255, 255))
	return tex
}

func TestTextureSampleNearest(t *testing.T) {
	tex := quadTexture()

	tests := []struct {
		name string
		u, v float64
		wrap WrapMode
		want Color
	}{
		{"top left", 0.25, 0.75, WrapRepeat, RGB(255, 0, 0)},
		{"bottom right", 0.75, 0.25, WrapRepeat, RGB(255, 255, 255)},
		{"v zero is bottom row", 0.25, 0, WrapRepeat, RGB(0, 0, 255)},
		{"repeat wraps", 1.25, 0.75, WrapRepeat, RGB(255, 0, 0)},
		{"clamp holds edge", 1.25, 0.75, WrapClamp, RGB(0, 255, 0)},
		{"clamp negative", -3, -3, WrapClamp, RGB(0, 0, 255)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex.WrapU, tex.WrapV = tt.wrap, tt.wrap
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTextureSampleBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(0, 0, 0))
	tex.SetPixel(1, 0, RGB(255, 255, 255))
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp
	tex.FilterMode = FilterBilinear

	got := tex.Sample(0.5, 0.5)
	if got.R != 127 || got.G != 127 || got.B != 127 {
		t.Errorf("midpoint = %v, want mid grey", got)
	}
	if got := tex.Sample(0, 0.5); got != RGB(0, 0, 0) {
		t.Errorf("left edge = %v, want black", got)
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.Set(10, 10, color.RGBA{1, 2, 3, 255})
	img.Set(12, 11, color.RGBA{4, 5, 6, 255})

	tex := TextureFromImage(img)
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(0, 0); got != (Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("(0,0) = %v", got)
	}
	if got := tex.GetPixel(2, 1); got != (Color{R: 4, G: 5, B: 6, A: 255}) {
		t.Errorf("(2,1) = %v", got)
	}
	if got := tex.GetPixel(5, 5); got != (Color{}) {
		t.Errorf("out of range = %v, want zero", got)
	}
}

func TestModulateColor(t *testing.T) {
	got := ModulateColor(RGB(255, 128, 0), RGB(255, 255, 255))
	if got != RGB(255, 128, 0) {
		t.Errorf("white modulation = %v", got)
	}
	if got := ModulateColor(RGB(200, 200, 200), Color{}); got != (Color{}) {
		t.Errorf("black modulation = %v", got)
	}
}

func TestProceduralTexturesAreDeterministic(t *testing.T) {
	a, b := NewGrassTexture(16), NewGrassTexture(16)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("grass pixel %d differs", i)
		}
	}
	stone := NewStoneTexture(16)
	if got := stone.GetPixel(3, 0); got != RGB(70, 70, 70) {
		t.Errorf("stone row 0 = %v, want mortar", got)
	}
}

func TestNewCubeMap(t *testing.T) {
	var faces [6]*Texture
	for i := range faces {
		faces[i] = NewTexture(1, 1)
	}
	cm, err := NewCubeMap(faces)
	if err != nil {
		t.Fatalf("NewCubeMap: %v", err)
	}
	for i, f := range cm.Faces {
		if f.WrapU != WrapClamp || f.FilterMode != FilterBilinear {
			t.Errorf("face %d not clamped and filtered", i)
		}
	}

	faces[3] = nil
	if _, err := NewCubeMap(faces); err == nil {
		t.Error("expected error for missing face")
	}
}

func TestSkyCubeMap(t *testing.T) {
	cm := NewSkyCubeMap(8)
	up := cm.Sample(math3d.V3(0, 1, 0))
	down := cm.Sample(math3d.V3(0, -1, 0))
	if up == down {
		t.Errorf("sky and ground sample the same color %v", up)
	}
}
