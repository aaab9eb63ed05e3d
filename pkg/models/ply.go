package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/mobile/pkg/math3d"
)

// ErrMalformedPLY is returned when an ASCII PLY file cannot be parsed.
var ErrMalformedPLY = errors.New("models: malformed ply")

// plyScaleDivisor shrinks imported positions to the scene's sphere size.
const plyScaleDivisor = 4

// plyPrealloc bounds how much of a header's element count is reserved up
// front. Counts are untrusted, so larger meshes grow by append.
const plyPrealloc = 1 << 16

// LoadPLY reads an ASCII PLY file from disk.
func LoadPLY(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ply: %w", err)
	}
	defer f.Close()

	mesh, err := ParsePLY(f)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParsePLY parses an ASCII PLY stream into a triangle list. Faces with more
// than three vertices are fan-triangulated and every position is divided
// by four.
func ParsePLY(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}
	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrMalformedPLY, lineNo, fmt.Sprintf(format, args...))
	}

	line, ok := next()
	if !ok || line != "ply" {
		return nil, malformed("missing ply magic")
	}

	numVertices, numFaces := -1, -1
	for {
		line, ok = next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read ply: %w", err)
			}
			return nil, malformed("missing end_header")
		}
		if line == "end_header" {
			break
		}

		fields := strings.Fields(line)
		if fields[0] != "element" {
			continue
		}
		if len(fields) < 3 {
			return nil, malformed("incomplete element %q", line)
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 0 {
			return nil, malformed("bad element count %q", fields[2])
		}
		switch fields[1] {
		case "vertex":
			numVertices = n
		case "face":
			numFaces = n
		}
	}
	if numVertices < 0 {
		return nil, malformed("header has no vertex element")
	}
	if numFaces < 0 {
		return nil, malformed("header has no face element")
	}

	vertices := make([]math3d.Vec3, 0, min(numVertices, plyPrealloc))
	for range numVertices {
		line, ok = next()
		if !ok {
			return nil, malformed("expected %d vertices, got %d", numVertices, len(vertices))
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, malformed("vertex needs 3 coordinates")
		}
		var xyz [3]float64
		for i := range xyz {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, malformed("bad coordinate %q", fields[i])
			}
			xyz[i] = v / plyScaleDivisor
		}
		vertices = append(vertices, math3d.V3(xyz[0], xyz[1], xyz[2]))
	}

	positions := make([]math3d.Vec3, 0, 3*min(numFaces, plyPrealloc))
	for f := range numFaces {
		line, ok = next()
		if !ok {
			return nil, malformed("expected %d faces, got %d", numFaces, f)
		}
		fields := strings.Fields(line)
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, malformed("bad face vertex count %q", fields[0])
		}
		if count < 3 {
			return nil, malformed("face has %d vertices", count)
		}
		if len(fields)-1 < count {
			return nil, malformed("face declares %d vertices, lists %d", count, len(fields)-1)
		}

		poly := make([]math3d.Vec3, count)
		for i := range count {
			idx, err := strconv.Atoi(fields[i+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, malformed("bad vertex index %q", fields[i+1])
			}
			poly[i] = vertices[idx]
		}
		for i := 1; i+1 < count; i++ {
			positions = append(positions, poly[0], poly[i], poly[i+1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ply: %w", err)
	}
	if len(positions) == 0 {
		return nil, malformed("no faces")
	}

	return NewMesh("ply", positions), nil
}
