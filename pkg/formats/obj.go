// Package formats provides parsers for Wavefront OBJ meshes and MTL material
// libraries, plus an OBJ writer.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// OBJ format errors.
var (
	ErrIndexOutOfRange = errors.New("obj index out of range")
	ErrZeroIndex       = errors.New("obj index 0 is invalid")
	ErrMalformedOBJ    = errors.New("malformed obj statement")
)

// NoIndex marks an absent texture coordinate or normal reference.
const NoIndex = -1

// OBJCorner references one face vertex. Indices are zero-based and already
// resolved from negative (relative) form. They are not range-checked until
// they are looked up.
type OBJCorner struct {
	Position int
	TexCoord int // NoIndex if absent
	Normal   int // NoIndex if absent
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners  []OBJCorner
	Material string
	Smooth   bool
	Line     int // source line, for diagnostics
}

// OBJObject groups faces under an "o" or "g" name.
type OBJObject struct {
	Name  string
	Faces []OBJFace
}

// OBJ is a decoded Wavefront OBJ file.
type OBJ struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2

	Objects      []OBJObject
	MaterialLibs []string // mtllib names as written in the file
	Dir          string   // directory of the source file, for mtllib and map_Kd

	Warnings []string
}

// OBJTriangle is one triangle produced by fan triangulation.
type OBJTriangle struct {
	Corners  [3]OBJCorner
	Material string
	Object   int
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}, warned: make(map[string]bool)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	obj.Dir = filepath.Dir(path)
	return obj, nil
}

type objParser struct {
	obj      *OBJ
	line     int
	material string
	smooth   bool
	warned   map[string]bool
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, v)
	case "vn":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, v)
	case "vt":
		v, err := parseVec2(fields[1:])
		if err != nil {
			return err
		}
		p.obj.TexCoords = append(p.obj.TexCoords, v)
	case "f":
		return p.parseFace(fields[1:])
	case "o", "g":
		p.obj.Objects = append(p.obj.Objects, OBJObject{Name: strings.Join(fields[1:], " ")})
	case "usemtl":
		if len(fields) < 2 {
			p.warn("usemtl without a name")
			return nil
		}
		p.material = fields[1]
	case "mtllib":
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, fields[1:]...)
	case "s":
		p.smooth = len(fields) > 1 && fields[1] != "off" && fields[1] != "0"
	default:
		if !p.warned[fields[0]] {
			p.warned[fields[0]] = true
			p.warn(fmt.Sprintf("unsupported statement %q ignored", fields[0]))
		}
	}
	return nil
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		p.warn(fmt.Sprintf("face with %d corners skipped", len(fields)))
		return nil
	}

	face := OBJFace{
		Corners:  make([]OBJCorner, len(fields)),
		Material: p.material,
		Smooth:   p.smooth,
		Line:     p.line,
	}
	for i, f := range fields {
		c, err := p.parseCorner(f)
		if err != nil {
			return fmt.Errorf("face corner %q: %w", f, err)
		}
		face.Corners[i] = c
	}

	if len(p.obj.Objects) == 0 {
		p.obj.Objects = append(p.obj.Objects, OBJObject{Name: "default"})
	}
	obj := &p.obj.Objects[len(p.obj.Objects)-1]
	obj.Faces = append(obj.Faces, face)
	return nil
}

// parseCorner handles v, v/t, v//n and v/t/n.
func (p *objParser) parseCorner(s string) (OBJCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJCorner{}, ErrMalformedOBJ
	}

	c := OBJCorner{TexCoord: NoIndex, Normal: NoIndex}
	var err error
	if c.Position, err = resolveIndex(parts[0], len(p.obj.Positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.TexCoord, err = resolveIndex(parts[1], len(p.obj.TexCoords)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = resolveIndex(parts[2], len(p.obj.Normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedOBJ, s)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return count + n, nil
	default:
		return 0, ErrZeroIndex
	}
}

func (p *objParser) warn(msg string) {
	p.obj.Warnings = append(p.obj.Warnings, fmt.Sprintf("line %d: %s", p.line, msg))
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrMalformedOBJ, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		// A lone u is legal; v defaults to 0.
		if len(fields) == 1 {
			f, err = parseFloats(fields, 1)
			if err != nil {
				return math.Vec2{}, err
			}
			return math.Vec2{X: f[0]}, nil
		}
		return math.Vec2{}, err
	}
	return math.Vec2{X: f[0], Y: f[1]}, nil
}

// Position returns position i or ErrIndexOutOfRange.
func (o *OBJ) Position(i int) (math.Vec3, error) {
	if i < 0 || i >= len(o.Positions) {
		return math.Vec3{}, fmt.Errorf("position %d of %d: %w", i, len(o.Positions), ErrIndexOutOfRange)
	}
	return o.Positions[i], nil
}

// Normal returns normal i or ErrIndexOutOfRange.
func (o *OBJ) Normal(i int) (math.Vec3, error) {
	if i < 0 || i >= len(o.Normals) {
		return math.Vec3{}, fmt.Errorf("normal %d of %d: %w", i, len(o.Normals), ErrIndexOutOfRange)
	}
	return o.Normals[i], nil
}

// TexCoord returns texture coordinate i or ErrIndexOutOfRange.
func (o *OBJ) TexCoord(i int) (math.Vec2, error) {
	if i < 0 || i >= len(o.TexCoords) {
		return math.Vec2{}, fmt.Errorf("texcoord %d of %d: %w", i, len(o.TexCoords), ErrIndexOutOfRange)
	}
	return o.TexCoords[i], nil
}

// Validate checks every face reference against the attribute arrays.
func (o *OBJ) Validate() error {
	for _, obj := range o.Objects {
		for _, f := range obj.Faces {
			for _, c := range f.Corners {
				if _, err := o.Position(c.Position); err != nil {
					return fmt.Errorf("line %d: %w", f.Line, err)
				}
				if c.TexCoord != NoIndex {
					if _, err := o.TexCoord(c.TexCoord); err != nil {
						return fmt.Errorf("line %d: %w", f.Line, err)
					}
				}
				if c.Normal != NoIndex {
					if _, err := o.Normal(c.Normal); err != nil {
						return fmt.Errorf("line %d: %w", f.Line, err)
					}
				}
			}
		}
	}
	return nil
}

// Triangles fan-triangulates every face: corners (0, k, k+1).
func (o *OBJ) Triangles() []OBJTriangle {
	var tris []OBJTriangle
	for oi, obj := range o.Objects {
		for _, f := range obj.Faces {
			for k := 1; k+1 < len(f.Corners); k++ {
				tris = append(tris, OBJTriangle{
					Corners:  [3]OBJCorner{f.Corners[0], f.Corners[k], f.Corners[k+1]},
					Material: f.Material,
					Object:   oi,
				})
			}
		}
	}
	return tris
}

// FaceCount returns the number of faces across all objects.
func (o *OBJ) FaceCount() int {
	n := 0
	for _, obj := range o.Objects {
		n += len(obj.Faces)
	}
	return n
}

// HasNormals reports whether any face corner references a normal.
func (o *OBJ) HasNormals() bool {
	for _, obj := range o.Objects {
		for _, f := range obj.Faces {
			for _, c := range f.Corners {
				if c.Normal != NoIndex {
					return true
				}
			}
		}
	}
	return false
}

// MaterialNames returns the distinct usemtl names in first-use order. Faces
// without a material contribute the empty string.
func (o *OBJ) MaterialNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, obj := range o.Objects {
		for _, f := range obj.Faces {
			if !seen[f.Material] {
				seen[f.Material] = true
				names = append(names, f.Material)
			}
		}
	}
	return names
}

// LoadMaterials parses every referenced mtllib relative to Dir and merges
// the results. Missing libraries are recorded as warnings, not errors.
func (o *OBJ) LoadMaterials() (*MTL, error) {
	merged := &MTL{Materials: make(map[string]*Material)}
	for _, lib := range o.MaterialLibs {
		path := lib
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.Dir, lib)
		}
		if _, err := os.Stat(path); err != nil {
			merged.Warnings = append(merged.Warnings, fmt.Sprintf("material library %s not found", lib))
			continue
		}
		mtl, err := ParseMTLFile(path)
		if err != nil {
			return nil, err
		}
		merged.merge(mtl)
	}
	return merged, nil
}
