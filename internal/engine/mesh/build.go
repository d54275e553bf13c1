// Package mesh turns a decoded OBJ into an interleaved, material-grouped
// vertex stream and uploads it to the GPU.
package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

// Vertex is the interleaved layout: position, normal, texcoord.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Stride is the size of Vertex in bytes.
const Stride = 32

// NormalMode selects how missing normals are generated.
type NormalMode int

const (
	// NormalsPerSlot gives every triangle corner its own face normal.
	NormalsPerSlot NormalMode = iota
	// NormalsIndexed averages face normals over shared OBJ positions and
	// ignores any normals in the file.
	NormalsIndexed
)

// Options controls Build.
type Options struct {
	// Normalize fits the mesh into a unit cube centered at the origin.
	Normalize bool
	// Presence overrides normal detection in NormalsPerSlot mode.
	Presence geometry.NormalPresence
	Mode     NormalMode
}

// Group is a contiguous vertex range sharing one material.
type Group struct {
	Material string
	First    int32
	Count    int32
}

// Data is a CPU-side mesh ready for upload.
type Data struct {
	Vertices []Vertex
	Groups   []Group
	// Bounds after any normalization.
	Bounds geometry.Bounds
	Fit    geometry.Fit
	// Presence is the resolved normal source: Supplied when file normals
	// were used, Absent when they were generated.
	Presence geometry.NormalPresence
}

// TriangleCount returns the number of triangles.
func (d *Data) TriangleCount() int {
	return len(d.Vertices) / 3
}

// Positions returns a copy of every vertex position.
func (d *Data) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		out[i] = math.FromArray(v.Position)
	}
	return out
}

// corner is one resolved triangle corner before interleaving.
type corner struct {
	posIndex uint32
	pos      math.Vec3
	normal   math.Vec3
	uv       math.Vec2
}

// Build fan-triangulates obj, groups triangles by material in first-use
// order and produces the interleaved vertex stream. Out-of-range OBJ
// references are errors.
func Build(obj *formats.OBJ, opts Options) (*Data, error) {
	corners, groups, err := gather(obj)
	if err != nil {
		return nil, err
	}

	positions := make([]math.Vec3, len(corners))
	normals := make([]math.Vec3, len(corners))
	for i, c := range corners {
		positions[i] = c.pos
		normals[i] = c.normal
	}

	fit := geometry.Fit{Bounds: geometry.ComputeBounds(positions)}
	if opts.Normalize {
		fit = geometry.NormalizeCenter(positions)
	}

	var presence geometry.NormalPresence
	switch opts.Mode {
	case NormalsIndexed:
		normals, err = indexedNormals(obj.Positions, corners)
		if err != nil {
			return nil, err
		}
		presence = geometry.NormalsAbsent
	default:
		presence = opts.Presence
		if presence == geometry.NormalsUnknown {
			presence = geometry.DetectNormals(normals)
		}
		normals = geometry.SynthesizeNormals(positions, normals, presence)
	}

	d := &Data{
		Vertices: make([]Vertex, len(corners)),
		Groups:   groups,
		Bounds:   geometry.ComputeBounds(positions),
		Fit:      fit,
		Presence: presence,
	}
	for i, c := range corners {
		d.Vertices[i] = Vertex{
			Position: positions[i].Array(),
			Normal:   normals[i].Array(),
			TexCoord: [2]float32{c.uv.X, c.uv.Y},
		}
	}
	return d, nil
}

// Load parses an OBJ file and builds it.
func Load(path string, opts Options) (*formats.OBJ, *Data, error) {
	defer logger.Timed("load mesh", zap.String("path", path))()

	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range obj.Warnings {
		logger.Warn("obj", zap.String("path", path), zap.String("warning", w))
	}
	d, err := Build(obj, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", path, err)
	}
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", d.TriangleCount()),
		zap.Int("materials", len(d.Groups)),
		zap.Stringer("normals", d.Presence),
		zap.Bool("normalized", d.Fit.Applied))
	return obj, d, nil
}

func gather(obj *formats.OBJ) ([]corner, []Group, error) {
	tris := obj.Triangles()

	order := obj.MaterialNames()
	byMaterial := make(map[string][]formats.OBJTriangle, len(order))
	for _, t := range tris {
		byMaterial[t.Material] = append(byMaterial[t.Material], t)
	}

	corners := make([]corner, 0, len(tris)*3)
	var groups []Group
	for _, name := range order {
		list := byMaterial[name]
		if len(list) == 0 {
			continue
		}
		g := Group{Material: name, First: int32(len(corners))}
		for _, t := range list {
			for _, oc := range t.Corners {
				c, err := resolve(obj, oc)
				if err != nil {
					return nil, nil, err
				}
				corners = append(corners, c)
			}
		}
		g.Count = int32(len(corners)) - g.First
		groups = append(groups, g)
	}
	return corners, groups, nil
}

func resolve(obj *formats.OBJ, oc formats.OBJCorner) (corner, error) {
	p, err := obj.Position(oc.Position)
	if err != nil {
		return corner{}, err
	}
	c := corner{posIndex: uint32(oc.Position), pos: p}
	if oc.TexCoord != formats.NoIndex {
		if c.uv, err = obj.TexCoord(oc.TexCoord); err != nil {
			return corner{}, err
		}
	}
	if oc.Normal != formats.NoIndex {
		if c.normal, err = obj.Normal(oc.Normal); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// indexedNormals smooths over shared OBJ positions. The result is invariant
// under the uniform scale of NormalizeCenter, so raw positions are used.
func indexedNormals(vertices []math.Vec3, corners []corner) ([]math.Vec3, error) {
	indices := make([]uint32, len(corners))
	for i, c := range corners {
		indices[i] = c.posIndex
	}
	perVertex, err := geometry.SynthesizeIndexedNormals(vertices, indices)
	if err != nil {
		return nil, err
	}
	out := make([]math.Vec3, len(corners))
	for i, idx := range indices {
		out[i] = perVertex[idx]
	}
	return out, nil
}
