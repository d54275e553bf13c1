package main

import (
	"fmt"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/pkg/formats"
)

// materialRow is one line of the materials table.
type materialRow struct {
	Name      string
	Triangles int
	Texture   string
	Found     bool
}

// Summary is the information panel content for a loaded mesh.
type Summary struct {
	Path      string
	Positions int
	Normals   int
	TexCoords int
	Faces     int
	Triangles int
	Vertices  int
	Bounds    string
	Fit       string
	Presence  string
	Materials []materialRow
	Warnings  []string
}

// summarize collects panel figures from the decoded file and the built mesh.
func summarize(path string, o *formats.OBJ, mtl *formats.MTL, d *mesh.Data) Summary {
	s := Summary{
		Path:      path,
		Positions: len(o.Positions),
		Normals:   len(o.Normals),
		TexCoords: len(o.TexCoords),
		Faces:     o.FaceCount(),
		Triangles: d.TriangleCount(),
		Vertices:  len(d.Vertices),
		Presence:  d.Presence.String(),
		Warnings:  append([]string(nil), o.Warnings...),
	}
	if mtl != nil {
		s.Warnings = append(s.Warnings, mtl.Warnings...)
	}

	b := d.Fit.Bounds
	if b.Valid() {
		s.Bounds = fmt.Sprintf("(%.3g, %.3g, %.3g) - (%.3g, %.3g, %.3g)",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	if d.Fit.Applied {
		s.Fit = fmt.Sprintf("center (%.3g, %.3g, %.3g) scale %.4g",
			d.Fit.Center.X, d.Fit.Center.Y, d.Fit.Center.Z, d.Fit.Scale)
	} else {
		s.Fit = "none"
	}

	for _, g := range d.Groups {
		mat, found := mtl.Lookup(g.Material)
		name := g.Material
		if name == "" {
			name = "(none)"
		}
		s.Materials = append(s.Materials, materialRow{
			Name:      name,
			Triangles: int(g.Count / 3),
			Texture:   mat.DiffuseMap,
			Found:     found,
		})
	}
	return s
}
