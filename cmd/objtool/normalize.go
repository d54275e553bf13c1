package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/formats"
)

func cmdNormalize(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	normals := fs.String("normals", "auto", "Normal policy: auto, file or generate")
	noFit := fs.Bool("no-fit", false, "Keep positions, only fill in normals")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: objtool normalize [options] <in.obj> <out.obj>")
	}
	policy, err := config.ParseNormalPolicy(*normals)
	if err != nil {
		return err
	}

	o, err := formats.ParseOBJFile(fs.Arg(0))
	if err != nil {
		return err
	}
	fit, presence, err := normalizeOBJ(o, policy, !*noFit)
	if err != nil {
		return err
	}
	if err := formats.WriteOBJFile(fs.Arg(1), o); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", fs.Arg(1))
	if fit.Applied {
		fmt.Printf("  centered at (%g, %g, %g), scaled by %g\n", fit.Center.X, fit.Center.Y, fit.Center.Z, fit.Scale)
	}
	fmt.Printf("  normals: %s\n", presence)
	return nil
}

// normalizeOBJ fits o into the unit cube (when fit is set) and, unless the
// normals are kept, replaces them with smooth normals shared per position.
// It returns the fit and the resolved normal source.
func normalizeOBJ(o *formats.OBJ, policy geometry.NormalPresence, fit bool) (geometry.Fit, geometry.NormalPresence, error) {
	if err := o.Validate(); err != nil {
		return geometry.Fit{}, policy, err
	}

	f := geometry.Fit{Bounds: geometry.ComputeBounds(o.Positions)}
	if fit {
		f = geometry.NormalizeCenter(o.Positions)
	}

	presence := policy
	if presence == geometry.NormalsUnknown {
		presence = normalPresence(o)
	}
	if presence == geometry.NormalsSupplied {
		return f, presence, nil
	}

	tris := o.Triangles()
	indices := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		for _, c := range t.Corners {
			indices = append(indices, uint32(c.Position))
		}
	}
	normals, err := geometry.SynthesizeIndexedNormals(o.Positions, indices)
	if err != nil {
		return f, presence, err
	}

	o.Normals = normals
	for oi := range o.Objects {
		for fi := range o.Objects[oi].Faces {
			corners := o.Objects[oi].Faces[fi].Corners
			for ci := range corners {
				corners[ci].Normal = corners[ci].Position
			}
		}
	}
	return f, presence, nil
}
