package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/meshview/internal/geometry"
	"github.com/Faultbox/meshview/pkg/formats"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool info <file.obj>")
	}

	o, err := formats.ParseOBJFile(args[0])
	if err != nil {
		return err
	}
	mtl, err := o.LoadMaterials()
	if err != nil {
		return err
	}
	return writeInfo(os.Stdout, args[0], o, mtl)
}

// normalPresence classifies the file's normals the way the viewer's "auto"
// policy does.
func normalPresence(o *formats.OBJ) geometry.NormalPresence {
	if !o.HasNormals() {
		return geometry.NormalsAbsent
	}
	return geometry.DetectNormals(o.Normals)
}

func writeInfo(w io.Writer, path string, o *formats.OBJ, mtl *formats.MTL) error {
	b := geometry.ComputeBounds(o.Positions)

	fmt.Fprintf(w, "File:       %s\n", path)
	fmt.Fprintf(w, "Positions:  %d\n", len(o.Positions))
	fmt.Fprintf(w, "Normals:    %d (%s)\n", len(o.Normals), normalPresence(o))
	fmt.Fprintf(w, "TexCoords:  %d\n", len(o.TexCoords))
	fmt.Fprintf(w, "Objects:    %d\n", len(o.Objects))
	fmt.Fprintf(w, "Faces:      %d\n", o.FaceCount())
	fmt.Fprintf(w, "Triangles:  %d\n", len(o.Triangles()))
	if b.Valid() {
		fmt.Fprintf(w, "Bounds:     (%g, %g, %g) - (%g, %g, %g)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Fprintf(w, "Max dim:    %g\n", b.MaxDim())
	}

	names := o.MaterialNames()
	if len(names) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Materials:")
		for _, name := range names {
			mat, found := mtl.Lookup(name)
			switch {
			case name == "":
				fmt.Fprintln(w, "  (none)")
			case !found:
				fmt.Fprintf(w, "  %-20s missing\n", name)
			case mat.DiffuseMap != "":
				fmt.Fprintf(w, "  %-20s map_Kd %s\n", name, mat.DiffuseMap)
			default:
				fmt.Fprintf(w, "  %-20s Kd %.3g %.3g %.3g\n", name, mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2])
			}
		}
	}

	warnings := append(append([]string(nil), o.Warnings...), mtl.Warnings...)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return o.Validate()
}
