package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteOBJ encodes o as OBJ text. Indices are written 1-based and absolute.
// Objects without faces are skipped.
func WriteOBJ(w io.Writer, o *OBJ) error {
	bw := bufio.NewWriter(w)

	for _, lib := range o.MaterialLibs {
		fmt.Fprintf(bw, "mtllib %s\n", lib)
	}
	for _, v := range o.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, t := range o.TexCoords {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(t.X), ftoa(t.Y))
	}
	for _, n := range o.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
	}

	material := ""
	smooth := false
	for _, obj := range o.Objects {
		if len(obj.Faces) == 0 {
			continue
		}
		fmt.Fprintf(bw, "o %s\n", obj.Name)
		for _, f := range obj.Faces {
			if f.Material != material {
				material = f.Material
				fmt.Fprintf(bw, "usemtl %s\n", material)
			}
			if f.Smooth != smooth {
				smooth = f.Smooth
				if smooth {
					bw.WriteString("s 1\n")
				} else {
					bw.WriteString("s off\n")
				}
			}
			bw.WriteString("f")
			for _, c := range f.Corners {
				bw.WriteByte(' ')
				bw.WriteString(cornerString(c))
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// WriteOBJFile writes o to path.
func WriteOBJFile(path string, o *OBJ) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := WriteOBJ(f, o); err != nil {
		f.Close()
		return fmt.Errorf("writing obj: %w", err)
	}
	return f.Close()
}

func cornerString(c OBJCorner) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(c.Position + 1))
	switch {
	case c.TexCoord != NoIndex && c.Normal != NoIndex:
		fmt.Fprintf(&sb, "/%d/%d", c.TexCoord+1, c.Normal+1)
	case c.TexCoord != NoIndex:
		fmt.Fprintf(&sb, "/%d", c.TexCoord+1)
	case c.Normal != NoIndex:
		fmt.Fprintf(&sb, "//%d", c.Normal+1)
	}
	return sb.String()
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
