package app

import (
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/pkg/formats"
)

// binding is what a material group needs at draw time.
type binding struct {
	Texture string // resolved image path, empty for the fallback
	Tint    [3]float32
}

var white = [3]float32{1, 1, 1}

// bindMaterials resolves the texture and tint of every group. Materials with
// a diffuse map draw it untinted; the rest use defaultTexture (if any)
// tinted by Kd. Relative paths resolve against dir.
func bindMaterials(groups []mesh.Group, mtl *formats.MTL, dir, defaultTexture string) map[string]binding {
	out := make(map[string]binding, len(groups))
	for _, g := range groups {
		mat, _ := mtl.Lookup(g.Material)
		if mat.DiffuseMap != "" {
			out[g.Material] = binding{Texture: resolvePath(dir, mat.DiffuseMap), Tint: white}
			continue
		}
		out[g.Material] = binding{Texture: resolvePath(dir, defaultTexture), Tint: mat.Diffuse}
	}
	return out
}

// resolvePath joins a path written in a material file onto dir. Windows
// separators are normalized.
func resolvePath(dir, p string) string {
	if p == "" {
		return ""
	}
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
