package app

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/shaders"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// texturedModel is a multi-material mesh with its textures and program.
type texturedModel struct {
	data     *mesh.Data
	mesh     *mesh.Mesh
	bindings map[string]binding
	textures *texture.Cache
	program  *shader.Program
	ambient  float32
}

type texturedOptions struct {
	Mesh           mesh.Options
	FlipTextures   bool
	DefaultTexture string
}

func loadTexturedModel(path string, opts texturedOptions) (*texturedModel, error) {
	obj, data, err := mesh.Load(path, opts.Mesh)
	if err != nil {
		return nil, err
	}
	mtl, err := obj.LoadMaterials()
	if err != nil {
		return nil, fmt.Errorf("materials for %s: %w", path, err)
	}
	for _, w := range mtl.Warnings {
		logger.Warn("mtl", zap.String("path", path), zap.String("warning", w))
	}

	m := &texturedModel{
		data:     data,
		bindings: bindMaterials(data.Groups, mtl, obj.Dir, opts.DefaultTexture),
		textures: texture.NewCache(texture.GLUploader{Anisotropy: 8}, texture.CacheOptions{
			FlipY:   opts.FlipTextures,
			MaxSize: texture.MaxTextureSize(),
		}),
		ambient: 0.3,
	}

	m.program, err = shader.New("textured", shaders.TexturedVertexShader, shaders.TexturedFragmentShader)
	if err != nil {
		return nil, err
	}
	m.mesh, err = mesh.Upload(data)
	if err != nil {
		m.program.Delete()
		return nil, err
	}

	// Decode everything up front so the first frames do not stall.
	for _, b := range m.bindings {
		m.textures.Get(b.Texture)
	}
	logger.Info("textures ready",
		zap.String("model", path),
		zap.Int("materials", len(m.bindings)),
		zap.Int("loaded", m.textures.Len()))
	return m, nil
}

// draw renders every material group with the light coming from toLight.
func (m *texturedModel) draw(model, view, proj math.Mat4, toLight math.Vec3) {
	m.program.Use()
	m.program.SetMat4("uModel", model)
	m.program.SetMat4("uView", view)
	m.program.SetMat4("uProj", proj)
	m.program.SetVec3("uLightDir", toLight)
	m.program.SetFloat("uAmbient", m.ambient)
	m.program.SetInt("uDiffuseMap", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	m.mesh.DrawGroups(func(g mesh.Group) {
		b := m.bindings[g.Material]
		gl.BindTexture(gl.TEXTURE_2D, m.textures.Get(b.Texture))
		m.program.SetColor("uTint", b.Tint)
	})
}

func (m *texturedModel) close() {
	m.mesh.Delete()
	m.textures.Release()
	m.program.Delete()
}
