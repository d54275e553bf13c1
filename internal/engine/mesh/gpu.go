package mesh

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2
)

// Mesh is an uploaded vertex stream.
type Mesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
	groups      []Group
}

// Upload copies d into a new VAO/VBO pair.
func Upload(d *Data) (*Mesh, error) {
	if len(d.Vertices) == 0 {
		return nil, errors.New("mesh has no vertices")
	}

	m := &Mesh{
		vertexCount: int32(len(d.Vertices)),
		groups:      append([]Group(nil), d.Groups...),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.Vertices)*Stride, unsafe.Pointer(&d.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(AttribPosition, 3, gl.FLOAT, false, Stride, 0)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribNormal, 3, gl.FLOAT, false, Stride, 3*4)
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointerWithOffset(AttribTexCoord, 2, gl.FLOAT, false, Stride, 6*4)
	gl.EnableVertexAttribArray(AttribTexCoord)

	gl.BindVertexArray(0)
	return m, nil
}

// Groups returns the material ranges.
func (m *Mesh) Groups() []Group {
	return m.groups
}

// Draw issues one draw call for the whole mesh.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// DrawGroups issues one draw call per material group, calling bind first so
// the caller can set that group's texture and uniforms.
func (m *Mesh) DrawGroups(bind func(g Group)) {
	gl.BindVertexArray(m.vao)
	for _, g := range m.groups {
		if g.Count == 0 {
			continue
		}
		bind(g)
		gl.DrawArrays(gl.TRIANGLES, g.First, g.Count)
	}
	gl.BindVertexArray(0)
}

// Delete frees the GPU buffers.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
