package debug

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/shaders"
	"github.com/Faultbox/meshview/pkg/math"
)

// Lines draws flat-colored GL_LINES overlays. Set replaces the geometry.
type Lines struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	count   int32
	Color   [3]float32
}

// NewLines creates an empty overlay.
func NewLines(color [3]float32) (*Lines, error) {
	prog, err := shader.New("line", shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, err
	}
	l := &Lines{program: prog, Color: color}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return l, nil
}

// Set uploads line vertices (x, y, z per vertex, pairs per segment).
func (l *Lines) Set(vertices []float32) {
	l.count = int32(len(vertices) / 3)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	if l.count == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
}

// Draw renders the lines.
func (l *Lines) Draw(viewProj math.Mat4) {
	if l.count == 0 {
		return
	}
	l.program.Use()
	l.program.SetMat4("uViewProj", viewProj)
	l.program.SetColor("uColor", l.Color)
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.count)
	gl.BindVertexArray(0)
}

// Delete frees GPU resources.
func (l *Lines) Delete() {
	gl.DeleteBuffers(1, &l.vbo)
	gl.DeleteVertexArrays(1, &l.vao)
	l.program.Delete()
}
