// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms positions and normals for the untextured viewer.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader is Blinn-Phong with a single directional light.
//
//go:embed lit.frag
var LitFragmentShader string

// TexturedVertexShader is the vertex shader for textured meshes.
//
//go:embed textured.vert
var TexturedVertexShader string

// TexturedFragmentShader samples the diffuse map and applies a directional light.
//
//go:embed textured.frag
var TexturedFragmentShader string

// BackgroundVertexShader draws a full-screen quad.
//
//go:embed background.vert
var BackgroundVertexShader string

// BackgroundFragmentShader blends two colors bottom to top.
//
//go:embed background.frag
var BackgroundFragmentShader string

// LineVertexShader is the vertex shader for debug line overlays.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader draws lines in a flat color.
//
//go:embed line.frag
var LineFragmentShader string
