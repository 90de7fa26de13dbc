// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GroundVertexShader is the vertex shader for the lit ground plane.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader shades the ground with one projective-texture spot light.
//
//go:embed ground.frag
var GroundFragmentShader string
