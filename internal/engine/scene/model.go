// Package scene owns the GPU-resident state for the loaded model.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/AIEngineerX/wanshitong/internal/engine/shader"
	"github.com/AIEngineerX/wanshitong/pkg/formats"
	"github.com/AIEngineerX/wanshitong/pkg/math"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uBaseColor;

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    float diff = max(dot(normal, lightDir), 0.0);
    vec4 tex = texture(uTexture, vTexCoord);
    vec3 base = tex.rgb * uBaseColor;
    FragColor = vec4(base * (uAmbient + diff * uDiffuse), tex.a);
}
`

// Neutral tint used when no diffuse texture could be loaded. The
// fallback texture is plain white, so this is the visible surface color.
var untexturedTint = [3]float32{0.72, 0.72, 0.75}

// Model holds the GPU resources for one loaded mesh: shader program,
// static vertex buffer and diffuse texture. Buffers are uploaded once
// at load time and never reallocated.
type Model struct {
	program uint32

	vao         uint32
	vbo         uint32
	vertexCount int32

	texture     uint32
	ownsTexture bool
	baseColor   [3]float32

	locProjection int32
	locView       int32
	locModel      int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locBaseColor  int32
	locTexture    int32
}

// vertexStride is the interleaved layout size: position 3, normal 3,
// texcoord 2 floats.
const vertexStride = 8 * 4

// New compiles the shader program and uploads the mesh as one static
// interleaved vertex buffer. Shader failure is returned to the caller
// and must abort the viewer.
func New(mesh *formats.Mesh) (*Model, error) {
	m := &Model{
		baseColor: untexturedTint,
	}

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}
	m.program = program

	m.locProjection = shader.GetUniform(program, "uProjection")
	m.locView = shader.GetUniform(program, "uView")
	m.locModel = shader.GetUniform(program, "uModel")
	m.locLightDir = shader.GetUniform(program, "uLightDir")
	m.locAmbient = shader.GetUniform(program, "uAmbient")
	m.locDiffuse = shader.GetUniform(program, "uDiffuse")
	m.locBaseColor = shader.GetUniform(program, "uBaseColor")
	m.locTexture = shader.GetUniform(program, "uTexture")

	m.upload(mesh)

	return m, nil
}

// upload interleaves the mesh's flat attribute arrays and creates the
// VAO/VBO pair.
func (m *Model) upload(mesh *formats.Mesh) {
	n := mesh.VertexCount()
	vertices := make([]float32, 0, n*8)
	for i := 0; i < n; i++ {
		vertices = append(vertices,
			mesh.Positions[i*3], mesh.Positions[i*3+1], mesh.Positions[i*3+2],
			mesh.Normals[i*3], mesh.Normals[i*3+1], mesh.Normals[i*3+2],
			mesh.TexCoords[i*2], mesh.TexCoords[i*2+1],
		)
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	m.vertexCount = int32(n)
}

// SetDiffuseTexture attaches a loaded diffuse texture. The model takes
// ownership and renders it at full strength.
func (m *Model) SetDiffuseTexture(texID uint32) {
	m.texture = texID
	m.ownsTexture = true
	m.baseColor = [3]float32{1, 1, 1}
}

// SetFallbackTexture attaches the shared white fallback texture, keeping
// the neutral untextured tint. The caller retains ownership.
func (m *Model) SetFallbackTexture(texID uint32) {
	m.texture = texID
	m.ownsTexture = false
	m.baseColor = untexturedTint
}

// Draw issues the draw call with the given matrices and light direction.
// The model transform is identity: the mesh was centered at load time.
func (m *Model) Draw(projection, view math.Mat4, lightDir math.Vec3) {
	if m.vao == 0 || m.vertexCount == 0 {
		return
	}

	gl.UseProgram(m.program)

	model := math.Identity()
	gl.UniformMatrix4fv(m.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(m.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(m.locModel, 1, false, model.Ptr())

	gl.Uniform3f(m.locLightDir, lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform3f(m.locAmbient, 0.35, 0.35, 0.35)
	gl.Uniform3f(m.locDiffuse, 0.65, 0.65, 0.65)
	gl.Uniform3f(m.locBaseColor, m.baseColor[0], m.baseColor[1], m.baseColor[2])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.texture)
	gl.Uniform1i(m.locTexture, 0)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases the model's GPU resources.
func (m *Model) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.texture != 0 && m.ownsTexture {
		gl.DeleteTextures(1, &m.texture)
	}
	m.texture = 0
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}
