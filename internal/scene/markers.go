package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereRings  = 16
	sphereSlices = 16
)

// Light used for marker shading.
var (
	ambient          = [4]float32{0.25, 0.26, 0.3, 1}
	lightColor       = [3]float32{1, 0.98, 0.95}
	lightDir         = [3]float32{0.5, 1, 0.4}
	lightIntensity   = float32(0.8)
	specularPower    = float32(48)
	specularStrength = float32(0.4)
)

// markerMesh draws pickable hotspot markers as lit unit spheres, scaled per marker. The mesh and
// shader are created on first draw. Without a valid shader raylib's flat sphere is used.
type markerMesh struct {
	ready  bool
	lit    bool
	mesh   rl.Mesh
	mtl    rl.Material
	shader rl.Shader
	locs   map[string]int32
}

func (m *markerMesh) ensure() {
	if m.ready {
		return
	}
	m.ready = true
	m.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(m.shader) {
		return
	}
	m.mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	m.mtl = rl.LoadMaterialDefault()
	m.mtl.Shader = m.shader
	m.locs = map[string]int32{}
	for _, name := range []string{"viewPos", "lightDir", "ambient", "lightColor", "lightIntensity", "specularPower", "specularStrength"} {
		m.locs[name] = rl.GetShaderLocation(m.shader, name)
	}
	m.lit = true
}

// begin sets the per-frame uniforms. Call once per frame inside BeginMode3D.
func (m *markerMesh) begin(viewPos mgl32.Vec3) {
	m.ensure()
	if !m.lit {
		return
	}
	vp := [3]float32{viewPos.X(), viewPos.Y(), viewPos.Z()}
	m.vec(m.locs["viewPos"], vp[:], rl.ShaderUniformVec3)
	ld := lightDir
	m.vec(m.locs["lightDir"], ld[:], rl.ShaderUniformVec3)
	amb := ambient
	m.vec(m.locs["ambient"], amb[:], rl.ShaderUniformVec4)
	lc := lightColor
	m.vec(m.locs["lightColor"], lc[:], rl.ShaderUniformVec3)
	m.vec(m.locs["lightIntensity"], []float32{lightIntensity}, rl.ShaderUniformFloat)
	m.vec(m.locs["specularPower"], []float32{specularPower}, rl.ShaderUniformFloat)
	m.vec(m.locs["specularStrength"], []float32{specularStrength}, rl.ShaderUniformFloat)
}

func (m *markerMesh) vec(loc int32, v []float32, typ rl.ShaderUniformDataType) {
	if loc >= 0 {
		rl.SetShaderValueV(m.shader, loc, v, typ, 1)
	}
}

func (m *markerMesh) draw(center mgl32.Vec3, radius float32, c rl.Color) {
	if !m.lit {
		rl.DrawSphere(toVector3(center), radius, c)
		return
	}
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
	transform := rl.MatrixMultiply(rl.MatrixScale(radius, radius, radius), rl.MatrixTranslate(center.X(), center.Y(), center.Z()))
	rl.DrawMesh(m.mesh, m.mtl, transform)
}

func (m *markerMesh) unload() {
	if m.lit {
		rl.UnloadMesh(&m.mesh)
		rl.UnloadShader(m.shader)
	}
	m.ready, m.lit = false, false
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 world = matModel * vec4(vertexPosition, 1.0);
  fragPosition = world.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * world;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 n = normalize(fragNormal);
  vec3 l = normalize(lightDir);
  vec3 v = normalize(viewPos - fragPosition);
  float ndl = max(dot(n, l), 0.0);
  vec3 diffuse = colDiffuse.rgb * ndl * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  float spec = pow(max(dot(n, normalize(l + v)), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (ndl > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)
