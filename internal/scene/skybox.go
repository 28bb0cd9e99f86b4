package scene

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

const skyboxScale = 1000

// Panoramas are about 2:1; anything else is treated as a cubemap cross.
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skyboxPaths are tried in order so the skybox is found from the repo root or cmd/viewer.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// skybox is an optional background: a cubemap or an equirectangular panorama on a unit cube
// drawn around the camera. GPU resources are created on the first draw, after the window exists.
type skybox struct {
	path     string
	equirect bool
	pending  bool
	loaded   bool

	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	camPosLoc int32
	texLoc    int32
}

func findSkybox(log zerolog.Logger) *skybox {
	for _, p := range skyboxPaths {
		p = filepath.Clean(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		img := rl.LoadImage(p)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			log.Warn().Str("path", p).Msg("skybox image unreadable")
			return &skybox{}
		}
		aspect := float32(img.Width) / float32(img.Height)
		rl.UnloadImage(img)
		log.Debug().Str("path", p).Float32("aspect", aspect).Msg("skybox found")
		return &skybox{
			path:     p,
			equirect: aspect >= equirectAspectMin && aspect <= equirectAspectMax,
			pending:  true,
		}
	}
	return &skybox{}
}

func (s *skybox) ensureLoaded() {
	if !s.pending {
		return
	}
	s.pending = false

	if !s.equirect {
		img := rl.LoadImage(s.path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return
		}
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}

	s.tex = rl.LoadTexture(s.path)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
}

// draw renders the cube centered on the camera with depth writes off.
func (s *skybox) draw(cam rl.Camera3D) {
	s.ensureLoaded()
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := cam.Position
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(pos.X, pos.Y, pos.Z),
	)
	if s.equirect {
		if s.camPosLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadMaterial(s.mtl)
	rl.UnloadMesh(&s.mesh)
	s.loaded = false
}

// Samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
