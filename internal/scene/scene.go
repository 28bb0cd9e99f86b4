package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"landmark-viewer/internal/assets"
	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/catalog"
	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/pointer"
)

var (
	markerColor      = rl.NewColor(255, 180, 60, 230)
	markerHoverColor = rl.NewColor(255, 230, 140, 255)
	hitVolumeColor   = rl.NewColor(80, 220, 255, 140)
)

// Scene is one landmark in 3D: an orbit camera, the reference grid, an optional skybox, the model
// and the markers of pickable hotspots. It implements camera.View, so resolvers read the same
// camera raylib renders with.
type Scene struct {
	cam   camera.Camera
	orbit *camera.Orbit
	rlCam rl.Camera3D

	GridVisible    bool
	ShowHitVolumes bool

	modelNode   *hotspot.Node
	model       rl.Model
	modelLoaded bool

	sky     *skybox
	markers markerMesh
	log     zerolog.Logger
}

// New sets up the camera from the catalog definition. modelNode places the model in the world.
func New(def catalog.CameraDef, modelNode *hotspot.Node, log zerolog.Logger) *Scene {
	pos, target := mgl32.Vec3(def.Position), mgl32.Vec3(def.Target)
	if pos == target {
		pos = target.Add(mgl32.Vec3{10, 10, 10})
	}
	s := &Scene{
		cam:         camera.New(pos, target),
		orbit:       camera.NewOrbit(pos, target),
		GridVisible: true,
		modelNode:   modelNode,
		sky:         findSkybox(log),
		log:         log,
	}
	if def.FovY > 0 {
		s.cam.FovY = def.FovY
	}
	if def.MinDistance > 0 {
		s.orbit.MinDistance = def.MinDistance
	}
	if def.MaxDistance > 0 {
		s.orbit.MaxDistance = def.MaxDistance
	}
	s.rlCam.Up = rl.NewVector3(0, 1, 0)
	s.rlCam.Projection = rl.CameraPerspective
	s.sync()
	return s
}

// Camera implements camera.View.
func (s *Scene) Camera() camera.Camera {
	return s.cam
}

// Viewport implements camera.View.
func (s *Scene) Viewport() pointer.Viewport {
	return pointer.Viewport{Width: float32(rl.GetScreenWidth()), Height: float32(rl.GetScreenHeight())}
}

// Orbit exposes the orbit controller for input handling.
func (s *Scene) Orbit() *camera.Orbit {
	return s.orbit
}

// Update integrates camera inertia. dt is in seconds.
func (s *Scene) Update(dt float32) {
	s.orbit.Update(dt)
	s.sync()
}

func (s *Scene) sync() {
	s.orbit.Apply(&s.cam)
	s.rlCam.Position = toVector3(s.cam.Position)
	s.rlCam.Target = toVector3(s.cam.Target)
	s.rlCam.Fovy = s.cam.FovY
}

// Frame points the camera at model bounds when the catalog gave no camera. The bounds are in
// model space and are moved into the world through the model node.
func (s *Scene) Frame(b assets.Bounds) {
	world := s.modelNode.World()
	lo := mgl32.TransformCoordinate(b.Min, world)
	hi := mgl32.TransformCoordinate(b.Max, world)
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius <= 0 {
		return
	}
	dist := radius * 2.2
	s.orbit.MaxDistance = max(s.orbit.MaxDistance, dist*3)
	s.orbit.Reset(center.Add(mgl32.Vec3{1, 0.6, 1}.Normalize().Mul(dist)), center)
	s.sync()
	s.log.Debug().Floats32("center", center[:]).Float32("radius", radius).Msg("camera framed to model")
}

// LoadModel loads a glTF, GLB or OBJ file. Call on the render thread. A previous model is
// released first.
func (s *Scene) LoadModel(path string) error {
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		return fmt.Errorf("scene: %s: no meshes loaded", path)
	}
	s.unloadModel()
	m.Transform = toMatrix(s.modelNode.World())
	s.model = m
	s.modelLoaded = true
	s.log.Info().Str("path", path).Int32("meshes", m.MeshCount).Msg("model loaded")
	return nil
}

// ModelLoaded reports whether a model is on screen.
func (s *Scene) ModelLoaded() bool {
	return s.modelLoaded
}

// Draw renders the 3D world: skybox, grid, model, then pickable markers. hovered is highlighted.
func (s *Scene) Draw(pickable []*hotspot.Hotspot, hovered hotspot.ID) {
	rl.BeginMode3D(s.rlCam)
	s.sky.draw(s.rlCam)
	if s.GridVisible {
		drawGround()
	}
	if s.modelLoaded {
		rl.DrawModel(s.model, rl.Vector3{}, 1, rl.White)
	}
	if len(pickable) > 0 {
		s.markers.begin(s.cam.Position)
	}
	for _, h := range pickable {
		c := markerColor
		if h.ID() == hovered {
			c = markerHoverColor
		}
		s.markers.draw(h.WorldPosition(), h.Pick.MarkerRadius, c)
		if s.ShowHitVolumes && h.Pick.HasHitVolume() {
			rl.DrawSphereWires(toVector3(h.WorldPosition()), h.Pick.HitRadius, 8, 12, hitVolumeColor)
		}
	}
	rl.EndMode3D()
}

// Close releases GPU resources.
func (s *Scene) Close() {
	s.unloadModel()
	s.markers.unload()
	s.sky.unload()
}

func (s *Scene) unloadModel() {
	if s.modelLoaded {
		rl.UnloadModel(s.model)
		s.modelLoaded = false
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// toMatrix converts column-major mgl32 to raylib's matrix; both store columns contiguously.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
