package projection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/pointer"
)

type fixedView struct {
	cam camera.Camera
	vp  pointer.Viewport
}

func (v *fixedView) Camera() camera.Camera      { return v.cam }
func (v *fixedView) Viewport() pointer.Viewport { return v.vp }

// circleMarker records what the resolver wrote and hit-tests as a circle of Radius*scale.
type circleMarker struct {
	Radius  float32
	visible bool
	x, y    float32
	scale   float32
}

func (m *circleMarker) SetVisible(v bool)      { m.visible = v }
func (m *circleMarker) SetCenter(x, y float32) { m.x, m.y = x, y }
func (m *circleMarker) SetScale(s float32)     { m.scale = s }
func (m *circleMarker) Contains(x, y float32) bool {
	r := m.Radius * m.scale
	dx, dy := x-m.x, y-m.y
	return dx*dx+dy*dy <= r*r
}

type recordingPopup struct{ shown []hotspot.Info }

func (p *recordingPopup) Show(info hotspot.Info) { p.shown = append(p.shown, info) }

type recordingCursor struct{ calls []bool }

func (c *recordingCursor) SetHover(h bool) { c.calls = append(c.calls, h) }

func newView() *fixedView {
	return &fixedView{
		cam: camera.New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}),
		vp:  pointer.Viewport{Width: 1024, Height: 768},
	}
}

func TestPlaceCenterRoundTrip(t *testing.T) {
	v := newView()
	p := Place(v.cam, v.vp, mgl32.Vec3{}, false, DefaultScaling())
	require.True(t, p.Visible)
	assert.InDelta(t, 512, p.X, 1e-2)
	assert.InDelta(t, 384, p.Y, 1e-2)
	assert.Equal(t, float32(1), p.Scale)
}

func TestPlaceBehindCameraIsHidden(t *testing.T) {
	v := newView()
	p := Place(v.cam, v.vp, mgl32.Vec3{0, 0, 15}, true, DefaultScaling())
	assert.False(t, p.Visible)
	assert.Zero(t, p.X)
	assert.Zero(t, p.Y)

	p = Place(v.cam, v.vp, mgl32.Vec3{0, 0, -5000}, false, DefaultScaling())
	assert.False(t, p.Visible, "beyond the far plane")
}

func TestPlaceBehindCameraNeverVisible(t *testing.T) {
	v := newView()
	properties := gopter.NewProperties(nil)
	properties.Property("points with positive view depth are hidden", prop.ForAll(
		func(x, y, behind float32) bool {
			return !Place(v.cam, v.vp, mgl32.Vec3{x, y, 10 + behind}, true, DefaultScaling()).Visible
		},
		gen.Float32Range(-50, 50),
		gen.Float32Range(-50, 50),
		gen.Float32Range(0.001, 500),
	))
	properties.TestingRun(t)
}

func TestScalingAt(t *testing.T) {
	s := DefaultScaling()
	assert.InDelta(t, 1/(15*0.09), s.At(15), 1e-5)
	assert.Equal(t, s.Max, s.At(5), "near anchors clamp to Max")
	assert.Equal(t, s.Max, s.At(0.1))
	assert.Equal(t, s.Min, s.At(1000))
	assert.Equal(t, s.Max, s.At(0))
}

func TestScalingMonotoneAndClamped(t *testing.T) {
	s := DefaultScaling()
	properties := gopter.NewProperties(nil)
	properties.Property("nearer anchors are at least as large and within bounds", prop.ForAll(
		func(d1, extra float32) bool {
			d2 := d1 + extra
			a, b := s.At(d1), s.At(d2)
			return a >= b && a >= s.Min && a <= s.Max && b >= s.Min && b <= s.Max
		},
		gen.Float32Range(0.01, 500),
		gen.Float32Range(0, 500),
	))
	properties.TestingRun(t)
}

func TestUpdatePositionsAndScalesMarkers(t *testing.T) {
	v := newView()
	r := NewResolver(v, DefaultScaling(), nil, nil, zerolog.Nop())

	near := hotspot.NewScreenAnchored(hotspot.Anchor{}, hotspot.Info{Title: "Altar Stone"}, hotspot.Visual{ScaleWithDistance: true})
	far := hotspot.NewScreenAnchored(hotspot.Anchor{Position: mgl32.Vec3{0, 0, -20}}, hotspot.Info{Title: "Avenue"}, hotspot.Visual{ScaleWithDistance: true})
	fixed := hotspot.NewScreenAnchored(hotspot.Anchor{Position: mgl32.Vec3{1, 0, 0}}, hotspot.Info{Title: "Slaughter Stone"}, hotspot.Visual{})
	mNear, mFar, mFixed := &circleMarker{Radius: 12}, &circleMarker{Radius: 12}, &circleMarker{Radius: 12}
	require.NoError(t, r.Bind(near, mNear))
	require.NoError(t, r.Bind(far, mFar))
	require.NoError(t, r.Bind(fixed, mFixed))
	assert.False(t, mNear.visible, "markers start hidden")

	r.Update()

	assert.True(t, mNear.visible)
	assert.InDelta(t, 512, mNear.x, 1e-2)
	assert.InDelta(t, 384, mNear.y, 1e-2)
	assert.Greater(t, mNear.scale, mFar.scale)
	assert.Equal(t, float32(1), mFixed.scale)
	assert.Greater(t, mFixed.x, float32(512))

	p, ok := r.Placement(far)
	require.True(t, ok)
	assert.True(t, p.Visible)
}

func TestUpdateHidesMarkerWhenCameraTurnsAway(t *testing.T) {
	v := newView()
	r := NewResolver(v, DefaultScaling(), nil, nil, zerolog.Nop())
	h := hotspot.NewScreenAnchored(hotspot.Anchor{}, hotspot.Info{Title: "Trilithon"}, hotspot.Visual{})
	m := &circleMarker{Radius: 10}
	require.NoError(t, r.Bind(h, m))

	r.Update()
	require.True(t, m.visible)

	v.cam.Target = mgl32.Vec3{0, 0, 20}
	r.Update()
	assert.False(t, m.visible)
}

func TestBindRejectsPickable(t *testing.T) {
	r := NewResolver(newView(), DefaultScaling(), nil, nil, zerolog.Nop())
	err := r.Bind(hotspot.NewPickable(hotspot.Anchor{}, hotspot.Info{Title: "Clock"}, hotspot.Pick{MarkerRadius: 1}, hotspot.Visual{}), &circleMarker{})
	assert.Error(t, err)
	assert.Error(t, r.Bind(nil, &circleMarker{}))
	assert.Zero(t, r.Len())
}

func TestMarkerClickShowsInfoAndConsumes(t *testing.T) {
	v := newView()
	popup := &recordingPopup{}
	cursor := &recordingCursor{}
	r := NewResolver(v, DefaultScaling(), popup, cursor, zerolog.Nop())
	info := hotspot.Info{Title: "Eiffel Tower", Description: "Wrought-iron lattice tower"}
	h := hotspot.NewScreenAnchored(hotspot.Anchor{}, info, hotspot.Visual{})
	require.NoError(t, r.Bind(h, &circleMarker{Radius: 16}))
	r.Update()

	assert.True(t, r.HandlePointer(pointer.Event{X: 515, Y: 380, Kind: pointer.Move}))
	assert.Equal(t, []bool{true}, cursor.calls)
	assert.Empty(t, popup.shown)

	assert.True(t, r.HandlePointer(pointer.Event{X: 512, Y: 384, Kind: pointer.Click}))
	require.Len(t, popup.shown, 1)
	assert.Equal(t, info, popup.shown[0])

	assert.False(t, r.HandlePointer(pointer.Event{X: 10, Y: 10, Kind: pointer.Click}))
	assert.Len(t, popup.shown, 1)
}

func TestOverlappingMarkersTopmostWins(t *testing.T) {
	v := newView()
	popup := &recordingPopup{}
	r := NewResolver(v, DefaultScaling(), popup, nil, zerolog.Nop())
	below := hotspot.NewScreenAnchored(hotspot.Anchor{}, hotspot.Info{Title: "below"}, hotspot.Visual{})
	above := hotspot.NewScreenAnchored(hotspot.Anchor{Position: mgl32.Vec3{0.05, 0, 0}}, hotspot.Info{Title: "above"}, hotspot.Visual{})
	require.NoError(t, r.Bind(below, &circleMarker{Radius: 30}))
	require.NoError(t, r.Bind(above, &circleMarker{Radius: 30}))
	r.Update()

	r.HandlePointer(pointer.Event{X: 512, Y: 384, Kind: pointer.TouchStart})
	require.Len(t, popup.shown, 1)
	assert.Equal(t, "above", popup.shown[0].Title)
}

func TestHiddenMarkerIsNotClickable(t *testing.T) {
	v := newView()
	popup := &recordingPopup{}
	r := NewResolver(v, DefaultScaling(), popup, nil, zerolog.Nop())
	h := hotspot.NewScreenAnchored(hotspot.Anchor{Position: mgl32.Vec3{0, 0, 50}}, hotspot.Info{Title: "behind"}, hotspot.Visual{})
	m := &circleMarker{Radius: 10000}
	require.NoError(t, r.Bind(h, m))
	r.Update()

	assert.False(t, m.visible)
	assert.False(t, r.HandlePointer(pointer.Event{X: 0, Y: 0, Kind: pointer.Click}))
	assert.Empty(t, popup.shown)
}
