package hotspot

import "github.com/go-gl/mathgl/mgl32"

// Node is a transform in a parent chain (e.g. the loaded landmark model). Hotspots anchored to a
// node follow it when the model is moved, rotated or scaled.
type Node struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	Parent      *Node
}

// NewNode returns an identity transform under parent (nil = root).
func NewNode(parent *Node) *Node {
	return &Node{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Parent:   parent,
	}
}

// Local returns translate * rotate * scale.
func (n *Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// World returns the node transform composed with every ancestor.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Local().Mul4(m)
	}
	return m
}
