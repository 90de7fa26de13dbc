package scene

import (
	"fmt"

	"github.com/Faultbox/spotlight/pkg/math"
)

// Node is a transform in a parent chain. It satisfies lighting.Parent.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat

	parent *Node
}

// NewNode creates a node at position with no rotation.
func NewNode(name string, position math.Vec3) *Node {
	return &Node{Name: name, Position: position, Rotation: math.QuatIdentity()}
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node { return n.parent }

// SetParent attaches n below p; nil detaches. Cycles are rejected.
func (n *Node) SetParent(p *Node) error {
	for a := p; a != nil; a = a.parent {
		if a == n {
			return fmt.Errorf("scene: parenting %q under %q creates a cycle", n.Name, p.Name)
		}
	}
	n.parent = p
	return nil
}

// LocalMatrix returns translation times rotation.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Translate(n.Position.X, n.Position.Y, n.Position.Z).Mul(n.Rotation.ToMat4())
}

// WorldMatrix composes the local matrices up the parent chain.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}
