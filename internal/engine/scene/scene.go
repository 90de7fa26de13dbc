// Package scene holds what lights depend on from the world around them: the
// active camera and the parent nodes lights are attached to.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
)

// Scene is a set of named nodes and an optional active camera.
type Scene struct {
	camera lighting.Camera
	nodes  map[string]*Node
}

// New creates an empty scene without a camera.
func New() *Scene {
	return &Scene{nodes: make(map[string]*Node)}
}

// SetActiveCamera makes cam the camera shadow projections use.
func (s *Scene) SetActiveCamera(cam lighting.Camera) {
	s.camera = cam
}

// ClearActiveCamera removes the active camera.
func (s *Scene) ClearActiveCamera() {
	s.camera = nil
}

// ActiveCamera returns the active camera or nil.
func (s *Scene) ActiveCamera() lighting.Camera {
	return s.camera
}

// AddNode registers a node under its name.
func (s *Scene) AddNode(n *Node) error {
	if n == nil || n.Name == "" {
		return fmt.Errorf("scene: node needs a name")
	}
	if _, ok := s.nodes[n.Name]; ok {
		return fmt.Errorf("scene: node %q already exists", n.Name)
	}
	s.nodes[n.Name] = n
	logger.Debug("scene node added", zap.String("node", n.Name))
	return nil
}

// Node returns the node with the given name, or nil.
func (s *Scene) Node(name string) *Node {
	return s.nodes[name]
}

// RefreshLights re-resolves the parent transforms of lights for this frame.
func (s *Scene) RefreshLights(lights ...lighting.Light) {
	for _, l := range lights {
		l.RefreshTransform()
	}
}
