// Package rig animates a spot light over time: a parent node swings it
// around the vertical axis while its cone widens or narrows.
package rig

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/engine/scene"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Sweep swings node from -Angle/2 to +Angle/2 of yaw and tweens the spot's
// cone angle towards ConeTo over Duration seconds. Call Update each frame.
type Sweep struct {
	node *scene.Node
	spot *lighting.SpotLight

	base     math.Quat
	from, to math.Quat

	progress *gween.Tween
	cone     *gween.Tween // nil when the cone is fixed

	Duration float32
	Done     bool
}

// NewSweep creates a sweep of the given total yaw angle in radians. A
// coneTo of 0 keeps the cone angle fixed.
func NewSweep(node *scene.Node, spot *lighting.SpotLight, angle, duration, coneTo float32, fn ease.TweenFunc) (*Sweep, error) {
	if node == nil || spot == nil {
		return nil, fmt.Errorf("rig: sweep needs a node and a spot light")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("rig: sweep duration %v must be positive", duration)
	}
	if fn == nil {
		fn = ease.InOutSine
	}

	up := math.Vec3{Y: 1}
	s := &Sweep{
		node:     node,
		spot:     spot,
		base:     node.Rotation,
		from:     math.QuatFromAxisAngle(up, -angle/2),
		to:       math.QuatFromAxisAngle(up, angle/2),
		progress: gween.New(0, 1, duration, fn),
		Duration: duration,
	}
	if coneTo != 0 {
		s.cone = gween.New(spot.ConeAngle(), coneTo, duration, fn)
	}
	if err := s.apply(0, spot.ConeAngle()); err != nil {
		return nil, err
	}
	return s, nil
}

// Update advances the sweep by dt seconds and applies the pose to the node
// and light. It returns an error if the tweened cone angle is rejected.
func (s *Sweep) Update(dt float32) error {
	if s.Done {
		return nil
	}

	p, finished := s.progress.Update(dt)
	cone := s.spot.ConeAngle()
	if s.cone != nil {
		cone, _ = s.cone.Update(dt)
	}
	s.Done = finished
	return s.apply(p, cone)
}

func (s *Sweep) apply(p, cone float32) error {
	s.node.Rotation = s.base.Mul(s.from.Slerp(s.to, p))
	if cone != s.spot.ConeAngle() {
		if err := s.spot.SetConeAngle(cone); err != nil {
			return fmt.Errorf("rig: %w", err)
		}
	}
	s.spot.RefreshTransform()
	return nil
}

// Reset rewinds the sweep to its start pose.
func (s *Sweep) Reset() error {
	s.progress.Reset()
	start := s.spot.ConeAngle()
	if s.cone != nil {
		s.cone.Reset()
		start, _ = s.cone.Update(0)
	}
	s.Done = false
	return s.apply(0, start)
}
