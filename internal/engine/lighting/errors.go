package lighting

import "errors"

// ErrInvalidLightGeometry reports light parameters that would produce a
// degenerate or non-finite matrix: a zero-length direction, a cone angle
// outside (0, π), or an empty or inverted depth range.
var ErrInvalidLightGeometry = errors.New("invalid light geometry")
