package tracker

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Waypoint is a single recorded sample of a body's position and rotation.
type Waypoint struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

func (w Waypoint) String() string {
	return fmt.Sprintf("Waypoint{Position: %v, Rotation: %v %v}", w.Position, w.Rotation.W, w.Rotation.V)
}
