package render

import (
	"github.com/echoflaresat/skyray/colors"
	"github.com/echoflaresat/skyray/vectors"
)

// Ray is a half-line from Origin along Direction.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
}

func NewRay(origin, direction vectors.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns Origin + Direction*t.
func (r Ray) At(t int) vectors.Vec3 {
	return r.Direction.ScaleInt(t).Add(r.Origin)
}

// Color shades the ray against DefaultSky.
func (r Ray) Color() colors.RGB {
	return DefaultSky.Shade(r.Direction)
}

// Sky is a vertical background gradient from Bottom (direction.y = -1) to
// Top (direction.y = +1).
type Sky struct {
	Bottom colors.RGB
	Top    colors.RGB
}

// DefaultSky fades from white to sky blue.
var DefaultSky = Sky{
	Bottom: colors.FromPercent(1.0, 1.0, 1.0),
	Top:    colors.FromPercent(0.5, 0.7, 1.0),
}

// Shade returns Bottom*(1-a) + Top*a with a = 0.5*(direction.Y+1).
//
// direction is used as given. Camera rays are not unit length, so the
// gradient follows the viewport geometry rather than the true view angle.
// Normalizing here would change every rendered pixel.
func (s Sky) Shade(direction vectors.Vec3) colors.RGB {
	a := 0.5 * (direction.Y + 1.0)
	return s.Bottom.Scale(1.0 - a).Add(s.Top.Scale(a))
}
