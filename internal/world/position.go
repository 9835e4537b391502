package world

import "math"

// Position is a point in map space with a facing angle in radians.
type Position struct {
	X, Y, Z float32
	O       float32
}

// Pos is shorthand for a position facing angle 0.
func Pos(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z}
}

// Dist2D returns the distance in the XY plane.
func (p Position) Dist2D(o Position) float32 {
	dx, dy := float64(o.X-p.X), float64(o.Y-p.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Dist returns the 3D distance.
func (p Position) Dist(o Position) float32 {
	dx, dy, dz := float64(o.X-p.X), float64(o.Y-p.Y), float64(o.Z-p.Z)
	return float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

// AngleTo returns the absolute angle from p to o, normalized to [0, 2π).
func (p Position) AngleTo(o Position) float32 {
	return NormalizeOrientation(float32(math.Atan2(float64(o.Y-p.Y), float64(o.X-p.X))))
}

// RelativeAngle returns the angle to o as seen from p's facing, in [0, 2π).
func (p Position) RelativeAngle(o Position) float32 {
	return NormalizeOrientation(p.AngleTo(o) - p.O)
}

// HasInArc reports whether o lies inside an arc of the given width centred
// on p's facing. A point on top of p is always inside.
func (p Position) HasInArc(arc float32, o Position) bool {
	if p.X == o.X && p.Y == o.Y {
		return true
	}
	angle := p.RelativeAngle(o)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	half := arc / 2
	return angle >= -half && angle <= half
}

// IsInLine reports whether o lies within width of the segment starting at p
// and heading along p's facing, in front of p.
func (p Position) IsInLine(o Position, width float32) bool {
	if !p.HasInArc(math.Pi, o) {
		return false
	}
	angle := float64(p.RelativeAngle(o))
	return math.Abs(math.Sin(angle))*float64(p.Dist2D(o)) < float64(width)
}

// Relative returns the point dist away from p at angle relative to p's facing.
func (p Position) Relative(dist, angle float32) Position {
	a := float64(NormalizeOrientation(p.O + angle))
	return Position{
		X: p.X + dist*float32(math.Cos(a)),
		Y: p.Y + dist*float32(math.Sin(a)),
		Z: p.Z,
		O: p.O,
	}
}

// Offset returns p translated by a transport-local offset rotated by p's facing.
func (p Position) Offset(local Position) Position {
	s, c := math.Sincos(float64(p.O))
	return Position{
		X: p.X + local.X*float32(c) - local.Y*float32(s),
		Y: p.Y + local.X*float32(s) + local.Y*float32(c),
		Z: p.Z + local.Z,
		O: NormalizeOrientation(p.O + local.O),
	}
}

// NormalizeOrientation wraps o into [0, 2π).
func NormalizeOrientation(o float32) float32 {
	const twoPi = 2 * math.Pi
	r := math.Mod(float64(o), twoPi)
	if r < 0 {
		r += twoPi
	}
	return float32(r)
}

// segmentsIntersect reports whether segments ab and cd cross in the XY plane.
func segmentsIntersect(a, b, c, d Position) bool {
	cross := func(o, p, q Position) float64 {
		return float64(p.X-o.X)*float64(q.Y-o.Y) - float64(p.Y-o.Y)*float64(q.X-o.X)
	}
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
