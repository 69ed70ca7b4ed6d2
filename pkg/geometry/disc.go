package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Normal vector (pointing "up" from the disc)
	Radius float64   // Radius of the disc
	Right  core.Vec3 // Right vector (perpendicular to normal)
	Up     core.Vec3 // Up vector (perpendicular to normal and right)
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64) *Disc {
	n := normal.Normalize()

	var right core.Vec3
	if math.Abs(n.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Cross(n).Normalize()

	return &Disc{
		Center: center,
		Normal: n,
		Radius: radius,
		Right:  right,
		Up:     n.Cross(right).Normalize(),
	}
}

// Intersect tests if a ray intersects with the disc
func (d *Disc) Intersect(ray *core.Ray, dg *DifferentialGeometry) bool {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= ray.TMin || t >= ray.TMax {
		return false
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(d.Center)
	distSq := local.LengthSquared()
	if distSq > d.Radius*d.Radius {
		return false
	}

	// u runs around the rim, v from the rim to the center
	x, y := local.Dot(d.Right), local.Dot(d.Up)
	phi := math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	*dg = DifferentialGeometry{
		Point:      hitPoint,
		Normal:     d.Normal,
		GeomNormal: d.Normal,
		DpDu:       d.Right,
		DpDv:       d.Up,
		UV:         core.NewVec2(phi/(2*math.Pi), 1-math.Sqrt(distSq)/d.Radius),
		T:          t,
	}
	ray.TMax = t
	return true
}

// Area returns the surface area of the disc
func (d *Disc) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}

// Sample returns a uniformly distributed point on the disc and its normal
func (d *Disc) Sample(u core.Vec2) (core.Vec3, core.Vec3) {
	p := core.SamplePointInUnitDisk(u)
	point := d.Center.Add(d.Right.Multiply(p.X * d.Radius)).Add(d.Up.Multiply(p.Y * d.Radius))
	return point, d.Normal
}
