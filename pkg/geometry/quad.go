package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Quad represents a rectangular surface defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: ax + by + cz = d
	W      core.Vec3 // Cached cross product for barycentric coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	// w = normal / (normal · (u × v))
	w := normal.Multiply(1.0 / normal.Dot(cross))

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      w,
		area:   cross.Length(),
	}
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray *core.Ray, dg *DifferentialGeometry) bool {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= ray.TMin || t >= ray.TMax {
		return false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	// Barycentric coordinates within the parallelogram
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	*dg = DifferentialGeometry{
		Point:      hitPoint,
		Normal:     q.Normal,
		GeomNormal: q.Normal,
		DpDu:       q.U,
		DpDv:       q.V,
		UV:         core.NewVec2(alpha, beta),
		T:          t,
	}
	ray.TMax = t
	return true
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// Sample returns a uniformly distributed point on the quad and its normal
func (q *Quad) Sample(u core.Vec2) (core.Vec3, core.Vec3) {
	return q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y)), q.Normal
}
