package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Normal vector (normalized)
	tanU   core.Vec3
	tanV   core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	u, v := core.OrthonormalBasis(n)
	return &Plane{
		Point:  point,
		Normal: n,
		tanU:   u,
		tanV:   v,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray *core.Ray, dg *DifferentialGeometry) bool {
	// If denominator is close to zero, ray is parallel to plane (no intersection)
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= ray.TMin || t >= ray.TMax {
		return false
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(p.Point)
	*dg = DifferentialGeometry{
		Point:      hitPoint,
		Normal:     p.Normal,
		GeomNormal: p.Normal,
		DpDu:       p.tanU,
		DpDv:       p.tanV,
		UV:         core.NewVec2(local.Dot(p.tanU), local.Dot(p.tanV)),
		T:          t,
	}
	ray.TMax = t
	return true
}
