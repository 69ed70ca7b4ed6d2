package geometry

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray *core.Ray, dg *DifferentialGeometry) bool {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= ray.TMin || root >= ray.TMax {
		root = (-halfB + sqrtD) / a
		if root <= ray.TMin || root >= ray.TMax {
			return false
		}
	}

	point := ray.At(root)
	local := point.Subtract(s.Center)
	normal := local.Multiply(1.0 / s.Radius)

	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(math.Max(-1, math.Min(1, local.Z/s.Radius)))

	// ∂p/∂u around the z axis; degenerates at the poles where the BSDF
	// falls back to an arbitrary tangent
	dpdu := core.NewVec3(-2*math.Pi*local.Y, 2*math.Pi*local.X, 0)
	dpdv := normal.Cross(dpdu)

	*dg = DifferentialGeometry{
		Point:      point,
		Normal:     normal,
		GeomNormal: normal,
		DpDu:       dpdu,
		DpDv:       dpdv,
		UV:         core.NewVec2(phi/(2*math.Pi), theta/math.Pi),
		T:          root,
	}
	ray.TMax = root
	return true
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Sample returns a uniformly distributed point on the sphere and its outward normal
func (s *Sphere) Sample(u core.Vec2) (core.Vec3, core.Vec3) {
	n := core.SampleOnUnitSphere(u)
	return s.Center.Add(n.Multiply(s.Radius)), n
}
