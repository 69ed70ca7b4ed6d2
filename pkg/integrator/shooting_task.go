package integrator

import (
	"context"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/sampler"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

const (
	// BatchSize is the number of photons emitted between progress updates
	BatchSize = 2048

	// photonDimensions is the number of scalars drawn per emitted photon:
	// light choice, position on the light (2), unused, direction (2)
	photonDimensions = 6

	radiancePhotonProbability = 0.125
	continuationEpsilon       = 1e-3
)

// TaskStats describes the work done by one shooting task
type TaskStats struct {
	Emitted  int   // Photons that left a light with non-zero weight
	Skipped  int   // Photon slots that produced no emission
	Batches  int   // Completed batches
	Caustic  int64 // Caustic counter as last observed by this task
	Indirect int64 // Indirect counter as last observed by this task
}

// ShootingTask emits and traces photons on one goroutine. Everything but the
// shared Progress is owned by the task.
type ShootingTask struct {
	id       int
	scene    *scene.Scene
	progress *Progress
	maxDepth int
	sampler  *sampler.LDSampler
	arena    *arena.Arena
	maps     PhotonMaps
	stats    TaskStats
	u        [photonDimensions]float64
}

// NewShootingTask creates a task that shoots photons into a frozen scene
func NewShootingTask(id int, scn *scene.Scene, progress *Progress, maxDepth int, seed int64) *ShootingTask {
	return &ShootingTask{
		id:       id,
		scene:    scn,
		progress: progress,
		maxDepth: maxDepth,
		sampler:  sampler.NewLDSampler(sampler.NewRegion(1, 1), 1, seed),
		arena:    arena.New(0),
	}
}

// Shoot emits batches of photons until both photon classes reach their
// targets. ctx is checked between batches.
func (t *ShootingTask) Shoot(ctx context.Context) error {
	t.stats.Caustic, t.stats.Indirect = t.progress.Counts()
	causticDone, indirectDone := t.progress.reached(t.stats.Caustic, t.stats.Indirect)
	lightSampler := t.scene.LightSampler()
	for !(causticDone && indirectDone) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 0; i < BatchSize; i++ {
			t.sampler.Dimensions(t.u[:], t.stats.Emitted+t.stats.Skipped)
			emission, lightPDF, ok := lights.SampleLightEmission(lightSampler, t.u[0],
				core.NewVec2(t.u[1], t.u[2]), core.NewVec2(t.u[4], t.u[5]))
			if !ok {
				t.stats.Skipped++
				continue
			}
			pdf := emission.PDF()
			if pdf == 0 || emission.Emission.IsBlack() {
				t.stats.Skipped++
				continue
			}
			ray := emission.Ray(continuationEpsilon)
			weight := emission.Emission.Multiply(ray.Direction.AbsDot(emission.Normal) / (pdf * lightPDF))
			if weight.IsBlack() {
				t.stats.Skipped++
				continue
			}
			t.stats.Emitted++
			t.tracePhoton(ray, weight, causticDone, indirectDone)
			t.arena.Reset()
		}
		t.stats.Caustic, t.stats.Indirect = t.progress.Add(BatchSize)
		causticDone, indirectDone = t.progress.reached(t.stats.Caustic, t.stats.Indirect)
		t.stats.Batches++
	}
	return nil
}

// tracePhoton follows a photon through the scene, depositing it on every
// non-specular surface while its class is still wanted
func (t *ShootingTask) tracePhoton(ray core.Ray, weight core.Vec3, causticDone, indirectDone bool) {
	specularPath := true
	depth := 0
	var isect scene.Intersection
	for t.scene.Intersect(&ray, &isect) {
		depth++
		if isect.Material == nil {
			return
		}
		bsdf := isect.Material.GetBSDF(&isect.DifferentialGeometry, t.arena)
		wo := ray.Direction.Negate()

		if bsdf.HasNonSpecular() {
			photon := Photon{Point: isect.Point, Weight: weight, Wi: wo}
			deposited := false
			if specularPath && depth > 1 {
				if !causticDone {
					t.maps.Caustic = append(t.maps.Caustic, photon)
					deposited = true
				}
			} else if !indirectDone {
				if depth == 1 {
					t.maps.Direct = append(t.maps.Direct, photon)
				} else {
					t.maps.Indirect = append(t.maps.Indirect, photon)
				}
				deposited = true
			}
			if deposited && t.sampler.Get1D() < radiancePhotonProbability {
				t.addRadiancePhoton(bsdf, wo)
			}
		}

		if depth > t.maxDepth {
			return
		}

		s := bsdf.Sample(wo, t.sampler.Get2D(), t.sampler.Get1D(), material.BxDFAll)
		if s.PDF == 0 || s.F.IsBlack() {
			return
		}
		weightNew := weight.MultiplyVec(s.F).Multiply(s.Wi.AbsDot(bsdf.Normal) / s.PDF)
		var survived bool
		weight, survived = russianRoulette(weight, weightNew, t.sampler.Get1D())
		if !survived {
			return
		}
		specularPath = specularPath && s.Type.IsSpecular()
		if indirectDone && !specularPath {
			return
		}
		ray = core.NewRayWithOffset(isect.Point, s.Wi, continuationEpsilon)
	}
}

// addRadiancePhoton stores the surface reflectance and transmittance at the
// current hit for the gathering stage
func (t *ShootingTask) addRadiancePhoton(bsdf *material.BSDF, wo core.Vec3) {
	n := bsdf.DG.Normal
	if wo.Dot(n) < 0 {
		n = n.Negate()
	}
	t.maps.Radiance = append(t.maps.Radiance, RadiancePhoton{
		Point:         bsdf.DG.Point,
		Normal:        n,
		Reflectance:   bsdf.RhoHH(t.sampler, t.arena, material.BxDFAllReflection, material.DefaultRhoSqrtSamples),
		Transmittance: bsdf.RhoHH(t.sampler, t.arena, material.BxDFAllTransmission, material.DefaultRhoSqrtSamples),
	})
}

// russianRoulette keeps a path with probability min(1, lum(weightNew)/lum(weight))
// and rescales the survivor so the expected weight is unchanged
func russianRoulette(weight, weightNew core.Vec3, u float64) (core.Vec3, bool) {
	lum := weight.Luminance()
	if lum <= 0 {
		return core.Vec3{}, false
	}
	p := min(1, weightNew.Luminance()/lum)
	if p <= 0 || u > p {
		return core.Vec3{}, false
	}
	return weightNew.Divide(p), true
}

// ID returns the index of the task within its integrator
func (t *ShootingTask) ID() int {
	return t.id
}

// Maps returns the photons deposited by the task
func (t *ShootingTask) Maps() *PhotonMaps {
	return &t.maps
}

// Stats returns the task's counters
func (t *ShootingTask) Stats() TaskStats {
	return t.stats
}
