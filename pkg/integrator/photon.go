package integrator

import (
	"fmt"
	"sync/atomic"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Photon is a quantum of flux deposited on a surface
type Photon struct {
	Point  core.Vec3 // Where the photon landed
	Weight core.Vec3 // Carried flux, non-negative per channel
	Wi     core.Vec3 // Direction the photon came from
}

// RadiancePhoton records a surface point whose exitant radiance is computed
// once every photon has been shot
type RadiancePhoton struct {
	Point         core.Vec3
	Normal        core.Vec3 // Faces the side the photon arrived from
	Radiance      core.Vec3 // Filled in by the gathering stage
	Reflectance   core.Vec3 // Hemispherical reflectance of the surface
	Transmittance core.Vec3 // Hemispherical transmittance of the surface
}

// PhotonMaps holds the photons of one task, or all tasks once merged
type PhotonMaps struct {
	Caustic  []Photon
	Direct   []Photon
	Indirect []Photon
	Radiance []RadiancePhoton
}

// Merge appends the photons of other to m
func (m *PhotonMaps) Merge(other *PhotonMaps) {
	m.Caustic = append(m.Caustic, other.Caustic...)
	m.Direct = append(m.Direct, other.Direct...)
	m.Indirect = append(m.Indirect, other.Indirect...)
	m.Radiance = append(m.Radiance, other.Radiance...)
}

// Len returns the number of flux photons, radiance photons excluded
func (m *PhotonMaps) Len() int {
	return len(m.Caustic) + len(m.Direct) + len(m.Indirect)
}

func (m *PhotonMaps) String() string {
	return fmt.Sprintf("%d caustic, %d direct, %d indirect, %d radiance",
		len(m.Caustic), len(m.Direct), len(m.Indirect), len(m.Radiance))
}

// Progress is the state shared by every shooting task. Its counters only
// grow, in whole batches, and are the only memory tasks write concurrently.
type Progress struct {
	numCaustic  atomic.Int64
	numIndirect atomic.Int64

	CausticWanted  int64
	IndirectWanted int64
}

// NewProgress creates shared progress towards the given photon counts
func NewProgress(causticWanted, indirectWanted int) *Progress {
	return &Progress{
		CausticWanted:  int64(max(0, causticWanted)),
		IndirectWanted: int64(max(0, indirectWanted)),
	}
}

// Done reports which photon classes have reached their targets
func (p *Progress) Done() (causticDone, indirectDone bool) {
	return p.reached(p.Counts())
}

// AddBatch credits n photons to both counters and reports the resulting state
func (p *Progress) AddBatch(n int) (causticDone, indirectDone bool) {
	return p.reached(p.Add(n))
}

// Add credits n photons to both counters and returns the values this call
// produced. Concurrent callers never see the same pair.
func (p *Progress) Add(n int) (caustic, indirect int64) {
	return p.numCaustic.Add(int64(n)), p.numIndirect.Add(int64(n))
}

func (p *Progress) reached(caustic, indirect int64) (causticDone, indirectDone bool) {
	return caustic >= p.CausticWanted, indirect >= p.IndirectWanted
}

// Counts returns the current counter values
func (p *Progress) Counts() (caustic, indirect int64) {
	return p.numCaustic.Load(), p.numIndirect.Load()
}
