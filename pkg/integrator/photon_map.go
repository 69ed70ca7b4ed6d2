// Package integrator implements photon shooting for the photon mapping
// surface integrator.
package integrator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// PhotonMapConfig controls photon shooting
type PhotonMapConfig struct {
	NumCausticWanted  int   // Target number of caustic photons
	NumIndirectWanted int   // Target number of direct plus indirect photons
	MaxDepth          int   // Maximum bounces per photon
	NumTasks          int   // Shooting goroutines, 0 uses every CPU
	Seed              int64 // Seeds the per-task samplers
}

// DefaultPhotonMapConfig returns a moderate configuration
func DefaultPhotonMapConfig() PhotonMapConfig {
	return PhotonMapConfig{
		NumCausticWanted:  20000,
		NumIndirectWanted: 100000,
		MaxDepth:          5,
	}
}

// PhotonMapIntegrator shoots photons from the scene's lights in a
// preprocessing pass and keeps the merged photon maps
type PhotonMapIntegrator struct {
	config PhotonMapConfig
	logger core.Logger

	progress  *Progress
	photons   PhotonMaps
	taskStats []TaskStats
}

// NewPhotonMapIntegrator creates a photon mapping integrator
func NewPhotonMapIntegrator(config PhotonMapConfig, logger core.Logger) *PhotonMapIntegrator {
	if config.NumTasks <= 0 {
		config.NumTasks = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PhotonMapIntegrator{config: config, logger: logger}
}

// Config returns the integrator configuration
func (pm *PhotonMapIntegrator) Config() PhotonMapConfig {
	return pm.config
}

// Preprocess shoots photons into s until both targets are reached
func (pm *PhotonMapIntegrator) Preprocess(s *scene.Scene) error {
	return pm.Shoot(context.Background(), s)
}

// Shoot runs NumTasks shooting tasks over the frozen scene s and merges
// their photons once every task has finished
func (pm *PhotonMapIntegrator) Shoot(ctx context.Context, s *scene.Scene) error {
	if !s.Frozen() {
		return fmt.Errorf("scene must be frozen before shooting photons")
	}
	if len(s.Lights) == 0 {
		return fmt.Errorf("scene has no lights to shoot photons from")
	}

	start := time.Now()
	pm.progress = NewProgress(pm.config.NumCausticWanted, pm.config.NumIndirectWanted)
	seeds := rand.New(rand.NewSource(pm.config.Seed))
	tasks := make([]*ShootingTask, pm.config.NumTasks)
	for i := range tasks {
		tasks[i] = NewShootingTask(i, s, pm.progress, pm.config.MaxDepth, seeds.Int63())
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		eg.Go(func() error {
			if err := task.Shoot(ctx); err != nil {
				return fmt.Errorf("while shooting photons in task %d: %w", task.ID(), err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	pm.photons = PhotonMaps{}
	pm.taskStats = make([]TaskStats, len(tasks))
	emitted := 0
	for i, task := range tasks {
		pm.photons.Merge(task.Maps())
		pm.taskStats[i] = task.Stats()
		emitted += task.Stats().Emitted
	}
	pm.logger.Printf("Shot %d photons with %d tasks in %v: %v\n",
		emitted, len(tasks), time.Since(start).Round(time.Millisecond), &pm.photons)
	return nil
}

// Photons returns the merged photon maps of the last Shoot
func (pm *PhotonMapIntegrator) Photons() *PhotonMaps {
	return &pm.photons
}

// TaskStats returns the per-task statistics of the last Shoot
func (pm *PhotonMapIntegrator) TaskStats() []TaskStats {
	return pm.taskStats
}

// Progress returns the shared counters of the last Shoot
func (pm *PhotonMapIntegrator) Progress() *Progress {
	return pm.progress
}

// Illumination returns black. Gathering from the photon maps is done by a
// later stage.
func (pm *PhotonMapIntegrator) Illumination(*scene.Scene, *core.Ray, *scene.Intersection, core.Sampler, *arena.Arena) core.Vec3 {
	return core.Vec3{}
}
