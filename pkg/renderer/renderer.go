package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/sampler"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// DefaultLogger implements core.Logger on top of glog
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SurfaceIntegrator computes the radiance leaving a surface hit towards the
// camera. Preprocess runs once on the frozen scene before any Illumination
// call. Illumination may be called concurrently; s and a belong to the caller.
type SurfaceIntegrator interface {
	Preprocess(s *scene.Scene) error
	Illumination(s *scene.Scene, ray *core.Ray, isect *scene.Intersection, smp core.Sampler, a *arena.Arena) core.Vec3
}

// Config controls how a render is split across workers
type Config struct {
	NumWorkers  int // 0 uses every CPU
	TileWidth   int
	TileHeight  int
	ArenaChunks int // Arena chunk length, 0 for the default
}

// DefaultConfig returns a configuration using every CPU and 16x16 tiles
func DefaultConfig() Config {
	return Config{TileWidth: 16, TileHeight: 16}
}

// Renderer drives a SurfaceIntegrator over the pixels of a sampler
type Renderer struct {
	integrator SurfaceIntegrator
	config     Config
	logger     core.Logger
}

// NewRenderer creates a renderer for integrator
func NewRenderer(integrator SurfaceIntegrator, config Config, logger core.Logger) *Renderer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		d := DefaultConfig()
		config.TileWidth, config.TileHeight = d.TileWidth, d.TileHeight
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{integrator: integrator, config: config, logger: logger}
}

// Illumination returns the radiance arriving along ray. Rays that leave the
// scene carry no radiance.
func (r *Renderer) Illumination(scn *scene.Scene, ray *core.Ray, smp core.Sampler, a *arena.Arena) core.Vec3 {
	var isect scene.Intersection
	if !scn.Intersect(ray, &isect) {
		return core.Vec3{}
	}
	return r.integrator.Illumination(scn, ray, &isect, smp, a)
}

// Render preprocesses the integrator then renders every pixel of top into a
// film sized to the camera. Workers pull tiles from a BlockQueue until it is
// empty or ctx is cancelled.
func (r *Renderer) Render(ctx context.Context, scn *scene.Scene, top sampler.Sampler) (*Film, error) {
	if !scn.Frozen() {
		return nil, fmt.Errorf("scene must be frozen before rendering")
	}
	if scn.Camera == nil {
		return nil, fmt.Errorf("scene has no camera")
	}

	start := time.Now()
	if err := r.integrator.Preprocess(scn); err != nil {
		return nil, fmt.Errorf("while preprocessing: %w", err)
	}
	r.logger.Printf("Preprocessing took %v\n", time.Since(start).Round(time.Millisecond))

	cfg := scn.Camera.Config()
	film := NewFilm(cfg.Width, cfg.Height())
	queue := NewBlockQueue(top, r.config.TileWidth, r.config.TileHeight, r.logger)

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.config.NumWorkers; w++ {
		eg.Go(func() error {
			return r.work(ctx, scn, queue, film)
		})
	}
	if err := eg.Wait(); err != nil {
		return film, fmt.Errorf("while rendering: %w", err)
	}

	stats := film.Stats()
	r.logger.Printf("Rendered %d blocks in %v, %.1f samples per pixel, %d rejected\n",
		queue.Len(), time.Since(start).Round(time.Millisecond), stats.AverageSamples, stats.Rejected)
	return film, nil
}

// work renders blocks until the queue runs dry. The worker owns the arena
// and the sample buffers; the arena is reset after each batch.
func (r *Renderer) work(ctx context.Context, scn *scene.Scene, queue *BlockQueue, film *Film) error {
	a := arena.New(r.config.ArenaChunks)
	var samples []sampler.Sample
	var colors []core.Vec3
	camera := scn.Camera

	for block := queue.GetBlock(); block != nil; block = queue.GetBlock() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for block.HasSamples() {
			samples = block.GetSamples(samples)
			if len(samples) == 0 {
				break
			}
			colors = colors[:0]
			for _, s := range samples {
				ray := camera.GetRayForPixel(s.Pos)
				c := r.Illumination(scn, &ray, block, a)
				if !c.IsFinite() {
					c = core.Vec3{}
				}
				colors = append(colors, c)
			}
			if block.ReportResults(samples, colors) {
				for i, s := range samples {
					film.AddSample(s.X, s.Y, colors[i])
				}
			} else {
				film.reject(samples[0].X, samples[0].Y, len(samples))
			}
			a.Reset()
		}
		queue.Done(block)
	}
	return nil
}
