package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/df07/go-photon-mapper/pkg/config"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/df07/go-photon-mapper/pkg/sampler"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

var (
	configPath = flag.String("config", "", "YAML render configuration, defaults are used when empty")
	sceneType  = flag.String("scene", "cornell", "Scene type: 'plane', 'cornell' or 'caustic'")
	output     = flag.String("output", "", "Write the rendered film as a PNG to this path")
	help       = flag.Bool("help", false, "Show help information")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *help {
		fmt.Println("Photon Mapper")
		fmt.Println("Usage: photon-mapper [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  plane   - Area light over a diffuse ground plane")
		fmt.Println("  cornell - Cornell box with glass and gold spheres")
		fmt.Println("  caustic - Glass, metal and mirror objects under a disc light")
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			glog.Fatalf("Couldn't load config: %v", err)
		}
	}

	scn, err := createScene(*sceneType, cfg)
	if err != nil {
		glog.Fatalf("Couldn't create scene: %v", err)
	}
	glog.Infof("Scene %q: %d primitives, %d lights", *sceneType, scn.GetPrimitiveCount(), len(scn.Lights))

	film, pm, err := render(context.Background(), scn, cfg)
	if err != nil {
		glog.Fatalf("Render failed: %v", err)
	}

	photons := pm.Photons()
	glog.Infof("Photon maps: %v", photons)
	for i, s := range pm.TaskStats() {
		glog.V(1).Infof("Task %d: emitted %d, skipped %d, %d batches", i, s.Emitted, s.Skipped, s.Batches)
	}

	if *output != "" {
		if err := writePNG(*output, film); err != nil {
			glog.Fatalf("Couldn't save image: %v", err)
		}
		glog.Infof("Render saved as %s", *output)
	}
}

// createScene builds and freezes a built-in scene sized by cfg
func createScene(name string, cfg config.Config) (*scene.Scene, error) {
	var scn *scene.Scene
	switch name {
	case "plane":
		scn = scene.NewPlaneScene()
	case "cornell":
		scn = scene.NewCornellScene()
	case "caustic":
		scn = scene.NewCausticScene()
	default:
		return nil, fmt.Errorf("unknown scene type %q", name)
	}
	scn.Camera = geometry.NewCamera(cfg.CameraConfig(scn.Camera.Config()))
	scn.Freeze()
	return scn, nil
}

// render shoots photons then runs the renderer over the whole image
func render(ctx context.Context, scn *scene.Scene, cfg config.Config) (*renderer.Film, *integrator.PhotonMapIntegrator, error) {
	logger := renderer.NewDefaultLogger()
	pm := integrator.NewPhotonMapIntegrator(cfg.PhotonConfig(), logger)
	r := renderer.NewRenderer(pm, cfg.RendererConfig(), logger)

	camCfg := scn.Camera.Config()
	top := cfg.NewSampler(sampler.NewRegion(camCfg.Width, camCfg.Height()))
	film, err := r.Render(ctx, scn, top)
	if err != nil {
		return nil, nil, err
	}
	return film, pm, nil
}

func writePNG(path string, film *renderer.Film) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("while creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, film.Image()); err != nil {
		return fmt.Errorf("while encoding %s: %w", path, err)
	}
	return nil
}
