package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/df07/go-photon-mapper/pkg/sampler"
)

const sampleYAML = `
width: 320
height: 240
seed: 9
workers: 3
tile:
  width: 32
  height: 16
sampler:
  type: adaptive
  min_spp: 2
  max_spp: 32
photons:
  caustic: 5000
  indirect: 8000
  max_depth: 6
  tasks: 4
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	want := Config{
		Width:   320,
		Height:  240,
		Seed:    9,
		Workers: 3,
		Tile:    TileConfig{Width: 32, Height: 16},
		Sampler: SamplerConfig{Type: SamplerAdaptive, SPP: 4, MinSPP: 2, MaxSPP: 32},
		Photons: PhotonsConfig{Caustic: 5000, Indirect: 8000, MaxDepth: 6, Tasks: 4},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty config should equal defaults (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "widht: 10\n"},
		{"unknown sampler", "sampler:\n  type: sobol\n"},
		{"bad size", "width: 0\n"},
		{"negative workers", "workers: -1\n"},
		{"bad tile", "tile:\n  width: 0\n"},
		{"negative photons", "photons:\n  caustic: -5\n"},
		{"zero spp", "sampler:\n  type: stratified\n  spp: 0\n"},
		{"adaptive range", "sampler:\n  type: adaptive\n  min_spp: 8\n  max_spp: 4\n"},
		{"not yaml", "width: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSamplerType_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Sampler.Type = SamplerStratified
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: stratified")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	var st SamplerType
	assert.NoError(t, st.SetString(" LowDiscrepancy "))
	assert.Equal(t, SamplerLowDiscrepancy, st)
	assert.Equal(t, "SamplerType(7)", SamplerType(7).String())
}

func TestNewSampler(t *testing.T) {
	bounds := sampler.NewRegion(8, 4)
	tests := []struct {
		typ  SamplerType
		want sampler.Sampler
		spp  int
	}{
		{SamplerStratified, &sampler.StratifiedSampler{}, 9},
		{SamplerLowDiscrepancy, &sampler.LDSampler{}, 8},
		{SamplerAdaptive, &sampler.AdaptiveSampler{}, 16},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			cfg := Default()
			cfg.Sampler = SamplerConfig{Type: tt.typ, SPP: tt.spp, MinSPP: 4, MaxSPP: 16}
			s := cfg.NewSampler(bounds)
			assert.IsType(t, tt.want, s)
			assert.Equal(t, bounds, s.Bounds())
			assert.Equal(t, tt.spp, s.SamplesPerPixel())
		})
	}
}

func TestConversions(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, integrator.PhotonMapConfig{
		NumCausticWanted:  5000,
		NumIndirectWanted: 8000,
		MaxDepth:          6,
		NumTasks:          4,
		Seed:              9,
	}, cfg.PhotonConfig())

	assert.Equal(t, renderer.Config{NumWorkers: 3, TileWidth: 32, TileHeight: 16}, cfg.RendererConfig())

	cam := cfg.CameraConfig(geometry.CameraConfig{Width: 10, AspectRatio: 1, VFov: 40})
	assert.Equal(t, 320, cam.Width)
	assert.Equal(t, 240, cam.Height())
	assert.Equal(t, 40.0, cam.VFov)
}
