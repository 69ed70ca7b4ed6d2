// Package config loads render settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/df07/go-photon-mapper/pkg/sampler"
)

// SamplerType selects the top-level sampler
type SamplerType int

const (
	SamplerStratified SamplerType = iota
	SamplerLowDiscrepancy
	SamplerAdaptive
)

var samplerNames = map[SamplerType]string{
	SamplerStratified:     "stratified",
	SamplerLowDiscrepancy: "lowdiscrepancy",
	SamplerAdaptive:       "adaptive",
}

func (t SamplerType) String() string {
	if name, ok := samplerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SamplerType(%d)", int(t))
}

// SetString sets t from its name
func (t *SamplerType) SetString(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range samplerNames {
		if name == s {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown sampler type %q", s)
}

// MarshalYAML implements a YAML Marshaler for SamplerType
func (t SamplerType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML implements a YAML Unmarshaler for SamplerType
func (t *SamplerType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return t.SetString(s)
}

// TileConfig is the size of the blocks handed to workers
type TileConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SamplerConfig describes the top-level sampler
type SamplerConfig struct {
	Type   SamplerType `yaml:"type"`
	SPP    int         `yaml:"spp"`
	MinSPP int         `yaml:"min_spp"`
	MaxSPP int         `yaml:"max_spp"`
}

// PhotonsConfig describes photon shooting
type PhotonsConfig struct {
	Caustic  int `yaml:"caustic"`
	Indirect int `yaml:"indirect"`
	MaxDepth int `yaml:"max_depth"`
	Tasks    int `yaml:"tasks"`
}

// Config holds every render setting
type Config struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Seed    int64         `yaml:"seed"`
	Workers int           `yaml:"workers"` // 0 uses every CPU
	Tile    TileConfig    `yaml:"tile"`
	Sampler SamplerConfig `yaml:"sampler"`
	Photons PhotonsConfig `yaml:"photons"`
}

// Default returns the settings used when no file is given
func Default() Config {
	photons := integrator.DefaultPhotonMapConfig()
	return Config{
		Width:  400,
		Height: 400,
		Seed:   1,
		Tile:   TileConfig{Width: 16, Height: 16},
		Sampler: SamplerConfig{
			Type:   SamplerLowDiscrepancy,
			SPP:    4,
			MinSPP: 4,
			MaxSPP: 16,
		},
		Photons: PhotonsConfig{
			Caustic:  photons.NumCausticWanted,
			Indirect: photons.NumIndirectWanted,
			MaxDepth: photons.MaxDepth,
		},
	}
}

// Parse reads YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("while parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("while reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.Tile.Width <= 0 || c.Tile.Height <= 0:
		return fmt.Errorf("tile size must be positive, got %dx%d", c.Tile.Width, c.Tile.Height)
	case c.Photons.Caustic < 0 || c.Photons.Indirect < 0:
		return fmt.Errorf("photon counts must not be negative")
	case c.Photons.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative, got %d", c.Photons.MaxDepth)
	case c.Photons.Tasks < 0:
		return fmt.Errorf("tasks must not be negative, got %d", c.Photons.Tasks)
	}
	switch c.Sampler.Type {
	case SamplerStratified, SamplerLowDiscrepancy:
		if c.Sampler.SPP <= 0 {
			return fmt.Errorf("%v sampler needs a positive spp, got %d", c.Sampler.Type, c.Sampler.SPP)
		}
	case SamplerAdaptive:
		if c.Sampler.MinSPP <= 0 || c.Sampler.MaxSPP < c.Sampler.MinSPP {
			return fmt.Errorf("adaptive sampler needs 0 < min_spp <= max_spp, got %d and %d",
				c.Sampler.MinSPP, c.Sampler.MaxSPP)
		}
	default:
		return fmt.Errorf("unknown sampler type %v", c.Sampler.Type)
	}
	return nil
}

// NewSampler builds the configured sampler over bounds
func (c Config) NewSampler(bounds sampler.Region) sampler.Sampler {
	switch c.Sampler.Type {
	case SamplerStratified:
		return sampler.NewStratifiedSampler(bounds, c.Sampler.SPP, c.Seed)
	case SamplerAdaptive:
		return sampler.NewAdaptiveSampler(bounds, c.Sampler.MinSPP, c.Sampler.MaxSPP, c.Seed)
	default:
		return sampler.NewLDSampler(bounds, c.Sampler.SPP, c.Seed)
	}
}

// PhotonConfig converts the photon settings for the integrator
func (c Config) PhotonConfig() integrator.PhotonMapConfig {
	return integrator.PhotonMapConfig{
		NumCausticWanted:  c.Photons.Caustic,
		NumIndirectWanted: c.Photons.Indirect,
		MaxDepth:          c.Photons.MaxDepth,
		NumTasks:          c.Photons.Tasks,
		Seed:              c.Seed,
	}
}

// RendererConfig converts the worker settings for the renderer
func (c Config) RendererConfig() renderer.Config {
	return renderer.Config{
		NumWorkers: c.Workers,
		TileWidth:  c.Tile.Width,
		TileHeight: c.Tile.Height,
	}
}

// CameraConfig resizes base to the configured image size
func (c Config) CameraConfig(base geometry.CameraConfig) geometry.CameraConfig {
	base.Width = c.Width
	base.AspectRatio = float64(c.Width) / float64(c.Height)
	return base
}

// Marshal encodes c as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
