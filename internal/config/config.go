// Package config loads world settings and merges them with CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/hexterrain/pkg/noise"
	"github.com/OCharnyshevich/hexterrain/pkg/world/gen"
)

// ErrInvalidSettings is returned when a settings document fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	DefaultSeed     = "arkonhex"
	DefaultSeaLevel = 16

	GeneratorTerrain = "terrain"
	GeneratorFlat    = "flat"
)

// Settings holds the world settings.
type Settings struct {
	Seed      string `yaml:"seed" json:"seed"`
	SeaLevel  int    `yaml:"seaLevel" json:"seaLevel"`
	Noise     string `yaml:"noise" json:"noise"`
	TreeHash  string `yaml:"treeHash" json:"treeHash"`
	Generator string `yaml:"generator" json:"generator"`
}

// DefaultSettings returns Settings with the reference world defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Seed:      DefaultSeed,
		SeaLevel:  DefaultSeaLevel,
		Noise:     noise.KindSimplex,
		TreeHash:  gen.HashSine,
		Generator: GeneratorTerrain,
	}
}

// rawSettings mirrors Settings with a seed that may be a string or a number.
type rawSettings struct {
	Seed      *seedValue `yaml:"seed"`
	SeaLevel  *int       `yaml:"seaLevel"`
	Noise     string     `yaml:"noise"`
	TreeHash  string     `yaml:"treeHash"`
	Generator string     `yaml:"generator"`
}

type seedValue string

func (s *seedValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("seed must be a scalar, got %v", n.Tag)
	}
	switch n.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return fmt.Errorf("parse seed %q: %w", n.Value, err)
		}
		if f == 0 {
			// Zero is an unset seed, like the empty string.
			*s = ""
			return nil
		}
		*s = seedValue(formatNumber(f))
	default:
		*s = seedValue(n.Value)
	}
	return nil
}

// formatNumber renders a numeric seed as its shortest decimal text.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse validates a YAML or JSON settings document and decodes it on top of
// the defaults.
func Parse(data []byte) (*Settings, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var raw rawSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s := DefaultSettings()
	if raw.Seed != nil && *raw.Seed != "" {
		s.Seed = string(*raw.Seed)
	}
	if raw.SeaLevel != nil {
		s.SeaLevel = *raw.SeaLevel
	}
	if raw.Noise != "" {
		s.Noise = raw.Noise
	}
	if raw.TreeHash != "" {
		s.TreeHash = raw.TreeHash
	}
	if raw.Generator != "" {
		s.Generator = raw.Generator
	}
	return s, nil
}

// validate checks the raw document against the settings schema. The YAML
// tree is re-encoded as JSON so the validator sees JSON value types.
func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := settingsSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set via CLI flags.
func Merge(cfg *Settings, fromFile *Settings, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["sea-level"] {
		cfg.SeaLevel = fromFile.SeaLevel
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["tree-hash"] {
		cfg.TreeHash = fromFile.TreeHash
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
}

// GenConfig returns the generator configuration for s. An empty seed falls
// back to DefaultSeed.
func (s *Settings) GenConfig() gen.Config {
	seed := s.Seed
	if seed == "" {
		seed = DefaultSeed
	}
	return gen.Config{
		Seed:     seed,
		SeaLevel: s.SeaLevel,
		Noise:    s.Noise,
		TreeHash: s.TreeHash,
	}
}
