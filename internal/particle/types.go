// Package particle provides data structures and parsing functionality for
// slingshot particle family definitions.
//
// A family is described in YAML (data/particles.yaml) using string values
// that keep the authoring format compact:
//   - Fixed values: "40"
//   - Ranges: "[3 8]" (uniform random value between min and max)
//
// Strings are compiled once into a FamilySpec; the particle engine only ever
// sees compiled specs.
package particle

import (
	"image/color"
	"math/rand"
)

// FamiliesDocument is the root of a particle family YAML document.
type FamiliesDocument struct {
	Families map[string]FamilyConfig `yaml:"families"`
}

// FamilyConfig represents a single family definition as authored in YAML.
//
// Most fields use string types to preserve the authoring format; see the
// package documentation for the accepted value syntax.
type FamilyConfig struct {
	// Pattern controls how one emission is laid out:
	//   - "radial": Count particles evenly spaced around a full circle
	//   - "single": one particle per emission (ambient families)
	Pattern string `yaml:"pattern"`

	// Spawn properties (发射参数)
	Count       string `yaml:"count,omitempty"`       // Particles per radial emission
	SpawnChance string `yaml:"spawnChance,omitempty"` // Per-frame emission probability (ambient)
	OffsetX     string `yaml:"offsetX,omitempty"`     // Spawn offset from the emission point
	OffsetY     string `yaml:"offsetY,omitempty"`

	// Launch properties (初速度)
	Speed       string `yaml:"speed,omitempty"`       // Radial speed
	AngleJitter string `yaml:"angleJitter,omitempty"` // Radial angle jitter (radians)
	LiftY       string `yaml:"liftY,omitempty"`       // Added to VY after launch (negative = upward bias)
	VelocityX   string `yaml:"velocityX,omitempty"`   // Direct velocity (single pattern)
	VelocityY   string `yaml:"velocityY,omitempty"`

	// Particle properties (粒子属性)
	Size           string   `yaml:"size,omitempty"`
	Decay          string   `yaml:"decay,omitempty"`
	GravityScale   string   `yaml:"gravityScale,omitempty"`
	RotationSpeed  string   `yaml:"rotationSpeed,omitempty"`
	RandomRotation bool     `yaml:"randomRotation,omitempty"`
	Glyphs         string   `yaml:"glyphs,omitempty"`
	Shape          string   `yaml:"shape,omitempty"` // circle | rect | glyph | flake
	Palette        []string `yaml:"palette"`
}

// Pattern is the compiled emission layout.
type Pattern string

const (
	// PatternRadial spawns Count particles spread evenly over 2π.
	PatternRadial Pattern = "radial"
	// PatternSingle spawns exactly one particle per emission.
	PatternSingle Pattern = "single"
)

// Range is an inclusive [Min, Max] interval sampled uniformly.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a degenerate range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample draws a value from the range using rng.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FamilySpec is the compiled, ready-to-spawn form of a FamilyConfig.
type FamilySpec struct {
	Name    string
	Pattern Pattern

	Count       int
	SpawnChance float64
	OffsetX     Range
	OffsetY     Range

	Speed       Range
	AngleJitter Range
	LiftY       Range
	VelocityX   Range
	VelocityY   Range

	Size           Range
	Decay          Range
	GravityScale   float64
	RotationSpeed  Range
	RandomRotation bool
	Glyphs         []rune
	Shape          string
	Palette        []color.RGBA
}

// PickColor returns a random palette entry.
func (s *FamilySpec) PickColor(rng *rand.Rand) color.RGBA {
	if len(s.Palette) == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return s.Palette[rng.Intn(len(s.Palette))]
}

// PickGlyph returns a random glyph, or 0 when the family has none.
func (s *FamilySpec) PickGlyph(rng *rand.Rand) rune {
	if len(s.Glyphs) == 0 {
		return 0
	}
	return s.Glyphs[rng.Intn(len(s.Glyphs))]
}

// Catalog maps family names to compiled specs.
type Catalog map[string]*FamilySpec

// Get looks up a family by name.
func (c Catalog) Get(name string) (*FamilySpec, bool) {
	spec, ok := c[name]
	return spec, ok
}
