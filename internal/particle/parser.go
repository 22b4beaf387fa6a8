package particle

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// 合法的绘制形状
var validShapes = map[string]bool{
	"circle": true,
	"rect":   true,
	"glyph":  true,
	"flake":  true,
}

// ParseFamiliesYAML parses a particle family YAML document.
//
// Example document:
//
//	families:
//	  impact_burst:
//	    pattern: radial
//	    count: "40"
//	    speed: "[3 8]"
//	    palette: ["#FF0000", "#DC143C"]
func ParseFamiliesYAML(data []byte) (map[string]FamilyConfig, error) {
	var doc FamiliesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse particle families: %w", err)
	}
	if len(doc.Families) == 0 {
		return nil, fmt.Errorf("particle families document contains no families")
	}
	return doc.Families, nil
}

// Compile validates a family definition and converts its string values
// into a FamilySpec.
func (fc FamilyConfig) Compile(name string) (*FamilySpec, error) {
	spec := &FamilySpec{
		Name:           name,
		Pattern:        Pattern(fc.Pattern),
		RandomRotation: fc.RandomRotation,
		Glyphs:         []rune(fc.Glyphs),
		Shape:          fc.Shape,
	}

	if spec.Pattern == "" {
		spec.Pattern = PatternSingle
	}
	if spec.Pattern != PatternRadial && spec.Pattern != PatternSingle {
		return nil, fmt.Errorf("family %s: unknown pattern %q", name, fc.Pattern)
	}
	if spec.Shape == "" {
		spec.Shape = "circle"
	}
	if !validShapes[spec.Shape] {
		return nil, fmt.Errorf("family %s: unknown shape %q", name, fc.Shape)
	}
	if spec.Shape == "glyph" && len(spec.Glyphs) == 0 {
		return nil, fmt.Errorf("family %s: glyph shape requires glyphs", name)
	}

	ranges := []struct {
		field string
		src   string
		dst   *Range
	}{
		{"offsetX", fc.OffsetX, &spec.OffsetX},
		{"offsetY", fc.OffsetY, &spec.OffsetY},
		{"speed", fc.Speed, &spec.Speed},
		{"angleJitter", fc.AngleJitter, &spec.AngleJitter},
		{"liftY", fc.LiftY, &spec.LiftY},
		{"velocityX", fc.VelocityX, &spec.VelocityX},
		{"velocityY", fc.VelocityY, &spec.VelocityY},
		{"size", fc.Size, &spec.Size},
		{"decay", fc.Decay, &spec.Decay},
		{"rotationSpeed", fc.RotationSpeed, &spec.RotationSpeed},
	}
	for _, r := range ranges {
		parsed, err := ParseRange(r.src)
		if err != nil {
			return nil, fmt.Errorf("family %s: %s: %w", name, r.field, err)
		}
		*r.dst = parsed
	}

	count, err := ParseFloatDefault(fc.Count, 1)
	if err != nil {
		return nil, fmt.Errorf("family %s: count: %w", name, err)
	}
	spec.Count = int(count)

	spec.SpawnChance, err = ParseFloatDefault(fc.SpawnChance, 0)
	if err != nil {
		return nil, fmt.Errorf("family %s: spawnChance: %w", name, err)
	}
	spec.GravityScale, err = ParseFloatDefault(fc.GravityScale, 1)
	if err != nil {
		return nil, fmt.Errorf("family %s: gravityScale: %w", name, err)
	}

	// 生命必须严格递减，否则粒子永远不会被移除
	if spec.Decay.Min <= 0 {
		return nil, fmt.Errorf("family %s: decay must be > 0, got %q", name, fc.Decay)
	}
	if spec.Size.Min <= 0 {
		return nil, fmt.Errorf("family %s: size must be > 0, got %q", name, fc.Size)
	}
	if spec.Pattern == PatternRadial && spec.Count <= 0 {
		return nil, fmt.Errorf("family %s: radial pattern requires count > 0", name)
	}
	if spec.SpawnChance < 0 || spec.SpawnChance > 1 {
		return nil, fmt.Errorf("family %s: spawnChance must be within [0, 1], got %v", name, spec.SpawnChance)
	}

	if len(fc.Palette) == 0 {
		return nil, fmt.Errorf("family %s: palette is empty", name)
	}
	for _, hex := range fc.Palette {
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("family %s: palette: %w", name, err)
		}
		spec.Palette = append(spec.Palette, c)
	}

	return spec, nil
}

// BuildCatalog compiles the default families with overrides applied on top.
// An override replaces the default family of the same name entirely.
func BuildCatalog(overrides map[string]FamilyConfig) (Catalog, error) {
	merged := DefaultFamilyConfigs()
	for name, fc := range overrides {
		merged[name] = fc
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := make(Catalog, len(merged))
	for _, name := range names {
		spec, err := merged[name].Compile(name)
		if err != nil {
			return nil, err
		}
		catalog[name] = spec
	}
	return catalog, nil
}

// LoadCatalog parses a YAML document and builds a catalog from it.
func LoadCatalog(data []byte) (Catalog, error) {
	overrides, err := ParseFamiliesYAML(data)
	if err != nil {
		return nil, err
	}
	return BuildCatalog(overrides)
}

// MustDefaultCatalog compiles the built-in families. The defaults are static,
// so a failure here is a programming error.
func MustDefaultCatalog() Catalog {
	catalog, err := BuildCatalog(nil)
	if err != nil {
		panic(fmt.Sprintf("particle: invalid default families: %v", err))
	}
	return catalog
}

// DefaultFamilyConfigs returns the built-in family definitions.
func DefaultFamilyConfigs() map[string]FamilyConfig {
	return map[string]FamilyConfig{
		"impact_burst": {
			Pattern: "radial",
			Count:   "40",
			Speed:   "[3 8]",
			Size:    "[5 13]",
			Decay:   "[0.015 0.025]",
			Shape:   "circle",
			Palette: []string{"#FF0000", "#DC143C", "#8B0000", "#B22222", "#CD5C5C", "#FF6347", "#FF4500", "#FF1493"},
		},
		"reward_confetti": {
			Pattern:        "radial",
			Count:          "30",
			AngleJitter:    "[-0.15 0.15]",
			Speed:          "[4 9]",
			LiftY:          "-2",
			Size:           "[5 13]",
			Decay:          "[0.015 0.03]",
			RotationSpeed:  "[-0.15 0.15]",
			RandomRotation: true,
			Shape:          "rect",
			Palette: []string{
				"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
				"#98D8C8", "#FFD700", "#FF69B4", "#00CED1",
				"#FF1493", "#00FF7F", "#FFB6C1", "#87CEEB",
			},
		},
		"fire": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-20 40]",
			VelocityX:    "[-0.25 0.25]",
			VelocityY:    "[-3 -1]",
			Size:         "[3 7]",
			Decay:        "[0.04 0.06]",
			GravityScale: "0.1",
			Shape:        "circle",
			Palette:      []string{"#FF4500", "#FF6347", "#FFD700", "#FFA500"},
		},
		"ice": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-20 40]",
			VelocityX:    "[-0.5 0.5]",
			VelocityY:    "[0.5 1.5]",
			Size:         "[2 5]",
			Decay:        "[0.02 0.03]",
			GravityScale: "0.1",
			Shape:        "flake",
			Palette:      []string{"#FFFFFF", "#E0FFFF", "#B0E0E6"},
		},
		"gold": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-20 40]",
			VelocityX:    "[-1 1]",
			VelocityY:    "[-1.5 -0.5]",
			Size:         "[2 5]",
			Decay:        "[0.03 0.05]",
			GravityScale: "0.1",
			Shape:        "circle",
			Palette:      []string{"#FFD700", "#FFA500", "#FFFF00"},
		},
		"rainbow": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-20 40]",
			VelocityX:    "[-0.75 0.75]",
			VelocityY:    "[-2 -0.5]",
			Size:         "[2 6]",
			Decay:        "[0.025 0.04]",
			GravityScale: "0.1",
			Shape:        "circle",
			Palette:      []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#FF1493"},
		},
		"mirror": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-20 40]",
			VelocityX:    "[-2 2]",
			VelocityY:    "[-0.3 0.3]",
			Size:         "[1.5 3.5]",
			Decay:        "[0.03 0.05]",
			GravityScale: "0.1",
			Shape:        "circle",
			Palette:      []string{"#E0E0E0", "#FFFFFF", "#C0C0C0", "#F0F0F0"},
		},
		"hacker": {
			Pattern:      "single",
			SpawnChance:  "0.3",
			OffsetX:      "[-30 30]",
			OffsetY:      "[-40 20]",
			VelocityX:    "0",
			VelocityY:    "[1 2.5]",
			Size:         "[8 12]",
			Decay:        "[0.02 0.035]",
			GravityScale: "0.1",
			Glyphs:       "01",
			Shape:        "glyph",
			Palette:      []string{"#00FF00", "#00AA00", "#33FF33"},
		},
	}
}
