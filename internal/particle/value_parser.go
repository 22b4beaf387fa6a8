package particle

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseRange parses a value string from a family definition.
// Supports:
//   - Empty: "" → zero range
//   - Fixed value: "40" → {40, 40}
//   - Range: "[3 8]" → {3, 8}
//
// A range whose minimum exceeds its maximum is rejected.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		inner := strings.TrimSpace(s[1 : len(s)-1])
		parts := strings.Fields(inner)
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			minV, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range min %q: %w", s, err)
			}
			maxV, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range max %q: %w", s, err)
			}
			if minV > maxV {
				return Range{}, fmt.Errorf("range %q has min > max", s)
			}
			return Range{Min: minV, Max: maxV}, nil
		default:
			return Range{}, fmt.Errorf("range %q must have one or two values", s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// ParseFloatDefault parses a fixed value, returning def for an empty string.
func ParseFloatDefault(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
