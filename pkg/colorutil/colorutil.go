// Package colorutil provides shared color utilities for element styling.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common stroke and fill colors used throughout the application.
var (
	Black       = color.RGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red         = color.RGBA{R: 0xE0, G: 0x3E, B: 0x3E, A: 255}
	Green       = color.RGBA{R: 0x2F, G: 0x9E, B: 0x44, A: 255}
	Blue        = color.RGBA{R: 0x1E, G: 0x6F, B: 0xDB, A: 255}
	Yellow      = color.RGBA{R: 0xF5, G: 0x9F, B: 0x00, A: 255}
	Violet      = color.RGBA{R: 0x70, G: 0x48, B: 0xE8, A: 255}
	Transparent = color.RGBA{}
)

// named maps the color keywords accepted in element styles.
var named = map[string]color.RGBA{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"yellow":      Yellow,
	"violet":      Violet,
	"transparent": Transparent,
}

// ParseHex parses a "#rrggbb" or "#rrggbbaa" hex color string, or one of the
// named color keywords. Returns an error for anything else.
func ParseHex(s string) (color.RGBA, error) {
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("colorutil: unknown color %q", s)
	}
	hex := s[1:]

	var r, g, b, a uint8
	a = 255
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("colorutil: bad hex color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.RGBA{}, fmt.Errorf("colorutil: bad hex color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("colorutil: bad hex color %q", s)
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// ParseHexOr parses a color string, falling back to the given color on error.
func ParseHexOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}

// Blend mixes src over dst using the given opacity in [0, 1].
func Blend(dst, src color.RGBA, opacity float64) color.RGBA {
	if opacity >= 0.999 {
		return src
	}
	if opacity <= 0.001 {
		return dst
	}
	inv := 1 - opacity
	return color.RGBA{
		R: uint8(float64(src.R)*opacity + float64(dst.R)*inv),
		G: uint8(float64(src.G)*opacity + float64(dst.G)*inv),
		B: uint8(float64(src.B)*opacity + float64(dst.B)*inv),
		A: 255,
	}
}
