package common

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses a CSS-style color string into an RGBA color.
// Accepted forms are SVG color names ("blue", "lightblue"), hex ("#f60", "#ff6600",
// "#f6ff00ff") and functional notation ("rgb(255, 0, 162)", "rgba(54, 126, 236, 1)").
// The alpha channel of rgba() is a float in [0, 1].
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - color.RGBA: the parsed color, alpha-premultiplied
//   - error: ErrInvalidColor wrapped with the offending input
func ParseColor(s string) (color.RGBA, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch {
	case in == "":
		return color.RGBA{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	case strings.HasPrefix(in, "#"):
		return parseHexColor(in[1:], s)
	case strings.HasPrefix(in, "rgba(") || strings.HasPrefix(in, "rgb("):
		return parseFuncColor(in, s)
	}
	if c, ok := colornames.Map[in]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
// Intended for literal colors in scene definitions.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorToFloats converts a color to [0,1] RGB floats for GPU uniforms and shading.
// Alpha is discarded after un-premultiplying.
//
// Parameters:
//   - c: the color to convert (nil yields black)
//
// Returns:
//   - [3]float32: the r, g, b channels in [0, 1]
func ColorToFloats(c color.Color) [3]float32 {
	if c == nil {
		return [3]float32{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [3]float32{float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255}
}

func parseHexColor(h, orig string) (color.RGBA, error) {
	if len(h) == 3 || len(h) == 4 {
		expanded := make([]byte, 0, len(h)*2)
		for i := 0; i < len(h); i++ {
			expanded = append(expanded, h[i], h[i])
		}
		h = string(expanded)
	}
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	if len(h) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	nrgba := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
}

func parseFuncColor(in, orig string) (color.RGBA, error) {
	open := strings.IndexByte(in, '(')
	if !strings.HasSuffix(in, ")") {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	parts := strings.Split(in[open+1:len(in)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(0xff)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		alpha = uint8(a*255 + 0.5)
	}

	// RGBA is alpha-premultiplied; translucent inputs are scaled accordingly.
	nrgba := color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}
	return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
}
