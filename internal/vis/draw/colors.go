package draw

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Colors for map elements
var (
	ColorBackground = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	ColorState      = color.NRGBA{R: 208, G: 213, B: 221, A: 255}
	ColorHover      = color.NRGBA{R: 180, G: 195, B: 215, A: 255}
	ColorBorder     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorSelected   = color.NRGBA{R: 30, G: 90, B: 160, A: 255}
	ColorLabel      = color.NRGBA{R: 40, G: 44, B: 52, A: 255}
	ColorFocal      = color.NRGBA{R: 30, G: 90, B: 160, A: 120}
)

// StatusColor returns the fill for a status.
func StatusColor(s core.Status) color.NRGBA {
	return ParseHex(s.Hex())
}

// ParseHex parses #rgb or #rrggbb. Malformed input yields opaque black.
func ParseHex(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Lighten moves c toward white by f in [0, 1].
func Lighten(c color.NRGBA, f float32) color.NRGBA {
	mix := func(v uint8) uint8 { return v + uint8(float32(255-v)*f) }
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
