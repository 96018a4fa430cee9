package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA" (the leading '#' is
// optional) into an RGBA color. Colors without an alpha part are opaque.
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	alpha := uint8(255)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	if alpha == 255 {
		return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
	}

	// color.RGBA is alpha-premultiplied.
	premul := func(v uint8) uint8 { return uint8(uint32(v) * uint32(alpha) / 255) }
	return color.RGBA{R: premul(r), G: premul(g), B: premul(b), A: alpha}, nil
}
