package ldraw

import (
	"fmt"
	"strings"
)

// Reserved colour codes with semantic roles in the LDraw palette and in the
// render-delta overlays produced by downstream tooling.
const (
	// DefaultColour is code 16, "use the colour of the enclosing context".
	DefaultColour = 16
	// EdgeColour is code 24, the complement/outline colour.
	EdgeColour = 24

	// ClearMaskColour marks previously-built parts in unmasked delta renders.
	ClearMaskColour = 502
	// AddedMaskColour marks parts added at the current step in delta renders.
	AddedMaskColour = 598
	// OpaqueMaskColour masks out previously-built parts in masked renders.
	OpaqueMaskColour = 599

	// Arrow annotation colours.
	ArrowBlueColour  = 801
	ArrowGreenColour = 802
	ArrowRedColour   = 804
)

// Colour is an LDraw colour: an integer code plus its resolved RGB
// components in the 0..1 range. The zero value is not useful; use
// ColourFromCode or ColourFromRGB.
type Colour struct {
	Code    int
	R, G, B float64
}

// ColourFromCode resolves code against the built-in palette. Unknown codes
// keep the code but resolve to the undefined grey so they remain renderable.
func ColourFromCode(code int) Colour {
	hex, ok := colourHex[code]
	if !ok {
		hex = colourHex[-1]
	}
	r, g, b := hexToRGB(hex)
	return Colour{Code: code, R: r, G: g, B: b}
}

// ColourFromHex resolves a "#RRGGBB" string. When the value matches a
// palette entry the corresponding code is used, otherwise the code is -1.
func ColourFromHex(hex string) Colour {
	val := strings.TrimPrefix(strings.ToLower(hex), "#")
	for code, h := range colourHex {
		if strings.ToLower(h) == val {
			return ColourFromCode(code)
		}
	}
	r, g, b := hexToRGB(val)
	return Colour{Code: -1, R: r, G: g, B: b}
}

// ColourFromName resolves a palette colour by its display name.
// The second return value reports whether the name was found.
func ColourFromName(name string) (Colour, bool) {
	for code, n := range colourName {
		if n == name {
			return ColourFromCode(code), true
		}
	}
	return Colour{}, false
}

// Default returns the context-default colour (code 16).
func Default() Colour { return ColourFromCode(DefaultColour) }

// Equal reports colour equality: two colours are equal when their codes
// match or when they resolve to identical RGB values.
func (c Colour) Equal(o Colour) bool {
	return c.Code == o.Code || (c.R == o.R && c.G == o.G && c.B == o.B)
}

// Name returns the palette name for the colour code, or "" for codes
// outside the palette.
func (c Colour) Name() string { return colourName[c.Code] }

// HexCode returns the colour as "#RRGGBB".
func (c Colour) HexCode() string {
	return fmt.Sprintf("#%02X%02X%02X", int(c.R*255.0), int(c.G*255.0), int(c.B*255.0))
}

// HighContrastComplement returns white or black, whichever reads better
// against this colour.
func (c Colour) HighContrastComplement() (float64, float64, float64) {
	level := c.R*c.R + c.G*c.G + c.B*c.B
	if level < 1.44 {
		return 1, 1, 1
	}
	return 0, 0, 0
}

// String returns the serialized form of the colour, which is its code.
func (c Colour) String() string { return fmt.Sprintf("%d", c.Code) }

func hexToRGB(hex string) (r, g, b float64) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var ri, gi, bi int
	fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi)
	return float64(ri) / 255.0, float64(gi) / 255.0, float64(bi) / 255.0
}
