package ldraw

import (
	"fmt"
	"math"
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Quantize rounds a coordinate value to the 4 decimal places of the
// canonical form. Applied on parse so that values survive a
// serialize/parse round trip unchanged.
func Quantize(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// FormatValue writes a coordinate value in the canonical LDraw textual form:
// at most 4 decimal places, trailing zeros and a trailing decimal point
// stripped, and negative zero collapsed to "0". Canonical formatting matters
// because serialized lines feed both file output and content hashing.
func FormatValue(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// FormatVector writes the three components of v separated by single spaces.
func FormatVector(v geom.Vector) string {
	return FormatValue(v.X) + " " + FormatValue(v.Y) + " " + FormatValue(v.Z)
}

// FormatMatrix writes the nine row-major values of m separated by single
// spaces.
func FormatMatrix(m geom.Matrix) string {
	vals := m.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, " ")
}
