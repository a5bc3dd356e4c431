// Package dither converts float samples to integer PCM with optional dither
// noise and error-feedback noise shaping.
package dither

import "fmt"

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone rounds without added noise.
	DitherNone DitherType = iota
	// DitherRectangular adds uniform noise of ±amplitude LSB.
	DitherRectangular
	// DitherTriangular adds triangular (TPDF) noise of ±amplitude LSB.
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"none", "rectangular", "triangular"}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps a name returned by String back to a DitherType.
func ParseDitherType(name string) (DitherType, error) {
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}
	return DitherNone, fmt.Errorf("dither: unknown dither type %q", name)
}
