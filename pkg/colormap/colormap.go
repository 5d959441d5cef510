// Package colormap maps escape-time iteration counts to packed ARGB8888 colors.
//
// Escaped points walk a cyclic gradient over an 8-entry palette, BandWidth
// iterations per palette step. Points that never escaped are opaque black.
package colormap

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

const (
	// BandWidth is the number of iterations spent blending from one palette
	// entry to the next.
	BandWidth = 50

	// Black is the in-set color.
	Black uint32 = 0xff << 24

	paletteLen  = 8
	cycleLength = BandWidth * paletteLen
)

// Palette is the gradient, repeated cyclically; the last entry blends back
// into the first.
var Palette = [paletteLen]RGB{
	{0, 0, 0},
	{0, 0, 255},
	{0, 128, 255},
	{0, 255, 128},
	{128, 128, 0},
	{255, 128, 0},
	{255, 255, 128},
	{255, 255, 255},
}

// cycle holds one full pass through the palette, indexed by iteration % cycleLength.
var cycle [cycleLength]uint32

func init() {
	for i := range cycle {
		cycle[i] = blend(uint32(i))
	}
}

// PackARGB packs an opaque color as 0xAARRGGBB.
func PackARGB(r, g, b uint8) uint32 {
	return 0xff<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Color returns the color for a point that took iteration steps out of
// maxIteration. It is total: every input maps to an opaque color.
func Color(iteration, maxIteration uint32) uint32 {
	if maxIteration == 0 || iteration >= maxIteration {
		return Black
	}
	return cycle[iteration%cycleLength]
}

// blend computes the gradient color directly, without the table.
func blend(iteration uint32) uint32 {
	band := iteration / BandWidth
	t := float64(iteration%BandWidth) / BandWidth

	start := Palette[band%paletteLen]
	end := Palette[(band+1)%paletteLen]
	return PackARGB(
		Lerp(start.R, end.R, t),
		Lerp(start.G, end.G, t),
		Lerp(start.B, end.B, t),
	)
}

// Lerp blends lower toward upper by t. The result is truncated, not rounded.
func Lerp(lower, upper uint8, t float64) uint8 {
	if t <= 0 {
		return lower
	}
	if t >= 1 {
		return upper
	}
	v := int(float64(lower) + (float64(upper)-float64(lower))*t)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	//nolint:gosec // G115: v is clamped to [0,255]
	return uint8(v)
}
