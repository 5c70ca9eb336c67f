package theme

import (
	"math"
	"strconv"
	"strings"
)

// Adapt downgrades colors the terminal cannot show. At colorDepth >= 24 the
// palette is returned unchanged; below that RGB colors become their nearest
// 256-color index, and below 8 bits every color is folded onto the 16 ANSI
// colors.
func Adapt(p Palette, colorDepth int) Palette {
	if colorDepth >= 24 {
		return p
	}
	for _, s := range Slots {
		c := p.Get(s)
		if c.Kind == RGB {
			c = Color{Kind: Indexed, Index: uint8(thTo256Color(c.R, c.G, c.B))}
		}
		if colorDepth < 8 && c.Kind == Indexed && c.Index > 15 {
			c = Color{Kind: Named, Index: thTo16Color(c.Index)}
		}
		p.set(s, c)
	}
	return p
}

// thTo256Color returns the nearest 256-color ANSI index for an RGB value.
func thTo256Color(r, g, b uint8) int {
	cubeIdx := thNearestCubeIndex(r, g, b)
	grayIdx := thNearestGray(r, g, b)

	// Calculate distances for both candidates and pick the closer one.
	cubeDist := thCubeDistance(r, g, b, cubeIdx)
	grayDist := thGrayDistance(r, g, b, grayIdx)

	if grayDist < cubeDist {
		return grayIdx
	}
	return cubeIdx
}

// thANSI16 holds the xterm default RGB values of the 16 ANSI colors.
var thANSI16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// thTo16Color maps a 256-color index onto the nearest ANSI color.
func thTo16Color(idx uint8) uint8 {
	if idx < 16 {
		return idx
	}
	var r, g, b uint8
	if idx >= 232 {
		v := thGrayToValue(int(idx))
		r, g, b = v, v, v
	} else {
		r, g, b = thCubeToRGB(int(idx))
	}
	best := uint8(0)
	bestDist := math.MaxFloat64
	for i, c := range thANSI16 {
		d := thColorDistance(r, g, b, c[0], c[1], c[2])
		if d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}

// thNearestCubeIndex finds the nearest color in the 6x6x6 color cube
// (indices 16-231 of the 256-color palette).
func thNearestCubeIndex(r, g, b uint8) int {
	// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
	ri := thNearestCubeComponent(r)
	gi := thNearestCubeComponent(g)
	bi := thNearestCubeComponent(b)
	return 16 + 36*ri + 6*gi + bi
}

// thNearestCubeComponent maps a 0-255 value to the nearest 6-level cube index (0-5).
func thNearestCubeComponent(v uint8) int {
	// Cube levels: 0, 95, 135, 175, 215, 255
	levels := [6]int{0, 95, 135, 175, 215, 255}
	best := 0
	bestDist := math.MaxInt32
	for i, lv := range levels {
		d := thAbsInt(int(v) - lv)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// thNearestGray finds the nearest color in the 24-step grayscale ramp
// (indices 232-255 of the 256-color palette).
func thNearestGray(r, g, b uint8) int {
	// Grayscale ramp: indices 232-255, values 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	if gray < 4 {
		// Closer to black (index 16 in cube, but we return the first gray).
		return 232
	}
	if gray > 243 {
		// Closer to white (index 231 in cube, but we return the last gray).
		return 255
	}
	// Each gray step is 10 apart starting at 8.
	idx := (gray - 8 + 5) / 10
	if idx < 0 {
		idx = 0
	}
	if idx > 23 {
		idx = 23
	}
	return 232 + idx
}

// thCubeDistance calculates the color distance between an RGB value and a
// 256-color cube index.
func thCubeDistance(r, g, b uint8, cubeIdx int) float64 {
	cr, cg, cb := thCubeToRGB(cubeIdx)
	return thColorDistance(r, g, b, cr, cg, cb)
}

// thGrayDistance calculates the color distance between an RGB value and a
// 256-color grayscale index.
func thGrayDistance(r, g, b uint8, grayIdx int) float64 {
	gv := thGrayToValue(grayIdx)
	return thColorDistance(r, g, b, gv, gv, gv)
}

// thCubeToRGB converts a 256-color cube index (16-231) to RGB values.
func thCubeToRGB(idx int) (r, g, b uint8) {
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	idx -= 16
	ri := idx / 36
	gi := (idx % 36) / 6
	bi := idx % 6
	return levels[ri], levels[gi], levels[bi]
}

// thGrayToValue converts a 256-color grayscale index (232-255) to a gray level.
func thGrayToValue(idx int) uint8 {
	// Gray values: 8, 18, 28, ..., 238
	return uint8(8 + (idx-232)*10)
}

// thColorDistance calculates the Euclidean distance between two RGB colors.
func thColorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// thParseHex parses a hex color string into r, g, b components.
// Accepts "#RRGGBB" or "RRGGBB" formats.
func thParseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// thAbsInt returns the absolute value of an integer.
func thAbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
