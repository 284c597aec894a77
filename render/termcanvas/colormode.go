package termcanvas

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nightwhale/render"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeAuto      ColorMode = iota // resolve from environment
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeAuto:
		return "auto"
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return fmt.Sprintf("colormode(%d)", uint8(m))
	}
}

// ParseColorMode accepts auto, 256, truecolor and the aliases true and 24bit
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorModeAuto, nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorModeAuto, fmt.Errorf("unknown color mode %q", s)
}

// Resolve turns auto into a concrete mode using the environment
func (m ColorMode) Resolve() ColorMode {
	if m == ColorModeAuto {
		return DetectColorMode()
	}
	return m
}

// truecolorEnv are set by terminals known to render 24-bit colour
var truecolorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}
	for _, key := range truecolorEnv {
		if os.Getenv(key) != "" {
			return ColorModeTrueColor
		}
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") || strings.Contains(term, "24bit") || strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func cubeIndex(v uint8) int {
	best, bestDist := 0, abs(int(v))
	for j := 1; j < len(cubeValues); j++ {
		if d := abs(int(v) - cubeValues[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// RGBTo256 finds the nearest xterm 256-palette index
// Near-gray colours also try the grayscale ramp, level = 8 + 10*(index-232)
func RGBTo256(c render.RGB) uint8 {
	r, g, b := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cube := uint8(16 + 36*r + 6*g + b)

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	maxDiff := max(abs(int(c.R)-gray), abs(int(c.G)-gray), abs(int(c.B)-gray))
	if maxDiff >= 10 || gray < 4 || gray > 243 {
		return cube
	}

	grayIdx := min(grayscaleStart+(gray-8)/10, 255)
	level := 8 + (grayIdx-grayscaleStart)*10
	grayDist := abs(int(c.R)-level) + abs(int(c.G)-level) + abs(int(c.B)-level)
	cubeDist := abs(int(c.R)-cubeValues[r]) + abs(int(c.G)-cubeValues[g]) + abs(int(c.B)-cubeValues[b])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}

func (m ColorMode) color(c render.RGB) tcell.Color {
	if m == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
