package plot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]string{
	"black":  "000000",
	"blue":   "1f77b4",
	"red":    "d62728",
	"green":  "2ca02c",
	"orange": "ff7f0e",
	"purple": "9467bd",
	"gray":   "7f7f7f",
	"grey":   "7f7f7f",
}

// DefaultColors is the order in which methods are colored when the caller
// does not pick colors.
var DefaultColors = []string{"black", "blue", "red", "green", "orange", "purple"}

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ParseColor accepts a named color or #rrggbb. The empty string is black.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = "black"
	}
	if hex, ok := namedColors[s]; ok {
		return drawing.ColorFromHex(hex), nil
	}
	if !hexColor.MatchString(s) {
		return drawing.Color{}, fmt.Errorf("unknown color %q", s)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#")), nil
}

// ColorAt picks the i-th entry of colors, falling back to DefaultColors.
func ColorAt(colors []string, i int) string {
	if i < len(colors) && colors[i] != "" {
		return colors[i]
	}
	return DefaultColors[i%len(DefaultColors)]
}
