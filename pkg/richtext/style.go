package richtext

import (
	"strings"
)

// InlineStyle is a formatting attribute applied to a range of text.
type InlineStyle string

const (
	StyleBold      InlineStyle = "BOLD"
	StyleItalic    InlineStyle = "ITALIC"
	StyleUnderline InlineStyle = "UNDERLINE"

	colorPrefix = "COLOR-"
)

// Color is one of the fixed palette entries.
type Color string

const (
	ColorRed    Color = "RED"
	ColorBlue   Color = "BLUE"
	ColorGreen  Color = "GREEN"
	ColorPurple Color = "PURPLE"
	ColorOrange Color = "ORANGE"
)

// Palette is the closed set of text colors, in toolbar order.
var Palette = []Color{ColorRed, ColorBlue, ColorGreen, ColorPurple, ColorOrange}

// cssNames maps palette colors to the CSS values other editors write.
var cssNames = map[Color][]string{
	ColorRed:    {"red", "#ff0000", "#f00", "rgb(255, 0, 0)"},
	ColorBlue:   {"blue", "#0000ff", "#00f", "rgb(0, 0, 255)"},
	ColorGreen:  {"green", "#008000", "rgb(0, 128, 0)"},
	ColorPurple: {"purple", "#800080", "rgb(128, 0, 128)"},
	ColorOrange: {"orange", "#ffa500", "rgb(255, 165, 0)"},
}

// ColorStyle returns the inline style for a palette color.
func ColorStyle(c Color) InlineStyle {
	return InlineStyle(colorPrefix + string(c))
}

// IsColor reports whether s is a palette color style.
func (s InlineStyle) IsColor() bool {
	_, ok := s.Color()
	return ok
}

// Color returns the palette color carried by s.
func (s InlineStyle) Color() (Color, bool) {
	if !strings.HasPrefix(string(s), colorPrefix) {
		return "", false
	}
	c := Color(strings.TrimPrefix(string(s), colorPrefix))
	for _, p := range Palette {
		if p == c {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether s belongs to the closed set of inline styles.
func (s InlineStyle) Valid() bool {
	switch s {
	case StyleBold, StyleItalic, StyleUnderline:
		return true
	}
	return s.IsColor()
}

// ParseInlineStyle accepts "bold", "BOLD", "red", "color-red" and similar.
func ParseInlineStyle(s string) (InlineStyle, bool) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if style := InlineStyle(up); style.Valid() {
		return style, true
	}
	if style := ColorStyle(Color(up)); style.Valid() {
		return style, true
	}
	return "", false
}

// CSS returns the lowercase CSS color name for c.
func (c Color) CSS() string {
	return strings.ToLower(string(c))
}

// StyleMap represents parsed CSS declarations.
type StyleMap map[string]string

// ParseStyle parses a CSS declaration list such as "color: #F97316; font-size: 12px;".
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	for _, part := range strings.Split(styleStr, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			v := strings.TrimSpace(kv[1])
			if k != "" && v != "" {
				styles[k] = v
			}
		}
	}
	return styles
}

// PaletteColor maps the "color" declaration to a palette entry, if any.
func (s StyleMap) PaletteColor() (Color, bool) {
	v, ok := s["color"]
	if !ok {
		return "", false
	}
	v = strings.ToLower(strings.TrimSpace(v))
	for _, c := range Palette {
		for _, name := range cssNames[c] {
			if v == name {
				return c, true
			}
		}
	}
	return "", false
}
