package models

import (
	"fmt"
	"strings"
)

// Color is one of the fixed palette identifiers used to tint a habit.
type Color string

const (
	ColorBlue   Color = "blue-500"
	ColorGreen  Color = "green-500"
	ColorRed    Color = "red-500"
	ColorYellow Color = "yellow-500"
	ColorPurple Color = "purple-500"
	ColorPink   Color = "pink-500"
	ColorIndigo Color = "indigo-500"
	ColorTeal   Color = "teal-500"

	DefaultColor = ColorBlue
)

// ColorOption pairs a palette value with its human label and a terminal color.
type ColorOption struct {
	Value Color
	Label string
	// ANSI is a hex color lipgloss can render.
	ANSI string
}

// Palette lists the colors in display order.
var Palette = []ColorOption{
	{ColorBlue, "Blue", "#3b82f6"},
	{ColorGreen, "Green", "#22c55e"},
	{ColorRed, "Red", "#ef4444"},
	{ColorYellow, "Yellow", "#eab308"},
	{ColorPurple, "Purple", "#a855f7"},
	{ColorPink, "Pink", "#ec4899"},
	{ColorIndigo, "Indigo", "#6366f1"},
	{ColorTeal, "Teal", "#14b8a6"},
}

// Valid reports whether c is a palette value.
func (c Color) Valid() bool {
	_, ok := c.option()
	return ok
}

// Label returns the human label, or the raw value for colors outside the palette.
func (c Color) Label() string {
	if o, ok := c.option(); ok {
		return o.Label
	}
	return string(c)
}

// Hex returns the terminal color for c, falling back to the default color.
func (c Color) Hex() string {
	if o, ok := c.option(); ok {
		return o.ANSI
	}
	o, _ := DefaultColor.option()
	return o.ANSI
}

func (c Color) option() (ColorOption, bool) {
	for _, o := range Palette {
		if o.Value == c {
			return o, true
		}
	}
	return ColorOption{}, false
}

// ParseColor accepts a palette value ("teal-500") or label ("teal").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, o := range Palette {
		if string(o.Value) == s || strings.ToLower(o.Label) == s {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("invalid color: %s", s)
}
