package ui

import (
	"image/color"
	"strings"
)

// Line is one row of free-form HUD text with an optional colour swatch.
type Line struct {
	Text   string
	Swatch *color.RGBA
}

// Title formats a panel title from a simulation name.
func Title(name string) string {
	if name == "" {
		return "Arena"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
