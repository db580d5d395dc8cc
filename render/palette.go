package render

import (
	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
)

// Background is the canvas color (Tokyo Night)
var Background = RGB{26, 27, 38}

// StatusFg is the status line text color
var StatusFg = RGB{169, 177, 214}

// noteColors maps each note to its ring and spot color
var noteColors = [parameter.NoteCount]RGB{
	{255, 0, 0},   // red
	{255, 200, 0}, // orange
	{255, 255, 0}, // yellow
	{0, 255, 0},   // green
	{48, 48, 255}, // blue
	{255, 0, 255}, // magenta
}

// NoteColor returns the palette color for n, out-of-range notes draw white
func NoteColor(n engine.Note) RGB {
	if !n.Valid() {
		return RGB{255, 255, 255}
	}
	return noteColors[n]
}
