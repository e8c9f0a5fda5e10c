package render

// Terminal cells are roughly twice as tall as they are wide, so each cell
// shows two vertically stacked pixels.

const (
	blockFull  = '█'
	blockUpper = '▀'
	blockLower = '▄'
	blockEmpty = ' '
)

// HalfBlock returns the glyph that shows the top and bottom pixel of a cell,
// drawn in the foreground colour on the background colour.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return blockFull
	case top:
		return blockUpper
	case bottom:
		return blockLower
	default:
		return blockEmpty
	}
}

// Truncate cuts s to at most width runes, marking the cut with "..." when
// there is room for it.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}
