package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear homes the cursor and wipes the screen
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws a grid as block glyphs, one text row per grid row
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid to the renderer's writer
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	cells := g.Cells()
	for i := range cells {
		if cells[i].Alive {
			w.WriteString(gridPosBlock)
		} else {
			w.WriteString(gridPosEmpty)
		}
		if cells[i].Position().X == g.GetWidth()-1 {
			w.WriteByte('\n')
		}
	}
	return errors.Wrap(w.Flush(), "[Display] failed to write grid")
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClear)
	return errors.Wrap(err, "[Clear] failed to clear terminal")
}
