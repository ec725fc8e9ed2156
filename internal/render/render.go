// Package render turns grid snapshots into printable text.
package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/lawnchairsociety/wiremaze/internal/wfc"
)

// Placeholder is shown for cells with ten or more candidates, and for
// contradicted cells that have none.
const Placeholder = '?'

// CellGlyph returns the character displayed for a cell: the tile symbol once
// collapsed, the candidate count while it is between 2 and 9, else Placeholder.
func CellGlyph(c *wfc.Cell) rune {
	n := c.DomainSize()
	switch {
	case n == 1:
		return c.Tile().Symbol
	case n >= 2 && n <= 9:
		return rune('0' + n)
	default:
		return Placeholder
	}
}

// Lines renders the grid as one string per row
func Lines(g *wfc.Grid) []string {
	lines := make([]string, g.Height())
	row := make([]rune, g.Width())
	for y := range lines {
		for x := range row {
			row[x] = CellGlyph(g.Cell(x, y))
		}
		lines[y] = string(row)
	}
	return lines
}

// Text renders the grid as newline-terminated rows
func Text(g *wfc.Grid) string {
	var sb strings.Builder
	for _, line := range Lines(g) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write renders the grid to w
func Write(w io.Writer, g *wfc.Grid) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(g) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
