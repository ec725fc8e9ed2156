package wfc

import "errors"

var (
	ErrInvalidSize  = errors.New("wfc: invalid grid size")
	ErrOutOfBounds  = errors.New("wfc: coordinates out of bounds")
	ErrNotCollapsed = errors.New("wfc: grid is not fully collapsed")
)

// Point is a grid coordinate
type Point struct {
	X, Y int
}

// Step returns the neighboring point in the given direction
func (p Point) Step(dir Direction) Point {
	dx, dy := dir.Offset()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Cell holds the tiles still possible at one grid position
type Cell struct {
	X, Y   int
	domain []*Tile
}

// DomainSize returns the number of remaining candidate tiles
func (c *Cell) DomainSize() int {
	return len(c.domain)
}

// IsCollapsed returns true once exactly one candidate remains
func (c *Cell) IsCollapsed() bool {
	return len(c.domain) == 1
}

// IsContradiction returns true if no candidate remains
func (c *Cell) IsContradiction() bool {
	return len(c.domain) == 0
}

// Tile returns the single remaining tile, or nil if the cell is not collapsed
func (c *Cell) Tile() *Tile {
	if len(c.domain) != 1 {
		return nil
	}
	return c.domain[0]
}

// Domain returns a copy of the remaining candidates in catalog order
func (c *Cell) Domain() []*Tile {
	out := make([]*Tile, len(c.domain))
	copy(out, c.domain)
	return out
}

// edge reports the connection shared by every candidate on dir.
// ok is false when the candidates disagree or the domain is empty.
func (c *Cell) edge(dir Direction) (conn Connection, ok bool) {
	if len(c.domain) == 0 {
		return None, false
	}
	conn = c.domain[0].Edge(dir)
	for _, t := range c.domain[1:] {
		if t.Edge(dir) != conn {
			return None, false
		}
	}
	return conn, true
}

// Grid is a fixed-size rectangle of cells. It exclusively owns its cells and
// is mutated in place by propagation and collapse.
type Grid struct {
	width, height int
	catalog       *Catalog
	cells         [][]*Cell
}

// NewGrid creates a grid where every cell may still be any catalog tile
func NewGrid(width, height int, catalog *Catalog) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	g := &Grid{
		width:   width,
		height:  height,
		catalog: catalog,
		cells:   make([][]*Cell, height),
	}
	for y := 0; y < height; y++ {
		g.cells[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			g.cells[y][x] = &Cell{
				X:      x,
				Y:      y,
				domain: catalog.Tiles(),
			}
		}
	}
	return g, nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Catalog returns the catalog the grid was built from
func (g *Grid) Catalog() *Catalog { return g.catalog }

// InBounds returns true if (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the cell at (x, y), or nil for coordinates outside the grid.
// Out-of-bounds positions are open space and never constrain anything.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y][x]
}

// Neighbor returns the cell next to (x, y) in the given direction, or nil
func (g *Grid) Neighbor(x, y int, dir Direction) *Cell {
	dx, dy := dir.Offset()
	return g.Cell(x+dx, y+dy)
}

// Each calls fn for every cell in row-major order
func (g *Grid) Each(fn func(c *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(g.cells[y][x])
		}
	}
}

// IsCollapsed returns true when every cell holds exactly one tile
func (g *Grid) IsCollapsed() bool {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.cells[y][x].IsCollapsed() {
				return false
			}
		}
	}
	return true
}

// Snapshot returns the domain size of every cell, indexed [y][x]
func (g *Grid) Snapshot() [][]int {
	sizes := make([][]int, g.height)
	for y := 0; y < g.height; y++ {
		sizes[y] = make([]int, g.width)
		for x := 0; x < g.width; x++ {
			sizes[y][x] = len(g.cells[y][x].domain)
		}
	}
	return sizes
}
