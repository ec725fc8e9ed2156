package wfc

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog    = errors.New("wfc: catalog has no tiles")
	ErrCatalogCoverage = errors.New("wfc: catalog does not cover every connection on every edge")
	ErrDuplicateSymbol = errors.New("wfc: duplicate tile symbol")
)

// Catalog is the fixed, ordered set of tiles a grid is built from
type Catalog struct {
	tiles []Tile
}

// NewCatalog creates a catalog holding a copy of the given tiles.
// It does not validate them; see Validate.
func NewCatalog(tiles []Tile) *Catalog {
	c := &Catalog{tiles: make([]Tile, len(tiles))}
	copy(c.tiles, tiles)
	return c
}

// Len returns the number of tiles in the catalog
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tiles)
}

// Tile returns the i-th tile
func (c *Catalog) Tile(i int) *Tile {
	return &c.tiles[i]
}

// Tiles returns pointers to every tile in catalog order
func (c *Catalog) Tiles() []*Tile {
	out := make([]*Tile, len(c.tiles))
	for i := range c.tiles {
		out[i] = &c.tiles[i]
	}
	return out
}

// Validate checks that the catalog is usable for generation: it must be
// non-empty, symbols must be unique, and for every connection strength and
// every direction at least one tile must present that strength on that edge.
func (c *Catalog) Validate() error {
	if c.Len() == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[rune]bool, len(c.tiles))
	for _, t := range c.tiles {
		if seen[t.Symbol] {
			return fmt.Errorf("%w: %q", ErrDuplicateSymbol, t.Symbol)
		}
		seen[t.Symbol] = true
	}

	for _, dir := range AllDirections() {
		for _, conn := range AllConnections() {
			if !c.presents(dir, conn) {
				return fmt.Errorf("%w: no tile with %s on %s edge", ErrCatalogCoverage, conn, dir)
			}
		}
	}
	return nil
}

func (c *Catalog) presents(dir Direction, conn Connection) bool {
	for i := range c.tiles {
		if c.tiles[i].Edge(dir) == conn {
			return true
		}
	}
	return false
}

// Lookup finds a tile by symbol
func (c *Catalog) Lookup(symbol rune) (*Tile, bool) {
	for i := range c.tiles {
		if c.tiles[i].Symbol == symbol {
			return &c.tiles[i], true
		}
	}
	return nil, false
}

// DefaultCatalog returns the reference box-drawing catalog: the empty tile,
// single and double line runs, corners, tees and crossings, and the mixed
// single/double junctions. It has no single-edge stubs.
func DefaultCatalog() *Catalog {
	const n, s, d = None, Single, Double
	return NewCatalog([]Tile{
		NewTile(' ', n, n, n, n),

		NewTile('│', n, s, n, s),
		NewTile('─', s, n, s, n),
		NewTile('┐', s, n, n, s),
		NewTile('┌', n, n, s, s),
		NewTile('┘', s, s, n, n),
		NewTile('└', n, s, s, n),
		NewTile('┬', s, n, s, s),
		NewTile('┴', s, s, s, n),
		NewTile('┤', s, s, n, s),
		NewTile('├', n, s, s, s),
		NewTile('┼', s, s, s, s),

		NewTile('║', n, d, n, d),
		NewTile('═', d, n, d, n),
		NewTile('╗', d, n, n, d),
		NewTile('╔', n, n, d, d),
		NewTile('╝', d, d, n, n),
		NewTile('╚', n, d, d, n),
		NewTile('╦', d, n, d, d),
		NewTile('╩', d, d, d, n),
		NewTile('╣', d, d, n, d),
		NewTile('╠', n, d, d, d),
		NewTile('╬', d, d, d, d),

		NewTile('╡', d, s, n, s),
		NewTile('╢', s, d, n, d),
		NewTile('╖', s, n, n, d),
		NewTile('╕', d, n, n, s),
		NewTile('╜', s, d, n, n),
		NewTile('╛', d, s, n, n),
		NewTile('╞', n, s, d, s),
		NewTile('╟', n, d, s, d),
		NewTile('╧', d, s, d, n),
		NewTile('╨', s, d, s, n),
		NewTile('╤', d, n, d, s),
		NewTile('╥', s, n, s, d),
		NewTile('╙', n, d, s, n),
		NewTile('╘', n, s, d, n),
		NewTile('╒', n, n, d, s),
		NewTile('╓', n, n, s, d),
		NewTile('╫', s, d, s, d),
		NewTile('╪', d, s, d, s),
	})
}
