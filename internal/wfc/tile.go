package wfc

import "fmt"

// Direction indexes the four edges of a cell
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	default:
		return d
	}
}

// Offset returns the coordinate step towards the neighbor in this direction.
// Y grows downwards.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	}
	return 0, 0
}

// AllDirections returns all four directions in edge order
func AllDirections() []Direction {
	return []Direction{Left, Up, Right, Down}
}

// Connection is the wire style a tile presents on one edge
type Connection int

const (
	None Connection = iota
	Single
	Double
)

// String returns the string representation of a Connection
func (c Connection) String() string {
	switch c {
	case None:
		return "none"
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// AllConnections returns every connection strength
func AllConnections() []Connection {
	return []Connection{None, Single, Double}
}

// ParseConnection converts a connection name back into a Connection
func ParseConnection(s string) (Connection, error) {
	switch s {
	case "none", "":
		return None, nil
	case "single":
		return Single, nil
	case "double":
		return Double, nil
	}
	return None, fmt.Errorf("wfc: unknown connection %q", s)
}

// Tile is a single catalog entry: a display symbol and one connection per edge.
// Tiles are shared by pointer between cells and must not be modified.
type Tile struct {
	Symbol rune
	Edges  [4]Connection
}

// NewTile creates a tile from its symbol and its left, up, right and down edges
func NewTile(symbol rune, left, up, right, down Connection) Tile {
	return Tile{
		Symbol: symbol,
		Edges:  [4]Connection{left, up, right, down},
	}
}

// Edge returns the connection presented on the given edge
func (t *Tile) Edge(dir Direction) Connection {
	return t.Edges[dir]
}

// ConnectionCount returns the number of edges carrying a wire
func (t *Tile) ConnectionCount() int {
	count := 0
	for _, c := range t.Edges {
		if c != None {
			count++
		}
	}
	return count
}

// String returns the tile's symbol
func (t *Tile) String() string {
	return string(t.Symbol)
}
