// Package network measures the wire networks of a finished maze.
package network

import (
	"github.com/spakin/disjoint"

	"github.com/lawnchairsociety/wiremaze/internal/wfc"
)

// Stats summarizes the connectivity of a collapsed grid
type Stats struct {
	Networks   int // connected groups of wired cells
	Largest    int // cells in the biggest network
	Empty      int // cells with no connections at all
	OpenEnds   int // wired edges that run off the grid
	Mismatches int // adjacent edges whose strengths disagree
}

// Analyze walks a fully collapsed grid and joins every pair of neighbours
// whose facing edges both carry a wire.
func Analyze(g *wfc.Grid) (Stats, error) {
	if !g.IsCollapsed() {
		return Stats{}, wfc.ErrNotCollapsed
	}

	var stats Stats
	width, height := g.Width(), g.Height()

	sets := make([][]*disjoint.Element, height)
	for y := range sets {
		sets[y] = make([]*disjoint.Element, width)
		for x := range sets[y] {
			sets[y][x] = disjoint.NewElement()
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := g.Cell(x, y).Tile()
			if tile.ConnectionCount() == 0 {
				stats.Empty++
			}

			for _, dir := range wfc.AllDirections() {
				edge := tile.Edge(dir)
				neighbor := g.Neighbor(x, y, dir)
				if neighbor == nil {
					if edge != wfc.None {
						stats.OpenEnds++
					}
					continue
				}

				// Each pair is visited from both sides; count it from the right/down side only
				if dir != wfc.Right && dir != wfc.Down {
					continue
				}
				facing := neighbor.Tile().Edge(dir.Opposite())
				if edge != facing {
					stats.Mismatches++
				}
				if edge != wfc.None && facing != wfc.None {
					disjoint.Union(sets[y][x], sets[neighbor.Y][neighbor.X])
				}
			}
		}
	}

	sizes := make(map[*disjoint.Element]int)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if g.Cell(x, y).Tile().ConnectionCount() == 0 {
				continue
			}
			sizes[sets[y][x].Find()]++
		}
	}

	stats.Networks = len(sizes)
	for _, n := range sizes {
		if n > stats.Largest {
			stats.Largest = n
		}
	}
	return stats, nil
}
