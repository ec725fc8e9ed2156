package wfc

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ErrContradiction is matched by every *ContradictionError
var ErrContradiction = errors.New("wfc: contradiction - no valid tiles for cell")

// ContradictionError reports the cell whose domain was filtered to empty
type ContradictionError struct {
	X, Y int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("%v at (%d,%d)", ErrContradiction, e.X, e.Y)
}

// Is lets errors.Is match ErrContradiction
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}

// EdgeValue is the constraint a cell imposes across one of its edges:
// either a hard Connection or Unconstrained.
type EdgeValue int

// Unconstrained permits any connection. Hard values reuse the Connection numbering.
const Unconstrained EdgeValue = -1

// Hard returns the EdgeValue requiring exactly conn
func Hard(conn Connection) EdgeValue {
	return EdgeValue(conn)
}

// Connection returns the required connection and whether the value is hard
func (v EdgeValue) Connection() (Connection, bool) {
	if v == Unconstrained {
		return None, false
	}
	return Connection(v), true
}

// Permits returns true if a tile presenting conn satisfies this value
func (v EdgeValue) Permits(conn Connection) bool {
	return v == Unconstrained || Connection(v) == conn
}

func (v EdgeValue) String() string {
	if v == Unconstrained {
		return "?"
	}
	return Connection(v).String()
}

// EdgeValue returns what the cell at (x, y) presents on its dir edge.
// Out-of-bounds cells and cells whose candidates disagree are Unconstrained.
func (g *Grid) EdgeValue(dir Direction, x, y int) EdgeValue {
	cell := g.Cell(x, y)
	if cell == nil {
		return Unconstrained
	}
	conn, ok := cell.edge(dir)
	if !ok {
		return Unconstrained
	}
	return Hard(conn)
}

// outward returns the four values the cell presents to its neighbors
func (g *Grid) outward(x, y int) [4]EdgeValue {
	var values [4]EdgeValue
	for _, dir := range AllDirections() {
		values[dir] = g.EdgeValue(dir, x, y)
	}
	return values
}

// inward returns the four constraints the neighbors impose on (x, y)
func (g *Grid) inward(x, y int) [4]EdgeValue {
	var values [4]EdgeValue
	for _, dir := range AllDirections() {
		dx, dy := dir.Offset()
		values[dir] = g.EdgeValue(dir.Opposite(), x+dx, y+dy)
	}
	return values
}

// Propagate re-filters the cell at (x, y) against its neighbors and cascades
// to every neighbor whose inputs changed, until nothing changes. It is a no-op
// for out-of-bounds or already determined cells.
func (g *Grid) Propagate(x, y int) error {
	return g.settle([]Point{{X: x, Y: y}})
}

// settle drains a FIFO worklist of dirty cells. A point is pending at most
// once; it reads the current state of its neighbors when it is processed.
func (g *Grid) settle(dirty []Point) error {
	queue := make([]Point, 0, len(dirty))
	queued := mapset.New[Point]()

	push := func(p Point) {
		if !g.InBounds(p.X, p.Y) || queued.Has(p) {
			return
		}
		queued.Put(p)
		queue = append(queue, p)
	}

	for _, p := range dirty {
		push(p)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		queued.Remove(p)

		changed, err := g.refine(p.X, p.Y)
		if err != nil {
			return err
		}
		for _, dir := range changed {
			push(p.Step(dir))
		}
	}
	return nil
}

// refine filters one cell and returns the directions whose outward value changed
func (g *Grid) refine(x, y int) ([]Direction, error) {
	cell := g.Cell(x, y)
	// Determined cells are final
	if cell == nil || len(cell.domain) <= 1 {
		return nil, nil
	}

	before := g.outward(x, y)
	constraints := g.inward(x, y)

	kept := make([]*Tile, 0, len(cell.domain))
	for _, t := range cell.domain {
		if fits(t, constraints) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		cell.domain = nil
		return nil, &ContradictionError{X: x, Y: y}
	}
	if len(kept) == len(cell.domain) {
		return nil, nil
	}
	cell.domain = kept

	after := g.outward(x, y)
	var changed []Direction
	for _, dir := range AllDirections() {
		if before[dir] != after[dir] {
			changed = append(changed, dir)
		}
	}
	return changed, nil
}

func fits(t *Tile, constraints [4]EdgeValue) bool {
	for _, dir := range AllDirections() {
		if !constraints[dir].Permits(t.Edge(dir)) {
			return false
		}
	}
	return true
}
