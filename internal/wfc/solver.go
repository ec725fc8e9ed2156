package wfc

import (
	"context"
	"errors"
)

var ErrAlreadyCollapsed = errors.New("wfc: cell is already determined")

// State is the lifecycle state of a Solver
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
	StateFailed
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step describes one settled collapse. Grid is only valid for reading, and
// only for the duration of the Observe call.
type Step struct {
	Number int // 1 for the seed collapse
	X, Y   int
	Tile   *Tile
	Grid   *Grid
}

// Observer is notified after every collapse once propagation has settled.
// Observers must not mutate the grid.
type Observer interface {
	Observe(step Step)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(step Step)

// Observe calls f(step)
func (f ObserverFunc) Observe(step Step) { f(step) }

// Result summarizes a finished run
type Result struct {
	Collapses int
	Seed      Point
}

// Solver drives a grid from fully undetermined to fully collapsed using
// minimum-remaining-values selection and edge propagation.
type Solver struct {
	grid      *Grid
	rng       Chooser
	seed      Point
	observers []Observer
	state     State
	collapses int
}

// Option configures a Solver
type Option func(*Solver)

// WithObserver registers an observer for settled collapses
func WithObserver(o Observer) Option {
	return func(s *Solver) {
		s.observers = append(s.observers, o)
	}
}

// WithSeedCell overrides the first cell to collapse (the grid center by default)
func WithSeedCell(x, y int) Option {
	return func(s *Solver) {
		s.seed = Point{X: x, Y: y}
	}
}

// NewSolver creates a solver for the given grid
func NewSolver(grid *Grid, rng Chooser, opts ...Option) *Solver {
	s := &Solver{
		grid: grid,
		rng:  rng,
		seed: Point{X: grid.Width() / 2, Y: grid.Height() / 2},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grid returns the grid being solved
func (s *Solver) Grid() *Grid { return s.grid }

// State returns the current lifecycle state
func (s *Solver) State() State { return s.state }

// Collapses returns the number of forced collapses so far
func (s *Solver) Collapses() int { return s.collapses }

// Run collapses the seed cell, then repeatedly collapses the most constrained
// cell until every cell is determined. The context is checked before every
// collapse, the seed included, so the grid is always settled when Run returns.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	s.state = StateRunning
	if err := ctx.Err(); err != nil {
		s.state = StateFailed
		return nil, err
	}

	// A single-tile catalog leaves nothing to seed
	if err := s.Collapse(s.seed.X, s.seed.Y); err != nil && !errors.Is(err, ErrAlreadyCollapsed) {
		s.state = StateFailed
		return nil, err
	}

	for {
		x, y, ok := s.grid.MostConstrained()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			s.state = StateFailed
			return nil, err
		}
		if err := s.Collapse(x, y); err != nil {
			s.state = StateFailed
			return nil, err
		}
	}

	s.state = StateDone
	return &Result{Collapses: s.collapses, Seed: s.seed}, nil
}

// Collapse commits the cell at (x, y) to one of its candidates, chosen by the
// solver's Chooser, and settles propagation into its neighbors.
func (s *Solver) Collapse(x, y int) error {
	cell := s.grid.Cell(x, y)
	if cell == nil {
		return ErrOutOfBounds
	}
	if len(cell.domain) <= 1 {
		return ErrAlreadyCollapsed
	}

	chosen := cell.domain[s.rng.Intn(len(cell.domain))]
	cell.domain = []*Tile{chosen}
	s.collapses++

	p := Point{X: x, Y: y}
	dirty := make([]Point, 0, 4)
	for _, dir := range AllDirections() {
		dirty = append(dirty, p.Step(dir))
	}
	if err := s.grid.settle(dirty); err != nil {
		return err
	}

	step := Step{Number: s.collapses, X: x, Y: y, Tile: chosen, Grid: s.grid}
	for _, o := range s.observers {
		o.Observe(step)
	}
	return nil
}

// MostConstrained returns the undetermined cell with the fewest candidates.
// Ties go to the first cell in row-major order. ok is false once no cell has
// more than one candidate left.
func (g *Grid) MostConstrained() (x, y int, ok bool) {
	best := 0
	for cy := 0; cy < g.height; cy++ {
		for cx := 0; cx < g.width; cx++ {
			n := len(g.cells[cy][cx].domain)
			if n > 1 && (!ok || n < best) {
				x, y, best, ok = cx, cy, n, true
			}
		}
	}
	return x, y, ok
}
