package wfc

import (
	"errors"
	"testing"
)

func newTestGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height, DefaultCatalog())
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", width, height, err)
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g := newTestGrid(t, 10, 4)

	if g.Width() != 10 || g.Height() != 4 {
		t.Errorf("size = %dx%d, want 10x4", g.Width(), g.Height())
	}

	catalogSize := g.Catalog().Len()
	g.Each(func(c *Cell) {
		if c.DomainSize() != catalogSize {
			t.Errorf("cell (%d,%d) DomainSize() = %d, want %d", c.X, c.Y, c.DomainSize(), catalogSize)
		}
		if c.IsCollapsed() || c.Tile() != nil {
			t.Errorf("cell (%d,%d) should start undetermined", c.X, c.Y)
		}
	})
	if g.IsCollapsed() {
		t.Error("fresh grid reports IsCollapsed")
	}
}

func TestNewGridInvalidSize(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 5},
		{5, 0},
		{-1, 5},
		{5, -3},
		{0, 0},
	}

	for _, tt := range tests {
		g, err := NewGrid(tt.width, tt.height, DefaultCatalog())
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d) error = %v, want %v", tt.width, tt.height, err, ErrInvalidSize)
		}
		if g != nil {
			t.Errorf("NewGrid(%d, %d) returned a grid", tt.width, tt.height)
		}
	}
}

func TestNewGridEmptyCatalog(t *testing.T) {
	if _, err := NewGrid(3, 3, NewCatalog(nil)); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty catalog error = %v, want %v", err, ErrEmptyCatalog)
	}
	if _, err := NewGrid(3, 3, nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("nil catalog error = %v, want %v", err, ErrEmptyCatalog)
	}
}

func TestGridCellOutOfBounds(t *testing.T) {
	g := newTestGrid(t, 5, 5)

	for _, p := range []Point{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {5, 5}, {-1, -1}} {
		if g.Cell(p.X, p.Y) != nil {
			t.Errorf("Cell(%d,%d) should be nil", p.X, p.Y)
		}
		if g.InBounds(p.X, p.Y) {
			t.Errorf("InBounds(%d,%d) = true, want false", p.X, p.Y)
		}
	}

	cell := g.Cell(4, 2)
	if cell == nil {
		t.Fatal("Cell(4,2) = nil")
	}
	if cell.X != 4 || cell.Y != 2 {
		t.Errorf("Cell(4,2) reports (%d,%d)", cell.X, cell.Y)
	}
}

func TestGridNeighbor(t *testing.T) {
	g := newTestGrid(t, 5, 5)

	tests := []struct {
		dir          Direction
		wantX, wantY int
	}{
		{Left, 1, 2},
		{Up, 2, 1},
		{Right, 3, 2},
		{Down, 2, 3},
	}
	for _, tt := range tests {
		cell := g.Neighbor(2, 2, tt.dir)
		if cell == nil {
			t.Errorf("Neighbor(2,2,%s) = nil", tt.dir)
			continue
		}
		if cell.X != tt.wantX || cell.Y != tt.wantY {
			t.Errorf("Neighbor(2,2,%s) = (%d,%d), want (%d,%d)", tt.dir, cell.X, cell.Y, tt.wantX, tt.wantY)
		}
	}

	edges := []struct {
		x, y int
		dir  Direction
	}{
		{0, 0, Left},
		{0, 0, Up},
		{4, 4, Right},
		{4, 4, Down},
	}
	for _, e := range edges {
		if g.Neighbor(e.x, e.y, e.dir) != nil {
			t.Errorf("Neighbor(%d,%d,%s) should be nil", e.x, e.y, e.dir)
		}
	}
}

func TestCellDomainIsACopy(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	cell := g.Cell(0, 0)

	domain := cell.Domain()
	domain[0] = nil

	if cell.Domain()[0] == nil {
		t.Error("mutating Domain() result changed the cell")
	}
	if cell.DomainSize() != g.Catalog().Len() {
		t.Errorf("DomainSize() = %d, want %d", cell.DomainSize(), g.Catalog().Len())
	}
}

func TestPointStep(t *testing.T) {
	p := Point{X: 3, Y: 3}

	tests := []struct {
		dir  Direction
		want Point
	}{
		{Left, Point{2, 3}},
		{Up, Point{3, 2}},
		{Right, Point{4, 3}},
		{Down, Point{3, 4}},
	}
	for _, tt := range tests {
		if got := p.Step(tt.dir); got != tt.want {
			t.Errorf("Step(%s) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGrid(t, 3, 2)
	sizes := g.Snapshot()

	if len(sizes) != 2 {
		t.Fatalf("Snapshot() has %d rows, want 2", len(sizes))
	}
	for y, row := range sizes {
		if len(row) != 3 {
			t.Fatalf("row %d has %d columns, want 3", y, len(row))
		}
		for x, n := range row {
			if n != 41 {
				t.Errorf("Snapshot()[%d][%d] = %d, want 41", y, x, n)
			}
		}
	}
}
