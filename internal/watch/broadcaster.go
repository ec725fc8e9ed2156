package watch

import (
	"github.com/lawnchairsociety/wiremaze/internal/render"
	"github.com/lawnchairsociety/wiremaze/internal/wfc"
)

// Broadcaster is a solver observer that publishes every intermediate grid.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// Observe renders the grid after a collapse and broadcasts it.
func (b *Broadcaster) Observe(step wfc.Step) {
	b.Publish(step.Grid)
}

// Publish broadcasts the current grid, e.g. the final or partial result.
func (b *Broadcaster) Publish(g *wfc.Grid) {
	b.hub.Broadcast([]byte(render.Text(g)))
}
