package scene

import (
	"time"

	"skelviz/internal/core/ecs"
	"skelviz/internal/core/frame"
)

// TransformSystem recomposes every node's world matrix once per frame,
// before the debug-draw pass reads them.
type TransformSystem struct {
	graph *Graph
}

func NewTransformSystem(g *Graph) *TransformSystem {
	return &TransformSystem{graph: g}
}

func (s *TransformSystem) Phase() frame.Phase { return frame.PhaseTransform }

func (s *TransformSystem) Update(_ time.Duration) {
	s.graph.Recompute()
}

// CleanupSystem flushes queued entity destruction at the end of each frame.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(w *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() frame.Phase { return frame.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
