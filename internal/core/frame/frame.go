package frame

import "time"

// Phase defines execution ordering within a single rendered frame.
type Phase int

const (
	PhaseEvents    Phase = iota // 0: deliver last frame's events
	PhaseScript                 // 1: run pose drivers, mutate local transforms
	PhaseTransform              // 2: recompose scene-graph world matrices
	PhaseDebugDraw              // 3: resolve bone poses, emit debug primitives
	PhaseFlush                  // 4: encode + stream the frame, reset buffers
	PhaseCleanup                // 5: destroy queued entities
)

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
