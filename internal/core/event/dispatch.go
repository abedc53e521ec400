package event

import (
	"time"

	"skelviz/internal/core/frame"
)

// DispatchSystem delivers the previous frame's events at frame start.
type DispatchSystem struct {
	bus *Bus
}

func NewDispatchSystem(b *Bus) *DispatchSystem {
	return &DispatchSystem{bus: b}
}

func (s *DispatchSystem) Phase() frame.Phase { return frame.PhaseEvents }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapAndDispatch()
}
