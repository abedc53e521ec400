package debugdraw

import (
	"time"

	"skelviz/internal/core/frame"
)

// FlushSystem runs at the end of each frame: it streams the buffered
// primitives to any connected viewers and resets the buffer. The stream
// server is optional; with none configured the system only resets.
type FlushSystem struct {
	buf    *Buffer
	srv    *StreamServer
	frames uint32
}

func NewFlushSystem(buf *Buffer, srv *StreamServer) *FlushSystem {
	return &FlushSystem{buf: buf, srv: srv}
}

func (s *FlushSystem) Phase() frame.Phase { return frame.PhaseFlush }

func (s *FlushSystem) Update(_ time.Duration) {
	if s.srv != nil && s.buf.Len() > 0 && s.srv.ViewerCount() > 0 {
		s.srv.Broadcast(EncodeFrame(s.frames, s.buf))
	}
	s.buf.Reset()
	s.frames++
}
