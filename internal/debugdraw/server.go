package debugdraw

import (
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// StreamServer broadcasts encoded frames to connected viewer clients over
// TCP. The stream is one-way: viewers only read. A viewer that cannot keep up
// has frames dropped rather than stalling the render loop.
type StreamServer struct {
	listener net.Listener
	nextID   atomic.Uint64
	queue    int
	log      *zap.Logger
	closeCh  chan struct{}

	mu      sync.Mutex
	viewers map[uint64]chan []byte
}

func NewStreamServer(bindAddr string, sendQueueSize int, log *zap.Logger) (*StreamServer, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &StreamServer{
		listener: ln,
		queue:    sendQueueSize,
		log:      log,
		closeCh:  make(chan struct{}),
		viewers:  make(map[uint64]chan []byte),
	}, nil
}

// AcceptLoop runs in its own goroutine, registering a writer goroutine per
// viewer connection.
func (s *StreamServer) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("viewer accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		ch := make(chan []byte, s.queue)
		s.mu.Lock()
		s.viewers[id] = ch
		s.mu.Unlock()
		s.log.Info("viewer connected", zap.Uint64("viewer", id), zap.String("addr", conn.RemoteAddr().String()))

		go s.writeLoop(id, conn, ch)
	}
}

func (s *StreamServer) writeLoop(id uint64, conn net.Conn, ch <-chan []byte) {
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.viewers, id)
		s.mu.Unlock()
		s.log.Info("viewer disconnected", zap.Uint64("viewer", id))
	}()

	for {
		select {
		case frame, ok := <-ch:
			if !ok {
				return
			}
			if _, err := conn.Write(frame); err != nil {
				return
			}
		case <-s.closeCh:
			return
		}
	}
}

// Broadcast queues an encoded frame to every connected viewer, dropping it
// for viewers whose send queue is full.
func (s *StreamServer) Broadcast(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.viewers {
		select {
		case ch <- frame:
		default:
			s.log.Debug("viewer queue full, frame dropped", zap.Uint64("viewer", id))
		}
	}
}

// ViewerCount returns the number of connected viewers.
func (s *StreamServer) ViewerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.viewers)
}

// Addr returns the listener's address.
func (s *StreamServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Shutdown stops accepting connections and terminates writer goroutines.
func (s *StreamServer) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}
