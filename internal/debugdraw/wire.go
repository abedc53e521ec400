package debugdraw

import (
	"encoding/binary"
	"math"
)

// Viewer stream opcodes. A frame is encoded as one FrameBegin record, the
// frame's point records, its line records, then FrameEnd. All multi-byte
// values are little-endian.
const (
	OpFrameBegin byte = 0x01
	OpPoint      byte = 0x02
	OpLine       byte = 0x03
	OpFrameEnd   byte = 0x04
)

// Writer builds a viewer stream record.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

func NewWriterWithOpcode(opcode byte) *Writer {
	w := &Writer{buf: make([]byte, 0, 256)}
	w.WriteC(opcode)
	return w
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.buf = append(w.buf, v)
}

// WriteD writes 4 bytes little-endian.
func (w *Writer) WriteD(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteF writes a float64 as 8 bytes little-endian.
func (w *Writer) WriteF(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteRGB(c RGB) {
	w.WriteF(c.R)
	w.WriteF(c.G)
	w.WriteF(c.B)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// EncodeFrame serializes one frame's buffered primitives for the viewer
// stream.
func EncodeFrame(frameIndex uint32, b *Buffer) []byte {
	w := NewWriterWithOpcode(OpFrameBegin)
	w.WriteD(frameIndex)
	w.WriteD(uint32(len(b.points)))
	w.WriteD(uint32(len(b.lines)))

	for i := range b.points {
		p := &b.points[i]
		w.WriteC(OpPoint)
		w.WriteF(p.Position.X())
		w.WriteF(p.Position.Y())
		w.WriteF(p.Position.Z())
		w.WriteRGB(p.Color)
		w.WriteF(p.Radius)
		w.WriteF(p.Border)
	}
	for i := range b.lines {
		l := &b.lines[i]
		w.WriteC(OpLine)
		w.WriteF(l.Start.X())
		w.WriteF(l.Start.Y())
		w.WriteF(l.Start.Z())
		w.WriteF(l.End.X())
		w.WriteF(l.End.Y())
		w.WriteF(l.End.Z())
		w.WriteRGB(l.Color)
	}

	w.WriteC(OpFrameEnd)
	return w.Bytes()
}
