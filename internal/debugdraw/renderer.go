package debugdraw

import "github.com/go-gl/mathgl/mgl64"

// RGB is a color with components in 0..1.
type RGB struct {
	R, G, B float64
}

// Fixed axis colors for coordinate-frame triads.
var (
	Red   = RGB{1, 0, 0}
	Green = RGB{0, 1, 0}
	Blue  = RGB{0, 0, 1}
)

// Point is a joint marker primitive.
type Point struct {
	Position mgl64.Vec3
	Color    RGB
	Radius   float64
	Border   float64
}

// Line is a segment primitive.
type Line struct {
	Start, End mgl64.Vec3
	Color      RGB
}

// Buffer is an append-only primitive sink batching one frame's debug
// geometry. Append order is preserved per primitive class. Reset at frame
// flush; never carried across frames.
type Buffer struct {
	points []Point
	lines  []Line
}

func NewBuffer() *Buffer {
	return &Buffer{
		points: make([]Point, 0, 256),
		lines:  make([]Line, 0, 1024),
	}
}

func (b *Buffer) DrawPoint(pos mgl64.Vec3, color RGB, radius, border float64) {
	b.points = append(b.points, Point{Position: pos, Color: color, Radius: radius, Border: border})
}

func (b *Buffer) DrawLine(start, end mgl64.Vec3, color RGB) {
	b.lines = append(b.lines, Line{Start: start, End: end, Color: color})
}

func (b *Buffer) Points() []Point { return b.points }
func (b *Buffer) Lines() []Line   { return b.lines }

// Len returns the total primitive count in the buffer.
func (b *Buffer) Len() int {
	return len(b.points) + len(b.lines)
}

func (b *Buffer) Reset() {
	b.points = b.points[:0]
	b.lines = b.lines[:0]
}
