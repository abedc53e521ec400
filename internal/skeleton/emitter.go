package skeleton

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"skelviz/internal/asset"
	"skelviz/internal/debugdraw"
)

// Renderer is the primitive sink the emitter draws into. debugdraw.Buffer
// satisfies it; tests substitute counters.
type Renderer interface {
	DrawPoint(pos mgl64.Vec3, color debugdraw.RGB, radius, border float64)
	DrawLine(start, end mgl64.Vec3, color debugdraw.RGB)
}

const (
	originTriadScale = 0.6
	rootTriadScale   = 0.35
	rootMarkerRadius = 0.3
	boneTriadScale   = 0.3
	sphereSegments   = 12
)

// Emitter turns resolved instance poses into debug primitives. Emission order
// is fixed per instance: the standalone origin triad, then joint markers and
// per-bone axes in bone order, then bone lines in bone order.
type Emitter struct {
	out Renderer
}

func NewEmitter(out Renderer) *Emitter {
	return &Emitter{out: out}
}

// EmitInstance draws one resolved instance under the given options. Invalid
// bone poses are silently skipped.
func (e *Emitter) EmitInstance(ip *InstancePose, opt Options) {
	// Standalone instances always get an origin triad at the instance
	// transform, regardless of the axes flag.
	if ip.Standalone && ip.WorldOK {
		e.drawTriad(ip.World.Translation(), NormalizedBasis(ip.World), originTriadScale)
	}

	for i := range ip.Bones {
		pose := &ip.Bones[i]
		if !pose.Valid {
			continue
		}
		bone := ip.Asset.Bone(i)
		if bone.ParentIndex == asset.RootParent {
			if ip.Standalone || opt.DrawAxes {
				e.drawTriad(pose.Position, pose.Axis, rootTriadScale*opt.RootScale)
			}
			if opt.DrawJoints {
				e.drawWireSphere(pose.Position, rootMarkerRadius*opt.RootScale, opt.RootColor)
			}
			continue
		}
		if opt.DrawJoints {
			e.out.DrawPoint(pose.Position, bone.Visual.Color, opt.JointRadius*bone.Visual.SizeMultiplier, opt.BorderWidth)
		}
		if opt.DrawAxes {
			e.drawTriad(pose.Position, pose.Axis, boneTriadScale)
		}
	}

	if !opt.DrawBones {
		return
	}
	for i := range ip.Bones {
		pose := &ip.Bones[i]
		if !pose.Valid {
			continue
		}
		parent := ip.Asset.Bone(i).ParentIndex
		if parent == asset.RootParent {
			continue
		}
		if pp, ok := ip.ParentPosition(parent); ok {
			e.out.DrawLine(pp, pose.Position, opt.BoneColor)
		}
	}
}

// drawTriad draws three axis lines from pos: X red, Y green, Z blue.
func (e *Emitter) drawTriad(pos mgl64.Vec3, axes [3]mgl64.Vec3, scale float64) {
	e.out.DrawLine(pos, pos.Add(axes[0].Mul(scale)), debugdraw.Red)
	e.out.DrawLine(pos, pos.Add(axes[1].Mul(scale)), debugdraw.Green)
	e.out.DrawLine(pos, pos.Add(axes[2].Mul(scale)), debugdraw.Blue)
}

// drawWireSphere approximates a sphere with three great circles, one per
// principal plane, each a closed 12-segment polyline.
func (e *Emitter) drawWireSphere(center mgl64.Vec3, radius float64, color debugdraw.RGB) {
	circle := func(u, v mgl64.Vec3) {
		step := 2 * math.Pi / sphereSegments
		prev := center.Add(u.Mul(radius))
		for s := 1; s <= sphereSegments; s++ {
			a := step * float64(s)
			next := center.Add(u.Mul(radius * math.Cos(a))).Add(v.Mul(radius * math.Sin(a)))
			e.out.DrawLine(prev, next, color)
			prev = next
		}
	}
	x := mgl64.Vec3{1, 0, 0}
	y := mgl64.Vec3{0, 1, 0}
	z := mgl64.Vec3{0, 0, 1}
	circle(x, y)
	circle(y, z)
	circle(x, z)
}
