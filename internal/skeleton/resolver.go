package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"skelviz/internal/asset"
	"skelviz/internal/core/ecs"
	"skelviz/internal/xform"
)

// SceneGraph is the read-only world-transform query the resolver depends on.
// Absent (not error) for unspawned or removed entities.
type SceneGraph interface {
	WorldMatrix(id ecs.EntityID) (xform.Affine, bool)
}

// Provenance records which path produced a resolved pose.
type Provenance uint8

const (
	SourceNone     Provenance = iota // no data this frame; pose invalid
	SourceLive                       // live overlay entity's world matrix
	SourceBindPose                   // bind pose composed with instance world
)

// ResolvedBonePose is one bone's world-space pose for the current frame.
// Ephemeral: consumed by the emitter and discarded.
type ResolvedBonePose struct {
	Position mgl64.Vec3
	Axis     [3]mgl64.Vec3 // X, Y, Z orientation axes
	Source   Provenance
	Valid    bool
}

// InstancePose is the full resolved pose of one skeleton instance.
type InstancePose struct {
	Binding    *Binding
	Asset      *asset.SkeletonAsset
	World      xform.Affine // the instance entity's own world matrix
	WorldOK    bool
	Standalone bool
	Bones      []ResolvedBonePose

	scene SceneGraph
}

// Resolver computes world-space bone poses, preferring live overlay entities
// and falling back to bind pose composed with the instance's world matrix.
// Stateless between calls: resolving twice with unchanged inputs yields
// identical output.
type Resolver struct {
	scene SceneGraph
}

func NewResolver(scene SceneGraph) *Resolver {
	return &Resolver{scene: scene}
}

// zeroLenEps guards basis-column normalization: a column at or below this
// length substitutes the identity axis instead of dividing by ~0.
const zeroLenEps = 1e-9

// ResolveInstance resolves every bone of the instance, in bone order. Bones
// with no usable data this frame come back with Valid=false and are skipped
// by the emitter; resolution itself never fails.
func (r *Resolver) ResolveInstance(b *Binding, a *asset.SkeletonAsset, standalone bool) *InstancePose {
	instWorld, instOK := r.scene.WorldMatrix(b.Entity)
	ip := &InstancePose{
		Binding:    b,
		Asset:      a,
		World:      instWorld,
		WorldOK:    instOK,
		Standalone: standalone,
		Bones:      make([]ResolvedBonePose, a.BoneCount()),
		scene:      r.scene,
	}
	for i := range ip.Bones {
		ip.Bones[i] = r.resolveBone(b, a, i, instWorld, instOK)
	}
	return ip
}

func (r *Resolver) resolveBone(b *Binding, a *asset.SkeletonAsset, i int, instWorld xform.Affine, instOK bool) ResolvedBonePose {
	if live, ok := b.LiveBone(i); ok {
		if m, ok := r.scene.WorldMatrix(live); ok {
			return ResolvedBonePose{
				Position: m.Translation(),
				Axis:     NormalizedBasis(m),
				Source:   SourceLive,
				Valid:    true,
			}
		}
	}

	if !instOK {
		return ResolvedBonePose{}
	}

	bind := a.Bone(i).BindPose
	// Fallback axes are not normalized: unlike the live path, they keep any
	// scale the instance world matrix bakes in.
	var axes [3]mgl64.Vec3
	for c := 0; c < 3; c++ {
		axes[c] = instWorld.TransformVector(bind.BasisColumn(c))
	}
	return ResolvedBonePose{
		Position: instWorld.TransformPoint(bind.Translation()),
		Axis:     axes,
		Source:   SourceBindPose,
		Valid:    true,
	}
}

// ParentPosition resolves only the world position of bone p, for drawing the
// parent end of a bone line. Mirrors the live/fallback preference of full
// resolution without computing orientation.
func (ip *InstancePose) ParentPosition(p int) (mgl64.Vec3, bool) {
	if p < 0 || p >= ip.Asset.BoneCount() {
		return mgl64.Vec3{}, false
	}
	if live, ok := ip.Binding.LiveBone(p); ok {
		if m, ok := ip.scene.WorldMatrix(live); ok {
			return m.Translation(), true
		}
	}
	if !ip.WorldOK {
		return mgl64.Vec3{}, false
	}
	return ip.World.TransformPoint(ip.Asset.Bone(p).BindPose.Translation()), true
}

// NormalizedBasis extracts the three orientation axes of a world matrix,
// each normalized. A degenerate (near-zero) column substitutes the matching
// identity axis so downstream math never sees NaN.
func NormalizedBasis(m xform.Affine) [3]mgl64.Vec3 {
	var axes [3]mgl64.Vec3
	for c := 0; c < 3; c++ {
		v := m.BasisColumn(c)
		if l := v.Len(); l > zeroLenEps {
			axes[c] = v.Mul(1 / l)
		} else {
			axes[c] = identityAxis(c)
		}
	}
	return axes
}

func identityAxis(c int) mgl64.Vec3 {
	var v mgl64.Vec3
	v[c] = 1
	return v
}
