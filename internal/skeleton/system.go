package skeleton

import (
	"time"

	"github.com/google/uuid"

	"skelviz/internal/asset"
	"skelviz/internal/core/ecs"
	"skelviz/internal/core/frame"
)

// ComponentStore answers the per-entity queries the debug-draw pass needs
// beyond transforms. scene.Graph satisfies it.
type ComponentStore interface {
	Alive(id ecs.EntityID) bool
	MeshTag(id ecs.EntityID) (int32, bool)
}

// AssetSource resolves skeleton assets by ID and by mesh type tag.
// asset.Registry satisfies it.
type AssetSource interface {
	Skeleton(id uuid.UUID) (*asset.SkeletonAsset, bool)
	MeshTagAsset(tag int32) (uuid.UUID, bool)
	SkeletalMesh(id uuid.UUID) (*asset.SkeletalMeshAsset, bool)
}

// System is the per-frame skeleton visualization pass. It walks standalone
// instances first, then mesh-bound instances, resolving poses and emitting
// debug geometry. Any instance it cannot resolve is skipped; the pass itself
// never fails.
type System struct {
	overlay  *Overlay
	store    ComponentStore
	assets   AssetSource
	resolver *Resolver
	emitter  *Emitter
	opts     Options
}

func NewSystem(overlay *Overlay, scene SceneGraph, store ComponentStore, assets AssetSource, out Renderer, opts Options) *System {
	return &System{
		overlay:  overlay,
		store:    store,
		assets:   assets,
		resolver: NewResolver(scene),
		emitter:  NewEmitter(out),
		opts:     opts,
	}
}

func (s *System) Phase() frame.Phase { return frame.PhaseDebugDraw }

func (s *System) Options() Options { return s.opts }

// SetOptions replaces the visualization options, taking effect next frame.
func (s *System) SetOptions(o Options) { s.opts = o }

func (s *System) Update(_ time.Duration) {
	if !s.opts.Enabled {
		return
	}

	visited := make(map[ecs.EntityID]struct{}, 16)

	for _, b := range s.overlay.StandaloneOrdered() {
		a, ok := s.assets.Skeleton(b.AssetID)
		if !ok {
			continue
		}
		visited[b.Entity] = struct{}{}
		s.emitter.EmitInstance(s.resolver.ResolveInstance(b, a, true), s.opts)
	}

	for _, b := range s.overlay.MeshBoundOrdered() {
		if _, seen := visited[b.Entity]; seen {
			continue
		}
		if !s.store.Alive(b.Entity) {
			continue
		}
		a, ok := s.meshSkeleton(b.Entity)
		if !ok {
			continue
		}
		s.emitter.EmitInstance(s.resolver.ResolveInstance(b, a, false), s.opts)
	}
}

// meshSkeleton resolves the skeleton asset for a mesh-bound instance through
// its mesh type tag.
func (s *System) meshSkeleton(id ecs.EntityID) (*asset.SkeletonAsset, bool) {
	tag, ok := s.store.MeshTag(id)
	if !ok {
		return nil, false
	}
	meshID, ok := s.assets.MeshTagAsset(tag)
	if !ok {
		return nil, false
	}
	mesh, ok := s.assets.SkeletalMesh(meshID)
	if !ok || mesh.Skeleton == nil {
		return nil, false
	}
	return mesh.Skeleton, true
}
