package skeleton

import (
	"sort"

	"github.com/google/uuid"

	"skelviz/internal/core/ecs"
	"skelviz/internal/core/event"
)

// Binding associates a skeleton-instance entity with its asset and the
// optional live-bone entity slice. LiveBones parallels the asset's bone
// sequence; zero entries mean no live entity for that bone. The slice may be
// nil (no overlay at all) or partially populated.
type Binding struct {
	Entity    ecs.EntityID
	AssetID   uuid.UUID // standalone bindings only; mesh-bound resolve via tag
	LiveBones []ecs.EntityID
}

// LiveBone returns the live entity driving bone i, if one is bound.
func (b *Binding) LiveBone(i int) (ecs.EntityID, bool) {
	if i < 0 || i >= len(b.LiveBones) {
		return 0, false
	}
	e := b.LiveBones[i]
	return e, !e.IsZero()
}

// Overlay is the per-frame lookup structure over runtime skeleton instances:
// which entities are pure skeleton instances, which are skeletal-mesh
// instances, and which live entities drive individual bones. It subscribes
// to EntityDestroyed so stale references drop out at the next frame start.
type Overlay struct {
	standalone map[ecs.EntityID]*Binding
	meshBound  map[ecs.EntityID]*Binding
}

func NewOverlay(bus *event.Bus) *Overlay {
	o := &Overlay{
		standalone: make(map[ecs.EntityID]*Binding, 16),
		meshBound:  make(map[ecs.EntityID]*Binding, 16),
	}
	if bus != nil {
		bus.Subscribe(func(ev event.Event) {
			if d, ok := ev.(event.EntityDestroyed); ok {
				o.Prune(d.Entity)
			}
		})
	}
	return o
}

// BindStandalone registers a pure skeleton instance (no mesh).
func (o *Overlay) BindStandalone(entity ecs.EntityID, assetID uuid.UUID, liveBones []ecs.EntityID) {
	o.standalone[entity] = &Binding{Entity: entity, AssetID: assetID, LiveBones: liveBones}
}

// BindMesh registers a skeletal-mesh instance. Its skeleton asset is
// resolved per frame from the entity's mesh tag.
func (o *Overlay) BindMesh(entity ecs.EntityID, liveBones []ecs.EntityID) {
	o.meshBound[entity] = &Binding{Entity: entity, LiveBones: liveBones}
}

// Unbind removes any instance binding for the entity.
func (o *Overlay) Unbind(entity ecs.EntityID) {
	delete(o.standalone, entity)
	delete(o.meshBound, entity)
}

// IsStandalone reports whether the entity is registered as a pure skeleton
// instance. The orchestrator uses this to avoid double-processing entities
// present in both maps.
func (o *Overlay) IsStandalone(entity ecs.EntityID) bool {
	_, ok := o.standalone[entity]
	return ok
}

// Prune drops every reference to a destroyed entity: instance bindings keyed
// by it, and live-bone slots pointing at it.
func (o *Overlay) Prune(dead ecs.EntityID) {
	o.Unbind(dead)
	for _, b := range o.standalone {
		pruneLive(b, dead)
	}
	for _, b := range o.meshBound {
		pruneLive(b, dead)
	}
}

func pruneLive(b *Binding, dead ecs.EntityID) {
	for i, e := range b.LiveBones {
		if e == dead {
			b.LiveBones[i] = 0
		}
	}
}

// StandaloneOrdered returns standalone bindings sorted by entity ID. The
// iteration order is an explicit contract: standalone instances are always
// visualized first, in a stable order, independent of map iteration.
func (o *Overlay) StandaloneOrdered() []*Binding {
	return ordered(o.standalone)
}

// MeshBoundOrdered returns mesh-bound bindings sorted by entity ID.
func (o *Overlay) MeshBoundOrdered() []*Binding {
	return ordered(o.meshBound)
}

func ordered(m map[ecs.EntityID]*Binding) []*Binding {
	out := make([]*Binding, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Entity < out[j].Entity
	})
	return out
}
