package scene

import (
	"go.uber.org/zap"

	"skelviz/internal/core/ecs"
	"skelviz/internal/core/event"
	"skelviz/internal/xform"
)

// maxDepth bounds parent-chain recursion. A chain longer than this is a
// malformed graph; the node re-roots at its local transform instead of
// looping.
const maxDepth = 256

// Node is the scene-graph component: a parent link plus a local transform.
// The composed world transform is cached per frame by Recompute.
type Node struct {
	Parent ecs.EntityID // zero = no parent
	Local  xform.Affine

	world    xform.Affine
	resolved bool
}

// Graph owns scene entities and their transform hierarchy. It answers the
// WorldMatrix query absent-not-error for unspawned or removed entities, and
// doubles as the component store for mesh-instance tags.
type Graph struct {
	world  *ecs.World
	nodes  *ecs.Store[Node]
	meshes *ecs.Store[MeshInstance]
	bus    *event.Bus
	log    *zap.Logger
}

func NewGraph(w *ecs.World, bus *event.Bus, log *zap.Logger) *Graph {
	g := &Graph{
		world:  w,
		nodes:  ecs.NewStore[Node](),
		meshes: ecs.NewStore[MeshInstance](),
		bus:    bus,
		log:    log,
	}
	w.RegisterStore(g.nodes)
	w.RegisterStore(g.meshes)
	return g
}

// Spawn creates an entity with a scene node. A zero parent spawns at the
// graph root.
func (g *Graph) Spawn(parent ecs.EntityID, local xform.Affine) ecs.EntityID {
	id := g.world.CreateEntity()
	g.nodes.Set(id, Node{Parent: parent, Local: local})
	return id
}

// SetLocal replaces an entity's local transform. No-op for unknown entities.
func (g *Graph) SetLocal(id ecs.EntityID, local xform.Affine) {
	if n, ok := g.nodes.Get(id); ok {
		n.Local = local
		n.resolved = false
	}
}

// Remove queues the entity for end-of-frame destruction and emits
// EntityDestroyed so overlays can prune their references.
func (g *Graph) Remove(id ecs.EntityID) {
	if !g.nodes.Has(id) {
		return
	}
	g.world.MarkForDestruction(id)
	g.bus.Emit(event.EntityDestroyed{Entity: id})
}

// WorldMatrix returns the entity's composed world transform, or false for
// entities the graph does not know about. Never an error: visualization
// callers treat absence as skip-this-frame.
func (g *Graph) WorldMatrix(id ecs.EntityID) (xform.Affine, bool) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return xform.Identity(), false
	}
	if !n.resolved {
		return g.resolveWorld(id, 0)
	}
	return n.world, true
}

// Recompute composes world transforms for every node, parents before
// children via memoized parent-chain walks.
func (g *Graph) Recompute() {
	g.nodes.Each(func(_ ecs.EntityID, n *Node) {
		n.resolved = false
	})
	g.nodes.Each(func(id ecs.EntityID, _ *Node) {
		g.resolveWorld(id, 0)
	})
}

func (g *Graph) resolveWorld(id ecs.EntityID, depth int) (xform.Affine, bool) {
	n, ok := g.nodes.Get(id)
	if !ok {
		return xform.Identity(), false
	}
	if n.resolved {
		return n.world, true
	}
	if depth > maxDepth {
		g.log.Warn("scene parent chain too deep, re-rooting node", zap.Uint64("entity", uint64(id)))
		n.world = n.Local
		n.resolved = true
		return n.world, true
	}

	world := n.Local
	if !n.Parent.IsZero() {
		if pw, ok := g.resolveWorld(n.Parent, depth+1); ok {
			world = pw.Mul(n.Local)
		}
	}
	n.world = world
	n.resolved = true
	return world, true
}

// Alive reports whether the entity is currently allocated.
func (g *Graph) Alive(id ecs.EntityID) bool {
	return g.world.Alive(id)
}

// NodeCount returns the number of spawned scene nodes.
func (g *Graph) NodeCount() int {
	return g.nodes.Len()
}
