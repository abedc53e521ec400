package ecs

// World owns the entity pool, the set of registered component stores, and a
// deferred destruction queue flushed at the end of each frame.
type World struct {
	pool         *Pool
	stores       []Removable
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		stores:       make([]Removable, 0, 8),
		destroyQueue: make([]EntityID, 0, 32),
	}
}

func (w *World) Pool() *Pool { return w.pool }

// RegisterStore adds a component store for bulk cleanup on entity destroy.
func (w *World) RegisterStore(s Removable) {
	w.stores = append(w.stores, s)
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-frame cleanup. The entity
// stays alive (and resolvable) until the flush runs.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their components
// from every registered store.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
