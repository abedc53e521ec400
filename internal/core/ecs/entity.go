package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments when a slot is
// recycled, so a stale ID held by an overlay or a scene node reference can
// never alias a newer entity in the same slot.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Pool allocates entity IDs with generational slots and a free list. Slot 0
// is never handed out: the zero EntityID stays a usable null sentinel.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 1, 256),
		freeList:    make([]uint32, 0, 64),
		nextIndex:   1,
	}
}

func (p *Pool) Create() EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

// Alive reports whether id refers to a currently-allocated entity.
func (p *Pool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *Pool) Destroy(id EntityID) {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // stale reference, already destroyed
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Live returns the number of currently-allocated entities.
func (p *Pool) Live() int {
	return int(p.nextIndex) - 1 - len(p.freeList)
}
