package ecs

// Removable is implemented by all component stores so the World can clear an
// entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a dense typed component store: a sparse map from entity ID to a
// dense array index, with components packed in a contiguous slice. Removal
// swap-deletes, so iteration order is allocation order disturbed only by
// removals. Pointers returned by Get stay valid until the next Set or Remove.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	items []T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 64),
	}
}

// Set inserts or overwrites the component for id.
func (s *Store[T]) Set(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.items[i] = c
		return
	}
	s.index[id] = len(s.items)
	s.ids = append(s.ids, id)
	s.items = append(s.items, c)
}

// Get returns a pointer into the dense slice, or nil if id has no component.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.items[i], true
}

// DenseIndex returns the component's position in the packed array.
func (s *Store[T]) DenseIndex(id EntityID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.items) - 1
	if i != last {
		s.items[i] = s.items[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}
	s.items = s.items[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// Each visits every component in dense order. The callback must not add or
// remove components.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.items {
		fn(s.ids[i], &s.items[i])
	}
}
