package ecs

// SparseSet stores one component value per entity id. Values are kept dense
// for iteration; sparse maps id -> dense index.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func newSparseSet() *SparseSet {
	return &SparseSet{}
}

// Has returns true if the entity id exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	idx, ok := s.index(e.id())
	return ok && s.dense[idx] == e
}

func (s *SparseSet) index(id entityID) (int, bool) {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return idx, true
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) (any, bool) {
	if !s.Has(e) {
		return nil, false
	}
	return s.values[s.sparse[e.id()-1]], true
}

// Set inserts or updates the component for e. A stale value left by an older
// generation of the same id is overwritten.
func (s *SparseSet) Set(e Entity, v any) {
	id := e.id()
	if id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx := s.sparse[e.id()-1]
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
