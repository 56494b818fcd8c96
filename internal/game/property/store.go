package property

// Entry is a stored modifier together with its addressing source and the
// insertion sequence number used to break priority ties deterministically.
type Entry struct {
	SourceID uint32
	Modifier Modifier

	// seq is assigned on first insert and survives replacement, so a
	// source that updates its modifier keeps its place in the order.
	seq uint64
}

// Store maps Property → (source id → modifier) for one entity. At most one
// modifier per (property, source) pair: adding again replaces in place.
// The store is owned by a single entity; the owning Manager serializes
// access.
type Store struct {
	entries map[Property]map[uint32]*Entry
	nextSeq uint64
}

// NewStore creates an empty modifier store.
func NewStore() *Store {
	return &Store{entries: make(map[Property]map[uint32]*Entry)}
}

// AddOrReplace inserts the modifier for (mod.Property, sourceID),
// overwriting any previous modifier from the same source on the same
// property. No recomputation happens here; resolution is pull-based.
func (s *Store) AddOrReplace(sourceID uint32, mod Modifier) {
	bySource := s.entries[mod.Property]
	if bySource == nil {
		bySource = make(map[uint32]*Entry)
		s.entries[mod.Property] = bySource
	}
	if existing, ok := bySource[sourceID]; ok {
		existing.Modifier = mod
		return
	}
	s.nextSeq++
	bySource[sourceID] = &Entry{SourceID: sourceID, Modifier: mod, seq: s.nextSeq}
}

// Remove deletes the modifier for (prop, sourceID). No-op if absent.
func (s *Store) Remove(prop Property, sourceID uint32) {
	bySource := s.entries[prop]
	if bySource == nil {
		return
	}
	delete(bySource, sourceID)
	if len(bySource) == 0 {
		delete(s.entries, prop)
	}
}

// RemoveAllForSource deletes every modifier contributed by sourceID across
// all properties. Used for bulk cleanup when an ability ends.
func (s *Store) RemoveAllForSource(sourceID uint32) {
	for prop, bySource := range s.entries {
		if _, ok := bySource[sourceID]; ok {
			delete(bySource, sourceID)
			if len(bySource) == 0 {
				delete(s.entries, prop)
			}
		}
	}
}

// ModifiersFor returns the current entries for prop. Empty slice if none.
// The result is a fresh slice; callers may sort and keep it.
func (s *Store) ModifiersFor(prop Property) []Entry {
	bySource := s.entries[prop]
	if len(bySource) == 0 {
		return nil
	}
	result := make([]Entry, 0, len(bySource))
	for _, e := range bySource {
		result = append(result, *e)
	}
	return result
}

// Count returns the number of stored modifiers across all properties.
func (s *Store) Count() int {
	n := 0
	for _, bySource := range s.entries {
		n += len(bySource)
	}
	return n
}
