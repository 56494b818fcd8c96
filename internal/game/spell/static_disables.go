package spell

// StaticDisables is an in-memory DisableChecker for tests and runs without
// a database.
type StaticDisables struct {
	abilities map[int32]bool
	tiers     map[int32]bool
}

// NewStaticDisables creates an empty rule set.
func NewStaticDisables() *StaticDisables {
	return &StaticDisables{
		abilities: make(map[int32]bool),
		tiers:     make(map[int32]bool),
	}
}

// Disable marks an ability or tier disabled.
func (s *StaticDisables) Disable(kind DisableKind, id int32) {
	switch kind {
	case DisableAbility:
		s.abilities[id] = true
	case DisableTier:
		s.tiers[id] = true
	}
}

// Enable clears a rule.
func (s *StaticDisables) Enable(kind DisableKind, id int32) {
	switch kind {
	case DisableAbility:
		delete(s.abilities, id)
	case DisableTier:
		delete(s.tiers, id)
	}
}

// IsDisabled implements DisableChecker.
func (s *StaticDisables) IsDisabled(kind DisableKind, id int32) bool {
	switch kind {
	case DisableAbility:
		return s.abilities[id]
	case DisableTier:
		return s.tiers[id]
	default:
		return false
	}
}
