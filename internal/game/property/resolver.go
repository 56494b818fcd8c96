package property

import "sort"

// Resolver folds the modifiers held by a Store into a final property value.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver reading from the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve computes the final value of prop starting from base.
//
// Modifiers apply in descending priority order; priority ties keep
// insertion order. Within that single pass, Flat and LevelScaled
// alterations add and Percent alterations multiply, interleaved — the
// numeric result is order-dependent on purpose, so a high-priority
// percentage scales only what came before it.
//
// No clamping or rounding; callers apply domain bounds.
func (r *Resolver) Resolve(prop Property, base float64, level int32) float64 {
	entries := r.store.ModifiersFor(prop)
	if len(entries) == 0 {
		return base
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Modifier.Priority != entries[j].Modifier.Priority {
			return entries[i].Modifier.Priority > entries[j].Modifier.Priority
		}
		return entries[i].seq < entries[j].seq
	})

	final := base
	for _, e := range entries {
		for _, alt := range e.Modifier.Alterations {
			switch alt.Type {
			case ModFlat, ModLevelScaled:
				final += alt.Amount(level)
			case ModPercent:
				final *= alt.Value
			}
		}
	}
	return final
}
