package spell

import (
	"sync"
	"time"

	"github.com/udisondev/spellcore/internal/game/property"
)

// Manager is the per-entity facade over the cast pipeline, the pending
// action registry and the property modifier engine. The owning entity calls
// Update once per simulation tick; everything else is queries and commands
// from the surrounding entity and network layers.
type Manager struct {
	caster       Caster
	registry     *Registry
	orchestrator *Orchestrator

	// mu guards the modifier store; the registry synchronizes itself.
	mu       sync.RWMutex
	store    *property.Store
	resolver *property.Resolver
}

// NewManager creates the spell manager for one caster.
func NewManager(caster Caster, table AbilityTable, disables DisableChecker, factory ActionFactory) *Manager {
	store := property.NewStore()
	return &Manager{
		caster:       caster,
		registry:     NewRegistry(),
		orchestrator: NewOrchestrator(caster, table, disables, factory),
		store:        store,
		resolver:     property.NewResolver(store),
	}
}

// Update advances every pending action by elapsed and evicts finished ones.
// Must be called once per entity simulation tick.
func (m *Manager) Update(elapsed time.Duration) {
	m.registry.Advance(elapsed)
}

// CastSpell runs the cast pipeline for a resolved request.
func (m *Manager) CastSpell(req *CastRequest) (Action, CastOutcome, error) {
	return m.orchestrator.Cast(m.registry, req)
}

// CastSpellByID resolves abilityID and casts it.
func (m *Manager) CastSpellByID(abilityID int32, userInitiated bool, interaction *Interaction) (Action, CastOutcome, error) {
	return m.orchestrator.CastByID(m.registry, abilityID, userInitiated, interaction)
}

// CastSpellByTier resolves (baseID, tier) and casts it.
func (m *Manager) CastSpellByTier(baseID, tier int32, userInitiated bool, interaction *Interaction) (Action, CastOutcome, error) {
	return m.orchestrator.CastByTier(m.registry, baseID, tier, userInitiated, interaction)
}

// CancelSpellCast cancels the action with the given casting id, if any.
func (m *Manager) CancelSpellCast(castingID uint32) {
	m.registry.CancelByCastingID(castingID)
}

// CancelSpellsOnMove cancels actions interrupted by caster movement.
func (m *Manager) CancelSpellsOnMove() {
	m.registry.CancelAllOnMovement()
}

// IsCasting reports whether any pending action is in its cast phase.
func (m *Manager) IsCasting() bool {
	return m.registry.IsAnyCasting()
}

// ActiveSpell returns the first pending action matching pred, or nil.
func (m *Manager) ActiveSpell(pred func(Action) bool) Action {
	return m.registry.Find(pred)
}

// ActiveSpellByID returns the first pending action for definitionID.
// With includeCasting false, actions still in their cast phase are skipped.
func (m *Manager) ActiveSpellByID(definitionID int32, includeCasting bool) Action {
	return m.registry.Find(func(a Action) bool {
		if a.DefinitionID() != definitionID {
			return false
		}
		return includeCasting || !a.IsCasting()
	})
}

// ActiveSpellByMethod returns the first pending action with the given cast
// method.
func (m *Manager) ActiveSpellByMethod(method CastMethod) Action {
	return m.registry.Find(func(a Action) bool {
		return a.Method() == method
	})
}

// ActiveSpellCount returns the number of pending actions.
func (m *Manager) ActiveSpellCount() int {
	return m.registry.Len()
}

// AddSpellModifierProperty stores a property modifier from sourceID,
// replacing any previous modifier from the same source on that property.
func (m *Manager) AddSpellModifierProperty(sourceID uint32, mod property.Modifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.AddOrReplace(sourceID, mod)
}

// RemoveSpellProperty removes one modifier. No-op if absent.
func (m *Manager) RemoveSpellProperty(prop property.Property, sourceID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Remove(prop, sourceID)
}

// RemoveSpellProperties removes every modifier contributed by sourceID.
func (m *Manager) RemoveSpellProperties(sourceID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.RemoveAllForSource(sourceID)
}

// ModifierCount returns the number of stored property modifiers.
func (m *Manager) ModifierCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Count()
}

// ResolveProperty folds the stored modifiers for prop into base, using the
// caster's level for level-scaled alterations.
func (m *Manager) ResolveProperty(prop property.Property, base float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolver.Resolve(prop, base, m.caster.Level())
}

// Dispose cancels and releases every pending action. Property modifiers are
// not auto-removed; source-scoped cleanup stays the caller's duty.
func (m *Manager) Dispose() {
	m.registry.DisposeAll()
}
