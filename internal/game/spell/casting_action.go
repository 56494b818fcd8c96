package spell

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/property"
)

// CastingAction is the default Action implementation: an optional cast
// phase, then the ability's template modifiers applied to the caster.
// The casting id doubles as the modifier source id, so callers can address
// the contributed modifiers for cleanup later.
type CastingAction struct {
	castingID uint32
	tmpl      *data.AbilityTemplate
	method    CastMethod
	caster    Caster
	factory   *TemplateFactory

	modifiers []property.Modifier

	remaining time.Duration
	casting   bool
	finished  bool
	failed    bool
}

// Cast parses the template modifiers and enters the cast phase. Instant
// casts complete immediately.
func (a *CastingAction) Cast() bool {
	mods, err := templateModifiers(a.tmpl)
	if err != nil {
		slog.Warn("ability template has bad modifiers",
			"ability", a.tmpl.ID, "err", err)
		a.failed = true
		a.finished = true
		return true
	}
	a.modifiers = mods

	if a.method == CastInstant || a.tmpl.CastTimeMs <= 0 {
		a.complete()
		return true
	}

	a.remaining = time.Duration(a.tmpl.CastTimeMs) * time.Millisecond
	a.casting = true
	return true
}

func (a *CastingAction) CastingID() uint32    { return a.castingID }
func (a *CastingAction) DefinitionID() int32  { return a.tmpl.ID }
func (a *CastingAction) Method() CastMethod   { return a.method }
func (a *CastingAction) HasFailed() bool      { return a.failed }
func (a *CastingAction) IsFinished() bool     { return a.finished }
func (a *CastingAction) IsCasting() bool      { return a.casting }
func (a *CastingAction) InterruptsOnMove() bool { return a.tmpl.InterruptsOnMove }

// Tick counts down the cast phase and completes the action when it ends.
func (a *CastingAction) Tick(elapsed time.Duration) {
	if a.finished || !a.casting {
		return
	}
	a.remaining -= elapsed
	if a.remaining <= 0 {
		a.casting = false
		a.complete()
	}
}

// OnTickEnd is the late-tick hook; the base action has no late work.
func (a *CastingAction) OnTickEnd() {}

// Cancel stops the action. The cast phase, if any, ends without effect.
func (a *CastingAction) Cancel(reason CancelReason) {
	if a.finished {
		return
	}
	a.casting = false
	a.finished = true
	slog.Debug("cast cancelled",
		"castingID", a.castingID, "ability", a.tmpl.ID, "reason", reason)
}

// complete applies the ability's modifiers to the caster, keyed by the
// casting id, and starts the cooldown. A cancelled or failed cast never
// reaches here, so it consumes no cooldown. Modifiers outlive the action;
// removal is explicit.
func (a *CastingAction) complete() {
	a.factory.startCooldown(a.caster.ObjectID(), a.tmpl)
	if sink, ok := a.caster.(PropertySink); ok {
		for _, mod := range a.modifiers {
			sink.AddSpellModifierProperty(a.castingID, mod)
		}
	}
	a.finished = true
}

// templateModifiers converts the template's data-file modifiers to typed
// ones.
func templateModifiers(tmpl *data.AbilityTemplate) ([]property.Modifier, error) {
	if len(tmpl.Modifiers) == 0 {
		return nil, nil
	}
	mods := make([]property.Modifier, 0, len(tmpl.Modifiers))
	for _, tm := range tmpl.Modifiers {
		prop, err := property.ParseProperty(tm.Property)
		if err != nil {
			return nil, err
		}
		alts := make([]property.Alteration, 0, len(tm.Alterations))
		for _, ta := range tm.Alterations {
			modType, err := property.ParseModType(ta.Type)
			if err != nil {
				return nil, err
			}
			alts = append(alts, property.Alteration{Type: modType, Value: ta.Value})
		}
		mods = append(mods, property.Modifier{
			Property:    prop,
			Priority:    tm.Priority,
			Alterations: alts,
		})
	}
	return mods, nil
}

// TemplateFactory builds CastingActions from ability templates and tracks
// per-caster cooldowns.
type TemplateFactory struct {
	// cooldowns tracks ability cooldown expiry: key = "objectID_abilityID"
	cooldowns sync.Map

	nextCastingID atomic.Uint32
}

// NewTemplateFactory creates the default action factory.
func NewTemplateFactory() *TemplateFactory {
	return &TemplateFactory{}
}

// NewAction implements ActionFactory. Returns nil when the ability is still
// on cooldown, which the orchestrator reports as a failed cast.
func (f *TemplateFactory) NewAction(method CastMethod, caster Caster, req *CastRequest) Action {
	tmpl := req.Template

	cdKey := cooldownKey(caster.ObjectID(), tmpl.ID)
	if expiry, ok := f.cooldowns.Load(cdKey); ok {
		if time.Now().Before(expiry.(time.Time)) {
			slog.Debug("ability on cooldown",
				"caster", caster.Name(), "ability", tmpl.ID)
			return nil
		}
		f.cooldowns.Delete(cdKey)
	}

	return &CastingAction{
		castingID: f.nextCastingID.Add(1),
		tmpl:      tmpl,
		method:    method,
		caster:    caster,
		factory:   f,
	}
}

// startCooldown stamps the ability's cooldown for the caster. Called when a
// cast completes; interrupted and failed casts pay nothing.
func (f *TemplateFactory) startCooldown(objectID uint32, tmpl *data.AbilityTemplate) {
	if tmpl.CooldownMs <= 0 {
		return
	}
	expiry := time.Now().Add(time.Duration(tmpl.CooldownMs) * time.Millisecond)
	f.cooldowns.Store(cooldownKey(objectID, tmpl.ID), expiry)
}

// IsOnCooldown reports whether the ability is on cooldown for the caster.
func (f *TemplateFactory) IsOnCooldown(objectID uint32, abilityID int32) bool {
	if expiry, ok := f.cooldowns.Load(cooldownKey(objectID, abilityID)); ok {
		return time.Now().Before(expiry.(time.Time))
	}
	return false
}

func cooldownKey(objectID uint32, abilityID int32) string {
	return fmt.Sprintf("%d_%d", objectID, abilityID)
}
