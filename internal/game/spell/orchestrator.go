package spell

import (
	"fmt"
	"log/slog"
)

// CastOutcome is the terminal state of one cast request.
type CastOutcome int8

const (
	CastRegistered CastOutcome = iota // action started and registered
	CastRejected                      // gate refused the cast, no side effect
	CastFailed                        // factory or action failed during setup
)

var castOutcomeNames = [...]string{"registered", "rejected", "failed"}

func (o CastOutcome) String() string {
	if o < 0 || int(o) >= len(castOutcomeNames) {
		return "unknown"
	}
	return castOutcomeNames[o]
}

// Orchestrator validates cast requests for one caster and registers the
// actions the factory produces. All collaborators are injected; the
// orchestrator holds no global state.
type Orchestrator struct {
	caster   Caster
	table    AbilityTable
	disables DisableChecker
	factory  ActionFactory
}

// NewOrchestrator creates an orchestrator for one caster.
func NewOrchestrator(caster Caster, table AbilityTable, disables DisableChecker, factory ActionFactory) *Orchestrator {
	return &Orchestrator{
		caster:   caster,
		table:    table,
		disables: disables,
		factory:  factory,
	}
}

// CastByID resolves abilityID and runs the cast pipeline.
// An unresolvable id is a caller error, not a gameplay rejection.
func (o *Orchestrator) CastByID(registry *Registry, abilityID int32, userInitiated bool, interaction *Interaction) (Action, CastOutcome, error) {
	tmpl := o.table.Template(abilityID)
	if tmpl == nil {
		return nil, CastRejected, fmt.Errorf("unknown ability %d", abilityID)
	}
	return o.Cast(registry, &CastRequest{
		Template:      tmpl,
		UserInitiated: userInitiated,
		Interaction:   interaction,
	})
}

// CastByTier resolves (baseID, tier) and runs the cast pipeline.
func (o *Orchestrator) CastByTier(registry *Registry, baseID, tier int32, userInitiated bool, interaction *Interaction) (Action, CastOutcome, error) {
	tmpl := o.table.TemplateByTier(baseID, tier)
	if tmpl == nil {
		return nil, CastRejected, fmt.Errorf("unknown ability tier %d/%d", baseID, tier)
	}
	return o.Cast(registry, &CastRequest{
		Template:      tmpl,
		UserInitiated: userInitiated,
		Interaction:   interaction,
	})
}

// Cast runs the pipeline for a resolved request:
// gate check → method resolution → instantiation → registration.
//
// The returned error is non-nil only for invalid arguments. Gameplay
// rejections and instantiation failures are reported through the outcome
// and are silent apart from an optional player notice.
func (o *Orchestrator) Cast(registry *Registry, req *CastRequest) (Action, CastOutcome, error) {
	if req == nil || req.Template == nil {
		return nil, CastRejected, fmt.Errorf("cast request has no ability definition")
	}
	tmpl := req.Template

	// Gate check: administratively disabled ability or tier.
	baseID := tmpl.BaseID
	if baseID == 0 {
		baseID = tmpl.ID
	}
	if o.disables.IsDisabled(DisableAbility, baseID) || o.disables.IsDisabled(DisableTier, tmpl.ID) {
		if n, ok := o.caster.(Notifier); ok {
			n.SendNotice(fmt.Sprintf("%s is currently disabled.", tmpl.Name))
		}
		slog.Debug("cast rejected: ability disabled",
			"caster", o.caster.Name(), "ability", tmpl.ID)
		return nil, CastRejected, nil
	}

	// Side effect, not gating: a mounted player dismounts before casting.
	if req.UserInitiated {
		if d, ok := o.caster.(Dismounter); ok {
			d.Dismount()
		}
	}

	method := ParseCastMethod(tmpl.CastMethod)
	if req.Interaction != nil {
		method = CastInteractive
	}

	action := o.factory.NewAction(method, o.caster, req)
	if action == nil || !action.Cast() {
		slog.Debug("cast failed during setup",
			"caster", o.caster.Name(), "ability", tmpl.ID)
		return nil, CastFailed, nil
	}
	if action.HasFailed() {
		// Never leak a dead action into the tick loop.
		return nil, CastFailed, nil
	}

	registry.Add(action)
	slog.Debug("cast registered",
		"caster", o.caster.Name(),
		"ability", tmpl.ID,
		"castingID", action.CastingID(),
		"method", method)
	return action, CastRegistered, nil
}
