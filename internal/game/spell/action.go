// Package spell tracks in-flight spell actions on one entity and initiates
// new ones. The registry advances actions once per tick and evicts finished
// ones; the orchestrator validates cast requests and registers the actions
// an external factory produces.
package spell

import (
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/property"
)

// CastMethod describes how an action executes its cast phase.
type CastMethod int8

const (
	CastNormal      CastMethod = iota // cast time, then effect
	CastInstant                       // effect on the same tick
	CastChanneled                     // continuous effect while casting
	CastInteractive                   // driven by client interaction data
)

var castMethodNames = [...]string{"normal", "instant", "channeled", "interactive"}

func (m CastMethod) String() string {
	if m < 0 || int(m) >= len(castMethodNames) {
		return "unknown"
	}
	return castMethodNames[m]
}

// ParseCastMethod resolves a template cast method name. Unknown names fall
// back to CastNormal.
func ParseCastMethod(name string) CastMethod {
	switch name {
	case "instant":
		return CastInstant
	case "channeled":
		return CastChanneled
	case "interactive":
		return CastInteractive
	default:
		return CastNormal
	}
}

// CancelReason tells a cancelled action why it is being stopped.
type CancelReason int8

const (
	CancelledByRequest CancelReason = iota
	CancelledByMovement
	CancelledByShutdown
)

var cancelReasonNames = [...]string{"request", "movement", "shutdown"}

func (r CancelReason) String() string {
	if r < 0 || int(r) >= len(cancelReasonNames) {
		return "unknown"
	}
	return cancelReasonNames[r]
}

// Action is the capability set the registry needs from a spell instance.
// Implementations own their internal state machine; the registry owns only
// the reference and the tick/evict lifecycle.
type Action interface {
	CastingID() uint32
	DefinitionID() int32
	Method() CastMethod

	// Cast performs initial validation and setup. Returning false means
	// the action never started and must not be registered.
	Cast() bool

	// HasFailed reports an immediate failure after a successful-looking
	// Cast; such actions are discarded without registration.
	HasFailed() bool

	Tick(elapsed time.Duration)
	// OnTickEnd runs after Tick on the same pass, once per Advance.
	OnTickEnd()

	IsFinished() bool
	IsCasting() bool
	InterruptsOnMove() bool

	// Cancel requests cooperative termination. The registry evicts the
	// action only once IsFinished reports true.
	Cancel(reason CancelReason)
}

// Interaction carries client-side interaction data attached to a cast
// request (e.g. a ground target). Its presence switches the cast method to
// CastInteractive.
type Interaction struct {
	X int32
	Y int32
	Z int32
}

// CastRequest is a fully resolved request to start an ability.
type CastRequest struct {
	Template      *data.AbilityTemplate
	UserInitiated bool
	Interaction   *Interaction
}

// Caster is the minimal identity the cast layer needs from its owner.
// Optional capabilities (Notifier, Dismounter, PropertySink) are discovered
// by type assertion, never by concrete type.
type Caster interface {
	ObjectID() uint32
	Name() string
	Level() int32
}

// Notifier is a caster that can receive player-visible messages.
type Notifier interface {
	SendNotice(text string)
}

// Dismounter is a caster that dismounts before a user-initiated cast.
type Dismounter interface {
	Dismount()
}

// PropertySink is a caster that accepts property modifiers from its own
// completed casts.
type PropertySink interface {
	AddSpellModifierProperty(sourceID uint32, mod property.Modifier)
}

// AbilityTable resolves ability ids to immutable templates.
type AbilityTable interface {
	Template(abilityID int32) *data.AbilityTemplate
	TemplateByTier(baseID, tier int32) *data.AbilityTemplate
}

// DisableKind selects which disable rule to check.
type DisableKind int8

const (
	DisableAbility DisableKind = iota // base-ability-wide
	DisableTier                       // one specific tier
)

// DisableChecker answers whether an ability or tier is administratively
// disabled.
type DisableChecker interface {
	IsDisabled(kind DisableKind, id int32) bool
}

// ActionFactory instantiates actions for validated cast requests.
type ActionFactory interface {
	NewAction(method CastMethod, caster Caster, req *CastRequest) Action
}
