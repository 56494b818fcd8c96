package property

// ModType defines how a single alteration is applied to a property value.
type ModType int8

const (
	ModFlat        ModType = iota // additive constant (e.g. +100 pAtk)
	ModLevelScaled                // additive, scaled by caster level
	ModPercent                    // multiplicative factor (e.g. ×1.2 speed)
)

// Alteration is one step of a modifier: an additive or multiplicative
// operation. Alterations within a modifier apply in slice order.
type Alteration struct {
	Type  ModType
	Value float64
}

// Amount returns the additive contribution of a Flat or LevelScaled
// alteration for the given caster level. Not meaningful for ModPercent.
func (a Alteration) Amount(level int32) float64 {
	if a.Type == ModLevelScaled {
		return a.Value * float64(level)
	}
	return a.Value
}

// Modifier is a single source's contribution to one property. Higher
// Priority modifiers apply first, so a high-priority percentage can scale
// everything a lower-priority source adds afterward.
type Modifier struct {
	Property    Property
	Priority    int32
	Alterations []Alteration
}
