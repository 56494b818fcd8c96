// Package property implements the layered numeric attribute engine for an
// animate entity: per-source modifiers collected in a store, folded into a
// final value by a priority-ordered resolver.
package property

// Property identifies a numeric attribute of an entity.
type Property int8

const (
	MaxHP Property = iota
	MaxMP
	MaxCP
	PAtk
	PDef
	MAtk
	MDef
	RunSpeed
	CastSpeed
	AtkSpeed

	propertyCount
)

var propertyNames = [propertyCount]string{
	"maxHP", "maxMP", "maxCP", "pAtk", "pDef", "mAtk", "mDef",
	"runSpeed", "castSpeed", "atkSpeed",
}

func (p Property) String() string {
	if p < 0 || p >= propertyCount {
		return "unknown"
	}
	return propertyNames[p]
}
