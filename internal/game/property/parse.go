package property

import "fmt"

var propertyByName = map[string]Property{
	"maxHP":     MaxHP,
	"maxMP":     MaxMP,
	"maxCP":     MaxCP,
	"pAtk":      PAtk,
	"pDef":      PDef,
	"mAtk":      MAtk,
	"mDef":      MDef,
	"runSpeed":  RunSpeed,
	"castSpeed": CastSpeed,
	"atkSpeed":  AtkSpeed,
}

// ParseProperty resolves a data-file property name to its enum value.
func ParseProperty(name string) (Property, error) {
	p, ok := propertyByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown property %q", name)
	}
	return p, nil
}

// ParseModType resolves a data-file alteration type name.
func ParseModType(name string) (ModType, error) {
	switch name {
	case "flat":
		return ModFlat, nil
	case "levelScaled":
		return ModLevelScaled, nil
	case "percent":
		return ModPercent, nil
	default:
		return 0, fmt.Errorf("unknown alteration type %q", name)
	}
}
