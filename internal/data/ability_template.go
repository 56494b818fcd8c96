// Package data holds the static ability tables. Templates are loaded once
// at startup from YAML and served through read-only accessors.
package data

// AbilityTemplate is the immutable definition of one ability tier.
type AbilityTemplate struct {
	ID     int32  `yaml:"id"`
	BaseID int32  `yaml:"base_id"`
	Tier   int32  `yaml:"tier"`
	Name   string `yaml:"name"`

	// CastMethod: "normal", "instant" or "channeled". The cast layer may
	// override it per request (client interaction data).
	CastMethod string `yaml:"cast_method"`

	CastTimeMs       int32 `yaml:"cast_time_ms"`
	CooldownMs       int32 `yaml:"cooldown_ms"`
	InterruptsOnMove bool  `yaml:"interrupts_on_move"`

	Modifiers []TemplateModifier `yaml:"modifiers"`
}

// TemplateModifier describes a property modifier granted by an ability, in
// data-file form. Converted to a typed modifier by the cast layer.
type TemplateModifier struct {
	Property    string               `yaml:"property"`
	Priority    int32                `yaml:"priority"`
	Alterations []TemplateAlteration `yaml:"alterations"`
}

// TemplateAlteration is one alteration step: type "flat", "levelScaled" or
// "percent".
type TemplateAlteration struct {
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}
