package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// AbilityTable — global registry of ability templates.
// map[abilityID]*AbilityTemplate, loaded via LoadAbilities() at startup.
var AbilityTable map[int32]*AbilityTemplate

// abilityByTier — precomputed map: (baseID, tier) → template.
// O(1) lookup for tier-addressed casts.
var abilityByTier map[tierKey]*AbilityTemplate

type tierKey struct {
	baseID int32
	tier   int32
}

type abilityFile struct {
	Abilities []AbilityTemplate `yaml:"abilities"`
}

// LoadAbilities reads the ability YAML file and builds the tables.
// Called once at startup.
func LoadAbilities(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ability data %s: %w", path, err)
	}
	if err := LoadAbilitiesFromBytes(raw); err != nil {
		return fmt.Errorf("loading ability data %s: %w", path, err)
	}
	return nil
}

// LoadAbilitiesFromBytes builds the tables from an in-memory YAML document.
func LoadAbilitiesFromBytes(raw []byte) error {
	var file abilityFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing ability yaml: %w", err)
	}

	table := make(map[int32]*AbilityTemplate, len(file.Abilities))
	byTier := make(map[tierKey]*AbilityTemplate, len(file.Abilities))

	for i := range file.Abilities {
		tmpl := &file.Abilities[i]
		if tmpl.ID == 0 {
			return fmt.Errorf("ability entry %d: missing id", i)
		}
		if _, dup := table[tmpl.ID]; dup {
			return fmt.Errorf("duplicate ability id %d", tmpl.ID)
		}
		table[tmpl.ID] = tmpl
		if tmpl.BaseID != 0 {
			key := tierKey{baseID: tmpl.BaseID, tier: tmpl.Tier}
			if _, dup := byTier[key]; dup {
				return fmt.Errorf("duplicate ability tier %d/%d", tmpl.BaseID, tmpl.Tier)
			}
			byTier[key] = tmpl
		}
	}

	AbilityTable = table
	abilityByTier = byTier

	slog.Info("ability templates loaded", "count", len(table))
	return nil
}

// GetAbilityTemplate returns the template for abilityID.
// Returns nil if not found or tables not loaded.
func GetAbilityTemplate(abilityID int32) *AbilityTemplate {
	if AbilityTable == nil {
		return nil
	}
	return AbilityTable[abilityID]
}

// GetAbilityTemplateByTier returns the template for (baseID, tier).
// Returns nil if not found.
func GetAbilityTemplateByTier(baseID, tier int32) *AbilityTemplate {
	if abilityByTier == nil {
		return nil
	}
	return abilityByTier[tierKey{baseID: baseID, tier: tier}]
}

// AbilityCount returns the number of loaded templates.
func AbilityCount() int {
	return len(AbilityTable)
}

// Table adapts the package-level registry to the cast layer's lookup
// interface, so the core never touches package globals directly.
type Table struct{}

// Template implements the ability lookup by exact id.
func (Table) Template(abilityID int32) *AbilityTemplate {
	return GetAbilityTemplate(abilityID)
}

// TemplateByTier implements the ability lookup by (base id, tier).
func (Table) TemplateByTier(baseID, tier int32) *AbilityTemplate {
	return GetAbilityTemplateByTier(baseID, tier)
}
