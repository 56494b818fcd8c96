package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/spellcore/internal/game/spell"
)

// DisableRepository serves the disable rules the cast gate consults.
// Rules live in the disabled_abilities table and are cached in memory;
// IsDisabled never touches the database, so the synchronous gate check
// stays cheap. Call Load (or Refresh) to pick up external changes.
type DisableRepository struct {
	db *pgxpool.Pool

	mu        sync.RWMutex
	abilities map[int32]bool
	tiers     map[int32]bool
}

// NewDisableRepository creates the repository. Call Load before use.
func NewDisableRepository(db *pgxpool.Pool) *DisableRepository {
	return &DisableRepository{
		db:        db,
		abilities: make(map[int32]bool),
		tiers:     make(map[int32]bool),
	}
}

// Load replaces the in-memory cache with the table contents.
func (r *DisableRepository) Load(ctx context.Context) error {
	rows, err := r.db.Query(ctx,
		`SELECT kind, ability_id FROM disabled_abilities`)
	if err != nil {
		return fmt.Errorf("querying disabled abilities: %w", err)
	}
	defer rows.Close()

	abilities := make(map[int32]bool)
	tiers := make(map[int32]bool)
	for rows.Next() {
		var kind int16
		var abilityID int32
		if err := rows.Scan(&kind, &abilityID); err != nil {
			return fmt.Errorf("scanning disabled ability row: %w", err)
		}
		switch spell.DisableKind(kind) {
		case spell.DisableAbility:
			abilities[abilityID] = true
		case spell.DisableTier:
			tiers[abilityID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading disabled abilities: %w", err)
	}

	r.mu.Lock()
	r.abilities = abilities
	r.tiers = tiers
	r.mu.Unlock()

	slog.Info("disable rules loaded",
		"abilities", len(abilities), "tiers", len(tiers))
	return nil
}

// IsDisabled implements spell.DisableChecker from the cache.
func (r *DisableRepository) IsDisabled(kind spell.DisableKind, id int32) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch kind {
	case spell.DisableAbility:
		return r.abilities[id]
	case spell.DisableTier:
		return r.tiers[id]
	default:
		return false
	}
}

// Disable persists a rule and updates the cache.
func (r *DisableRepository) Disable(ctx context.Context, kind spell.DisableKind, id int32, reason string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO disabled_abilities (kind, ability_id, reason)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (kind, ability_id) DO UPDATE SET reason = $3`,
		int16(kind), id, reason,
	)
	if err != nil {
		return fmt.Errorf("disabling ability %d: %w", id, err)
	}

	r.mu.Lock()
	switch kind {
	case spell.DisableAbility:
		r.abilities[id] = true
	case spell.DisableTier:
		r.tiers[id] = true
	}
	r.mu.Unlock()
	return nil
}

// Enable removes a rule and updates the cache.
func (r *DisableRepository) Enable(ctx context.Context, kind spell.DisableKind, id int32) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM disabled_abilities WHERE kind = $1 AND ability_id = $2`,
		int16(kind), id,
	)
	if err != nil {
		return fmt.Errorf("enabling ability %d: %w", id, err)
	}

	r.mu.Lock()
	switch kind {
	case spell.DisableAbility:
		delete(r.abilities, id)
	case spell.DisableTier:
		delete(r.tiers, id)
	}
	r.mu.Unlock()
	return nil
}
