package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/game/spell"
)

func TestDisableRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	repo := NewDisableRepository(pool)
	require.NoError(t, repo.Load(ctx))
	assert.False(t, repo.IsDisabled(spell.DisableAbility, 14))

	require.NoError(t, repo.Disable(ctx, spell.DisableAbility, 14, "balance pass"))
	assert.True(t, repo.IsDisabled(spell.DisableAbility, 14), "Disable updates the cache")

	// A fresh repository sees the persisted rule.
	fresh := NewDisableRepository(pool)
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.IsDisabled(spell.DisableAbility, 14))

	require.NoError(t, repo.Enable(ctx, spell.DisableAbility, 14))
	assert.False(t, repo.IsDisabled(spell.DisableAbility, 14))

	fresh = NewDisableRepository(pool)
	require.NoError(t, fresh.Load(ctx))
	assert.False(t, fresh.IsDisabled(spell.DisableAbility, 14), "Enable removes the row")
}

func TestDisableRepository_KindsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewDisableRepository(setupTestDB(t))
	require.NoError(t, repo.Load(ctx))

	require.NoError(t, repo.Disable(ctx, spell.DisableTier, 1401, ""))

	assert.True(t, repo.IsDisabled(spell.DisableTier, 1401))
	assert.False(t, repo.IsDisabled(spell.DisableAbility, 1401),
		"a tier rule must not disable the whole ability")

	fresh := NewDisableRepository(repo.db)
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.IsDisabled(spell.DisableTier, 1401))
	assert.False(t, fresh.IsDisabled(spell.DisableAbility, 1401))
}

func TestDisableRepository_DisableIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewDisableRepository(setupTestDB(t))

	require.NoError(t, repo.Disable(ctx, spell.DisableAbility, 22, "first"))
	require.NoError(t, repo.Disable(ctx, spell.DisableAbility, 22, "second"))

	fresh := NewDisableRepository(repo.db)
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.IsDisabled(spell.DisableAbility, 22))
}

func TestDisableRepository_EnableAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewDisableRepository(setupTestDB(t))

	require.NoError(t, repo.Enable(ctx, spell.DisableAbility, 999))
	assert.False(t, repo.IsDisabled(spell.DisableAbility, 999))
}
