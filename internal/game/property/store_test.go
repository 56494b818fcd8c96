package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatMod(prop Property, priority int32, value float64) Modifier {
	return Modifier{
		Property:    prop,
		Priority:    priority,
		Alterations: []Alteration{{Type: ModFlat, Value: value}},
	}
}

func TestStore_AddOrReplace_ReplacesNotDuplicates(t *testing.T) {
	s := NewStore()

	s.AddOrReplace(100, flatMod(PAtk, 0, 10))
	s.AddOrReplace(100, flatMod(PAtk, 0, 25))
	s.AddOrReplace(100, flatMod(PAtk, 0, 40))

	entries := s.ModifiersFor(PAtk)
	require.Len(t, entries, 1, "same (property, source) must replace, not stack")
	assert.Equal(t, 40.0, entries[0].Modifier.Alterations[0].Value)
}

func TestStore_Replace_KeepsInsertionSeq(t *testing.T) {
	s := NewStore()

	s.AddOrReplace(1, flatMod(PAtk, 0, 1))
	s.AddOrReplace(2, flatMod(PAtk, 0, 2))
	firstSeq := s.ModifiersFor(PAtk)[0].seq

	// Updating source 1 must not move it behind source 2.
	s.AddOrReplace(1, flatMod(PAtk, 0, 99))

	entries := s.ModifiersFor(PAtk)
	for _, e := range entries {
		if e.SourceID == 1 {
			assert.Equal(t, firstSeq, e.seq, "replace must keep original seq")
		}
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()

	s.AddOrReplace(100, flatMod(PAtk, 0, 10))
	s.Remove(PAtk, 100)

	assert.Empty(t, s.ModifiersFor(PAtk))
	assert.Equal(t, 0, s.Count())

	// Removing again is a no-op, not an error.
	s.Remove(PAtk, 100)
	s.Remove(MDef, 999)
	assert.Equal(t, 0, s.Count())
}

func TestStore_RemoveAllForSource(t *testing.T) {
	s := NewStore()

	s.AddOrReplace(100, flatMod(PAtk, 0, 10))
	s.AddOrReplace(100, flatMod(RunSpeed, 0, 20))
	s.AddOrReplace(100, flatMod(MaxHP, 0, 30))
	s.AddOrReplace(200, flatMod(PAtk, 0, 5))

	s.RemoveAllForSource(100)

	assert.Empty(t, s.ModifiersFor(RunSpeed))
	assert.Empty(t, s.ModifiersFor(MaxHP))

	remaining := s.ModifiersFor(PAtk)
	require.Len(t, remaining, 1, "other sources must be untouched")
	assert.Equal(t, uint32(200), remaining[0].SourceID)
}

func TestStore_ModifiersFor_EmptyNeverNil(t *testing.T) {
	s := NewStore()
	assert.Len(t, s.ModifiersFor(CastSpeed), 0)
}
