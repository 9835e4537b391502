package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
)

func TestRegistryBuilder(t *testing.T) {
	noopEffect := func(*Spell, *data.SpellEffectInfo, HandleMode) {}
	noopAura := AuraHandler{Apply: func(*Runtime, *aura.Effect, bool, aura.RemoveMode) {}}

	t.Run("duplicate declaration fails the build", func(t *testing.T) {
		b := NewRegistryBuilder()
		require.NoError(t, b.RegisterEffect(data.EffectSchoolDamage, noopEffect))
		assert.ErrorIs(t, b.RegisterEffect(data.EffectSchoolDamage, noopEffect), ErrDuplicateHandler)

		_, err := b.Build()
		assert.ErrorIs(t, err, ErrDuplicateHandler)
	})

	t.Run("empty builder", func(t *testing.T) {
		_, err := NewRegistryBuilder().Build()
		assert.ErrorIs(t, err, ErrNoHandlers)
	})

	t.Run("out of range kinds", func(t *testing.T) {
		b := NewRegistryBuilder()
		assert.ErrorIs(t, b.RegisterEffect(data.SpellEffectName(data.TotalSpellEffects), noopEffect), ErrHandlerOutOfRange)
		assert.ErrorIs(t, b.RegisterAura(data.AuraType(data.TotalAuraTypes), noopAura), ErrHandlerOutOfRange)
	})

	t.Run("undeclared kinds get a no-op", func(t *testing.T) {
		b := NewRegistryBuilder()
		require.NoError(t, b.RegisterAura(data.AuraModStun, noopAura))
		r, err := b.Build()
		require.NoError(t, err)

		assert.True(t, r.IsAuraDeclared(data.AuraModStun))
		assert.False(t, r.IsAuraDeclared(data.AuraModRoot))
		assert.False(t, r.IsEffectDeclared(data.EffectSchoolDamage))
		assert.NotNil(t, r.Effect(data.EffectSchoolDamage))
		assert.NotNil(t, r.Aura(data.AuraModRoot))

		effects, auras := r.Counts()
		assert.Zero(t, effects)
		assert.Equal(t, 1, auras)
	})
}

func TestNewRegistry_DeclaresBuiltins(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, kind := range []data.SpellEffectName{
		data.EffectSchoolDamage,
		data.EffectHeal,
		data.EffectApplyAura,
		data.EffectTriggerSpell,
		data.EffectDispel,
	} {
		assert.True(t, r.IsEffectDeclared(kind), kind.String())
	}
	for _, kind := range []data.AuraType{
		data.AuraPeriodicDamage,
		data.AuraModStun,
		data.AuraProcTriggerSpell,
		data.AuraSchoolAbsorb,
	} {
		assert.True(t, r.IsAuraDeclared(kind), kind.String())
	}

	effects, auras := r.Counts()
	assert.Equal(t, len(effectDecls), effects)
	assert.Equal(t, len(auraDecls), auras)
}
