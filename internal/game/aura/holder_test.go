package aura

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

type recordingHandler struct {
	started []data.SpellID
	exited  map[data.SpellID]RemoveMode
	ticks   int
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{exited: make(map[data.SpellID]RemoveMode)}
}

func (h *recordingHandler) OnStart(e *Effect)      { h.started = append(h.started, e.Aura.Spell.ID) }
func (h *recordingHandler) OnActionTime(e *Effect) { h.ticks++ }
func (h *recordingHandler) OnExit(e *Effect, mode RemoveMode) {
	h.exited[e.Aura.Spell.ID] = mode
}

const (
	casterA world.ObjectID = 0x0100000000000001
	casterB world.ObjectID = 0x0100000000000002
	owner   world.ObjectID = 0x0200000000000001
)

func newAura(s *data.SpellInfo, caster world.ObjectID) *Aura {
	var amounts [data.MaxSpellEffects]int32
	for i := range s.Effects {
		amounts[i] = s.Effects[i].BasePoints
	}
	return New(s, caster, owner, s.EffectMask(), amounts)
}

func buffCatalog(t *testing.T, rule data.SpellGroupStackRule, spells ...data.SpellInfo) *data.Catalog {
	t.Helper()
	b := data.NewBuilder()
	for _, s := range spells {
		require.NoError(t, b.AddSpell(s))
		b.AddGroupMember(1, int32(s.ID))
	}
	require.NoError(t, b.SetStackRule(1, rule))
	c, err := b.Publish()
	require.NoError(t, err)
	return c
}

func TestHolder_ExclusiveSameEffectKeepsOne(t *testing.T) {
	might := data.TestSpell(10, "Might", data.TestAuraEffect(data.AuraModDamagePercentDone, 10, data.TargetUnitTargetAlly))
	fury := data.TestSpell(11, "Fury", data.TestAuraEffect(data.AuraModDamagePercentDone, 10, data.TargetUnitTargetAlly))
	c := buffCatalog(t, data.StackRuleExclusiveSameEffect, might, fury)

	h := newRecordingHandler()
	holder := NewHolder(owner, c.Groups(), h)

	require.Equal(t, Applied, holder.Apply(newAura(c.Spell(10), casterA), 0))
	require.Equal(t, Applied, holder.Apply(newAura(c.Spell(11), casterB), time.Second))

	assert.Equal(t, 1, holder.Len(), "never both")
	assert.True(t, holder.HasSpell(11), "tie goes to the newcomer")
	assert.Equal(t, RemoveReplaced, h.exited[10])
	assert.Len(t, holder.EffectsOfType(data.AuraModDamagePercentDone), 1)
}

func TestHolder_ExclusiveSameEffectWeakerRejected(t *testing.T) {
	strong := data.TestSpell(10, "Strong", data.TestAuraEffect(data.AuraModDamagePercentDone, 20, data.TargetUnitTargetAlly))
	weak := data.TestSpell(11, "Weak", data.TestAuraEffect(data.AuraModDamagePercentDone, 5, data.TargetUnitTargetAlly))
	c := buffCatalog(t, data.StackRuleExclusiveSameEffect, strong, weak)

	holder := NewHolder(owner, c.Groups(), newRecordingHandler())
	holder.Apply(newAura(c.Spell(10), casterA), 0)

	assert.Equal(t, Rejected, holder.Apply(newAura(c.Spell(11), casterB), 0))
	assert.True(t, holder.HasSpell(10))
	assert.False(t, holder.HasSpell(11))
}

func TestHolder_ExclusiveReplacesOlder(t *testing.T) {
	a := data.TestSpell(20, "Seal A", data.TestAuraEffect(data.AuraDummy, 0, data.TargetUnitCaster))
	b := data.TestSpell(21, "Seal B", data.TestAuraEffect(data.AuraDummy, 0, data.TargetUnitCaster))
	c := buffCatalog(t, data.StackRuleExclusive, a, b)

	holder := NewHolder(owner, c.Groups(), newRecordingHandler())
	holder.Apply(newAura(c.Spell(20), casterA), 0)
	holder.Apply(newAura(c.Spell(21), casterA), 0)

	assert.False(t, holder.HasSpell(20))
	assert.True(t, holder.HasSpell(21))
}

func TestHolder_ExclusiveFromSameCaster(t *testing.T) {
	a := data.TestSpell(30, "Sting A", data.TestAuraEffect(data.AuraPeriodicDamage, 5, data.TargetUnitTargetEnemy))
	b := data.TestSpell(31, "Sting B", data.TestAuraEffect(data.AuraPeriodicDamage, 5, data.TargetUnitTargetEnemy))
	c := buffCatalog(t, data.StackRuleExclusiveFromSameCaster, a, b)

	holder := NewHolder(owner, c.Groups(), newRecordingHandler())
	holder.Apply(newAura(c.Spell(30), casterA), 0)
	holder.Apply(newAura(c.Spell(31), casterB), 0)
	assert.Equal(t, 2, holder.Len(), "different casters coexist")

	holder.Apply(newAura(c.Spell(30), casterB), 0)
	assert.Nil(t, holder.Find(31, casterB), "same caster replaced")
	assert.NotNil(t, holder.Find(30, casterA))
}

func TestHolder_RefreshAndStacks(t *testing.T) {
	s := data.TestSpell(40, "Sunder", data.TestAuraEffect(data.AuraModResistancePct, -5, data.TargetUnitTargetEnemy))
	s.StackAmount = 3
	s.Duration = 30 * time.Second
	c := data.MustCatalog(s)
	spell := c.Spell(40)

	h := newRecordingHandler()
	holder := NewHolder(owner, c.Groups(), h)

	require.Equal(t, Applied, holder.Apply(newAura(spell, casterA), 0))
	require.Equal(t, Stacked, holder.Apply(newAura(spell, casterA), 5*time.Second))
	require.Equal(t, Stacked, holder.Apply(newAura(spell, casterA), 6*time.Second))
	require.Equal(t, Refreshed, holder.Apply(newAura(spell, casterA), 10*time.Second))

	a := holder.Find(40, casterA)
	require.NotNil(t, a)
	assert.Equal(t, uint32(3), a.Stacks)
	assert.Equal(t, int32(-15), a.Effects[0].Amount())
	assert.Equal(t, 40*time.Second, a.ExpiresAt)

	assert.Equal(t, Applied, holder.Apply(newAura(spell, casterB), 10*time.Second), "debuffs from another caster stack")
	assert.Equal(t, 2, holder.Len())
}

func TestHolder_PeriodicAndExpire(t *testing.T) {
	dot := data.SpellEffectInfo{
		Effect:        data.EffectApplyAura,
		ApplyAuraName: data.AuraPeriodicDamage,
		BasePoints:    10,
		Amplitude:     3 * time.Second,
		TargetA:       data.TargetUnitTargetEnemy,
	}
	s := data.TestSpell(50, "Corruption", dot)
	s.Duration = 12 * time.Second
	c := data.MustCatalog(s)

	h := newRecordingHandler()
	holder := NewHolder(owner, c.Groups(), h)
	holder.Apply(newAura(c.Spell(50), casterA), 0)

	holder.Update(7 * time.Second)
	assert.Equal(t, 2, h.ticks)

	holder.Update(12 * time.Second)
	assert.Equal(t, 4, h.ticks, "tick at expiry still lands")
	assert.Equal(t, 0, holder.Len())
	assert.Equal(t, RemoveExpire, h.exited[50])
}

func TestHolder_Charges(t *testing.T) {
	s := data.TestSpell(60, "Shield", data.TestAuraEffect(data.AuraProcTriggerSpell, 0, data.TargetUnitCaster))
	s.ProcCharges = 2
	c := data.MustCatalog(s)

	h := newRecordingHandler()
	holder := NewHolder(owner, c.Groups(), h)
	holder.Apply(newAura(c.Spell(60), casterA), 0)
	a := holder.Find(60, casterA)

	holder.DropCharge(a)
	assert.Equal(t, 1, holder.Len())
	holder.DropCharge(a)
	assert.Equal(t, 0, holder.Len())
	assert.Equal(t, RemoveCharges, h.exited[60])
}

func TestDiminishingTracker(t *testing.T) {
	cfg := config.DefaultSpellConfig().Diminishing
	info := data.DiminishingInfo{Group: data.DRGroupStun, Type: data.DRTypeAll, DurationLimit: 10 * time.Second}
	tr := NewDiminishingTracker()

	d, immune := tr.Diminish(info, false, 8*time.Second, 0, cfg)
	assert.False(t, immune)
	assert.Equal(t, 8*time.Second, d)

	d, _ = tr.Diminish(info, false, 8*time.Second, time.Second, cfg)
	assert.Equal(t, 4*time.Second, d)

	d, _ = tr.Diminish(info, false, 8*time.Second, 2*time.Second, cfg)
	assert.Equal(t, 2*time.Second, d)

	_, immune = tr.Diminish(info, false, 8*time.Second, 3*time.Second, cfg)
	assert.True(t, immune, "past the curve the target is immune")

	assert.Equal(t, 0, tr.Level(data.DRGroupStun, 3*time.Second+cfg.Window, cfg.Window), "window resets the level")

	d, _ = tr.Diminish(info, true, 20*time.Second, 60*time.Second, cfg)
	assert.Equal(t, 10*time.Second, d, "players are capped at the duration limit")
}

func TestDiminishingTracker_PlayerOnlyIgnoresCreatures(t *testing.T) {
	cfg := config.DefaultSpellConfig().Diminishing
	info := data.DiminishingInfo{Group: data.DRGroupFear, Type: data.DRTypePlayer}
	tr := NewDiminishingTracker()

	for range 5 {
		d, immune := tr.Diminish(info, false, 8*time.Second, 0, cfg)
		assert.False(t, immune)
		assert.Equal(t, 8*time.Second, d)
	}
}

func TestHolder_DiminishingWindowWaitsForRemoval(t *testing.T) {
	cfg := config.DefaultSpellConfig().Diminishing
	s := data.TestSpell(70, "Stun", data.TestAuraEffect(data.AuraModStun, 0, data.TargetUnitTargetEnemy))
	s.Duration = 30 * time.Second
	c := data.MustCatalog(s)
	holder := NewHolder(owner, c.Groups(), newRecordingHandler())

	spell := c.Spell(70)
	d, _ := holder.Diminishing().Diminish(spell.Diminishing, false, spell.Duration, 0, cfg)
	a := newAura(spell, casterA)
	a.Duration = d
	a.DRGroup = spell.Diminishing.Group
	holder.Apply(a, 0)

	// 20s later the stun is still active, so the level must not reset
	assert.Equal(t, 1, holder.Diminishing().Level(data.DRGroupStun, 20*time.Second, cfg.Window))

	holder.Update(30 * time.Second)
	assert.Equal(t, 1, holder.Diminishing().Level(data.DRGroupStun, 40*time.Second, cfg.Window))
	assert.Equal(t, 0, holder.Diminishing().Level(data.DRGroupStun, 48*time.Second, cfg.Window))
}
