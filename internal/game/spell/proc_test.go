package spell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

func TestCanSpellTriggerProcOnEvent(t *testing.T) {
	m := world.NewMap(world.MapOptions{})
	player := m.SpawnUnit(world.UnitTemplate{Name: "p", Player: true, Level: 60, Faction: 1, MaxHealth: 100}, world.Pos(0, 0, 0))
	mob := m.SpawnUnit(world.UnitTemplate{Name: "m", Level: 60, Faction: 2, MaxHealth: 100}, world.Pos(5, 0, 0))
	fire := &data.SpellInfo{ID: 1, SchoolMask: data.SchoolMaskFire, ManaCost: 100}
	free := &data.SpellInfo{ID: 2, SchoolMask: data.SchoolMaskFrost, SpellFamilyName: data.FamilyMage}

	hitEvent := func() ProcEventInfo {
		return ProcEventInfo{
			Actor:          player,
			ActionTarget:   mob,
			TypeMask:       data.ProcDoneSpellMagicDmgClassNeg,
			SpellTypeMask:  data.ProcSpellTypeDamage,
			SpellPhaseMask: data.ProcSpellPhaseHit,
			HitMask:        data.ProcHitNormal,
			Spell:          fire,
			SchoolMask:     fire.SchoolMask,
		}
	}

	tests := []struct {
		name  string
		entry data.ProcEntry
		edit  func(*ProcEventInfo)
		want  bool
	}{
		{
			name:  "matching spell hit",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg},
			want:  true,
		},
		{
			name:  "type mask mismatch",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneMeleeAutoAttack},
			want:  false,
		},
		{
			name:  "always trigger ignores triggered flag",
			entry: data.ProcEntry{ProcFlags: data.ProcKill},
			edit: func(ev *ProcEventInfo) {
				ev.TypeMask = data.ProcKill
				ev.Triggered = true
			},
			want: true,
		},
		{
			name:  "triggered spell without attribute",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg},
			edit:  func(ev *ProcEventInfo) { ev.Triggered = true },
			want:  false,
		},
		{
			name: "triggered spell with attribute",
			entry: data.ProcEntry{
				ProcFlags:      data.ProcDoneSpellMagicDmgClassNeg,
				AttributesMask: data.ProcAttrTriggeredCanProc,
			},
			edit: func(ev *ProcEventInfo) { ev.Triggered = true },
			want: true,
		},
		{
			name:  "school mismatch",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, SchoolMask: data.SchoolMaskFrost},
			want:  false,
		},
		{
			name:  "family mismatch",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, SpellFamilyName: data.FamilyWarlock},
			edit: func(ev *ProcEventInfo) {
				ev.Spell = free
				ev.SchoolMask = free.SchoolMask
			},
			want: false,
		},
		{
			name:  "spell type mismatch",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, SpellTypeMask: data.ProcSpellTypeHeal},
			want:  false,
		},
		{
			name:  "phase mismatch",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, SpellPhaseMask: data.ProcSpellPhaseFinish},
			want:  false,
		},
		{
			name:  "miss against default hit mask",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg},
			edit:  func(ev *ProcEventInfo) { ev.HitMask = data.ProcHitMiss },
			want:  false,
		},
		{
			name:  "explicit miss mask",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, HitMask: data.ProcHitMiss},
			edit:  func(ev *ProcEventInfo) { ev.HitMask = data.ProcHitMiss },
			want:  true,
		},
		{
			name:  "requires mana cost",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, AttributesMask: data.ProcAttrReqManaCost},
			edit: func(ev *ProcEventInfo) {
				ev.Spell = free
				ev.SchoolMask = free.SchoolMask
			},
			want: false,
		},
		{
			name:  "item cast excluded",
			entry: data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, AttributesMask: data.ProcAttrCantProcFromItemCast},
			edit:  func(ev *ProcEventInfo) { ev.FromItem = true },
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := hitEvent()
			if tt.edit != nil {
				tt.edit(&ev)
			}
			assert.Equal(t, tt.want, CanSpellTriggerProcOnEvent(&tt.entry, &ev))
		})
	}
}

func TestPPMChance(t *testing.T) {
	assert.InDelta(t, 8.6667, PPMChance(2600*time.Millisecond, 2, 600), 0.001)
	assert.InDelta(t, 20, PPMChance(2*time.Second, 6, 600), 0.001)
	assert.Zero(t, PPMChance(2*time.Second, 0, 600))
	assert.Zero(t, PPMChance(2*time.Second, 2, 0))
}

// procSetup builds a caster with a self buff that triggers a 25 point bolt
// on its spell hits.
func procSetup(t *testing.T, entry data.ProcEntry, opts ...envOption) (*testEnv, *world.Unit, *world.Unit) {
	t.Helper()
	buff := data.TestSpell(400, "Ignite", data.SpellEffectInfo{
		Effect:        data.EffectApplyAura,
		ApplyAuraName: data.AuraProcTriggerSpell,
		TriggerSpell:  401,
		TargetA:       data.TargetUnitCaster,
	})
	entry.SpellID = 400
	opts = append(opts, withProcs(entry))
	env := newTestEnv(t, []data.SpellInfo{buff, damageSpell(401, 25), damageSpell(100, 120)}, opts...)
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	_, res := env.rt.CastSpell(mage, 400, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)
	require.Len(t, env.rt.Auras(mage.ID()), 1)
	return env, mage, ogre
}

func TestProc_TriggerSpellOnHit(t *testing.T) {
	metrics := newCountingMetrics()
	env, mage, ogre := procSetup(t, data.ProcEntry{
		ProcFlags: data.ProcDoneSpellMagicDmgClassNeg,
		Chance:    100,
	}, withMetrics(metrics))

	_, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, int32(1000-120-25), ogre.Health())
	assert.Equal(t, 1, metrics.procs[400])
	assert.Zero(t, env.rt.ActiveCasts())
}

func TestProc_ZeroChanceNeverFires(t *testing.T) {
	env, mage, ogre := procSetup(t, data.ProcEntry{ProcFlags: data.ProcDoneSpellMagicDmgClassNeg})

	for range 5 {
		env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	}
	assert.Equal(t, int32(1000-5*120), ogre.Health())
}

func TestProc_ChargesConsumeAura(t *testing.T) {
	env, mage, ogre := procSetup(t, data.ProcEntry{
		ProcFlags: data.ProcDoneSpellMagicDmgClassNeg,
		Chance:    100,
		Charges:   1,
	})

	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Empty(t, env.rt.Auras(mage.ID()))

	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, int32(1000-2*120-25), ogre.Health())
}

func TestProc_CooldownSuppressesRepeat(t *testing.T) {
	env, mage, ogre := procSetup(t, data.ProcEntry{
		ProcFlags: data.ProcDoneSpellMagicDmgClassNeg,
		Chance:    100,
		Cooldown:  10 * time.Second,
	})

	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, int32(1000-2*120-25), ogre.Health())

	env.advance(10 * time.Second)
	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, int32(1000-3*120-2*25), ogre.Health())
}

func TestProc_KillEvent(t *testing.T) {
	metrics := newCountingMetrics()
	env, mage, ogre := procSetup(t, data.ProcEntry{
		ProcFlags: data.ProcKill,
		Chance:    100,
	}, withMetrics(metrics))
	ogre.ModifyHealth(-900)

	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.False(t, ogre.IsAlive())
	assert.Equal(t, 1, metrics.procs[400])
}

func TestProc_TakenDamageOnVictim(t *testing.T) {
	thorns := data.TestSpell(410, "Thorns", data.SpellEffectInfo{
		Effect:        data.EffectApplyAura,
		ApplyAuraName: data.AuraProcTriggerDamage,
		BasePoints:    15,
		TargetA:       data.TargetUnitCaster,
	})
	env := newTestEnv(t, []data.SpellInfo{thorns, damageSpell(100, 100)},
		withProcs(data.ProcEntry{SpellID: 410, ProcFlags: data.ProcTakenSpellMagicDmgClassNeg, Chance: 100}))
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	env.rt.CastSpell(ogre, 410, CastTargets{}, CastOptions{})
	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})

	assert.Equal(t, int32(900), ogre.Health())
	assert.Equal(t, int32(985), mage.Health())
}

func TestMeleeSwing_DamageShield(t *testing.T) {
	spikes := auraSpell(420, "Spikes", data.AuraDamageShield, 10, data.TargetUnitCaster)
	env := newTestEnv(t, []data.SpellInfo{spikes})
	warrior := env.spawn("warrior", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 2, 0)

	env.rt.CastSpell(ogre, 420, CastTargets{}, CastOptions{})
	info := env.rt.MeleeSwing(warrior, ogre, world.BaseAttack)
	require.NotNil(t, info)

	assert.Equal(t, int32(950), ogre.Health())
	assert.Equal(t, int32(990), warrior.Health())
}
