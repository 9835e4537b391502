package spell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

func auraSpell(id data.SpellID, name string, kind data.AuraType, points int32, target data.Targets) data.SpellInfo {
	return data.TestSpell(id, name, data.TestAuraEffect(kind, points, target))
}

func periodicSpell(id data.SpellID, kind data.AuraType, points int32, target data.Targets, amplitude, duration time.Duration) data.SpellInfo {
	s := auraSpell(id, "Periodic", kind, points, target)
	s.Effects[0].Amplitude = amplitude
	s.Duration = duration
	return s
}

func TestAura_PeriodicDamageTicksUntilExpiry(t *testing.T) {
	dot := periodicSpell(300, data.AuraPeriodicDamage, 10, data.TargetUnitTargetEnemy, time.Second, 3*time.Second)
	env := newTestEnv(t, []data.SpellInfo{dot})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	_, res := env.rt.CastSpell(mage, 300, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	require.Len(t, env.rt.Auras(ogre.ID()), 1)
	assert.Equal(t, int32(1000), ogre.Health())

	env.advance(time.Second)
	assert.Equal(t, int32(990), ogre.Health())

	env.advance(2 * time.Second)
	assert.Equal(t, int32(970), ogre.Health())
	assert.Empty(t, env.rt.Auras(ogre.ID()))

	env.advance(2 * time.Second)
	assert.Equal(t, int32(970), ogre.Health())
}

func TestAura_PeriodicLeechHealsCaster(t *testing.T) {
	leech := periodicSpell(301, data.AuraPeriodicLeech, 20, data.TargetUnitTargetEnemy, time.Second, time.Second)
	env := newTestEnv(t, []data.SpellInfo{leech})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)
	mage.ModifyHealth(-500)

	env.rt.CastSpell(mage, 301, UnitTarget(ogre.ID()), CastOptions{})
	env.advance(time.Second)

	assert.Equal(t, int32(980), ogre.Health())
	assert.Equal(t, int32(520), mage.Health())
}

func TestAura_PeriodicHealAndEnergize(t *testing.T) {
	renew := periodicSpell(302, data.AuraPeriodicHeal, 25, data.TargetUnitCaster, time.Second, 2*time.Second)
	spring := periodicSpell(303, data.AuraPeriodicEnergize, 50, data.TargetUnitCaster, time.Second, 2*time.Second)
	spring.Effects[0].MiscValue = int32(data.PowerMana)
	env := newTestEnv(t, []data.SpellInfo{renew, spring})
	priest := env.spawn("priest", factionA, 0, 0)
	priest.ModifyHealth(-300)
	priest.ModifyPower(data.PowerMana, -500)

	env.rt.CastSpell(priest, 302, CastTargets{}, CastOptions{})
	env.rt.CastSpell(priest, 303, CastTargets{}, CastOptions{})
	env.advance(2 * time.Second)

	assert.Equal(t, int32(750), priest.Health())
	assert.Equal(t, int32(600), priest.Power(data.PowerMana))
}

func TestAura_StunInterruptsAndExpires(t *testing.T) {
	stun := auraSpell(310, "Hammer", data.AuraModStun, 0, data.TargetUnitTargetEnemy)
	stun.Duration = 2 * time.Second
	slow := damageSpell(311, 100)
	slow.CastTime = 3 * time.Second
	env := newTestEnv(t, []data.SpellInfo{stun, slow})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	cast, res := env.rt.CastSpell(ogre, 311, UnitTarget(mage.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)

	_, res = env.rt.CastSpell(mage, 310, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.True(t, ogre.HasState(world.StateStunned))
	assert.False(t, ogre.CanAct())
	assert.Equal(t, SpellFailedInterrupted, cast.Result())

	_, res = env.rt.CastSpell(ogre, 311, UnitTarget(mage.ID()), CastOptions{})
	assert.Equal(t, SpellFailedStunned, res)

	env.advance(2 * time.Second)
	assert.False(t, ogre.HasState(world.StateStunned))
	assert.Equal(t, int32(1000), mage.Health())
}

func TestAura_SilenceOnlyBreaksMagic(t *testing.T) {
	silence := auraSpell(312, "Silence", data.AuraModSilence, 0, data.TargetUnitTargetEnemy)
	silence.Duration = 5 * time.Second
	strike := damageSpell(313, 50)
	strike.DmgClass = data.DmgClassMelee
	strike.CastTime = time.Second
	strike.MaxRange = 15
	env := newTestEnv(t, []data.SpellInfo{silence, strike})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	melee, res := env.rt.CastSpell(ogre, 313, UnitTarget(mage.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)

	env.rt.CastSpell(mage, 312, UnitTarget(ogre.ID()), CastOptions{})
	assert.True(t, ogre.HasState(world.StateSilenced))
	assert.Equal(t, StatePreparing, melee.State())

	env.advance(time.Second)
	assert.Equal(t, int32(950), mage.Health())
}

func TestAura_StatModifiers(t *testing.T) {
	ward := auraSpell(320, "Ward", data.AuraModResistance, 50, data.TargetUnitCaster)
	mark := auraSpell(321, "Mark", data.AuraModStat, 10, data.TargetUnitCaster)
	mark.Effects[0].MiscValue = -1
	might := auraSpell(322, "Might", data.AuraModStat, 15, data.TargetUnitCaster)
	env := newTestEnv(t, []data.SpellInfo{ward, mark, might})
	druid := env.spawn("druid", factionA, 0, 0)

	for _, id := range []data.SpellID{320, 321, 322} {
		_, res := env.rt.CastSpell(druid, id, CastTargets{}, CastOptions{})
		require.Equal(t, SpellCastOK, res)
	}

	assert.InDelta(t, 50, druid.ApplyStat(world.StatResistance, 0), 0.001)
	assert.InDelta(t, 25, druid.ApplyStat(world.StatStrength, 0), 0.001)
	assert.InDelta(t, 10, druid.ApplyStat(world.StatSpirit, 0), 0.001)

	h := env.rt.Holder(druid.ID())
	require.NotNil(t, h)
	assert.Equal(t, 1, h.RemoveBySpell(320, 0, aura.RemoveCancel))
	assert.InDelta(t, 0, druid.ApplyStat(world.StatResistance, 0), 0.001)
	assert.Equal(t, 1, h.RemoveBySpell(321, 0, aura.RemoveCancel))
	assert.InDelta(t, 15, druid.ApplyStat(world.StatStrength, 0), 0.001)
}

func TestAura_SchoolImmunityBlocksHit(t *testing.T) {
	shield := auraSpell(330, "Fire Ward", data.AuraSchoolImmunity, 0, data.TargetUnitCaster)
	shield.Effects[0].MiscValue = int32(data.SchoolMaskFire)
	env := newTestEnv(t, []data.SpellInfo{shield, damageSpell(100, 100)})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	env.rt.CastSpell(ogre, 330, CastTargets{}, CastOptions{})
	s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, int32(1000), ogre.Health())
	assert.Equal(t, combat.MissImmune, s.Records()[0].Miss)
}

func TestAura_AbsorbConsumesShield(t *testing.T) {
	barrier := auraSpell(331, "Barrier", data.AuraSchoolAbsorb, 50, data.TargetUnitCaster)
	env := newTestEnv(t, []data.SpellInfo{barrier, damageSpell(100, 120)})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	env.rt.CastSpell(ogre, 331, CastTargets{}, CastOptions{})
	require.Len(t, env.rt.Auras(ogre.ID()), 1)

	s, _ := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, int32(930), ogre.Health())
	assert.Equal(t, int32(50), s.Records()[0].Absorbed)
	assert.Empty(t, env.rt.Auras(ogre.ID()))
}

func TestAura_ReflectSendsSpellBack(t *testing.T) {
	mirror := auraSpell(332, "Mirror", data.AuraReflectSpells, 100, data.TargetUnitCaster)
	env := newTestEnv(t, []data.SpellInfo{mirror, damageSpell(100, 120)})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	env.rt.CastSpell(ogre, 332, CastTargets{}, CastOptions{})
	s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.True(t, s.Records()[0].Reflected)
	assert.Equal(t, int32(1000), ogre.Health())
	assert.Equal(t, int32(880), mage.Health())
}

func TestAura_TauntTakesTopThreat(t *testing.T) {
	taunt := auraSpell(340, "Taunt", data.AuraModTaunt, 0, data.TargetUnitTargetEnemy)
	taunt.Duration = 3 * time.Second
	env := newTestEnv(t, []data.SpellInfo{taunt})
	warrior := env.spawn("warrior", factionA, 0, 0)
	rogue := env.spawn("rogue", factionA, 2, 0)
	ogre := env.spawn("ogre", factionB, 5, 0)
	ogre.AddThreat(rogue.ID(), 400)

	_, res := env.rt.CastSpell(warrior, 340, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.InDelta(t, 400, ogre.Threat(warrior.ID()), 0.001)
}

func TestDispel_RemovesNewestMagicBuff(t *testing.T) {
	armor := auraSpell(350, "Armor", data.AuraModResistance, 20, data.TargetUnitCaster)
	armor.Dispel = data.DispelMagic
	intellect := auraSpell(351, "Intellect", data.AuraModStat, 5, data.TargetUnitCaster)
	intellect.Dispel = data.DispelMagic
	purge := data.TestSpell(352, "Purge", data.SpellEffectInfo{
		Effect:     data.EffectDispel,
		BasePoints: 1,
		MiscValue:  int32(data.DispelMagic),
		TargetA:    data.TargetUnitTargetEnemy,
	})
	env := newTestEnv(t, []data.SpellInfo{armor, intellect, purge})
	shaman := env.spawn("shaman", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	env.rt.CastSpell(ogre, 350, CastTargets{}, CastOptions{})
	env.rt.CastSpell(ogre, 351, CastTargets{}, CastOptions{})
	require.Len(t, env.rt.Auras(ogre.ID()), 2)

	_, res := env.rt.CastSpell(shaman, 352, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	left := env.rt.Auras(ogre.ID())
	require.Len(t, left, 1)
	assert.Equal(t, data.SpellID(350), left[0].Spell.ID)
}

func TestDynamicObject_AppliesAuraInsideRadius(t *testing.T) {
	blizzard := data.TestSpell(360, "Blizzard", data.SpellEffectInfo{
		Effect:        data.EffectPersistentAreaAura,
		ApplyAuraName: data.AuraPeriodicDamage,
		BasePoints:    10,
		Amplitude:     time.Second,
		Radius:        8,
		TargetA:       data.TargetDestDest,
	})
	blizzard.Duration = 4 * time.Second
	blizzard.Attributes |= data.AttrAuraIsDebuff
	env := newTestEnv(t, []data.SpellInfo{blizzard})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 20, 0)
	troll := env.spawn("troll", factionB, 24, 0)
	friend := env.spawn("friend", factionA, 20, 1)

	_, res := env.rt.CastSpell(mage, 360, DestTarget(world.Pos(20, 0, 0)), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	require.Len(t, env.m.DynamicObjects(), 1)

	env.advance(100 * time.Millisecond)
	assert.Len(t, env.rt.Auras(ogre.ID()), 1)
	assert.Len(t, env.rt.Auras(troll.ID()), 1)
	assert.Empty(t, env.rt.Auras(friend.ID()))

	env.m.Relocate(troll.ID(), world.Pos(40, 0, 0))
	env.advance(100 * time.Millisecond)
	assert.Empty(t, env.rt.Auras(troll.ID()))

	env.advance(4 * time.Second)
	assert.Empty(t, env.m.DynamicObjects())
	assert.Empty(t, env.rt.Auras(ogre.ID()))
	assert.Less(t, ogre.Health(), int32(1000))
}

func TestAura_StunDiminishesWhileFirstIsActive(t *testing.T) {
	stun := auraSpell(314, "Hammer", data.AuraModStun, 0, data.TargetUnitTargetEnemy)
	stun.Duration = 30 * time.Second
	env := newTestEnv(t, []data.SpellInfo{stun})
	first := env.spawn("paladin", factionA, 0, 0)
	second := env.spawn("warrior", factionA, 0, 5)
	ogre := env.spawn("ogre", factionB, 10, 0)

	_, res := env.rt.CastSpell(first, 314, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	auras := env.rt.Auras(ogre.ID())
	require.Len(t, auras, 1)
	assert.Equal(t, 30*time.Second, auras[0].Duration)
	assert.Equal(t, data.DRGroupStun, auras[0].DRGroup)

	// the window starts when the last stun fades, not when it lands
	env.advance(20 * time.Second)
	require.True(t, ogre.HasState(world.StateStunned))

	_, res = env.rt.CastSpell(second, 314, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	auras = env.rt.Auras(ogre.ID())
	require.Len(t, auras, 2)
	assert.Equal(t, 15*time.Second, auras[1].Duration)
}
