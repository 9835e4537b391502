package spell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

func TestCast_InstantDamage(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 120)})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	require.NotNil(t, s)

	assert.Equal(t, int32(880), ogre.Health())
	assert.Equal(t, []SpellState{StatePreparing, StateCasting, StateFinished}, s.History())
	assert.True(t, s.IsDeletable())
	assert.Zero(t, env.rt.ActiveCasts())

	recs := s.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, ogre.ID(), recs[0].ID)
	assert.Equal(t, int32(120), recs[0].Damage)
	assert.True(t, recs[0].Processed)

	assert.True(t, mage.IsInCombat(env.m.Now()))
	assert.Greater(t, ogre.Threat(mage.ID()), float32(0))
}

func TestCast_CritDoublesDamage(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 100)}, withMath(fixedMath{crit: true}))
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, int32(800), ogre.Health())
	assert.True(t, s.Records()[0].Crit)
}

func TestCast_MissDealsNothing(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 100)}, withMath(fixedMath{miss: combat.MissResist}))
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, int32(1000), ogre.Health())
	assert.Equal(t, combat.MissResist, s.Records()[0].Miss)
}

func TestCast_TravelTime(t *testing.T) {
	bolt := damageSpell(101, 100)
	bolt.Speed = 10
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 30, 0)

	s, res := env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, StateDelayed, s.State())
	assert.Equal(t, int32(1000), ogre.Health())

	recs := s.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 3*time.Second, recs[0].TimeDelay)

	env.m.Update(2999 * time.Millisecond)
	assert.Equal(t, StateDelayed, s.State())
	assert.Equal(t, int32(1000), ogre.Health())

	env.m.Update(time.Millisecond)
	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, int32(900), ogre.Health())
	assert.Equal(t, []SpellState{StatePreparing, StateCasting, StateDelayed, StateFinished}, s.History())
	assert.Zero(t, env.rt.ActiveCasts())
}

func TestCast_TravelTimeFloorsShortDistance(t *testing.T) {
	bolt := damageSpell(101, 100)
	bolt.Speed = 20
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 2, 0)

	s, _ := env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	require.Len(t, s.Records(), 1)
	assert.Equal(t, 250*time.Millisecond, s.Records()[0].TimeDelay)
}

func TestCast_SpeedIsDelay(t *testing.T) {
	bolt := damageSpell(101, 100)
	bolt.Speed = 1.5
	bolt.Attributes |= data.AttrSpeedIsDelay
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 35, 0)

	s, _ := env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	require.Len(t, s.Records(), 1)
	assert.Equal(t, 1500*time.Millisecond, s.Records()[0].TimeDelay)
}

func TestCast_CancelDuringTravel(t *testing.T) {
	bolt := damageSpell(101, 100)
	bolt.Speed = 10
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 30, 0)

	s, _ := env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	env.m.Update(time.Second)
	s.Cancel()

	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, SpellFailedInterrupted, s.Result())
	assert.True(t, s.IsDeletable())

	env.advance(5 * time.Second)
	assert.Equal(t, int32(1000), ogre.Health())
	assert.Zero(t, env.rt.ActiveCasts())
}

func TestCast_CastTimeCompletes(t *testing.T) {
	bolt := damageSpell(102, 100)
	bolt.CastTime = 2 * time.Second
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	s, res := env.rt.CastSpell(mage, 102, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, StatePreparing, s.State())
	assert.Same(t, s, env.rt.CurrentCast(mage.ID()))

	env.m.Update(1999 * time.Millisecond)
	assert.Equal(t, int32(1000), ogre.Health())

	env.m.Update(time.Millisecond)
	assert.Equal(t, int32(900), ogre.Health())
	assert.Equal(t, StateFinished, s.State())
	assert.Nil(t, env.rt.CurrentCast(mage.ID()))
}

func TestCast_InterruptWhilePreparing(t *testing.T) {
	bolt := damageSpell(102, 100)
	bolt.CastTime = 2 * time.Second
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	s, _ := env.rt.CastSpell(mage, 102, UnitTarget(ogre.ID()), CastOptions{})
	env.m.Update(time.Second)
	require.True(t, env.rt.InterruptCast(mage.ID()))
	assert.False(t, env.rt.InterruptCast(mage.ID()))

	env.advance(3 * time.Second)
	assert.Equal(t, SpellFailedInterrupted, s.Result())
	assert.Equal(t, int32(1000), ogre.Health())
	assert.Equal(t, []SpellState{StatePreparing, StateFinished}, s.History())
}

func TestCheckCast_Failures(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*data.SpellInfo)
		setup func(env *testEnv, mage, ogre *world.Unit)
		want  SpellCastResult
	}{
		{
			name:  "out of range",
			setup: func(env *testEnv, _, ogre *world.Unit) { env.m.Relocate(ogre.ID(), world.Pos(60, 0, 0)) },
			want:  SpellFailedOutOfRange,
		},
		{
			name: "too close",
			edit: func(s *data.SpellInfo) { s.MinRange = 15 },
			want: SpellFailedTooClose,
		},
		{
			name:  "caster dead",
			setup: func(_ *testEnv, mage, _ *world.Unit) { mage.ModifyHealth(-mage.Health()) },
			want:  SpellFailedCasterDead,
		},
		{
			name:  "target dead",
			setup: func(_ *testEnv, _, ogre *world.Unit) { ogre.ModifyHealth(-ogre.Health()) },
			want:  SpellFailedTargetsDead,
		},
		{
			name:  "stunned",
			setup: func(_ *testEnv, mage, _ *world.Unit) { mage.AddState(world.StateStunned, true) },
			want:  SpellFailedStunned,
		},
		{
			name:  "silenced",
			setup: func(_ *testEnv, mage, _ *world.Unit) { mage.AddState(world.StateSilenced, true) },
			want:  SpellFailedSilenced,
		},
		{
			name:  "friendly target",
			setup: func(_ *testEnv, _, ogre *world.Unit) { ogre.Faction = factionA },
			want:  SpellFailedTargetFriendly,
		},
		{
			name: "no power",
			edit: func(s *data.SpellInfo) { s.ManaCost = 5000 },
			want: SpellFailedNoPower,
		},
		{
			name: "not in combat only",
			edit: func(s *data.SpellInfo) { s.Attributes |= data.AttrNotInCombat },
			setup: func(env *testEnv, mage, _ *world.Unit) {
				mage.SetInCombat(env.m.Now(), 5*time.Second)
			},
			want: SpellFailedAffectingCombat,
		},
		{
			name: "line of sight",
			setup: func(env *testEnv, _, _ *world.Unit) {
				env.m.AddWall(world.Wall{A: world.Pos(5, -10, 0), B: world.Pos(5, 10, 0)})
			},
			want: SpellFailedLineOfSight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bolt := damageSpell(100, 100)
			if tt.edit != nil {
				tt.edit(&bolt)
			}
			env := newTestEnv(t, []data.SpellInfo{bolt})
			mage := env.spawn("mage", factionA, 0, 0)
			ogre := env.spawn("ogre", factionB, 10, 0)
			if tt.setup != nil {
				tt.setup(env, mage, ogre)
			}

			s, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
			assert.Equal(t, tt.want, res)
			require.NotNil(t, s)
			assert.Equal(t, StateFinished, s.State())
			assert.Zero(t, env.rt.ActiveCasts())
		})
	}
}

func TestCheckCast_CooldownAndInProgress(t *testing.T) {
	bolt := damageSpell(100, 10)
	bolt.RecoveryTime = 10 * time.Second
	slow := damageSpell(101, 10)
	slow.CastTime = 3 * time.Second
	env := newTestEnv(t, []data.SpellInfo{bolt, slow})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	_, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	_, res = env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, SpellFailedNotReady, res)
	assert.True(t, env.rt.IsOnCooldown(mage.ID(), 100))

	_, res = env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	_, res = env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	assert.Equal(t, SpellFailedSpellInProgress, res)

	env.advance(10 * time.Second)
	assert.False(t, env.rt.IsOnCooldown(mage.ID(), 100))
}

func TestCast_UnknownSpell(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 10)})
	mage := env.spawn("mage", factionA, 0, 0)

	s, res := env.rt.CastSpell(mage, 999, CastTargets{}, CastOptions{})
	assert.Nil(t, s)
	assert.Equal(t, SpellFailedUnknownSpell, res)
}

func TestCast_PaysManaCost(t *testing.T) {
	bolt := damageSpell(100, 10)
	bolt.ManaCost = 150
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)

	_, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, int32(850), mage.Power(data.PowerMana))
}

func TestTriggeredChildKeepsParentAlive(t *testing.T) {
	parent := data.TestSpell(200, "Launcher", data.SpellEffectInfo{
		Effect:       data.EffectTriggerSpell,
		TriggerSpell: 201,
		TargetA:      data.TargetUnitTargetEnemy,
	})
	child := damageSpell(201, 100)
	child.Speed = 10
	env := newTestEnv(t, []data.SpellInfo{parent, child})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 20, 0)

	s, res := env.rt.CastSpell(mage, 200, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	assert.Equal(t, StateFinished, s.State())
	assert.False(t, s.IsDeletable())
	assert.Same(t, s, env.rt.Cast(s.ID))
	assert.Equal(t, 2, env.rt.ActiveCasts())

	env.advance(2 * time.Second)
	assert.Equal(t, int32(900), ogre.Health())
	assert.True(t, s.IsDeletable())
	assert.Nil(t, env.rt.Cast(s.ID))
	assert.Zero(t, env.rt.ActiveCasts())
}

func TestRemoveUnit_FinalizesCasts(t *testing.T) {
	bolt := damageSpell(101, 100)
	bolt.Speed = 10
	env := newTestEnv(t, []data.SpellInfo{bolt})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 30, 0)

	s, _ := env.rt.CastSpell(mage, 101, UnitTarget(ogre.ID()), CastOptions{})
	env.m.Remove(mage.ID())

	assert.Equal(t, SpellFailedInterrupted, s.Result())
	assert.Zero(t, env.rt.ActiveCasts())
	env.advance(5 * time.Second)
	assert.Equal(t, int32(1000), ogre.Health())
}

type vetoScript struct {
	ScriptBase
	result SpellCastResult
}

func (v vetoScript) CheckCast(*Spell) SpellCastResult { return v.result }

type doubleScript struct{ ScriptBase }

func (doubleScript) OnEffectHit(s *Spell, _ int, mode HandleMode) bool {
	if mode == HandleHitTarget {
		s.EffectValue *= 2
	}
	return false
}

func TestScripts(t *testing.T) {
	t.Run("veto", func(t *testing.T) {
		env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 100)},
			withScript(100, vetoScript{result: SpellFailedBadTargets}))
		mage := env.spawn("mage", factionA, 0, 0)
		ogre := env.spawn("ogre", factionB, 10, 0)

		_, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
		assert.Equal(t, SpellFailedBadTargets, res)
		assert.Equal(t, int32(1000), ogre.Health())
	})
	t.Run("rewrite value", func(t *testing.T) {
		env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 100)}, withScript(100, doubleScript{}))
		mage := env.spawn("mage", factionA, 0, 0)
		ogre := env.spawn("ogre", factionB, 10, 0)

		_, res := env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
		require.Equal(t, SpellCastOK, res)
		assert.Equal(t, int32(800), ogre.Health())
	})
}

func TestCast_MetricsCounted(t *testing.T) {
	metrics := newCountingMetrics()
	env := newTestEnv(t, []data.SpellInfo{damageSpell(100, 10)}, withMetrics(metrics))
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 10, 0)
	friend := env.spawn("friend", factionA, 5, 0)

	env.rt.CastSpell(mage, 100, UnitTarget(ogre.ID()), CastOptions{})
	env.rt.CastSpell(mage, 100, UnitTarget(friend.ID()), CastOptions{})

	assert.Equal(t, 1, metrics.casts[SpellCastOK])
	assert.Equal(t, 1, metrics.casts[SpellFailedTargetFriendly])
}
