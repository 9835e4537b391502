package spell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

func unitRecordIDs(s *Spell) []world.ObjectID {
	var ids []world.ObjectID
	for _, r := range s.Records() {
		if r.Kind == TargetKindUnit {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func areaSpell(id data.SpellID, radius float32) data.SpellInfo {
	eff := data.TestDamageEffect(50)
	eff.TargetA = data.TargetSrcCaster
	eff.TargetB = data.TargetUnitSrcAreaEnemy
	eff.Radius = radius
	return data.TestSpell(id, "Nova", eff)
}

func TestTargets_AreaPicksHostilesInRadius(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{areaSpell(500, 10)})
	mage := env.spawn("mage", factionA, 0, 0)
	near := env.spawn("near", factionB, 3, 0)
	far := env.spawn("far", factionB, 0, 8)
	outside := env.spawn("outside", factionB, 15, 0)
	ally := env.spawn("ally", factionA, 4, 0)

	s, res := env.rt.CastSpell(mage, 500, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, []world.ObjectID{near.ID(), far.ID()}, unitRecordIDs(s))
	assert.Equal(t, int32(950), near.Health())
	assert.Equal(t, int32(950), far.Health())
	assert.Equal(t, int32(1000), outside.Health())
	assert.Equal(t, int32(1000), ally.Health())
}

func TestTargets_AreaSkipsUnitsBehindWall(t *testing.T) {
	env := newTestEnv(t, []data.SpellInfo{areaSpell(500, 10)})
	mage := env.spawn("mage", factionA, 0, 0)
	open := env.spawn("open", factionB, 3, 0)
	hidden := env.spawn("hidden", factionB, -6, 0)
	env.m.AddWall(world.Wall{A: world.Pos(-3, -5, 0), B: world.Pos(-3, 5, 0)})

	s, res := env.rt.CastSpell(mage, 500, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, []world.ObjectID{open.ID()}, unitRecordIDs(s))
	assert.Equal(t, int32(1000), hidden.Health())
}

func TestTargets_LineOfSightCheckedLast(t *testing.T) {
	eff := data.TestDamageEffect(50)
	eff.TargetA = data.TargetUnitConeEnemy24
	eff.Radius = 10
	breath := data.TestSpell(501, "Breath", eff)
	breath.Attributes |= data.AttrOnlyTargetPlayers
	env := newTestEnv(t, []data.SpellInfo{breath})
	mage := env.spawn("mage", factionA, 0, 0)
	front := env.spawnPlayer("front", factionB, 5, 0)
	env.spawn("creature", factionB, 7, 0)
	env.spawnPlayer("behind", factionB, -5, 0)
	env.spawn("ally", factionA, 4, 1)
	corpse := env.spawnPlayer("corpse", factionB, 6, 0)
	corpse.ModifyHealth(-corpse.MaxHealth())
	require.False(t, corpse.IsAlive())

	before := env.m.LOSQueries()
	s, res := env.rt.CastSpell(mage, 501, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, []world.ObjectID{front.ID()}, unitRecordIDs(s))
	assert.Equal(t, uint64(1), env.m.LOSQueries()-before, "only the live hostile player inside the cone reaches the LOS query")
}

func TestTargets_MaxAffectedTargetsTrims(t *testing.T) {
	nova := areaSpell(500, 10)
	nova.MaxAffectedTargets = 2
	env := newTestEnv(t, []data.SpellInfo{nova})
	mage := env.spawn("mage", factionA, 0, 0)
	for i := range 5 {
		env.spawn("ogre", factionB, float32(i+1), 0)
	}

	s, res := env.rt.CastSpell(mage, 500, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)

	ids := unitRecordIDs(s)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])
}

func TestTargets_ChainJumpsToNearest(t *testing.T) {
	eff := data.TestDamageEffect(100)
	eff.ChainTargets = 3
	env := newTestEnv(t, []data.SpellInfo{data.TestSpell(510, "Chain", eff)})
	mage := env.spawn("mage", factionA, 0, 0)
	first := env.spawn("first", factionB, 10, 0)
	third := env.spawn("third", factionB, 24, 0)
	second := env.spawn("second", factionB, 17, 0)
	distant := env.spawn("distant", factionB, 40, 0)

	s, res := env.rt.CastSpell(mage, 510, UnitTarget(first.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, []world.ObjectID{first.ID(), second.ID(), third.ID()}, unitRecordIDs(s))
	assert.Equal(t, int32(1000), distant.Health())
	assert.Equal(t, int32(900), third.Health())
}

func TestTargets_SelfSelector(t *testing.T) {
	heal := data.TestSpell(520, "Renew", data.SpellEffectInfo{
		Effect:     data.EffectHeal,
		BasePoints: 200,
		TargetA:    data.TargetUnitCaster,
	})
	env := newTestEnv(t, []data.SpellInfo{heal})
	priest := env.spawn("priest", factionA, 0, 0)
	priest.ModifyHealth(-500)

	s, res := env.rt.CastSpell(priest, 520, CastTargets{}, CastOptions{})
	require.Equal(t, SpellCastOK, res)

	assert.Equal(t, []world.ObjectID{priest.ID()}, unitRecordIDs(s))
	assert.Equal(t, int32(700), priest.Health())
}

func TestDestination_FollowsTransportDuringTravel(t *testing.T) {
	flare := data.TestSpell(370, "Flare", data.SpellEffectInfo{
		Effect:        data.EffectPersistentAreaAura,
		ApplyAuraName: data.AuraPeriodicDamage,
		BasePoints:    10,
		Amplitude:     time.Second,
		Radius:        5,
		TargetA:       data.TargetDestTargetEnemy,
	})
	flare.Duration = 10 * time.Second
	flare.Speed = 10
	env := newTestEnv(t, []data.SpellInfo{flare})
	mage := env.spawn("mage", factionA, 0, 0)
	ogre := env.spawn("ogre", factionB, 20, 0)
	boat := env.m.SpawnGameObject(1, "boat", world.GOTransport, world.Pos(20, 0, 0))
	env.m.Board(ogre, boat)

	cast, res := env.rt.CastSpell(mage, 370, UnitTarget(ogre.ID()), CastOptions{})
	require.Equal(t, SpellCastOK, res)
	require.Equal(t, StateDelayed, cast.State())

	var dest *TargetRecord
	records := cast.Records()
	for i := range records {
		if records[i].Kind == TargetKindDest {
			dest = &records[i]
		}
	}
	require.NotNil(t, dest)
	assert.Equal(t, boat.ID(), dest.Dest.Transport)
	assert.Equal(t, 2*time.Second, dest.TimeDelay)

	env.advance(time.Second)
	env.m.Relocate(boat.ID(), world.Pos(30, 0, 0))
	require.Empty(t, env.m.DynamicObjects())

	env.advance(time.Second)
	objs := env.m.DynamicObjects()
	require.Len(t, objs, 1)
	assert.InDelta(t, 30, objs[0].Position().X, 1e-3)
	assert.InDelta(t, 0, objs[0].Position().Y, 1e-3)
}

func TestDestOn(t *testing.T) {
	m := world.NewMap(world.MapOptions{})
	boat := m.SpawnGameObject(1, "boat", world.GOTransport, world.Pos(5, 5, 0))
	rider := m.SpawnUnit(world.UnitTemplate{Name: "rider"}, world.Pos(7, 5, 0))
	walker := m.SpawnUnit(world.UnitTemplate{Name: "walker"}, world.Pos(0, 0, 0))
	m.Board(rider, boat)

	plain := DestOn(m, walker.Position(), walker)
	assert.Zero(t, plain.Transport)

	d := DestOn(m, rider.Position(), rider)
	assert.Equal(t, boat.ID(), d.Transport)
	assert.InDelta(t, 2, d.TransportOffset.X, 1e-3)

	m.Relocate(boat.ID(), world.Pos(15, 5, 0))
	got := d.Resolve(m)
	assert.InDelta(t, 17, got.X, 1e-3)
	assert.InDelta(t, 5, got.Y, 1e-3)
}
