package spell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

const (
	factionA world.Faction = 1
	factionB world.Faction = 2
)

// fixedMath makes every roll predictable: hits land as configured, bonuses
// are neutral and crits double.
type fixedMath struct {
	miss combat.SpellMissInfo
	crit bool
}

func (f fixedMath) SpellHitResult(_, _ *world.Unit, _ *data.SpellInfo) combat.SpellMissInfo {
	return f.miss
}

func (fixedMath) SpellDamageBonusDone(_, _ *world.Unit, _ *data.SpellInfo, _ int, amount int32, _ bool) int32 {
	return amount
}

func (fixedMath) SpellDamageBonusTaken(_, _ *world.Unit, _ *data.SpellInfo, amount int32) int32 {
	return amount
}

func (fixedMath) HealBonusDone(_, _ *world.Unit, _ *data.SpellInfo, _ int, amount int32, _ bool) int32 {
	return amount
}

func (fixedMath) HealBonusTaken(_, _ *world.Unit, _ *data.SpellInfo, amount int32) int32 {
	return amount
}

func (f fixedMath) RollCrit(_, _ *world.Unit, _ *data.SpellInfo) bool           { return f.crit }
func (fixedMath) CritBonus(_ *data.SpellInfo, amount int32) int32               { return amount * 2 }
func (fixedMath) CalcResist(_, _ *world.Unit, _ data.SchoolMask, _ int32) int32 { return 0 }
func (fixedMath) WeaponDamage(_ *world.Unit, _ world.AttackType, _ bool) int32  { return 50 }
func (fixedMath) AttackTime(_ *world.Unit, _ world.AttackType) time.Duration    { return 2 * time.Second }
func (fixedMath) IsHonorOrXPTarget(_, _ *world.Unit) bool                       { return true }

type testEnv struct {
	rt *Runtime
	m  *world.Map
}

type envOption func(*envConfig)

type envConfig struct {
	procs   []data.ProcEntry
	scripts *ScriptRegistry
	math    combat.Math
	metrics Metrics
	cfg     config.SpellConfig
}

func withProcs(entries ...data.ProcEntry) envOption {
	return func(c *envConfig) { c.procs = append(c.procs, entries...) }
}

func withScript(id data.SpellID, sc Script) envOption {
	return func(c *envConfig) { c.scripts.Add(id, sc) }
}

func withMath(m combat.Math) envOption {
	return func(c *envConfig) { c.math = m }
}

func withMetrics(m Metrics) envOption {
	return func(c *envConfig) { c.metrics = m }
}

func newTestEnv(t *testing.T, spells []data.SpellInfo, opts ...envOption) *testEnv {
	t.Helper()
	ec := envConfig{
		scripts: NewScriptRegistry(),
		math:    fixedMath{},
		cfg:     config.DefaultSpellConfig(),
	}
	for _, o := range opts {
		o(&ec)
	}

	b := data.NewBuilder()
	for _, s := range spells {
		require.NoError(t, b.AddSpell(s))
	}
	for _, p := range ec.procs {
		require.NoError(t, b.AddProc(p))
	}
	cat, err := b.Publish()
	require.NoError(t, err)

	eng, err := NewEngine(EngineOptions{
		Catalog: cat,
		Config:  ec.cfg,
		Scripts: ec.scripts,
		Metrics: ec.metrics,
	})
	require.NoError(t, err)

	m := world.NewMap(world.MapOptions{ID: 1, CellSize: 32, Seed: 7})
	return &testEnv{rt: eng.NewRuntime(m, RuntimeOptions{Math: ec.math}), m: m}
}

func (e *testEnv) spawn(name string, f world.Faction, x, y float32) *world.Unit {
	return e.m.SpawnUnit(world.UnitTemplate{
		Name:      name,
		Level:     60,
		Faction:   f,
		MaxHealth: 1000,
		MaxMana:   1000,
	}, world.Pos(x, y, 0))
}

func (e *testEnv) spawnPlayer(name string, f world.Faction, x, y float32) *world.Unit {
	return e.m.SpawnUnit(world.UnitTemplate{
		Name:      name,
		Player:    true,
		Level:     60,
		Faction:   f,
		MaxHealth: 1000,
		MaxMana:   1000,
	}, world.Pos(x, y, 0))
}

// advance ticks the map in 100ms steps.
func (e *testEnv) advance(d time.Duration) {
	const step = 100 * time.Millisecond
	for d > 0 {
		s := min(step, d)
		e.m.Update(s)
		d -= s
	}
}

func damageSpell(id data.SpellID, points int32) data.SpellInfo {
	return data.TestSpell(id, "Bolt", data.TestDamageEffect(points))
}

// countingMetrics records engine counters for assertions.
type countingMetrics struct {
	casts map[SpellCastResult]int
	procs map[data.SpellID]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{casts: make(map[SpellCastResult]int), procs: make(map[data.SpellID]int)}
}

func (c *countingMetrics) CastFinished(_ data.SpellID, r SpellCastResult) { c.casts[r]++ }
func (c *countingMetrics) EffectHandled(data.SpellEffectName, HandleMode) {}
func (c *countingMetrics) AuraApplied(data.SpellID, string)               {}
func (c *countingMetrics) ProcTriggered(id data.SpellID)                  { c.procs[id]++ }
