package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

type steadyMath struct{}

func (steadyMath) SpellHitResult(_, _ *world.Unit, _ *data.SpellInfo) combat.SpellMissInfo {
	return combat.MissNone
}

func (steadyMath) SpellDamageBonusDone(_, _ *world.Unit, _ *data.SpellInfo, _ int, amount int32, _ bool) int32 {
	return amount
}

func (steadyMath) SpellDamageBonusTaken(_, _ *world.Unit, _ *data.SpellInfo, amount int32) int32 {
	return amount
}

func (steadyMath) HealBonusDone(_, _ *world.Unit, _ *data.SpellInfo, _ int, amount int32, _ bool) int32 {
	return amount
}

func (steadyMath) HealBonusTaken(_, _ *world.Unit, _ *data.SpellInfo, amount int32) int32 {
	return amount
}

func (steadyMath) RollCrit(_, _ *world.Unit, _ *data.SpellInfo) bool             { return false }
func (steadyMath) CritBonus(_ *data.SpellInfo, amount int32) int32               { return amount }
func (steadyMath) CalcResist(_, _ *world.Unit, _ data.SchoolMask, _ int32) int32 { return 0 }
func (steadyMath) WeaponDamage(_ *world.Unit, _ world.AttackType, _ bool) int32  { return 10 }
func (steadyMath) AttackTime(_ *world.Unit, _ world.AttackType) time.Duration    { return 2 * time.Second }
func (steadyMath) IsHonorOrXPTarget(_, _ *world.Unit) bool                       { return true }

// scriptedRuntime builds a map whose engine carries the hooks of vm.
func scriptedRuntime(t *testing.T, vm *VM, spells ...data.SpellInfo) (*spell.Runtime, *world.Map) {
	t.Helper()
	scripts := spell.NewScriptRegistry()
	vm.Install(scripts)

	eng, err := spell.NewEngine(spell.EngineOptions{
		Catalog: data.MustCatalog(spells...),
		Config:  config.DefaultSpellConfig(),
		Scripts: scripts,
	})
	require.NoError(t, err)

	m := world.NewMap(world.MapOptions{ID: 1, CellSize: 32, Seed: 3})
	return eng.NewRuntime(m, spell.RuntimeOptions{Math: steadyMath{}}), m
}

func spawnPair(m *world.Map) (caster, target *world.Unit) {
	caster = m.SpawnUnit(world.UnitTemplate{Name: "mage", Level: 60, Faction: 1, MaxHealth: 1000, MaxMana: 1000}, world.Pos(0, 0, 0))
	target = m.SpawnUnit(world.UnitTemplate{Name: "ogre", Level: 60, Faction: 2, MaxHealth: 1000}, world.Pos(10, 0, 0))
	return caster, target
}

func bolt(id data.SpellID, points int32) data.SpellInfo {
	return data.TestSpell(id, "Bolt", data.TestDamageEffect(points))
}

func TestVM_OnEffectHitRewritesValue(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("double", `
		spell_script(100, {
			on_effect_hit = function(ctx)
				return false, ctx.value * 2
			end,
		})
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)

	_, res := rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	require.Equal(t, spell.SpellCastOK, res)
	assert.Equal(t, int32(800), ogre.Health())
}

func TestVM_OnEffectHitPrevents(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("prevent", `
		spell_script(100, {
			on_effect_hit = function(ctx) return true end,
		})
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)

	_, res := rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	require.Equal(t, spell.SpellCastOK, res)
	assert.Equal(t, int32(1000), ogre.Health())
}

func TestVM_CheckCastVetoesByTargetHealth(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("execute", `
		spell_script(100, {
			check_cast = function(ctx)
				if ctx.target and ctx.target.health > ctx.target.max_health / 2 then
					return "bad_targets"
				end
			end,
		})
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)

	_, res := rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, spell.SpellFailedBadTargets, res)

	ogre.ModifyHealth(-600)
	_, res = rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, spell.SpellCastOK, res)
	assert.Equal(t, int32(300), ogre.Health())
}

func TestVM_UnknownResultAllowsCast(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("typo", `
		spell_script(100, { check_cast = function(ctx) return "no_such_result" end })
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)

	_, res := rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, spell.SpellCastOK, res)
}

func TestVM_RuntimeErrorIsIgnored(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("broken", `
		spell_script(100, { on_effect_hit = function(ctx) error("boom") end })
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)

	rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, int32(900), ogre.Health())
}

func TestVM_AfterHitSeesDamagedTarget(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("observe", `
		seen = nil
		spell_script(100, {
			after_hit = function(ctx) seen = ctx.target.health end,
		})
	`))

	rt, m := scriptedRuntime(t, vm, bolt(100, 100))
	mage, ogre := spawnPair(m)
	rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.l.Global("seen")
	seen, ok := vm.l.ToInteger(-1)
	vm.l.Pop(1)
	require.True(t, ok)
	assert.Equal(t, 900, seen)
}

func TestVM_CheckProcVetoes(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadString("gate", `
		spell_script(400, {
			check_proc = function(ctx) return ctx.damage ~= nil and ctx.damage >= 200 end,
		})
	`))

	buff := data.TestSpell(400, "Ignite", data.SpellEffectInfo{
		Effect:        data.EffectApplyAura,
		ApplyAuraName: data.AuraProcTriggerDamage,
		BasePoints:    25,
		TargetA:       data.TargetUnitCaster,
	})
	b := data.NewBuilder()
	for _, s := range []data.SpellInfo{buff, bolt(100, 100), bolt(101, 250)} {
		require.NoError(t, b.AddSpell(s))
	}
	require.NoError(t, b.AddProc(data.ProcEntry{SpellID: 400, ProcFlags: data.ProcDoneSpellMagicDmgClassNeg, Chance: 100}))
	scripts := spell.NewScriptRegistry()
	vm.Install(scripts)
	eng, err := spell.NewEngine(spell.EngineOptions{
		Catalog: data.MustPublish(b),
		Config:  config.DefaultSpellConfig(),
		Scripts: scripts,
	})
	require.NoError(t, err)
	m := world.NewMap(world.MapOptions{ID: 1, CellSize: 32, Seed: 3})
	rt := eng.NewRuntime(m, spell.RuntimeOptions{Math: steadyMath{}})
	mage, ogre := spawnPair(m)

	_, res := rt.CastSpell(mage, 400, spell.CastTargets{}, spell.CastOptions{})
	require.Equal(t, spell.SpellCastOK, res)

	rt.CastSpell(mage, 100, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, int32(900), ogre.Health())

	rt.CastSpell(mage, 101, spell.UnitTarget(ogre.ID()), spell.CastOptions{})
	assert.Equal(t, int32(900-250-25), ogre.Health())
}

func TestVM_Declarations(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		err := New().LoadString("bad", `spell_script(1, {`)
		assert.Error(t, err)
	})

	t.Run("hook must be a function", func(t *testing.T) {
		err := New().LoadString("bad", `spell_script(1, { check_cast = 5 })`)
		assert.Error(t, err)
	})

	t.Run("non-positive id", func(t *testing.T) {
		err := New().LoadString("bad", `spell_script(0, {})`)
		assert.Error(t, err)
	})

	t.Run("spells listed in order", func(t *testing.T) {
		vm := New()
		require.NoError(t, vm.LoadString("many", `
			spell_script(30, {})
			spell_script(10, { after_hit = function() end })
			spell_script(20, {})
		`))
		assert.Equal(t, []data.SpellID{10, 20, 30}, vm.Spells())

		r := spell.NewScriptRegistry()
		assert.Equal(t, 3, vm.Install(r))
		assert.Len(t, r.For(10), 1)
	})
}

func TestVM_LoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`spell_script(2, {})`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`spell_script(1, {})`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not lua`), 0o644))

	vm := New()
	require.NoError(t, vm.LoadDir(dir))
	assert.Equal(t, []data.SpellID{1, 2}, vm.Spells())

	assert.NoError(t, New().LoadDir(filepath.Join(dir, "missing")))
}
