package ai

import (
	"testing"
	"time"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

func newTestRuntime(t *testing.T) (*spell.Runtime, *world.Map) {
	t.Helper()
	eng, err := spell.NewEngine(spell.EngineOptions{
		Catalog: data.MustCatalog(data.TestSpell(100, "Bolt", data.TestDamageEffect(10))),
		Config:  config.DefaultSpellConfig(),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	m := world.NewMap(world.MapOptions{ID: 7, CellSize: 32, Seed: 1})
	return eng.NewRuntime(m, spell.RuntimeOptions{}), m
}

func spawn(m *world.Map, name string, faction world.Faction, x float32) *world.Unit {
	return m.SpawnUnit(world.UnitTemplate{Name: name, Level: 60, Faction: faction, MaxHealth: 1000, MaxMana: 100}, world.Pos(x, 0, 0))
}

func TestTickManager_RegisterUnregister(t *testing.T) {
	rt, m := newTestRuntime(t)
	mgr := NewTickManager(time.Second)
	mgr.Attach(m)

	u := spawn(m, "mage", 1, 0)
	mgr.Register(NewCasterAI(u, rt, CasterOptions{Spells: []data.SpellID{100}}))
	if mgr.Count() != 1 {
		t.Fatalf("Count() after Register() = %d, want 1", mgr.Count())
	}
	if _, err := mgr.Controller(u.ID()); err != nil {
		t.Fatalf("Controller() error = %v", err)
	}

	m.Remove(u.ID())
	if mgr.Count() != 0 {
		t.Errorf("Count() after Remove() = %d, want 0", mgr.Count())
	}
	if _, err := mgr.Controller(u.ID()); err == nil {
		t.Error("Controller() after Remove() should return error")
	}
}

func TestTickManager_TicksOnInterval(t *testing.T) {
	rt, m := newTestRuntime(t)
	mgr := NewTickManager(time.Second)
	mgr.Attach(m)

	mage := spawn(m, "mage", 1, 0)
	spawn(m, "ogre", 2, 10)
	c := NewCasterAI(mage, rt, CasterOptions{Spells: []data.SpellID{100}})
	mgr.Register(c)

	m.Update(500 * time.Millisecond)
	if c.Casts() != 0 {
		t.Fatalf("Casts() before interval = %d, want 0", c.Casts())
	}
	m.Update(500 * time.Millisecond)
	if c.Casts() != 1 {
		t.Fatalf("Casts() after interval = %d, want 1", c.Casts())
	}
	if c.Intention() != IntentionAttack {
		t.Errorf("Intention() = %v, want ATTACK", c.Intention())
	}
}

func TestCasterAI_PicksNearestHostile(t *testing.T) {
	rt, m := newTestRuntime(t)
	mage := spawn(m, "mage", 1, 0)
	spawn(m, "friend", 1, 3)
	far := spawn(m, "far ogre", 2, 20)
	near := spawn(m, "near ogre", 2, 8)
	spawn(m, "distant ogre", 2, 200)

	c := NewCasterAI(mage, rt, CasterOptions{Spells: []data.SpellID{100}})
	c.Tick(m.Now())
	if c.Target() != near.ID() {
		t.Fatalf("Target() = %d, want nearest hostile %d", c.Target(), near.ID())
	}

	m.Remove(near.ID())
	c.Tick(m.Now())
	if c.Target() != far.ID() {
		t.Errorf("Target() after removal = %d, want %d", c.Target(), far.ID())
	}
}

func TestCasterAI_IdleWithoutHostiles(t *testing.T) {
	rt, m := newTestRuntime(t)
	mage := spawn(m, "mage", 1, 0)
	spawn(m, "friend", 1, 5)

	c := NewCasterAI(mage, rt, CasterOptions{Spells: []data.SpellID{100}})
	c.Tick(m.Now())
	if c.Intention() != IntentionIdle {
		t.Errorf("Intention() = %v, want IDLE", c.Intention())
	}
	if c.Casts() != 0 {
		t.Errorf("Casts() = %d, want 0", c.Casts())
	}
}

func TestCasterAI_MeleeWithoutSpells(t *testing.T) {
	rt, m := newTestRuntime(t)
	warrior := spawn(m, "warrior", 1, 0)
	spawn(m, "ogre", 2, 2)

	c := NewCasterAI(warrior, rt, CasterOptions{})
	c.Tick(m.Now())
	if c.Swings() != 1 {
		t.Fatalf("Swings() = %d, want 1", c.Swings())
	}
	c.Tick(m.Now())
	if c.Swings() != 1 {
		t.Errorf("Swings() before swing timer = %d, want 1", c.Swings())
	}
}

func TestCasterAI_RespawnsAfterDelay(t *testing.T) {
	rt, m := newTestRuntime(t)
	mage := spawn(m, "mage", 1, 0)
	c := NewCasterAI(mage, rt, CasterOptions{RespawnDelay: 5 * time.Second})

	mage.ModifyHealth(-mage.Health())
	c.Tick(time.Second)
	if c.Intention() != IntentionDead {
		t.Fatalf("Intention() = %v, want DEAD", c.Intention())
	}
	c.Tick(3 * time.Second)
	if mage.IsAlive() {
		t.Fatal("unit revived before respawn delay")
	}
	c.Tick(6 * time.Second)
	if !mage.IsAlive() || mage.Health() != mage.MaxHealth() {
		t.Errorf("after respawn alive=%v health=%d, want alive at full health", mage.IsAlive(), mage.Health())
	}
	if c.Intention() != IntentionIdle {
		t.Errorf("Intention() after respawn = %v, want IDLE", c.Intention())
	}
}
