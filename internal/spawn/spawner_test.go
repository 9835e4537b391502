package spawn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/spellcore/internal/ai"
	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

func newSpawner(t *testing.T) (*Spawner, *world.Map, *ai.TickManager) {
	t.Helper()
	eng, err := spell.NewEngine(spell.EngineOptions{
		Catalog: data.MustCatalog(data.TestSpell(100, "Bolt", data.TestDamageEffect(10))),
		Config:  config.DefaultSpellConfig(),
	})
	require.NoError(t, err)
	m := world.NewMap(world.MapOptions{ID: 3, CellSize: 32, Seed: 1})
	rt := eng.NewRuntime(m, spell.RuntimeOptions{})
	mgr := ai.NewTickManager(100 * time.Millisecond)
	mgr.Attach(m)
	return NewSpawner(m, rt, mgr), m, mgr
}

func TestSpawner_SpawnLines(t *testing.T) {
	s, m, mgr := newSpawner(t)

	units := s.SpawnLines(5, DefaultTemplate([]data.SpellID{100}))
	require.Len(t, units, 5)
	assert.Equal(t, 5, mgr.Count())
	assert.Len(t, m.Units(), 5)

	assert.Equal(t, world.Faction(1), units[0].Faction)
	assert.Equal(t, world.Faction(2), units[1].Faction)
	assert.Equal(t, world.Pos(0, 0, 0), units[0].Position())
	assert.Equal(t, world.Pos(0, lineGap, 0), units[1].Position())
	assert.Equal(t, world.Pos(lineSpacing, 0, 0), units[2].Position())
	assert.Equal(t, "unit-3-4", units[4].Name())
	assert.True(t, m.IsHostile(units[0], units[1]))
}

func TestSpawner_UnitsEngage(t *testing.T) {
	s, m, _ := newSpawner(t)
	units := s.SpawnLines(2, DefaultTemplate([]data.SpellID{100}))

	for range 10 {
		m.Update(100 * time.Millisecond)
	}
	hurt := 0
	for _, u := range units {
		if u.Health() < u.MaxHealth() {
			hurt++
		}
	}
	assert.Positive(t, hurt)
}
