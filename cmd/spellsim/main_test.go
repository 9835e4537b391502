package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/udisondev/spellcore/internal/ai"
	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/spawn"
	"github.com/udisondev/spellcore/internal/world"
)

func shippedConfig() config.Engine {
	cfg := config.DefaultEngine()
	cfg.DataDir = "../../data/spells"
	cfg.ScriptsDir = "../../data/scripts"
	return cfg
}

func TestBuildEngine_ShippedData(t *testing.T) {
	eng, err := buildEngine(context.Background(), shippedConfig(), sdkmetric.NewMeterProvider())
	require.NoError(t, err)

	c := eng.Catalog()
	assert.NotNil(t, c.Spell(133))
	assert.NotNil(t, c.Proc(11119))
	assert.Equal(t, uint32(5), c.Spell(8122).MaxAffectedTargets)
	assert.NotNil(t, c.Enchantment(803))

	spells := castableSpells(c)
	assert.Contains(t, spells, data.SpellID(133))
	assert.NotContains(t, spells, data.SpellID(11119))
	assert.NotContains(t, spells, data.SpellID(122))
}

func TestSpawnLines_MapsFight(t *testing.T) {
	eng, err := buildEngine(context.Background(), shippedConfig(), sdkmetric.NewMeterProvider())
	require.NoError(t, err)

	m := world.NewMap(world.MapOptions{ID: 1, CellSize: 64, Seed: 1})
	rt := eng.NewRuntime(m, spell.RuntimeOptions{})
	mgr := ai.NewTickManager(100 * time.Millisecond)
	mgr.Attach(m)
	spawn.NewSpawner(m, rt, mgr).SpawnLines(8, spawn.DefaultTemplate(castableSpells(eng.Catalog())))
	require.Equal(t, 8, mgr.Count())

	for range 300 {
		m.Update(100 * time.Millisecond)
	}

	hurt := 0
	for _, u := range m.Units() {
		if !u.IsAlive() || u.Health() < u.MaxHealth() {
			hurt++
		}
	}
	assert.Positive(t, hurt)
}
