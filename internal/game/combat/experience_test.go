package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/spellcore/internal/world"
)

func TestGrayLevel(t *testing.T) {
	tests := []struct {
		level int32
		want  int32
	}{
		{1, 0},
		{5, 0},
		{10, 4},
		{20, 13},
		{39, 31},
		{40, 31},
		{59, 47},
		{60, 51},
		{70, 61},
		{80, 71},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GrayLevel(tt.level), "level %d", tt.level)
	}
}

func TestIsHonorOrXPTarget(t *testing.T) {
	m := world.NewMap(world.MapOptions{})
	hero := m.SpawnUnit(world.UnitTemplate{Name: "hero", Player: true, Level: 60, Faction: 1, MaxHealth: 100}, world.Pos(0, 0, 0))
	lowbie := m.SpawnUnit(world.UnitTemplate{Name: "lowbie", Player: true, Level: 10, Faction: 2, MaxHealth: 100}, world.Pos(1, 0, 0))
	gray := m.SpawnUnit(world.UnitTemplate{Name: "boar", Level: 51, Faction: 2, MaxHealth: 100}, world.Pos(2, 0, 0))
	green := m.SpawnUnit(world.UnitTemplate{Name: "ogre", Level: 52, Faction: 2, MaxHealth: 100}, world.Pos(3, 0, 0))
	dummy := m.SpawnUnit(world.UnitTemplate{Name: "dummy", Level: 60, Faction: 2, MaxHealth: 100, NoXP: true}, world.Pos(4, 0, 0))

	assert.True(t, IsHonorOrXPTarget(hero, lowbie), "players always count")
	assert.False(t, IsHonorOrXPTarget(hero, gray))
	assert.True(t, IsHonorOrXPTarget(hero, green))
	assert.False(t, IsHonorOrXPTarget(hero, dummy))
	assert.False(t, IsHonorOrXPTarget(hero, hero))
	assert.False(t, IsHonorOrXPTarget(nil, green))
}
