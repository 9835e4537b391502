// Package spawn places simulated units on a map and hands each one to an
// AI controller.
package spawn

import (
	"fmt"

	"github.com/udisondev/spellcore/internal/ai"
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

// Template describes the units a Spawner creates.
type Template struct {
	Level     int32
	MaxHealth int32
	MaxMana   int32
	Spells    []data.SpellID
}

// DefaultTemplate is a level 60 caster with deep pools.
func DefaultTemplate(spells []data.SpellID) Template {
	return Template{Level: 60, MaxHealth: 5000, MaxMana: 5000, Spells: spells}
}

const (
	// lineSpacing separates neighbours within one line.
	lineSpacing = 4
	// lineGap separates the two opposing lines.
	lineGap = 20
)

// Spawner populates one map.
type Spawner struct {
	m   *world.Map
	rt  *spell.Runtime
	mgr *ai.TickManager
}

func NewSpawner(m *world.Map, rt *spell.Runtime, mgr *ai.TickManager) *Spawner {
	return &Spawner{m: m, rt: rt, mgr: mgr}
}

// SpawnLines creates n units in two facing lines. Even indices join
// faction 1 at y=0, odd ones faction 2 at y=lineGap.
func (s *Spawner) SpawnLines(n int, t Template) []*world.Unit {
	units := make([]*world.Unit, 0, n)
	for i := range n {
		pos := world.Pos(float32(i/2)*lineSpacing, float32(i%2)*lineGap, 0)
		units = append(units, s.SpawnAt(world.Faction(1+i%2), pos, i, t))
	}
	return units
}

// SpawnAt creates one unit and registers its controller.
func (s *Spawner) SpawnAt(faction world.Faction, pos world.Position, index int, t Template) *world.Unit {
	u := s.m.SpawnUnit(world.UnitTemplate{
		Name:      fmt.Sprintf("unit-%d-%d", s.m.ID(), index),
		Level:     t.Level,
		Faction:   faction,
		MaxHealth: t.MaxHealth,
		MaxMana:   t.MaxMana,
	}, pos)
	s.mgr.Register(ai.NewCasterAI(u, s.rt, ai.CasterOptions{Spells: t.Spells}))
	return u
}
