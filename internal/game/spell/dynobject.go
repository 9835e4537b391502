package spell

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/world"
)

// updateDynamicObjects expires persistent area effects and keeps their aura
// on exactly the hostile units standing inside.
func (rt *Runtime) updateDynamicObjects(now time.Duration) {
	for _, d := range rt.m.DynamicObjects() {
		caster := rt.unit(d.Caster)
		info := rt.engine.catalog.Spell(data.SpellID(d.SpellID))
		if caster == nil || info == nil || (d.ExpiresAt > 0 && now >= d.ExpiresAt) {
			rt.m.Remove(d.ID())
			continue
		}
		rt.refreshDynamicObject(d, caster, info, now)
	}
}

func (rt *Runtime) refreshDynamicObject(d *world.DynamicObject, caster *world.Unit, info *data.SpellInfo, now time.Duration) {
	applied := rt.dynAuras[d.ID()]
	if applied == nil {
		applied = make(map[world.ObjectID]*aura.Aura)
		rt.dynAuras[d.ID()] = applied
	}
	inside := make(map[world.ObjectID]bool)
	for _, u := range rt.unitsInRange(d.Position(), d.Radius) {
		if !u.IsAlive() || rt.m.Factions().Reaction(caster.Faction, u.Faction) != world.ReactionHostile {
			continue
		}
		inside[u.ID()] = true
		if a := applied[u.ID()]; a != nil && !a.IsRemoved() {
			continue
		}
		a := rt.newDynamicAura(d, caster, info, u, now)
		if a == nil {
			continue
		}
		if rt.ApplyAura(a) == aura.Rejected {
			continue
		}
		if live := rt.holders[u.ID()].Find(info.ID, caster.ID()); live != nil {
			applied[u.ID()] = live
		}
	}
	for _, id := range slices.Sorted(maps.Keys(applied)) {
		if inside[id] {
			continue
		}
		if h := rt.holders[id]; h != nil {
			h.Remove(applied[id], aura.RemoveDefault)
		}
		delete(applied, id)
	}
}

// newDynamicAura builds the aura of the dynamic object's effect for u. It
// lasts no longer than the object itself.
func (rt *Runtime) newDynamicAura(d *world.DynamicObject, caster *world.Unit, info *data.SpellInfo, u *world.Unit, now time.Duration) *aura.Aura {
	if d.EffectIndex < 0 || d.EffectIndex >= len(info.Effects) {
		return nil
	}
	var amounts [data.MaxSpellEffects]int32
	amounts[d.EffectIndex] = info.Effects[d.EffectIndex].CalcValue(info, caster.Level, rt.m.Rand())
	a := aura.New(info, caster.ID(), u.ID(), 1<<d.EffectIndex, amounts)
	if a.Effects[d.EffectIndex] == nil {
		return nil
	}
	if d.ExpiresAt > 0 {
		a.Duration = d.ExpiresAt - now
	}
	return a
}

// clearDynamicObject strips the auras a removed dynamic object applied.
func (rt *Runtime) clearDynamicObject(id world.ObjectID) {
	applied := rt.dynAuras[id]
	delete(rt.dynAuras, id)
	for _, owner := range slices.Sorted(maps.Keys(applied)) {
		if h := rt.holders[owner]; h != nil {
			h.Remove(applied[owner], aura.RemoveExpire)
		}
	}
	if len(applied) > 0 {
		slog.Debug("persistent area aura expired", "dynobj", id, "units", len(applied))
	}
}
