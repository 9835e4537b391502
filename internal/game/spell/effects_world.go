package spell

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

const (
	// contactDistance is where charges and pulls stop short of their target.
	contactDistance = 1.0
	// tempEnchantDuration applies to temporary enchants of spells without a
	// duration.
	tempEnchantDuration = time.Hour
)

// approach returns the point stop yards short of to, on the way from from,
// facing to.
func approach(from, to world.Position, stop float32) world.Position {
	facing := world.Position{X: from.X, Y: from.Y, Z: from.Z, O: from.AngleTo(to)}
	d := from.Dist2D(to)
	if d <= stop {
		return facing
	}
	p := facing.Relative(d-stop, 0)
	p.Z = to.Z
	return p
}

// away returns the point dist yards from p directly away from origin.
func away(origin, p world.Position, dist float32) world.Position {
	o := origin.O
	if origin.X != p.X || origin.Y != p.Y {
		o = origin.AngleTo(p)
	}
	from := world.Position{X: p.X, Y: p.Y, Z: p.Z, O: o}
	out := from.Relative(dist, 0)
	out.O = p.O
	return out
}

func (s *Spell) explicitDest() (world.Position, bool) {
	if s.destTarget != nil {
		return s.destTarget.Pos, true
	}
	if s.targets.Dst != nil {
		return s.targets.Dst.Resolve(s.rt.m), true
	}
	return world.Position{}, false
}

func effectCharge(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleLaunchTarget || s.unitTarget == nil || s.unitTarget == s.caster {
		return
	}
	s.rt.m.Relocate(s.caster.ID(), approach(s.caster.Position(), s.unitTarget.Position(), contactDistance))
}

func effectChargeDest(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleLaunch {
		return
	}
	if p, ok := s.explicitDest(); ok {
		s.rt.m.Relocate(s.caster.ID(), approach(s.caster.Position(), p, 0))
	}
}

func effectJump(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	effectCharge(s, eff, mode)
}

func effectJumpDest(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	effectChargeDest(s, eff, mode)
}

func effectLeap(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() {
		return
	}
	if p, ok := s.explicitDest(); ok {
		p.O = u.Position().O
		s.rt.m.Relocate(u.ID(), p)
	}
}

func effectTeleportUnits(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	if eff.Effect == data.EffectTeleportUnitsFaceCaster {
		cp := s.caster.Position()
		p := cp.Relative(eff.Radius, 0)
		p.O = p.AngleTo(cp)
		s.rt.m.Relocate(u.ID(), p)
		return
	}
	p, ok := s.explicitDest()
	if !ok {
		slog.Debug("teleport without destination", "spell", s.Info.ID, "unit", u.ID())
		return
	}
	s.rt.m.Relocate(u.ID(), p)
}

// effectKnockBack pushes the target MiscValue/10 yards away from the caster
// or from the destination.
func effectKnockBack(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || u == s.caster || !u.IsAlive() {
		return
	}
	origin := s.caster.Position()
	if eff.Effect == data.EffectKnockBackDest {
		p, ok := s.explicitDest()
		if !ok {
			return
		}
		origin = p
	}
	dist := float32(eff.MiscValue) / 10
	if dist <= 0 {
		return
	}
	s.rt.m.Relocate(u.ID(), away(origin, u.Position(), dist))
}

func effectPullTowards(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || u == s.caster || !u.IsAlive() {
		return
	}
	to, stop := s.caster.Position(), float32(contactDistance)
	if eff.Effect == data.EffectPullTowardsDest {
		p, ok := s.explicitDest()
		if !ok {
			return
		}
		to, stop = p, 0
	}
	s.rt.m.Relocate(u.ID(), approach(u.Position(), to, stop))
}

// effectSummon spawns EffectValue creatures of entry MiscValue around the
// destination, on the caster's side.
func effectSummon(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit || eff.MiscValue <= 0 {
		return
	}
	pos, ok := s.explicitDest()
	if !ok {
		pos = s.caster.Position()
	}
	count := max(s.EffectValue, 1)
	for i := range count {
		p := pos
		if count > 1 {
			p = pos.Relative(contactDistance, float32(i)*2*math.Pi/float32(count))
		}
		u := s.rt.m.SpawnUnit(world.UnitTemplate{
			Entry:     uint32(eff.MiscValue),
			Name:      s.Info.Name,
			Level:     s.caster.Level,
			Faction:   s.caster.Faction,
			MaxHealth: max(s.caster.MaxHealth()/2, 1),
		}, p)
		slog.Debug("creature summoned", "unit", u.ID(), "entry", eff.MiscValue, "summoner", s.caster.ID())
	}
}

func effectSummonObject(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit || eff.MiscValue <= 0 {
		return
	}
	pos, ok := s.explicitDest()
	if !ok {
		pos = s.caster.Position()
	}
	typ := world.GOGeneric
	if eff.Effect == data.EffectTransDoor {
		typ = world.GOTrap
	}
	g := s.rt.m.SpawnGameObject(uint32(eff.MiscValue), s.Info.Name, typ, pos)
	g.Owner = s.caster.ID()
	g.Faction = s.caster.Faction
	g.Level = s.caster.Level
	slog.Debug("object summoned", "gameobject", g.ID(), "entry", eff.MiscValue, "summoner", s.caster.ID())
}

func effectCreateItem(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsPlayer() {
		return
	}
	if eff.ItemType == 0 {
		slog.Warn("create item without item type", "spell", s.Info.ID)
		return
	}
	it := s.rt.m.NewItem(eff.ItemType, "", uint32(max(s.EffectValue, 1)))
	u.AddItem(it)
}

// effectEnchantItem puts enchantment MiscValue into the slot matching the
// effect kind.
func effectEnchantItem(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHitTarget || s.itemTarget == nil {
		return
	}
	id := uint32(eff.MiscValue)
	if s.rt.engine.catalog.Enchantment(id) == nil {
		slog.Warn("enchantment not found", "enchant", id, "spell", s.Info.ID)
		return
	}
	it := s.itemTarget
	switch eff.Effect {
	case data.EffectEnchantItemTemporary:
		d := s.Info.Duration
		if d <= 0 {
			d = tempEnchantDuration
		}
		it.Enchantments[world.EnchantSlotTemporary] = id
		it.EnchantUntil[world.EnchantSlotTemporary] = s.rt.m.Now() + d
	case data.EffectEnchantItemPrismatic:
		it.Enchantments[world.EnchantSlotSocket] = id
	default:
		it.Enchantments[world.EnchantSlotPermanent] = id
	}
	slog.Debug("item enchanted", "item", it.ID(), "enchant", id, "by", s.caster.ID())
}

func effectActivateObject(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHitTarget || s.goTarget == nil {
		return
	}
	g := s.goTarget
	if eff.Effect == data.EffectOpenLock && g.Type != world.GODoor && g.Type != world.GOChest {
		return
	}
	g.Active = true
	slog.Debug("object activated", "gameobject", g.ID(), "by", s.caster.ID())
}

func effectSkinPlayerCorpse(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHitTarget || s.corpseTarget == nil {
		return
	}
	s.corpseTarget.Bones = true
}
