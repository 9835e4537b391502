package spell

import (
	"log/slog"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// maxStealDuration caps the duration of a stolen buff.
const maxStealDuration = 2 * time.Minute

type effectDecl struct {
	kind data.SpellEffectName
	fn   EffectHandler
}

// effectDecls lists every effect kind with a real handler. Kinds not listed
// resolve to a no-op.
var effectDecls = []effectDecl{
	{data.EffectInstakill, effectInstakill},
	{data.EffectSchoolDamage, effectSchoolDamage},
	{data.EffectDummy, effectScripted},
	{data.EffectTeleportUnits, effectTeleportUnits},
	{data.EffectApplyAura, effectApplyAura},
	{data.EffectEnvironmentalDamage, effectEnvironmentalDamage},
	{data.EffectPowerDrain, effectPowerDrain},
	{data.EffectHealthLeech, effectHealthLeech},
	{data.EffectHeal, effectHeal},
	{data.EffectWeaponDamageNoschool, effectWeaponDamage},
	{data.EffectResurrect, effectResurrect},
	{data.EffectCreateItem, effectCreateItem},
	{data.EffectPersistentAreaAura, effectPersistentAreaAura},
	{data.EffectSummon, effectSummon},
	{data.EffectLeap, effectLeap},
	{data.EffectEnergize, effectEnergize},
	{data.EffectWeaponPercentDamage, effectWeaponDamage},
	{data.EffectTriggerMissile, effectTriggerMissile},
	{data.EffectOpenLock, effectActivateObject},
	{data.EffectApplyAreaAuraParty, effectApplyAreaAura},
	{data.EffectDispel, effectDispel},
	{data.EffectJump, effectJump},
	{data.EffectJumpDest, effectJumpDest},
	{data.EffectTeleportUnitsFaceCaster, effectTeleportUnits},
	{data.EffectTransDoor, effectSummonObject},
	{data.EffectEnchantItem, effectEnchantItem},
	{data.EffectEnchantItemTemporary, effectEnchantItem},
	{data.EffectWeaponDamage, effectWeaponDamage},
	{data.EffectSendEvent, effectScripted},
	{data.EffectPowerBurn, effectPowerBurn},
	{data.EffectThreat, effectThreat},
	{data.EffectTriggerSpell, effectTriggerSpell},
	{data.EffectApplyAreaAuraRaid, effectApplyAreaAura},
	{data.EffectHealMaxHealth, effectHealMaxHealth},
	{data.EffectInterruptCast, effectInterruptCast},
	{data.EffectHealMechanical, effectHeal},
	{data.EffectSummonObjectWild, effectSummonObject},
	{data.EffectScriptEffect, effectScripted},
	{data.EffectActivateObject, effectActivateObject},
	{data.EffectKillCredit, effectScripted},
	{data.EffectThreatAll, effectThreatAll},
	{data.EffectSelfResurrect, effectSelfResurrect},
	{data.EffectCharge, effectCharge},
	{data.EffectKnockBack, effectKnockBack},
	{data.EffectDispelMechanic, effectDispelMechanic},
	{data.EffectResurrectNew, effectResurrect},
	{data.EffectSkinPlayerCorpse, effectSkinPlayerCorpse},
	{data.EffectApplyAreaAuraPet, effectApplyAreaAura},
	{data.EffectNormalizedWeaponDmg, effectWeaponDamage},
	{data.EffectPullTowards, effectPullTowards},
	{data.EffectModifyThreatPercent, effectModifyThreatPercent},
	{data.EffectStealBeneficialBuff, effectStealBeneficialBuff},
	{data.EffectApplyAreaAuraFriend, effectApplyAreaAura},
	{data.EffectApplyAreaAuraEnemy, effectApplyAreaAura},
	{data.EffectHealPct, effectHealPct},
	{data.EffectEnergizePct, effectEnergizePct},
	{data.EffectForceCast, effectForceCast},
	{data.EffectForceCastWithValue, effectForceCast},
	{data.EffectTriggerSpellWithValue, effectTriggerSpell},
	{data.EffectApplyAreaAuraOwner, effectApplyAreaAura},
	{data.EffectKnockBackDest, effectKnockBack},
	{data.EffectPullTowardsDest, effectPullTowards},
	{data.EffectTriggerMissileSpellWithValue, effectTriggerMissile},
	{data.EffectChargeDest, effectChargeDest},
	{data.EffectEnchantItemPrismatic, effectEnchantItem},
	{data.EffectRemoveAura, effectRemoveAura},
}

// hitUnitTarget returns the unit target when mode is HitTarget.
func (s *Spell) hitUnitTarget(mode HandleMode) *world.Unit {
	if mode != HandleHitTarget {
		return nil
	}
	return s.unitTarget
}

// hasUnitRecord reports whether effect i reached any unit.
func (s *Spell) hasUnitRecord(i int) bool {
	for k := range s.records {
		if s.records[k].Kind == TargetKindUnit && s.records[k].hasEffect(i) {
			return true
		}
	}
	return false
}

// copyTargets returns the explicit targets with destinations detached from
// the parent cast.
func (s *Spell) copyTargets() CastTargets {
	t := s.targets
	if t.Dst != nil {
		d := *t.Dst
		t.Dst = &d
	}
	if t.Src != nil {
		d := *t.Src
		t.Src = &d
	}
	return t
}

func effectSchoolDamage(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	m := s.rt.math
	amount := m.SpellDamageBonusDone(s.caster, u, s.Info, s.effIndex, s.EffectValue, false)
	s.damage += m.SpellDamageBonusTaken(s.caster, u, s.Info, amount)
}

func effectEnvironmentalDamage(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if u := s.hitUnitTarget(mode); u != nil {
		s.damage += s.EffectValue
	}
}

func effectInstakill(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() {
		return
	}
	info := &combat.DamageInfo{
		Attacker:    s.caster,
		Victim:      u,
		Spell:       s.Info,
		EffectIndex: s.effIndex,
		School:      s.Info.SchoolMask,
		Damage:      u.Health(),
	}
	u.ModifyHealth(-info.Damage)
	s.rt.log.Damage(info)
	s.rt.kill(s.caster, u)
}

// effectWeaponDamage adds weapon based damage. Percent effects scale the
// rolled weapon damage, the others add the effect value on top.
func effectWeaponDamage(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	normalized := eff.Effect == data.EffectNormalizedWeaponDmg
	weapon := s.rt.math.WeaponDamage(s.caster, attackTypeOf(s.Info), normalized)
	if eff.Effect == data.EffectWeaponPercentDamage {
		s.damage += weapon * s.EffectValue / 100
		return
	}
	s.damage += weapon + s.EffectValue
}

func effectHealthLeech(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() {
		return
	}
	dmg := &combat.DamageInfo{
		Attacker:    s.caster,
		Victim:      u,
		Spell:       s.Info,
		EffectIndex: s.effIndex,
		School:      s.Info.SchoolMask,
		Damage:      s.rt.math.SpellDamageBonusDone(s.caster, u, s.Info, s.effIndex, s.EffectValue, false),
	}
	s.rt.DealDamage(dmg)
	mult := eff.DamageMultiplier
	if mult == 0 {
		mult = 1
	}
	if back := int32(float32(dmg.Damage) * mult); back > 0 && s.caster.IsAlive() {
		s.rt.DealHeal(&combat.HealInfo{Healer: s.caster, Target: s.caster, Spell: s.Info, Heal: back})
	}
}

func effectPowerDrain(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || s.EffectValue <= 0 {
		return
	}
	power := data.PowerType(eff.MiscValue)
	drained := -u.ModifyPower(power, -s.EffectValue)
	mult := eff.DamageMultiplier
	if mult == 0 {
		mult = 1
	}
	if gain := int32(float32(drained) * mult); gain > 0 {
		s.caster.ModifyPower(power, gain)
	}
}

func effectPowerBurn(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || s.EffectValue <= 0 {
		return
	}
	burned := -u.ModifyPower(data.PowerType(eff.MiscValue), -s.EffectValue)
	mult := eff.DamageMultiplier
	if mult == 0 {
		mult = 1
	}
	s.damage += int32(float32(burned) * mult)
}

func effectHeal(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	m := s.rt.math
	amount := m.HealBonusDone(s.caster, u, s.Info, s.effIndex, s.EffectValue, false)
	s.healing += m.HealBonusTaken(s.caster, u, s.Info, amount)
}

func effectHealPct(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if u := s.hitUnitTarget(mode); u != nil {
		s.healing += u.MaxHealth() * s.EffectValue / 100
	}
}

func effectHealMaxHealth(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if u := s.hitUnitTarget(mode); u != nil {
		s.healing += u.MaxHealth() - u.Health()
	}
}

func effectEnergize(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() || s.EffectValue == 0 {
		return
	}
	u.ModifyPower(data.PowerType(eff.MiscValue), s.EffectValue)
}

func effectEnergizePct(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() {
		return
	}
	power := data.PowerType(eff.MiscValue)
	u.ModifyPower(power, u.MaxPower(power)*s.EffectValue/100)
}

func effectResurrect(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || u.IsAlive() {
		return
	}
	pct := s.EffectValue
	if eff.Effect == data.EffectResurrectNew && u.MaxHealth() > 0 {
		pct = max(1, s.EffectValue*100/u.MaxHealth())
	}
	u.Resurrect(min(pct, 100))
	slog.Debug("unit resurrected", "unit", u.ID(), "by", s.caster.ID(), "spell", s.Info.ID)
}

func effectSelfResurrect(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit || s.caster.IsAlive() {
		return
	}
	s.caster.Resurrect(min(max(s.EffectValue, 1), 100))
}

// effectApplyAura registers the slot for the aura built after all HitTarget
// handlers of the target ran.
func effectApplyAura(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if u := s.hitUnitTarget(mode); u == nil || !u.IsAlive() {
		return
	}
	s.auraMask |= 1 << s.effIndex
	s.auraAmounts[s.effIndex] = s.EffectValue
}

// effectApplyAreaAura applies the aura to the holder and, when the holder is
// the caster, to every matching unit within the effect radius.
func effectApplyAreaAura(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || !u.IsAlive() {
		return
	}
	effectApplyAura(s, eff, mode)
	if u != s.caster || eff.Radius <= 0 {
		return
	}
	var amounts [data.MaxSpellEffects]int32
	amounts[s.effIndex] = s.EffectValue
	for _, o := range s.rt.unitsInRange(u.Position(), eff.Radius) {
		if o == u || !o.IsAlive() || !s.areaAuraAccepts(eff.Effect, o) {
			continue
		}
		a := aura.New(s.Info, s.caster.ID(), o.ID(), 1<<s.effIndex, amounts)
		a.CastItem = s.opts.CastItem
		s.rt.ApplyAura(a)
	}
}

func (s *Spell) areaAuraAccepts(kind data.SpellEffectName, o *world.Unit) bool {
	c := s.caster
	switch kind {
	case data.EffectApplyAreaAuraParty:
		return c.IsInParty(o)
	case data.EffectApplyAreaAuraRaid:
		return c.IsInRaid(o)
	case data.EffectApplyAreaAuraFriend:
		return s.rt.m.IsFriendly(c, o)
	case data.EffectApplyAreaAuraEnemy:
		return !s.rt.m.IsFriendly(c, o)
	}
	return false
}

// effectPersistentAreaAura leaves a dynamic object at the destination. The
// runtime applies its aura to hostile units inside each tick.
func effectPersistentAreaAura(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit {
		return
	}
	pos := s.caster.Position()
	if s.destTarget != nil {
		pos = s.destTarget.Pos
	}
	rt := s.rt
	d := rt.m.SpawnDynamicObject(world.DynamicObject{
		Caster:      s.caster.ID(),
		SpellID:     uint32(s.Info.ID),
		EffectIndex: s.effIndex,
		Radius:      eff.Radius,
		ExpiresAt:   rt.m.Now() + s.Info.Duration,
	}, pos)
	slog.Debug("persistent area aura placed", "dynobj", d.ID(), "spell", s.Info.ID, "radius", eff.Radius)
}

func triggerValues(eff *data.SpellEffectInfo, value int32, opts *CastOptions) {
	switch eff.Effect {
	case data.EffectTriggerSpellWithValue, data.EffectTriggerMissileSpellWithValue, data.EffectForceCastWithValue:
		opts.ValueOverrides = [data.MaxSpellEffects]int32{value, value, value}
		opts.OverrideMask = 1<<data.MaxSpellEffects - 1
	}
}

// effectTriggerSpell casts the trigger spell at each unit hit, or at the
// explicit targets when the effect reached no unit.
func effectTriggerSpell(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	var targets CastTargets
	switch mode {
	case HandleHitTarget:
		if s.unitTarget == nil {
			return
		}
		targets = UnitTarget(s.unitTarget.ID())
	case HandleHit:
		if s.hasUnitRecord(s.effIndex) {
			return
		}
		targets = s.copyTargets()
	default:
		return
	}
	var opts CastOptions
	triggerValues(eff, s.EffectValue, &opts)
	s.rt.triggerSpell(s.caster, eff.TriggerSpell, targets, s, opts)
}

// effectTriggerMissile casts the trigger spell at the destination.
func effectTriggerMissile(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit {
		return
	}
	var targets CastTargets
	switch {
	case s.destTarget != nil:
		targets = DestTarget(s.destTarget.Pos)
	case s.targets.Dst != nil:
		targets = DestTarget(s.targets.Dst.Resolve(s.rt.m))
	default:
		return
	}
	var opts CastOptions
	triggerValues(eff, s.EffectValue, &opts)
	s.rt.triggerSpell(s.caster, eff.TriggerSpell, targets, s, opts)
}

// effectForceCast makes the target cast the trigger spell at the caster.
func effectForceCast(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	opts := CastOptions{OriginalCaster: s.caster.ID()}
	triggerValues(eff, s.EffectValue, &opts)
	s.rt.triggerSpell(u, eff.TriggerSpell, UnitTarget(s.caster.ID()), s, opts)
}

// effectDispel removes up to EffectValue auras of the dispel type: buffs
// from enemies, debuffs from friends. Newest auras go first.
func effectDispel(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	h := s.rt.holders[u.ID()]
	if h == nil {
		return
	}
	hostile := !s.rt.m.IsFriendly(s.caster, u)
	left := max(s.EffectValue, 1)
	for _, a := range dispellable(h, data.DispelType(eff.MiscValue), hostile) {
		if left == 0 {
			break
		}
		h.Remove(a, aura.RemoveCancel)
		left--
	}
}

// dispellable returns auras of type dt newest first. Positive auras are
// returned when buffs is set, negative ones otherwise.
func dispellable(h *aura.Holder, dt data.DispelType, buffs bool) []*aura.Aura {
	all := h.Auras()
	var out []*aura.Aura
	for i := len(all) - 1; i >= 0; i-- {
		a := all[i]
		if a.IsRemoved() || a.Spell.IsPassive() || a.Spell.Dispel == data.DispelNone {
			continue
		}
		if dt != data.DispelAll && a.Spell.Dispel != dt {
			continue
		}
		if a.Spell.IsPositive() != buffs {
			continue
		}
		out = append(out, a)
	}
	return out
}

func effectStealBeneficialBuff(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || s.rt.m.IsFriendly(s.caster, u) {
		return
	}
	h := s.rt.holders[u.ID()]
	if h == nil {
		return
	}
	now := s.rt.m.Now()
	left := max(s.EffectValue, 1)
	for _, a := range dispellable(h, data.DispelType(eff.MiscValue), true) {
		if left == 0 {
			break
		}
		var amounts [data.MaxSpellEffects]int32
		for i, e := range a.Effects {
			if e != nil {
				amounts[i] = e.BaseAmount
			}
		}
		stolen := aura.New(a.Spell, s.caster.ID(), s.caster.ID(), a.EffectMask(), amounts)
		if !a.IsPermanent() {
			stolen.Duration = min(a.Remaining(now), maxStealDuration)
		}
		h.Remove(a, aura.RemoveCancel)
		s.rt.ApplyAura(stolen)
		left--
	}
}

func effectDispelMechanic(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	h := s.rt.holders[u.ID()]
	if h == nil {
		return
	}
	mech := data.Mechanic(eff.MiscValue)
	h.RemoveIf(func(a *aura.Aura) bool {
		if a.Spell.Mechanic == mech {
			return true
		}
		for _, e := range a.Effects {
			if e != nil && e.Info().Mechanic == mech {
				return true
			}
		}
		return false
	}, aura.RemoveCancel)
}

func effectRemoveAura(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	if h := s.rt.holders[u.ID()]; h != nil {
		h.RemoveBySpell(eff.TriggerSpell, 0, aura.RemoveCancel)
	}
}

func effectThreat(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || u == s.caster || s.rt.m.IsFriendly(s.caster, u) {
		return
	}
	u.AddThreat(s.caster.ID(), float32(s.EffectValue))
}

// effectThreatAll adds threat on every unit already fighting the caster.
func effectThreatAll(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHit {
		return
	}
	id := s.caster.ID()
	for _, u := range s.rt.m.Units() {
		if u != s.caster && u.Threat(id) > 0 {
			u.AddThreat(id, float32(s.EffectValue))
		}
	}
}

func effectModifyThreatPercent(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil {
		return
	}
	id := s.caster.ID()
	if cur := u.Threat(id); cur > 0 {
		u.AddThreat(id, cur*float32(s.EffectValue)/100)
	}
}

func effectInterruptCast(s *Spell, _ *data.SpellEffectInfo, mode HandleMode) {
	u := s.hitUnitTarget(mode)
	if u == nil || u == s.caster {
		return
	}
	if s.rt.InterruptCast(u.ID()) {
		slog.Debug("cast interrupted", "unit", u.ID(), "by", s.caster.ID(), "spell", s.Info.ID)
	}
}

// effectScripted covers kinds that do nothing unless a script handles them.
func effectScripted(s *Spell, eff *data.SpellEffectInfo, mode HandleMode) {
	if mode != HandleHitTarget && mode != HandleHit {
		return
	}
	if mode == HandleHit && s.hasUnitRecord(s.effIndex) {
		return
	}
	slog.Debug("unscripted effect", "spell", s.Info.ID, "effect", eff.Effect, "index", s.effIndex, "mode", mode)
}
