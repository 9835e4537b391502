package spell

import (
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// manaShieldRatio is the mana spent per point absorbed by a mana shield.
const manaShieldRatio = 2

// DealDamage applies info to its victim after absorbs, adds threat and
// combat, logs the hit and handles the kill. info.Damage is rewritten to the
// amount actually taken.
func (rt *Runtime) DealDamage(info *combat.DamageInfo) {
	victim := info.Victim
	if victim == nil || !victim.IsAlive() || info.Damage <= 0 {
		return
	}
	rt.absorbDamage(info)

	taken := -victim.ModifyHealth(-info.Damage)
	info.Damage = taken
	rt.log.Damage(info)

	att := info.Attacker
	if att != nil && att != victim {
		now := rt.m.Now()
		att.SetInCombat(now, combatTimeout)
		victim.SetInCombat(now, combatTimeout)
		if info.Spell == nil || !info.Spell.HasAttribute(data.AttrNoThreat) {
			victim.AddThreat(att.ID(), float32(att.ApplyStat(world.StatThreat, float64(taken+info.Absorbed))))
		}
	}
	if !victim.IsAlive() {
		rt.kill(att, victim)
	}
}

// absorbDamage consumes school absorb and mana shield auras of the victim.
func (rt *Runtime) absorbDamage(info *combat.DamageInfo) {
	h := rt.holders[info.Victim.ID()]
	if h == nil {
		return
	}
	school := info.School
	for _, e := range h.EffectsOfType(data.AuraSchoolAbsorb) {
		if info.Damage == 0 {
			return
		}
		if e.Misc != 0 && data.SchoolMask(e.Misc)&school == 0 {
			continue
		}
		rt.consumeShield(h, e, info, 1)
	}
	for _, e := range h.EffectsOfType(data.AuraManaShield) {
		if info.Damage == 0 {
			return
		}
		if e.Misc != 0 && data.SchoolMask(e.Misc)&school == 0 {
			continue
		}
		rt.consumeShield(h, e, info, manaShieldRatio)
	}
}

// consumeShield absorbs from one shield effect. A ratio above one charges
// the owner's mana per absorbed point.
func (rt *Runtime) consumeShield(h *aura.Holder, e *aura.Effect, info *combat.DamageInfo, ratio int32) {
	if e.Aura.IsRemoved() || e.BaseAmount <= 0 {
		return
	}
	absorb := min(e.BaseAmount, info.Damage)
	if ratio > 1 {
		owner := info.Victim
		absorb = min(absorb, owner.Power(data.PowerMana)/ratio)
		if absorb <= 0 {
			return
		}
		owner.ModifyPower(data.PowerMana, -absorb*ratio)
	}
	e.BaseAmount -= absorb
	info.Damage -= absorb
	info.Absorbed += absorb
	if e.BaseAmount <= 0 {
		h.Remove(e.Aura, aura.RemoveCancel)
	}
}

// DealHeal heals the target and fills in the effective amount.
func (rt *Runtime) DealHeal(info *combat.HealInfo) {
	t := info.Target
	if t == nil || !t.IsAlive() || info.Heal <= 0 {
		return
	}
	info.Effective = t.ModifyHealth(info.Heal)
	rt.log.Heal(info)
	if info.Healer != nil && info.Effective > 0 {
		// healing threat is spread to everything fighting the target
		for _, u := range rt.m.Units() {
			if u.Threat(t.ID()) > 0 {
				u.AddThreat(info.Healer.ID(), float32(info.Effective)/2)
			}
		}
	}
}

// kill runs the death sequence of victim.
func (rt *Runtime) kill(killer, victim *world.Unit) {
	var killerID world.ObjectID
	if killer != nil {
		killerID = killer.ID()
	}
	rt.log.Death(victim.ID(), killerID)

	if killer != nil && killer != victim {
		rt.ProcSkillsAndAuras(ProcEventInfo{
			Actor:                killer,
			ActionTarget:         victim,
			TypeMask:             data.ProcKill,
			ActionTargetTypeMask: data.ProcKilled,
		})
	}
	rt.ProcSkillsAndAuras(ProcEventInfo{Actor: victim, TypeMask: data.ProcDeath})

	if h := rt.holders[victim.ID()]; h != nil {
		h.RemoveOnDeath()
	}
	rt.InterruptCast(victim.ID())
	if victim.IsPlayer() {
		rt.m.SpawnCorpse(victim)
	}
}

// MeleeSwing performs one auto attack of attacker on victim. It is the
// entry point for melee proc events and damage shields.
func (rt *Runtime) MeleeSwing(attacker, victim *world.Unit, attType world.AttackType) *combat.DamageInfo {
	if attacker == nil || victim == nil || !attacker.IsAlive() || !victim.IsAlive() {
		return nil
	}
	info := &combat.DamageInfo{
		Attacker:   attacker,
		Victim:     victim,
		School:     data.SchoolMaskNormal,
		AttackType: attType,
		Damage:     rt.math.WeaponDamage(attacker, attType, false),
	}
	hitMask := data.ProcHitNormal
	if rt.math.RollCrit(attacker, victim, meleeSwingInfo) {
		info.Crit = true
		info.Damage = rt.math.CritBonus(meleeSwingInfo, info.Damage)
		hitMask = data.ProcHitCritical
	}
	rt.DealDamage(info)
	if info.Absorbed > 0 {
		hitMask |= data.ProcHitAbsorb
	}

	done, taken := data.ProcDoneMeleeAutoAttack, data.ProcTakenMeleeAutoAttack
	switch attType {
	case world.OffAttack:
		done |= data.ProcDoneOffhandAttack
	case world.RangedAttack:
		done, taken = data.ProcDoneRangedAutoAttack, data.ProcTakenRangedAutoAttack
	default:
		done |= data.ProcDoneMainhandAttack
	}
	if info.Damage > 0 {
		taken |= data.ProcTakenDamage
	}
	rt.procPair(attacker, victim, done, taken, data.ProcSpellTypeDamage, data.ProcSpellPhaseNone, hitMask, nil, info, nil)

	if attType != world.RangedAttack {
		rt.damageShields(attacker, victim)
	}
	return info
}

// meleeSwingInfo stands in for the spell of a white swing in crit math.
var meleeSwingInfo = &data.SpellInfo{SchoolMask: data.SchoolMaskNormal, DmgClass: data.DmgClassMelee}

// damageShields reflects damage shield auras of victim back to attacker.
func (rt *Runtime) damageShields(attacker, victim *world.Unit) {
	h := rt.holders[victim.ID()]
	if h == nil {
		return
	}
	for _, e := range h.EffectsOfType(data.AuraDamageShield) {
		if !attacker.IsAlive() {
			return
		}
		rt.DealDamage(&combat.DamageInfo{
			Attacker:    victim,
			Victim:      attacker,
			Spell:       e.Aura.Spell,
			EffectIndex: e.Index,
			School:      e.Aura.Spell.SchoolMask,
			Damage:      e.Amount(),
		})
	}
}
