package spell

import (
	"log/slog"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// ProcEventInfo describes one combat event offered to proc-capable auras.
// Actor did something to ActionTarget; TypeMask are the actor-side flags and
// ActionTargetTypeMask the target-side flags.
type ProcEventInfo struct {
	Actor                *world.Unit
	ActionTarget         *world.Unit
	TypeMask             data.ProcFlags
	ActionTargetTypeMask data.ProcFlags

	// ProcTarget is the other party from the point of view of the aura
	// owner being evaluated. Set by the engine.
	ProcTarget *world.Unit

	SpellTypeMask  data.ProcSpellTypeMask
	SpellPhaseMask data.ProcSpellPhaseMask
	HitMask        data.ProcHitMask

	Spell      *data.SpellInfo
	SchoolMask data.SchoolMask
	Damage     *combat.DamageInfo
	Heal       *combat.HealInfo
	Cast       *Spell
	Triggered  bool
	FromItem   bool
}

// CanSpellTriggerProcOnEvent reports whether entry matches ev. It only reads
// its arguments.
func CanSpellTriggerProcOnEvent(entry *data.ProcEntry, ev *ProcEventInfo) bool {
	if ev.TypeMask&entry.ProcFlags == 0 {
		return false
	}

	if entry.HasAttribute(data.ProcAttrReqExpOrHonor) && ev.Actor != nil && ev.Actor.IsPlayer() && ev.ActionTarget != nil {
		if !combat.IsHonorOrXPTarget(ev.Actor, ev.ActionTarget) {
			return false
		}
	}

	if entry.HasAttribute(data.ProcAttrReqManaCost) && ev.Spell != nil && ev.Spell.ManaCost == 0 {
		return false
	}

	if ev.TypeMask&data.ProcAlwaysTriggerMask != 0 {
		return true
	}

	autoAttack := ev.TypeMask&(data.ProcDoneMeleeAutoAttack|data.ProcTakenMeleeAutoAttack|
		data.ProcDoneRangedAutoAttack|data.ProcTakenRangedAutoAttack) != 0
	if ev.Triggered && !autoAttack && !entry.HasAttribute(data.ProcAttrTriggeredCanProc) {
		return false
	}
	if ev.FromItem && entry.HasAttribute(data.ProcAttrCantProcFromItemCast) {
		return false
	}

	if entry.SchoolMask != 0 && ev.SchoolMask&entry.SchoolMask == 0 {
		return false
	}

	if ev.TypeMask&(data.ProcSpellMask|data.ProcPeriodicMask) != 0 {
		if ev.Spell != nil && !ev.Spell.IsAffected(entry.SpellFamilyName, entry.SpellFamilyMask) {
			return false
		}
		if entry.SpellTypeMask != 0 && ev.SpellTypeMask&entry.SpellTypeMask == 0 {
			return false
		}
	}

	if ev.TypeMask&data.ProcReqSpellPhaseMask != 0 && entry.SpellPhaseMask != 0 {
		if ev.SpellPhaseMask&entry.SpellPhaseMask == 0 {
			return false
		}
	}

	taken := ev.TypeMask&data.ProcTakenHitMask != 0
	done := ev.TypeMask&data.ProcDoneHitMask != 0 && ev.SpellPhaseMask&data.ProcSpellPhaseCast == 0
	if taken || done {
		hitMask := entry.HitMask
		if hitMask == 0 {
			if taken {
				hitMask = data.ProcHitNormal | data.ProcHitCritical
			} else {
				hitMask = data.ProcHitNormal | data.ProcHitCritical | data.ProcHitAbsorb
			}
		}
		if ev.HitMask&hitMask == 0 {
			return false
		}
	}
	return true
}

// PPMChance converts procs per minute into a percent chance for one event of
// a unit swinging every attackTime.
func PPMChance(attackTime time.Duration, ppm, divisor float64) float64 {
	if ppm <= 0 || divisor <= 0 {
		return 0
	}
	return float64(attackTime.Milliseconds()) * ppm / divisor
}

// ProcSkillsAndAuras offers ev to the auras of the actor and of the action
// target.
func (rt *Runtime) ProcSkillsAndAuras(ev ProcEventInfo) {
	if ev.Actor != nil && ev.TypeMask != 0 {
		own := ev
		own.ProcTarget = ev.ActionTarget
		rt.procAurasOf(ev.Actor, own)
	}
	if ev.ActionTarget != nil && ev.ActionTargetTypeMask != 0 && ev.ActionTarget != ev.Actor {
		target := ev
		target.TypeMask = ev.ActionTargetTypeMask
		target.ProcTarget = ev.Actor
		rt.procAurasOf(ev.ActionTarget, target)
	}
}

func (rt *Runtime) procAurasOf(owner *world.Unit, ev ProcEventInfo) {
	if rt.procDepth >= rt.engine.cfg.MaxProcDepth {
		slog.Debug("proc depth limit reached", "owner", owner.ID(), "depth", rt.procDepth)
		return
	}
	h := rt.holders[owner.ID()]
	if h == nil {
		return
	}
	now := rt.m.Now()
	for _, a := range h.Auras() {
		if a.IsRemoved() {
			continue
		}
		entry := rt.engine.catalog.Proc(a.Spell.ID)
		if entry == nil {
			continue
		}
		if ev.Spell != nil && ev.Spell.ID == a.Spell.ID {
			continue
		}
		if a.IsProcOnCooldown(now) {
			continue
		}
		if !CanSpellTriggerProcOnEvent(entry, &ev) {
			continue
		}
		if !rt.scriptsAllowProc(a, &ev) {
			continue
		}
		if !rt.rollChance(rt.procChance(entry, a, &ev)) {
			continue
		}
		rt.fireProc(h, a, entry, &ev)
	}
}

func (rt *Runtime) scriptsAllowProc(a *aura.Aura, ev *ProcEventInfo) bool {
	for _, sc := range rt.engine.scripts.For(a.Spell.ID) {
		if !sc.CheckProc(a, ev) {
			return false
		}
	}
	return true
}

// procChance returns the percent chance of entry for ev. PPM entries use the
// aura caster's swing timer for the attack type of the damage.
func (rt *Runtime) procChance(entry *data.ProcEntry, a *aura.Aura, ev *ProcEventInfo) float64 {
	chance := float64(entry.Chance)
	if entry.ProcsPerMinute > 0 && ev.Damage != nil {
		caster := rt.unit(a.Caster)
		if caster == nil {
			caster = rt.unit(a.Owner)
		}
		if caster != nil {
			at := rt.math.AttackTime(caster, ev.Damage.AttackType)
			chance = PPMChance(at, float64(entry.ProcsPerMinute), rt.engine.cfg.PPMDivisor)
		}
	}
	if entry.HasAttribute(data.ProcAttrReduceProc60) && ev.Actor != nil && ev.Actor.Level > 60 {
		chance = max(0, (1-float64(ev.Actor.Level-60)/30)*chance)
	}
	return chance
}

func (rt *Runtime) rollChance(chance float64) bool {
	switch {
	case chance <= 0:
		return false
	case chance >= 100:
		return true
	}
	return rt.m.Rand().Float64()*100 < chance
}

// fireProc runs the proc handlers of every enabled effect and then consumes
// a charge or a stack.
func (rt *Runtime) fireProc(h *aura.Holder, a *aura.Aura, entry *data.ProcEntry, ev *ProcEventInfo) {
	rt.engine.metrics.ProcTriggered(a.Spell.ID)
	if entry.Cooldown > 0 {
		a.StartProcCooldown(rt.m.Now(), entry.Cooldown)
	}
	slog.Debug("aura proc", "owner", a.Owner, "spell", a.Spell.ID, "event", ev.TypeMask)

	rt.procDepth++
	for i, e := range a.Effects {
		if e == nil || entry.IsEffectDisabled(i) || a.IsRemoved() {
			continue
		}
		if hd := rt.registry.Aura(e.Type); hd.Proc != nil {
			hd.Proc(rt, e, ev)
		}
	}
	rt.procDepth--

	if a.IsRemoved() {
		return
	}
	if entry.HasAttribute(data.ProcAttrUseStacksForCharges) {
		if a.Stacks <= 1 {
			h.Remove(a, aura.RemoveCharges)
			return
		}
		a.Stacks--
		return
	}
	h.DropCharge(a)
}

// procFlagsFor returns the done and taken flags of a spell hit.
func procFlagsFor(info *data.SpellInfo) (done, taken data.ProcFlags) {
	switch info.DmgClass {
	case data.DmgClassMelee:
		return data.ProcDoneSpellMeleeDmgClass, data.ProcTakenSpellMeleeDmgClass
	case data.DmgClassRanged:
		return data.ProcDoneSpellRangedDmgClass, data.ProcTakenSpellRangedDmgClass
	case data.DmgClassNone:
		if info.IsPositive() {
			return data.ProcDoneSpellNoneDmgClassPos, data.ProcTakenSpellNoneDmgClassPos
		}
		return data.ProcDoneSpellNoneDmgClassNeg, data.ProcTakenSpellNoneDmgClassNeg
	}
	if info.IsPositive() {
		return data.ProcDoneSpellMagicDmgClassPos, data.ProcTakenSpellMagicDmgClassPos
	}
	return data.ProcDoneSpellMagicDmgClassNeg, data.ProcTakenSpellMagicDmgClassNeg
}

func spellTypeOf(dmg *combat.DamageInfo, heal *combat.HealInfo) data.ProcSpellTypeMask {
	var m data.ProcSpellTypeMask
	if dmg != nil && dmg.Damage+dmg.Absorbed > 0 {
		m |= data.ProcSpellTypeDamage
	}
	if heal != nil && heal.Heal > 0 {
		m |= data.ProcSpellTypeHeal
	}
	if m == 0 {
		m = data.ProcSpellTypeNoDmgHeal
	}
	return m
}

// procPair raises one event for actor and target.
func (rt *Runtime) procPair(actor, target *world.Unit, done, taken data.ProcFlags, typ data.ProcSpellTypeMask,
	phase data.ProcSpellPhaseMask, hit data.ProcHitMask, cast *Spell, dmg *combat.DamageInfo, heal *combat.HealInfo) {
	ev := ProcEventInfo{
		Actor:                actor,
		ActionTarget:         target,
		TypeMask:             done,
		ActionTargetTypeMask: taken,
		SpellTypeMask:        typ,
		SpellPhaseMask:       phase,
		HitMask:              hit,
		Damage:               dmg,
		Heal:                 heal,
		Cast:                 cast,
	}
	switch {
	case cast != nil:
		ev.Spell = cast.Info
		ev.SchoolMask = cast.Info.SchoolMask
		ev.Triggered = cast.triggered
		ev.FromItem = cast.opts.CastItem != 0
	case dmg != nil:
		ev.Spell = dmg.Spell
		ev.SchoolMask = dmg.School
	case heal != nil:
		ev.Spell = heal.Spell
		if heal.Spell != nil {
			ev.SchoolMask = heal.Spell.SchoolMask
		}
	}
	rt.ProcSkillsAndAuras(ev)
}

func (rt *Runtime) procSpellHit(s *Spell, target *world.Unit, dmg *combat.DamageInfo, heal *combat.HealInfo, hit data.ProcHitMask) {
	done, taken := procFlagsFor(s.Info)
	if dmg != nil && dmg.Damage > 0 {
		taken |= data.ProcTakenDamage
	}
	rt.procPair(s.caster, target, done, taken, spellTypeOf(dmg, heal), data.ProcSpellPhaseHit, hit, s, dmg, heal)
}

func (rt *Runtime) procCastPhase(s *Spell) {
	done, _ := procFlagsFor(s.Info)
	rt.procPair(s.caster, nil, done, 0, data.ProcSpellTypeMaskAll, data.ProcSpellPhaseCast, data.ProcHitNormal, s, nil, nil)
}

func (rt *Runtime) procFinishPhase(s *Spell) {
	if !s.caster.IsAlive() {
		return
	}
	done, _ := procFlagsFor(s.Info)
	rt.procPair(s.caster, nil, done, 0, data.ProcSpellTypeMaskAll, data.ProcSpellPhaseFinish, data.ProcHitNormal, s, nil, nil)
}

// procPeriodic raises the event of one periodic tick.
func (rt *Runtime) procPeriodic(caster, victim *world.Unit, dmg *combat.DamageInfo, heal *combat.HealInfo) {
	taken := data.ProcTakenPeriodic
	if dmg != nil && dmg.Damage > 0 {
		taken |= data.ProcTakenDamage
	}
	hit := data.ProcHitNormal
	if dmg != nil && dmg.Absorbed > 0 {
		hit |= data.ProcHitAbsorb
	}
	if caster == nil {
		rt.procPair(victim, nil, taken, 0, spellTypeOf(dmg, heal), data.ProcSpellPhaseNone, hit, nil, dmg, heal)
		return
	}
	rt.procPair(caster, victim, data.ProcDonePeriodic, taken, spellTypeOf(dmg, heal), data.ProcSpellPhaseNone, hit, nil, dmg, heal)
}
