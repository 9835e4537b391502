package spell

import (
	"log/slog"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// combatTimeout is how long a hostile action keeps both sides in combat.
const combatTimeout = 5 * time.Second

// hitUnit runs the hit phase of a unit record: miss and immunity handling,
// HitTarget effects, the aura built by them, final damage and healing,
// scripts, threat and procs.
func (s *Spell) hitUnit(rec *TargetRecord) {
	rt := s.rt
	s.bindRecord(rec)
	u := s.unitTarget
	if u == nil {
		return
	}
	caster := s.caster
	info := s.Info

	switch {
	case rec.Reflected:
		rt.log.SpellMiss(caster.ID(), u.ID(), info.ID, combat.MissReflect)
		rt.procSpellHit(s, u, nil, nil, data.ProcHitReflect)
		if !caster.IsAlive() {
			return
		}
		u = caster
		s.unitTarget = caster
	case rec.Miss != combat.MissNone:
		rt.log.SpellMiss(caster.ID(), u.ID(), info.ID, rec.Miss)
		rt.procSpellHit(s, u, nil, nil, missHitMask(rec.Miss))
		return
	}

	if rec.Alive && !u.IsAlive() && !info.HasAttribute(data.AttrRequiresDeadTarget) {
		return
	}
	if s.isImmune(u) {
		rec.Miss = combat.MissImmune
		rt.log.SpellMiss(caster.ID(), u.ID(), info.ID, combat.MissImmune)
		rt.procSpellHit(s, u, nil, nil, data.ProcHitImmune)
		return
	}

	duration := info.Duration
	drTracked := false
	if info.AuraEffectMask()&rec.EffectMask != 0 {
		d, tracked, immune := rt.diminish(info, u)
		if immune {
			rec.Miss = combat.MissImmune
			rt.log.SpellMiss(caster.ID(), u.ID(), info.ID, combat.MissImmune)
			rt.procSpellHit(s, u, nil, nil, data.ProcHitImmune)
			return
		}
		duration, drTracked = d, tracked
	}

	s.damage, s.healing, s.auraMask = 0, 0, 0
	s.auraAmounts = [data.MaxSpellEffects]int32{}
	for i := range info.Effects {
		if rec.hasEffect(i) {
			s.handleEffect(i, HandleHitTarget)
		}
	}

	if s.auraMask != 0 && u.IsAlive() {
		s.applySpellAura(u, duration, drTracked)
	}
	dmg, heal, hitMask := s.finalizeAmounts(u, rec)

	for _, sc := range s.scripts {
		sc.AfterHit(s)
	}

	if u != caster && !info.IsPositive() && !rt.m.IsFriendly(caster, u) {
		now := rt.m.Now()
		caster.SetInCombat(now, combatTimeout)
		u.SetInCombat(now, combatTimeout)
		if !info.HasAttribute(data.AttrNoInitialAggro) && !info.HasCustomAttr(data.CustomNoInitialThreat) {
			u.AddThreat(caster.ID(), 0)
		}
	}

	rt.procSpellHit(s, u, dmg, heal, hitMask)
}

func (s *Spell) isImmune(u *world.Unit) bool {
	info := s.Info
	if info.IsPositive() || info.HasAttribute(data.AttrUnaffectedByImmunity) || u == s.caster {
		return false
	}
	return u.IsImmuneToSchool(info.SchoolMask) || u.IsImmuneToMechanic(info.Mechanic)
}

// applySpellAura builds the aura from the effects that registered
// themselves during HitTarget and hands it to the target's holder. tracked
// tags the aura with its diminishing group so the group's window waits for
// its removal.
func (s *Spell) applySpellAura(u *world.Unit, duration time.Duration, tracked bool) {
	rt := s.rt
	if duration == 0 && s.Info.Duration != 0 {
		return
	}
	a := aura.New(s.Info, s.caster.ID(), u.ID(), s.auraMask, s.auraAmounts)
	a.Duration = duration
	a.CastItem = s.opts.CastItem
	if tracked {
		a.DRGroup = s.Info.Diminishing.Group
	}
	if e := rt.engine.catalog.Proc(s.Info.ID); e != nil && e.Charges > 0 {
		a.Charges = e.Charges
	}
	rt.ApplyAura(a)
}

// finalizeAmounts turns the damage and healing accumulated by handlers into
// combat events. It returns the hit mask for proc matching.
func (s *Spell) finalizeAmounts(u *world.Unit, rec *TargetRecord) (*combat.DamageInfo, *combat.HealInfo, data.ProcHitMask) {
	rt := s.rt
	mathc := rt.math
	hitMask := data.ProcHitNormal
	var (
		dmg  *combat.DamageInfo
		heal *combat.HealInfo
	)

	if s.damage > 0 {
		amount := s.damage
		crit := mathc.RollCrit(s.caster, u, s.Info)
		if crit {
			amount = mathc.CritBonus(s.Info, amount)
			hitMask = data.ProcHitCritical
		}
		dmg = &combat.DamageInfo{
			Attacker:    s.caster,
			Victim:      u,
			Spell:       s.Info,
			EffectIndex: s.effIndex,
			School:      s.Info.SchoolMask,
			AttackType:  attackTypeOf(s.Info),
			Damage:      amount,
			Crit:        crit,
		}
		dmg.Resisted = mathc.CalcResist(s.caster, u, s.Info.SchoolMask, amount)
		dmg.Damage -= dmg.Resisted
		rt.DealDamage(dmg)
		if dmg.Absorbed > 0 {
			hitMask |= data.ProcHitAbsorb
		}
		if dmg.Damage == 0 && dmg.Resisted > 0 {
			hitMask |= data.ProcHitFullResist
		}
		rec.Damage += dmg.Damage
		rec.Absorbed += dmg.Absorbed
		rec.Crit = rec.Crit || crit
	}

	if s.healing > 0 {
		amount := s.healing
		crit := mathc.RollCrit(s.caster, u, s.Info)
		if crit {
			amount = mathc.CritBonus(s.Info, amount)
			hitMask = hitMask&^data.ProcHitNormal | data.ProcHitCritical
		}
		heal = &combat.HealInfo{
			Healer: s.caster,
			Target: u,
			Spell:  s.Info,
			Heal:   amount,
			Crit:   crit,
		}
		rt.DealHeal(heal)
		rec.Healing += heal.Effective
		rec.Crit = rec.Crit || crit
	}
	return dmg, heal, hitMask
}

func attackTypeOf(info *data.SpellInfo) world.AttackType {
	if info.DmgClass == data.DmgClassRanged {
		return world.RangedAttack
	}
	return world.BaseAttack
}

func missHitMask(m combat.SpellMissInfo) data.ProcHitMask {
	switch m {
	case combat.MissMiss:
		return data.ProcHitMiss
	case combat.MissResist:
		return data.ProcHitFullResist
	case combat.MissDodge:
		return data.ProcHitDodge
	case combat.MissParry:
		return data.ProcHitParry
	case combat.MissBlock:
		return data.ProcHitBlock
	case combat.MissEvade:
		return data.ProcHitEvade
	case combat.MissImmune:
		return data.ProcHitImmune
	case combat.MissDeflect:
		return data.ProcHitDeflect
	case combat.MissAbsorb:
		return data.ProcHitAbsorb
	case combat.MissReflect:
		return data.ProcHitReflect
	}
	slog.Debug("unmapped miss result", "miss", m)
	return data.ProcHitNone
}
