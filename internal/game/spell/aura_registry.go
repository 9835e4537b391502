package spell

import (
	"log/slog"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

type auraDecl struct {
	kind data.AuraType
	h    AuraHandler
}

var primaryStats = [...]world.Stat{
	world.StatStrength, world.StatAgility, world.StatStamina, world.StatIntellect, world.StatSpirit,
}

// auraDecls lists every aura kind with a real handler.
var auraDecls = []auraDecl{
	{data.AuraPeriodicDamage, AuraHandler{Periodic: periodicDamage}},
	{data.AuraPeriodicDamagePercent, AuraHandler{Periodic: periodicDamage}},
	{data.AuraPeriodicHeal, AuraHandler{Periodic: periodicHeal}},
	{data.AuraObsModHealth, AuraHandler{Periodic: periodicHeal}},
	{data.AuraPeriodicLeech, AuraHandler{Periodic: periodicLeech}},
	{data.AuraPeriodicManaLeech, AuraHandler{Periodic: periodicManaLeech}},
	{data.AuraPeriodicEnergize, AuraHandler{Periodic: periodicEnergize}},
	{data.AuraObsModPower, AuraHandler{Periodic: periodicEnergize}},
	{data.AuraPeriodicTriggerSpell, AuraHandler{Periodic: periodicTriggerSpell}},
	{data.AuraPeriodicTriggerSpellWithValue, AuraHandler{Periodic: periodicTriggerSpell}},
	{data.AuraPeriodicDummy, AuraHandler{Periodic: periodicDummy}},

	{data.AuraModStun, crowdControlAura(world.StateStunned)},
	{data.AuraModFear, crowdControlAura(world.StateFleeing)},
	{data.AuraModConfuse, crowdControlAura(world.StateConfused)},
	{data.AuraModRoot, stateAura(world.StateRooted)},
	{data.AuraModSilence, AuraHandler{Apply: applySilence}},
	{data.AuraModPacify, stateAura(world.StatePacified)},
	{data.AuraModPacifySilence, AuraHandler{Apply: applySilence}},
	{data.AuraModDisarm, stateAura(world.StateDisarmed)},
	{data.AuraModStealth, stateAura(world.StateStealthed)},
	{data.AuraModInvisibility, stateAura(world.StateInvisible)},

	{data.AuraModStat, AuraHandler{Apply: applyModStat}},
	{data.AuraModPercentStat, AuraHandler{Apply: applyModStat}},
	{data.AuraModResistance, statAura(world.StatResistance, world.StatModAdd)},
	{data.AuraModAttackPower, statAura(world.StatAttackPower, world.StatModAdd)},
	{data.AuraModDamageDone, statAura(world.StatDamageDone, world.StatModAdd)},
	{data.AuraModDamagePercentDone, statAura(world.StatDamageDone, world.StatModPct)},
	{data.AuraModDamageTaken, statAura(world.StatDamageTaken, world.StatModAdd)},
	{data.AuraModDamagePercentTaken, statAura(world.StatDamageTaken, world.StatModPct)},
	{data.AuraModHealingDone, statAura(world.StatHealingDone, world.StatModAdd)},
	{data.AuraModHealingDonePercent, statAura(world.StatHealingDone, world.StatModPct)},
	{data.AuraModHealing, statAura(world.StatHealingTaken, world.StatModAdd)},
	{data.AuraModHealingPct, statAura(world.StatHealingTaken, world.StatModPct)},
	{data.AuraModIncreaseHealth, statAura(world.StatMaxHealth, world.StatModAdd)},
	{data.AuraModIncreaseSpeed, statAura(world.StatRunSpeed, world.StatModPct)},
	{data.AuraModDecreaseSpeed, statAura(world.StatRunSpeed, world.StatModPct)},
	{data.AuraModAttackspeed, statAura(world.StatMeleeHaste, world.StatModPct)},
	{data.AuraModCastingSpeedNotStack, statAura(world.StatSpellHaste, world.StatModPct)},
	{data.AuraModThreat, statAura(world.StatThreat, world.StatModPct)},
	{data.AuraModSpellCritChance, statAura(world.StatCritChance, world.StatModAdd)},
	{data.AuraModHitChance, statAura(world.StatHitChance, world.StatModAdd)},
	{data.AuraModDodgePercent, statAura(world.StatDodgeChance, world.StatModAdd)},

	{data.AuraSchoolImmunity, AuraHandler{Apply: applySchoolImmunity}},
	{data.AuraDamageImmunity, AuraHandler{Apply: applySchoolImmunity}},
	{data.AuraMechanicImmunity, AuraHandler{Apply: applyMechanicImmunity}},

	{data.AuraSchoolAbsorb, AuraHandler{Apply: applyPassive}},
	{data.AuraManaShield, AuraHandler{Apply: applyPassive}},
	{data.AuraDamageShield, AuraHandler{Apply: applyPassive}},
	{data.AuraReflectSpells, AuraHandler{Apply: applyPassive}},
	{data.AuraReflectSpellsSchool, AuraHandler{Apply: applyPassive}},
	{data.AuraDummy, AuraHandler{Apply: applyPassive}},

	{data.AuraModTaunt, AuraHandler{Apply: applyTaunt}},

	{data.AuraProcTriggerSpell, AuraHandler{Proc: procTriggerSpell}},
	{data.AuraProcTriggerSpellWithValue, AuraHandler{Proc: procTriggerSpell}},
	{data.AuraProcTriggerDamage, AuraHandler{Proc: procTriggerDamage}},
}

// modSource identifies the stat modifiers owned by one aura effect.
func modSource(e *aura.Effect) uint64 {
	return e.Aura.ID<<2 | uint64(e.Index)
}

func stateAura(st world.UnitState) AuraHandler {
	return AuraHandler{Apply: func(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
		if u := rt.unit(e.Aura.Owner); u != nil {
			u.AddState(st, apply)
		}
	}}
}

// crowdControlAura sets a state that also breaks the owner's cast.
func crowdControlAura(st world.UnitState) AuraHandler {
	return AuraHandler{Apply: func(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
		u := rt.unit(e.Aura.Owner)
		if u == nil {
			return
		}
		u.AddState(st, apply)
		if apply {
			rt.InterruptCast(u.ID())
		}
	}}
}

func applySilence(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
	u := rt.unit(e.Aura.Owner)
	if u == nil {
		return
	}
	u.AddState(world.StateSilenced, apply)
	if e.Type == data.AuraModPacifySilence {
		u.AddState(world.StatePacified, apply)
	}
	if !apply {
		return
	}
	if cur := rt.preparing[u.ID()]; cur != nil && cur.Info.DmgClass == data.DmgClassMagic {
		rt.InterruptCast(u.ID())
	}
}

func statAura(stat world.Stat, typ world.StatModType) AuraHandler {
	return AuraHandler{Apply: func(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
		u := rt.unit(e.Aura.Owner)
		if u == nil {
			return
		}
		if !apply {
			u.RemoveModifiers(modSource(e))
			return
		}
		u.AddModifiers(modSource(e), world.StatModifier{Stat: stat, Type: typ, Value: float64(e.Amount())})
	}}
}

// applyModStat modifies primary stat Misc, or all of them when Misc is -1.
func applyModStat(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
	u := rt.unit(e.Aura.Owner)
	if u == nil {
		return
	}
	if !apply {
		u.RemoveModifiers(modSource(e))
		return
	}
	typ := world.StatModAdd
	if e.Type == data.AuraModPercentStat {
		typ = world.StatModPct
	}
	var mods []world.StatModifier
	for i, st := range primaryStats {
		if e.Misc == -1 || int(e.Misc) == i {
			mods = append(mods, world.StatModifier{Stat: st, Type: typ, Value: float64(e.Amount())})
		}
	}
	u.AddModifiers(modSource(e), mods...)
}

func applySchoolImmunity(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
	if u := rt.unit(e.Aura.Owner); u != nil {
		u.ApplySchoolImmunity(data.SchoolMask(e.Misc), apply)
	}
}

// applyMechanicImmunity grants the immunity and strips auras of that
// mechanic already on the owner.
func applyMechanicImmunity(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
	u := rt.unit(e.Aura.Owner)
	if u == nil {
		return
	}
	mech := data.Mechanic(e.Misc)
	u.ApplyMechanicImmunity(mech, apply)
	if !apply {
		return
	}
	if h := rt.holders[u.ID()]; h != nil {
		h.RemoveIf(func(a *aura.Aura) bool {
			return a != e.Aura && a.Spell.Mechanic == mech && !a.Spell.IsPositive()
		}, aura.RemoveCancel)
	}
}

// applyPassive covers kinds whose effect is read elsewhere: absorbs and
// shields by damage resolution, reflects by target selection.
func applyPassive(_ *Runtime, e *aura.Effect, apply bool, mode aura.RemoveMode) {
	slog.Debug("aura effect", "owner", e.Aura.Owner, "spell", e.Aura.Spell.ID, "type", e.Type,
		"amount", e.Amount(), "apply", apply, "mode", mode)
}

// applyTaunt lifts the caster to the top of the owner's threat.
func applyTaunt(rt *Runtime, e *aura.Effect, apply bool, _ aura.RemoveMode) {
	owner, caster := rt.unit(e.Aura.Owner), rt.unit(e.Aura.Caster)
	if !apply || owner == nil || caster == nil {
		return
	}
	var top float32
	for _, u := range rt.m.Units() {
		top = max(top, owner.Threat(u.ID()))
	}
	if cur := owner.Threat(caster.ID()); cur < top {
		owner.AddThreat(caster.ID(), top-cur)
	}
}

func periodicDamage(rt *Runtime, e *aura.Effect) {
	owner := rt.unit(e.Aura.Owner)
	if owner == nil || !owner.IsAlive() {
		return
	}
	caster := rt.unit(e.Aura.Caster)
	info := e.Aura.Spell
	amount := e.Amount()
	switch {
	case e.Type == data.AuraPeriodicDamagePercent:
		amount = owner.MaxHealth() * amount / 100
	case caster != nil:
		amount = rt.math.SpellDamageBonusDone(caster, owner, info, e.Index, amount, true)
		amount = rt.math.SpellDamageBonusTaken(caster, owner, info, amount)
	}
	dmg := &combat.DamageInfo{
		Attacker:    caster,
		Victim:      owner,
		Spell:       info,
		EffectIndex: e.Index,
		School:      info.SchoolMask,
		Periodic:    true,
		Damage:      amount,
	}
	rt.DealDamage(dmg)
	rt.procPeriodic(caster, owner, dmg, nil)
}

func periodicHeal(rt *Runtime, e *aura.Effect) {
	owner := rt.unit(e.Aura.Owner)
	if owner == nil || !owner.IsAlive() {
		return
	}
	caster := rt.unit(e.Aura.Caster)
	info := e.Aura.Spell
	amount := e.Amount()
	switch {
	case e.Type == data.AuraObsModHealth:
		amount = owner.MaxHealth() * amount / 100
	case caster != nil:
		amount = rt.math.HealBonusDone(caster, owner, info, e.Index, amount, true)
		amount = rt.math.HealBonusTaken(caster, owner, info, amount)
	}
	heal := &combat.HealInfo{Healer: caster, Target: owner, Spell: info, Heal: amount, Periodic: true}
	rt.DealHeal(heal)
	rt.procPeriodic(caster, owner, nil, heal)
}

func periodicLeech(rt *Runtime, e *aura.Effect) {
	owner, caster := rt.unit(e.Aura.Owner), rt.unit(e.Aura.Caster)
	if owner == nil || !owner.IsAlive() || caster == nil {
		return
	}
	info := e.Aura.Spell
	dmg := &combat.DamageInfo{
		Attacker:    caster,
		Victim:      owner,
		Spell:       info,
		EffectIndex: e.Index,
		School:      info.SchoolMask,
		Periodic:    true,
		Damage:      rt.math.SpellDamageBonusDone(caster, owner, info, e.Index, e.Amount(), true),
	}
	rt.DealDamage(dmg)
	if caster.IsAlive() && dmg.Damage > 0 {
		mult := float32(1)
		if ei := e.Info(); ei != nil && ei.DamageMultiplier != 0 {
			mult = ei.DamageMultiplier
		}
		rt.DealHeal(&combat.HealInfo{
			Healer:   caster,
			Target:   caster,
			Spell:    info,
			Heal:     int32(float32(dmg.Damage) * mult),
			Periodic: true,
		})
	}
	rt.procPeriodic(caster, owner, dmg, nil)
}

func periodicManaLeech(rt *Runtime, e *aura.Effect) {
	owner, caster := rt.unit(e.Aura.Owner), rt.unit(e.Aura.Caster)
	if owner == nil || !owner.IsAlive() {
		return
	}
	power := data.PowerType(e.Misc)
	drained := -owner.ModifyPower(power, -e.Amount())
	if caster != nil && caster.IsAlive() && drained > 0 {
		caster.ModifyPower(power, drained)
	}
}

func periodicEnergize(rt *Runtime, e *aura.Effect) {
	owner := rt.unit(e.Aura.Owner)
	if owner == nil || !owner.IsAlive() {
		return
	}
	power := data.PowerType(e.Misc)
	amount := e.Amount()
	if e.Type == data.AuraObsModPower {
		amount = owner.MaxPower(power) * amount / 100
	}
	owner.ModifyPower(power, amount)
}

// periodicTriggerSpell casts the trigger spell at the owner each tick. A
// hostile caster still on the map casts it, otherwise the owner does.
func periodicTriggerSpell(rt *Runtime, e *aura.Effect) {
	owner := rt.unit(e.Aura.Owner)
	if owner == nil || !owner.IsAlive() {
		return
	}
	src := owner
	if c := rt.unit(e.Aura.Caster); c != nil && c.IsAlive() && !rt.m.IsFriendly(c, owner) {
		src = c
	}
	opts := CastOptions{OriginalCaster: e.Aura.Caster}
	if e.Type == data.AuraPeriodicTriggerSpellWithValue {
		v := e.Amount()
		opts.ValueOverrides = [data.MaxSpellEffects]int32{v, v, v}
		opts.OverrideMask = 1<<data.MaxSpellEffects - 1
	}
	rt.triggerSpell(src, e.Trigger, UnitTarget(owner.ID()), nil, opts)
}

func periodicDummy(_ *Runtime, e *aura.Effect) {
	slog.Debug("periodic dummy tick", "owner", e.Aura.Owner, "spell", e.Aura.Spell.ID, "tick", e.TickCount)
}

// procTriggerSpell casts the trigger spell from the aura owner at the other
// party of the event, with the event as trigger context.
func procTriggerSpell(rt *Runtime, e *aura.Effect, ev *ProcEventInfo) {
	owner := rt.unit(e.Aura.Owner)
	if owner == nil {
		return
	}
	target := ev.ProcTarget
	if target == nil || !target.IsAlive() {
		target = owner
	}
	opts := CastOptions{OriginalCaster: e.Aura.Caster, ProcEvent: ev}
	if e.Type == data.AuraProcTriggerSpellWithValue {
		v := e.Amount()
		opts.ValueOverrides = [data.MaxSpellEffects]int32{v, v, v}
		opts.OverrideMask = 1<<data.MaxSpellEffects - 1
	}
	rt.triggerSpell(owner, e.Trigger, UnitTarget(target.ID()), ev.Cast, opts)
}

func procTriggerDamage(rt *Runtime, e *aura.Effect, ev *ProcEventInfo) {
	owner := rt.unit(e.Aura.Owner)
	target := ev.ProcTarget
	if owner == nil || target == nil || !target.IsAlive() {
		return
	}
	rt.DealDamage(&combat.DamageInfo{
		Attacker:    owner,
		Victim:      target,
		Spell:       e.Aura.Spell,
		EffectIndex: e.Index,
		School:      e.Aura.Spell.SchoolMask,
		Damage:      e.Amount(),
	})
}
