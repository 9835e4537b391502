package combat

import (
	"math/rand/v2"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

const (
	// baseSpellHitChance is the chance to land a spell on a same-level target.
	baseSpellHitChance = 96.0
	// minSpellHitChance caps how low level difference can push a spell.
	minSpellHitChance = 1.0
	// baseCritChance applies to every unit before modifiers.
	baseCritChance = 5.0

	spellCritMultiplier = 1.5
	meleeCritMultiplier = 2.0

	// armorConstant is the denominator offset of the armor reduction formula.
	armorConstant     = 400.0
	armorPerLevel     = 85.0
	maxArmorReduction = 0.75
)

// Calculator is the reference Math implementation driven by unit stats.
type Calculator struct {
	rng *rand.Rand
}

// NewCalculator creates a calculator drawing rolls from rng, normally the
// owning map's random source.
func NewCalculator(rng *rand.Rand) *Calculator {
	return &Calculator{rng: rng}
}

func (c *Calculator) roll() float64 { return c.rng.Float64() * 100 }

// SpellHitResult rolls miss, immunity and evade for a hostile spell.
// Positive spells and spells that ignore hit results always land.
func (c *Calculator) SpellHitResult(attacker, victim *world.Unit, spell *data.SpellInfo) SpellMissInfo {
	if attacker == victim || spell.IsPositive() {
		return MissNone
	}
	if !spell.HasAttribute(data.AttrUnaffectedByImmunity) {
		if victim.IsImmuneToSchool(spell.SchoolMask) || victim.IsImmuneToMechanic(spell.Mechanic) {
			return MissImmune
		}
	}
	if spell.HasAttribute(data.AttrIgnoreHitResult) {
		return MissNone
	}

	chance := baseSpellHitChance - levelPenalty(victim.Level-attacker.Level, victim.IsPlayer())
	chance += attacker.ApplyStat(world.StatHitChance, 0)
	chance = max(chance, minSpellHitChance)
	if chance > 100 {
		chance = 100
	}
	if c.roll() >= chance {
		if spell.DmgClass == data.DmgClassMagic {
			return MissResist
		}
		return MissMiss
	}
	if spell.DmgClass == data.DmgClassMelee || spell.DmgClass == data.DmgClassRanged {
		if c.roll() < victim.ApplyStat(world.StatDodgeChance, 0) {
			return MissDodge
		}
	}
	return MissNone
}

// levelPenalty follows the classic table: 1% per level up to two levels,
// then 11% per level against creatures and 7% against players.
func levelPenalty(diff int32, vsPlayer bool) float64 {
	if diff <= 0 {
		return 0
	}
	if diff <= 2 {
		return float64(diff)
	}
	step := 11.0
	if vsPlayer {
		step = 7.0
	}
	return 2 + float64(diff-2)*step
}

func (c *Calculator) SpellDamageBonusDone(attacker, _ *world.Unit, spell *data.SpellInfo, effIndex int, amount int32, periodic bool) int32 {
	if attacker == nil || amount <= 0 {
		return amount
	}
	v := float64(amount)
	if eff := spell.Effect(effIndex); eff != nil && eff.BonusCoefficient > 0 {
		flat, _ := attacker.StatBonus(world.StatSpellPower)
		coef := float64(eff.BonusCoefficient)
		if periodic && eff.Amplitude > 0 && spell.Duration > 0 {
			coef *= float64(eff.Amplitude) / float64(spell.Duration)
		}
		v += flat * coef
	}
	if eff := spell.Effect(effIndex); eff != nil && eff.DamageMultiplier > 0 {
		v *= float64(eff.DamageMultiplier)
	}
	v = attacker.ApplyStat(world.StatDamageDone, v)
	return int32(v)
}

func (c *Calculator) SpellDamageBonusTaken(_, victim *world.Unit, spell *data.SpellInfo, amount int32) int32 {
	if amount <= 0 {
		return amount
	}
	v := victim.ApplyStat(world.StatDamageTaken, float64(amount))
	if spell != nil && spell.SchoolMask&data.SchoolMaskNormal != 0 && !spell.HasCustomAttr(data.CustomIgnoreArmor) {
		v *= 1 - armorReduction(victim)
	}
	return int32(v)
}

// armorReduction converts armor into a damage fraction for a victim.
func armorReduction(victim *world.Unit) float64 {
	armor := victim.ApplyStat(world.StatArmor, 0)
	if armor <= 0 {
		return 0
	}
	r := armor / (armor + armorConstant + armorPerLevel*float64(victim.Level))
	return min(r, maxArmorReduction)
}

func (c *Calculator) HealBonusDone(healer, _ *world.Unit, spell *data.SpellInfo, effIndex int, amount int32, periodic bool) int32 {
	if healer == nil || amount <= 0 {
		return amount
	}
	v := float64(amount)
	if eff := spell.Effect(effIndex); eff != nil && eff.BonusCoefficient > 0 {
		flat, _ := healer.StatBonus(world.StatSpellPower)
		coef := float64(eff.BonusCoefficient)
		if periodic && eff.Amplitude > 0 && spell.Duration > 0 {
			coef *= float64(eff.Amplitude) / float64(spell.Duration)
		}
		v += flat * coef
	}
	return int32(healer.ApplyStat(world.StatHealingDone, v))
}

func (c *Calculator) HealBonusTaken(_, target *world.Unit, _ *data.SpellInfo, amount int32) int32 {
	if amount <= 0 {
		return amount
	}
	return int32(target.ApplyStat(world.StatHealingTaken, float64(amount)))
}

func (c *Calculator) RollCrit(attacker, _ *world.Unit, spell *data.SpellInfo) bool {
	if attacker == nil || spell.HasAttribute(data.AttrCantCrit) {
		return false
	}
	chance := attacker.ApplyStat(world.StatCritChance, baseCritChance)
	return c.roll() < chance
}

func (c *Calculator) CritBonus(spell *data.SpellInfo, amount int32) int32 {
	mult := spellCritMultiplier
	if spell.DmgClass == data.DmgClassMelee || spell.DmgClass == data.DmgClassRanged {
		mult = meleeCritMultiplier
	}
	return int32(float64(amount) * mult)
}

// CalcResist resists a magic hit partially in quarter steps, scaled by the
// victim's resistance against the attacker's level.
func (c *Calculator) CalcResist(attacker, victim *world.Unit, school data.SchoolMask, amount int32) int32 {
	if school&data.SchoolMaskNormal != 0 || amount <= 0 {
		return 0
	}
	res := victim.ApplyStat(world.StatResistance, 0)
	if res <= 0 {
		return 0
	}
	level := float64(max(attacker.Level, 20))
	avg := min(res/(level*5)*0.75, 0.75)
	// quarter bucket nearest to the average
	r := c.rng.Float64()
	var frac float64
	switch {
	case r < avg/3:
		frac = 0.75
	case r < avg*2/3:
		frac = 0.5
	case r < avg:
		frac = 0.25
	}
	return int32(float64(amount) * frac)
}

// WeaponDamage rolls a level-scaled swing. Normalized swings use a fixed
// 2.4s speed instead of the unit's attack timer.
func (c *Calculator) WeaponDamage(attacker *world.Unit, attType world.AttackType, normalized bool) int32 {
	base := float64(attacker.Level) * 2.5
	spread := base * 0.3
	dmg := base - spread + c.rng.Float64()*2*spread

	ap := attacker.ApplyStat(world.StatAttackPower, 0)
	speed := attacker.AttackTime[attType].Seconds()
	if normalized {
		speed = 2.4
	}
	dmg += ap / 14 * speed
	if attType == world.OffAttack {
		dmg /= 2
	}
	return int32(max(dmg, 1))
}

func (c *Calculator) AttackTime(u *world.Unit, attType world.AttackType) time.Duration {
	base := u.AttackTime[attType]
	stat := world.StatMeleeHaste
	if attType == world.RangedAttack {
		stat = world.StatRangedHaste
	}
	_, pct := u.StatBonus(stat)
	if pct <= -100 {
		return base
	}
	return time.Duration(float64(base) / (1 + pct/100))
}

func (c *Calculator) IsHonorOrXPTarget(attacker, victim *world.Unit) bool {
	return IsHonorOrXPTarget(attacker, victim)
}
