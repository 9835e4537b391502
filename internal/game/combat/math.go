package combat

import (
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

// SpellMissInfo is the hit roll outcome of a spell against one target.
type SpellMissInfo uint8

const (
	MissNone SpellMissInfo = iota
	MissMiss
	MissResist
	MissDodge
	MissParry
	MissBlock
	MissEvade
	MissImmune
	MissDeflect
	MissAbsorb
	MissReflect
)

var missNames = [...]string{"none", "miss", "resist", "dodge", "parry", "block", "evade", "immune", "deflect", "absorb", "reflect"}

func (m SpellMissInfo) String() string {
	if int(m) < len(missNames) {
		return missNames[m]
	}
	return "unknown"
}

// DamageInfo carries one damage event through bonus, crit and absorb
// resolution. Damage is the final amount dealt.
type DamageInfo struct {
	Attacker    *world.Unit
	Victim      *world.Unit
	Spell       *data.SpellInfo
	EffectIndex int
	School      data.SchoolMask
	AttackType  world.AttackType
	Periodic    bool

	Damage   int32
	Absorbed int32
	Resisted int32
	Blocked  int32
	Crit     bool
}

// HealInfo carries one heal event. Effective excludes overheal.
type HealInfo struct {
	Healer    *world.Unit
	Target    *world.Unit
	Spell     *data.SpellInfo
	Heal      int32
	Effective int32
	Absorbed  int32
	Crit      bool
	Periodic  bool
}

// Math is the combat formula collaborator. Effect handlers hand it raw
// magnitudes and get final amounts back.
type Math interface {
	// SpellHitResult rolls whether spell lands on victim.
	SpellHitResult(attacker, victim *world.Unit, spell *data.SpellInfo) SpellMissInfo
	// SpellDamageBonusDone applies attacker-side modifiers.
	SpellDamageBonusDone(attacker, victim *world.Unit, spell *data.SpellInfo, effIndex int, amount int32, periodic bool) int32
	// SpellDamageBonusTaken applies victim-side modifiers.
	SpellDamageBonusTaken(attacker, victim *world.Unit, spell *data.SpellInfo, amount int32) int32
	// HealBonusDone applies healer-side modifiers.
	HealBonusDone(healer, target *world.Unit, spell *data.SpellInfo, effIndex int, amount int32, periodic bool) int32
	// HealBonusTaken applies target-side modifiers.
	HealBonusTaken(healer, target *world.Unit, spell *data.SpellInfo, amount int32) int32
	// RollCrit decides whether a direct hit or heal is critical.
	RollCrit(attacker, victim *world.Unit, spell *data.SpellInfo) bool
	// CritBonus returns the amount of a critical hit.
	CritBonus(spell *data.SpellInfo, amount int32) int32
	// CalcResist returns the resisted part of a magic hit.
	CalcResist(attacker, victim *world.Unit, school data.SchoolMask, amount int32) int32
	// WeaponDamage rolls raw weapon damage for an attack type.
	WeaponDamage(attacker *world.Unit, attType world.AttackType, normalized bool) int32
	// AttackTime returns the haste-adjusted swing timer.
	AttackTime(u *world.Unit, attType world.AttackType) time.Duration
	// IsHonorOrXPTarget reports whether killing victim rewards attacker.
	IsHonorOrXPTarget(attacker, victim *world.Unit) bool
}
