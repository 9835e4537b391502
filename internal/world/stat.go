package world

// Stat names one modifiable unit attribute.
type Stat uint8

const (
	StatMaxHealth Stat = iota
	StatMaxPower
	StatArmor
	StatResistance
	StatAttackPower
	StatSpellPower
	StatStrength
	StatAgility
	StatStamina
	StatIntellect
	StatSpirit
	StatCritChance
	StatHitChance
	StatDodgeChance
	StatDamageDone
	StatDamageTaken
	StatHealingDone
	StatHealingTaken
	StatMeleeHaste
	StatRangedHaste
	StatSpellHaste
	StatRunSpeed
	StatThreat
	statCount
)

// StatModType defines how a stat modifier is applied.
type StatModType int8

const (
	StatModAdd StatModType = iota // flat bonus (e.g. +100 attack power)
	StatModPct                    // percent bonus (e.g. +10% damage done)
)

// StatModifier represents a single stat modification from an aura.
// Multiple modifiers can stack on the same stat.
type StatModifier struct {
	Stat  Stat
	Type  StatModType
	Value float64
}

// modSource tags modifiers with the aura effect that owns them so they can
// be withdrawn together.
type modSource struct {
	source uint64
	mod    StatModifier
}

// AddModifiers registers modifiers owned by source.
func (u *Unit) AddModifiers(source uint64, mods ...StatModifier) {
	for _, m := range mods {
		u.mods = append(u.mods, modSource{source: source, mod: m})
	}
}

// RemoveModifiers drops every modifier owned by source.
func (u *Unit) RemoveModifiers(source uint64) {
	n := 0
	for _, m := range u.mods {
		if m.source != source {
			u.mods[n] = m
			n++
		}
	}
	u.mods = u.mods[:n]
}

// StatBonus returns the flat and percent totals for a stat.
// Percent bonuses add up: two +10% give +20%.
func (u *Unit) StatBonus(stat Stat) (flat, pct float64) {
	for _, m := range u.mods {
		if m.mod.Stat != stat {
			continue
		}
		switch m.mod.Type {
		case StatModAdd:
			flat += m.mod.Value
		case StatModPct:
			pct += m.mod.Value
		}
	}
	return flat, pct
}

// ApplyStat returns base adjusted by the unit's modifiers for stat.
func (u *Unit) ApplyStat(stat Stat, base float64) float64 {
	flat, pct := u.StatBonus(stat)
	v := (base + flat) * (1 + pct/100)
	if v < 0 {
		return 0
	}
	return v
}
