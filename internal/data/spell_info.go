package data

import (
	"math/rand/v2"
	"time"
)

// MaxSpellEffects is the number of effect slots a spell can carry.
const MaxSpellEffects = 3

type SpellID uint32

// Difficulty selects a variant of one spell id.
type Difficulty uint8

const (
	DifficultyNormal Difficulty = iota
	DifficultyHeroic
	DifficultyRaid25
	DifficultyRaid25Heroic
)

// SchoolMask is a bit set of damage schools.
type SchoolMask uint8

const (
	SchoolMaskNormal SchoolMask = 1 << iota
	SchoolMaskHoly
	SchoolMaskFire
	SchoolMaskNature
	SchoolMaskFrost
	SchoolMaskShadow
	SchoolMaskArcane

	SchoolMaskNone  SchoolMask = 0
	SchoolMaskMagic            = SchoolMaskHoly | SchoolMaskFire | SchoolMaskNature | SchoolMaskFrost | SchoolMaskShadow | SchoolMaskArcane
	SchoolMaskAll              = SchoolMaskNormal | SchoolMaskMagic
)

// SpellFamily groups class spells so modifiers and procs can address them.
type SpellFamily uint16

const (
	FamilyGeneric     SpellFamily = 0
	FamilyMage        SpellFamily = 3
	FamilyWarrior     SpellFamily = 4
	FamilyWarlock     SpellFamily = 5
	FamilyPriest      SpellFamily = 6
	FamilyDruid       SpellFamily = 7
	FamilyRogue       SpellFamily = 8
	FamilyHunter      SpellFamily = 9
	FamilyPaladin     SpellFamily = 10
	FamilyShaman      SpellFamily = 11
	FamilyPotion      SpellFamily = 13
	FamilyDeathKnight SpellFamily = 15
	FamilyPet         SpellFamily = 17
)

// Flag96 is the 96-bit family flag set.
type Flag96 [3]uint32

func (f Flag96) IsZero() bool { return f[0] == 0 && f[1] == 0 && f[2] == 0 }

// Intersects reports whether any bit is set in both.
func (f Flag96) Intersects(o Flag96) bool {
	return f[0]&o[0] != 0 || f[1]&o[1] != 0 || f[2]&o[2] != 0
}

// SpellAttr holds the authored attribute bits.
type SpellAttr uint64

const (
	AttrPassive SpellAttr = 1 << iota
	AttrChanneled
	AttrSpeedIsDelay
	AttrIgnoreLOS
	AttrCastableWhileDead
	AttrAuraIsDebuff
	AttrCantCrit
	AttrUnaffectedByImmunity
	AttrIgnoreHitResult
	AttrDeathPersistent
	AttrRequiresDeadTarget
	AttrOnlyTargetPlayers
	AttrStackForDifferentCasters
	AttrCantBeReflected
	AttrNoThreat
	AttrIgnoreCasterAuras
	AttrNotInCombat
	AttrIgnoreRange
	AttrDisabledWhileActive
	AttrOnNextSwing
	AttrNoInitialAggro
)

var spellAttrNames = map[string]SpellAttr{
	"passive":                     AttrPassive,
	"channeled":                   AttrChanneled,
	"speed_is_delay":              AttrSpeedIsDelay,
	"ignore_los":                  AttrIgnoreLOS,
	"castable_while_dead":         AttrCastableWhileDead,
	"aura_is_debuff":              AttrAuraIsDebuff,
	"cant_crit":                   AttrCantCrit,
	"unaffected_by_immunity":      AttrUnaffectedByImmunity,
	"ignore_hit_result":           AttrIgnoreHitResult,
	"death_persistent":            AttrDeathPersistent,
	"requires_dead_target":        AttrRequiresDeadTarget,
	"only_target_players":         AttrOnlyTargetPlayers,
	"stack_for_different_casters": AttrStackForDifferentCasters,
	"cant_be_reflected":           AttrCantBeReflected,
	"no_threat":                   AttrNoThreat,
	"ignore_caster_auras":         AttrIgnoreCasterAuras,
	"not_in_combat":               AttrNotInCombat,
	"ignore_range":                AttrIgnoreRange,
	"disabled_while_active":       AttrDisabledWhileActive,
	"on_next_swing":               AttrOnNextSwing,
	"no_initial_aggro":            AttrNoInitialAggro,
}

// ParseSpellAttr resolves one attribute name used in data files.
func ParseSpellAttr(name string) (SpellAttr, bool) {
	a, ok := spellAttrNames[name]
	return a, ok
}

// PowerType is the resource a spell costs.
type PowerType int8

const (
	PowerHealth     PowerType = -2
	PowerMana       PowerType = 0
	PowerRage       PowerType = 1
	PowerFocus      PowerType = 2
	PowerEnergy     PowerType = 3
	PowerHappiness  PowerType = 4
	PowerRunes      PowerType = 5
	PowerRunicPower PowerType = 6

	MaxPowers = 7
)

// DmgClass is the attack table a spell rolls against.
type DmgClass uint8

const (
	DmgClassNone DmgClass = iota
	DmgClassMagic
	DmgClassMelee
	DmgClassRanged
)

// DispelType is the dispel category of an aura.
type DispelType uint8

const (
	DispelNone DispelType = iota
	DispelMagic
	DispelCurse
	DispelDisease
	DispelPoison
	DispelStealth
	DispelInvisibility
	DispelAll
)

// Mechanic is the crowd-control category of an effect.
type Mechanic uint8

const (
	MechanicNone Mechanic = iota
	MechanicCharm
	MechanicDisoriented
	MechanicDisarm
	MechanicDistract
	MechanicFear
	MechanicGrip
	MechanicRoot
	MechanicSlowAttack
	MechanicSilence
	MechanicSleep
	MechanicSnare
	MechanicStun
	MechanicFreeze
	MechanicKnockout
	MechanicBleed
	MechanicBandage
	MechanicPolymorph
	MechanicBanish
	MechanicShield
	MechanicShackle
	MechanicMount
	MechanicInfected
	MechanicTurn
	MechanicHorror
	MechanicInvulnerability
	MechanicInterrupt
	MechanicDaze
	MechanicDiscovery
	MechanicImmuneShield
	MechanicSapped
	MechanicEnraged
)

// SpellEffectInfo describes one effect slot.
type SpellEffectInfo struct {
	Index              int
	Effect             SpellEffectName
	ApplyAuraName      AuraType
	BasePoints         int32
	RealPointsPerLevel float32
	DieSides           int32
	BonusCoefficient   float32
	DamageMultiplier   float32
	TargetA            Targets
	TargetB            Targets
	Radius             float32
	ChainTargets       int32
	TriggerSpell       SpellID
	MiscValue          int32
	MiscValueB         int32
	Amplitude          time.Duration
	Mechanic           Mechanic
	ItemType           uint32
	SpellClassMask     Flag96
}

func (e *SpellEffectInfo) IsEffect() bool { return e.Effect != EffectNone }

// IsAura reports whether the effect applies an aura to a unit.
func (e *SpellEffectInfo) IsAura() bool { return e.Effect.IsUnitAura() }

// IsAreaAuraEffect reports area aura effects.
func (e *SpellEffectInfo) IsAreaAuraEffect() bool { return e.Effect.IsAreaAura() }

// HasRadius reports whether either selector searches an area.
func (e *SpellEffectInfo) HasRadius() bool {
	return e.Radius > 0 && (e.TargetA.IsArea() || e.TargetB.IsArea())
}

// CalcValue rolls the effect magnitude for a caster of the given level.
// Per-level scaling is capped by the spell's max level when one is set.
func (e *SpellEffectInfo) CalcValue(spell *SpellInfo, casterLevel int32, rng *rand.Rand) int32 {
	value := e.BasePoints
	if e.RealPointsPerLevel != 0 {
		level := casterLevel
		if spell.MaxLevel > 0 && level > spell.MaxLevel {
			level = spell.MaxLevel
		}
		level -= spell.SpellLevel
		if level < 0 {
			level = 0
		}
		value += int32(float32(level) * e.RealPointsPerLevel)
	}
	switch {
	case e.DieSides > 1 && rng != nil:
		value += 1 + int32(rng.IntN(int(e.DieSides)))
	case e.DieSides >= 1:
		value++
	}
	return value
}

// SpellInfo is one immutable spell definition.
type SpellInfo struct {
	ID                 SpellID
	Difficulty         Difficulty
	Name               string
	SchoolMask         SchoolMask
	SpellFamilyName    SpellFamily
	SpellFamilyFlags   Flag96
	Attributes         SpellAttr
	AttributesCu       CustomAttr
	DmgClass           DmgClass
	Dispel             DispelType
	Mechanic           Mechanic
	CastTime           time.Duration
	RecoveryTime       time.Duration
	MinRange           float32
	MaxRange           float32
	Speed              float32
	Duration           time.Duration
	StackAmount        uint32
	ProcFlags          ProcFlags
	ProcChance         uint32
	ProcCharges        uint32
	PowerType          PowerType
	ManaCost           uint32
	SpellLevel         int32
	MaxLevel           int32
	MaxAffectedTargets uint32
	Diminishing        DiminishingInfo
	Effects            []SpellEffectInfo
}

func (s *SpellInfo) HasAttribute(a SpellAttr) bool   { return s.Attributes&a != 0 }
func (s *SpellInfo) HasCustomAttr(a CustomAttr) bool { return s.AttributesCu&a != 0 }
func (s *SpellInfo) IsPassive() bool                 { return s.HasAttribute(AttrPassive) }
func (s *SpellInfo) IsChanneled() bool               { return s.HasAttribute(AttrChanneled) }

// Effect returns the effect at index i or nil.
func (s *SpellInfo) Effect(i int) *SpellEffectInfo {
	if i < 0 || i >= len(s.Effects) {
		return nil
	}
	return &s.Effects[i]
}

func (s *SpellInfo) HasEffect(e SpellEffectName) bool {
	for i := range s.Effects {
		if s.Effects[i].Effect == e {
			return true
		}
	}
	return false
}

func (s *SpellInfo) HasAura(a AuraType) bool {
	for i := range s.Effects {
		if s.Effects[i].IsAura() && s.Effects[i].ApplyAuraName == a {
			return true
		}
	}
	return false
}

// IsAura reports whether any effect applies a unit aura.
func (s *SpellInfo) IsAura() bool {
	for i := range s.Effects {
		if s.Effects[i].IsAura() {
			return true
		}
	}
	return false
}

// EffectMask returns the bit set of non-empty effect slots.
func (s *SpellInfo) EffectMask() uint8 {
	var mask uint8
	for i := range s.Effects {
		if s.Effects[i].IsEffect() {
			mask |= 1 << i
		}
	}
	return mask
}

// AuraEffectMask returns the bit set of effects that apply auras.
func (s *SpellInfo) AuraEffectMask() uint8 {
	var mask uint8
	for i := range s.Effects {
		if s.Effects[i].IsAura() {
			mask |= 1 << i
		}
	}
	return mask
}

// IsPositive is false when any effect was derived as negative.
func (s *SpellInfo) IsPositive() bool {
	return !s.HasCustomAttr(CustomNegativeEff0 | CustomNegativeEff1 | CustomNegativeEff2)
}

func (s *SpellInfo) IsPositiveEffect(i int) bool {
	switch i {
	case 0:
		return !s.HasCustomAttr(CustomNegativeEff0)
	case 1:
		return !s.HasCustomAttr(CustomNegativeEff1)
	case 2:
		return !s.HasCustomAttr(CustomNegativeEff2)
	}
	return true
}

// IsAffected reports whether a family mask addresses this spell.
func (s *SpellInfo) IsAffected(family SpellFamily, mask Flag96) bool {
	if family == FamilyGeneric {
		return true
	}
	if family != s.SpellFamilyName {
		return false
	}
	return mask.IsZero() || mask.Intersects(s.SpellFamilyFlags)
}

// NeedsExplicitUnitTarget reports whether a selector references the
// explicitly chosen unit.
func (s *SpellInfo) NeedsExplicitUnitTarget() bool {
	for i := range s.Effects {
		for _, t := range []Targets{s.Effects[i].TargetA, s.Effects[i].TargetB} {
			if t.ReferenceType() == RefTarget && t.ObjectType() == ObjectUnit {
				return true
			}
		}
	}
	return false
}

// NeedsExplicitDest reports whether a selector references the explicit destination.
func (s *SpellInfo) NeedsExplicitDest() bool {
	for i := range s.Effects {
		for _, t := range []Targets{s.Effects[i].TargetA, s.Effects[i].TargetB} {
			if t.ReferenceType() == RefDest || t.SelectionCategory() == SelectLine {
				return true
			}
		}
	}
	return false
}

// IsTargetingArea reports whether any effect selects an area.
func (s *SpellInfo) IsTargetingArea() bool {
	for i := range s.Effects {
		if s.Effects[i].TargetA.IsArea() || s.Effects[i].TargetB.IsArea() {
			return true
		}
	}
	return false
}

// IsDamage reports spells with a direct or periodic damage effect.
func (s *SpellInfo) IsDamage() bool {
	for i := range s.Effects {
		e := &s.Effects[i]
		switch e.Effect {
		case EffectSchoolDamage, EffectHealthLeech, EffectWeaponDamage, EffectWeaponDamageNoschool,
			EffectNormalizedWeaponDmg, EffectWeaponPercentDamage, EffectEnvironmentalDamage,
			EffectPowerBurn:
			return true
		}
		if e.IsAura() {
			switch e.ApplyAuraName {
			case AuraPeriodicDamage, AuraPeriodicDamagePercent, AuraPeriodicLeech:
				return true
			}
		}
	}
	return false
}

// IsHeal reports spells with a direct or periodic healing effect.
func (s *SpellInfo) IsHeal() bool {
	for i := range s.Effects {
		e := &s.Effects[i]
		switch e.Effect {
		case EffectHeal, EffectHealPct, EffectHealMechanical, EffectHealMaxHealth:
			return true
		}
		if e.IsAura() && e.ApplyAuraName == AuraPeriodicHeal {
			return true
		}
	}
	return false
}
