package data

// CustomAttr holds bits derived from the effect list at publish time, plus a
// few that only corrections can set.
type CustomAttr uint32

const (
	CustomDirectDamage CustomAttr = 1 << iota
	CustomAuraCC
	CustomCharge
	CustomConeBack
	CustomConeLine
	CustomNegativeEff0
	CustomNegativeEff1
	CustomNegativeEff2
	CustomBinarySpell
	CustomShareDamage
	CustomNoInitialThreat
	CustomIgnoreArmor
	CustomReqCasterBehindTarget

	CustomNegative = CustomNegativeEff0 | CustomNegativeEff1 | CustomNegativeEff2
)

var customAttrNames = map[string]CustomAttr{
	"cone_back":                CustomConeBack,
	"cone_line":                CustomConeLine,
	"share_damage":             CustomShareDamage,
	"no_initial_threat":        CustomNoInitialThreat,
	"ignore_armor":             CustomIgnoreArmor,
	"req_caster_behind_target": CustomReqCasterBehindTarget,
	"binary_spell":             CustomBinarySpell,
}

// ParseCustomAttr resolves a correctable custom attribute name.
func ParseCustomAttr(name string) (CustomAttr, bool) {
	a, ok := customAttrNames[name]
	return a, ok
}

// deriveCustomAttributes computes the derived bits once per spell.
func deriveCustomAttributes(s *SpellInfo) {
	for i := range s.Effects {
		e := &s.Effects[i]
		switch e.Effect {
		case EffectSchoolDamage, EffectHealthLeech, EffectHeal, EffectHealPct,
			EffectHealMechanical, EffectEnvironmentalDamage, EffectPowerBurn:
			s.AttributesCu |= CustomDirectDamage
		case EffectCharge, EffectChargeDest, EffectJump, EffectJumpDest, EffectLeapBack:
			s.AttributesCu |= CustomCharge
		}
		if e.IsAura() {
			switch e.ApplyAuraName {
			case AuraModPossess, AuraModConfuse, AuraModCharm, AuraAoeCharm, AuraModFear, AuraModStun:
				s.AttributesCu |= CustomAuraCC
			}
		}
		if !isPositiveEffect(s, e) {
			s.AttributesCu |= CustomNegativeEff0 << i
		}
	}
	if isBinarySpell(s) {
		s.AttributesCu |= CustomBinarySpell
	}
}

// isPositiveEffect classifies an effect slot as beneficial.
func isPositiveEffect(s *SpellInfo, e *SpellEffectInfo) bool {
	if s.HasAttribute(AttrAuraIsDebuff) {
		return false
	}
	for _, t := range []Targets{e.TargetA, e.TargetB} {
		if t.CheckType() == CheckEnemy || t == TargetCorpseSrcAreaEnemy {
			return false
		}
	}
	switch e.Effect {
	case EffectInstakill, EffectSchoolDamage, EffectHealthLeech, EffectPowerDrain, EffectPowerBurn,
		EffectWeaponDamage, EffectWeaponDamageNoschool, EffectNormalizedWeaponDmg,
		EffectWeaponPercentDamage, EffectInterruptCast, EffectKnockBack, EffectKnockBackDest,
		EffectEnvironmentalDamage, EffectDurabilityDamage, EffectDurabilityDamagePct,
		EffectAttackMe, EffectStealBeneficialBuff, EffectGameobjectDamage, EffectDistract,
		EffectPickpocket:
		return false
	}
	if !e.IsAura() {
		return true
	}
	switch e.ApplyAuraName {
	case AuraPeriodicDamage, AuraPeriodicDamagePercent, AuraPeriodicLeech, AuraPeriodicManaLeech,
		AuraPeriodicHealthFunnel, AuraModStun, AuraModRoot, AuraModFear, AuraModConfuse,
		AuraModSilence, AuraModPacify, AuraModPacifySilence, AuraModDecreaseSpeed, AuraModTaunt,
		AuraModCharm, AuraAoeCharm, AuraModPossess, AuraPowerBurn, AuraStrangulate,
		AuraModDisarm, AuraModDisarmOffhand, AuraModDisarmRanged, AuraPreventResurrection,
		AuraModStalked, AuraModSpeedSlowAll, AuraMeleeSlow, AuraPreventsFleeing:
		return false
	case AuraModDamageTaken, AuraModDamagePercentTaken, AuraModMeleeDamageTaken,
		AuraModMeleeDamageTakenPct, AuraModRangedDamageTaken, AuraModRangedDamageTakenPct,
		AuraModMechanicDamageTakenPercent:
		return e.BasePoints <= 0
	case AuraModStat, AuraModPercentStat, AuraModTotalStatPercentage, AuraModDamageDone,
		AuraModDamagePercentDone, AuraModResistance, AuraModResistancePct, AuraModBaseResistance,
		AuraModAttackPower, AuraModRangedAttackPower, AuraModAttackPowerPct,
		AuraModIncreaseSpeed, AuraModMeleeHaste, AuraModMeleeHaste2, AuraModRangedHaste,
		AuraHasteSpells, AuraModCastingSpeedNotStack, AuraModHealingPct, AuraModHealingDonePercent,
		AuraModHealing, AuraModHealingDone, AuraModIncreaseHealth, AuraModIncreaseHealthPercent,
		AuraModSpellCritChance, AuraModHitChance, AuraModSpellHitChance, AuraModRegen,
		AuraModPowerRegen, AuraModPowerRegenPercent, AuraModHealingReceived:
		return e.BasePoints >= 0
	}
	return true
}

// isBinarySpell marks hostile spells whose non-damage payload resists all or nothing.
func isBinarySpell(s *SpellInfo) bool {
	hasControl := false
	for i := range s.Effects {
		e := &s.Effects[i]
		if s.IsPositiveEffect(i) || !e.IsAura() {
			continue
		}
		switch e.ApplyAuraName {
		case AuraPeriodicDamage, AuraPeriodicDamagePercent, AuraPeriodicLeech, AuraDummy:
			continue
		}
		hasControl = true
	}
	return hasControl
}
