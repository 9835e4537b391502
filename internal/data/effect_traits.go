package data

// ImplicitTargetType is what an effect hits when neither selector is set.
type ImplicitTargetType uint8

const (
	ImplicitTargetNone ImplicitTargetType = iota
	ImplicitTargetExplicit
	ImplicitTargetCaster
)

// Effects that work on the caster when the data names no selector.
var casterImplicitEffects = map[SpellEffectName]struct{}{
	EffectLearnSpell:          {},
	EffectSkillStep:           {},
	EffectCreateItem:          {},
	EffectCreateItem2:         {},
	EffectCreateRandomItem:    {},
	EffectCreateManaGem:       {},
	EffectStuck:               {},
	EffectSelfResurrect:       {},
	EffectDualWield:           {},
	EffectProficiency:         {},
	EffectTitanGrip:           {},
	EffectTalentSpecCount:     {},
	EffectTalentSpecSelect:    {},
	EffectUntrainTalents:      {},
	EffectDestroyAllTotems:    {},
	EffectLanguage:            {},
	EffectWeapon:              {},
	EffectDefense:             {},
	EffectSpellDefense:        {},
	EffectTradeSkill:          {},
	EffectSkill:               {},
	EffectActivateRune:        {},
	EffectBind:                {},
	EffectAddFarsight:         {},
	EffectPersistentAreaAura:  {},
	EffectSummon:              {},
	EffectSummonObjectWild:    {},
	EffectSummonObjectSlot1:   {},
	EffectSummonObjectSlot2:   {},
	EffectSummonObjectSlot3:   {},
	EffectSummonObjectSlot4:   {},
	EffectTransDoor:           {},
	EffectApplyAreaAuraParty:  {},
	EffectApplyAreaAuraRaid:   {},
	EffectApplyAreaAuraPet:    {},
	EffectApplyAreaAuraFriend: {},
	EffectApplyAreaAuraEnemy:  {},
	EffectApplyAreaAuraOwner:  {},
}

// ImplicitTargetType reports what the effect hits without explicit selectors.
func (e SpellEffectName) ImplicitTargetType() ImplicitTargetType {
	if e == EffectNone {
		return ImplicitTargetNone
	}
	if _, ok := casterImplicitEffects[e]; ok {
		return ImplicitTargetCaster
	}
	return ImplicitTargetExplicit
}

// IsAreaAura reports effects that apply an aura to everyone around the holder.
func (e SpellEffectName) IsAreaAura() bool {
	switch e {
	case EffectApplyAreaAuraParty, EffectApplyAreaAuraRaid, EffectApplyAreaAuraPet,
		EffectApplyAreaAuraFriend, EffectApplyAreaAuraEnemy, EffectApplyAreaAuraOwner:
		return true
	}
	return false
}

// IsUnitAura reports effects that apply an aura to a unit.
func (e SpellEffectName) IsUnitAura() bool {
	return e == EffectApplyAura || e.IsAreaAura()
}

// IsPeriodic reports aura types that tick on amplitude.
func (a AuraType) IsPeriodic() bool {
	switch a {
	case AuraPeriodicDamage, AuraPeriodicHeal, AuraPeriodicTriggerSpell,
		AuraPeriodicTriggerSpellWithValue, AuraPeriodicEnergize, AuraPeriodicLeech,
		AuraPeriodicManaLeech, AuraPeriodicDamagePercent, AuraPeriodicHealthFunnel,
		AuraPeriodicDummy, AuraObsModHealth, AuraObsModPower, AuraPowerBurn:
		return true
	}
	return false
}

// IsProcTrigger reports aura types that react to proc events.
func (a AuraType) IsProcTrigger() bool {
	switch a {
	case AuraProcTriggerSpell, AuraProcTriggerSpellWithValue, AuraProcTriggerDamage,
		AuraAddTargetTrigger, AuraAddCasterHitTrigger, AuraOverrideClassScripts,
		AuraDummy, AuraPeriodicDummy, AuraModMechanicResistance, AuraModDamageFromCaster,
		AuraRaidProcFromCharge, AuraRaidProcFromChargeWithValue, AuraReflectSpells,
		AuraReflectSpellsSchool, AuraSchoolAbsorb, AuraModStealth, AuraModInvisibility,
		AuraModRoot, AuraModStun, AuraModFear, AuraModConfuse, AuraTransform,
		AuraModCastingSpeedNotStack, AuraModSpellCritChance, AuraModDamagePercentTaken,
		AuraModWeaponCritPercent, AuraSpellMagnet, AuraManaShield:
		return true
	}
	return false
}

// IsHaste reports aura types folded into one bucket by same-effect stacking.
func (a AuraType) IsHaste() bool {
	switch a {
	case AuraModMeleeHaste, AuraModMeleeHaste2, AuraModRangedHaste, AuraHasteSpells,
		AuraModCastingSpeedNotStack, AuraHasteRanged, AuraModMeleeRangedHaste:
		return true
	}
	return false
}
