package data

import "fmt"

// AuraType is the kind tag of one aura effect.
type AuraType uint16

const (
	AuraNone                                AuraType = 0
	AuraBindSight                           AuraType = 1
	AuraModPossess                          AuraType = 2
	AuraPeriodicDamage                      AuraType = 3
	AuraDummy                               AuraType = 4
	AuraModConfuse                          AuraType = 5
	AuraModCharm                            AuraType = 6
	AuraModFear                             AuraType = 7
	AuraPeriodicHeal                        AuraType = 8
	AuraModAttackspeed                      AuraType = 9
	AuraModThreat                           AuraType = 10
	AuraModTaunt                            AuraType = 11
	AuraModStun                             AuraType = 12
	AuraModDamageDone                       AuraType = 13
	AuraModDamageTaken                      AuraType = 14
	AuraDamageShield                        AuraType = 15
	AuraModStealth                          AuraType = 16
	AuraModStealthDetect                    AuraType = 17
	AuraModInvisibility                     AuraType = 18
	AuraModInvisibilityDetect               AuraType = 19
	AuraObsModHealth                        AuraType = 20
	AuraObsModPower                         AuraType = 21
	AuraModResistance                       AuraType = 22
	AuraPeriodicTriggerSpell                AuraType = 23
	AuraPeriodicEnergize                    AuraType = 24
	AuraModPacify                           AuraType = 25
	AuraModRoot                             AuraType = 26
	AuraModSilence                          AuraType = 27
	AuraReflectSpells                       AuraType = 28
	AuraModStat                             AuraType = 29
	AuraModSkill                            AuraType = 30
	AuraModIncreaseSpeed                    AuraType = 31
	AuraModIncreaseMountedSpeed             AuraType = 32
	AuraModDecreaseSpeed                    AuraType = 33
	AuraModIncreaseHealth                   AuraType = 34
	AuraModIncreaseEnergy                   AuraType = 35
	AuraModShapeshift                       AuraType = 36
	AuraEffectImmunity                      AuraType = 37
	AuraStateImmunity                       AuraType = 38
	AuraSchoolImmunity                      AuraType = 39
	AuraDamageImmunity                      AuraType = 40
	AuraDispelImmunity                      AuraType = 41
	AuraProcTriggerSpell                    AuraType = 42
	AuraProcTriggerDamage                   AuraType = 43
	AuraTrackCreatures                      AuraType = 44
	AuraTrackResources                      AuraType = 45
	AuraModParryPercent                     AuraType = 47
	AuraModDodgePercent                     AuraType = 49
	AuraModCriticalHealingAmount            AuraType = 50
	AuraModBlockPercent                     AuraType = 51
	AuraModWeaponCritPercent                AuraType = 52
	AuraPeriodicLeech                       AuraType = 53
	AuraModHitChance                        AuraType = 54
	AuraModSpellHitChance                   AuraType = 55
	AuraTransform                           AuraType = 56
	AuraModSpellCritChance                  AuraType = 57
	AuraModIncreaseSwimSpeed                AuraType = 58
	AuraModDamageDoneCreature               AuraType = 59
	AuraModPacifySilence                    AuraType = 60
	AuraModScale                            AuraType = 61
	AuraPeriodicHealthFunnel                AuraType = 62
	AuraPeriodicManaLeech                   AuraType = 64
	AuraModCastingSpeedNotStack             AuraType = 65
	AuraFeignDeath                          AuraType = 66
	AuraModDisarm                           AuraType = 67
	AuraModStalked                          AuraType = 68
	AuraSchoolAbsorb                        AuraType = 69
	AuraExtraAttacks                        AuraType = 70
	AuraModSpellCritChanceSchool            AuraType = 71
	AuraModPowerCostSchoolPct               AuraType = 72
	AuraModPowerCostSchool                  AuraType = 73
	AuraReflectSpellsSchool                 AuraType = 74
	AuraModLanguage                         AuraType = 75
	AuraFarSight                            AuraType = 76
	AuraMechanicImmunity                    AuraType = 77
	AuraMounted                             AuraType = 78
	AuraModDamagePercentDone                AuraType = 79
	AuraModPercentStat                      AuraType = 80
	AuraSplitDamagePct                      AuraType = 81
	AuraWaterBreathing                      AuraType = 82
	AuraModBaseResistance                   AuraType = 83
	AuraModRegen                            AuraType = 84
	AuraModPowerRegen                       AuraType = 85
	AuraChannelDeathItem                    AuraType = 86
	AuraModDamagePercentTaken               AuraType = 87
	AuraModHealthRegenPercent               AuraType = 88
	AuraPeriodicDamagePercent               AuraType = 89
	AuraModDetectRange                      AuraType = 91
	AuraPreventsFleeing                     AuraType = 92
	AuraModUnattackable                     AuraType = 93
	AuraInterruptRegen                      AuraType = 94
	AuraGhost                               AuraType = 95
	AuraSpellMagnet                         AuraType = 96
	AuraManaShield                          AuraType = 97
	AuraModSkillTalent                      AuraType = 98
	AuraModAttackPower                      AuraType = 99
	AuraAurasVisible                        AuraType = 100
	AuraModResistancePct                    AuraType = 101
	AuraModMeleeAttackPowerVersus           AuraType = 102
	AuraModTotalThreat                      AuraType = 103
	AuraWaterWalk                           AuraType = 104
	AuraFeatherFall                         AuraType = 105
	AuraHover                               AuraType = 106
	AuraAddFlatModifier                     AuraType = 107
	AuraAddPctModifier                      AuraType = 108
	AuraAddTargetTrigger                    AuraType = 109
	AuraModPowerRegenPercent                AuraType = 110
	AuraAddCasterHitTrigger                 AuraType = 111
	AuraOverrideClassScripts                AuraType = 112
	AuraModRangedDamageTaken                AuraType = 113
	AuraModRangedDamageTakenPct             AuraType = 114
	AuraModHealing                          AuraType = 115
	AuraModRegenDuringCombat                AuraType = 116
	AuraModMechanicResistance               AuraType = 117
	AuraModHealingPct                       AuraType = 118
	AuraUntrackable                         AuraType = 120
	AuraEmpathy                             AuraType = 121
	AuraModOffhandDamagePct                 AuraType = 122
	AuraModTargetResistance                 AuraType = 123
	AuraModRangedAttackPower                AuraType = 124
	AuraModMeleeDamageTaken                 AuraType = 125
	AuraModMeleeDamageTakenPct              AuraType = 126
	AuraRangedAttackPowerAttackerBonus      AuraType = 127
	AuraModPossessPet                       AuraType = 128
	AuraModSpeedAlways                      AuraType = 129
	AuraModMountedSpeedAlways               AuraType = 130
	AuraModRangedAttackPowerVersus          AuraType = 131
	AuraModIncreaseEnergyPercent            AuraType = 132
	AuraModIncreaseHealthPercent            AuraType = 133
	AuraModManaRegenInterrupt               AuraType = 134
	AuraModHealingDone                      AuraType = 135
	AuraModHealingDonePercent               AuraType = 136
	AuraModTotalStatPercentage              AuraType = 137
	AuraModMeleeHaste                       AuraType = 138
	AuraForceReaction                       AuraType = 139
	AuraModRangedHaste                      AuraType = 140
	AuraModRangedAmmoHaste                  AuraType = 141
	AuraModBaseResistancePct                AuraType = 142
	AuraModResistanceExclusive              AuraType = 143
	AuraSafeFall                            AuraType = 144
	AuraModPetTalentPoints                  AuraType = 145
	AuraAllowTamePetType                    AuraType = 146
	AuraMechanicImmunityMask                AuraType = 147
	AuraRetainComboPoints                   AuraType = 148
	AuraReducePushback                      AuraType = 149
	AuraModShieldBlockvaluePct              AuraType = 150
	AuraTrackStealthed                      AuraType = 151
	AuraModDetectedRange                    AuraType = 152
	AuraSplitDamageFlat                     AuraType = 153
	AuraModStealthLevel                     AuraType = 154
	AuraModWaterBreathing                   AuraType = 155
	AuraModReputationGain                   AuraType = 156
	AuraPetDamageMulti                      AuraType = 157
	AuraModShieldBlockvalue                 AuraType = 158
	AuraNoPvpCredit                         AuraType = 159
	AuraModAoeAvoidance                     AuraType = 160
	AuraModHealthRegenInCombat              AuraType = 161
	AuraPowerBurn                           AuraType = 162
	AuraModCritDamageBonus                  AuraType = 163
	AuraMeleeAttackPowerAttackerBonus       AuraType = 165
	AuraModAttackPowerPct                   AuraType = 166
	AuraModRangedAttackPowerPct             AuraType = 167
	AuraModDamageDoneVersus                 AuraType = 168
	AuraModCritPercentVersus                AuraType = 169
	AuraDetectAmore                         AuraType = 170
	AuraModSpeedNotStack                    AuraType = 171
	AuraModMountedSpeedNotStack             AuraType = 172
	AuraModSpellDamageOfStatPercent         AuraType = 174
	AuraModSpellHealingOfStatPercent        AuraType = 175
	AuraSpiritOfRedemption                  AuraType = 176
	AuraAoeCharm                            AuraType = 177
	AuraModDebuffResistance                 AuraType = 178
	AuraModAttackerSpellCritChance          AuraType = 179
	AuraModFlatSpellDamageVersus            AuraType = 180
	AuraModResistanceOfStatPercent          AuraType = 182
	AuraModCriticalThreat                   AuraType = 183
	AuraModAttackerMeleeHitChance           AuraType = 184
	AuraModAttackerRangedHitChance          AuraType = 185
	AuraModAttackerSpellHitChance           AuraType = 186
	AuraModAttackerMeleeCritChance          AuraType = 187
	AuraModAttackerRangedCritChance         AuraType = 188
	AuraModRating                           AuraType = 189
	AuraModFactionReputationGain            AuraType = 190
	AuraUseNormalMovementSpeed              AuraType = 191
	AuraModMeleeRangedHaste                 AuraType = 192
	AuraMeleeSlow                           AuraType = 193
	AuraModTargetAbsorbSchool               AuraType = 194
	AuraModTargetAbilityAbsorbSchool        AuraType = 195
	AuraModCooldown                         AuraType = 196
	AuraModAttackerSpellAndWeaponCritChance AuraType = 197
	AuraModIncreasesSpellPctToHit           AuraType = 199
	AuraModXpPct                            AuraType = 200
	AuraFly                                 AuraType = 201
	AuraIgnoreCombatResult                  AuraType = 202
	AuraModAttackerMeleeCritDamage          AuraType = 203
	AuraModAttackerRangedCritDamage         AuraType = 204
	AuraModSchoolCritDmgTaken               AuraType = 205
	AuraModIncreaseVehicleFlightSpeed       AuraType = 206
	AuraModIncreaseMountedFlightSpeed       AuraType = 207
	AuraModIncreaseFlightSpeed              AuraType = 208
	AuraModMountedFlightSpeedAlways         AuraType = 209
	AuraModVehicleSpeedAlways               AuraType = 210
	AuraModFlightSpeedNotStack              AuraType = 211
	AuraModRangedAttackPowerOfStatPercent   AuraType = 212
	AuraModRageFromDamageDealt              AuraType = 213
	AuraArenaPreparation                    AuraType = 215
	AuraHasteSpells                         AuraType = 216
	AuraModMeleeHaste2                      AuraType = 217
	AuraHasteRanged                         AuraType = 218
	AuraModManaRegenFromStat                AuraType = 219
	AuraModRatingFromStat                   AuraType = 220
	AuraModDetaunt                          AuraType = 221
	AuraRaidProcFromCharge                  AuraType = 223
	AuraRaidProcFromChargeWithValue         AuraType = 225
	AuraPeriodicDummy                       AuraType = 226
	AuraPeriodicTriggerSpellWithValue       AuraType = 227
	AuraDetectStealth                       AuraType = 228
	AuraModAoeDamageAvoidance               AuraType = 229
	AuraProcTriggerSpellWithValue           AuraType = 231
	AuraMechanicDurationMod                 AuraType = 232
	AuraChangeModelForAllHumanoids          AuraType = 233
	AuraMechanicDurationModNotStack         AuraType = 234
	AuraModDispelResist                     AuraType = 235
	AuraControlVehicle                      AuraType = 236
	AuraModSpellDamageOfAttackPower         AuraType = 237
	AuraModSpellHealingOfAttackPower        AuraType = 238
	AuraModScale2                           AuraType = 239
	AuraModExpertise                        AuraType = 240
	AuraForceMoveForward                    AuraType = 241
	AuraModSpellDamageFromHealing           AuraType = 242
	AuraModFaction                          AuraType = 243
	AuraComprehendLanguage                  AuraType = 244
	AuraModAuraDurationByDispel             AuraType = 245
	AuraModAuraDurationByDispelNotStack     AuraType = 246
	AuraCloneCaster                         AuraType = 247
	AuraModCombatResultChance               AuraType = 248
	AuraConvertRune                         AuraType = 249
	AuraModIncreaseHealth2                  AuraType = 250
	AuraModEnemyDodge                       AuraType = 251
	AuraModSpeedSlowAll                     AuraType = 252
	AuraModBlockCritChance                  AuraType = 253
	AuraModDisarmOffhand                    AuraType = 254
	AuraModMechanicDamageTakenPercent       AuraType = 255
	AuraNoReagentUse                        AuraType = 256
	AuraModTargetResistBySpellClass         AuraType = 257
	AuraModHotPct                           AuraType = 259
	AuraScreenEffect                        AuraType = 260
	AuraPhase                               AuraType = 261
	AuraAbilityIgnoreAurastate              AuraType = 262
	AuraAllowOnlyAbility                    AuraType = 263
	AuraModImmuneAuraApplySchool            AuraType = 267
	AuraModAttackPowerOfStatPercent         AuraType = 268
	AuraModIgnoreTargetResist               AuraType = 269
	AuraModAbilityIgnoreTargetResist        AuraType = 270
	AuraModDamageFromCaster                 AuraType = 271
	AuraIgnoreMeleeReset                    AuraType = 272
	AuraXRay                                AuraType = 273
	AuraAbilityConsumeNoAmmo                AuraType = 274
	AuraModIgnoreShapeshift                 AuraType = 275
	AuraModDamageDoneForMechanic            AuraType = 276
	AuraModMaxAffectedTargets               AuraType = 277
	AuraModDisarmRanged                     AuraType = 278
	AuraInitializeImages                    AuraType = 279
	AuraModArmorPenetrationPct              AuraType = 280
	AuraModHonorGainPct                     AuraType = 281
	AuraModBaseHealthPct                    AuraType = 282
	AuraModHealingReceived                  AuraType = 283
	AuraLinked                              AuraType = 284
	AuraModAttackPowerOfArmor               AuraType = 285
	AuraAbilityPeriodicCrit                 AuraType = 286
	AuraDeflectSpells                       AuraType = 287
	AuraIgnoreHitDirection                  AuraType = 288
	AuraModCritPct                          AuraType = 290
	AuraModXpQuestPct                       AuraType = 291
	AuraOpenStable                          AuraType = 292
	AuraOverrideSpells                      AuraType = 293
	AuraPreventRegeneratePower              AuraType = 294
	AuraSetVehicleId                        AuraType = 296
	AuraBlockSpellFamily                    AuraType = 297
	AuraStrangulate                         AuraType = 298
	AuraShareDamagePct                      AuraType = 300
	AuraSchoolHealAbsorb                    AuraType = 301
	AuraModDamageDoneVersusAurastate        AuraType = 303
	AuraModFakeInebriate                    AuraType = 304
	AuraModMinimumSpeed                     AuraType = 305
	AuraHealAbsorbTest                      AuraType = 307
	AuraModCritChanceForCaster              AuraType = 308
	AuraModCreatureAoeDamageAvoidance       AuraType = 310
	AuraPreventResurrection                 AuraType = 314
	AuraUnderwaterWalking                   AuraType = 315

	TotalAuraTypes = 316
)

var auraTypeNames = [TotalAuraTypes]string{
	"none",
	"bind_sight",
	"mod_possess",
	"periodic_damage",
	"dummy",
	"mod_confuse",
	"mod_charm",
	"mod_fear",
	"periodic_heal",
	"mod_attackspeed",
	"mod_threat",
	"mod_taunt",
	"mod_stun",
	"mod_damage_done",
	"mod_damage_taken",
	"damage_shield",
	"mod_stealth",
	"mod_stealth_detect",
	"mod_invisibility",
	"mod_invisibility_detect",
	"obs_mod_health",
	"obs_mod_power",
	"mod_resistance",
	"periodic_trigger_spell",
	"periodic_energize",
	"mod_pacify",
	"mod_root",
	"mod_silence",
	"reflect_spells",
	"mod_stat",
	"mod_skill",
	"mod_increase_speed",
	"mod_increase_mounted_speed",
	"mod_decrease_speed",
	"mod_increase_health",
	"mod_increase_energy",
	"mod_shapeshift",
	"effect_immunity",
	"state_immunity",
	"school_immunity",
	"damage_immunity",
	"dispel_immunity",
	"proc_trigger_spell",
	"proc_trigger_damage",
	"track_creatures",
	"track_resources",
	"unused_46",
	"mod_parry_percent",
	"unused_48",
	"mod_dodge_percent",
	"mod_critical_healing_amount",
	"mod_block_percent",
	"mod_weapon_crit_percent",
	"periodic_leech",
	"mod_hit_chance",
	"mod_spell_hit_chance",
	"transform",
	"mod_spell_crit_chance",
	"mod_increase_swim_speed",
	"mod_damage_done_creature",
	"mod_pacify_silence",
	"mod_scale",
	"periodic_health_funnel",
	"unused_63",
	"periodic_mana_leech",
	"mod_casting_speed_not_stack",
	"feign_death",
	"mod_disarm",
	"mod_stalked",
	"school_absorb",
	"extra_attacks",
	"mod_spell_crit_chance_school",
	"mod_power_cost_school_pct",
	"mod_power_cost_school",
	"reflect_spells_school",
	"mod_language",
	"far_sight",
	"mechanic_immunity",
	"mounted",
	"mod_damage_percent_done",
	"mod_percent_stat",
	"split_damage_pct",
	"water_breathing",
	"mod_base_resistance",
	"mod_regen",
	"mod_power_regen",
	"channel_death_item",
	"mod_damage_percent_taken",
	"mod_health_regen_percent",
	"periodic_damage_percent",
	"unused_90",
	"mod_detect_range",
	"prevents_fleeing",
	"mod_unattackable",
	"interrupt_regen",
	"ghost",
	"spell_magnet",
	"mana_shield",
	"mod_skill_talent",
	"mod_attack_power",
	"auras_visible",
	"mod_resistance_pct",
	"mod_melee_attack_power_versus",
	"mod_total_threat",
	"water_walk",
	"feather_fall",
	"hover",
	"add_flat_modifier",
	"add_pct_modifier",
	"add_target_trigger",
	"mod_power_regen_percent",
	"add_caster_hit_trigger",
	"override_class_scripts",
	"mod_ranged_damage_taken",
	"mod_ranged_damage_taken_pct",
	"mod_healing",
	"mod_regen_during_combat",
	"mod_mechanic_resistance",
	"mod_healing_pct",
	"unused_119",
	"untrackable",
	"empathy",
	"mod_offhand_damage_pct",
	"mod_target_resistance",
	"mod_ranged_attack_power",
	"mod_melee_damage_taken",
	"mod_melee_damage_taken_pct",
	"ranged_attack_power_attacker_bonus",
	"mod_possess_pet",
	"mod_speed_always",
	"mod_mounted_speed_always",
	"mod_ranged_attack_power_versus",
	"mod_increase_energy_percent",
	"mod_increase_health_percent",
	"mod_mana_regen_interrupt",
	"mod_healing_done",
	"mod_healing_done_percent",
	"mod_total_stat_percentage",
	"mod_melee_haste",
	"force_reaction",
	"mod_ranged_haste",
	"mod_ranged_ammo_haste",
	"mod_base_resistance_pct",
	"mod_resistance_exclusive",
	"safe_fall",
	"mod_pet_talent_points",
	"allow_tame_pet_type",
	"mechanic_immunity_mask",
	"retain_combo_points",
	"reduce_pushback",
	"mod_shield_blockvalue_pct",
	"track_stealthed",
	"mod_detected_range",
	"split_damage_flat",
	"mod_stealth_level",
	"mod_water_breathing",
	"mod_reputation_gain",
	"pet_damage_multi",
	"mod_shield_blockvalue",
	"no_pvp_credit",
	"mod_aoe_avoidance",
	"mod_health_regen_in_combat",
	"power_burn",
	"mod_crit_damage_bonus",
	"unused_164",
	"melee_attack_power_attacker_bonus",
	"mod_attack_power_pct",
	"mod_ranged_attack_power_pct",
	"mod_damage_done_versus",
	"mod_crit_percent_versus",
	"detect_amore",
	"mod_speed_not_stack",
	"mod_mounted_speed_not_stack",
	"unused_173",
	"mod_spell_damage_of_stat_percent",
	"mod_spell_healing_of_stat_percent",
	"spirit_of_redemption",
	"aoe_charm",
	"mod_debuff_resistance",
	"mod_attacker_spell_crit_chance",
	"mod_flat_spell_damage_versus",
	"unused_181",
	"mod_resistance_of_stat_percent",
	"mod_critical_threat",
	"mod_attacker_melee_hit_chance",
	"mod_attacker_ranged_hit_chance",
	"mod_attacker_spell_hit_chance",
	"mod_attacker_melee_crit_chance",
	"mod_attacker_ranged_crit_chance",
	"mod_rating",
	"mod_faction_reputation_gain",
	"use_normal_movement_speed",
	"mod_melee_ranged_haste",
	"melee_slow",
	"mod_target_absorb_school",
	"mod_target_ability_absorb_school",
	"mod_cooldown",
	"mod_attacker_spell_and_weapon_crit_chance",
	"unused_198",
	"mod_increases_spell_pct_to_hit",
	"mod_xp_pct",
	"fly",
	"ignore_combat_result",
	"mod_attacker_melee_crit_damage",
	"mod_attacker_ranged_crit_damage",
	"mod_school_crit_dmg_taken",
	"mod_increase_vehicle_flight_speed",
	"mod_increase_mounted_flight_speed",
	"mod_increase_flight_speed",
	"mod_mounted_flight_speed_always",
	"mod_vehicle_speed_always",
	"mod_flight_speed_not_stack",
	"mod_ranged_attack_power_of_stat_percent",
	"mod_rage_from_damage_dealt",
	"unused_214",
	"arena_preparation",
	"haste_spells",
	"mod_melee_haste_2",
	"haste_ranged",
	"mod_mana_regen_from_stat",
	"mod_rating_from_stat",
	"mod_detaunt",
	"unused_222",
	"raid_proc_from_charge",
	"unused_224",
	"raid_proc_from_charge_with_value",
	"periodic_dummy",
	"periodic_trigger_spell_with_value",
	"detect_stealth",
	"mod_aoe_damage_avoidance",
	"unused_230",
	"proc_trigger_spell_with_value",
	"mechanic_duration_mod",
	"change_model_for_all_humanoids",
	"mechanic_duration_mod_not_stack",
	"mod_dispel_resist",
	"control_vehicle",
	"mod_spell_damage_of_attack_power",
	"mod_spell_healing_of_attack_power",
	"mod_scale_2",
	"mod_expertise",
	"force_move_forward",
	"mod_spell_damage_from_healing",
	"mod_faction",
	"comprehend_language",
	"mod_aura_duration_by_dispel",
	"mod_aura_duration_by_dispel_not_stack",
	"clone_caster",
	"mod_combat_result_chance",
	"convert_rune",
	"mod_increase_health_2",
	"mod_enemy_dodge",
	"mod_speed_slow_all",
	"mod_block_crit_chance",
	"mod_disarm_offhand",
	"mod_mechanic_damage_taken_percent",
	"no_reagent_use",
	"mod_target_resist_by_spell_class",
	"unused_258",
	"mod_hot_pct",
	"screen_effect",
	"phase",
	"ability_ignore_aurastate",
	"allow_only_ability",
	"unused_264",
	"unused_265",
	"unused_266",
	"mod_immune_aura_apply_school",
	"mod_attack_power_of_stat_percent",
	"mod_ignore_target_resist",
	"mod_ability_ignore_target_resist",
	"mod_damage_from_caster",
	"ignore_melee_reset",
	"x_ray",
	"ability_consume_no_ammo",
	"mod_ignore_shapeshift",
	"mod_damage_done_for_mechanic",
	"mod_max_affected_targets",
	"mod_disarm_ranged",
	"initialize_images",
	"mod_armor_penetration_pct",
	"mod_honor_gain_pct",
	"mod_base_health_pct",
	"mod_healing_received",
	"linked",
	"mod_attack_power_of_armor",
	"ability_periodic_crit",
	"deflect_spells",
	"ignore_hit_direction",
	"unused_289",
	"mod_crit_pct",
	"mod_xp_quest_pct",
	"open_stable",
	"override_spells",
	"prevent_regenerate_power",
	"unused_295",
	"set_vehicle_id",
	"block_spell_family",
	"strangulate",
	"unused_299",
	"share_damage_pct",
	"school_heal_absorb",
	"unused_302",
	"mod_damage_done_versus_aurastate",
	"mod_fake_inebriate",
	"mod_minimum_speed",
	"unused_306",
	"heal_absorb_test",
	"mod_crit_chance_for_caster",
	"unused_309",
	"mod_creature_aoe_damage_avoidance",
	"unused_311",
	"unused_312",
	"unused_313",
	"prevent_resurrection",
	"underwater_walking",
}

var auraTypeNamesIndex = indexNames[AuraType](auraTypeNames[:])

func (v AuraType) String() string {
	if int(v) < len(auraTypeNames) {
		return auraTypeNames[v]
	}
	return fmt.Sprintf("auratype(%d)", int(v))
}

// ParseAuraType resolves the snake_case name used in data files.
func ParseAuraType(name string) (AuraType, bool) {
	v, ok := auraTypeNamesIndex[name]
	return v, ok
}
