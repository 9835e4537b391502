package data

import "fmt"

// SpellEffectName is the kind tag of one effect slot of a spell.
type SpellEffectName uint8

const (
	EffectNone                          SpellEffectName = 0
	EffectInstakill                     SpellEffectName = 1
	EffectSchoolDamage                  SpellEffectName = 2
	EffectDummy                         SpellEffectName = 3
	EffectPortalTeleport                SpellEffectName = 4
	EffectTeleportUnits                 SpellEffectName = 5
	EffectApplyAura                     SpellEffectName = 6
	EffectEnvironmentalDamage           SpellEffectName = 7
	EffectPowerDrain                    SpellEffectName = 8
	EffectHealthLeech                   SpellEffectName = 9
	EffectHeal                          SpellEffectName = 10
	EffectBind                          SpellEffectName = 11
	EffectPortal                        SpellEffectName = 12
	EffectRitualBase                    SpellEffectName = 13
	EffectRitualSpecialize              SpellEffectName = 14
	EffectRitualActivatePortal          SpellEffectName = 15
	EffectQuestComplete                 SpellEffectName = 16
	EffectWeaponDamageNoschool          SpellEffectName = 17
	EffectResurrect                     SpellEffectName = 18
	EffectAddExtraAttacks               SpellEffectName = 19
	EffectDodge                         SpellEffectName = 20
	EffectEvade                         SpellEffectName = 21
	EffectParry                         SpellEffectName = 22
	EffectBlock                         SpellEffectName = 23
	EffectCreateItem                    SpellEffectName = 24
	EffectWeapon                        SpellEffectName = 25
	EffectDefense                       SpellEffectName = 26
	EffectPersistentAreaAura            SpellEffectName = 27
	EffectSummon                        SpellEffectName = 28
	EffectLeap                          SpellEffectName = 29
	EffectEnergize                      SpellEffectName = 30
	EffectWeaponPercentDamage           SpellEffectName = 31
	EffectTriggerMissile                SpellEffectName = 32
	EffectOpenLock                      SpellEffectName = 33
	EffectSummonChangeItem              SpellEffectName = 34
	EffectApplyAreaAuraParty            SpellEffectName = 35
	EffectLearnSpell                    SpellEffectName = 36
	EffectSpellDefense                  SpellEffectName = 37
	EffectDispel                        SpellEffectName = 38
	EffectLanguage                      SpellEffectName = 39
	EffectDualWield                     SpellEffectName = 40
	EffectJump                          SpellEffectName = 41
	EffectJumpDest                      SpellEffectName = 42
	EffectTeleportUnitsFaceCaster       SpellEffectName = 43
	EffectSkillStep                     SpellEffectName = 44
	EffectAddHonor                      SpellEffectName = 45
	EffectSpawn                         SpellEffectName = 46
	EffectTradeSkill                    SpellEffectName = 47
	EffectStealth                       SpellEffectName = 48
	EffectDetect                        SpellEffectName = 49
	EffectTransDoor                     SpellEffectName = 50
	EffectForceCriticalHit              SpellEffectName = 51
	EffectGuaranteeHit                  SpellEffectName = 52
	EffectEnchantItem                   SpellEffectName = 53
	EffectEnchantItemTemporary          SpellEffectName = 54
	EffectTamecreature                  SpellEffectName = 55
	EffectSummonPet                     SpellEffectName = 56
	EffectLearnPetSpell                 SpellEffectName = 57
	EffectWeaponDamage                  SpellEffectName = 58
	EffectCreateRandomItem              SpellEffectName = 59
	EffectProficiency                   SpellEffectName = 60
	EffectSendEvent                     SpellEffectName = 61
	EffectPowerBurn                     SpellEffectName = 62
	EffectThreat                        SpellEffectName = 63
	EffectTriggerSpell                  SpellEffectName = 64
	EffectApplyAreaAuraRaid             SpellEffectName = 65
	EffectCreateManaGem                 SpellEffectName = 66
	EffectHealMaxHealth                 SpellEffectName = 67
	EffectInterruptCast                 SpellEffectName = 68
	EffectDistract                      SpellEffectName = 69
	EffectPull                          SpellEffectName = 70
	EffectPickpocket                    SpellEffectName = 71
	EffectAddFarsight                   SpellEffectName = 72
	EffectUntrainTalents                SpellEffectName = 73
	EffectApplyGlyph                    SpellEffectName = 74
	EffectHealMechanical                SpellEffectName = 75
	EffectSummonObjectWild              SpellEffectName = 76
	EffectScriptEffect                  SpellEffectName = 77
	EffectAttack                        SpellEffectName = 78
	EffectSanctuary                     SpellEffectName = 79
	EffectAddComboPoints                SpellEffectName = 80
	EffectCreateHouse                   SpellEffectName = 81
	EffectBindSight                     SpellEffectName = 82
	EffectDuel                          SpellEffectName = 83
	EffectStuck                         SpellEffectName = 84
	EffectSummonPlayer                  SpellEffectName = 85
	EffectActivateObject                SpellEffectName = 86
	EffectGameobjectDamage              SpellEffectName = 87
	EffectGameobjectRepair              SpellEffectName = 88
	EffectGameobjectSetDestructionState SpellEffectName = 89
	EffectKillCredit                    SpellEffectName = 90
	EffectThreatAll                     SpellEffectName = 91
	EffectEnchantHeldItem               SpellEffectName = 92
	EffectForceDeselect                 SpellEffectName = 93
	EffectSelfResurrect                 SpellEffectName = 94
	EffectSkinning                      SpellEffectName = 95
	EffectCharge                        SpellEffectName = 96
	EffectCastButton                    SpellEffectName = 97
	EffectKnockBack                     SpellEffectName = 98
	EffectDisenchant                    SpellEffectName = 99
	EffectInebriate                     SpellEffectName = 100
	EffectFeedPet                       SpellEffectName = 101
	EffectDismissPet                    SpellEffectName = 102
	EffectReputation                    SpellEffectName = 103
	EffectSummonObjectSlot1             SpellEffectName = 104
	EffectSummonObjectSlot2             SpellEffectName = 105
	EffectSummonObjectSlot3             SpellEffectName = 106
	EffectSummonObjectSlot4             SpellEffectName = 107
	EffectDispelMechanic                SpellEffectName = 108
	EffectResurrectPet                  SpellEffectName = 109
	EffectDestroyAllTotems              SpellEffectName = 110
	EffectDurabilityDamage              SpellEffectName = 111
	EffectResurrectNew                  SpellEffectName = 113
	EffectAttackMe                      SpellEffectName = 114
	EffectDurabilityDamagePct           SpellEffectName = 115
	EffectSkinPlayerCorpse              SpellEffectName = 116
	EffectSpiritHeal                    SpellEffectName = 117
	EffectSkill                         SpellEffectName = 118
	EffectApplyAreaAuraPet              SpellEffectName = 119
	EffectTeleportGraveyard             SpellEffectName = 120
	EffectNormalizedWeaponDmg           SpellEffectName = 121
	EffectSendTaxi                      SpellEffectName = 123
	EffectPullTowards                   SpellEffectName = 124
	EffectModifyThreatPercent           SpellEffectName = 125
	EffectStealBeneficialBuff           SpellEffectName = 126
	EffectProspecting                   SpellEffectName = 127
	EffectApplyAreaAuraFriend           SpellEffectName = 128
	EffectApplyAreaAuraEnemy            SpellEffectName = 129
	EffectRedirectThreat                SpellEffectName = 130
	EffectPlaySound                     SpellEffectName = 131
	EffectPlayMusic                     SpellEffectName = 132
	EffectUnlearnSpecialization         SpellEffectName = 133
	EffectKillCredit2                   SpellEffectName = 134
	EffectCallPet                       SpellEffectName = 135
	EffectHealPct                       SpellEffectName = 136
	EffectEnergizePct                   SpellEffectName = 137
	EffectLeapBack                      SpellEffectName = 138
	EffectClearQuest                    SpellEffectName = 139
	EffectForceCast                     SpellEffectName = 140
	EffectForceCastWithValue            SpellEffectName = 141
	EffectTriggerSpellWithValue         SpellEffectName = 142
	EffectApplyAreaAuraOwner            SpellEffectName = 143
	EffectKnockBackDest                 SpellEffectName = 144
	EffectPullTowardsDest               SpellEffectName = 145
	EffectActivateRune                  SpellEffectName = 146
	EffectQuestFail                     SpellEffectName = 147
	EffectTriggerMissileSpellWithValue  SpellEffectName = 148
	EffectChargeDest                    SpellEffectName = 149
	EffectQuestStart                    SpellEffectName = 150
	EffectTriggerSpell2                 SpellEffectName = 151
	EffectSummonRafFriend               SpellEffectName = 152
	EffectCreateTamedPet                SpellEffectName = 153
	EffectDiscoverTaxi                  SpellEffectName = 154
	EffectTitanGrip                     SpellEffectName = 155
	EffectEnchantItemPrismatic          SpellEffectName = 156
	EffectCreateItem2                   SpellEffectName = 157
	EffectMilling                       SpellEffectName = 158
	EffectAllowRenamePet                SpellEffectName = 159
	EffectForceCast2                    SpellEffectName = 160
	EffectTalentSpecCount               SpellEffectName = 161
	EffectTalentSpecSelect              SpellEffectName = 162
	EffectRemoveAura                    SpellEffectName = 164

	TotalSpellEffects = 165
)

var spellEffectNames = [TotalSpellEffects]string{
	"none",
	"instakill",
	"school_damage",
	"dummy",
	"portal_teleport",
	"teleport_units",
	"apply_aura",
	"environmental_damage",
	"power_drain",
	"health_leech",
	"heal",
	"bind",
	"portal",
	"ritual_base",
	"ritual_specialize",
	"ritual_activate_portal",
	"quest_complete",
	"weapon_damage_noschool",
	"resurrect",
	"add_extra_attacks",
	"dodge",
	"evade",
	"parry",
	"block",
	"create_item",
	"weapon",
	"defense",
	"persistent_area_aura",
	"summon",
	"leap",
	"energize",
	"weapon_percent_damage",
	"trigger_missile",
	"open_lock",
	"summon_change_item",
	"apply_area_aura_party",
	"learn_spell",
	"spell_defense",
	"dispel",
	"language",
	"dual_wield",
	"jump",
	"jump_dest",
	"teleport_units_face_caster",
	"skill_step",
	"add_honor",
	"spawn",
	"trade_skill",
	"stealth",
	"detect",
	"trans_door",
	"force_critical_hit",
	"guarantee_hit",
	"enchant_item",
	"enchant_item_temporary",
	"tamecreature",
	"summon_pet",
	"learn_pet_spell",
	"weapon_damage",
	"create_random_item",
	"proficiency",
	"send_event",
	"power_burn",
	"threat",
	"trigger_spell",
	"apply_area_aura_raid",
	"create_mana_gem",
	"heal_max_health",
	"interrupt_cast",
	"distract",
	"pull",
	"pickpocket",
	"add_farsight",
	"untrain_talents",
	"apply_glyph",
	"heal_mechanical",
	"summon_object_wild",
	"script_effect",
	"attack",
	"sanctuary",
	"add_combo_points",
	"create_house",
	"bind_sight",
	"duel",
	"stuck",
	"summon_player",
	"activate_object",
	"gameobject_damage",
	"gameobject_repair",
	"gameobject_set_destruction_state",
	"kill_credit",
	"threat_all",
	"enchant_held_item",
	"force_deselect",
	"self_resurrect",
	"skinning",
	"charge",
	"cast_button",
	"knock_back",
	"disenchant",
	"inebriate",
	"feed_pet",
	"dismiss_pet",
	"reputation",
	"summon_object_slot1",
	"summon_object_slot2",
	"summon_object_slot3",
	"summon_object_slot4",
	"dispel_mechanic",
	"resurrect_pet",
	"destroy_all_totems",
	"durability_damage",
	"unused_112",
	"resurrect_new",
	"attack_me",
	"durability_damage_pct",
	"skin_player_corpse",
	"spirit_heal",
	"skill",
	"apply_area_aura_pet",
	"teleport_graveyard",
	"normalized_weapon_dmg",
	"unused_122",
	"send_taxi",
	"pull_towards",
	"modify_threat_percent",
	"steal_beneficial_buff",
	"prospecting",
	"apply_area_aura_friend",
	"apply_area_aura_enemy",
	"redirect_threat",
	"play_sound",
	"play_music",
	"unlearn_specialization",
	"kill_credit2",
	"call_pet",
	"heal_pct",
	"energize_pct",
	"leap_back",
	"clear_quest",
	"force_cast",
	"force_cast_with_value",
	"trigger_spell_with_value",
	"apply_area_aura_owner",
	"knock_back_dest",
	"pull_towards_dest",
	"activate_rune",
	"quest_fail",
	"trigger_missile_spell_with_value",
	"charge_dest",
	"quest_start",
	"trigger_spell_2",
	"summon_raf_friend",
	"create_tamed_pet",
	"discover_taxi",
	"titan_grip",
	"enchant_item_prismatic",
	"create_item_2",
	"milling",
	"allow_rename_pet",
	"force_cast_2",
	"talent_spec_count",
	"talent_spec_select",
	"unused_163",
	"remove_aura",
}

var spellEffectNamesIndex = indexNames[SpellEffectName](spellEffectNames[:])

func (v SpellEffectName) String() string {
	if int(v) < len(spellEffectNames) {
		return spellEffectNames[v]
	}
	return fmt.Sprintf("spelleffectname(%d)", int(v))
}

// ParseSpellEffectName resolves the snake_case name used in data files.
func ParseSpellEffectName(name string) (SpellEffectName, bool) {
	v, ok := spellEffectNamesIndex[name]
	return v, ok
}
