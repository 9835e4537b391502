package data

// EnchantKind is what one enchantment slot does.
type EnchantKind uint8

const (
	EnchantNone EnchantKind = iota
	// EnchantCombatSpell casts Spell on melee hits with Amount percent chance.
	EnchantCombatSpell
	EnchantDamage
	EnchantEquipSpell
	EnchantResistance
	EnchantStat
	EnchantUseSpell
)

// ParseEnchantKind resolves the name used in data files.
func ParseEnchantKind(name string) (EnchantKind, bool) {
	switch name {
	case "", "none":
		return EnchantNone, true
	case "combat_spell":
		return EnchantCombatSpell, true
	case "damage":
		return EnchantDamage, true
	case "equip_spell":
		return EnchantEquipSpell, true
	case "resistance":
		return EnchantResistance, true
	case "stat":
		return EnchantStat, true
	case "use_spell":
		return EnchantUseSpell, true
	}
	return 0, false
}

type EnchantmentEffect struct {
	Kind   EnchantKind
	Amount int32
	Spell  SpellID
}

// EnchantmentInfo is an item enchantment an effect can put on an item.
type EnchantmentInfo struct {
	ID      uint32
	Name    string
	Effects [MaxSpellEffects]EnchantmentEffect
}
