package combat

import "github.com/udisondev/spellcore/internal/world"

// GrayLevel returns the highest victim level that grants a unit of the
// given level no experience.
func GrayLevel(level int32) int32 {
	switch {
	case level <= 5:
		return 0
	case level <= 39:
		return level - 5 - level/10
	case level <= 59:
		return level - 1 - level/5
	default:
		return level - 9
	}
}

// IsHonorOrXPTarget reports whether killing victim would reward attacker
// with experience or honor. Players always count; creatures count unless
// flagged otherwise or gray to the attacker.
func IsHonorOrXPTarget(attacker, victim *world.Unit) bool {
	if attacker == nil || victim == nil || attacker == victim {
		return false
	}
	if victim.IsPlayer() {
		return true
	}
	if victim.NoXP {
		return false
	}
	return victim.Level > GrayLevel(attacker.Level)
}
