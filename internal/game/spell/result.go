package spell

import "fmt"

// SpellCastResult is the outcome code reported to the caster. Failures never
// surface as Go errors: a failed cast goes straight to StateFinished.
type SpellCastResult uint8

const (
	SpellCastOK SpellCastResult = iota
	SpellFailedAffectingCombat
	SpellFailedBadTargets
	SpellFailedCasterDead
	SpellFailedDontReport
	SpellFailedImmune
	SpellFailedInterrupted
	SpellFailedLineOfSight
	SpellFailedNoPower
	SpellFailedNoValidTargets
	SpellFailedNotReady
	SpellFailedOutOfRange
	SpellFailedPacified
	SpellFailedSilenced
	SpellFailedSpellInProgress
	SpellFailedStunned
	SpellFailedTargetEnemy
	SpellFailedTargetFriendly
	SpellFailedTargetNotDead
	SpellFailedTargetsDead
	SpellFailedTooClose
	SpellFailedUnknownSpell
	spellCastResultCount
)

var castResultNames = [spellCastResultCount]string{
	"ok",
	"affecting_combat",
	"bad_targets",
	"caster_dead",
	"dont_report",
	"immune",
	"interrupted",
	"line_of_sight",
	"no_power",
	"no_valid_targets",
	"not_ready",
	"out_of_range",
	"pacified",
	"silenced",
	"spell_in_progress",
	"stunned",
	"target_enemy",
	"target_friendly",
	"target_not_dead",
	"targets_dead",
	"too_close",
	"unknown_spell",
}

func (r SpellCastResult) String() string {
	if r < spellCastResultCount {
		return castResultNames[r]
	}
	return fmt.Sprintf("cast_result(%d)", int(r))
}

// ParseCastResult resolves a result name, as returned by Lua check hooks.
func ParseCastResult(name string) (SpellCastResult, bool) {
	for i, n := range castResultNames {
		if n == name {
			return SpellCastResult(i), true
		}
	}
	return 0, false
}
