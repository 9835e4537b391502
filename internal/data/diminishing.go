package data

import (
	"fmt"
	"time"
)

// DiminishingGroup tags spells whose durations diminish together.
type DiminishingGroup uint8

const (
	DRGroupNone DiminishingGroup = iota
	DRGroupRoot
	DRGroupStun
	DRGroupRandomStun
	DRGroupOpeningStun
	DRGroupDisorient
	DRGroupFear
	DRGroupHorror
	DRGroupMindControl
	DRGroupSilence
	DRGroupDisarm
	DRGroupSleep
	DRGroupBanish
	DRGroupCyclone
	DRGroupCharge
	DRGroupTaunt
	DRGroupLimitOnly

	maxDRGroup
)

var drGroupNames = [maxDRGroup]string{
	"none", "root", "stun", "random_stun", "opening_stun", "disorient", "fear", "horror",
	"mind_control", "silence", "disarm", "sleep", "banish", "cyclone", "charge", "taunt",
	"limit_only",
}

func (g DiminishingGroup) String() string {
	if g < maxDRGroup {
		return drGroupNames[g]
	}
	return fmt.Sprintf("dr_group(%d)", int(g))
}

// ParseDiminishingGroup resolves the name used in data files.
func ParseDiminishingGroup(name string) (DiminishingGroup, bool) {
	for i, n := range drGroupNames {
		if n == name {
			return DiminishingGroup(i), true
		}
	}
	return 0, false
}

// DiminishingReturnsType selects which targets the group diminishes on.
type DiminishingReturnsType uint8

const (
	DRTypeNone DiminishingReturnsType = iota
	DRTypePlayer
	DRTypeAll
)

// ParseDiminishingType resolves the name used in data files.
func ParseDiminishingType(name string) (DiminishingReturnsType, bool) {
	switch name {
	case "", "none":
		return DRTypeNone, true
	case "player":
		return DRTypePlayer, true
	case "all":
		return DRTypeAll, true
	}
	return 0, false
}

// DefaultDRCurve names the curve used when a spell names none.
const DefaultDRCurve = "default"

// pvpDurationLimit caps control effects on players.
const pvpDurationLimit = 10 * time.Second

// DiminishingInfo is the diminishing-returns tag of a spell.
type DiminishingInfo struct {
	Group DiminishingGroup
	Type  DiminishingReturnsType
	// Curve names a configured returns curve; empty means DefaultDRCurve.
	Curve         string
	DurationLimit time.Duration
}

func (d DiminishingInfo) CurveName() string {
	if d.Curve == "" {
		return DefaultDRCurve
	}
	return d.Curve
}

// deriveDiminishing fills the tag from the spell's auras when the data left
// it empty.
func deriveDiminishing(s *SpellInfo) DiminishingInfo {
	if s.Diminishing.Group != DRGroupNone {
		return s.Diminishing
	}
	if s.IsPositive() {
		return DiminishingInfo{}
	}

	switch s.Mechanic {
	case MechanicSleep:
		return DiminishingInfo{Group: DRGroupSleep, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
	case MechanicBanish:
		return DiminishingInfo{Group: DRGroupBanish, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
	case MechanicHorror:
		return DiminishingInfo{Group: DRGroupHorror, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
	case MechanicPolymorph, MechanicSapped:
		return DiminishingInfo{Group: DRGroupDisorient, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
	}

	for i := range s.Effects {
		e := &s.Effects[i]
		if !e.IsAura() {
			continue
		}
		switch e.ApplyAuraName {
		case AuraModStun:
			return DiminishingInfo{Group: DRGroupStun, Type: DRTypeAll, DurationLimit: pvpDurationLimit}
		case AuraModRoot:
			return DiminishingInfo{Group: DRGroupRoot, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModFear:
			return DiminishingInfo{Group: DRGroupFear, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModConfuse:
			return DiminishingInfo{Group: DRGroupDisorient, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModCharm, AuraAoeCharm, AuraModPossess:
			return DiminishingInfo{Group: DRGroupMindControl, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModSilence, AuraModPacifySilence:
			return DiminishingInfo{Group: DRGroupSilence, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModDisarm:
			return DiminishingInfo{Group: DRGroupDisarm, Type: DRTypePlayer, DurationLimit: pvpDurationLimit}
		case AuraModTaunt:
			return DiminishingInfo{Group: DRGroupTaunt, Type: DRTypeAll, Curve: "taunt"}
		}
	}
	return DiminishingInfo{}
}
