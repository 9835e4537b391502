package data

import "time"

// ProcFlags is the event type mask of a proc.
type ProcFlags uint32

const (
	ProcNone                         ProcFlags = 0
	ProcKilled                       ProcFlags = 0x00000001
	ProcKill                         ProcFlags = 0x00000002
	ProcDoneMeleeAutoAttack          ProcFlags = 0x00000004
	ProcTakenMeleeAutoAttack         ProcFlags = 0x00000008
	ProcDoneSpellMeleeDmgClass       ProcFlags = 0x00000010
	ProcTakenSpellMeleeDmgClass      ProcFlags = 0x00000020
	ProcDoneRangedAutoAttack         ProcFlags = 0x00000040
	ProcTakenRangedAutoAttack        ProcFlags = 0x00000080
	ProcDoneSpellRangedDmgClass      ProcFlags = 0x00000100
	ProcTakenSpellRangedDmgClass     ProcFlags = 0x00000200
	ProcDoneSpellNoneDmgClassPos     ProcFlags = 0x00000400
	ProcTakenSpellNoneDmgClassPos    ProcFlags = 0x00000800
	ProcDoneSpellNoneDmgClassNeg     ProcFlags = 0x00001000
	ProcTakenSpellNoneDmgClassNeg    ProcFlags = 0x00002000
	ProcDoneSpellMagicDmgClassPos    ProcFlags = 0x00004000
	ProcTakenSpellMagicDmgClassPos   ProcFlags = 0x00008000
	ProcDoneSpellMagicDmgClassNeg    ProcFlags = 0x00010000
	ProcTakenSpellMagicDmgClassNeg   ProcFlags = 0x00020000
	ProcDonePeriodic                 ProcFlags = 0x00040000
	ProcTakenPeriodic                ProcFlags = 0x00080000
	ProcTakenDamage                  ProcFlags = 0x00100000
	ProcDoneTrapActivation           ProcFlags = 0x00200000
	ProcDoneMainhandAttack           ProcFlags = 0x00400000
	ProcDoneOffhandAttack            ProcFlags = 0x00800000
	ProcDeath                        ProcFlags = 0x01000000
	ProcHeartbeat                    ProcFlags = 0x02000000

	// ProcAlwaysTriggerMask skips every per-spell check.
	ProcAlwaysTriggerMask = ProcHeartbeat | ProcKill | ProcKilled | ProcDeath

	ProcMeleeMask = ProcDoneMeleeAutoAttack | ProcTakenMeleeAutoAttack |
		ProcDoneSpellMeleeDmgClass | ProcTakenSpellMeleeDmgClass |
		ProcDoneMainhandAttack | ProcDoneOffhandAttack

	ProcRangedMask = ProcDoneRangedAutoAttack | ProcTakenRangedAutoAttack |
		ProcDoneSpellRangedDmgClass | ProcTakenSpellRangedDmgClass

	ProcSpellMask = ProcDoneSpellMeleeDmgClass | ProcTakenSpellMeleeDmgClass |
		ProcDoneSpellRangedDmgClass | ProcTakenSpellRangedDmgClass |
		ProcDoneSpellNoneDmgClassPos | ProcTakenSpellNoneDmgClassPos |
		ProcDoneSpellNoneDmgClassNeg | ProcTakenSpellNoneDmgClassNeg |
		ProcDoneSpellMagicDmgClassPos | ProcTakenSpellMagicDmgClassPos |
		ProcDoneSpellMagicDmgClassNeg | ProcTakenSpellMagicDmgClassNeg

	ProcPeriodicMask = ProcDonePeriodic | ProcTakenPeriodic

	ProcDoneHitMask = ProcDoneMeleeAutoAttack | ProcDoneRangedAutoAttack |
		ProcDoneSpellMeleeDmgClass | ProcDoneSpellRangedDmgClass |
		ProcDoneSpellNoneDmgClassPos | ProcDoneSpellNoneDmgClassNeg |
		ProcDoneSpellMagicDmgClassPos | ProcDoneSpellMagicDmgClassNeg |
		ProcDonePeriodic | ProcDoneMainhandAttack | ProcDoneOffhandAttack

	ProcTakenHitMask = ProcTakenMeleeAutoAttack | ProcTakenRangedAutoAttack |
		ProcTakenSpellMeleeDmgClass | ProcTakenSpellRangedDmgClass |
		ProcTakenSpellNoneDmgClassPos | ProcTakenSpellNoneDmgClassNeg |
		ProcTakenSpellMagicDmgClassPos | ProcTakenSpellMagicDmgClassNeg |
		ProcTakenPeriodic | ProcTakenDamage

	// ProcReqSpellPhaseMask are the done-events that carry a spell phase.
	ProcReqSpellPhaseMask = ProcSpellMask & ProcDoneHitMask
)

// ProcSpellTypeMask filters by what the triggering spell did.
type ProcSpellTypeMask uint8

const (
	ProcSpellTypeNone      ProcSpellTypeMask = 0
	ProcSpellTypeDamage    ProcSpellTypeMask = 0x1
	ProcSpellTypeHeal      ProcSpellTypeMask = 0x2
	ProcSpellTypeNoDmgHeal ProcSpellTypeMask = 0x4
	ProcSpellTypeMaskAll                     = ProcSpellTypeDamage | ProcSpellTypeHeal | ProcSpellTypeNoDmgHeal
)

// ProcSpellPhaseMask filters by the cast phase that raised the event.
type ProcSpellPhaseMask uint8

const (
	ProcSpellPhaseNone    ProcSpellPhaseMask = 0
	ProcSpellPhaseCast    ProcSpellPhaseMask = 0x1
	ProcSpellPhaseHit     ProcSpellPhaseMask = 0x2
	ProcSpellPhaseFinish  ProcSpellPhaseMask = 0x4
	ProcSpellPhaseMaskAll                    = ProcSpellPhaseCast | ProcSpellPhaseHit | ProcSpellPhaseFinish
)

// ProcHitMask filters by the hit outcome.
type ProcHitMask uint32

const (
	ProcHitNone       ProcHitMask = 0
	ProcHitNormal     ProcHitMask = 0x0001
	ProcHitCritical   ProcHitMask = 0x0002
	ProcHitMiss       ProcHitMask = 0x0004
	ProcHitFullResist ProcHitMask = 0x0008
	ProcHitDodge      ProcHitMask = 0x0010
	ProcHitParry      ProcHitMask = 0x0020
	ProcHitBlock      ProcHitMask = 0x0040
	ProcHitEvade      ProcHitMask = 0x0080
	ProcHitImmune     ProcHitMask = 0x0100
	ProcHitDeflect    ProcHitMask = 0x0200
	ProcHitAbsorb     ProcHitMask = 0x0400
	ProcHitReflect    ProcHitMask = 0x0800
	ProcHitInterrupt  ProcHitMask = 0x1000
	ProcHitFullBlock  ProcHitMask = 0x2000
	ProcHitMaskAll    ProcHitMask = 0x3FFF
)

// ProcAttributes are behaviour switches of a proc entry.
type ProcAttributes uint32

const (
	ProcAttrReqExpOrHonor        ProcAttributes = 0x01
	ProcAttrTriggeredCanProc     ProcAttributes = 0x02
	ProcAttrReqManaCost          ProcAttributes = 0x04
	ProcAttrReqSpellmod          ProcAttributes = 0x08
	ProcAttrUseStacksForCharges  ProcAttributes = 0x10
	ProcAttrReduceProc60         ProcAttributes = 0x80
	ProcAttrCantProcFromItemCast ProcAttributes = 0x100
)

// ProcEntry is the matching rule of one proc-capable spell.
type ProcEntry struct {
	SpellID            SpellID
	SchoolMask         SchoolMask
	SpellFamilyName    SpellFamily
	SpellFamilyMask    Flag96
	ProcFlags          ProcFlags
	SpellTypeMask      ProcSpellTypeMask
	SpellPhaseMask     ProcSpellPhaseMask
	HitMask            ProcHitMask
	AttributesMask     ProcAttributes
	DisableEffectsMask uint32
	ProcsPerMinute     float32
	Chance             float32
	Cooldown           time.Duration
	Charges            uint32
}

func (p *ProcEntry) HasAttribute(a ProcAttributes) bool { return p.AttributesMask&a != 0 }

// IsEffectDisabled reports whether effect i must not run its proc handler.
func (p *ProcEntry) IsEffectDisabled(i int) bool {
	return p.DisableEffectsMask&(1<<uint(i)) != 0
}

// defaultProcEntry is used for spells that carry proc flags but no authored
// entry.
func defaultProcEntry(s *SpellInfo) ProcEntry {
	return ProcEntry{
		SpellID:        s.ID,
		ProcFlags:      s.ProcFlags,
		SpellTypeMask:  ProcSpellTypeMaskAll,
		SpellPhaseMask: ProcSpellPhaseHit,
		Chance:         float32(s.ProcChance),
		Charges:        s.ProcCharges,
	}
}

// hasProcTriggerAura reports spells able to react to proc events.
func hasProcTriggerAura(s *SpellInfo) bool {
	for i := range s.Effects {
		if s.Effects[i].IsAura() && s.Effects[i].ApplyAuraName.IsProcTrigger() {
			return true
		}
	}
	return false
}
