package data

import (
	"errors"
	"fmt"
	"time"
)

// CorrectionField enumerates the only spell fields a post-load correction may
// touch.
type CorrectionField uint8

const (
	CorrectMaxAffectedTargets CorrectionField = iota + 1
	CorrectSpeed
	CorrectMaxRange
	CorrectCastTime
	CorrectDuration
	CorrectStackAmount
	CorrectProcChance
	CorrectProcCharges
	CorrectAddAttribute
	CorrectRemoveAttribute
	CorrectAddCustomAttr
	CorrectEffectRadius
	CorrectEffectBasePoints
	CorrectEffectTargetA
	CorrectEffectTargetB
	CorrectEffectTriggerSpell
	CorrectEffectAmplitude
	CorrectEffectChainTargets
)

var correctionFieldNames = map[string]CorrectionField{
	"max_affected_targets": CorrectMaxAffectedTargets,
	"speed":                CorrectSpeed,
	"max_range":            CorrectMaxRange,
	"cast_time_ms":         CorrectCastTime,
	"duration_ms":          CorrectDuration,
	"stack_amount":         CorrectStackAmount,
	"proc_chance":          CorrectProcChance,
	"proc_charges":         CorrectProcCharges,
	"add_attribute":        CorrectAddAttribute,
	"remove_attribute":     CorrectRemoveAttribute,
	"add_custom_attribute": CorrectAddCustomAttr,
	"effect_radius":        CorrectEffectRadius,
	"effect_base_points":   CorrectEffectBasePoints,
	"effect_target_a":      CorrectEffectTargetA,
	"effect_target_b":      CorrectEffectTargetB,
	"effect_trigger_spell": CorrectEffectTriggerSpell,
	"effect_amplitude_ms":  CorrectEffectAmplitude,
	"effect_chain_targets": CorrectEffectChainTargets,
}

// ParseCorrectionField resolves the name used in data files and the
// spell_correction table.
func ParseCorrectionField(name string) (CorrectionField, bool) {
	f, ok := correctionFieldNames[name]
	return f, ok
}

func (f CorrectionField) String() string {
	for name, v := range correctionFieldNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("correction_field(%d)", uint8(f))
}

var (
	ErrUnknownSpell       = errors.New("unknown spell")
	ErrBadCorrectionIndex = errors.New("correction effect index out of range")
	ErrBadCorrectionName  = errors.New("unknown correction name")
)

// Correction overrides one field of one spell after loading.
type Correction struct {
	SpellID     SpellID
	Field       CorrectionField
	EffectIndex int
	Value       float64
	// Name carries attribute and selector names.
	Name string
}

func (c Correction) apply(s *SpellInfo) error {
	var eff *SpellEffectInfo
	if c.Field >= CorrectEffectRadius {
		eff = s.Effect(c.EffectIndex)
		if eff == nil {
			return fmt.Errorf("spell %d effect %d: %w", s.ID, c.EffectIndex, ErrBadCorrectionIndex)
		}
	}

	switch c.Field {
	case CorrectMaxAffectedTargets:
		s.MaxAffectedTargets = uint32(c.Value)
	case CorrectSpeed:
		s.Speed = float32(c.Value)
	case CorrectMaxRange:
		s.MaxRange = float32(c.Value)
	case CorrectCastTime:
		s.CastTime = time.Duration(c.Value) * time.Millisecond
	case CorrectDuration:
		s.Duration = time.Duration(c.Value) * time.Millisecond
	case CorrectStackAmount:
		s.StackAmount = uint32(c.Value)
	case CorrectProcChance:
		s.ProcChance = uint32(c.Value)
	case CorrectProcCharges:
		s.ProcCharges = uint32(c.Value)
	case CorrectAddAttribute, CorrectRemoveAttribute:
		attr, ok := ParseSpellAttr(c.Name)
		if !ok {
			return fmt.Errorf("attribute %q: %w", c.Name, ErrBadCorrectionName)
		}
		if c.Field == CorrectAddAttribute {
			s.Attributes |= attr
		} else {
			s.Attributes &^= attr
		}
	case CorrectAddCustomAttr:
		attr, ok := ParseCustomAttr(c.Name)
		if !ok {
			return fmt.Errorf("custom attribute %q: %w", c.Name, ErrBadCorrectionName)
		}
		s.AttributesCu |= attr
	case CorrectEffectRadius:
		eff.Radius = float32(c.Value)
	case CorrectEffectBasePoints:
		eff.BasePoints = int32(c.Value)
	case CorrectEffectTargetA, CorrectEffectTargetB:
		t, ok := ParseTargets(c.Name)
		if !ok {
			return fmt.Errorf("target %q: %w", c.Name, ErrBadCorrectionName)
		}
		if c.Field == CorrectEffectTargetA {
			eff.TargetA = t
		} else {
			eff.TargetB = t
		}
	case CorrectEffectTriggerSpell:
		eff.TriggerSpell = SpellID(c.Value)
	case CorrectEffectAmplitude:
		eff.Amplitude = time.Duration(c.Value) * time.Millisecond
	case CorrectEffectChainTargets:
		eff.ChainTargets = int32(c.Value)
	default:
		return fmt.Errorf("correction field %d: %w", c.Field, ErrBadCorrectionName)
	}
	return nil
}
