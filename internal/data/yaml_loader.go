package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlFile is one data file. Any section may be empty.
type yamlFile struct {
	Spells       []yamlSpell       `yaml:"spells"`
	Procs        []yamlProc        `yaml:"procs"`
	Groups       []yamlGroup       `yaml:"groups"`
	Enchantments []yamlEnchantment `yaml:"enchantments"`
	Corrections  []yamlCorrection  `yaml:"corrections"`
}

type yamlSpell struct {
	ID                 uint32           `yaml:"id"`
	Difficulty         uint8            `yaml:"difficulty"`
	Name               string           `yaml:"name"`
	School             []string         `yaml:"school"`
	Family             uint16           `yaml:"family"`
	FamilyFlags        [3]uint32        `yaml:"family_flags"`
	Attributes         []string         `yaml:"attributes"`
	DmgClass           string           `yaml:"dmg_class"`
	Dispel             string           `yaml:"dispel"`
	Mechanic           string           `yaml:"mechanic"`
	CastTime           time.Duration    `yaml:"cast_time"`
	Recovery           time.Duration    `yaml:"recovery"`
	MinRange           float32          `yaml:"min_range"`
	MaxRange           float32          `yaml:"max_range"`
	Speed              float32          `yaml:"speed"`
	Duration           time.Duration    `yaml:"duration"`
	StackAmount        uint32           `yaml:"stack_amount"`
	ProcFlags          []string         `yaml:"proc_flags"`
	ProcChance         uint32           `yaml:"proc_chance"`
	ProcCharges        uint32           `yaml:"proc_charges"`
	Power              string           `yaml:"power"`
	ManaCost           uint32           `yaml:"mana_cost"`
	SpellLevel         int32            `yaml:"spell_level"`
	MaxLevel           int32            `yaml:"max_level"`
	MaxAffectedTargets uint32           `yaml:"max_affected_targets"`
	Diminishing        *yamlDiminishing `yaml:"diminishing"`
	Effects            []yamlEffect     `yaml:"effects"`
}

type yamlDiminishing struct {
	Group string        `yaml:"group"`
	Type  string        `yaml:"type"`
	Curve string        `yaml:"curve"`
	Limit time.Duration `yaml:"limit"`
}

type yamlEffect struct {
	Effect         string        `yaml:"effect"`
	Aura           string        `yaml:"aura"`
	BasePoints     int32         `yaml:"base_points"`
	PointsPerLevel float32       `yaml:"points_per_level"`
	DieSides       int32         `yaml:"die_sides"`
	Bonus          float32       `yaml:"bonus"`
	Multiplier     float32       `yaml:"multiplier"`
	TargetA        string        `yaml:"target_a"`
	TargetB        string        `yaml:"target_b"`
	Radius         float32       `yaml:"radius"`
	ChainTargets   int32         `yaml:"chain_targets"`
	TriggerSpell   uint32        `yaml:"trigger_spell"`
	MiscValue      int32         `yaml:"misc_value"`
	MiscValueB     int32         `yaml:"misc_value_b"`
	Amplitude      time.Duration `yaml:"amplitude"`
	Mechanic       string        `yaml:"mechanic"`
	ItemType       uint32        `yaml:"item_type"`
	ClassMask      [3]uint32     `yaml:"class_mask"`
}

type yamlProc struct {
	SpellID        uint32        `yaml:"spell_id"`
	School         []string      `yaml:"school"`
	Family         uint16        `yaml:"family"`
	FamilyMask     [3]uint32     `yaml:"family_mask"`
	Flags          []string      `yaml:"flags"`
	SpellType      []string      `yaml:"spell_type"`
	Phase          []string      `yaml:"phase"`
	Hit            []string      `yaml:"hit"`
	Attributes     []string      `yaml:"attributes"`
	DisableEffects uint32        `yaml:"disable_effects"`
	PPM            float32       `yaml:"ppm"`
	Chance         float32       `yaml:"chance"`
	Cooldown       time.Duration `yaml:"cooldown"`
	Charges        uint32        `yaml:"charges"`
}

type yamlGroup struct {
	ID      uint32  `yaml:"id"`
	Rule    string  `yaml:"rule"`
	Members []int32 `yaml:"members"`
}

type yamlEnchantment struct {
	ID      uint32 `yaml:"id"`
	Name    string `yaml:"name"`
	Effects []struct {
		Kind   string `yaml:"kind"`
		Amount int32  `yaml:"amount"`
		Spell  uint32 `yaml:"spell"`
	} `yaml:"effects"`
}

type yamlCorrection struct {
	SpellID     uint32  `yaml:"spell_id"`
	Field       string  `yaml:"field"`
	EffectIndex int     `yaml:"effect_index"`
	Value       float64 `yaml:"value"`
	Name        string  `yaml:"name"`
}

// Sink receives loader output. *Builder collects it in memory; the database
// importer writes it to PostgreSQL.
type Sink interface {
	AddSpell(info SpellInfo) error
	AddProc(entry ProcEntry) error
	AddGroupMember(group SpellGroupID, member int32)
	SetStackRule(group SpellGroupID, rule SpellGroupStackRule) error
	AddEnchantment(e EnchantmentInfo) error
	AddCorrection(c Correction)
}

var _ Sink = (*Builder)(nil)

// LoadYAMLDir feeds every *.yaml file of dir into b, in name order.
func LoadYAMLDir(dir string, b Sink) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading data dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)

	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := LoadYAML(raw, b); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	slog.Info("loaded spell data files", "dir", dir, "files", len(files))
	return nil
}

// LoadYAML parses one document and adds its content to b.
func LoadYAML(raw []byte, b Sink) error {
	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	var errs []error
	for i := range f.Spells {
		info, err := f.Spells[i].toInfo()
		if err == nil {
			err = b.AddSpell(info)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("spell %d: %w", f.Spells[i].ID, err))
		}
	}
	for i := range f.Procs {
		entry, err := f.Procs[i].toEntry()
		if err == nil {
			err = b.AddProc(entry)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("proc %d: %w", f.Procs[i].SpellID, err))
		}
	}
	for _, g := range f.Groups {
		for _, m := range g.Members {
			b.AddGroupMember(SpellGroupID(g.ID), m)
		}
		if g.Rule == "" {
			continue
		}
		rule, ok := ParseStackRule(g.Rule)
		if !ok {
			errs = append(errs, fmt.Errorf("group %d: stack rule %q: %w", g.ID, g.Rule, ErrUnknownName))
			continue
		}
		if err := b.SetStackRule(SpellGroupID(g.ID), rule); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range f.Enchantments {
		info := EnchantmentInfo{ID: e.ID, Name: e.Name}
		if len(e.Effects) > MaxSpellEffects {
			errs = append(errs, fmt.Errorf("enchantment %d: %w", e.ID, ErrTooManyEffects))
			continue
		}
		for i, eff := range e.Effects {
			kind, ok := ParseEnchantKind(eff.Kind)
			if !ok {
				errs = append(errs, fmt.Errorf("enchantment %d: kind %q: %w", e.ID, eff.Kind, ErrUnknownName))
				continue
			}
			info.Effects[i] = EnchantmentEffect{Kind: kind, Amount: eff.Amount, Spell: SpellID(eff.Spell)}
		}
		if err := b.AddEnchantment(info); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range f.Corrections {
		field, ok := ParseCorrectionField(c.Field)
		if !ok {
			errs = append(errs, fmt.Errorf("correction for spell %d: field %q: %w", c.SpellID, c.Field, ErrUnknownName))
			continue
		}
		b.AddCorrection(Correction{
			SpellID:     SpellID(c.SpellID),
			Field:       field,
			EffectIndex: c.EffectIndex,
			Value:       c.Value,
			Name:        c.Name,
		})
	}
	return errors.Join(errs...)
}

// ErrUnknownName is returned for names not found in the lookup tables.
var ErrUnknownName = errors.New("unknown name")

func (y *yamlSpell) toInfo() (SpellInfo, error) {
	info := SpellInfo{
		ID:                 SpellID(y.ID),
		Difficulty:         Difficulty(y.Difficulty),
		Name:               y.Name,
		SpellFamilyName:    SpellFamily(y.Family),
		SpellFamilyFlags:   Flag96(y.FamilyFlags),
		CastTime:           y.CastTime,
		RecoveryTime:       y.Recovery,
		MinRange:           y.MinRange,
		MaxRange:           y.MaxRange,
		Speed:              y.Speed,
		Duration:           y.Duration,
		StackAmount:        y.StackAmount,
		ProcChance:         y.ProcChance,
		ProcCharges:        y.ProcCharges,
		ManaCost:           y.ManaCost,
		SpellLevel:         y.SpellLevel,
		MaxLevel:           y.MaxLevel,
		MaxAffectedTargets: y.MaxAffectedTargets,
	}

	var err error
	if info.SchoolMask, err = parseMask(y.School, schoolNames); err != nil {
		return info, err
	}
	if info.Attributes, err = parseMask(y.Attributes, spellAttrNames); err != nil {
		return info, err
	}
	if info.ProcFlags, err = parseMask(y.ProcFlags, procFlagNames); err != nil {
		return info, err
	}
	if info.DmgClass, err = parseName(y.DmgClass, dmgClassNames); err != nil {
		return info, err
	}
	if info.Dispel, err = parseName(y.Dispel, dispelNames); err != nil {
		return info, err
	}
	if info.Mechanic, err = parseName(y.Mechanic, mechanicNames); err != nil {
		return info, err
	}
	if info.PowerType, err = parseName(y.Power, powerNames); err != nil {
		return info, err
	}
	if d := y.Diminishing; d != nil {
		group, ok := ParseDiminishingGroup(d.Group)
		if !ok {
			return info, fmt.Errorf("diminishing group %q: %w", d.Group, ErrUnknownName)
		}
		typ, ok := ParseDiminishingType(d.Type)
		if !ok {
			return info, fmt.Errorf("diminishing type %q: %w", d.Type, ErrUnknownName)
		}
		info.Diminishing = DiminishingInfo{Group: group, Type: typ, Curve: d.Curve, DurationLimit: d.Limit}
	}

	for i := range y.Effects {
		eff, err := y.Effects[i].toInfo()
		if err != nil {
			return info, fmt.Errorf("effect %d: %w", i, err)
		}
		info.Effects = append(info.Effects, eff)
	}
	return info, nil
}

func (y *yamlEffect) toInfo() (SpellEffectInfo, error) {
	e := SpellEffectInfo{
		BasePoints:         y.BasePoints,
		RealPointsPerLevel: y.PointsPerLevel,
		DieSides:           y.DieSides,
		BonusCoefficient:   y.Bonus,
		DamageMultiplier:   y.Multiplier,
		Radius:             y.Radius,
		ChainTargets:       y.ChainTargets,
		TriggerSpell:       SpellID(y.TriggerSpell),
		MiscValue:          y.MiscValue,
		MiscValueB:         y.MiscValueB,
		Amplitude:          y.Amplitude,
		ItemType:           y.ItemType,
		SpellClassMask:     Flag96(y.ClassMask),
	}
	var ok bool
	if e.Effect, ok = ParseSpellEffectName(y.Effect); !ok {
		return e, fmt.Errorf("effect %q: %w", y.Effect, ErrUnknownName)
	}
	if y.Aura != "" {
		if e.ApplyAuraName, ok = ParseAuraType(y.Aura); !ok {
			return e, fmt.Errorf("aura %q: %w", y.Aura, ErrUnknownName)
		}
	}
	if y.TargetA != "" {
		if e.TargetA, ok = ParseTargets(y.TargetA); !ok {
			return e, fmt.Errorf("target_a %q: %w", y.TargetA, ErrUnknownName)
		}
	}
	if y.TargetB != "" {
		if e.TargetB, ok = ParseTargets(y.TargetB); !ok {
			return e, fmt.Errorf("target_b %q: %w", y.TargetB, ErrUnknownName)
		}
	}
	var err error
	if e.Mechanic, err = parseName(y.Mechanic, mechanicNames); err != nil {
		return e, err
	}
	return e, nil
}

func (y *yamlProc) toEntry() (ProcEntry, error) {
	p := ProcEntry{
		SpellID:            SpellID(y.SpellID),
		SpellFamilyName:    SpellFamily(y.Family),
		SpellFamilyMask:    Flag96(y.FamilyMask),
		DisableEffectsMask: y.DisableEffects,
		ProcsPerMinute:     y.PPM,
		Chance:             y.Chance,
		Cooldown:           y.Cooldown,
		Charges:            y.Charges,
	}
	var err error
	if p.SchoolMask, err = parseMask(y.School, schoolNames); err != nil {
		return p, err
	}
	if p.ProcFlags, err = parseMask(y.Flags, procFlagNames); err != nil {
		return p, err
	}
	if p.SpellTypeMask, err = parseMask(y.SpellType, procSpellTypeNames); err != nil {
		return p, err
	}
	if p.SpellPhaseMask, err = parseMask(y.Phase, procPhaseNames); err != nil {
		return p, err
	}
	if p.HitMask, err = parseMask(y.Hit, procHitNames); err != nil {
		return p, err
	}
	if p.AttributesMask, err = parseMask(y.Attributes, procAttrNames); err != nil {
		return p, err
	}
	return p, nil
}

func parseMask[T ~uint8 | ~uint32 | ~uint64](names []string, table map[string]T) (T, error) {
	var mask T
	for _, n := range names {
		v, ok := table[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("%q: %w", n, ErrUnknownName)
		}
		mask |= v
	}
	return mask, nil
}

func parseName[T any](name string, table map[string]T) (T, error) {
	var zero T
	if name == "" {
		return zero, nil
	}
	v, ok := table[strings.ToLower(name)]
	if !ok {
		return zero, fmt.Errorf("%q: %w", name, ErrUnknownName)
	}
	return v, nil
}

var schoolNames = map[string]SchoolMask{
	"normal": SchoolMaskNormal,
	"holy":   SchoolMaskHoly,
	"fire":   SchoolMaskFire,
	"nature": SchoolMaskNature,
	"frost":  SchoolMaskFrost,
	"shadow": SchoolMaskShadow,
	"arcane": SchoolMaskArcane,
	"magic":  SchoolMaskMagic,
	"all":    SchoolMaskAll,
}

var dmgClassNames = map[string]DmgClass{
	"none":   DmgClassNone,
	"magic":  DmgClassMagic,
	"melee":  DmgClassMelee,
	"ranged": DmgClassRanged,
}

var dispelNames = map[string]DispelType{
	"none":         DispelNone,
	"magic":        DispelMagic,
	"curse":        DispelCurse,
	"disease":      DispelDisease,
	"poison":       DispelPoison,
	"stealth":      DispelStealth,
	"invisibility": DispelInvisibility,
	"all":          DispelAll,
}

var powerNames = map[string]PowerType{
	"health":      PowerHealth,
	"mana":        PowerMana,
	"rage":        PowerRage,
	"focus":       PowerFocus,
	"energy":      PowerEnergy,
	"happiness":   PowerHappiness,
	"runes":       PowerRunes,
	"runic_power": PowerRunicPower,
}

var mechanicNames = map[string]Mechanic{
	"none":            MechanicNone,
	"charm":           MechanicCharm,
	"disoriented":     MechanicDisoriented,
	"disarm":          MechanicDisarm,
	"distract":        MechanicDistract,
	"fear":            MechanicFear,
	"grip":            MechanicGrip,
	"root":            MechanicRoot,
	"slow_attack":     MechanicSlowAttack,
	"silence":         MechanicSilence,
	"sleep":           MechanicSleep,
	"snare":           MechanicSnare,
	"stun":            MechanicStun,
	"freeze":          MechanicFreeze,
	"knockout":        MechanicKnockout,
	"bleed":           MechanicBleed,
	"bandage":         MechanicBandage,
	"polymorph":       MechanicPolymorph,
	"banish":          MechanicBanish,
	"shield":          MechanicShield,
	"shackle":         MechanicShackle,
	"mount":           MechanicMount,
	"infected":        MechanicInfected,
	"turn":            MechanicTurn,
	"horror":          MechanicHorror,
	"invulnerability": MechanicInvulnerability,
	"interrupt":       MechanicInterrupt,
	"daze":            MechanicDaze,
	"discovery":       MechanicDiscovery,
	"immune_shield":   MechanicImmuneShield,
	"sapped":          MechanicSapped,
	"enraged":         MechanicEnraged,
}

var procFlagNames = map[string]ProcFlags{
	"killed":                          ProcKilled,
	"kill":                            ProcKill,
	"done_melee_auto_attack":          ProcDoneMeleeAutoAttack,
	"taken_melee_auto_attack":         ProcTakenMeleeAutoAttack,
	"done_spell_melee_dmg_class":      ProcDoneSpellMeleeDmgClass,
	"taken_spell_melee_dmg_class":     ProcTakenSpellMeleeDmgClass,
	"done_ranged_auto_attack":         ProcDoneRangedAutoAttack,
	"taken_ranged_auto_attack":        ProcTakenRangedAutoAttack,
	"done_spell_ranged_dmg_class":     ProcDoneSpellRangedDmgClass,
	"taken_spell_ranged_dmg_class":    ProcTakenSpellRangedDmgClass,
	"done_spell_none_dmg_class_pos":   ProcDoneSpellNoneDmgClassPos,
	"taken_spell_none_dmg_class_pos":  ProcTakenSpellNoneDmgClassPos,
	"done_spell_none_dmg_class_neg":   ProcDoneSpellNoneDmgClassNeg,
	"taken_spell_none_dmg_class_neg":  ProcTakenSpellNoneDmgClassNeg,
	"done_spell_magic_dmg_class_pos":  ProcDoneSpellMagicDmgClassPos,
	"taken_spell_magic_dmg_class_pos": ProcTakenSpellMagicDmgClassPos,
	"done_spell_magic_dmg_class_neg":  ProcDoneSpellMagicDmgClassNeg,
	"taken_spell_magic_dmg_class_neg": ProcTakenSpellMagicDmgClassNeg,
	"done_periodic":                   ProcDonePeriodic,
	"taken_periodic":                  ProcTakenPeriodic,
	"taken_damage":                    ProcTakenDamage,
	"done_trap_activation":            ProcDoneTrapActivation,
	"done_mainhand_attack":            ProcDoneMainhandAttack,
	"done_offhand_attack":             ProcDoneOffhandAttack,
	"death":                           ProcDeath,
	"heartbeat":                       ProcHeartbeat,
}

var procSpellTypeNames = map[string]ProcSpellTypeMask{
	"damage":      ProcSpellTypeDamage,
	"heal":        ProcSpellTypeHeal,
	"no_dmg_heal": ProcSpellTypeNoDmgHeal,
	"all":         ProcSpellTypeMaskAll,
}

var procPhaseNames = map[string]ProcSpellPhaseMask{
	"cast":   ProcSpellPhaseCast,
	"hit":    ProcSpellPhaseHit,
	"finish": ProcSpellPhaseFinish,
	"all":    ProcSpellPhaseMaskAll,
}

var procHitNames = map[string]ProcHitMask{
	"normal":      ProcHitNormal,
	"critical":    ProcHitCritical,
	"miss":        ProcHitMiss,
	"full_resist": ProcHitFullResist,
	"dodge":       ProcHitDodge,
	"parry":       ProcHitParry,
	"block":       ProcHitBlock,
	"evade":       ProcHitEvade,
	"immune":      ProcHitImmune,
	"deflect":     ProcHitDeflect,
	"absorb":      ProcHitAbsorb,
	"reflect":     ProcHitReflect,
	"interrupt":   ProcHitInterrupt,
	"full_block":  ProcHitFullBlock,
}

var procAttrNames = map[string]ProcAttributes{
	"req_exp_or_honor":         ProcAttrReqExpOrHonor,
	"triggered_can_proc":       ProcAttrTriggeredCanProc,
	"req_mana_cost":            ProcAttrReqManaCost,
	"req_spellmod":             ProcAttrReqSpellmod,
	"use_stacks_for_charges":   ProcAttrUseStacksForCharges,
	"reduce_proc_60":           ProcAttrReduceProc60,
	"cant_proc_from_item_cast": ProcAttrCantProcFromItemCast,
}
