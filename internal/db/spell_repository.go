package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/spellcore/internal/data"
)

// SpellRepository reads the spell data tables into a data.Sink.
type SpellRepository struct {
	db *pgxpool.Pool
}

func NewSpellRepository(db *pgxpool.Pool) *SpellRepository {
	return &SpellRepository{db: db}
}

type spellKey struct {
	id   uint32
	diff uint8
}

// LoadInto feeds every table into sink in dependency order: spells with
// their effects, procs, groups, enchantments, corrections. Rows the sink
// rejects are collected and returned together.
func (r *SpellRepository) LoadInto(ctx context.Context, sink data.Sink) error {
	effects, err := r.loadEffects(ctx)
	if err != nil {
		return err
	}

	var errs []error
	spells, err := r.loadSpells(ctx, effects)
	if err != nil {
		return err
	}
	for _, info := range spells {
		if err := sink.AddSpell(info); err != nil {
			errs = append(errs, fmt.Errorf("spell %d: %w", info.ID, err))
		}
	}

	procs, err := r.loadProcs(ctx)
	if err != nil {
		return err
	}
	for _, p := range procs {
		if err := sink.AddProc(p); err != nil {
			errs = append(errs, fmt.Errorf("proc %d: %w", p.SpellID, err))
		}
	}

	if err := r.loadGroups(ctx, sink); err != nil {
		return err
	}
	if err := r.loadStackRules(ctx, sink, &errs); err != nil {
		return err
	}
	if err := r.loadEnchantments(ctx, sink, &errs); err != nil {
		return err
	}
	if err := r.loadCorrections(ctx, sink, &errs); err != nil {
		return err
	}

	slog.Info("loaded spell data from database", "spells", len(spells), "procs", len(procs))
	return errors.Join(errs...)
}

func (r *SpellRepository) loadSpells(ctx context.Context, effects map[spellKey][]data.SpellEffectInfo) ([]data.SpellInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, difficulty, name, school_mask, family, family_flags, attributes,
		       dmg_class, dispel, mechanic, cast_time_ms, recovery_ms, min_range, max_range,
		       speed, duration_ms, stack_amount, proc_flags, proc_chance, proc_charges,
		       power_type, mana_cost, spell_level, max_level, max_affected_targets,
		       dr_group, dr_type, dr_curve, dr_limit_ms
		FROM spell
		ORDER BY id, difficulty`)
	if err != nil {
		return nil, fmt.Errorf("querying spells: %w", err)
	}
	defer rows.Close()

	spells := make([]data.SpellInfo, 0, 256)
	for rows.Next() {
		var (
			s                                  data.SpellInfo
			id                                 int64
			diff, school, dmgClass, dispel     int16
			mechanic, power, drGroup, drType   int16
			family                             int32
			familyFlags                        []int64
			attrs, procFlags                   int64
			castMs, recoveryMs, durMs, limitMs int32
			stack, procChance, procCharges     int32
			manaCost, maxTargets               int32
		)
		if err := rows.Scan(&id, &diff, &s.Name, &school, &family, &familyFlags, &attrs,
			&dmgClass, &dispel, &mechanic, &castMs, &recoveryMs, &s.MinRange, &s.MaxRange,
			&s.Speed, &durMs, &stack, &procFlags, &procChance, &procCharges,
			&power, &manaCost, &s.SpellLevel, &s.MaxLevel, &maxTargets,
			&drGroup, &drType, &s.Diminishing.Curve, &limitMs); err != nil {
			return nil, fmt.Errorf("scanning spell row: %w", err)
		}
		s.ID = data.SpellID(id)
		s.Difficulty = data.Difficulty(diff)
		s.SchoolMask = data.SchoolMask(school)
		s.SpellFamilyName = data.SpellFamily(family)
		s.SpellFamilyFlags = toFlag96(familyFlags)
		s.Attributes = data.SpellAttr(attrs)
		s.DmgClass = data.DmgClass(dmgClass)
		s.Dispel = data.DispelType(dispel)
		s.Mechanic = data.Mechanic(mechanic)
		s.CastTime = millis(castMs)
		s.RecoveryTime = millis(recoveryMs)
		s.Duration = millis(durMs)
		s.StackAmount = uint32(stack)
		s.ProcFlags = data.ProcFlags(procFlags)
		s.ProcChance = uint32(procChance)
		s.ProcCharges = uint32(procCharges)
		s.PowerType = data.PowerType(power)
		s.ManaCost = uint32(manaCost)
		s.MaxAffectedTargets = uint32(maxTargets)
		s.Diminishing.Group = data.DiminishingGroup(drGroup)
		s.Diminishing.Type = data.DiminishingReturnsType(drType)
		s.Diminishing.DurationLimit = millis(limitMs)
		s.Effects = effects[spellKey{uint32(id), uint8(diff)}]
		spells = append(spells, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spell rows: %w", err)
	}
	return spells, nil
}

// loadEffects returns effect slots per spell. Missing slots below the highest
// stored index stay empty so indices are preserved.
func (r *SpellRepository) loadEffects(ctx context.Context) (map[spellKey][]data.SpellEffectInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT spell_id, difficulty, effect_index, effect, aura, base_points, points_per_level,
		       die_sides, bonus, multiplier, target_a, target_b, radius, chain_targets,
		       trigger_spell, misc_value, misc_value_b, amplitude_ms, mechanic, item_type, class_mask
		FROM spell_effect
		ORDER BY spell_id, difficulty, effect_index`)
	if err != nil {
		return nil, fmt.Errorf("querying spell effects: %w", err)
	}
	defer rows.Close()

	out := make(map[spellKey][]data.SpellEffectInfo)
	for rows.Next() {
		var (
			e                          data.SpellEffectInfo
			spellID, aura, trigger     int32
			itemType, amplitudeMs      int32
			diff, index, effect        int16
			targetA, targetB, mechanic int16
			classMask                  []int64
		)
		if err := rows.Scan(&spellID, &diff, &index, &effect, &aura, &e.BasePoints, &e.RealPointsPerLevel,
			&e.DieSides, &e.BonusCoefficient, &e.DamageMultiplier, &targetA, &targetB, &e.Radius, &e.ChainTargets,
			&trigger, &e.MiscValue, &e.MiscValueB, &amplitudeMs, &mechanic, &itemType, &classMask); err != nil {
			return nil, fmt.Errorf("scanning spell effect row: %w", err)
		}
		e.Effect = data.SpellEffectName(effect)
		e.ApplyAuraName = data.AuraType(aura)
		e.TargetA = data.Targets(targetA)
		e.TargetB = data.Targets(targetB)
		e.TriggerSpell = data.SpellID(trigger)
		e.Amplitude = millis(amplitudeMs)
		e.Mechanic = data.Mechanic(mechanic)
		e.ItemType = uint32(itemType)
		e.SpellClassMask = toFlag96(classMask)

		key := spellKey{uint32(spellID), uint8(diff)}
		slots := out[key]
		for len(slots) < int(index) {
			slots = append(slots, data.SpellEffectInfo{})
		}
		out[key] = append(slots, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spell effect rows: %w", err)
	}
	return out, nil
}

func (r *SpellRepository) loadProcs(ctx context.Context) ([]data.ProcEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT spell_id, school_mask, family, family_mask, proc_flags, spell_type_mask,
		       spell_phase_mask, hit_mask, attributes_mask, disable_effects_mask,
		       procs_per_minute, chance, cooldown_ms, charges
		FROM spell_proc
		ORDER BY spell_id`)
	if err != nil {
		return nil, fmt.Errorf("querying spell procs: %w", err)
	}
	defer rows.Close()

	var procs []data.ProcEntry
	for rows.Next() {
		var (
			p                           data.ProcEntry
			spellID, family, cooldownMs int32
			charges                     int32
			school, typeMask, phaseMask int16
			familyMask                  []int64
			flags, hit, attrs, disabled int64
		)
		if err := rows.Scan(&spellID, &school, &family, &familyMask, &flags, &typeMask,
			&phaseMask, &hit, &attrs, &disabled,
			&p.ProcsPerMinute, &p.Chance, &cooldownMs, &charges); err != nil {
			return nil, fmt.Errorf("scanning spell proc row: %w", err)
		}
		p.SpellID = data.SpellID(spellID)
		p.SchoolMask = data.SchoolMask(school)
		p.SpellFamilyName = data.SpellFamily(family)
		p.SpellFamilyMask = toFlag96(familyMask)
		p.ProcFlags = data.ProcFlags(flags)
		p.SpellTypeMask = data.ProcSpellTypeMask(typeMask)
		p.SpellPhaseMask = data.ProcSpellPhaseMask(phaseMask)
		p.HitMask = data.ProcHitMask(hit)
		p.AttributesMask = data.ProcAttributes(attrs)
		p.DisableEffectsMask = uint32(disabled)
		p.Cooldown = millis(cooldownMs)
		p.Charges = uint32(charges)
		procs = append(procs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spell proc rows: %w", err)
	}
	return procs, nil
}

func (r *SpellRepository) loadGroups(ctx context.Context, sink data.Sink) error {
	rows, err := r.db.Query(ctx, `SELECT id, member FROM spell_group ORDER BY id, member`)
	if err != nil {
		return fmt.Errorf("querying spell groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, member int32
		if err := rows.Scan(&id, &member); err != nil {
			return fmt.Errorf("scanning spell group row: %w", err)
		}
		sink.AddGroupMember(data.SpellGroupID(id), member)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating spell group rows: %w", err)
	}
	return nil
}

func (r *SpellRepository) loadStackRules(ctx context.Context, sink data.Sink, errs *[]error) error {
	rows, err := r.db.Query(ctx, `SELECT group_id, stack_rule FROM spell_group_stack_rule ORDER BY group_id`)
	if err != nil {
		return fmt.Errorf("querying stack rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int32
			rule int16
		)
		if err := rows.Scan(&id, &rule); err != nil {
			return fmt.Errorf("scanning stack rule row: %w", err)
		}
		if err := sink.SetStackRule(data.SpellGroupID(id), data.SpellGroupStackRule(rule)); err != nil {
			*errs = append(*errs, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating stack rule rows: %w", err)
	}
	return nil
}

func (r *SpellRepository) loadEnchantments(ctx context.Context, sink data.Sink, errs *[]error) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, slot, name, kind, amount, spell
		FROM spell_enchantment
		ORDER BY id, slot`)
	if err != nil {
		return fmt.Errorf("querying enchantments: %w", err)
	}
	defer rows.Close()

	var (
		cur     data.EnchantmentInfo
		pending bool
	)
	flush := func() {
		if !pending {
			return
		}
		if err := sink.AddEnchantment(cur); err != nil {
			*errs = append(*errs, fmt.Errorf("enchantment %d: %w", cur.ID, err))
		}
	}
	for rows.Next() {
		var (
			id, amount, spell int32
			slot, kind        int16
			name              string
		)
		if err := rows.Scan(&id, &slot, &name, &kind, &amount, &spell); err != nil {
			return fmt.Errorf("scanning enchantment row: %w", err)
		}
		if !pending || cur.ID != uint32(id) {
			flush()
			cur = data.EnchantmentInfo{ID: uint32(id), Name: name}
			pending = true
		}
		cur.Effects[slot] = data.EnchantmentEffect{
			Kind:   data.EnchantKind(kind),
			Amount: amount,
			Spell:  data.SpellID(spell),
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating enchantment rows: %w", err)
	}
	flush()
	return nil
}

func (r *SpellRepository) loadCorrections(ctx context.Context, sink data.Sink, errs *[]error) error {
	rows, err := r.db.Query(ctx, `
		SELECT spell_id, field, effect_index, value, name
		FROM spell_correction
		ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying corrections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			spellID     int32
			index       int16
			field, name string
			value       float64
		)
		if err := rows.Scan(&spellID, &field, &index, &value, &name); err != nil {
			return fmt.Errorf("scanning correction row: %w", err)
		}
		f, ok := data.ParseCorrectionField(field)
		if !ok {
			*errs = append(*errs, fmt.Errorf("correction for spell %d: field %q: %w", spellID, field, data.ErrUnknownName))
			continue
		}
		sink.AddCorrection(data.Correction{
			SpellID:     data.SpellID(spellID),
			Field:       f,
			EffectIndex: int(index),
			Value:       value,
			Name:        name,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating correction rows: %w", err)
	}
	return nil
}

// SpellImporter is a data.Sink that queues inserts and writes them in one
// transaction on Flush. Existing rows with the same key are replaced.
type SpellImporter struct {
	db            *pgxpool.Pool
	batch         *pgx.Batch
	spells, procs int
}

var _ data.Sink = (*SpellImporter)(nil)

func NewSpellImporter(db *pgxpool.Pool) *SpellImporter {
	return &SpellImporter{db: db, batch: &pgx.Batch{}}
}

func (im *SpellImporter) AddSpell(s data.SpellInfo) error {
	if len(s.Effects) > data.MaxSpellEffects {
		return fmt.Errorf("spell %d has %d effects: %w", s.ID, len(s.Effects), data.ErrTooManyEffects)
	}
	d := s.Diminishing
	im.batch.Queue(`DELETE FROM spell WHERE id = $1 AND difficulty = $2`, int64(s.ID), int16(s.Difficulty))
	im.batch.Queue(`
		INSERT INTO spell (id, difficulty, name, school_mask, family, family_flags, attributes,
		    dmg_class, dispel, mechanic, cast_time_ms, recovery_ms, min_range, max_range,
		    speed, duration_ms, stack_amount, proc_flags, proc_chance, proc_charges,
		    power_type, mana_cost, spell_level, max_level, max_affected_targets,
		    dr_group, dr_type, dr_curve, dr_limit_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		    $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`,
		int64(s.ID), int16(s.Difficulty), s.Name, int16(s.SchoolMask), int32(s.SpellFamilyName),
		fromFlag96(s.SpellFamilyFlags), int64(s.Attributes),
		int16(s.DmgClass), int16(s.Dispel), int16(s.Mechanic), ms(s.CastTime), ms(s.RecoveryTime),
		s.MinRange, s.MaxRange, s.Speed, ms(s.Duration), int32(s.StackAmount), int64(s.ProcFlags),
		int32(s.ProcChance), int32(s.ProcCharges), int16(s.PowerType), int32(s.ManaCost),
		s.SpellLevel, s.MaxLevel, int32(s.MaxAffectedTargets),
		int16(d.Group), int16(d.Type), d.Curve, ms(d.DurationLimit))

	for i := range s.Effects {
		e := &s.Effects[i]
		if !e.IsEffect() {
			continue
		}
		mult := e.DamageMultiplier
		if mult == 0 {
			mult = 1
		}
		im.batch.Queue(`
			INSERT INTO spell_effect (spell_id, difficulty, effect_index, effect, aura, base_points,
			    points_per_level, die_sides, bonus, multiplier, target_a, target_b, radius,
			    chain_targets, trigger_spell, misc_value, misc_value_b, amplitude_ms, mechanic,
			    item_type, class_mask)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			    $18, $19, $20, $21)`,
			int64(s.ID), int16(s.Difficulty), int16(i), int16(e.Effect), int32(e.ApplyAuraName), e.BasePoints,
			e.RealPointsPerLevel, e.DieSides, e.BonusCoefficient, mult, int16(e.TargetA), int16(e.TargetB), e.Radius,
			e.ChainTargets, int64(e.TriggerSpell), e.MiscValue, e.MiscValueB, ms(e.Amplitude), int16(e.Mechanic),
			int64(e.ItemType), fromFlag96(e.SpellClassMask))
	}
	im.spells++
	return nil
}

func (im *SpellImporter) AddProc(p data.ProcEntry) error {
	im.batch.Queue(`
		INSERT INTO spell_proc (spell_id, school_mask, family, family_mask, proc_flags, spell_type_mask,
		    spell_phase_mask, hit_mask, attributes_mask, disable_effects_mask, procs_per_minute,
		    chance, cooldown_ms, charges)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (spell_id) DO UPDATE SET
		    school_mask = EXCLUDED.school_mask, family = EXCLUDED.family,
		    family_mask = EXCLUDED.family_mask, proc_flags = EXCLUDED.proc_flags,
		    spell_type_mask = EXCLUDED.spell_type_mask, spell_phase_mask = EXCLUDED.spell_phase_mask,
		    hit_mask = EXCLUDED.hit_mask, attributes_mask = EXCLUDED.attributes_mask,
		    disable_effects_mask = EXCLUDED.disable_effects_mask,
		    procs_per_minute = EXCLUDED.procs_per_minute, chance = EXCLUDED.chance,
		    cooldown_ms = EXCLUDED.cooldown_ms, charges = EXCLUDED.charges`,
		int64(p.SpellID), int16(p.SchoolMask), int32(p.SpellFamilyName), fromFlag96(p.SpellFamilyMask),
		int64(p.ProcFlags), int16(p.SpellTypeMask), int16(p.SpellPhaseMask), int64(p.HitMask),
		int64(p.AttributesMask), int64(p.DisableEffectsMask), p.ProcsPerMinute, p.Chance,
		ms(p.Cooldown), int32(p.Charges))
	im.procs++
	return nil
}

func (im *SpellImporter) AddGroupMember(group data.SpellGroupID, member int32) {
	im.batch.Queue(`INSERT INTO spell_group (id, member) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		int64(group), member)
}

func (im *SpellImporter) SetStackRule(group data.SpellGroupID, rule data.SpellGroupStackRule) error {
	im.batch.Queue(`
		INSERT INTO spell_group_stack_rule (group_id, stack_rule) VALUES ($1, $2)
		ON CONFLICT (group_id) DO UPDATE SET stack_rule = EXCLUDED.stack_rule`,
		int64(group), int16(rule))
	return nil
}

func (im *SpellImporter) AddEnchantment(e data.EnchantmentInfo) error {
	im.batch.Queue(`DELETE FROM spell_enchantment WHERE id = $1`, int64(e.ID))
	for slot, eff := range e.Effects {
		if eff.Kind == 0 {
			continue
		}
		im.batch.Queue(`
			INSERT INTO spell_enchantment (id, slot, name, kind, amount, spell)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			int64(e.ID), int16(slot), e.Name, int16(eff.Kind), eff.Amount, int64(eff.Spell))
	}
	return nil
}

func (im *SpellImporter) AddCorrection(c data.Correction) {
	im.batch.Queue(`
		INSERT INTO spell_correction (spell_id, field, effect_index, value, name)
		VALUES ($1, $2, $3, $4, $5)`,
		int64(c.SpellID), c.Field.String(), int16(c.EffectIndex), c.Value, c.Name)
}

// Flush writes every queued statement in one transaction and resets the
// importer.
func (im *SpellImporter) Flush(ctx context.Context) error {
	batch := im.batch
	im.batch = &pgx.Batch{}
	if batch.Len() == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, im.db, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for i := range batch.Len() {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("statement %d: %w", i, err)
			}
		}
		return br.Close()
	})
	if err != nil {
		return fmt.Errorf("importing spell data: %w", err)
	}
	slog.Info("imported spell data", "spells", im.spells, "procs", im.procs, "statements", batch.Len())
	im.spells, im.procs = 0, 0
	return nil
}

func millis(v int32) time.Duration { return time.Duration(v) * time.Millisecond }

func ms(d time.Duration) int32 { return int32(d.Milliseconds()) }

func toFlag96(v []int64) data.Flag96 {
	var f data.Flag96
	for i := range min(len(v), len(f)) {
		f[i] = uint32(v[i])
	}
	return f
}

func fromFlag96(f data.Flag96) []int64 {
	return []int64{int64(f[0]), int64(f[1]), int64(f[2])}
}
