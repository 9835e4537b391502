package data

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

var (
	ErrDuplicateSpell   = errors.New("duplicate spell")
	ErrDuplicateProc    = errors.New("duplicate proc entry")
	ErrTooManyEffects   = errors.New("too many effects")
	ErrUnknownEffect    = errors.New("effect kind out of range")
	ErrUnknownAura      = errors.New("aura type out of range")
	ErrBadStackRule     = errors.New("invalid stack rule")
	ErrCatalogPublished = errors.New("catalog already published")
)

type spellKey struct {
	id   SpellID
	diff Difficulty
}

// Catalog is the published, read-only spell data. It is safe for concurrent
// reads from every map.
type Catalog struct {
	spells   map[spellKey]*SpellInfo
	ids      []SpellID
	procs    map[SpellID]*ProcEntry
	groups   *SpellGroups
	enchants map[uint32]*EnchantmentInfo
}

// Spell returns the normal-difficulty definition or nil.
func (c *Catalog) Spell(id SpellID) *SpellInfo {
	return c.spells[spellKey{id, DifficultyNormal}]
}

// SpellFor returns the definition for a difficulty, falling back to normal.
func (c *Catalog) SpellFor(id SpellID, diff Difficulty) *SpellInfo {
	if s, ok := c.spells[spellKey{id, diff}]; ok {
		return s
	}
	return c.Spell(id)
}

func (c *Catalog) Proc(id SpellID) *ProcEntry { return c.procs[id] }

func (c *Catalog) Groups() *SpellGroups { return c.groups }

func (c *Catalog) Enchantment(id uint32) *EnchantmentInfo { return c.enchants[id] }

func (c *Catalog) SpellCount() int { return len(c.spells) }

func (c *Catalog) ProcCount() int { return len(c.procs) }

// SpellIDs returns the distinct spell ids in ascending order.
func (c *Catalog) SpellIDs() []SpellID { return c.ids }

// Builder accumulates loader output and publishes it once.
type Builder struct {
	spells      map[spellKey]*SpellInfo
	procs       map[SpellID]ProcEntry
	groups      *SpellGroups
	enchants    map[uint32]*EnchantmentInfo
	corrections []Correction
	published   bool
}

func NewBuilder() *Builder {
	return &Builder{
		spells:   make(map[spellKey]*SpellInfo),
		procs:    make(map[SpellID]ProcEntry),
		groups:   newSpellGroups(),
		enchants: make(map[uint32]*EnchantmentInfo),
	}
}

// AddSpell stores a definition. Effect indices are assigned from slice order.
func (b *Builder) AddSpell(info SpellInfo) error {
	if b.published {
		return ErrCatalogPublished
	}
	key := spellKey{info.ID, info.Difficulty}
	if _, ok := b.spells[key]; ok {
		return fmt.Errorf("spell %d difficulty %d: %w", info.ID, info.Difficulty, ErrDuplicateSpell)
	}
	if len(info.Effects) > MaxSpellEffects {
		return fmt.Errorf("spell %d has %d effects: %w", info.ID, len(info.Effects), ErrTooManyEffects)
	}
	effects := make([]SpellEffectInfo, len(info.Effects))
	copy(effects, info.Effects)
	for i := range effects {
		e := &effects[i]
		e.Index = i
		if e.Effect >= TotalSpellEffects {
			return fmt.Errorf("spell %d effect %d kind %d: %w", info.ID, i, e.Effect, ErrUnknownEffect)
		}
		if e.ApplyAuraName >= TotalAuraTypes {
			return fmt.Errorf("spell %d effect %d aura %d: %w", info.ID, i, e.ApplyAuraName, ErrUnknownAura)
		}
		if e.DamageMultiplier == 0 {
			e.DamageMultiplier = 1
		}
	}
	info.Effects = effects
	b.spells[key] = &info
	return nil
}

func (b *Builder) AddProc(entry ProcEntry) error {
	if b.published {
		return ErrCatalogPublished
	}
	if _, ok := b.procs[entry.SpellID]; ok {
		return fmt.Errorf("spell %d: %w", entry.SpellID, ErrDuplicateProc)
	}
	// spell events without a phase would also match the cast phase
	if entry.SpellPhaseMask == 0 && entry.ProcFlags&ProcReqSpellPhaseMask != 0 {
		entry.SpellPhaseMask = ProcSpellPhaseHit
	}
	b.procs[entry.SpellID] = entry
	return nil
}

// AddGroupMember adds a spell to a group; a negative member pulls in every
// member of group -member.
func (b *Builder) AddGroupMember(group SpellGroupID, member int32) {
	b.groups.members[group] = append(b.groups.members[group], member)
}

func (b *Builder) SetStackRule(group SpellGroupID, rule SpellGroupStackRule) error {
	if rule >= maxStackRule {
		return fmt.Errorf("group %d rule %d: %w", group, rule, ErrBadStackRule)
	}
	b.groups.rules[group] = rule
	return nil
}

func (b *Builder) AddEnchantment(e EnchantmentInfo) error {
	if b.published {
		return ErrCatalogPublished
	}
	if _, ok := b.enchants[e.ID]; ok {
		slog.Warn("duplicate enchantment, keeping first", "enchantment", e.ID)
		return nil
	}
	b.enchants[e.ID] = &e
	return nil
}

func (b *Builder) AddCorrection(c Correction) {
	b.corrections = append(b.corrections, c)
}

// Publish applies corrections, derives custom attributes and flattens
// groups. The builder cannot be used afterwards.
func (b *Builder) Publish() (*Catalog, error) {
	if b.published {
		return nil, ErrCatalogPublished
	}
	b.published = true

	var errs []error
	for _, c := range b.corrections {
		applied := false
		for key, info := range b.spells {
			if key.id != c.SpellID {
				continue
			}
			applied = true
			if err := c.apply(info); err != nil {
				errs = append(errs, fmt.Errorf("correcting spell %d: %w", c.SpellID, err))
			}
		}
		if !applied {
			slog.Warn("correction for unknown spell skipped", "spell", c.SpellID)
		}
	}

	cat := &Catalog{
		spells:   b.spells,
		procs:    make(map[SpellID]*ProcEntry, len(b.procs)),
		groups:   b.groups,
		enchants: b.enchants,
	}

	seen := make(map[SpellID]struct{})
	for key, info := range b.spells {
		deriveCustomAttributes(info)
		info.Diminishing = deriveDiminishing(info)
		if _, ok := seen[key.id]; !ok {
			seen[key.id] = struct{}{}
			cat.ids = append(cat.ids, key.id)
		}
	}
	slices.Sort(cat.ids)

	for id, entry := range b.procs {
		if cat.Spell(id) == nil {
			slog.Warn("proc entry for unknown spell skipped", "spell", id)
			continue
		}
		e := entry
		cat.procs[id] = &e
	}
	for _, id := range cat.ids {
		info := cat.Spell(id)
		if info == nil || info.ProcFlags == 0 || !hasProcTriggerAura(info) {
			continue
		}
		if _, ok := cat.procs[id]; !ok {
			e := defaultProcEntry(info)
			cat.procs[id] = &e
		}
	}

	for group := range b.groups.rules {
		if _, ok := b.groups.members[group]; !ok {
			slog.Warn("stack rule for empty spell group", "group", group)
		}
	}
	b.groups.publish(cat.Spell)

	for _, id := range cat.ids {
		info := cat.Spell(id)
		for i := range info.Effects {
			if t := info.Effects[i].TriggerSpell; t != 0 && cat.Spell(t) == nil {
				slog.Warn("spell references unknown trigger spell", "spell", id, "effect", i, "trigger", t)
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	slog.Info("spell catalog published",
		"spells", len(cat.spells),
		"procs", len(cat.procs),
		"groups", len(b.groups.flat),
		"enchantments", len(cat.enchants))
	return cat, nil
}
