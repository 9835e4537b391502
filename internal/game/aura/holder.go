package aura

import (
	"log/slog"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

// EffectHandler runs aura effect side effects. OnStart and OnExit are
// paired for every effect; OnActionTime is the periodic tick.
type EffectHandler interface {
	OnStart(eff *Effect)
	OnActionTime(eff *Effect)
	OnExit(eff *Effect, mode RemoveMode)
}

// ApplyResult is the outcome of Holder.Apply.
type ApplyResult uint8

const (
	Applied   ApplyResult = iota // new aura added
	Refreshed                    // same spell and caster: duration reset
	Stacked                      // same spell and caster: stack added and duration reset
	Rejected                     // lost a stacking decision against an active aura
)

func (r ApplyResult) String() string {
	switch r {
	case Applied:
		return "applied"
	case Refreshed:
		return "refreshed"
	case Stacked:
		return "stacked"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Holder owns the active auras of one unit and enforces stacking rules
// between them. It is touched only from the owning map's tick.
type Holder struct {
	owner   world.ObjectID
	groups  *data.SpellGroups
	handler EffectHandler

	auras  []*Aura // application order
	nextID uint64
	now    time.Duration

	dr *DiminishingTracker
}

// NewHolder creates an empty holder. groups may be nil when no stack rules
// are loaded.
func NewHolder(owner world.ObjectID, groups *data.SpellGroups, handler EffectHandler) *Holder {
	return &Holder{
		owner:   owner,
		groups:  groups,
		handler: handler,
		dr:      NewDiminishingTracker(),
	}
}

func (h *Holder) Owner() world.ObjectID { return h.owner }

// Diminishing returns the owner's diminishing returns state.
func (h *Holder) Diminishing() *DiminishingTracker { return h.dr }

// Apply adds a to the unit at game time now, resolving conflicts with
// active auras first. On Refreshed and Stacked the existing aura is kept
// and a is discarded; callers should use Find to reach it.
func (h *Holder) Apply(a *Aura, now time.Duration) ApplyResult {
	h.now = now

	if existing := h.Find(a.Spell.ID, a.Caster); existing != nil {
		return h.refresh(existing, a, now)
	}

	var replaced []*Aura
	for _, existing := range h.auras {
		if existing.removed {
			continue
		}
		switch h.decide(existing, a) {
		case keepBoth:
		case replaceExisting:
			replaced = append(replaced, existing)
		case rejectNew:
			slog.Debug("aura rejected by stacking rule",
				"owner", h.owner,
				"spell", a.Spell.ID,
				"blockedBy", existing.Spell.ID)
			return Rejected
		}
	}
	for _, old := range replaced {
		h.Remove(old, RemoveReplaced)
	}

	h.nextID++
	a.ID = h.nextID
	a.Owner = h.owner
	a.AppliedAt = now
	if !a.IsPermanent() {
		a.ExpiresAt = now + a.Duration
	}
	for _, e := range a.Effects {
		if e != nil && e.Amplitude > 0 {
			e.nextTick = now + e.Amplitude
		}
	}
	h.auras = append(h.auras, a)
	if a.DRGroup != data.DRGroupNone {
		h.dr.auraApplied(a.DRGroup)
	}
	for _, e := range a.Effects {
		if e != nil {
			h.handler.OnStart(e)
		}
	}
	return Applied
}

// refresh handles a reapplication by the same caster.
func (h *Holder) refresh(existing, a *Aura, now time.Duration) ApplyResult {
	existing.Duration = a.Duration
	if !existing.IsPermanent() {
		existing.ExpiresAt = now + existing.Duration
	}
	existing.Charges = a.Charges

	maxStacks := existing.Spell.StackAmount
	if maxStacks <= 1 || existing.Stacks >= maxStacks {
		return Refreshed
	}

	for _, e := range existing.Effects {
		if e != nil {
			h.handler.OnExit(e, RemoveReapply)
		}
	}
	existing.Stacks++
	for i, e := range existing.Effects {
		if e != nil && a.Effects[i] != nil {
			e.BaseAmount = a.Effects[i].BaseAmount
		}
	}
	for _, e := range existing.Effects {
		if e != nil {
			h.handler.OnStart(e)
		}
	}
	return Stacked
}

type decision uint8

const (
	keepBoth decision = iota
	replaceExisting
	rejectNew
)

// decide applies same-spell and group stack rules between an active aura
// and a newcomer.
func (h *Holder) decide(existing, incoming *Aura) decision {
	if existing.Spell.ID == incoming.Spell.ID {
		// same spell, different caster
		if incoming.Spell.HasAttribute(data.AttrStackForDifferentCasters) || !incoming.Spell.IsPositive() {
			return keepBoth
		}
		return replaceExisting
	}
	if h.groups == nil {
		return keepBoth
	}

	rule, group := h.groups.CheckStackRules(incoming.Spell.ID, existing.Spell.ID)
	switch rule {
	case data.StackRuleExclusive:
		return replaceExisting
	case data.StackRuleExclusiveFromSameCaster:
		if existing.Caster == incoming.Caster {
			return replaceExisting
		}
	case data.StackRuleExclusiveHighest:
		return compareStrength(existing, incoming, nil)
	case data.StackRuleExclusiveSameEffect:
		types := h.groups.SameEffectAuraTypes(group)
		if len(types) == 0 {
			return keepBoth
		}
		return compareStrength(existing, incoming, types)
	}
	return keepBoth
}

// compareStrength keeps the stronger aura, ties going to the newcomer.
// Auras without an effect of the compared types do not conflict.
func compareStrength(existing, incoming *Aura, types []data.AuraType) decision {
	old, ok1 := existing.strength(types)
	neu, ok2 := incoming.strength(types)
	if !ok1 || !ok2 {
		return keepBoth
	}
	if neu >= old {
		return replaceExisting
	}
	return rejectNew
}

// Remove takes a off the unit and runs its exit handlers.
func (h *Holder) Remove(a *Aura, mode RemoveMode) {
	if a == nil || a.removed {
		return
	}
	a.removed = true
	for i, x := range h.auras {
		if x == a {
			h.auras = append(h.auras[:i], h.auras[i+1:]...)
			break
		}
	}
	if a.DRGroup != data.DRGroupNone {
		h.dr.auraRemoved(a.DRGroup, h.now)
	}
	for _, e := range a.Effects {
		if e != nil {
			h.handler.OnExit(e, mode)
		}
	}
}

// RemoveIf removes every aura matching pred and returns how many went.
func (h *Holder) RemoveIf(pred func(*Aura) bool, mode RemoveMode) int {
	var victims []*Aura
	for _, a := range h.auras {
		if pred(a) {
			victims = append(victims, a)
		}
	}
	for _, a := range victims {
		h.Remove(a, mode)
	}
	return len(victims)
}

// RemoveBySpell removes auras of spell; caster 0 matches any caster.
func (h *Holder) RemoveBySpell(spell data.SpellID, caster world.ObjectID, mode RemoveMode) int {
	return h.RemoveIf(func(a *Aura) bool {
		return a.Spell.ID == spell && (caster == 0 || a.Caster == caster)
	}, mode)
}

// RemoveOnDeath drops everything that does not persist through death.
func (h *Holder) RemoveOnDeath() int {
	return h.RemoveIf(func(a *Aura) bool {
		return !a.Spell.HasAttribute(data.AttrDeathPersistent) && !a.Spell.IsPassive()
	}, RemoveDeath)
}

// DropCharge consumes one charge and removes the aura on the last one.
// Auras without charges are untouched.
func (h *Holder) DropCharge(a *Aura) {
	if a.Charges == 0 {
		return
	}
	a.Charges--
	if a.Charges == 0 {
		h.Remove(a, RemoveCharges)
	}
}

// Find returns the aura of spell applied by caster.
func (h *Holder) Find(spell data.SpellID, caster world.ObjectID) *Aura {
	for _, a := range h.auras {
		if a.Spell.ID == spell && a.Caster == caster && !a.removed {
			return a
		}
	}
	return nil
}

// HasSpell reports whether any caster's aura of spell is active.
func (h *Holder) HasSpell(spell data.SpellID) bool {
	for _, a := range h.auras {
		if a.Spell.ID == spell {
			return true
		}
	}
	return false
}

// Auras returns a snapshot of active auras in application order.
func (h *Holder) Auras() []*Aura {
	out := make([]*Aura, len(h.auras))
	copy(out, h.auras)
	return out
}

func (h *Holder) Len() int { return len(h.auras) }

// EffectsOfType returns active effects of aura type t in application order.
func (h *Holder) EffectsOfType(t data.AuraType) []*Effect {
	var out []*Effect
	for _, a := range h.auras {
		for _, e := range a.Effects {
			if e != nil && e.Type == t {
				out = append(out, e)
			}
		}
	}
	return out
}

// HasAuraType reports whether any active effect has type t.
func (h *Holder) HasAuraType(t data.AuraType) bool {
	for _, a := range h.auras {
		if a.HasEffectType(t) {
			return true
		}
	}
	return false
}

// TotalAmount sums the amounts of every effect of type t.
func (h *Holder) TotalAmount(t data.AuraType) int32 {
	var sum int32
	for _, e := range h.EffectsOfType(t) {
		sum += e.Amount()
	}
	return sum
}

// Update fires due periodic ticks and expires auras at game time now.
func (h *Holder) Update(now time.Duration) {
	h.now = now
	for _, a := range h.Auras() {
		if a.removed {
			continue
		}
		for _, e := range a.Effects {
			if e == nil || e.Amplitude <= 0 {
				continue
			}
			for !a.removed && e.nextTick <= now && (a.IsPermanent() || e.nextTick <= a.ExpiresAt) {
				e.TickCount++
				e.nextTick += e.Amplitude
				h.handler.OnActionTime(e)
			}
		}
		if !a.removed && !a.IsPermanent() && now >= a.ExpiresAt {
			h.Remove(a, RemoveExpire)
		}
	}
}
