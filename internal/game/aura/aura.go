package aura

import (
	"slices"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

// RemoveMode tells an effect handler why its aura is going away.
type RemoveMode uint8

const (
	RemoveDefault  RemoveMode = iota
	RemoveExpire              // duration elapsed
	RemoveCancel              // dispelled or cancelled
	RemoveReplaced            // lost a stacking decision
	RemoveCharges             // last charge consumed
	RemoveDeath               // owner died
	RemoveReapply             // stack count changed, effect re-applied right after
)

// Aura is a persistent spell instance attached to one unit.
type Aura struct {
	ID       uint64
	Spell    *data.SpellInfo
	Caster   world.ObjectID
	Owner    world.ObjectID
	CastItem world.ObjectID

	Effects [data.MaxSpellEffects]*Effect

	Duration  time.Duration // <= 0: permanent
	AppliedAt time.Duration
	ExpiresAt time.Duration
	Stacks    uint32
	Charges   uint32

	// DRGroup is set when the duration was reduced by diminishing returns.
	DRGroup data.DiminishingGroup

	procReadyAt time.Duration
	removed     bool
}

// Effect is one aura effect slot of an Aura.
type Effect struct {
	Aura      *Aura
	Index     int
	Type      data.AuraType
	Misc      int32
	MiscB     int32
	Amplitude time.Duration
	Trigger   data.SpellID

	// BaseAmount is the per-stack magnitude. Handlers may rewrite it, for
	// example absorbs consuming their shield.
	BaseAmount int32
	TickCount  int
	nextTick   time.Duration
}

// Amount is the magnitude including stacks.
func (e *Effect) Amount() int32 {
	stacks := max(e.Aura.Stacks, 1)
	return e.BaseAmount * int32(stacks)
}

// Info returns the spell effect descriptor the aura effect was built from.
func (e *Effect) Info() *data.SpellEffectInfo {
	return e.Aura.Spell.Effect(e.Index)
}

// New builds an aura for spell on owner. Only effects set in effectMask with
// an aura-applying kind get an Effect; amounts[i] is the rolled value.
func New(spell *data.SpellInfo, caster, owner world.ObjectID, effectMask uint8, amounts [data.MaxSpellEffects]int32) *Aura {
	a := &Aura{
		Spell:    spell,
		Caster:   caster,
		Owner:    owner,
		Duration: spell.Duration,
		Stacks:   1,
		Charges:  spell.ProcCharges,
	}
	for i := range spell.Effects {
		info := &spell.Effects[i]
		if effectMask&(1<<i) == 0 || !(info.IsAura() || info.IsAreaAuraEffect() || info.Effect == data.EffectPersistentAreaAura) {
			continue
		}
		a.Effects[i] = &Effect{
			Aura:       a,
			Index:      i,
			Type:       info.ApplyAuraName,
			Misc:       info.MiscValue,
			MiscB:      info.MiscValueB,
			Amplitude:  info.Amplitude,
			Trigger:    info.TriggerSpell,
			BaseAmount: amounts[i],
		}
	}
	return a
}

// IsPermanent reports auras without an expiry.
func (a *Aura) IsPermanent() bool { return a.Duration <= 0 }

func (a *Aura) IsRemoved() bool { return a.removed }

// Remaining returns the time left at now.
func (a *Aura) Remaining(now time.Duration) time.Duration {
	if a.IsPermanent() {
		return -1
	}
	return max(a.ExpiresAt-now, 0)
}

// HasEffectType reports whether any effect slot has aura type t.
func (a *Aura) HasEffectType(t data.AuraType) bool {
	for _, e := range a.Effects {
		if e != nil && e.Type == t {
			return true
		}
	}
	return false
}

// EffectMask returns the bit set of populated effect slots.
func (a *Aura) EffectMask() uint8 {
	var m uint8
	for i, e := range a.Effects {
		if e != nil {
			m |= 1 << i
		}
	}
	return m
}

// IsProcOnCooldown reports whether the aura's proc cooldown is running.
func (a *Aura) IsProcOnCooldown(now time.Duration) bool { return now < a.procReadyAt }

// StartProcCooldown blocks procs until now+d.
func (a *Aura) StartProcCooldown(now, d time.Duration) { a.procReadyAt = now + d }

// strength is the largest absolute amount among effects, optionally only
// those whose type is in types.
func (a *Aura) strength(types []data.AuraType) (int32, bool) {
	var (
		best  int32
		found bool
	)
	for _, e := range a.Effects {
		if e == nil {
			continue
		}
		if len(types) > 0 && !slices.Contains(types, e.Type) {
			continue
		}
		v := e.Amount()
		if v < 0 {
			v = -v
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}
