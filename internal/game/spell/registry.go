package spell

import (
	"errors"
	"fmt"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
)

// HandleMode is the cast phase an effect handler is invoked under. Every
// handler is called in every phase and must return early outside the
// phases it acts in.
type HandleMode uint8

const (
	HandleLaunch HandleMode = iota
	HandleLaunchTarget
	HandleHit
	HandleHitTarget
)

var handleModeNames = [...]string{"launch", "launch_target", "hit", "hit_target"}

func (m HandleMode) String() string {
	if int(m) < len(handleModeNames) {
		return handleModeNames[m]
	}
	return fmt.Sprintf("handle_mode(%d)", int(m))
}

// EffectHandler executes one spell effect kind. The per-target context
// (unit, object, item, corpse, destination, rolled value) is read from s.
type EffectHandler func(s *Spell, eff *data.SpellEffectInfo, mode HandleMode)

// AuraHandler executes one aura effect kind. Any hook may be nil.
type AuraHandler struct {
	// Apply is called with apply=true when the effect starts and false when
	// it ends; mode says why it ended.
	Apply func(rt *Runtime, eff *aura.Effect, apply bool, mode aura.RemoveMode)
	// Periodic runs on every amplitude tick.
	Periodic func(rt *Runtime, eff *aura.Effect)
	// Proc runs when the owning aura procs and the effect is not disabled.
	Proc func(rt *Runtime, eff *aura.Effect, ev *ProcEventInfo)
}

func (h AuraHandler) isZero() bool {
	return h.Apply == nil && h.Periodic == nil && h.Proc == nil
}

var (
	ErrDuplicateHandler  = errors.New("handler already registered")
	ErrNoHandlers        = errors.New("no handlers registered")
	ErrHandlerOutOfRange = errors.New("handler tag out of range")
)

// RegistryBuilder collects handler declarations. A tag may be declared once;
// later declarations for the same tag are rejected and reported by Build.
type RegistryBuilder struct {
	effects    [data.TotalSpellEffects]EffectHandler
	auras      [data.TotalAuraTypes]AuraHandler
	registered int
	errs       []error
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// RegisterEffect declares the handler for an effect kind.
func (b *RegistryBuilder) RegisterEffect(kind data.SpellEffectName, fn EffectHandler) error {
	var err error
	switch {
	case int(kind) >= data.TotalSpellEffects:
		err = fmt.Errorf("effect %d: %w", kind, ErrHandlerOutOfRange)
	case fn == nil:
		err = fmt.Errorf("effect %s: nil handler", kind)
	case b.effects[kind] != nil:
		err = fmt.Errorf("effect %s: %w", kind, ErrDuplicateHandler)
	}
	if err != nil {
		b.errs = append(b.errs, err)
		return err
	}
	b.effects[kind] = fn
	b.registered++
	return nil
}

// RegisterAura declares the handler for an aura kind.
func (b *RegistryBuilder) RegisterAura(kind data.AuraType, h AuraHandler) error {
	var err error
	switch {
	case int(kind) >= data.TotalAuraTypes:
		err = fmt.Errorf("aura %d: %w", kind, ErrHandlerOutOfRange)
	case h.isZero():
		err = fmt.Errorf("aura %s: empty handler", kind)
	case !b.auras[kind].isZero():
		err = fmt.Errorf("aura %s: %w", kind, ErrDuplicateHandler)
	}
	if err != nil {
		b.errs = append(b.errs, err)
		return err
	}
	b.auras[kind] = h
	b.registered++
	return nil
}

// Build freezes the tables. Any rejected declaration, or no declaration at
// all, fails the build; callers treat that as a fatal startup error.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("building handler registry: %w", err)
	}
	if b.registered == 0 {
		return nil, fmt.Errorf("building handler registry: %w", ErrNoHandlers)
	}
	r := &Registry{}
	for i, fn := range b.effects {
		if fn == nil {
			r.effects[i] = effectUnused
			continue
		}
		r.effects[i] = fn
		r.effectDeclared[i] = true
	}
	for i, h := range b.auras {
		if h.isZero() {
			r.auras[i] = auraUnused
			continue
		}
		r.auras[i] = h
		r.auraDeclared[i] = true
	}
	return r, nil
}

// Registry maps effect and aura kinds to their handlers. It is immutable and
// shared by every map.
type Registry struct {
	effects        [data.TotalSpellEffects]EffectHandler
	auras          [data.TotalAuraTypes]AuraHandler
	effectDeclared [data.TotalSpellEffects]bool
	auraDeclared   [data.TotalAuraTypes]bool
}

// NewRegistry builds the registry from the built-in declaration tables.
func NewRegistry() (*Registry, error) {
	b := NewRegistryBuilder()
	for _, d := range effectDecls {
		_ = b.RegisterEffect(d.kind, d.fn)
	}
	for _, d := range auraDecls {
		_ = b.RegisterAura(d.kind, d.h)
	}
	return b.Build()
}

// Effect returns the handler for kind; undeclared kinds get a no-op.
func (r *Registry) Effect(kind data.SpellEffectName) EffectHandler {
	if int(kind) >= len(r.effects) {
		return effectUnused
	}
	return r.effects[kind]
}

// Aura returns the handler for kind; undeclared kinds get a no-op.
func (r *Registry) Aura(kind data.AuraType) *AuraHandler {
	if int(kind) >= len(r.auras) {
		return &auraUnused
	}
	return &r.auras[kind]
}

func (r *Registry) IsEffectDeclared(kind data.SpellEffectName) bool {
	return int(kind) < len(r.effectDeclared) && r.effectDeclared[kind]
}

func (r *Registry) IsAuraDeclared(kind data.AuraType) bool {
	return int(kind) < len(r.auraDeclared) && r.auraDeclared[kind]
}

// Counts returns how many effect and aura kinds have a real handler.
func (r *Registry) Counts() (effects, auras int) {
	for _, ok := range r.effectDeclared {
		if ok {
			effects++
		}
	}
	for _, ok := range r.auraDeclared {
		if ok {
			auras++
		}
	}
	return effects, auras
}

func effectUnused(*Spell, *data.SpellEffectInfo, HandleMode) {}

var auraUnused = AuraHandler{}
