package spell

import (
	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
)

// Script holds per-spell special cases so generic handlers stay generic.
// Embed ScriptBase and override what is needed.
type Script interface {
	// CheckCast can veto a cast; return SpellCastOK to allow it.
	CheckCast(s *Spell) SpellCastResult
	// OnEffectHit runs before the generic handler of an effect. Returning
	// true prevents the generic handler. s.EffectValue may be rewritten.
	OnEffectHit(s *Spell, effIndex int, mode HandleMode) (prevent bool)
	// AfterHit runs once per unit target after all its effects.
	AfterHit(s *Spell)
	// CheckProc can veto a proc of an aura of this spell.
	CheckProc(a *aura.Aura, ev *ProcEventInfo) bool
}

// ScriptBase is the no-op Script.
type ScriptBase struct{}

func (ScriptBase) CheckCast(*Spell) SpellCastResult          { return SpellCastOK }
func (ScriptBase) OnEffectHit(*Spell, int, HandleMode) bool  { return false }
func (ScriptBase) AfterHit(*Spell)                           {}
func (ScriptBase) CheckProc(*aura.Aura, *ProcEventInfo) bool { return true }

// ScriptRegistry maps spell ids to their scripts. Fill it before building the
// engine; it is read-only afterwards.
type ScriptRegistry struct {
	scripts map[data.SpellID][]Script
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{scripts: make(map[data.SpellID][]Script)}
}

// Add attaches a script to a spell. Several scripts run in insertion order.
func (r *ScriptRegistry) Add(id data.SpellID, s Script) {
	r.scripts[id] = append(r.scripts[id], s)
}

func (r *ScriptRegistry) For(id data.SpellID) []Script {
	return r.scripts[id]
}

// Len returns the number of scripted spells.
func (r *ScriptRegistry) Len() int { return len(r.scripts) }
