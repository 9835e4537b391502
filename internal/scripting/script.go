package scripting

import (
	"log/slog"

	"github.com/Shopify/go-lua"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

// Script adapts the Lua hooks of one spell to spell.Script. A failing hook
// is logged and treated as if it were absent.
type Script struct {
	vm    *VM
	spell data.SpellID
	hooks hookSet
}

var _ spell.Script = (*Script)(nil)

// CheckCast calls check_cast(ctx). The hook returns nil to allow the cast or
// a result name such as "bad_targets".
func (s *Script) CheckCast(sp *spell.Spell) spell.SpellCastResult {
	if s.hooks&hasCheckCast == 0 {
		return spell.SpellCastOK
	}
	res := spell.SpellCastOK
	err := s.vm.call(s.spell, hookCheckCast, 1, func(l *lua.State) {
		pushCast(l, sp)
	}, func(l *lua.State) {
		if l.IsNil(-1) {
			return
		}
		name, _ := l.ToString(-1)
		r, ok := spell.ParseCastResult(name)
		if !ok {
			slog.Warn("spell script returned unknown cast result", "spell", s.spell, "result", name)
			return
		}
		res = r
	})
	if err != nil {
		slog.Error("spell script failed", "hook", hookCheckCast, "error", err)
		return spell.SpellCastOK
	}
	return res
}

// OnEffectHit calls on_effect_hit(ctx). The hook returns prevent and an
// optional replacement for ctx.value.
func (s *Script) OnEffectHit(sp *spell.Spell, effIndex int, mode spell.HandleMode) bool {
	if s.hooks&hasOnEffectHit == 0 {
		return false
	}
	prevent := false
	err := s.vm.call(s.spell, hookOnEffectHit, 2, func(l *lua.State) {
		pushCast(l, sp)
		setInt(l, "effect_index", effIndex)
		setString(l, "mode", mode.String())
		setInt(l, "value", int(sp.EffectValue))
		if eff := effectAt(sp, effIndex); eff != nil {
			setString(l, "effect", eff.Effect.String())
		}
	}, func(l *lua.State) {
		prevent = l.ToBoolean(-2)
		if v, ok := l.ToNumber(-1); ok {
			sp.EffectValue = int32(v)
		}
	})
	if err != nil {
		slog.Error("spell script failed", "hook", hookOnEffectHit, "error", err)
		return false
	}
	return prevent
}

func (s *Script) AfterHit(sp *spell.Spell) {
	if s.hooks&hasAfterHit == 0 {
		return
	}
	err := s.vm.call(s.spell, hookAfterHit, 0, func(l *lua.State) {
		pushCast(l, sp)
	}, func(*lua.State) {})
	if err != nil {
		slog.Error("spell script failed", "hook", hookAfterHit, "error", err)
	}
}

// CheckProc calls check_proc(ctx); nil counts as true.
func (s *Script) CheckProc(a *aura.Aura, ev *spell.ProcEventInfo) bool {
	if s.hooks&hasCheckProc == 0 {
		return true
	}
	allow := true
	err := s.vm.call(s.spell, hookCheckProc, 1, func(l *lua.State) {
		setInt(l, "spell", int(a.Spell.ID))
		setInt(l, "owner", int(a.Owner))
		setInt(l, "caster", int(a.Caster))
		setInt(l, "stacks", int(a.Stacks))
		setInt(l, "charges", int(a.Charges))
		setInt(l, "type_mask", int(ev.TypeMask))
		setInt(l, "hit_mask", int(ev.HitMask))
		setBool(l, "triggered", ev.Triggered)
		if ev.Spell != nil {
			setInt(l, "event_spell", int(ev.Spell.ID))
		}
		if ev.Damage != nil {
			setInt(l, "damage", int(ev.Damage.Damage))
		}
		if ev.Heal != nil {
			setInt(l, "heal", int(ev.Heal.Heal))
		}
		pushUnit(l, "actor", ev.Actor)
		pushUnit(l, "target", ev.ProcTarget)
	}, func(l *lua.State) {
		if !l.IsNil(-1) {
			allow = l.ToBoolean(-1)
		}
	})
	if err != nil {
		slog.Error("spell script failed", "hook", hookCheckProc, "error", err)
		return true
	}
	return allow
}

func pushCast(l *lua.State, sp *spell.Spell) {
	setInt(l, "spell", int(sp.Info.ID))
	setBool(l, "triggered", sp.IsTriggered())
	pushUnit(l, "caster", sp.Caster())
	target := sp.UnitTarget()
	if target == nil && sp.Targets().Unit != 0 {
		target = sp.Runtime().Map().Unit(sp.Targets().Unit)
	}
	pushUnit(l, "target", target)
}

// pushUnit sets ctx[key] to a snapshot table of u, or leaves it nil.
func pushUnit(l *lua.State, key string, u *world.Unit) {
	if u == nil {
		return
	}
	l.NewTable()
	setInt(l, "id", int(u.ID()))
	setString(l, "name", u.Name())
	setInt(l, "level", int(u.Level))
	setInt(l, "health", int(u.Health()))
	setInt(l, "max_health", int(u.MaxHealth()))
	setInt(l, "mana", int(u.Power(data.PowerMana)))
	setBool(l, "alive", u.IsAlive())
	setBool(l, "player", u.IsPlayer())
	l.SetField(-2, key)
}

func effectAt(sp *spell.Spell, i int) *data.SpellEffectInfo {
	if i < 0 || i >= len(sp.Info.Effects) {
		return nil
	}
	return &sp.Info.Effects[i]
}
