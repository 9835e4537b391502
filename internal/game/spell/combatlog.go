package spell

import (
	"log/slog"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// CombatLog receives everything the presentation layer would show. The
// engine never encodes wire formats; a network layer implements this.
type CombatLog interface {
	CastResult(caster world.ObjectID, spell data.SpellID, result SpellCastResult)
	SpellGo(s *Spell)
	SpellMiss(caster, target world.ObjectID, spell data.SpellID, miss combat.SpellMissInfo)
	Damage(info *combat.DamageInfo)
	Heal(info *combat.HealInfo)
	AuraApplied(a *aura.Aura, result aura.ApplyResult)
	AuraRemoved(a *aura.Aura, mode aura.RemoveMode)
	Death(victim, killer world.ObjectID)
}

// SlogCombatLog writes the combat log at debug level.
type SlogCombatLog struct {
	Logger *slog.Logger
}

func (l SlogCombatLog) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l SlogCombatLog) CastResult(caster world.ObjectID, spell data.SpellID, result SpellCastResult) {
	if result == SpellCastOK || result == SpellFailedDontReport {
		return
	}
	l.logger().Debug("cast failed", "caster", caster, "spell", spell, "result", result)
}

func (l SlogCombatLog) SpellGo(s *Spell) {
	l.logger().Debug("spell go",
		"caster", s.CasterID(),
		"spell", s.Info.ID,
		"targets", len(s.records),
		"triggered", s.triggered)
}

func (l SlogCombatLog) SpellMiss(caster, target world.ObjectID, spell data.SpellID, miss combat.SpellMissInfo) {
	l.logger().Debug("spell miss", "caster", caster, "target", target, "spell", spell, "miss", miss)
}

func (l SlogCombatLog) Damage(info *combat.DamageInfo) {
	var spell data.SpellID
	if info.Spell != nil {
		spell = info.Spell.ID
	}
	l.logger().Debug("damage",
		"attacker", unitID(info.Attacker),
		"victim", unitID(info.Victim),
		"spell", spell,
		"damage", info.Damage,
		"absorbed", info.Absorbed,
		"resisted", info.Resisted,
		"crit", info.Crit,
		"periodic", info.Periodic)
}

func (l SlogCombatLog) Heal(info *combat.HealInfo) {
	var spell data.SpellID
	if info.Spell != nil {
		spell = info.Spell.ID
	}
	l.logger().Debug("heal",
		"healer", unitID(info.Healer),
		"target", unitID(info.Target),
		"spell", spell,
		"heal", info.Heal,
		"effective", info.Effective,
		"crit", info.Crit)
}

func (l SlogCombatLog) AuraApplied(a *aura.Aura, result aura.ApplyResult) {
	l.logger().Debug("aura", "owner", a.Owner, "caster", a.Caster, "spell", a.Spell.ID, "result", result, "stacks", a.Stacks)
}

func (l SlogCombatLog) AuraRemoved(a *aura.Aura, mode aura.RemoveMode) {
	l.logger().Debug("aura removed", "owner", a.Owner, "spell", a.Spell.ID, "mode", mode)
}

func (l SlogCombatLog) Death(victim, killer world.ObjectID) {
	l.logger().Debug("death", "victim", victim, "killer", killer)
}

func unitID(u *world.Unit) world.ObjectID {
	if u == nil {
		return 0
	}
	return u.ID()
}
