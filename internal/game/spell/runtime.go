package spell

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/aura"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// RuntimeOptions configures a map runtime. Zero fields get defaults.
type RuntimeOptions struct {
	Math combat.Math
	Log  CombatLog
}

type cooldownKey struct {
	unit  world.ObjectID
	spell data.SpellID
}

// Runtime is the per-map spell state: active casts, auras, cooldowns. It is
// driven only from the map's tick goroutine.
type Runtime struct {
	engine   *Engine
	registry *Registry
	m        *world.Map
	math     combat.Math
	log      CombatLog

	holders   map[world.ObjectID]*aura.Holder
	casts     map[uint64]*Spell
	preparing map[world.ObjectID]*Spell
	cooldowns map[cooldownKey]time.Duration
	dynAuras  map[world.ObjectID]map[world.ObjectID]*aura.Aura

	nextCastID    uint64
	procDepth     int
	lastHeartbeat time.Duration
}

// NewRuntime binds the engine to a map and registers the runtime as the
// map's event handler, updater and remove listener.
func (e *Engine) NewRuntime(m *world.Map, opts RuntimeOptions) *Runtime {
	rt := &Runtime{
		engine:    e,
		registry:  e.registry,
		m:         m,
		math:      opts.Math,
		log:       opts.Log,
		holders:   make(map[world.ObjectID]*aura.Holder),
		casts:     make(map[uint64]*Spell),
		preparing: make(map[world.ObjectID]*Spell),
		cooldowns: make(map[cooldownKey]time.Duration),
		dynAuras:  make(map[world.ObjectID]map[world.ObjectID]*aura.Aura),
	}
	if rt.math == nil {
		rt.math = combat.NewCalculator(m.Rand())
	}
	if rt.log == nil {
		rt.log = SlogCombatLog{}
	}
	m.SetEventHandler(rt)
	m.AddUpdater(rt)
	m.AddRemoveListener(rt)
	return rt
}

func (rt *Runtime) Map() *world.Map      { return rt.m }
func (rt *Runtime) Engine() *Engine      { return rt.engine }
func (rt *Runtime) Math() combat.Math    { return rt.math }
func (rt *Runtime) CombatLog() CombatLog { return rt.log }

// Cast returns a live cast by id. Released casts are gone.
func (rt *Runtime) Cast(id uint64) *Spell { return rt.casts[id] }

// ActiveCasts returns the number of casts not yet released.
func (rt *Runtime) ActiveCasts() int { return len(rt.casts) }

// CurrentCast returns the cast the unit is preparing, if any.
func (rt *Runtime) CurrentCast(unit world.ObjectID) *Spell { return rt.preparing[unit] }

// CastSpell starts a cast of spell id by caster. The returned Spell is nil
// only when the spell is unknown.
func (rt *Runtime) CastSpell(caster *world.Unit, id data.SpellID, targets CastTargets, opts CastOptions) (*Spell, SpellCastResult) {
	info := rt.engine.catalog.Spell(id)
	if info == nil {
		slog.Warn("cast of unknown spell", "caster", caster.ID(), "spell", id)
		rt.log.CastResult(caster.ID(), id, SpellFailedUnknownSpell)
		return nil, SpellFailedUnknownSpell
	}
	rt.nextCastID++
	s := &Spell{
		ID:        rt.nextCastID,
		Info:      info,
		rt:        rt,
		caster:    caster,
		targets:   targets,
		opts:      opts,
		scripts:   rt.engine.scripts.For(id),
		triggered: opts.Triggered,
	}
	rt.casts[s.ID] = s
	if opts.Parent != nil {
		opts.Parent.children++
	}
	return s, s.prepare()
}

// triggerSpell casts id as a triggered child of parent. Missing spells are
// logged and skipped.
func (rt *Runtime) triggerSpell(caster *world.Unit, id data.SpellID, targets CastTargets, parent *Spell, opts CastOptions) *Spell {
	if id == 0 || caster == nil {
		return nil
	}
	if rt.engine.catalog.Spell(id) == nil {
		var from data.SpellID
		if parent != nil {
			from = parent.Info.ID
		}
		slog.Warn("trigger spell not found", "spell", id, "from", from)
		return nil
	}
	opts.Triggered = true
	opts.Parent = parent
	if parent != nil {
		opts.TriggeredBy = parent.Info
		if opts.OriginalCaster == 0 {
			opts.OriginalCaster = parent.caster.ID()
		}
	}
	s, _ := rt.CastSpell(caster, id, targets, opts)
	return s
}

// release forgets a cast once it and its children are done and tells the
// parent.
func (rt *Runtime) release(s *Spell) {
	if s.released || !s.IsDeletable() {
		return
	}
	s.released = true
	delete(rt.casts, s.ID)
	if p := s.opts.Parent; p != nil {
		p.children--
		rt.release(p)
	}
}

// IsOnCooldown reports whether unit may not cast spell yet.
func (rt *Runtime) IsOnCooldown(unit world.ObjectID, spell data.SpellID) bool {
	return rt.m.Now() < rt.cooldowns[cooldownKey{unit, spell}]
}

func (rt *Runtime) startCooldown(s *Spell) {
	if s.triggered || s.Info.RecoveryTime <= 0 {
		return
	}
	rt.cooldowns[cooldownKey{s.caster.ID(), s.Info.ID}] = rt.m.Now() + s.Info.RecoveryTime
}

// InterruptCast cancels the cast unit is preparing.
func (rt *Runtime) InterruptCast(unit world.ObjectID) bool {
	s := rt.preparing[unit]
	if s == nil {
		return false
	}
	s.Cancel()
	return true
}

// Holder returns the aura holder of a unit, creating it on first use. It is
// nil when the unit is not on the map.
func (rt *Runtime) Holder(unit world.ObjectID) *aura.Holder {
	if h := rt.holders[unit]; h != nil {
		return h
	}
	if rt.m.Unit(unit) == nil {
		return nil
	}
	h := aura.NewHolder(unit, rt.engine.catalog.Groups(), rt)
	rt.holders[unit] = h
	return h
}

// Auras returns the active auras of unit.
func (rt *Runtime) Auras(unit world.ObjectID) []*aura.Aura {
	h := rt.holders[unit]
	if h == nil {
		return nil
	}
	return h.Auras()
}

// ApplyAura puts a on its owner through the stacking rules.
func (rt *Runtime) ApplyAura(a *aura.Aura) aura.ApplyResult {
	h := rt.Holder(a.Owner)
	if h == nil {
		return aura.Rejected
	}
	res := h.Apply(a, rt.m.Now())
	if res != aura.Applied {
		rt.log.AuraApplied(a, res)
	}
	rt.engine.metrics.AuraApplied(a.Spell.ID, res.String())
	return res
}

// diminish returns the diminished duration of info on u. tracked reports
// whether the aura counts toward its diminishing group.
func (rt *Runtime) diminish(info *data.SpellInfo, u *world.Unit) (d time.Duration, tracked, immune bool) {
	h := rt.Holder(u.ID())
	if h == nil {
		return info.Duration, false, false
	}
	dr := h.Diminishing()
	if !dr.Tracks(info.Diminishing, u.IsPlayer()) {
		return info.Duration, false, false
	}
	d, immune = dr.Diminish(info.Diminishing, u.IsPlayer(), info.Duration, rt.m.Now(), rt.engine.cfg.Diminishing)
	return d, true, immune
}

// OnStart implements aura.EffectHandler.
func (rt *Runtime) OnStart(e *aura.Effect) {
	if firstEffect(e) {
		rt.log.AuraApplied(e.Aura, aura.Applied)
	}
	if h := rt.registry.Aura(e.Type); h.Apply != nil {
		h.Apply(rt, e, true, aura.RemoveDefault)
	}
}

// OnActionTime implements aura.EffectHandler.
func (rt *Runtime) OnActionTime(e *aura.Effect) {
	if h := rt.registry.Aura(e.Type); h.Periodic != nil {
		h.Periodic(rt, e)
	}
}

// OnExit implements aura.EffectHandler.
func (rt *Runtime) OnExit(e *aura.Effect, mode aura.RemoveMode) {
	if h := rt.registry.Aura(e.Type); h.Apply != nil {
		h.Apply(rt, e, false, mode)
	}
	if firstEffect(e) {
		rt.log.AuraRemoved(e.Aura, mode)
	}
}

func firstEffect(e *aura.Effect) bool {
	for _, x := range e.Aura.Effects {
		if x != nil {
			return x == e
		}
	}
	return false
}

// HandleEvent implements world.EventHandler.
func (rt *Runtime) HandleEvent(_ *world.Map, ev world.Event) {
	switch p := ev.Payload.(type) {
	case CastComplete:
		s := rt.casts[p.CastID]
		if s == nil || s.castEventID != ev.ID {
			return
		}
		s.onCastComplete()
	case PendingResume:
		s := rt.casts[p.CastID]
		if s == nil || s.resumeEventID != ev.ID {
			return
		}
		s.resume(p)
	default:
		slog.Debug("unknown event payload", "map", rt.m.ID(), "owner", ev.Owner)
	}
}

// Update implements world.Updater: aura ticks and expiry, persistent area
// effects and heartbeat procs.
func (rt *Runtime) Update(m *world.Map, _ time.Duration) {
	now := m.Now()
	ids := make([]world.ObjectID, 0, len(rt.holders))
	for id := range rt.holders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if h := rt.holders[id]; h != nil {
			h.Update(now)
		}
	}

	rt.updateDynamicObjects(now)

	if iv := rt.engine.cfg.HeartbeatInterval; iv > 0 && now-rt.lastHeartbeat >= iv {
		rt.lastHeartbeat = now
		for _, id := range ids {
			u := m.Unit(id)
			if u == nil || !u.IsAlive() {
				continue
			}
			rt.ProcSkillsAndAuras(ProcEventInfo{Actor: u, TypeMask: data.ProcHeartbeat})
		}
	}
}

// OnObjectRemoved implements world.RemoveListener.
func (rt *Runtime) OnObjectRemoved(_ *world.Map, id world.ObjectID) {
	switch {
	case id.IsUnit():
		rt.RemoveUnit(id)
	case id.Kind() == world.KindDynamicObject:
		rt.clearDynamicObject(id)
	}
}

// RemoveUnit force-finalizes every cast of the unit and drops its auras.
func (rt *Runtime) RemoveUnit(id world.ObjectID) {
	var owned []*Spell
	for _, s := range rt.casts {
		if s.caster.ID() == id && s.state != StateFinished {
			owned = append(owned, s)
		}
	}
	slices.SortFunc(owned, func(a, b *Spell) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	for _, s := range owned {
		s.finish(SpellFailedInterrupted)
	}
	if h := rt.holders[id]; h != nil {
		h.RemoveIf(func(*aura.Aura) bool { return true }, aura.RemoveDefault)
		delete(rt.holders, id)
	}
	for k := range rt.cooldowns {
		if k.unit == id {
			delete(rt.cooldowns, k)
		}
	}
}

// unit resolves a unit id on the runtime's map.
func (rt *Runtime) unit(id world.ObjectID) *world.Unit {
	if id == 0 {
		return nil
	}
	return rt.m.Unit(id)
}
