package spell

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/world"
)

// SpellState is the lifecycle state of one cast.
type SpellState uint8

const (
	StateNull SpellState = iota
	StatePreparing
	StateCasting
	StateDelayed
	StateFinished
)

var spellStateNames = [...]string{"null", "preparing", "casting", "delayed", "finished"}

func (s SpellState) String() string {
	if int(s) < len(spellStateNames) {
		return spellStateNames[s]
	}
	return fmt.Sprintf("spell_state(%d)", int(s))
}

// minTravelDistance is the distance used for travel time when the target is
// closer than this.
const minTravelDistance = 5.0

// CastComplete is scheduled on the caster's queue when the cast time ends.
type CastComplete struct {
	CastID uint64
}

// PendingResume is the delayed part of a travelling spell. It holds only ids
// and is resolved against the runtime when it comes due.
type PendingResume struct {
	CastID     uint64
	Caster     world.ObjectID
	Targets    []world.ObjectID
	EffectMask uint8
	ResumeAt   time.Duration
}

// CastOptions carries the context a cast was started with.
type CastOptions struct {
	// Triggered casts skip caster checks, cast time, power and cooldown.
	Triggered   bool
	TriggeredBy *data.SpellInfo

	OriginalCaster world.ObjectID
	CastItem       world.ObjectID

	// ValueOverrides replaces the rolled value of effect i when bit i of
	// OverrideMask is set.
	ValueOverrides [data.MaxSpellEffects]int32
	OverrideMask   uint8

	// ProcEvent is the combat event that triggered this cast, if any.
	ProcEvent *ProcEventInfo
	// Parent keeps the triggering cast alive until this one is terminal.
	Parent *Spell
}

// Spell is one cast instance. It is owned by the runtime of the caster's map.
type Spell struct {
	ID   uint64
	Info *data.SpellInfo

	rt      *Runtime
	caster  *world.Unit
	targets CastTargets
	opts    CastOptions
	scripts []Script

	triggered bool
	state     SpellState
	history   []SpellState
	result    SpellCastResult

	castEventID   uint64
	resumeEventID uint64
	launchedAt    time.Duration
	children      int
	released      bool

	records          []TargetRecord
	immediateHandled bool
	lastTarget       *world.Unit

	effIndex     int
	unitTarget   *world.Unit
	goTarget     *world.GameObject
	itemTarget   *world.Item
	corpseTarget *world.Corpse
	destTarget   *Destination
	curRecord    *TargetRecord

	// EffectValue is the magnitude of the effect being handled. Scripts may
	// rewrite it in OnEffectHit.
	EffectValue int32

	damage      int32
	healing     int32
	auraMask    uint8
	auraAmounts [data.MaxSpellEffects]int32
}

func (s *Spell) Runtime() *Runtime                   { return s.rt }
func (s *Spell) Caster() *world.Unit                 { return s.caster }
func (s *Spell) CasterID() world.ObjectID            { return s.caster.ID() }
func (s *Spell) State() SpellState                   { return s.state }
func (s *Spell) Result() SpellCastResult             { return s.result }
func (s *Spell) IsTriggered() bool                   { return s.triggered }
func (s *Spell) Targets() CastTargets                { return s.targets }
func (s *Spell) Options() CastOptions                { return s.opts }
func (s *Spell) EffectIndex() int                    { return s.effIndex }
func (s *Spell) UnitTarget() *world.Unit             { return s.unitTarget }
func (s *Spell) GameObjectTarget() *world.GameObject { return s.goTarget }
func (s *Spell) ItemTarget() *world.Item             { return s.itemTarget }
func (s *Spell) CorpseTarget() *world.Corpse         { return s.corpseTarget }
func (s *Spell) DestTarget() *Destination            { return s.destTarget }

// History returns every state the cast went through, in order.
func (s *Spell) History() []SpellState {
	out := make([]SpellState, len(s.history))
	copy(out, s.history)
	return out
}

// Records returns a snapshot of the resolved targets.
func (s *Spell) Records() []TargetRecord {
	out := make([]TargetRecord, len(s.records))
	copy(out, s.records)
	return out
}

// IsDeletable reports whether the cast and everything it triggered are done.
func (s *Spell) IsDeletable() bool {
	return s.state == StateFinished && s.children == 0 && s.resumeEventID == 0
}

func (s *Spell) setState(st SpellState) {
	if s.state == st {
		return
	}
	s.state = st
	s.history = append(s.history, st)
}

// prepare validates the cast and either casts at once or waits for the cast
// time to run out on the caster's event queue.
func (s *Spell) prepare() SpellCastResult {
	s.setState(StatePreparing)

	if res := s.initExplicitTargets(); res != SpellCastOK {
		s.fail(res)
		return res
	}
	if res := s.CheckCast(); res != SpellCastOK {
		s.fail(res)
		return res
	}

	castTime := s.Info.CastTime
	if s.triggered || castTime <= 0 {
		s.cast()
		return s.result
	}

	cid := s.caster.ID()
	s.rt.preparing[cid] = s
	s.castEventID = s.rt.m.Schedule(cid, s.rt.m.Now()+castTime, CastComplete{CastID: s.ID})
	slog.Debug("spell preparing", "caster", cid, "spell", s.Info.ID, "castTime", castTime)
	return SpellCastOK
}

// initExplicitTargets fills in implied explicit targets and resolves ids.
func (s *Spell) initExplicitTargets() SpellCastResult {
	m := s.rt.m
	if s.Info.NeedsExplicitUnitTarget() && s.targets.Unit == 0 {
		if !s.Info.IsPositive() {
			return SpellFailedBadTargets
		}
		s.targets.Unit = s.caster.ID()
	}
	if s.targets.Unit != 0 && m.Unit(s.targets.Unit) == nil {
		return SpellFailedBadTargets
	}
	if s.targets.GameObject != 0 && m.GameObject(s.targets.GameObject) == nil {
		return SpellFailedBadTargets
	}
	if s.targets.Corpse != 0 && m.Corpse(s.targets.Corpse) == nil {
		return SpellFailedBadTargets
	}
	if s.targets.Item != 0 && s.findItem(s.targets.Item) == nil {
		return SpellFailedBadTargets
	}
	if s.Info.NeedsExplicitDest() && s.targets.Dst == nil {
		u := m.Unit(s.targets.Unit)
		if u == nil {
			return SpellFailedBadTargets
		}
		d := DestOn(m, u.Position(), u)
		s.targets.Dst = &d
	}
	if s.targets.Src == nil {
		src := DestOn(m, s.caster.Position(), s.caster)
		s.targets.Src = &src
	}
	return SpellCastOK
}

func (s *Spell) findItem(id world.ObjectID) *world.Item {
	if it := s.caster.Item(id); it != nil {
		return it
	}
	if u := s.rt.m.Unit(s.targets.Unit); u != nil {
		return u.Item(id)
	}
	return nil
}

// CheckCast validates the cast against the caster and explicit targets.
func (s *Spell) CheckCast() SpellCastResult {
	c := s.caster
	info := s.Info
	rt := s.rt

	if !s.triggered {
		if !c.IsAlive() && !info.HasAttribute(data.AttrCastableWhileDead) {
			return SpellFailedCasterDead
		}
		if !info.HasAttribute(data.AttrIgnoreCasterAuras) {
			switch {
			case c.IsAlive() && !c.CanAct():
				return SpellFailedStunned
			case c.HasState(world.StateSilenced) && info.DmgClass == data.DmgClassMagic:
				return SpellFailedSilenced
			case c.HasState(world.StatePacified) && info.DmgClass == data.DmgClassMelee:
				return SpellFailedPacified
			}
		}
		if cur := rt.preparing[c.ID()]; cur != nil && cur != s {
			return SpellFailedSpellInProgress
		}
		if rt.IsOnCooldown(c.ID(), info.ID) {
			return SpellFailedNotReady
		}
		if info.HasAttribute(data.AttrNotInCombat) && c.IsInCombat(rt.m.Now()) {
			return SpellFailedAffectingCombat
		}
		if cost := s.powerCost(); cost > 0 && c.Power(info.PowerType) < cost {
			return SpellFailedNoPower
		}
	}

	if u := rt.m.Unit(s.targets.Unit); u != nil {
		if res := s.checkExplicitUnit(u); res != SpellCastOK {
			return res
		}
	}
	if d := s.targets.Dst; d != nil && !s.triggered && !info.HasAttribute(data.AttrIgnoreRange) && info.MaxRange > 0 {
		if c.Position().Dist(d.Resolve(rt.m)) > info.MaxRange {
			return SpellFailedOutOfRange
		}
	}

	for _, sc := range s.scripts {
		if res := sc.CheckCast(s); res != SpellCastOK {
			return res
		}
	}
	return SpellCastOK
}

func (s *Spell) checkExplicitUnit(u *world.Unit) SpellCastResult {
	info := s.Info
	if info.HasAttribute(data.AttrRequiresDeadTarget) {
		if u.IsAlive() {
			return SpellFailedTargetNotDead
		}
	} else if !u.IsAlive() {
		return SpellFailedTargetsDead
	}
	if u == s.caster {
		return SpellCastOK
	}
	if info.HasAttribute(data.AttrOnlyTargetPlayers) && !u.IsPlayer() {
		return SpellFailedBadTargets
	}

	switch s.explicitCheckType() {
	case data.CheckEnemy:
		if s.rt.m.IsFriendly(s.caster, u) {
			return SpellFailedTargetFriendly
		}
	case data.CheckAlly, data.CheckParty, data.CheckRaid, data.CheckRaidClass:
		if !s.rt.m.IsFriendly(s.caster, u) {
			return SpellFailedTargetEnemy
		}
	}

	if s.triggered {
		return SpellCastOK
	}
	if !info.HasAttribute(data.AttrIgnoreRange) {
		dist := s.caster.Position().Dist(u.Position())
		if info.MaxRange > 0 && dist > info.MaxRange {
			return SpellFailedOutOfRange
		}
		if info.MinRange > 0 && dist < info.MinRange {
			return SpellFailedTooClose
		}
	}
	if !info.HasAttribute(data.AttrIgnoreLOS) && !s.rt.m.IsInLOS(s.caster.Position(), u.Position()) {
		return SpellFailedLineOfSight
	}
	return SpellCastOK
}

// explicitCheckType returns the relation check of the first selector that
// references the explicit unit.
func (s *Spell) explicitCheckType() data.CheckType {
	for i := range s.Info.Effects {
		e := &s.Info.Effects[i]
		for _, t := range [2]data.Targets{e.TargetA, e.TargetB} {
			if t.ReferenceType() == data.RefTarget && t.ObjectType() == data.ObjectUnit {
				return t.CheckType()
			}
		}
	}
	return data.CheckDefault
}

func (s *Spell) powerCost() int32 {
	if s.triggered {
		return 0
	}
	return int32(s.Info.ManaCost)
}

// onCastComplete runs when the cast time has elapsed.
func (s *Spell) onCastComplete() {
	if s.state != StatePreparing {
		return
	}
	s.castEventID = 0
	if s.rt.preparing[s.caster.ID()] == s {
		delete(s.rt.preparing, s.caster.ID())
	}
	if res := s.CheckCast(); res != SpellCastOK {
		s.fail(res)
		return
	}
	s.cast()
}

// cast resolves targets, pays the cost and runs the launch phases. Spells
// without travel time are finished before cast returns.
func (s *Spell) cast() {
	rt := s.rt
	s.setState(StateCasting)
	s.selectTargets()

	if cost := s.powerCost(); cost > 0 {
		s.caster.ModifyPower(s.Info.PowerType, -cost)
	}
	rt.startCooldown(s)
	s.launchedAt = rt.m.Now()
	rt.log.SpellGo(s)

	for i := range s.Info.Effects {
		s.resetTargetContext()
		s.handleEffect(i, HandleLaunch)
	}
	for i := range s.records {
		rec := &s.records[i]
		if rec.Kind == TargetKindDest {
			continue
		}
		for j := range s.Info.Effects {
			if !rec.hasEffect(j) {
				continue
			}
			s.bindRecord(rec)
			s.handleEffect(j, HandleLaunchTarget)
		}
	}
	s.resetTargetContext()
	rt.procCastPhase(s)
	if s.state == StateFinished {
		return
	}

	if s.Info.Speed > 0 && len(s.records) > 0 {
		s.setState(StateDelayed)
		s.scheduleResume()
		return
	}
	s.handleImmediate()
}

func (s *Spell) handleImmediate() {
	s.immediatePhase()
	for i := range s.records {
		if s.state == StateFinished {
			return
		}
		s.processRecord(&s.records[i])
	}
	s.finish(SpellCastOK)
}

// immediatePhase runs Hit once for every effect not bound to a destination
// record; those run when their destination is reached.
func (s *Spell) immediatePhase() {
	if s.immediateHandled {
		return
	}
	s.immediateHandled = true
	var destMask uint8
	for i := range s.records {
		if s.records[i].Kind == TargetKindDest {
			destMask |= s.records[i].EffectMask
		}
	}
	for i := range s.Info.Effects {
		if destMask&(1<<i) != 0 {
			continue
		}
		s.resetTargetContext()
		if s.targets.Dst != nil {
			d := *s.targets.Dst
			d.Pos = d.Resolve(s.rt.m)
			s.destTarget = &d
		}
		s.handleEffect(i, HandleHit)
	}
	s.resetTargetContext()
}

// travelDelay returns the time the spell needs to reach pos.
func (s *Spell) travelDelay(pos world.Position, self bool) time.Duration {
	if s.Info.Speed <= 0 || self {
		return 0
	}
	if s.Info.HasAttribute(data.AttrSpeedIsDelay) {
		return time.Duration(float64(s.Info.Speed) * float64(time.Second))
	}
	dist := max(float64(s.caster.Position().Dist(pos)), minTravelDistance)
	return time.Duration(math.Floor(dist/float64(s.Info.Speed)*1000)) * time.Millisecond
}

// scheduleResume queues the next resume at the smallest outstanding delay.
func (s *Spell) scheduleResume() {
	var (
		next  time.Duration
		found bool
		ids   []world.ObjectID
		mask  uint8
	)
	for i := range s.records {
		rec := &s.records[i]
		if rec.Processed {
			continue
		}
		if !found || rec.TimeDelay < next {
			next, found = rec.TimeDelay, true
		}
		if rec.Kind != TargetKindDest {
			ids = append(ids, rec.ID)
		}
		mask |= rec.EffectMask
	}
	if !found {
		s.finish(SpellCastOK)
		return
	}
	at := s.launchedAt + next
	cid := s.caster.ID()
	s.resumeEventID = s.rt.m.Schedule(cid, at, PendingResume{
		CastID:     s.ID,
		Caster:     cid,
		Targets:    ids,
		EffectMask: mask,
		ResumeAt:   at,
	})
	if s.resumeEventID == 0 {
		s.finish(SpellFailedInterrupted)
	}
}

// resume processes every record whose travel time has elapsed.
func (s *Spell) resume(p PendingResume) {
	s.resumeEventID = 0
	if s.state != StateDelayed {
		s.rt.release(s)
		return
	}
	elapsed := s.rt.m.Now() - s.launchedAt
	s.immediatePhase()
	for i := range s.records {
		if s.state == StateFinished {
			return
		}
		rec := &s.records[i]
		if !rec.Processed && rec.TimeDelay <= elapsed {
			s.processRecord(rec)
		}
	}
	if s.state == StateFinished {
		return
	}
	slog.Debug("spell resumed", "caster", p.Caster, "spell", s.Info.ID, "at", p.ResumeAt)
	s.scheduleResume()
}

// Cancel interrupts the cast. Pending resumes are dropped and unprocessed
// targets are never hit.
func (s *Spell) Cancel() {
	if s.state == StateNull || s.state == StateFinished {
		return
	}
	s.rt.log.CastResult(s.caster.ID(), s.Info.ID, SpellFailedInterrupted)
	s.finish(SpellFailedInterrupted)
}

func (s *Spell) fail(res SpellCastResult) {
	s.rt.log.CastResult(s.caster.ID(), s.Info.ID, res)
	s.finish(res)
}

func (s *Spell) finish(res SpellCastResult) {
	if s.state == StateFinished {
		return
	}
	rt := s.rt
	s.result = res
	s.setState(StateFinished)

	cid := s.caster.ID()
	if s.castEventID != 0 {
		rt.m.CancelEvent(cid, s.castEventID)
		s.castEventID = 0
	}
	if s.resumeEventID != 0 {
		rt.m.CancelEvent(cid, s.resumeEventID)
		s.resumeEventID = 0
	}
	if rt.preparing[cid] == s {
		delete(rt.preparing, cid)
	}
	rt.engine.metrics.CastFinished(s.Info.ID, res)
	if res == SpellCastOK {
		rt.procFinishPhase(s)
	}
	rt.release(s)
}

// resetTargetContext clears the per-target handler context.
func (s *Spell) resetTargetContext() {
	s.unitTarget = nil
	s.goTarget = nil
	s.itemTarget = nil
	s.corpseTarget = nil
	s.destTarget = nil
	s.curRecord = nil
}

// bindRecord points the handler context at rec.
func (s *Spell) bindRecord(rec *TargetRecord) {
	s.resetTargetContext()
	s.curRecord = rec
	m := s.rt.m
	switch rec.Kind {
	case TargetKindUnit:
		s.unitTarget = m.Unit(rec.ID)
	case TargetKindGameObject:
		s.goTarget = m.GameObject(rec.ID)
	case TargetKindItem:
		s.itemTarget = s.findItem(rec.ID)
	case TargetKindCorpse:
		s.corpseTarget = m.Corpse(rec.ID)
	case TargetKindDest:
		d := rec.Dest
		d.Pos = d.Resolve(m)
		s.destTarget = &d
	}
}

// handleEffect invokes the registered handler of effect i. Scripts run first
// and may prevent the generic handler.
func (s *Spell) handleEffect(i int, mode HandleMode) {
	eff := &s.Info.Effects[i]
	if !eff.IsEffect() {
		return
	}
	s.effIndex = i
	s.EffectValue = s.calcValue(i)
	for _, sc := range s.scripts {
		if sc.OnEffectHit(s, i, mode) {
			return
		}
	}
	reg := s.rt.engine.registry
	reg.Effect(eff.Effect)(s, eff, mode)
	if reg.IsEffectDeclared(eff.Effect) {
		s.rt.engine.metrics.EffectHandled(eff.Effect, mode)
	}
}

func (s *Spell) calcValue(i int) int32 {
	if s.opts.OverrideMask&(1<<i) != 0 {
		return s.opts.ValueOverrides[i]
	}
	return s.Info.Effects[i].CalcValue(s.Info, s.caster.Level, s.rt.m.Rand())
}

// processRecord runs the hit phase for one target record, dispatching on
// its kind.
func (s *Spell) processRecord(rec *TargetRecord) {
	if rec.Processed {
		return
	}
	rec.Processed = true
	switch rec.Kind {
	case TargetKindUnit:
		s.hitUnit(rec)
	case TargetKindGameObject, TargetKindItem, TargetKindCorpse:
		s.bindRecord(rec)
		if s.goTarget == nil && s.itemTarget == nil && s.corpseTarget == nil {
			break
		}
		for i := range s.Info.Effects {
			if rec.hasEffect(i) {
				s.handleEffect(i, HandleHitTarget)
			}
		}
	case TargetKindDest:
		for i := range s.Info.Effects {
			if rec.hasEffect(i) {
				s.bindRecord(rec)
				s.handleEffect(i, HandleHit)
			}
		}
	}
	s.resetTargetContext()
}
