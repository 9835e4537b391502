package spell

import (
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

const (
	coneArc   = math.Pi / 2
	lineWidth = 1.5
)

// selectTargets resolves the implicit selectors of every effect into target
// records. Effects sharing both selectors and radius are resolved once.
func (s *Spell) selectTargets() {
	effects := s.Info.Effects
	var done uint8
	for i := range effects {
		eff := &effects[i]
		if !eff.IsEffect() || done&(1<<i) != 0 {
			continue
		}
		mask := uint8(1 << i)
		for j := i + 1; j < len(effects); j++ {
			o := &effects[j]
			if o.IsEffect() && o.TargetA == eff.TargetA && o.TargetB == eff.TargetB &&
				o.Radius == eff.Radius && o.ChainTargets == eff.ChainTargets {
				mask |= 1 << j
			}
		}
		done |= mask

		if eff.TargetA == data.TargetNone && eff.TargetB == data.TargetNone {
			s.selectByEffect(eff, mask)
			continue
		}
		s.selectImplicit(eff, eff.TargetA, mask)
		s.selectImplicit(eff, eff.TargetB, mask)
	}
	s.assignDelays()
}

// selectByEffect handles effects with no selectors: they hit the explicit
// target or the caster depending on the effect kind.
func (s *Spell) selectByEffect(eff *data.SpellEffectInfo, mask uint8) {
	switch eff.Effect.ImplicitTargetType() {
	case data.ImplicitTargetExplicit:
		if u := s.explicitUnit(); u != nil {
			s.addUnitRecord(u, mask)
			return
		}
		if g := s.rt.m.GameObject(s.targets.GameObject); g != nil {
			s.addObjectRecord(TargetKindGameObject, g.ID(), mask)
		}
		if s.targets.Item != 0 {
			s.addObjectRecord(TargetKindItem, s.targets.Item, mask)
		}
		if s.targets.Corpse != 0 {
			s.addObjectRecord(TargetKindCorpse, s.targets.Corpse, mask)
		}
	case data.ImplicitTargetCaster:
		s.addUnitRecord(s.caster, mask)
	}
}

func (s *Spell) explicitUnit() *world.Unit {
	return s.rt.unit(s.targets.Unit)
}

// selectImplicit resolves one selector.
func (s *Spell) selectImplicit(eff *data.SpellEffectInfo, t data.Targets, mask uint8) {
	if t == data.TargetNone {
		return
	}
	st := t.Static()
	switch st.Selection {
	case data.SelectNyi:
		slog.Debug("unsupported target selector", "spell", s.Info.ID, "selector", t)
	case data.SelectChannel:
		s.selectChannel(st, mask)
	case data.SelectNearby:
		s.selectNearby(eff, t, mask)
	case data.SelectCone:
		s.selectArea(eff, t, mask, areaCone)
	case data.SelectArea:
		s.selectArea(eff, t, mask, areaCircle)
	case data.SelectLine:
		s.selectArea(eff, t, mask, areaLine)
	case data.SelectTraj:
		if s.targets.Dst != nil {
			s.addDestRecord(*s.targets.Dst, mask)
		}
	case data.SelectDefault:
		s.selectDefault(eff, t, mask)
	}
}

func (s *Spell) selectChannel(st data.TargetStaticData, mask uint8) {
	u := s.explicitUnit()
	if u == nil {
		slog.Debug("channel selector without target", "spell", s.Info.ID)
		return
	}
	if st.Object == data.ObjectDest {
		s.setDest(u.Position(), u, mask)
		return
	}
	s.addUnitRecord(u, mask)
}

// selectDefault handles selectors that yield a single object or point
// relative to a reference.
func (s *Spell) selectDefault(eff *data.SpellEffectInfo, t data.Targets, mask uint8) {
	switch t.ObjectType() {
	case data.ObjectSrc:
		src := DestOn(s.rt.m, s.caster.Position(), s.caster)
		s.targets.Src = &src
	case data.ObjectDest:
		ref, ok := s.referencePosition(t.ReferenceType())
		if !ok {
			slog.Debug("dest selector without reference", "spell", s.Info.ID, "selector", t)
			return
		}
		if t.Direction() != data.DirNone {
			dist := eff.Radius
			roll := s.rt.m.Rand().Float64()
			if t.Direction() == data.DirRandom {
				dist *= float32(s.rt.m.Rand().Float64())
			}
			ref = ref.Relative(dist, float32(t.DirectionAngle(roll)))
		}
		s.setDest(ref, s.referenceUnit(t.ReferenceType()), mask)
	case data.ObjectUnit, data.ObjectUnitAndDest:
		var u *world.Unit
		switch t.ReferenceType() {
		case data.RefCaster:
			if t == data.TargetUnitCaster {
				u = s.caster
			}
		case data.RefTarget:
			u = s.explicitUnit()
		}
		if u == nil {
			slog.Debug("unit selector resolved nothing", "spell", s.Info.ID, "selector", t)
			return
		}
		if t.CheckType() != data.CheckDefault && u != s.caster && !s.passesCheck(u, t.CheckType(), u) {
			return
		}
		if eff.ChainTargets > 1 {
			for _, c := range s.chainTargets(u, int(eff.ChainTargets), t) {
				s.addUnitRecord(c, mask)
			}
			return
		}
		s.addUnitRecord(u, mask)
	case data.ObjectGameObject:
		if g := s.rt.m.GameObject(s.targets.GameObject); g != nil {
			s.addObjectRecord(TargetKindGameObject, g.ID(), mask)
		}
	case data.ObjectGameObjectItem:
		if g := s.rt.m.GameObject(s.targets.GameObject); g != nil {
			s.addObjectRecord(TargetKindGameObject, g.ID(), mask)
		}
		if s.targets.Item != 0 {
			s.addObjectRecord(TargetKindItem, s.targets.Item, mask)
		}
	case data.ObjectItem:
		if s.targets.Item != 0 {
			s.addObjectRecord(TargetKindItem, s.targets.Item, mask)
		}
	case data.ObjectCorpse, data.ObjectCorpseAlly, data.ObjectCorpseEnemy:
		if s.targets.Corpse != 0 {
			s.addObjectRecord(TargetKindCorpse, s.targets.Corpse, mask)
		}
	}
}

// referenceUnit returns the unit a selector measures from, if any.
func (s *Spell) referenceUnit(ref data.ReferenceType) *world.Unit {
	switch ref {
	case data.RefCaster:
		return s.caster
	case data.RefTarget:
		return s.explicitUnit()
	case data.RefLast:
		return s.lastTarget
	}
	return nil
}

// referencePosition returns the origin a selector measures from.
func (s *Spell) referencePosition(ref data.ReferenceType) (world.Position, bool) {
	m := s.rt.m
	switch ref {
	case data.RefCaster:
		return s.caster.Position(), true
	case data.RefTarget:
		if u := s.explicitUnit(); u != nil {
			return u.Position(), true
		}
		if g := m.GameObject(s.targets.GameObject); g != nil {
			return g.Position(), true
		}
	case data.RefLast:
		if s.lastTarget != nil {
			return s.lastTarget.Position(), true
		}
	case data.RefSrc:
		if s.targets.Src != nil {
			return s.targets.Src.Resolve(m), true
		}
		return s.caster.Position(), true
	case data.RefDest:
		if s.targets.Dst != nil {
			return s.targets.Dst.Resolve(m), true
		}
	}
	return world.Position{}, false
}

// setDest moves the cast destination to p and binds the effects in mask
// to it. A new destination rides carrier's transport.
func (s *Spell) setDest(p world.Position, carrier *world.Unit, mask uint8) {
	if s.targets.Dst == nil {
		d := DestOn(s.rt.m, p, carrier)
		s.targets.Dst = &d
	} else {
		s.targets.Dst.relocate(s.rt.m, p)
	}
	s.addDestRecord(*s.targets.Dst, mask)
}

func (s *Spell) searchRadius(eff *data.SpellEffectInfo) float32 {
	switch {
	case eff.Radius > 0:
		return eff.Radius
	case s.Info.MaxRange > 0:
		return s.Info.MaxRange
	}
	return float32(s.rt.engine.cfg.NearbySearchRadius)
}

// selectNearby picks the closest valid candidate around the caster.
func (s *Spell) selectNearby(eff *data.SpellEffectInfo, t data.Targets, mask uint8) {
	center := s.caster.Position()
	radius := s.searchRadius(eff)
	switch t.ObjectType() {
	case data.ObjectGameObject:
		var (
			best *world.GameObject
			bd   float32
		)
		for _, g := range s.gameObjectsInRange(center, radius) {
			if d := center.Dist(g.Position()); best == nil || d < bd {
				best, bd = g, d
			}
		}
		if best != nil {
			s.addObjectRecord(TargetKindGameObject, best.ID(), mask)
		}
		return
	case data.ObjectDest:
		if u := s.nearestUnit(center, radius, t); u != nil {
			s.setDest(u.Position(), u, mask)
		}
		return
	}
	u := s.nearestUnit(center, radius, t)
	if u == nil {
		return
	}
	if eff.ChainTargets > 1 {
		for _, c := range s.chainTargets(u, int(eff.ChainTargets), t) {
			s.addUnitRecord(c, mask)
		}
		return
	}
	s.addUnitRecord(u, mask)
}

func (s *Spell) nearestUnit(center world.Position, radius float32, t data.Targets) *world.Unit {
	var (
		best *world.Unit
		bd   float32
	)
	for _, u := range s.rt.unitsInRange(center, radius) {
		if u == s.caster || !s.matchesUnit(u, t) || !s.inLOS(center, u) {
			continue
		}
		if d := center.Dist(u.Position()); best == nil || d < bd {
			best, bd = u, d
		}
	}
	return best
}

type areaShape uint8

const (
	areaCircle areaShape = iota
	areaCone
	areaLine
)

// selectArea collects every valid candidate in a circle, cone or line.
func (s *Spell) selectArea(eff *data.SpellEffectInfo, t data.Targets, mask uint8, shape areaShape) {
	center, ok := s.referencePosition(t.ReferenceType())
	if !ok {
		slog.Debug("area selector without reference", "spell", s.Info.ID, "selector", t)
		return
	}
	radius := eff.Radius
	origin := s.caster.Position()

	if shape == areaLine {
		if s.targets.Dst == nil {
			return
		}
		dst := s.targets.Dst.Resolve(s.rt.m)
		origin.O = origin.AngleTo(dst)
		radius = origin.Dist(dst)
		center = origin
	}
	inShape := func(p world.Position) bool {
		switch shape {
		case areaCone:
			return origin.HasInArc(coneArc, p) && origin.Dist(p) <= radius
		case areaLine:
			return origin.IsInLine(p, lineWidth) && origin.Dist(p) <= radius
		}
		return center.Dist(p) <= radius
	}

	switch t.ObjectType() {
	case data.ObjectGameObject:
		for _, g := range s.gameObjectsInRange(center, radius) {
			if inShape(g.Position()) {
				s.addObjectRecord(TargetKindGameObject, g.ID(), mask)
			}
		}
		return
	case data.ObjectCorpse, data.ObjectCorpseAlly, data.ObjectCorpseEnemy:
		for _, c := range s.corpsesInRange(center, radius) {
			if inShape(c.Position()) && s.corpseMatches(c, t.ObjectType()) {
				s.addObjectRecord(TargetKindCorpse, c.ID(), mask)
			}
		}
		return
	}

	var picked []*world.Unit
	for _, u := range s.rt.unitsInRange(center, radius) {
		if !s.matchesUnit(u, t) || !inShape(u.Position()) || !s.inLOS(center, u) {
			continue
		}
		picked = append(picked, u)
	}
	picked = s.trimTargets(picked)
	for _, u := range picked {
		s.addUnitRecord(u, mask)
	}
}

// trimTargets keeps a random subset when the spell caps its target count.
func (s *Spell) trimTargets(units []*world.Unit) []*world.Unit {
	limit := int(s.Info.MaxAffectedTargets)
	if limit <= 0 || len(units) <= limit {
		return units
	}
	s.rt.m.Rand().Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
	units = units[:limit]
	slices.SortFunc(units, func(a, b *world.Unit) int { return compareObjectIDs(a.ID(), b.ID()) })
	return units
}

// chainTargets follows jumps from first up to count targets. Chain heals
// jump to the most injured ally in reach, everything else to the nearest.
func (s *Spell) chainTargets(first *world.Unit, count int, t data.Targets) []*world.Unit {
	jump := float32(s.rt.engine.cfg.ChainJumpDistance)
	heal := t == data.TargetUnitTargetChainhealAlly
	pool := s.rt.unitsInRange(first.Position(), jump*float32(count))

	out := []*world.Unit{first}
	cur := first
	for len(out) < count {
		var (
			best    *world.Unit
			bestKey float64
		)
		for _, u := range pool {
			if slices.Contains(out, u) || !s.matchesUnit(u, t) {
				continue
			}
			d := cur.Position().Dist(u.Position())
			if d > jump || !s.inLOS(cur.Position(), u) {
				continue
			}
			key := float64(d)
			if heal {
				if u.Health() >= u.MaxHealth() {
					continue
				}
				key = float64(u.Health()) / float64(max(u.MaxHealth(), 1))
			}
			if best == nil || key < bestKey {
				best, bestKey = u, key
			}
		}
		if best == nil {
			break
		}
		out = append(out, best)
		cur = best
	}
	return out
}

// matchesUnit runs the object-side filters for an area, nearby or chain
// candidate in order: object type, life state, relation check. Geometry and
// line of sight are checked by the caller afterwards.
func (s *Spell) matchesUnit(u *world.Unit, t data.Targets) bool {
	info := s.Info
	if info.HasAttribute(data.AttrOnlyTargetPlayers) && !u.IsPlayer() {
		return false
	}
	if info.HasAttribute(data.AttrRequiresDeadTarget) {
		if u.IsAlive() {
			return false
		}
	} else if !u.IsAlive() {
		return false
	}
	return s.passesCheck(u, t.CheckType(), s.explicitUnit())
}

// inLOS is the last filter of the chain.
func (s *Spell) inLOS(from world.Position, u *world.Unit) bool {
	return s.Info.HasAttribute(data.AttrIgnoreLOS) || s.rt.m.IsInLOS(from, u.Position())
}

// passesCheck applies a selector's relation check from the caster's side.
func (s *Spell) passesCheck(u *world.Unit, check data.CheckType, ref *world.Unit) bool {
	c := s.caster
	m := s.rt.m
	switch check {
	case data.CheckEnemy:
		return u != c && !m.IsFriendly(c, u)
	case data.CheckAlly:
		return m.IsFriendly(c, u)
	case data.CheckParty:
		return u == c || c.IsInParty(u)
	case data.CheckRaid:
		return u == c || c.IsInRaid(u)
	case data.CheckRaidClass:
		if ref == nil {
			ref = c
		}
		return (u == c || c.IsInRaid(u)) && u.Class == ref.Class
	case data.CheckPassenger:
		return u.Transport != 0 && u.Transport == c.Transport
	}
	return true
}

func (s *Spell) corpseMatches(c *world.Corpse, ot data.ObjectType) bool {
	owner := s.rt.m.Factions().Reaction(s.caster.Faction, c.Faction)
	switch ot {
	case data.ObjectCorpseEnemy:
		return owner == world.ReactionHostile
	case data.ObjectCorpseAlly:
		return owner == world.ReactionFriendly
	}
	return true
}

// unitsInRange returns units within radius of center in id order.
func (rt *Runtime) unitsInRange(center world.Position, radius float32) []*world.Unit {
	var out []*world.Unit
	rt.m.VisitRange(center, radius, func(o world.Object) bool {
		if u, ok := o.(*world.Unit); ok && center.Dist(u.Position()) <= radius {
			out = append(out, u)
		}
		return true
	})
	slices.SortFunc(out, func(a, b *world.Unit) int { return compareObjectIDs(a.ID(), b.ID()) })
	return out
}

func (s *Spell) gameObjectsInRange(center world.Position, radius float32) []*world.GameObject {
	var out []*world.GameObject
	s.rt.m.VisitRange(center, radius, func(o world.Object) bool {
		if g, ok := o.(*world.GameObject); ok && center.Dist(g.Position()) <= radius {
			out = append(out, g)
		}
		return true
	})
	slices.SortFunc(out, func(a, b *world.GameObject) int { return compareObjectIDs(a.ID(), b.ID()) })
	return out
}

func (s *Spell) corpsesInRange(center world.Position, radius float32) []*world.Corpse {
	var out []*world.Corpse
	s.rt.m.VisitRange(center, radius, func(o world.Object) bool {
		if c, ok := o.(*world.Corpse); ok && center.Dist(c.Position()) <= radius {
			out = append(out, c)
		}
		return true
	})
	slices.SortFunc(out, func(a, b *world.Corpse) int { return compareObjectIDs(a.ID(), b.ID()) })
	return out
}

func compareObjectIDs(a, b world.ObjectID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// addUnitRecord adds or extends the record of u and rolls its hit result.
func (s *Spell) addUnitRecord(u *world.Unit, mask uint8) {
	for i := range s.records {
		rec := &s.records[i]
		if rec.Kind == TargetKindUnit && rec.ID == u.ID() {
			rec.EffectMask |= mask
			return
		}
	}
	rec := TargetRecord{
		Kind:       TargetKindUnit,
		ID:         u.ID(),
		EffectMask: mask,
		Alive:      u.IsAlive(),
	}
	if u != s.caster && !s.Info.IsPositive() {
		rec.Miss = s.rt.math.SpellHitResult(s.caster, u, s.Info)
		if rec.Miss == combat.MissNone && s.canReflect() && s.rollReflect(u) {
			rec.Reflected = true
		}
	}
	s.records = append(s.records, rec)
	s.lastTarget = u
}

func (s *Spell) canReflect() bool {
	info := s.Info
	return info.DmgClass == data.DmgClassMagic && !info.IsPassive() &&
		!info.HasAttribute(data.AttrCantBeReflected)
}

// rollReflect rolls the reflect auras of u against the spell's school.
func (s *Spell) rollReflect(u *world.Unit) bool {
	h := s.rt.holders[u.ID()]
	if h == nil {
		return false
	}
	chance := h.TotalAmount(data.AuraReflectSpells)
	for _, e := range h.EffectsOfType(data.AuraReflectSpellsSchool) {
		if data.SchoolMask(e.Misc)&s.Info.SchoolMask != 0 {
			chance += e.Amount()
		}
	}
	return s.rt.rollChance(float64(chance))
}

func (s *Spell) addObjectRecord(kind TargetKind, id world.ObjectID, mask uint8) {
	for i := range s.records {
		rec := &s.records[i]
		if rec.Kind == kind && rec.ID == id {
			rec.EffectMask |= mask
			return
		}
	}
	s.records = append(s.records, TargetRecord{Kind: kind, ID: id, EffectMask: mask})
}

func (s *Spell) addDestRecord(d Destination, mask uint8) {
	for i := range s.records {
		rec := &s.records[i]
		if rec.Kind == TargetKindDest && rec.Dest.Pos == d.Pos {
			rec.EffectMask |= mask
			return
		}
	}
	s.records = append(s.records, TargetRecord{Kind: TargetKindDest, Dest: d, EffectMask: mask})
}

// assignDelays computes the travel time of every record. Reflected spells
// need half as long again to come back.
func (s *Spell) assignDelays() {
	if s.Info.Speed <= 0 {
		return
	}
	m := s.rt.m
	for i := range s.records {
		rec := &s.records[i]
		switch rec.Kind {
		case TargetKindUnit:
			if u := m.Unit(rec.ID); u != nil {
				rec.TimeDelay = s.travelDelay(u.Position(), u == s.caster)
			}
		case TargetKindGameObject:
			if g := m.GameObject(rec.ID); g != nil {
				rec.TimeDelay = s.travelDelay(g.Position(), false)
			}
		case TargetKindCorpse:
			if c := m.Corpse(rec.ID); c != nil {
				rec.TimeDelay = s.travelDelay(c.Position(), false)
			}
		case TargetKindDest:
			rec.TimeDelay = s.travelDelay(rec.Dest.Resolve(m), false)
		}
		if rec.Reflected {
			rec.TimeDelay += rec.TimeDelay / 2
		}
	}
}
