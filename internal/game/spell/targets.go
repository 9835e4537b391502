package spell

import (
	"time"

	"github.com/udisondev/spellcore/internal/game/combat"
	"github.com/udisondev/spellcore/internal/world"
)

// TargetKind tags a TargetRecord.
type TargetKind uint8

const (
	TargetKindUnit TargetKind = iota
	TargetKindGameObject
	TargetKindItem
	TargetKindCorpse
	TargetKindDest
)

var targetKindNames = [...]string{"unit", "gameobject", "item", "corpse", "dest"}

func (k TargetKind) String() string {
	if int(k) < len(targetKindNames) {
		return targetKindNames[k]
	}
	return "unknown"
}

// Destination is a point target. When Transport is set the point moves with
// the transport and is recomputed from TransportOffset at hit time.
type Destination struct {
	Pos             world.Position
	Transport       world.ObjectID
	TransportOffset world.Position
}

// DestAt returns a plain destination.
func DestAt(p world.Position) Destination { return Destination{Pos: p} }

// DestOn returns a destination at p that rides carrier's transport, if it
// is on one.
func DestOn(m *world.Map, p world.Position, carrier *world.Unit) Destination {
	d := DestAt(p)
	if carrier == nil || carrier.Transport == 0 {
		return d
	}
	if t := m.GameObject(carrier.Transport); t != nil {
		d.Transport = t.ID()
		d.TransportOffset = toLocal(t.Position(), p)
	}
	return d
}

// Resolve returns the current world position of the destination.
func (d Destination) Resolve(m *world.Map) world.Position {
	if d.Transport == 0 {
		return d.Pos
	}
	t := m.GameObject(d.Transport)
	if t == nil {
		return d.Pos
	}
	return t.Position().Offset(d.TransportOffset)
}

// relocate moves the destination and keeps the transport offset in sync.
func (d *Destination) relocate(m *world.Map, p world.Position) {
	d.Pos = p
	if d.Transport == 0 {
		return
	}
	if t := m.GameObject(d.Transport); t != nil {
		d.TransportOffset = toLocal(t.Position(), p)
	}
}

// toLocal is the inverse of Position.Offset.
func toLocal(origin, p world.Position) world.Position {
	dx, dy := p.X-origin.X, p.Y-origin.Y
	back := world.Position{O: -origin.O}
	rot := back.Offset(world.Position{X: dx, Y: dy})
	return world.Position{X: rot.X, Y: rot.Y, Z: p.Z - origin.Z, O: p.O - origin.O}
}

// CastTargets are the explicit targets the caster chose.
type CastTargets struct {
	Unit       world.ObjectID
	GameObject world.ObjectID
	Item       world.ObjectID
	Corpse     world.ObjectID
	Src        *Destination
	Dst        *Destination
}

// UnitTarget targets one unit.
func UnitTarget(id world.ObjectID) CastTargets { return CastTargets{Unit: id} }

// DestTarget targets a point.
func DestTarget(p world.Position) CastTargets {
	d := DestAt(p)
	return CastTargets{Dst: &d}
}

// TargetRecord is one hit of a cast. Exactly one of the id or Dest is
// meaningful, selected by Kind; EffectMask holds the effect slots the target
// receives.
type TargetRecord struct {
	Kind       TargetKind
	ID         world.ObjectID
	Dest       Destination
	EffectMask uint8

	// TimeDelay is the travel time from launch; zero for instant spells.
	TimeDelay time.Duration
	Processed bool

	Miss      combat.SpellMissInfo
	Reflected bool
	Crit      bool
	Alive     bool

	Damage   int32
	Healing  int32
	Absorbed int32
}

func (r *TargetRecord) hasEffect(i int) bool { return r.EffectMask&(1<<i) != 0 }
