package world

import (
	"fmt"
	"sync/atomic"
)

// ObjectID identifies every world entity. The high byte carries the kind so
// an id alone tells which table to look in.
//
// ID ranges (convention):
//
//	0x00...: invalid
//	0x01...: players
//	0x02...: creatures
//	0x03...: game objects (including transports)
//	0x04...: items
//	0x05...: corpses
//	0x06...: dynamic objects (persistent area effects)
type ObjectID uint64

// ObjectKind is the kind tag stored in the id's high byte.
type ObjectKind uint8

const (
	KindNone ObjectKind = iota
	KindPlayer
	KindCreature
	KindGameObject
	KindItem
	KindCorpse
	KindDynamicObject
	kindCount
)

const kindShift = 56

var kindNames = [kindCount]string{"none", "player", "creature", "gameobject", "item", "corpse", "dynobject"}

func (k ObjectKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Kind returns the kind tag of the id.
func (id ObjectID) Kind() ObjectKind {
	return ObjectKind(id >> kindShift)
}

// Counter returns the per-kind sequence number.
func (id ObjectID) Counter() uint64 {
	return uint64(id) & (1<<kindShift - 1)
}

// IsUnit reports whether the id names a player or creature.
func (id ObjectID) IsUnit() bool {
	k := id.Kind()
	return k == KindPlayer || k == KindCreature
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%s-%d", id.Kind(), id.Counter())
}

// ObjectIDGenerator generates unique object IDs for all world entities.
// Shared by every map so ids never collide across partitions.
type ObjectIDGenerator struct {
	next [kindCount]atomic.Uint64
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

// Next generates the next id of the given kind.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) Next(kind ObjectKind) ObjectID {
	n := g.next[kind].Add(1)
	return ObjectID(uint64(kind)<<kindShift | n)
}
