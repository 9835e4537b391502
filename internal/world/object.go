package world

import "time"

// Object is anything placed on a map.
type Object interface {
	ID() ObjectID
	Position() Position
	Entry() uint32
	Map() *Map
}

// WorldObject is the common base embedded by every placed entity.
type WorldObject struct {
	id    ObjectID
	entry uint32
	name  string
	pos   Position
	m     *Map
}

func newWorldObject(id ObjectID, entry uint32, name string, pos Position) WorldObject {
	return WorldObject{id: id, entry: entry, name: name, pos: pos}
}

func (o *WorldObject) ID() ObjectID       { return o.id }
func (o *WorldObject) Entry() uint32      { return o.entry }
func (o *WorldObject) Name() string       { return o.name }
func (o *WorldObject) Position() Position { return o.pos }
func (o *WorldObject) Map() *Map          { return o.m }

// SetOrientation turns the object in place. Grid membership is unchanged.
func (o *WorldObject) SetOrientation(angle float32) {
	o.pos.O = NormalizeOrientation(angle)
}

// GameObjectType distinguishes the handful of game object behaviours the
// spell engine interacts with.
type GameObjectType uint8

const (
	GOGeneric GameObjectType = iota
	GODoor
	GOChest
	GOTrap
	GOTransport
	GOSpellFocus
	GORitual
)

// GameObject is a static or scripted object: doors, chests, traps, transports.
type GameObject struct {
	WorldObject
	Type    GameObjectType
	Owner   ObjectID
	Faction Faction
	Active  bool // activated by an open/activate effect
	Level   int32
}

// IsTransport reports whether passengers' positions are relative to it.
func (g *GameObject) IsTransport() bool {
	return g.Type == GOTransport
}

// Corpse is what a dead player leaves behind.
type Corpse struct {
	WorldObject
	Owner   ObjectID
	Faction Faction
	Bones   bool
}

// Item belongs to a unit's inventory. Items are never in the grid; spells
// reach them only as explicit targets.
type Item struct {
	WorldObject
	Owner        ObjectID
	Count        uint32
	Enchantments [MaxEnchantSlots]uint32
	EnchantUntil [MaxEnchantSlots]time.Duration // game time; 0 = permanent
}

const (
	EnchantSlotPermanent = iota
	EnchantSlotTemporary
	EnchantSlotSocket
	MaxEnchantSlots
)

// DynamicObject is a persistent area effect left on the ground by a spell.
type DynamicObject struct {
	WorldObject
	Caster      ObjectID
	SpellID     uint32
	EffectIndex int
	Radius      float32
	ExpiresAt   time.Duration
}
