package world

import (
	"time"

	"github.com/udisondev/spellcore/internal/data"
)

// UnitState is a crowd-control or activity state. States are reference
// counted: two stuns keep the unit stunned until both are removed.
type UnitState uint8

const (
	StateStunned UnitState = iota
	StateRooted
	StateConfused
	StateFleeing
	StateSilenced
	StatePacified
	StateDisarmed
	StateCharmed
	StateSleeping
	StateBanished
	StateStealthed
	StateInvisible
	unitStateCount
)

// AttackType indexes a unit's attack timers.
type AttackType uint8

const (
	BaseAttack AttackType = iota
	OffAttack
	RangedAttack
	maxAttackTypes
)

const schoolCount = 7

// Unit is a player or creature.
type Unit struct {
	WorldObject

	Level   int32
	Class   uint8
	Faction Faction
	Party   uint32 // 0 = not grouped
	Raid    uint32 // 0 = not in a raid
	NoXP    bool   // creature grants neither experience nor honor

	// Transport carrying the unit, with the unit's offset relative to it.
	Transport       ObjectID
	TransportOffset Position

	AttackTime [maxAttackTypes]time.Duration

	health    int32
	maxHealth int32
	power     [data.MaxPowers]int32
	maxPower  [data.MaxPowers]int32
	dead      bool

	states         [unitStateCount]int16
	mechanicImmune map[data.Mechanic]int16
	schoolImmune   [schoolCount]int16
	mods           []modSource

	combatUntil time.Duration
	threat      map[ObjectID]float32
	items       map[ObjectID]*Item

	events EventQueue
}

// UnitTemplate is the spawn description of a unit.
type UnitTemplate struct {
	Entry     uint32
	Name      string
	Player    bool
	Level     int32
	Class     uint8
	Faction   Faction
	MaxHealth int32
	MaxMana   int32
	NoXP      bool
}

func newUnit(id ObjectID, t UnitTemplate, pos Position) *Unit {
	u := &Unit{
		WorldObject:    newWorldObject(id, t.Entry, t.Name, pos),
		Level:          t.Level,
		Class:          t.Class,
		Faction:        t.Faction,
		NoXP:           t.NoXP,
		health:         t.MaxHealth,
		maxHealth:      t.MaxHealth,
		mechanicImmune: make(map[data.Mechanic]int16),
		threat:         make(map[ObjectID]float32),
		items:          make(map[ObjectID]*Item),
	}
	u.maxPower[data.PowerMana] = t.MaxMana
	u.power[data.PowerMana] = t.MaxMana
	u.AttackTime = [maxAttackTypes]time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}
	return u
}

// IsPlayer reports whether the unit is controlled by a player.
func (u *Unit) IsPlayer() bool { return u.id.Kind() == KindPlayer }

func (u *Unit) IsAlive() bool { return !u.dead }

func (u *Unit) Health() int32 { return u.health }

// MaxHealth includes max-health modifiers.
func (u *Unit) MaxHealth() int32 {
	return int32(u.ApplyStat(StatMaxHealth, float64(u.maxHealth)))
}

// SetHealth clamps to [0, MaxHealth]. Reaching zero kills the unit.
func (u *Unit) SetHealth(v int32) {
	u.health = min(max(v, 0), u.MaxHealth())
	if u.health == 0 {
		u.dead = true
	}
}

// ModifyHealth applies delta and returns the change actually made.
func (u *Unit) ModifyHealth(delta int32) int32 {
	if u.dead {
		return 0
	}
	before := u.health
	u.SetHealth(before + delta)
	return u.health - before
}

// Resurrect brings a dead unit back with pct percent of its health.
func (u *Unit) Resurrect(pct int32) {
	if !u.dead {
		return
	}
	u.dead = false
	u.health = max(1, u.MaxHealth()*pct/100)
}

func (u *Unit) Power(p data.PowerType) int32 {
	if p == data.PowerHealth {
		return u.health
	}
	if p < 0 || int(p) >= data.MaxPowers {
		return 0
	}
	return u.power[p]
}

func (u *Unit) MaxPower(p data.PowerType) int32 {
	if p == data.PowerHealth {
		return u.MaxHealth()
	}
	if p < 0 || int(p) >= data.MaxPowers {
		return 0
	}
	return u.maxPower[p]
}

// SetMaxPower sets the pool size and fills it.
func (u *Unit) SetMaxPower(p data.PowerType, v int32) {
	if p < 0 || int(p) >= data.MaxPowers {
		return
	}
	u.maxPower[p] = v
	u.power[p] = v
}

// ModifyPower applies delta to a power pool and returns the change made.
func (u *Unit) ModifyPower(p data.PowerType, delta int32) int32 {
	if p == data.PowerHealth {
		return u.ModifyHealth(delta)
	}
	if p < 0 || int(p) >= data.MaxPowers {
		return 0
	}
	before := u.power[p]
	u.power[p] = min(max(before+delta, 0), u.maxPower[p])
	return u.power[p] - before
}

// AddState increments (apply) or decrements (remove) a state reference.
func (u *Unit) AddState(s UnitState, apply bool) {
	if apply {
		u.states[s]++
		return
	}
	if u.states[s] > 0 {
		u.states[s]--
	}
}

func (u *Unit) HasState(s UnitState) bool { return u.states[s] > 0 }

// CanAct is false while stunned, sleeping, banished or fleeing.
func (u *Unit) CanAct() bool {
	return u.IsAlive() && !u.HasState(StateStunned) && !u.HasState(StateSleeping) &&
		!u.HasState(StateBanished) && !u.HasState(StateFleeing) && !u.HasState(StateConfused)
}

// ApplyMechanicImmunity toggles one reference of immunity to a mechanic.
func (u *Unit) ApplyMechanicImmunity(m data.Mechanic, apply bool) {
	if apply {
		u.mechanicImmune[m]++
		return
	}
	if u.mechanicImmune[m] > 1 {
		u.mechanicImmune[m]--
	} else {
		delete(u.mechanicImmune, m)
	}
}

func (u *Unit) IsImmuneToMechanic(m data.Mechanic) bool {
	return m != data.MechanicNone && u.mechanicImmune[m] > 0
}

// ApplySchoolImmunity toggles one reference of immunity to every school in mask.
func (u *Unit) ApplySchoolImmunity(mask data.SchoolMask, apply bool) {
	for i := range schoolCount {
		if mask&(1<<i) == 0 {
			continue
		}
		if apply {
			u.schoolImmune[i]++
		} else if u.schoolImmune[i] > 0 {
			u.schoolImmune[i]--
		}
	}
}

// IsImmuneToSchool is true when every school of mask is blocked.
func (u *Unit) IsImmuneToSchool(mask data.SchoolMask) bool {
	if mask == data.SchoolMaskNone {
		return false
	}
	for i := range schoolCount {
		if mask&(1<<i) != 0 && u.schoolImmune[i] == 0 {
			return false
		}
	}
	return true
}

// SetInCombat keeps the unit in combat until now + d.
func (u *Unit) SetInCombat(now, d time.Duration) {
	u.combatUntil = max(u.combatUntil, now+d)
}

func (u *Unit) IsInCombat(now time.Duration) bool { return now < u.combatUntil }

func (u *Unit) AddThreat(from ObjectID, amount float32) {
	u.threat[from] += amount
}

func (u *Unit) Threat(from ObjectID) float32 { return u.threat[from] }

// AddItem puts an item into the unit's inventory.
func (u *Unit) AddItem(it *Item) {
	it.Owner = u.id
	u.items[it.id] = it
}

func (u *Unit) Item(id ObjectID) *Item { return u.items[id] }

// RemoveItem deletes count of an item; the item disappears at zero.
func (u *Unit) RemoveItem(id ObjectID, count uint32) {
	it, ok := u.items[id]
	if !ok {
		return
	}
	if it.Count <= count {
		delete(u.items, id)
		return
	}
	it.Count -= count
}

// Items returns the unit's inventory. Order is unspecified.
func (u *Unit) Items() []*Item {
	out := make([]*Item, 0, len(u.items))
	for _, it := range u.items {
		out = append(out, it)
	}
	return out
}

// PendingEvents returns how many events wait on the unit's queue.
func (u *Unit) PendingEvents() int { return u.events.Len() }

// IsInParty reports whether both units share a party.
func (u *Unit) IsInParty(o *Unit) bool {
	return u == o || (u.Party != 0 && u.Party == o.Party)
}

// IsInRaid reports whether both units share a raid or party.
func (u *Unit) IsInRaid(o *Unit) bool {
	return u.IsInParty(o) || (u.Raid != 0 && u.Raid == o.Raid)
}
