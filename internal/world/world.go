package world

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"
)

// EventHandler consumes events popped from entity queues during Update.
type EventHandler interface {
	HandleEvent(m *Map, ev Event)
}

// Updater runs once per map tick after due events were dispatched.
type Updater interface {
	Update(m *Map, diff time.Duration)
}

// RemoveListener is told before an object leaves the map.
type RemoveListener interface {
	OnObjectRemoved(m *Map, id ObjectID)
}

// Wall blocks line of sight between its two end points.
type Wall struct {
	A, B Position
}

// MapOptions configures a new map partition.
type MapOptions struct {
	ID       uint32
	CellSize float32
	Seed     uint64
	IDs      *ObjectIDGenerator // shared between maps; created when nil
	Factions *FactionTable      // created when nil
}

// Map is one spatial partition with its own cooperative tick. Everything a
// map owns is touched only from the goroutine running its Update.
type Map struct {
	id       uint32
	now      time.Duration
	ids      *ObjectIDGenerator
	grid     *Grid
	factions *FactionTable
	rng      *rand.Rand

	units       map[ObjectID]*Unit
	gameObjects map[ObjectID]*GameObject
	corpses     map[ObjectID]*Corpse
	dynObjects  map[ObjectID]*DynamicObject
	walls       []Wall
	losQueries  uint64

	eventSeq uint64
	// heads indexes queue heads by time. Entries go stale when a head is
	// cancelled or its unit removed and are dropped when reached.
	heads     []Event
	handler   EventHandler
	updaters  []Updater
	listeners []RemoveListener
}

// NewMap creates an empty map.
func NewMap(opts MapOptions) *Map {
	if opts.IDs == nil {
		opts.IDs = NewObjectIDGenerator()
	}
	if opts.Factions == nil {
		opts.Factions = NewFactionTable()
	}
	return &Map{
		id:          opts.ID,
		ids:         opts.IDs,
		grid:        NewGrid(opts.CellSize),
		factions:    opts.Factions,
		rng:         rand.New(rand.NewPCG(opts.Seed, uint64(opts.ID))),
		units:       make(map[ObjectID]*Unit),
		gameObjects: make(map[ObjectID]*GameObject),
		corpses:     make(map[ObjectID]*Corpse),
		dynObjects:  make(map[ObjectID]*DynamicObject),
	}
}

func (m *Map) ID() uint32 { return m.id }

// Now returns the map's game time.
func (m *Map) Now() time.Duration { return m.now }

// Rand returns the map's deterministic random source.
func (m *Map) Rand() *rand.Rand { return m.rng }

func (m *Map) Factions() *FactionTable { return m.factions }

// SetEventHandler installs the consumer of scheduled events.
func (m *Map) SetEventHandler(h EventHandler) { m.handler = h }

// AddUpdater registers a per-tick updater. Updaters run in registration order.
func (m *Map) AddUpdater(u Updater) { m.updaters = append(m.updaters, u) }

func (m *Map) AddRemoveListener(l RemoveListener) { m.listeners = append(m.listeners, l) }

// SpawnUnit places a new unit.
func (m *Map) SpawnUnit(t UnitTemplate, pos Position) *Unit {
	kind := KindCreature
	if t.Player {
		kind = KindPlayer
	}
	u := newUnit(m.ids.Next(kind), t, pos)
	u.m = m
	m.units[u.id] = u
	m.grid.Add(u)
	return u
}

// SpawnGameObject places a new game object.
func (m *Map) SpawnGameObject(entry uint32, name string, typ GameObjectType, pos Position) *GameObject {
	g := &GameObject{WorldObject: newWorldObject(m.ids.Next(KindGameObject), entry, name, pos), Type: typ}
	g.m = m
	m.gameObjects[g.id] = g
	m.grid.Add(g)
	return g
}

// SpawnCorpse leaves a corpse for owner at its current position.
func (m *Map) SpawnCorpse(owner *Unit) *Corpse {
	c := &Corpse{
		WorldObject: newWorldObject(m.ids.Next(KindCorpse), owner.entry, owner.name, owner.pos),
		Owner:       owner.id,
		Faction:     owner.Faction,
	}
	c.m = m
	m.corpses[c.id] = c
	m.grid.Add(c)
	return c
}

// SpawnDynamicObject places a persistent area effect.
func (m *Map) SpawnDynamicObject(d DynamicObject, pos Position) *DynamicObject {
	d.WorldObject = newWorldObject(m.ids.Next(KindDynamicObject), d.SpellID, "", pos)
	d.m = m
	obj := &d
	m.dynObjects[obj.id] = obj
	m.grid.Add(obj)
	return obj
}

// NewItem creates an inventory item. Items never enter the grid.
func (m *Map) NewItem(entry uint32, name string, count uint32) *Item {
	return &Item{WorldObject: newWorldObject(m.ids.Next(KindItem), entry, name, Position{}), Count: count}
}

func (m *Map) Unit(id ObjectID) *Unit                   { return m.units[id] }
func (m *Map) GameObject(id ObjectID) *GameObject       { return m.gameObjects[id] }
func (m *Map) Corpse(id ObjectID) *Corpse               { return m.corpses[id] }
func (m *Map) DynamicObject(id ObjectID) *DynamicObject { return m.dynObjects[id] }

// Object looks up any placed object by id.
func (m *Map) Object(id ObjectID) Object {
	switch id.Kind() {
	case KindPlayer, KindCreature:
		if u := m.units[id]; u != nil {
			return u
		}
	case KindGameObject:
		if g := m.gameObjects[id]; g != nil {
			return g
		}
	case KindCorpse:
		if c := m.corpses[id]; c != nil {
			return c
		}
	case KindDynamicObject:
		if d := m.dynObjects[id]; d != nil {
			return d
		}
	}
	return nil
}

// Units returns all units ordered by id.
func (m *Map) Units() []*Unit {
	out := make([]*Unit, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b *Unit) int { return compareIDs(a.id, b.id) })
	return out
}

// DynamicObjects returns all persistent area effects ordered by id.
func (m *Map) DynamicObjects() []*DynamicObject {
	out := make([]*DynamicObject, 0, len(m.dynObjects))
	for _, d := range m.dynObjects {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *DynamicObject) int { return compareIDs(a.id, b.id) })
	return out
}

func compareIDs(a, b ObjectID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Remove takes an object off the map. Listeners run first so they can
// finalize state that references it.
func (m *Map) Remove(id ObjectID) {
	obj := m.Object(id)
	if obj == nil {
		return
	}
	for _, l := range m.listeners {
		l.OnObjectRemoved(m, id)
	}
	m.grid.Remove(id, obj.Position())
	delete(m.units, id)
	delete(m.gameObjects, id)
	delete(m.corpses, id)
	delete(m.dynObjects, id)
}

// Relocate moves a placed object and keeps passengers on transports.
func (m *Map) Relocate(id ObjectID, pos Position) {
	switch id.Kind() {
	case KindPlayer, KindCreature:
		if u := m.units[id]; u != nil {
			old := u.pos
			u.pos = pos
			m.grid.Move(u, old)
		}
	case KindGameObject:
		g := m.gameObjects[id]
		if g == nil {
			return
		}
		old := g.pos
		g.pos = pos
		m.grid.Move(g, old)
		if g.IsTransport() {
			for _, u := range m.units {
				if u.Transport == id {
					m.Relocate(u.id, pos.Offset(u.TransportOffset))
				}
			}
		}
	}
}

// Board puts u on transport t at its current relative offset.
func (m *Map) Board(u *Unit, t *GameObject) {
	u.Transport = t.id
	inv := Position{O: -t.pos.O}
	d := Position{X: u.pos.X - t.pos.X, Y: u.pos.Y - t.pos.Y, Z: u.pos.Z - t.pos.Z}
	local := inv.Offset(d)
	local.O = 0
	u.TransportOffset = local
}

// VisitRange calls fn for objects within radius of center.
func (m *Map) VisitRange(center Position, radius float32, fn func(Object) bool) {
	m.grid.VisitRange(center, radius, fn)
}

// AddWall registers a line-of-sight blocker.
func (m *Map) AddWall(w Wall) { m.walls = append(m.walls, w) }

// IsInLOS reports whether no wall crosses the segment between a and b.
func (m *Map) IsInLOS(a, b Position) bool {
	m.losQueries++
	for _, w := range m.walls {
		if segmentsIntersect(a, b, w.A, w.B) {
			return false
		}
	}
	return true
}

// LOSQueries returns how many line of sight checks the map has answered.
func (m *Map) LOSQueries() uint64 { return m.losQueries }

// IsHostile reports whether a and b would fight each other.
func (m *Map) IsHostile(a, b *Unit) bool {
	return a != b && m.factions.Reaction(a.Faction, b.Faction) == ReactionHostile
}

// IsFriendly reports whether a and b are allies.
func (m *Map) IsFriendly(a, b *Unit) bool {
	return a == b || m.factions.Reaction(a.Faction, b.Faction) == ReactionFriendly
}

// Schedule puts payload on owner's event queue at absolute time at and
// returns the event id.
func (m *Map) Schedule(owner ObjectID, at time.Duration, payload any) uint64 {
	u := m.units[owner]
	if u == nil {
		slog.Debug("schedule on missing owner", "map", m.id, "owner", owner)
		return 0
	}
	m.eventSeq++
	u.events.Push(Event{ID: m.eventSeq, At: at, Owner: owner, Payload: payload})
	if u.events.events[0].ID == m.eventSeq {
		m.indexHead(u)
	}
	return m.eventSeq
}

// CancelEvent removes a scheduled event.
func (m *Map) CancelEvent(owner ObjectID, id uint64) bool {
	u := m.units[owner]
	if u == nil {
		return false
	}
	wasHead := u.events.Len() > 0 && u.events.events[0].ID == id
	if !u.events.Cancel(id) {
		return false
	}
	if wasHead {
		m.indexHead(u)
	}
	return true
}

// Update advances game time by diff, dispatches every due event in time
// order and runs updaters.
func (m *Map) Update(diff time.Duration) {
	m.now += diff
	m.dispatchDue()
	for _, u := range m.updaters {
		u.Update(m, diff)
	}
	// updaters may schedule zero-delay work
	m.dispatchDue()
}

func (m *Map) dispatchDue() {
	if m.handler == nil {
		return
	}
	for len(m.heads) > 0 && m.heads[0].At <= m.now {
		head := m.heads[0]
		m.heads = slices.Delete(m.heads, 0, 1)
		u := m.units[head.Owner]
		if u == nil || u.events.Len() == 0 || u.events.events[0].ID != head.ID {
			continue
		}
		ev, _ := u.events.PopReady(m.now)
		m.indexHead(u)
		m.handler.HandleEvent(m, ev)
	}
}

// indexHead records the current head of u's queue, if any.
func (m *Map) indexHead(u *Unit) {
	if u.events.Len() == 0 {
		return
	}
	head := u.events.events[0]
	head.Payload = nil
	i, _ := slices.BinarySearchFunc(m.heads, head, compareEvents)
	m.heads = slices.Insert(m.heads, i, head)
}

// Run ticks the map every interval until ctx is cancelled.
func (m *Map) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("map started", "map", m.id, "tick", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("map stopped", "map", m.id, "gameTime", m.now)
			return nil
		case <-ticker.C:
			m.Update(interval)
		}
	}
}
