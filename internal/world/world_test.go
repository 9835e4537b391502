package world

import (
	"math"
	"testing"
	"time"
)

type recordingHandler struct {
	seen []Event
}

func (h *recordingHandler) HandleEvent(_ *Map, ev Event) {
	h.seen = append(h.seen, ev)
}

func TestMap_DispatchInTimeOrder(t *testing.T) {
	m := NewMap(MapOptions{ID: 1})
	h := &recordingHandler{}
	m.SetEventHandler(h)

	a := m.SpawnUnit(UnitTemplate{Name: "a", MaxHealth: 100}, Pos(0, 0, 0))
	b := m.SpawnUnit(UnitTemplate{Name: "b", MaxHealth: 100}, Pos(5, 0, 0))

	m.Schedule(a.ID(), 300*time.Millisecond, "a-late")
	m.Schedule(b.ID(), 100*time.Millisecond, "b-early")
	m.Schedule(a.ID(), 100*time.Millisecond, "a-early")
	cancelled := m.Schedule(b.ID(), 200*time.Millisecond, "b-cancelled")
	if !m.CancelEvent(b.ID(), cancelled) {
		t.Fatal("CancelEvent() = false, want true")
	}

	m.Update(150 * time.Millisecond)
	if len(h.seen) != 2 {
		t.Fatalf("after 150ms got %d events, want 2", len(h.seen))
	}
	if h.seen[0].Payload != "b-early" || h.seen[1].Payload != "a-early" {
		t.Errorf("equal-time events out of insertion order: %v, %v", h.seen[0].Payload, h.seen[1].Payload)
	}

	m.Update(100 * time.Millisecond)
	if len(h.seen) != 2 {
		t.Fatalf("cancelled event dispatched: %v", h.seen[len(h.seen)-1].Payload)
	}

	m.Update(100 * time.Millisecond)
	if len(h.seen) != 3 || h.seen[2].Payload != "a-late" {
		t.Fatalf("late event not dispatched, seen %d", len(h.seen))
	}
	if m.Now() != 350*time.Millisecond {
		t.Errorf("Now() = %v, want 350ms", m.Now())
	}
}

// chainHandler schedules a follow-up on the same owner for every event.
type chainHandler struct {
	recordingHandler
	follow time.Duration
}

func (h *chainHandler) HandleEvent(m *Map, ev Event) {
	h.recordingHandler.HandleEvent(m, ev)
	if ev.Payload == "first" {
		m.Schedule(ev.Owner, m.Now()+h.follow, "second")
	}
}

func TestMap_CancelHeadKeepsLaterEvents(t *testing.T) {
	m := NewMap(MapOptions{})
	h := &recordingHandler{}
	m.SetEventHandler(h)
	a := m.SpawnUnit(UnitTemplate{Name: "a", MaxHealth: 100}, Pos(0, 0, 0))

	head := m.Schedule(a.ID(), 100*time.Millisecond, "head")
	m.Schedule(a.ID(), 200*time.Millisecond, "next")
	if !m.CancelEvent(a.ID(), head) {
		t.Fatal("CancelEvent(head) = false, want true")
	}
	if m.CancelEvent(a.ID(), head) {
		t.Error("second CancelEvent(head) = true, want false")
	}

	m.Update(150 * time.Millisecond)
	if len(h.seen) != 0 {
		t.Fatalf("cancelled head dispatched: %v", h.seen)
	}
	m.Update(50 * time.Millisecond)
	if len(h.seen) != 1 || h.seen[0].Payload != "next" {
		t.Fatalf("seen %v, want [next]", h.seen)
	}
	if a.PendingEvents() != 0 {
		t.Errorf("PendingEvents() = %d, want 0", a.PendingEvents())
	}
}

func TestMap_EventsOfRemovedUnitDropped(t *testing.T) {
	m := NewMap(MapOptions{})
	h := &recordingHandler{}
	m.SetEventHandler(h)
	a := m.SpawnUnit(UnitTemplate{Name: "a", MaxHealth: 100}, Pos(0, 0, 0))
	b := m.SpawnUnit(UnitTemplate{Name: "b", MaxHealth: 100}, Pos(1, 0, 0))

	m.Schedule(a.ID(), 100*time.Millisecond, "gone")
	m.Schedule(b.ID(), 100*time.Millisecond, "kept")
	m.Remove(a.ID())

	m.Update(100 * time.Millisecond)
	if len(h.seen) != 1 || h.seen[0].Payload != "kept" {
		t.Fatalf("seen %v, want [kept]", h.seen)
	}
}

func TestMap_HandlerSchedulesDueWork(t *testing.T) {
	m := NewMap(MapOptions{})
	h := &chainHandler{}
	m.SetEventHandler(h)
	a := m.SpawnUnit(UnitTemplate{Name: "a", MaxHealth: 100}, Pos(0, 0, 0))

	m.Schedule(a.ID(), 100*time.Millisecond, "first")
	m.Update(100 * time.Millisecond)
	if len(h.seen) != 2 || h.seen[1].Payload != "second" {
		t.Fatalf("zero-delay follow-up not dispatched in the same tick: %v", h.seen)
	}
}

func TestMap_VisitRange(t *testing.T) {
	m := NewMap(MapOptions{CellSize: 10})
	near := m.SpawnUnit(UnitTemplate{Name: "near"}, Pos(3, 4, 0))
	m.SpawnUnit(UnitTemplate{Name: "far"}, Pos(40, 0, 0))
	edge := m.SpawnUnit(UnitTemplate{Name: "edge"}, Pos(-10, 0, 0))

	found := map[ObjectID]bool{}
	m.VisitRange(Pos(0, 0, 0), 10, func(o Object) bool {
		found[o.ID()] = true
		return true
	})

	if len(found) != 2 || !found[near.ID()] || !found[edge.ID()] {
		t.Errorf("VisitRange found %v, want near and edge", found)
	}

	m.Relocate(near.ID(), Pos(100, 100, 0))
	found = map[ObjectID]bool{}
	m.VisitRange(Pos(0, 0, 0), 10, func(o Object) bool {
		found[o.ID()] = true
		return true
	})
	if found[near.ID()] {
		t.Error("relocated unit still found at old cell")
	}
}

func TestMap_LineOfSight(t *testing.T) {
	m := NewMap(MapOptions{})
	m.AddWall(Wall{A: Pos(5, -5, 0), B: Pos(5, 5, 0)})

	if m.IsInLOS(Pos(0, 0, 0), Pos(10, 0, 0)) {
		t.Error("wall should block LOS")
	}
	if !m.IsInLOS(Pos(0, 10, 0), Pos(10, 10, 0)) {
		t.Error("path beside the wall should be clear")
	}
}

func TestMap_TransportCarriesPassengers(t *testing.T) {
	m := NewMap(MapOptions{})
	boat := m.SpawnGameObject(1, "boat", GOTransport, Pos(0, 0, 0))
	rider := m.SpawnUnit(UnitTemplate{Name: "rider"}, Pos(2, 0, 0))
	m.Board(rider, boat)

	m.Relocate(boat.ID(), Position{X: 10, Y: 10, O: math.Pi / 2})

	got := rider.Position()
	if math.Abs(float64(got.X-10)) > 1e-3 || math.Abs(float64(got.Y-12)) > 1e-3 {
		t.Errorf("rider at (%v, %v), want (10, 12)", got.X, got.Y)
	}
}

func TestFactionTable(t *testing.T) {
	ft := NewFactionTable()
	ft.Set(2, 3, ReactionFriendly)

	tests := []struct {
		a, b Faction
		want Reaction
	}{
		{1, 1, ReactionFriendly},
		{1, 2, ReactionHostile},
		{2, 3, ReactionFriendly},
		{3, 2, ReactionFriendly},
		{FactionNeutral, 1, ReactionNeutral},
	}
	for _, tt := range tests {
		if got := ft.Reaction(tt.a, tt.b); got != tt.want {
			t.Errorf("Reaction(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestObjectIDKinds(t *testing.T) {
	gen := NewObjectIDGenerator()
	p := gen.Next(KindPlayer)
	c := gen.Next(KindCreature)

	if p.Kind() != KindPlayer || !p.IsUnit() {
		t.Errorf("player id %v has kind %v", p, p.Kind())
	}
	if c.Kind() != KindCreature || c.Counter() != 1 {
		t.Errorf("creature id %v: kind %v counter %d", c, c.Kind(), c.Counter())
	}
	if gen.Next(KindItem).IsUnit() {
		t.Error("item id reported as unit")
	}
}
