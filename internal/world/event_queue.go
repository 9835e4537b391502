package world

import (
	"cmp"
	"slices"
	"time"
)

// Event is a record scheduled on an entity's queue. Payload is plain data
// owned by whoever scheduled it; the queue never runs code.
type Event struct {
	ID      uint64
	At      time.Duration // absolute map time
	Owner   ObjectID
	Payload any
}

// EventQueue is a sorted per-entity event list keyed by absolute game time.
// Events with equal time keep insertion order.
type EventQueue struct {
	events []Event
}

func compareEvents(a, b Event) int {
	if c := cmp.Compare(a.At, b.At); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Push inserts ev keeping the queue sorted.
func (q *EventQueue) Push(ev Event) {
	i, _ := slices.BinarySearchFunc(q.events, ev, compareEvents)
	q.events = slices.Insert(q.events, i, ev)
}

// PopReady removes and returns the earliest event due at or before now.
func (q *EventQueue) PopReady(now time.Duration) (Event, bool) {
	if len(q.events) == 0 || q.events[0].At > now {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = slices.Delete(q.events, 0, 1)
	return ev, true
}

// Next returns the time of the earliest event.
func (q *EventQueue) Next() (time.Duration, bool) {
	if len(q.events) == 0 {
		return 0, false
	}
	return q.events[0].At, true
}

// Cancel removes the event with the given id.
func (q *EventQueue) Cancel(id uint64) bool {
	for i := range q.events {
		if q.events[i].ID == id {
			q.events = slices.Delete(q.events, i, i+1)
			return true
		}
	}
	return false
}

// CancelFunc removes every event for which match returns true and reports
// how many were removed.
func (q *EventQueue) CancelFunc(match func(Event) bool) int {
	before := len(q.events)
	q.events = slices.DeleteFunc(q.events, match)
	return before - len(q.events)
}

func (q *EventQueue) Len() int { return len(q.events) }

// Clear drops all pending events.
func (q *EventQueue) Clear() { q.events = q.events[:0] }
