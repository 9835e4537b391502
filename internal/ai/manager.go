package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/spellcore/internal/world"
)

const tracerName = "github.com/udisondev/spellcore/internal/ai"

// TickManager ticks the controllers of one map every interval. It runs as
// a map updater, so registration and ticks happen on the map goroutine.
type TickManager struct {
	interval    time.Duration
	elapsed     time.Duration
	controllers map[world.ObjectID]Controller
	order       []world.ObjectID
	tracer      trace.Tracer
}

func NewTickManager(interval time.Duration) *TickManager {
	return &TickManager{
		interval:    interval,
		controllers: make(map[world.ObjectID]Controller),
		tracer:      otel.Tracer(tracerName),
	}
}

// Attach registers the manager as an updater and remove listener of m.
func (tm *TickManager) Attach(m *world.Map) {
	m.AddUpdater(tm)
	m.AddRemoveListener(tm)
}

func (tm *TickManager) Register(c Controller) {
	id := c.Unit().ID()
	if _, ok := tm.controllers[id]; !ok {
		i, _ := slices.BinarySearch(tm.order, id)
		tm.order = slices.Insert(tm.order, i, id)
	}
	tm.controllers[id] = c
	slog.Debug("AI controller registered", "unit", id, "intention", c.Intention())
}

func (tm *TickManager) Unregister(id world.ObjectID) {
	if _, ok := tm.controllers[id]; !ok {
		return
	}
	delete(tm.controllers, id)
	if i, found := slices.BinarySearch(tm.order, id); found {
		tm.order = slices.Delete(tm.order, i, i+1)
	}
	slog.Debug("AI controller unregistered", "unit", id)
}

func (tm *TickManager) Count() int { return len(tm.controllers) }

func (tm *TickManager) Controller(id world.ObjectID) (Controller, error) {
	c, ok := tm.controllers[id]
	if !ok {
		return nil, fmt.Errorf("controller not found for unit %d", id)
	}
	return c, nil
}

func (tm *TickManager) Update(m *world.Map, diff time.Duration) {
	tm.elapsed += diff
	if tm.elapsed < tm.interval {
		return
	}
	tm.elapsed = 0
	tm.tickAll(m)
}

func (tm *TickManager) OnObjectRemoved(_ *world.Map, id world.ObjectID) {
	tm.Unregister(id)
}

// tickAll ticks every controller in id order inside one span.
func (tm *TickManager) tickAll(m *world.Map) {
	_, span := tm.tracer.Start(context.Background(), "ai.tick",
		trace.WithAttributes(
			attribute.Int("map", int(m.ID())),
			attribute.Int("controllers", len(tm.order)),
		))
	defer span.End()

	now := m.Now()
	attacking := 0
	for _, id := range slices.Clone(tm.order) {
		c, ok := tm.controllers[id]
		if !ok {
			continue
		}
		c.Tick(now)
		if c.Intention() == IntentionAttack {
			attacking++
		}
	}
	span.SetAttributes(attribute.Int("attacking", attacking))

	if IsDebugEnabled() {
		slog.Debug("AI tick completed", "map", m.ID(), "controllers", len(tm.order), "attacking", attacking)
	}
}
