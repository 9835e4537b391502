package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
)

const meterName = "github.com/udisondev/spellcore/spell"

// Metrics counts engine events on OpenTelemetry counters.
type Metrics struct {
	casts   metric.Int64Counter
	effects metric.Int64Counter
	auras   metric.Int64Counter
	procs   metric.Int64Counter
}

var _ spell.Metrics = (*Metrics)(nil)

// NewMetrics creates the counters on mp, or on the global provider when mp
// is nil.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	var m Metrics
	var err error
	if m.casts, err = meter.Int64Counter("spell.casts",
		metric.WithDescription("Finished casts by result")); err != nil {
		return nil, fmt.Errorf("creating cast counter: %w", err)
	}
	if m.effects, err = meter.Int64Counter("spell.effects",
		metric.WithDescription("Effect handler invocations")); err != nil {
		return nil, fmt.Errorf("creating effect counter: %w", err)
	}
	if m.auras, err = meter.Int64Counter("spell.auras",
		metric.WithDescription("Aura applications by outcome")); err != nil {
		return nil, fmt.Errorf("creating aura counter: %w", err)
	}
	if m.procs, err = meter.Int64Counter("spell.procs",
		metric.WithDescription("Triggered procs")); err != nil {
		return nil, fmt.Errorf("creating proc counter: %w", err)
	}
	return &m, nil
}

// Counters run on the map goroutines, which carry no request context.

func (m *Metrics) CastFinished(id data.SpellID, r spell.SpellCastResult) {
	m.casts.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Int("spell.id", int(id)),
		attribute.String("spell.result", r.String()),
	))
}

func (m *Metrics) EffectHandled(kind data.SpellEffectName, mode spell.HandleMode) {
	m.effects.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("spell.effect", kind.String()),
		attribute.String("spell.mode", mode.String()),
	))
}

func (m *Metrics) AuraApplied(id data.SpellID, result string) {
	m.auras.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Int("spell.id", int(id)),
		attribute.String("aura.result", result),
	))
}

func (m *Metrics) ProcTriggered(id data.SpellID) {
	m.procs.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("spell.id", int(id))))
}
