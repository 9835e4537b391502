package spell

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/spellcore/internal/config"
	"github.com/udisondev/spellcore/internal/data"
)

var ErrNoCatalog = errors.New("spell catalog is required")

// Metrics receives engine counters. Implementations must be safe for use
// from every map goroutine.
type Metrics interface {
	CastFinished(spell data.SpellID, result SpellCastResult)
	EffectHandled(kind data.SpellEffectName, mode HandleMode)
	AuraApplied(spell data.SpellID, result string)
	ProcTriggered(spell data.SpellID)
}

type nopMetrics struct{}

func (nopMetrics) CastFinished(data.SpellID, SpellCastResult)     {}
func (nopMetrics) EffectHandled(data.SpellEffectName, HandleMode) {}
func (nopMetrics) AuraApplied(data.SpellID, string)               {}
func (nopMetrics) ProcTriggered(data.SpellID)                     {}

// EngineOptions configures NewEngine. Only Catalog is required.
type EngineOptions struct {
	Catalog  *data.Catalog
	Registry *Registry
	Config   config.SpellConfig
	Scripts  *ScriptRegistry
	Metrics  Metrics
}

// Engine holds everything the maps share read-only: the catalog, the handler
// tables, script hooks and tunables. Build it once before any map starts.
type Engine struct {
	catalog  *data.Catalog
	registry *Registry
	cfg      config.SpellConfig
	scripts  *ScriptRegistry
	metrics  Metrics
}

// NewEngine validates the options and builds the built-in registry when
// none is given.
func NewEngine(opts EngineOptions) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("spell engine config: %w", err)
	}
	reg := opts.Registry
	if reg == nil {
		var err error
		reg, err = NewRegistry()
		if err != nil {
			return nil, err
		}
	}
	scripts := opts.Scripts
	if scripts == nil {
		scripts = NewScriptRegistry()
	}
	var metrics Metrics = nopMetrics{}
	if opts.Metrics != nil {
		metrics = opts.Metrics
	}

	effects, auras := reg.Counts()
	slog.Info("spell engine ready",
		"spells", opts.Catalog.SpellCount(),
		"effectHandlers", effects,
		"auraHandlers", auras,
		"scriptedSpells", scripts.Len())

	return &Engine{
		catalog:  opts.Catalog,
		registry: reg,
		cfg:      opts.Config,
		scripts:  scripts,
		metrics:  metrics,
	}, nil
}

func (e *Engine) Catalog() *data.Catalog     { return e.catalog }
func (e *Engine) Registry() *Registry        { return e.registry }
func (e *Engine) Config() config.SpellConfig { return e.cfg }
