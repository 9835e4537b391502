package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/spellcore/internal/data"
	"github.com/udisondev/spellcore/internal/game/spell"
	"github.com/udisondev/spellcore/internal/world"
)

const (
	defaultAggroRange   = 40
	defaultRespawnDelay = 10 * time.Second
	meleeRange          = 5
)

// CasterOptions configures a CasterAI. Zero fields get defaults.
type CasterOptions struct {
	Spells       []data.SpellID
	AggroRange   float32
	RespawnDelay time.Duration
}

// CasterAI keeps its unit fighting the nearest hostile: it cycles through
// its spell list, falls back to melee swings when nothing can be cast and
// revives the unit after RespawnDelay.
type CasterAI struct {
	unit *world.Unit
	rt   *spell.Runtime
	opts CasterOptions

	intention Intention
	target    world.ObjectID
	next      int
	nextSwing time.Duration
	diedAt    time.Duration

	casts  int
	swings int
}

var _ Controller = (*CasterAI)(nil)

func NewCasterAI(u *world.Unit, rt *spell.Runtime, opts CasterOptions) *CasterAI {
	if opts.AggroRange <= 0 {
		opts.AggroRange = defaultAggroRange
	}
	if opts.RespawnDelay <= 0 {
		opts.RespawnDelay = defaultRespawnDelay
	}
	return &CasterAI{unit: u, rt: rt, opts: opts}
}

func (c *CasterAI) Unit() *world.Unit      { return c.unit }
func (c *CasterAI) Intention() Intention   { return c.intention }
func (c *CasterAI) Target() world.ObjectID { return c.target }

// Casts returns how many casts the controller started successfully.
func (c *CasterAI) Casts() int  { return c.casts }
func (c *CasterAI) Swings() int { return c.swings }

func (c *CasterAI) Tick(now time.Duration) {
	if !c.unit.IsAlive() {
		c.tickDead(now)
		return
	}
	if !c.unit.CanAct() {
		return
	}

	target := c.acquireTarget()
	if target == nil {
		c.setIntention(IntentionIdle)
		return
	}
	c.setIntention(IntentionAttack)

	if c.rt.CurrentCast(c.unit.ID()) != nil {
		return
	}
	if c.castNext(target) {
		return
	}
	if now >= c.nextSwing && c.unit.Position().Dist(target.Position()) <= meleeRange {
		c.rt.MeleeSwing(c.unit, target, world.BaseAttack)
		c.swings++
		c.nextSwing = now + c.rt.Math().AttackTime(c.unit, world.BaseAttack)
	}
}

func (c *CasterAI) tickDead(now time.Duration) {
	if c.intention != IntentionDead {
		c.setIntention(IntentionDead)
		c.diedAt = now
		c.target = 0
		return
	}
	if now-c.diedAt < c.opts.RespawnDelay {
		return
	}
	c.unit.Resurrect(100)
	c.unit.ModifyPower(data.PowerMana, c.unit.MaxPower(data.PowerMana))
	c.setIntention(IntentionIdle)
	slog.Debug("unit respawned", "unit", c.unit.ID(), "name", c.unit.Name())
}

// acquireTarget keeps the current target while it is alive and in range,
// otherwise picks the nearest hostile. Ties go to the lower id.
func (c *CasterAI) acquireTarget() *world.Unit {
	m := c.rt.Map()
	pos := c.unit.Position()
	if t := m.Unit(c.target); t != nil && t.IsAlive() && pos.Dist(t.Position()) <= c.opts.AggroRange {
		return t
	}

	var (
		best     *world.Unit
		bestDist float32
	)
	m.VisitRange(pos, c.opts.AggroRange, func(o world.Object) bool {
		u, ok := o.(*world.Unit)
		if !ok || u == c.unit || !u.IsAlive() || !m.IsHostile(c.unit, u) {
			return true
		}
		d := pos.Dist(u.Position())
		if best == nil || d < bestDist || (d == bestDist && u.ID() < best.ID()) {
			best, bestDist = u, d
		}
		return true
	})
	if best == nil {
		c.target = 0
		return nil
	}
	c.target = best.ID()
	return best
}

// castNext tries each spell once starting after the last one cast.
func (c *CasterAI) castNext(target *world.Unit) bool {
	n := len(c.opts.Spells)
	for range n {
		id := c.opts.Spells[c.next]
		c.next = (c.next + 1) % n
		if c.rt.IsOnCooldown(c.unit.ID(), id) {
			continue
		}
		_, res := c.rt.CastSpell(c.unit, id, spell.UnitTarget(target.ID()), spell.CastOptions{})
		if res == spell.SpellCastOK {
			c.casts++
			return true
		}
		if IsDebugEnabled() {
			slog.Debug("ai cast rejected", "unit", c.unit.ID(), "spell", id, "result", res)
		}
	}
	return false
}

func (c *CasterAI) setIntention(i Intention) {
	if c.intention == i {
		return
	}
	if IsDebugEnabled() {
		slog.Debug("AI intention changed", "unit", c.unit.ID(), "from", c.intention, "to", i)
	}
	c.intention = i
}
